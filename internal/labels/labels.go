package labels

import (
	"encoding/json"
	"sort"

	"github.com/hsm-textlab/workbench/internal/domain"
	"github.com/hsm-textlab/workbench/pkg/e"
)

// ToLabelMap собирает метки размеченных точек. Точки с меткой "unknown" пропускаются,
// для повторяющегося документа побеждает последняя точка.
func ToLabelMap(points []domain.PlotPoint) domain.LabelMap {
	m := make(domain.LabelMap, len(points))
	for _, p := range points {
		if p.IsUnknown() {
			continue
		}
		m[p.Document] = p.Label
	}
	return m
}

// Encode сериализует карту в JSON-строку для поля labels.
func Encode(m domain.LabelMap) (string, error) {
	if m == nil {
		m = domain.LabelMap{}
	}
	b, err := json.Marshal(m)
	if err != nil {
		return "", e.Wrap("labels.Encode", err)
	}
	return string(b), nil
}

// Entry - одна пара документ/метка.
type Entry struct {
	Document string `json:"document"`
	Label    string `json:"label"`
}

// Entries раскладывает карту в список, упорядоченный по документу.
func Entries(m domain.LabelMap) []Entry {
	out := make([]Entry, 0, len(m))
	for doc, label := range m {
		out = append(out, Entry{Document: doc, Label: label})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Document < out[j].Document })
	return out
}

// Counts считает число документов на каждую метку.
func Counts(m domain.LabelMap) map[string]int {
	counts := make(map[string]int)
	for _, label := range m {
		counts[label]++
	}
	return counts
}
