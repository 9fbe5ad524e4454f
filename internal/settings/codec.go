// Package settings переводит записи настроек между представлениями:
// пустая запись, частичный ответ бэкенда и form-encoded значения.
package settings

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/hsm-textlab/workbench/internal/domain"
	"github.com/hsm-textlab/workbench/pkg/e"
)

// Empty возвращает запись указанного вида, в которой все поля имеют значения по умолчанию.
func Empty(kind domain.Kind) (domain.Record, error) {
	switch kind {
	case domain.KindFilter:
		return domain.NewFilterSettings(), nil
	case domain.KindClusterer:
		return domain.NewClustererSettings(), nil
	default:
		return nil, e.Wrap(string(kind), e.ErrUnknownKind)
	}
}

// Merge переносит в base значения ключей, присутствующих в partial.
// Поля, которых нет в partial, не меняются; ключи, не соответствующие полям, игнорируются.
// Значения не валидируются, только приводятся к типу поля.
func Merge(base domain.Record, partial map[string]any) domain.Record {
	for _, f := range base.Fields() {
		raw, ok := partial[f.Name]
		if !ok || raw == nil {
			continue
		}

		switch f.Type {
		case domain.BoolField:
			if v, ok := toBool(raw); ok {
				f.SetFlag(v)
			}
		default:
			f.SetText(toText(raw))
		}
	}

	return base
}

// Decode строит полную запись из частичного ответа бэкенда: Empty + Merge.
func Decode(kind domain.Kind, partial map[string]any) (domain.Record, error) {
	record, err := Empty(kind)
	if err != nil {
		return nil, err
	}

	return Merge(record, partial), nil
}

// Values кодирует запись целиком в form-encoded вид, как ее отправляла страница:
// логические поля передаются строками "true"/"false".
func Values(record domain.Record) url.Values {
	values := make(url.Values)
	for _, f := range record.Fields() {
		if f.Type == domain.BoolField {
			values.Set(f.Name, strconv.FormatBool(f.Flag()))
			continue
		}
		values.Set(f.Name, f.Text())
	}

	return values
}

// FromValues строит запись из form-encoded значений.
// Отсутствующие строковые поля остаются пустыми, логические - со значением по умолчанию.
func FromValues(kind domain.Kind, values url.Values) (domain.Record, error) {
	partial := make(map[string]any, len(values))
	for key := range values {
		partial[key] = values.Get(key)
	}

	return Decode(kind, partial)
}

// Map возвращает запись как набор ключ → значение (string или bool).
func Map(record domain.Record) map[string]any {
	m := make(map[string]any)
	for _, f := range record.Fields() {
		m[f.Name] = f.Value()
	}

	return m
}

func toBool(raw any) (bool, bool) {
	switch v := raw.(type) {
	case bool:
		return v, true
	case string:
		b, err := strconv.ParseBool(v)
		if err != nil {
			return false, false
		}
		return b, true
	case float64:
		return v != 0, true
	default:
		return false, false
	}
}

func toText(raw any) string {
	switch v := raw.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
