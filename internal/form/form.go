// Package form связывает записи настроек с виджетами формы.
package form

import (
	"net/url"
	"sort"
	"strconv"
	"sync"

	"github.com/hsm-textlab/workbench/internal/domain"
	"github.com/hsm-textlab/workbench/internal/settings"
	"github.com/hsm-textlab/workbench/pkg/e"
)

// Идентификаторы служебных виджетов страницы кластеризатора.
const (
	PreviewSampleSize       = "preview_sample_size"
	DimensionalityReduction = "dimensionality_reduction"
)

// Widget - один элемент формы: текстовое поле или флажок.
type Widget interface {
	Value() string
	SetValue(v string)
	Checked() bool
	SetChecked(v bool)
}

// Form находит виджет по идентификатору.
type Form interface {
	Widget(id string) (Widget, bool)
}

// Panel - форма в памяти с фиксированным набором виджетов.
// Безопасна для одновременного использования.
type Panel struct {
	mu      sync.RWMutex
	widgets map[string]*widget
}

type widget struct {
	panel   *Panel
	value   string
	checked bool
}

// NewPanel создает форму с указанными виджетами.
func NewPanel(ids ...string) *Panel {
	p := &Panel{widgets: make(map[string]*widget, len(ids))}
	for _, id := range ids {
		p.widgets[id] = &widget{panel: p}
	}
	return p
}

// NewFilterPanel создает форму страницы фильтра.
func NewFilterPanel() *Panel {
	return NewPanel(fieldIDs(domain.NewFilterSettings())...)
}

// NewClustererPanel создает форму страницы кластеризатора вместе с полями предпросмотра.
func NewClustererPanel() *Panel {
	ids := append(fieldIDs(domain.NewClustererSettings()), PreviewSampleSize, DimensionalityReduction)
	return NewPanel(ids...)
}

func fieldIDs(record domain.Record) []string {
	fields := record.Fields()
	ids := make([]string, 0, len(fields))
	for _, f := range fields {
		ids = append(ids, f.Name)
	}
	return ids
}

func (p *Panel) Widget(id string) (Widget, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	w, ok := p.widgets[id]
	if !ok {
		return nil, false
	}
	return w, true
}

// IDs возвращает отсортированный список виджетов формы.
func (p *Panel) IDs() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	ids := make([]string, 0, len(p.widgets))
	for id := range p.widgets {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (w *widget) Value() string {
	w.panel.mu.RLock()
	defer w.panel.mu.RUnlock()
	return w.value
}

func (w *widget) SetValue(v string) {
	w.panel.mu.Lock()
	defer w.panel.mu.Unlock()
	w.value = v
}

func (w *widget) Checked() bool {
	w.panel.mu.RLock()
	defer w.panel.mu.RUnlock()
	return w.checked
}

func (w *widget) SetChecked(v bool) {
	w.panel.mu.Lock()
	defer w.panel.mu.Unlock()
	w.checked = v
}

// LoadIntoForm выставляет значение (строковые поля) или флажок (логические поля)
// для каждого поля записи. Отсутствующий виджет - ошибка программы, а не повод молчать.
func LoadIntoForm(f Form, record domain.Record) error {
	fields := record.Fields()
	widgets := make([]Widget, len(fields))
	for i, field := range fields {
		w, ok := f.Widget(field.Name)
		if !ok {
			return e.Wrap(field.Name, e.ErrMissingWidget)
		}
		widgets[i] = w
	}

	for i, field := range fields {
		if field.Type == domain.BoolField {
			widgets[i].SetChecked(field.Flag())
			continue
		}
		widgets[i].SetValue(field.Text())
	}

	return nil
}

// CollectFromForm - обратная операция к LoadIntoForm: читает все виджеты вида kind в новую запись.
func CollectFromForm(f Form, kind domain.Kind) (domain.Record, error) {
	record, err := settings.Empty(kind)
	if err != nil {
		return nil, err
	}

	for _, field := range record.Fields() {
		w, ok := f.Widget(field.Name)
		if !ok {
			return nil, e.Wrap(field.Name, e.ErrMissingWidget)
		}

		if field.Type == domain.BoolField {
			field.SetFlag(w.Checked())
			continue
		}
		field.SetText(w.Value())
	}

	return record, nil
}

// Value возвращает значение виджета id.
func Value(f Form, id string) (string, error) {
	w, ok := f.Widget(id)
	if !ok {
		return "", e.Wrap(id, e.ErrMissingWidget)
	}
	return w.Value(), nil
}

// Edit применяет к форме значения, введенные пользователем. Для логических полей записи kind
// значение разбирается как bool и выставляет флажок, остальные виджеты получают строку как есть.
func Edit(f Form, kind domain.Kind, values url.Values) error {
	record, err := settings.Empty(kind)
	if err != nil {
		return err
	}

	flags := make(map[string]bool)
	for _, field := range record.Fields() {
		if field.Type == domain.BoolField {
			flags[field.Name] = true
		}
	}

	for key := range values {
		if _, ok := f.Widget(key); !ok {
			return e.Wrap(key, e.ErrMissingWidget)
		}
		if flags[key] {
			if _, err := strconv.ParseBool(values.Get(key)); err != nil {
				return e.Wrap(key, e.ErrStatusBadRequest)
			}
		}
	}

	for key := range values {
		w, _ := f.Widget(key)
		v := values.Get(key)
		if flags[key] {
			checked, _ := strconv.ParseBool(v)
			w.SetChecked(checked)
			continue
		}
		w.SetValue(v)
	}

	return nil
}
