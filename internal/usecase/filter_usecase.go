package usecase

import (
	"context"
	"sync"

	"github.com/hsm-textlab/workbench/internal/domain"
	"github.com/hsm-textlab/workbench/internal/form"
	"github.com/hsm-textlab/workbench/internal/settings"
	"github.com/hsm-textlab/workbench/pkg/e"
	"github.com/hsm-textlab/workbench/pkg/logger"
)

const filterNameWidget = "filter_name"

// FilterUseCase реализует действия страницы фильтров над ее формой.
type FilterUseCase struct {
	gateway FilterGateway
	logger  logger.Logger
	panel   *form.Panel

	mu      sync.Mutex
	preview *domain.FilterPreview
}

func NewFilterUC(gateway FilterGateway, logger logger.Logger) *FilterUseCase {
	return &FilterUseCase{
		gateway: gateway,
		logger:  logger,
		panel:   form.NewFilterPanel(),
	}
}

// Form возвращает форму страницы.
func (f *FilterUseCase) Form() *form.Panel {
	return f.panel
}

// Fields возвращает текущее содержимое формы как запись фильтра.
func (f *FilterUseCase) Fields() (map[string]any, error) {
	record, err := form.CollectFromForm(f.panel, domain.KindFilter)
	if err != nil {
		return nil, e.Wrap("FilterUseCase.Fields", err)
	}
	return settings.Map(record), nil
}

// New очищает форму: все поля получают значения по умолчанию.
func (f *FilterUseCase) New() error {
	const op = "FilterUseCase.New"

	if err := form.LoadIntoForm(f.panel, domain.NewFilterSettings()); err != nil {
		f.logger.Errorf(err, "%s", op)
		return e.Wrap(op, err)
	}
	return nil
}

// LoadCurrent загружает фильтр, выбранный в поле filter_name, и заполняет им форму.
// При ошибке форма не меняется.
func (f *FilterUseCase) LoadCurrent(ctx context.Context, n Notifier) error {
	const op = "FilterUseCase.LoadCurrent"

	name, err := f.currentName()
	if err != nil {
		return report(n, f.logger, e.Wrap(op, err))
	}

	record, err := f.gateway.LoadFilter(ctx, name)
	if err != nil {
		return report(n, f.logger, err)
	}

	if err := form.LoadIntoForm(f.panel, record); err != nil {
		return report(n, f.logger, e.Wrap(op, err))
	}

	f.logger.Debugf("filter %q loaded into form", name)
	return nil
}

// Save отправляет форму целиком под именем из filter_name.
func (f *FilterUseCase) Save(ctx context.Context, n Notifier) error {
	const op = "FilterUseCase.Save"

	record, err := form.CollectFromForm(f.panel, domain.KindFilter)
	if err != nil {
		return report(n, f.logger, e.Wrap(op, err))
	}

	if err := f.gateway.SaveFilter(ctx, record.(*domain.FilterSettings)); err != nil {
		return report(n, f.logger, err)
	}

	n.Alert(MsgSaved)
	return nil
}

// RemoveCurrent удаляет фильтр, выбранный в filter_name. Форма не очищается.
func (f *FilterUseCase) RemoveCurrent(ctx context.Context, n Notifier) error {
	const op = "FilterUseCase.RemoveCurrent"

	name, err := f.currentName()
	if err != nil {
		return report(n, f.logger, e.Wrap(op, err))
	}

	if err := f.gateway.RemoveFilter(ctx, name); err != nil {
		return report(n, f.logger, err)
	}

	n.Alert(MsgRemoved)
	return nil
}

// PreviewSample запрашивает предпросмотр и запоминает фрагменты для панелей страницы.
func (f *FilterUseCase) PreviewSample(ctx context.Context, n Notifier) (*domain.FilterPreview, error) {
	const op = "FilterUseCase.PreviewSample"

	name, err := f.currentName()
	if err != nil {
		return nil, report(n, f.logger, e.Wrap(op, err))
	}

	preview, err := f.gateway.PreviewSample(ctx, name)
	if err != nil {
		return nil, report(n, f.logger, err)
	}

	f.mu.Lock()
	f.preview = preview
	f.mu.Unlock()

	return preview, nil
}

// Preview - последний полученный предпросмотр или nil.
func (f *FilterUseCase) Preview() *domain.FilterPreview {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.preview
}

// Apply запускает фильтр над всеми данными. Об успехе пользователь не уведомляется.
func (f *FilterUseCase) Apply(ctx context.Context, n Notifier) error {
	const op = "FilterUseCase.Apply"

	name, err := f.currentName()
	if err != nil {
		return report(n, f.logger, e.Wrap(op, err))
	}

	if err := f.gateway.ApplyFilter(ctx, name); err != nil {
		return report(n, f.logger, err)
	}

	f.logger.Infof("filter %q applied", name)
	return nil
}

// Graph возвращает граф зависимостей фильтров.
func (f *FilterUseCase) Graph(ctx context.Context, n Notifier) (*domain.Graph, error) {
	graph, err := f.gateway.FilterGraph(ctx)
	if err != nil {
		return nil, report(n, f.logger, err)
	}
	return graph, nil
}

// Available возвращает список сохраненных фильтров.
func (f *FilterUseCase) Available(ctx context.Context) ([]domain.NamedItem, error) {
	return f.gateway.AvailableFilters(ctx)
}

func (f *FilterUseCase) currentName() (string, error) {
	return form.Value(f.panel, filterNameWidget)
}
