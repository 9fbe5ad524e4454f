package usecase

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hsm-textlab/workbench/internal/domain"
	"github.com/hsm-textlab/workbench/internal/form"
	"github.com/hsm-textlab/workbench/internal/labels"
	"github.com/hsm-textlab/workbench/internal/plot"
	"github.com/hsm-textlab/workbench/internal/settings"
	"github.com/hsm-textlab/workbench/pkg/e"
	"github.com/hsm-textlab/workbench/pkg/logger"
)

const (
	clustererNameWidget = "clusterer_name"

	historyLimit = 20
	cacheTimeout = 500 * time.Millisecond
)

// ClustererUseCase реализует действия страницы кластеризатора: форму, график и разметку.
// Состояние графика защищено мьютексом, который не удерживается во время вызовов бэкенда.
type ClustererUseCase struct {
	gateway   ClustererGateway
	cacheRepo PlotCacheRepository
	journal   LabelJournalRepository
	exporter  PlotExporter
	events    LabelEventPublisher
	logger    logger.Logger
	panel     *form.Panel

	defaultSampleSize int
	defaultMethod     string

	mu      sync.Mutex
	state   *plot.State
	session PlotSession
}

func NewClustererUC(
	gateway ClustererGateway,
	cacheRepo PlotCacheRepository,
	journal LabelJournalRepository,
	exporter PlotExporter,
	events LabelEventPublisher,
	logger logger.Logger,
	defaultSampleSize int,
	defaultMethod string,
) *ClustererUseCase {
	return &ClustererUseCase{
		gateway:           gateway,
		cacheRepo:         cacheRepo,
		journal:           journal,
		exporter:          exporter,
		events:            events,
		logger:            logger,
		panel:             form.NewClustererPanel(),
		defaultSampleSize: defaultSampleSize,
		defaultMethod:     defaultMethod,
	}
}

// Form возвращает форму страницы.
func (c *ClustererUseCase) Form() *form.Panel {
	return c.panel
}

// Fields возвращает поля записи кластеризатора и параметры предпросмотра.
func (c *ClustererUseCase) Fields() (map[string]any, error) {
	const op = "ClustererUseCase.Fields"

	record, err := form.CollectFromForm(c.panel, domain.KindClusterer)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	fields := settings.Map(record)
	for _, id := range []string{form.PreviewSampleSize, form.DimensionalityReduction} {
		v, err := form.Value(c.panel, id)
		if err != nil {
			return nil, e.Wrap(op, err)
		}
		fields[id] = v
	}
	return fields, nil
}

// LoadCurrent загружает кластеризатор из clusterer_name в форму.
// Если для него есть сохраненный график, он восстанавливается.
func (c *ClustererUseCase) LoadCurrent(ctx context.Context, n Notifier) error {
	const op = "ClustererUseCase.LoadCurrent"

	name, err := c.currentName()
	if err != nil {
		return report(n, c.logger, e.Wrap(op, err))
	}

	record, err := c.gateway.LoadClusterer(ctx, name)
	if err != nil {
		return report(n, c.logger, err)
	}

	if err := form.LoadIntoForm(c.panel, record); err != nil {
		return report(n, c.logger, e.Wrap(op, err))
	}

	c.restorePlot(ctx, name)
	return nil
}

// restorePlot подставляет график из кэша, если текущий график построен для другого кластеризатора.
// Если в кэше ничего нет, чужой график сбрасывается, чтобы его метки не ушли под новым именем.
func (c *ClustererUseCase) restorePlot(ctx context.Context, name string) {
	c.mu.Lock()
	current := c.session.Clusterer
	c.mu.Unlock()
	if current == name {
		return
	}

	session, err := c.cacheRepo.GetPlot(ctx, name)
	if err != nil {
		if !errors.Is(err, e.ErrPlotNotCached) {
			c.logger.Warnf("failed to restore plot for %q: %v", name, err)
		}
		c.mu.Lock()
		if c.session.Clusterer == current {
			c.state = nil
			c.session = PlotSession{}
		}
		c.mu.Unlock()
		return
	}

	state := plot.NewState(session.Points)
	if session.HideUnknown {
		state.HideUnknown()
	}

	c.mu.Lock()
	c.state = state
	c.session = *session
	c.mu.Unlock()

	c.logger.Debugf("plot for %q restored from cache (%d points)", name, len(session.Points))
}

// Save отправляет запись кластеризатора целиком.
func (c *ClustererUseCase) Save(ctx context.Context, n Notifier) error {
	const op = "ClustererUseCase.Save"

	record, err := form.CollectFromForm(c.panel, domain.KindClusterer)
	if err != nil {
		return report(n, c.logger, e.Wrap(op, err))
	}

	if err := c.gateway.SaveClusterer(ctx, record.(*domain.ClustererSettings)); err != nil {
		return report(n, c.logger, err)
	}

	n.Alert(MsgSaved)
	return nil
}

// UpdatePreview пересчитывает проекцию выборки и заменяет график целиком.
// Размер выборки берется из preview_sample_size, метод - из dimensionality_reduction.
func (c *ClustererUseCase) UpdatePreview(ctx context.Context, n Notifier) error {
	const op = "ClustererUseCase.UpdatePreview"

	name, err := c.currentName()
	if err != nil {
		return report(n, c.logger, e.Wrap(op, err))
	}
	size, err := c.sampleSize()
	if err != nil {
		return report(n, c.logger, e.Wrap(op, err))
	}
	method, err := c.method()
	if err != nil {
		return report(n, c.logger, e.Wrap(op, err))
	}

	points, err := c.gateway.UpdateClusterPreview(ctx, name, size, method)
	if err != nil {
		return report(n, c.logger, err)
	}

	c.mu.Lock()
	c.state = plot.NewState(points)
	c.session = PlotSession{
		Clusterer:  name,
		SampleSize: size,
		Method:     method,
	}
	session := c.snapshotLocked()
	c.mu.Unlock()

	c.cachePlot(ctx, session)
	n.Alert(MsgUpdated)
	return nil
}

// ClickPoint спрашивает новую метку для точки idx. Возвращает true, если метка изменена.
func (c *ClustererUseCase) ClickPoint(ctx context.Context, idx int, p Prompter) (bool, error) {
	const op = "ClustererUseCase.ClickPoint"

	c.mu.Lock()
	if c.state == nil {
		c.mu.Unlock()
		return false, e.Wrap(op, e.ErrNoPlot)
	}
	changed, err := c.state.Click(idx, p)
	session := c.snapshotLocked()
	c.mu.Unlock()

	if err != nil {
		return false, e.Wrap(op, err)
	}
	if changed {
		c.cachePlot(ctx, session)
	}
	return changed, nil
}

// Relabel назначает метку точке idx без диалога.
func (c *ClustererUseCase) Relabel(ctx context.Context, idx int, label string) error {
	const op = "ClustererUseCase.Relabel"

	c.mu.Lock()
	if c.state == nil {
		c.mu.Unlock()
		return e.Wrap(op, e.ErrNoPlot)
	}
	err := c.state.Relabel(idx, label)
	session := c.snapshotLocked()
	c.mu.Unlock()

	if err != nil {
		return e.Wrap(op, err)
	}
	c.cachePlot(ctx, session)
	return nil
}

// HoverPoint возвращает документ точки для боковой панели.
func (c *ClustererUseCase) HoverPoint(idx int) (string, error) {
	const op = "ClustererUseCase.HoverPoint"

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == nil {
		return "", e.Wrap(op, e.ErrNoPlot)
	}

	doc, err := c.state.Hover(idx)
	if err != nil {
		return "", e.Wrap(op, err)
	}
	return doc, nil
}

// Unhover очищает боковую панель.
func (c *ClustererUseCase) Unhover() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != nil {
		c.state.Unhover()
	}
}

// Hovered - документ в боковой панели.
func (c *ClustererUseCase) Hovered() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == nil {
		return ""
	}
	return c.state.Hovered()
}

// ShowUnknown показывает все точки.
func (c *ClustererUseCase) ShowUnknown(ctx context.Context) {
	c.setUnknownHidden(ctx, false)
}

// HideUnknown скрывает неразмеченные точки.
func (c *ClustererUseCase) HideUnknown(ctx context.Context) {
	c.setUnknownHidden(ctx, true)
}

func (c *ClustererUseCase) setUnknownHidden(ctx context.Context, hidden bool) {
	c.mu.Lock()
	if c.state == nil {
		c.mu.Unlock()
		return
	}
	if hidden {
		c.state.HideUnknown()
	} else {
		c.state.ShowUnknown()
	}
	session := c.snapshotLocked()
	c.mu.Unlock()

	c.cachePlot(ctx, session)
}

// Markers возвращает представление точек графика; пустой список, если графика нет.
func (c *ClustererUseCase) Markers() []plot.Marker {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == nil {
		return []plot.Marker{}
	}
	return c.state.Markers()
}

// SaveLabels отправляет метки всех размеченных точек. Метка "unknown" не отправляется.
func (c *ClustererUseCase) SaveLabels(ctx context.Context, n Notifier) error {
	const op = "ClustererUseCase.SaveLabels"

	name, err := c.currentName()
	if err != nil {
		return report(n, c.logger, e.Wrap(op, err))
	}

	c.mu.Lock()
	var points []domain.PlotPoint
	if c.state != nil {
		points = c.state.Points()
	}
	c.mu.Unlock()

	labelMap := labels.ToLabelMap(points)
	encoded, err := labels.Encode(labelMap)
	if err != nil {
		return report(n, c.logger, e.Wrap(op, err))
	}

	if err := c.gateway.SaveLabels(ctx, name, encoded); err != nil {
		return report(n, c.logger, err)
	}

	n.Alert(MsgSaved)
	c.journalAndPublish(ctx, EventLabelsSaved, name, labelMap)
	return nil
}

// ClearLabels после подтверждения удаляет все метки кластеризатора в бэкенде.
// Возвращает false, если пользователь отказался; запрос в этом случае не отправляется.
func (c *ClustererUseCase) ClearLabels(ctx context.Context, d ConfirmNotifier) (bool, error) {
	const op = "ClustererUseCase.ClearLabels"

	name, err := c.currentName()
	if err != nil {
		return false, report(d, c.logger, e.Wrap(op, err))
	}

	if !d.Confirm(MsgConfirmClear) {
		return false, nil
	}

	if err := c.gateway.ClearLabels(ctx, name); err != nil {
		return false, report(d, c.logger, err)
	}

	d.Alert(MsgCleared)
	c.journalAndPublish(ctx, EventLabelsCleared, name, nil)
	return true, nil
}

// LabelHistory возвращает последние записи журнала разметки текущего кластеризатора.
func (c *ClustererUseCase) LabelHistory(ctx context.Context) ([]LabelSubmission, error) {
	const op = "ClustererUseCase.LabelHistory"

	name, err := c.currentName()
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	history, err := c.journal.History(ctx, name, historyLimit)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	return history, nil
}

// ExamplesURL - адрес страницы примеров для текущего кластеризатора и размера выборки.
func (c *ClustererUseCase) ExamplesURL() (string, error) {
	const op = "ClustererUseCase.ExamplesURL"

	name, size, err := c.examplesArgs()
	if err != nil {
		return "", e.Wrap(op, err)
	}
	return c.gateway.ExamplesURL(name, size), nil
}

// ViewExamples загружает HTML страницы примеров.
func (c *ClustererUseCase) ViewExamples(ctx context.Context) (string, error) {
	const op = "ClustererUseCase.ViewExamples"

	name, size, err := c.examplesArgs()
	if err != nil {
		return "", e.Wrap(op, err)
	}
	return c.gateway.ViewExamples(ctx, name, size)
}

func (c *ClustererUseCase) examplesArgs() (string, int, error) {
	name, err := c.currentName()
	if err != nil {
		return "", 0, err
	}
	size, err := c.sampleSize()
	if err != nil {
		return "", 0, err
	}
	return name, size, nil
}

// RenderPlot рисует текущий график в SVG. Без графика ничего не пишет.
func (c *ClustererUseCase) RenderPlot(w io.Writer) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == nil {
		return nil
	}
	return c.state.Render(w)
}

// DiscardPlot сбрасывает график текущего кластеризатора вместе с записью в кэше.
func (c *ClustererUseCase) DiscardPlot(ctx context.Context) error {
	const op = "ClustererUseCase.DiscardPlot"

	name, err := c.currentName()
	if err != nil {
		return e.Wrap(op, err)
	}

	c.mu.Lock()
	if c.session.Clusterer == name {
		c.state = nil
		c.session = PlotSession{}
	}
	c.mu.Unlock()

	if err := c.cacheRepo.DeletePlot(ctx, name); err != nil {
		return e.Wrap(op, err)
	}
	return nil
}

// ExportPlot сохраняет отрисованный график во внешнее хранилище.
func (c *ClustererUseCase) ExportPlot(ctx context.Context) (*ExportPlotRes, error) {
	const op = "ClustererUseCase.ExportPlot"

	var buf bytes.Buffer
	c.mu.Lock()
	if c.state == nil || c.state.Len() == 0 {
		c.mu.Unlock()
		return nil, e.Wrap(op, e.ErrNoPlot)
	}
	err := c.state.Render(&buf)
	name := c.session.Clusterer
	c.mu.Unlock()
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	res, err := c.exporter.Export(ctx, &ExportPlotReq{Clusterer: name, SVG: buf.Bytes()})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	c.logger.Infof("plot for %q exported to %s/%s", name, res.Bucket, res.Key)
	return res, nil
}

// List возвращает кластеризаторы, имя которых подходит под шаблон.
func (c *ClustererUseCase) List(ctx context.Context, pattern string) ([]domain.NamedItem, error) {
	return c.gateway.ListClusterers(ctx, pattern)
}

func (c *ClustererUseCase) currentName() (string, error) {
	return form.Value(c.panel, clustererNameWidget)
}

// sampleSize читает preview_sample_size; пустое поле означает значение по умолчанию.
func (c *ClustererUseCase) sampleSize() (int, error) {
	raw, err := form.Value(c.panel, form.PreviewSampleSize)
	if err != nil {
		return 0, err
	}

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return c.defaultSampleSize, nil
	}

	size, err := strconv.Atoi(raw)
	if err != nil || size <= 0 {
		return 0, e.Wrap(raw, e.ErrInvalidSampleSize)
	}
	return size, nil
}

func (c *ClustererUseCase) method() (string, error) {
	raw, err := form.Value(c.panel, form.DimensionalityReduction)
	if err != nil {
		return "", err
	}

	if raw = strings.TrimSpace(raw); raw == "" {
		return c.defaultMethod, nil
	}
	return raw, nil
}

// snapshotLocked копирует текущий график для кэша. Вызывается под c.mu.
func (c *ClustererUseCase) snapshotLocked() *PlotSession {
	if c.state == nil || c.session.Clusterer == "" {
		return nil
	}

	session := c.session
	session.Points = c.state.Points()
	session.HideUnknown = c.state.UnknownHidden()
	session.UpdatedAt = time.Now().UTC()
	return &session
}

// cachePlot сохраняет снимок графика. Ошибки кэша только логируются.
func (c *ClustererUseCase) cachePlot(ctx context.Context, session *PlotSession) {
	if session == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cacheTimeout)
	defer cancel()

	if err := c.cacheRepo.SavePlot(ctx, session); err != nil {
		c.logger.Warnf("Failed to cache plot for %q: %v", session.Clusterer, err)
	}
}

// journalAndPublish записывает отправку в журнал и публикует событие. Ошибки только логируются.
func (c *ClustererUseCase) journalAndPublish(ctx context.Context, eventType, name string, labelMap domain.LabelMap) {
	now := time.Now().UTC()

	submission := &LabelSubmission{
		ID:        uuid.NewString(),
		Clusterer: name,
		Labels:    labelMap,
		Cleared:   eventType == EventLabelsCleared,
		CreatedAt: now,
	}
	if err := c.journal.Record(ctx, submission); err != nil {
		c.logger.Warnf("Failed to journal labels for %q: %v", name, err)
	}

	event := &LabelEvent{
		EventID:    uuid.NewString(),
		Type:       eventType,
		Clusterer:  name,
		Total:      len(labelMap),
		Counts:     labels.Counts(labelMap),
		OccurredAt: now,
	}
	if err := c.events.PublishLabelEvent(ctx, event); err != nil {
		c.logger.Warnf("Failed to publish %s for %q: %v", eventType, name, err)
	}
}
