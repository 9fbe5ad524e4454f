package http

import (
	"bytes"
	"net/http"

	"github.com/hsm-textlab/workbench/internal/domain"
	"github.com/hsm-textlab/workbench/internal/form"
	"github.com/hsm-textlab/workbench/internal/plot"
	"github.com/hsm-textlab/workbench/internal/usecase"
	"github.com/hsm-textlab/workbench/pkg/logger"
)

const clustererNameField = "clusterer_name"

type ClustererHandler struct {
	clustererUsecase usecase.ClustererUC
	logger           logger.Logger
}

func NewClustererHandler(clustererUsecase usecase.ClustererUC, logger logger.Logger) *ClustererHandler {
	return &ClustererHandler{clustererUsecase: clustererUsecase, logger: logger}
}

func (h *ClustererHandler) fail(w http.ResponseWriter, d *dialog, err error) {
	code, _ := ToHTTPResponse(err)
	h.logger.Warnf("%d clusterer: %s", code, err.Error())
	WriteError(w, d.Alerts(), err)
}

// pointsResponse - точки графика и документ боковой панели.
type pointsResponse struct {
	Points  []plot.Marker `json:"points"`
	Hovered string        `json:"hovered,omitempty"`
	Changed *bool         `json:"changed,omitempty"`
}

func (h *ClustererHandler) points(changed *bool) *pointsResponse {
	return &pointsResponse{
		Points:  h.clustererUsecase.Markers(),
		Hovered: h.clustererUsecase.Hovered(),
		Changed: changed,
	}
}

// listClusterers
//
//	@Summary	Список кластеризаторов
//	@Tags		clusterers
//	@Produce	json
//	@Param		name	query		string	false	"Шаблон имени, * - любая подстрока"
//	@Success	200		{object}	ConsoleResponse
//	@Router		/clusterers [get]
func (h *ClustererHandler) listClusterers(w http.ResponseWriter, r *http.Request) {
	d := &dialog{}
	items, err := h.clustererUsecase.List(r.Context(), r.URL.Query().Get("name"))
	if err != nil {
		h.fail(w, d, err)
		return
	}
	WriteSuccess(w, http.StatusOK, nil, items)
}

func (h *ClustererHandler) getForm(w http.ResponseWriter, r *http.Request) {
	h.writeFields(w, &dialog{})
}

// editForm
//
//	@Summary	Изменить поля формы кластеризатора
//	@Tags		clusterers
//	@Accept		x-www-form-urlencoded
//	@Produce	json
//	@Success	200	{object}	ConsoleResponse
//	@Failure	400	{object}	ConsoleResponse
//	@Router		/clusterer/form [put]
func (h *ClustererHandler) editForm(w http.ResponseWriter, r *http.Request) {
	d, ok := beginAction(w, r)
	if !ok {
		return
	}
	if err := form.Edit(h.clustererUsecase.Form(), domain.KindClusterer, r.PostForm); err != nil {
		h.fail(w, d, err)
		return
	}
	h.writeFields(w, d)
}

// loadClusterer
//
//	@Summary	Загрузить кластеризатор в форму
//	@Tags		clusterers
//	@Produce	json
//	@Param		name	query		string	false	"Имя кластеризатора; без него берется clusterer_name формы"
//	@Success	200		{object}	ConsoleResponse
//	@Failure	422		{object}	ConsoleResponse	"FAIL бэкенда"
//	@Router		/clusterer/load [post]
func (h *ClustererHandler) loadClusterer(w http.ResponseWriter, r *http.Request) {
	d, ok := beginAction(w, r)
	if !ok {
		return
	}
	load := func() error { return h.clustererUsecase.LoadCurrent(r.Context(), d) }
	if err := loadByName(r, h.clustererUsecase.Form(), domain.KindClusterer, clustererNameField, load); err != nil {
		h.fail(w, d, err)
		return
	}
	h.writeFields(w, d)
}

func (h *ClustererHandler) saveClusterer(w http.ResponseWriter, r *http.Request) {
	d := &dialog{}
	if err := h.clustererUsecase.Save(r.Context(), d); err != nil {
		h.fail(w, d, err)
		return
	}
	WriteSuccess(w, http.StatusOK, d.Alerts(), nil)
}

// updatePreview
//
//	@Summary		Пересчитать график кластеризатора
//	@Description	Размер выборки и метод берутся из preview_sample_size и dimensionality_reduction формы
//	@Tags			clusterers
//	@Produce		json
//	@Success		200	{object}	ConsoleResponse
//	@Failure		400	{object}	ConsoleResponse	"Неверный размер выборки"
//	@Router			/clusterer/update [post]
func (h *ClustererHandler) updatePreview(w http.ResponseWriter, r *http.Request) {
	d := &dialog{}
	if err := h.clustererUsecase.UpdatePreview(r.Context(), d); err != nil {
		h.fail(w, d, err)
		return
	}
	WriteSuccess(w, http.StatusOK, d.Alerts(), h.points(nil))
}

// plotSVG
//
//	@Summary	Текущий график в SVG
//	@Tags		clusterers
//	@Produce	image/svg+xml
//	@Success	200
//	@Success	204	"Графика нет"
//	@Router		/clusterer/plot.svg [get]
func (h *ClustererHandler) plotSVG(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.clustererUsecase.RenderPlot(&buf); err != nil {
		h.fail(w, &dialog{}, err)
		return
	}
	if buf.Len() == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (h *ClustererHandler) listPoints(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, http.StatusOK, nil, h.points(nil))
}

// labelPoint
//
//	@Summary		Переименовать метку точки
//	@Description	Отсутствие значения label равносильно отмене диалога: метка не меняется
//	@Tags			clusterers
//	@Accept			x-www-form-urlencoded
//	@Produce		json
//	@Param			idx		path		int		true	"Индекс точки"
//	@Param			label	formData	string	false	"Новая метка"
//	@Success		200		{object}	ConsoleResponse
//	@Failure		404		{object}	ConsoleResponse	"Нет такой точки"
//	@Router			/clusterer/points/{idx}/label [post]
func (h *ClustererHandler) labelPoint(w http.ResponseWriter, r *http.Request) {
	d, ok := beginAction(w, r)
	if !ok {
		return
	}
	idx, err := pointIndex(r)
	if err != nil {
		h.fail(w, d, err)
		return
	}

	changed, err := h.clustererUsecase.ClickPoint(r.Context(), idx, d)
	if err != nil {
		h.fail(w, d, err)
		return
	}
	WriteSuccess(w, http.StatusOK, d.Alerts(), h.points(&changed))
}

func (h *ClustererHandler) hoverPoint(w http.ResponseWriter, r *http.Request) {
	d := &dialog{}
	idx, err := pointIndex(r)
	if err != nil {
		h.fail(w, d, err)
		return
	}

	doc, err := h.clustererUsecase.HoverPoint(idx)
	if err != nil {
		h.fail(w, d, err)
		return
	}
	WriteSuccess(w, http.StatusOK, nil, map[string]string{"document": doc})
}

func (h *ClustererHandler) unhover(w http.ResponseWriter, r *http.Request) {
	h.clustererUsecase.Unhover()
	w.WriteHeader(http.StatusNoContent)
}

func (h *ClustererHandler) showUnknown(w http.ResponseWriter, r *http.Request) {
	h.clustererUsecase.ShowUnknown(r.Context())
	WriteSuccess(w, http.StatusOK, nil, h.points(nil))
}

func (h *ClustererHandler) hideUnknown(w http.ResponseWriter, r *http.Request) {
	h.clustererUsecase.HideUnknown(r.Context())
	WriteSuccess(w, http.StatusOK, nil, h.points(nil))
}

func (h *ClustererHandler) saveLabels(w http.ResponseWriter, r *http.Request) {
	d := &dialog{}
	if err := h.clustererUsecase.SaveLabels(r.Context(), d); err != nil {
		h.fail(w, d, err)
		return
	}
	WriteSuccess(w, http.StatusOK, d.Alerts(), nil)
}

// clearLabels
//
//	@Summary		Удалить все метки кластеризатора
//	@Description	Без confirm=true запрос в бэкенд не отправляется
//	@Tags			clusterers
//	@Produce		json
//	@Param			confirm	query		bool	false	"Подтверждение"
//	@Success		200		{object}	ConsoleResponse
//	@Router			/clusterer/labels/clear [post]
func (h *ClustererHandler) clearLabels(w http.ResponseWriter, r *http.Request) {
	d, ok := beginAction(w, r)
	if !ok {
		return
	}

	cleared, err := h.clustererUsecase.ClearLabels(r.Context(), d)
	if err != nil {
		h.fail(w, d, err)
		return
	}
	WriteSuccess(w, http.StatusOK, d.Alerts(), map[string]bool{"cleared": cleared})
}

func (h *ClustererHandler) labelHistory(w http.ResponseWriter, r *http.Request) {
	d := &dialog{}
	history, err := h.clustererUsecase.LabelHistory(r.Context())
	if err != nil {
		h.fail(w, d, err)
		return
	}
	WriteSuccess(w, http.StatusOK, nil, history)
}

// examples перенаправляет на страницу примеров бэкенда.
func (h *ClustererHandler) examples(w http.ResponseWriter, r *http.Request) {
	target, err := h.clustererUsecase.ExamplesURL()
	if err != nil {
		h.fail(w, &dialog{}, err)
		return
	}
	http.Redirect(w, r, target, http.StatusFound)
}

// viewExamples отдает страницу примеров через консоль.
func (h *ClustererHandler) viewExamples(w http.ResponseWriter, r *http.Request) {
	page, err := h.clustererUsecase.ViewExamples(r.Context())
	if err != nil {
		h.fail(w, &dialog{}, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(page))
}

// exportPlot
//
//	@Summary	Сохранить график в объектное хранилище
//	@Tags		clusterers
//	@Produce	json
//	@Success	201	{object}	ConsoleResponse
//	@Failure	409	{object}	ConsoleResponse	"Графика нет"
//	@Failure	503	{object}	ConsoleResponse	"Экспорт не настроен"
//	@Router		/clusterer/plot/export [post]
func (h *ClustererHandler) exportPlot(w http.ResponseWriter, r *http.Request) {
	d := &dialog{}
	res, err := h.clustererUsecase.ExportPlot(r.Context())
	if err != nil {
		h.fail(w, d, err)
		return
	}
	WriteSuccess(w, http.StatusCreated, nil, res)
}

func (h *ClustererHandler) discardPlot(w http.ResponseWriter, r *http.Request) {
	if err := h.clustererUsecase.DiscardPlot(r.Context()); err != nil {
		h.fail(w, &dialog{}, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ClustererHandler) writeFields(w http.ResponseWriter, d *dialog) {
	fields, err := h.clustererUsecase.Fields()
	if err != nil {
		h.fail(w, d, err)
		return
	}
	WriteSuccess(w, http.StatusOK, d.Alerts(), fields)
}
