package http

import (
	"net/http"

	"github.com/hsm-textlab/workbench/internal/domain"
	"github.com/hsm-textlab/workbench/internal/form"
	"github.com/hsm-textlab/workbench/internal/usecase"
	"github.com/hsm-textlab/workbench/pkg/logger"
)

const filterNameField = "filter_name"

type FilterHandler struct {
	filterUsecase usecase.FilterUC
	logger        logger.Logger
}

func NewFilterHandler(filterUsecase usecase.FilterUC, logger logger.Logger) *FilterHandler {
	return &FilterHandler{filterUsecase: filterUsecase, logger: logger}
}

func (h *FilterHandler) fail(w http.ResponseWriter, d *dialog, err error) {
	code, _ := ToHTTPResponse(err)
	h.logger.Warnf("%d filter: %s", code, err.Error())
	WriteError(w, d.Alerts(), err)
}

// listFilters
//
//	@Summary	Список сохраненных фильтров
//	@Tags		filters
//	@Produce	json
//	@Success	200	{object}	ConsoleResponse
//	@Failure	502	{object}	ConsoleResponse	"Бэкенд недоступен"
//	@Router		/filters [get]
func (h *FilterHandler) listFilters(w http.ResponseWriter, r *http.Request) {
	d := &dialog{}
	items, err := h.filterUsecase.Available(r.Context())
	if err != nil {
		h.fail(w, d, err)
		return
	}
	WriteSuccess(w, http.StatusOK, nil, items)
}

// newFilter
//
//	@Summary	Очистить форму фильтра
//	@Tags		filters
//	@Produce	json
//	@Success	200	{object}	ConsoleResponse
//	@Router		/filter/new [post]
func (h *FilterHandler) newFilter(w http.ResponseWriter, r *http.Request) {
	d := &dialog{}
	if err := h.filterUsecase.New(); err != nil {
		h.fail(w, d, err)
		return
	}
	h.writeFields(w, d)
}

// getForm
//
//	@Summary	Поля формы фильтра
//	@Tags		filters
//	@Produce	json
//	@Success	200	{object}	ConsoleResponse
//	@Router		/filter/form [get]
func (h *FilterHandler) getForm(w http.ResponseWriter, r *http.Request) {
	h.writeFields(w, &dialog{})
}

// editForm
//
//	@Summary	Изменить поля формы фильтра
//	@Tags		filters
//	@Accept		x-www-form-urlencoded
//	@Produce	json
//	@Success	200	{object}	ConsoleResponse
//	@Failure	400	{object}	ConsoleResponse	"Неизвестное поле или неверный флажок"
//	@Router		/filter/form [put]
func (h *FilterHandler) editForm(w http.ResponseWriter, r *http.Request) {
	d, ok := beginAction(w, r)
	if !ok {
		return
	}
	if err := form.Edit(h.filterUsecase.Form(), domain.KindFilter, r.PostForm); err != nil {
		h.fail(w, d, err)
		return
	}
	h.writeFields(w, d)
}

// loadFilter
//
//	@Summary	Загрузить фильтр в форму
//	@Tags		filters
//	@Produce	json
//	@Param		name	query		string	false	"Имя фильтра; без него берется filter_name формы"
//	@Success	200		{object}	ConsoleResponse
//	@Failure	422		{object}	ConsoleResponse	"FAIL бэкенда"
//	@Router		/filter/load [post]
func (h *FilterHandler) loadFilter(w http.ResponseWriter, r *http.Request) {
	d, ok := beginAction(w, r)
	if !ok {
		return
	}
	load := func() error { return h.filterUsecase.LoadCurrent(r.Context(), d) }
	if err := loadByName(r, h.filterUsecase.Form(), domain.KindFilter, filterNameField, load); err != nil {
		h.fail(w, d, err)
		return
	}
	h.writeFields(w, d)
}

func (h *FilterHandler) saveFilter(w http.ResponseWriter, r *http.Request) {
	d := &dialog{}
	if err := h.filterUsecase.Save(r.Context(), d); err != nil {
		h.fail(w, d, err)
		return
	}
	WriteSuccess(w, http.StatusOK, d.Alerts(), nil)
}

func (h *FilterHandler) removeFilter(w http.ResponseWriter, r *http.Request) {
	d := &dialog{}
	if err := h.filterUsecase.RemoveCurrent(r.Context(), d); err != nil {
		h.fail(w, d, err)
		return
	}
	WriteSuccess(w, http.StatusOK, d.Alerts(), nil)
}

// previewFilter
//
//	@Summary	Предпросмотр фильтра на выборке
//	@Tags		filters
//	@Produce	json
//	@Success	200	{object}	ConsoleResponse
//	@Router		/filter/preview [post]
func (h *FilterHandler) previewFilter(w http.ResponseWriter, r *http.Request) {
	d := &dialog{}
	preview, err := h.filterUsecase.PreviewSample(r.Context(), d)
	if err != nil {
		h.fail(w, d, err)
		return
	}
	WriteSuccess(w, http.StatusOK, d.Alerts(), preview)
}

// lastPreview возвращает последний полученный предпросмотр, не обращаясь к бэкенду.
func (h *FilterHandler) lastPreview(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, http.StatusOK, nil, h.filterUsecase.Preview())
}

func (h *FilterHandler) applyFilter(w http.ResponseWriter, r *http.Request) {
	d := &dialog{}
	if err := h.filterUsecase.Apply(r.Context(), d); err != nil {
		h.fail(w, d, err)
		return
	}
	WriteSuccess(w, http.StatusOK, d.Alerts(), nil)
}

// filterGraph
//
//	@Summary	Граф зависимостей фильтров
//	@Tags		filters
//	@Produce	json
//	@Success	200	{object}	ConsoleResponse
//	@Router		/filter/graph [get]
func (h *FilterHandler) filterGraph(w http.ResponseWriter, r *http.Request) {
	d := &dialog{}
	graph, err := h.filterUsecase.Graph(r.Context(), d)
	if err != nil {
		h.fail(w, d, err)
		return
	}
	WriteSuccess(w, http.StatusOK, d.Alerts(), graph)
}

func (h *FilterHandler) writeFields(w http.ResponseWriter, d *dialog) {
	fields, err := h.filterUsecase.Fields()
	if err != nil {
		h.fail(w, d, err)
		return
	}
	WriteSuccess(w, http.StatusOK, d.Alerts(), fields)
}
