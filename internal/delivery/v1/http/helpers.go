package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/hsm-textlab/workbench/internal/domain"
	"github.com/hsm-textlab/workbench/internal/form"
	"github.com/hsm-textlab/workbench/pkg/e"
)

const maxFormSize = 1 << 20

type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ConsoleResponse - ответ консоли: сообщения, которые страница показала бы в диалогах, и данные действия.
type ConsoleResponse struct {
	Alerts []string       `json:"alerts"`
	Data   any            `json:"data,omitempty"`
	Error  *ErrorResponse `json:"error,omitempty"`
}

func NewErrorResponse(code int, message string) *ErrorResponse {
	return &ErrorResponse{
		Code:    code,
		Message: message,
	}
}

// ToHTTPResponse сопоставляет ошибку действия с кодом ответа.
// Сообщение FAIL бэкенда передается как есть.
func ToHTTPResponse(err error) (int, string) {
	var fail *domain.FailError
	switch {
	case errors.As(err, &fail):
		return http.StatusUnprocessableEntity, fail.Message
	case errors.Is(err, e.ErrStatusBadRequest):
		return http.StatusBadRequest, e.ErrStatusBadRequest.Error()
	case errors.Is(err, e.ErrMissingWidget):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, e.ErrInvalidIndex):
		return http.StatusBadRequest, e.ErrInvalidIndex.Error()
	case errors.Is(err, e.ErrInvalidSampleSize):
		return http.StatusBadRequest, e.ErrInvalidSampleSize.Error()
	case errors.Is(err, e.ErrNameRequired):
		return http.StatusBadRequest, e.ErrNameRequired.Error()
	case errors.Is(err, e.ErrPointNotFound):
		return http.StatusNotFound, e.ErrPointNotFound.Error()
	case errors.Is(err, e.ErrNoPlot):
		return http.StatusConflict, e.ErrNoPlot.Error()
	case errors.Is(err, e.ErrExportDisabled):
		return http.StatusServiceUnavailable, e.ErrExportDisabled.Error()
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "backend timeout"
	case errors.Is(err, e.ErrTransport),
		errors.Is(err, e.ErrBadStatus),
		errors.Is(err, e.ErrMalformedResponse),
		errors.Is(err, e.ErrUnknownResult):
		return http.StatusBadGateway, err.Error()
	default:
		return http.StatusInternalServerError, e.ErrInternalServerError.Error()
	}
}

func WriteError(w http.ResponseWriter, alerts []string, err error) {
	code, msg := ToHTTPResponse(err)
	writeJSON(w, code, &ConsoleResponse{Alerts: nonNil(alerts), Error: NewErrorResponse(code, msg)})
}

func WriteSuccess(w http.ResponseWriter, status int, alerts []string, data any) {
	writeJSON(w, status, &ConsoleResponse{Alerts: nonNil(alerts), Data: data})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func nonNil(alerts []string) []string {
	if alerts == nil {
		return []string{}
	}
	return alerts
}

// beginAction разбирает форму запроса и создает диалог. При ошибке ответ уже записан.
func beginAction(w http.ResponseWriter, r *http.Request) (*dialog, bool) {
	if err := parseForm(w, r); err != nil {
		WriteError(w, nil, err)
		return nil, false
	}
	return newDialog(r), true
}

// dialog отвечает на вопросы действия от имени HTTP-запроса: сообщения копятся для ответа,
// подтверждение берется из confirm=true, метка точки из значения label.
type dialog struct {
	mu      sync.Mutex
	alerts  []string
	confirm bool
	label   string
	labeled bool
}

func newDialog(r *http.Request) *dialog {
	d := &dialog{}
	d.confirm, _ = strconv.ParseBool(r.URL.Query().Get("confirm"))
	if values, ok := r.Form["label"]; ok && len(values) > 0 {
		d.label, d.labeled = values[0], true
	}
	return d
}

func (d *dialog) Alert(message string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.alerts = append(d.alerts, message)
}

func (d *dialog) Confirm(string) bool { return d.confirm }

func (d *dialog) Prompt(string, string) (string, bool) { return d.label, d.labeled }

func (d *dialog) Alerts() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.alerts...)
}

func parseForm(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormSize)
	if err := r.ParseForm(); err != nil {
		return e.Wrap(err.Error(), e.ErrStatusBadRequest)
	}
	return nil
}

func pointIndex(r *http.Request) (int, error) {
	idx, err := strconv.Atoi(chi.URLParam(r, "idx"))
	if err != nil || idx < 0 {
		return 0, e.Wrap(chi.URLParam(r, "idx"), e.ErrInvalidIndex)
	}
	return idx, nil
}

// loadByName выполняет load с именем из ?name= в поле field формы.
// Если загрузка не удалась, в поле возвращается прежнее имя и форма остается как была.
func loadByName(r *http.Request, f *form.Panel, kind domain.Kind, field string, load func() error) error {
	name := r.URL.Query().Get("name")
	if name == "" {
		return load()
	}

	prev, err := form.Value(f, field)
	if err != nil {
		return err
	}
	if err := form.Edit(f, kind, url.Values{field: {name}}); err != nil {
		return err
	}

	if err := load(); err != nil {
		_ = form.Edit(f, kind, url.Values{field: {prev}})
		return err
	}
	return nil
}
