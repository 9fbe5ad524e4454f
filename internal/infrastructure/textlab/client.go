// Package textlab - HTTP-клиент бэкенда textlab.
//
// Бэкенд отвечает конвертом {result, data, error}. Часть ресурсов (списки, граф зависимостей)
// исторически отдает голый JSON, а apply_filter и clear_labels - пустое тело; клиент принимает все три формы.
package textlab

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hsm-textlab/workbench/internal/domain"
	"github.com/hsm-textlab/workbench/pkg/e"
	"github.com/hsm-textlab/workbench/pkg/logger"
	"github.com/jimlawless/whereami"
)

const formContentType = "application/x-www-form-urlencoded"

// Gateway выполняет вызовы бэкенда. Вызовы не координируются между собой.
type Gateway struct {
	baseURL string
	client  *http.Client
	timeout time.Duration
	logger  logger.Logger
}

// NewGateway создает клиент. timeout = 0 означает, что ограничен только контекст вызова.
func NewGateway(baseURL string, client *http.Client, timeout time.Duration, log logger.Logger) *Gateway {
	if client == nil {
		client = &http.Client{}
	}

	return &Gateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		timeout: timeout,
		logger:  log,
	}
}

// BaseURL - адрес бэкенда без завершающего слеша.
func (g *Gateway) BaseURL() string {
	return g.baseURL
}

func (g *Gateway) endpoint(path string) string {
	return g.baseURL + "/" + strings.TrimLeft(path, "/")
}

// fetch выполняет запрос и возвращает тело ответа со статусом 2xx.
// GET передает params в query, POST - form-encoded телом.
func (g *Gateway) fetch(ctx context.Context, op, method, path string, params url.Values) ([]byte, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	target := g.endpoint(path)
	var body io.Reader
	if method == http.MethodGet {
		if len(params) > 0 {
			target += "?" + params.Encode()
		}
	} else {
		body = strings.NewReader(params.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, e.Wrap(fmt.Sprintf("%s: %s", op, whereami.WhereAmI()), err)
	}
	if method != http.MethodGet {
		req.Header.Set("Content-Type", formContentType)
	}

	g.logger.Debugf("%s: %s %s", op, method, path)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, e.Wrap(op, fmt.Errorf("%w: %w", e.ErrTransport, err))
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, e.Wrap(op, fmt.Errorf("%w: read body: %w", e.ErrTransport, err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, e.Wrap(op, fmt.Errorf("%w: %d %s", e.ErrBadStatus, resp.StatusCode, http.StatusText(resp.StatusCode)))
	}

	return data, nil
}

// call выполняет запрос и разбирает конверт. Возвращает data при OK и *domain.FailError при FAIL.
func (g *Gateway) call(ctx context.Context, op, method, path string, params url.Values) (json.RawMessage, error) {
	body, err := g.fetch(ctx, op, method, path, params)
	if err != nil {
		return nil, err
	}

	return unwrap(op, body, false)
}

// callLenient то же, что call, но принимает и голый JSON без конверта.
func (g *Gateway) callLenient(ctx context.Context, op, method, path string, params url.Values) (json.RawMessage, error) {
	body, err := g.fetch(ctx, op, method, path, params)
	if err != nil {
		return nil, err
	}

	return unwrap(op, body, true)
}

// unwrap разбирает тело ответа. Пустое тело считается успешным ответом без данных.
func unwrap(op string, body []byte, allowRaw bool) (json.RawMessage, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, nil
	}

	if allowRaw && !isEnvelope(body) {
		if !json.Valid(body) {
			return nil, e.Wrap(op, e.ErrMalformedResponse)
		}
		return json.RawMessage(body), nil
	}

	var env domain.Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, e.Wrap(op, fmt.Errorf("%w: %w", e.ErrMalformedResponse, err))
	}

	switch env.Result {
	case domain.ResultOK:
		return env.Data, nil
	case domain.ResultFail:
		return nil, &domain.FailError{Op: op, Message: env.Error}
	default:
		return nil, e.Wrap(op, fmt.Errorf("%w: %q", e.ErrUnknownResult, env.Result))
	}
}

func isEnvelope(body []byte) bool {
	if body[0] != '{' {
		return false
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(body, &probe); err != nil {
		return false
	}
	_, ok := probe["result"]
	return ok
}

func decode[T any](op string, data json.RawMessage, dst *T) error {
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return e.Wrap(op, fmt.Errorf("%w: %w", e.ErrMalformedResponse, err))
	}
	return nil
}
