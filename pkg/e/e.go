package e

import "fmt"

var (
	// Ошибки настроек и формы
	ErrUnknownKind   = fmt.Errorf("unknown settings kind")
	ErrMissingWidget = fmt.Errorf("form widget not found")

	// Ошибки взаимодействия с бэкендом textlab
	ErrTransport         = fmt.Errorf("backend transport failure")
	ErrBadStatus         = fmt.Errorf("backend returned unexpected status")
	ErrMalformedResponse = fmt.Errorf("malformed backend response")
	ErrUnknownResult     = fmt.Errorf("unknown envelope result")

	// Ошибки графика
	ErrPointNotFound = fmt.Errorf("plot point not found")

	// Внутренние ошибки хранилищ
	ErrTransactionNotFound  = fmt.Errorf("transaction not found")
	ErrPlotNotCached        = fmt.Errorf("plot not cached")
	ErrExportDisabled       = fmt.Errorf("plot export is not configured")
	ErrNoPlot               = fmt.Errorf("no plot loaded")
	ErrIncorrectEnvVariable = fmt.Errorf("incorrect environment variable")

	// 400 Bad Request
	ErrStatusBadRequest  = fmt.Errorf("bad request")
	ErrNameRequired      = fmt.Errorf("name is required")
	ErrInvalidIndex      = fmt.Errorf("invalid point index")
	ErrInvalidSampleSize = fmt.Errorf("invalid preview sample size")

	// 500 Internal Server Error
	ErrInternalServerError = fmt.Errorf("internal server error")
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
