package http

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/hsm-textlab/workbench/internal/cfg"
	"github.com/hsm-textlab/workbench/pkg/e"
)

// Server - HTTP-сервер консоли.
type Server struct {
	httpServer      *http.Server
	shutdownTimeout time.Duration
}

func NewServer(handler http.Handler, cfg *cfg.HTTPConfig, shutdownTimeout time.Duration) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:         ":" + cfg.Port,
			Handler:      handler,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			IdleTimeout:  cfg.IdleTimeout,
		},
		shutdownTimeout: shutdownTimeout,
	}
}

// Addr возвращает адрес, на котором слушает сервер.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Listen занимает порт. После него Addr содержит фактический адрес.
func (s *Server) Listen() (net.Listener, error) {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return nil, e.Wrap("Server.Listen", err)
	}
	s.httpServer.Addr = ln.Addr().String()

	return ln, nil
}

// Serve обслуживает запросы до отмены ctx и затем мягко останавливает сервер.
// Штатная остановка не считается ошибкой.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	const op = "Server.Serve"

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return e.Wrap(op, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return e.Wrap(op, err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return e.Wrap(op, err)
	}

	return nil
}
