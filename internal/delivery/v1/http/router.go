package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	_ "github.com/hsm-textlab/workbench/docs" // Импорт сгенерированных файлов
	"github.com/hsm-textlab/workbench/internal/usecase"
	"github.com/hsm-textlab/workbench/pkg/logger"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type Router struct {
	router *chi.Mux
	logger logger.Logger
}

func NewRouter(router *chi.Mux, logger logger.Logger) *Router {
	return &Router{router: router, logger: logger}
}

func (r *Router) Init(filterUC usecase.FilterUC, clustererUC usecase.ClustererUC) {
	r.router.Use(middleware.RequestID, middleware.Recoverer, r.logRequests)

	r.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.router.Route("/api/v1/console", func(v1 chi.Router) {
		registerFilterRoutes(v1, NewFilterHandler(filterUC, r.logger))
		registerClustererRoutes(v1, NewClustererHandler(clustererUC, r.logger))
	})
}

func registerFilterRoutes(router chi.Router, h *FilterHandler) {
	router.Get("/filters", h.listFilters)
	router.Route("/filter", func(f chi.Router) {
		f.Post("/new", h.newFilter)
		f.Get("/form", h.getForm)
		f.Put("/form", h.editForm)
		f.Post("/load", h.loadFilter)
		f.Post("/save", h.saveFilter)
		f.Post("/remove", h.removeFilter)
		f.Get("/preview", h.lastPreview)
		f.Post("/preview", h.previewFilter)
		f.Post("/apply", h.applyFilter)
		f.Get("/graph", h.filterGraph)
	})
}

func registerClustererRoutes(router chi.Router, h *ClustererHandler) {
	router.Get("/clusterers", h.listClusterers)
	router.Route("/clusterer", func(c chi.Router) {
		c.Get("/form", h.getForm)
		c.Put("/form", h.editForm)
		c.Post("/load", h.loadClusterer)
		c.Post("/save", h.saveClusterer)
		c.Post("/update", h.updatePreview)

		c.Get("/plot.svg", h.plotSVG)
		c.Post("/plot/export", h.exportPlot)
		c.Delete("/plot", h.discardPlot)

		c.Get("/points", h.listPoints)
		c.Post("/points/{idx}/label", h.labelPoint)
		c.Get("/points/{idx}/document", h.hoverPoint)
		c.Delete("/hover", h.unhover)

		c.Post("/unknown/show", h.showUnknown)
		c.Post("/unknown/hide", h.hideUnknown)

		c.Post("/labels/save", h.saveLabels)
		c.Post("/labels/clear", h.clearLabels)
		c.Get("/labels/history", h.labelHistory)

		c.Get("/examples", h.examples)
		c.Get("/examples/view", h.viewExamples)
	})
}

// logRequests пишет в debug-лог метод, путь, код ответа и длительность запроса.
func (r *Router) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, req.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, req)
		r.logger.Debugf("%s %s -> %d (%s) [%s]",
			req.Method, req.URL.Path, ww.Status(), time.Since(start), middleware.GetReqID(req.Context()))
	})
}
