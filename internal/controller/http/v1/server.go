package v1

import (
	"context"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/opsboard/bulk_importer/internal/config"
	"github.com/opsboard/bulk_importer/internal/controller/http/middleware"
	"github.com/opsboard/bulk_importer/internal/importer"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Server struct {
	httpServer *http.Server
}

func NewServer(cfg config.HTTP, service ImportService, registry *importer.Registry) *Server {
	r := chi.NewRouter()
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics)

	r.Handle("/metrics", promhttp.Handler())

	h := NewImportHandler(service, registry)
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/import-types", h.ListImportTypes)
		r.Post("/upload", h.Upload)
		r.Post("/import", h.Import)
		r.Get("/template/{type}", h.DownloadTemplate)
	})

	return &Server{
		httpServer: &http.Server{
			Addr:         net.JoinHostPort(cfg.Host, cfg.Port),
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			IdleTimeout:  cfg.IdleTimeout,
			Handler:      r,
		},
	}
}

func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
