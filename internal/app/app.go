package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/opsboard/bulk_importer/internal/config"
	v1 "github.com/opsboard/bulk_importer/internal/controller/http/v1"
	"github.com/opsboard/bulk_importer/internal/importer"
	"github.com/opsboard/bulk_importer/internal/infrastructure/report_generator"
	"github.com/opsboard/bulk_importer/internal/repository/postgresql"
	"golang.org/x/sync/errgroup"
)

type App struct {
	log *slog.Logger
	cfg *config.Config
}

func New(log *slog.Logger, cfg *config.Config) *App {
	return &App{
		log: log,
		cfg: cfg,
	}
}

func (a *App) Run(ctx context.Context) error {
	a.log.InfoContext(ctx, "starting app",
		slog.String("uploads_dir", a.cfg.App.UploadsDirectory),
		slog.String("reports_dir", a.cfg.App.ReportsDirectory),
	)

	a.log.InfoContext(ctx, "establishing postgresql connection",
		slog.String("postgresql_host", a.cfg.PostgreSQL.Host),
		slog.String("postgresql_port", a.cfg.PostgreSQL.Port),
		slog.String("postgresql_dbname", a.cfg.PostgreSQL.DBName),
	)

	pool, err := postgresql.NewConnection(ctx, a.log, a.cfg.PostgreSQL)
	if err != nil {
		return fmt.Errorf("failed to create db connection: %w", err)
	}
	defer pool.Close()

	recordsRepository := postgresql.NewRecordsRepository(pool)
	membershipsRepository := postgresql.NewMembershipsRepository(pool)
	txManager := postgresql.NewTxManager(pool)

	registry := importer.NewRegistry()

	service := importer.NewService(
		a.log,
		a.cfg.App.UploadsDirectory,
		a.cfg.App.ReportsDirectory,
		registry,
		recordsRepository,
		membershipsRepository,
		txManager,
		report_generator.New(),
	)

	return a.serve(ctx, service, registry)
}

func (a *App) serve(ctx context.Context, service *importer.Service, registry *importer.Registry) error {
	server := v1.NewServer(a.cfg.HTTP, service, registry)

	erg, ctx := errgroup.WithContext(ctx)

	erg.Go(func() error {
		a.log.InfoContext(ctx, "starting http server",
			slog.String("addr", net.JoinHostPort(a.cfg.HTTP.Host, a.cfg.HTTP.Port)),
		)

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server error: %w", err)
		}

		return nil
	})

	erg.Go(func() error {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	})

	if err := erg.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		a.log.ErrorContext(ctx, "server stopped with error", slog.String("err", err.Error()))

		return err
	}

	a.log.InfoContext(ctx, "server stopped gracefully")

	return nil
}
