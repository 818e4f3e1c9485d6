package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/mester-scheduler/internal/config"
	"github.com/BruksfildServices01/mester-scheduler/internal/events"
	"github.com/BruksfildServices01/mester-scheduler/internal/logger"
	"github.com/BruksfildServices01/mester-scheduler/internal/metrics"
	"github.com/BruksfildServices01/mester-scheduler/internal/routes"
	"github.com/BruksfildServices01/mester-scheduler/internal/timezone"
	ucProposal "github.com/BruksfildServices01/mester-scheduler/internal/usecase/proposal"
)

const shutdownTimeout = 10 * time.Second

func main() {

	cfg := config.Load()
	log := logger.New("mester-scheduler", cfg.LogLevel)
	slog.SetDefault(log)

	timezone.SetDefault(cfg.DefaultTimezone)

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ======================================================
	// STORAGE
	// ======================================================
	store, err := openStorage(cfg, log)
	if err != nil {
		return err
	}
	defer store.close()

	// ======================================================
	// EVENTS
	// ======================================================
	notifier, err := openNotifier(cfg, log)
	if err != nil {
		return err
	}
	defer notifier.close()

	sinks := []events.Publisher{notifier.publisher}
	if store.audit != nil {
		sinks = append(sinks, store.audit)
	}
	dispatcher := events.NewDispatcher(log, cfg.EventQueueSize, sinks...)

	// ======================================================
	// ROUTES
	// ======================================================
	deps := routes.Deps{
		Config:  cfg,
		Log:     log,
		Metrics: metrics.New(),
		Events:  dispatcher,
		Clock:   time.Now,

		Appointments: store.appointments,
		Proposals:    store.proposals,
		Leads:        store.leads,
		Threads:      store.threads,
	}
	if store.audit != nil {
		deps.Audit = store.audit
	}
	if err := wirePayments(cfg, log, &deps); err != nil {
		return err
	}

	r := gin.New()
	r.Use(gin.Recovery())
	routes.RegisterRoutes(r, deps)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// ======================================================
	// WORKERS
	// ======================================================
	go sweepProposals(ctx, ucProposal.NewExpireStale(deps.ProposalDeps()), cfg.ProposalSweepInterval, log)

	errCh := make(chan error, 1)
	go func() {
		log.Info("server running", "addr", cfg.Addr(), "storage", cfg.StorageDriver, "notify", cfg.NotifyDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	// ======================================================
	// SHUTDOWN
	// ======================================================
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown", "error", err)
	}
	if err := dispatcher.Close(shutdownCtx); err != nil {
		log.Error("event dispatcher drain", "error", err)
	}
	return nil
}

// sweepProposals materializa o "expired" das propostas vencidas.
func sweepProposals(ctx context.Context, uc *ucProposal.ExpireStale, every time.Duration, log *slog.Logger) {
	if every <= 0 {
		log.Warn("proposal sweep disabled")
		return
	}

	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := uc.Execute(ctx); err != nil && ctx.Err() == nil {
				log.Error("proposal sweep failed", "error", err)
			}
		}
	}
}
