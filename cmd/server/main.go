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

	_ "go.uber.org/automaxprocs"
	"golang.org/x/sync/errgroup"

	"github.com/AngelCh415/atelier/internal/auth"
	"github.com/AngelCh415/atelier/internal/catalog"
	"github.com/AngelCh415/atelier/internal/config"
	"github.com/AngelCh415/atelier/internal/cpq"
	"github.com/AngelCh415/atelier/internal/httpx"
	"github.com/AngelCh415/atelier/internal/metrics"
	"github.com/AngelCh415/atelier/internal/optimizer"
	"github.com/AngelCh415/atelier/internal/store"
	"github.com/AngelCh415/atelier/internal/utils"
)

func main() {
	cfg := config.FromEnv()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	cat, err := catalog.Load(cfg.CatalogFile)
	if err != nil {
		logger.Error("catalog load failed", slog.String("err", err.Error()))
		os.Exit(1)
	}

	var provider auth.Provider
	if cfg.AuthURL != "" {
		provider = auth.NewSupabaseProvider(cfg.AuthURL, cfg.AuthAPIKey, auth.NewHTTPClient(cfg.HTTPTimeout), auth.DefaultBackoff(cfg.AuthRetries))
	} else {
		logger.Warn("AUTH_URL not set, using in-memory identity provider")
		provider = auth.NewMemoryProvider()
	}

	r := httpx.NewRouter(httpx.Deps{
		Log:       logger,
		Allocator: optimizer.NewAllocator(cat),
		CPQ:       cpq.NewCalculator(cat),
		Audit:     store.NewAuditLog(cfg.AuditCapacity),
		Auth:      auth.NewService(provider, logger),
		Metrics:   metrics.New(),
		Limiter:   utils.NewRateLimiter(cfg.RateLimitRPS, cfg.RateBurst),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting server", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server error", slog.String("err", err.Error()))
		os.Exit(1)
	}
	logger.Info("server stopped")
}
