package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"

	"github.com/iliyamo/entry-exit-logbook/internal/config"
	"github.com/iliyamo/entry-exit-logbook/internal/handler"
	"github.com/iliyamo/entry-exit-logbook/internal/i18n"
	"github.com/iliyamo/entry-exit-logbook/internal/middleware"
	"github.com/iliyamo/entry-exit-logbook/internal/queue"
	"github.com/iliyamo/entry-exit-logbook/internal/router"
	"github.com/iliyamo/entry-exit-logbook/internal/service"
)

func newServeCmd() *cobra.Command {
	var port string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and web UI",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, port)
		},
	}
	cmd.Flags().StringVarP(&port, "port", "p", "", "port to listen on (overrides APP_PORT)")
	return cmd
}

func serve(ctx context.Context, port string) error {
	env, err := setup(ctx, true)
	if err != nil {
		return err
	}
	defer env.shutdown()
	cfg, log := env.cfg, env.log
	if port != "" {
		cfg.Port = port
	}

	cat, err := i18n.Load(cfg.MessagesFile)
	if err != nil {
		return err
	}
	msg := cat.For(cfg.Locale)
	if !cat.Has(msg.Locale()) {
		log.Warnw("no messages for locale, falling back", "locale", msg.Locale(), "fallback", i18n.FallbackLocale)
	}

	opts := []service.Option{service.WithLogger(log)}
	if cfg.AMQP.Enabled {
		opts = append(opts, service.WithPublisher(queue.NewPublisher(cfg.AMQP.URL, cfg.AMQP.Queue)))
		log.Infow("publishing events", "queue", cfg.AMQP.Queue)
	}
	entryLog := service.NewEntryLog(env.store, opts...)

	rdb := config.NewRedisClient() // nil disables cache and rate limit
	if rdb == nil {
		log.Infow("redis unavailable, response cache and rate limit disabled")
	} else {
		defer rdb.Close()
	}
	cacheCfg := config.LoadCacheConfig()
	rateCfg := config.LoadRateLimitConfig()

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(echomw.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLogger(log))

	router.RegisterRoutes(e, &handler.HealthHandler{Store: env.store})
	router.RegisterAPI(e, handler.NewEntryHandler(entryLog, msg), router.APIMiddleware{
		Read: []echo.MiddlewareFunc{middleware.NewRedisCache(cacheCfg, rdb)},
		Write: []echo.MiddlewareFunc{
			middleware.NewTokenBucket(rateCfg, rdb),
			middleware.NewCacheInvalidator(cacheCfg, rdb),
		},
	})
	if err := router.RegisterUI(e, msg.Locale(), cfg.FamilyNames); err != nil {
		return err
	}

	addr := ":" + cfg.Port
	log.Infow("listening", "addr", addr, "env", cfg.Env, "store", cfg.Store.Driver)

	errCh := make(chan error, 1)
	go func() { errCh <- e.Start(addr) }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Infow("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
