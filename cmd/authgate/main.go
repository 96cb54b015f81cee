package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dropDatabas3/authgate/internal/config"
	"github.com/dropDatabas3/authgate/internal/gateway"
	"github.com/dropDatabas3/authgate/internal/http/controllers"
	"github.com/dropDatabas3/authgate/internal/http/router"
	"github.com/dropDatabas3/authgate/internal/infra/cachefactory"
	"github.com/dropDatabas3/authgate/internal/observability/logger"
	"github.com/dropDatabas3/authgate/internal/platform/selector"
	"github.com/dropDatabas3/authgate/internal/rate"
	"github.com/joho/godotenv"
	rdb "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	var configPath string

	root := &cobra.Command{
		Use:   "authgate",
		Short: "Authentication gateway in front of IBM Security Verify / Verify Access",
	}
	root.PersistentFlags().StringVar(&configPath, "config", os.Getenv("AUTHGATE_CONFIG"), "path to the YAML config file (env AUTHGATE_CONFIG)")

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the gateway HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(configPath)
		},
	}
	root.AddCommand(serve)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func runServe(configPath string) error {
	// .env is a development convenience; absence is not an error.
	_ = godotenv.Load()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger.Init(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, ServiceName: "authgate"})
	defer func() { _ = logger.Sync() }()
	log := logger.L()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := cachefactory.New(ctx, cfg)
	if err != nil {
		return err
	}

	clients, err := selector.New(cfg)
	if err != nil {
		return err
	}
	log.Info("platform selected", logger.Platform(clients.Platform.String()))

	gw := gateway.New(gateway.Deps{
		Platform: clients.Platform,
		Cache:    store,
		Users:    clients.Users,
		WebAuthn: clients.WebAuthn,
		Tokens:   clients.Tokens,
		Issuer:   cfg.Server.PublicURL,
	})

	var limiter rate.Limiter
	if cfg.RateLimit.Enabled {
		switch cfg.Cache.Kind {
		case "redis":
			prefix := cfg.Cache.Redis.Prefix
			if prefix != "" {
				prefix += ":rl:"
			}
			limiter = rate.NewRedisLimiter(rdb.NewClient(&rdb.Options{
				Addr: cfg.Cache.Redis.Addr,
				DB:   cfg.Cache.Redis.DB,
			}), prefix, cfg.RateLimit.Max, cfg.RateWindow())
		default:
			limiter = rate.NewMemoryLimiter(cfg.RateLimit.Max, cfg.RateWindow())
		}
		log.Info("rate limiting enabled",
			zap.Int("max", cfg.RateLimit.Max),
			zap.Duration("window", cfg.RateWindow()))
	}

	handler := router.New(controllers.New(gw), limiter)
	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("server listening", logger.Path(cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
