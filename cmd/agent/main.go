package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gophvault/internal/app/agent/api"
	"gophvault/internal/app/client"
	"gophvault/internal/app/client/config"
	"gophvault/internal/utils/logger"

	"golang.org/x/exp/slog"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.MustLoad()
	log := logger.FromConfig(cfg)

	if err := run(cfg, log); err != nil {
		log.Error("агент завершился с ошибкой", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger) error {
	app, err := client.New(cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Error("ошибка закрытия хранилища", slog.String("error", err.Error()))
		}
	}()

	if cfg.AgentToken == "" {
		log.Warn("AGENT_TOKEN не задан, API доступен любому локальному процессу")
	}

	srv := &http.Server{
		Addr:              cfg.AgentAddress,
		Handler:           api.New(app, cfg.AgentToken, log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("агент запущен",
			slog.String("address", cfg.AgentAddress),
			slog.String("env", cfg.Env),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		return app.RunAutoSync(ctx)
	})

	g.Go(func() error {
		<-ctx.Done()
		log.Info("остановка агента")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
