package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// BotRunner чат-интерфейс; Start блокируется до отмены ctx
type BotRunner interface {
	RegisterHandlers(ctx context.Context) error
	Start(ctx context.Context) error
}

// Runner управляет HTTP сервером и ботом до остановки процесса
type Runner struct {
	server          *http.Server
	bot             BotRunner
	shutdownTimeout time.Duration
	logger          *zap.Logger
}

// NewRunner создаёт новый раннер. bot может быть nil, тогда запускается только HTTP.
func NewRunner(server *http.Server, bot BotRunner, logger *zap.Logger) *Runner {
	return &Runner{
		server:          server,
		bot:             bot,
		shutdownTimeout: 10 * time.Second,
		logger:          logger,
	}
}

// Run блокируется до отмены ctx или падения одной из задач
func (r *Runner) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		r.logger.Info("Starting HTTP server", zap.String("addr", r.server.Addr))
		if err := r.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		r.logger.Info("Stopping HTTP server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), r.shutdownTimeout)
		defer cancel()
		if err := r.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	})

	if r.bot != nil {
		g.Go(func() error {
			if err := r.bot.RegisterHandlers(ctx); err != nil {
				// Меню команд не критично, бот продолжает работать
				r.logger.Warn("Bot commands menu not set", zap.Error(err))
			}
			return r.bot.Start(ctx)
		})
	}

	return g.Wait()
}
