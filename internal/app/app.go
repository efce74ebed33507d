// Package app собирает клиент: HTTP-клиент API, сервисы, сеанс,
// терминальный интерфейс и необязательный отладочный сервер с метриками.
package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/magabrotheeeer/research-assistant/internal/api"
	"github.com/magabrotheeeer/research-assistant/internal/config"
	"github.com/magabrotheeeer/research-assistant/internal/lib/sl"
	"github.com/magabrotheeeer/research-assistant/internal/metrics"
	"github.com/magabrotheeeer/research-assistant/internal/services/auth"
	"github.com/magabrotheeeer/research-assistant/internal/services/billing"
	"github.com/magabrotheeeer/research-assistant/internal/services/research"
	"github.com/magabrotheeeer/research-assistant/internal/session"
	"github.com/magabrotheeeer/research-assistant/internal/tui"
)

type App struct {
	logger   *slog.Logger
	session  *session.Session
	services tui.Services
	debug    *http.Server
	options  []tea.ProgramOption
}

// New создаёт приложение. opts передаются программе bubbletea.
func New(cfg *config.Config, logger *slog.Logger, opts ...tea.ProgramOption) *App {
	recorder := metrics.New()

	client := api.New(cfg.API.BaseURL,
		api.WithHTTPClient(&http.Client{Timeout: cfg.API.Timeout}),
		api.WithRateLimit(cfg.API.RateLimit, cfg.API.RateBurst),
		api.WithUserAgent(cfg.API.UserAgent),
		api.WithObserver(recorder),
		api.WithLogger(logger),
	)

	sess := session.New()

	a := &App{
		logger:  logger,
		session: sess,
		services: tui.Services{
			Auth:     auth.New(client, sess, logger),
			Research: research.New(client, sess, logger),
			Billing:  billing.New(client, sess, logger),
		},
		options: opts,
	}

	if cfg.Metrics.Address != "" {
		a.debug = &http.Server{
			Addr:              cfg.Metrics.Address,
			Handler:           debugRoutes(recorder),
			ReadHeaderTimeout: 5 * time.Second,
		}
	}
	return a
}

// Run запускает интерфейс и блокируется до выхода пользователя или отмены ctx.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	if a.debug != nil {
		go func() {
			a.logger.Info("debug server starting", slog.String("address", a.debug.Addr))
			err := a.debug.ListenAndServe()
			if errors.Is(err, http.ErrServerClosed) {
				err = nil
			}
			errCh <- err
		}()
	}

	model := tui.New(ctx, a.session, a.services, a.logger)
	opts := append([]tea.ProgramOption{tea.WithContext(ctx)}, a.options...)
	_, err := tea.NewProgram(model, opts...).Run()

	if a.debug != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if serr := a.debug.Shutdown(shutdownCtx); serr != nil {
			a.logger.Error("failed to shut down debug server", sl.Err(serr))
		}
		if derr := <-errCh; derr != nil {
			a.logger.Error("debug server failed", sl.Err(derr))
		}
	}

	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		a.logger.Info("interrupted", slog.String("reason", ctx.Err().Error()))
		return nil
	}
	return err
}
