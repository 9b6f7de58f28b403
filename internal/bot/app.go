package bot

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/perawita/bot-telegram-expxxx/internal/backend"
	"github.com/perawita/bot-telegram-expxxx/internal/bot/config"
	"github.com/perawita/bot-telegram-expxxx/internal/console"
	"github.com/perawita/bot-telegram-expxxx/internal/health"
	"github.com/perawita/bot-telegram-expxxx/internal/logging"
	"github.com/perawita/bot-telegram-expxxx/internal/session"
	"github.com/perawita/bot-telegram-expxxx/internal/telegram"
)

// App owns the process: session store, conversation handler, the chosen
// gateway and the health server.
type App struct {
	config  *config.Config
	logger  logging.Logger
	store   *session.SQLiteStore
	handler *Handler
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSON()

	if !c.Console && c.TelegramToken == "" {
		return nil, errors.New("TELEGRAM_BOT_TOKEN is not set")
	}

	store, err := session.OpenSQLite(ctx, c.SessionDSN, logger)
	if err != nil {
		return nil, fmt.Errorf("session store init: %w", err)
	}

	api := backend.NewClient(c.APIBaseURL)
	handler := NewHandler(store, api, logger)

	return &App{config: c, logger: logger, store: store, handler: handler}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run starts the health server, the session sweeper and the gateway, and
// blocks until all of them have stopped.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "starting bot...")
	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := health.NewServer(app.config.HealthAddr, app.logger).Run(ctx); err != nil {
			app.logger.Error(ctx, "health server failed", "error", err.Error())
			cancelFunc()
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.store.RunSweeper(ctx, app.config.SweepInterval, app.config.SessionTTL)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		defer cancelFunc()
		if err := app.runGateway(ctx); err != nil && !errors.Is(err, context.Canceled) {
			app.logger.Error(ctx, "gateway stopped", "error", err.Error())
		}
	}()

	wg.Wait()

	if err := app.store.Close(); err != nil {
		app.logger.Error(ctx, "session store close failed", "error", err.Error())
	}
	app.logger.Info(ctx, "bot stopped")
}

func (app *App) runGateway(ctx context.Context) error {
	if app.config.Console {
		return console.NewGateway(app.handler).Run(ctx)
	}
	g := telegram.NewGateway(app.config.TelegramToken, app.handler, app.config.PollTimeout, app.logger)
	return g.Run(ctx)
}
