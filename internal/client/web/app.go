package web

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/myhealth/internal/client/backend"
	"github.com/dmitrijs2005/myhealth/internal/client/cache"
	"github.com/dmitrijs2005/myhealth/internal/client/config"
	"github.com/dmitrijs2005/myhealth/internal/common"
	"github.com/dmitrijs2005/myhealth/internal/logging"
)

type App struct {
	config *config.Config
	logger logging.Logger
	server *Server
	store  *cache.SQLiteStore
}

// NewApp wires the backend client, the snapshot store and the web server.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	client, err := backend.New(c.BackendURL,
		backend.WithTimeout(c.RequestTimeout),
		backend.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}

	secret := []byte(c.SessionSecret)
	if len(secret) == 0 {
		random, err := common.MakeRandHexString(32)
		if err != nil {
			return nil, fmt.Errorf("error generating session secret: %w", err)
		}
		secret = []byte(random)
		logger.Warn(ctx, "session secret is not configured, browsing sessions end on restart")
	}

	var store *cache.SQLiteStore
	if c.CacheDSN != "" {
		store, err = cache.OpenSQLite(ctx, c.CacheDSN)
		if err != nil {
			return nil, fmt.Errorf("error initializing snapshot cache: %w", err)
		}
	}

	sessions := newSessionManager(secret, c.SessionTTL, store, logger)
	srv, err := NewServer(c.WebAddr, client, sessions, logger)
	if err != nil {
		if store != nil {
			_ = store.Close()
		}
		return nil, err
	}

	return &App{config: c, logger: logger, server: srv, store: store}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves the console until a termination signal arrives or ctx ends.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")
	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup
	if app.store != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ttl := app.config.SessionTTL
			runJanitor(ctx, app.store, ttl, janitorInterval(ttl), app.logger)
		}()
	}

	err := app.server.Run(ctx)
	cancelFunc()
	wg.Wait()
	return err
}

func (app *App) Close() error {
	if app.store == nil {
		return nil
	}
	return app.store.Close()
}
