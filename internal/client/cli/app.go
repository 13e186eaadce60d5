package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/myhealth/internal/client/backend"
	"github.com/dmitrijs2005/myhealth/internal/client/cache"
	"github.com/dmitrijs2005/myhealth/internal/client/config"
	"github.com/dmitrijs2005/myhealth/internal/client/editsession"
	"github.com/dmitrijs2005/myhealth/internal/client/kinds"
	"github.com/dmitrijs2005/myhealth/internal/client/models"
	"github.com/dmitrijs2005/myhealth/internal/client/services"
	"github.com/dmitrijs2005/myhealth/internal/logging"
	"golang.org/x/term"
)

// scopeID names the terminal console's slot in a persistent snapshot cache.
const scopeID = "terminal"

// isTerminal is a test seam for term.IsTerminal.
var isTerminal = term.IsTerminal

type App struct {
	logger logging.Logger

	food     *editsession.Kind[models.Food]
	settings *editsession.Kind[models.UserSettings]
	weight   *editsession.Kind[models.Weight]

	foods   services.FoodService
	weights services.WeightService

	workspace *editsession.Workspace

	reader      *bufio.Reader
	out         io.Writer
	interactive bool
	closeFn     func() error
}

// NewApp wires the backend client, the snapshot cache and the pages.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	client, err := backend.New(c.BackendURL,
		backend.WithTimeout(c.RequestTimeout),
		backend.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}

	var (
		snapshots cache.Cache = cache.NewMemory()
		closeFn               = func() error { return nil }
	)
	if c.CacheDSN != "" {
		store, err := cache.OpenSQLite(ctx, c.CacheDSN)
		if err != nil {
			return nil, fmt.Errorf("error initializing snapshot cache: %w", err)
		}
		scoped, err := store.Scope(scopeID)
		if err != nil {
			_ = store.Close()
			return nil, err
		}
		snapshots, closeFn = scoped, store.Close
	}

	a := &App{
		logger:      logger,
		food:        kinds.Food(client),
		settings:    kinds.UserSettings(client),
		weight:      kinds.Weight(client),
		foods:       services.NewFoodService(client, logger),
		weights:     services.NewWeightService(client, logger),
		workspace:   editsession.NewWorkspace(snapshots, logger),
		reader:      bufio.NewReader(os.Stdin),
		out:         os.Stdout,
		interactive: isTerminal(int(os.Stdin.Fd())),
		closeFn:     closeFn,
	}
	return a, nil
}

// Run blocks in the REPL until the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	if a.interactive {
		printlnFn("Welcome to myhealth console (type 'help' for commands)")
	}
	runREPL(ctx, a, a.prompt(), a.reader)
}

func (a *App) Close() error {
	if a.closeFn == nil {
		return nil
	}
	return a.closeFn()
}

func (a *App) prompt() string {
	if !a.interactive {
		return ""
	}
	return "myhealth> "
}
