package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/vagalivre/vagalivre/internal/board"
	"github.com/vagalivre/vagalivre/internal/config"
	"github.com/vagalivre/vagalivre/internal/durable"
	"github.com/vagalivre/vagalivre/internal/remote"
)

// App is the dependency container for the CLI application. Exactly one
// of Store/Remote is set, chosen once at startup from configuration:
// a configured remote backend puts the whole session in remote mode,
// otherwise state lives on the device.
type App struct {
	Config *config.Config
	Store  *durable.Store
	Remote *remote.Client
	Board  board.Board
	Logger *slog.Logger
}

// NewApp initializes and returns a new App instance
func NewApp(ctx context.Context) (*App, error) {
	// Initialize config
	if err := config.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize config: %w", err)
	}
	cfg := config.AppConfig

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))

	a := &App{Config: cfg, Logger: logger}

	if cfg.RemoteEnabled() {
		client, err := remote.New(ctx, cfg, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to connect remote backend: %w", err)
		}
		b, err := board.NewRemote(client, logger)
		if err != nil {
			client.Close()
			return nil, fmt.Errorf("failed to start remote board: %w", err)
		}
		a.Remote = client
		a.Board = b
		return a, nil
	}

	store, err := durable.Open(dataDir(cfg), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open local store: %w", err)
	}
	a.Store = store
	a.Board = board.NewLocal(store, logger)
	return a, nil
}

// Close releases all resources; every teardown path runs through here
func (a *App) Close() error {
	if a.Board != nil {
		a.Board.Close()
	}
	if a.Remote != nil {
		a.Remote.Close()
	}
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}

// dataDir resolves where local snapshots live
func dataDir(cfg *config.Config) string {
	if cfg.DataDir != "" {
		return cfg.DataDir
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".vagalivre"
	}
	return filepath.Join(homeDir, ".vagalivre")
}
