package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/foodgramapp/foodgram-server/internal/config"
	"github.com/foodgramapp/foodgram-server/internal/logger"
	"github.com/foodgramapp/foodgram-server/internal/store/sqlite"
)

// environment is what a command needs to work on a data directory.
type environment struct {
	cfg    *config.Config
	store  *sqlite.Store
	logger *slog.Logger
}

func (e *environment) Close() error {
	return e.store.Close()
}

// openEnvironment resolves configuration the same way the server does,
// with --data-path taking precedence, and opens the database.
func openEnvironment(opts *RootOptions, stderr io.Writer) (*environment, error) {
	var args []string
	if opts.DataPath != "" {
		args = append(args, "-data-path="+opts.DataPath)
	}
	cfg, err := config.Load(args)
	if err != nil {
		return nil, err
	}

	level := "warn"
	if opts.Verbose {
		level = "debug"
	}
	log := logger.New(logger.Config{
		Writer: stderr,
		Format: "pretty",
		Level:  logger.ParseLevel(level),
	})

	if err := os.MkdirAll(cfg.Storage.DataPath, 0o750); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	st, err := sqlite.Open(cfg.Storage.DatabasePath(), log.Logger)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	log.Debug("database opened", "path", cfg.Storage.DatabasePath())

	return &environment{cfg: cfg, store: st, logger: log.Logger}, nil
}
