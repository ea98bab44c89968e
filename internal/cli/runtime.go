package cli

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/emzarlukava/northwind-employees/internal/config"
	applog "github.com/emzarlukava/northwind-employees/internal/log"
	"github.com/emzarlukava/northwind-employees/store"
)

var loadConfigFn = config.Load

type runtimeEnv struct {
	cfg    config.Config
	store  *store.EmployeeStore
	logger *slog.Logger
}

func withStore(cmdCtx context.Context, deps commandDeps, fn func(context.Context, runtimeEnv) error) error {
	loadOpts := config.LoadOptions{}
	if deps.globals != nil {
		if configPath := strings.TrimSpace(deps.globals.ConfigPath); configPath != "" {
			loadOpts.ConfigPath = configPath
		}
		if dbPath := strings.TrimSpace(deps.globals.DBPath); dbPath != "" {
			loadOpts.Env = map[string]string{
				"NWEMP_DB_PATH": dbPath,
			}
		}
	}

	cfg, err := loadConfigFn(loadOpts)
	if err != nil {
		return mapCommandError(fmt.Errorf("load config: %w", err))
	}

	logger, closer, err := applog.New(cfg.Logging)
	if err != nil {
		return mapCommandError(fmt.Errorf("set up logging: %w", err))
	}
	if closer != nil {
		defer func() { _ = closer.Close() }()
	}

	employees, err := store.New(store.SQLite{}, cfg.Database.Path)
	if err != nil {
		return mapCommandError(err)
	}

	env := runtimeEnv{cfg: cfg, store: employees, logger: logger}
	if err := fn(cmdCtx, env); err != nil {
		return mapCommandError(err)
	}
	return nil
}
