// Package store selects and opens the persistence gateway named by configuration.
package store

import (
	"context"
	"fmt"

	"github.com/JonMunkholm/barista/internal/config"
	"github.com/JonMunkholm/barista/internal/core"
	"github.com/JonMunkholm/barista/internal/store/postgres"
	"github.com/JonMunkholm/barista/internal/store/sqlite"
)

// Gateway is a core.Gateway that holds a connection and can be health-checked.
type Gateway interface {
	core.Gateway
	Ping(ctx context.Context) error
	Close() error
}

// Open connects to the database selected by cfg.Driver.
func Open(ctx context.Context, cfg config.DatabaseConfig) (Gateway, error) {
	var (
		gw  Gateway
		err error
	)
	switch cfg.Driver {
	case config.DriverPostgres:
		gw, err = postgres.Open(ctx, cfg)
	case config.DriverSQLite:
		gw, err = sqlite.Open(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}
	return gw, nil
}
