// Package postgres is the PostgreSQL gateway, built on a pgx connection pool.
//
// The schema is owned outside this service; the gateway only reads ids and
// inserts rows into the tables named by the entities package.
package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JonMunkholm/barista/internal/config"
	"github.com/JonMunkholm/barista/internal/core"
)

var (
	_ core.Gateway = (*Store)(nil)
	_ core.Tx      = (*Tx)(nil)
)

// Store is a core.Gateway over a pgx pool.
type Store struct {
	pool *pgxpool.Pool
}

// Open parses cfg.URL, applies the pool limits and verifies the connection.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*Store, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.MaxConns)
	poolConfig.MinConns = int32(cfg.MinConns)
	poolConfig.MaxConnLifetime = cfg.MaxConnLifetime
	poolConfig.MaxConnIdleTime = cfg.MaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if u, err := url.Parse(cfg.URL); err == nil {
		slog.Info("connected to database", "driver", config.DriverPostgres, "name", strings.TrimPrefix(u.Path, "/"))
	} else {
		slog.Info("connected to database", "driver", config.DriverPostgres)
	}

	return New(pool), nil
}

// New wraps an existing pool.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Ping checks that the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close releases the pool.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

func (s *Store) IDs(ctx context.Context, collection string) (core.IDSet, error) {
	return queryIDs(ctx, s.pool, collection)
}

func (s *Store) Begin(ctx context.Context) (core.Tx, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return &Tx{tx: tx}, nil
}

// Tx is one pgx transaction.
type Tx struct {
	tx pgx.Tx
}

func (t *Tx) IDs(ctx context.Context, collection string) (core.IDSet, error) {
	return queryIDs(ctx, t.tx, collection)
}

func (t *Tx) Exists(ctx context.Context, collection, id string) (bool, error) {
	var exists bool
	if err := t.tx.QueryRow(ctx, existsSQL(collection), id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (t *Tx) Insert(ctx context.Context, collection string, e core.Entity) error {
	if e.TableName() != collection {
		return fmt.Errorf("entity for %s cannot be inserted into %s", e.TableName(), collection)
	}
	_, err := t.tx.Exec(ctx, insertSQL(collection, e.Columns()), e.Values()...)
	return err
}

func (t *Tx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t *Tx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func queryIDs(ctx context.Context, q querier, collection string) (core.IDSet, error) {
	rows, err := q.Query(ctx, selectIDsSQL(collection))
	if err != nil {
		return nil, err
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, err
	}
	return core.NewIDSet(ids...), nil
}

// quoteIdentifier safely quotes a PostgreSQL identifier to prevent SQL injection.
func quoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func selectIDsSQL(collection string) string {
	return fmt.Sprintf("SELECT id::text FROM %s", quoteIdentifier(collection))
}

func existsSQL(collection string) string {
	return fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s WHERE id::text = $1)", quoteIdentifier(collection))
}

func insertSQL(collection string, columns []string) string {
	quoted := make([]string, len(columns))
	params := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = quoteIdentifier(c)
		params[i] = fmt.Sprintf("$%d", i+1)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quoteIdentifier(collection),
		strings.Join(quoted, ", "),
		strings.Join(params, ", "),
	)
}
