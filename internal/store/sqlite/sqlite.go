// Package sqlite is the embedded gateway: a single SQLite file accessed through gorm.
// Opening the store migrates every entity table, so a fresh file is ready to import into.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/JonMunkholm/barista/internal/config"
	"github.com/JonMunkholm/barista/internal/core"
	"github.com/JonMunkholm/barista/internal/entities"
)

var (
	_ core.Gateway = (*Store)(nil)
	_ core.Tx      = (*Tx)(nil)
)

// Store is a core.Gateway over a gorm SQLite connection.
type Store struct {
	db *gorm.DB
}

// Open opens (or creates) the database file at path and migrates the entity tables.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(entities.All()...); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	slog.Info("connected to database", "driver", config.DriverSQLite, "path", path)
	return &Store{db: db}, nil
}

// DB exposes the gorm handle for seeding and inspection.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Ping checks that the database file is usable.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close closes the underlying connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Seed inserts rows that are not present yet. Existing ids are left untouched.
// Returns the number of rows actually inserted.
func (s *Store) Seed(ctx context.Context, rows ...core.Entity) (int, error) {
	inserted := 0
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, row := range rows {
			if err := entities.Validate(row); err != nil {
				return err
			}
			res := tx.Table(row.TableName()).Clauses(clause.OnConflict{DoNothing: true}).Create(row)
			if res.Error != nil {
				return fmt.Errorf("seed %s %s: %w", row.TableName(), row.PrimaryKey(), res.Error)
			}
			inserted += int(res.RowsAffected)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}

func (s *Store) IDs(ctx context.Context, collection string) (core.IDSet, error) {
	return pluckIDs(s.db.WithContext(ctx), collection)
}

func (s *Store) Begin(ctx context.Context) (core.Tx, error) {
	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &Tx{db: tx}, nil
}

// Tx is one gorm transaction.
type Tx struct {
	db *gorm.DB
}

func (t *Tx) IDs(ctx context.Context, collection string) (core.IDSet, error) {
	return pluckIDs(t.db.WithContext(ctx), collection)
}

func (t *Tx) Exists(ctx context.Context, collection, id string) (bool, error) {
	var n int64
	if err := t.db.WithContext(ctx).Table(collection).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (t *Tx) Insert(ctx context.Context, collection string, e core.Entity) error {
	if e.TableName() != collection {
		return fmt.Errorf("entity for %s cannot be inserted into %s", e.TableName(), collection)
	}
	return t.db.WithContext(ctx).Table(collection).Create(e).Error
}

func (t *Tx) Commit(ctx context.Context) error {
	return t.db.Commit().Error
}

func (t *Tx) Rollback(ctx context.Context) error {
	err := t.db.Rollback().Error
	if errors.Is(err, sql.ErrTxDone) || errors.Is(err, gorm.ErrInvalidTransaction) {
		return nil
	}
	return err
}

func pluckIDs(db *gorm.DB, collection string) (core.IDSet, error) {
	var ids []string
	if err := db.Table(collection).Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return core.NewIDSet(ids...), nil
}
