package core

// load.go writes transformed rows through the gateway.
//
// Each row is checked on its own (existing id, foreign keys, email, entity
// shape) and either staged, skipped, or rejected. Problems with one row never
// stop the others. Staged entities are then inserted and committed in a single
// transaction: if any insert or the commit fails, everything is rolled back
// and a LoadError is returned.

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// ContextCheckInterval is how often (in rows) the loader checks for cancellation.
var ContextCheckInterval = 100

// LoadOutcome counts what happened to each row. Only Inserted is authoritative;
// Skipped and Rejected are informational.
type LoadOutcome struct {
	Inserted int
	Skipped  int // id already present in the collection
	Rejected int // failed a row-level check or could not be processed
}

// Load inserts the new rows of ds into d.Collection and returns how many were inserted.
func Load(ctx context.Context, gw Gateway, ds *Dataset, d Descriptor) (int, error) {
	out, err := loadRows(ctx, gw, ds, d, slog.Default())
	return out.Inserted, err
}

func loadRows(ctx context.Context, gw Gateway, ds *Dataset, d Descriptor, logger *slog.Logger) (LoadOutcome, error) {
	var out LoadOutcome

	tx, err := gw.Begin(ctx)
	if err != nil {
		return out, &LoadError{Collection: d.Collection, Err: fmt.Errorf("begin transaction: %w", err)}
	}
	committed := false
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				logger.Debug("rollback after failed load", "error", rbErr)
			}
		}
	}()

	// Fresh snapshot inside the transaction; the validator's copy may be stale.
	refs, err := LoadReferences(ctx, tx, d)
	if err != nil {
		return out, &LoadError{Collection: d.Collection, Err: err}
	}

	staged := make([]Entity, 0, ds.Len())
	for i, row := range ds.Rows {
		if i%ContextCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return out, &LoadError{Collection: d.Collection, Err: err}
			}
		}

		entity, exists, err := stageRow(ctx, tx, d, row, refs)
		switch {
		case err != nil:
			out.Rejected++
			logger.Warn("row rejected",
				"line", ds.Line(i),
				"id", row.Get("id").Str(),
				"error", err,
			)
		case exists:
			out.Skipped++
			logger.Debug("row skipped, id already present", "line", ds.Line(i), "id", row.Get("id").Str())
		default:
			staged = append(staged, entity)
		}
	}

	for _, e := range staged {
		if err := tx.Insert(ctx, d.Collection, e); err != nil {
			return out, &LoadError{Collection: d.Collection, Err: fmt.Errorf("insert id %s: %w", e.PrimaryKey(), err)}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return out, &LoadError{Collection: d.Collection, Err: fmt.Errorf("commit: %w", err)}
	}
	committed = true

	out.Inserted = len(staged)
	logger.Info("load complete",
		"collection", d.Collection,
		"inserted", out.Inserted,
		"skipped", out.Skipped,
		"rejected", out.Rejected,
	)
	return out, nil
}

// stageRow decides the fate of one row. A panic while building the entity is
// turned into an error so it only costs this row.
func stageRow(ctx context.Context, tx Tx, d Descriptor, row Row, refs References) (e Entity, exists bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			e, exists, err = nil, false, fmt.Errorf("panic while processing row: %v", r)
		}
	}()

	id := row.Get("id")
	if id.IsMissing() || strings.TrimSpace(id.Str()) == "" {
		return nil, false, errors.New("missing id")
	}

	exists, err = tx.Exists(ctx, d.Collection, id.Str())
	if err != nil {
		return nil, false, fmt.Errorf("lookup id: %w", err)
	}
	if exists {
		return nil, true, nil
	}

	if err := CheckRow(d, row, refs); err != nil {
		return nil, false, err
	}

	e, err = d.Build(row)
	if err != nil {
		return nil, false, err
	}
	return e, false, nil
}
