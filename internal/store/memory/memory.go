// Package memory is an in-process gateway. It keeps committed entities in maps
// and stages each transaction's inserts until Commit. Pipeline and handler
// tests use it when they need a gateway without a database.
package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/JonMunkholm/barista/internal/core"
)

// ErrTxDone is returned when a finished transaction is used again.
var ErrTxDone = errors.New("transaction already committed or rolled back")

// Store is a core.Gateway backed by maps.
type Store struct {
	mu   sync.RWMutex
	data map[string]map[string]core.Entity

	// FailInsertID makes Insert fail for this id, to exercise rollback.
	FailInsertID string
	// FailCommit, when set, is returned by every Commit.
	FailCommit error
}

// New returns an empty store.
func New() *Store {
	return &Store{data: make(map[string]map[string]core.Entity)}
}

// Seed records ids as present in collection without entity bodies.
func (s *Store) Seed(collection string, ids ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		s.table(collection)[id] = nil
	}
}

// Get returns the committed entity for id.
func (s *Store) Get(collection, id string) (core.Entity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.data[collection][id]
	return e, ok
}

// Count returns the number of committed ids in collection.
func (s *Store) Count(collection string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data[collection])
}

// table must be called with mu held for writing.
func (s *Store) table(collection string) map[string]core.Entity {
	t, ok := s.data[collection]
	if !ok {
		t = make(map[string]core.Entity)
		s.data[collection] = t
	}
	return t
}

func (s *Store) IDs(ctx context.Context, collection string) (core.IDSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make(core.IDSet, len(s.data[collection]))
	for id := range s.data[collection] {
		ids[id] = struct{}{}
	}
	return ids, nil
}

func (s *Store) Begin(ctx context.Context) (core.Tx, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &tx{store: s, pending: make(map[string]map[string]core.Entity)}, nil
}

type tx struct {
	store   *Store
	pending map[string]map[string]core.Entity
	done    bool
}

func (t *tx) IDs(ctx context.Context, collection string) (core.IDSet, error) {
	if t.done {
		return nil, ErrTxDone
	}
	ids, err := t.store.IDs(ctx, collection)
	if err != nil {
		return nil, err
	}
	for id := range t.pending[collection] {
		ids[id] = struct{}{}
	}
	return ids, nil
}

func (t *tx) Exists(ctx context.Context, collection, id string) (bool, error) {
	if t.done {
		return false, ErrTxDone
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if _, ok := t.pending[collection][id]; ok {
		return true, nil
	}
	_, ok := t.store.Get(collection, id)
	return ok, nil
}

func (t *tx) Insert(ctx context.Context, collection string, e core.Entity) error {
	if t.done {
		return ErrTxDone
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	id := e.PrimaryKey()
	if id == t.store.FailInsertID {
		return fmt.Errorf("insert %s %s: simulated failure", collection, id)
	}
	exists, _ := t.Exists(ctx, collection, id)
	if exists {
		return fmt.Errorf("duplicate key value violates unique constraint on %s.id (%s)", collection, id)
	}

	if t.pending[collection] == nil {
		t.pending[collection] = make(map[string]core.Entity)
	}
	t.pending[collection][id] = e
	return nil
}

func (t *tx) Commit(ctx context.Context) error {
	if t.done {
		return ErrTxDone
	}
	t.done = true
	if t.store.FailCommit != nil {
		return t.store.FailCommit
	}

	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	for coll, rows := range t.pending {
		table := t.store.table(coll)
		for id, e := range rows {
			table[id] = e
		}
	}
	return nil
}

func (t *tx) Rollback(ctx context.Context) error {
	if t.done {
		return ErrTxDone
	}
	t.done = true
	t.pending = nil
	return nil
}
