package core

import (
	"context"
	"fmt"
)

// IDSet is the set of primary keys present in a collection.
type IDSet map[string]struct{}

// Has reports whether id is in the set.
func (s IDSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// NewIDSet builds a set from ids.
func NewIDSet(ids ...string) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// References is a snapshot of id sets keyed by collection name.
// It is read once per stage and passed to CheckReferences explicitly.
type References map[string]IDSet

// IDQuerier reads every id of a collection.
type IDQuerier interface {
	IDs(ctx context.Context, collection string) (IDSet, error)
}

// Gateway is the persistence layer the pipeline reads from and writes to.
// Satisfied by the postgres and sqlite stores.
type Gateway interface {
	IDQuerier
	Begin(ctx context.Context) (Tx, error)
}

// Tx is one unit of work. Inserts are invisible to other runs until Commit.
type Tx interface {
	IDQuerier
	Exists(ctx context.Context, collection, id string) (bool, error)
	Insert(ctx context.Context, collection string, e Entity) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// LoadReferences reads the id sets for every collection d refers to.
func LoadReferences(ctx context.Context, q IDQuerier, d Descriptor) (References, error) {
	refs := make(References)
	for _, coll := range d.ReferencedCollections() {
		ids, err := q.IDs(ctx, coll)
		if err != nil {
			return nil, fmt.Errorf("read reference ids from %s: %w", coll, err)
		}
		refs[coll] = ids
	}
	return refs, nil
}
