package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/barista/internal/entities"
)

func coffee(id string) *entities.CoffeeProductType {
	return &entities.CoffeeProductType{ID: id, Name: "Type " + id}
}

func TestTx_CommitPublishes(t *testing.T) {
	ctx := context.Background()
	s := New()

	tx, err := s.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.Insert(ctx, entities.TableCoffeeProductTypes, coffee("C1")))

	// Staged rows are visible inside the transaction only.
	inTx, err := tx.Exists(ctx, entities.TableCoffeeProductTypes, "C1")
	require.NoError(t, err)
	assert.True(t, inTx)
	assert.Equal(t, 0, s.Count(entities.TableCoffeeProductTypes))

	require.NoError(t, tx.Commit(ctx))
	assert.Equal(t, 1, s.Count(entities.TableCoffeeProductTypes))

	got, ok := s.Get(entities.TableCoffeeProductTypes, "C1")
	require.True(t, ok)
	assert.Equal(t, "C1", got.PrimaryKey())
}

func TestTx_RollbackDiscards(t *testing.T) {
	ctx := context.Background()
	s := New()

	tx, err := s.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.Insert(ctx, entities.TableCoffeeProductTypes, coffee("C1")))
	require.NoError(t, tx.Rollback(ctx))

	assert.Equal(t, 0, s.Count(entities.TableCoffeeProductTypes))
	assert.ErrorIs(t, tx.Commit(ctx), ErrTxDone)
	assert.ErrorIs(t, tx.Rollback(ctx), ErrTxDone)
}

func TestTx_DuplicateInsert(t *testing.T) {
	ctx := context.Background()
	s := New()
	s.Seed(entities.TableCoffeeProductTypes, "C1")

	tx, err := s.Begin(ctx)
	require.NoError(t, err)

	err = tx.Insert(ctx, entities.TableCoffeeProductTypes, coffee("C1"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate key")
}

func TestTx_IDsIncludePending(t *testing.T) {
	ctx := context.Background()
	s := New()
	s.Seed(entities.TableCoffeeProductTypes, "C1")

	tx, err := s.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.Insert(ctx, entities.TableCoffeeProductTypes, coffee("C2")))

	ids, err := tx.IDs(ctx, entities.TableCoffeeProductTypes)
	require.NoError(t, err)
	assert.True(t, ids.Has("C1"))
	assert.True(t, ids.Has("C2"))

	outside, err := s.IDs(ctx, entities.TableCoffeeProductTypes)
	require.NoError(t, err)
	assert.False(t, outside.Has("C2"))
}

func TestFailureHooks(t *testing.T) {
	ctx := context.Background()
	s := New()
	s.FailInsertID = "BAD"
	s.FailCommit = errors.New("connection reset by peer")

	tx, err := s.Begin(ctx)
	require.NoError(t, err)
	assert.Error(t, tx.Insert(ctx, entities.TableCoffeeProductTypes, coffee("BAD")))
	require.NoError(t, tx.Insert(ctx, entities.TableCoffeeProductTypes, coffee("OK")))

	assert.ErrorIs(t, tx.Commit(ctx), s.FailCommit)
	assert.Equal(t, 0, s.Count(entities.TableCoffeeProductTypes))
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().Begin(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
