// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pebble

import (
	"context"
	"testing"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/utils/maybe"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *Database {
	cfg := NewDefaultConfig()
	cfg.InMemory = true
	cfg.Sync = false
	db, registry, err := New("", cfg)
	require.NoError(t, err)
	require.NotNil(t, registry)
	t.Cleanup(func() {
		require.NoError(t, db.Close())
	})
	return db
}

func TestApplyAndGet(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	db := newTestDB(t)

	_, err := db.GetValue(ctx, []byte("missing"))
	require.ErrorIs(err, database.ErrNotFound)

	require.NoError(db.Apply(ctx, map[string]maybe.Maybe[[]byte]{
		"a": maybe.Some([]byte("1")),
		"b": maybe.Some([]byte("2")),
	}))
	v, err := db.GetValue(ctx, []byte("a"))
	require.NoError(err)
	require.Equal([]byte("1"), v)

	require.NoError(db.Apply(ctx, map[string]maybe.Maybe[[]byte]{
		"a": maybe.Nothing[[]byte](),
		"b": maybe.Some([]byte("3")),
	}))
	_, err = db.GetValue(ctx, []byte("a"))
	require.ErrorIs(err, database.ErrNotFound)
	v, err = db.GetValue(ctx, []byte("b"))
	require.NoError(err)
	require.Equal([]byte("3"), v)
}

func TestReopen(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	dir := t.TempDir()

	cfg := NewDefaultConfig()
	db, _, err := New(dir, cfg)
	require.NoError(err)
	require.NoError(db.Apply(ctx, map[string]maybe.Maybe[[]byte]{"k": maybe.Some([]byte("v"))}))
	require.NoError(db.Close())
	require.NoError(db.Close())

	db, _, err = New(dir, cfg)
	require.NoError(err)
	defer db.Close()
	v, err := db.GetValue(ctx, []byte("k"))
	require.NoError(err)
	require.Equal([]byte("v"), v)
}
