// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package tstate

import (
	"context"
	"sync"

	"github.com/ava-labs/groupsavings/state"
)

// TState stages changes on top of a [state.Database]. Each call executes in
// its own [TStateView]; only committed views reach the database.
type TState struct {
	l  sync.Mutex
	db state.Database

	ops int
}

// New returns a new instance of TState.
func New(db state.Database) *TState {
	return &TState{db: db}
}

// NewView returns an empty view reading through to the database.
func (ts *TState) NewView() *TStateView {
	return newView(ts)
}

// OpIndex returns the number of operations committed through ts.
func (ts *TState) OpIndex() int {
	ts.l.Lock()
	defer ts.l.Unlock()

	return ts.ops
}

func (ts *TState) getValue(ctx context.Context, key []byte) ([]byte, error) {
	return ts.db.GetValue(ctx, key)
}

func (ts *TState) commit(ctx context.Context, view *TStateView) error {
	ts.l.Lock()
	defer ts.l.Unlock()

	if len(view.pendingChangedKeys) > 0 {
		if err := ts.db.Apply(ctx, view.pendingChangedKeys); err != nil {
			return err
		}
	}
	ts.ops += len(view.ops)
	return nil
}
