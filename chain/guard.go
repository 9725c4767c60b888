// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"context"

	"github.com/ava-labs/groupsavings/state"
)

// Guard rejects a call before its body runs.
type Guard func(ctx context.Context, im state.Immutable) error

// Call describes a guarded entry point.
type Call struct {
	Name string
	// Guards run in order; the first error aborts the call.
	Guards []Guard
	// Lock, if set, is held for the duration of the body. A nested call
	// that asks for a lock already held fails with ErrReentrantCall.
	Lock string
}

// Run executes [f] after [call]'s guards pass and its lock is acquired.
func (c *Chain) Run(
	ctx context.Context,
	call Call,
	f func(ctx context.Context, mu state.Mutable) error,
) error {
	return c.Execute(ctx, call.Name, func(ctx context.Context, mu state.Mutable) error {
		for _, g := range call.Guards {
			if err := g(ctx, mu); err != nil {
				return err
			}
		}
		if call.Lock != "" {
			fr, _ := frameFrom(ctx, c)
			if !fr.lock(call.Lock) {
				c.metrics.reentrancyRejected.Inc()
				return ErrReentrantCall
			}
			defer fr.unlock(call.Lock)
		}
		return f(ctx, mu)
	})
}
