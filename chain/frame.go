// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"context"

	"github.com/ava-labs/groupsavings/state"
	"github.com/ava-labs/groupsavings/tstate"
)

type frameKey struct {
	c *Chain
}

// frame is the state shared by a top-level call and everything it invokes.
type frame struct {
	c      *Chain
	view   *tstate.TStateView
	events []Event
	hooks  []func()
	locks  map[string]struct{}
}

func newFrame(c *Chain, view *tstate.TStateView) *frame {
	return &frame{
		c:     c,
		view:  view,
		locks: map[string]struct{}{},
	}
}

func withFrame(ctx context.Context, fr *frame) context.Context {
	return context.WithValue(ctx, frameKey{fr.c}, fr)
}

func frameFrom(ctx context.Context, c *Chain) (*frame, bool) {
	fr, ok := ctx.Value(frameKey{c}).(*frame)
	return fr, ok
}

// nested runs [f] inside the current frame and undoes its writes and events
// if it fails.
func (fr *frame) nested(ctx context.Context, f func(context.Context, state.Mutable) error) error {
	restorePoint := fr.view.OpIndex()
	eventIndex := len(fr.events)
	hookIndex := len(fr.hooks)
	if err := f(ctx, fr.view); err != nil {
		fr.view.Rollback(ctx, restorePoint)
		fr.events = fr.events[:eventIndex]
		fr.hooks = fr.hooks[:hookIndex]
		return err
	}
	return nil
}

func (fr *frame) lock(name string) bool {
	if _, ok := fr.locks[name]; ok {
		return false
	}
	fr.locks[name] = struct{}{}
	return true
}

func (fr *frame) unlock(name string) {
	delete(fr.locks, name)
}

// Emit records [e] in the current call. It is delivered to subscribers only
// if the outermost call commits.
func (c *Chain) Emit(ctx context.Context, e Event) error {
	fr, ok := frameFrom(ctx, c)
	if !ok {
		return ErrNoCallFrame
	}
	fr.events = append(fr.events, e)
	return nil
}

// OnCommit defers [f] until the outermost call commits. [f] is dropped if
// the enclosing call or any caller of it fails. Outside a call [f] runs
// immediately.
func (c *Chain) OnCommit(ctx context.Context, f func()) {
	fr, ok := frameFrom(ctx, c)
	if !ok {
		f()
		return
	}
	fr.hooks = append(fr.hooks, f)
}

// Locked reports whether the reentrancy lock [name] is held by the call
// running in [ctx].
func (c *Chain) Locked(ctx context.Context, name string) bool {
	fr, ok := frameFrom(ctx, c)
	if !ok {
		return false
	}
	_, held := fr.locks[name]
	return held
}
