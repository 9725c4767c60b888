// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"context"
	"errors"
)

var _ Subscription = (*SubscriptionFunc)(nil)

// Event is a record of an observable state change.
type Event interface {
	Name() string
}

// Subscription defines how to consume events
type Subscription interface {
	// Accept returns fatal errors
	Accept(ctx context.Context, e Event) error
	// Close returns fatal errors
	Close() error
}

type SubscriptionFunc struct {
	AcceptF func(ctx context.Context, e Event) error
}

func (s SubscriptionFunc) Accept(ctx context.Context, e Event) error {
	return s.AcceptF(ctx, e)
}

func (SubscriptionFunc) Close() error {
	return nil
}

func notifyAll(ctx context.Context, e Event, subs ...Subscription) error {
	var errs []error
	for _, sub := range subs {
		if err := sub.Accept(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Recorder collects every delivered event.
type Recorder struct {
	Events []Event
}

func (r *Recorder) Accept(_ context.Context, e Event) error {
	r.Events = append(r.Events, e)
	return nil
}

func (*Recorder) Close() error {
	return nil
}
