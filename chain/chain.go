// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/ava-labs/avalanchego/utils/timer/mockable"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	oteltrace "go.opentelemetry.io/otel/trace"

	"github.com/ava-labs/groupsavings/state"
	"github.com/ava-labs/groupsavings/tstate"
)

// Chain executes calls against shared state one at a time. A call either
// commits every write it made or none of them.
type Chain struct {
	log     logging.Logger
	tracer  trace.Tracer
	db      state.Database
	ts      *tstate.TState
	clock   *mockable.Clock
	metrics *metrics

	// slot holds a token while a top-level call executes
	slot chan struct{}

	subsLock sync.RWMutex
	subs     []Subscription

	closeOnce sync.Once
	closed    chan struct{}
}

func New(
	log logging.Logger,
	tracer trace.Tracer,
	db state.Database,
	registerer prometheus.Registerer,
) (*Chain, error) {
	m, err := newMetrics(registerer)
	if err != nil {
		return nil, err
	}
	return &Chain{
		log:     log,
		tracer:  tracer,
		db:      db,
		ts:      tstate.New(db),
		clock:   &mockable.Clock{},
		metrics: m,
		slot:    make(chan struct{}, 1),
		closed:  make(chan struct{}),
	}, nil
}

// Clock is the time source used for expiry checks.
func (c *Chain) Clock() *mockable.Clock {
	return c.clock
}

func (c *Chain) Now() time.Time {
	return c.clock.Time()
}

// Subscribe registers [sub] to receive every event of every committed call.
func (c *Chain) Subscribe(sub Subscription) {
	c.subsLock.Lock()
	defer c.subsLock.Unlock()

	c.subs = append(c.subs, sub)
}

func (c *Chain) acquire(ctx context.Context) error {
	select {
	case <-c.closed:
		return ErrChainClosed
	default:
	}
	select {
	case c.slot <- struct{}{}:
		return nil
	case <-c.closed:
		return ErrChainClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Chain) release() {
	<-c.slot
}

// Execute runs [f] as a single atomic call named [name].
//
// If [ctx] already carries a frame of this chain, [f] runs nested in that
// frame: its writes and events are rolled back on failure but only become
// durable when the outermost call commits. Otherwise Execute waits for its
// turn, runs [f] in a fresh view, and commits on success. Subscribers and
// commit hooks run after the chain is free to accept the next call.
func (c *Chain) Execute(
	ctx context.Context,
	name string,
	f func(ctx context.Context, mu state.Mutable) error,
) error {
	ctx, span := c.tracer.Start(ctx, "Chain.Execute", oteltrace.WithAttributes(
		attribute.String("call", name),
	))
	defer span.End()

	if fr, ok := frameFrom(ctx, c); ok {
		span.SetAttributes(attribute.Bool("nested", true))
		err := fr.nested(ctx, f)
		endSpan(span, err)
		return err
	}

	fr, err := c.execute(ctx, name, f)
	if err != nil {
		endSpan(span, err)
		return err
	}
	span.SetAttributes(
		attribute.Int("ops", fr.view.OpIndex()),
		attribute.Int("changes", fr.view.PendingChanges()),
		attribute.Int("events", len(fr.events)),
	)
	endSpan(span, nil)

	for _, hook := range fr.hooks {
		hook()
	}
	c.publish(ctx, name, fr.events)
	return nil
}

// execute holds the slot while [f] runs and its view commits.
func (c *Chain) execute(
	ctx context.Context,
	name string,
	f func(ctx context.Context, mu state.Mutable) error,
) (*frame, error) {
	if err := c.acquire(ctx); err != nil {
		return nil, err
	}
	defer c.release()

	start := time.Now()
	fr := newFrame(c, c.ts.NewView())
	if err := f(withFrame(ctx, fr), fr.view); err != nil {
		c.metrics.reverted.Inc()
		c.log.Debug("call reverted",
			zap.String("call", name),
			zap.Int("ops", fr.view.OpIndex()),
			zap.Error(err),
		)
		return nil, err
	}
	if err := fr.view.Commit(ctx); err != nil {
		c.metrics.reverted.Inc()
		c.log.Error("unable to commit call",
			zap.String("call", name),
			zap.Error(err),
		)
		return nil, err
	}
	c.metrics.committed.Inc()
	c.metrics.stateChanges.Add(float64(fr.view.PendingChanges()))
	c.metrics.events.Add(float64(len(fr.events)))
	c.metrics.callDuration.Observe(float64(time.Since(start)))
	c.log.Debug("call committed",
		zap.String("call", name),
		zap.Int("changes", fr.view.PendingChanges()),
		zap.Int("events", len(fr.events)),
		zap.Int("totalOps", c.ts.OpIndex()),
	)
	return fr, nil
}

func endSpan(span oteltrace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return
	}
	span.SetStatus(codes.Ok, "")
}

// View runs a read-only [f] against the latest committed state (or, inside a
// call, against that call's view).
func (c *Chain) View(ctx context.Context, f func(ctx context.Context, im state.Immutable) error) error {
	if fr, ok := frameFrom(ctx, c); ok {
		return f(ctx, fr.view)
	}
	if err := c.acquire(ctx); err != nil {
		return err
	}
	defer c.release()

	return f(ctx, c.ts.NewView())
}

func (c *Chain) publish(ctx context.Context, name string, events []Event) {
	if len(events) == 0 {
		return
	}
	c.subsLock.RLock()
	subs := slices.Clone(c.subs)
	c.subsLock.RUnlock()

	for _, e := range events {
		if err := notifyAll(ctx, e, subs...); err != nil {
			c.log.Warn("subscriber rejected event",
				zap.String("call", name),
				zap.String("event", e.Name()),
				zap.Error(err),
			)
		}
	}
}

// Close stops accepting calls, waits for the running call to finish and
// then closes every subscription and the database. It must not be called
// from inside a call.
func (c *Chain) Close() error {
	var errs []error
	c.closeOnce.Do(func() {
		close(c.closed)
		// The slot is never released again.
		c.slot <- struct{}{}

		c.subsLock.Lock()
		for _, sub := range c.subs {
			if err := sub.Close(); err != nil {
				errs = append(errs, err)
			}
		}
		c.subs = nil
		c.subsLock.Unlock()

		if err := c.db.Close(); err != nil {
			errs = append(errs, err)
		}
	})
	return errors.Join(errs...)
}
