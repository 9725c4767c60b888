// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"github.com/ava-labs/avalanchego/utils/metric"
	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	committed          prometheus.Counter
	reverted           prometheus.Counter
	reentrancyRejected prometheus.Counter
	stateChanges       prometheus.Counter
	events             prometheus.Counter

	callDuration metric.Averager
}

func newMetrics(r prometheus.Registerer) (*metrics, error) {
	callDuration, err := metric.NewAverager(
		"chain_call_duration",
		"time spent executing committed calls",
		r,
	)
	if err != nil {
		return nil, err
	}

	m := &metrics{
		committed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "chain",
			Name:      "calls_committed",
			Help:      "number of calls committed",
		}),
		reverted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "chain",
			Name:      "calls_reverted",
			Help:      "number of calls reverted",
		}),
		reentrancyRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "chain",
			Name:      "reentrancy_rejected",
			Help:      "number of nested calls rejected by a held lock",
		}),
		stateChanges: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "chain",
			Name:      "state_changes",
			Help:      "number of state changes",
		}),
		events: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "chain",
			Name:      "events_emitted",
			Help:      "number of events delivered to subscribers",
		}),
		callDuration: callDuration,
	}

	errs := wrappers.Errs{}
	errs.Add(
		r.Register(m.committed),
		r.Register(m.reverted),
		r.Register(m.reentrancyRejected),
		r.Register(m.stateChanges),
		r.Register(m.events),
	)
	return m, errs.Err
}
