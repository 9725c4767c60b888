// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledger

import (
	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	registrations prometheus.Counter
	terminations  prometheus.Counter
	contributed   prometheus.Counter
	distributed   prometheus.Counter
	votes         prometheus.Counter
	grants        prometheus.Counter
}

func newMetrics(r prometheus.Registerer) (*metrics, error) {
	m := &metrics{
		registrations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ledger",
			Name:      "registrations",
			Help:      "number of memberships activated",
		}),
		terminations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ledger",
			Name:      "terminations",
			Help:      "number of memberships terminated",
		}),
		contributed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ledger",
			Name:      "contributed",
			Help:      "base units pulled into the pool",
		}),
		distributed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ledger",
			Name:      "distributed",
			Help:      "base units paid out of the pool",
		}),
		votes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ledger",
			Name:      "votes",
			Help:      "number of governance votes recorded",
		}),
		grants: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ledger",
			Name:      "grants",
			Help:      "number of spending permissions granted",
		}),
	}
	errs := wrappers.Errs{}
	errs.Add(
		r.Register(m.registrations),
		r.Register(m.terminations),
		r.Register(m.contributed),
		r.Register(m.distributed),
		r.Register(m.votes),
		r.Register(m.grants),
	)
	return m, errs.Err
}
