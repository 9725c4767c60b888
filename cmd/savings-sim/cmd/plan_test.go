// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/ava-labs/avalanchego/api/metrics"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/groupsavings/config"
)

const lifecyclePlan = `
name: lifecycle
owner: admin
steps:
  - action: register
    identity: alice
    agreement: agreement-1
  - action: register
    identity: bob
    agreement: agreement-2
  - action: deposit
    identity: alice
    amount: "100"
  - action: deposit
    identity: bob
    amount: "50"
  - action: contribute
    identity: alice
    amount: "60"
  - action: contribute
    identity: bob
    amount: "30"
  - action: quorum
    amount: "80"
  - action: vote
    identity: bob
    key: treasurer
  - action: grant
    key: treasurer
    amount: "10"
    expect_error: quorum not reached
  - action: vote
    identity: alice
    key: treasurer
  - action: grant
    key: treasurer
    amount: "10"
  - action: pause
  - action: distribute
    identity: alice
    expect_error: ledger paused
  - action: unpause
  - action: distribute
    identity: alice
  - action: claim
    identity: alice
    key: alice-wallet
    deadline: -1m
    expect_error: signature expired
  - action: claim
    identity: alice
    key: alice-wallet
    deadline: 1h
  - action: withdraw
    identity: alice
    key: alice-wallet
    amount: "25"
  - action: balance
    identity: bob
`

func newTestSimulation(t *testing.T, owner string) *simulation {
	cfg := config.NewDefaultConfig()
	cfg.InMemory = true
	s, err := newSimulation(context.Background(), logging.NoLog{}, cfg, newKeystore(""), owner, metrics.NewPrefixGatherer())
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, s.Close())
	})
	return s
}

func TestUnmarshalPlan(t *testing.T) {
	tests := []struct {
		name string
		plan string
		err  error
	}{
		{
			name: "yaml",
			plan: lifecyclePlan,
		},
		{
			name: "json",
			plan: `{"owner": "admin", "steps": [{"action": "register", "identity": "alice", "agreement": "a"}]}`,
		},
		{
			name: "no owner",
			plan: `{"steps": [{"action": "pause"}]}`,
			err:  ErrInvalidPlan,
		},
		{
			name: "no steps",
			plan: `{"owner": "admin"}`,
			err:  ErrInvalidPlan,
		},
		{
			name: "unknown action",
			plan: `{"owner": "admin", "steps": [{"action": "mint"}]}`,
			err:  ErrUnknownAction,
		},
		{
			name: "missing field",
			plan: `{"owner": "admin", "steps": [{"action": "contribute", "identity": "alice"}]}`,
			err:  ErrInvalidStep,
		},
		{
			name: "malformed",
			plan: `{"owner": `,
			err:  ErrInvalidPlan,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := unmarshalPlan([]byte(tt.plan))
			require.ErrorIs(t, err, tt.err)
		})
	}
}

func TestRunLifecyclePlan(t *testing.T) {
	require := require.New(t)

	p, err := unmarshalPlan([]byte(lifecyclePlan))
	require.NoError(err)

	s := newTestSimulation(t, p.Owner)
	var out bytes.Buffer
	require.NoError(s.Run(context.Background(), p, &out))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(lines, len(p.Steps))

	responses := make([]Response, len(lines))
	for i, line := range lines {
		require.NoError(json.Unmarshal([]byte(line), &responses[i]))
		require.Equal(i, responses[i].ID)
	}

	// alice holds 60 of 90 contributed units and the pool holds 90
	distribute := responses[14]
	require.Equal(Distribute, distribute.Action)
	require.Equal("60.000000000", distribute.Result.Amount)

	// 100 deposited, 60 contributed, 60 paid back, 25 withdrawn
	withdraw := responses[17]
	require.Empty(withdraw.Error)
	require.Equal("75.000000000", withdraw.Result.Held)
	require.Equal("0.000000000", withdraw.Result.Balance)

	bob := responses[18]
	require.Equal("30.000000000", bob.Result.Balance)
	require.Equal("20.000000000", bob.Result.Held)
}

func TestRunStopsOnUnexpectedResult(t *testing.T) {
	require := require.New(t)

	p, err := unmarshalPlan([]byte(`{
		"owner": "admin",
		"steps": [
			{"action": "register", "identity": "alice", "agreement": "a"},
			{"action": "register", "identity": "alice", "agreement": "a", "expectError": "already active"},
			{"action": "contribute", "identity": "alice", "amount": "1"},
			{"action": "pause"}
		]
	}`))
	require.NoError(err)

	s := newTestSimulation(t, p.Owner)
	var out bytes.Buffer
	err = s.Run(context.Background(), p, &out)
	// alice never received any asset to contribute
	require.ErrorContains(err, "step 2")

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(lines, 3)
}

func TestRunRejectsUnexpectedSuccess(t *testing.T) {
	p, err := unmarshalPlan([]byte(`{
		"owner": "admin",
		"steps": [{"action": "pause", "expectError": "ledger paused"}]
	}`))
	require.NoError(t, err)

	s := newTestSimulation(t, p.Owner)
	var out bytes.Buffer
	require.ErrorIs(t, s.Run(context.Background(), p, &out), ErrUnexpectedResult)
}

func TestKeystoreMemory(t *testing.T) {
	require := require.New(t)

	k := newKeystore("")
	_, err := k.Get("alice", false)
	require.ErrorIs(err, ErrKeyNotFound)

	a1, err := k.Address("alice")
	require.NoError(err)
	a2, err := k.Address("alice")
	require.NoError(err)
	require.Equal(a1, a2)
}

func TestKeystoreDisk(t *testing.T) {
	require := require.New(t)

	dir := t.TempDir()
	priv, err := newKeystore(dir).Get("alice", true)
	require.NoError(err)

	loaded, err := newKeystore(dir).Get("alice", false)
	require.NoError(err)
	require.Equal(priv, loaded)
}
