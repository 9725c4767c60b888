// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledger

import (
	"context"
	"errors"
	"testing"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ava-labs/groupsavings/asset"
	"github.com/ava-labs/groupsavings/auth"
	"github.com/ava-labs/groupsavings/chain"
	"github.com/ava-labs/groupsavings/codec"
	"github.com/ava-labs/groupsavings/consts"
	"github.com/ava-labs/groupsavings/crypto/ed25519"
	"github.com/ava-labs/groupsavings/factory"
	"github.com/ava-labs/groupsavings/state"
	"github.com/ava-labs/groupsavings/storage"
	"github.com/ava-labs/groupsavings/trace"
	"github.com/ava-labs/groupsavings/utils"
)

func TestPayoutOf(t *testing.T) {
	tests := []struct {
		name     string
		pool     uint64
		balance  uint64
		supply   uint64
		expected uint64
	}{
		{name: "whole pool", pool: 1000, balance: 10, supply: 10, expected: 1000},
		{name: "proportional", pool: 1000, balance: 600, supply: 1000, expected: 600},
		{name: "rounds down", pool: 10, balance: 1, supply: 3, expected: 3},
		{name: "rounds to zero", pool: 1, balance: 1, supply: 3, expected: 0},
		{name: "no overflow in product", pool: consts.MaxUint64, balance: consts.MaxUint64 - 1, supply: consts.MaxUint64, expected: consts.MaxUint64 - 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payout, err := payoutOf(tt.pool, tt.balance, tt.supply)
			require.NoError(t, err)
			require.Equal(t, tt.expected, payout)
		})
	}

	_, err := payoutOf(consts.MaxUint64, 2, 1)
	require.ErrorIs(t, err, ErrPayoutOverflow)
}

func TestScenarioProportionalDistribution(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	e := newEnv(t)
	alice := e.member(t, "alice", 600)
	bob := e.member(t, "bob", 400)

	pool, err := e.ledger.PoolBalance(ctx)
	require.NoError(err)
	require.Equal(uint64(1000), pool)

	payout, err := e.ledger.DistributeContributionAsset(ctx, e.owner, alice)
	require.NoError(err)
	require.Equal(uint64(600), payout)
	require.Equal(uint64(600), e.tokenBalance(t, alice))

	bal, err := e.ledger.BalanceOf(ctx, alice)
	require.NoError(err)
	require.Zero(bal)
	e.requireSupplyInvariant(t, alice, bob)

	require.Equal(&DistributionMade{
		Actor:   e.owner,
		Account: alice,
		Burned:  600,
		Payout:  600,
		Pool:    1000,
		Supply:  1000,
	}, e.events.Events[len(e.events.Events)-1])

	_, err = e.ledger.DistributeContributionAsset(ctx, e.owner, alice)
	require.ErrorIs(err, ErrZeroBalance)
}

func TestContributeThenDistributeRoundTrip(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	e := newEnv(t)
	account := e.member(t, "alice", 1234)

	payout, err := e.ledger.DistributeContributionAsset(ctx, e.owner, account)
	require.NoError(err)
	require.Equal(uint64(1234), payout)

	pool, err := e.ledger.PoolBalance(ctx)
	require.NoError(err)
	require.Zero(pool)
}

func TestContributeValidation(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	e := newEnv(t)
	account := e.member(t, "alice", 0)

	require.ErrorIs(e.ledger.Contribute(ctx, e.owner, account, 0), ErrZeroAmount)
	require.ErrorIs(e.ledger.Contribute(ctx, e.owner, randomAddress(t), 1), ErrMemberNotActive)
	// Nothing was delivered to the custody account yet.
	require.ErrorIs(e.ledger.Contribute(ctx, e.owner, account, 1), asset.ErrInsufficientBalance)
	e.requireSupplyInvariant(t, account)

	supply, err := e.ledger.TotalSupply(ctx)
	require.NoError(err)
	require.Zero(supply)
}

func TestCreditActor(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	e := newEnv(t, func(c *Config) { c.CreditActor = true })
	account := e.member(t, "alice", 50)

	bal, err := e.ledger.BalanceOf(ctx, account)
	require.NoError(err)
	require.Zero(bal)
	bal, err = e.ledger.BalanceOf(ctx, e.owner)
	require.NoError(err)
	require.Equal(uint64(50), bal)
	e.requireSupplyInvariant(t, account, e.owner)
}

func TestDistributeRequiresSupplyAndPool(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	e := newEnv(t)
	alice := e.member(t, "alice", 0)

	_, err := e.ledger.BatchDistributeContributionAsset(ctx, e.owner, []codec.Address{alice})
	require.ErrorIs(err, ErrZeroSupply)

	e.mint(t, alice, 500)
	require.NoError(e.ledger.Contribute(ctx, e.owner, alice, 500))

	// Drain the pool through an approved operator.
	operator := randomAddress(t)
	require.NoError(e.ledger.ApproveToUseContribution(ctx, e.owner, alice, operator))
	require.NoError(e.ledger.GrantPermissionToUseContribution(ctx, e.owner, operator, 500))
	require.NoError(e.chain.Execute(ctx, "spend", func(ctx context.Context, mu state.Mutable) error {
		return e.token.TransferFrom(ctx, mu, operator, e.ledger.Address(), operator, 500)
	}))

	_, err = e.ledger.DistributeContributionAsset(ctx, e.owner, alice)
	require.ErrorIs(err, ErrEmptyPool)
	_, err = e.ledger.BatchDistributeContributionAsset(ctx, e.owner, []codec.Address{alice})
	require.ErrorIs(err, ErrEmptyPool)

	bal, err := e.ledger.BalanceOf(ctx, alice)
	require.NoError(err)
	require.Equal(uint64(500), bal)
}

func TestDistributeZeroPayout(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	e := newEnv(t)
	alice := e.member(t, "alice", 1)
	bob := e.member(t, "bob", 1)
	carol := e.member(t, "carol", 1)

	// Leave a single unit in the pool.
	operator := randomAddress(t)
	require.NoError(e.ledger.SetQuorum(ctx, e.owner, 0))
	require.NoError(e.ledger.GrantPermissionToUseContribution(ctx, e.owner, operator, 2))
	require.NoError(e.chain.Execute(ctx, "spend", func(ctx context.Context, mu state.Mutable) error {
		return e.token.TransferFrom(ctx, mu, operator, e.ledger.Address(), operator, 2)
	}))

	_, err := e.ledger.DistributeContributionAsset(ctx, e.owner, alice)
	require.ErrorIs(err, ErrZeroPayout)

	total, err := e.ledger.BatchDistributeContributionAsset(ctx, e.owner, []codec.Address{alice, bob, carol})
	require.NoError(err)
	require.Zero(total)
	e.requireSupplyInvariant(t, alice, bob, carol)
	supply, err := e.ledger.TotalSupply(ctx)
	require.NoError(err)
	require.Equal(uint64(3), supply)
}

func TestBatchDistribution(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	e := newEnv(t)
	alice := e.member(t, "alice", 500)
	bob := e.member(t, "bob", 300)
	carol := e.member(t, "carol", 200)
	idle := e.member(t, "idle", 0)

	total, err := e.ledger.BatchDistributeContributionAsset(ctx, e.owner, []codec.Address{alice, idle, bob, alice})
	require.NoError(err)
	require.Equal(uint64(800), total)
	require.Equal(uint64(500), e.tokenBalance(t, alice))
	require.Equal(uint64(300), e.tokenBalance(t, bob))
	e.requireSupplyInvariant(t, alice, bob, carol, idle)

	require.Equal(&BatchDistributed{
		Actor:    e.owner,
		Accounts: 4,
		Paid:     2,
		Total:    800,
	}, e.events.Events[len(e.events.Events)-1])
}

// Each batch snapshots the pool once on entry. Splitting the same accounts
// over two batches re-snapshots in between, so rounding remainders left by
// the first batch are paid out by the second.
func TestSequentialBatchesVersusSinglePass(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	setup := func() (*env, []codec.Address) {
		e := newEnv(t)
		accounts := []codec.Address{
			e.member(t, "alice", 1),
			e.member(t, "bob", 1),
			e.member(t, "carol", 1),
		}
		// A donation to the pool that does not mint any balance.
		e.mint(t, e.ledger.Address(), 8)
		return e, accounts
	}

	single, accounts := setup()
	singleTotal, err := single.ledger.BatchDistributeContributionAsset(ctx, single.owner, accounts)
	require.NoError(err)

	split, accounts := setup()
	first, err := split.ledger.BatchDistributeContributionAsset(ctx, split.owner, accounts[:1])
	require.NoError(err)
	second, err := split.ledger.BatchDistributeContributionAsset(ctx, split.owner, accounts[1:])
	require.NoError(err)
	splitTotal := first + second

	t.Logf("pool=11 single pass paid %d, two batches paid %d (difference %d)", singleTotal, splitTotal, splitTotal-singleTotal)
	require.Equal(uint64(9), singleTotal)
	require.Equal(uint64(11), splitTotal)
	require.GreaterOrEqual(splitTotal, singleTotal)
	require.LessOrEqual(splitTotal, uint64(11))
}

func TestGovernanceQuorum(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	e := newEnv(t)
	voter := e.member(t, "alice", 500)
	operator := randomAddress(t)

	require.NoError(e.ledger.ApproveToUseContribution(ctx, e.owner, voter, operator))
	weight, err := e.ledger.Accumulator(ctx, operator)
	require.NoError(err)
	require.Equal(uint64(500), weight)

	require.NoError(e.ledger.GrantPermissionToUseContribution(ctx, e.owner, operator, 250))
	weight, err = e.ledger.Accumulator(ctx, operator)
	require.NoError(err)
	require.Zero(weight)
	require.Equal(&PermissionGranted{
		Actor:    e.owner,
		Operator: operator,
		Amount:   250,
		Achieved: 500,
		Required: 200,
	}, e.events.Events[len(e.events.Events)-1])

	require.NoError(e.chain.View(ctx, func(ctx context.Context, im state.Immutable) error {
		allowance, err := e.token.Allowance(ctx, im, e.ledger.Address(), operator)
		require.NoError(err)
		require.Equal(uint64(250), allowance)
		return nil
	}))

	err = e.ledger.GrantPermissionToUseContribution(ctx, e.owner, operator, 250)
	require.ErrorIs(err, ErrQuorumNotReached)
	require.ErrorContains(err, "achieved=0 required=200")
}

func TestRepeatedVotesAccumulate(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	e := newEnv(t)
	voter := e.member(t, "alice", 150)
	operator := randomAddress(t)

	require.NoError(e.ledger.ApproveToUseContribution(ctx, e.owner, voter, operator))
	require.ErrorIs(e.ledger.GrantPermissionToUseContribution(ctx, e.owner, operator, 1), ErrQuorumNotReached)
	require.NoError(e.ledger.ApproveToUseContribution(ctx, e.owner, voter, operator))

	weight, err := e.ledger.Accumulator(ctx, operator)
	require.NoError(err)
	require.Equal(uint64(300), weight)
	require.NoError(e.ledger.GrantPermissionToUseContribution(ctx, e.owner, operator, 1))

	require.NoError(e.ledger.ApproveToUseContribution(ctx, e.owner, voter, operator))
	require.NoError(e.ledger.ResetQuorum(ctx, e.owner, operator))
	weight, err = e.ledger.Accumulator(ctx, operator)
	require.NoError(err)
	require.Zero(weight)

	idle := e.member(t, "idle", 0)
	require.ErrorIs(e.ledger.ApproveToUseContribution(ctx, e.owner, idle, operator), ErrZeroBalance)
	require.ErrorIs(e.ledger.ApproveToUseContribution(ctx, e.owner, randomAddress(t), operator), ErrMemberNotActive)
}

type mockEnv struct {
	chain  *chain.Chain
	ledger *Ledger
	asset  *asset.MockFungible
	owner  codec.Address
	events *chain.Recorder
}

func newMockEnv(t *testing.T) *mockEnv {
	require := require.New(t)
	ctx := context.Background()

	ctrl := gomock.NewController(t)
	fungible := asset.NewMockFungible(ctrl)
	fungible.EXPECT().Address().Return(codec.CreateAddress(consts.TokenID, utils.ToID([]byte("mock")))).AnyTimes()

	c, err := chain.New(logging.NoLog{}, trace.Noop("test"), state.NewMemoryDatabase(), prometheus.NewRegistry())
	require.NoError(err)
	assets := asset.NewRegistry()
	require.NoError(assets.Register(fungible))

	ownerSK, err := ed25519.GeneratePrivateKey()
	require.NoError(err)
	l, err := New(ctx, logging.NoLog{}, c, factory.New(logging.NoLog{}, c, assets), assets, prometheus.NewRegistry(), Config{
		Name:     "mocked",
		OwnerKey: ownerSK.PublicKey(),
		Quorum:   1,
		Asset:    fungible.Address(),
	})
	require.NoError(err)

	rec := &chain.Recorder{}
	c.Subscribe(rec)
	return &mockEnv{
		chain:  c,
		ledger: l,
		asset:  fungible,
		owner:  auth.NewED25519Address(ownerSK.PublicKey()),
		events: rec,
	}
}

func TestAssetFailureRollsBackBookkeeping(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	e := newMockEnv(t)

	errTransfer := errors.New("transfer failed")
	e.asset.EXPECT().Approve(gomock.Any(), gomock.Any(), gomock.Any(), e.ledger.Address(), asset.Unlimited).Return(nil)
	account, err := e.ledger.RegisterMember(ctx, e.owner, "alice", "agreement")
	require.NoError(err)

	e.asset.EXPECT().TransferFrom(gomock.Any(), gomock.Any(), e.ledger.Address(), account, e.ledger.Address(), uint64(100)).Return(errTransfer)
	require.ErrorIs(e.ledger.Contribute(ctx, e.owner, account, 100), errTransfer)

	bal, err := e.ledger.BalanceOf(ctx, account)
	require.NoError(err)
	require.Zero(bal)
	supply, err := e.ledger.TotalSupply(ctx)
	require.NoError(err)
	require.Zero(supply)
	require.Len(e.events.Events, 2)

	// A failed payout leaves the balance in place.
	e.asset.EXPECT().TransferFrom(gomock.Any(), gomock.Any(), e.ledger.Address(), account, e.ledger.Address(), uint64(100)).Return(nil)
	require.NoError(e.ledger.Contribute(ctx, e.owner, account, 100))
	e.asset.EXPECT().BalanceOf(gomock.Any(), gomock.Any(), e.ledger.Address()).Return(uint64(100), nil)
	e.asset.EXPECT().Transfer(gomock.Any(), gomock.Any(), e.ledger.Address(), account, uint64(100)).Return(errTransfer)
	_, err = e.ledger.DistributeContributionAsset(ctx, e.owner, account)
	require.ErrorIs(err, errTransfer)

	bal, err = e.ledger.BalanceOf(ctx, account)
	require.NoError(err)
	require.Equal(uint64(100), bal)
	supply, err = e.ledger.TotalSupply(ctx)
	require.NoError(err)
	require.Equal(uint64(100), supply)
}

func TestReentrantDistributionRejected(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	e := newMockEnv(t)

	e.asset.EXPECT().Approve(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	account, err := e.ledger.RegisterMember(ctx, e.owner, "alice", "agreement")
	require.NoError(err)
	e.asset.EXPECT().TransferFrom(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	require.NoError(e.ledger.Contribute(ctx, e.owner, account, 100))

	var reentryErr error
	e.asset.EXPECT().BalanceOf(gomock.Any(), gomock.Any(), e.ledger.Address()).Return(uint64(100), nil)
	e.asset.EXPECT().Transfer(gomock.Any(), gomock.Any(), e.ledger.Address(), account, uint64(100)).DoAndReturn(
		func(ctx context.Context, mu state.Mutable, _, _ codec.Address, _ uint64) error {
			// The balance is already burned when the asset calls back.
			bal, err := storage.GetContributionBalance(ctx, mu, e.ledger.Address(), account)
			require.NoError(err)
			require.Zero(bal)
			_, reentryErr = e.ledger.DistributeContributionAsset(ctx, e.owner, account)
			return nil
		},
	)
	payout, err := e.ledger.DistributeContributionAsset(ctx, e.owner, account)
	require.NoError(err)
	require.Equal(uint64(100), payout)
	require.ErrorIs(reentryErr, chain.ErrReentrantCall)
}

func TestRevertedOuterCallSkipsMetrics(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	e := newEnv(t)
	alice := e.member(t, "alice", 100)
	e.mint(t, alice, 50)
	counted := testutil.ToFloat64(e.ledger.metrics.contributed)
	require.Equal(float64(100), counted)

	errAbort := errors.New("abort")
	err := e.chain.Execute(ctx, "outer", func(ctx context.Context, _ state.Mutable) error {
		if err := e.ledger.Contribute(ctx, e.owner, alice, 50); err != nil {
			return err
		}
		return errAbort
	})
	require.ErrorIs(err, errAbort)
	require.Equal(counted, testutil.ToFloat64(e.ledger.metrics.contributed))
	bal, err := e.ledger.BalanceOf(ctx, alice)
	require.NoError(err)
	require.Equal(uint64(100), bal)

	require.NoError(e.ledger.Contribute(ctx, e.owner, alice, 50))
	require.Equal(counted+50, testutil.ToFloat64(e.ledger.metrics.contributed))
}
