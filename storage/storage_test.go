// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ava-labs/groupsavings/codec"
	"github.com/ava-labs/groupsavings/consts"
	"github.com/ava-labs/groupsavings/crypto/ed25519"
	"github.com/ava-labs/groupsavings/state"
	"github.com/ava-labs/groupsavings/utils"
)

var (
	ledger = codec.CreateAddress(consts.LedgerID, utils.ToID([]byte("ledger")))
	asset  = codec.CreateAddress(consts.TokenID, utils.ToID([]byte("asset")))
	alice  = codec.CreateAddress(consts.CustodyID, utils.ToID([]byte("alice")))
	bob    = codec.CreateAddress(consts.CustodyID, utils.ToID([]byte("bob")))
)

func TestLedgerConfig(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	mu := state.MutableStorage{}

	_, err := GetLedgerConfig(ctx, mu, ledger)
	require.ErrorIs(err, ErrLedgerNotFound)

	priv, err := ed25519.GeneratePrivateKey()
	require.NoError(err)
	cfg := &LedgerConfig{
		Owner:       codec.CreateAddress(consts.ED25519ID, utils.ToID([]byte("owner"))),
		OwnerKey:    priv.PublicKey(),
		Quorum:      200,
		Asset:       asset,
		Paused:      true,
		MetadataURI: "ipfs://group",
	}
	require.NoError(SetLedgerConfig(ctx, mu, ledger, cfg))
	got, err := GetLedgerConfig(ctx, mu, ledger)
	require.NoError(err)
	require.Equal(cfg, got)

	cfg.MetadataURI = strings.Repeat("a", MaxMetadataURISize+1)
	require.ErrorIs(SetLedgerConfig(ctx, mu, ledger, cfg), ErrMetadataTooLarge)
}

func TestMember(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	mu := state.MutableStorage{}

	m, err := GetMember(ctx, mu, ledger, alice)
	require.NoError(err)
	require.Equal(NonMember, m.State)

	m = &Member{State: Active, IdentityKey: utils.ToID([]byte("alice")), AgreementRef: "agreement-1"}
	require.NoError(SetMember(ctx, mu, ledger, alice, m))
	got, err := GetMember(ctx, mu, ledger, alice)
	require.NoError(err)
	require.Equal(m, got)
	require.Equal("ACTIVE", got.State.String())

	m.AgreementRef = strings.Repeat("a", MaxAgreementRefSize+1)
	require.ErrorIs(SetMember(ctx, mu, ledger, alice, m), ErrAgreementTooLarge)
}

func TestContributionSupply(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	mu := state.MutableStorage{}

	require.NoError(MintContribution(ctx, mu, ledger, alice, 600))
	require.NoError(MintContribution(ctx, mu, ledger, bob, 400))
	require.NoError(MoveContribution(ctx, mu, ledger, alice, bob, 100))
	require.ErrorIs(BurnContribution(ctx, mu, ledger, alice, 501), ErrInsufficientAmount)
	require.NoError(BurnContribution(ctx, mu, ledger, alice, 500))

	aliceBal, err := GetContributionBalance(ctx, mu, ledger, alice)
	require.NoError(err)
	require.Zero(aliceBal)
	bobBal, err := GetContributionBalance(ctx, mu, ledger, bob)
	require.NoError(err)
	require.Equal(uint64(500), bobBal)
	supply, err := GetContributionSupply(ctx, mu, ledger)
	require.NoError(err)
	require.Equal(aliceBal+bobBal, supply)

	// Zero balances are not stored.
	_, ok := mu[string(ContributionBalanceKey(ledger, alice))]
	require.False(ok)
}

func TestAccumulator(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	mu := state.MutableStorage{}

	require.NoError(SetAccumulator(ctx, mu, ledger, bob, 500))
	w, err := GetAccumulator(ctx, mu, ledger, bob)
	require.NoError(err)
	require.Equal(uint64(500), w)

	require.NoError(SetAccumulator(ctx, mu, ledger, bob, 0))
	w, err = GetAccumulator(ctx, mu, ledger, bob)
	require.NoError(err)
	require.Zero(w)
}

func TestCustodyAccount(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	mu := state.MutableStorage{}

	_, exists, err := GetCustodyAccount(ctx, mu, alice)
	require.NoError(err)
	require.False(exists)

	c := &CustodyAccount{Ledger: ledger, Asset: asset, IdentityKey: utils.ToID([]byte("alice"))}
	require.NoError(SetCustodyAccount(ctx, mu, alice, c))
	got, exists, err := GetCustodyAccount(ctx, mu, alice)
	require.NoError(err)
	require.True(exists)
	require.False(got.Claimed())

	got.Claimant = bob
	require.NoError(SetCustodyAccount(ctx, mu, alice, got))
	got, _, err = GetCustodyAccount(ctx, mu, alice)
	require.NoError(err)
	require.True(got.Claimed())
	require.Equal(bob, got.Claimant)
}
