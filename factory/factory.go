// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package factory derives custody account addresses and materializes the
// accounts behind them.
package factory

import (
	"context"
	"fmt"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/logging"
	"go.uber.org/zap"

	"github.com/ava-labs/groupsavings/asset"
	"github.com/ava-labs/groupsavings/chain"
	"github.com/ava-labs/groupsavings/codec"
	"github.com/ava-labs/groupsavings/consts"
	"github.com/ava-labs/groupsavings/state"
	"github.com/ava-labs/groupsavings/storage"
	"github.com/ava-labs/groupsavings/utils"
)

const (
	deriveMarker = 0xff

	// Template names the layout of a custody account record. Changing it
	// moves every derived address.
	Template = "groupsavings.CustodyAccount/1"
)

// TemplateFingerprint is mixed into every derived address.
var TemplateFingerprint = utils.ToID([]byte(Template))

// ComputeAddress returns the custody account address for ([ledger], [asset],
// [identityKey]). It does not read state.
func ComputeAddress(ledger codec.Address, asset codec.Address, identityKey ids.ID) codec.Address {
	b := make([]byte, 0, consts.ByteLen+2*codec.AddressLen+2*ids.IDLen)
	b = append(b, deriveMarker)
	b = append(b, ledger[:]...)
	b = append(b, asset[:]...)
	b = append(b, identityKey[:]...)
	b = append(b, TemplateFingerprint[:]...)
	return codec.CreateAddress(consts.CustodyID, utils.ToID(b))
}

type Factory struct {
	log    logging.Logger
	chain  *chain.Chain
	assets *asset.Registry
}

func New(log logging.Logger, c *chain.Chain, assets *asset.Registry) *Factory {
	return &Factory{
		log:    log,
		chain:  c,
		assets: assets,
	}
}

// Deploy materializes the custody account for the given inputs and grants
// [ledger] an unlimited allowance over [assetAddr] from it. A second call
// with the same inputs fails with [ErrAlreadyDeployed].
func (f *Factory) Deploy(ctx context.Context, ledger codec.Address, assetAddr codec.Address, identityKey ids.ID) (codec.Address, error) {
	account := ComputeAddress(ledger, assetAddr, identityKey)
	err := f.chain.Execute(ctx, "factory.Deploy", func(ctx context.Context, mu state.Mutable) error {
		return f.deploy(ctx, mu, account, ledger, assetAddr, identityKey)
	})
	if err != nil {
		return codec.EmptyAddress, err
	}
	return account, nil
}

func (f *Factory) deploy(
	ctx context.Context,
	mu state.Mutable,
	account codec.Address,
	ledger codec.Address,
	assetAddr codec.Address,
	identityKey ids.ID,
) error {
	if ledger.IsEmpty() || assetAddr.IsEmpty() {
		return ErrNullAddress
	}
	_, exists, err := storage.GetCustodyAccount(ctx, mu, account)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: %s", ErrAlreadyDeployed, account)
	}
	fungible, err := f.assets.Get(assetAddr)
	if err != nil {
		return err
	}
	if err := storage.SetCustodyAccount(ctx, mu, account, &storage.CustodyAccount{
		Ledger:      ledger,
		Asset:       assetAddr,
		IdentityKey: identityKey,
	}); err != nil {
		return err
	}
	if err := fungible.Approve(ctx, mu, account, ledger, asset.Unlimited); err != nil {
		return err
	}
	f.chain.OnCommit(ctx, func() {
		f.log.Debug("deployed custody account",
			zap.Stringer("account", account),
			zap.Stringer("ledger", ledger),
			zap.Stringer("identityKey", identityKey),
		)
	})
	return f.chain.Emit(ctx, &AccountDeployed{
		Account:     account,
		Ledger:      ledger,
		Asset:       assetAddr,
		IdentityKey: identityKey,
	})
}

// Deployed reports whether [account] has been materialized.
func (f *Factory) Deployed(ctx context.Context, account codec.Address) (bool, error) {
	var exists bool
	err := f.chain.View(ctx, func(ctx context.Context, im state.Immutable) error {
		var err error
		_, exists, err = storage.GetCustodyAccount(ctx, im, account)
		return err
	})
	return exists, err
}
