// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledger

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ava-labs/groupsavings/auth"
	"github.com/ava-labs/groupsavings/chain"
	"github.com/ava-labs/groupsavings/codec"
	"github.com/ava-labs/groupsavings/crypto/ed25519"
	"github.com/ava-labs/groupsavings/state"
	"github.com/ava-labs/groupsavings/storage"
)

// updateConfig applies [f] to the stored configuration and emits the event
// it returns.
func (l *Ledger) updateConfig(
	ctx context.Context,
	call chain.Call,
	f func(ctx context.Context, mu state.Mutable, cfg *storage.LedgerConfig) (chain.Event, error),
) error {
	return l.chain.Run(ctx, call, func(ctx context.Context, mu state.Mutable) error {
		cfg, err := l.config(ctx, mu)
		if err != nil {
			return err
		}
		e, err := f(ctx, mu, cfg)
		if err != nil {
			return err
		}
		if err := storage.SetLedgerConfig(ctx, mu, l.addr, cfg); err != nil {
			return err
		}
		l.log.Info("ledger updated", zap.String("event", e.Name()))
		return l.chain.Emit(ctx, e)
	})
}

func (l *Ledger) Pause(ctx context.Context, actor codec.Address) error {
	return l.updateConfig(ctx, l.admin("Pause", actor), func(_ context.Context, _ state.Mutable, cfg *storage.LedgerConfig) (chain.Event, error) {
		cfg.Paused = true
		return &Paused{Actor: actor}, nil
	})
}

func (l *Ledger) Unpause(ctx context.Context, actor codec.Address) error {
	return l.updateConfig(ctx, l.admin("Unpause", actor), func(_ context.Context, _ state.Mutable, cfg *storage.LedgerConfig) (chain.Event, error) {
		cfg.Paused = false
		return &Unpaused{Actor: actor}, nil
	})
}

// SetQuorum only affects grants issued after it.
func (l *Ledger) SetQuorum(ctx context.Context, actor codec.Address, quorum uint64) error {
	return l.updateConfig(ctx, l.admin("SetQuorum", actor), func(_ context.Context, _ state.Mutable, cfg *storage.LedgerConfig) (chain.Event, error) {
		e := &QuorumUpdated{Actor: actor, Old: cfg.Quorum, New: quorum}
		cfg.Quorum = quorum
		return e, nil
	})
}

func (l *Ledger) SetMetadataURI(ctx context.Context, actor codec.Address, uri string) error {
	if len(uri) > storage.MaxMetadataURISize {
		return storage.ErrMetadataTooLarge
	}
	return l.updateConfig(ctx, l.admin("SetMetadataURI", actor), func(_ context.Context, _ state.Mutable, cfg *storage.LedgerConfig) (chain.Event, error) {
		e := &MetadataUpdated{Actor: actor, Old: cfg.MetadataURI, New: uri}
		cfg.MetadataURI = uri
		return e, nil
	})
}

// SetContributionAsset replaces the pooled asset. It is rejected while any
// contribution balance is outstanding, since those balances are claims on
// the old asset.
func (l *Ledger) SetContributionAsset(ctx context.Context, actor codec.Address, assetAddr codec.Address) error {
	if assetAddr.IsEmpty() {
		return ErrNullAddress
	}
	if _, err := l.assets.Get(assetAddr); err != nil {
		return err
	}
	return l.updateConfig(ctx, l.admin("SetContributionAsset", actor), func(ctx context.Context, mu state.Mutable, cfg *storage.LedgerConfig) (chain.Event, error) {
		supply, err := storage.GetContributionSupply(ctx, mu, l.addr)
		if err != nil {
			return nil, err
		}
		if supply > 0 {
			return nil, fmt.Errorf("%w: supply=%d", ErrOutstandingSupply, supply)
		}
		e := &AssetUpdated{Actor: actor, Old: cfg.Asset, New: assetAddr}
		cfg.Asset = assetAddr
		return e, nil
	})
}

// TransferOwnership hands the owner role to [newOwnerKey]. Claims are
// verified against the new key from then on.
func (l *Ledger) TransferOwnership(ctx context.Context, actor codec.Address, newOwnerKey ed25519.PublicKey) error {
	if newOwnerKey == ed25519.EmptyPublicKey {
		return ErrMissingOwnerKey
	}
	return l.updateConfig(ctx, l.admin("TransferOwnership", actor), func(_ context.Context, _ state.Mutable, cfg *storage.LedgerConfig) (chain.Event, error) {
		newOwner := auth.NewED25519Address(newOwnerKey)
		e := &OwnershipTransferred{Actor: actor, Old: cfg.Owner, New: newOwner}
		cfg.Owner = newOwner
		cfg.OwnerKey = newOwnerKey
		return e, nil
	})
}
