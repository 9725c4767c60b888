// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package ledger implements the contribution ledger: membership records,
// contribution balances backed by a pooled fungible asset, quorum weighted
// spending permissions and proportional distribution of the pool.
//
// Every operation takes the acting account explicitly. Mutating operations
// are owner only and run a fixed guard chain before their body: the pause
// check, the owner check and then the ledger's reentrancy lock.
package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/ava-labs/groupsavings/asset"
	"github.com/ava-labs/groupsavings/auth"
	"github.com/ava-labs/groupsavings/chain"
	"github.com/ava-labs/groupsavings/codec"
	"github.com/ava-labs/groupsavings/consts"
	"github.com/ava-labs/groupsavings/crypto/ed25519"
	"github.com/ava-labs/groupsavings/factory"
	"github.com/ava-labs/groupsavings/state"
	"github.com/ava-labs/groupsavings/storage"
	"github.com/ava-labs/groupsavings/utils"
)

type Config struct {
	// Name distinguishes ledgers sharing a chain.
	Name        string
	OwnerKey    ed25519.PublicKey
	Quorum      uint64
	Asset       codec.Address
	MetadataURI string

	// CreditActor credits contributions to the acting owner instead of the
	// custody account the asset was pulled from.
	CreditActor bool
}

// Address returns the ledger address for [name].
func Address(name string) codec.Address {
	return codec.CreateAddress(consts.LedgerID, utils.ToID([]byte("ledger/"+name)))
}

type Ledger struct {
	log     logging.Logger
	chain   *chain.Chain
	factory *factory.Factory
	assets  *asset.Registry
	metrics *metrics

	addr        codec.Address
	lock        string
	creditActor bool
}

// New returns the ledger named in [cfg]. The configuration is persisted the
// first time a ledger is opened; afterwards the stored configuration wins.
func New(
	ctx context.Context,
	log logging.Logger,
	c *chain.Chain,
	f *factory.Factory,
	assets *asset.Registry,
	registerer prometheus.Registerer,
	cfg Config,
) (*Ledger, error) {
	if cfg.OwnerKey == ed25519.EmptyPublicKey {
		return nil, ErrMissingOwnerKey
	}
	m, err := newMetrics(registerer)
	if err != nil {
		return nil, err
	}
	addr := Address(cfg.Name)
	l := &Ledger{
		log:         log,
		chain:       c,
		factory:     f,
		assets:      assets,
		metrics:     m,
		addr:        addr,
		lock:        "ledger/" + addr.String(),
		creditActor: cfg.CreditActor,
	}
	err = c.Execute(ctx, "ledger.Init", func(ctx context.Context, mu state.Mutable) error {
		_, err := storage.GetLedgerConfig(ctx, mu, addr)
		switch {
		case err == nil:
			log.Info("opened existing ledger", zap.Stringer("ledger", addr))
			return nil
		case !errors.Is(err, storage.ErrLedgerNotFound):
			return err
		}
		if !cfg.Asset.IsEmpty() {
			if _, err := assets.Get(cfg.Asset); err != nil {
				return err
			}
		}
		log.Info("initialized ledger",
			zap.Stringer("ledger", addr),
			zap.Stringer("owner", auth.NewED25519Address(cfg.OwnerKey)),
			zap.Uint64("quorum", cfg.Quorum),
		)
		return storage.SetLedgerConfig(ctx, mu, addr, &storage.LedgerConfig{
			Owner:       auth.NewED25519Address(cfg.OwnerKey),
			OwnerKey:    cfg.OwnerKey,
			Quorum:      cfg.Quorum,
			Asset:       cfg.Asset,
			MetadataURI: cfg.MetadataURI,
		})
	})
	if err != nil {
		return nil, err
	}
	return l, nil
}

func (l *Ledger) Address() codec.Address {
	return l.addr
}

func (l *Ledger) config(ctx context.Context, im state.Immutable) (*storage.LedgerConfig, error) {
	return storage.GetLedgerConfig(ctx, im, l.addr)
}

func (l *Ledger) whenNotPaused(ctx context.Context, im state.Immutable) error {
	cfg, err := l.config(ctx, im)
	if err != nil {
		return err
	}
	if cfg.Paused {
		return ErrPaused
	}
	return nil
}

func (l *Ledger) onlyOwner(actor codec.Address) chain.Guard {
	return func(ctx context.Context, im state.Immutable) error {
		cfg, err := l.config(ctx, im)
		if err != nil {
			return err
		}
		if actor != cfg.Owner {
			return fmt.Errorf("%w: %s", ErrNotOwner, actor)
		}
		return nil
	}
}

// guarded is the call descriptor for member facing operations.
func (l *Ledger) guarded(name string, actor codec.Address) chain.Call {
	return chain.Call{
		Name:   "ledger." + name,
		Guards: []chain.Guard{l.whenNotPaused, l.onlyOwner(actor)},
		Lock:   l.lock,
	}
}

// admin is the call descriptor for owner toggles, which stay available
// while paused.
func (l *Ledger) admin(name string, actor codec.Address) chain.Call {
	return chain.Call{
		Name:   "ledger." + name,
		Guards: []chain.Guard{l.onlyOwner(actor)},
	}
}

// fungible resolves the configured contribution asset.
func (l *Ledger) fungible(cfg *storage.LedgerConfig) (asset.Fungible, error) {
	if cfg.Asset.IsEmpty() {
		return nil, ErrAssetNotSet
	}
	return l.assets.Get(cfg.Asset)
}

func (l *Ledger) view(ctx context.Context, f func(context.Context, state.Immutable) error) error {
	return l.chain.View(ctx, f)
}

func (l *Ledger) Config(ctx context.Context) (*storage.LedgerConfig, error) {
	var cfg *storage.LedgerConfig
	err := l.view(ctx, func(ctx context.Context, im state.Immutable) error {
		var err error
		cfg, err = l.config(ctx, im)
		return err
	})
	return cfg, err
}

func (l *Ledger) Owner(ctx context.Context) (codec.Address, error) {
	cfg, err := l.Config(ctx)
	if err != nil {
		return codec.EmptyAddress, err
	}
	return cfg.Owner, nil
}

// OwnerKey is the key claim authorizations must be signed with.
func (l *Ledger) OwnerKey(ctx context.Context) (ed25519.PublicKey, error) {
	cfg, err := l.Config(ctx)
	if err != nil {
		return ed25519.EmptyPublicKey, err
	}
	return cfg.OwnerKey, nil
}

func (l *Ledger) Paused(ctx context.Context) (bool, error) {
	cfg, err := l.Config(ctx)
	if err != nil {
		return false, err
	}
	return cfg.Paused, nil
}

func (l *Ledger) Quorum(ctx context.Context) (uint64, error) {
	cfg, err := l.Config(ctx)
	if err != nil {
		return 0, err
	}
	return cfg.Quorum, nil
}

func (l *Ledger) ContributionAsset(ctx context.Context) (codec.Address, error) {
	cfg, err := l.Config(ctx)
	if err != nil {
		return codec.EmptyAddress, err
	}
	return cfg.Asset, nil
}

func (l *Ledger) MetadataURI(ctx context.Context) (string, error) {
	cfg, err := l.Config(ctx)
	if err != nil {
		return "", err
	}
	return cfg.MetadataURI, nil
}

func (l *Ledger) Member(ctx context.Context, account codec.Address) (*storage.Member, error) {
	var m *storage.Member
	err := l.view(ctx, func(ctx context.Context, im state.Immutable) error {
		var err error
		m, err = storage.GetMember(ctx, im, l.addr, account)
		return err
	})
	return m, err
}

func (l *Ledger) MemberState(ctx context.Context, account codec.Address) (storage.MemberState, error) {
	m, err := l.Member(ctx, account)
	if err != nil {
		return storage.NonMember, err
	}
	return m.State, nil
}

func (l *Ledger) BalanceOf(ctx context.Context, account codec.Address) (uint64, error) {
	var bal uint64
	err := l.view(ctx, func(ctx context.Context, im state.Immutable) error {
		var err error
		bal, err = storage.GetContributionBalance(ctx, im, l.addr, account)
		return err
	})
	return bal, err
}

func (l *Ledger) TotalSupply(ctx context.Context) (uint64, error) {
	var supply uint64
	err := l.view(ctx, func(ctx context.Context, im state.Immutable) error {
		var err error
		supply, err = storage.GetContributionSupply(ctx, im, l.addr)
		return err
	})
	return supply, err
}

func (l *Ledger) Accumulator(ctx context.Context, operator codec.Address) (uint64, error) {
	var weight uint64
	err := l.view(ctx, func(ctx context.Context, im state.Immutable) error {
		var err error
		weight, err = storage.GetAccumulator(ctx, im, l.addr, operator)
		return err
	})
	return weight, err
}

// PoolBalance is the ledger's own balance of the contribution asset.
func (l *Ledger) PoolBalance(ctx context.Context) (uint64, error) {
	var pool uint64
	err := l.view(ctx, func(ctx context.Context, im state.Immutable) error {
		cfg, err := l.config(ctx, im)
		if err != nil {
			return err
		}
		fungible, err := l.fungible(cfg)
		if err != nil {
			return err
		}
		pool, err = fungible.BalanceOf(ctx, im, l.addr)
		return err
	})
	return pool, err
}

// CustodyAddressOf derives the custody account of [identityRef] under the
// current contribution asset.
func (l *Ledger) CustodyAddressOf(ctx context.Context, identityRef string) (codec.Address, error) {
	cfg, err := l.Config(ctx)
	if err != nil {
		return codec.EmptyAddress, err
	}
	if cfg.Asset.IsEmpty() {
		return codec.EmptyAddress, ErrAssetNotSet
	}
	return factory.ComputeAddress(l.addr, cfg.Asset, utils.ToID([]byte(identityRef))), nil
}
