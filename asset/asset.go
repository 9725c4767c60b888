// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package asset defines the fungible asset collaborator consumed by the
// ledger and custody accounts.
package asset

//go:generate mockgen -package=${GOPACKAGE} -destination=mock_fungible.go . Fungible

import (
	"context"
	"sync"

	"github.com/ava-labs/groupsavings/codec"
	"github.com/ava-labs/groupsavings/state"
)

// Unlimited is an allowance that is never decremented.
const Unlimited = ^uint64(0)

// Fungible is a balance-tracking asset. Every mutating method writes through
// [mu] so a failed call is rolled back together with the caller's writes.
// Any returned error must be treated as a hard failure.
type Fungible interface {
	Address() codec.Address
	BalanceOf(ctx context.Context, im state.Immutable, account codec.Address) (uint64, error)
	Allowance(ctx context.Context, im state.Immutable, owner codec.Address, spender codec.Address) (uint64, error)
	Transfer(ctx context.Context, mu state.Mutable, from codec.Address, to codec.Address, amount uint64) error
	TransferFrom(ctx context.Context, mu state.Mutable, spender codec.Address, from codec.Address, to codec.Address, amount uint64) error
	Approve(ctx context.Context, mu state.Mutable, owner codec.Address, spender codec.Address, amount uint64) error
}

// Receiver is notified when an asset is delivered to an account it
// controls.
type Receiver interface {
	OnAssetReceived(
		ctx context.Context,
		mu state.Mutable,
		asset codec.Address,
		operator codec.Address,
		from codec.Address,
		to codec.Address,
		amount uint64,
	) error
}

// ReceiverResolver returns the Receiver responsible for [account], if any.
type ReceiverResolver func(account codec.Address) (Receiver, bool)

// Registry resolves asset addresses to their implementation.
type Registry struct {
	l      sync.RWMutex
	assets map[codec.Address]Fungible
}

func NewRegistry() *Registry {
	return &Registry{assets: map[codec.Address]Fungible{}}
}

func (r *Registry) Register(f Fungible) error {
	r.l.Lock()
	defer r.l.Unlock()

	if _, ok := r.assets[f.Address()]; ok {
		return ErrDuplicateAsset
	}
	r.assets[f.Address()] = f
	return nil
}

func (r *Registry) Get(addr codec.Address) (Fungible, error) {
	r.l.RLock()
	defer r.l.RUnlock()

	f, ok := r.assets[addr]
	if !ok {
		return nil, ErrUnknownAsset
	}
	return f, nil
}
