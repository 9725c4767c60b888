// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package asset

import (
	"context"
	"fmt"

	smath "github.com/ava-labs/avalanchego/utils/math"

	"github.com/ava-labs/groupsavings/codec"
	"github.com/ava-labs/groupsavings/consts"
	"github.com/ava-labs/groupsavings/state"
	"github.com/ava-labs/groupsavings/storage"
	"github.com/ava-labs/groupsavings/utils"
)

var _ Fungible = (*Token)(nil)

// Token is a fungible asset whose balances and allowances live in chain
// state.
type Token struct {
	Name     string
	Symbol   string
	Decimals uint8

	addr     codec.Address
	resolver ReceiverResolver
}

func TokenAddress(name string, symbol string) codec.Address {
	return codec.CreateAddress(consts.TokenID, utils.ToID([]byte(name+symbol)))
}

// NewToken returns a token. If [resolver] is non-nil, recipients it
// resolves are notified of every delivery.
func NewToken(name string, symbol string, decimals uint8, resolver ReceiverResolver) *Token {
	return &Token{
		Name:     name,
		Symbol:   symbol,
		Decimals: decimals,
		addr:     TokenAddress(name, symbol),
		resolver: resolver,
	}
}

func (t *Token) Address() codec.Address {
	return t.addr
}

func (t *Token) BalanceOf(ctx context.Context, im state.Immutable, account codec.Address) (uint64, error) {
	return storage.GetAssetBalance(ctx, im, t.addr, account)
}

func (t *Token) TotalSupply(ctx context.Context, im state.Immutable) (uint64, error) {
	return storage.GetAssetSupply(ctx, im, t.addr)
}

func (t *Token) Allowance(ctx context.Context, im state.Immutable, owner codec.Address, spender codec.Address) (uint64, error) {
	return storage.GetAssetAllowance(ctx, im, t.addr, owner, spender)
}

func (t *Token) Mint(ctx context.Context, mu state.Mutable, to codec.Address, amount uint64) error {
	if to.IsEmpty() {
		return ErrNullAddress
	}
	supply, err := storage.GetAssetSupply(ctx, mu, t.addr)
	if err != nil {
		return err
	}
	nsupply, err := smath.Add(supply, amount)
	if err != nil {
		return fmt.Errorf("%w: could not mint (asset=%s, supply=%d, amount=%d)", err, t.Symbol, supply, amount)
	}
	if err := storage.SetAssetSupply(ctx, mu, t.addr, nsupply); err != nil {
		return err
	}
	if err := t.credit(ctx, mu, to, amount); err != nil {
		return err
	}
	return t.notify(ctx, mu, to, codec.EmptyAddress, to, amount)
}

func (t *Token) Transfer(ctx context.Context, mu state.Mutable, from codec.Address, to codec.Address, amount uint64) error {
	if err := t.move(ctx, mu, from, to, amount); err != nil {
		return err
	}
	return t.notify(ctx, mu, from, from, to, amount)
}

func (t *Token) TransferFrom(
	ctx context.Context,
	mu state.Mutable,
	spender codec.Address,
	from codec.Address,
	to codec.Address,
	amount uint64,
) error {
	allowance, err := storage.GetAssetAllowance(ctx, mu, t.addr, from, spender)
	if err != nil {
		return err
	}
	if allowance != Unlimited {
		nallowance, err := smath.Sub(allowance, amount)
		if err != nil {
			return fmt.Errorf(
				"%w: (asset=%s, owner=%s, spender=%s, allowance=%d, amount=%d)",
				ErrInsufficientAllowance,
				t.Symbol,
				from,
				spender,
				allowance,
				amount,
			)
		}
		if err := storage.SetAssetAllowance(ctx, mu, t.addr, from, spender, nallowance); err != nil {
			return err
		}
	}
	if err := t.move(ctx, mu, from, to, amount); err != nil {
		return err
	}
	return t.notify(ctx, mu, spender, from, to, amount)
}

func (t *Token) Approve(ctx context.Context, mu state.Mutable, owner codec.Address, spender codec.Address, amount uint64) error {
	if owner.IsEmpty() || spender.IsEmpty() {
		return ErrNullAddress
	}
	return storage.SetAssetAllowance(ctx, mu, t.addr, owner, spender, amount)
}

func (t *Token) move(ctx context.Context, mu state.Mutable, from codec.Address, to codec.Address, amount uint64) error {
	if from.IsEmpty() || to.IsEmpty() {
		return ErrNullAddress
	}
	bal, err := storage.GetAssetBalance(ctx, mu, t.addr, from)
	if err != nil {
		return err
	}
	nbal, err := smath.Sub(bal, amount)
	if err != nil {
		return fmt.Errorf(
			"%w: could not subtract balance (asset=%s, bal=%d, addr=%s, amount=%d)",
			ErrInsufficientBalance,
			t.Symbol,
			bal,
			from,
			amount,
		)
	}
	if err := storage.SetAssetBalance(ctx, mu, t.addr, from, nbal); err != nil {
		return err
	}
	return t.credit(ctx, mu, to, amount)
}

func (t *Token) credit(ctx context.Context, mu state.Mutable, to codec.Address, amount uint64) error {
	bal, err := storage.GetAssetBalance(ctx, mu, t.addr, to)
	if err != nil {
		return err
	}
	nbal, err := smath.Add(bal, amount)
	if err != nil {
		return fmt.Errorf("%w: could not add balance (asset=%s, bal=%d, addr=%s, amount=%d)", err, t.Symbol, bal, to, amount)
	}
	return storage.SetAssetBalance(ctx, mu, t.addr, to, nbal)
}

func (t *Token) notify(
	ctx context.Context,
	mu state.Mutable,
	operator codec.Address,
	from codec.Address,
	to codec.Address,
	amount uint64,
) error {
	if t.resolver == nil {
		return nil
	}
	r, ok := t.resolver(to)
	if !ok {
		return nil
	}
	if err := r.OnAssetReceived(ctx, mu, t.addr, operator, from, to, amount); err != nil {
		return fmt.Errorf("%w: %w", ErrDeliveryRejected, err)
	}
	return nil
}
