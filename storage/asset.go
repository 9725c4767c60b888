// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"context"

	"github.com/ava-labs/groupsavings/codec"
	"github.com/ava-labs/groupsavings/state"
)

func AssetBalanceKey(asset codec.Address, account codec.Address) []byte {
	return addressKey(assetBalancePrefix, BalanceChunks, asset, account)
}

func AssetAllowanceKey(asset codec.Address, owner codec.Address, spender codec.Address) []byte {
	return addressKey(assetAllowancePrefix, BalanceChunks, asset, owner, spender)
}

func AssetSupplyKey(asset codec.Address) []byte {
	return addressKey(assetSupplyPrefix, BalanceChunks, asset)
}

func GetAssetBalance(ctx context.Context, im state.Immutable, asset codec.Address, account codec.Address) (uint64, error) {
	return getUint64(ctx, im, AssetBalanceKey(asset, account))
}

func SetAssetBalance(ctx context.Context, mu state.Mutable, asset codec.Address, account codec.Address, balance uint64) error {
	return setUint64(ctx, mu, AssetBalanceKey(asset, account), balance)
}

func GetAssetAllowance(ctx context.Context, im state.Immutable, asset codec.Address, owner codec.Address, spender codec.Address) (uint64, error) {
	return getUint64(ctx, im, AssetAllowanceKey(asset, owner, spender))
}

func SetAssetAllowance(ctx context.Context, mu state.Mutable, asset codec.Address, owner codec.Address, spender codec.Address, allowance uint64) error {
	return setUint64(ctx, mu, AssetAllowanceKey(asset, owner, spender), allowance)
}

func GetAssetSupply(ctx context.Context, im state.Immutable, asset codec.Address) (uint64, error) {
	return getUint64(ctx, im, AssetSupplyKey(asset))
}

func SetAssetSupply(ctx context.Context, mu state.Mutable, asset codec.Address, supply uint64) error {
	return setUint64(ctx, mu, AssetSupplyKey(asset), supply)
}
