// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/wrappers"

	"github.com/ava-labs/groupsavings/codec"
	"github.com/ava-labs/groupsavings/state"
)

const custodyRecordSize = codec.AddressLen + codec.AddressLen + ids.IDLen + codec.AddressLen

// CustodyAccount is the materialized state behind a derived custody address.
// Ledger, Asset and IdentityKey never change after creation.
type CustodyAccount struct {
	Ledger      codec.Address
	Asset       codec.Address
	IdentityKey ids.ID
	Claimant    codec.Address
}

func (c *CustodyAccount) Claimed() bool {
	return !c.Claimant.IsEmpty()
}

func CustodyKey(account codec.Address) []byte {
	return addressKey(custodyPrefix, CustodyChunks, account)
}

func SetCustodyAccount(ctx context.Context, mu state.Mutable, account codec.Address, c *CustodyAccount) error {
	p := &wrappers.Packer{MaxSize: custodyRecordSize, Bytes: make([]byte, 0, custodyRecordSize)}
	p.PackFixedBytes(c.Ledger[:])
	p.PackFixedBytes(c.Asset[:])
	p.PackFixedBytes(c.IdentityKey[:])
	p.PackFixedBytes(c.Claimant[:])
	if p.Err != nil {
		return p.Err
	}
	return mu.Insert(ctx, CustodyKey(account), p.Bytes)
}

// GetCustodyAccount returns false if [account] was never deployed.
func GetCustodyAccount(ctx context.Context, im state.Immutable, account codec.Address) (*CustodyAccount, bool, error) {
	v, err := im.GetValue(ctx, CustodyKey(account))
	if errors.Is(err, database.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if len(v) != custodyRecordSize {
		return nil, false, fmt.Errorf("%w: custody account size %d", ErrInvalidRecord, len(v))
	}
	p := &wrappers.Packer{Bytes: v}
	c := &CustodyAccount{}
	copy(c.Ledger[:], p.UnpackFixedBytes(codec.AddressLen))
	copy(c.Asset[:], p.UnpackFixedBytes(codec.AddressLen))
	copy(c.IdentityKey[:], p.UnpackFixedBytes(ids.IDLen))
	copy(c.Claimant[:], p.UnpackFixedBytes(codec.AddressLen))
	if p.Err != nil {
		return nil, false, fmt.Errorf("%w: custody account: %w", ErrInvalidRecord, p.Err)
	}
	return c, true, nil
}
