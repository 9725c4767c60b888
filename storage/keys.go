// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"context"
	"encoding/binary"
	"errors"

	"github.com/ava-labs/avalanchego/database"

	"github.com/ava-labs/groupsavings/codec"
	"github.com/ava-labs/groupsavings/consts"
	"github.com/ava-labs/groupsavings/keys"
	"github.com/ava-labs/groupsavings/state"
)

// [prefix] + [addrs...] + [chunks]
func addressKey(prefix byte, chunks uint16, addrs ...codec.Address) []byte {
	k := make([]byte, 0, consts.ByteLen+len(addrs)*codec.AddressLen+consts.Uint16Len)
	k = append(k, prefix)
	for _, addr := range addrs {
		k = append(k, addr[:]...)
	}
	return keys.EncodeChunks(k, chunks)
}

// getUint64 returns 0 when [key] has never been written.
func getUint64(ctx context.Context, im state.Immutable, key []byte) (uint64, error) {
	v, err := im.GetValue(ctx, key)
	if errors.Is(err, database.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	if len(v) != consts.Uint64Len {
		return 0, ErrInvalidRecord
	}
	return binary.BigEndian.Uint64(v), nil
}

// setUint64 removes [key] when [value] is 0 so empty balances do not
// occupy state.
func setUint64(ctx context.Context, mu state.Mutable, key []byte, value uint64) error {
	if value == 0 {
		return mu.Remove(ctx, key)
	}
	v := make([]byte, consts.Uint64Len)
	binary.BigEndian.PutUint64(v, value)
	return mu.Insert(ctx, key, v)
}
