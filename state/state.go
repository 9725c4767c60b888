// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import (
	"context"

	"github.com/ava-labs/avalanchego/utils/maybe"
)

type Immutable interface {
	GetValue(ctx context.Context, key []byte) (value []byte, err error)
}

type Mutable interface {
	Immutable

	Insert(ctx context.Context, key []byte, value []byte) error
	Remove(ctx context.Context, key []byte) error
}

// Database is the durable store a chain commits to. Apply must write all
// [changes] atomically: a Nothing value deletes the key.
type Database interface {
	Immutable

	Apply(ctx context.Context, changes map[string]maybe.Maybe[[]byte]) error
	Close() error
}
