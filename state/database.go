// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import (
	"context"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/ava-labs/avalanchego/utils/maybe"
)

var _ Database = (*KVDatabase)(nil)

// KVDatabase adapts an avalanchego key-value database to [Database].
type KVDatabase struct {
	db database.Database
}

func NewKVDatabase(db database.Database) *KVDatabase {
	return &KVDatabase{db: db}
}

// NewMemoryDatabase returns an ephemeral [Database] backed by memdb.
func NewMemoryDatabase() *KVDatabase {
	return NewKVDatabase(memdb.New())
}

func (k *KVDatabase) GetValue(_ context.Context, key []byte) ([]byte, error) {
	return k.db.Get(key)
}

func (k *KVDatabase) Apply(_ context.Context, changes map[string]maybe.Maybe[[]byte]) error {
	batch := k.db.NewBatch()
	for key, v := range changes {
		if v.IsNothing() {
			if err := batch.Delete([]byte(key)); err != nil {
				return err
			}
			continue
		}
		if err := batch.Put([]byte(key), v.Value()); err != nil {
			return err
		}
	}
	return batch.Write()
}

func (k *KVDatabase) Close() error {
	return k.db.Close()
}
