// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pebble

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/utils/maybe"
	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ava-labs/groupsavings/state"
)

var _ state.Database = (*Database)(nil)

type Config struct {
	CacheSize    int  `json:"cacheSize"    yaml:"cache_size"`
	BytesPerSync int  `json:"bytesPerSync" yaml:"bytes_per_sync"`
	MaxOpenFiles int  `json:"maxOpenFiles" yaml:"max_open_files"`
	Sync         bool `json:"sync"         yaml:"sync"`

	// InMemory keeps every file in memory. Used by tests.
	InMemory bool `json:"-" yaml:"-"`
}

func NewDefaultConfig() Config {
	return Config{
		CacheSize:    64 * 1024 * 1024,
		BytesPerSync: 1024 * 1024,
		MaxOpenFiles: 1_024,
		Sync:         true,
	}
}

// Database is a [state.Database] persisted with pebble.
type Database struct {
	db      *pebble.DB
	metrics *metrics
	sync    bool

	closing   chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

func New(file string, cfg Config) (*Database, *prometheus.Registry, error) {
	registry, metrics, err := newMetrics()
	if err != nil {
		return nil, nil, err
	}
	db := &Database{
		metrics: metrics,
		sync:    cfg.Sync,
		closing: make(chan struct{}),
	}
	cache := pebble.NewCache(int64(cfg.CacheSize))
	defer cache.Unref()
	opts := &pebble.Options{
		Cache:        cache,
		BytesPerSync: cfg.BytesPerSync,
		MaxOpenFiles: cfg.MaxOpenFiles,
	}
	if cfg.InMemory {
		opts.FS = vfs.NewMem()
	}
	opts.EventListener = &pebble.EventListener{
		CompactionBegin: db.onCompactionBegin,
		CompactionEnd:   db.onCompactionEnd,
		WriteStallBegin: db.onWriteStallBegin,
		WriteStallEnd:   db.onWriteStallEnd,
	}
	d, err := pebble.Open(file, opts)
	if err != nil {
		return nil, nil, err
	}
	db.db = d
	db.wg.Add(1)
	go func() {
		defer db.wg.Done()
		db.collectMetrics()
	}()
	return db, registry, nil
}

func (db *Database) writeOptions() *pebble.WriteOptions {
	if db.sync {
		return pebble.Sync
	}
	return pebble.NoSync
}

func (db *Database) GetValue(_ context.Context, key []byte) ([]byte, error) {
	start := time.Now()
	data, closer, err := db.db.Get(key)
	db.metrics.getLatency.Observe(float64(time.Since(start)))
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, database.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	value := make([]byte, len(data))
	copy(value, data)
	return value, closer.Close()
}

// Apply writes [changes] in a single pebble batch.
func (db *Database) Apply(_ context.Context, changes map[string]maybe.Maybe[[]byte]) error {
	batch := db.db.NewBatch()
	defer batch.Close()

	for k, v := range changes {
		if v.IsNothing() {
			if err := batch.Delete([]byte(k), nil); err != nil {
				return err
			}
			continue
		}
		if err := batch.Set([]byte(k), v.Value(), nil); err != nil {
			return err
		}
	}
	return batch.Commit(db.writeOptions())
}

func (db *Database) Close() error {
	var err error
	db.closeOnce.Do(func() {
		close(db.closing)
		db.wg.Wait()
		err = db.db.Close()
	})
	return err
}
