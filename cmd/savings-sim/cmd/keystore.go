// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sync"

	"github.com/ava-labs/groupsavings/auth"
	"github.com/ava-labs/groupsavings/codec"
	"github.com/ava-labs/groupsavings/crypto/ed25519"
	"github.com/ava-labs/groupsavings/utils"
)

// keystore holds named ed25519 keys. With an empty dir keys only live in
// memory.
type keystore struct {
	dir string

	lock sync.Mutex
	keys map[string]ed25519.PrivateKey
}

func newKeystore(dir string) *keystore {
	return &keystore{
		dir:  dir,
		keys: map[string]ed25519.PrivateKey{},
	}
}

func (k *keystore) path(name string) string {
	return filepath.Join(k.dir, name+".pk")
}

// Get returns the key [name], generating and saving it first if [create]
// is set and it does not exist yet.
func (k *keystore) Get(name string, create bool) (ed25519.PrivateKey, error) {
	k.lock.Lock()
	defer k.lock.Unlock()

	if priv, ok := k.keys[name]; ok {
		return priv, nil
	}
	if len(k.dir) > 0 {
		b, err := utils.LoadBytes(k.path(name), ed25519.PrivateKeyLen)
		switch {
		case err == nil:
			priv := ed25519.PrivateKey(b)
			k.keys[name] = priv
			return priv, nil
		case !errors.Is(err, fs.ErrNotExist):
			return ed25519.EmptyPrivateKey, err
		}
	}
	if !create {
		return ed25519.EmptyPrivateKey, fmt.Errorf("%w: %s", ErrKeyNotFound, name)
	}
	priv, err := ed25519.GeneratePrivateKey()
	if err != nil {
		return ed25519.EmptyPrivateKey, err
	}
	if len(k.dir) > 0 {
		if _, err := utils.InitSubDirectory(k.dir, ""); err != nil {
			return ed25519.EmptyPrivateKey, err
		}
		if err := utils.SaveBytes(k.path(name), priv[:]); err != nil {
			return ed25519.EmptyPrivateKey, err
		}
	}
	k.keys[name] = priv
	return priv, nil
}

func (k *keystore) Address(name string) (codec.Address, error) {
	priv, err := k.Get(name, true)
	if err != nil {
		return codec.EmptyAddress, err
	}
	return auth.NewED25519Address(priv.PublicKey()), nil
}
