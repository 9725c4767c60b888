// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package auth

import (
	"github.com/ava-labs/groupsavings/codec"
	"github.com/ava-labs/groupsavings/crypto/ed25519"
	"github.com/ava-labs/groupsavings/utils"
)

// ED25519Factory signs on behalf of a single ed25519 key. The ledger owner
// uses one to issue claim authorizations.
type ED25519Factory struct {
	priv ed25519.PrivateKey
}

func NewED25519Factory(priv ed25519.PrivateKey) *ED25519Factory {
	return &ED25519Factory{priv}
}

func (d *ED25519Factory) Sign(msg []byte) ed25519.Signature {
	return ed25519.Sign(msg, d.priv)
}

func (d *ED25519Factory) PublicKey() ed25519.PublicKey {
	return d.priv.PublicKey()
}

func (d *ED25519Factory) Address() codec.Address {
	return NewED25519Address(d.priv.PublicKey())
}

func NewED25519Address(pk ed25519.PublicKey) codec.Address {
	return codec.CreateAddress(ED25519ID, utils.ToID(pk[:]))
}
