// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package custody

import (
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/wrappers"

	"github.com/ava-labs/groupsavings/codec"
	"github.com/ava-labs/groupsavings/consts"
	"github.com/ava-labs/groupsavings/crypto/ed25519"
	"github.com/ava-labs/groupsavings/utils"
)

const (
	DomainName    = "CustodyAccount"
	SchemeVersion = "1"
)

var (
	DomainTypeHash = utils.ToID([]byte("Domain(string name,string version,address account)"))
	ClaimTypeHash  = utils.ToID([]byte("Claim(bytes32 identityKey,address claimant,uint64 deadline)"))

	claimPrefix = []byte{0x19, 0x01}
)

// DomainSeparator binds a claim to a single custody account and scheme
// version.
func DomainSeparator(account codec.Address) ids.ID {
	size := 3*ids.IDLen + codec.AddressLen
	p := &wrappers.Packer{MaxSize: size, Bytes: make([]byte, 0, size)}
	p.PackFixedBytes(DomainTypeHash[:])
	name := utils.ToID([]byte(DomainName))
	p.PackFixedBytes(name[:])
	version := utils.ToID([]byte(SchemeVersion))
	p.PackFixedBytes(version[:])
	p.PackFixedBytes(account[:])
	return utils.ToID(p.Bytes)
}

func claimStructHash(identityKey ids.ID, claimant codec.Address, deadline uint64) ids.ID {
	size := 2*ids.IDLen + codec.AddressLen + consts.Uint64Len
	p := &wrappers.Packer{MaxSize: size, Bytes: make([]byte, 0, size)}
	p.PackFixedBytes(ClaimTypeHash[:])
	p.PackFixedBytes(identityKey[:])
	p.PackFixedBytes(claimant[:])
	p.PackLong(deadline)
	return utils.ToID(p.Bytes)
}

// ClaimDigest is the message the ledger owner signs to let [claimant] take
// [account] until [deadline] (unix seconds).
func ClaimDigest(account codec.Address, identityKey ids.ID, claimant codec.Address, deadline uint64) ids.ID {
	domain := DomainSeparator(account)
	structHash := claimStructHash(identityKey, claimant, deadline)

	size := len(claimPrefix) + 2*ids.IDLen
	p := &wrappers.Packer{MaxSize: size, Bytes: make([]byte, 0, size)}
	p.PackFixedBytes(claimPrefix)
	p.PackFixedBytes(domain[:])
	p.PackFixedBytes(structHash[:])
	return utils.ToID(p.Bytes)
}

func SignClaim(
	priv ed25519.PrivateKey,
	account codec.Address,
	identityKey ids.ID,
	claimant codec.Address,
	deadline uint64,
) ed25519.Signature {
	digest := ClaimDigest(account, identityKey, claimant, deadline)
	return ed25519.Sign(digest[:], priv)
}

func VerifyClaim(
	issuer ed25519.PublicKey,
	account codec.Address,
	identityKey ids.ID,
	claimant codec.Address,
	deadline uint64,
	sig ed25519.Signature,
) bool {
	digest := ClaimDigest(account, identityKey, claimant, deadline)
	return ed25519.Verify(digest[:], issuer, sig)
}
