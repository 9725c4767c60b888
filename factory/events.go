// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package factory

import (
	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/groupsavings/chain"
	"github.com/ava-labs/groupsavings/codec"
)

var _ chain.Event = (*AccountDeployed)(nil)

type AccountDeployed struct {
	Account     codec.Address `json:"account"`
	Ledger      codec.Address `json:"ledger"`
	Asset       codec.Address `json:"asset"`
	IdentityKey ids.ID        `json:"identityKey"`
}

func (*AccountDeployed) Name() string { return "AccountDeployed" }
