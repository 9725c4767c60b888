// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package custody

import (
	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/groupsavings/chain"
	"github.com/ava-labs/groupsavings/codec"
)

var (
	_ chain.Event = (*ClaimCompleted)(nil)
	_ chain.Event = (*WithdrawalMade)(nil)
)

type ClaimCompleted struct {
	Account     codec.Address `json:"account"`
	IdentityKey ids.ID        `json:"identityKey"`
	Claimant    codec.Address `json:"claimant"`
	Deadline    uint64        `json:"deadline"`
}

func (*ClaimCompleted) Name() string { return "ClaimCompleted" }

type WithdrawalMade struct {
	Account   codec.Address `json:"account"`
	Asset     codec.Address `json:"asset"`
	Claimant  codec.Address `json:"claimant"`
	Recipient codec.Address `json:"recipient"`
	Amount    uint64        `json:"amount"`
}

func (*WithdrawalMade) Name() string { return "WithdrawalMade" }
