// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledger

import (
	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/groupsavings/chain"
	"github.com/ava-labs/groupsavings/codec"
)

var (
	_ chain.Event = (*MembershipActivated)(nil)
	_ chain.Event = (*MembershipTransferred)(nil)
	_ chain.Event = (*MembershipTerminated)(nil)
	_ chain.Event = (*ContributionMade)(nil)
	_ chain.Event = (*VoteRecorded)(nil)
	_ chain.Event = (*PermissionGranted)(nil)
	_ chain.Event = (*QuorumReset)(nil)
	_ chain.Event = (*DistributionMade)(nil)
	_ chain.Event = (*BatchDistributed)(nil)
	_ chain.Event = (*QuorumUpdated)(nil)
	_ chain.Event = (*Paused)(nil)
	_ chain.Event = (*Unpaused)(nil)
	_ chain.Event = (*MetadataUpdated)(nil)
	_ chain.Event = (*AssetUpdated)(nil)
	_ chain.Event = (*OwnershipTransferred)(nil)
)

type MembershipActivated struct {
	Actor        codec.Address `json:"actor"`
	Account      codec.Address `json:"account"`
	IdentityKey  ids.ID        `json:"identityKey"`
	AgreementRef string        `json:"agreementRef"`
}

func (*MembershipActivated) Name() string { return "MembershipActivated" }

type MembershipTransferred struct {
	Actor        codec.Address `json:"actor"`
	From         codec.Address `json:"from"`
	To           codec.Address `json:"to"`
	Amount       uint64        `json:"amount"`
	AgreementRef string        `json:"agreementRef"`
}

func (*MembershipTransferred) Name() string { return "MembershipTransferred" }

type MembershipTerminated struct {
	Actor        codec.Address `json:"actor"`
	Account      codec.Address `json:"account"`
	Burned       uint64        `json:"burned"`
	AgreementRef string        `json:"agreementRef"`
}

func (*MembershipTerminated) Name() string { return "MembershipTerminated" }

type ContributionMade struct {
	Actor    codec.Address `json:"actor"`
	Account  codec.Address `json:"account"`
	Credited codec.Address `json:"credited"`
	Amount   uint64        `json:"amount"`
	Supply   uint64        `json:"supply"`
}

func (*ContributionMade) Name() string { return "ContributionMade" }

type VoteRecorded struct {
	Actor       codec.Address `json:"actor"`
	Voter       codec.Address `json:"voter"`
	Operator    codec.Address `json:"operator"`
	Weight      uint64        `json:"weight"`
	Accumulated uint64        `json:"accumulated"`
}

func (*VoteRecorded) Name() string { return "VoteRecorded" }

type PermissionGranted struct {
	Actor    codec.Address `json:"actor"`
	Operator codec.Address `json:"operator"`
	Amount   uint64        `json:"amount"`
	Achieved uint64        `json:"achieved"`
	Required uint64        `json:"required"`
}

func (*PermissionGranted) Name() string { return "PermissionGranted" }

type QuorumReset struct {
	Actor    codec.Address `json:"actor"`
	Operator codec.Address `json:"operator"`
	Previous uint64        `json:"previous"`
}

func (*QuorumReset) Name() string { return "QuorumReset" }

type DistributionMade struct {
	Actor   codec.Address `json:"actor"`
	Account codec.Address `json:"account"`
	Burned  uint64        `json:"burned"`
	Payout  uint64        `json:"payout"`
	Pool    uint64        `json:"pool"`
	Supply  uint64        `json:"supply"`
}

func (*DistributionMade) Name() string { return "DistributionMade" }

type BatchDistributed struct {
	Actor    codec.Address `json:"actor"`
	Accounts int           `json:"accounts"`
	Paid     int           `json:"paid"`
	Total    uint64        `json:"total"`
}

func (*BatchDistributed) Name() string { return "BatchDistributed" }

type QuorumUpdated struct {
	Actor codec.Address `json:"actor"`
	Old   uint64        `json:"old"`
	New   uint64        `json:"new"`
}

func (*QuorumUpdated) Name() string { return "QuorumUpdated" }

type Paused struct {
	Actor codec.Address `json:"actor"`
}

func (*Paused) Name() string { return "Paused" }

type Unpaused struct {
	Actor codec.Address `json:"actor"`
}

func (*Unpaused) Name() string { return "Unpaused" }

type MetadataUpdated struct {
	Actor codec.Address `json:"actor"`
	Old   string        `json:"old"`
	New   string        `json:"new"`
}

func (*MetadataUpdated) Name() string { return "MetadataUpdated" }

type AssetUpdated struct {
	Actor codec.Address `json:"actor"`
	Old   codec.Address `json:"old"`
	New   codec.Address `json:"new"`
}

func (*AssetUpdated) Name() string { return "AssetUpdated" }

type OwnershipTransferred struct {
	Actor codec.Address `json:"actor"`
	Old   codec.Address `json:"old"`
	New   codec.Address `json:"new"`
}

func (*OwnershipTransferred) Name() string { return "OwnershipTransferred" }
