// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

// State
// 0x0/ (ledger config)
//   -> [ledger] => owner|ownerKey|quorum|asset|paused|metadata
// 0x1/ (members)
//   -> [ledger|account] => state|identityKey|agreement
// 0x2/ (contribution balances)
//   -> [ledger|account] => balance
// 0x3/ (contribution supply)
//   -> [ledger] => supply
// 0x4/ (governance accumulators)
//   -> [ledger|operator] => weight
// 0x5/ (custody accounts)
//   -> [account] => ledger|asset|identityKey|claimant
// 0x6/ (asset balances)
//   -> [asset|account] => balance
// 0x7/ (asset allowances)
//   -> [asset|owner|spender] => allowance
// 0x8/ (asset supply)
//   -> [asset] => supply
const (
	ledgerConfigPrefix byte = iota
	memberPrefix
	contributionBalancePrefix
	contributionSupplyPrefix
	accumulatorPrefix
	custodyPrefix
	assetBalancePrefix
	assetAllowancePrefix
	assetSupplyPrefix
)

// Chunks
const (
	LedgerConfigChunks uint16 = 8
	MemberChunks       uint16 = 6
	BalanceChunks      uint16 = 1
	CustodyChunks      uint16 = 3
)

const (
	MaxMetadataURISize  = 256
	MaxAgreementRefSize = 256
)
