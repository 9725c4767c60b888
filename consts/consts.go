// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package consts

const (
	ByteLen   = 1
	BoolLen   = 1
	Uint16Len = 2
	Uint64Len = 8

	MaxUint16 = ^uint16(0)
	MaxUint64 = ^uint64(0)
)

// Address TypeIDs
//
// Note: IDs are assigned explicitly so a derived address never changes
// meaning across releases.
const (
	ED25519ID uint8 = 0
	LedgerID  uint8 = 1
	TokenID   uint8 = 2
	CustodyID uint8 = 3
)

const (
	Name     = "groupsavings"
	Decimals = 9
)
