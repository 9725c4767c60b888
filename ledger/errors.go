// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledger

import "errors"

var (
	// validation
	ErrEmptyReference  = errors.New("empty reference")
	ErrNullAddress     = errors.New("null address")
	ErrZeroAmount      = errors.New("zero amount")
	ErrAssetNotSet     = errors.New("contribution asset not set")
	ErrSelfTransfer    = errors.New("cannot transfer membership to itself")
	ErrMissingOwnerKey = errors.New("missing owner key")

	// authorization
	ErrPaused          = errors.New("ledger paused")
	ErrNotOwner        = errors.New("actor is not the owner")
	ErrMemberNotActive = errors.New("member not active")

	// state conflict
	ErrAlreadyActive     = errors.New("member already active")
	ErrMemberTerminated  = errors.New("member terminated")
	ErrQuorumNotReached  = errors.New("quorum not reached")
	ErrOutstandingSupply = errors.New("contributions outstanding")

	// distribution
	ErrZeroBalance    = errors.New("zero contribution balance")
	ErrZeroSupply     = errors.New("zero contribution supply")
	ErrEmptyPool      = errors.New("empty pool")
	ErrZeroPayout     = errors.New("zero payout")
	ErrPayoutOverflow = errors.New("payout overflow")
)
