// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package custody

import "errors"

var (
	ErrNotDeployed      = errors.New("custody account not deployed")
	ErrAlreadyClaimed   = errors.New("already claimed")
	ErrInvalidClaimant  = errors.New("invalid claimant")
	ErrSignatureExpired = errors.New("signature expired")
	ErrInvalidSignature = errors.New("invalid signature")
	ErrNotClaimed       = errors.New("not claimed")
	ErrNotClaimant      = errors.New("caller is not the claimant")
	ErrZeroAmount       = errors.New("zero amount")
	ErrNullAddress      = errors.New("null address")
)
