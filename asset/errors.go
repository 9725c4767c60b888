// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package asset

import "errors"

var (
	ErrInsufficientBalance   = errors.New("insufficient balance")
	ErrInsufficientAllowance = errors.New("insufficient allowance")
	ErrNullAddress           = errors.New("null address")
	ErrUnknownAsset          = errors.New("unknown asset")
	ErrDuplicateAsset        = errors.New("duplicate asset")
	ErrDeliveryRejected      = errors.New("delivery rejected")
)
