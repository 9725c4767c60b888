// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import "errors"

var (
	ErrInvalidRecord      = errors.New("invalid record")
	ErrAgreementTooLarge  = errors.New("agreement reference too large")
	ErrMetadataTooLarge   = errors.New("metadata pointer too large")
	ErrLedgerNotFound     = errors.New("ledger not found")
	ErrInsufficientAmount = errors.New("insufficient amount")
)
