// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package factory

import "errors"

var (
	ErrAlreadyDeployed = errors.New("custody account already deployed")
	ErrNullAddress     = errors.New("null address")
)
