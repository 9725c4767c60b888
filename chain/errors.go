// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import "errors"

var (
	ErrReentrantCall = errors.New("reentrant call")
	ErrNoCallFrame   = errors.New("no call frame")
	ErrChainClosed   = errors.New("chain closed")
)
