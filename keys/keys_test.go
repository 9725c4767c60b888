// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package keys

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChunks(t *testing.T) {
	require := require.New(t)

	key := EncodeChunks([]byte("balance"), 1)
	chunks, ok := MaxChunks(key)
	require.True(ok)
	require.Equal(uint16(1), chunks)

	require.True(VerifyValue(key, make([]byte, 8)))
	require.True(VerifyValue(key, nil))
	require.False(VerifyValue(key, bytes.Repeat([]byte{1}, 64)))
}

func TestInvalidKey(t *testing.T) {
	require := require.New(t)

	_, ok := MaxChunks([]byte{1})
	require.False(ok)
	require.False(VerifyValue([]byte{1}, nil))
}
