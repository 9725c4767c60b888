// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/require"
)

func TestSaveBytes(t *testing.T) {
	require := require.New(t)

	filename := filepath.Join(t.TempDir(), "SaveBytes")

	id := ids.GenerateTestID()
	require.NoError(SaveBytes(filename, id[:]), "Error during call to SaveBytes")
	require.FileExists(filename, "SaveBytes did not create file")

	// Check correct key was saved in file
	bytes, err := LoadBytes(filename, ids.IDLen)
	require.NoError(err)
	var lid ids.ID
	copy(lid[:], bytes)
	require.Equal(id, lid, "ID is different than saved key")
}

func TestLoadBytesIncorrectLength(t *testing.T) {
	require := require.New(t)
	invalidBytes := []byte{1, 2, 3, 4, 5}

	fileName := filepath.Join(t.TempDir(), "TestLoadBytes")
	require.NoError(os.WriteFile(fileName, invalidBytes, 0o600))

	_, err := LoadBytes(fileName, ids.IDLen)
	require.ErrorIs(err, ErrInvalidSize)
}

func TestLoadBytesInvalidFile(t *testing.T) {
	require := require.New(t)

	_, err := LoadBytes(filepath.Join(t.TempDir(), "missing"), ids.IDLen)
	require.ErrorIs(err, os.ErrNotExist)
}

func TestToIDDeterministic(t *testing.T) {
	require := require.New(t)

	require.Equal(ToID([]byte("alice")), ToID([]byte("alice")))
	require.NotEqual(ToID([]byte("alice")), ToID([]byte("bob")))
}

func TestBalanceFormatting(t *testing.T) {
	tests := []struct {
		name     string
		str      string
		decimals uint8
		value    uint64
		err      error
	}{
		{name: "whole", str: "12", decimals: 2, value: 1200},
		{name: "fraction", str: "0.05", decimals: 2, value: 5},
		{name: "too precise", str: "0.001", decimals: 2, err: ErrInvalidBalance},
		{name: "negative", str: "-1", decimals: 2, err: ErrInvalidBalance},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)

			v, err := ParseBalance(tt.str, tt.decimals)
			require.ErrorIs(err, tt.err)
			if tt.err != nil {
				return
			}
			require.Equal(tt.value, v)
		})
	}

	require.Equal(t, "12.00", FormatBalance(1200, 2))
	require.Equal(t, "0.000000001", FormatBalance(1, 9))
}
