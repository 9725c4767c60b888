// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package utils

import (
	"errors"
	"math/big"
	"os"
	"path"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/hashing"
	"github.com/ava-labs/avalanchego/utils/perms"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidSize    = errors.New("invalid size")
	ErrInvalidBalance = errors.New("invalid balance")
)

func ToID(bytes []byte) ids.ID {
	return ids.ID(hashing.ComputeHash256Array(bytes))
}

func InitSubDirectory(rootPath string, name string) (string, error) {
	p := path.Join(rootPath, name)
	return p, os.MkdirAll(p, perms.ReadWriteExecute)
}

// SaveBytes writes [b] to [filename] with owner-only permissions.
func SaveBytes(filename string, b []byte) error {
	return os.WriteFile(filename, b, perms.ReadWrite)
}

// LoadBytes returns bytes stored at a file [filename]. If [expectedSize] is
// positive, the file must contain exactly that many bytes.
func LoadBytes(filename string, expectedSize int) ([]byte, error) {
	bytes, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	if expectedSize > 0 && len(bytes) != expectedSize {
		return nil, ErrInvalidSize
	}
	return bytes, nil
}

// FormatBalance renders [bal] base units with [decimals] fractional digits.
func FormatBalance(bal uint64, decimals uint8) string {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(bal), -int32(decimals)).StringFixed(int32(decimals))
}

// ParseBalance converts a decimal string into base units. Precision beyond
// [decimals] is rejected rather than rounded.
func ParseBalance(bal string, decimals uint8) (uint64, error) {
	d, err := decimal.NewFromString(bal)
	if err != nil {
		return 0, err
	}
	if d.IsNegative() {
		return 0, ErrInvalidBalance
	}
	scaled := d.Shift(int32(decimals))
	if !scaled.Equal(scaled.Truncate(0)) {
		return 0, ErrInvalidBalance
	}
	bi := scaled.BigInt()
	if !bi.IsUint64() {
		return 0, ErrInvalidBalance
	}
	return bi.Uint64(), nil
}
