// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import "encoding/hex"

// ToHex converts bytes to an unprefixed hex string.
func ToHex(b []byte) string {
	return hex.EncodeToString(b)
}
