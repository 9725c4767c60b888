// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package auth

import "github.com/ava-labs/groupsavings/consts"

const ED25519ID = consts.ED25519ID
