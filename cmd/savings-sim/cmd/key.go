// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ava-labs/groupsavings/auth"
	"github.com/ava-labs/groupsavings/codec"
)

func newKeyCmd(r *root) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Manage named ed25519 keys",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "generate [name]",
			Short: "Create a named key if it does not exist",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return printKey(cmd, r, args[0], true)
			},
		},
		&cobra.Command{
			Use:   "show [name]",
			Short: "Print the public key and address of a named key",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return printKey(cmd, r, args[0], false)
			},
		},
	)
	return cmd
}

func printKey(cmd *cobra.Command, r *root, name string, create bool) error {
	priv, err := r.keystore().Get(name, create)
	if err != nil {
		return err
	}
	pk := priv.PublicKey()
	fmt.Fprintf(cmd.OutOrStdout(), "name=%s public=%s address=%s\n",
		name,
		codec.ToHex(pk[:]),
		auth.NewED25519Address(pk),
	)
	return nil
}
