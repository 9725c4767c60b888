// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"io"
	"os"

	"github.com/ava-labs/avalanchego/api/metrics"
	"github.com/spf13/cobra"
)

func newRunCmd(r *root) *cobra.Command {
	return &cobra.Command{
		Use:   "run [path]",
		Short: "Run a simulation plan, use - to read it from stdin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				b   []byte
				err error
			)
			if args[0] == "-" {
				b, err = io.ReadAll(cmd.InOrStdin())
			} else {
				b, err = os.ReadFile(args[0])
			}
			if err != nil {
				return err
			}
			p, err := unmarshalPlan(b)
			if err != nil {
				return err
			}

			s, err := newSimulation(cmd.Context(), r.log, r.cfg, r.keystore(), p.Owner, metrics.NewPrefixGatherer())
			if err != nil {
				return err
			}
			defer s.Close()

			return s.Run(cmd.Context(), p, cmd.OutOrStdout())
		},
	}
}
