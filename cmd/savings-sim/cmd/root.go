// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"path/filepath"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ava-labs/groupsavings/config"
)

const keysFolder = "keys"

type root struct {
	configPath string
	logLevel   string
	inMemory   bool

	cfg        *config.Config
	log        logging.Logger
	logFactory *logFactory
}

func NewRootCmd() *cobra.Command {
	r := &root{}
	cmd := &cobra.Command{
		Use:   "savings-sim",
		Short: "Group savings ledger simulator",
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return r.init()
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if r.logFactory != nil {
				r.logFactory.Close()
			}
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cobra.EnablePrefixMatching = true
	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.DisableAutoGenTag = true
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})

	cmd.PersistentFlags().StringVar(&r.configPath, "config", "", "path to a json or yaml config file")
	cmd.PersistentFlags().StringVar(&r.logLevel, "log-level", "", "log level, overrides the config")
	cmd.PersistentFlags().BoolVar(&r.inMemory, "in-memory", false, "keep state and keys in memory only")

	cmd.AddCommand(
		newRunCmd(r),
		newKeyCmd(r),
	)
	return cmd
}

func (r *root) init() error {
	cfg := config.NewDefaultConfig()
	if len(r.configPath) > 0 {
		var err error
		cfg, err = config.Load(r.configPath)
		if err != nil {
			return err
		}
	}
	if len(r.logLevel) > 0 {
		cfg.LogLevel = r.logLevel
	}
	if r.inMemory {
		cfg.InMemory = true
	}
	level, err := cfg.GetLogLevel()
	if err != nil {
		return err
	}

	loggingConfig := logging.Config{}
	loggingConfig.LogLevel = level
	loggingConfig.DisplayLevel = level
	loggingConfig.Directory = filepath.Join(cfg.DataDir, "logs")
	loggingConfig.LogFormat = logging.JSON
	loggingConfig.DisableWriterDisplaying = true

	r.logFactory = newLogFactory(loggingConfig)
	r.log, err = r.logFactory.Make("simulator")
	if err != nil {
		r.logFactory.Close()
		return err
	}
	r.cfg = cfg
	r.log.Info("simulator initialized",
		zap.String("log-level", cfg.LogLevel),
		zap.Bool("in-memory", cfg.InMemory),
	)
	return nil
}

func (r *root) keystore() *keystore {
	if r.cfg.InMemory {
		return newKeystore("")
	}
	return newKeystore(filepath.Join(r.cfg.DataDir, keysFolder))
}
