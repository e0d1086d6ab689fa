// root.go: Root command and shared flag handling.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package commands

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/agilira/scytale/internal/config"
)

// NewRootCommand creates the root command with common configuration.
// It sets up environment variable binding and flag handling.
func NewRootCommand(cfg *config.Config, version string) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix(config.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	root := &cobra.Command{
		Use:     "scytale [flags] command [flags]",
		Short:   "Transposition cipher and compression utility",
		Version: version,
		Long: `A utility around a key-derived transposition cipher and a length-framed
compression codec. Provides commands for encryption, compression, hashing,
zip archives and key generation.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := v.BindPFlags(cmd.Flags()); err != nil {
				return fmt.Errorf("binding flags: %w", err)
			}

			if err := v.Unmarshal(cfg); err != nil {
				return fmt.Errorf("parsing config: %w", err)
			}

			return nil
		},
	}

	root.PersistentFlags().StringP("key", "k", "", "Transposition key (or "+config.EnvPrefix+"_KEY)")
	root.PersistentFlags().IntP("parallel", "j", runtime.NumCPU(), "Number of parallel workers, defaults to number of CPUs")
	root.PersistentFlags().BoolP("quiet", "q", false, "Suppress non-error output")
	root.PersistentFlags().String("compressor", "gzip", "Compressor for compress/decompress: gzip, deflate or lz4")
	root.PersistentFlags().Int("level", 0, "Compression level 1-9, 0 for the compressor default")
	root.PersistentFlags().String("suffix", ".lzf", "Suffix appended to compressed files")

	root.AddCommand(
		NewEncryptCommand(cfg),
		NewDecryptCommand(cfg),
		NewCompressCommand(cfg),
		NewDecompressCommand(cfg),
		NewHashCommand(cfg),
		NewPackCommand(cfg),
		NewUnpackCommand(cfg),
		NewKeygenCommand(cfg),
	)

	return root
}

// preRun returns a PreRunE handler that stores positional args in cfg.Files
// and validates the configuration, including the key when needed.
func preRun(cfg *config.Config, needsKey bool) func(*cobra.Command, []string) error {
	return func(_ *cobra.Command, args []string) error {
		cfg.Files = args

		if needsKey {
			return cfg.ValidateKey()
		}

		return cfg.Validate()
	}
}

// report prints a progress line unless quiet mode is on.
func report(cmd *cobra.Command, cfg *config.Config, format string, args ...any) {
	if cfg.Quiet {
		return
	}

	fmt.Fprintf(cmd.OutOrStdout(), format+"\n", args...)
}
