// keygen.go: Key generation command.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agilira/scytale"
	"github.com/agilira/scytale/internal/config"
)

// NewKeygenCommand creates a new cobra command for the keygen subcommand.
func NewKeygenCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "keygen [flags]",
		Aliases: []string{"gen"},
		Short:   "Generate a random key, or derive one from a passphrase",
		Args:    cobra.NoArgs,
		PreRunE: preRun(cfg, false),
		RunE: func(cmd *cobra.Command, _ []string) error {
			length := cfg.Length
			if length == 0 {
				length = scytale.DefaultKeyLength
			}

			var (
				key string
				err error
			)

			if cfg.Passphrase != "" {
				key, err = scytale.DeriveKeyDefault([]byte(cfg.Passphrase), []byte(cfg.Salt), length)
			} else {
				key, err = scytale.GenerateKey(length)
			}

			if err != nil {
				return fmt.Errorf("generating key: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), key)

			return nil
		},
	}

	cmd.Flags().IntP("length", "l", scytale.DefaultKeyLength, "Key length in characters (the cipher block size)")
	cmd.Flags().String("passphrase", "", "Derive the key from this passphrase with Argon2id")
	cmd.Flags().String("salt", "", "Salt for passphrase derivation")

	return cmd
}
