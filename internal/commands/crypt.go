// crypt.go: Encrypt and decrypt commands.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package commands

import (
	"github.com/spf13/cobra"

	"github.com/agilira/scytale/file"
	"github.com/agilira/scytale/internal/config"
)

// NewEncryptCommand creates a new cobra command for the encrypt subcommand.
func NewEncryptCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:     "encrypt [flags] files...",
		Aliases: []string{"enc"},
		Short:   "Encrypt files in place",
		Args:    cobra.MinimumNArgs(1),
		PreRunE: preRun(cfg, true),
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := file.EncryptAll(cmd.Context(), handles(cfg.Files), cfg.Key, cfg.Parallel); err != nil {
				return err
			}

			for _, path := range cfg.Files {
				report(cmd, cfg, "Encrypted %q", path)
			}

			return nil
		},
	}
}

// NewDecryptCommand creates a new cobra command for the decrypt subcommand.
func NewDecryptCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:     "decrypt [flags] files...",
		Aliases: []string{"dec"},
		Short:   "Decrypt files in place",
		Long: `Decrypt files in place. The cipher pads the last block with spaces,
and the padding is kept in the decrypted file.`,
		Args:    cobra.MinimumNArgs(1),
		PreRunE: preRun(cfg, true),
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := file.DecryptAll(cmd.Context(), handles(cfg.Files), cfg.Key, cfg.Parallel); err != nil {
				return err
			}

			for _, path := range cfg.Files {
				report(cmd, cfg, "Decrypted %q", path)
			}

			return nil
		},
	}
}

func handles(paths []string) []*file.File {
	files := make([]*file.File, len(paths))
	for i, path := range paths {
		files[i] = file.Load(path)
	}

	return files
}
