// archive.go: Pack and unpack commands.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package commands

import (
	"github.com/spf13/cobra"

	"github.com/agilira/scytale/archive"
	"github.com/agilira/scytale/internal/config"
)

// NewPackCommand creates a new cobra command for the pack subcommand.
func NewPackCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:     "pack [flags] archive.zip files...",
		Short:   "Pack files into a zip archive under their base names",
		Args:    cobra.MinimumNArgs(2),
		PreRunE: preRun(cfg, false),
		RunE: func(cmd *cobra.Command, _ []string) error {
			zipPath, files := cfg.Files[0], cfg.Files[1:]

			if err := archive.Pack(zipPath, files); err != nil {
				return err
			}

			report(cmd, cfg, "Packed %d files into %q", len(files), zipPath)

			return nil
		},
	}
}

// NewUnpackCommand creates a new cobra command for the unpack subcommand.
func NewUnpackCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "unpack [flags] archive.zip dir",
		Short:   "Extract a zip archive into a directory",
		Args:    cobra.ExactArgs(2),
		PreRunE: preRun(cfg, false),
		RunE: func(cmd *cobra.Command, _ []string) error {
			zipPath, dir := cfg.Files[0], cfg.Files[1]

			if err := archive.Unpack(zipPath, dir, cfg.Overwrite); err != nil {
				return err
			}

			report(cmd, cfg, "Unpacked %q into %q", zipPath, dir)

			return nil
		},
	}

	cmd.Flags().Bool("overwrite", false, "Replace files that already exist")

	return cmd
}
