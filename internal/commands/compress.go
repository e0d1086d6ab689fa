// compress.go: Compress and decompress commands.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agilira/scytale/file"
	"github.com/agilira/scytale/internal/config"
)

// NewCompressCommand creates a new cobra command for the compress subcommand.
func NewCompressCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:     "compress [flags] files...",
		Aliases: []string{"c"},
		Short:   "Compress each file to <file><suffix>",
		Args:    cobra.MinimumNArgs(1),
		PreRunE: preRun(cfg, false),
		RunE: func(cmd *cobra.Command, _ []string) error {
			codec, err := cfg.Codec()
			if err != nil {
				return err
			}

			for _, path := range cfg.Files {
				data, err := file.Load(path).Bytes()
				if err != nil {
					return err
				}

				frame, err := codec.Compress(data)
				if err != nil {
					return fmt.Errorf("compressing %q: %w", path, err)
				}

				out := path + cfg.Suffix
				if _, err := file.Create(out, frame); err != nil {
					return err
				}

				report(cmd, cfg, "Compressed %q -> %q (%d -> %d bytes)", path, out, len(data), len(frame))
			}

			return nil
		},
	}
}

// NewDecompressCommand creates a new cobra command for the decompress subcommand.
func NewDecompressCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:     "decompress [flags] files...",
		Aliases: []string{"d"},
		Short:   "Decompress each <file><suffix> back to <file>",
		Args:    cobra.MinimumNArgs(1),
		PreRunE: preRun(cfg, false),
		RunE: func(cmd *cobra.Command, _ []string) error {
			codec, err := cfg.Codec()
			if err != nil {
				return err
			}

			for _, path := range cfg.Files {
				out, found := strings.CutSuffix(path, cfg.Suffix)
				if !found || out == "" {
					return fmt.Errorf("%q does not end in %q", path, cfg.Suffix)
				}

				frame, err := file.Load(path).Bytes()
				if err != nil {
					return err
				}

				data, err := codec.Decompress(frame)
				if err != nil {
					return fmt.Errorf("decompressing %q: %w", path, err)
				}

				if _, err := file.Create(out, data); err != nil {
					return err
				}

				report(cmd, cfg, "Decompressed %q -> %q", path, out)
			}

			return nil
		},
	}
}
