// hash.go: Hash command.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agilira/scytale/file"
	"github.com/agilira/scytale/internal/config"
)

type digest struct {
	name string
	sum  func(file.Hasher) (string, error)
}

var digests = []digest{
	{"md5", file.Hasher.MD5},
	{"sha256", file.Hasher.SHA256},
	{"sha512", file.Hasher.SHA512},
	{"crc32", file.Hasher.CRC32},
	{"blake3", file.Hasher.BLAKE3},
}

// NewHashCommand creates a new cobra command for the hash subcommand.
func NewHashCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "hash [flags] files...",
		Short:   "Print base64 digests of files",
		Args:    cobra.MinimumNArgs(1),
		PreRunE: preRun(cfg, false),
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, path := range cfg.Files {
				hasher := file.Load(path).Hashes()

				for _, d := range digests {
					if cfg.Algorithm != "all" && cfg.Algorithm != d.name {
						continue
					}

					sum, err := d.sum(hasher)
					if err != nil {
						return err
					}

					fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %s\n", d.name, sum, path)
				}
			}

			return nil
		},
	}

	cmd.Flags().StringP("algo", "a", "sha256", "Digest: md5, sha256, sha512, crc32, blake3 or all")

	return cmd
}
