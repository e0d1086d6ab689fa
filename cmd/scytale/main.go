// main.go: CLI entry point.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

// Command scytale encrypts, compresses, hashes and archives files from the shell.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/agilira/scytale/internal/commands"
	"github.com/agilira/scytale/internal/config"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg := &config.Config{}

	root := commands.NewRootCommand(cfg, version)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
