// config.go: Validated command-line configuration.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

// Package config holds the validated command-line configuration.
package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/agilira/scytale"
)

// EnvPrefix is the prefix of environment variables bound to flags, so --key may
// come from SCYTALE_KEY.
const EnvPrefix = "SCYTALE"

// Config collects flags, environment and positional arguments for one command run.
type Config struct {
	// Common flags
	Key        string `mapstructure:"key"`
	Parallel   int    `mapstructure:"parallel"   validate:"gte=0"`
	Quiet      bool   `mapstructure:"quiet"`
	Compressor string `mapstructure:"compressor" validate:"oneof=gzip deflate lz4"`
	Level      int    `mapstructure:"level"      validate:"gte=0,lte=9"`
	Suffix     string `mapstructure:"suffix"     validate:"required,startswith=.,excludes=/"`

	// Command-specific flags
	Overwrite  bool   `mapstructure:"overwrite"`
	Length     int    `mapstructure:"length"     validate:"gte=0"`
	Passphrase string `mapstructure:"passphrase"`
	Salt       string `mapstructure:"salt"       validate:"required_with=Passphrase"`
	Algorithm  string `mapstructure:"algo"       validate:"omitempty,oneof=md5 sha256 sha512 crc32 blake3 all"`

	// Positional arguments
	Files []string `mapstructure:"-" validate:"dive,required"`
}

// Validate validates the configuration against the struct tags.
func (c Config) Validate() error {
	validate := validator.New()

	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("validating configuration: %w", err)
	}

	return nil
}

// ValidateKey checks the configuration and that a usable key is present.
func (c Config) ValidateKey() error {
	if err := c.Validate(); err != nil {
		return err
	}

	if err := scytale.ValidateKey(c.Key); err != nil {
		return fmt.Errorf("invalid key (set --key or %s_KEY): %w", EnvPrefix, err)
	}

	return nil
}

// Codec builds the compression codec selected by Compressor and Level.
func (c Config) Codec() (*scytale.Codec, error) {
	var compressor scytale.Compressor

	switch c.Compressor {
	case "", "gzip":
		compressor = scytale.Gzip
	case "deflate":
		compressor = scytale.Deflate
	case "lz4":
		compressor = scytale.LZ4
	default:
		return nil, fmt.Errorf("unknown compressor %q", c.Compressor)
	}

	codec, err := scytale.NewCodec(&scytale.CodecParams{Compressor: compressor, Level: c.Level})
	if err != nil {
		return nil, fmt.Errorf("creating codec: %w", err)
	}

	return codec, nil
}
