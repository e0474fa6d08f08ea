// Package config loads esdump's optional TOML configuration file. Flags
// always win over the file; the file sets per-machine defaults like an S3
// region or a stricter decode policy.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// ConfigFileName is the default configuration file name, looked up in the
// working directory when --config is not given.
const ConfigFileName = "esdump.toml"

// Config is the complete esdump configuration.
type Config struct {
	// Strict makes decoding stop at the first malformed frame instead of
	// resynchronizing past it.
	Strict bool `toml:"strict"`

	// VerifyChecksums enables CRC32C verification of every frame.
	VerifyChecksums bool `toml:"verify_checksums"`

	// MaxBufferMiB caps the decoder buffer, in MiB. Zero means the decoder
	// default.
	MaxBufferMiB int `toml:"max_buffer_mib"`

	// MaxDepth caps nested event-stream recursion. Zero means the decoder
	// default.
	MaxDepth int `toml:"max_depth"`

	// S3 holds defaults for reading captures from S3.
	S3 S3Config `toml:"s3"`
}

// S3Config configures the S3 capture source.
type S3Config struct {
	// Region is the AWS region for GetObject calls.
	Region string `toml:"region"`

	// Bucket is the default bucket when --s3 gives only a key.
	Bucket string `toml:"bucket"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{}
}

// Load reads the configuration from path. A missing file is not an error:
// the defaults are returned so esdump runs without any setup.
func Load(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}
