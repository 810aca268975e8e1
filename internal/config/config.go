// Package config loads the soundcore CLI configuration from a YAML file,
// with environment variables taking precedence over file values.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all soundcore configuration.
type Config struct {
	// Codec settings applied to every encode and decode
	Codec CodecConfig `yaml:"codec"`

	// Blob storage for archived documents
	Blob BlobConfig `yaml:"blob"`

	// Catalog indexing archived documents
	Catalog CatalogConfig `yaml:"catalog"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// CodecConfig configures document encoding and decoding.
type CodecConfig struct {
	// AudioDir is the base directory recording paths are made relative to
	// on export and joined with on import.
	AudioDir string `yaml:"audio_dir"`
}

// BlobConfig selects and configures the blob backend.
type BlobConfig struct {
	Driver string       `yaml:"driver"` // fs, s3, memory
	FSRoot string       `yaml:"fs_root"`
	S3     S3BlobConfig `yaml:"s3"`
}

// S3BlobConfig configures the S3-compatible backend.
type S3BlobConfig struct {
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	Endpoint  string `yaml:"endpoint"`
	PathStyle bool   `yaml:"path_style"`
}

// CatalogConfig selects and configures the catalog backend.
type CatalogConfig struct {
	Driver      string `yaml:"driver"` // sqlite, postgres, memory
	SQLitePath  string `yaml:"sqlite_path"`
	PostgresDSN string `yaml:"postgres_dsn"`
}

// LoggingConfig configures the CLI logger.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Blob: BlobConfig{
			Driver: "fs",
			FSRoot: "./archive-data",
		},
		Catalog: CatalogConfig{
			Driver:     "sqlite",
			SQLitePath: "soundcore-catalog.db",
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load reads the configuration at path. A missing file yields defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("SOUNDCORE_AUDIO_DIR"); v != "" {
		c.Codec.AudioDir = v
	}
	if v := os.Getenv("SOUNDCORE_BLOB_DRIVER"); v != "" {
		c.Blob.Driver = v
	}
	if v := os.Getenv("SOUNDCORE_BLOB_FS_ROOT"); v != "" {
		c.Blob.FSRoot = v
	}
	if v := os.Getenv("SOUNDCORE_BLOB_S3_BUCKET"); v != "" {
		c.Blob.S3.Bucket = v
	}
	if v := os.Getenv("SOUNDCORE_BLOB_S3_REGION"); v != "" {
		c.Blob.S3.Region = v
	}
	if v := os.Getenv("SOUNDCORE_BLOB_S3_ENDPOINT"); v != "" {
		c.Blob.S3.Endpoint = v
	}
	if v := os.Getenv("SOUNDCORE_BLOB_S3_PATH_STYLE"); v != "" {
		c.Blob.S3.PathStyle = strings.EqualFold(v, "true")
	}
	if v := os.Getenv("SOUNDCORE_CATALOG_DRIVER"); v != "" {
		c.Catalog.Driver = v
	}
	if v := os.Getenv("SOUNDCORE_CATALOG_SQLITE_PATH"); v != "" {
		c.Catalog.SQLitePath = v
	}
	if v := os.Getenv("SOUNDCORE_CATALOG_POSTGRES_DSN"); v != "" {
		c.Catalog.PostgresDSN = v
	}
	if v := os.Getenv("SOUNDCORE_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

// Validate checks driver names and required backend parameters.
func (c *Config) Validate() error {
	switch c.Blob.Driver {
	case "fs", "memory":
	case "s3":
		if c.Blob.S3.Bucket == "" {
			return fmt.Errorf("blob.s3.bucket required for s3 driver")
		}
	default:
		return fmt.Errorf("unknown blob driver %q", c.Blob.Driver)
	}
	switch c.Catalog.Driver {
	case "sqlite", "memory":
	case "postgres":
		if c.Catalog.PostgresDSN == "" {
			return fmt.Errorf("catalog.postgres_dsn required for postgres driver")
		}
	default:
		return fmt.Errorf("unknown catalog driver %q", c.Catalog.Driver)
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Logging.Level)
	}
	return nil
}
