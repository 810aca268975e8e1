package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Blob.Driver != "fs" || cfg.Catalog.Driver != "sqlite" {
		t.Fatalf("defaults = %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate(defaults): %v", err)
	}
}

func TestLoadParsesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "soundcore.yaml")
	doc := `
codec:
  audio_dir: /data/audio
blob:
  driver: s3
  s3:
    bucket: acoustics
    region: eu-west-1
    path_style: true
catalog:
  driver: postgres
  postgres_dsn: postgres://localhost/soundcore
logging:
  level: debug
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Codec.AudioDir != "/data/audio" {
		t.Fatalf("audio_dir = %q", cfg.Codec.AudioDir)
	}
	if cfg.Blob.Driver != "s3" || cfg.Blob.S3.Bucket != "acoustics" || !cfg.Blob.S3.PathStyle {
		t.Fatalf("blob = %+v", cfg.Blob)
	}
	if cfg.Catalog.Driver != "postgres" || cfg.Catalog.PostgresDSN == "" {
		t.Fatalf("catalog = %+v", cfg.Catalog)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "soundcore.yaml")
	if err := os.WriteFile(path, []byte("blob:\n  driver: fs\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("SOUNDCORE_BLOB_DRIVER", "memory")
	t.Setenv("SOUNDCORE_AUDIO_DIR", "/mnt/audio")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Blob.Driver != "memory" {
		t.Fatalf("driver = %q, want env override", cfg.Blob.Driver)
	}
	if cfg.Codec.AudioDir != "/mnt/audio" {
		t.Fatalf("audio_dir = %q", cfg.Codec.AudioDir)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown blob driver", func(c *Config) { c.Blob.Driver = "tape" }},
		{"s3 without bucket", func(c *Config) { c.Blob.Driver = "s3" }},
		{"unknown catalog driver", func(c *Config) { c.Catalog.Driver = "oracle" }},
		{"postgres without dsn", func(c *Config) { c.Catalog.Driver = "postgres" }},
		{"unknown log level", func(c *Config) { c.Logging.Level = "loud" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("Validate accepted invalid config")
			}
		})
	}
}
