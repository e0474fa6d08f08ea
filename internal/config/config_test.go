package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), ConfigFileName))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Strict || cfg.VerifyChecksums || cfg.MaxBufferMiB != 0 {
		t.Errorf("Load(missing) = %+v, want defaults", cfg)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	body := `
strict = true
verify_checksums = true
max_buffer_mib = 128

[s3]
region = "eu-west-1"
bucket = "captures"
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !cfg.Strict {
		t.Error("Strict = false, want true")
	}
	if !cfg.VerifyChecksums {
		t.Error("VerifyChecksums = false, want true")
	}
	if cfg.MaxBufferMiB != 128 {
		t.Errorf("MaxBufferMiB = %d, want 128", cfg.MaxBufferMiB)
	}
	if cfg.S3.Region != "eu-west-1" || cfg.S3.Bucket != "captures" {
		t.Errorf("S3 = %+v", cfg.S3)
	}
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	if err := os.WriteFile(path, []byte("strict = what"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("Load(malformed) error = nil, want error")
	}
}
