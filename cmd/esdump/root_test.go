package main

import (
	"testing"

	"github.com/vango-dev/eventstream/internal/config"
)

func TestSplitS3URI(t *testing.T) {
	tests := []struct {
		name          string
		uri           string
		defaultBucket string
		wantBucket    string
		wantKey       string
		wantErr       bool
	}{
		{name: "scheme", uri: "s3://captures/conn.bin", wantBucket: "captures", wantKey: "conn.bin"},
		{name: "no_scheme", uri: "captures/conn.bin", wantBucket: "captures", wantKey: "conn.bin"},
		{name: "nested_key", uri: "s3://b/a/c.bin", wantBucket: "b", wantKey: "a/c.bin"},
		{name: "bare_key_with_default", uri: "conn.bin", defaultBucket: "captures", wantBucket: "captures", wantKey: "conn.bin"},
		{name: "bare_key_no_default", uri: "conn.bin", wantErr: true},
		{name: "empty", uri: "", wantErr: true},
		{name: "missing_key", uri: "s3://bucket/", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			bucket, key, err := splitS3URI(tc.uri, tc.defaultBucket)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("splitS3URI(%q) error = nil, want error", tc.uri)
				}
				return
			}
			if err != nil {
				t.Fatalf("splitS3URI(%q) error = %v", tc.uri, err)
			}
			if bucket != tc.wantBucket || key != tc.wantKey {
				t.Errorf("splitS3URI(%q) = (%q, %q), want (%q, %q)", tc.uri, bucket, key, tc.wantBucket, tc.wantKey)
			}
		})
	}
}

func TestCommandWiring(t *testing.T) {
	root := newRootCmd()
	root.AddCommand(versionCmd())

	if root.Use == "" {
		t.Fatal("root command has empty Use")
	}
	for _, flag := range []string{"config", "strict", "verify-checksums", "max-buffer", "max-depth", "s3"} {
		if root.Flags().Lookup(flag) == nil {
			t.Errorf("root command missing --%s flag", flag)
		}
	}

	found := false
	for _, sub := range root.Commands() {
		if sub.Name() == "version" {
			found = true
			if sub.Flags().Lookup("short") == nil {
				t.Error("version command missing --short flag")
			}
		}
	}
	if !found {
		t.Error("version subcommand not registered")
	}
}

func TestDecoderOptions(t *testing.T) {
	if got := decoderOptions(config.Default()); len(got) != 0 {
		t.Errorf("decoderOptions(defaults) returned %d options, want 0", len(got))
	}

	cfg := &config.Config{Strict: true, VerifyChecksums: true, MaxBufferMiB: 32, MaxDepth: 4}
	if got := decoderOptions(cfg); len(got) != 4 {
		t.Errorf("decoderOptions(full) returned %d options, want 4", len(got))
	}
}
