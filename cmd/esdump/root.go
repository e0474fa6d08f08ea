package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/vango-dev/eventstream/internal/config"
	"github.com/vango-dev/eventstream/pkg/capture"
	"github.com/vango-dev/eventstream/pkg/eventstream"
)

// lineEvent is the JSON shape printed per decoded frame.
type lineEvent struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

func newRootCmd() *cobra.Command {
	var (
		configPath   string
		strict       bool
		verify       bool
		maxBufferMiB int
		maxDepth     int
		s3URI        string
	)

	cmd := &cobra.Command{
		Use:   "esdump [capture]",
		Short: "Decode a captured event-stream to JSON lines",
		Long: `esdump reassembles a recorded event-stream capture into frames and
prints each frame's event as one JSON object per line.

The capture is a local file, "-" (or no argument) for stdin, or an S3
object given with --s3. Defaults can be placed in esdump.toml.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			// Flags the user actually set win over the file.
			if cmd.Flags().Changed("strict") {
				cfg.Strict = strict
			}
			if cmd.Flags().Changed("verify-checksums") {
				cfg.VerifyChecksums = verify
			}
			if cmd.Flags().Changed("max-buffer") {
				cfg.MaxBufferMiB = maxBufferMiB
			}
			if cmd.Flags().Changed("max-depth") {
				cfg.MaxDepth = maxDepth
			}

			return runDump(cmd.Context(), cfg, s3URI, args)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", config.ConfigFileName, "Path to esdump.toml")
	cmd.Flags().BoolVar(&strict, "strict", false, "Stop at the first malformed frame instead of resyncing")
	cmd.Flags().BoolVar(&verify, "verify-checksums", false, "Verify prelude and message CRC32C fields")
	cmd.Flags().IntVar(&maxBufferMiB, "max-buffer", 0, "Decoder buffer ceiling in MiB (0 = default)")
	cmd.Flags().IntVar(&maxDepth, "max-depth", 0, "Nested event-stream depth limit (0 = default)")
	cmd.Flags().StringVar(&s3URI, "s3", "", "Read the capture from S3 (s3://bucket/key or key with a configured bucket)")

	return cmd
}

func runDump(ctx context.Context, cfg *config.Config, s3URI string, args []string) error {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	in, err := openCapture(ctx, cfg, s3URI, args)
	if err != nil {
		return err
	}
	defer in.Close()

	dec := eventstream.NewStreamDecoder(decoderOptions(cfg)...)
	out := json.NewEncoder(os.Stdout)

	err = capture.Replay(ctx, in, dec, func(f *eventstream.Frame) error {
		ev := eventstream.ToEvent(f)
		return out.Encode(lineEvent{Type: ev.Type, Data: ev.Data})
	})

	if skips := dec.Stats().ResyncSkips; skips > 0 {
		log.Warn().Int64("bytes_skipped", skips).Msg("capture contained malformed data")
	}
	if err != nil {
		log.Error().Err(err).Msg("decode failed")
		return err
	}

	stats := dec.Stats()
	log.Info().
		Int64("frames", stats.FramesDecoded).
		Int64("bytes", stats.BytesFed).
		Msg("capture decoded")
	return nil
}

// decoderOptions translates the config into decoder options.
func decoderOptions(cfg *config.Config) []eventstream.Option {
	var opts []eventstream.Option
	if cfg.Strict {
		opts = append(opts, eventstream.WithStrict())
	}
	if cfg.VerifyChecksums {
		opts = append(opts, eventstream.WithChecksumValidation())
	}
	if cfg.MaxBufferMiB > 0 {
		opts = append(opts, eventstream.WithMaxBuffer(cfg.MaxBufferMiB*1024*1024))
	}
	if cfg.MaxDepth > 0 {
		opts = append(opts, eventstream.WithMaxDepth(cfg.MaxDepth))
	}
	return opts
}

// openCapture resolves the capture source: --s3, a file argument, or stdin.
func openCapture(ctx context.Context, cfg *config.Config, s3URI string, args []string) (io.ReadCloser, error) {
	if s3URI != "" {
		bucket, key, err := splitS3URI(s3URI, cfg.S3.Bucket)
		if err != nil {
			return nil, err
		}
		var loadOpts []func(*awsconfig.LoadOptions) error
		if cfg.S3.Region != "" {
			loadOpts = append(loadOpts, awsconfig.WithRegion(cfg.S3.Region))
		}
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
		if err != nil {
			return nil, fmt.Errorf("load AWS config: %w", err)
		}
		src := capture.S3Source{Client: s3.NewFromConfig(awsCfg), Bucket: bucket, Key: key}
		return src.Open(ctx)
	}

	if len(args) == 0 || args[0] == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return capture.FileSource{Path: args[0]}.Open(ctx)
}

// splitS3URI accepts "s3://bucket/key", "bucket/key", or a bare key when a
// default bucket is configured.
func splitS3URI(uri, defaultBucket string) (bucket, key string, err error) {
	trimmed := strings.TrimPrefix(uri, "s3://")
	if bucket, key, ok := strings.Cut(trimmed, "/"); ok && bucket != "" && key != "" {
		return bucket, key, nil
	}
	if defaultBucket != "" && trimmed != "" {
		return defaultBucket, trimmed, nil
	}
	return "", "", fmt.Errorf("invalid S3 location %q: want s3://bucket/key", uri)
}
