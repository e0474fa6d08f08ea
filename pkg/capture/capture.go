// Package capture feeds recorded event-stream bytes into a decoder. The
// decoder itself does no I/O; sources here open byte streams (local files,
// S3 objects) and Replay pumps them through a StreamDecoder chunk by chunk.
package capture

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/vango-dev/eventstream/pkg/eventstream"
)

// DefaultChunkSize is the read size used by Replay. Deliberately small
// relative to frame sizes so replays exercise the same split-frame paths a
// live transport would.
const DefaultChunkSize = 32 * 1024

// Source opens a recorded byte stream.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
}

// FileSource reads a capture from the local filesystem.
type FileSource struct {
	Path string
}

// Open implements Source.
func (s FileSource) Open(ctx context.Context) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("capture: open %s: %w", s.Path, err)
	}
	return f, nil
}

// Replay reads r in DefaultChunkSize chunks, feeds each into dec, and calls
// fn for every frame that becomes decodable. It stops at EOF, on context
// cancellation, on a Feed/Decode error, or when fn returns an error (which
// is returned unchanged, so callers can stop early with a sentinel).
//
// Trailing bytes that never formed a complete frame are reported as an
// error: a clean capture ends on a frame boundary.
func Replay(ctx context.Context, r io.Reader, dec *eventstream.StreamDecoder, fn func(*eventstream.Frame) error) error {
	buf := make([]byte, DefaultChunkSize)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		n, readErr := r.Read(buf)
		if n > 0 {
			if err := dec.Feed(buf[:n]); err != nil {
				return err
			}
			frames, err := dec.Decode()
			if err != nil {
				return err
			}
			for _, f := range frames {
				if err := fn(f); err != nil {
					return err
				}
			}
		}
		if readErr == io.EOF {
			if left := dec.Buffered(); left > 0 {
				return fmt.Errorf("capture: %d trailing bytes did not form a complete frame", left)
			}
			return nil
		}
		if readErr != nil {
			return fmt.Errorf("capture: read: %w", readErr)
		}
	}
}
