package eventstream

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"

	"github.com/klauspost/compress/gzip"
)

// Frame size constants.
const (
	// preludeSize is the fixed frame prelude: total length, headers length,
	// prelude checksum, 4 bytes each.
	preludeSize = 12

	// MinFrameSize is the smallest legal frame: a prelude plus the trailing
	// message checksum, with no headers and no payload.
	MinFrameSize = preludeSize + 4

	// MaxFrameSize is the largest legal declared frame length (16 MiB).
	// Anything above it is treated as corruption, never allocated for.
	MaxFrameSize = 16 * 1024 * 1024

	// DefaultMaxDepth bounds nested event-stream recursion. The format
	// itself imposes no bound, but each level must fit inside its parent's
	// payload, so legitimate nesting is shallow.
	DefaultMaxDepth = 8
)

// Distinguished header names and values consumed by this package.
const (
	// HeaderContentType is the header whose value selects nested-stream
	// handling.
	HeaderContentType = ":content-type"

	// HeaderEventType is the header read by ToEvent as the event type.
	HeaderEventType = ":event-type"

	// ContentTypeNested marks a frame whose payload is itself a complete
	// encoded event-stream.
	ContentTypeNested = "application/vnd.amazon.eventstream"
)

// Frame is one complete decoded unit of the wire format. Exactly one of
// Payload and Nested is meaningful: a frame whose ":content-type" header
// equals ContentTypeNested owns a Nested frame instead of a payload.
//
// Frames are ephemeral value objects. They hold copies of their header and
// payload bytes and no reference to the decoder buffer they came from.
type Frame struct {
	// Headers maps header names to decoded values. Duplicate names on the
	// wire collapse last-write-wins.
	Headers map[string]Value

	// Payload is the frame body, already gzip-decompressed when the body
	// carried the gzip magic and inflated cleanly. Nil for nested frames.
	Payload []byte

	// Nested is the inner frame of a nested event-stream, nil otherwise.
	Nested *Frame

	// Length is the number of wire bytes this frame consumed: exactly the
	// totalLength its prelude declared.
	Length int
}

// Header returns the named header value and whether it was present.
func (f *Frame) Header(name string) (Value, bool) {
	v, ok := f.Headers[name]
	return v, ok
}

// extractOpts carries the decode policy down through frame extraction.
type extractOpts struct {
	strict          bool
	verifyChecksums bool
	maxDepth        int
	stats           *Stats
}

func defaultExtractOpts() extractOpts {
	return extractOpts{maxDepth: DefaultMaxDepth}
}

// DecodeFrame decodes exactly one frame from the front of data using the
// default policy (no checksum verification, lenient decompression). It
// returns ErrIncomplete when data holds fewer bytes than the frame declares,
// consuming nothing.
func DecodeFrame(data []byte) (*Frame, error) {
	return extractFrame(data, 0, defaultExtractOpts())
}

// extractFrame validates and extracts one frame from the front of buf.
// depth counts nested-stream recursion levels already entered.
func extractFrame(buf []byte, depth int, o extractOpts) (*Frame, error) {
	if len(buf) < preludeSize {
		return nil, ErrIncomplete
	}

	total := int(binary.BigEndian.Uint32(buf[0:4]))
	headersLen := int(binary.BigEndian.Uint32(buf[4:8]))

	// Length fields are untrusted until proven otherwise.
	if total < MinFrameSize || total > MaxFrameSize {
		return nil, formatErrf(0, "invalid frame length %d", total)
	}
	if headersLen > total-MinFrameSize {
		return nil, formatErrf(4, "headers length %d exceeds frame length %d", headersLen, total)
	}
	if len(buf) < total {
		return nil, ErrIncomplete
	}

	if o.verifyChecksums {
		declared := binary.BigEndian.Uint32(buf[8:preludeSize])
		if got := Checksum(buf[0:8]); got != declared {
			return nil, formatErrf(8, "prelude checksum mismatch: computed %08x, declared %08x", got, declared)
		}
		declared = binary.BigEndian.Uint32(buf[total-4 : total])
		if got := Checksum(buf[0 : total-4]); got != declared {
			return nil, formatErrf(total-4, "message checksum mismatch: computed %08x, declared %08x", got, declared)
		}
	}

	headers, err := DecodeHeaders(buf[preludeSize : preludeSize+headersLen])
	if err != nil {
		return nil, err
	}

	payload := buf[preludeSize+headersLen : total-4]
	frame := &Frame{Headers: headers, Length: total}

	if ct, ok := headers[HeaderContentType]; ok && ct.Type == TypeString && ct.Str == ContentTypeNested {
		if depth+1 > o.maxDepth {
			return nil, formatErrf(preludeSize+headersLen, "event-stream nesting exceeds depth %d", o.maxDepth)
		}
		nested, err := extractFrame(payload, depth+1, o)
		if err != nil {
			if errors.Is(err, ErrIncomplete) {
				// The outer frame is complete, so an inner frame that
				// declares more bytes than the payload holds is corrupt,
				// not pending.
				return nil, formatErrf(preludeSize+headersLen, "truncated nested event-stream")
			}
			return nil, err
		}
		frame.Nested = nested
		return frame, nil
	}

	if len(payload) >= 2 && payload[0] == 0x1f && payload[1] == 0x8b {
		inflated, err := gunzip(payload)
		switch {
		case err == nil:
			frame.Payload = inflated
			return frame, nil
		case o.strict:
			return nil, formatErrf(preludeSize+headersLen, "gzip payload: %v", err)
		default:
			// Best effort: a payload that merely starts with the gzip
			// magic keeps its raw bytes.
			if o.stats != nil {
				o.stats.DecompressFallbacks++
			}
		}
	}

	frame.Payload = make([]byte, len(payload))
	copy(frame.Payload, payload)
	return frame, nil
}

// gunzip inflates a gzip payload, refusing to expand past MaxFrameSize.
func gunzip(data []byte) ([]byte, error) {
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	out, err := io.ReadAll(io.LimitReader(zr, MaxFrameSize+1))
	if err != nil {
		return nil, err
	}
	if len(out) > MaxFrameSize {
		return nil, errors.New("decompressed payload exceeds frame size limit")
	}
	return out, nil
}
