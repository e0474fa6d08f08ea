package eventstream

import "errors"

// DefaultMaxBuffer is the default ceiling on buffered, undecoded bytes
// (four maximum-size frames). The wire format itself never needs more than
// one frame of lookahead; the ceiling exists to bound memory under a buggy
// or adversarial sender.
const DefaultMaxBuffer = 4 * MaxFrameSize

// Stats is a snapshot of a decoder's counters. All values are cumulative
// over the decoder's lifetime.
type Stats struct {
	// BytesFed is the total number of bytes accepted by Feed.
	BytesFed int64

	// FramesDecoded is the number of frames surfaced by Decode, after
	// nested unwrapping.
	FramesDecoded int64

	// ResyncSkips is the number of single bytes discarded while recovering
	// from malformed input.
	ResyncSkips int64

	// DecompressFallbacks counts payloads that carried the gzip magic but
	// failed to inflate and were kept raw.
	DecompressFallbacks int64

	// NestedUnwrapped counts outer frames discarded in favor of their
	// nested inner frame.
	NestedUnwrapped int64
}

// StreamDecoder reassembles frames from a stream of byte chunks. It owns a
// single growing buffer: Feed appends to the back, Decode consumes whole
// frames (or single resync bytes) from the front.
//
// A decoder is bound to exactly one logical byte stream and must not be
// used concurrently. It holds no resources beyond its buffer and may be
// dropped at any point between calls.
type StreamDecoder struct {
	buf       []byte
	maxBuffer int
	opts      extractOpts
	stats     Stats
}

// Option configures a StreamDecoder.
type Option func(*StreamDecoder)

// WithStrict makes Decode return a *FormatError instead of silently
// resynchronizing, and makes a gzip payload that fails to inflate an error
// instead of a raw-bytes fallback.
func WithStrict() Option {
	return func(d *StreamDecoder) {
		d.opts.strict = true
	}
}

// WithChecksumValidation enables verification of the prelude and message
// CRC32C fields. A mismatch is handled like any other format error: resync
// by default, surfaced in strict mode.
func WithChecksumValidation() Option {
	return func(d *StreamDecoder) {
		d.opts.verifyChecksums = true
	}
}

// WithMaxBuffer sets the ceiling on buffered bytes (default
// DefaultMaxBuffer). Feed fails with ErrBufferLimit beyond it.
func WithMaxBuffer(n int) Option {
	return func(d *StreamDecoder) {
		d.maxBuffer = n
	}
}

// WithMaxDepth sets the nested event-stream recursion bound (default
// DefaultMaxDepth).
func WithMaxDepth(n int) Option {
	return func(d *StreamDecoder) {
		d.opts.maxDepth = n
	}
}

// NewStreamDecoder creates a decoder with an empty buffer.
func NewStreamDecoder(opts ...Option) *StreamDecoder {
	d := &StreamDecoder{
		maxBuffer: DefaultMaxBuffer,
		opts:      defaultExtractOpts(),
	}
	d.opts.stats = &d.stats
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Feed appends a chunk to the decoder buffer. It never blocks and never
// inspects the bytes; call Decode to drain whatever frames are now complete.
func (d *StreamDecoder) Feed(chunk []byte) error {
	if len(d.buf)+len(chunk) > d.maxBuffer {
		return ErrBufferLimit
	}
	d.buf = append(d.buf, chunk...)
	d.stats.BytesFed += int64(len(chunk))
	return nil
}

// Decode extracts every frame currently completable from the buffer and
// returns them in wire order. The result is finite: the call stops as soon
// as the buffer holds less than a minimum frame or the next frame is still
// incomplete. Calling Decode again after a later Feed resumes correctly.
//
// A frame that wraps a nested event-stream is unwrapped one level: the
// inner frame is returned in place of its wrapper.
//
// In the default lenient mode the returned error is always nil; malformed
// input costs one byte per iteration until valid framing is found again. In
// strict mode Decode stops at the first malformed frame and returns the
// *FormatError along with the frames decoded before it; the buffer is left
// untouched at the failure point.
func (d *StreamDecoder) Decode() ([]*Frame, error) {
	var frames []*Frame
	for len(d.buf) >= MinFrameSize {
		frame, err := extractFrame(d.buf, 0, d.opts)
		if err != nil {
			if errors.Is(err, ErrIncomplete) {
				break
			}
			if d.opts.strict {
				return frames, err
			}
			// Resync: drop one byte and try again. Trades at most one
			// frame's worth of data for decoder liveness.
			d.buf = d.buf[1:]
			d.stats.ResyncSkips++
			continue
		}

		d.buf = d.buf[frame.Length:]
		if frame.Nested != nil {
			frame = frame.Nested
			d.stats.NestedUnwrapped++
		}
		d.stats.FramesDecoded++
		frames = append(frames, frame)
	}
	if len(d.buf) == 0 {
		// Release the backing array between bursts.
		d.buf = nil
	}
	return frames, nil
}

// Buffered reports the number of undecoded bytes currently held.
func (d *StreamDecoder) Buffered() int {
	return len(d.buf)
}

// Stats returns a snapshot of the decoder's counters.
func (d *StreamDecoder) Stats() Stats {
	return d.stats
}
