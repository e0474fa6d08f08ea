// Package eventstream implements an incremental decoder for a
// length-prefixed binary event-stream wire format.
//
// Bytes arrive in arbitrary chunks (a streaming HTTP response body, a
// recorded capture file) and are reassembled into discrete, self-describing
// frames. Each frame carries a set of named, typed headers and an opaque
// payload. Payloads may be gzip-compressed, or may recursively contain
// another complete event-stream.
//
// # Design Goals
//
//   - Incremental: frames are surfaced as soon as enough bytes have arrived,
//     regardless of how the input was chunked
//   - Hostile-input safe: every length field is validated before it is
//     trusted; allocation and nesting limits bound resource use
//   - Live: malformed input never kills the decoder; it resynchronizes one
//     byte at a time until valid framing is found again
//   - Zero I/O: the package is pure computation over byte slices; transports
//     live elsewhere (see pkg/capture)
//
// # Wire Format
//
// All integers are big-endian. Each frame is laid out as:
//
//	┌──────────────┬───────────────┬──────────────────┐
//	│ TotalLength  │ HeadersLength │ PreludeChecksum  │
//	│ (4 bytes)    │ (4 bytes)     │ (4 bytes, CRC32C)│
//	├──────────────┴───────────────┴──────────────────┤
//	│ Headers (HeadersLength bytes)                    │
//	├──────────────────────────────────────────────────┤
//	│ Payload (TotalLength - HeadersLength - 16 bytes) │
//	├──────────────────────────────────────────────────┤
//	│ MessageChecksum (4 bytes, CRC32C)                │
//	└──────────────────────────────────────────────────┘
//
// Each header entry is:
//
//	[NameLength: 1 byte][Name: UTF-8][TypeTag: 1 byte][Value: per tag]
//
// Nine value encodings exist, identified by type tags 0–9 (true and false
// carry separate tags and no value bytes). See ValueType.
//
// A frame whose ":content-type" header equals ContentTypeNested carries a
// complete inner event-stream as its payload; StreamDecoder unwraps one
// level transparently. A payload beginning with the gzip magic bytes is
// decompressed opportunistically, falling back to the raw bytes if it turns
// out not to be valid gzip data.
//
// # Usage
//
//	dec := eventstream.NewStreamDecoder()
//	for chunk := range chunks {
//	    if err := dec.Feed(chunk); err != nil {
//	        // buffer ceiling exceeded; sender is broken or hostile
//	    }
//	    frames, _ := dec.Decode()
//	    for _, f := range frames {
//	        ev := eventstream.ToEvent(f)
//	        handle(ev)
//	    }
//	}
//
// One StreamDecoder is bound to one logical byte stream. Feed and Decode
// must be serialized by the caller; the decoder does no locking.
//
// # Error Policy
//
// By default the decoder is lenient: a malformed frame costs at most its own
// bytes, discarded one at a time, and Decode never returns an error. Callers
// that need fail-fast semantics can opt into strict mode with WithStrict,
// and into integrity checking with WithChecksumValidation.
package eventstream
