package eventstream

import (
	"errors"
	"fmt"
)

// Common decoding errors.
var (
	// ErrIncomplete signals that the input does not yet hold a complete
	// frame. It is not a failure: no bytes are consumed, and decoding
	// resumes once more data arrives.
	ErrIncomplete = errors.New("eventstream: incomplete frame")

	// ErrBufferLimit is returned by Feed when appending the chunk would
	// grow the decoder buffer past the configured ceiling.
	ErrBufferLimit = errors.New("eventstream: decoder buffer limit exceeded")
)

// FormatError reports malformed wire data: an out-of-bounds length field, an
// unknown header type tag, a truncated header record, or (when validation is
// enabled) a checksum mismatch.
//
// In the default lenient mode the StreamDecoder never surfaces a
// FormatError; it discards one byte and resynchronizes. In strict mode the
// error is returned from Decode instead.
type FormatError struct {
	// Reason describes what was malformed.
	Reason string

	// Offset is the byte offset of the fault relative to the start of the
	// frame being decoded, or -1 if not applicable.
	Offset int
}

// Error implements the error interface.
func (e *FormatError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("eventstream: %s at offset %d", e.Reason, e.Offset)
	}
	return "eventstream: " + e.Reason
}

// formatErrf builds a FormatError with a formatted reason.
func formatErrf(offset int, format string, args ...any) *FormatError {
	return &FormatError{Reason: fmt.Sprintf(format, args...), Offset: offset}
}
