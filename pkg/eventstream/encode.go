package eventstream

import (
	"encoding/binary"
	"fmt"
	"math"
	"sort"
)

// EncodeHeaders encodes a header mapping into its wire form. Names are
// emitted in sorted order so the output is deterministic. It fails if a
// name exceeds 255 bytes, a string or byte value exceeds 65535 bytes, a
// UUID value is not exactly 16 bytes, or a value carries an unknown type.
func EncodeHeaders(headers map[string]Value) ([]byte, error) {
	names := make([]string, 0, len(headers))
	for name := range headers {
		names = append(names, name)
	}
	sort.Strings(names)

	var buf []byte
	for _, name := range names {
		if len(name) > math.MaxUint8 {
			return nil, fmt.Errorf("eventstream: header name %q exceeds 255 bytes", name[:32])
		}
		buf = append(buf, byte(len(name)))
		buf = append(buf, name...)

		var err error
		buf, err = appendValue(buf, headers[name])
		if err != nil {
			return nil, fmt.Errorf("eventstream: header %q: %w", name, err)
		}
	}
	return buf, nil
}

// appendValue appends a type tag and wire value to buf.
func appendValue(buf []byte, v Value) ([]byte, error) {
	switch v.Type {
	case TypeBoolTrue, TypeBoolFalse:
		// The tag alone carries the value.
		if v.Bool {
			return append(buf, byte(TypeBoolTrue)), nil
		}
		return append(buf, byte(TypeBoolFalse)), nil

	case TypeInt8:
		return append(buf, byte(TypeInt8), byte(int8(v.Int))), nil

	case TypeInt16:
		buf = append(buf, byte(TypeInt16))
		return binary.BigEndian.AppendUint16(buf, uint16(int16(v.Int))), nil

	case TypeInt32:
		buf = append(buf, byte(TypeInt32))
		return binary.BigEndian.AppendUint32(buf, uint32(int32(v.Int))), nil

	case TypeInt64:
		buf = append(buf, byte(TypeInt64))
		return binary.BigEndian.AppendUint64(buf, uint64(v.Int)), nil

	case TypeBytes:
		if len(v.Bytes) > math.MaxUint16 {
			return nil, fmt.Errorf("byte value exceeds %d bytes", math.MaxUint16)
		}
		buf = append(buf, byte(TypeBytes))
		buf = binary.BigEndian.AppendUint16(buf, uint16(len(v.Bytes)))
		return append(buf, v.Bytes...), nil

	case TypeString:
		if len(v.Str) > math.MaxUint16 {
			return nil, fmt.Errorf("string value exceeds %d bytes", math.MaxUint16)
		}
		buf = append(buf, byte(TypeString))
		buf = binary.BigEndian.AppendUint16(buf, uint16(len(v.Str)))
		return append(buf, v.Str...), nil

	case TypeTimestamp:
		buf = append(buf, byte(TypeTimestamp))
		return binary.BigEndian.AppendUint64(buf, uint64(v.Time.UnixMilli())), nil

	case TypeUUID:
		if len(v.Bytes) != 16 {
			return nil, fmt.Errorf("UUID value must be 16 bytes, got %d", len(v.Bytes))
		}
		buf = append(buf, byte(TypeUUID))
		return append(buf, v.Bytes...), nil

	default:
		return nil, fmt.Errorf("unknown value type %s", v.Type)
	}
}

// EncodeFrame encodes one complete frame: prelude, headers, payload, and
// both CRC32C integrity fields. The inverse of DecodeFrame.
//
// To build a nested event-stream, encode the inner frame first and pass its
// bytes as the payload alongside a ":content-type" header equal to
// ContentTypeNested.
func EncodeFrame(headers map[string]Value, payload []byte) ([]byte, error) {
	headerBytes, err := EncodeHeaders(headers)
	if err != nil {
		return nil, err
	}

	total := preludeSize + len(headerBytes) + len(payload) + 4
	if total > MaxFrameSize {
		return nil, fmt.Errorf("eventstream: frame length %d exceeds %d", total, MaxFrameSize)
	}

	buf := make([]byte, 0, total)
	buf = binary.BigEndian.AppendUint32(buf, uint32(total))
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(headerBytes)))
	buf = binary.BigEndian.AppendUint32(buf, Checksum(buf))
	buf = append(buf, headerBytes...)
	buf = append(buf, payload...)
	buf = binary.BigEndian.AppendUint32(buf, Checksum(buf))
	return buf, nil
}
