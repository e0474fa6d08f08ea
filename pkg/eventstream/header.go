package eventstream

import (
	"encoding/binary"
	"time"
)

// DecodeHeaders decodes a contiguous header region into a name → value
// mapping. Records are read back to back until the region is exhausted:
//
//	[NameLength: 1 byte][Name][TypeTag: 1 byte][Value]
//
// If a name repeats within one region, the last occurrence wins; the format
// performs no deduplication. An unknown type tag or a truncated record fails
// with a *FormatError — recovery is the StreamDecoder's job, not this
// codec's.
func DecodeHeaders(data []byte) (map[string]Value, error) {
	headers := make(map[string]Value)
	pos := 0
	for pos < len(data) {
		nameLen := int(data[pos])
		pos++
		if pos+nameLen > len(data) {
			return nil, formatErrf(pos, "truncated header name")
		}
		name := string(data[pos : pos+nameLen])
		pos += nameLen

		if pos >= len(data) {
			return nil, formatErrf(pos, "missing header type tag")
		}
		tag := ValueType(data[pos])
		pos++

		v, n, err := decodeValue(tag, data[pos:], pos)
		if err != nil {
			return nil, err
		}
		pos += n
		headers[name] = v
	}
	return headers, nil
}

// decodeValue decodes one header value of the given tag from the front of
// rest, returning the value and the number of bytes consumed. base is the
// offset of rest within the header region, used for error reporting only.
func decodeValue(tag ValueType, rest []byte, base int) (Value, int, error) {
	short := func() (Value, int, error) {
		return Value{}, 0, formatErrf(base, "truncated %s header value", tag)
	}

	switch tag {
	case TypeBoolTrue:
		return Value{Type: TypeBoolTrue, Bool: true}, 0, nil

	case TypeBoolFalse:
		return Value{Type: TypeBoolFalse, Bool: false}, 0, nil

	case TypeInt8:
		if len(rest) < 1 {
			return short()
		}
		return Value{Type: TypeInt8, Int: int64(int8(rest[0]))}, 1, nil

	case TypeInt16:
		if len(rest) < 2 {
			return short()
		}
		n := int16(binary.BigEndian.Uint16(rest))
		return Value{Type: TypeInt16, Int: int64(n)}, 2, nil

	case TypeInt32:
		if len(rest) < 4 {
			return short()
		}
		n := int32(binary.BigEndian.Uint32(rest))
		return Value{Type: TypeInt32, Int: int64(n)}, 4, nil

	case TypeInt64:
		if len(rest) < 8 {
			return short()
		}
		n := int64(binary.BigEndian.Uint64(rest))
		return Value{Type: TypeInt64, Int: n}, 8, nil

	case TypeBytes, TypeString:
		if len(rest) < 2 {
			return short()
		}
		length := int(binary.BigEndian.Uint16(rest))
		if 2+length > len(rest) {
			return short()
		}
		if tag == TypeString {
			return Value{Type: TypeString, Str: string(rest[2 : 2+length])}, 2 + length, nil
		}
		// Copy so the value holds no reference to the decoder buffer.
		b := make([]byte, length)
		copy(b, rest[2:2+length])
		return Value{Type: TypeBytes, Bytes: b}, 2 + length, nil

	case TypeTimestamp:
		if len(rest) < 8 {
			return short()
		}
		ms := int64(binary.BigEndian.Uint64(rest))
		return Value{Type: TypeTimestamp, Time: time.UnixMilli(ms).UTC()}, 8, nil

	case TypeUUID:
		if len(rest) < 16 {
			return short()
		}
		b := make([]byte, 16)
		copy(b, rest[:16])
		return Value{Type: TypeUUID, Bytes: b}, 16, nil

	default:
		return Value{}, 0, formatErrf(base-1, "unknown header type tag %d", uint8(tag))
	}
}
