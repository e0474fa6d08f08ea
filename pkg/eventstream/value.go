package eventstream

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"time"
)

// ValueType identifies the wire encoding of a header value. Exactly one tag
// maps to exactly one variant; tags outside 0–9 are malformed.
type ValueType uint8

const (
	TypeBoolTrue  ValueType = 0 // no value bytes
	TypeBoolFalse ValueType = 1 // no value bytes
	TypeInt8      ValueType = 2 // 1 byte, signed
	TypeInt16     ValueType = 3 // 2 bytes big-endian, signed
	TypeInt32     ValueType = 4 // 4 bytes big-endian, signed
	TypeInt64     ValueType = 5 // 8 bytes big-endian, signed
	TypeBytes     ValueType = 6 // 2-byte big-endian length + N bytes
	TypeString    ValueType = 7 // 2-byte big-endian length + N bytes, UTF-8
	TypeTimestamp ValueType = 8 // 8 bytes big-endian, ms since epoch
	TypeUUID      ValueType = 9 // 16 raw bytes
)

// String returns the type tag name.
func (t ValueType) String() string {
	switch t {
	case TypeBoolTrue:
		return "BoolTrue"
	case TypeBoolFalse:
		return "BoolFalse"
	case TypeInt8:
		return "Int8"
	case TypeInt16:
		return "Int16"
	case TypeInt32:
		return "Int32"
	case TypeInt64:
		return "Int64"
	case TypeBytes:
		return "Bytes"
	case TypeString:
		return "String"
	case TypeTimestamp:
		return "Timestamp"
	case TypeUUID:
		return "UUID"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(t))
	}
}

// Value is a decoded header value: a closed variant over the nine wire
// encodings. Type selects which field is meaningful.
type Value struct {
	Type ValueType

	Bool  bool      // TypeBoolTrue, TypeBoolFalse
	Int   int64     // TypeInt8 through TypeInt64
	Bytes []byte    // TypeBytes; TypeUUID holds the 16 raw bytes
	Str   string    // TypeString
	Time  time.Time // TypeTimestamp
}

// String renders the value for logs and diagnostics. UUIDs render as hex,
// raw bytes as base64.
func (v Value) String() string {
	switch v.Type {
	case TypeBoolTrue, TypeBoolFalse:
		return fmt.Sprintf("%t", v.Bool)
	case TypeInt8, TypeInt16, TypeInt32, TypeInt64:
		return fmt.Sprintf("%d", v.Int)
	case TypeBytes:
		return base64.StdEncoding.EncodeToString(v.Bytes)
	case TypeString:
		return v.Str
	case TypeTimestamp:
		return v.Time.UTC().Format(time.RFC3339Nano)
	case TypeUUID:
		return hex.EncodeToString(v.Bytes)
	default:
		return fmt.Sprintf("<%s>", v.Type)
	}
}

// BoolValue builds a boolean header value. True and false carry distinct
// type tags on the wire.
func BoolValue(b bool) Value {
	if b {
		return Value{Type: TypeBoolTrue, Bool: true}
	}
	return Value{Type: TypeBoolFalse, Bool: false}
}

// Int8Value builds a signed 8-bit header value.
func Int8Value(n int8) Value { return Value{Type: TypeInt8, Int: int64(n)} }

// Int16Value builds a signed 16-bit header value.
func Int16Value(n int16) Value { return Value{Type: TypeInt16, Int: int64(n)} }

// Int32Value builds a signed 32-bit header value.
func Int32Value(n int32) Value { return Value{Type: TypeInt32, Int: int64(n)} }

// Int64Value builds a signed 64-bit header value.
func Int64Value(n int64) Value { return Value{Type: TypeInt64, Int: n} }

// BytesValue builds a raw-bytes header value.
func BytesValue(b []byte) Value { return Value{Type: TypeBytes, Bytes: b} }

// StringValue builds a UTF-8 string header value.
func StringValue(s string) Value { return Value{Type: TypeString, Str: s} }

// TimestampValue builds a timestamp header value. The wire encoding is
// milliseconds since the Unix epoch, so sub-millisecond precision is lost.
func TimestampValue(t time.Time) Value {
	return Value{Type: TypeTimestamp, Time: t.Truncate(time.Millisecond)}
}

// UUIDValue builds a UUID header value from 16 raw bytes.
func UUIDValue(id [16]byte) Value {
	b := make([]byte, 16)
	copy(b, id[:])
	return Value{Type: TypeUUID, Bytes: b}
}
