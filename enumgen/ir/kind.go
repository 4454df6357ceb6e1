package ir

import (
	"fmt"
	"strconv"
	"strings"
)

// UnderlyingKind identifies the integer type backing an enum.
type UnderlyingKind int

const (
	KindInvalid UnderlyingKind = iota
	KindInt                    // Platform-sized signed integer (int)
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindUint // Platform-sized unsigned integer (uint)
	KindUint8
	KindUint16
	KindUint32
	KindUint64
)

var kindNames = [...]string{
	KindInvalid: "invalid",
	KindInt:     "int",
	KindInt8:    "int8",
	KindInt16:   "int16",
	KindInt32:   "int32",
	KindInt64:   "int64",
	KindUint:    "uint",
	KindUint8:   "uint8",
	KindUint16:  "uint16",
	KindUint32:  "uint32",
	KindUint64:  "uint64",
}

// String returns the Go spelling of the kind, e.g. "int32".
func (k UnderlyingKind) String() string {
	if k.IsValid() || k == KindInvalid {
		return kindNames[k]
	}
	return "unknown"
}

// IsValid reports whether k is one of the supported integer kinds.
func (k UnderlyingKind) IsValid() bool {
	return k >= KindInt && k <= KindUint64
}

// Signed reports whether the kind is a signed integer.
func (k UnderlyingKind) Signed() bool {
	return k >= KindInt && k <= KindInt64
}

// BitSize returns the width of the kind in bits, as accepted by strconv.
// The platform-sized kinds return 0.
func (k UnderlyingKind) BitSize() int {
	switch k {
	case KindInt8, KindUint8:
		return 8
	case KindInt16, KindUint16:
		return 16
	case KindInt32, KindUint32:
		return 32
	case KindInt64, KindUint64:
		return 64
	default:
		return 0
	}
}

// ParseUnderlyingKind parses a Go integer type name. "byte" and "rune" are
// accepted as aliases of uint8 and int32.
func ParseUnderlyingKind(s string) (UnderlyingKind, error) {
	s = strings.TrimSpace(s)
	switch s {
	case "byte":
		return KindUint8, nil
	case "rune":
		return KindInt32, nil
	}
	for k := KindInt; k <= KindUint64; k++ {
		if kindNames[k] == s {
			return k, nil
		}
	}
	return KindInvalid, fmt.Errorf("unsupported underlying type %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (k UnderlyingKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *UnderlyingKind) UnmarshalText(text []byte) error {
	v, err := ParseUnderlyingKind(string(text))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// Constant is the value of an enum member, stored as the two's complement bit
// pattern of a 64-bit integer. Signed values are sign-extended, so equality of
// Constants is numeric equality within one UnderlyingKind.
type Constant uint64

// Int64Constant returns the Constant for a signed value.
func Int64Constant(v int64) Constant { return Constant(uint64(v)) }

// Uint64Constant returns the Constant for an unsigned value.
func Uint64Constant(v uint64) Constant { return Constant(v) }

// Format returns the decimal literal of c interpreted as kind k.
func (c Constant) Format(k UnderlyingKind) string {
	if k.Signed() {
		return strconv.FormatInt(int64(c), 10)
	}
	return strconv.FormatUint(uint64(c), 10)
}

// Fits reports whether c is representable in kind k. Platform-sized kinds are
// checked as 64-bit.
func (c Constant) Fits(k UnderlyingKind) bool {
	if !k.IsValid() {
		return false
	}
	bits := k.BitSize()
	if bits == 0 || bits == 64 {
		return true
	}
	if k.Signed() {
		v := int64(c)
		return v >= -1<<(bits-1) && v <= 1<<(bits-1)-1
	}
	return uint64(c) < 1<<bits
}

// ParseConstant parses an integer literal for kind k. Go literal syntax is
// accepted (base prefixes and underscores), and the result is range checked.
func ParseConstant(s string, k UnderlyingKind) (Constant, error) {
	if !k.IsValid() {
		return 0, fmt.Errorf("unsupported underlying type %s", k)
	}
	s = strings.TrimSpace(s)
	bits := k.BitSize()
	if bits == 0 {
		bits = 64
	}
	if k.Signed() {
		v, err := strconv.ParseInt(s, 0, bits)
		if err != nil {
			return 0, fmt.Errorf("invalid %s constant %q: %w", k, s, err)
		}
		return Int64Constant(v), nil
	}
	v, err := strconv.ParseUint(s, 0, bits)
	if err != nil {
		return 0, fmt.Errorf("invalid %s constant %q: %w", k, s, err)
	}
	return Uint64Constant(v), nil
}
