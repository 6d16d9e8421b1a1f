package tensor

import (
	"reflect"
	"strings"
)

// Integer is the set of signed integer element types.
type Integer interface {
	~int32 | ~int64
}

// Float is the set of floating point element types.
type Float interface {
	~float32 | ~float64
}

// Number is the set of element types a Dense or Buffer may hold.
type Number interface {
	Integer | Float
}

// DType identifies an element type at run time.
type DType uint8

const (
	// Invalid is the zero DType.
	Invalid DType = iota
	// Int32 is a 32-bit signed integer.
	Int32
	// Int64 is a 64-bit signed integer.
	Int64
	// Uint32 is a 32-bit unsigned integer (packed words only).
	Uint32
	// Uint64 is a 64-bit unsigned integer (packed words only).
	Uint64
	// Float32 is an IEEE-754 single precision float.
	Float32
	// Float64 is an IEEE-754 double precision float.
	Float64
)

var (
	// NumberDTypes lists the dtypes a Buffer can hold.
	NumberDTypes = []DType{Int32, Int64, Float32, Float64}

	// FloatDTypes lists the floating point dtypes.
	FloatDTypes = []DType{Float32, Float64}
)

// String returns the lower-case name of the dtype.
func (d DType) String() string {
	switch d {
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Uint32:
		return "uint32"
	case Uint64:
		return "uint64"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	default:
		return "invalid"
	}
}

// ParseDType parses a dtype name as produced by String.
func ParseDType(s string) (DType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "int32":
		return Int32, true
	case "int64":
		return Int64, true
	case "uint32":
		return Uint32, true
	case "uint64":
		return Uint64, true
	case "float32":
		return Float32, true
	case "float64":
		return Float64, true
	default:
		return Invalid, false
	}
}

// Size returns the element width in bytes, or 0 for Invalid.
func (d DType) Size() int {
	switch d {
	case Int32, Uint32, Float32:
		return 4
	case Int64, Uint64, Float64:
		return 8
	default:
		return 0
	}
}

// Bits returns the element width in bits.
func (d DType) Bits() int { return d.Size() * 8 }

// IsFloat reports whether d is a floating point dtype.
func (d DType) IsFloat() bool { return d == Float32 || d == Float64 }

// IsInteger reports whether d is a signed or unsigned integer dtype.
func (d DType) IsInteger() bool {
	return d == Int32 || d == Int64 || d == Uint32 || d == Uint64
}

// DTypeFor returns the dtype matching the underlying kind of T.
// Types outside the supported set map to Invalid.
func DTypeFor[T any]() DType {
	switch reflect.TypeFor[T]().Kind() {
	case reflect.Int32:
		return Int32
	case reflect.Int64:
		return Int64
	case reflect.Uint32:
		return Uint32
	case reflect.Uint64:
		return Uint64
	case reflect.Float32:
		return Float32
	case reflect.Float64:
		return Float64
	default:
		return Invalid
	}
}
