// Package tensor provides the tensor handle, dtype, scalar and storage types used by
// the elementwise dispatch layer.
package tensor

import (
	"github.com/x448/float16"
)

// DType is a constraint for Go element types that map to a DataType.
// The terms are exact types: float16.Float16 is defined over uint16, so an
// approximation element would make the two overlap.
type DType interface {
	bool | int8 | int16 | int32 | int64 | uint8 | uint16 | uint32 | uint64 |
		float16.Float16 | float32 | float64 | complex64 | complex128
}

// DataType represents runtime type information for tensors.
type DataType int

// Supported data types for tensors.
const (
	Float32 DataType = iota
	Float64
	Int32
	Int64
	Uint8
	Bool
	Int8
	Int16
	Uint16
	Uint32
	Uint64
	Float16
	Complex64
	Complex128
)

// DefaultFloat is the dtype allocated when an integral input needs a floating result.
const DefaultFloat = Float32

// AllDataTypes lists every supported dtype, in declaration order.
var AllDataTypes = []DataType{
	Float32, Float64, Int32, Int64, Uint8, Bool,
	Int8, Int16, Uint16, Uint32, Uint64, Float16, Complex64, Complex128,
}

// Size returns the byte size of the data type.
func (dt DataType) Size() int {
	switch dt {
	case Uint8, Bool, Int8:
		return 1
	case Int16, Uint16, Float16:
		return 2
	case Float32, Int32, Uint32:
		return 4
	case Float64, Int64, Uint64, Complex64:
		return 8
	case Complex128:
		return 16
	default:
		panic("unknown data type")
	}
}

// String returns a human-readable name for the data type.
func (dt DataType) String() string {
	switch dt {
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Uint8:
		return "uint8"
	case Bool:
		return "bool"
	case Int8:
		return "int8"
	case Int16:
		return "int16"
	case Uint16:
		return "uint16"
	case Uint32:
		return "uint32"
	case Uint64:
		return "uint64"
	case Float16:
		return "float16"
	case Complex64:
		return "complex64"
	case Complex128:
		return "complex128"
	default:
		return "unknown"
	}
}

// ParseDataType returns the DataType named by s, as printed by String.
func ParseDataType(s string) (DataType, bool) {
	for _, dt := range AllDataTypes {
		if dt.String() == s {
			return dt, true
		}
	}
	return 0, false
}

// IsComplex reports whether dt is a complex type.
func (dt DataType) IsComplex() bool {
	return dt == Complex64 || dt == Complex128
}

// IsFloat reports whether dt is a real floating point type. It is false for complex types.
func (dt DataType) IsFloat() bool {
	return dt == Float16 || dt == Float32 || dt == Float64
}

// IsInt reports whether dt is a signed or unsigned integer type.
func (dt DataType) IsInt() bool {
	switch dt {
	case Int8, Int16, Int32, Int64, Uint8, Uint16, Uint32, Uint64:
		return true
	}
	return false
}

// IsUnsigned reports whether dt is an unsigned integer type.
func (dt DataType) IsUnsigned() bool {
	return dt == Uint8 || dt == Uint16 || dt == Uint32 || dt == Uint64
}

// RealDType returns the real component type of complex dtypes.
// Float dtypes return themselves; any other dtype returns itself unchanged.
func (dt DataType) RealDType() DataType {
	switch dt {
	case Complex64:
		return Float32
	case Complex128:
		return Float64
	default:
		return dt
	}
}

// CanCast reports whether values of dtype from may be written into a tensor of dtype to
// without losing their category: complex into non-complex, floating into integral and
// anything but bool into bool are refused.
func CanCast(from, to DataType) bool {
	switch {
	case from.IsComplex() && !to.IsComplex():
		return false
	case from.IsFloat() && to.IsInt():
		return false
	case from != Bool && to == Bool:
		return false
	}
	return true
}

// inferDataType infers DataType from a generic type T.
func inferDataType[T DType](dummy T) DataType {
	switch any(dummy).(type) {
	case float32:
		return Float32
	case float64:
		return Float64
	case int32:
		return Int32
	case int64:
		return Int64
	case uint8:
		return Uint8
	case bool:
		return Bool
	case int8:
		return Int8
	case int16:
		return Int16
	case uint16:
		return Uint16
	case uint32:
		return Uint32
	case uint64:
		return Uint64
	case float16.Float16:
		return Float16
	case complex64:
		return Complex64
	case complex128:
		return Complex128
	default:
		panic("unsupported type")
	}
}
