package tensor

import (
	"fmt"
	"math/cmplx"
)

// ScalarKind tags which field of a Scalar holds its value.
type ScalarKind int

// Scalar kinds.
const (
	ScalarKindBool ScalarKind = iota
	ScalarKindInt
	ScalarKindUint
	ScalarKindFloat
	ScalarKindComplex
)

// Scalar is a tagged union able to hold a value of any supported dtype.
// Kernels cast it to the dtype of the tensor they operate on.
type Scalar struct {
	kind ScalarKind
	b    bool
	i    int64
	u    uint64
	f    float64
	c    complex128
}

// ScalarBool wraps a bool.
func ScalarBool(v bool) Scalar { return Scalar{kind: ScalarKindBool, b: v} }

// ScalarInt wraps a signed integer.
func ScalarInt(v int64) Scalar { return Scalar{kind: ScalarKindInt, i: v} }

// ScalarUint wraps an unsigned integer.
func ScalarUint(v uint64) Scalar { return Scalar{kind: ScalarKindUint, u: v} }

// ScalarFloat wraps a float.
func ScalarFloat(v float64) Scalar { return Scalar{kind: ScalarKindFloat, f: v} }

// ScalarComplex wraps a complex number.
func ScalarComplex(v complex128) Scalar { return Scalar{kind: ScalarKindComplex, c: v} }

// Kind returns the scalar's tag.
func (s Scalar) Kind() ScalarKind {
	return s.kind
}

// IsComplex reports whether the scalar holds a complex value.
func (s Scalar) IsComplex() bool {
	return s.kind == ScalarKindComplex
}

// Complex128 returns the value promoted to complex128.
func (s Scalar) Complex128() complex128 {
	switch s.kind {
	case ScalarKindBool:
		if s.b {
			return 1
		}
		return 0
	case ScalarKindInt:
		return complex(float64(s.i), 0)
	case ScalarKindUint:
		return complex(float64(s.u), 0)
	case ScalarKindFloat:
		return complex(s.f, 0)
	default:
		return s.c
	}
}

// Float64 returns the value as float64; complex values keep their real part.
func (s Scalar) Float64() float64 {
	switch s.kind {
	case ScalarKindInt:
		return float64(s.i)
	case ScalarKindUint:
		return float64(s.u)
	case ScalarKindFloat:
		return s.f
	default:
		return real(s.Complex128())
	}
}

// Int64 returns the value as int64, truncating toward zero.
func (s Scalar) Int64() int64 {
	switch s.kind {
	case ScalarKindInt:
		return s.i
	case ScalarKindUint:
		return int64(s.u)
	default:
		return int64(s.Float64())
	}
}

// Uint64 returns the value as uint64, truncating toward zero.
func (s Scalar) Uint64() uint64 {
	switch s.kind {
	case ScalarKindUint:
		return s.u
	case ScalarKindInt:
		return uint64(s.i)
	default:
		return uint64(s.Float64())
	}
}

// Bool returns whether the value is non-zero.
func (s Scalar) Bool() bool {
	if s.kind == ScalarKindBool {
		return s.b
	}
	return s.Complex128() != 0
}

// String formats the scalar value.
func (s Scalar) String() string {
	switch s.kind {
	case ScalarKindBool:
		return fmt.Sprint(s.b)
	case ScalarKindInt:
		return fmt.Sprint(s.i)
	case ScalarKindUint:
		return fmt.Sprint(s.u)
	case ScalarKindFloat:
		return fmt.Sprint(s.f)
	default:
		if cmplx.IsNaN(s.c) {
			return "NaN"
		}
		return fmt.Sprint(s.c)
	}
}

// ScalarTensor wraps s into a 0-dim tensor of the given dtype.
func ScalarTensor(s Scalar, dtype DataType, device Device) *RawTensor {
	t, err := NewRaw(Shape{}, dtype, device)
	if err != nil {
		panic(err) // A 0-dim shape is always valid.
	}
	StoreScalar(t, t.Offset(), s)
	return t
}
