package tensor

import (
	"math"

	"github.com/x448/float16"
)

// Loader returns a function reading the element at storage offset off of r, promoted
// to complex128. It is the dtype-erased path used by casts and reductions; typed
// kernels use Elements instead.
func Loader(r *RawTensor) func(off int) complex128 {
	switch r.dtype {
	case Bool:
		s := Elements[bool](r)
		return func(off int) complex128 {
			if s[off] {
				return 1
			}
			return 0
		}
	case Int8:
		s := Elements[int8](r)
		return func(off int) complex128 { return complex(float64(s[off]), 0) }
	case Int16:
		s := Elements[int16](r)
		return func(off int) complex128 { return complex(float64(s[off]), 0) }
	case Int32:
		s := Elements[int32](r)
		return func(off int) complex128 { return complex(float64(s[off]), 0) }
	case Int64:
		s := Elements[int64](r)
		return func(off int) complex128 { return complex(float64(s[off]), 0) }
	case Uint8:
		s := Elements[uint8](r)
		return func(off int) complex128 { return complex(float64(s[off]), 0) }
	case Uint16:
		s := Elements[uint16](r)
		return func(off int) complex128 { return complex(float64(s[off]), 0) }
	case Uint32:
		s := Elements[uint32](r)
		return func(off int) complex128 { return complex(float64(s[off]), 0) }
	case Uint64:
		s := Elements[uint64](r)
		return func(off int) complex128 { return complex(float64(s[off]), 0) }
	case Float16:
		s := Elements[float16.Float16](r)
		return func(off int) complex128 { return complex(float64(s[off].Float32()), 0) }
	case Float32:
		s := Elements[float32](r)
		return func(off int) complex128 { return complex(float64(s[off]), 0) }
	case Float64:
		s := Elements[float64](r)
		return func(off int) complex128 { return complex(s[off], 0) }
	case Complex64:
		s := Elements[complex64](r)
		return func(off int) complex128 { return complex128(s[off]) }
	case Complex128:
		s := Elements[complex128](r)
		return func(off int) complex128 { return s[off] }
	default:
		panic("unknown data type")
	}
}

// Storer returns a function writing v at storage offset off of r, cast to r's dtype.
// Casting into a real dtype keeps the real part; integers truncate toward zero and
// bool stores v != 0.
func Storer(r *RawTensor) func(off int, v complex128) {
	switch r.dtype {
	case Bool:
		s := Elements[bool](r)
		return func(off int, v complex128) { s[off] = v != 0 }
	case Int8:
		s := Elements[int8](r)
		return func(off int, v complex128) { s[off] = int8(toInt(real(v))) }
	case Int16:
		s := Elements[int16](r)
		return func(off int, v complex128) { s[off] = int16(toInt(real(v))) }
	case Int32:
		s := Elements[int32](r)
		return func(off int, v complex128) { s[off] = int32(toInt(real(v))) }
	case Int64:
		s := Elements[int64](r)
		return func(off int, v complex128) { s[off] = toInt(real(v)) }
	case Uint8:
		s := Elements[uint8](r)
		return func(off int, v complex128) { s[off] = uint8(toInt(real(v))) }
	case Uint16:
		s := Elements[uint16](r)
		return func(off int, v complex128) { s[off] = uint16(toInt(real(v))) }
	case Uint32:
		s := Elements[uint32](r)
		return func(off int, v complex128) { s[off] = uint32(toInt(real(v))) }
	case Uint64:
		s := Elements[uint64](r)
		return func(off int, v complex128) { s[off] = uint64(toInt(real(v))) }
	case Float16:
		s := Elements[float16.Float16](r)
		return func(off int, v complex128) { s[off] = float16.Fromfloat32(float32(real(v))) }
	case Float32:
		s := Elements[float32](r)
		return func(off int, v complex128) { s[off] = float32(real(v)) }
	case Float64:
		s := Elements[float64](r)
		return func(off int, v complex128) { s[off] = real(v) }
	case Complex64:
		s := Elements[complex64](r)
		return func(off int, v complex128) { s[off] = complex64(v) }
	case Complex128:
		s := Elements[complex128](r)
		return func(off int, v complex128) { s[off] = v }
	default:
		panic("unknown data type")
	}
}

// IntLoader returns a function reading the integer element at storage offset off of r
// as the two's complement bits of its value, sign-extended for signed dtypes.
// It panics when r is not of an integer dtype.
func IntLoader(r *RawTensor) func(off int) uint64 {
	switch r.dtype {
	case Int8:
		s := Elements[int8](r)
		return func(off int) uint64 { return uint64(int64(s[off])) }
	case Int16:
		s := Elements[int16](r)
		return func(off int) uint64 { return uint64(int64(s[off])) }
	case Int32:
		s := Elements[int32](r)
		return func(off int) uint64 { return uint64(int64(s[off])) }
	case Int64:
		s := Elements[int64](r)
		return func(off int) uint64 { return uint64(s[off]) }
	case Uint8:
		s := Elements[uint8](r)
		return func(off int) uint64 { return uint64(s[off]) }
	case Uint16:
		s := Elements[uint16](r)
		return func(off int) uint64 { return uint64(s[off]) }
	case Uint32:
		s := Elements[uint32](r)
		return func(off int) uint64 { return uint64(s[off]) }
	case Uint64:
		s := Elements[uint64](r)
		return func(off int) uint64 { return s[off] }
	default:
		panic("IntLoader: " + r.dtype.String() + " is not an integer dtype")
	}
}

// IntStorer returns a function writing the bits read by IntLoader at storage offset off
// of r, truncated to r's width as a Go integer conversion does.
// It panics when r is not of an integer dtype.
func IntStorer(r *RawTensor) func(off int, v uint64) {
	switch r.dtype {
	case Int8:
		s := Elements[int8](r)
		return func(off int, v uint64) { s[off] = int8(v) }
	case Int16:
		s := Elements[int16](r)
		return func(off int, v uint64) { s[off] = int16(v) }
	case Int32:
		s := Elements[int32](r)
		return func(off int, v uint64) { s[off] = int32(v) }
	case Int64:
		s := Elements[int64](r)
		return func(off int, v uint64) { s[off] = int64(v) }
	case Uint8:
		s := Elements[uint8](r)
		return func(off int, v uint64) { s[off] = uint8(v) }
	case Uint16:
		s := Elements[uint16](r)
		return func(off int, v uint64) { s[off] = uint16(v) }
	case Uint32:
		s := Elements[uint32](r)
		return func(off int, v uint64) { s[off] = uint32(v) }
	case Uint64:
		s := Elements[uint64](r)
		return func(off int, v uint64) { s[off] = v }
	default:
		panic("IntStorer: " + r.dtype.String() + " is not an integer dtype")
	}
}

// StoreScalar writes s at storage offset off of r. Integer dtypes are written from the
// scalar's integer value, so large integers keep every bit.
func StoreScalar(r *RawTensor, off int, s Scalar) {
	switch r.dtype {
	case Int64:
		Elements[int64](r)[off] = s.Int64()
	case Uint64:
		Elements[uint64](r)[off] = s.Uint64()
	case Int32:
		Elements[int32](r)[off] = int32(s.Int64())
	default:
		Storer(r)(off, s.Complex128())
	}
}

// toInt converts v to int64 truncating toward zero; NaN maps to 0.
func toInt(v float64) int64 {
	if math.IsNaN(v) {
		return 0
	}
	return int64(v)
}

// Values returns the elements of r in logical row-major order, promoted to complex128.
func Values(r *RawTensor) []complex128 {
	load := Loader(r)
	out := make([]complex128, 0, r.NumElements())
	r.ForEachOffset(func(off int) {
		out = append(out, load(off))
	})
	return out
}

// RealValues returns the real parts of the elements of r in logical row-major order.
func RealValues(r *RawTensor) []float64 {
	vals := Values(r)
	out := make([]float64, len(vals))
	for i, v := range vals {
		out[i] = real(v)
	}
	return out
}
