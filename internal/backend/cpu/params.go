package cpu

import (
	"math"
	"math/cmplx"

	"github.com/born-ml/elementwise/internal/tensor"
)

// clampFuncs limits elements to [params[0], params[1]]. When the bounds cross, every
// element becomes the upper bound. NaN elements stay NaN.
func clampFuncs(params []tensor.Scalar) elementFuncs {
	lo, hi := params[0], params[1]
	ilo, ihi := lo.Int64(), hi.Int64()
	ulo, uhi := lo.Uint64(), hi.Uint64()
	flo, fhi := lo.Float64(), hi.Float64()
	return elementFuncs{
		i: func(v int64) int64 { return min(max(v, ilo), ihi) },
		u: func(v uint64) uint64 { return min(max(v, ulo), uhi) },
		f: func(v float64) float64 {
			if math.IsNaN(v) {
				return v
			}
			return math.Min(math.Max(v, flo), fhi)
		},
	}
}

// clampMinFuncs raises elements below params[0] to it.
func clampMinFuncs(params []tensor.Scalar) elementFuncs {
	lo := params[0]
	ilo, ulo, flo := lo.Int64(), lo.Uint64(), lo.Float64()
	return elementFuncs{
		i: func(v int64) int64 { return max(v, ilo) },
		u: func(v uint64) uint64 { return max(v, ulo) },
		f: func(v float64) float64 {
			if math.IsNaN(v) {
				return v
			}
			return math.Max(v, flo)
		},
	}
}

// clampMaxFuncs lowers elements above params[0] to it.
func clampMaxFuncs(params []tensor.Scalar) elementFuncs {
	hi := params[0]
	ihi, uhi, fhi := hi.Int64(), hi.Uint64(), hi.Float64()
	return elementFuncs{
		i: func(v int64) int64 { return min(v, ihi) },
		u: func(v uint64) uint64 { return min(v, uhi) },
		f: func(v float64) float64 {
			if math.IsNaN(v) {
				return v
			}
			return math.Min(v, fhi)
		},
	}
}

// powFuncs raises elements to the scalar exponent params[0].
// Integer elements use exact repeated squaring; a negative exponent truncates toward zero.
func powFuncs(params []tensor.Scalar) elementFuncs {
	e := params[0]
	n := e.Int64()
	fe, ce := e.Float64(), e.Complex128()
	return elementFuncs{
		i: func(v int64) int64 { return intPow(v, n) },
		u: func(v uint64) uint64 {
			if n < 0 {
				if v == 1 {
					return 1
				}
				return 0
			}
			return uintPow(v, uint64(n))
		},
		f: func(v float64) float64 { return math.Pow(v, fe) },
		c: func(v complex128) complex128 {
			if ce == 2 {
				return v * v
			}
			return cmplx.Pow(v, ce)
		},
	}
}

func intPow(base, exp int64) int64 {
	if exp < 0 {
		switch base {
		case 1:
			return 1
		case -1:
			if exp%2 == 0 {
				return 1
			}
			return -1
		}
		return 0
	}
	result := int64(1)
	for exp > 0 {
		if exp&1 == 1 {
			result *= base
		}
		base *= base
		exp >>= 1
	}
	return result
}

func uintPow(base, exp uint64) uint64 {
	result := uint64(1)
	for exp > 0 {
		if exp&1 == 1 {
			result *= base
		}
		base *= base
		exp >>= 1
	}
	return result
}

// polygammaFuncs computes the polygamma function of order params[0].
func polygammaFuncs(params []tensor.Scalar) elementFuncs {
	n := params[0].Int64()
	return elementFuncs{f: func(v float64) float64 { return polygamma(n, v) }}
}
