package cpu

import (
	"math"
	"math/cmplx"

	"github.com/born-ml/elementwise/internal/dispatch"
	"github.com/born-ml/elementwise/internal/tensor"
)

// fixed wraps parameterless element functions.
func fixed(fns elementFuncs) func([]tensor.Scalar) elementFuncs {
	return func([]tensor.Scalar) elementFuncs { return fns }
}

// floating builds a kernel over floating and complex dtypes.
func floating(op dispatch.OpID, f func(float64) float64, c func(complex128) complex128) unaryKernel {
	return unaryKernel{op: op, fns: fixed(elementFuncs{f: f, c: c}), dtypes: dtypes(floatTypes, complexTypes)}
}

// realOnly builds a kernel over floating dtypes only.
func realOnly(op dispatch.OpID, f func(float64) float64) unaryKernel {
	return unaryKernel{op: op, fns: fixed(elementFuncs{f: f}), dtypes: floatTypes}
}

// rounding builds a kernel over floating dtypes that leaves integers unchanged.
func rounding(op dispatch.OpID, f func(float64) float64) unaryKernel {
	return unaryKernel{
		op:     op,
		fns:    fixed(elementFuncs{i: identity[int64], u: identity[uint64], f: f}),
		dtypes: dtypes(intTypes, floatTypes),
	}
}

func identity[T any](v T) T { return v }

func (cpu *CPUBackend) unaryKernels() []unaryKernel {
	return []unaryKernel{
		// Trigonometric and hyperbolic.
		floating(dispatch.OpSin, math.Sin, cmplx.Sin),
		floating(dispatch.OpCos, math.Cos, cmplx.Cos),
		floating(dispatch.OpTan, math.Tan, cmplx.Tan),
		floating(dispatch.OpAsin, math.Asin, cmplx.Asin),
		floating(dispatch.OpAcos, math.Acos, cmplx.Acos),
		floating(dispatch.OpAtan, math.Atan, cmplx.Atan),
		floating(dispatch.OpSinh, math.Sinh, cmplx.Sinh),
		floating(dispatch.OpCosh, math.Cosh, cmplx.Cosh),
		floating(dispatch.OpTanh, math.Tanh, cmplx.Tanh),
		floating(dispatch.OpAsinh, math.Asinh, cmplx.Asinh),
		floating(dispatch.OpAcosh, math.Acosh, cmplx.Acosh),
		floating(dispatch.OpAtanh, math.Atanh, cmplx.Atanh),

		// Exponential and logarithmic.
		floating(dispatch.OpExp, math.Exp, cmplx.Exp),
		floating(dispatch.OpExpm1, math.Expm1, func(v complex128) complex128 { return cmplx.Exp(v) - 1 }),
		floating(dispatch.OpLog, math.Log, cmplx.Log),
		floating(dispatch.OpLog2, math.Log2, func(v complex128) complex128 { return cmplx.Log(v) / math.Ln2 }),
		floating(dispatch.OpLog10, math.Log10, cmplx.Log10),
		floating(dispatch.OpLog1p, math.Log1p, func(v complex128) complex128 { return cmplx.Log(1 + v) }),
		floating(dispatch.OpSqrt, math.Sqrt, cmplx.Sqrt),
		floating(dispatch.OpRsqrt,
			func(v float64) float64 { return 1 / math.Sqrt(v) },
			func(v complex128) complex128 { return 1 / cmplx.Sqrt(v) }),
		floating(dispatch.OpReciprocal,
			func(v float64) float64 { return 1 / v },
			func(v complex128) complex128 { return 1 / v }),
		floating(dispatch.OpSigmoid,
			func(v float64) float64 { return 1 / (1 + math.Exp(-v)) },
			func(v complex128) complex128 { return 1 / (1 + cmplx.Exp(-v)) }),

		// Error functions.
		realOnly(dispatch.OpErf, math.Erf),
		realOnly(dispatch.OpErfc, math.Erfc),
		realOnly(dispatch.OpErfinv, math.Erfinv),

		// Rounding.
		rounding(dispatch.OpCeil, math.Ceil),
		rounding(dispatch.OpFloor, math.Floor),
		rounding(dispatch.OpTrunc, math.Trunc),
		rounding(dispatch.OpRound, math.RoundToEven),
		realOnly(dispatch.OpFrac, func(v float64) float64 { return v - math.Trunc(v) }),

		// Sign family.
		{
			op: dispatch.OpAbs,
			fns: fixed(elementFuncs{
				i: func(v int64) int64 {
					if v < 0 {
						return -v
					}
					return v
				},
				u: identity[uint64],
				f: math.Abs,
				c: func(v complex128) complex128 { return complex(cmplx.Abs(v), 0) },
			}),
			dtypes: dtypes(intTypes, floatTypes, complexTypes),
		},
		{
			op: dispatch.OpNeg,
			fns: fixed(elementFuncs{
				i: func(v int64) int64 { return -v },
				u: func(v uint64) uint64 { return -v },
				f: func(v float64) float64 { return -v },
				c: func(v complex128) complex128 { return -v },
			}),
			dtypes: dtypes(intTypes, floatTypes, complexTypes),
		},
		{
			op: dispatch.OpSign,
			fns: fixed(elementFuncs{
				b: identity[bool],
				i: func(v int64) int64 {
					switch {
					case v > 0:
						return 1
					case v < 0:
						return -1
					}
					return 0
				},
				u: func(v uint64) uint64 {
					if v > 0 {
						return 1
					}
					return 0
				},
				f: func(v float64) float64 {
					switch {
					case v > 0:
						return 1
					case v < 0:
						return -1
					}
					return v // Keeps signed zero and NaN.
				},
			}),
			dtypes: dtypes([]tensor.DataType{tensor.Bool}, intTypes, floatTypes),
		},
		{
			op: dispatch.OpAngle,
			fns: fixed(elementFuncs{
				f: func(v float64) float64 {
					switch {
					case math.IsNaN(v):
						return v
					case v < 0:
						return math.Pi
					}
					return 0
				},
				c: func(v complex128) complex128 { return complex(cmplx.Phase(v), 0) },
			}),
			dtypes: dtypes(floatTypes, complexTypes),
		},
		{
			op: dispatch.OpConj,
			fns: fixed(elementFuncs{
				b: identity[bool],
				i: identity[int64],
				u: identity[uint64],
				f: identity[float64],
				c: cmplx.Conj,
			}),
			dtypes: tensor.AllDataTypes,
		},
		{
			op: dispatch.OpBitwiseNot,
			fns: fixed(elementFuncs{
				b: func(v bool) bool { return !v },
				i: func(v int64) int64 { return ^v },
				u: func(v uint64) uint64 { return ^v },
			}),
			dtypes: dtypes([]tensor.DataType{tensor.Bool}, intTypes),
		},

		// Gamma family.
		realOnly(dispatch.OpLgamma, func(v float64) float64 {
			lg, _ := math.Lgamma(v)
			return lg
		}),
		realOnly(dispatch.OpDigamma, digamma),
		{op: dispatch.OpPolygamma, fns: polygammaFuncs, dtypes: floatTypes},

		// Clamping and powers take their bounds and exponent as parameters.
		{op: dispatch.OpClamp, fns: clampFuncs, dtypes: dtypes(intTypes, floatTypes)},
		{op: dispatch.OpClampMin, fns: clampMinFuncs, dtypes: dtypes(intTypes, floatTypes)},
		{op: dispatch.OpClampMax, fns: clampMaxFuncs, dtypes: dtypes(intTypes, floatTypes)},
		{op: dispatch.OpPow, fns: powFuncs, dtypes: dtypes(intTypes, floatTypes, complexTypes)},
	}
}

func (cpu *CPUBackend) binaryKernels() []binaryKernel {
	return []binaryKernel{
		{
			op: dispatch.OpAdd,
			fns: func([]tensor.Scalar) binaryFuncs {
				return binaryFuncs{
					b: func(x, y bool) bool { return x || y },
					i: func(x, y int64) int64 { return x + y },
					u: func(x, y uint64) uint64 { return x + y },
					f: func(x, y float64) float64 { return x + y },
					c: func(x, y complex128) complex128 { return x + y },
				}
			},
			dtypes: tensor.AllDataTypes,
		},
		{
			op: dispatch.OpMul,
			fns: func([]tensor.Scalar) binaryFuncs {
				return binaryFuncs{
					b: func(x, y bool) bool { return x && y },
					i: func(x, y int64) int64 { return x * y },
					u: func(x, y uint64) uint64 { return x * y },
					f: func(x, y float64) float64 { return x * y },
					c: func(x, y complex128) complex128 { return x * y },
				}
			},
			dtypes: tensor.AllDataTypes,
		},
	}
}
