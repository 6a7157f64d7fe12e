package cpu

import (
	"github.com/gomlx/exceptions"
	"github.com/x448/float16"
	"golang.org/x/exp/constraints"

	"github.com/born-ml/elementwise/internal/dispatch"
	"github.com/born-ml/elementwise/internal/iter"
	"github.com/born-ml/elementwise/internal/parallel"
	"github.com/born-ml/elementwise/internal/tensor"
)

// Element type sets: the Go types behind each dtype category.
type (
	signed interface {
		constraints.Signed
		tensor.DType
	}
	unsigned interface {
		constraints.Unsigned
		tensor.DType
	}
	float interface {
		constraints.Float
		tensor.DType
	}
)

// elementFuncs holds one scalar function per dtype category. The loops convert
// elements to the widest type of their category, apply the function and convert back.
// A nil entry means the op has no kernel for that category.
type elementFuncs struct {
	b func(bool) bool
	i func(int64) int64
	u func(uint64) uint64
	f func(float64) float64
	c func(complex128) complex128
}

// binaryFuncs is the two-operand counterpart of elementFuncs.
type binaryFuncs struct {
	b func(x, y bool) bool
	i func(x, y int64) int64
	u func(x, y uint64) uint64
	f func(x, y float64) float64
	c func(x, y complex128) complex128
}

// unaryKernel binds an op to the per-category functions built from its parameters.
type unaryKernel struct {
	op     dispatch.OpID
	fns    func(params []tensor.Scalar) elementFuncs
	dtypes []tensor.DataType
}

type binaryKernel struct {
	op     dispatch.OpID
	fns    func(params []tensor.Scalar) binaryFuncs
	dtypes []tensor.DataType
}

// mapInto writes fn(input) into the output for every element of a unary plan.
func mapInto[In, Out tensor.DType](par parallel.Config, p *iter.Plan, fn func(In) Out) {
	out := tensor.Elements[Out](p.Output())
	in := tensor.Elements[In](p.Input(0))
	parallel.ForChunks(p.NumElements(), func(start, end int) {
		p.ForRange(start, end, func(offs []int) {
			out[offs[0]] = fn(in[offs[1]])
		})
	}, par)
}

// zipInto writes fn(a, b) into the output for every element of a binary plan.
func zipInto[T tensor.DType](par parallel.Config, p *iter.Plan, fn func(x, y T) T) {
	out := tensor.Elements[T](p.Output())
	a := tensor.Elements[T](p.Input(0))
	b := tensor.Elements[T](p.Input(1))
	parallel.ForChunks(p.NumElements(), func(start, end int) {
		p.ForRange(start, end, func(offs []int) {
			out[offs[0]] = fn(a[offs[1]], b[offs[2]])
		})
	}, par)
}

func mapSigned[T signed](par parallel.Config, p *iter.Plan, fn func(int64) int64) {
	mapInto(par, p, func(v T) T { return T(fn(int64(v))) })
}

func mapUnsigned[T unsigned](par parallel.Config, p *iter.Plan, fn func(uint64) uint64) {
	mapInto(par, p, func(v T) T { return T(fn(uint64(v))) })
}

func mapFloat[T float](par parallel.Config, p *iter.Plan, fn func(float64) float64) {
	mapInto(par, p, func(v T) T { return T(fn(float64(v))) })
}

func zipSigned[T signed](par parallel.Config, p *iter.Plan, fn func(x, y int64) int64) {
	zipInto(par, p, func(x, y T) T { return T(fn(int64(x), int64(y))) })
}

func zipUnsigned[T unsigned](par parallel.Config, p *iter.Plan, fn func(x, y uint64) uint64) {
	zipInto(par, p, func(x, y T) T { return T(fn(uint64(x), uint64(y))) })
}

func zipFloat[T float](par parallel.Config, p *iter.Plan, fn func(x, y float64) float64) {
	zipInto(par, p, func(x, y T) T { return T(fn(float64(x), float64(y))) })
}

// unary returns the kernel running op over a same-dtype unary plan.
func (cpu *CPUBackend) unary(op dispatch.OpID, build func(params []tensor.Scalar) elementFuncs) dispatch.KernelFunc {
	return func(p *iter.Plan, params ...tensor.Scalar) {
		fns := build(params)
		dt := p.DType()
		switch {
		case dt == tensor.Bool && fns.b != nil:
			mapInto(cpu.par, p, fns.b)
		case dt.IsInt() && !dt.IsUnsigned() && fns.i != nil:
			switch dt {
			case tensor.Int8:
				mapSigned[int8](cpu.par, p, fns.i)
			case tensor.Int16:
				mapSigned[int16](cpu.par, p, fns.i)
			case tensor.Int32:
				mapSigned[int32](cpu.par, p, fns.i)
			default:
				mapInto(cpu.par, p, fns.i)
			}
		case dt.IsUnsigned() && fns.u != nil:
			switch dt {
			case tensor.Uint8:
				mapUnsigned[uint8](cpu.par, p, fns.u)
			case tensor.Uint16:
				mapUnsigned[uint16](cpu.par, p, fns.u)
			case tensor.Uint32:
				mapUnsigned[uint32](cpu.par, p, fns.u)
			default:
				mapInto(cpu.par, p, fns.u)
			}
		case dt == tensor.Float16 && fns.f != nil:
			mapInto(cpu.par, p, func(v float16.Float16) float16.Float16 {
				return float16.Fromfloat32(float32(fns.f(float64(v.Float32()))))
			})
		case dt == tensor.Float32 && fns.f != nil:
			mapFloat[float32](cpu.par, p, fns.f)
		case dt == tensor.Float64 && fns.f != nil:
			mapInto(cpu.par, p, fns.f)
		case dt == tensor.Complex64 && fns.c != nil:
			mapInto(cpu.par, p, func(v complex64) complex64 { return complex64(fns.c(complex128(v))) })
		case dt == tensor.Complex128 && fns.c != nil:
			mapInto(cpu.par, p, fns.c)
		default:
			exceptions.Panicf("cpu: %s has no kernel for dtype %s", op, dt)
		}
	}
}

// binary returns the kernel running op over a same-dtype binary plan.
func (cpu *CPUBackend) binary(op dispatch.OpID, build func(params []tensor.Scalar) binaryFuncs) dispatch.KernelFunc {
	return func(p *iter.Plan, params ...tensor.Scalar) {
		fns := build(params)
		dt := p.DType()
		switch {
		case dt == tensor.Bool && fns.b != nil:
			zipInto(cpu.par, p, fns.b)
		case dt.IsInt() && !dt.IsUnsigned() && fns.i != nil:
			switch dt {
			case tensor.Int8:
				zipSigned[int8](cpu.par, p, fns.i)
			case tensor.Int16:
				zipSigned[int16](cpu.par, p, fns.i)
			case tensor.Int32:
				zipSigned[int32](cpu.par, p, fns.i)
			default:
				zipInto(cpu.par, p, fns.i)
			}
		case dt.IsUnsigned() && fns.u != nil:
			switch dt {
			case tensor.Uint8:
				zipUnsigned[uint8](cpu.par, p, fns.u)
			case tensor.Uint16:
				zipUnsigned[uint16](cpu.par, p, fns.u)
			case tensor.Uint32:
				zipUnsigned[uint32](cpu.par, p, fns.u)
			default:
				zipInto(cpu.par, p, fns.u)
			}
		case dt == tensor.Float16 && fns.f != nil:
			zipInto(cpu.par, p, func(x, y float16.Float16) float16.Float16 {
				return float16.Fromfloat32(float32(fns.f(float64(x.Float32()), float64(y.Float32()))))
			})
		case dt == tensor.Float32 && fns.f != nil:
			zipFloat[float32](cpu.par, p, fns.f)
		case dt == tensor.Float64 && fns.f != nil:
			zipInto(cpu.par, p, fns.f)
		case dt == tensor.Complex64 && fns.c != nil:
			zipInto(cpu.par, p, func(x, y complex64) complex64 {
				return complex64(fns.c(complex128(x), complex128(y)))
			})
		case dt == tensor.Complex128 && fns.c != nil:
			zipInto(cpu.par, p, fns.c)
		default:
			exceptions.Panicf("cpu: %s has no kernel for dtype %s", op, dt)
		}
	}
}

// complexToReal returns the kernel writing fn of a complex input into its real
// counterpart dtype.
func (cpu *CPUBackend) complexToReal(op dispatch.OpID, fn func(complex128) float64) dispatch.KernelFunc {
	return func(p *iter.Plan, _ ...tensor.Scalar) {
		in, out := p.Input(0).DType(), p.DType()
		switch {
		case in == tensor.Complex64 && out == tensor.Float32:
			mapInto(cpu.par, p, func(v complex64) float32 { return float32(fn(complex128(v))) })
		case in == tensor.Complex128 && out == tensor.Float64:
			mapInto(cpu.par, p, fn)
		default:
			exceptions.Panicf("cpu: complex-to-real %s has no kernel for %s -> %s", op, in, out)
		}
	}
}
