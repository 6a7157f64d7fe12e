package cpu

import (
	"github.com/born-ml/elementwise/internal/iter"
	"github.com/born-ml/elementwise/internal/parallel"
	"github.com/born-ml/elementwise/internal/tensor"
)

// copyKernel writes the input into the output, casting when the dtypes differ.
// Casting keeps the real part of complex values and truncates floats into integers.
// Integer to integer casts keep every bit, wrapping like Go conversions.
func (cpu *CPUBackend) copyKernel(p *iter.Plan, _ ...tensor.Scalar) {
	src, dst := p.Input(0), p.Output()
	if src.DType() == dst.DType() {
		size := dst.DType().Size()
		from, to := src.Storage(), dst.Storage()
		parallel.ForChunks(p.NumElements(), func(start, end int) {
			p.ForRange(start, end, func(offs []int) {
				copy(to[offs[0]*size:(offs[0]+1)*size], from[offs[1]*size:(offs[1]+1)*size])
			})
		}, cpu.par)
		return
	}

	if src.DType().IsInt() && dst.DType().IsInt() {
		load, store := tensor.IntLoader(src), tensor.IntStorer(dst)
		parallel.ForChunks(p.NumElements(), func(start, end int) {
			p.ForRange(start, end, func(offs []int) {
				store(offs[0], load(offs[1]))
			})
		}, cpu.par)
		return
	}

	load, store := tensor.Loader(src), tensor.Storer(dst)
	parallel.ForChunks(p.NumElements(), func(start, end int) {
		p.ForRange(start, end, func(offs []int) {
			store(offs[0], load(offs[1]))
		})
	}, cpu.par)
}

// logicalNotKernel writes 1 where the input is zero and 0 elsewhere, in the output's dtype.
func (cpu *CPUBackend) logicalNotKernel(p *iter.Plan, _ ...tensor.Scalar) {
	load, store := tensor.Loader(p.Input(0)), tensor.Storer(p.Output())
	parallel.ForChunks(p.NumElements(), func(start, end int) {
		p.ForRange(start, end, func(offs []int) {
			if load(offs[1]) == 0 {
				store(offs[0], 1)
			} else {
				store(offs[0], 0)
			}
		})
	}, cpu.par)
}
