package unary

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/janpfeifer/must"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/elementwise/internal/backend/cpu"
	"github.com/born-ml/elementwise/internal/dispatch"
	"github.com/born-ml/elementwise/internal/parallel"
	"github.com/born-ml/elementwise/internal/tensor"
)

// newTestOps returns ops over a sequential CPU backend.
func newTestOps(cfg Config) *Ops {
	reg := dispatch.NewRegistry()
	cpu.New(parallel.Sequential()).Register(reg)
	return New(reg, cfg)
}

// sampleInput returns a [2,3] tensor of dtype with values inside the domain of most ops.
func sampleInput(dtype tensor.DataType) *tensor.RawTensor {
	shape := tensor.Shape{2, 3}
	switch {
	case dtype == tensor.Bool:
		return must.M1(tensor.FromSlice([]bool{true, false, true, true, false, false}, shape, tensor.CPU))
	case dtype.IsComplex():
		values := []complex128{0.5 + 0.25i, -0.3 + 0.1i, 0.2 - 0.7i, 0.9, -0.6i, 0.1 + 0.1i}
		x := must.M1(tensor.NewRaw(shape, dtype, tensor.CPU))
		store := tensor.Storer(x)
		for i, v := range values {
			store(i, v)
		}
		return x
	case dtype.IsUnsigned():
		return must.M1(tensor.FromFloat64s([]float64{1, 2, 3, 4, 5, 6}, shape, dtype, tensor.CPU))
	case dtype.IsInt():
		return must.M1(tensor.FromFloat64s([]float64{-3, -1, 0, 1, 2, 5}, shape, dtype, tensor.CPU))
	}
	return must.M1(tensor.FromFloat64s([]float64{0.25, -0.5, 0.75, 1.5, 2.25, 3}, shape, dtype, tensor.CPU))
}

// requireSameValues checks shape, dtype and elements, treating NaNs as equal.
func requireSameValues(t *testing.T, want, got *tensor.RawTensor) {
	t.Helper()
	require.Equal(t, want.Shape(), got.Shape())
	require.Equal(t, want.DType(), got.DType())
	w, g := tensor.Values(want), tensor.Values(got)
	for i := range w {
		if cmplx.IsNaN(w[i]) && cmplx.IsNaN(g[i]) {
			continue
		}
		require.Equal(t, w[i], g[i], "element %d", i)
	}
}

// requireValuesNear checks elements against want within tol.
func requireValuesNear(t *testing.T, want []float64, got *tensor.RawTensor, tol float64) {
	t.Helper()
	values := tensor.RealValues(got)
	require.Len(t, values, len(want))
	for i := range want {
		if math.IsNaN(want[i]) {
			require.True(t, math.IsNaN(values[i]), "element %d: want NaN, got %g", i, values[i])
			continue
		}
		require.InDelta(t, want[i], values[i], tol, "element %d", i)
	}
}
