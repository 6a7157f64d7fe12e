package unary

import (
	"sync"
	"testing"

	"github.com/janpfeifer/must"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/elementwise/internal/backend/cpu"
	"github.com/born-ml/elementwise/internal/dispatch"
	"github.com/born-ml/elementwise/internal/iter"
	"github.com/born-ml/elementwise/internal/parallel"
	"github.com/born-ml/elementwise/internal/tensor"
)

func TestAdapterFunctional(t *testing.T) {
	o := newTestOps(DefaultConfig())
	a := o.Adapter()
	x := sampleInput(tensor.Float64)

	var placeholder *tensor.RawTensor
	got, err := a.Functional(x, func(result, self *tensor.RawTensor) (*tensor.RawTensor, error) {
		placeholder = result
		assert.Equal(t, tensor.Shape{0}, result.Shape())
		assert.Equal(t, self.DType(), result.DType())
		assert.Equal(t, self.Device(), result.Device())
		return o.Exp.Out(result, self)
	})
	require.NoError(t, err)
	assert.Same(t, placeholder, got)
	assert.Equal(t, tensor.Shape{2, 3}, got.Shape())

	_, err = a.Functional(x, func(_, _ *tensor.RawTensor) (*tensor.RawTensor, error) {
		return nil, tensor.ErrInvalidArgument
	})
	require.ErrorIs(t, err, tensor.ErrInvalidArgument)
}

func TestAdapterInPlace(t *testing.T) {
	o := newTestOps(DefaultConfig())
	x := sampleInput(tensor.Float32)
	storage := x.Storage()

	got, err := o.Adapter().InPlace(x, o.Neg.Out)
	require.NoError(t, err)
	assert.Same(t, x, got)
	assert.Equal(t, tensor.Shape{2, 3}, x.Shape())
	assert.Same(t, &storage[0], &x.Storage()[0], "in-place must not reallocate")
	assert.Equal(t, []float32{-0.25, 0.5, -0.75, -1.5, -2.25, -3}, x.AsFloat32())
}

// TestComplexToFloatOutScratch covers the path taken when no complex-to-real kernel is
// registered: the op runs complex to complex and the result is cast.
func TestComplexToFloatOutScratch(t *testing.T) {
	full := dispatch.NewRegistry()
	cpu.New(parallel.Sequential()).Register(full)
	reg := dispatch.NewRegistry()
	reg.Register(dispatch.OpAbs, tensor.CPU, must.M1(full.Lookup(dispatch.OpAbs, tensor.CPU, tensor.Complex128)),
		tensor.Complex128)
	reg.Register(dispatch.OpCopy, tensor.CPU, must.M1(full.Lookup(dispatch.OpCopy, tensor.CPU, tensor.Complex128)),
		tensor.AllDataTypes...)
	a := NewAdapter(reg, iter.DefaultConfig())

	x := must.M1(tensor.FromSlice([]complex128{3 + 4i, -6 - 8i, 0}, tensor.Shape{3}, tensor.CPU))
	result := must.M1(tensor.NewRaw(tensor.Shape{1}, tensor.Float64, tensor.CPU))
	got, err := a.ComplexToFloatOut(result, x, dispatch.OpAbs)
	require.NoError(t, err)
	assert.Same(t, result, got)
	assert.Equal(t, tensor.Shape{3}, result.Shape())
	assert.Equal(t, []float64{5, 10, 0}, result.AsFloat64())

	got, err = a.ComplexToFloat(x, func(result, self *tensor.RawTensor) (*tensor.RawTensor, error) {
		return a.ComplexToFloatOut(result, self, dispatch.OpAbs)
	})
	require.NoError(t, err)
	assert.Equal(t, tensor.Float64, got.DType())
	assert.Equal(t, []float64{5, 10, 0}, got.AsFloat64())

	_, err = a.ComplexToFloatOut(tensor.Empty(tensor.Bool, tensor.CPU), x, dispatch.OpAbs)
	require.ErrorIs(t, err, tensor.ErrTypeMismatch)
}

func TestAdapterCheckOrder(t *testing.T) {
	o := newTestOps(DefaultConfig())
	a := o.Adapter()
	x := sampleInput(tensor.Float32)

	// Lookup failures come before any side effect on result.
	result := must.M1(tensor.NewRaw(tensor.Shape{7}, tensor.Float32, tensor.CPU))
	_, err := a.Out(result, x, dispatch.OpID("no_such_op"))
	require.ErrorIs(t, err, tensor.ErrNotImplemented)
	assert.Equal(t, tensor.Shape{7}, result.Shape())

	_, err = a.Out(tensor.Empty(tensor.Float32, tensor.CPU), sampleInput(tensor.Int16), dispatch.OpSin)
	require.ErrorIs(t, err, tensor.ErrUnsupportedDtype)
}

func TestConcurrentCalls(t *testing.T) {
	o := newTestOps(DefaultConfig())

	var wg sync.WaitGroup
	results := make([]*tensor.RawTensor, 8)
	errs := make([]error, len(results))
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = o.Sigmoid.Apply(sampleInput(tensor.Float64))
		}()
	}
	wg.Wait()

	want := must.M1(o.Sigmoid.Apply(sampleInput(tensor.Float64)))
	for i := range results {
		require.NoError(t, errs[i])
		requireSameValues(t, want, results[i])
	}
}
