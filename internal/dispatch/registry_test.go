package dispatch

import (
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/elementwise/internal/iter"
	"github.com/born-ml/elementwise/internal/tensor"
)

func noop(*iter.Plan, ...tensor.Scalar) {}

func TestRegistryLookup(t *testing.T) {
	r := NewRegistry()
	r.Register(OpSin, tensor.CPU, noop, tensor.Float32, tensor.Float64)

	fn, err := r.Lookup(OpSin, tensor.CPU, tensor.Float64)
	require.NoError(t, err)
	assert.NotNil(t, fn)

	_, err = r.Lookup(OpSin, tensor.CPU, tensor.Int32)
	assert.True(t, errors.Is(err, tensor.ErrUnsupportedDtype))
	assert.Contains(t, err.Error(), "sin not implemented for 'int32'")

	_, err = r.Lookup(OpSin, tensor.WebGPU, tensor.Float32)
	assert.True(t, errors.Is(err, tensor.ErrNotImplemented))

	_, err = r.Lookup(OpCos, tensor.CPU, tensor.Float32)
	assert.True(t, errors.Is(err, tensor.ErrNotImplemented))
}

func TestRegistryReplace(t *testing.T) {
	r := NewRegistry()
	calls := 0
	r.Register(OpExp, tensor.CPU, noop, tensor.Float32)
	r.Register(OpExp, tensor.CPU, func(*iter.Plan, ...tensor.Scalar) { calls++ }, tensor.Float64)

	_, err := r.Lookup(OpExp, tensor.CPU, tensor.Float32)
	assert.True(t, errors.Is(err, tensor.ErrUnsupportedDtype), "replacement drops the old dtype set")

	fn, err := r.Lookup(OpExp, tensor.CPU, tensor.Float64)
	require.NoError(t, err)
	fn(nil)
	assert.Equal(t, 1, calls)
}

func TestRegistryComplexToReal(t *testing.T) {
	r := NewRegistry()
	_, found := r.LookupComplexToReal(OpAbs, tensor.CPU)
	assert.False(t, found)

	r.RegisterComplexToReal(OpAbs, tensor.CPU, noop)
	_, found = r.LookupComplexToReal(OpAbs, tensor.CPU)
	assert.True(t, found)
	_, found = r.LookupComplexToReal(OpAbs, tensor.WebGPU)
	assert.False(t, found)
}

func TestRegistryListing(t *testing.T) {
	r := NewRegistry()
	r.Register(OpTanh, tensor.WebGPU, noop, tensor.Float32)
	r.Register(OpTanh, tensor.CPU, noop, tensor.Float64, tensor.Float32, tensor.Complex64)
	r.Register(OpAbs, tensor.CPU, noop, tensor.Int8)

	assert.Equal(t, []OpID{OpAbs, OpTanh}, r.Ops())
	assert.Equal(t, []tensor.Device{tensor.CPU, tensor.WebGPU}, r.Devices(OpTanh))
	assert.Equal(t, []tensor.DataType{tensor.Float32, tensor.Float64, tensor.Complex64},
		r.DTypes(OpTanh, tensor.CPU))
	assert.Empty(t, r.DTypes(OpSin, tensor.CPU))
	assert.Empty(t, r.Devices(OpSin))
}

func TestRegistryConcurrentAccess(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			r.Register(OpNeg, tensor.CPU, noop, tensor.Float32)
		}()
		go func() {
			defer wg.Done()
			_, _ = r.Lookup(OpNeg, tensor.CPU, tensor.Float32)
			_ = r.Ops()
		}()
	}
	wg.Wait()

	_, err := r.Lookup(OpNeg, tensor.CPU, tensor.Float32)
	assert.NoError(t, err)
}
