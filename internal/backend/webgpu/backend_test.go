package webgpu

import (
	"math"
	"strings"
	"testing"

	"github.com/janpfeifer/must"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/elementwise/internal/dispatch"
	"github.com/born-ml/elementwise/internal/iter"
	"github.com/born-ml/elementwise/internal/tensor"
)

func TestShaders(t *testing.T) {
	ops := SupportedOps()
	require.Len(t, ops, 10)
	for _, op := range ops {
		code, found := unaryShader(op)
		require.True(t, found, op)
		assert.Contains(t, code, "result[idx] = "+expressions[op]+";")
		assert.Contains(t, code, "@workgroup_size(256)")
		assert.Contains(t, code, "groups.x * 256u")
		assert.False(t, strings.Contains(code, "%!"), "bad format verb in %s shader", op)
	}
	_, found := unaryShader(dispatch.OpLgamma)
	assert.False(t, found)
}

// newBackend returns a device backend or skips the test when no device is present.
func newBackend(t *testing.T) *Backend {
	t.Helper()
	b, err := New()
	if err != nil {
		require.True(t, errors.Is(err, ErrUnavailable), "unexpected error: %v", err)
		t.Skipf("WebGPU not available: %v", err)
	}
	t.Cleanup(b.Release)
	return b
}

func TestNew(t *testing.T) {
	b := newBackend(t)
	assert.Equal(t, "WebGPU", b.Name())
	assert.Equal(t, tensor.WebGPU, b.Device())
}

func TestKernels(t *testing.T) {
	b := newBackend(t)
	reg := dispatch.NewRegistry()
	b.Register(reg)

	values := []float32{0.25, 0.5, 1, 2, 4, 9}
	want := map[dispatch.OpID]func(float64) float64{
		dispatch.OpAbs:     math.Abs,
		dispatch.OpCos:     math.Cos,
		dispatch.OpExp:     math.Exp,
		dispatch.OpLog:     math.Log,
		dispatch.OpNeg:     func(x float64) float64 { return -x },
		dispatch.OpRsqrt:   func(x float64) float64 { return 1 / math.Sqrt(x) },
		dispatch.OpSigmoid: func(x float64) float64 { return 1 / (1 + math.Exp(-x)) },
		dispatch.OpSin:     math.Sin,
		dispatch.OpSqrt:    math.Sqrt,
		dispatch.OpTanh:    math.Tanh,
	}

	for _, op := range SupportedOps() {
		t.Run(string(op), func(t *testing.T) {
			fn, err := reg.Lookup(op, tensor.WebGPU, tensor.Float32)
			require.NoError(t, err)

			in := must.M1(tensor.FromSlice(values, tensor.Shape{2, 3}, tensor.WebGPU))
			out := must.M1(tensor.NewRaw(tensor.Shape{2, 3}, tensor.Float32, tensor.WebGPU))
			plan := must.M1(iter.Unary(iter.DefaultConfig(), out, in))
			fn(plan)

			for i, v := range out.AsFloat32() {
				assert.InDelta(t, want[op](float64(values[i])), float64(v), 1e-4, "element %d", i)
			}
		})
	}

	hits, misses, _ := b.PoolStats()
	assert.Equal(t, uint64(len(SupportedOps())), hits+misses)
}

func TestWorkgroupCount(t *testing.T) {
	tests := []struct {
		n    int
		x, y uint32
	}{
		{1, 1, 1},
		{256, 1, 1},
		{257, 2, 1},
		{256 * maxWorkgroups, maxWorkgroups, 1},
		{256*maxWorkgroups + 1, maxWorkgroups, 2},
	}
	for _, tt := range tests {
		x, y := workgroups(tt.n)
		assert.Equal(t, tt.x, x, "n=%d", tt.n)
		assert.Equal(t, tt.y, y, "n=%d", tt.n)
	}
}
