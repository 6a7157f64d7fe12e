package tensor

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/janpfeifer/must"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// geometry is the part of a view that tests compare.
type geometry struct {
	Shape   Shape
	Strides []int
	Offset  int
	Values  []float64
}

func geometryOf(r *RawTensor) geometry {
	return geometry{Shape: r.Shape(), Strides: r.Strides(), Offset: r.Offset(), Values: RealValues(r)}
}

func TestViews(t *testing.T) {
	x := iota64(Shape{2, 3})

	tests := []struct {
		name string
		view func() (*RawTensor, error)
		want geometry
	}{
		{
			name: "select row",
			view: func() (*RawTensor, error) { return x.Select(0, 1) },
			want: geometry{Shape{3}, []int{1}, 3, []float64{3, 4, 5}},
		},
		{
			name: "select last column",
			view: func() (*RawTensor, error) { return x.Select(-1, -1) },
			want: geometry{Shape{2}, []int{3}, 2, []float64{2, 5}},
		},
		{
			name: "narrow",
			view: func() (*RawTensor, error) { return x.Narrow(1, 1, 2) },
			want: geometry{Shape{2, 2}, []int{3, 1}, 1, []float64{1, 2, 4, 5}},
		},
		{
			name: "unsqueeze front",
			view: func() (*RawTensor, error) { return x.Unsqueeze(0) },
			want: geometry{Shape{1, 2, 3}, []int{6, 3, 1}, 0, []float64{0, 1, 2, 3, 4, 5}},
		},
		{
			name: "unsqueeze back",
			view: func() (*RawTensor, error) { return x.Unsqueeze(-1) },
			want: geometry{Shape{2, 3, 1}, []int{3, 1, 1}, 0, []float64{0, 1, 2, 3, 4, 5}},
		},
		{
			name: "expand",
			view: func() (*RawTensor, error) {
				row := must.M1(x.Select(0, 0))
				return row.Expand(Shape{2, 3})
			},
			want: geometry{Shape{2, 3}, []int{0, 1}, 0, []float64{0, 1, 2, 0, 1, 2}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := tt.view()
			require.NoError(t, err)
			assert.True(t, v.SameStorage(x))
			if diff := cmp.Diff(tt.want, geometryOf(v)); diff != "" {
				t.Errorf("view mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestViewErrors(t *testing.T) {
	x := iota64(Shape{2, 3})

	tests := []struct {
		name string
		view func() (*RawTensor, error)
		want error
	}{
		{"select dim", func() (*RawTensor, error) { return x.Select(2, 0) }, ErrInvalidArgument},
		{"select index", func() (*RawTensor, error) { return x.Select(1, 3) }, ErrInvalidArgument},
		{"narrow range", func() (*RawTensor, error) { return x.Narrow(1, 2, 2) }, ErrInvalidArgument},
		{"unsqueeze dim", func() (*RawTensor, error) { return x.Unsqueeze(4) }, ErrInvalidArgument},
		{"expand", func() (*RawTensor, error) { return x.Expand(Shape{3, 3}) }, ErrInvalidArgument},
		{"expand shrinks rank", func() (*RawTensor, error) { return x.Expand(Shape{3}) }, ErrInvalidArgument},
		{"view as real", func() (*RawTensor, error) { return x.ViewAsReal() }, ErrUnsupportedOperation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.view()
			assert.Truef(t, errors.Is(err, tt.want), "got %v, want %v", err, tt.want)
		})
	}
}

func TestViewAsReal(t *testing.T) {
	c := must.M1(FromSlice([]complex64{1 + 2i, 3 + 4i, 5 + 6i}, Shape{3}, CPU))
	r := must.M1(c.ViewAsReal())

	assert.Equal(t, Float32, r.DType())
	if diff := cmp.Diff(geometry{Shape{3, 2}, []int{2, 1}, 0, []float64{1, 2, 3, 4, 5, 6}}, geometryOf(r)); diff != "" {
		t.Errorf("view mismatch (-want +got):\n%s", diff)
	}

	// Writes through the real view land in the complex buffer.
	im := must.M1(r.Select(-1, 1))
	Storer(im)(5, -1) // storage offset of the last imaginary part
	assert.Equal(t, []complex128{1 + 2i, 3 + 4i, 5 - 1i}, Values(c))

	tail := must.M1(must.M1(c.Narrow(0, 1, 2)).ViewAsReal())
	assert.Equal(t, 2, tail.Offset())
	assert.Equal(t, []float64{3, 4, 5, -1}, RealValues(tail))
}

func TestCopyAndContiguous(t *testing.T) {
	x := iota64(Shape{2, 3})
	assert.Same(t, x, x.Contiguous())

	col := must.M1(x.Select(1, 1))
	dense := col.Contiguous()
	assert.NotSame(t, col, dense)
	assert.False(t, dense.SameStorage(x))
	assert.True(t, dense.IsContiguous())
	assert.Equal(t, []float64{1, 4}, dense.AsFloat64())
}

func TestForEachOffset(t *testing.T) {
	x := iota64(Shape{3, 4})
	v := must.M1(must.M1(x.Narrow(0, 1, 2)).Narrow(1, 1, 2))

	var offsets []int
	v.ForEachOffset(func(off int) { offsets = append(offsets, off) })
	assert.Equal(t, []int{5, 6, 9, 10}, offsets)

	var scalar []int
	ScalarTensor(ScalarFloat(1), Float64, CPU).ForEachOffset(func(off int) { scalar = append(scalar, off) })
	assert.Equal(t, []int{0}, scalar)
}
