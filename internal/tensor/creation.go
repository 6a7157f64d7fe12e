package tensor

import (
	"math"

	"github.com/pkg/errors"
)

// FromSlice creates a tensor from a Go slice.
// The slice is copied into the tensor's memory.
//
// Example:
//
//	t, err := tensor.FromSlice([]float32{1, 2, 3, 4}, Shape{2, 2}, tensor.CPU)
func FromSlice[T DType](data []T, shape Shape, device Device) (*RawTensor, error) {
	if shape.NumElements() != len(data) {
		return nil, errors.Wrapf(ErrInvalidArgument, "shape %v requires %d elements, but got %d",
			shape, shape.NumElements(), len(data))
	}

	var dummy T
	raw, err := NewRaw(shape, inferDataType(dummy), device)
	if err != nil {
		return nil, err
	}
	copy(Elements[T](raw), data)
	return raw, nil
}

// FromFloat64s creates a tensor of any dtype from float64 values, casting each value
// the same way Storer does.
func FromFloat64s(values []float64, shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	if shape.NumElements() != len(values) {
		return nil, errors.Wrapf(ErrInvalidArgument, "shape %v requires %d elements, but got %d",
			shape, shape.NumElements(), len(values))
	}
	raw, err := NewRaw(shape, dtype, device)
	if err != nil {
		return nil, err
	}
	store := Storer(raw)
	for i, v := range values {
		store(i, complex(v, 0))
	}
	return raw, nil
}

// Full creates a tensor with every element set to value.
func Full(shape Shape, value Scalar, dtype DataType, device Device) (*RawTensor, error) {
	raw, err := NewRaw(shape, dtype, device)
	if err != nil {
		return nil, err
	}
	for i := 0; i < raw.NumElements(); i++ {
		StoreScalar(raw, i, value)
	}
	return raw, nil
}

// Arange creates a 1-D tensor with values start, start+step, ... strictly below end.
//
// Example:
//
//	t, _ := tensor.Arange(-1, 0.5, 0.5, tensor.Float64, tensor.CPU) // [-1, -0.5, 0]
func Arange(start, end, step float64, dtype DataType, device Device) (*RawTensor, error) {
	if step == 0 || math.IsNaN(step) {
		return nil, errors.Wrapf(ErrInvalidArgument, "arange: step must be non-zero, got %g", step)
	}
	n := int(math.Ceil((end - start) / step))
	if n < 0 {
		return nil, errors.Wrapf(ErrInvalidArgument, "arange: upper bound and step sign are inconsistent (start=%g, end=%g, step=%g)",
			start, end, step)
	}
	values := make([]float64, n)
	for i := range values {
		values[i] = start + float64(i)*step
	}
	return FromFloat64s(values, Shape{n}, dtype, device)
}
