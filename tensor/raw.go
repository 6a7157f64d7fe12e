// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/elementwise/internal/tensor"
)

// RawTensor is the dtype-erased tensor handle.
//
// RawTensor provides:
//   - Shape and type information via Shape(), DType(), Device(), Layout()
//   - Strided views via Select(), Narrow(), Expand(), Unsqueeze(), ViewAsReal()
//   - Shared storage via Clone() and reference counting via Release()
//
// Example:
//
//	raw, _ := tensor.NewRaw(tensor.Shape{2, 3}, tensor.Float32, tensor.CPU)
//	data := raw.AsFloat32()  // Zero-copy access
//	row, _ := raw.Select(0, 1)
type RawTensor = tensor.RawTensor

// NewRaw creates a zero-filled contiguous tensor.
func NewRaw(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	return tensor.NewRaw(shape, dtype, device)
}

// Empty returns a placeholder tensor that ops resize to their result shape.
func Empty(dtype DataType, device Device) *RawTensor {
	return tensor.Empty(dtype, device)
}

// FromSlice creates a tensor holding a copy of data.
func FromSlice[T DType](data []T, shape Shape, device Device) (*RawTensor, error) {
	return tensor.FromSlice(data, shape, device)
}

// FromFloat64s creates a tensor of any dtype from float64 values.
func FromFloat64s(values []float64, shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	return tensor.FromFloat64s(values, shape, dtype, device)
}

// Full creates a tensor with every element set to value.
func Full(shape Shape, value Scalar, dtype DataType, device Device) (*RawTensor, error) {
	return tensor.Full(shape, value, dtype, device)
}

// Arange creates a 1-D tensor with values start, start+step, ... strictly below end.
func Arange(start, end, step float64, dtype DataType, device Device) (*RawTensor, error) {
	return tensor.Arange(start, end, step, dtype, device)
}

// ScalarTensor wraps s into a 0-dim tensor.
func ScalarTensor(s Scalar, dtype DataType, device Device) *RawTensor {
	return tensor.ScalarTensor(s, dtype, device)
}

// Elements returns the whole storage of r as []T, zero-copy.
func Elements[T DType](r *RawTensor) []T {
	return tensor.Elements[T](r)
}

// Values returns the elements of r in row-major order, promoted to complex128.
func Values(r *RawTensor) []complex128 {
	return tensor.Values(r)
}

// RealValues returns the real parts of the elements of r in row-major order.
func RealValues(r *RawTensor) []float64 {
	return tensor.RealValues(r)
}
