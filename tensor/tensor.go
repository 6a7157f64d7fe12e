// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/elementwise/internal/tensor"
)

// Type aliases for public API

// DType is a constraint for Go element types that map to a DataType.
type DType = tensor.DType

// DataType represents the runtime element type of a tensor.
type DataType = tensor.DataType

// Data type constants.
const (
	Bool       DataType = tensor.Bool
	Int8       DataType = tensor.Int8
	Int16      DataType = tensor.Int16
	Int32      DataType = tensor.Int32
	Int64      DataType = tensor.Int64
	Uint8      DataType = tensor.Uint8
	Uint16     DataType = tensor.Uint16
	Uint32     DataType = tensor.Uint32
	Uint64     DataType = tensor.Uint64
	Float16    DataType = tensor.Float16
	Float32    DataType = tensor.Float32
	Float64    DataType = tensor.Float64
	Complex64  DataType = tensor.Complex64
	Complex128 DataType = tensor.Complex128
)

// ParseDataType returns the DataType named s ("float32", "complex64", ...).
func ParseDataType(s string) (DataType, bool) {
	return tensor.ParseDataType(s)
}

// AllDataTypes lists every supported dtype.
func AllDataTypes() []DataType {
	return append([]DataType(nil), tensor.AllDataTypes...)
}

// Device represents the device where tensor data resides.
type Device = tensor.Device

// Device constants.
const (
	CPU    Device = tensor.CPU
	CUDA   Device = tensor.CUDA
	Vulkan Device = tensor.Vulkan
	Metal  Device = tensor.Metal
	WebGPU Device = tensor.WebGPU
)

// Layout tags how a tensor's elements are organized.
type Layout = tensor.Layout

// Layout constants.
const (
	Strided Layout = tensor.Strided
	Sparse  Layout = tensor.Sparse
)

// Shape represents the dimensions of a tensor.
// Example: Shape{2, 3, 4} represents a 3D tensor with dimensions 2×3×4.
type Shape = tensor.Shape

// Scalar holds one value of any supported dtype.
type Scalar = tensor.Scalar

// Scalar constructors.
var (
	ScalarBool    = tensor.ScalarBool
	ScalarInt     = tensor.ScalarInt
	ScalarUint    = tensor.ScalarUint
	ScalarFloat   = tensor.ScalarFloat
	ScalarComplex = tensor.ScalarComplex
)

// Error categories. Match them with errors.Is.
var (
	ErrUnsupportedDtype     = tensor.ErrUnsupportedDtype
	ErrUnsupportedOperation = tensor.ErrUnsupportedOperation
	ErrTypeMismatch         = tensor.ErrTypeMismatch
	ErrInvalidArgument      = tensor.ErrInvalidArgument
	ErrLayoutUnsupported    = tensor.ErrLayoutUnsupported
	ErrDeviceMismatch       = tensor.ErrDeviceMismatch
	ErrMemoryOverlap        = tensor.ErrMemoryOverlap
	ErrNotImplemented       = tensor.ErrNotImplemented
)
