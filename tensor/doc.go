// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public tensor handle used by the elementwise ops.
//
// # Overview
//
// A RawTensor is a dtype-erased, strided view over reference-counted storage:
//   - Shape, element strides and a storage offset
//   - A runtime DataType (bool, signed and unsigned integers, float16/32/64, complex64/128)
//   - A Device tag selecting the kernels that run on it
//   - A Layout tag; the elementwise ops accept strided tensors
//
// Views (Select, Narrow, Expand, Unsqueeze, ViewAsReal) share storage with their base.
// An Empty tensor is a placeholder that ops resize to their result shape.
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/elementwise/tensor"
//	    "github.com/born-ml/elementwise/unary"
//	)
//
//	func main() {
//	    ops := unary.NewCPU()
//
//	    x, _ := tensor.FromSlice([]float32{0, 0.5, 1}, tensor.Shape{3}, tensor.CPU)
//	    y, _ := ops.Exp.Apply(x)                   // new tensor
//	    _, _ = ops.Sin.InPlace(x)                  // overwrites x
//	    _, _ = ops.Abs.Out(tensor.Empty(tensor.Float32, tensor.CPU), y)
//	}
//
// # Errors
//
// Every failure wraps one of the Err* sentinels; match them with errors.Is.
package tensor
