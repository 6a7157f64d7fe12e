// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides the pure Go CPU backend of the elementwise ops.
//
// # Overview
//
// This package implements a CPU backend with:
//   - Pure Go implementation (no CGO)
//   - Kernels for every supported dtype, including float16 and complex
//   - Strided and broadcast operands without intermediate copies
//   - Chunked fan-out of large tensors over a worker pool
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/elementwise/backend/cpu"
//	    "github.com/born-ml/elementwise/unary"
//	)
//
//	func main() {
//	    reg := unary.NewRegistry()
//	    cpu.New().Register(reg)
//	    ops := unary.New(reg, unary.DefaultConfig())
//	}
//
// # Thread Safety
//
// Kernels keep no state, so one backend may serve concurrent calls on distinct tensors.
package cpu
