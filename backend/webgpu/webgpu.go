// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package webgpu provides the WebGPU backend for Float32 unary ops.
//
// The device path is built on windows; elsewhere New returns ErrUnavailable.
//
// Example:
//
//	gpu, err := webgpu.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer gpu.Release()
//
//	reg := unary.NewRegistry()
//	gpu.Register(reg)
package webgpu

import (
	internalwebgpu "github.com/born-ml/elementwise/internal/backend/webgpu"
	"github.com/born-ml/elementwise/unary"
)

// Backend represents the WebGPU backend implementation.
type Backend = internalwebgpu.Backend

// ErrUnavailable is returned by New when no WebGPU device can be acquired.
var ErrUnavailable = internalwebgpu.ErrUnavailable

// New creates a new WebGPU backend.
// Call Release() when done to free GPU resources.
func New() (*Backend, error) {
	return internalwebgpu.New()
}

// SupportedOps returns the ops the backend registers kernels for.
func SupportedOps() []unary.OpID {
	return internalwebgpu.SupportedOps()
}
