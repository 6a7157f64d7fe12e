// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu

import (
	internalcpu "github.com/born-ml/elementwise/internal/backend/cpu"
	"github.com/born-ml/elementwise/internal/parallel"
)

// Backend represents the CPU backend implementation.
type Backend = internalcpu.CPUBackend

// ParallelConfig controls how kernels split work across goroutines.
type ParallelConfig = parallel.Config

// New creates a CPU backend using every core.
func New() *Backend {
	return internalcpu.New(parallel.DefaultConfig())
}

// NewWithConfig creates a CPU backend with an explicit worker configuration.
//
// Example:
//
//	backend := cpu.NewWithConfig(cpu.ParallelConfig{Enabled: true, NumWorkers: 4, MinChunkSize: 1024})
func NewWithConfig(cfg ParallelConfig) *Backend {
	return internalcpu.New(cfg)
}

// NewSequential creates a CPU backend that runs every kernel on the calling goroutine.
func NewSequential() *Backend {
	return internalcpu.New(parallel.Sequential())
}
