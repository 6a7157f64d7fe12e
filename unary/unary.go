// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package unary provides the elementwise unary ops.
//
// Every op comes in three forms sharing one kernel:
//
//	y, err := ops.Exp.Apply(x)        // functional: allocates the result
//	x, err = ops.Exp.InPlace(x)       // overwrites x
//	r, err = ops.Exp.Out(r, x)        // writes into r, resizing it when needed
//
// Ops taking parameters are methods returning the bound op:
//
//	lo := tensor.ScalarFloat(0)
//	y, err := ops.Clamp(&lo, nil).Apply(x)
//	g, err := ops.Polygamma(2).Apply(x)
//
// Kernels are looked up by (op, device) in a Registry that device backends fill.
package unary

import (
	"github.com/born-ml/elementwise/backend/cpu"
	"github.com/born-ml/elementwise/internal/dispatch"
	"github.com/born-ml/elementwise/internal/unary"
)

// Ops is the facade over every op.
type Ops = unary.Ops

// Op is one op bound to its parameters.
type Op = unary.Op

// Config controls the validation done by the ops.
type Config = unary.Config

// Registry is the kernel table shared by the ops and the device backends.
type Registry = dispatch.Registry

// OpID names an op in the Registry.
type OpID = dispatch.OpID

// NewRegistry creates an empty kernel table.
func NewRegistry() *Registry {
	return dispatch.NewRegistry()
}

// DefaultConfig returns the configuration with every check enabled.
func DefaultConfig() Config {
	return unary.DefaultConfig()
}

// New creates the facade over the kernels in reg.
func New(reg *Registry, cfg Config) *Ops {
	return unary.New(reg, cfg)
}

// NewCPU creates the facade over a fresh registry holding the CPU kernels.
func NewCPU() *Ops {
	reg := NewRegistry()
	cpu.New().Register(reg)
	return New(reg, DefaultConfig())
}
