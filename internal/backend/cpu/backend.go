// Package cpu implements the CPU kernels of the elementwise ops.
//
// Kernels are plain loops over an iteration plan. The element range is split into
// contiguous chunks that run on the worker pool from internal/parallel.
package cpu

import (
	"math/cmplx"

	"github.com/born-ml/elementwise/internal/dispatch"
	"github.com/born-ml/elementwise/internal/parallel"
	"github.com/born-ml/elementwise/internal/tensor"
)

// CPUBackend owns the CPU kernels and the worker configuration they fan out with.
type CPUBackend struct {
	device tensor.Device
	par    parallel.Config
}

// New creates a new CPU backend.
func New(cfg parallel.Config) *CPUBackend {
	return &CPUBackend{
		device: tensor.CPU,
		par:    cfg,
	}
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Device returns the compute device.
func (cpu *CPUBackend) Device() tensor.Device {
	return cpu.device
}

// Register installs every CPU kernel into reg.
func (cpu *CPUBackend) Register(reg *dispatch.Registry) {
	for _, k := range cpu.unaryKernels() {
		reg.Register(k.op, cpu.device, cpu.unary(k.op, k.fns), k.dtypes...)
	}
	for _, k := range cpu.binaryKernels() {
		reg.Register(k.op, cpu.device, cpu.binary(k.op, k.fns), k.dtypes...)
	}

	reg.Register(dispatch.OpCopy, cpu.device, cpu.copyKernel, tensor.AllDataTypes...)
	reg.Register(dispatch.OpLogicalNot, cpu.device, cpu.logicalNotKernel, tensor.AllDataTypes...)

	reg.RegisterComplexToReal(dispatch.OpAbs, cpu.device, cpu.complexToReal(dispatch.OpAbs, cmplx.Abs))
	reg.RegisterComplexToReal(dispatch.OpAngle, cpu.device, cpu.complexToReal(dispatch.OpAngle, cmplx.Phase))
}

// Dtype groups used when registering kernels.
var (
	floatTypes   = []tensor.DataType{tensor.Float16, tensor.Float32, tensor.Float64}
	complexTypes = []tensor.DataType{tensor.Complex64, tensor.Complex128}
	intTypes     = []tensor.DataType{
		tensor.Int8, tensor.Int16, tensor.Int32, tensor.Int64,
		tensor.Uint8, tensor.Uint16, tensor.Uint32, tensor.Uint64,
	}
)

// dtypes concatenates dtype groups.
func dtypes(groups ...[]tensor.DataType) []tensor.DataType {
	var out []tensor.DataType
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}
