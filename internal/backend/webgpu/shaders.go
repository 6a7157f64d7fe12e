// Package webgpu implements Float32 unary kernels as WGSL compute shaders.
// Uses go-webgpu (github.com/go-webgpu/webgpu) for zero-CGO WebGPU bindings; the
// device path is only built on windows.
package webgpu

import (
	"fmt"
	"slices"

	"github.com/pkg/errors"

	"github.com/born-ml/elementwise/internal/dispatch"
)

// ErrUnavailable is returned by New when no WebGPU device can be acquired.
var ErrUnavailable = errors.New("webgpu: not available")

// workgroupSize is the number of threads per workgroup.
const workgroupSize = 256

// maxWorkgroups is the per-dimension dispatch limit guaranteed by WebGPU.
const maxWorkgroups = 65535

// unaryTemplate reads input[idx] into x and writes the op's expression of x.
// Dispatches wider than maxWorkgroups spill into the y dimension.
const unaryTemplate = `
@group(0) @binding(0) var<storage, read> input: array<f32>;
@group(0) @binding(1) var<storage, read_write> result: array<f32>;

struct Params {
    size: u32,
}
@group(0) @binding(2) var<uniform> params: Params;

@compute @workgroup_size(%[1]d)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>,
        @builtin(num_workgroups) groups: vec3<u32>) {
    let idx = global_id.x + global_id.y * groups.x * %[1]du;
    if (idx < params.size) {
        let x = input[idx];
        result[idx] = %[2]s;
    }
}
`

// expressions maps each op with a GPU kernel to its WGSL body.
var expressions = map[dispatch.OpID]string{
	dispatch.OpAbs:     "abs(x)",
	dispatch.OpCos:     "cos(x)",
	dispatch.OpExp:     "exp(x)",
	dispatch.OpLog:     "log(x)",
	dispatch.OpNeg:     "-x",
	dispatch.OpRsqrt:   "inverseSqrt(x)",
	dispatch.OpSigmoid: "1.0 / (1.0 + exp(-x))",
	dispatch.OpSin:     "sin(x)",
	dispatch.OpSqrt:    "sqrt(x)",
	dispatch.OpTanh:    "tanh(x)",
}

// SupportedOps returns the ops the backend registers, sorted.
func SupportedOps() []dispatch.OpID {
	ops := make([]dispatch.OpID, 0, len(expressions))
	for op := range expressions {
		ops = append(ops, op)
	}
	slices.Sort(ops)
	return ops
}

// unaryShader returns the WGSL source of op.
func unaryShader(op dispatch.OpID) (string, bool) {
	expr, found := expressions[op]
	if !found {
		return "", false
	}
	return fmt.Sprintf(unaryTemplate, workgroupSize, expr), true
}

// workgroups returns the dispatch size covering n elements.
func workgroups(n int) (x, y uint32) {
	groups := (n + workgroupSize - 1) / workgroupSize
	if groups <= maxWorkgroups {
		//nolint:gosec // G115: bounded by maxWorkgroups
		return uint32(groups), 1
	}
	rows := (groups + maxWorkgroups - 1) / maxWorkgroups
	//nolint:gosec // G115: bounded by maxWorkgroups
	return maxWorkgroups, uint32(rows)
}
