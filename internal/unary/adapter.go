// Package unary turns single output-parameter kernels into the functional, in-place
// and output-parameter forms of every elementwise unary op, and binds those forms to
// per-op entry points with their own preconditions.
package unary

import (
	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/born-ml/elementwise/internal/dispatch"
	"github.com/born-ml/elementwise/internal/iter"
	"github.com/born-ml/elementwise/internal/tensor"
)

// OutFunc is the output-parameter form of an op: it writes op(self) into result,
// resizing result to the broadcast shape, and returns result.
type OutFunc func(result, self *tensor.RawTensor) (*tensor.RawTensor, error)

// Adapter derives the calling conventions of an op from its kernel table entry.
// It holds no mutable state; concurrent calls on distinct tensors are safe.
type Adapter struct {
	registry *dispatch.Registry
	cfg      iter.Config
}

// NewAdapter creates an adapter dispatching through registry and validating plans with cfg.
func NewAdapter(registry *dispatch.Registry, cfg iter.Config) *Adapter {
	return &Adapter{registry: registry, cfg: cfg}
}

// Registry returns the kernel table the adapter dispatches through.
func (a *Adapter) Registry() *dispatch.Registry {
	return a.registry
}

// Out runs the kernel of op over input and writes into result.
// result and input must share a dtype and a device; result may alias input exactly
// but not partially.
func (a *Adapter) Out(result, input *tensor.RawTensor, op dispatch.OpID, params ...tensor.Scalar) (*tensor.RawTensor, error) {
	if err := a.run(a.cfg, op, result, []*tensor.RawTensor{input}, params); err != nil {
		return nil, err
	}
	return result, nil
}

// OutAnyDtype is Out without the same-dtype requirement, for kernels that cast while
// writing.
func (a *Adapter) OutAnyDtype(result, input *tensor.RawTensor, op dispatch.OpID, params ...tensor.Scalar) (*tensor.RawTensor, error) {
	cfg := a.cfg
	cfg.CheckAllSameDtype = false
	if err := a.run(cfg, op, result, []*tensor.RawTensor{input}, params); err != nil {
		return nil, err
	}
	return result, nil
}

// BinaryOut runs the kernel of a two-input op, broadcasting lhs and rhs against each other.
func (a *Adapter) BinaryOut(result, lhs, rhs *tensor.RawTensor, op dispatch.OpID) (*tensor.RawTensor, error) {
	if err := a.run(a.cfg, op, result, []*tensor.RawTensor{lhs, rhs}, nil); err != nil {
		return nil, err
	}
	return result, nil
}

// run looks up the kernel for the first input's device and dtype, builds the plan
// and invokes the kernel. Every check happens before the kernel writes anything.
func (a *Adapter) run(cfg iter.Config, op dispatch.OpID, result *tensor.RawTensor, inputs []*tensor.RawTensor,
	params []tensor.Scalar) error {
	input := inputs[0]
	kernel, err := a.registry.Lookup(op, input.Device(), input.DType())
	if err != nil {
		return err
	}
	plan, err := iter.Build(cfg, result, inputs...)
	if err != nil {
		return errors.WithMessagef(err, "%s", op)
	}
	klog.V(3).Infof("unary: %s on %s %s, %d elements (fresh output: %t)",
		op, plan.Device(), input.DType(), plan.NumElements(), plan.FreshOutput())
	kernel(plan, params...)
	return nil
}

// Functional allocates an empty output with input's dtype and device and delegates to
// out, which resizes it. input is never mutated and the result never aliases it.
func (a *Adapter) Functional(input *tensor.RawTensor, out OutFunc) (*tensor.RawTensor, error) {
	return a.FunctionalAs(input, input.DType(), out)
}

// FunctionalAs is Functional with an explicit output dtype.
func (a *Adapter) FunctionalAs(input *tensor.RawTensor, dtype tensor.DataType, out OutFunc) (*tensor.RawTensor, error) {
	result := tensor.Empty(dtype, input.Device())
	if _, err := out(result, input); err != nil {
		result.Release()
		return nil, err
	}
	return result, nil
}

// InPlace runs out(self, self) and returns self.
func (a *Adapter) InPlace(self *tensor.RawTensor, out OutFunc) (*tensor.RawTensor, error) {
	if _, err := out(self, self); err != nil {
		return nil, err
	}
	return self, nil
}

// ComplexToFloat is Functional for ops whose result on complex values is real: a
// complex input gets an output of its real counterpart dtype.
func (a *Adapter) ComplexToFloat(input *tensor.RawTensor, out OutFunc) (*tensor.RawTensor, error) {
	if input.DType().IsComplex() {
		return a.FunctionalAs(input, input.DType().RealDType(), out)
	}
	return a.Functional(input, out)
}

// ComplexToFloatOut is Out for ops whose result on complex values is real.
//
// With a complex input and a non-complex result, the real counterpart of the input
// dtype must be castable to the result dtype. A registered complex-to-real kernel
// writes straight into a result of exactly that dtype; otherwise the op runs into a
// complex scratch buffer that is then cast into result.
func (a *Adapter) ComplexToFloatOut(result, input *tensor.RawTensor, op dispatch.OpID) (*tensor.RawTensor, error) {
	if !input.DType().IsComplex() || result.DType().IsComplex() {
		return a.Out(result, input, op)
	}

	floatType := input.DType().RealDType()
	if !tensor.CanCast(floatType, result.DType()) {
		return nil, errors.Wrapf(tensor.ErrTypeMismatch, "%s: result type %s can't be cast to the desired output type %s",
			op, floatType, result.DType())
	}

	if result.DType() == floatType {
		if kernel, found := a.registry.LookupComplexToReal(op, input.Device()); found {
			cfg := a.cfg
			cfg.CheckAllSameDtype = false
			plan, err := iter.Unary(cfg, result, input)
			if err != nil {
				return nil, errors.WithMessagef(err, "%s", op)
			}
			klog.V(3).Infof("unary: %s complex-to-real on %s %s -> %s", op, plan.Device(), input.DType(), floatType)
			kernel(plan)
			return result, nil
		}
	}

	if result.Device() != input.Device() {
		return nil, errors.Wrapf(tensor.ErrDeviceMismatch, "%s: expected result on %s, but found it on %s",
			op, input.Device(), result.Device())
	}
	scratch := tensor.Empty(input.DType(), input.Device())
	defer scratch.Release()
	if _, err := a.Out(scratch, input, op); err != nil {
		return nil, err
	}
	if !result.Shape().Equal(scratch.Shape()) {
		if err := result.Resize(scratch.Shape()); err != nil {
			return nil, err
		}
	}
	if err := a.copyInto(result, scratch); err != nil {
		return nil, err
	}
	return result, nil
}

// copyInto casts src into dst through the registered copy kernel.
func (a *Adapter) copyInto(dst, src *tensor.RawTensor) error {
	cfg := a.cfg
	cfg.CheckAllSameDtype = false
	return a.run(cfg, dispatch.OpCopy, dst, []*tensor.RawTensor{src}, nil)
}
