package unary

import (
	"github.com/pkg/errors"

	"github.com/born-ml/elementwise/internal/tensor"
)

// Precondition rejects inputs an op is not defined for, before anything is written.
type Precondition func(self *tensor.RawTensor) error

// allocPolicy picks the dtype Apply allocates for an input dtype.
type allocPolicy int

const (
	allocSame      allocPolicy = iota // the input dtype
	allocReal                         // the real counterpart of complex inputs
	allocFloat                        // the default float for integral and bool inputs
	allocBool                         // always bool
)

// Op is one elementwise unary op bound to its three calling conventions:
//
//	Apply(self)         allocates and returns a new tensor
//	InPlace(self)       overwrites self and returns it
//	Out(result, self)   writes into result, resizing it, and returns it
//
// Every form goes through Out, so device dispatch happens once, at the registry lookup
// for the input's device.
type Op struct {
	name    string
	adapter *Adapter
	out     OutFunc
	alloc   allocPolicy
	inPlace bool
}

// Name returns the op name.
func (op Op) Name() string {
	return op.name
}

// Out writes op(self) into result.
func (op Op) Out(result, self *tensor.RawTensor) (*tensor.RawTensor, error) {
	return op.out(result, self)
}

// Apply returns op(self) in a new tensor.
func (op Op) Apply(self *tensor.RawTensor) (*tensor.RawTensor, error) {
	switch op.alloc {
	case allocReal:
		return op.adapter.ComplexToFloat(self, op.Out)
	case allocFloat:
		if !self.DType().IsFloat() && !self.DType().IsComplex() {
			return op.adapter.FunctionalAs(self, tensor.DefaultFloat, op.Out)
		}
	case allocBool:
		return op.adapter.FunctionalAs(self, tensor.Bool, op.Out)
	}
	return op.adapter.Functional(self, op.Out)
}

// InPlace overwrites self with op(self).
func (op Op) InPlace(self *tensor.RawTensor) (*tensor.RawTensor, error) {
	if !op.inPlace {
		return nil, errors.Wrapf(tensor.ErrUnsupportedOperation, "%s has no in-place form", op.name)
	}
	return op.adapter.InPlace(self, op.Out)
}

// checked prepends the preconditions to out.
func checked(out OutFunc, checks ...Precondition) OutFunc {
	if len(checks) == 0 {
		return out
	}
	return func(result, self *tensor.RawTensor) (*tensor.RawTensor, error) {
		for _, check := range checks {
			if err := check(self); err != nil {
				return nil, err
			}
		}
		return out(result, self)
	}
}

// notComplex rejects complex inputs with msg.
func notComplex(msg string) Precondition {
	return func(self *tensor.RawTensor) error {
		if self.DType().IsComplex() {
			return errors.Wrap(tensor.ErrUnsupportedDtype, msg)
		}
		return nil
	}
}

// stridedOnly rejects inputs whose layout is not strided.
func stridedOnly(name string) Precondition {
	return func(self *tensor.RawTensor) error {
		if self.Layout() != tensor.Strided {
			return errors.Wrapf(tensor.ErrLayoutUnsupported, "%s only supports strided layout, got: %s", name, self.Layout())
		}
		return nil
	}
}
