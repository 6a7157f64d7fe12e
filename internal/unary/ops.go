package unary

import (
	"github.com/pkg/errors"

	"github.com/born-ml/elementwise/internal/dispatch"
	"github.com/born-ml/elementwise/internal/tensor"
)

// Ops is the facade over every elementwise unary op.
//
// Parameterless ops are fields; ops taking parameters are methods returning the Op
// bound to those parameters:
//
//	y, err := ops.Sin.Apply(x)
//	_, err = ops.Clamp(&lo, nil).InPlace(x)
type Ops struct {
	adapter *Adapter
	cfg     Config

	// Trigonometric and hyperbolic.
	Sin, Cos, Tan, Asin, Acos, Atan, Sinh, Cosh, Tanh, Asinh, Acosh, Atanh Op

	// Exponential, logarithmic and error functions.
	Exp, Expm1, Log, Log2, Log10, Log1p, Sqrt, Rsqrt, Reciprocal, Sigmoid, Erf, Erfc, Erfinv Op

	// Rounding.
	Ceil, Floor, Trunc, Round, Frac Op

	// Sign. Abs and Angle return real results for complex inputs; Conj has no in-place form.
	Abs, Neg, Sign, Angle, Conj Op

	// Gamma family; see also Polygamma and Mvlgamma.
	Lgamma, Digamma Op

	// Composites of other ops.
	Rad2Deg, Deg2Rad, Square Op

	// Logical and bitwise. LogicalNot allocates a bool result.
	LogicalNot, BitwiseNot Op
}

// New creates the facade over the kernels in registry.
func New(registry *dispatch.Registry, cfg Config) *Ops {
	o := &Ops{
		adapter: NewAdapter(registry, cfg.Iter),
		cfg:     cfg,
	}

	for _, b := range []struct {
		op     *Op
		id     dispatch.OpID
		checks []Precondition
	}{
		{&o.Sin, dispatch.OpSin, nil},
		{&o.Cos, dispatch.OpCos, nil},
		{&o.Tan, dispatch.OpTan, nil},
		{&o.Asin, dispatch.OpAsin, nil},
		{&o.Acos, dispatch.OpAcos, nil},
		{&o.Atan, dispatch.OpAtan, nil},
		{&o.Sinh, dispatch.OpSinh, nil},
		{&o.Cosh, dispatch.OpCosh, nil},
		{&o.Tanh, dispatch.OpTanh, nil},
		{&o.Asinh, dispatch.OpAsinh, nil},
		{&o.Acosh, dispatch.OpAcosh, nil},
		{&o.Atanh, dispatch.OpAtanh, nil},
		{&o.Exp, dispatch.OpExp, nil},
		{&o.Expm1, dispatch.OpExpm1, nil},
		{&o.Log, dispatch.OpLog, nil},
		{&o.Log2, dispatch.OpLog2, nil},
		{&o.Log10, dispatch.OpLog10, nil},
		{&o.Log1p, dispatch.OpLog1p, nil},
		{&o.Sqrt, dispatch.OpSqrt, nil},
		{&o.Rsqrt, dispatch.OpRsqrt, nil},
		{&o.Reciprocal, dispatch.OpReciprocal, nil},
		{&o.Sigmoid, dispatch.OpSigmoid, nil},
		{&o.Erf, dispatch.OpErf, nil},
		{&o.Erfc, dispatch.OpErfc, nil},
		{&o.Erfinv, dispatch.OpErfinv, nil},
		{&o.Ceil, dispatch.OpCeil, []Precondition{notComplex("ceil is not supported for complex inputs")}},
		{&o.Floor, dispatch.OpFloor, []Precondition{notComplex("floor is not supported for complex inputs")}},
		{&o.Trunc, dispatch.OpTrunc, []Precondition{notComplex("trunc is not supported for complex inputs")}},
		{&o.Round, dispatch.OpRound, nil},
		{&o.Frac, dispatch.OpFrac, nil},
		{&o.Neg, dispatch.OpNeg, []Precondition{notBool}},
		{&o.Sign, dispatch.OpSign, nil},
		{&o.BitwiseNot, dispatch.OpBitwiseNot, nil},
		{&o.Lgamma, dispatch.OpLgamma, nil},
		{&o.Digamma, dispatch.OpDigamma, nil},
	} {
		*b.op = o.kernelOp(b.id, b.checks...)
	}

	o.Abs = o.promotingOp(dispatch.OpAbs)
	o.Angle = o.promotingOp(dispatch.OpAngle)

	o.Conj = o.kernelOp(dispatch.OpConj)
	o.Conj.inPlace = false

	o.LogicalNot = Op{
		name:    string(dispatch.OpLogicalNot),
		adapter: o.adapter,
		out: func(result, self *tensor.RawTensor) (*tensor.RawTensor, error) {
			return o.adapter.OutAnyDtype(result, self, dispatch.OpLogicalNot)
		},
		alloc:   allocBool,
		inPlace: true,
	}

	o.Rad2Deg = o.scaleOp("rad2deg", rad2degFactor)
	o.Deg2Rad = o.scaleOp("deg2rad", deg2radFactor)
	o.Square = o.compositeOp("square", func(result, self *tensor.RawTensor) (*tensor.RawTensor, error) {
		return o.PowScalar(tensor.ScalarInt(2)).Out(result, self)
	})
	return o
}

// Adapter returns the variant adapter the ops dispatch through.
func (o *Ops) Adapter() *Adapter {
	return o.adapter
}

// kernelOp binds a registered kernel with same-dtype output.
func (o *Ops) kernelOp(id dispatch.OpID, checks ...Precondition) Op {
	return o.compositeOp(string(id), checked(func(result, self *tensor.RawTensor) (*tensor.RawTensor, error) {
		return o.adapter.Out(result, self, id)
	}, checks...))
}

// kernelOpWith binds a registered kernel with fixed scalar parameters.
func (o *Ops) kernelOpWith(id dispatch.OpID, params []tensor.Scalar, checks ...Precondition) Op {
	return o.compositeOp(string(id), checked(func(result, self *tensor.RawTensor) (*tensor.RawTensor, error) {
		return o.adapter.Out(result, self, id, params...)
	}, checks...))
}

// promotingOp binds a kernel whose result on complex inputs is real.
func (o *Ops) promotingOp(id dispatch.OpID) Op {
	op := o.compositeOp(string(id), func(result, self *tensor.RawTensor) (*tensor.RawTensor, error) {
		return o.adapter.ComplexToFloatOut(result, self, id)
	})
	op.alloc = allocReal
	return op
}

// compositeOp binds an output-parameter implementation built from other ops.
func (o *Ops) compositeOp(name string, out OutFunc) Op {
	return Op{name: name, adapter: o.adapter, out: out, inPlace: true}
}

// notBool rejects bool inputs to negation.
func notBool(self *tensor.RawTensor) error {
	if self.DType() == tensor.Bool {
		return errors.Wrap(tensor.ErrUnsupportedDtype,
			"negation, the `-` operator, on a bool tensor is not supported; "+
				"if you are trying to invert a mask, use LogicalNot instead")
	}
	return nil
}
