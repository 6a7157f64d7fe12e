package unary

import (
	"math"

	"github.com/pkg/errors"

	"github.com/born-ml/elementwise/internal/dispatch"
	"github.com/born-ml/elementwise/internal/tensor"
)

const (
	rad2degFactor = 180 / math.Pi
	deg2radFactor = math.Pi / 180
)

// scaleOp binds a multiplication by factor. Complex inputs are rejected; integral and
// bool inputs are cast to the result's floating dtype first.
func (o *Ops) scaleOp(name string, factor float64) Op {
	op := o.compositeOp(name, func(result, self *tensor.RawTensor) (*tensor.RawTensor, error) {
		if self.DType().IsComplex() {
			return nil, errors.Wrapf(tensor.ErrUnsupportedDtype, "%s is not supported for complex tensors", name)
		}
		x := self
		if !self.DType().IsFloat() {
			if !result.DType().IsFloat() {
				return nil, errors.Wrapf(tensor.ErrTypeMismatch, "%s: result type %s can't be cast to the desired output type %s",
					name, tensor.DefaultFloat, result.DType())
			}
			x = tensor.Empty(result.DType(), self.Device())
			defer x.Release()
			if err := o.adapter.copyInto(x, self); err != nil {
				return nil, err
			}
		}
		scale := tensor.ScalarTensor(tensor.ScalarFloat(factor), x.DType(), x.Device())
		defer scale.Release()
		return o.MulOut(result, x, scale)
	})
	op.alloc = allocFloat
	return op
}

// PowScalar returns the op raising elements to exponent.
func (o *Ops) PowScalar(exponent tensor.Scalar) Op {
	return o.kernelOpWith(dispatch.OpPow, []tensor.Scalar{exponent})
}

// Clamp returns the op limiting elements to [lo, hi]. Either bound may be nil, but
// not both. NaN elements stay NaN.
func (o *Ops) Clamp(lo, hi *tensor.Scalar) Op {
	return o.compositeOp(string(dispatch.OpClamp), func(result, self *tensor.RawTensor) (*tensor.RawTensor, error) {
		if self.DType().IsComplex() {
			return nil, errors.Wrap(tensor.ErrUnsupportedDtype, "clamp is not yet implemented for complex tensors")
		}
		switch {
		case lo != nil && hi != nil:
			if err := stridedOnly("clamp")(self); err != nil {
				return nil, err
			}
			return o.adapter.Out(result, self, dispatch.OpClamp, *lo, *hi)
		case hi != nil:
			return o.ClampMax(*hi).Out(result, self)
		case lo != nil:
			return o.ClampMin(*lo).Out(result, self)
		}
		return nil, errors.Wrap(tensor.ErrInvalidArgument, "at least one of 'min' or 'max' must not be nil")
	})
}

// ClampMin returns the op raising elements below lo to lo.
func (o *Ops) ClampMin(lo tensor.Scalar) Op {
	return o.kernelOpWith(dispatch.OpClampMin, []tensor.Scalar{lo},
		notComplex("clamp is not yet implemented for complex tensors"), stridedOnly("clamp_min"))
}

// ClampMax returns the op lowering elements above hi to hi.
func (o *Ops) ClampMax(hi tensor.Scalar) Op {
	return o.kernelOpWith(dispatch.OpClampMax, []tensor.Scalar{hi},
		notComplex("clamp is not yet implemented for complex tensors"), stridedOnly("clamp_max"))
}

// Polygamma returns the op computing the n-th derivative of digamma.
func (o *Ops) Polygamma(n int) Op {
	return o.kernelOpWith(dispatch.OpPolygamma, []tensor.Scalar{tensor.ScalarInt(int64(n))},
		func(*tensor.RawTensor) error {
			if n < 0 {
				return errors.Wrapf(tensor.ErrInvalidArgument, "polygamma(n, x) does not support negative n, got %d", n)
			}
			return nil
		})
}

// Mvlgamma returns the op computing the multivariate log-gamma function of dimension p:
//
//	log Γₚ(x) = p(p-1)/4 · log π + Σ_{j=1..p} log Γ(x + (1-j)/2)
//
// It is composed from Arange, Add and Lgamma and has no kernel of its own. Results
// are computed into a new tensor and then copied into the destination.
func (o *Ops) Mvlgamma(p int) Op {
	return o.compositeOp("mvlgamma", func(result, self *tensor.RawTensor) (*tensor.RawTensor, error) {
		out, err := o.mvlgamma(self, p)
		if err != nil {
			return nil, err
		}
		defer out.Release()
		if result.DType() != out.DType() {
			return nil, errors.Wrapf(tensor.ErrInvalidArgument, "mvlgamma: result dtype %s does not match input dtype %s",
				result.DType(), out.DType())
		}
		return o.Copy(result, out)
	})
}

func (o *Ops) mvlgamma(self *tensor.RawTensor, p int) (*tensor.RawTensor, error) {
	if p < 1 {
		return nil, errors.Wrapf(tensor.ErrInvalidArgument, "mvlgamma: p has to be greater than or equal to 1, got %d", p)
	}
	if !self.DType().IsFloat() {
		return nil, errors.Wrapf(tensor.ErrInvalidArgument, "mvlgamma is not implemented for %s", self.DType())
	}
	if o.cfg.MvlgammaDomainCheck {
		bound := float64(p-1) / 2
		for _, v := range tensor.RealValues(self) {
			if !(v > bound) {
				return nil, errors.Wrapf(tensor.ErrInvalidArgument,
					"mvlgamma: all elements must be greater than (p-1)/2 = %g, found %g", bound, v)
			}
		}
	}

	dtype, device := self.DType(), self.Device()
	offsets, err := tensor.Arange(-float64(p)/2+0.5, 0.5, 0.5, dtype, device)
	if err != nil {
		return nil, err
	}
	defer offsets.Release()
	column, err := self.Unsqueeze(-1)
	if err != nil {
		return nil, err
	}
	defer column.Release()

	// args[..., j] = x + offsets[j]
	args, err := o.Add(column, offsets)
	if err != nil {
		return nil, err
	}
	defer args.Release()
	if _, err := o.Lgamma.InPlace(args); err != nil {
		return nil, err
	}

	sum := tensor.Empty(dtype, device)
	for j := 0; j < p; j++ {
		term, err := args.Select(-1, j)
		if err != nil {
			sum.Release()
			return nil, err
		}
		if j == 0 {
			_, err = o.Copy(sum, term)
		} else {
			_, err = o.AddOut(sum, sum, term)
		}
		term.Release()
		if err != nil {
			sum.Release()
			return nil, err
		}
	}

	constant := tensor.ScalarTensor(tensor.ScalarFloat(float64(p*(p-1))/4*math.Log(math.Pi)), dtype, device)
	defer constant.Release()
	if _, err := o.AddOut(sum, sum, constant); err != nil {
		sum.Release()
		return nil, err
	}
	return sum, nil
}

// Real returns a view of the real parts of a complex tensor.
func (o *Ops) Real(self *tensor.RawTensor) (*tensor.RawTensor, error) {
	return component(self, "real", 0)
}

// Imag returns a view of the imaginary parts of a complex tensor.
func (o *Ops) Imag(self *tensor.RawTensor) (*tensor.RawTensor, error) {
	return component(self, "imag", 1)
}

// component selects index i of the trailing axis of self's real view.
func component(self *tensor.RawTensor, name string, i int) (*tensor.RawTensor, error) {
	if !self.DType().IsComplex() {
		return nil, errors.Wrapf(tensor.ErrUnsupportedOperation, "%s is not implemented for tensors with non-complex dtypes", name)
	}
	view, err := self.ViewAsReal()
	if err != nil {
		return nil, err
	}
	defer view.Release()
	return view.Select(-1, i)
}

// AddOut writes lhs + rhs, broadcast, into result.
func (o *Ops) AddOut(result, lhs, rhs *tensor.RawTensor) (*tensor.RawTensor, error) {
	return o.adapter.BinaryOut(result, lhs, rhs, dispatch.OpAdd)
}

// Add returns lhs + rhs, broadcast.
func (o *Ops) Add(lhs, rhs *tensor.RawTensor) (*tensor.RawTensor, error) {
	return o.binary(lhs, rhs, o.AddOut)
}

// MulOut writes lhs * rhs, broadcast, into result.
func (o *Ops) MulOut(result, lhs, rhs *tensor.RawTensor) (*tensor.RawTensor, error) {
	return o.adapter.BinaryOut(result, lhs, rhs, dispatch.OpMul)
}

// Mul returns lhs * rhs, broadcast.
func (o *Ops) Mul(lhs, rhs *tensor.RawTensor) (*tensor.RawTensor, error) {
	return o.binary(lhs, rhs, o.MulOut)
}

func (o *Ops) binary(lhs, rhs *tensor.RawTensor,
	out func(result, lhs, rhs *tensor.RawTensor) (*tensor.RawTensor, error)) (*tensor.RawTensor, error) {
	result := tensor.Empty(lhs.DType(), lhs.Device())
	if _, err := out(result, lhs, rhs); err != nil {
		result.Release()
		return nil, err
	}
	return result, nil
}

// Copy writes src into dst, casting to dst's dtype and resizing dst to src's shape.
func (o *Ops) Copy(dst, src *tensor.RawTensor) (*tensor.RawTensor, error) {
	if err := o.adapter.copyInto(dst, src); err != nil {
		return nil, err
	}
	return dst, nil
}
