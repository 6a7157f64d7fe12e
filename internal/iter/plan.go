// Package iter builds iteration plans: the broadcast-consistent description of how to
// walk a destination tensor and its inputs element by element.
package iter

import (
	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/born-ml/elementwise/internal/tensor"
)

// Config controls the validation performed while building a plan.
type Config struct {
	CheckMemOverlap   bool // Reject outputs that partially alias an input or themselves.
	CheckAllSameDtype bool // Require every operand to share the output dtype.
	ResizeOutputs     bool // Resize the output to the broadcast shape instead of failing.

	// MaxExactOverlapElements bounds the exact overlap check for strided views.
	MaxExactOverlapElements int
}

// DefaultConfig returns the configuration used by ordinary unary ops.
func DefaultConfig() Config {
	return Config{
		CheckMemOverlap:         true,
		CheckAllSameDtype:       true,
		ResizeOutputs:           true,
		MaxExactOverlapElements: 1 << 16,
	}
}

// Operand is one buffer taking part in a plan, with strides aligned to the plan shape.
type Operand struct {
	Tensor  *tensor.RawTensor
	Strides []int // 0 on broadcast dimensions
	Offset  int   // storage element offset of the first element
}

// Plan is the resolved iteration over an output and its inputs.
// Operand 0 is the output. A plan borrows its tensors and owns no storage.
type Plan struct {
	shape       tensor.Shape
	numel       int
	operands    []Operand
	freshOutput bool
	contiguous  bool
}

// Unary builds the plan of a one-input op writing into out.
func Unary(cfg Config, out, in *tensor.RawTensor) (*Plan, error) {
	return Build(cfg, out, in)
}

// Build validates the operands and returns the plan writing into out.
//
// The output is resized to the broadcast shape of the inputs when it differs. An output
// that is an unshared empty placeholder counts as freshly allocated and skips the overlap
// check, since nothing can alias it.
func Build(cfg Config, out *tensor.RawTensor, inputs ...*tensor.RawTensor) (*Plan, error) {
	for _, in := range inputs {
		if in.Device() != out.Device() {
			return nil, errors.Wrapf(tensor.ErrDeviceMismatch, "expected all tensors on %s, but found input on %s",
				out.Device(), in.Device())
		}
		if cfg.CheckAllSameDtype && in.DType() != out.DType() {
			return nil, errors.Wrapf(tensor.ErrInvalidArgument, "result dtype %s does not match input dtype %s",
				out.DType(), in.DType())
		}
	}

	shape := out.Shape().Clone()
	if len(inputs) > 0 {
		shapes := make([]tensor.Shape, len(inputs))
		for i, in := range inputs {
			shapes[i] = in.Shape()
		}
		var err error
		shape, err = tensor.BroadcastAll(shapes...)
		if err != nil {
			return nil, errors.Wrap(tensor.ErrInvalidArgument, err.Error())
		}
	}

	fresh := out.NumElements() == 0 && out.IsUnique()
	if cfg.CheckMemOverlap && !fresh {
		if err := checkOverlap(cfg, out, inputs); err != nil {
			return nil, err
		}
	}

	if !out.Shape().Equal(shape) {
		if !cfg.ResizeOutputs {
			return nil, errors.Wrapf(tensor.ErrInvalidArgument, "output shape %v does not match broadcast shape %v",
				out.Shape(), shape)
		}
		if err := out.Resize(shape); err != nil {
			return nil, err
		}
	}

	p := &Plan{
		shape:       shape,
		numel:       shape.NumElements(),
		operands:    make([]Operand, 0, len(inputs)+1),
		freshOutput: fresh,
		contiguous:  out.IsContiguous(),
	}
	p.operands = append(p.operands, Operand{Tensor: out, Strides: out.Strides(), Offset: out.Offset()})
	for _, in := range inputs {
		p.operands = append(p.operands, Operand{Tensor: in, Strides: broadcastStrides(in, shape), Offset: in.Offset()})
		if !in.Shape().Equal(shape) || !in.IsContiguous() {
			p.contiguous = false
		}
	}
	return p, nil
}

// checkOverlap rejects an output that writes one location twice or partially aliases an input.
func checkOverlap(cfg Config, out *tensor.RawTensor, inputs []*tensor.RawTensor) error {
	if tensor.HasInternalOverlap(out) {
		return errors.Wrap(tensor.ErrMemoryOverlap,
			"unsupported operation: more than one element of the written-to tensor refers to a single memory location")
	}
	for _, in := range inputs {
		switch tensor.MemOverlap(out, in, cfg.MaxExactOverlapElements) {
		case tensor.OverlapPartial:
			return errors.Wrap(tensor.ErrMemoryOverlap,
				"unsupported operation: some elements of the input tensor and the written-to tensor refer to a single memory location")
		case tensor.OverlapTooHard:
			klog.Warningf("iter: overlap between output %v and input %v too expensive to resolve, allowing it",
				out.Shape(), in.Shape())
		}
	}
	return nil
}

// broadcastStrides aligns in's strides to shape, using 0 on broadcast dimensions.
func broadcastStrides(in *tensor.RawTensor, shape tensor.Shape) []int {
	strides := make([]int, len(shape))
	inShape := in.Shape()
	inStrides := in.Strides()
	lead := len(shape) - len(inShape)
	for i := range inShape {
		if inShape[i] == 1 && shape[lead+i] != 1 {
			continue
		}
		strides[lead+i] = inStrides[i]
	}
	return strides
}

// Shape returns the broadcast iteration shape.
func (p *Plan) Shape() tensor.Shape {
	return p.shape
}

// NumElements returns the number of elements the plan visits.
func (p *Plan) NumElements() int {
	return p.numel
}

// NumInputs returns the number of input operands.
func (p *Plan) NumInputs() int {
	return len(p.operands) - 1
}

// Output returns the destination tensor.
func (p *Plan) Output() *tensor.RawTensor {
	return p.operands[0].Tensor
}

// Input returns the i-th input tensor.
func (p *Plan) Input(i int) *tensor.RawTensor {
	return p.operands[i+1].Tensor
}

// Operand returns operand i; operand 0 is the output.
func (p *Plan) Operand(i int) Operand {
	return p.operands[i]
}

// DType returns the output dtype.
func (p *Plan) DType() tensor.DataType {
	return p.Output().DType()
}

// Device returns the device every operand lives on.
func (p *Plan) Device() tensor.Device {
	return p.Output().Device()
}

// FreshOutput reports whether the output was a freshly allocated placeholder.
func (p *Plan) FreshOutput() bool {
	return p.freshOutput
}

// Contiguous reports whether every operand is dense and unbroadcast, so that element i of
// each operand sits at its offset plus i.
func (p *Plan) Contiguous() bool {
	return p.contiguous
}

// ForRange calls fn for each linear element index in [start, end) with the storage
// element offset of every operand. The offsets slice is reused between calls; fn must
// not retain it. Calls for disjoint ranges may run concurrently.
func (p *Plan) ForRange(start, end int, fn func(offsets []int)) {
	if start >= end {
		return
	}
	n := len(p.operands)
	offsets := make([]int, n)

	if p.contiguous {
		for i := start; i < end; i++ {
			for k := range p.operands {
				offsets[k] = p.operands[k].Offset + i
			}
			fn(offsets)
		}
		return
	}

	rank := len(p.shape)
	index := make([]int, rank)
	rem := start
	for d := rank - 1; d >= 0; d-- {
		index[d] = rem % p.shape[d]
		rem /= p.shape[d]
	}
	for k, op := range p.operands {
		offsets[k] = op.Offset
		for d := 0; d < rank; d++ {
			offsets[k] += index[d] * op.Strides[d]
		}
	}

	for i := start; i < end; i++ {
		fn(offsets)
		for d := rank - 1; d >= 0; d-- {
			index[d]++
			for k, op := range p.operands {
				offsets[k] += op.Strides[d]
			}
			if index[d] < p.shape[d] {
				break
			}
			for k, op := range p.operands {
				offsets[k] -= op.Strides[d] * p.shape[d]
			}
			index[d] = 0
		}
	}
}

// ForEach calls fn for every element of the plan, sequentially.
func (p *Plan) ForEach(fn func(offsets []int)) {
	p.ForRange(0, p.numel, fn)
}
