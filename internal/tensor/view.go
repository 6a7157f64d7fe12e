package tensor

import (
	"github.com/pkg/errors"
)

// ForEachOffset calls fn with the storage element offset of every element of r, in
// logical row-major order.
func (r *RawTensor) ForEachOffset(fn func(off int)) {
	n := r.NumElements()
	if n == 0 {
		return
	}
	rank := len(r.shape)
	if rank == 0 || r.IsContiguous() {
		for i := 0; i < n; i++ {
			fn(r.offset + i)
		}
		return
	}

	index := make([]int, rank)
	off := r.offset
	for i := 0; i < n; i++ {
		fn(off)
		// Advance the multi-index, innermost dimension first.
		for d := rank - 1; d >= 0; d-- {
			index[d]++
			off += r.stride[d]
			if index[d] < r.shape[d] {
				break
			}
			off -= r.stride[d] * r.shape[d]
			index[d] = 0
		}
	}
}

// Select returns a view of r with dimension dim removed, fixed at index.
func (r *RawTensor) Select(dim, index int) (*RawTensor, error) {
	d, err := NormalizeDim(dim, r.Rank())
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidArgument, "select: %v", err)
	}
	size := r.shape[d]
	if index < -size || index >= size {
		return nil, errors.Wrapf(ErrInvalidArgument, "select: index %d out of range for dimension %d of size %d",
			index, d, size)
	}
	if index < 0 {
		index += size
	}

	shape := make(Shape, 0, r.Rank()-1)
	stride := make([]int, 0, r.Rank()-1)
	for i := range r.shape {
		if i == d {
			continue
		}
		shape = append(shape, r.shape[i])
		stride = append(stride, r.stride[i])
	}
	return r.view(shape, stride, r.offset+index*r.stride[d], r.dtype), nil
}

// Narrow returns a view of r restricted to [start, start+length) along dim.
func (r *RawTensor) Narrow(dim, start, length int) (*RawTensor, error) {
	d, err := NormalizeDim(dim, r.Rank())
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidArgument, "narrow: %v", err)
	}
	if start < 0 || length < 0 || start+length > r.shape[d] {
		return nil, errors.Wrapf(ErrInvalidArgument, "narrow: range [%d, %d) out of bounds for dimension %d of size %d",
			start, start+length, d, r.shape[d])
	}
	shape := r.shape.Clone()
	shape[d] = length
	return r.view(shape, append([]int(nil), r.stride...), r.offset+start*r.stride[d], r.dtype), nil
}

// Expand returns a view of r broadcast to shape. Expanded dimensions get stride 0, so
// several elements of the view share one storage location.
func (r *RawTensor) Expand(shape Shape) (*RawTensor, error) {
	out, err := BroadcastAll(r.shape, shape)
	if err != nil || !out.Equal(shape) {
		return nil, errors.Wrapf(ErrInvalidArgument, "expand: cannot expand shape %v to %v", r.shape, shape)
	}
	stride := make([]int, len(shape))
	lead := len(shape) - len(r.shape)
	for i := range r.shape {
		if r.shape[i] == shape[lead+i] {
			stride[lead+i] = r.stride[i]
		}
	}
	return r.view(shape.Clone(), stride, r.offset, r.dtype), nil
}

// Unsqueeze returns a view of r with a dimension of size 1 inserted at dim.
// dim may be in [-rank-1, rank].
func (r *RawTensor) Unsqueeze(dim int) (*RawTensor, error) {
	d, err := NormalizeDim(dim, r.Rank()+1)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidArgument, "unsqueeze: %v", err)
	}

	newStride := 1
	if d < r.Rank() {
		newStride = r.stride[d] * r.shape[d]
	}
	shape := make(Shape, 0, r.Rank()+1)
	stride := make([]int, 0, r.Rank()+1)
	shape = append(shape, r.shape[:d]...)
	stride = append(stride, r.stride[:d]...)
	shape = append(shape, 1)
	stride = append(stride, newStride)
	shape = append(shape, r.shape[d:]...)
	stride = append(stride, r.stride[d:]...)
	return r.view(shape, stride, r.offset, r.dtype), nil
}

// ViewAsReal reinterprets a complex tensor as its real counterpart with one extra
// trailing dimension of size 2 holding the real and imaginary parts.
func (r *RawTensor) ViewAsReal() (*RawTensor, error) {
	if !r.dtype.IsComplex() {
		return nil, errors.Wrapf(ErrUnsupportedOperation, "view_as_real is only supported for complex tensors, got %s",
			r.dtype)
	}
	shape := append(r.shape.Clone(), 2)
	stride := make([]int, 0, len(shape))
	for _, s := range r.stride {
		stride = append(stride, s*2)
	}
	stride = append(stride, 1)
	return r.view(shape, stride, r.offset*2, r.dtype.RealDType()), nil
}

// Contiguous returns r itself when it is already contiguous, otherwise a dense copy.
func (r *RawTensor) Contiguous() *RawTensor {
	if r.IsContiguous() {
		return r
	}
	return r.Copy()
}

// Copy returns a dense copy of r with its own storage.
func (r *RawTensor) Copy() *RawTensor {
	out, err := NewRaw(r.shape, r.dtype, r.device)
	if err != nil {
		panic(err) // r's shape was validated when r was built.
	}
	out.layout = r.layout
	size := r.dtype.Size()
	src := r.buffer.data
	dst := out.buffer.data
	i := 0
	r.ForEachOffset(func(off int) {
		copy(dst[i*size:(i+1)*size], src[off*size:(off+1)*size])
		i++
	})
	return out
}
