package tensor

import (
	"fmt"
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/pkg/errors"
)

// Device represents the compute device for tensor operations.
type Device int

// Supported compute devices.
const (
	CPU Device = iota
	CUDA
	Vulkan
	Metal
	WebGPU
)

// String returns a human-readable device name.
func (d Device) String() string {
	switch d {
	case CPU:
		return "CPU"
	case CUDA:
		return "CUDA"
	case Vulkan:
		return "Vulkan"
	case Metal:
		return "Metal"
	case WebGPU:
		return "WebGPU"
	default:
		return "Unknown"
	}
}

// Layout tags how a tensor's elements are organized in storage.
type Layout int

// Supported layouts.
const (
	Strided Layout = iota
	Sparse
)

// String returns a human-readable layout name.
func (l Layout) String() string {
	switch l {
	case Strided:
		return "strided"
	case Sparse:
		return "sparse"
	default:
		return "unknown"
	}
}

// tensorBuffer is a reference-counted buffer shared by a tensor and its views.
type tensorBuffer struct {
	data     []byte
	refCount atomic.Int32
	mu       sync.Mutex // For safe deallocation
}

// newTensorBuffer creates a new reference-counted buffer with refCount = 1.
func newTensorBuffer(size int) *tensorBuffer {
	buf := &tensorBuffer{
		data: make([]byte, size),
	}
	buf.refCount.Store(1)
	return buf
}

// addRef increments the reference count (for views and clones).
func (tb *tensorBuffer) addRef() {
	tb.refCount.Add(1)
}

// release decrements the reference count and deallocates if it reaches 0.
func (tb *tensorBuffer) release() {
	if tb.refCount.Add(-1) == 0 {
		tb.mu.Lock()
		defer tb.mu.Unlock()
		tb.data = nil
	}
}

// isUnique returns true if this buffer has only one reference.
func (tb *tensorBuffer) isUnique() bool {
	return tb.refCount.Load() == 1
}

// RawTensor is the dtype-erased tensor handle.
// Strides and offset are expressed in elements of the tensor's dtype.
type RawTensor struct {
	buffer *tensorBuffer // Shared reference-counted buffer
	shape  Shape         // Tensor dimensions
	stride []int         // Element strides per dimension
	dtype  DataType      // Runtime type information
	device Device        // Compute device
	layout Layout        // Memory layout tag
	offset int           // Element offset for views
}

// NewRaw creates a new contiguous RawTensor with the given shape and type.
// Memory is zero-initialized.
func NewRaw(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, errors.Wrapf(ErrInvalidArgument, "invalid shape: %v", err)
	}

	return &RawTensor{
		buffer: newTensorBuffer(shape.NumElements() * dtype.Size()),
		shape:  shape.Clone(),
		stride: shape.ComputeStrides(),
		dtype:  dtype,
		device: device,
		layout: Strided,
	}, nil
}

// Empty returns a tensor of shape {0}: a placeholder that kernels resize to the
// broadcast result shape.
func Empty(dtype DataType, device Device) *RawTensor {
	return &RawTensor{
		buffer: newTensorBuffer(0),
		shape:  Shape{0},
		stride: []int{1},
		dtype:  dtype,
		device: device,
		layout: Strided,
	}
}

// Shape returns the tensor's shape.
func (r *RawTensor) Shape() Shape {
	return r.shape
}

// Strides returns the tensor's element strides.
func (r *RawTensor) Strides() []int {
	return r.stride
}

// Offset returns the element offset of the first element in storage.
func (r *RawTensor) Offset() int {
	return r.offset
}

// Rank returns the number of dimensions.
func (r *RawTensor) Rank() int {
	return len(r.shape)
}

// DType returns the tensor's data type.
func (r *RawTensor) DType() DataType {
	return r.dtype
}

// Device returns the tensor's compute device.
func (r *RawTensor) Device() Device {
	return r.device
}

// Layout returns the tensor's layout tag.
func (r *RawTensor) Layout() Layout {
	return r.layout
}

// NumElements returns the total number of elements.
func (r *RawTensor) NumElements() int {
	return r.shape.NumElements()
}

// ByteSize returns the number of bytes addressed by the tensor's elements.
func (r *RawTensor) ByteSize() int {
	return r.NumElements() * r.dtype.Size()
}

// StorageBytes returns the size of the underlying shared buffer.
func (r *RawTensor) StorageBytes() int {
	return len(r.buffer.data)
}

// Storage returns the whole underlying byte buffer, shared with every view.
// WARNING: Direct access to underlying memory. Use with caution.
func (r *RawTensor) Storage() []byte {
	return r.buffer.data
}

// Data returns the bytes starting at the tensor's first element.
// Only meaningful as a flat array when IsContiguous is true.
func (r *RawTensor) Data() []byte {
	return r.buffer.data[r.offset*r.dtype.Size():]
}

// SameStorage reports whether r and other share one buffer.
func (r *RawTensor) SameStorage(other *RawTensor) bool {
	return r.buffer == other.buffer
}

// Elements interprets the whole storage of r as []T, zero-copy.
// Index it with the offsets produced by ForEachOffset or an iteration plan.
// Panics if T does not match the tensor's dtype.
func Elements[T DType](r *RawTensor) []T {
	var zero T
	if dt := inferDataType(zero); dt != r.dtype {
		panic(fmt.Sprintf("tensor dtype is %s, not %s", r.dtype, dt))
	}
	data := r.buffer.data
	n := len(data) / r.dtype.Size()
	if n == 0 {
		return nil
	}
	//nolint:gosec // unsafe.Slice for zero-copy access, bounded by the buffer length
	return unsafe.Slice((*T)(unsafe.Pointer(&data[0])), n)
}

// AsFloat32 returns the elements of a contiguous Float32 tensor.
func (r *RawTensor) AsFloat32() []float32 {
	return Elements[float32](r)[r.offset : r.offset+r.NumElements()]
}

// AsFloat64 returns the elements of a contiguous Float64 tensor.
func (r *RawTensor) AsFloat64() []float64 {
	return Elements[float64](r)[r.offset : r.offset+r.NumElements()]
}

// AsInt64 returns the elements of a contiguous Int64 tensor.
func (r *RawTensor) AsInt64() []int64 {
	return Elements[int64](r)[r.offset : r.offset+r.NumElements()]
}

// AsBool returns the elements of a contiguous Bool tensor.
func (r *RawTensor) AsBool() []bool {
	return Elements[bool](r)[r.offset : r.offset+r.NumElements()]
}

// Clone creates a shallow copy of the RawTensor sharing the same buffer.
func (r *RawTensor) Clone() *RawTensor {
	r.buffer.addRef()
	return &RawTensor{
		buffer: r.buffer,
		shape:  r.shape.Clone(),
		stride: append([]int(nil), r.stride...),
		dtype:  r.dtype,
		device: r.device,
		layout: r.layout,
		offset: r.offset,
	}
}

// view returns a handle on r's buffer with a new geometry and dtype.
func (r *RawTensor) view(shape Shape, stride []int, offset int, dtype DataType) *RawTensor {
	r.buffer.addRef()
	return &RawTensor{
		buffer: r.buffer,
		shape:  shape,
		stride: stride,
		dtype:  dtype,
		device: r.device,
		layout: r.layout,
		offset: offset,
	}
}

// WithLayout returns a view of r tagged with layout l.
func (r *RawTensor) WithLayout(l Layout) *RawTensor {
	v := r.Clone()
	v.layout = l
	return v
}

// Release decrements the reference count and deallocates if it reaches 0.
func (r *RawTensor) Release() {
	r.buffer.release()
}

// IsUnique returns true if this tensor is the only reference to the buffer.
func (r *RawTensor) IsUnique() bool {
	return r.buffer.isUnique()
}

// IsContiguous reports whether the elements are laid out densely in row-major order.
func (r *RawTensor) IsContiguous() bool {
	expected := 1
	for i := len(r.shape) - 1; i >= 0; i-- {
		if r.shape[i] == 1 {
			continue
		}
		if r.stride[i] != expected {
			return false
		}
		expected *= r.shape[i]
	}
	return true
}

// Resize changes the tensor's shape in place, resetting it to contiguous strides.
// Resizing to the current shape is a no-op that keeps the strides of a view.
// The storage is kept when it already holds enough bytes past the offset; otherwise a
// new buffer is allocated and the old reference is released. Existing values are not
// preserved across a reallocation.
func (r *RawTensor) Resize(shape Shape) error {
	if err := shape.Validate(); err != nil {
		return errors.Wrapf(ErrInvalidArgument, "resize to %v: %v", shape, err)
	}
	if r.shape.Equal(shape) {
		return nil
	}
	need := (r.offset + shape.NumElements()) * r.dtype.Size()
	if need > len(r.buffer.data) {
		old := r.buffer
		r.buffer = newTensorBuffer(shape.NumElements() * r.dtype.Size())
		r.offset = 0
		old.release()
	}
	r.shape = shape.Clone()
	r.stride = shape.ComputeStrides()
	return nil
}

// String returns a short description of the tensor's metadata.
func (r *RawTensor) String() string {
	return fmt.Sprintf("RawTensor(shape=%v, dtype=%s, device=%s)", []int(r.shape), r.dtype, r.device)
}
