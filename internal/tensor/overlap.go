package tensor

// Overlap classifies how the memory of two tensors intersects.
type Overlap int

// Overlap results.
const (
	// OverlapNo means no byte is shared.
	OverlapNo Overlap = iota
	// OverlapFull means both tensors address exactly the same elements in the same order.
	OverlapFull
	// OverlapPartial means some, but not exactly all, bytes are shared.
	OverlapPartial
	// OverlapTooHard means the extents intersect and an exact answer was not computed.
	OverlapTooHard
)

// String returns the overlap name.
func (o Overlap) String() string {
	switch o {
	case OverlapNo:
		return "no"
	case OverlapFull:
		return "full"
	case OverlapPartial:
		return "partial"
	default:
		return "too hard"
	}
}

// extent returns the half-open byte range [start, end) addressed by r.
func (r *RawTensor) extent() (start, end int) {
	size := r.dtype.Size()
	last := r.offset
	for i, dim := range r.shape {
		last += (dim - 1) * r.stride[i]
	}
	return r.offset * size, last*size + size
}

// HasInternalOverlap reports whether two elements of r address the same memory, which
// happens when a dimension of extent > 1 has stride 0 (an expanded view).
func HasInternalOverlap(r *RawTensor) bool {
	for i, dim := range r.shape {
		if dim > 1 && r.stride[i] == 0 {
			return true
		}
	}
	return false
}

// MemOverlap compares the memory addressed by a and b.
//
// Tensors on different storage never overlap. Identical geometry (same base, shape,
// strides and element size) is a full overlap. Intersecting byte extents of two dense
// tensors are a partial overlap; strided views with intersecting extents, such as the
// real and imaginary views of one complex buffer, are resolved exactly by enumerating
// their addresses when a and b hold at most maxExact elements together, and are
// OverlapTooHard beyond that.
func MemOverlap(a, b *RawTensor, maxExact int) Overlap {
	if !a.SameStorage(b) || a.NumElements() == 0 || b.NumElements() == 0 {
		return OverlapNo
	}
	if sameGeometry(a, b) {
		return OverlapFull
	}

	aStart, aEnd := a.extent()
	bStart, bEnd := b.extent()
	if aEnd <= bStart || bEnd <= aStart {
		return OverlapNo
	}
	if a.IsContiguous() && b.IsContiguous() {
		return OverlapPartial
	}
	if a.NumElements()+b.NumElements() > maxExact {
		return OverlapTooHard
	}

	covered := make(map[int]struct{}, a.ByteSize())
	aSize := a.dtype.Size()
	a.ForEachOffset(func(off int) {
		for i := 0; i < aSize; i++ {
			covered[off*aSize+i] = struct{}{}
		}
	})
	bSize := b.dtype.Size()
	shared := false
	b.ForEachOffset(func(off int) {
		if shared {
			return
		}
		for i := 0; i < bSize; i++ {
			if _, ok := covered[off*bSize+i]; ok {
				shared = true
				return
			}
		}
	})
	if shared {
		return OverlapPartial
	}
	return OverlapNo
}

// sameGeometry reports whether a and b address the same elements in the same order.
func sameGeometry(a, b *RawTensor) bool {
	if a.dtype.Size() != b.dtype.Size() || a.offset != b.offset || !a.shape.Equal(b.shape) {
		return false
	}
	for i, dim := range a.shape {
		if dim > 1 && a.stride[i] != b.stride[i] {
			return false
		}
	}
	return true
}
