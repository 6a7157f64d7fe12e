package tensor

import (
	"slices"

	"github.com/pkg/errors"
)

// Shape lists the extent of each dimension, outermost first. The empty shape is a
// 0-dim tensor holding one element.
type Shape []int

// NumElements returns the product of the extents.
func (s Shape) NumElements() int {
	n := 1
	for _, extent := range s {
		n *= extent
	}
	return n
}

// Validate rejects negative extents. A zero extent describes an empty tensor.
func (s Shape) Validate() error {
	if i := slices.IndexFunc(s, func(extent int) bool { return extent < 0 }); i >= 0 {
		return errors.Errorf("dimension %d has negative extent %d", i, s[i])
	}
	return nil
}

// Equal reports whether s and other have the same extents.
func (s Shape) Equal(other Shape) bool {
	return slices.Equal(s, other)
}

// Clone returns a copy of s that never aliases it.
func (s Shape) Clone() Shape {
	return append(make(Shape, 0, len(s)), s...)
}

// ComputeStrides returns the row-major element strides of a contiguous tensor of shape s.
func (s Shape) ComputeStrides() []int {
	strides := make([]int, len(s))
	step := 1
	for i := len(s) - 1; i >= 0; i-- {
		strides[i] = step
		step *= s[i]
	}
	return strides
}

// extentFromRight returns the extent i positions from the innermost dimension, 1 once
// the shape runs out.
func (s Shape) extentFromRight(i int) int {
	if i >= len(s) {
		return 1
	}
	return s[len(s)-1-i]
}

// BroadcastShapes aligns a and b on their innermost dimensions and returns the shape
// both expand to. Two extents are compatible when equal or when one of them is 1;
// missing leading dimensions count as 1. The flag reports whether either side needs
// expanding.
//
//	(3, 1) with (3, 5) -> (3, 5), true
//	(5)    with (2, 5) -> (2, 5), true
//	(3, 4) with (3, 5) -> error
func BroadcastShapes(a, b Shape) (Shape, bool, error) {
	rank := max(len(a), len(b))
	out := make(Shape, rank)
	expanded := len(a) != len(b)
	for i := range rank {
		x, y := a.extentFromRight(i), b.extentFromRight(i)
		switch {
		case x == y:
			out[rank-1-i] = x
		case x == 1:
			out[rank-1-i], expanded = y, true
		case y == 1:
			out[rank-1-i], expanded = x, true
		default:
			return nil, false, errors.Errorf("shapes %v and %v are not broadcastable: extent %d vs %d at dimension %d",
				[]int(a), []int(b), x, y, rank-1-i)
		}
	}
	return out, expanded, nil
}

// BroadcastAll folds BroadcastShapes over shapes, starting from the 0-dim shape.
func BroadcastAll(shapes ...Shape) (Shape, error) {
	out := Shape{}
	for _, s := range shapes {
		var err error
		if out, _, err = BroadcastShapes(out, s); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// NormalizeDim maps a dimension index in [-rank, rank) into [0, rank).
func NormalizeDim(dim, rank int) (int, error) {
	d := dim
	if d < 0 {
		d += rank
	}
	if d < 0 || d >= rank {
		return 0, errors.Errorf("dimension out of range (expected to be in range of [%d, %d], but got %d)",
			-rank, rank-1, dim)
	}
	return d, nil
}
