package tensor

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataTypeNames(t *testing.T) {
	for _, dt := range AllDataTypes {
		parsed, ok := ParseDataType(dt.String())
		require.True(t, ok, dt.String())
		assert.Equal(t, dt, parsed)
	}
	_, ok := ParseDataType("bfloat16")
	assert.False(t, ok)
}

func TestDataTypeCategories(t *testing.T) {
	tests := []struct {
		dt                                 DataType
		size                               int
		isFloat, isComplex, isInt, isUnsig bool
		real                               DataType
	}{
		{Bool, 1, false, false, false, false, Bool},
		{Int8, 1, false, false, true, false, Int8},
		{Uint16, 2, false, false, true, true, Uint16},
		{Int64, 8, false, false, true, false, Int64},
		{Float16, 2, true, false, false, false, Float16},
		{Float64, 8, true, false, false, false, Float64},
		{Complex64, 8, false, true, false, false, Float32},
		{Complex128, 16, false, true, false, false, Float64},
	}
	for _, tt := range tests {
		t.Run(tt.dt.String(), func(t *testing.T) {
			assert.Equal(t, tt.size, tt.dt.Size())
			assert.Equal(t, tt.isFloat, tt.dt.IsFloat())
			assert.Equal(t, tt.isComplex, tt.dt.IsComplex())
			assert.Equal(t, tt.isInt, tt.dt.IsInt())
			assert.Equal(t, tt.isUnsig, tt.dt.IsUnsigned())
			assert.Equal(t, tt.real, tt.dt.RealDType())
		})
	}
}

func TestCanCast(t *testing.T) {
	tests := []struct {
		from, to DataType
		want     bool
	}{
		{Complex64, Float32, false},
		{Complex64, Complex128, true},
		{Float32, Complex64, true},
		{Float64, Float16, true},
		{Float32, Int32, false},
		{Int64, Float32, true},
		{Int8, Uint8, true},
		{Int32, Bool, false},
		{Bool, Bool, true},
		{Bool, Float32, true},
	}
	for _, tt := range tests {
		assert.Equalf(t, tt.want, CanCast(tt.from, tt.to), "CanCast(%s, %s)", tt.from, tt.to)
	}
}

func TestShapeHelpers(t *testing.T) {
	assert.Equal(t, 1, Shape{}.NumElements())
	assert.Equal(t, 0, Shape{3, 0}.NumElements())
	assert.Equal(t, []int{12, 4, 1}, Shape{2, 3, 4}.ComputeStrides())
	assert.Error(t, Shape{1, -1}.Validate())

	s := Shape{2, 3}
	c := s.Clone()
	c[0] = 7
	assert.Equal(t, Shape{2, 3}, s)
	assert.False(t, s.Equal(Shape{2, 3, 1}))
}

func TestBroadcastShapes(t *testing.T) {
	tests := []struct {
		a, b      Shape
		want      Shape
		broadcast bool
		wantErr   bool
	}{
		{Shape{3, 1}, Shape{3, 5}, Shape{3, 5}, true, false},
		{Shape{5}, Shape{2, 5}, Shape{2, 5}, true, false},
		{Shape{3, 5}, Shape{3, 5}, Shape{3, 5}, false, false},
		{Shape{}, Shape{4}, Shape{4}, true, false},
		{Shape{3, 4}, Shape{3, 5}, nil, false, true},
	}
	for _, tt := range tests {
		got, broadcast, err := BroadcastShapes(tt.a, tt.b)
		if tt.wantErr {
			assert.Error(t, err)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
		assert.Equal(t, tt.broadcast, broadcast)
	}

	all, err := BroadcastAll(Shape{2, 1, 3}, Shape{4, 1}, Shape{3})
	require.NoError(t, err)
	assert.Equal(t, Shape{2, 4, 3}, all)

	scalar, err := BroadcastAll()
	require.NoError(t, err)
	assert.Equal(t, Shape{}, scalar)
}

func TestNormalizeDim(t *testing.T) {
	d, err := NormalizeDim(-1, 3)
	require.NoError(t, err)
	assert.Equal(t, 2, d)

	_, err = NormalizeDim(3, 3)
	assert.Error(t, err)
	_, err = NormalizeDim(-4, 3)
	assert.Error(t, err)
}

func TestScalarConversions(t *testing.T) {
	tests := []struct {
		name     string
		s        Scalar
		f        float64
		i        int64
		c        complex128
		b        bool
		str      string
		complexV bool
	}{
		{"bool", ScalarBool(true), 0, 0, 1, true, "true", false},
		{"int", ScalarInt(-3), -3, -3, -3, true, "-3", false},
		{"uint", ScalarUint(7), 7, 7, 7, true, "7", false},
		{"float", ScalarFloat(-2.5), -2.5, -2, -2.5, true, "-2.5", false},
		{"complex", ScalarComplex(1 + 2i), 1, 1, 1 + 2i, true, "(1+2i)", true},
		{"zero", ScalarFloat(0), 0, 0, 0, false, "0", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.s.Kind() != ScalarKindBool {
				assert.Equal(t, tt.f, tt.s.Float64())
				assert.Equal(t, tt.i, tt.s.Int64())
			}
			assert.Equal(t, tt.c, tt.s.Complex128())
			assert.Equal(t, tt.b, tt.s.Bool())
			assert.Equal(t, tt.str, tt.s.String())
			assert.Equal(t, tt.complexV, tt.s.IsComplex())
		})
	}
	assert.Equal(t, "NaN", ScalarComplex(complex(math.NaN(), 0)).String())
}

func TestCreation(t *testing.T) {
	_, err := FromSlice([]float32{1, 2, 3}, Shape{2, 2}, CPU)
	assert.True(t, errors.Is(err, ErrInvalidArgument))

	_, err = FromFloat64s([]float64{1}, Shape{2}, Int32, CPU)
	assert.True(t, errors.Is(err, ErrInvalidArgument))

	full, err := Full(Shape{2, 2}, ScalarInt(3), Int16, CPU)
	require.NoError(t, err)
	assert.Equal(t, []int16{3, 3, 3, 3}, Elements[int16](full))

	ar, err := Arange(-1, 0.5, 0.5, Float64, CPU)
	require.NoError(t, err)
	assert.Equal(t, []float64{-1, -0.5, 0}, ar.AsFloat64())

	desc, err := Arange(3, 0, -1, Int64, CPU)
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 2, 1}, desc.AsInt64())

	none, err := Arange(0, 0, 1, Float32, CPU)
	require.NoError(t, err)
	assert.Equal(t, Shape{0}, none.Shape())

	_, err = Arange(0, 1, 0, Float32, CPU)
	assert.True(t, errors.Is(err, ErrInvalidArgument))
	_, err = Arange(0, 1, -1, Float32, CPU)
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}
