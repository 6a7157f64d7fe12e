// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor_test

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/elementwise/tensor"
)

// TestRawTensorAPI verifies RawTensor type alias exposes expected API.
func TestRawTensorAPI(t *testing.T) {
	raw, err := tensor.NewRaw(tensor.Shape{2, 3}, tensor.Float32, tensor.CPU)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 3}, raw.Shape())
	assert.Equal(t, tensor.Float32, raw.DType())
	assert.Equal(t, tensor.CPU, raw.Device())
	assert.Equal(t, tensor.Strided, raw.Layout())
	assert.Equal(t, 6, raw.NumElements())
	assert.Equal(t, 24, raw.ByteSize())

	row, err := raw.Select(0, 1)
	require.NoError(t, err)
	assert.True(t, row.SameStorage(raw))
}

func TestCreation(t *testing.T) {
	x, err := tensor.FromSlice([]int16{1, 2, 3}, tensor.Shape{3}, tensor.CPU)
	require.NoError(t, err)
	assert.Equal(t, tensor.Int16, x.DType())
	assert.Equal(t, []int16{1, 2, 3}, tensor.Elements[int16](x))

	f, err := tensor.FromFloat64s([]float64{1.5, -2}, tensor.Shape{2}, tensor.Complex64, tensor.CPU)
	require.NoError(t, err)
	assert.Equal(t, []complex128{1.5, -2}, tensor.Values(f))

	full, err := tensor.Full(tensor.Shape{2}, tensor.ScalarFloat(0.5), tensor.Float64, tensor.CPU)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, 0.5}, tensor.RealValues(full))

	ar, err := tensor.Arange(0, 3, 1, tensor.Int64, tensor.CPU)
	require.NoError(t, err)
	assert.Equal(t, []int64{0, 1, 2}, ar.AsInt64())

	s := tensor.ScalarTensor(tensor.ScalarInt(4), tensor.Uint8, tensor.CPU)
	assert.Equal(t, []float64{4}, tensor.RealValues(s))

	e := tensor.Empty(tensor.Bool, tensor.WebGPU)
	assert.Equal(t, 0, e.NumElements())
	assert.Equal(t, tensor.WebGPU, e.Device())
}

func TestDataTypes(t *testing.T) {
	all := tensor.AllDataTypes()
	require.Len(t, all, 14)
	for _, dt := range all {
		parsed, ok := tensor.ParseDataType(dt.String())
		require.True(t, ok)
		assert.Equal(t, dt, parsed)
	}

	all[0] = tensor.Complex128
	assert.NotEqual(t, tensor.Complex128, tensor.AllDataTypes()[0], "AllDataTypes must return a copy")
}

func TestErrors(t *testing.T) {
	_, err := tensor.NewRaw(tensor.Shape{-1}, tensor.Float32, tensor.CPU)
	assert.True(t, errors.Is(err, tensor.ErrInvalidArgument))

	_, err = tensor.Arange(0, 1, 0, tensor.Float32, tensor.CPU)
	assert.True(t, errors.Is(err, tensor.ErrInvalidArgument))
}
