package algebra

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVectorElementwiseOps(t *testing.T) {
	a := VectorFromSlice([]float64{1, 2, 3})
	b := VectorFromSlice([]float64{4, 5, 6})

	sum, err := Add(a, b)
	require.NoError(t, err)
	v, _ := sum.At(1)
	require.Equal(t, 7.0, v)

	diff, err := Sub(b, a)
	require.NoError(t, err)
	v, _ = diff.At(0)
	require.Equal(t, 3.0, v)

	scaled := Scale(2.0, a)
	v, _ = scaled.At(2)
	require.Equal(t, 6.0, v)

	had, err := Hadamard(a, b)
	require.NoError(t, err)
	v, _ = had.At(0)
	require.Equal(t, 4.0, v)

	dot, err := Dot(a, b)
	require.NoError(t, err)
	require.Equal(t, 32.0, dot) // 1*4+2*5+3*6

	require.Equal(t, 14.0, Norm2(a))
	require.InDelta(t, math.Sqrt(14.0), Norm(a), 1e-12)
}

func TestVectorDimensionMismatch(t *testing.T) {
	a := NewVector(2)
	b := NewVector(3)

	_, err := Add(a, b)
	require.ErrorIs(t, err, ErrDimensionMismatch)

	_, err = Dot(a, b)
	require.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestVectorOutOfBounds(t *testing.T) {
	v := NewVector(2)
	_, err := v.At(5)
	require.ErrorIs(t, err, ErrIndexOutOfBounds)

	err = v.Set(-1, 1)
	require.ErrorIs(t, err, ErrIndexOutOfBounds)
}
