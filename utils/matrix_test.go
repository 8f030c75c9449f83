package utils

import (
	"testing"

	"github.com/james-bowman/sparse"
	"github.com/stretchr/testify/assert"
)

func TestMatrix(t *testing.T) {
	{ // chained mutation
		A := NewMatrix(2, 2, []float64{1, 2, 3, 4})
		A.Scale(2).AddScalar(1)
		assert.Equal(t, []float64{3, 5, 7, 9}, A.Data())
	}
	{ // multiply
		A := NewMatrix(2, 3, []float64{1, 2, 3, 4, 5, 6})
		B := NewMatrix(3, 2, []float64{7, 8, 9, 10, 11, 12})
		C := A.Mul(B)
		assert.Equal(t, []float64{58, 64, 139, 154}, C.Data())
	}
	{ // inverse
		A := NewMatrix(2, 2, []float64{4, 7, 2, 6})
		Ainv, err := A.Inverse()
		assert.NoError(t, err)
		I := A.Mul(Ainv)
		assert.InDeltaSlice(t, []float64{1, 0, 0, 1}, I.Data(), 1.e-12)
	}
	{ // transpose
		A := NewMatrix(2, 3, []float64{1, 2, 3, 4, 5, 6})
		At := A.Transpose()
		nr, nc := At.Dims()
		assert.Equal(t, 3, nr)
		assert.Equal(t, 2, nc)
		assert.Equal(t, 4., At.At(0, 1))
	}
	{ // column scaling and mat-vec
		A := NewMatrix(2, 2, []float64{1, 2, 3, 4})
		A.ScaleCols([]float64{2, 3})
		assert.Equal(t, []float64{2, 6, 6, 12}, A.Data())
		y := A.MulVec(NewVector(2, []float64{1, 1}))
		assert.Equal(t, []float64{8, 18}, y.Data())
	}
	{ // dimension mismatch panics
		A := NewMatrix(2, 2)
		B := NewMatrix(3, 3)
		assert.Panics(t, func() { A.Add(B) })
	}
}

func TestVector(t *testing.T) {
	v := NewVector(3, []float64{1, 2, 3})
	w := v.Copy().Scale(2)
	assert.Equal(t, []float64{2, 4, 6}, w.Data())
	assert.Equal(t, []float64{1, 2, 3}, v.Data())
	assert.InDelta(t, 14., v.Dot(v), 1.e-12)
	assert.InDelta(t, 3., v.Max(), 1.e-12)
	assert.InDelta(t, 1., v.Min(), 1.e-12)
	sq := v.Copy().Apply(func(x float64) float64 { return x * x })
	assert.Equal(t, []float64{1, 4, 9}, sq.Data())
}

func TestIndex(t *testing.T) {
	idx := Index{0, 3, 4, 5}
	ps := idx.PartialSum()
	assert.Equal(t, Index{0, 3, 7, 12}, ps)
	assert.Equal(t, Index{0, 1, 2, 3}, NewRange(0, 3))
}

func TestSparseHelpers(t *testing.T) {
	dok := sparse.NewDOK(3, 3)
	dok.Set(0, 0, 2)
	dok.Set(0, 2, 1)
	dok.Set(1, 1, 3)
	dok.Set(2, 0, -1)
	dok.Set(2, 2, 4)
	A := dok.ToCSR()
	var (
		x = []float64{1, 2, 3}
		y = make([]float64, 3)
	)
	CSRMulVec(A, x, y)
	assert.Equal(t, []float64{5, 6, 11}, y)
	CSRMulVecAdd(2, A, x, y)
	assert.Equal(t, []float64{15, 18, 33}, y)
	assert.Equal(t, []float64{2, 3, 4}, CSRDiagonal(A))
}
