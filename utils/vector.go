package utils

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

type Vector struct {
	V *mat.VecDense
}

func NewVector(n int, dataO ...[]float64) (R Vector) {
	var v *mat.VecDense
	if len(dataO) != 0 {
		if len(dataO[0]) != n {
			err := fmt.Errorf("mismatch in allocation: NewVector n = %v, len(data[0]) = %v\n", n, len(dataO[0]))
			panic(err)
		}
		v = mat.NewVecDense(n, dataO[0])
	} else {
		v = mat.NewVecDense(n, make([]float64, n))
	}
	R = Vector{v}
	return
}

func (v Vector) Len() int                  { return v.V.Len() }
func (v Vector) AtVec(i int) float64       { return v.V.AtVec(i) }
func (v Vector) SetVec(i int, val float64) { v.V.SetVec(i, val) }
func (v Vector) Data() []float64           { return v.V.RawVector().Data }

func (v Vector) Copy() (R Vector) {
	var (
		n     = v.Len()
		dataR = make([]float64, n)
	)
	copy(dataR, v.Data())
	R = NewVector(n, dataR)
	return
}

// Chainable methods that change the receiver
func (v Vector) Set(val float64) Vector {
	data := v.Data()
	for i := range data {
		data[i] = val
	}
	return v
}

func (v Vector) Scale(a float64) Vector {
	data := v.Data()
	for i := range data {
		data[i] *= a
	}
	return v
}

func (v Vector) AddScalar(a float64) Vector {
	data := v.Data()
	for i := range data {
		data[i] += a
	}
	return v
}

func (v Vector) Add(a Vector) Vector {
	v.V.AddVec(v.V, a.V)
	return v
}

func (v Vector) Apply(f func(float64) float64) Vector {
	data := v.Data()
	for i, val := range data {
		data[i] = f(val)
	}
	return v
}

func (v Vector) Min() (min float64) {
	min = v.AtVec(0)
	for i := 1; i < v.Len(); i++ {
		if val := v.AtVec(i); val < min {
			min = val
		}
	}
	return
}

func (v Vector) Max() (max float64) {
	max = v.AtVec(0)
	for i := 1; i < v.Len(); i++ {
		if val := v.AtVec(i); val > max {
			max = val
		}
	}
	return
}

func (v Vector) Dot(a Vector) (d float64) {
	return mat.Dot(v.V, a.V)
}

// L2Norm is the euclidean norm of a raw float slice.
func L2Norm(x []float64) (n float64) {
	for _, val := range x {
		n += val * val
	}
	return math.Sqrt(n)
}

// DotProduct is the inner product of two raw float slices.
func DotProduct(a, b []float64) (d float64) {
	for i, val := range a {
		d += val * b[i]
	}
	return
}

// VecAxpy computes y += a*x over raw float slices.
func VecAxpy(a float64, x, y []float64) {
	for i, val := range x {
		y[i] += a * val
	}
}

// VecScale computes x *= a over a raw float slice.
func VecScale(a float64, x []float64) {
	for i := range x {
		x[i] *= a
	}
}

// VecZero clears a raw float slice.
func VecZero(x []float64) {
	for i := range x {
		x[i] = 0
	}
}
