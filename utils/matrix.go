package utils

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

type Matrix struct {
	M *mat.Dense
}

func NewMatrix(nr, nc int, dataO ...[]float64) (R Matrix) {
	var m *mat.Dense
	if len(dataO) != 0 {
		if len(dataO[0]) != nr*nc {
			err := fmt.Errorf("mismatch in allocation: NewMatrix nr,nc = %v,%v, len(data[0]) = %v\n", nr, nc, len(dataO[0]))
			panic(err)
		}
		m = mat.NewDense(nr, nc, dataO[0])
	} else {
		m = mat.NewDense(nr, nc, make([]float64, nr*nc))
	}
	R = Matrix{m}
	return
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (m Matrix) Dims() (r, c int)    { return m.M.Dims() }
func (m Matrix) At(i, j int) float64 { return m.M.At(i, j) }
func (m Matrix) T() mat.Matrix       { return m.M.T() }

func (m Matrix) Set(i, j int, val float64) { m.M.Set(i, j, val) }

func (m Matrix) Data() []float64 { return m.M.RawMatrix().Data }

func (m Matrix) IsEmpty() bool { return m.M == nil }

func (m Matrix) Copy() (R Matrix) { // Does not change receiver
	var (
		nr, nc = m.Dims()
		data   = m.M.RawMatrix().Data
		dataR  = make([]float64, nr*nc)
	)
	copy(dataR, data)
	R = NewMatrix(nr, nc, dataR)
	return
}

func (m Matrix) Transpose() (R Matrix) { // Does not change receiver
	var (
		nr, nc = m.Dims()
	)
	R = NewMatrix(nc, nr)
	for j := 0; j < nc; j++ {
		for i := 0; i < nr; i++ {
			R.M.Set(j, i, m.M.At(i, j))
		}
	}
	return
}

func (m Matrix) Mul(A Matrix) (R Matrix) { // Does not change receiver
	var (
		nrM, _ = m.M.Dims()
		_, ncA = A.M.Dims()
	)
	R = NewMatrix(nrM, ncA)
	R.M.Mul(m.M, A.M)
	return R
}

func (m Matrix) MulVec(v Vector) (R Vector) { // Does not change receiver
	var (
		nr, _ = m.Dims()
	)
	R = NewVector(nr)
	R.V.MulVec(m.M, v.V)
	return
}

// Chainable methods that change the receiver
func (m Matrix) Add(A Matrix) Matrix {
	m.M.Add(m.M, A.M)
	return m
}

func (m Matrix) Scale(a float64) Matrix {
	m.M.Scale(a, m.M)
	return m
}

func (m Matrix) AddScalar(a float64) Matrix {
	data := m.M.RawMatrix().Data
	for i := range data {
		data[i] += a
	}
	return m
}

// ScaleCols multiplies column j of the receiver by d[j], in place.
func (m Matrix) ScaleCols(d []float64) Matrix {
	var (
		nr, nc = m.Dims()
	)
	if len(d) != nc {
		panic(fmt.Errorf("dimension mismatch in ScaleCols: nc = %d, len(d) = %d", nc, len(d)))
	}
	for i := 0; i < nr; i++ {
		for j := 0; j < nc; j++ {
			m.M.Set(i, j, m.M.At(i, j)*d[j])
		}
	}
	return m
}

func (m Matrix) Inverse() (R Matrix, err error) {
	var (
		nr, nc = m.Dims()
	)
	R = NewMatrix(nr, nc)
	err = R.M.Inverse(m.M)
	return
}

func (m Matrix) Row(i int) (R Vector) {
	var (
		_, nc = m.Dims()
	)
	R = NewVector(nc)
	for j := 0; j < nc; j++ {
		R.V.SetVec(j, m.M.At(i, j))
	}
	return
}

func (m Matrix) Print(msgI ...string) (out string) {
	var msg string
	if len(msgI) != 0 {
		msg = msgI[0]
	}
	formatString := "%s = \n%8.5f\n"
	out = fmt.Sprintf(formatString, msg, mat.Formatted(m.M, mat.Squeeze()))
	return
}
