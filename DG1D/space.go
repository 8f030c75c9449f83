package DG1D

import (
	"fmt"

	"github.com/notargets/gotransport/utils"
)

// Elements1D is a nodal DG space on a 1D chain of elements: Lagrange basis at
// Gauss-Lobatto points, modal Vandermonde for the reference operators. Node
// storage is element-major: global index = k*Np + i.
type Elements1D struct {
	K, Np   int // element count, nodes per element
	VX      utils.Vector
	EToV    utils.Matrix
	R       utils.Vector // reference element nodes
	X       utils.Matrix // Np x K physical node coordinates
	V, Vinv utils.Matrix
	Dr      utils.Matrix
	MassHat utils.Matrix // reference mass matrix inv(V*V')
	J, Rx   []float64    // per element: jacobian, 1/jacobian
}

func NewElements1D(N int, VX utils.Vector, EToV utils.Matrix) (el *Elements1D) {
	var (
		K, _ = EToV.Dims()
		err  error
	)
	el = &Elements1D{
		K:    K,
		Np:   N + 1,
		VX:   VX,
		EToV: EToV,
	}
	el.R = JacobiGL(0, 0, N)
	el.V = Vandermonde1D(N, el.R)
	if el.Vinv, err = el.V.Inverse(); err != nil {
		panic(fmt.Errorf("error inverting V: %v", err))
	}
	Vr := GradVandermonde1D(el.R, N)
	el.Dr = Vr.Mul(el.Vinv)
	el.MassHat = el.Vinv.Transpose().Mul(el.Vinv)

	el.X = utils.NewMatrix(el.Np, K)
	el.J = make([]float64, K)
	el.Rx = make([]float64, K)
	for k := 0; k < K; k++ {
		va := int(EToV.At(k, 0))
		vb := int(EToV.At(k, 1))
		xa, xb := VX.AtVec(va), VX.AtVec(vb)
		h := xb - xa
		if h <= 0 {
			panic(fmt.Errorf("degenerate element %d: h = %v", k, h))
		}
		el.J[k] = h / 2.
		el.Rx[k] = 2. / h
		for i := 0; i < el.Np; i++ {
			el.X.Set(i, k, xa+0.5*(el.R.AtVec(i)+1.)*h)
		}
	}
	return
}

// NumDOF is the dimension of the scalar DG space.
func (el *Elements1D) NumDOF() int { return el.K * el.Np }

// GlobalID maps (element, local node) to the flat DOF index.
func (el *Elements1D) GlobalID(k, i int) int { return k*el.Np + i }

// NodalCoords returns the flat, element-major physical node coordinates.
func (el *Elements1D) NodalCoords() (x []float64) {
	x = make([]float64, el.NumDOF())
	for k := 0; k < el.K; k++ {
		for i := 0; i < el.Np; i++ {
			x[el.GlobalID(k, i)] = el.X.At(i, k)
		}
	}
	return
}

// ElemSize is the physical length of element k.
func (el *Elements1D) ElemSize(k int) float64 { return 2. * el.J[k] }

// NodalDerivative evaluates the elementwise derivative du/dx of a nodal field.
// The result is discontinuous at element interfaces.
func (el *Elements1D) NodalDerivative(u, du []float64) {
	var (
		Np = el.Np
	)
	for k := 0; k < el.K; k++ {
		dk := el.Dr.MulVec(utils.NewVector(Np, u[k*Np:(k+1)*Np])).Scale(el.Rx[k])
		copy(du[k*Np:(k+1)*Np], dk.Data())
	}
}

// BdrMarker expands a Dirichlet attribute list into flags for the two
// boundary faces. An attribute of -1 anywhere in the list marks all
// boundaries.
func (el *Elements1D) BdrMarker(attrs []int) (marker [2]bool) {
	for _, a := range attrs {
		switch a {
		case -1:
			marker[0] = true
			marker[1] = true
		case BdrLeft:
			marker[0] = true
		case BdrRight:
			marker[1] = true
		}
	}
	return
}
