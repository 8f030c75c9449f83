package transport

import (
	"github.com/james-bowman/sparse"

	"github.com/notargets/gotransport/DG1D"
	"github.com/notargets/gotransport/utils"
)

// DiffusionOp is a plain single-field diffusion operator with a constant
// diffusivity and source, R = M*k + A_D*(y + dt*k) - b. It serves the
// scalar verification configurations and is not part of the plasma set.
type DiffusionOp struct {
	opBase
	Diffusivity float64
	Source      float64
}

func NewDiffusionOp(el *DG1D.Elements1D, index int, dg DGParams, d, src float64,
	bcs []DirichletBC) *DiffusionOp {
	op := &DiffusionOp{
		opBase:      newOpBase(el, index, dg, DefaultPlasmaParams()),
		Diffusivity: d,
		Source:      src,
	}
	op.bcs = bcs
	op.deps[index] = true
	return op
}

func (op *DiffusionOp) diffusion() (*sparse.CSR, []float64) {
	var (
		d                     = constField(op.Height(), op.Diffusivity)
		marker, gLeft, gRight = op.bdrMarker()
	)
	A := op.el.AssembleDiffusion(d, op.dg.Sigma, op.dg.Kappa, marker)
	b := op.el.DiffusionBdrRHS(d, op.dg.Sigma, op.dg.Kappa, marker, gLeft, gRight)
	return A, b
}

func (op *DiffusionOp) Mult(s *BlockState, r []float64) {
	utils.VecZero(r)
	op.multMassAdd(1, nil, s.K[op.index], r)
	A, b := op.diffusion()
	y1 := s.Advanced(op.index, op.dt)
	utils.CSRMulVecAdd(1, A, y1, r)
	src := op.el.SourceRHS(constField(op.Height(), op.Source))
	for i := range r {
		r[i] -= src[i] + b[i]
	}
}

func (op *DiffusionOp) GradientBlock(s *BlockState, j int) *sparse.CSR {
	if j != op.index {
		return nil
	}
	A, _ := op.diffusion()
	return addScaled(op.mass, op.dt, A)
}

func constField(n int, val float64) (c []float64) {
	c = make([]float64, n)
	for i := range c {
		c[i] = val
	}
	return
}

// addScaled forms A + a*B over CSR operands via DOK accumulation.
func addScaled(A *sparse.CSR, a float64, B *sparse.CSR) *sparse.CSR {
	var (
		n, m = A.Dims()
		dok  = sparse.NewDOK(n, m)
	)
	accumulate := func(M *sparse.CSR, scale float64) {
		indptr, ind, data := utils.CSRRaw(M)
		for i := 0; i < n; i++ {
			for p := indptr[i]; p < indptr[i+1]; p++ {
				dok.Set(i, ind[p], dok.At(i, ind[p])+scale*data[p])
			}
		}
	}
	accumulate(A, 1)
	accumulate(B, a)
	return dok.ToCSR()
}
