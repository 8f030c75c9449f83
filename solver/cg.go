package solver

import (
	"fmt"
	"math"

	"github.com/notargets/gotransport/utils"
)

// CG is a preconditioned conjugate gradient solver for symmetric positive
// definite operators, used for mass-matrix solves.
type CG struct {
	RelTol, AbsTol float64
	MaxIter        int
	Op             Operator
	Prec           Preconditioner
	Converged      bool
	FinalIters     int
	FinalNorm      float64
}

func NewCG() *CG {
	return &CG{
		RelTol:  1.e-12,
		MaxIter: 200,
		Prec:    &IdentityPrec{},
	}
}

func (c *CG) SetOperator(op Operator) {
	c.Op = op
	if c.Prec != nil {
		c.Prec.SetOperator(op)
	}
}

func (c *CG) Solve(b, x []float64) error {
	var (
		n  = c.Op.Height()
		r  = make([]float64, n)
		z  = make([]float64, n)
		p  = make([]float64, n)
		ap = make([]float64, n)
	)
	c.Op.Mult(x, r)
	for i := range r {
		r[i] = b[i] - r[i]
	}
	c.Prec.Mult(r, z)
	copy(p, z)
	rz := utils.DotProduct(r, z)
	norm := utils.L2Norm(r)
	tol := math.Max(c.RelTol*norm, c.AbsTol)
	c.Converged = norm <= tol
	for it := 0; it < c.MaxIter && !c.Converged; it++ {
		c.Op.Mult(p, ap)
		alpha := rz / utils.DotProduct(p, ap)
		utils.VecAxpy(alpha, p, x)
		utils.VecAxpy(-alpha, ap, r)
		norm = utils.L2Norm(r)
		c.FinalIters = it + 1
		if norm <= tol {
			c.Converged = true
			break
		}
		c.Prec.Mult(r, z)
		rzNew := utils.DotProduct(r, z)
		beta := rzNew / rz
		rz = rzNew
		for i := range p {
			p[i] = z[i] + beta*p[i]
		}
	}
	c.FinalNorm = norm
	if !c.Converged {
		return fmt.Errorf("CG: no convergence in %d iterations, ||r|| = %8.3e", c.MaxIter, norm)
	}
	return nil
}

// JacobiPrec is a diagonal preconditioner for CSR-backed operators.
type JacobiPrec struct {
	dinv []float64
}

func (j *JacobiPrec) SetOperator(op Operator) {
	cop, ok := op.(*CSROperator)
	if !ok {
		j.dinv = nil
		return
	}
	d := utils.CSRDiagonal(cop.A)
	j.dinv = make([]float64, len(d))
	for i, val := range d {
		if val != 0 {
			j.dinv[i] = 1 / val
		} else {
			j.dinv[i] = 1
		}
	}
}

func (j *JacobiPrec) Mult(r, z []float64) {
	if j.dinv == nil {
		copy(z, r)
		return
	}
	for i := range r {
		z[i] = j.dinv[i] * r[i]
	}
}
