package solver

import (
	"fmt"
	"math"

	"github.com/notargets/gotransport/utils"
)

// Newton is an inexact Newton iteration with a preconditioned Krylov inner
// solve. The gradient is reassembled at every outer iteration.
type Newton struct {
	RelTol, AbsTol float64
	MaxIter        int
	Verbose        bool
	Linear         *GMRES
	// results of the last Solve
	Converged  bool
	FinalIters int
	FinalNorm  float64
}

func NewNewton(linear *GMRES) *Newton {
	return &Newton{
		RelTol:  1.e-8,
		AbsTol:  0,
		MaxIter: 10,
		Linear:  linear,
	}
}

// Solve drives op.Mult(x) -> 0, updating x in place. The caller sets the
// initial guess; a zero guess gives the linearly-implicit single-step mode
// when MaxIter is 1.
func (nl *Newton) Solve(op NonlinOp, x []float64) error {
	var (
		n = op.Height()
		r = make([]float64, n)
		c = make([]float64, n)
	)
	op.Mult(x, r)
	norm := utils.L2Norm(r)
	norm0 := norm
	tol := math.Max(nl.RelTol*norm0, nl.AbsTol)
	nl.Converged = false
	for it := 0; it < nl.MaxIter; it++ {
		if nl.Verbose {
			fmt.Printf("Newton iter %2d  ||R|| = %12.5e  ||R||/||R0|| = %12.5e\n",
				it, norm, norm/norm0)
		}
		if norm <= tol || norm == 0 {
			nl.Converged = true
			nl.FinalIters = it
			nl.FinalNorm = norm
			return nil
		}
		grad := op.Gradient(x)
		nl.Linear.SetOperator(grad)
		utils.VecZero(c)
		// Krylov non-convergence is not fatal: c holds the best-available
		// correction, so apply it and keep iterating.
		if err := nl.Linear.Solve(r, c); err != nil && nl.Verbose {
			fmt.Printf("Newton iter %2d: %v\n", it, err)
		}
		utils.VecAxpy(-1, c, x)
		op.Mult(x, r)
		norm = utils.L2Norm(r)
	}
	nl.FinalIters = nl.MaxIter
	nl.FinalNorm = norm
	if norm <= tol {
		nl.Converged = true
		return nil
	}
	return fmt.Errorf("newton: no convergence in %d iterations, ||R|| = %12.5e (target %12.5e)",
		nl.MaxIter, norm, tol)
}
