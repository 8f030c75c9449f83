package solver

import (
	"fmt"
	"math"

	"github.com/notargets/gotransport/utils"
)

// GMRES is a restarted, left-preconditioned GMRES solver.
type GMRES struct {
	RelTol, AbsTol float64
	MaxIter        int
	Restart        int
	Verbose        bool
	Op             Operator
	Prec           Preconditioner
	// results of the last Solve
	Converged  bool
	FinalIters int
	FinalNorm  float64
}

func NewGMRES() *GMRES {
	return &GMRES{
		RelTol:  1.e-10,
		AbsTol:  0,
		MaxIter: 300,
		Restart: 30,
		Prec:    &IdentityPrec{},
	}
}

func (g *GMRES) SetOperator(op Operator) {
	g.Op = op
	if g.Prec != nil {
		g.Prec.SetOperator(op)
	}
}

// Solve runs GMRES on A*x = b, using x as the initial guess and overwriting
// it with the solution.
func (g *GMRES) Solve(b, x []float64) error {
	var (
		n = g.Op.Height()
		m = g.Restart
	)
	if m <= 0 {
		m = g.MaxIter
	}
	var (
		V  = make([][]float64, m+1)
		H  = make([][]float64, m+1) // H[i][j], column j holds the Arnoldi coefficients
		cs = make([]float64, m)
		sn = make([]float64, m)
		s  = make([]float64, m+1)
		w  = make([]float64, n)
		r  = make([]float64, n)
	)
	for i := range V {
		V[i] = make([]float64, n)
		H[i] = make([]float64, m)
	}
	precResidual := func(dst []float64) float64 {
		g.Op.Mult(x, w)
		for i := range w {
			w[i] = b[i] - w[i]
		}
		g.Prec.Mult(w, dst)
		return utils.L2Norm(dst)
	}
	beta := precResidual(r)
	norm0 := beta
	tol := math.Max(g.RelTol*norm0, g.AbsTol)
	g.Converged = beta <= tol
	g.FinalIters = 0
	g.FinalNorm = beta
	if g.Converged {
		return nil
	}
	iter := 0
	for iter < g.MaxIter {
		copy(V[0], r)
		utils.VecScale(1/beta, V[0])
		utils.VecZero(s)
		s[0] = beta
		var j int
		for j = 0; j < m && iter < g.MaxIter; j++ {
			iter++
			g.Op.Mult(V[j], w)
			g.Prec.Mult(w, V[j+1])
			// modified Gram-Schmidt
			for i := 0; i <= j; i++ {
				H[i][j] = utils.DotProduct(V[j+1], V[i])
				utils.VecAxpy(-H[i][j], V[i], V[j+1])
			}
			H[j+1][j] = utils.L2Norm(V[j+1])
			if H[j+1][j] > 0 {
				utils.VecScale(1/H[j+1][j], V[j+1])
			}
			for i := 0; i < j; i++ {
				H[i][j], H[i+1][j] = cs[i]*H[i][j]+sn[i]*H[i+1][j],
					-sn[i]*H[i][j]+cs[i]*H[i+1][j]
			}
			cs[j], sn[j] = givens(H[j][j], H[j+1][j])
			H[j][j] = cs[j]*H[j][j] + sn[j]*H[j+1][j]
			H[j+1][j] = 0
			s[j], s[j+1] = cs[j]*s[j], -sn[j]*s[j]
			res := math.Abs(s[j+1])
			if g.Verbose {
				fmt.Printf("   GMRES iter %4d  ||r|| = %8.3e\n", iter, res)
			}
			if res <= tol {
				g.update(x, j, H, s, V)
				g.Converged = true
				g.FinalIters = iter
				g.FinalNorm = res
				return nil
			}
		}
		g.update(x, j-1, H, s, V)
		beta = precResidual(r)
		g.FinalNorm = beta
		if beta <= tol {
			g.Converged = true
			g.FinalIters = iter
			return nil
		}
	}
	g.FinalIters = iter
	return fmt.Errorf("GMRES: no convergence in %d iterations, ||r|| = %8.3e (target %8.3e)",
		g.MaxIter, g.FinalNorm, tol)
}

// update solves the triangular system H(0:k,0:k) y = s and adds V*y to x.
func (g *GMRES) update(x []float64, k int, H [][]float64, s []float64, V [][]float64) {
	y := make([]float64, k+1)
	copy(y, s[:k+1])
	for i := k; i >= 0; i-- {
		y[i] /= H[i][i]
		for p := 0; p < i; p++ {
			y[p] -= H[p][i] * y[i]
		}
	}
	for i := 0; i <= k; i++ {
		utils.VecAxpy(y[i], V[i], x)
	}
}

func givens(a, b float64) (c, s float64) {
	switch {
	case b == 0:
		c, s = 1, 0
	case math.Abs(b) > math.Abs(a):
		t := a / b
		s = 1 / math.Sqrt(1+t*t)
		c = t * s
	default:
		t := b / a
		c = 1 / math.Sqrt(1+t*t)
		s = t * c
	}
	return
}
