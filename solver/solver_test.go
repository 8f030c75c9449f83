package solver

import (
	"math"
	"testing"

	"github.com/james-bowman/sparse"
	"github.com/stretchr/testify/assert"

	"github.com/notargets/gotransport/utils"
)

func csrFromDense(n int, vals []float64) *sparse.CSR {
	dok := sparse.NewDOK(n, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if v := vals[i*n+j]; v != 0 {
				dok.Set(i, j, v)
			}
		}
	}
	return dok.ToCSR()
}

func TestGMRES(t *testing.T) {
	// diagonally dominant nonsymmetric system
	A := csrFromDense(3, []float64{
		4, 1, 0,
		-1, 5, 2,
		0, 1, 3,
	})
	b := []float64{5, 6, 4}
	g := NewGMRES()
	g.SetOperator(&CSROperator{A: A})
	x := make([]float64, 3)
	err := g.Solve(b, x)
	assert.NoError(t, err)
	assert.True(t, g.Converged)
	r := make([]float64, 3)
	utils.CSRMulVec(A, x, r)
	for i := range r {
		assert.InDelta(t, b[i], r[i], 1.e-8)
	}
	{ // restart path: force a tiny restart length
		g2 := NewGMRES()
		g2.Restart = 2
		g2.SetOperator(&CSROperator{A: A})
		x2 := make([]float64, 3)
		assert.NoError(t, g2.Solve(b, x2))
		for i := range x2 {
			assert.InDelta(t, x[i], x2[i], 1.e-8)
		}
	}
}

func TestCG(t *testing.T) {
	// SPD system with Jacobi preconditioning
	A := csrFromDense(3, []float64{
		4, 1, 0,
		1, 3, 1,
		0, 1, 2,
	})
	cg := NewCG()
	cg.Prec = &JacobiPrec{}
	cg.SetOperator(&CSROperator{A: A})
	b := []float64{1, 2, 3}
	x := make([]float64, 3)
	assert.NoError(t, cg.Solve(b, x))
	assert.True(t, cg.Converged)
	r := make([]float64, 3)
	utils.CSRMulVec(A, x, r)
	for i := range r {
		assert.InDelta(t, b[i], r[i], 1.e-9)
	}
}

type linResOp struct {
	a *sparse.CSR
	b []float64
}

func (l *linResOp) Height() int { return len(l.b) }

func (l *linResOp) Mult(x, r []float64) {
	utils.CSRMulVec(l.a, x, r)
	for i := range r {
		r[i] -= l.b[i]
	}
}

func (l *linResOp) Gradient(x []float64) Operator { return &CSROperator{A: l.a} }

func TestNewtonAppliesPartialKrylovStep(t *testing.T) {
	// Cap the inner GMRES at a single iteration so it never converges.
	// Newton must still apply the best-available correction each outer
	// iteration and drive the residual down within its own budget.
	A := csrFromDense(3, []float64{
		1, 0, 0,
		0, 2, 0,
		0, 0, 3,
	})
	op := &linResOp{a: A, b: []float64{1, 4, 9}}
	gm := NewGMRES()
	gm.MaxIter = 1
	nl := NewNewton(gm)
	nl.MaxIter = 50
	x := make([]float64, 3)
	assert.NoError(t, nl.Solve(op, x))
	assert.True(t, nl.Converged)
	assert.Greater(t, nl.FinalIters, 1)
	assert.InDelta(t, 1.0, x[0], 1.e-6)
	assert.InDelta(t, 2.0, x[1], 1.e-6)
	assert.InDelta(t, 3.0, x[2], 1.e-6)
}

type quadOp struct{}

func (q *quadOp) Height() int { return 2 }

// R(x) = [x0^2 - 2, x1^2 - 9]
func (q *quadOp) Mult(x, y []float64) {
	y[0] = x[0]*x[0] - 2
	y[1] = x[1]*x[1] - 9
}

func (q *quadOp) Gradient(x []float64) Operator {
	return &CSROperator{A: csrFromDense(2, []float64{
		2 * x[0], 0,
		0, 2 * x[1],
	})}
}

func TestNewton(t *testing.T) {
	nl := NewNewton(NewGMRES())
	nl.MaxIter = 20
	x := []float64{1, 1}
	err := nl.Solve(&quadOp{}, x)
	assert.NoError(t, err)
	assert.True(t, nl.Converged)
	assert.InDelta(t, math.Sqrt(2), x[0], 1.e-7)
	assert.InDelta(t, 3., x[1], 1.e-7)
}

func TestBlockOperator(t *testing.T) {
	offsets := utils.Index{0, 2, 4}
	bop := NewBlockOperator(offsets)
	assert.Equal(t, 2, bop.NumBlocks())
	assert.Equal(t, 4, bop.Height())
	A := csrFromDense(2, []float64{1, 2, 3, 4})
	B := csrFromDense(2, []float64{0, 1, 1, 0})
	bop.SetBlock(0, 0, A)
	bop.SetBlock(1, 1, B)
	assert.True(t, bop.IsZeroBlock(0, 1))
	assert.False(t, bop.IsZeroBlock(0, 0))
	x := []float64{1, 1, 2, 3}
	y := make([]float64, 4)
	bop.Mult(x, y)
	assert.Equal(t, []float64{3, 7, 3, 2}, y)
	// off-diagonal coupling
	bop.SetBlock(0, 1, csrFromDense(2, []float64{1, 0, 0, 1}))
	bop.Mult(x, y)
	assert.Equal(t, []float64{5, 10, 3, 2}, y)
	assert.Panics(t, func() { bop.SetBlock(1, 0, csrFromDense(3, make([]float64, 9))) })
}
