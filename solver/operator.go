package solver

import (
	"github.com/james-bowman/sparse"

	"github.com/notargets/gotransport/utils"
)

// Operator is a square linear action y = A*x over flat state vectors.
type Operator interface {
	Height() int
	Mult(x, y []float64)
}

// NonlinOp is a nonlinear residual operator together with its gradient,
// linearized about the most recent Mult argument.
type NonlinOp interface {
	Height() int
	Mult(x, y []float64)
	Gradient(x []float64) Operator
}

// Preconditioner applies an approximate inverse z = M^{-1} r. SetOperator is
// called whenever the linearized operator changes.
type Preconditioner interface {
	SetOperator(op Operator)
	Mult(r, z []float64)
}

// IdentityPrec is the trivial preconditioner.
type IdentityPrec struct{}

func (p *IdentityPrec) SetOperator(op Operator) {}

func (p *IdentityPrec) Mult(r, z []float64) {
	copy(z, r)
}

// CSROperator adapts a CSR matrix to the Operator interface.
type CSROperator struct {
	A *sparse.CSR
}

func (c *CSROperator) Height() (h int) {
	h, _ = c.A.Dims()
	return
}

func (c *CSROperator) Mult(x, y []float64) {
	utils.CSRMulVec(c.A, x, y)
}
