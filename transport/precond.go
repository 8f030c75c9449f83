package transport

import (
	"github.com/notargets/gotransport/amg"
	"github.com/notargets/gotransport/solver"
	"github.com/notargets/gotransport/utils"
)

// TransportPrec is the block-diagonal preconditioner for the Newton linear
// solves: one algebraic multigrid hierarchy per non-null diagonal Jacobian
// block, off-diagonal coupling ignored. Rebuilt whenever SetOperator sees a
// new block operator.
type TransportPrec struct {
	Params  amg.Parameters
	offsets utils.Index
	diag    []*amg.AMG
}

func NewTransportPrec() *TransportPrec {
	return &TransportPrec{Params: amg.DefaultParameters()}
}

// SetOperator rebuilds the per-block hierarchies. A non-block operator
// leaves the preconditioner untouched, which is a caller error.
func (p *TransportPrec) SetOperator(op solver.Operator) {
	bop, ok := op.(*solver.BlockOperator)
	if !ok {
		return
	}
	p.offsets = bop.RowOffsets()
	p.diag = make([]*amg.AMG, bop.NumBlocks())
	for i := range p.diag {
		if A := bop.Block(i, i); A != nil {
			p.diag[i] = amg.New(A, p.Params)
		}
	}
}

// Mult applies one V-cycle per diagonal block; a missing block passes its
// segment through unchanged.
func (p *TransportPrec) Mult(r, z []float64) {
	if p.diag == nil {
		copy(z, r)
		return
	}
	for i, m := range p.diag {
		var (
			ri = r[p.offsets[i]:p.offsets[i+1]]
			zi = z[p.offsets[i]:p.offsets[i+1]]
		)
		if m == nil {
			copy(zi, ri)
			continue
		}
		m.Mult(ri, zi)
	}
}
