package transport

import (
	"github.com/james-bowman/sparse"

	"github.com/notargets/gotransport/DG1D"
	"github.com/notargets/gotransport/utils"
)

// DummyOp stands in for an administratively disabled field. Its residual is
// the bare mass term M*k_i, so an implicit step leaves the field unchanged,
// and it reports no cross-field dependencies.
type DummyOp struct {
	opBase
}

func NewDummyOp(el *DG1D.Elements1D, index int, dg DGParams, plasma *PlasmaParams) *DummyOp {
	op := &DummyOp{opBase: newOpBase(el, index, dg, plasma)}
	op.deps[index] = true
	return op
}

func (op *DummyOp) Mult(s *BlockState, r []float64) {
	utils.VecZero(r)
	op.multMassAdd(1, nil, s.K[op.index], r)
}

func (op *DummyOp) GradientBlock(s *BlockState, j int) *sparse.CSR {
	if j != op.index {
		return nil
	}
	return op.mass
}
