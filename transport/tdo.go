package transport

import (
	"fmt"

	"github.com/notargets/gotransport/solver"
	"github.com/notargets/gotransport/utils"
)

// TransportTDO is the top-level implicit-step driver: it owns the combined
// operator, the Newton solver and its preconditioned GMRES inner solve, and
// exposes the ImplicitSolve contract to an external time integrator.
type TransportTDO struct {
	Comb    *CombinedOp
	Newton  *solver.Newton
	Prec    *TransportPrec
	logging int
	prefix  string
}

func NewTransportTDO(comb *CombinedOp) *TransportTDO {
	var (
		prec = NewTransportPrec()
		gm   = solver.NewGMRES()
	)
	gm.RelTol = 1.e-10
	gm.MaxIter = 300
	gm.Restart = 30
	gm.Prec = prec
	nl := solver.NewNewton(gm)
	nl.RelTol = 1.e-8
	nl.MaxIter = 10
	return &TransportTDO{
		Comb:   comb,
		Newton: nl,
		Prec:   prec,
	}
}

func (t *TransportTDO) SetLogging(level int, prefix string) {
	t.logging = level
	t.prefix = prefix
	t.Newton.Verbose = level > 1
	t.Comb.SetLogging(level, prefix)
}

func (t *TransportTDO) Height() int { return t.Comb.Height() }

// ImplicitSolve finds the rate k with R(y + dt*k) = 0 for the supplied
// state, starting Newton from k = 0. Non-convergence is not fatal: the best
// iterate is left in k and the solver diagnostics (Converged, FinalIters,
// FinalNorm) record the outcome.
func (t *TransportTDO) ImplicitSolve(dt float64, y, k []float64) {
	t.Comb.SetTimeStep(dt)
	t.Comb.SetState(y)
	utils.VecZero(k)
	if err := t.Newton.Solve(t.Comb, k); err != nil && t.logging > 0 {
		fmt.Printf("%s: %v\n", t.prefix, err)
	}
}
