package transport

import (
	"fmt"

	"github.com/james-bowman/sparse"

	"github.com/notargets/gotransport/DG1D"
	"github.com/notargets/gotransport/amg"
	"github.com/notargets/gotransport/solver"
	"github.com/notargets/gotransport/utils"
)

// AdvDiffTDO is the single-field scalar advection-diffusion time-dependent
// operator, du/dt = Div(D grad u) - Div(v u) + S, usable either fully
// implicitly (ImplicitSolve) or as the explicit half of an IMEX split
// (ExplicitMult, mass solve by preconditioned CG).
type AdvDiffTDO struct {
	el *DG1D.Elements1D
	dg DGParams

	Diffusivity []float64 // nodal
	Velocity    []float64 // nodal
	Source      []float64 // nodal
	BCs         []DirichletBC

	mass    *sparse.CSR
	massCG  *solver.CG
	lin     *solver.GMRES
	logging int
	prefix  string
}

func NewAdvDiffTDO(el *DG1D.Elements1D, dg DGParams) *AdvDiffTDO {
	var (
		n  = el.NumDOF()
		cg = solver.NewCG()
		gm = solver.NewGMRES()
	)
	t := &AdvDiffTDO{
		el:          el,
		dg:          dg,
		Diffusivity: constField(n, 0),
		Velocity:    constField(n, 0),
		Source:      constField(n, 0),
		mass:        el.AssembleMass(nil),
	}
	cg.Prec = &solver.JacobiPrec{}
	cg.SetOperator(&solver.CSROperator{A: t.mass})
	gm.RelTol = 1.e-10
	t.massCG = cg
	t.lin = gm
	return t
}

func (t *AdvDiffTDO) SetLogging(level int, prefix string) {
	t.logging = level
	t.prefix = prefix
	t.lin.Verbose = level > 1
}

func (t *AdvDiffTDO) Height() int { return t.el.NumDOF() }

// spatial operator A = A_D + A_v and its Dirichlet right-hand side
func (t *AdvDiffTDO) operator() (*sparse.CSR, []float64) {
	var (
		marker [2]bool
		gLeft  float64
		gRight float64
	)
	for _, bc := range t.BCs {
		m := t.el.BdrMarker(bc.Attrs)
		if m[0] {
			marker[0] = true
			gLeft = bc.Value
		}
		if m[1] {
			marker[1] = true
			gRight = bc.Value
		}
	}
	A := t.el.AssembleDiffusion(t.Diffusivity, t.dg.Sigma, t.dg.Kappa, marker)
	Adv := t.el.AssembleWeakAdvection(t.Velocity, true)
	b := t.el.DiffusionBdrRHS(t.Diffusivity, t.dg.Sigma, t.dg.Kappa, marker, gLeft, gRight)
	src := t.el.SourceRHS(t.Source)
	for i := range b {
		b[i] += src[i]
	}
	return addScaled(A, 1, Adv), b
}

// ExplicitMult evaluates du/dt = M^{-1} (b - A u) for the explicit path of
// an IMEX step.
func (t *AdvDiffTDO) ExplicitMult(u, dudt []float64) error {
	A, b := t.operator()
	r := make([]float64, t.Height())
	utils.CSRMulVec(A, u, r)
	for i := range r {
		r[i] = b[i] - r[i]
	}
	utils.VecZero(dudt)
	return t.massCG.Solve(r, dudt)
}

// ImplicitSolve finds the rate k with (M + dt A) k = b - A u, from the
// backward Euler stage M (u1-u0)/dt + A u1 = b. The linear solve is
// preconditioned by a multigrid hierarchy built on the implicit operator.
func (t *AdvDiffTDO) ImplicitSolve(dt float64, u, du []float64) {
	A, b := t.operator()
	sys := addScaled(t.mass, dt, A)
	r := make([]float64, t.Height())
	utils.CSRMulVec(A, u, r)
	for i := range r {
		r[i] = b[i] - r[i]
	}
	m := amg.New(sys, amg.DefaultParameters())
	t.lin.Prec = &amgPrec{m: m}
	t.lin.SetOperator(&solver.CSROperator{A: sys})
	utils.VecZero(du)
	if err := t.lin.Solve(r, du); err != nil && t.logging > 0 {
		fmt.Printf("%s: %v\n", t.prefix, err)
	}
}

type amgPrec struct {
	m *amg.AMG
}

func (p *amgPrec) SetOperator(op solver.Operator) {}

func (p *amgPrec) Mult(r, z []float64) { p.m.Mult(r, z) }
