package transport

import (
	"github.com/james-bowman/sparse"

	"github.com/notargets/gotransport/DG1D"
	"github.com/notargets/gotransport/utils"
)

// IonDensityOp: ion continuity with anisotropic (perpendicular) diffusion,
// parallel advection by the ion drift, and the ionization/recombination
// source exchanged with the neutral equation,
//
//	dn_i/dt - Div(D_i grad n_i) + Div(n_i v_i b) - S_iz + S_rec = 0
type IonDensityOp struct {
	opBase
}

func NewIonDensityOp(el *DG1D.Elements1D, dg DGParams, plasma *PlasmaParams,
	bcs []DirichletBC) *IonDensityOp {
	op := &IonDensityOp{opBase: newOpBase(el, IonDensity, dg, plasma)}
	op.bcs = bcs
	op.deps[NeutralDensity] = true
	op.deps[IonDensity] = true
	return op
}

func (op *IonDensityOp) diffusivity() []float64 {
	// parallel transport is advective; only the anomalous perpendicular
	// channel diffuses
	d := AlignedScalar(op.plasma.B0, 0, op.plasma.DiPerp)
	return constField(op.Height(), d)
}

func (op *IonDensityOp) operators(s *BlockState) (A, Adv *sparse.CSR, bdr []float64) {
	var (
		marker, gLeft, gRight = op.bdrMarker()
		d                     = op.diffusivity()
		vi1                   = s.Advanced(IonMomentum, op.dt)
		vel                   = make([]float64, op.Height())
	)
	for i := range vel {
		vel[i] = op.plasma.B0 * vi1[i]
	}
	A = op.el.AssembleDiffusion(d, op.dg.Sigma, op.dg.Kappa, marker)
	Adv = op.el.AssembleWeakAdvection(vel, false)
	bdr = op.el.DiffusionBdrRHS(d, op.dg.Sigma, op.dg.Kappa, marker, gLeft, gRight)
	return
}

func (op *IonDensityOp) sources(s *BlockState) (nn1, ni1, sviz, svrec, ne1 []float64) {
	n := op.Height()
	nn1 = s.Advanced(NeutralDensity, op.dt)
	ni1 = s.Advanced(IonDensity, op.dt)
	te1 := s.Advanced(ElectronTemperature, op.dt)
	sviz = make([]float64, n)
	svrec = make([]float64, n)
	ne1 = make([]float64, n)
	for i := 0; i < n; i++ {
		ne1[i] = op.plasma.ZI * ni1[i]
		sviz[i] = IonizationRate(te1[i])
		svrec[i] = RecombinationRate(te1[i])
	}
	return
}

func (op *IonDensityOp) Mult(s *BlockState, r []float64) {
	utils.VecZero(r)
	op.multMassAdd(1, nil, s.K[IonDensity], r)
	A, Adv, bdr := op.operators(s)
	nn1, ni1, sviz, svrec, ne1 := op.sources(s)
	utils.CSRMulVecAdd(1, A, ni1, r)
	utils.CSRMulVecAdd(1, Adv, ni1, r)
	src := make([]float64, op.Height())
	for i := range src {
		src[i] = ne1[i] * (ni1[i]*svrec[i] - nn1[i]*sviz[i])
	}
	op.multMassAdd(1, nil, src, r)
	for i := range r {
		r[i] -= bdr[i]
	}
}

func (op *IonDensityOp) GradientBlock(s *BlockState, j int) *sparse.CSR {
	if !op.deps[j] {
		return nil
	}
	var (
		dt                         = op.dt
		nn1, ni1, sviz, svrec, ne1 = op.sources(s)
		c                          = make([]float64, op.Height())
	)
	switch j {
	case NeutralDensity:
		// -dS_iz/dn_n
		for i := range c {
			c[i] = -dt * ne1[i] * sviz[i]
		}
		return op.el.AssembleMass(c)
	case IonDensity:
		A, Adv, _ := op.operators(s)
		for i := range c {
			c[i] = dt * op.plasma.ZI * (2*ni1[i]*svrec[i] - nn1[i]*sviz[i])
		}
		M := op.el.AssembleMass(c)
		return addScaled(addScaled(addScaled(op.mass, dt, A), dt, Adv), 1, M)
	}
	return nil
}

func (op *IonDensityOp) RegisterDataFields(sink *DataSink) {
	sink.Register("ion_perp_diffusivity", op.Height())
}

func (op *IonDensityOp) PrepareDataFields(s *BlockState, sink *DataSink) {
	sink.Set("ion_perp_diffusivity", op.diffusivity())
}
