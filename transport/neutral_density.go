package transport

import (
	"github.com/james-bowman/sparse"

	"github.com/notargets/gotransport/DG1D"
	"github.com/notargets/gotransport/utils"
)

// NeutralDensityOp: continuity equation for the neutral species,
//
//	dn_n/dt - Div(D_n grad n_n) + S_iz - S_rec = 0
//
// with the isotropic neutral diffusivity D_n = v_n^2 / (3 n_e <sv>_iz)
// evaluated at the advanced state. Ionization consumes neutrals,
// recombination replenishes them.
type NeutralDensityOp struct {
	opBase
	vn float64 // neutral thermal speed, fixed by TN/MN
}

func NewNeutralDensityOp(el *DG1D.Elements1D, dg DGParams, plasma *PlasmaParams,
	bcs []DirichletBC) *NeutralDensityOp {
	op := &NeutralDensityOp{
		opBase: newOpBase(el, NeutralDensity, dg, plasma),
		vn:     NeutralThermalSpeed(plasma.TN, plasma.MN),
	}
	op.bcs = bcs
	op.deps[NeutralDensity] = true
	op.deps[IonDensity] = true
	return op
}

// advanced nodal fields and coefficient fields used by both the residual
// and the Jacobian blocks
func (op *NeutralDensityOp) coefFields(s *BlockState) (nn1, dn, sviz, svrec, ne1 []float64) {
	var (
		n   = op.Height()
		ni1 = s.Advanced(IonDensity, op.dt)
		te1 = s.Advanced(ElectronTemperature, op.dt)
	)
	nn1 = s.Advanced(NeutralDensity, op.dt)
	dn = make([]float64, n)
	sviz = make([]float64, n)
	svrec = make([]float64, n)
	ne1 = make([]float64, n)
	for i := 0; i < n; i++ {
		ne1[i] = op.plasma.ZI * ni1[i]
		sviz[i] = IonizationRate(te1[i])
		svrec[i] = RecombinationRate(te1[i])
		dn[i] = NeutralDiffusivity(op.vn, ne1[i], te1[i])
	}
	return
}

func (op *NeutralDensityOp) Mult(s *BlockState, r []float64) {
	utils.VecZero(r)
	op.multMassAdd(1, nil, s.K[NeutralDensity], r)
	nn1, dn, sviz, svrec, ne1 := op.coefFields(s)
	marker, gLeft, gRight := op.bdrMarker()
	A := op.el.AssembleDiffusion(dn, op.dg.Sigma, op.dg.Kappa, marker)
	utils.CSRMulVecAdd(1, A, nn1, r)
	bdr := op.el.DiffusionBdrRHS(dn, op.dg.Sigma, op.dg.Kappa, marker, gLeft, gRight)
	// S_iz = n_e n_n <sv>_iz, S_rec = n_e n_i <sv>_rec
	src := make([]float64, op.Height())
	ni1 := s.Advanced(IonDensity, op.dt)
	for i := range src {
		src[i] = ne1[i] * (nn1[i]*sviz[i] - ni1[i]*svrec[i])
	}
	op.multMassAdd(1, nil, src, r)
	for i := range r {
		r[i] -= bdr[i]
	}
}

func (op *NeutralDensityOp) GradientBlock(s *BlockState, j int) *sparse.CSR {
	if !op.deps[j] {
		return nil
	}
	var (
		dt                        = op.dt
		nn1, dn, sviz, svrec, ne1 = op.coefFields(s)
		ni1                       = s.Advanced(IonDensity, op.dt)
		c                         = make([]float64, op.Height())
	)
	switch j {
	case NeutralDensity:
		marker, _, _ := op.bdrMarker()
		A := op.el.AssembleDiffusion(dn, op.dg.Sigma, op.dg.Kappa, marker)
		// dS_iz/dn_n = n_e <sv>_iz
		for i := range c {
			c[i] = dt * ne1[i] * sviz[i]
		}
		M := op.el.AssembleMass(c)
		return addScaled(addScaled(op.mass, dt, A), 1, M)
	case IonDensity:
		// dS_iz/dn_i - dS_rec/dn_i, holding D_n frozen
		for i := range c {
			c[i] = dt * op.plasma.ZI * (nn1[i]*sviz[i] - 2*ni1[i]*svrec[i])
		}
		return op.el.AssembleMass(c)
	}
	return nil
}

func (op *NeutralDensityOp) RegisterDataFields(sink *DataSink) {
	sink.Register("neutral_diffusivity", op.Height())
	sink.Register("ionization_source", op.Height())
}

func (op *NeutralDensityOp) PrepareDataFields(s *BlockState, sink *DataSink) {
	nn1, dn, sviz, _, ne1 := op.coefFields(s)
	sink.Set("neutral_diffusivity", dn)
	src := make([]float64, op.Height())
	for i := range src {
		src[i] = ne1[i] * nn1[i] * sviz[i]
	}
	sink.Set("ionization_source", src)
}
