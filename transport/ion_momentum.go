package transport

import (
	"github.com/james-bowman/sparse"

	"github.com/notargets/gotransport/DG1D"
	"github.com/notargets/gotransport/utils"
)

// IonMomentumOp: parallel momentum balance,
//
//	m_i d(n_i v_i)/dt - Div(eta grad v_i) + Div(m_i n_i v_i v_i b)
//	  + b . grad(n_i T_i + z_i n_i T_e) eV = 0
//
// The time-derivative splits by the product rule into mass terms weighted
// by the current-state fields, m_i v_i0 * dn_i/dt + m_i n_i0 * dv_i/dt, so
// this residual carries mass contributions against both k_1 and k_2.
// Momentum advection keeps its boundary trace terms (outflow).
type IonMomentumOp struct {
	opBase
}

func NewIonMomentumOp(el *DG1D.Elements1D, dg DGParams, plasma *PlasmaParams,
	bcs []DirichletBC) *IonMomentumOp {
	op := &IonMomentumOp{opBase: newOpBase(el, IonMomentum, dg, plasma)}
	op.bcs = bcs
	op.deps[IonDensity] = true
	op.deps[IonMomentum] = true
	op.deps[IonTemperature] = true
	op.deps[ElectronTemperature] = true
	return op
}

func (op *IonMomentumOp) viscosity(s *BlockState) []float64 {
	var (
		p   = op.plasma
		ni1 = s.Advanced(IonDensity, op.dt)
		ti1 = s.Advanced(IonTemperature, op.dt)
		eta = make([]float64, op.Height())
	)
	for i := range eta {
		para := p.MI * AMU * ni1[i] * IonViscosityPara(ni1[i], ti1[i], p.MI, p.ZI)
		perp := p.MI * AMU * ni1[i] * p.EtaPerp
		eta[i] = AlignedScalar(p.B0, para, perp)
	}
	return eta
}

func (op *IonMomentumOp) advection(s *BlockState) *sparse.CSR {
	var (
		p   = op.plasma
		ni1 = s.Advanced(IonDensity, op.dt)
		vi1 = s.Advanced(IonMomentum, op.dt)
		vel = make([]float64, op.Height())
	)
	for i := range vel {
		vel[i] = p.MI * AMU * ni1[i] * vi1[i] * p.B0
	}
	return op.el.AssembleWeakAdvection(vel, true)
}

// gradPressure is the nodal field b . grad(n_i T_i + z_i n_i T_e) eV.
func (op *IonMomentumOp) gradPressure(s *BlockState) []float64 {
	var (
		p   = op.plasma
		n   = op.Height()
		ni1 = s.Advanced(IonDensity, op.dt)
		ti1 = s.Advanced(IonTemperature, op.dt)
		te1 = s.Advanced(ElectronTemperature, op.dt)
		pr  = make([]float64, n)
		dp  = make([]float64, n)
	)
	for i := 0; i < n; i++ {
		pr[i] = EV * ni1[i] * (ti1[i] + p.ZI*te1[i])
	}
	op.el.NodalDerivative(pr, dp)
	utils.VecScale(p.B0, dp)
	return dp
}

func (op *IonMomentumOp) Mult(s *BlockState, r []float64) {
	var (
		p                     = op.plasma
		marker, gLeft, gRight = op.bdrMarker()
		ni0                   = make([]float64, op.Height())
		vi0                   = make([]float64, op.Height())
	)
	for i := range ni0 {
		ni0[i] = p.MI * AMU * s.Y[IonDensity][i]
		vi0[i] = p.MI * AMU * s.Y[IonMomentum][i]
	}
	utils.VecZero(r)
	op.multMassAdd(1, vi0, s.K[IonDensity], r)
	op.multMassAdd(1, ni0, s.K[IonMomentum], r)
	eta := op.viscosity(s)
	A := op.el.AssembleDiffusion(eta, op.dg.Sigma, op.dg.Kappa, marker)
	vi1 := s.Advanced(IonMomentum, op.dt)
	utils.CSRMulVecAdd(1, A, vi1, r)
	utils.CSRMulVecAdd(1, op.advection(s), vi1, r)
	op.multMassAdd(1, nil, op.gradPressure(s), r)
	bdr := op.el.DiffusionBdrRHS(eta, op.dg.Sigma, op.dg.Kappa, marker, gLeft, gRight)
	for i := range r {
		r[i] -= bdr[i]
	}
}

func (op *IonMomentumOp) GradientBlock(s *BlockState, j int) *sparse.CSR {
	if !op.deps[j] {
		return nil
	}
	var (
		p   = op.plasma
		dt  = op.dt
		n   = op.Height()
		ni1 = s.Advanced(IonDensity, op.dt)
		c   = make([]float64, n)
	)
	switch j {
	case IonDensity:
		// mass term against k_1 plus the pressure-gradient density block
		for i := range c {
			c[i] = p.MI * AMU * s.Y[IonMomentum][i]
		}
		M := op.el.AssembleMass(c)
		ti1 := s.Advanced(IonTemperature, op.dt)
		te1 := s.Advanced(ElectronTemperature, op.dt)
		for i := range c {
			c[i] = dt * p.B0 * EV * (ti1[i] + p.ZI*te1[i])
		}
		return addScaled(M, 1, op.el.AssembleMassGrad(c))
	case IonMomentum:
		for i := range c {
			c[i] = p.MI * AMU * s.Y[IonDensity][i]
		}
		M := op.el.AssembleMass(c)
		marker, _, _ := op.bdrMarker()
		A := op.el.AssembleDiffusion(op.viscosity(s), op.dg.Sigma, op.dg.Kappa, marker)
		return addScaled(addScaled(M, dt, A), dt, op.advection(s))
	case IonTemperature:
		for i := range c {
			c[i] = dt * p.B0 * EV * ni1[i]
		}
		return op.el.AssembleMassGrad(c)
	case ElectronTemperature:
		for i := range c {
			c[i] = dt * p.B0 * EV * p.ZI * ni1[i]
		}
		return op.el.AssembleMassGrad(c)
	}
	return nil
}

func (op *IonMomentumOp) RegisterDataFields(sink *DataSink) {
	sink.Register("ion_viscosity", op.Height())
}

func (op *IonMomentumOp) PrepareDataFields(s *BlockState, sink *DataSink) {
	sink.Set("ion_viscosity", op.viscosity(s))
}
