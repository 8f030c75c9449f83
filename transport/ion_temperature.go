package transport

import (
	"github.com/james-bowman/sparse"

	"github.com/notargets/gotransport/DG1D"
	"github.com/notargets/gotransport/utils"
)

// IonTemperatureOp: ion thermal balance posed in eV,
//
//	1.5 T_i0 dn_i/dt + 1.5 n_i0 dT_i/dt - Div(chi_i grad T_i) = 0
//
// with the field-aligned thermal diffusivity chi_i combining the parallel
// Braginskii fit with the anomalous perpendicular channel, both density
// weighted.
type IonTemperatureOp struct {
	opBase
}

func NewIonTemperatureOp(el *DG1D.Elements1D, dg DGParams, plasma *PlasmaParams,
	bcs []DirichletBC) *IonTemperatureOp {
	op := &IonTemperatureOp{opBase: newOpBase(el, IonTemperature, dg, plasma)}
	op.bcs = bcs
	op.deps[IonDensity] = true
	op.deps[IonTemperature] = true
	return op
}

func (op *IonTemperatureOp) diffusivity(s *BlockState) []float64 {
	var (
		p   = op.plasma
		ni1 = s.Advanced(IonDensity, op.dt)
		ti1 = s.Advanced(IonTemperature, op.dt)
		chi = make([]float64, op.Height())
	)
	for i := range chi {
		para := ni1[i] * IonThermalDiffusivityPara(ni1[i], ti1[i], p.MI, p.ZI)
		perp := ni1[i] * p.XiPerp
		chi[i] = AlignedScalar(p.B0, para, perp)
	}
	return chi
}

func (op *IonTemperatureOp) Mult(s *BlockState, r []float64) {
	var (
		n                     = op.Height()
		marker, gLeft, gRight = op.bdrMarker()
		cT                    = make([]float64, n)
		cN                    = make([]float64, n)
	)
	for i := 0; i < n; i++ {
		cT[i] = 1.5 * s.Y[IonTemperature][i]
		cN[i] = 1.5 * s.Y[IonDensity][i]
	}
	utils.VecZero(r)
	op.multMassAdd(1, cT, s.K[IonDensity], r)
	op.multMassAdd(1, cN, s.K[IonTemperature], r)
	chi := op.diffusivity(s)
	A := op.el.AssembleDiffusion(chi, op.dg.Sigma, op.dg.Kappa, marker)
	utils.CSRMulVecAdd(1, A, s.Advanced(IonTemperature, op.dt), r)
	bdr := op.el.DiffusionBdrRHS(chi, op.dg.Sigma, op.dg.Kappa, marker, gLeft, gRight)
	for i := range r {
		r[i] -= bdr[i]
	}
}

func (op *IonTemperatureOp) GradientBlock(s *BlockState, j int) *sparse.CSR {
	if !op.deps[j] {
		return nil
	}
	c := make([]float64, op.Height())
	switch j {
	case IonDensity:
		for i := range c {
			c[i] = 1.5 * s.Y[IonTemperature][i]
		}
		return op.el.AssembleMass(c)
	case IonTemperature:
		for i := range c {
			c[i] = 1.5 * s.Y[IonDensity][i]
		}
		M := op.el.AssembleMass(c)
		marker, _, _ := op.bdrMarker()
		A := op.el.AssembleDiffusion(op.diffusivity(s), op.dg.Sigma, op.dg.Kappa, marker)
		return addScaled(M, op.dt, A)
	}
	return nil
}

func (op *IonTemperatureOp) RegisterDataFields(sink *DataSink) {
	sink.Register("ion_thermal_diffusivity", op.Height())
}

func (op *IonTemperatureOp) PrepareDataFields(s *BlockState, sink *DataSink) {
	sink.Set("ion_thermal_diffusivity", op.diffusivity(s))
}
