package transport

import (
	"github.com/james-bowman/sparse"

	"github.com/notargets/gotransport/DG1D"
	"github.com/notargets/gotransport/utils"
)

// ElectronTemperatureOp: electron thermal balance posed in eV with
// quasi-neutral electron density n_e = z_i n_i,
//
//	1.5 z_i T_e0 dn_i/dt + 1.5 n_e0 dT_e/dt - Div(chi_e grad T_e) = 0
type ElectronTemperatureOp struct {
	opBase
}

func NewElectronTemperatureOp(el *DG1D.Elements1D, dg DGParams, plasma *PlasmaParams,
	bcs []DirichletBC) *ElectronTemperatureOp {
	op := &ElectronTemperatureOp{opBase: newOpBase(el, ElectronTemperature, dg, plasma)}
	op.bcs = bcs
	op.deps[IonDensity] = true
	op.deps[ElectronTemperature] = true
	return op
}

func (op *ElectronTemperatureOp) diffusivity(s *BlockState) []float64 {
	var (
		p   = op.plasma
		ni1 = s.Advanced(IonDensity, op.dt)
		te1 = s.Advanced(ElectronTemperature, op.dt)
		chi = make([]float64, op.Height())
	)
	for i := range chi {
		ne1 := p.ZI * ni1[i]
		para := ne1 * ElectronThermalDiffusivityPara(ne1, te1[i], p.ZI)
		perp := ne1 * p.XePerp
		chi[i] = AlignedScalar(p.B0, para, perp)
	}
	return chi
}

func (op *ElectronTemperatureOp) Mult(s *BlockState, r []float64) {
	var (
		p                     = op.plasma
		n                     = op.Height()
		marker, gLeft, gRight = op.bdrMarker()
		cT                    = make([]float64, n)
		cN                    = make([]float64, n)
	)
	for i := 0; i < n; i++ {
		cT[i] = 1.5 * p.ZI * s.Y[ElectronTemperature][i]
		cN[i] = 1.5 * p.ZI * s.Y[IonDensity][i]
	}
	utils.VecZero(r)
	op.multMassAdd(1, cT, s.K[IonDensity], r)
	op.multMassAdd(1, cN, s.K[ElectronTemperature], r)
	chi := op.diffusivity(s)
	A := op.el.AssembleDiffusion(chi, op.dg.Sigma, op.dg.Kappa, marker)
	utils.CSRMulVecAdd(1, A, s.Advanced(ElectronTemperature, op.dt), r)
	bdr := op.el.DiffusionBdrRHS(chi, op.dg.Sigma, op.dg.Kappa, marker, gLeft, gRight)
	for i := range r {
		r[i] -= bdr[i]
	}
}

func (op *ElectronTemperatureOp) GradientBlock(s *BlockState, j int) *sparse.CSR {
	if !op.deps[j] {
		return nil
	}
	var (
		p = op.plasma
		c = make([]float64, op.Height())
	)
	switch j {
	case IonDensity:
		for i := range c {
			c[i] = 1.5 * p.ZI * s.Y[ElectronTemperature][i]
		}
		return op.el.AssembleMass(c)
	case ElectronTemperature:
		for i := range c {
			c[i] = 1.5 * p.ZI * s.Y[IonDensity][i]
		}
		M := op.el.AssembleMass(c)
		marker, _, _ := op.bdrMarker()
		A := op.el.AssembleDiffusion(op.diffusivity(s), op.dg.Sigma, op.dg.Kappa, marker)
		return addScaled(M, op.dt, A)
	}
	return nil
}

func (op *ElectronTemperatureOp) RegisterDataFields(sink *DataSink) {
	sink.Register("electron_thermal_diffusivity", op.Height())
}

func (op *ElectronTemperatureOp) PrepareDataFields(s *BlockState, sink *DataSink) {
	sink.Set("electron_thermal_diffusivity", op.diffusivity(s))
}
