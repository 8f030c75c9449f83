package transport

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/notargets/gotransport/DG1D"
	"github.com/notargets/gotransport/solver"
	"github.com/notargets/gotransport/utils"
)

func testSpace(t *testing.T, K, N int) *DG1D.Elements1D {
	t.Helper()
	VX, EToV := DG1D.SimpleMesh1D(0, 1, K)
	return DG1D.NewElements1D(N, VX, EToV)
}

func uniformState(comb *CombinedOp, vals [NumFields]float64) (y []float64) {
	y = make([]float64, comb.Height())
	off := comb.Offsets()
	for i := 0; i < NumFields; i++ {
		for n := off[i]; n < off[i+1]; n++ {
			y[n] = vals[i]
		}
	}
	return
}

var physVals = [NumFields]float64{1e18, 1e18, 1e3, 5, 5}

func TestBlockOffsets(t *testing.T) {
	var (
		el   = testSpace(t, 3, 2)
		comb = NewCombinedOp(el, DefaultDGParams(2), DefaultPlasmaParams(),
			0b11111, [NumFields][]DirichletBC{})
		off = comb.Offsets()
	)
	assert.Equal(t, 0, off[0])
	for i := 0; i < NumFields; i++ {
		assert.Equal(t, comb.Op(i).Height(), off[i+1]-off[i])
	}
	assert.Equal(t, comb.Height(), off[NumFields])
	assert.Equal(t, NumFields*el.NumDOF(), comb.Height())
}

func TestDummyIdempotence(t *testing.T) {
	var (
		el   = testSpace(t, 2, 2)
		comb = NewCombinedOp(el, DefaultDGParams(2), DefaultPlasmaParams(),
			0, [NumFields][]DirichletBC{}) // every field disabled
		n = comb.Height()
		y = uniformState(comb, physVals)
		k = make([]float64, n)
		r = make([]float64, n)
	)
	for i := range k {
		k[i] = float64(i%7) - 3
	}
	comb.SetTimeStep(0.1)
	comb.SetState(y)
	comb.Mult(k, r)
	// each segment is exactly the mass-weighted rate
	var (
		M    = el.AssembleMass(nil)
		off  = comb.Offsets()
		want = make([]float64, el.NumDOF())
	)
	for i := 0; i < NumFields; i++ {
		utils.CSRMulVec(M, k[off[i]:off[i+1]], want)
		for n, wv := range want {
			assert.InDelta(t, wv, r[off[i]+n], 1.e-12)
		}
	}
	// an implicit step of a disabled field leaves it unchanged
	tdo := NewTransportTDO(comb)
	tdo.ImplicitSolve(0.1, y, k)
	assert.True(t, tdo.Newton.Converged)
	for i := range k {
		assert.InDelta(t, 0., k[i], 1.e-9)
	}
}

func TestJacobianDependencyTable(t *testing.T) {
	var (
		el   = testSpace(t, 2, 2)
		comb = NewCombinedOp(el, DefaultDGParams(2), DefaultPlasmaParams(),
			0b11111, [NumFields][]DirichletBC{})
		y = uniformState(comb, physVals)
		k = make([]float64, comb.Height())
	)
	want := [NumFields][NumFields]bool{
		{true, true, false, false, false}, // neutral density
		{true, true, false, false, false}, // ion density
		{false, true, true, true, true},   // ion momentum
		{false, true, false, true, false}, // ion temperature
		{false, true, false, false, true}, // electron temperature
	}
	comb.SetTimeStep(1.e-9)
	comb.SetState(y)
	s := SplitState(comb.Offsets(), y, k)
	for i := 0; i < NumFields; i++ {
		for j := 0; j < NumFields; j++ {
			assert.Equal(t, want[i][j], comb.Op(i).DependsOn(j), "deps(%d,%d)", i, j)
			blk := comb.Op(i).GradientBlock(s, j)
			assert.Equal(t, want[i][j], blk != nil, "block(%d,%d)", i, j)
		}
	}
	// the assembled block operator mirrors the table
	bop := comb.Gradient(k).(*solver.BlockOperator)
	for i := 0; i < NumFields; i++ {
		for j := 0; j < NumFields; j++ {
			assert.Equal(t, !want[i][j], bop.IsZeroBlock(i, j))
		}
	}
	// dummy rows couple only to themselves
	dummy := NewCombinedOp(el, DefaultDGParams(2), DefaultPlasmaParams(),
		0, [NumFields][]DirichletBC{})
	for i := 0; i < NumFields; i++ {
		for j := 0; j < NumFields; j++ {
			assert.Equal(t, i == j, dummy.Op(i).DependsOn(j))
		}
	}
}

func TestTimeStepRescaling(t *testing.T) {
	var (
		el = testSpace(t, 2, 2)
		op = NewDiffusionOp(el, 0, DefaultDGParams(2), 1, 1,
			[]DirichletBC{{Attrs: []int{-1}}})
		n = el.NumDOF()
		s = &BlockState{}
	)
	for i := 0; i < NumFields; i++ {
		s.Y[i] = make([]float64, n)
		s.K[i] = make([]float64, n)
	}
	blockAt := func(dt float64) [][]float64 {
		op.SetTimeStep(dt)
		B := op.GradientBlock(s, 0)
		out := make([][]float64, n)
		for i := range out {
			out[i] = make([]float64, n)
			for j := 0; j < n; j++ {
				out[i][j] = B.At(i, j)
			}
		}
		return out
	}
	var (
		B1  = blockAt(0.1)
		B1b = blockAt(0.1)
		B2  = blockAt(0.2)
		M   = el.AssembleMass(nil)
	)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			// repeated identical dt changes nothing
			assert.InDelta(t, B1[i][j], B1b[i][j], 1.e-14)
			// a new dt rescales exactly, never compounds
			assert.InDelta(t, B2[i][j]-M.At(i, j), 2*(B1[i][j]-M.At(i, j)), 1.e-12)
		}
	}
}

func TestImplicitSolveResidual(t *testing.T) {
	var (
		el   = testSpace(t, 2, 2)
		comb = NewCombinedOp(el, DefaultDGParams(2), DefaultPlasmaParams(),
			0b11111, [NumFields][]DirichletBC{})
		tdo = NewTransportTDO(comb)
		n   = comb.Height()
		y   = uniformState(comb, physVals)
		k   = make([]float64, n)
		r   = make([]float64, n)
		r0  = make([]float64, n)
	)
	dt := 1.e-9
	comb.SetTimeStep(dt)
	comb.SetState(y)
	comb.Mult(k, r0)
	norm0 := utils.L2Norm(r0)
	tdo.ImplicitSolve(dt, y, k)
	assert.True(t, tdo.Newton.Converged)
	comb.Mult(k, r)
	assert.Less(t, utils.L2Norm(r), 1.e-8*norm0)
}

// A single-field diffusion configuration with D=1, S=1, Dirichlet u=0 on the
// left face, stepped once with a large dt, reproduces the steady solution
// u = x - x^2/2 exactly for N=2: the interface value is 0.375.
func TestSteadyDiffusion(t *testing.T) {
	var (
		el  = testSpace(t, 2, 2)
		dg  = DefaultDGParams(2)
		ops [NumFields]FieldOperator
	)
	ops[0] = NewDiffusionOp(el, 0, dg, 1, 1,
		[]DirichletBC{{Attrs: []int{DG1D.BdrLeft}, Value: 0}})
	for i := 1; i < NumFields; i++ {
		ops[i] = NewDummyOp(el, i, dg, DefaultPlasmaParams())
	}
	var (
		comb = NewCombinedOpFromOps(el, ops)
		tdo  = NewTransportTDO(comb)
		n    = comb.Height()
		y    = make([]float64, n)
		k    = make([]float64, n)
		dt   = 1.e8
	)
	tdo.ImplicitSolve(dt, y, k)
	assert.True(t, tdo.Newton.Converged)
	assert.LessOrEqual(t, tdo.Newton.FinalIters, 10)
	utils.VecAxpy(dt, k, y)
	var (
		x   = el.NodalCoords()
		off = comb.Offsets()
	)
	for i := off[0]; i < off[1]; i++ {
		want := x[i] - 0.5*x[i]*x[i]
		assert.InDelta(t, want, y[i], 1.e-6)
	}
	// both interface DOFs sit at the midpoint
	assert.InDelta(t, 0.375, y[el.GlobalID(0, el.Np-1)], 1.e-6)
	assert.InDelta(t, 0.375, y[el.GlobalID(1, 0)], 1.e-6)
}

func TestCheckPhysicalState(t *testing.T) {
	var (
		el   = testSpace(t, 2, 1)
		comb = NewCombinedOp(el, DefaultDGParams(1), DefaultPlasmaParams(),
			0b11111, [NumFields][]DirichletBC{})
		y = uniformState(comb, physVals)
		k = make([]float64, comb.Height())
		s = SplitState(comb.Offsets(), y, k)
	)
	assert.True(t, CheckPhysicalState("check", s))
	s.Y[IonDensity][0] = -1
	assert.False(t, CheckPhysicalState("check", s))
}

func TestPrecondPassThrough(t *testing.T) {
	p := NewTransportPrec()
	// without a block operator the preconditioner is the identity
	r := []float64{1, 2, 3}
	z := make([]float64, 3)
	p.Mult(r, z)
	assert.Equal(t, r, z)
}

func TestDataSink(t *testing.T) {
	var (
		el   = testSpace(t, 2, 2)
		comb = NewCombinedOp(el, DefaultDGParams(2), DefaultPlasmaParams(),
			0b11111, [NumFields][]DirichletBC{})
		sink = NewDataSink()
		y    = uniformState(comb, physVals)
		k    = make([]float64, comb.Height())
	)
	comb.SetTimeStep(1.e-9)
	comb.RegisterDataFields(sink)
	assert.Contains(t, sink.Names(), "neutral_diffusivity")
	assert.Contains(t, sink.Names(), "ion_thermal_diffusivity")
	comb.PrepareDataFields(y, k, sink)
	d := sink.Field("neutral_diffusivity")
	for _, v := range d {
		assert.Greater(t, v, 0.)
	}
}
