package transport

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/notargets/gotransport/DG1D"
	"github.com/notargets/gotransport/ode"
)

func TestAdvDiffExplicit(t *testing.T) {
	var (
		el = testSpace(t, 3, 2)
		td = NewAdvDiffTDO(el, DefaultDGParams(2))
		n  = el.NumDOF()
		u  = constField(n, 2)
		du = make([]float64, n)
	)
	td.Diffusivity = constField(n, 1)
	// a uniform field with no marked boundary is steady
	assert.NoError(t, td.ExplicitMult(u, du))
	for i := range du {
		assert.InDelta(t, 0., du[i], 1.e-9)
	}
	// with a source, du/dt = S pointwise
	td.Source = constField(n, 3)
	assert.NoError(t, td.ExplicitMult(u, du))
	for i := range du {
		assert.InDelta(t, 3., du[i], 1.e-8)
	}
}

func TestAdvDiffImplicitSteady(t *testing.T) {
	var (
		el = testSpace(t, 2, 2)
		td = NewAdvDiffTDO(el, DefaultDGParams(2))
		n  = el.NumDOF()
		u  = make([]float64, n)
	)
	td.Diffusivity = constField(n, 1)
	td.Source = constField(n, 1)
	td.BCs = []DirichletBC{{Attrs: []int{DG1D.BdrLeft}, Value: 0}}
	stepper := ode.NewBackwardEuler(td)
	stepper.Step(1.e8, u)
	x := el.NodalCoords()
	for i, xi := range x {
		assert.InDelta(t, xi-0.5*xi*xi, u[i], 1.e-6)
	}
}

func TestAdvDiffAdvection(t *testing.T) {
	// pure advection of a linear profile: du/dt = -v du/dx
	var (
		el = testSpace(t, 4, 3)
		td = NewAdvDiffTDO(el, DefaultDGParams(3))
		n  = el.NumDOF()
		u  = make([]float64, n)
		du = make([]float64, n)
	)
	td.Velocity = constField(n, 2)
	x := el.NodalCoords()
	for i, xi := range x {
		u[i] = xi
	}
	assert.NoError(t, td.ExplicitMult(u, du))
	// the upwind fluxes are exact for the linear profile, so every node
	// sees exactly -v
	for i := range du {
		assert.InDelta(t, -2., du[i], 1.e-8)
	}
}
