package ode

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// decayOp is dy/dt = -lambda y, with the exact implicit stage rate
// k = -lambda y / (1 + dt lambda).
type decayOp struct {
	lambda float64
}

func (d *decayOp) Height() int { return 1 }

func (d *decayOp) ImplicitSolve(dt float64, y, k []float64) {
	k[0] = -d.lambda * y[0] / (1 + dt*d.lambda)
}

func (d *decayOp) ExplicitMult(y, dydt []float64) error {
	dydt[0] = -d.lambda * y[0]
	return nil
}

func stepError(step func(dt float64, y []float64), dt float64, lambda, tEnd float64) float64 {
	y := []float64{1}
	n := int(tEnd/dt + 0.5)
	for i := 0; i < n; i++ {
		step(dt, y)
	}
	return math.Abs(y[0] - math.Exp(-lambda*tEnd))
}

func TestBackwardEulerOrder(t *testing.T) {
	op := &decayOp{lambda: 2}
	s := NewBackwardEuler(op)
	e1 := stepError(s.Step, 0.1, 2, 1)
	e2 := stepError(s.Step, 0.05, 2, 1)
	rate := math.Log2(e1 / e2)
	assert.InDelta(t, 1.0, rate, 0.15)
}

func TestSDIRK2Order(t *testing.T) {
	op := &decayOp{lambda: 2}
	s := NewSDIRK2(op)
	e1 := stepError(s.Step, 0.1, 2, 1)
	e2 := stepError(s.Step, 0.05, 2, 1)
	rate := math.Log2(e1 / e2)
	assert.InDelta(t, 2.0, rate, 0.25)
}

func TestRK4Accuracy(t *testing.T) {
	op := &decayOp{lambda: 2}
	s := NewRK4(op)
	y := []float64{1}
	dt := 0.1
	for i := 0; i < 10; i++ {
		assert.NoError(t, s.Step(dt, y))
	}
	assert.InDelta(t, math.Exp(-2), y[0], 1.e-5)
}
