package ode

import (
	"math"

	"github.com/notargets/gotransport/utils"
)

// ImplicitOperator is the contract a stepper drives: solve R(y + dt*k) = 0
// for the rate k at the supplied state.
type ImplicitOperator interface {
	Height() int
	ImplicitSolve(dt float64, y, k []float64)
}

// ExplicitOperator evaluates dy/dt = f(y) for explicit stepping.
type ExplicitOperator interface {
	Height() int
	ExplicitMult(y, dydt []float64) error
}

// BackwardEuler advances y by a single implicit Euler stage per step.
type BackwardEuler struct {
	Op ImplicitOperator
	k  []float64
}

func NewBackwardEuler(op ImplicitOperator) *BackwardEuler {
	return &BackwardEuler{Op: op, k: make([]float64, op.Height())}
}

func (s *BackwardEuler) Step(dt float64, y []float64) {
	s.Op.ImplicitSolve(dt, y, s.k)
	utils.VecAxpy(dt, s.k, y)
}

// SDIRK2 is the two-stage, second-order, L-stable singly diagonally
// implicit scheme with gamma = 1 - 1/sqrt(2).
type SDIRK2 struct {
	Op     ImplicitOperator
	k1, k2 []float64
	y1     []float64
}

func NewSDIRK2(op ImplicitOperator) *SDIRK2 {
	n := op.Height()
	return &SDIRK2{
		Op: op,
		k1: make([]float64, n),
		k2: make([]float64, n),
		y1: make([]float64, n),
	}
}

func (s *SDIRK2) Step(dt float64, y []float64) {
	gamma := 1 - 1/math.Sqrt2
	s.Op.ImplicitSolve(gamma*dt, y, s.k1)
	copy(s.y1, y)
	utils.VecAxpy((1-gamma)*dt, s.k1, s.y1)
	s.Op.ImplicitSolve(gamma*dt, s.y1, s.k2)
	utils.VecAxpy((1-gamma)*dt, s.k1, y)
	utils.VecAxpy(gamma*dt, s.k2, y)
}

// RK4 is the classical explicit fourth-order scheme, used for the explicit
// half of an IMEX split.
type RK4 struct {
	Op             ExplicitOperator
	k1, k2, k3, k4 []float64
	w              []float64
}

func NewRK4(op ExplicitOperator) *RK4 {
	n := op.Height()
	return &RK4{
		Op: op,
		k1: make([]float64, n),
		k2: make([]float64, n),
		k3: make([]float64, n),
		k4: make([]float64, n),
		w:  make([]float64, n),
	}
}

func (s *RK4) Step(dt float64, y []float64) error {
	stage := func(k []float64, a float64, kPrev []float64) error {
		copy(s.w, y)
		if kPrev != nil {
			utils.VecAxpy(a*dt, kPrev, s.w)
		}
		return s.Op.ExplicitMult(s.w, k)
	}
	if err := stage(s.k1, 0, nil); err != nil {
		return err
	}
	if err := stage(s.k2, 0.5, s.k1); err != nil {
		return err
	}
	if err := stage(s.k3, 0.5, s.k2); err != nil {
		return err
	}
	if err := stage(s.k4, 1, s.k3); err != nil {
		return err
	}
	for i := range y {
		y[i] += dt / 6 * (s.k1[i] + 2*s.k2[i] + 2*s.k3[i] + s.k4[i])
	}
	return nil
}
