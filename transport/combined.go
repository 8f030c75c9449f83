package transport

import (
	"fmt"

	"github.com/notargets/gotransport/DG1D"
	"github.com/notargets/gotransport/solver"
	"github.com/notargets/gotransport/utils"
)

// CombinedOp aggregates the five field operators into one block nonlinear
// operator over the concatenated rate vector, satisfying the residual
// contract of the Newton solver. The current state vector is installed with
// SetState before a solve; each evaluation builds a fresh BlockState
// context from it and the supplied rate vector.
type CombinedOp struct {
	el      *DG1D.Elements1D
	ops     [NumFields]FieldOperator
	offsets utils.Index
	dt      float64
	state   []float64
	logging int
}

// NewCombinedOp builds the operator set from an enable bitmask: bit i set
// means field i uses its physics operator, clear means the DummyOp. The bcs
// slice supplies each field's Dirichlet list (nil entries allowed).
func NewCombinedOp(el *DG1D.Elements1D, dg DGParams, plasma *PlasmaParams,
	enableMask int, bcs [NumFields][]DirichletBC) *CombinedOp {
	var ops [NumFields]FieldOperator
	for i := 0; i < NumFields; i++ {
		if enableMask&(1<<uint(i)) == 0 {
			ops[i] = NewDummyOp(el, i, dg, plasma)
			continue
		}
		switch i {
		case NeutralDensity:
			ops[i] = NewNeutralDensityOp(el, dg, plasma, bcs[i])
		case IonDensity:
			ops[i] = NewIonDensityOp(el, dg, plasma, bcs[i])
		case IonMomentum:
			ops[i] = NewIonMomentumOp(el, dg, plasma, bcs[i])
		case IonTemperature:
			ops[i] = NewIonTemperatureOp(el, dg, plasma, bcs[i])
		case ElectronTemperature:
			ops[i] = NewElectronTemperatureOp(el, dg, plasma, bcs[i])
		}
	}
	return NewCombinedOpFromOps(el, ops)
}

// NewCombinedOpFromOps assembles an explicit operator set, for verification
// configurations that substitute their own operators.
func NewCombinedOpFromOps(el *DG1D.Elements1D, ops [NumFields]FieldOperator) *CombinedOp {
	c := &CombinedOp{el: el, ops: ops}
	c.updateOffsets()
	return c
}

func (c *CombinedOp) updateOffsets() {
	heights := make(utils.Index, NumFields+1)
	for i, op := range c.ops {
		heights[i+1] = op.Height()
	}
	c.offsets = heights.PartialSum()
}

func (c *CombinedOp) Op(i int) FieldOperator { return c.ops[i] }
func (c *CombinedOp) Offsets() utils.Index   { return c.offsets }
func (c *CombinedOp) Height() int            { return c.offsets[NumFields] }

func (c *CombinedOp) SetTimeStep(dt float64) {
	c.dt = dt
	for _, op := range c.ops {
		op.SetTimeStep(dt)
	}
}

func (c *CombinedOp) SetLogging(level int, prefix string) {
	c.logging = level
	for i, op := range c.ops {
		op.SetLogging(level, fmt.Sprintf("%s[%s]", prefix, fieldNames[i]))
	}
}

// SetState installs the state vector y the residual is linearized about.
// The slice is borrowed, not copied.
func (c *CombinedOp) SetState(y []float64) {
	if len(y) != c.Height() {
		panic(fmt.Errorf("combined operator height %d, state length %d", c.Height(), len(y)))
	}
	c.state = y
}

// Update recomputes the block offsets after a topology change.
func (c *CombinedOp) Update() {
	for _, op := range c.ops {
		op.Update()
	}
	c.updateOffsets()
}

// Mult evaluates the full residual R(y + dt*k) into r, fields in fixed
// index order.
func (c *CombinedOp) Mult(k, r []float64) {
	s := SplitState(c.offsets, c.state, k)
	for i, op := range c.ops {
		op.Mult(s, r[c.offsets[i]:c.offsets[i+1]])
	}
}

// Gradient assembles the 5x5 block Jacobian about the supplied rate vector.
// A fresh block operator is built on every call; only blocks the field
// operators declare are populated.
func (c *CombinedOp) Gradient(k []float64) solver.Operator {
	var (
		s   = SplitState(c.offsets, c.state, k)
		bop = solver.NewBlockOperator(c.offsets)
	)
	for i, op := range c.ops {
		for j := 0; j < NumFields; j++ {
			if blk := op.GradientBlock(s, j); blk != nil {
				bop.SetBlock(i, j, blk)
			}
		}
	}
	return bop
}

func (c *CombinedOp) RegisterDataFields(sink *DataSink) {
	for _, op := range c.ops {
		op.RegisterDataFields(sink)
	}
}

func (c *CombinedOp) PrepareDataFields(y, k []float64, sink *DataSink) {
	s := SplitState(c.offsets, y, k)
	for _, op := range c.ops {
		op.PrepareDataFields(s, sink)
	}
}
