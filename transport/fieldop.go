package transport

import (
	"github.com/james-bowman/sparse"

	"github.com/notargets/gotransport/DG1D"
)

// FieldOperator is one physical field's semi-discrete residual contribution
// R_i(y + dt*k) and its linearization. The set of implementations is closed:
// the five physics operators plus DummyOp, all embedding opBase.
type FieldOperator interface {
	Index() int
	Name() string
	Height() int
	SetTimeStep(dt float64)
	SetLogging(level int, prefix string)
	// Mult evaluates this field's residual segment into r, reading any
	// field's state and rate from s.
	Mult(s *BlockState, r []float64)
	// GradientBlock returns dR_i/dk_j, or nil when the residual does not
	// depend on field j. Callers treat nil as zero.
	GradientBlock(s *BlockState, j int) *sparse.CSR
	DependsOn(j int) bool
	// Update rebuilds topology-dependent data after a mesh change.
	Update()
	RegisterDataFields(sink *DataSink)
	PrepareDataFields(s *BlockState, sink *DataSink)
}

// opBase carries the state shared by every field operator: the element
// space, the parameter sets, the centrally-pushed time step and the
// dependency mask.
type opBase struct {
	el      *DG1D.Elements1D
	index   int
	name    string
	dg      DGParams
	plasma  *PlasmaParams
	dt      float64
	deps    [NumFields]bool
	logging int
	prefix  string
	bcs     []DirichletBC
	mass    *sparse.CSR // unit-coefficient mass operator, rebuilt on Update
}

func newOpBase(el *DG1D.Elements1D, index int, dg DGParams, plasma *PlasmaParams) opBase {
	return opBase{
		el:     el,
		index:  index,
		name:   fieldNames[index],
		dg:     dg,
		plasma: plasma,
		mass:   el.AssembleMass(nil),
	}
}

func (o *opBase) Index() int   { return o.index }
func (o *opBase) Name() string { return o.name }
func (o *opBase) Height() int  { return o.el.NumDOF() }

func (o *opBase) SetTimeStep(dt float64) { o.dt = dt }

func (o *opBase) SetLogging(level int, prefix string) {
	o.logging = level
	o.prefix = prefix
}

func (o *opBase) DependsOn(j int) bool { return o.deps[j] }

func (o *opBase) Update() {
	o.mass = o.el.AssembleMass(nil)
}

func (o *opBase) RegisterDataFields(sink *DataSink)               {}
func (o *opBase) PrepareDataFields(s *BlockState, sink *DataSink) {}

// bdrMarker folds the operator's Dirichlet attribute lists into left/right
// face flags plus the boundary values.
func (o *opBase) bdrMarker() (marker [2]bool, gLeft, gRight float64) {
	for _, bc := range o.bcs {
		m := o.el.BdrMarker(bc.Attrs)
		if m[0] {
			marker[0] = true
			gLeft = bc.Value
		}
		if m[1] {
			marker[1] = true
			gRight = bc.Value
		}
	}
	return
}

// multMassAdd accumulates r += a * M_c * x for nodal coefficient c (nil for
// unit coefficient) without assembling a matrix.
func (o *opBase) multMassAdd(a float64, c, x, r []float64) {
	var (
		el = o.el
		Np = el.Np
	)
	for k := 0; k < el.K; k++ {
		for i := 0; i < Np; i++ {
			var sum float64
			for j := 0; j < Np; j++ {
				g := el.GlobalID(k, j)
				v := el.MassHat.At(i, j) * x[g]
				if c != nil {
					v *= c[g]
				}
				sum += v
			}
			r[el.GlobalID(k, i)] += a * el.J[k] * sum
		}
	}
}
