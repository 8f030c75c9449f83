package amg

import (
	"fmt"
	"math"

	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/gotransport/utils"
)

// Package amg implements a smoothed aggregation algebraic multigrid
// preconditioner over CSR matrices. One Mult call runs a single V-cycle with
// weighted Jacobi smoothing and a dense LU solve on the coarsest level.

type Parameters struct {
	Theta        float64 // strength of connection threshold
	JacobiOmega  float64 // smoother damping
	ProlongOmega float64 // prolongator smoothing damping
	CoarseSize   int     // direct-solve threshold
	MaxLevels    int
}

func DefaultParameters() Parameters {
	return Parameters{
		Theta:        0.25,
		JacobiOmega:  0.6,
		ProlongOmega: 2. / 3.,
		CoarseSize:   40,
		MaxLevels:    20,
	}
}

type level struct {
	A       *sparse.CSR
	P       *sparse.CSR // prolongation to this level from the next coarser
	Dinv    []float64
	x, r, b []float64 // cycle workspace
}

// AMG is a multigrid hierarchy built from a single fine-grid matrix.
type AMG struct {
	params   Parameters
	levels   []*level
	coarseLU *mat.LU
	coarseN  int
}

func New(A *sparse.CSR, params Parameters) *AMG {
	m := &AMG{params: params}
	m.build(A)
	return m
}

func (m *AMG) Height() (h int) {
	h, _ = m.levels[0].A.Dims()
	return
}

func (m *AMG) build(A *sparse.CSR) {
	for {
		n, _ := A.Dims()
		lv := &level{
			A:    A,
			Dinv: invDiagonal(A),
			x:    make([]float64, n),
			r:    make([]float64, n),
			b:    make([]float64, n),
		}
		m.levels = append(m.levels, lv)
		if n <= m.params.CoarseSize || len(m.levels) >= m.params.MaxLevels {
			break
		}
		agg, nAgg := aggregate(A, m.params.Theta)
		if nAgg >= n { // no coarsening progress
			break
		}
		P := m.smoothedProlongator(A, lv.Dinv, agg, nAgg)
		Ac := galerkin(A, P)
		lv.P = P
		A = Ac
	}
	m.factorCoarse()
}

func (m *AMG) factorCoarse() {
	var (
		Ac   = m.levels[len(m.levels)-1].A
		n, _ = Ac.Dims()
	)
	dense := mat.NewDense(n, n, nil)
	indptr, ind, data := utils.CSRRaw(Ac)
	for i := 0; i < n; i++ {
		for p := indptr[i]; p < indptr[i+1]; p++ {
			dense.Set(i, ind[p], data[p])
		}
	}
	m.coarseLU = &mat.LU{}
	m.coarseLU.Factorize(dense)
	m.coarseN = n
}

// Mult applies one V-cycle: z approximates A^{-1} r.
func (m *AMG) Mult(r, z []float64) {
	top := m.levels[0]
	copy(top.b, r)
	m.cycle(0)
	copy(z, top.x)
}

func (m *AMG) cycle(l int) {
	lv := m.levels[l]
	if l == len(m.levels)-1 {
		bv := mat.NewVecDense(m.coarseN, lv.b)
		xv := mat.NewVecDense(m.coarseN, lv.x)
		if err := m.coarseLU.SolveVecTo(xv, false, bv); err != nil {
			// singular coarse grid, fall back to smoothing
			utils.VecZero(lv.x)
			m.jacobi(lv, 3)
		}
		return
	}
	utils.VecZero(lv.x)
	m.jacobi(lv, 1)
	// restrict the residual: b_coarse = P' * (b - A x)
	utils.CSRMulVec(lv.A, lv.x, lv.r)
	for i := range lv.r {
		lv.r[i] = lv.b[i] - lv.r[i]
	}
	next := m.levels[l+1]
	restrictT(lv.P, lv.r, next.b)
	m.cycle(l + 1)
	prolongAdd(lv.P, next.x, lv.x)
	m.jacobi(lv, 1)
}

// jacobi runs nSweeps of damped Jacobi on A x = b in place.
func (m *AMG) jacobi(lv *level, nSweeps int) {
	for s := 0; s < nSweeps; s++ {
		utils.CSRMulVec(lv.A, lv.x, lv.r)
		for i := range lv.x {
			lv.x[i] += m.params.JacobiOmega * lv.Dinv[i] * (lv.b[i] - lv.r[i])
		}
	}
}

func invDiagonal(A *sparse.CSR) (dinv []float64) {
	var (
		n, _ = A.Dims()
		d    = utils.CSRDiagonal(A)
	)
	dinv = make([]float64, n)
	for i, val := range d {
		if val != 0 {
			dinv[i] = 1 / val
		} else {
			dinv[i] = 1
		}
	}
	return
}

// aggregate greedily groups strongly connected nodes. agg[i] is the
// aggregate id of node i.
func aggregate(A *sparse.CSR, theta float64) (agg []int, nAgg int) {
	var (
		n, _             = A.Dims()
		indptr, ind, dat = utils.CSRRaw(A)
		d                = utils.CSRDiagonal(A)
	)
	strong := func(i, p int) bool {
		j := ind[p]
		if j == i {
			return false
		}
		return math.Abs(dat[p]) > theta*math.Sqrt(math.Abs(d[i]*d[ind[p]]))
	}
	agg = make([]int, n)
	for i := range agg {
		agg[i] = -1
	}
	// pass 1: seed aggregates from nodes with no aggregated strong neighbors
	for i := 0; i < n; i++ {
		if agg[i] != -1 {
			continue
		}
		free := true
		for p := indptr[i]; p < indptr[i+1]; p++ {
			if strong(i, p) && agg[ind[p]] != -1 {
				free = false
				break
			}
		}
		if !free {
			continue
		}
		agg[i] = nAgg
		for p := indptr[i]; p < indptr[i+1]; p++ {
			if strong(i, p) {
				agg[ind[p]] = nAgg
			}
		}
		nAgg++
	}
	// pass 2: attach leftovers to a strong neighbor's aggregate
	for i := 0; i < n; i++ {
		if agg[i] != -1 {
			continue
		}
		for p := indptr[i]; p < indptr[i+1]; p++ {
			if strong(i, p) && agg[ind[p]] != -1 {
				agg[i] = agg[ind[p]]
				break
			}
		}
		if agg[i] == -1 { // isolated node gets its own aggregate
			agg[i] = nAgg
			nAgg++
		}
	}
	return
}

// smoothedProlongator builds P = (I - omega D^{-1} A) P0 where P0 is the
// piecewise-constant tentative prolongator from the aggregation.
func (m *AMG) smoothedProlongator(A *sparse.CSR, dinv []float64, agg []int, nAgg int) *sparse.CSR {
	var (
		n, _             = A.Dims()
		indptr, ind, dat = utils.CSRRaw(A)
		dok              = sparse.NewDOK(n, nAgg)
	)
	for i := 0; i < n; i++ {
		dok.Set(i, agg[i], dok.At(i, agg[i])+1)
		for p := indptr[i]; p < indptr[i+1]; p++ {
			j := agg[ind[p]]
			dok.Set(i, j, dok.At(i, j)-m.params.ProlongOmega*dinv[i]*dat[p])
		}
	}
	return dok.ToCSR()
}

// galerkin forms the coarse operator P' * A * P.
func galerkin(A, P *sparse.CSR) *sparse.CSR {
	var (
		n, nc            = P.Dims()
		indptr, ind, dat = utils.CSRRaw(A)
		pptr, pind, pdat = utils.CSRRaw(P)
		dok              = sparse.NewDOK(nc, nc)
	)
	if na, _ := A.Dims(); na != n {
		panic(fmt.Errorf("galerkin product: A is %dx%d, P has %d rows", na, na, n))
	}
	for i := 0; i < n; i++ {
		for pi := pptr[i]; pi < pptr[i+1]; pi++ {
			var (
				I  = pind[pi]
				vi = pdat[pi]
			)
			for p := indptr[i]; p < indptr[i+1]; p++ {
				k := ind[p]
				for pj := pptr[k]; pj < pptr[k+1]; pj++ {
					J := pind[pj]
					dok.Set(I, J, dok.At(I, J)+vi*dat[p]*pdat[pj])
				}
			}
		}
	}
	return dok.ToCSR()
}

// restrictT computes rc = P' * r.
func restrictT(P *sparse.CSR, r, rc []float64) {
	var (
		n, _             = P.Dims()
		pptr, pind, pdat = utils.CSRRaw(P)
	)
	utils.VecZero(rc)
	for i := 0; i < n; i++ {
		for p := pptr[i]; p < pptr[i+1]; p++ {
			rc[pind[p]] += pdat[p] * r[i]
		}
	}
}

// prolongAdd computes x += P * xc.
func prolongAdd(P *sparse.CSR, xc, x []float64) {
	var (
		n, _             = P.Dims()
		pptr, pind, pdat = utils.CSRRaw(P)
	)
	for i := 0; i < n; i++ {
		for p := pptr[i]; p < pptr[i+1]; p++ {
			x[i] += pdat[p] * xc[pind[p]]
		}
	}
}
