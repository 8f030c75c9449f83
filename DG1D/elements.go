package DG1D

import (
	"math"

	"github.com/notargets/gotransport/utils"
	"gonum.org/v1/gonum/mat"
)

func gamma0(alpha, beta float64) float64 {
	ab1 := alpha + beta + 1.
	a1 := alpha + 1.
	b1 := beta + 1.
	return math.Gamma(a1) * math.Gamma(b1) * math.Pow(2, ab1) / ab1 / math.Gamma(ab1)
}

func gamma1(alpha, beta float64) float64 {
	ab := alpha + beta
	a1 := alpha + 1.
	b1 := beta + 1.
	return a1 * b1 * gamma0(alpha, beta) / (ab + 3.0)
}

// JacobiGQ returns the Gauss quadrature points and weights for the Jacobi
// polynomial of order N with parameters alpha, beta, via the Golub-Welsch
// eigenvalue problem on the symmetric tridiagonal recurrence matrix.
func JacobiGQ(alpha, beta float64, N int) (X, W utils.Vector) {
	if N == 0 {
		x := []float64{-(alpha - beta) / (alpha + beta + 2.)}
		w := []float64{2.}
		return utils.NewVector(1, x), utils.NewVector(1, w)
	}
	var (
		n  = N + 1
		h1 = make([]float64, n)
		JM = mat.NewSymDense(n, nil)
	)
	for i := 0; i < n; i++ {
		h1[i] = 2*float64(i) + alpha + beta
	}
	fac := -.5 * (alpha*alpha - beta*beta)
	for i := 0; i < n; i++ {
		val := h1[i]
		d0 := fac / (val * (val + 2.))
		if i == 0 && alpha+beta < 10*math.SmallestNonzeroFloat64 {
			d0 = 0.
		}
		JM.SetSym(i, i, d0)
	}
	for i := 0; i < n-1; i++ {
		fi := float64(i + 1)
		num := fi * (fi + alpha + beta) * (fi + alpha) * (fi + beta)
		den := (h1[i] + 1.) * (h1[i] + 3.)
		d1 := 2. / (h1[i] + 2.) * math.Sqrt(num/den)
		JM.SetSym(i, i+1, d1)
	}
	var eig mat.EigenSym
	if ok := eig.Factorize(JM, true); !ok {
		panic("eigenvalue decomposition failed in JacobiGQ")
	}
	var ev mat.Dense
	eig.VectorsTo(&ev)
	x := eig.Values(nil)
	w := make([]float64, n)
	g0 := gamma0(alpha, beta)
	for j := 0; j < n; j++ {
		v0 := ev.At(0, j)
		w[j] = v0 * v0 * g0
	}
	X = utils.NewVector(n, x)
	W = utils.NewVector(n, w)
	return
}

// JacobiGL returns the Gauss-Lobatto points including the endpoints -1, 1.
func JacobiGL(alpha, beta float64, N int) (X utils.Vector) {
	x := make([]float64, N+1)
	if N == 1 {
		x[0] = -1
		x[1] = 1
		return utils.NewVector(N+1, x)
	}
	xint, _ := JacobiGQ(alpha+1, beta+1, N-2)
	x[0] = -1
	x[N] = 1
	for i := 1; i < N; i++ {
		x[i] = xint.AtVec(i - 1)
	}
	X = utils.NewVector(N+1, x)
	return
}

// JacobiP evaluates the normalized Jacobi polynomial of order N at the points r.
func JacobiP(r utils.Vector, alpha, beta float64, N int) (p []float64) {
	var (
		n     = r.Len()
		PL    = utils.NewMatrix(N+1, n)
		rData = r.Data()
	)
	sq0 := 1. / math.Sqrt(gamma0(alpha, beta))
	for j := 0; j < n; j++ {
		PL.Set(0, j, sq0)
	}
	if N == 0 {
		return PL.Row(0).Data()
	}
	sq1 := 1. / math.Sqrt(gamma1(alpha, beta))
	for j := 0; j < n; j++ {
		PL.Set(1, j, sq1*((alpha+beta+2.)*rData[j]/2.+(alpha-beta)/2.))
	}
	if N == 1 {
		return PL.Row(1).Data()
	}
	aold := 2. / (2. + alpha + beta) * math.Sqrt((alpha+1.)*(beta+1.)/(alpha+beta+3.))
	for i := 1; i < N; i++ {
		fi := float64(i)
		h1 := 2.*fi + alpha + beta
		num := (fi + 1.) * (fi + 1. + alpha + beta) * (fi + 1. + alpha) * (fi + 1. + beta)
		den := (h1 + 1.) * (h1 + 3.)
		anew := 2. / (h1 + 2.) * math.Sqrt(num/den)
		bnew := -(alpha*alpha - beta*beta) / (h1 * (h1 + 2.))
		for j := 0; j < n; j++ {
			val := (-aold*PL.At(i-1, j) + (rData[j]-bnew)*PL.At(i, j)) / anew
			PL.Set(i+1, j, val)
		}
		aold = anew
	}
	return PL.Row(N).Data()
}

// GradJacobiP evaluates the derivative of the normalized Jacobi polynomial.
func GradJacobiP(r utils.Vector, alpha, beta float64, N int) (dp []float64) {
	dp = make([]float64, r.Len())
	if N == 0 {
		return
	}
	fac := math.Sqrt(float64(N) * (float64(N) + alpha + beta + 1.))
	pp := JacobiP(r, alpha+1, beta+1, N-1)
	for i := range dp {
		dp[i] = fac * pp[i]
	}
	return
}

func Vandermonde1D(N int, R utils.Vector) (V utils.Matrix) {
	V = utils.NewMatrix(R.Len(), N+1)
	for j := 0; j <= N; j++ {
		p := JacobiP(R, 0, 0, j)
		for i, val := range p {
			V.Set(i, j, val)
		}
	}
	return
}

func GradVandermonde1D(R utils.Vector, N int) (Vr utils.Matrix) {
	Vr = utils.NewMatrix(R.Len(), N+1)
	for j := 0; j <= N; j++ {
		dp := GradJacobiP(R, 0, 0, j)
		for i, val := range dp {
			Vr.Set(i, j, val)
		}
	}
	return
}
