package utils

import (
	"fmt"

	"github.com/james-bowman/sparse"
)

// CSRRaw exposes the compressed row storage of a CSR matrix for kernels that
// iterate rows directly (matvec, smoothers, Galerkin products).
func CSRRaw(A *sparse.CSR) (indptr, ind []int, data []float64) {
	raw := A.RawMatrix()
	return raw.Indptr, raw.Ind, raw.Data
}

// CSRMulVec computes y = A*x.
func CSRMulVec(A *sparse.CSR, x, y []float64) {
	nr, nc := A.Dims()
	if len(x) != nc || len(y) != nr {
		panic(fmt.Errorf("dimension mismatch in CSRMulVec: A is %dx%d, len(x) = %d, len(y) = %d",
			nr, nc, len(x), len(y)))
	}
	indptr, ind, data := CSRRaw(A)
	for i := 0; i < nr; i++ {
		var sum float64
		for idx := indptr[i]; idx < indptr[i+1]; idx++ {
			sum += data[idx] * x[ind[idx]]
		}
		y[i] = sum
	}
}

// CSRMulVecAdd computes y += a*A*x.
func CSRMulVecAdd(a float64, A *sparse.CSR, x, y []float64) {
	nr, nc := A.Dims()
	if len(x) != nc || len(y) != nr {
		panic(fmt.Errorf("dimension mismatch in CSRMulVecAdd: A is %dx%d, len(x) = %d, len(y) = %d",
			nr, nc, len(x), len(y)))
	}
	indptr, ind, data := CSRRaw(A)
	for i := 0; i < nr; i++ {
		var sum float64
		for idx := indptr[i]; idx < indptr[i+1]; idx++ {
			sum += data[idx] * x[ind[idx]]
		}
		y[i] += a * sum
	}
}

// CSRDiagonal extracts the main diagonal.
func CSRDiagonal(A *sparse.CSR) (d []float64) {
	nr, _ := A.Dims()
	d = make([]float64, nr)
	indptr, ind, data := CSRRaw(A)
	for i := 0; i < nr; i++ {
		for idx := indptr[i]; idx < indptr[i+1]; idx++ {
			if ind[idx] == i {
				d[i] = data[idx]
				break
			}
		}
	}
	return
}
