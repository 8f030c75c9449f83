package DG1D

import "github.com/notargets/gotransport/utils"

// Boundary attributes for the 1D mesh. Attribute numbering starts at 1 to
// match the convention that -1 in a boundary condition attribute list means
// "all attributes".
const (
	BdrLeft  = 1
	BdrRight = 2
)

// SimpleMesh1D builds a uniform chain of K elements spanning [xmin, xmax].
func SimpleMesh1D(xmin, xmax float64, K int) (VX utils.Vector, EToV utils.Matrix) {
	VX = utils.NewVector(K + 1)
	h := (xmax - xmin) / float64(K)
	for i := 0; i <= K; i++ {
		VX.SetVec(i, xmin+h*float64(i))
	}
	EToV = utils.NewMatrix(K, 2)
	for k := 0; k < K; k++ {
		EToV.Set(k, 0, float64(k))
		EToV.Set(k, 1, float64(k+1))
	}
	return
}
