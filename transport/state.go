package transport

import (
	"fmt"

	"github.com/notargets/gotransport/utils"
)

// BlockState is the evaluation context passed into every residual and
// Jacobian call: read-only views of the per-field state (Y) and rate (K)
// segments of the concatenated vectors. Nothing is rebound or copied;
// callers construct a fresh context per evaluation.
type BlockState struct {
	Y [NumFields][]float64
	K [NumFields][]float64
}

// SplitState builds a context from flat state and rate vectors using the
// block offsets.
func SplitState(offsets utils.Index, y, k []float64) *BlockState {
	var (
		total = offsets[len(offsets)-1]
		s     = &BlockState{}
	)
	if len(y) != total || len(k) != total {
		panic(fmt.Errorf("state split: offsets give %d, got y %d k %d", total, len(y), len(k)))
	}
	for i := 0; i < NumFields; i++ {
		s.Y[i] = y[offsets[i]:offsets[i+1]]
		s.K[i] = k[offsets[i]:offsets[i+1]]
	}
	return s
}

// Advanced returns the implicit-stage field y_i + dt*k_i as a fresh slice.
func (s *BlockState) Advanced(i int, dt float64) (y1 []float64) {
	y1 = make([]float64, len(s.Y[i]))
	for n, val := range s.Y[i] {
		y1[n] = val + dt*s.K[i][n]
	}
	return
}

// CheckPhysicalState is an advisory validity check: negative densities or
// temperatures are logged with a full dump of the offending field and the
// check reports false. It never unwinds; an invalid state is an upstream
// modeling error.
func CheckPhysicalState(prefix string, s *BlockState) (ok bool) {
	ok = true
	for _, i := range []int{NeutralDensity, IonDensity, IonTemperature, ElectronTemperature} {
		for n, val := range s.Y[i] {
			if val <= 0 {
				fmt.Printf("%s: unphysical %s = %g at dof %d\n", prefix, fieldNames[i], val, n)
				fmt.Printf("%s: %s dump: %v\n", prefix, fieldNames[i], s.Y[i])
				ok = false
				break
			}
		}
	}
	// static pressures
	for n := range s.Y[IonDensity] {
		if p := s.Y[IonDensity][n] * s.Y[IonTemperature][n]; p <= 0 {
			fmt.Printf("%s: unphysical ion pressure %g at dof %d\n", prefix, p, n)
			ok = false
			break
		}
	}
	return
}
