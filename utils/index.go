package utils

// Index is an integer index set used to address rows/columns and DOF subsets.
type Index []int

func NewIndex(n int) (I Index) {
	return make(Index, n)
}

func NewRange(rmin, rmax int) (I Index) {
	var (
		size = rmax - rmin + 1 // INCLUSIVE RANGE
	)
	I = make(Index, size)
	for i := range I {
		I[i] = i + rmin
	}
	return
}

func (I Index) Copy() (R Index) {
	R = make(Index, len(I))
	copy(R, I)
	return
}

// PartialSum converts per-entry sizes into cumulative offsets in place,
// matching the layout convention offsets[0]=0 ... offsets[n]=total when the
// receiver has n+1 entries with sizes stored in positions 1..n.
func (I Index) PartialSum() Index {
	for i := 1; i < len(I); i++ {
		I[i] += I[i-1]
	}
	return I
}
