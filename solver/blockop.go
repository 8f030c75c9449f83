package solver

import (
	"fmt"

	"github.com/james-bowman/sparse"

	"github.com/notargets/gotransport/utils"
)

// BlockOperator composes an NB x NB grid of CSR blocks into a single square
// operator over the concatenated state vector. A nil block is zero. Offsets
// are the running partial sums of the block row heights, offsets[NB] being
// the total height.
type BlockOperator struct {
	offsets utils.Index
	blocks  [][]*sparse.CSR
}

func NewBlockOperator(offsets utils.Index) *BlockOperator {
	nb := len(offsets) - 1
	if nb < 1 {
		panic(fmt.Errorf("block operator needs at least one block, got offsets %v", offsets))
	}
	blocks := make([][]*sparse.CSR, nb)
	for i := range blocks {
		blocks[i] = make([]*sparse.CSR, nb)
	}
	return &BlockOperator{
		offsets: offsets.Copy(),
		blocks:  blocks,
	}
}

func (b *BlockOperator) NumBlocks() int { return len(b.offsets) - 1 }

func (b *BlockOperator) Height() int { return b.offsets[len(b.offsets)-1] }

func (b *BlockOperator) RowOffsets() utils.Index { return b.offsets }

// SetBlock installs block (i,j), checking its dimensions against the
// offsets. Pass nil to clear.
func (b *BlockOperator) SetBlock(i, j int, A *sparse.CSR) {
	if A != nil {
		r, c := A.Dims()
		if r != b.offsets[i+1]-b.offsets[i] || c != b.offsets[j+1]-b.offsets[j] {
			panic(fmt.Errorf("block (%d,%d) is %dx%d, offsets want %dx%d",
				i, j, r, c, b.offsets[i+1]-b.offsets[i], b.offsets[j+1]-b.offsets[j]))
		}
	}
	b.blocks[i][j] = A
}

func (b *BlockOperator) Block(i, j int) *sparse.CSR { return b.blocks[i][j] }

func (b *BlockOperator) IsZeroBlock(i, j int) bool { return b.blocks[i][j] == nil }

func (b *BlockOperator) Mult(x, y []float64) {
	if len(x) != b.Height() || len(y) != b.Height() {
		panic(fmt.Errorf("block operator height %d, got x %d y %d", b.Height(), len(x), len(y)))
	}
	utils.VecZero(y)
	for i := range b.blocks {
		yi := y[b.offsets[i]:b.offsets[i+1]]
		for j, A := range b.blocks[i] {
			if A == nil {
				continue
			}
			utils.CSRMulVecAdd(1, A, x[b.offsets[j]:b.offsets[j+1]], yi)
		}
	}
}
