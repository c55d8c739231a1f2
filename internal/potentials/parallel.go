package potentials

import (
	"github.com/san-kum/ljcell/internal/celllist"
	"github.com/san-kum/ljcell/internal/dynamo"
)

const (
	minPairsPerWorker = 32
	minCellsPerWorker = 64
)

// workerBuffer is one worker's private copy of every force accumulator, laid
// out flat in cell order, plus its scalar partial sums.
type workerBuffer struct {
	fx, fy, fz []float64
	acc        accumulator
}

func (b *workerBuffer) reset(n int) {
	if cap(b.fx) < n {
		b.fx = make([]float64, n)
		b.fy = make([]float64, n)
		b.fz = make([]float64, n)
	}
	b.fx, b.fy, b.fz = b.fx[:n], b.fy[:n], b.fz[:n]
	clear(b.fx)
	clear(b.fy)
	clear(b.fz)
	b.acc = accumulator{}
}

func (b *workerBuffer) forces(offsets []int, cell int) forces {
	lo, hi := offsets[cell], offsets[cell+1]
	return forces{b.fx[lo:hi], b.fy[lo:hi], b.fz[lo:hi]}
}

func (lj *LennardJones) ensureScratch(workers int) {
	for len(lj.scratch) < workers {
		lj.scratch = append(lj.scratch, &workerBuffer{})
	}
}

// evaluateParallel splits pairs into contiguous chunks. No two workers ever
// write the same memory: each sums into its own buffer, and the buffers are
// added onto the cells afterwards in worker order.
func (lj *LennardJones) evaluateParallel(k kernel, cells []celllist.Cell, pairs []cellPairIndex) {
	if cap(lj.offsets) < len(cells)+1 {
		lj.offsets = make([]int, len(cells)+1)
	}
	offsets := lj.offsets[:len(cells)+1]
	offsets[0] = 0
	for c := range cells {
		offsets[c+1] = offsets[c] + cells[c].NumAtoms()
	}
	total := offsets[len(cells)]
	lj.ensureScratch(lj.workers)

	used := dynamo.ParallelFor(len(pairs), lj.workers, minPairsPerWorker, func(worker, start, end int) {
		buf := lj.scratch[worker]
		buf.reset(total)
		for _, p := range pairs[start:end] {
			k.cellPair(&buf.acc, &cells[p.c1], &cells[p.c2], buf.forces(offsets, p.c1), buf.forces(offsets, p.c2), p.self)
		}
	})

	dynamo.ParallelFor(len(cells), lj.workers, minCellsPerWorker, func(_, start, end int) {
		for c := start; c < end; c++ {
			cell := &cells[c]
			lo := offsets[c]
			for w := 0; w < used; w++ {
				buf := lj.scratch[w]
				for i := range cell.FX {
					cell.FX[i] += buf.fx[lo+i]
					cell.FY[i] += buf.fy[lo+i]
					cell.FZ[i] += buf.fz[lo+i]
				}
			}
		}
	})

	for w := 0; w < used; w++ {
		lj.fold(&lj.scratch[w].acc)
	}
}
