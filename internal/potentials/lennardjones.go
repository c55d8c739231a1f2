package potentials

import (
	"fmt"
	"math"
	"time"

	"github.com/san-kum/ljcell/internal/celllist"
	"github.com/san-kum/ljcell/internal/dynamo"
)

// Grid is the cell list a pair potential walks. *celllist.Grid implements it.
// The flat layout given by Index must stay fixed for the life of a grid value.
type Grid interface {
	Dims() [3]int
	CellSize() dynamo.Vec3
	Index(cx, cy, cz int) int
	IndexPeriodic(cx, cy, cz int) int
	Cells() []celllist.Cell
}

// LennardJones is a truncated and shifted 12-6 potential evaluated over a cell
// list with periodic boundaries.
//
// Parameters are fixed at construction. Between calls the only state is the
// pair counter, the last call's energy and virial, and reusable scratch
// space, so a LennardJones must not be used from two goroutines at once.
type LennardJones struct {
	sigma        float64
	epsilon      float64
	cutoffRadius float64

	sigma6                float64
	epsilon24             float64
	rCutSquared           float64
	potentialEnergyAtRcut float64

	potentialEnergy  float64
	pressureVirial   float64
	numPairsComputed uint64

	workers int
	timing  dynamo.TimingFunc
	debug   bool

	degenerate uint64
	pairs      pairCache
	offsets    []int
	scratch    []*workerBuffer
}

type Option func(*LennardJones)

// WithWorkers splits the cell pairs over n goroutines, each accumulating into
// private force buffers that are merged after the parallel region.
// n <= 1 keeps the serial path; n == 0 means one worker per CPU.
func WithWorkers(n int) Option {
	return func(lj *LennardJones) {
		if n == 0 {
			n = dynamo.DefaultWorkers()
		}
		lj.workers = n
	}
}

// WithTiming reports the wall time of every evaluation to fn.
func WithTiming(fn dynamo.TimingFunc) Option {
	return func(lj *LennardJones) { lj.timing = fn }
}

// WithDebugChecks clamps pairs at zero separation to a zero contribution and
// counts them; Err reports the count after the call.
func WithDebugChecks() Option {
	return func(lj *LennardJones) { lj.debug = true }
}

func NewLennardJones(sigma, epsilon, cutoffRadius float64, opts ...Option) (*LennardJones, error) {
	if !(sigma > 0) || math.IsInf(sigma, 0) {
		return nil, fmt.Errorf("%w: sigma must be positive and finite, got %g", dynamo.ErrInvalidParameter, sigma)
	}
	if !(epsilon >= 0) || math.IsInf(epsilon, 0) {
		return nil, fmt.Errorf("%w: epsilon must be non-negative and finite, got %g", dynamo.ErrInvalidParameter, epsilon)
	}
	if !(cutoffRadius > 0) || math.IsInf(cutoffRadius, 0) {
		return nil, fmt.Errorf("%w: cutoff radius must be positive and finite, got %g", dynamo.ErrInvalidParameter, cutoffRadius)
	}

	lj := &LennardJones{
		sigma:        sigma,
		epsilon:      epsilon,
		cutoffRadius: cutoffRadius,
		sigma6:       math.Pow(sigma, 6),
		epsilon24:    24 * epsilon,
		rCutSquared:  cutoffRadius * cutoffRadius,
		workers:      1,
	}

	oneOverDrCut2 := 1 / lj.rCutSquared
	oneOverDrCut6 := oneOverDrCut2 * oneOverDrCut2 * oneOverDrCut2
	lj.potentialEnergyAtRcut = 4 * epsilon * lj.sigma6 * oneOverDrCut6 * (lj.sigma6*oneOverDrCut6 - 1)

	for _, opt := range opts {
		opt(lj)
	}
	return lj, nil
}

func (lj *LennardJones) Sigma() float64        { return lj.sigma }
func (lj *LennardJones) Epsilon() float64      { return lj.epsilon }
func (lj *LennardJones) CutoffRadius() float64 { return lj.cutoffRadius }
func (lj *LennardJones) Workers() int          { return lj.workers }

// PotentialEnergyAtCutoff is the unshifted pair energy at r = cutoff, which is
// subtracted from every included pair.
func (lj *LennardJones) PotentialEnergyAtCutoff() float64 { return lj.potentialEnergyAtRcut }

// PotentialEnergy is the shifted potential energy of the last call.
func (lj *LennardJones) PotentialEnergy() float64 { return lj.potentialEnergy }

// PressureVirial is the virial sum of the last call.
func (lj *LennardJones) PressureVirial() float64 { return lj.pressureVirial }

// NumPairsComputed counts every enumerated pair, inside the cutoff or not,
// over the potential's lifetime.
func (lj *LennardJones) NumPairsComputed() uint64 { return lj.numPairsComputed }

// Err reports zero-separation pairs seen by the last call. It is always nil
// unless debug checks are enabled.
func (lj *LennardJones) Err() error {
	if lj.degenerate == 0 {
		return nil
	}
	return fmt.Errorf("%w: %d pair(s) at zero separation", dynamo.ErrDegenerateSeparation, lj.degenerate)
}

// Validate checks that grid can be walked with this cutoff in box: the grid
// must tile the box, every cell edge must be at least the cutoff, and the
// cutoff must not exceed half the shortest box edge.
func (lj *LennardJones) Validate(box dynamo.Box, grid Grid) error {
	dims := grid.Dims()
	size := grid.CellSize()
	for axis := 0; axis < 3; axis++ {
		if dims[axis] < 1 {
			return fmt.Errorf("%w: axis %d has %d cells", dynamo.ErrGridCutoffMismatch, axis, dims[axis])
		}
		tiled := float64(dims[axis]) * size[axis]
		if math.Abs(tiled-box.L[axis]) > 1e-9*box.L[axis] {
			return fmt.Errorf("%w: axis %d cells span %g, box edge is %g", dynamo.ErrGridCutoffMismatch, axis, tiled, box.L[axis])
		}
		if size[axis] < lj.cutoffRadius {
			return fmt.Errorf("%w: axis %d cell edge %g is shorter than cutoff %g", dynamo.ErrGridCutoffMismatch, axis, size[axis], lj.cutoffRadius)
		}
		if lj.cutoffRadius > 0.5*box.L[axis] {
			return fmt.Errorf("%w: cutoff %g exceeds half of box edge %d (%g)", dynamo.ErrGridCutoffMismatch, lj.cutoffRadius, axis, box.L[axis])
		}
	}
	if n := dims[0] * dims[1] * dims[2]; len(grid.Cells()) != n {
		return fmt.Errorf("%w: grid reports %d cells for dims %v", dynamo.ErrGridCutoffMismatch, len(grid.Cells()), dims)
	}
	return nil
}

// CalculateForces adds the pair forces of every atom in grid to the cells'
// force accumulators. Accumulators are not cleared first.
func (lj *LennardJones) CalculateForces(box dynamo.Box, grid Grid) {
	lj.evaluate(box, grid, false)
}

// CalculateForcesAndEnergy is CalculateForces that also sums the shifted
// potential energy and the pressure virial.
func (lj *LennardJones) CalculateForcesAndEnergy(box dynamo.Box, grid Grid) {
	lj.evaluate(box, grid, true)
}

func (lj *LennardJones) evaluate(box dynamo.Box, grid Grid, energy bool) {
	start := time.Now()
	lj.potentialEnergy = 0
	lj.pressureVirial = 0
	lj.degenerate = 0

	k := lj.newKernel(box, energy)
	pairs := lj.pairs.get(grid)
	cells := grid.Cells()

	if lj.workers > 1 && len(pairs) > 1 {
		lj.evaluateParallel(k, cells, pairs)
	} else {
		var acc accumulator
		for _, p := range pairs {
			c1, c2 := &cells[p.c1], &cells[p.c2]
			k.cellPair(&acc, c1, c2, cellForces(c1), cellForces(c2), p.self)
		}
		lj.fold(&acc)
	}

	if lj.timing != nil {
		name := "calculateForces"
		if energy {
			name = "calculateForcesAndEnergy"
		}
		lj.timing(name, time.Since(start))
	}
}

func (lj *LennardJones) fold(acc *accumulator) {
	lj.potentialEnergy += acc.potentialEnergy
	lj.pressureVirial += acc.pressureVirial
	lj.numPairsComputed += acc.pairs
	lj.degenerate += acc.degenerate
}

func (lj *LennardJones) newKernel(box dynamo.Box, energy bool) kernel {
	return kernel{
		size:                  box.L,
		half:                  box.Half(),
		sigma6:                lj.sigma6,
		epsilon4:              4 * lj.epsilon,
		epsilon24:             lj.epsilon24,
		rCutSquared:           lj.rCutSquared,
		potentialEnergyAtRcut: lj.potentialEnergyAtRcut,
		energy:                energy,
		debug:                 lj.debug,
	}
}

// PairEnergy is the shifted pair energy at squared separation dr2; zero at
// and beyond the cutoff.
func (lj *LennardJones) PairEnergy(dr2 float64) float64 {
	if dr2 >= lj.rCutSquared {
		return 0
	}
	s6 := lj.sigma6 / (dr2 * dr2 * dr2)
	return 4*lj.epsilon*s6*(s6-1) - lj.potentialEnergyAtRcut
}

// PairForceFactor is the scalar f such that the force on atom i of a pair is
// -d*f, with d = r_i - r_j and |d|^2 = dr2; zero at and beyond the cutoff.
func (lj *LennardJones) PairForceFactor(dr2 float64) float64 {
	if dr2 >= lj.rCutSquared {
		return 0
	}
	inv := 1 / dr2
	s6 := inv * inv * inv * lj.sigma6
	return -lj.epsilon24 * s6 * (2*s6 - 1) * inv
}
