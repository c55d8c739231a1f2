package potentials

import (
	"math"

	"github.com/san-kum/ljcell/internal/celllist"
	"github.com/san-kum/ljcell/internal/dynamo"
)

// forces are the accumulators a kernel writes one cell's contributions to:
// either the cell's own FX/FY/FZ or a worker-private copy.
type forces struct {
	x, y, z []float64
}

func cellForces(c *celllist.Cell) forces { return forces{c.FX, c.FY, c.FZ} }

// accumulator holds the scalar partial sums of a run of cell pairs.
type accumulator struct {
	potentialEnergy float64
	pressureVirial  float64
	pairs           uint64
	degenerate      uint64
}

// kernel is the per-call snapshot of everything the inner loop reads.
type kernel struct {
	size, half            dynamo.Vec3
	sigma6                float64
	epsilon4              float64
	epsilon24             float64
	rCutSquared           float64
	potentialEnergyAtRcut float64
	energy                bool
	debug                 bool
}

// mask converts a comparison into a 0/1 factor so the cutoff and the minimum
// image stay arithmetic in the inner loop.
func mask(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// cellPair evaluates every atom pair between c1 and c2. For a self pair only
// j > i is visited. Atom i's force is summed locally and flushed into f1 once;
// atom j receives the opposite contribution in f2 pair by pair.
func (k *kernel) cellPair(acc *accumulator, c1, c2 *celllist.Cell, f1, f2 forces, self bool) {
	n2 := len(c2.X)
	x2, y2, z2 := c2.X[:n2], c2.Y[:n2], c2.Z[:n2]
	fx2, fy2, fz2 := f2.x[:n2], f2.y[:n2], f2.z[:n2]

	var potentialEnergy, pressureVirial float64
	for i := range c1.X {
		x, y, z := c1.X[i], c1.Y[i], c1.Z[i]
		var fix, fiy, fiz float64

		j0 := 0
		if self {
			j0 = i + 1
		}
		for j := j0; j < n2; j++ {
			dx := x - x2[j]
			dy := y - y2[j]
			dz := z - z2[j]
			dx += k.size[0] * (mask(dx < -k.half[0]) - mask(dx > k.half[0]))
			dy += k.size[1] * (mask(dy < -k.half[1]) - mask(dy > k.half[1]))
			dz += k.size[2] * (mask(dz < -k.half[2]) - mask(dz > k.half[2]))

			dr2 := dx*dx + dy*dy + dz*dz
			within := mask(dr2 < k.rCutSquared)
			if k.debug {
				zero := mask(dr2 == 0)
				acc.degenerate += uint64(zero)
				dr2 += zero
				within *= 1 - zero
			}

			oneOverDr2 := 1 / dr2
			sigma6OneOverDr6 := oneOverDr2 * oneOverDr2 * oneOverDr2 * k.sigma6
			force := -k.epsilon24 * sigma6OneOverDr6 * (2*sigma6OneOverDr6 - 1) * oneOverDr2 * within

			fix -= dx * force
			fiy -= dy * force
			fiz -= dz * force

			fx2[j] += dx * force
			fy2[j] += dy * force
			fz2[j] += dz * force

			if k.energy {
				pressureVirial += force * dr2 * math.Sqrt(dr2)
				potentialEnergy += (k.epsilon4*sigma6OneOverDr6*(sigma6OneOverDr6-1) - k.potentialEnergyAtRcut) * within
			}
		}
		if n2 > j0 {
			acc.pairs += uint64(n2 - j0)
		}

		f1.x[i] += fix
		f1.y[i] += fiy
		f1.z[i] += fiz
	}

	acc.potentialEnergy += potentialEnergy
	acc.pressureVirial += pressureVirial
}
