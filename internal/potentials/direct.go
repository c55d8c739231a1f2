package potentials

import (
	"math"

	"github.com/san-kum/ljcell/internal/dynamo"
)

// Reference is the outcome of a direct all-pairs evaluation.
type Reference struct {
	Forces          []dynamo.Vec3
	PotentialEnergy float64
	PressureVirial  float64
	Pairs           uint64
	Interacting     uint64
}

// Direct evaluates the potential over all N(N-1)/2 pairs of positions without
// a cell list. It is the O(N^2) reference the cell list walk is checked
// against and does not touch the pair counter.
func (lj *LennardJones) Direct(box dynamo.Box, positions []dynamo.Vec3) Reference {
	wrapped := make([]dynamo.Vec3, len(positions))
	for i, p := range positions {
		wrapped[i] = box.Wrap(p)
	}

	ref := Reference{Forces: make([]dynamo.Vec3, len(positions))}
	for i := 0; i < len(wrapped); i++ {
		for j := i + 1; j < len(wrapped); j++ {
			ref.Pairs++
			d := box.MinimumImage(wrapped[i].Sub(wrapped[j]))
			dr2 := d.Dot(d)
			if dr2 >= lj.rCutSquared {
				continue
			}
			ref.Interacting++

			f := lj.PairForceFactor(dr2)
			ref.Forces[i] = ref.Forces[i].Sub(d.Scale(f))
			ref.Forces[j] = ref.Forces[j].Add(d.Scale(f))
			ref.PotentialEnergy += lj.PairEnergy(dr2)
			ref.PressureVirial += f * dr2 * math.Sqrt(dr2)
		}
	}
	return ref
}
