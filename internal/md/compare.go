package md

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/ljcell/internal/dynamo"
	"github.com/san-kum/ljcell/internal/potentials"
)

// Deviation measures how far a cell-list evaluation is from the all-pairs
// reference for the same configuration.
type Deviation struct {
	MaxForce    float64
	RMSForce    float64
	NetForce    float64
	Energy      float64
	Virial      float64
	Interacting uint64
}

// Within reports whether forces agree to forceTol and energy and virial
// agree to relTol relative to the reference magnitude (at least 1).
func (d Deviation) Within(forceTol, relTol float64) bool {
	return d.MaxForce <= forceTol && d.Energy <= relTol && d.Virial <= relTol
}

// Compare returns the deviation of sample and forces from ref.
func Compare(sample dynamo.Sample, forces []dynamo.Vec3, ref potentials.Reference) (Deviation, error) {
	if len(forces) != len(ref.Forces) {
		return Deviation{}, fmt.Errorf("%w: %d forces against %d reference forces", dynamo.ErrInvalidParameter, len(forces), len(ref.Forces))
	}

	got := flatten(forces)
	want := flatten(ref.Forces)
	diff := make([]float64, len(got))
	floats.SubTo(diff, got, want)

	d := Deviation{
		Energy:      relative(sample.PotentialEnergy, ref.PotentialEnergy),
		Virial:      relative(sample.PressureVirial, ref.PressureVirial),
		Interacting: ref.Interacting,
	}
	if len(diff) > 0 {
		d.MaxForce = floats.Norm(diff, math.Inf(1))
		d.RMSForce = floats.Norm(diff, 2) / math.Sqrt(float64(len(diff)))
	}

	var net dynamo.Vec3
	for _, f := range forces {
		net = net.Add(f)
	}
	d.NetForce = net.Norm()
	return d, nil
}

// Verify evaluates positions through the cell list and through the all-pairs
// reference and compares the two.
func (e *Evaluator) Verify(positions []dynamo.Vec3) (Deviation, error) {
	sample, forces, err := e.Evaluate(positions)
	if err != nil {
		return Deviation{}, err
	}
	return Compare(sample, forces, e.lj.Direct(e.box, positions))
}

func flatten(v []dynamo.Vec3) []float64 {
	out := make([]float64, 0, 3*len(v))
	for _, f := range v {
		out = append(out, f[0], f[1], f[2])
	}
	return out
}

func relative(got, want float64) float64 {
	return math.Abs(got-want) / math.Max(1, math.Abs(want))
}
