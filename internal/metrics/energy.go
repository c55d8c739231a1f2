package metrics

import (
	"math"

	"github.com/san-kum/ljcell/internal/dynamo"
)

// MeanEnergy averages the potential energy per atom over observed samples.
type MeanEnergy struct {
	name    string
	samples int
	total   float64
}

func NewMeanEnergy() *MeanEnergy {
	return &MeanEnergy{name: "energy_per_atom"}
}

func (e *MeanEnergy) Name() string { return e.name }

func (e *MeanEnergy) Observe(s dynamo.Sample) {
	if s.Failed || s.NumAtoms == 0 {
		return
	}
	e.total += s.PotentialEnergy / float64(s.NumAtoms)
	e.samples++
}

func (e *MeanEnergy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.total / float64(e.samples)
}

func (e *MeanEnergy) Reset() {
	e.total = 0
	e.samples = 0
}

// EnergyDrift tracks the largest relative deviation of the potential energy
// from the first observed sample. Repeated evaluations of one configuration
// should keep it at rounding level. Failed samples are skipped.
type EnergyDrift struct {
	name          string
	initialEnergy float64
	maxDrift      float64
	samples       int
}

func NewEnergyDrift() *EnergyDrift {
	return &EnergyDrift{name: "energy_drift"}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(s dynamo.Sample) {
	if s.Failed {
		return
	}
	if e.samples == 0 {
		e.initialEnergy = s.PotentialEnergy
	}
	e.samples++

	drift := math.Abs(s.PotentialEnergy - e.initialEnergy)
	if e.initialEnergy != 0 {
		drift /= math.Abs(e.initialEnergy)
	}
	e.maxDrift = math.Max(e.maxDrift, drift)
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}
