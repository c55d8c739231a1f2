package metrics

import (
	"math"

	"github.com/san-kum/ljcell/internal/dynamo"
)

// Stability is the fraction of samples that did not fail and whose energy and
// virial are finite.
type Stability struct {
	name       string
	violations int
	samples    int
}

func NewStability() *Stability {
	return &Stability{name: "stability"}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(sample dynamo.Sample) {
	s.samples++
	if sample.Failed || !finite(sample.PotentialEnergy) || !finite(sample.PressureVirial) {
		s.violations++
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
