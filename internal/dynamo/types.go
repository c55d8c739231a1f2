package dynamo

import (
	"fmt"
	"math"
	"time"
)

type Vec3 [3]float64

func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v[0] + o[0], v[1] + o[1], v[2] + o[2]} }
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v[0] - o[0], v[1] - o[1], v[2] - o[2]} }

func (v Vec3) Scale(f float64) Vec3 { return Vec3{v[0] * f, v[1] * f, v[2] * f} }

func (v Vec3) Dot(o Vec3) float64 { return v[0]*o[0] + v[1]*o[1] + v[2]*o[2] }

func (v Vec3) Norm() float64 { return math.Sqrt(v.Dot(v)) }

func (v Vec3) IsValid() bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// Box is an orthorhombic periodic simulation box with edge lengths L.
type Box struct {
	L Vec3
}

func NewBox(lx, ly, lz float64) (Box, error) {
	b := Box{L: Vec3{lx, ly, lz}}
	for axis, l := range b.L {
		if !(l > 0) || math.IsInf(l, 0) {
			return Box{}, fmt.Errorf("%w: box edge %d must be positive and finite, got %g", ErrInvalidParameter, axis, l)
		}
	}
	return b, nil
}

func CubicBox(l float64) (Box, error) { return NewBox(l, l, l) }

func (b Box) Half() Vec3 { return b.L.Scale(0.5) }

func (b Box) Volume() float64 { return b.L[0] * b.L[1] * b.L[2] }

func (b Box) ShortestEdge() float64 { return math.Min(b.L[0], math.Min(b.L[1], b.L[2])) }

// Wrap maps p into [0, L) along every axis.
func (b Box) Wrap(p Vec3) Vec3 {
	for axis := range p {
		p[axis] -= b.L[axis] * math.Floor(p[axis]/b.L[axis])
		// Floor can round a tiny negative value up to exactly L.
		if p[axis] >= b.L[axis] {
			p[axis] = 0
		}
	}
	return p
}

// MinimumImage returns the displacement to the nearest periodic image of d.
// Components farther than one box edge are not folded.
func (b Box) MinimumImage(d Vec3) Vec3 {
	half := b.Half()
	for axis := range d {
		if d[axis] < -half[axis] {
			d[axis] += b.L[axis]
		} else if d[axis] > half[axis] {
			d[axis] -= b.L[axis]
		}
	}
	return d
}

// Sample is the outcome of one force evaluation.
type Sample struct {
	NumAtoms        int
	PotentialEnergy float64
	PressureVirial  float64
	Pairs           uint64
	Elapsed         time.Duration

	// Failed marks an evaluation that produced an error; its values are not
	// usable.
	Failed bool
}

type Metric interface {
	Name() string
	Observe(s Sample)
	Value() float64
	Reset()
}

// TimingFunc receives the wall time spent in a named section.
type TimingFunc func(name string, elapsed time.Duration)
