package md

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/san-kum/ljcell/internal/config"
	"github.com/san-kum/ljcell/internal/dynamo"
	"github.com/san-kum/ljcell/internal/lattice"
	"github.com/san-kum/ljcell/internal/potentials"
)

// System builds the initial positions and box described by cfg.
func System(cfg *config.Config) ([]dynamo.Vec3, dynamo.Box, error) {
	rng := rand.New(rand.NewSource(cfg.Seed))
	s := cfg.System

	switch s.Lattice {
	case config.LatticeFCC:
		positions, box, err := lattice.FCC(s.UnitCells, s.Density)
		if err != nil {
			return nil, dynamo.Box{}, err
		}
		if s.Jitter > 0 {
			lattice.Jitter(positions, box, s.Jitter, rng)
		}
		return positions, box, nil

	case config.LatticeRandom:
		var box dynamo.Box
		var err error
		if s.HasBox() {
			box, err = dynamo.NewBox(s.Box[0], s.Box[1], s.Box[2])
		} else {
			box, err = dynamo.CubicBox(math.Cbrt(float64(s.NumAtoms) / s.Density))
		}
		if err != nil {
			return nil, dynamo.Box{}, err
		}
		positions, err := lattice.Random(s.NumAtoms, box, s.MinDistance, rng)
		if err != nil {
			return nil, dynamo.Box{}, err
		}
		return positions, box, nil
	}
	return nil, dynamo.Box{}, fmt.Errorf("%w: unknown lattice %q", dynamo.ErrInvalidParameter, s.Lattice)
}

// FromConfig validates cfg and wires an Evaluator together with the initial
// positions. Extra options are applied after the ones derived from cfg.
func FromConfig(cfg *config.Config, opts ...potentials.Option) (*Evaluator, []dynamo.Vec3, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	positions, box, err := System(cfg)
	if err != nil {
		return nil, nil, err
	}

	base := []potentials.Option{potentials.WithWorkers(cfg.Workers)}
	if cfg.Debug {
		base = append(base, potentials.WithDebugChecks())
	}
	p := cfg.Potential
	lj, err := potentials.NewLennardJones(p.Sigma, p.Epsilon, p.Cutoff, append(base, opts...)...)
	if err != nil {
		return nil, nil, err
	}

	e, err := New(box, lj)
	if err != nil {
		return nil, nil, err
	}
	return e, positions, nil
}
