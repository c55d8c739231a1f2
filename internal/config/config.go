package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/ljcell/internal/dynamo"
)

const (
	DefaultSigma     = 1.0
	DefaultEpsilon   = 1.0
	DefaultCutoff    = 2.5
	DefaultUnitCells = 6
	DefaultDensity   = 0.8442
	DefaultRepeats   = 10
	DefaultSeed      = 1
)

const (
	LatticeFCC    = "fcc"
	LatticeRandom = "random"
)

// Config describes one evaluation setup. Workers of 0 means one per CPU.
type Config struct {
	Potential PotentialConfig `yaml:"potential"`
	System    SystemConfig    `yaml:"system"`
	Workers   int             `yaml:"workers"`
	Seed      int64           `yaml:"seed"`
	Debug     bool            `yaml:"debug"`
	Repeats   int             `yaml:"repeats"`
}

type PotentialConfig struct {
	Sigma   float64 `yaml:"sigma"`
	Epsilon float64 `yaml:"epsilon"`
	Cutoff  float64 `yaml:"cutoff"`
}

// SystemConfig describes the initial configuration. An fcc system is sized by
// unit_cells and density. A random system places num_atoms in box, or in a
// cube of the given density when box is left at zero.
type SystemConfig struct {
	Lattice     string     `yaml:"lattice"`
	UnitCells   int        `yaml:"unit_cells"`
	Density     float64    `yaml:"density"`
	NumAtoms    int        `yaml:"num_atoms"`
	Box         [3]float64 `yaml:"box,flow"`
	MinDistance float64    `yaml:"min_distance"`
	Jitter      float64    `yaml:"jitter"`
}

func DefaultConfig() *Config {
	return &Config{
		Potential: PotentialConfig{
			Sigma:   DefaultSigma,
			Epsilon: DefaultEpsilon,
			Cutoff:  DefaultCutoff,
		},
		System: SystemConfig{
			Lattice:   LatticeFCC,
			UnitCells: DefaultUnitCells,
			Density:   DefaultDensity,
		},
		Seed:    DefaultSeed,
		Repeats: DefaultRepeats,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// HasBox reports whether an explicit box was configured.
func (s SystemConfig) HasBox() bool {
	return s.Box != [3]float64{}
}

func (c *Config) Validate() error {
	p := c.Potential
	if !positive(p.Sigma) {
		return invalid("potential.sigma must be positive, got %g", p.Sigma)
	}
	if !(p.Epsilon >= 0) || math.IsInf(p.Epsilon, 0) {
		return invalid("potential.epsilon must be non-negative, got %g", p.Epsilon)
	}
	if !positive(p.Cutoff) {
		return invalid("potential.cutoff must be positive, got %g", p.Cutoff)
	}

	s := c.System
	switch s.Lattice {
	case LatticeFCC:
		if s.UnitCells < 1 {
			return invalid("system.unit_cells must be >= 1, got %d", s.UnitCells)
		}
		if !positive(s.Density) {
			return invalid("system.density must be positive, got %g", s.Density)
		}
	case LatticeRandom:
		if s.NumAtoms < 1 {
			return invalid("system.num_atoms must be >= 1, got %d", s.NumAtoms)
		}
		if s.HasBox() {
			for axis, l := range s.Box {
				if !positive(l) {
					return invalid("system.box[%d] must be positive, got %g", axis, l)
				}
			}
		} else if !positive(s.Density) {
			return invalid("system.density must be positive when no box is set, got %g", s.Density)
		}
	default:
		return invalid("system.lattice must be %q or %q, got %q", LatticeFCC, LatticeRandom, s.Lattice)
	}
	if s.MinDistance < 0 || s.Jitter < 0 {
		return invalid("system.min_distance and system.jitter must be non-negative")
	}

	if c.Workers < 0 {
		return invalid("workers must be >= 0, got %d", c.Workers)
	}
	if c.Repeats < 1 {
		return invalid("repeats must be >= 1, got %d", c.Repeats)
	}
	return nil
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{dynamo.ErrInvalidParameter}, args...)...)
}
