package config

import "sort"

var Presets = map[string]*Config{
	"argon": {
		Potential: PotentialConfig{Sigma: 1.0, Epsilon: 1.0, Cutoff: 2.5},
		System:    SystemConfig{Lattice: LatticeFCC, UnitCells: 6, Density: 0.8442, Jitter: 0.05},
		Seed:      1, Repeats: 10,
	},
	"solid": {
		Potential: PotentialConfig{Sigma: 1.0, Epsilon: 1.0, Cutoff: 2.5},
		System:    SystemConfig{Lattice: LatticeFCC, UnitCells: 10, Density: 1.0},
		Seed:      1, Repeats: 10,
	},
	"liquid": {
		Potential: PotentialConfig{Sigma: 1.0, Epsilon: 1.0, Cutoff: 2.5},
		System:    SystemConfig{Lattice: LatticeRandom, NumAtoms: 2000, Density: 0.8, MinDistance: 0.85},
		Seed:      7, Repeats: 10,
	},
	"gas": {
		Potential: PotentialConfig{Sigma: 1.0, Epsilon: 1.0, Cutoff: 3.0},
		System:    SystemConfig{Lattice: LatticeRandom, NumAtoms: 500, Box: [3]float64{20, 20, 20}, MinDistance: 0.9},
		Seed:      3, Repeats: 20,
	},
	"slab": {
		Potential: PotentialConfig{Sigma: 1.0, Epsilon: 1.0, Cutoff: 2.5},
		System:    SystemConfig{Lattice: LatticeRandom, NumAtoms: 1500, Box: [3]float64{12, 12, 30}, MinDistance: 0.85},
		Seed:      11, Repeats: 10,
	},
}

// GetPreset returns a copy of the named preset, or nil if there is none.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
