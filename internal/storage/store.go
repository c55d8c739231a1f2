package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/xid"

	"github.com/san-kum/ljcell/internal/dynamo"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type PotentialParams struct {
	Sigma   float64 `json:"sigma"`
	Epsilon float64 `json:"epsilon"`
	Cutoff  float64 `json:"cutoff"`
}

// RunMetadata describes one stored force evaluation.
type RunMetadata struct {
	ID              string             `json:"id"`
	Name            string             `json:"name"`
	Timestamp       time.Time          `json:"timestamp"`
	Seed            int64              `json:"seed"`
	Potential       PotentialParams    `json:"potential"`
	Box             dynamo.Vec3        `json:"box"`
	Dims            [3]int             `json:"dims"`
	Workers         int                `json:"workers"`
	NumAtoms        int                `json:"num_atoms"`
	PotentialEnergy float64            `json:"potential_energy"`
	PressureVirial  float64            `json:"pressure_virial"`
	Pairs           uint64             `json:"pairs"`
	Elapsed         time.Duration      `json:"elapsed_ns"`
	Metrics         map[string]float64 `json:"metrics,omitempty"`
}

// Save writes meta and the per-atom positions and forces under a new run
// directory and returns its ID. meta.ID and meta.Timestamp are filled in.
func (s *Store) Save(meta RunMetadata, positions, forces []dynamo.Vec3) (string, error) {
	if len(positions) != len(forces) {
		return "", fmt.Errorf("%d positions but %d forces", len(positions), len(forces))
	}

	now := time.Now()
	runID := meta.Name + "_" + xid.New().String()
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = now
	meta.NumAtoms = len(positions)

	if err := writeJSON(filepath.Join(runDir, "metadata.json"), meta); err != nil {
		return "", err
	}
	if err := writeForces(filepath.Join(runDir, "forces.csv"), positions, forces); err != nil {
		return "", err
	}
	return runID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeForces(path string, positions, forces []dynamo.Vec3) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"id", "x", "y", "z", "fx", "fy", "fz"}); err != nil {
		return err
	}

	row := make([]string, 7)
	for i := range positions {
		row[0] = strconv.Itoa(i)
		for axis := 0; axis < 3; axis++ {
			row[1+axis] = strconv.FormatFloat(positions[i][axis], 'g', -1, 64)
			row[4+axis] = strconv.FormatFloat(forces[i][axis], 'g', -1, 64)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// List returns every readable run, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		if !runs[i].Timestamp.Equal(runs[j].Timestamp) {
			return runs[i].Timestamp.Before(runs[j].Timestamp)
		}
		return idSuffix(runs[i].ID) < idSuffix(runs[j].ID)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	metaPath := filepath.Join(s.baseDir, runID, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}

	return &meta, nil
}

// LoadForces reads back the positions and forces of a run in atom order.
func (s *Store) LoadForces(runID string) ([]dynamo.Vec3, []dynamo.Vec3, error) {
	csvPath := filepath.Join(s.baseDir, runID, "forces.csv")
	file, err := os.Open(csvPath)
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = 7

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("run %s: %w", runID, err)
	}
	if len(records) < 2 {
		return []dynamo.Vec3{}, []dynamo.Vec3{}, nil
	}

	positions := make([]dynamo.Vec3, len(records)-1)
	forces := make([]dynamo.Vec3, len(records)-1)
	for i, record := range records[1:] {
		id, err := strconv.Atoi(record[0])
		if err != nil || id < 0 || id >= len(positions) {
			return nil, nil, fmt.Errorf("run %s: bad atom id %q on line %d", runID, record[0], i+2)
		}
		for axis := 0; axis < 3; axis++ {
			if positions[id][axis], err = strconv.ParseFloat(record[1+axis], 64); err != nil {
				return nil, nil, fmt.Errorf("run %s line %d: %w", runID, i+2, err)
			}
			if forces[id][axis], err = strconv.ParseFloat(record[4+axis], 64); err != nil {
				return nil, nil, fmt.Errorf("run %s line %d: %w", runID, i+2, err)
			}
		}
	}

	return positions, forces, nil
}

// idSuffix returns the xid part of a run ID. xids sort in creation order.
func idSuffix(id string) string {
	return id[strings.LastIndexByte(id, '_')+1:]
}
