package storage

import (
	"encoding/json"
	"os"

	"github.com/san-kum/ljcell/internal/dynamo"
)

type ExportData struct {
	RunMetadata
	Positions []dynamo.Vec3 `json:"positions"`
	Forces    []dynamo.Vec3 `json:"forces"`
}

// ExportJSON writes a single self-contained JSON document for one evaluation.
func ExportJSON(path string, meta RunMetadata, positions, forces []dynamo.Vec3) error {
	meta.NumAtoms = len(positions)
	data := ExportData{
		RunMetadata: meta,
		Positions:   positions,
		Forces:      forces,
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
