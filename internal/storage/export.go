package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/picbunch/internal/species"
)

// ExportData is the rendering handed to the simulation setup.
type ExportData struct {
	Species []*species.Species `json:"species"`
}

func ExportJSON(path string, sp ...*species.Species) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return Export(file, sp...)
}

func Export(w io.Writer, sp ...*species.Species) error {
	data := ExportData{Species: make([]*species.Species, 0, len(sp))}
	data.Species = append(data.Species, sp...)

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
