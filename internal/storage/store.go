package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/picbunch/internal/profile"
	"github.com/san-kum/picbunch/internal/species"
)

const (
	speciesFile  = "species.json"
	metadataFile = "metadata.json"
	lineOutFile  = "lineout.csv"
)

type Store struct {
	baseDir string
	now     func() time.Time
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, now: time.Now}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID             string    `json:"id"`
	Species        string    `json:"species"`
	Particle       string    `json:"particle"`
	Timestamp      time.Time `json:"timestamp"`
	RMSBunchSizeSI float64   `json:"rms_bunch_size_si"`
	MaxDensitySI   float64   `json:"max_density_si"`
	Gamma          float64   `json:"gamma,omitempty"`
	TemperatureKeV float64   `json:"temperature_kev,omitempty"`
	LineOutAxis    string    `json:"lineout_axis"`
}

// LineOut is a density sample along one axis.
type LineOut struct {
	Axis     profile.Axis
	Position []float64
	Density  []float64
}

// Save writes a run directory for sp. metadata.json goes last, so a run
// only shows up in List once its species and line-out are on disk. The
// directory is removed if any write fails.
func (s *Store) Save(sp *species.Species, lo LineOut) (runID string, err error) {
	if len(lo.Position) != len(lo.Density) {
		return "", fmt.Errorf("storage: lineout has %d positions and %d densities", len(lo.Position), len(lo.Density))
	}

	ts := s.now()
	runID = fmt.Sprintf("%s_%d", sp.Name, ts.Unix())
	runDir := filepath.Join(s.baseDir, runID)
	for i := 1; ; i++ {
		if _, err := os.Stat(runDir); err != nil {
			break
		}
		runID = fmt.Sprintf("%s_%d_%d", sp.Name, ts.Unix(), i)
		runDir = filepath.Join(s.baseDir, runID)
	}

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}
	defer func() {
		if err != nil {
			os.RemoveAll(runDir)
			runID = ""
		}
	}()

	if err := writeJSON(filepath.Join(runDir, speciesFile), sp); err != nil {
		return "", fmt.Errorf("storage: run %s: %w", runID, err)
	}
	if err := writeLineOut(filepath.Join(runDir, lineOutFile), lo); err != nil {
		return "", fmt.Errorf("storage: run %s: %w", runID, err)
	}

	meta := RunMetadata{
		ID:          runID,
		Species:     sp.Name,
		Particle:    sp.Particle.Name,
		Timestamp:   ts,
		LineOutAxis: lo.Axis.String(),
	}
	if sp.Density != nil {
		meta.RMSBunchSizeSI = sp.Density.RMSBunchSizeSI
		meta.MaxDensitySI = sp.Density.MaxDensitySI
	}
	if sp.Drift != nil {
		meta.Gamma = sp.Drift.Gamma
	}
	if sp.Temperature != nil {
		meta.TemperatureKeV = sp.Temperature.KeV
	}
	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", fmt.Errorf("storage: run %s: %w", runID, err)
	}

	return runID, nil
}

func writeLineOut(path string, lo LineOut) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{lo.Axis.String(), "density"}); err != nil {
		return err
	}
	for i := range lo.Position {
		row := []string{
			strconv.FormatFloat(lo.Position[i], 'g', -1, 64),
			strconv.FormatFloat(lo.Density[i], 'g', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
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

// List returns all stored runs, oldest first.
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

	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

func (s *Store) LoadSpecies(runID string) (*species.Species, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, speciesFile))
	if err != nil {
		return nil, err
	}

	var sp species.Species
	if err := json.Unmarshal(data, &sp); err != nil {
		return nil, fmt.Errorf("storage: run %s: %w", runID, err)
	}
	return &sp, nil
}

func (s *Store) LoadLineOut(runID string) (*LineOut, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, lineOutFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 || len(records[0]) != 2 {
		return nil, fmt.Errorf("storage: run %s: malformed %s", runID, lineOutFile)
	}

	axis, err := profile.ParseAxis(records[0][0])
	if err != nil {
		return nil, err
	}

	lo := &LineOut{
		Axis:     axis,
		Position: make([]float64, 0, len(records)-1),
		Density:  make([]float64, 0, len(records)-1),
	}
	for _, record := range records[1:] {
		p, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			return nil, fmt.Errorf("storage: run %s: %w", runID, err)
		}
		d, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return nil, fmt.Errorf("storage: run %s: %w", runID, err)
		}
		lo.Position = append(lo.Position, p)
		lo.Density = append(lo.Density, d)
	}

	return lo, nil
}
