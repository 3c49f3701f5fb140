package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/cellsolve/internal/odesys"
)

// Store persists runs under a base directory, one subdirectory per run with
// metadata.json and trajectory.csv.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string    `json:"id"`
	Model     string    `json:"model"`
	Solver    string    `json:"solver"`
	Timestamp time.Time `json:"timestamp"`
	Start     float64   `json:"start"`
	End       float64   `json:"end"`
	StepSize  float64   `json:"step_size"`
	Samples   int       `json:"samples"`
	Partial   bool      `json:"partial"`
	ElapsedMS float64   `json:"elapsed_ms"`
	Labels    []string  `json:"labels,omitempty"`
}

func (s *Store) Save(meta RunMetadata, tr *odesys.Trajectory) (string, error) {
	runID := fmt.Sprintf("%s_%d", meta.Model, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = time.Now()
	meta.Samples = tr.Len()

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "trajectory.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := WriteCSV(csvFile, tr, meta.Labels); err != nil {
		return "", err
	}

	return runID, nil
}

// WriteCSV writes a trajectory as rows of time plus one column per state.
func WriteCSV(w io.Writer, tr *odesys.Trajectory, labels []string) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{"time"}
	for i := range tr.Series {
		name := fmt.Sprintf("x%d", i)
		if i < len(labels) && labels[i] != "" {
			name = labels[i]
		}
		header = append(header, name)
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for i := 0; i < tr.Len(); i++ {
		row := []string{strconv.FormatFloat(tr.Times[i], 'g', -1, 64)}
		for j := range tr.Series {
			row = append(row, strconv.FormatFloat(tr.Series[j][i], 'g', -1, 64))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	return cw.Error()
}

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

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

func (s *Store) LoadTrajectory(runID string) (*odesys.Trajectory, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "trajectory.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) < 1 {
		return odesys.NewTrajectory(0), nil
	}

	tr := odesys.NewTrajectory(len(records[0]) - 1)
	state := make(odesys.State, len(records[0])-1)

	for _, record := range records[1:] {
		if len(record) != len(records[0]) {
			continue
		}
		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}
		for j := 1; j < len(record); j++ {
			v, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				v = 0
			}
			state[j-1] = v
		}
		tr.Append(t, state)
	}

	return tr, nil
}

// ExportJSON writes a run's metadata and full trajectory as one JSON
// document.
func ExportJSON(w io.Writer, meta *RunMetadata, tr *odesys.Trajectory) error {
	doc := struct {
		RunMetadata
		Times  []float64   `json:"times"`
		Series [][]float64 `json:"series"`
	}{
		RunMetadata: *meta,
		Times:       tr.Times,
		Series:      tr.Series,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
