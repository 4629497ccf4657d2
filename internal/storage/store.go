// Package storage persists simulation runs: one directory per run with
// metadata.json and a states.csv of the recorded trajectory.
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

	"github.com/avelk/pendlab/internal/pendulum"
	"github.com/avelk/pendlab/internal/sim"
)

var stateColumns = []string{"time", "theta1", "theta2", "omega1", "omega2"}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunMetadata describes a stored run.
type RunMetadata struct {
	ID         string             `json:"id"`
	Timestamp  time.Time          `json:"timestamp"`
	Dt         float64            `json:"dt"`
	Duration   float64            `json:"duration"`
	Integrator string             `json:"integrator"`
	Params     pendulum.Params    `json:"params"`
	InitState  pendulum.State     `json:"init_state"`
	Metrics    map[string]float64 `json:"metrics"`
}

// Save writes a run directory and returns its id.
func (s *Store) Save(dt, duration float64, integrator string, params pendulum.Params, x0 pendulum.State, result *sim.Result) (string, error) {
	runID := fmt.Sprintf("run_%d", time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:         runID,
		Timestamp:  time.Now(),
		Dt:         dt,
		Duration:   duration,
		Integrator: integrator,
		Params:     params,
		InitState:  x0,
		Metrics:    result.Metrics,
	}

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

	csvFile, err := os.Create(filepath.Join(runDir, "states.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write(stateColumns); err != nil {
		return "", err
	}

	for i, st := range result.States {
		row := make([]string, 0, 5)
		row = append(row, strconv.FormatFloat(result.Times[i], 'f', 6, 64))
		for _, v := range st.Vector() {
			row = append(row, strconv.FormatFloat(v, 'g', 17, 64))
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

// Load reads metadata for a run id.
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

// LoadStates reads the recorded trajectory of a run.
func (s *Store) LoadStates(runID string) ([]pendulum.State, []float64, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, "states.csv"))
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("storage: empty states file for %s", runID)
	}

	states := make([]pendulum.State, 0, len(rows)-1)
	times := make([]float64, 0, len(rows)-1)

	for _, row := range rows[1:] {
		if len(row) != len(stateColumns) {
			return nil, nil, fmt.Errorf("storage: malformed row in %s", runID)
		}
		vals := make([]float64, len(row))
		for i, cell := range row {
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, nil, fmt.Errorf("storage: bad value %q in %s: %w", cell, runID, err)
			}
			vals[i] = v
		}
		times = append(times, vals[0])
		states = append(states, pendulum.State{
			Theta1: vals[1], Theta2: vals[2],
			Omega1: vals[3], Omega2: vals[4],
		})
	}

	return states, times, nil
}

// List returns metadata for all stored runs, newest first.
func (s *Store) List() ([]*RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	runs := make([]*RunMetadata, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		meta, err := s.Load(e.Name())
		if err != nil {
			continue
		}
		runs = append(runs, meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})

	return runs, nil
}
