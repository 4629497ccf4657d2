package storage

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/avelk/pendlab/internal/pendulum"
)

// ExportData is the flat JSON form of a stored run.
type ExportData struct {
	ID         string             `json:"id"`
	Integrator string             `json:"integrator"`
	Dt         float64            `json:"dt"`
	Duration   float64            `json:"duration"`
	Params     pendulum.Params    `json:"params"`
	Steps      int                `json:"steps"`
	Times      []float64          `json:"times"`
	States     [][4]float64       `json:"states"`
	Metrics    map[string]float64 `json:"metrics"`
}

// ExportJSON writes a run as indented JSON.
func ExportJSON(w io.Writer, meta *RunMetadata, states []pendulum.State, times []float64) error {
	data := ExportData{
		ID:         meta.ID,
		Integrator: meta.Integrator,
		Dt:         meta.Dt,
		Duration:   meta.Duration,
		Params:     meta.Params,
		Steps:      len(times),
		Times:      times,
		States:     make([][4]float64, len(states)),
		Metrics:    meta.Metrics,
	}
	for i, s := range states {
		data.States[i] = s.Vector()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// ExportCSV writes a run's trajectory in the states.csv column layout.
func ExportCSV(w io.Writer, states []pendulum.State, times []float64) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(stateColumns); err != nil {
		return err
	}

	for i, s := range states {
		row := []string{strconv.FormatFloat(times[i], 'f', 6, 64)}
		for _, v := range s.Vector() {
			row = append(row, strconv.FormatFloat(v, 'f', 6, 64))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	return nil
}
