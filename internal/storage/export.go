package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/gravitywell/internal/sim"
)

type ExportData struct {
	Run     RunMetadata        `json:"run"`
	Steps   int                `json:"steps"`
	Times   []float64          `json:"times"`
	X       []float64          `json:"x"`
	Y       []float64          `json:"y"`
	Speed   []float64          `json:"speed"`
	Target  []float64          `json:"target_distance"`
	Score   []float64          `json:"score"`
	Metrics map[string]float64 `json:"metrics"`
}

func NewExportData(meta RunMetadata, samples []sim.Sample) ExportData {
	data := ExportData{
		Run:     meta,
		Steps:   len(samples),
		Times:   make([]float64, len(samples)),
		X:       make([]float64, len(samples)),
		Y:       make([]float64, len(samples)),
		Speed:   make([]float64, len(samples)),
		Target:  make([]float64, len(samples)),
		Score:   make([]float64, len(samples)),
		Metrics: meta.Metrics,
	}
	for i, s := range samples {
		data.Times[i] = s.Time
		data.X[i] = s.Position[0]
		data.Y[i] = s.Position[1]
		data.Speed[i] = s.Velocity.Len()
		data.Target[i] = s.TargetDistance
		data.Score[i] = s.Score
	}
	return data
}

// ExportJSON writes a stored run as one JSON document. An empty path
// writes to stdout.
func (s *Store) ExportJSON(runID, path string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	samples, err := s.LoadTrajectory(runID)
	if err != nil {
		return err
	}
	return writeFileOrStdout(path, func(w io.Writer) error {
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(NewExportData(*meta, samples))
	})
}

// ExportCSV writes the trajectory of a stored run. An empty path writes to
// stdout.
func (s *Store) ExportCSV(runID, path string) error {
	samples, err := s.LoadTrajectory(runID)
	if err != nil {
		return err
	}
	return writeFileOrStdout(path, func(w io.Writer) error {
		return WriteTrajectory(w, samples)
	})
}

func writeFileOrStdout(path string, write func(io.Writer) error) error {
	if path == "" {
		return write(os.Stdout)
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
