package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/gravitywell/internal/sim"
	"github.com/san-kum/gravitywell/internal/vec"
)

const (
	metadataFile   = "metadata.json"
	trajectoryFile = "trajectory.csv"
)

var trajectoryHeader = []string{"tick", "time", "x", "y", "vx", "vy", "target_distance", "score"}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) BaseDir() string { return s.baseDir }

type RunMetadata struct {
	ID        string             `json:"id"`
	Level     int                `json:"level"`
	LevelName string             `json:"level_name"`
	Timestamp time.Time          `json:"timestamp"`
	Speed     float64            `json:"speed"`
	Angle     float64            `json:"angle"`
	Gravity   float64            `json:"gravity"`
	TickRate  float64            `json:"tick_rate"`
	MaxTicks  int                `json:"max_ticks"`
	Outcome   string             `json:"outcome"`
	Elapsed   float64            `json:"elapsed"`
	Steps     int                `json:"steps"`
	Complete  bool               `json:"complete"`
	Facts     []string           `json:"facts"`
	Metrics   map[string]float64 `json:"metrics"`
}

// NewMetadata fills the outcome fields of meta from result.
func NewMetadata(meta RunMetadata, result *sim.Result) RunMetadata {
	meta.Outcome = result.Outcome
	meta.Elapsed = result.Elapsed.Seconds()
	meta.Steps = result.StepsTaken
	meta.Complete = result.Complete
	meta.Metrics = result.Metrics
	meta.Facts = make([]string, 0, len(result.Facts))
	for _, f := range result.Facts {
		meta.Facts = append(meta.Facts, f.String())
	}
	return meta
}

func (s *Store) Save(meta RunMetadata, result *sim.Result) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("lvl%d_%d", meta.Level, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta = NewMetadata(meta, result)
	meta.ID = runID
	meta.Timestamp = now

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, trajectoryFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := WriteTrajectory(csvFile, result.Samples); err != nil {
		return "", err
	}
	return runID, nil
}

// WriteTrajectory writes samples as CSV with a header row.
func WriteTrajectory(out io.Writer, samples []sim.Sample) error {
	w := csv.NewWriter(out)
	if err := w.Write(trajectoryHeader); err != nil {
		return err
	}
	for _, smp := range samples {
		row := []string{
			strconv.Itoa(smp.Tick),
			formatFloat(smp.Time),
			formatFloat(smp.Position[0]),
			formatFloat(smp.Position[1]),
			formatFloat(smp.Velocity[0]),
			formatFloat(smp.Velocity[1]),
			formatFloat(smp.TargetDistance),
			formatFloat(smp.Score),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 6, 64)
}

// List returns stored runs, oldest first. Directories without readable
// metadata are skipped.
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

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return &meta, nil
}

// Latest returns the ID of the most recent run.
func (s *Store) Latest() (string, error) {
	runs, err := s.List()
	if err != nil {
		return "", err
	}
	if len(runs) == 0 {
		return "", fmt.Errorf("no runs in %s", s.baseDir)
	}
	return runs[len(runs)-1].ID, nil
}

func (s *Store) LoadTrajectory(runID string) ([]sim.Sample, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, trajectoryFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) < 2 {
		return []sim.Sample{}, nil
	}

	samples := make([]sim.Sample, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) != len(trajectoryHeader) {
			continue
		}
		tick, err := strconv.Atoi(record[0])
		if err != nil {
			continue
		}
		vals := make([]float64, len(record)-1)
		ok := true
		for j := range vals {
			if vals[j], err = strconv.ParseFloat(record[j+1], 64); err != nil {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}
		samples = append(samples, sim.Sample{
			Tick:           tick,
			Time:           vals[0],
			Position:       vec.Vec2{vals[1], vals[2]},
			Velocity:       vec.Vec2{vals[3], vals[4]},
			TargetDistance: vals[5],
			Score:          vals[6],
		})
	}

	return samples, nil
}
