package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/san-kum/gravitywell/internal/sim"
)

const progressDir = "progress"

// SnapshotPath is where progress for a level is kept.
func (s *Store) SnapshotPath(level int) string {
	return filepath.Join(s.baseDir, progressDir, fmt.Sprintf("lvl_%d.msgpack", level))
}

func (s *Store) SaveProgress(snap sim.Snapshot) error {
	path := s.SnapshotPath(snap.Level)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return SaveSnapshot(path, snap)
}

// LoadProgress returns the stored progress for level. ok is false when
// nothing was saved yet.
func (s *Store) LoadProgress(level int) (snap sim.Snapshot, ok bool, err error) {
	snap, err = LoadSnapshot(s.SnapshotPath(level))
	if os.IsNotExist(err) {
		return sim.Snapshot{}, false, nil
	}
	if err != nil {
		return sim.Snapshot{}, false, err
	}
	return snap, true, nil
}

func SaveSnapshot(path string, snap sim.Snapshot) error {
	data, err := msgpack.Marshal(&snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

func LoadSnapshot(path string) (sim.Snapshot, error) {
	var snap sim.Snapshot
	data, err := os.ReadFile(path)
	if err != nil {
		return snap, err
	}
	if err := msgpack.Unmarshal(data, &snap); err != nil {
		return snap, fmt.Errorf("decode snapshot %s: %w", path, err)
	}
	return snap, nil
}
