package sim

import (
	"fmt"

	"github.com/san-kum/gravitywell/internal/replay"
	"github.com/san-kum/gravitywell/internal/scoring"
)

// Snapshot is the progress that outlives a session: scores, unlocked facts
// and recent attempts for one level.
type Snapshot struct {
	Level    int                `msgpack:"level"`
	Scores   map[string]float64 `msgpack:"scores"`
	Facts    []scoring.FactKey  `msgpack:"facts"`
	Replay   []replay.Record    `msgpack:"replay"`
	Complete bool               `msgpack:"complete"`
}

func (w *World) Snapshot() Snapshot {
	return Snapshot{
		Level:    w.level,
		Scores:   w.Scores(),
		Facts:    w.facts.Completed(),
		Replay:   w.replay.Entries(),
		Complete: w.levelComplete,
	}
}

// Restore loads progress into a world built for the same level. Scores for
// bodies the level no longer has are ignored.
func (w *World) Restore(s Snapshot) error {
	if s.Level != w.level {
		return fmt.Errorf("%w: snapshot level %d, world level %d", ErrSnapshotLevel, s.Level, w.level)
	}
	for name, points := range s.Scores {
		if b, ok := w.bodies[name]; ok {
			b.SetPoints(points)
		}
	}
	w.facts.Restore(s.Facts)
	w.replay.Restore(s.Replay)
	w.levelComplete = s.Complete
	w.log.Info("progress restored", "facts", len(s.Facts), "attempts", len(s.Replay))
	return nil
}
