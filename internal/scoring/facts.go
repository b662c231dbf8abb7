package scoring

import (
	"fmt"

	"github.com/san-kum/gravitywell/internal/body"
)

type FactKey struct {
	Level int    `msgpack:"level"`
	Body  string `msgpack:"body"`
	Index int    `msgpack:"index"`
}

func (k FactKey) String() string {
	return fmt.Sprintf("fact_lvl_%d_%s_%d", k.Level, k.Body, k.Index)
}

// Tracker remembers which facts have fired in a run.
type Tracker struct {
	level     int
	completed map[FactKey]struct{}
	order     []FactKey
}

func NewTracker(level int) *Tracker {
	return &Tracker{level: level, completed: make(map[FactKey]struct{})}
}

func (t *Tracker) Level() int { return t.level }

// Check returns the facts newly unlocked by scores strictly above their
// thresholds, in body order then threshold order.
func (t *Tracker) Check(bodies []*body.Body) []FactKey {
	var fresh []FactKey
	for _, b := range bodies {
		for i, threshold := range b.PointLevels() {
			if !(b.Points() > threshold) {
				continue
			}
			key := FactKey{Level: t.level, Body: b.Name(), Index: i}
			if t.Done(key) {
				continue
			}
			t.mark(key)
			fresh = append(fresh, key)
		}
	}
	return fresh
}

func (t *Tracker) Done(key FactKey) bool {
	_, ok := t.completed[key]
	return ok
}

func (t *Tracker) Completed() []FactKey {
	return append([]FactKey(nil), t.order...)
}

// Restore marks keys as already fired, skipping any from another level.
func (t *Tracker) Restore(keys []FactKey) {
	for _, k := range keys {
		if k.Level == t.level && !t.Done(k) {
			t.mark(k)
		}
	}
}

func (t *Tracker) mark(key FactKey) {
	t.completed[key] = struct{}{}
	t.order = append(t.order, key)
}
