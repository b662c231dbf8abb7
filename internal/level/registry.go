package level

import (
	"fmt"
	"sort"
)

// Registry holds the levels available to the game, keyed by ID.
type Registry struct {
	levels map[int]*Level
}

// NewRegistry returns a registry preloaded with the built-in levels.
func NewRegistry() *Registry {
	r := &Registry{levels: make(map[int]*Level)}
	for _, l := range builtin() {
		r.levels[l.ID] = l
	}
	return r
}

func (r *Registry) Get(id int) (*Level, error) {
	l, ok := r.levels[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownLevel, id)
	}
	return l, nil
}

// Add registers l, replacing any level with the same ID.
func (r *Registry) Add(l *Level) error {
	if err := l.Validate(); err != nil {
		return err
	}
	r.levels[l.ID] = l
	return nil
}

// AddFile loads a level file and registers it.
func (r *Registry) AddFile(path string) (*Level, error) {
	l, err := Load(path)
	if err != nil {
		return nil, err
	}
	return l, r.Add(l)
}

// List returns the level IDs in ascending order.
func (r *Registry) List() []int {
	ids := make([]int, 0, len(r.levels))
	for id := range r.levels {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func (r *Registry) Len() int { return len(r.levels) }
