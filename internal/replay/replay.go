// Package replay keeps a fixed-size ring of past launch attempts.
package replay

import (
	"time"

	"github.com/san-kum/gravitywell/internal/vec"
)

const (
	DefaultCapacity = 5

	Escaped = "escaped"
	Reset   = "reset"
)

// Record is one launch attempt. Outcome is the name of the body the hero
// hit, Escaped or Reset.
type Record struct {
	Velocity vec.Vec2      `msgpack:"velocity"`
	Outcome  string        `msgpack:"outcome"`
	Elapsed  time.Duration `msgpack:"elapsed"`
}

type Buffer struct {
	slots   []Record
	next    int
	size    int
	pending bool
}

func NewBuffer(capacity int) *Buffer {
	if capacity < 1 {
		capacity = 1
	}
	return &Buffer{slots: make([]Record, capacity)}
}

func (b *Buffer) Cap() int      { return len(b.slots) }
func (b *Buffer) Len() int      { return b.size }
func (b *Buffer) Pending() bool { return b.pending }

// Open starts a new attempt in the next slot, replacing the oldest record
// once the ring is full.
func (b *Buffer) Open(v vec.Vec2) {
	b.slots[b.next] = Record{Velocity: v}
	b.pending = true
}

// Commit closes the open attempt and advances the ring. It reports false
// when no attempt is open.
func (b *Buffer) Commit(outcome string, elapsed time.Duration) bool {
	if !b.pending {
		return false
	}
	b.slots[b.next].Outcome = outcome
	b.slots[b.next].Elapsed = elapsed
	b.pending = false
	b.next = (b.next + 1) % len(b.slots)
	if b.size < len(b.slots) {
		b.size++
	}
	return true
}

// At returns the i-th most recent committed record.
func (b *Buffer) At(i int) (Record, bool) {
	if i < 0 || i >= b.size {
		return Record{}, false
	}
	idx := (b.next - 1 - i + 2*len(b.slots)) % len(b.slots)
	return b.slots[idx], true
}

func (b *Buffer) Latest() (Record, bool) { return b.At(0) }

// Entries lists committed records, newest first.
func (b *Buffer) Entries() []Record {
	out := make([]Record, 0, b.size)
	for i := 0; i < b.size; i++ {
		r, _ := b.At(i)
		out = append(out, r)
	}
	return out
}

// Restore replaces the contents with records given newest first. Records
// beyond the capacity are dropped.
func (b *Buffer) Restore(records []Record) {
	for i := range b.slots {
		b.slots[i] = Record{}
	}
	b.next, b.size, b.pending = 0, 0, false
	if len(records) > len(b.slots) {
		records = records[:len(b.slots)]
	}
	for i := len(records) - 1; i >= 0; i-- {
		b.slots[b.next] = records[i]
		b.next = (b.next + 1) % len(b.slots)
		b.size++
	}
}
