package replay

import (
	"fmt"
	"testing"
	"time"

	"github.com/san-kum/gravitywell/internal/vec"
)

func TestRingKeepsNewest(t *testing.T) {
	b := NewBuffer(5)
	for i := 0; i < 7; i++ {
		b.Open(vec.Vec2{float64(i), 0})
		b.Commit(fmt.Sprintf("attempt%d", i), time.Duration(i)*time.Second)
	}

	if b.Len() != 5 {
		t.Fatalf("expected 5 records, got %d", b.Len())
	}
	entries := b.Entries()
	for i, r := range entries {
		want := 6 - i
		if r.Outcome != fmt.Sprintf("attempt%d", want) || r.Velocity[0] != float64(want) {
			t.Errorf("entry %d: expected attempt%d, got %+v", i, want, r)
		}
	}
	if _, ok := b.At(5); ok {
		t.Error("expected no sixth record")
	}
}

func TestCommitWithoutOpen(t *testing.T) {
	b := NewBuffer(3)
	if b.Commit(Reset, 0) {
		t.Error("commit without an open attempt should be ignored")
	}
	b.Open(vec.Vec2{0, -18})
	if !b.Pending() {
		t.Error("expected pending attempt")
	}
	if !b.Commit("moon", 1500*time.Millisecond) {
		t.Fatal("commit failed")
	}
	if b.Commit(Reset, 2*time.Second) {
		t.Error("attempt already closed")
	}

	r, ok := b.Latest()
	if !ok || r.Outcome != "moon" || r.Elapsed != 1500*time.Millisecond || r.Velocity != (vec.Vec2{0, -18}) {
		t.Errorf("unexpected latest record %+v", r)
	}
}

func TestCapacityClamp(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, 1},
		{-3, 1},
		{5, 5},
	}
	for _, tt := range tests {
		if got := NewBuffer(tt.in).Cap(); got != tt.want {
			t.Errorf("capacity %d: expected %d, got %d", tt.in, tt.want, got)
		}
	}
}

func TestRestore(t *testing.T) {
	b := NewBuffer(3)
	b.Restore([]Record{
		{Outcome: "c"},
		{Outcome: "b"},
		{Outcome: "a"},
		{Outcome: "dropped"},
	})
	if b.Len() != 3 {
		t.Fatalf("expected 3 records, got %d", b.Len())
	}
	if r, _ := b.Latest(); r.Outcome != "c" {
		t.Errorf("expected newest c, got %s", r.Outcome)
	}

	b.Open(vec.Zero)
	b.Commit(Escaped, time.Second)
	got := b.Entries()
	if got[0].Outcome != Escaped || got[1].Outcome != "c" || got[2].Outcome != "b" {
		t.Errorf("unexpected order after restore: %+v", got)
	}
}
