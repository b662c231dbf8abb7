package analysis

import (
	"math"
	"strings"
	"testing"

	"github.com/san-kum/gravitywell/internal/sim"
	"github.com/san-kum/gravitywell/internal/vec"
)

func sine(n int, period, rate float64) []float64 {
	data := make([]float64, n)
	for i := range data {
		data[i] = 100 + 40*math.Sin(2*math.Pi*float64(i)/(period*rate))
	}
	return data
}

func TestPowerSpectrum(t *testing.T) {
	ps := PowerSpectrum(make([]float64, 100))
	if len(ps) != 64 {
		t.Errorf("expected 64 bins after padding to 128, got %d", len(ps))
	}
	if PowerSpectrum(nil) != nil {
		t.Error("expected nil spectrum for empty data")
	}

	data := sine(256, 2, 32)
	ps = PowerSpectrum(data)
	peak := 1
	for k := 2; k < len(ps); k++ {
		if ps[k] > ps[peak] {
			peak = k
		}
	}
	if peak != 4 {
		t.Errorf("expected peak in bin 4, got %d", peak)
	}
}

func TestDominantPeriod(t *testing.T) {
	tests := []struct {
		name   string
		data   []float64
		rate   float64
		want   float64
		margin float64
	}{
		{"aligned sine", sine(256, 2, 32), 32, 2, 1e-9},
		{"unaligned sine", sine(300, 3, 30), 30, 3, 0.5},
		{"flat", make([]float64, 64), 30, 0, 0},
		{"too short", []float64{1, 2, 3}, 30, 0, 0},
		{"bad rate", sine(64, 1, 30), 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DominantPeriod(tt.data, tt.rate)
			if math.Abs(got-tt.want) > tt.margin {
				t.Errorf("expected %v ± %v, got %v", tt.want, tt.margin, got)
			}
		})
	}
}

func samples() []sim.Sample {
	out := make([]sim.Sample, 5)
	for i := range out {
		out[i] = sim.Sample{
			Tick:           i,
			Time:           float64(i) / 30,
			Position:       vec.Vec2{float64(10 * i), float64(100 - 5*i)},
			Velocity:       vec.Vec2{3, 4},
			TargetDistance: float64(50 - i),
			Score:          float64(i * i),
		}
	}
	return out
}

func TestSeries(t *testing.T) {
	speed, err := Series(samples(), ColumnSpeed)
	if err != nil {
		t.Fatal(err)
	}
	for _, v := range speed {
		if v != 5 {
			t.Errorf("expected speed 5, got %v", v)
		}
	}
	x, _ := Series(samples(), ColumnX)
	if x[4] != 40 {
		t.Errorf("expected x 40, got %v", x[4])
	}
	if _, err := Series(samples(), "mass"); err == nil {
		t.Error("expected error for unknown column")
	}
	if len(Columns()) != 8 {
		t.Errorf("expected 8 columns, got %v", Columns())
	}
}

func TestCrossings(t *testing.T) {
	times := []float64{0, 1, 2, 3, 4, 5}
	series := []float64{0, 2, 0, 2, 0, 1}
	got := Crossings(times, series, 1)
	want := []float64{0.5, 2.5, 5}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Errorf("crossing %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestPortraitASCII(t *testing.T) {
	p, err := NewPortrait(samples(), ColumnX, ColumnY)
	if err != nil {
		t.Fatal(err)
	}
	out := p.ASCII(20, 10, true)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != 10 {
		t.Fatalf("expected 10 rows, got %d", len(lines))
	}
	if !strings.Contains(out, "o") || !strings.Contains(out, "x") {
		t.Error("expected start and end markers")
	}

	// y falls over time, so with screen coordinates the end sits above the start.
	startRow, endRow := -1, -1
	for i, line := range lines {
		if strings.Contains(line, "o") {
			startRow = i
		}
		if strings.Contains(line, "x") {
			endRow = i
		}
	}
	if endRow >= startRow {
		t.Errorf("expected end above start, rows %d and %d", endRow, startRow)
	}

	if (&Portrait{}).ASCII(20, 10, false) != "" {
		t.Error("expected empty render for empty portrait")
	}
	if _, err := NewPortrait(samples(), ColumnX, "bogus"); err == nil {
		t.Error("expected error for unknown column")
	}
}
