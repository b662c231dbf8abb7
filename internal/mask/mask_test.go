package mask

import (
	"image"
	"image/color"
	"math"
	"testing"
)

func solid(w, h int) *image.Alpha {
	img := image.NewAlpha(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetAlpha(x, y, color.Alpha{A: 255})
		}
	}
	return img
}

func TestFromImageThreshold(t *testing.T) {
	img := image.NewAlpha(image.Rect(0, 0, 3, 1))
	img.SetAlpha(0, 0, color.Alpha{A: 127})
	img.SetAlpha(1, 0, color.Alpha{A: 128})
	img.SetAlpha(2, 0, color.Alpha{A: 255})

	m := FromImage(img)
	if m.Get(0, 0) {
		t.Error("alpha 127 should be empty")
	}
	if !m.Get(1, 0) || !m.Get(2, 0) {
		t.Error("alpha above 127 should be set")
	}
	if m.Count() != 2 {
		t.Errorf("expected count 2, got %d", m.Count())
	}
}

func TestFromImageRGBA(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.Set(1, 1, color.NRGBA{R: 255, A: 200})
	m := FromImage(img)
	if m.Count() != 1 || !m.Get(1, 1) {
		t.Errorf("expected only (1,1) set, count %d", m.Count())
	}
}

func TestCentroid(t *testing.T) {
	m := New(10, 10)
	if c := m.Centroid(); c != (image.Point{}) {
		t.Errorf("empty mask centroid should be origin, got %v", c)
	}

	m.Fill()
	if c := m.Centroid(); c != image.Pt(4, 4) {
		t.Errorf("expected (4, 4), got %v", c)
	}

	m = New(5, 5)
	m.Set(4, 0, true)
	m.Set(4, 4, true)
	if c := m.Centroid(); c != image.Pt(4, 2) {
		t.Errorf("expected (4, 2), got %v", c)
	}
}

func TestOverlapArea(t *testing.T) {
	a := FromImage(solid(10, 10))
	b := FromImage(solid(4, 4))

	tests := []struct {
		name   string
		offset image.Point
		want   int
	}{
		{"inside", image.Pt(2, 2), 16},
		{"corner", image.Pt(8, 8), 4},
		{"negative corner", image.Pt(-2, -2), 4},
		{"apart", image.Pt(20, 0), 0},
		{"touching edge", image.Pt(10, 0), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.OverlapArea(b, tt.offset); got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
			back := b.OverlapArea(a, image.Pt(-tt.offset.X, -tt.offset.Y))
			if back != tt.want {
				t.Errorf("reverse: expected %d, got %d", tt.want, back)
			}
		})
	}
}

func TestRotatedSize(t *testing.T) {
	tests := []struct {
		w, h    int
		degrees float64
		want    image.Point
	}{
		{10, 4, 0, image.Pt(10, 4)},
		{10, 4, 90, image.Pt(4, 10)},
		{10, 4, 180, image.Pt(10, 4)},
		{10, 10, 45, image.Pt(15, 15)},
	}
	for _, tt := range tests {
		if got := RotatedSize(tt.w, tt.h, tt.degrees); got != tt.want {
			t.Errorf("%dx%d by %.0f: expected %v, got %v", tt.w, tt.h, tt.degrees, tt.want, got)
		}
	}
}

func TestRotateQuarterTurn(t *testing.T) {
	img := image.NewAlpha(image.Rect(0, 0, 10, 4))
	// mark the right edge
	for y := 0; y < 4; y++ {
		img.SetAlpha(9, y, color.Alpha{A: 255})
	}

	rot := Rotate(img, 90)
	if rot.Bounds().Dx() != 4 || rot.Bounds().Dy() != 10 {
		t.Fatalf("expected 4x10, got %v", rot.Bounds())
	}

	m := FromImage(rot)
	if m.Count() != 4 {
		t.Errorf("expected 4 pixels, got %d", m.Count())
	}
	for x := 0; x < 4; x++ {
		if !m.Get(x, 0) {
			t.Errorf("expected right edge to end up on top row at x=%d", x)
		}
	}
}

func TestRotatePreservesArea(t *testing.T) {
	src := solid(20, 20)
	before := FromImage(src).Count()
	for _, deg := range []float64{30, 45, 135, -60} {
		after := FromImage(Rotate(src, deg)).Count()
		if math.Abs(float64(after-before))/float64(before) > 0.1 {
			t.Errorf("rotation by %.0f changed area from %d to %d", deg, before, after)
		}
	}
}

func TestScale(t *testing.T) {
	dst := Scale(solid(8, 8), 16, 4)
	if dst.Bounds().Dx() != 16 || dst.Bounds().Dy() != 4 {
		t.Fatalf("unexpected bounds %v", dst.Bounds())
	}
	if FromImage(dst).Count() != 64 {
		t.Errorf("expected fully solid scaled image, got %d pixels", FromImage(dst).Count())
	}
}
