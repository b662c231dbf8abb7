// Package mask implements per-pixel occupancy bitmaps used for collision
// geometry, together with the image transforms that produce them.
package mask

import (
	"image"
	"image/color"
)

// Threshold is the alpha level above which a pixel counts as solid.
const Threshold = 127

type Mask struct {
	w, h int
	bits []bool
}

func New(w, h int) *Mask {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &Mask{w: w, h: h, bits: make([]bool, w*h)}
}

// FromImage builds a mask from img's alpha channel. The mask origin is the
// image's Bounds().Min.
func FromImage(img image.Image) *Mask {
	b := img.Bounds()
	m := New(b.Dx(), b.Dy())
	if a, ok := img.(*image.Alpha); ok {
		for y := 0; y < m.h; y++ {
			for x := 0; x < m.w; x++ {
				m.bits[y*m.w+x] = a.AlphaAt(b.Min.X+x, b.Min.Y+y).A > Threshold
			}
		}
		return m
	}
	for y := 0; y < m.h; y++ {
		for x := 0; x < m.w; x++ {
			c := color.AlphaModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.Alpha)
			m.bits[y*m.w+x] = c.A > Threshold
		}
	}
	return m
}

func (m *Mask) Size() image.Point { return image.Pt(m.w, m.h) }

func (m *Mask) Bounds() image.Rectangle { return image.Rect(0, 0, m.w, m.h) }

func (m *Mask) Get(x, y int) bool {
	if x < 0 || y < 0 || x >= m.w || y >= m.h {
		return false
	}
	return m.bits[y*m.w+x]
}

func (m *Mask) Set(x, y int, v bool) {
	if x < 0 || y < 0 || x >= m.w || y >= m.h {
		return
	}
	m.bits[y*m.w+x] = v
}

func (m *Mask) Fill() {
	for i := range m.bits {
		m.bits[i] = true
	}
}

func (m *Mask) Count() int {
	n := 0
	for _, b := range m.bits {
		if b {
			n++
		}
	}
	return n
}

// Centroid returns the integer mean of the set pixel coordinates, or the
// origin for an empty mask.
func (m *Mask) Centroid() image.Point {
	var sx, sy, n int
	for y := 0; y < m.h; y++ {
		for x := 0; x < m.w; x++ {
			if m.bits[y*m.w+x] {
				sx += x
				sy += y
				n++
			}
		}
	}
	if n == 0 {
		return image.Point{}
	}
	return image.Pt(sx/n, sy/n)
}

// OverlapArea counts pixels set in both masks when other is placed at
// offset relative to m.
func (m *Mask) OverlapArea(other *Mask, offset image.Point) int {
	r := m.Bounds().Intersect(other.Bounds().Add(offset))
	if r.Empty() {
		return 0
	}
	n := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := y * m.w
		orow := (y - offset.Y) * other.w
		for x := r.Min.X; x < r.Max.X; x++ {
			if m.bits[row+x] && other.bits[orow+x-offset.X] {
				n++
			}
		}
	}
	return n
}
