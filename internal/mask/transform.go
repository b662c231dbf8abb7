package mask

import (
	"image"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// RotatedSize is the bounding box of a w x h rectangle rotated by degrees.
func RotatedSize(w, h int, degrees float64) image.Point {
	rad := degrees * math.Pi / 180
	c, s := math.Abs(math.Cos(rad)), math.Abs(math.Sin(rad))
	fw, fh := float64(w), float64(h)
	return image.Pt(
		int(math.Ceil(fw*c+fh*s-1e-9)),
		int(math.Ceil(fw*s+fh*c-1e-9)),
	)
}

// Rotate turns src counter-clockwise on screen by degrees, growing the canvas
// to hold the whole result.
func Rotate(src *image.Alpha, degrees float64) *image.Alpha {
	sb := src.Bounds()
	size := RotatedSize(sb.Dx(), sb.Dy(), degrees)
	dst := image.NewAlpha(image.Rect(0, 0, size.X, size.Y))
	if size.X == 0 || size.Y == 0 {
		return dst
	}

	rad := degrees * math.Pi / 180
	c, s := math.Cos(rad), math.Sin(rad)
	scx := float64(sb.Min.X) + float64(sb.Dx())/2
	scy := float64(sb.Min.Y) + float64(sb.Dy())/2
	dcx, dcy := float64(size.X)/2, float64(size.Y)/2

	s2d := f64.Aff3{
		c, s, dcx - (c*scx + s*scy),
		-s, c, dcy - (-s*scx + c*scy),
	}
	draw.NearestNeighbor.Transform(dst, s2d, src, sb, draw.Src, nil)
	return dst
}

// Scale resamples img into a w x h alpha image.
func Scale(img image.Image, w, h int) *image.Alpha {
	dst := image.NewAlpha(image.Rect(0, 0, w, h))
	if w <= 0 || h <= 0 {
		return dst
	}
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}
