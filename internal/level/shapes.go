package level

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"

	"github.com/san-kum/gravitywell/internal/mask"
)

const (
	ShapeDisc    = "disc"
	ShapeEllipse = "ellipse"
	ShapeDart    = "dart"
)

var shapes = map[string]func(size image.Point) *image.Alpha{
	ShapeDisc:    Ellipse,
	ShapeEllipse: Ellipse,
	ShapeDart:    Dart,
}

func (d BodyDef) shape() string {
	switch {
	case d.Shape != "":
		return d.Shape
	case d.Size.Pair:
		return ShapeEllipse
	}
	return ShapeDisc
}

func (d BodyDef) render(size image.Point, dir string) (*image.Alpha, error) {
	if d.Sprite != "" {
		path := d.Sprite
		if !filepath.IsAbs(path) && dir != "" {
			path = filepath.Join(dir, path)
		}
		return LoadSprite(path, size)
	}
	gen, ok := shapes[d.shape()]
	if !ok {
		return nil, fmt.Errorf("%w: body %s has unknown shape %q", ErrInvalid, d.Name, d.Shape)
	}
	return gen(size), nil
}

// Ellipse fills the ellipse inscribed in size, testing pixel centres.
func Ellipse(size image.Point) *image.Alpha {
	img := image.NewAlpha(image.Rect(0, 0, size.X, size.Y))
	rx, ry := float64(size.X)/2, float64(size.Y)/2
	for y := 0; y < size.Y; y++ {
		for x := 0; x < size.X; x++ {
			dx := (float64(x) + 0.5 - rx) / rx
			dy := (float64(y) + 0.5 - ry) / ry
			if dx*dx+dy*dy <= 1 {
				img.SetAlpha(x, y, color.Alpha{A: 255})
			}
		}
	}
	return img
}

// Dart is a rocket silhouette pointing along +x, with a notch cut in the
// tail.
func Dart(size image.Point) *image.Alpha {
	img := image.NewAlpha(image.Rect(0, 0, size.X, size.Y))
	w, h := float64(size.X), float64(size.Y)
	for y := 0; y < size.Y; y++ {
		dy := math.Abs(float64(y) + 0.5 - h/2)
		for x := 0; x < size.X; x++ {
			fx := float64(x) + 0.5
			half := h / 2 * (1 - fx/w)
			if dy > half {
				continue
			}
			if fx < w/5 && dy < h/6 {
				continue
			}
			img.SetAlpha(x, y, color.Alpha{A: 255})
		}
	}
	return img
}

// LoadSprite decodes a PNG and scales its alpha channel to size.
func LoadSprite(path string, size image.Point) (*image.Alpha, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode sprite %s: %w", path, err)
	}
	return mask.Scale(img, size.X, size.Y), nil
}
