// Package vec holds the small amount of 2-D vector math the simulation needs
// on top of mgl64, plus broadcast component operations over arbitrary arity.
package vec

import (
	"errors"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

var ErrArity = errors.New("vec: mismatched component arity")

type Vec2 = mgl64.Vec2

var Zero = Vec2{}

// ToPolar returns magnitude and angle in radians. The zero vector maps to (0, 0).
func ToPolar(v Vec2) (float64, float64) {
	if v[0] == 0 && v[1] == 0 {
		return 0, 0
	}
	return math.Hypot(v[0], v[1]), math.Atan2(v[1], v[0])
}

func FromPolar(magnitude, angle float64) Vec2 {
	return Vec2{magnitude * math.Cos(angle), magnitude * math.Sin(angle)}
}

func Sum(vs ...Vec2) Vec2 {
	var r Vec2
	for _, v := range vs {
		r = r.Add(v)
	}
	return r
}

func Negate(v Vec2) Vec2 {
	return v.Mul(-1)
}

// Round rounds each component half away from zero.
func Round(v Vec2) (int, int) {
	return int(math.Round(v[0])), int(math.Round(v[1]))
}

func Magnitude(v Vec2) float64 {
	m, _ := ToPolar(v)
	return m
}

// Unit returns v scaled to length 1, or zero for the zero vector.
func Unit(v Vec2) Vec2 {
	m := Magnitude(v)
	if m == 0 {
		return Zero
	}
	return v.Mul(1 / m)
}

func FromPoint(x, y int) Vec2 {
	return Vec2{float64(x), float64(y)}
}
