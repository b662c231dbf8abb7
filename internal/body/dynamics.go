package body

import (
	"image"
	"math"

	"github.com/san-kum/gravitywell/internal/mask"
	"github.com/san-kum/gravitywell/internal/vec"
)

// ForceFrom is the gravitational pull other exerts on b, pointing from b
// toward other. Coincident centres produce no force.
func (b *Body) ForceFrom(other *Body, g float64) vec.Vec2 {
	r, angle := vec.ToPolar(vec.Sum(vec.Negate(b.state.COM), other.state.COM))
	if r == 0 {
		return vec.Zero
	}
	return vec.FromPolar(g*b.mass*other.mass/(r*r), angle)
}

// Attracts reports whether peer contributes to b's net force.
func (b *Body) Attracts(peer *Body) bool {
	return peer != b && peer.visible && !b.Excludes(peer.name)
}

func (b *Body) NetAcceleration(peers []*Body, g float64) vec.Vec2 {
	var net vec.Vec2
	for _, p := range peers {
		if b.Attracts(p) {
			net = net.Add(b.ForceFrom(p, g))
		}
	}
	magnitude, angle := vec.ToPolar(net)
	return vec.FromPolar(magnitude/b.mass, angle)
}

// UpdateVelocity integrates one tick of acceleration. It must run after
// every body has moved for the tick.
func (b *Body) UpdateVelocity(peers []*Body, g float64) {
	if !b.particle {
		return
	}
	b.state.Acceleration = b.NetAcceleration(peers, g)
	b.state.Velocity = b.state.Velocity.Add(b.state.Acceleration)
}

// Move displaces the body by its rounded velocity. A component that rounds
// to zero is accumulated in the smoother instead, and released as a whole
// pixel once the accumulator itself rounds away from zero.
func (b *Body) Move() image.Point {
	if !b.particle {
		return image.Point{}
	}
	v := b.state.Velocity
	for i := range b.state.Smoother {
		if math.Round(v[i]) == 0 {
			b.state.Smoother[i] += v[i]
		}
	}
	x, y := vec.Round(v)
	d := image.Pt(x, y)
	if r := math.Round(b.state.Smoother[0]); r != 0 {
		d.X += int(r)
		b.state.Smoother[0] = 0
	}
	if r := math.Round(b.state.Smoother[1]); r != 0 {
		d.Y += int(r)
		b.state.Smoother[1] = 0
	}
	b.Translate(d)
	return d
}

// Heading converts a velocity into the on-screen rotation that points an
// unrotated shape (facing +x) along it.
func Heading(v vec.Vec2) float64 {
	_, angle := vec.ToPolar(v)
	return -angle * 180 / math.Pi
}

// Orient redraws a particle body rotated by degrees around its rect centre
// and rebuilds the mask and centre of mass to match.
func (b *Body) Orient(degrees float64) {
	if !b.particle {
		return
	}
	if degrees == b.state.Orientation {
		return
	}
	c := center(b.state.Rect)
	if degrees == 0 {
		b.image = b.shape
	} else {
		b.image = mask.Rotate(b.shape, degrees)
	}
	b.mask = mask.FromImage(b.image)
	size := b.image.Bounds().Size()
	topLeft := c.Sub(image.Pt(size.X/2, size.Y/2))
	b.state.Rect = image.Rectangle{Min: topLeft, Max: topLeft.Add(size)}
	com := b.mask.Centroid().Add(topLeft)
	b.state.COM = vec.FromPoint(com.X, com.Y)
	b.state.Orientation = degrees
}
