package body

import (
	"errors"
	"fmt"
	"image"
	"math"
	"sort"

	"github.com/san-kum/gravitywell/internal/mask"
	"github.com/san-kum/gravitywell/internal/vec"
)

var (
	ErrNonPositiveMass = errors.New("body: mass must be positive")
	ErrNoName          = errors.New("body: name is required")
	ErrNoShape         = errors.New("body: shape is required")
)

// Spec is the static definition of a body, in screen pixels.
type Spec struct {
	Name        string
	Shape       *image.Alpha
	Position    image.Point
	Mass        float64
	PointLevels []float64
	Particle    bool
	Exclude     []string
	Velocity    vec.Vec2
}

// State is the mutable kinematic part of a body.
type State struct {
	Rect         image.Rectangle
	COM          vec.Vec2
	Velocity     vec.Vec2
	Acceleration vec.Vec2
	Smoother     [2]float64
	Orientation  float64
}

type Body struct {
	name        string
	shape       *image.Alpha
	mass        float64
	roughRadius float64
	pointLevels []float64
	exclude     map[string]struct{}

	image *image.Alpha
	mask  *mask.Mask
	state State
	init  State

	points   float64
	visible  bool
	particle bool
}

func New(spec Spec) (*Body, error) {
	if spec.Name == "" {
		return nil, ErrNoName
	}
	if spec.Shape == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoShape, spec.Name)
	}
	if !(spec.Mass > 0) || math.IsInf(spec.Mass, 0) {
		return nil, fmt.Errorf("%w: %s has mass %g", ErrNonPositiveMass, spec.Name, spec.Mass)
	}

	b := &Body{
		name:        spec.Name,
		shape:       spec.Shape,
		mass:        spec.Mass,
		pointLevels: append([]float64(nil), spec.PointLevels...),
		exclude:     make(map[string]struct{}, len(spec.Exclude)),
		image:       spec.Shape,
		mask:        mask.FromImage(spec.Shape),
		visible:     true,
		particle:    spec.Particle,
	}
	for _, name := range spec.Exclude {
		b.exclude[name] = struct{}{}
	}

	size := spec.Shape.Bounds().Size()
	b.roughRadius = (float64(size.X+size.Y) / 2) / 2

	rect := image.Rectangle{Min: spec.Position, Max: spec.Position.Add(size)}
	c := b.mask.Centroid().Add(rect.Min)
	b.init = State{
		Rect:     rect,
		COM:      vec.FromPoint(c.X, c.Y),
		Velocity: spec.Velocity,
	}
	b.state = b.init
	return b, nil
}

func (b *Body) Name() string              { return b.name }
func (b *Body) Mass() float64             { return b.mass }
func (b *Body) RoughRadius() float64      { return b.roughRadius }
func (b *Body) Rect() image.Rectangle     { return b.state.Rect }
func (b *Body) Position() image.Point     { return b.state.Rect.Min }
func (b *Body) COM() vec.Vec2             { return b.state.COM }
func (b *Body) Velocity() vec.Vec2        { return b.state.Velocity }
func (b *Body) InitialVelocity() vec.Vec2 { return b.init.Velocity }
func (b *Body) Acceleration() vec.Vec2    { return b.state.Acceleration }
func (b *Body) Orientation() float64      { return b.state.Orientation }
func (b *Body) Mask() *mask.Mask          { return b.mask }
func (b *Body) Image() *image.Alpha       { return b.image }
func (b *Body) Visible() bool             { return b.visible }
func (b *Body) Particle() bool            { return b.particle }
func (b *Body) Points() float64           { return b.points }
func (b *Body) State() State              { return b.state }
func (b *Body) InitialState() State       { return b.init }
func (b *Body) PointLevels() []float64    { return append([]float64(nil), b.pointLevels...) }
func (b *Body) SetVelocity(v vec.Vec2)    { b.state.Velocity = v }
func (b *Body) AddPoints(p float64)       { b.points += p }
func (b *Body) SetPoints(p float64)       { b.points = p }

func (b *Body) Excludes(name string) bool {
	_, ok := b.exclude[name]
	return ok
}

func (b *Body) Exclusions() []string {
	names := make([]string, 0, len(b.exclude))
	for name := range b.exclude {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Hide removes the body from the simulation: it stops moving, exerts no
// gravity and takes part in no collision.
func (b *Body) Hide() {
	b.visible = false
	b.particle = false
}

// Show brings a hidden body back as a mobile participant.
func (b *Body) Show() {
	b.visible = true
	b.particle = true
}

// Reset restores the kinematic state and orientation to the initial
// snapshot. The score is kept.
func (b *Body) Reset() {
	if b.state.Orientation != b.init.Orientation || b.image != b.shape {
		b.image = b.shape
		b.mask = mask.FromImage(b.shape)
	}
	b.state = b.init
}

// Translate shifts the body by an integer pixel delta.
func (b *Body) Translate(d image.Point) {
	b.state.Rect = b.state.Rect.Add(d)
	b.state.COM = b.state.COM.Add(vec.FromPoint(d.X, d.Y))
}

// CenterOn moves the body so its rect centre sits at p.
func (b *Body) CenterOn(p image.Point) {
	b.Translate(p.Sub(center(b.state.Rect)))
}

func center(r image.Rectangle) image.Point {
	return image.Pt(r.Min.X+r.Dx()/2, r.Min.Y+r.Dy()/2)
}
