// Package level describes playable levels on a 500x500 design grid and
// builds them into a world for a concrete screen.
package level

import (
	"errors"
	"fmt"
	"image"
	"math"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/gravitywell/internal/body"
	"github.com/san-kum/gravitywell/internal/sim"
	"github.com/san-kum/gravitywell/internal/vec"
)

// Scale is the side of the design grid level coordinates are given on.
const Scale = 500.0

var (
	ErrUnknownLevel = errors.New("level: unknown level")
	ErrInvalid      = errors.New("level: invalid level")
)

type Level struct {
	ID          int       `yaml:"id"`
	Name        string    `yaml:"name"`
	Description string    `yaml:"description,omitempty"`
	Hero        string    `yaml:"hero"`
	Target      string    `yaml:"target"`
	Home        string    `yaml:"home,omitempty"`
	Bodies      []BodyDef `yaml:"bodies"`

	dir string
}

type BodyDef struct {
	Name        string     `yaml:"name"`
	Size        Size       `yaml:"size"`
	Position    [2]float64 `yaml:"position,flow"`
	Density     float64    `yaml:"density,omitempty"`
	PointLevels []float64  `yaml:"point_levels,flow,omitempty"`
	Facts       []string   `yaml:"facts,omitempty"`
	Particle    bool       `yaml:"particle,omitempty"`
	Exclude     []string   `yaml:"exclude,flow,omitempty"`
	Velocity    [2]float64 `yaml:"velocity,flow,omitempty"`
	Shape       string     `yaml:"shape,omitempty"`
	Sprite      string     `yaml:"sprite,omitempty"`
}

// Size is either a single side, giving a square as large as the smaller
// screen dimension allows, or a width and height on the design grid.
type Size struct {
	W, H float64
	Pair bool
}

func Square(s float64) Size  { return Size{W: s, H: s} }
func Pair(w, h float64) Size { return Size{W: w, H: h, Pair: true} }
func (s Size) IsZero() bool  { return s.W == 0 && s.H == 0 }

func (s Size) String() string {
	if s.Pair {
		return fmt.Sprintf("%gx%g", s.W, s.H)
	}
	return fmt.Sprintf("%g", s.W)
}

func (s *Size) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var v float64
		if err := node.Decode(&v); err != nil {
			return err
		}
		*s = Square(v)
		return nil
	case yaml.SequenceNode:
		var vs []float64
		if err := node.Decode(&vs); err != nil {
			return err
		}
		if len(vs) != 2 {
			return fmt.Errorf("line %d: size needs 2 components, got %d", node.Line, len(vs))
		}
		*s = Pair(vs[0], vs[1])
		return nil
	}
	return fmt.Errorf("line %d: size must be a number or a [w, h] pair", node.Line)
}

func (s Size) MarshalYAML() (interface{}, error) {
	if s.Pair {
		var n yaml.Node
		if err := n.Encode([]float64{s.W, s.H}); err != nil {
			return nil, err
		}
		n.Style = yaml.FlowStyle
		return &n, nil
	}
	return s.W, nil
}

// Pixels converts the size to screen pixels.
func (s Size) Pixels(screen image.Point) image.Point {
	if !s.Pair {
		side := round(s.W / Scale * float64(min(screen.X, screen.Y)))
		return image.Pt(side, side)
	}
	return image.Pt(round(s.W/Scale*float64(screen.X)), round(s.H/Scale*float64(screen.Y)))
}

// Mass is the sum of the squared size components times density, in design
// units. A square counts its side once.
func (d BodyDef) Mass() float64 {
	comps := []float64{d.Size.W}
	if d.Size.Pair {
		comps = append(comps, d.Size.H)
	}
	sq, err := vec.Exponentiate(comps, vec.Scalar(2))
	if err != nil {
		return 0
	}
	return vec.SumComponents(sq) * d.density()
}

func (d BodyDef) density() float64 {
	if d.Density == 0 {
		return 1
	}
	return d.Density
}

// ScreenPosition converts the design grid position to screen pixels.
func ScreenPosition(p [2]float64, screen image.Point) image.Point {
	return image.Pt(round(p[0]/Scale*float64(screen.X)), round(p[1]/Scale*float64(screen.Y)))
}

func round(f float64) int { return int(math.Round(f)) }

// Validate checks names, roles and sizes without building anything.
func (l *Level) Validate() error {
	if len(l.Bodies) == 0 {
		return fmt.Errorf("%w: level %d has no bodies", ErrInvalid, l.ID)
	}
	seen := make(map[string]bool, len(l.Bodies))
	for _, d := range l.Bodies {
		switch {
		case d.Name == "":
			return fmt.Errorf("%w: level %d has an unnamed body", ErrInvalid, l.ID)
		case seen[d.Name]:
			return fmt.Errorf("%w: level %d repeats body %s", ErrInvalid, l.ID, d.Name)
		case !(d.Size.W > 0) || (d.Size.Pair && !(d.Size.H > 0)):
			return fmt.Errorf("%w: body %s has size %s", ErrInvalid, d.Name, d.Size)
		case d.Density < 0:
			return fmt.Errorf("%w: body %s has density %g", ErrInvalid, d.Name, d.Density)
		case len(d.Facts) > 0 && len(d.Facts) != len(d.PointLevels):
			return fmt.Errorf("%w: body %s has %d facts for %d point levels", ErrInvalid, d.Name, len(d.Facts), len(d.PointLevels))
		}
		if _, ok := shapes[d.shape()]; !ok && d.Sprite == "" {
			return fmt.Errorf("%w: body %s has unknown shape %q", ErrInvalid, d.Name, d.Shape)
		}
		seen[d.Name] = true
	}
	for role, name := range map[string]string{"hero": l.Hero, "target": l.Target, "home": l.Home} {
		if name == "" && role == "home" {
			continue
		}
		if !seen[name] {
			return fmt.Errorf("%w: level %d %s %q is not a body", ErrInvalid, l.ID, role, name)
		}
	}
	return nil
}

// Fact returns the text unlocked by the given body's index-th point level.
func (l *Level) Fact(bodyName string, index int) (string, bool) {
	for _, d := range l.Bodies {
		if d.Name == bodyName && index >= 0 && index < len(d.Facts) {
			return d.Facts[index], true
		}
	}
	return "", false
}

// Spec converts the definition into a body spec for the given screen.
func (d BodyDef) Spec(screen image.Point, dir string) (body.Spec, error) {
	size := d.Size.Pixels(screen)
	if size.X < 1 || size.Y < 1 {
		return body.Spec{}, fmt.Errorf("%w: body %s is smaller than a pixel on %v", ErrInvalid, d.Name, screen)
	}
	shape, err := d.render(size, dir)
	if err != nil {
		return body.Spec{}, err
	}
	return body.Spec{
		Name:        d.Name,
		Shape:       shape,
		Position:    ScreenPosition(d.Position, screen),
		Mass:        d.Mass(),
		PointLevels: d.PointLevels,
		Particle:    d.Particle,
		Exclude:     d.Exclude,
		Velocity:    vec.Vec2{d.Velocity[0], d.Velocity[1]},
	}, nil
}

// Build creates every body of l in w and assigns the roles.
func Build(l *Level, w *sim.World, screen image.Point) error {
	if err := l.Validate(); err != nil {
		return err
	}
	for _, d := range l.Bodies {
		spec, err := d.Spec(screen, l.dir)
		if err != nil {
			return err
		}
		if err := w.CreateBody(spec); err != nil {
			return fmt.Errorf("level %d: %w", l.ID, err)
		}
	}
	if err := w.SetHero(l.Hero); err != nil {
		return err
	}
	if err := w.SetTarget(l.Target); err != nil {
		return err
	}
	if l.Home != "" {
		if err := w.SetHome(l.Home); err != nil {
			return err
		}
	}
	return nil
}

// NewWorld builds l into a fresh world sized to p's screen. The world is
// not started.
func (l *Level) NewWorld(p sim.Params, opts ...sim.Option) (*sim.World, error) {
	w, err := sim.NewWorld(p, append([]sim.Option{sim.WithLevel(l.ID)}, opts...)...)
	if err != nil {
		return nil, err
	}
	if err := Build(l, w, image.Pt(p.ScreenW, p.ScreenH)); err != nil {
		return nil, err
	}
	return w, nil
}

// Load reads a level file. Sprite paths are resolved against the file's
// directory.
func Load(path string) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var l Level
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	l.dir = filepath.Dir(path)
	if err := l.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &l, nil
}

func Save(path string, l *Level) error {
	data, err := yaml.Marshal(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
