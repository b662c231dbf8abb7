package metrics

import (
	"math"

	"github.com/san-kum/gravitywell/internal/body"
	"github.com/san-kum/gravitywell/internal/sim"
	"github.com/san-kum/gravitywell/internal/vec"
)

// flying returns the hero while it is out on a flight. Terminal ticks have
// already reset the world, so they report nothing.
func flying(w *sim.World, ev sim.Events) (*body.Body, bool) {
	if ev.Terminal() || w.Phase() != sim.Flight {
		return nil, false
	}
	hero, ok := w.Body(w.Hero())
	if !ok || !hero.Visible() {
		return nil, false
	}
	return hero, true
}

// ClosestApproach is the smallest distance between the hero's centre of
// mass and the target's surface.
type ClosestApproach struct {
	name    string
	closest float64
	samples int
}

func NewClosestApproach() *ClosestApproach {
	return &ClosestApproach{name: "closest_approach"}
}

func (c *ClosestApproach) Name() string { return c.name }

func (c *ClosestApproach) Start(w *sim.World) { c.observe(w, sim.Events{}) }

func (c *ClosestApproach) Observe(w *sim.World, ev sim.Events) {
	if ev.Crash != nil && ev.Crash.Body == w.Target() {
		c.closest = 0
		c.samples++
		return
	}
	c.observe(w, ev)
}

func (c *ClosestApproach) observe(w *sim.World, ev sim.Events) {
	hero, ok := flying(w, ev)
	if !ok {
		return
	}
	target, ok := w.Body(w.Target())
	if !ok {
		return
	}
	d := math.Max(0, hero.COM().Sub(target.COM()).Len()-target.RoughRadius())
	if c.samples == 0 || d < c.closest {
		c.closest = d
	}
	c.samples++
}

func (c *ClosestApproach) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return c.closest
}

func (c *ClosestApproach) Reset() {
	c.closest = 0
	c.samples = 0
}

type PeakSpeed struct {
	name string
	peak float64
}

func NewPeakSpeed() *PeakSpeed {
	return &PeakSpeed{name: "peak_speed"}
}

func (p *PeakSpeed) Name() string { return p.name }

func (p *PeakSpeed) Start(w *sim.World) { p.Observe(w, sim.Events{}) }

func (p *PeakSpeed) Observe(w *sim.World, ev sim.Events) {
	if hero, ok := flying(w, ev); ok {
		p.peak = math.Max(p.peak, vec.Magnitude(hero.Velocity()))
	}
}

func (p *PeakSpeed) Value() float64 { return p.peak }
func (p *PeakSpeed) Reset()         { p.peak = 0 }

// PathLength sums the distance the hero's centre of mass travelled.
type PathLength struct {
	name   string
	last   vec.Vec2
	seen   bool
	length float64
}

func NewPathLength() *PathLength {
	return &PathLength{name: "path_length"}
}

func (p *PathLength) Name() string { return p.name }

func (p *PathLength) Start(w *sim.World) { p.Observe(w, sim.Events{}) }

func (p *PathLength) Observe(w *sim.World, ev sim.Events) {
	hero, ok := flying(w, ev)
	if !ok {
		return
	}
	if p.seen {
		p.length += hero.COM().Sub(p.last).Len()
	}
	p.last = hero.COM()
	p.seen = true
}

func (p *PathLength) Value() float64 { return p.length }

func (p *PathLength) Reset() {
	p.last = vec.Zero
	p.seen = false
	p.length = 0
}

// FlightTime is the flight clock in seconds when the flight ended or was
// last observed.
type FlightTime struct {
	name    string
	seconds float64
}

func NewFlightTime() *FlightTime {
	return &FlightTime{name: "flight_time"}
}

func (f *FlightTime) Name() string { return f.name }

func (f *FlightTime) Observe(w *sim.World, ev sim.Events) {
	switch {
	case ev.Crash != nil:
		f.seconds = ev.Crash.Elapsed.Seconds()
	case w.Phase() == sim.Flight:
		f.seconds = w.Elapsed().Seconds()
	}
}

func (f *FlightTime) Value() float64 { return f.seconds }
func (f *FlightTime) Reset()         { f.seconds = 0 }
