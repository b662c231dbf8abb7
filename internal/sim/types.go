package sim

import (
	"fmt"
	"time"

	"github.com/san-kum/gravitywell/internal/replay"
	"github.com/san-kum/gravitywell/internal/scoring"
)

type Phase int

const (
	Preview Phase = iota
	Aiming
	Flight
)

func (p Phase) String() string {
	switch p {
	case Preview:
		return "preview"
	case Aiming:
		return "aiming"
	case Flight:
		return "flight"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

type Crash struct {
	Body    string
	Elapsed time.Duration
}

// Events is what a single tick produced.
type Events struct {
	Crash         *Crash
	Escaped       bool
	Facts         []scoring.FactKey
	LevelComplete bool
	Overlap       bool
}

// Terminal reports whether the tick ended the flight.
func (e Events) Terminal() bool { return e.Crash != nil || e.Escaped }

// Params are the tunable constants of a world.
type Params struct {
	ScreenW, ScreenH int
	TickRate         float64

	G, GMin, GMax, GStep float64

	MinSpeed, MaxSpeed float64
	SpeedStep          float64
	AngleStep          float64
	LaunchOffset       float64

	MinEscapeSpeed   float64
	EscapeGrace      time.Duration
	OffscreenTimeout time.Duration

	Scoring        scoring.Params
	ReplayCapacity int
}

func DefaultParams() Params {
	return Params{
		ScreenW:          1074,
		ScreenH:          768,
		TickRate:         30,
		G:                3.0,
		GMin:             0.5,
		GMax:             8.0,
		GStep:            0.5,
		MinSpeed:         12,
		MaxSpeed:         24,
		SpeedStep:        0.1,
		AngleStep:        1,
		LaunchOffset:     1,
		MinEscapeSpeed:   4,
		EscapeGrace:      80 * time.Millisecond,
		OffscreenTimeout: 8 * time.Second,
		Scoring:          scoring.NewParams(0.075, 1074, 768, 75),
		ReplayCapacity:   replay.DefaultCapacity,
	}
}

func (p Params) Validate() error {
	if p.ScreenW <= 0 || p.ScreenH <= 0 {
		return fmt.Errorf("%w: screen must be positive, got %dx%d", ErrInvalidParams, p.ScreenW, p.ScreenH)
	}
	if p.TickRate <= 0 {
		return fmt.Errorf("%w: tick rate must be positive, got %f", ErrInvalidParams, p.TickRate)
	}
	if p.GMin < 0 || p.GMin > p.GMax || p.G < p.GMin || p.G > p.GMax {
		return fmt.Errorf("%w: gravity %f outside [%f, %f]", ErrInvalidParams, p.G, p.GMin, p.GMax)
	}
	if p.GStep <= 0 || p.SpeedStep <= 0 || p.AngleStep <= 0 {
		return fmt.Errorf("%w: steps must be positive", ErrInvalidParams)
	}
	if p.MinSpeed <= 0 || p.MinSpeed > p.MaxSpeed {
		return fmt.Errorf("%w: launch speed range [%f, %f]", ErrInvalidParams, p.MinSpeed, p.MaxSpeed)
	}
	if p.OffscreenTimeout <= 0 {
		return fmt.Errorf("%w: offscreen timeout must be positive", ErrInvalidParams)
	}
	if p.EscapeGrace < 0 || p.MinEscapeSpeed < 0 {
		return fmt.Errorf("%w: escape thresholds must not be negative", ErrInvalidParams)
	}
	if p.Scoring.MaxIncrementDistance <= 0 || p.Scoring.PointModifier < 0 {
		return fmt.Errorf("%w: scoring parameters", ErrInvalidParams)
	}
	if p.ReplayCapacity < 1 {
		return fmt.Errorf("%w: replay capacity must be at least 1, got %d", ErrInvalidParams, p.ReplayCapacity)
	}
	return nil
}

type Metric interface {
	Name() string
	Observe(w *World, ev Events)
	Value() float64
	Reset()
}

// Starter is implemented by metrics that need to see the world right
// after launch, before the first tick.
type Starter interface {
	Start(w *World)
}

type Observer interface {
	OnTick(w *World, ev Events)
}
