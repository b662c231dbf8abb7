package sim

import (
	"fmt"
	"image"
	"io"
	"log/slog"
	"time"

	"github.com/san-kum/gravitywell/internal/body"
	"github.com/san-kum/gravitywell/internal/replay"
	"github.com/san-kum/gravitywell/internal/scoring"
	"github.com/san-kum/gravitywell/internal/vec"
)

// World owns every body of a level and drives the game phases around them.
// It is not safe for concurrent use; one control loop calls Tick and the
// request methods.
type World struct {
	params Params
	clock  Clock
	log    *slog.Logger
	level  int

	bodies map[string]*body.Body
	order  []*body.Body
	hero   string
	target string
	home   string

	g        float64
	tickRate float64
	phase    Phase
	started  bool
	running  bool
	aim      vec.Vec2

	launchTime     time.Time
	pausedAt       time.Time
	offscreenSince time.Time
	atmosphere     bool

	awaiting      bool
	levelComplete bool
	finished      bool

	overlap bool
	widgets []image.Rectangle

	replay *replay.Buffer
	facts  *scoring.Tracker
}

type Option func(*World)

func WithClock(c Clock) Option {
	return func(w *World) { w.clock = c }
}

func WithLogger(l *slog.Logger) Option {
	return func(w *World) {
		if l != nil {
			w.log = l
		}
	}
}

// WithLevel sets the level number used to key facts.
func WithLevel(n int) Option {
	return func(w *World) { w.level = n }
}

func NewWorld(params Params, opts ...Option) (*World, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	w := &World{
		params:   params,
		clock:    SystemClock{},
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		bodies:   make(map[string]*body.Body),
		g:        params.G,
		tickRate: params.TickRate,
		replay:   replay.NewBuffer(params.ReplayCapacity),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.facts = scoring.NewTracker(w.level)
	w.log = w.log.With("level", w.level)
	return w, nil
}

// CreateBody registers a body. Names must be unique and bodies can only be
// added before Start.
func (w *World) CreateBody(spec body.Spec) error {
	if w.started {
		return ErrStarted
	}
	if _, ok := w.bodies[spec.Name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateBody, spec.Name)
	}
	b, err := body.New(spec)
	if err != nil {
		return err
	}
	w.bodies[spec.Name] = b
	w.order = append(w.order, b)
	return nil
}

func (w *World) SetHero(name string) error   { return w.setRole(&w.hero, name) }
func (w *World) SetTarget(name string) error { return w.setRole(&w.target, name) }

// SetHome names the body the hero launches from.
func (w *World) SetHome(name string) error { return w.setRole(&w.home, name) }

func (w *World) setRole(role *string, name string) error {
	if w.started {
		return ErrStarted
	}
	if _, ok := w.bodies[name]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownBody, name)
	}
	*role = name
	return nil
}

// Start validates the roles and enters Preview with the hero hidden.
func (w *World) Start() error {
	if w.started {
		return ErrStarted
	}
	switch {
	case w.hero == "":
		return ErrNoHero
	case w.target == "":
		return ErrNoTarget
	case w.hero == w.target:
		return fmt.Errorf("%w: hero and target are both %s", ErrInvalidSetup, w.hero)
	case w.home != "" && w.home == w.hero:
		return fmt.Errorf("%w: hero cannot be its own home", ErrInvalidSetup)
	}
	w.started = true
	w.enterPreview()
	w.log.Info("world started", "bodies", len(w.order), "hero", w.hero, "target", w.target, "home", w.home)
	return nil
}

func (w *World) heroBody() *body.Body { return w.bodies[w.hero] }

func (w *World) Params() Params      { return w.params }
func (w *World) Level() int          { return w.level }
func (w *World) Phase() Phase        { return w.phase }
func (w *World) Started() bool       { return w.started }
func (w *World) Running() bool       { return w.running }
func (w *World) G() float64          { return w.g }
func (w *World) TickRate() float64   { return w.tickRate }
func (w *World) Atmosphere() bool    { return w.atmosphere }
func (w *World) Overlap() bool       { return w.overlap }
func (w *World) Hero() string        { return w.hero }
func (w *World) Target() string      { return w.target }
func (w *World) Home() string        { return w.home }
func (w *World) Aim() vec.Vec2       { return w.aim }
func (w *World) Offscreen() bool     { return !w.offscreenSince.IsZero() }
func (w *World) Finished() bool      { return w.finished }
func (w *World) LevelComplete() bool { return w.levelComplete }

// AwaitingConfirmation is set after the hero reaches the target and
// cleared by Advance or Stay.
func (w *World) AwaitingConfirmation() bool { return w.awaiting }

// HaloVisible tells the renderer whether to mark the target.
func (w *World) HaloVisible() bool { return w.started && w.phase != Flight }

// Paused reports a user pause. Aiming is frozen but not paused.
func (w *World) Paused() bool { return !w.pausedAt.IsZero() }

func (w *World) Body(name string) (*body.Body, bool) {
	b, ok := w.bodies[name]
	return b, ok
}

// Bodies returns the bodies in creation order.
func (w *World) Bodies() []*body.Body {
	return append([]*body.Body(nil), w.order...)
}

func (w *World) Scores() map[string]float64 {
	scores := make(map[string]float64, len(w.order))
	for _, b := range w.order {
		scores[b.Name()] = b.Points()
	}
	return scores
}

func (w *World) Replay() []replay.Record { return w.replay.Entries() }

func (w *World) Facts() []scoring.FactKey { return w.facts.Completed() }

// Elapsed is the flight time since launch, excluding pauses.
func (w *World) Elapsed() time.Duration {
	if w.launchTime.IsZero() {
		return 0
	}
	end := w.clock.Now()
	if !w.pausedAt.IsZero() {
		end = w.pausedAt
	}
	return end.Sub(w.launchTime)
}

// SetWidgetRects hands the world the on-screen UI rectangles used for the
// overlap hint.
func (w *World) SetWidgetRects(rects []image.Rectangle) {
	w.widgets = append(w.widgets[:0], rects...)
}
