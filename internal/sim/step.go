package sim

import (
	"time"

	"github.com/san-kum/gravitywell/internal/body"
	"github.com/san-kum/gravitywell/internal/collision"
	"github.com/san-kum/gravitywell/internal/replay"
	"github.com/san-kum/gravitywell/internal/scoring"
	"github.com/san-kum/gravitywell/internal/vec"
)

// Tick advances the world by one step. It does nothing while the world is
// frozen, paused or waiting for a level-complete answer.
func (w *World) Tick() Events {
	var ev Events
	if !w.started || !w.running || w.awaiting {
		return ev
	}

	w.overlap = collision.Overlapping(w.order, w.widgets)
	ev.Overlap = w.overlap

	for _, b := range w.order {
		b.Move()
	}

	if w.phase == Flight && w.checkCrash(&ev) {
		return ev
	}

	hero := w.heroBody()
	hero.Orient(body.Heading(hero.Velocity()))

	for _, b := range w.order {
		b.UpdateVelocity(w.order, w.g)
	}
	scoring.Accumulate(w.order, hero, w.params.Scoring)

	ev.Facts = w.facts.Check(w.order)
	for _, f := range ev.Facts {
		w.log.Debug("fact unlocked", "fact", f.String())
	}

	if w.phase == Flight {
		w.checkEscape(&ev)
	}
	return ev
}

// checkCrash updates the atmosphere flag and ends the flight on a crash.
// Touching the target always counts; other contacts only once the hero has
// left the atmosphere and the launch grace period has passed.
func (w *World) checkCrash(ev *Events) bool {
	hits := collision.CheckAll(w.order)
	pairs := collision.Involving(hits, w.order, w.hero)

	for _, p := range pairs {
		if p.Other(w.hero) == w.target {
			w.crash(w.target, ev)
			return true
		}
	}

	if w.atmosphere {
		touchingHome := false
		for _, p := range pairs {
			if w.home != "" && p.Other(w.hero) == w.home {
				touchingHome = true
				break
			}
		}
		if !touchingHome || vec.Magnitude(w.heroBody().Velocity()) <= w.params.MinEscapeSpeed {
			w.atmosphere = false
			w.log.Debug("left atmosphere", "elapsed", w.Elapsed())
		}
	}

	if w.atmosphere || w.Elapsed() < w.params.EscapeGrace || len(pairs) == 0 {
		return false
	}
	w.crash(pairs[0].Other(w.hero), ev)
	return true
}

func (w *World) crash(name string, ev *Events) {
	elapsed := w.Elapsed()
	w.replay.Commit(name, elapsed)
	ev.Crash = &Crash{Body: name, Elapsed: elapsed}
	w.log.Info("crash", "body", name, "elapsed", elapsed)

	if name == w.target {
		w.levelComplete = true
		w.awaiting = true
		ev.LevelComplete = true
		w.log.Info("target reached", "target", name)
	}
	w.enterAiming()
}

func (w *World) outside(p vec.Vec2) bool {
	return p[0] < 0 || p[0] > float64(w.params.ScreenW) || p[1] < 0 || p[1] > float64(w.params.ScreenH)
}

// checkEscape doubles the tick rate while the hero is off screen and resets
// the flight once it has been gone for the offscreen timeout.
func (w *World) checkEscape(ev *Events) {
	hero := w.heroBody()
	if !hero.Visible() {
		return
	}
	now := w.clock.Now()

	if !w.outside(hero.COM()) {
		if !w.offscreenSince.IsZero() {
			w.offscreenSince = time.Time{}
			w.tickRate = w.params.TickRate
			w.log.Debug("hero back on screen")
		}
		return
	}

	if w.offscreenSince.IsZero() {
		w.offscreenSince = now
		w.tickRate = 2 * w.params.TickRate
		w.log.Debug("hero off screen", "com", hero.COM())
	}
	if now.Sub(w.offscreenSince) >= w.params.OffscreenTimeout {
		elapsed := w.Elapsed()
		w.replay.Commit(replay.Escaped, elapsed)
		ev.Escaped = true
		w.log.Info("hero escaped", "elapsed", elapsed)
		w.enterAiming()
	}
}
