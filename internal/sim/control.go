package sim

import (
	"image"
	"math"
	"time"

	"github.com/san-kum/gravitywell/internal/body"
	"github.com/san-kum/gravitywell/internal/replay"
	"github.com/san-kum/gravitywell/internal/vec"
)

// restore puts every body back at its initial snapshot and clears the
// per-flight state. Scores survive.
func (w *World) restore() {
	for _, b := range w.order {
		b.Reset()
	}
	w.g = w.params.G
	w.tickRate = w.params.TickRate
	w.offscreenSince = time.Time{}
	w.pausedAt = time.Time{}
	w.launchTime = time.Time{}
	w.atmosphere = true
	hero := w.heroBody()
	hero.Hide()
	w.aim = w.clampSpeed(hero.InitialVelocity())
}

func (w *World) enterPreview() {
	w.restore()
	w.phase = Preview
	w.running = true
}

func (w *World) enterAiming() {
	w.restore()
	w.phase = Aiming
	w.running = false
}

// ReadyLaunch moves from Preview to Aiming.
func (w *World) ReadyLaunch() bool {
	if !w.started || w.awaiting || w.phase != Preview {
		return false
	}
	w.enterAiming()
	w.log.Info("ready to launch")
	return true
}

// RequestObserve returns from Aiming to Preview.
func (w *World) RequestObserve() bool {
	if !w.started || w.awaiting || w.phase != Aiming {
		return false
	}
	w.enterPreview()
	w.log.Info("observing")
	return true
}

// RequestReset restarts the current phase. A flight in progress is logged
// as reset and drops back to Aiming. Aiming is already at rest.
func (w *World) RequestReset() bool {
	if !w.started || w.awaiting {
		return false
	}
	switch w.phase {
	case Preview:
		w.enterPreview()
	case Flight:
		if w.replay.Pending() {
			w.replay.Commit(replay.Reset, w.Elapsed())
		}
		w.enterAiming()
	default:
		return false
	}
	w.log.Info("reset")
	return true
}

// RequestLaunch sets the aim to v, clamping its speed, and launches.
func (w *World) RequestLaunch(v vec.Vec2) bool {
	if !w.canAim() {
		return false
	}
	w.aim = w.clampSpeed(v)
	return w.Launch()
}

// Launch fires the hero from the home body with the current aim.
func (w *World) Launch() bool {
	if !w.canAim() {
		return false
	}
	hero := w.heroBody()
	hero.Show()
	hero.SetVelocity(w.aim)
	hero.Orient(body.Heading(w.aim))
	hero.CenterOn(w.nozzle())

	w.atmosphere = true
	w.launchTime = w.clock.Now()
	w.replay.Open(w.aim)
	w.phase = Flight
	w.running = true
	speed, angle := vec.ToPolar(w.aim)
	w.log.Info("launch", "speed", speed, "angle", angle*180/math.Pi)
	return true
}

// nozzle is where the hero appears on launch: on the home body's rim along
// the aim direction.
func (w *World) nozzle() image.Point {
	home, ok := w.bodies[w.home]
	if !ok {
		r := w.heroBody().InitialState().Rect
		return image.Pt(r.Min.X+r.Dx()/2, r.Min.Y+r.Dy()/2)
	}
	p := home.COM().Add(vec.Unit(w.aim).Mul(home.RoughRadius() * w.params.LaunchOffset))
	x, y := vec.Round(p)
	return image.Pt(x, y)
}

func (w *World) canAim() bool {
	return w.started && !w.awaiting && w.phase == Aiming
}

func (w *World) clampSpeed(v vec.Vec2) vec.Vec2 {
	speed, angle := vec.ToPolar(v)
	speed = math.Max(w.params.MinSpeed, math.Min(w.params.MaxSpeed, speed))
	return vec.FromPolar(speed, angle)
}

// SetLaunchSpeed changes the aim magnitude, clamped to the launch range.
func (w *World) SetLaunchSpeed(speed float64) bool {
	if !w.canAim() {
		return false
	}
	_, angle := vec.ToPolar(w.aim)
	w.aim = w.clampSpeed(vec.FromPolar(speed, angle))
	return true
}

// SetLaunchAngle points the aim at degrees, measured like atan2 in screen
// coordinates (y down).
func (w *World) SetLaunchAngle(degrees float64) bool {
	if !w.canAim() {
		return false
	}
	degrees = math.Max(-180, math.Min(180, degrees))
	speed, _ := vec.ToPolar(w.aim)
	w.aim = vec.FromPolar(speed, degrees*math.Pi/180)
	return true
}

// LaunchAngle is the aim direction in degrees.
func (w *World) LaunchAngle() float64 {
	_, angle := vec.ToPolar(w.aim)
	return angle * 180 / math.Pi
}

func (w *World) NudgeSpeed(dir int) bool {
	speed, _ := vec.ToPolar(w.aim)
	return w.SetLaunchSpeed(speed + float64(sign(dir))*w.params.SpeedStep)
}

func (w *World) NudgeAngle(dir int) bool {
	if !w.canAim() {
		return false
	}
	speed, angle := vec.ToPolar(w.aim)
	w.aim = vec.FromPolar(speed, angle+float64(sign(dir))*w.params.AngleStep*math.Pi/180)
	return true
}

// RecallAttempt reuses the launch velocity of the i-th most recent attempt.
func (w *World) RecallAttempt(i int) bool {
	if !w.canAim() {
		return false
	}
	r, ok := w.replay.At(i)
	if !ok {
		return false
	}
	w.aim = w.clampSpeed(r.Velocity)
	return true
}

// SetGravitationalConstant clamps g to the configured range and returns the
// value applied. A reset restores the default.
func (w *World) SetGravitationalConstant(g float64) float64 {
	w.g = math.Max(w.params.GMin, math.Min(w.params.GMax, g))
	w.log.Debug("gravity changed", "g", w.g)
	return w.g
}

func (w *World) NudgeGravity(dir int) float64 {
	return w.SetGravitationalConstant(w.g + float64(sign(dir))*w.params.GStep)
}

// TogglePause pauses or resumes Preview and Flight. Paused time does not
// count toward the flight clock or the offscreen timeout.
func (w *World) TogglePause() bool {
	if !w.started || w.awaiting || w.phase == Aiming {
		return false
	}
	now := w.clock.Now()
	if w.pausedAt.IsZero() {
		w.pausedAt = now
		w.running = false
		w.log.Info("paused")
		return true
	}
	shift := now.Sub(w.pausedAt)
	if !w.launchTime.IsZero() {
		w.launchTime = w.launchTime.Add(shift)
	}
	if !w.offscreenSince.IsZero() {
		w.offscreenSince = w.offscreenSince.Add(shift)
	}
	w.pausedAt = time.Time{}
	w.running = true
	w.log.Info("resumed", "paused_for", shift)
	return true
}

// Advance accepts the level-complete prompt and marks the level finished.
func (w *World) Advance() bool {
	if !w.awaiting {
		return false
	}
	w.awaiting = false
	w.finished = true
	w.log.Info("level finished")
	return true
}

// Stay declines the level-complete prompt and keeps playing.
func (w *World) Stay() bool {
	if !w.awaiting {
		return false
	}
	w.awaiting = false
	return true
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	}
	return 0
}
