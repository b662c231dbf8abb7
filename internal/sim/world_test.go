package sim_test

import (
	"image"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/gravitywell/internal/body"
	"github.com/san-kum/gravitywell/internal/replay"
	"github.com/san-kum/gravitywell/internal/sim"
	"github.com/san-kum/gravitywell/internal/vec"
)

func expectVec(got, want vec.Vec2) {
	GinkgoHelper()
	Expect(got[0]).To(BeNumerically("~", want[0], 1e-9))
	Expect(got[1]).To(BeNumerically("~", want[1], 1e-9))
}

var _ = Describe("World", func() {
	var (
		clock *sim.ManualClock
		world *sim.World
	)

	build := func(f fixture) {
		var err error
		clock = sim.NewManualClock(time.Unix(1000, 0))
		world, err = f.build(clock)
		Expect(err).NotTo(HaveOccurred())
		Expect(world.Start()).To(Succeed())
	}

	step := func(n int) sim.Events {
		var ev sim.Events
		for i := 0; i < n; i++ {
			clock.Advance(tick)
			ev = world.Tick()
		}
		return ev
	}

	hero := func() *body.Body {
		b, ok := world.Body("rocket")
		Expect(ok).To(BeTrue())
		return b
	}

	Describe("setup", func() {
		It("rejects duplicate names", func() {
			w, err := sim.NewWorld(sim.DefaultParams())
			Expect(err).NotTo(HaveOccurred())
			Expect(w.CreateBody(body.Spec{Name: "a", Shape: square(4), Mass: 1})).To(Succeed())
			Expect(w.CreateBody(body.Spec{Name: "a", Shape: square(4), Mass: 2})).To(MatchError(sim.ErrDuplicateBody))
		})

		It("rejects roles for unknown bodies", func() {
			w, err := sim.NewWorld(sim.DefaultParams())
			Expect(err).NotTo(HaveOccurred())
			Expect(w.SetHero("ghost")).To(MatchError(sim.ErrUnknownBody))
			Expect(w.SetTarget("ghost")).To(MatchError(sim.ErrUnknownBody))
			Expect(w.SetHome("ghost")).To(MatchError(sim.ErrUnknownBody))
		})

		It("requires a hero and a target", func() {
			w, err := sim.NewWorld(sim.DefaultParams())
			Expect(err).NotTo(HaveOccurred())
			Expect(w.CreateBody(body.Spec{Name: "a", Shape: square(4), Mass: 1, Particle: true})).To(Succeed())
			Expect(w.Start()).To(MatchError(sim.ErrNoHero))
			Expect(w.SetHero("a")).To(Succeed())
			Expect(w.Start()).To(MatchError(sim.ErrNoTarget))
			Expect(w.SetTarget("a")).To(Succeed())
			Expect(w.Start()).To(MatchError(sim.ErrInvalidSetup))
		})

		It("rejects invalid parameters", func() {
			p := sim.DefaultParams()
			p.G = 100
			_, err := sim.NewWorld(p)
			Expect(err).To(MatchError(sim.ErrInvalidParams))
		})

		It("is closed once started", func() {
			build(fixture{})
			Expect(world.CreateBody(body.Spec{Name: "late", Shape: square(4), Mass: 1})).To(MatchError(sim.ErrStarted))
			Expect(world.SetHero("earth")).To(MatchError(sim.ErrStarted))
			Expect(world.Start()).To(MatchError(sim.ErrStarted))
		})

		It("starts in preview with the hero hidden", func() {
			build(fixture{})
			Expect(world.Phase()).To(Equal(sim.Preview))
			Expect(world.Running()).To(BeTrue())
			Expect(hero().Visible()).To(BeFalse())
			expectVec(world.Aim(), vec.Vec2{0, -18})
			Expect(world.HaloVisible()).To(BeTrue())
		})
	})

	Describe("phase transitions", func() {
		BeforeEach(func() { build(fixture{}) })

		It("ignores requests made in the wrong phase", func() {
			Expect(world.Launch()).To(BeFalse())
			Expect(world.NudgeSpeed(1)).To(BeFalse())
			Expect(world.RecallAttempt(0)).To(BeFalse())
			Expect(world.RequestObserve()).To(BeFalse())
			Expect(world.Advance()).To(BeFalse())

			Expect(world.ReadyLaunch()).To(BeTrue())
			Expect(world.Phase()).To(Equal(sim.Aiming))
			Expect(world.Running()).To(BeFalse())
			Expect(world.TogglePause()).To(BeFalse())
			Expect(world.RequestReset()).To(BeFalse())
			Expect(world.ReadyLaunch()).To(BeFalse())

			Expect(world.Launch()).To(BeTrue())
			Expect(world.Phase()).To(Equal(sim.Flight))
			Expect(world.HaloVisible()).To(BeFalse())
			Expect(world.ReadyLaunch()).To(BeFalse())
			Expect(world.RequestObserve()).To(BeFalse())
			Expect(world.Launch()).To(BeFalse())
			Expect(world.SetLaunchSpeed(20)).To(BeFalse())
		})

		It("moves between preview and aiming", func() {
			Expect(world.ReadyLaunch()).To(BeTrue())
			Expect(world.RequestObserve()).To(BeTrue())
			Expect(world.Phase()).To(Equal(sim.Preview))
			Expect(world.RequestReset()).To(BeTrue())
			Expect(world.Phase()).To(Equal(sim.Preview))
		})

		It("does nothing while aiming", func() {
			Expect(world.ReadyLaunch()).To(BeTrue())
			before := hero().State()
			ev := step(10)
			Expect(ev).To(Equal(sim.Events{}))
			Expect(hero().State()).To(Equal(before))
		})
	})

	Describe("aiming", func() {
		BeforeEach(func() {
			build(fixture{})
			Expect(world.ReadyLaunch()).To(BeTrue())
		})

		It("clamps the launch speed", func() {
			Expect(world.SetLaunchSpeed(100)).To(BeTrue())
			Expect(vec.Magnitude(world.Aim())).To(BeNumerically("~", 24, 1e-9))
			Expect(world.SetLaunchSpeed(1)).To(BeTrue())
			Expect(vec.Magnitude(world.Aim())).To(BeNumerically("~", 12, 1e-9))
			Expect(world.NudgeSpeed(1)).To(BeTrue())
			Expect(vec.Magnitude(world.Aim())).To(BeNumerically("~", 12.1, 1e-9))
		})

		It("turns the aim by whole degrees", func() {
			Expect(world.SetLaunchAngle(0)).To(BeTrue())
			Expect(world.NudgeAngle(1)).To(BeTrue())
			Expect(world.NudgeAngle(1)).To(BeTrue())
			Expect(world.LaunchAngle()).To(BeNumerically("~", 2, 1e-9))
			Expect(vec.Magnitude(world.Aim())).To(BeNumerically("~", 18, 1e-9))
		})

		It("launches the hero from the rim of home", func() {
			Expect(world.RequestLaunch(vec.Vec2{20, 0})).To(BeTrue())
			earth, _ := world.Body("earth")
			r := hero().Rect()
			centre := image.Pt(r.Min.X+r.Dx()/2, r.Min.Y+r.Dy()/2)
			x, y := vec.Round(earth.COM().Add(vec.Vec2{earth.RoughRadius(), 0}))
			Expect(centre).To(Equal(image.Pt(x, y)))
			Expect(hero().Visible()).To(BeTrue())
			Expect(hero().Velocity()).To(Equal(vec.Vec2{20, 0}))
			Expect(world.Atmosphere()).To(BeTrue())
		})
	})

	Describe("gravity", func() {
		BeforeEach(func() { build(fixture{}) })

		It("clamps to the configured range", func() {
			Expect(world.SetGravitationalConstant(100)).To(Equal(8.0))
			Expect(world.SetGravitationalConstant(0)).To(Equal(0.5))
			Expect(world.NudgeGravity(1)).To(Equal(1.0))
			Expect(world.NudgeGravity(-1)).To(Equal(0.5))
		})

		It("returns to the default on reset", func() {
			world.SetGravitationalConstant(6)
			Expect(world.RequestReset()).To(BeTrue())
			Expect(world.G()).To(Equal(sim.DefaultParams().G))
		})
	})

	Describe("flight", func() {
		It("never moves fixed bodies", func() {
			build(fixture{})
			earth, _ := world.Body("earth")
			moon, _ := world.Body("moon")
			e, m := earth.State(), moon.State()

			step(20)
			Expect(world.ReadyLaunch()).To(BeTrue())
			Expect(world.RequestLaunch(vec.Vec2{0, -24})).To(BeTrue())
			step(20)

			Expect(earth.State()).To(Equal(e))
			Expect(moon.State()).To(Equal(m))
		})

		It("restores the initial snapshot on reset", func() {
			build(fixture{})
			initial := hero().InitialState()
			Expect(world.ReadyLaunch()).To(BeTrue())
			Expect(world.RequestLaunch(vec.Vec2{0, -24})).To(BeTrue())
			step(5)
			Expect(hero().Rect()).NotTo(Equal(initial.Rect))

			Expect(world.RequestReset()).To(BeTrue())
			Expect(world.Phase()).To(Equal(sim.Aiming))
			Expect(hero().State()).To(Equal(initial))
			Expect(hero().Velocity()).To(Equal(vec.Vec2{0, -18}))
			Expect(hero().Visible()).To(BeFalse())

			Expect(world.Replay()).To(HaveLen(1))
			latest := world.Replay()[0]
			Expect(latest.Outcome).To(Equal(replay.Reset))
			expectVec(latest.Velocity, vec.Vec2{0, -24})
		})

		It("keeps only the most recent attempts", func() {
			build(fixture{})
			Expect(world.ReadyLaunch()).To(BeTrue())
			for i := 0; i < 7; i++ {
				Expect(world.SetLaunchSpeed(12 + float64(i))).To(BeTrue())
				Expect(world.Launch()).To(BeTrue())
				step(1)
				Expect(world.RequestReset()).To(BeTrue())
			}
			entries := world.Replay()
			Expect(entries).To(HaveLen(5))
			Expect(vec.Magnitude(entries[0].Velocity)).To(BeNumerically("~", 18, 1e-9))
			Expect(vec.Magnitude(entries[4].Velocity)).To(BeNumerically("~", 14, 1e-9))

			Expect(world.RecallAttempt(4)).To(BeTrue())
			Expect(vec.Magnitude(world.Aim())).To(BeNumerically("~", 14, 1e-9))
		})

		It("scores bodies while the hero flies", func() {
			build(fixture{})
			Expect(world.ReadyLaunch()).To(BeTrue())
			Expect(world.RequestLaunch(vec.Vec2{0, -24})).To(BeTrue())
			step(3)
			scores := world.Scores()
			Expect(scores["earth"]).To(BeNumerically(">", 0))
			Expect(scores["moon"]).To(BeNumerically(">", 0))
			Expect(scores["rocket"]).To(BeZero())

			Expect(world.RequestReset()).To(BeTrue())
			Expect(world.Scores()["earth"]).To(Equal(scores["earth"]))
		})
	})

	Describe("crashes", func() {
		It("completes the level on reaching the target", func() {
			build(fixture{})
			Expect(world.ReadyLaunch()).To(BeTrue())
			Expect(world.RequestLaunch(vec.Vec2{20, 0})).To(BeTrue())

			var ev sim.Events
			for i := 0; i < 100 && !ev.Terminal(); i++ {
				ev = step(1)
			}
			Expect(ev.Crash).NotTo(BeNil())
			Expect(ev.Crash.Body).To(Equal("moon"))
			Expect(ev.LevelComplete).To(BeTrue())
			Expect(world.LevelComplete()).To(BeTrue())
			Expect(world.AwaitingConfirmation()).To(BeTrue())
			Expect(world.Phase()).To(Equal(sim.Aiming))
			Expect(world.Replay()[0].Outcome).To(Equal("moon"))

			Expect(world.ReadyLaunch()).To(BeFalse())
			Expect(step(1)).To(Equal(sim.Events{}))

			Expect(world.Advance()).To(BeTrue())
			Expect(world.Finished()).To(BeTrue())
			Expect(world.AwaitingConfirmation()).To(BeFalse())
		})

		It("crashes into other bodies once out of the atmosphere", func() {
			build(fixture{blocker: true})
			Expect(world.ReadyLaunch()).To(BeTrue())
			Expect(world.RequestLaunch(vec.Vec2{20, 0})).To(BeTrue())

			var ev sim.Events
			for i := 0; i < 100 && !ev.Terminal(); i++ {
				ev = step(1)
			}
			Expect(ev.Crash).NotTo(BeNil())
			Expect(ev.Crash.Body).To(Equal("asteroid"))
			Expect(ev.Crash.Elapsed).To(BeNumerically(">=", sim.DefaultParams().EscapeGrace))
			Expect(ev.LevelComplete).To(BeFalse())
			Expect(world.AwaitingConfirmation()).To(BeFalse())
			Expect(world.Phase()).To(Equal(sim.Aiming))
		})

		It("crashes into home when the hero falls back after leaving the atmosphere", func() {
			build(fixture{})
			Expect(world.ReadyLaunch()).To(BeTrue())
			Expect(world.RequestLaunch(vec.Vec2{0, -12})).To(BeTrue())
			Expect(world.SetGravitationalConstant(8)).To(Equal(8.0))

			ev := step(1)
			Expect(ev.Crash).To(BeNil())
			Expect(world.Atmosphere()).To(BeFalse())

			for i := 0; i < 100 && !ev.Terminal(); i++ {
				ev = step(1)
			}
			Expect(ev.Crash).NotTo(BeNil())
			Expect(ev.Crash.Body).To(Equal("earth"))
			Expect(ev.Crash.Elapsed).To(BeNumerically(">=", sim.DefaultParams().EscapeGrace))
			Expect(ev.LevelComplete).To(BeFalse())
			Expect(world.Phase()).To(Equal(sim.Aiming))
			Expect(world.Replay()[0].Outcome).To(Equal("earth"))
		})

		It("ignores home while the hero is still climbing through the atmosphere", func() {
			build(fixture{heroSize: 100})
			Expect(world.ReadyLaunch()).To(BeTrue())
			Expect(world.RequestLaunch(vec.Vec2{0, -12})).To(BeTrue())

			ev := step(3)
			Expect(ev.Crash).To(BeNil())
			Expect(world.Elapsed()).To(BeNumerically(">=", sim.DefaultParams().EscapeGrace))
			earth, ok := world.Body("earth")
			Expect(ok).To(BeTrue())
			Expect(hero().Rect().Overlaps(earth.Rect())).To(BeTrue())
			Expect(vec.Magnitude(hero().Velocity())).To(BeNumerically(">", sim.DefaultParams().MinEscapeSpeed))
			Expect(world.Atmosphere()).To(BeTrue())
			Expect(world.Phase()).To(Equal(sim.Flight))

			for i := 0; i < 10 && world.Atmosphere(); i++ {
				ev = step(1)
				Expect(ev.Crash).To(BeNil())
			}
			Expect(world.Atmosphere()).To(BeFalse())
			Expect(world.Phase()).To(Equal(sim.Flight))
		})

		It("leaves the atmosphere once the hero slows down while touching home", func() {
			build(fixture{heroSize: 100})
			Expect(world.ReadyLaunch()).To(BeTrue())
			Expect(world.RequestLaunch(vec.Vec2{0, -12})).To(BeTrue())
			world.SetGravitationalConstant(8)

			var ev sim.Events
			speed := 0.0
			for i := 0; i < 20 && !ev.Terminal(); i++ {
				speed = vec.Magnitude(hero().Velocity())
				ev = step(1)
				if !ev.Terminal() {
					Expect(world.Atmosphere()).To(Equal(speed > sim.DefaultParams().MinEscapeSpeed))
				}
			}
			Expect(ev.Crash).NotTo(BeNil())
			Expect(ev.Crash.Body).To(Equal("earth"))
			Expect(speed).To(BeNumerically("<=", sim.DefaultParams().MinEscapeSpeed))
			Expect(world.Replay()[0].Outcome).To(Equal("earth"))
		})

		It("lets the player stay after completing the level", func() {
			build(fixture{})
			Expect(world.ReadyLaunch()).To(BeTrue())
			Expect(world.RequestLaunch(vec.Vec2{20, 0})).To(BeTrue())
			for i := 0; i < 100 && !world.AwaitingConfirmation(); i++ {
				step(1)
			}
			Expect(world.Stay()).To(BeTrue())
			Expect(world.Finished()).To(BeFalse())
			Expect(world.Launch()).To(BeTrue())
		})
	})

	Describe("escape", func() {
		BeforeEach(func() {
			build(fixture{})
			Expect(world.ReadyLaunch()).To(BeTrue())
			Expect(world.RequestLaunch(vec.Vec2{0, -24})).To(BeTrue())
			for i := 0; i < 100 && !world.Offscreen(); i++ {
				step(1)
			}
			Expect(world.Offscreen()).To(BeTrue())
			Expect(world.TickRate()).To(Equal(60.0))
		})

		It("resets after exactly the offscreen timeout", func() {
			timeout := sim.DefaultParams().OffscreenTimeout

			clock.Advance(timeout - time.Millisecond)
			Expect(world.Tick().Escaped).To(BeFalse())
			Expect(world.Phase()).To(Equal(sim.Flight))

			clock.Advance(time.Millisecond)
			Expect(world.Tick().Escaped).To(BeTrue())
			Expect(world.Phase()).To(Equal(sim.Aiming))
			Expect(world.TickRate()).To(Equal(30.0))
			Expect(world.Replay()[0].Outcome).To(Equal(replay.Escaped))
		})

		It("does not count paused time", func() {
			Expect(world.TogglePause()).To(BeTrue())
			clock.Advance(time.Minute)
			Expect(world.Tick()).To(Equal(sim.Events{}))
			Expect(world.TogglePause()).To(BeTrue())

			clock.Advance(time.Second)
			Expect(world.Tick().Escaped).To(BeFalse())
		})
	})

	Describe("pause", func() {
		It("freezes the flight clock", func() {
			build(fixture{})
			Expect(world.ReadyLaunch()).To(BeTrue())
			Expect(world.RequestLaunch(vec.Vec2{0, -24})).To(BeTrue())
			step(3)
			elapsed := world.Elapsed()
			Expect(elapsed).To(Equal(3 * tick))

			Expect(world.TogglePause()).To(BeTrue())
			Expect(world.Paused()).To(BeTrue())
			before := hero().State()
			clock.Advance(5 * time.Second)
			world.Tick()
			Expect(hero().State()).To(Equal(before))
			Expect(world.Elapsed()).To(Equal(elapsed))

			Expect(world.TogglePause()).To(BeTrue())
			Expect(world.Elapsed()).To(Equal(elapsed))
			step(1)
			Expect(world.Elapsed()).To(Equal(elapsed + tick))
		})
	})

	Describe("snapshots", func() {
		It("carries progress to a fresh world", func() {
			build(fixture{})
			Expect(world.ReadyLaunch()).To(BeTrue())
			Expect(world.RequestLaunch(vec.Vec2{0, -24})).To(BeTrue())
			step(4)
			Expect(world.RequestReset()).To(BeTrue())
			snap := world.Snapshot()

			fresh, err := fixture{}.build(sim.NewManualClock(time.Unix(0, 0)))
			Expect(err).NotTo(HaveOccurred())
			Expect(fresh.Restore(snap)).To(Succeed())
			Expect(fresh.Scores()).To(Equal(world.Scores()))
			Expect(fresh.Replay()).To(Equal(world.Replay()))
			Expect(fresh.Facts()).To(Equal(world.Facts()))
		})

		It("refuses a snapshot from another level", func() {
			build(fixture{})
			snap := world.Snapshot()
			snap.Level = 7
			Expect(world.Restore(snap)).To(MatchError(sim.ErrSnapshotLevel))
		})
	})
})
