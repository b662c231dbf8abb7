package level_test

import (
	"image"
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/gravitywell/internal/level"
	"github.com/san-kum/gravitywell/internal/sim"
)

var screen = image.Pt(1074, 768)

var _ = Describe("Registry", func() {
	var reg *level.Registry

	BeforeEach(func() {
		reg = level.NewRegistry()
	})

	It("ships the nine built-in levels in order", func() {
		Expect(reg.List()).To(Equal([]int{0, 1, 2, 3, 4, 5, 6, 7, 8}))
	})

	It("reports unknown levels", func() {
		_, err := reg.Get(42)
		Expect(err).To(MatchError(level.ErrUnknownLevel))
	})

	It("carries one fact per point level", func() {
		facts := 0
		for _, id := range reg.List() {
			l, err := reg.Get(id)
			Expect(err).NotTo(HaveOccurred())
			for _, b := range l.Bodies {
				Expect(b.Facts).To(HaveLen(len(b.PointLevels)), "level %d body %s", id, b.Name)
				facts += len(b.Facts)
			}
		}
		Expect(facts).To(Equal(24))
	})

	DescribeTable("builds every built-in level into a world",
		func(id int, target string) {
			l, err := reg.Get(id)
			Expect(err).NotTo(HaveOccurred())

			w, err := sim.NewWorld(sim.DefaultParams(), sim.WithClock(sim.NewManualClock(time.Unix(0, 0))), sim.WithLevel(id))
			Expect(err).NotTo(HaveOccurred())
			Expect(level.Build(l, w, screen)).To(Succeed())
			Expect(w.Start()).To(Succeed())

			Expect(w.Hero()).To(Equal("rocket"))
			Expect(w.Target()).To(Equal(target))
			Expect(w.Home()).To(Equal("earth"))
			Expect(w.Bodies()).To(HaveLen(len(l.Bodies)))

			for i := 0; i < 30; i++ {
				w.Tick()
			}
			Expect(w.Phase()).To(Equal(sim.Preview))
		},
		Entry("earth and moon", 0, "moon"),
		Entry("mars", 1, "mars"),
		Entry("inner planets", 2, "venus"),
		Entry("ceres", 3, "ceres"),
		Entry("asteroid belt", 4, "jupiter"),
		Entry("galilean moons", 5, "saturn"),
		Entry("gas giants", 6, "uranus"),
		Entry("neptune", 7, "neptune"),
		Entry("pluto", 8, "pluto"),
	)

	It("keeps exclusion lists as lists", func() {
		l, err := reg.Get(0)
		Expect(err).NotTo(HaveOccurred())
		Expect(l.Bodies[1].Exclude).To(Equal([]string{"rocket"}))

		l, err = reg.Get(4)
		Expect(err).NotTo(HaveOccurred())
		rocket := l.Bodies[len(l.Bodies)-1]
		Expect(rocket.Exclude).To(Equal([]string{"sun"}))
		for _, b := range l.Bodies {
			Expect(b.Exclude).NotTo(ContainElement(b.Name))
		}
	})

	It("builds a level into an unstarted world keyed by its id", func() {
		l, err := reg.Get(3)
		Expect(err).NotTo(HaveOccurred())

		w, err := l.NewWorld(sim.DefaultParams(), sim.WithClock(sim.NewManualClock(time.Unix(0, 0))))
		Expect(err).NotTo(HaveOccurred())
		Expect(w.Level()).To(Equal(3))
		Expect(w.Started()).To(BeFalse())
		Expect(w.Bodies()).To(HaveLen(len(l.Bodies)))
		Expect(w.Start()).To(Succeed())
		Expect(w.Phase()).To(Equal(sim.Preview))
	})

	It("rejects invalid params when building a world", func() {
		l, err := reg.Get(0)
		Expect(err).NotTo(HaveOccurred())

		p := sim.DefaultParams()
		p.TickRate = 0
		_, err = l.NewWorld(p)
		Expect(err).To(HaveOccurred())
	})

	It("registers level files", func() {
		path := filepath.Join(GinkgoT().TempDir(), "custom.yaml")
		data := `id: 20
name: Custom
hero: ship
target: goal
bodies:
  - name: ship
    size: 20
    position: [10, 10]
    particle: true
    shape: dart
  - name: goal
    size: [40, 20]
    position: [400, 400]
`
		Expect(os.WriteFile(path, []byte(data), 0644)).To(Succeed())
		l, err := reg.AddFile(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(l.Home).To(BeEmpty())

		got, err := reg.Get(20)
		Expect(err).NotTo(HaveOccurred())
		Expect(got.Name).To(Equal("Custom"))
		Expect(reg.Len()).To(Equal(10))
	})
})
