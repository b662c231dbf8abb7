package level

import "fmt"

func rocket(size, vx, vy float64, exclude ...string) BodyDef {
	return BodyDef{
		Name:     "rocket",
		Size:     Square(size),
		Density:  0.01,
		Particle: true,
		Exclude:  exclude,
		Velocity: [2]float64{vx, vy},
		Shape:    ShapeDart,
	}
}

// belt lists everything the asteroid belt level's orbiters ignore, apart
// from self.
func belt(self string) []string {
	all := []string{"rocket", "earth", "jupiter"}
	for i := 0; i < 14; i++ {
		all = append(all, fmt.Sprintf("asteroid_%d", i))
	}
	names := make([]string, 0, len(all)-1)
	for _, name := range all {
		if name != self {
			names = append(names, name)
		}
	}
	return names
}

func asteroid(i int, x, y, vx, vy float64) BodyDef {
	name := fmt.Sprintf("asteroid_%d", i)
	return BodyDef{
		Name:     name,
		Size:     Square(15),
		Position: [2]float64{x, y},
		Density:  0.5,
		Particle: true,
		Exclude:  belt(name),
		Velocity: [2]float64{vx, vy},
	}
}

func withFact(d BodyDef, points float64, text string) BodyDef {
	d.PointLevels = append(d.PointLevels, points)
	d.Facts = append(d.Facts, text)
	return d
}

func builtin() []*Level {
	levels := []*Level{
		{
			Name:        "Earth and Moon",
			Description: "The moon orbiting the earth.",
			Bodies: []BodyDef{
				{Name: "earth", Size: Square(72), Position: [2]float64{210, 210}},
				{Name: "moon", Size: Square(22), Position: [2]float64{260, 40}, Density: 1, PointLevels: []float64{50, 400},
					Facts: []string{
						"The moon is slowly drifting away from the earth, about 3.8 cm every year.",
						"The same side of the moon always faces the earth because it is tidally locked.",
					},
					Particle: true, Exclude: []string{"rocket"}, Velocity: [2]float64{4.8, 3.0}},
				rocket(35, 0, -18),
			},
		},
		{
			Name:        "Mars",
			Description: "Earth, mars and their moons.",
			Bodies: []BodyDef{
				{Name: "earth", Size: Square(62), Position: [2]float64{95, 315}},
				{Name: "moon", Size: Square(18), Position: [2]float64{43, 322}, Density: 0.8, Particle: true,
					Exclude: []string{"rocket", "mars", "phobos"}, Velocity: [2]float64{1.7, -7.8}},
				{Name: "mars", Size: Square(55), Position: [2]float64{385, 95}, Density: 1, PointLevels: []float64{200, 550},
					Facts: []string{
						"Olympus Mons on mars is the tallest volcano in the solar system, about 22 km high.",
						"A day on mars lasts 24 hours and 37 minutes.",
					}},
				{Name: "phobos", Size: Square(15), Position: [2]float64{345, 105}, Density: 0.6, PointLevels: []float64{350},
					Facts: []string{
						"Phobos orbits mars three times a day and will one day break apart or crash into it.",
					},
					Particle: true, Exclude: []string{"rocket", "earth", "moon", "deimos"}, Velocity: [2]float64{1.8, -7.5}},
				{Name: "deimos", Size: Square(10), Position: [2]float64{435, 165}, Density: 0.4, Particle: true,
					Exclude: []string{"rocket", "earth", "moon", "phobos"}, Velocity: [2]float64{-3.4, 8.5}},
				rocket(35, 16, 0),
			},
		},
		{
			Name:        "Inner Planets",
			Description: "The inner solar system.",
			Bodies: []BodyDef{
				{Name: "sun", Size: Square(80), Position: [2]float64{165, 205}, Density: 3.5, PointLevels: []float64{280},
					Facts: []string{
						"The sun holds more than 99.8 percent of the mass of the solar system.",
					}},
				{Name: "mercury", Size: Square(25), Position: [2]float64{132, 152}, Density: 0.8, Particle: true,
					Exclude: []string{"rocket", "venus", "earth"}, Velocity: [2]float64{10.8, -10.8}},
				{Name: "venus", Size: Square(40), Position: [2]float64{254, 420}, Density: 0.9, PointLevels: []float64{220},
					Facts: []string{
						"A day on venus is longer than its year, and it spins backwards.",
					},
					Particle: true, Exclude: []string{"rocket", "mercury", "earth"}, Velocity: [2]float64{-9.8, 4.3}},
				{Name: "earth", Size: Square(45), Position: [2]float64{408, 275}, Density: 1, Particle: true,
					Exclude: []string{"rocket", "mercury", "venus"}, Velocity: [2]float64{-1.2, 9.4}},
				rocket(35, 0, -15),
			},
		},
		{
			Name:        "Ceres",
			Description: "Jupiter and ceres.",
			Bodies: []BodyDef{
				{Name: "earth", Size: Square(30), Position: [2]float64{110, 85}, Density: 1.5},
				{Name: "mars", Size: Square(28), Position: [2]float64{90, 170}, Density: 1.5},
				{Name: "jupiter", Size: Square(80), Position: [2]float64{365, 320}, Density: 1, PointLevels: []float64{250},
					Facts: []string{
						"Jupiter's great red spot is a storm larger than the earth that has raged for centuries.",
					}},
				{Name: "ceres", Size: Square(16), Position: [2]float64{360, 255}, Density: 1, PointLevels: []float64{200},
					Facts: []string{
						"Ceres is the largest object in the asteroid belt and counts as a dwarf planet.",
					}},
				rocket(30, 0, 14),
			},
		},
		{
			Name:        "Asteroid Belt",
			Description: "The asteroid belt, where every asteroid is a different body.",
			Bodies: []BodyDef{
				{Name: "sun", Size: Square(80), Position: [2]float64{-1000, 1000}, Density: 3.5},
				{Name: "earth", Size: Square(35), Position: [2]float64{98, 442}, Density: 0.8, Particle: true,
					Exclude: belt("earth"), Velocity: [2]float64{-0.6, -1.6}},
				{Name: "jupiter", Size: Square(60), Position: [2]float64{435, 255}, Density: 1.8, PointLevels: []float64{280},
					Facts: []string{
						"Jupiter's gravity shepherds the asteroid belt and keeps it from forming a planet.",
					},
					Particle: true, Exclude: belt("jupiter"), Velocity: [2]float64{-0.4, -1.7}},
				asteroid(9, 34, 105, -1.0, -0.8),
				asteroid(3, 74, 115, -0.8, -0.8),
				asteroid(5, 124, 145, -0.7, -1.0),
				asteroid(13, 169, 185, -0.6, -1.4),
				asteroid(11, 174, 245, -0.5, -1.8),
				asteroid(0, 214, 295, -0.4, -2.0),
				withFact(asteroid(1, 234, 365, -0.4, -2.2), 75,
					"The asteroids are spread so thinly that probes cross the belt without ever coming close to one."),
				asteroid(12, 239, 425, -0.2, -2.4),
				asteroid(8, 269, 515, 0.0, -2.5),
				asteroid(2, 284, 585, 0.2, -2.6),
				asteroid(10, 314, 735, 0.4, -2.7),
				asteroid(6, 354, 875, 0.4, -2.8),
				asteroid(4, 384, 985, 0.4, -3.2),
				asteroid(7, 404, 1095, 0.4, -3.4),
				rocket(35, 8.84, -8.84, "sun"),
			},
		},
		{
			Name:        "Galilean Moons",
			Description: "Jupiter, saturn and some of their largest moons.",
			Bodies: []BodyDef{
				{Name: "earth", Size: Square(50), Position: [2]float64{65, 60}},
				{Name: "jupiter", Size: Square(90), Position: [2]float64{200, 300}, Density: 1.8, PointLevels: []float64{300},
					Facts: []string{
						"Jupiter has the shortest day of any planet, under ten hours.",
					}},
				{Name: "saturn", Size: Pair(100, 60), Position: [2]float64{380, 155}, Density: 1, PointLevels: []float64{200, 320},
					Facts: []string{
						"Saturn is less dense than water.",
						"Saturn's rings are mostly ice and are less than a kilometre thick in places.",
					}},
				{Name: "europa", Size: Square(21), Position: [2]float64{120, 375}, Density: 1.2, Particle: true,
					Exclude: []string{"earth", "rocket", "saturn", "titan", "ganymede", "io", "callisto"}, Velocity: [2]float64{4.5, 9.5}},
				{Name: "ganymede", Size: Square(25), Position: [2]float64{255, 445}, Density: 1.2, PointLevels: []float64{250},
					Facts: []string{
						"Ganymede is the largest moon in the solar system, bigger than mercury.",
					},
					Particle: true, Exclude: []string{"earth", "rocket", "saturn", "titan", "europa", "io", "callisto"}, Velocity: [2]float64{12.8, -3.8}},
				{Name: "io", Size: Square(22), Position: [2]float64{335, 325}, Density: 1.2, Particle: true,
					Exclude: []string{"earth", "rocket", "saturn", "titan", "ganymede", "europa", "callisto"}, Velocity: [2]float64{-2.0, -11.5}},
				{Name: "callisto", Size: Square(23), Position: [2]float64{155, 255}, Density: 1.2, Particle: true,
					Exclude: []string{"earth", "rocket", "saturn", "titan", "ganymede", "europa", "io"}, Velocity: [2]float64{-8.5, 10.5}},
				{Name: "titan", Size: Square(20), Position: [2]float64{320, 90}, Density: 1.2, PointLevels: []float64{150},
					Facts: []string{
						"Titan has a thick atmosphere and lakes of liquid methane.",
					},
					Particle: true, Exclude: []string{"earth", "rocket", "jupiter", "callisto", "ganymede", "europa", "io"}, Velocity: [2]float64{-3.5, 10.5}},
				rocket(35, 9.9, 9.9),
			},
		},
		{
			Name:        "Gas Giants",
			Description: "Among the gas giants.",
			Bodies: []BodyDef{
				{Name: "sun", Size: Square(70), Position: [2]float64{375, 220}, Density: 3.5},
				{Name: "earth", Size: Square(30), Position: [2]float64{305, 205}, Density: 1, Particle: true,
					Exclude: []string{"rocket", "jupiter", "saturn", "uranus"}, Velocity: [2]float64{-3.2, 12.4}},
				{Name: "jupiter", Size: Square(45), Position: [2]float64{260, 70}, Density: 1.2, Particle: true,
					Exclude: []string{"rocket", "earth", "saturn", "uranus"}, Velocity: [2]float64{-5.8, 7.8}},
				{Name: "saturn", Size: Pair(60, 35), Position: [2]float64{150, 195}, Density: 2, PointLevels: []float64{150, 350},
					Facts: []string{
						"Saturn has more than 140 known moons.",
						"A year on saturn lasts about 29 earth years.",
					},
					Particle: true, Exclude: []string{"rocket", "earth", "jupiter", "uranus"}, Velocity: [2]float64{-3.5, 10.4}},
				{Name: "uranus", Size: Square(38), Position: [2]float64{70, 25}, Density: 1, PointLevels: []float64{350},
					Facts: []string{
						"Uranus spins on its side, tilted almost 98 degrees.",
					},
					Particle: true, Exclude: []string{"rocket", "jupiter", "saturn", "earth"}, Velocity: [2]float64{-3.2, 6.0}},
				rocket(30, -11.3, -11.3),
			},
		},
		{
			Name:        "Neptune",
			Description: "Among more gas giants.",
			Bodies: []BodyDef{
				{Name: "earth", Size: Square(30), Position: [2]float64{410, 430}},
				{Name: "jupiter", Size: Square(90), Position: [2]float64{300, 235}},
				{Name: "saturn", Size: Pair(100, 60), Position: [2]float64{105, 275}, Density: 1, PointLevels: []float64{280, 500},
					Facts: []string{
						"Saturn's hexagon is a six-sided jet stream around its north pole.",
						"Winds on saturn can reach 1800 km/h.",
					}},
				{Name: "uranus", Size: Square(38), Position: [2]float64{180, 120}},
				{Name: "neptune", Size: Square(40), Position: [2]float64{40, 65}, Density: 1, PointLevels: []float64{380},
					Facts: []string{
						"Neptune was found by mathematics before anyone saw it through a telescope.",
					}},
				{Name: "triton", Size: Square(15), Position: [2]float64{55, 140}, Density: 1, PointLevels: []float64{320},
					Facts: []string{
						"Triton orbits neptune backwards and is probably a captured dwarf planet.",
					},
					Particle: true, Exclude: []string{"earth", "jupiter", "saturn", "uranus"}, Velocity: [2]float64{5.5, 0.2}},
				rocket(30, -11.3, -11.3),
			},
		},
		{
			Name:        "Pluto",
			Description: "The outer solar system.",
			Bodies: []BodyDef{
				{Name: "earth", Size: Square(30), Position: [2]float64{210, 430}},
				{Name: "jupiter", Size: Square(90), Position: [2]float64{300, 235}},
				{Name: "uranus", Size: Square(38), Position: [2]float64{100, 130}},
				{Name: "neptune", Size: Square(40), Position: [2]float64{400, 65}},
				{Name: "triton", Size: Square(15), Position: [2]float64{415, 140}, Density: 1, Particle: true,
					Exclude: []string{"rocket", "earth", "jupiter", "uranus", "pluto", "charon"}, Velocity: [2]float64{5.5, 0.2}},
				{Name: "pluto", Size: Square(20), Position: [2]float64{250, 35}, Density: 1.5, PointLevels: []float64{180},
					Facts: []string{
						"Pluto and charon orbit a point between them, so each circles the other.",
					},
					Particle: true, Exclude: []string{"rocket", "earth", "jupiter", "uranus", "neptune", "triton"}, Velocity: [2]float64{-3.0, 0}},
				{Name: "charon", Size: Square(18), Position: [2]float64{251, 85}, Density: 1.85, Particle: true,
					Exclude: []string{"rocket", "earth", "jupiter", "uranus", "neptune", "triton"}, Velocity: [2]float64{3.0, 0}},
				rocket(30, 0, -12),
			},
		},
	}

	targets := []string{"moon", "mars", "venus", "ceres", "jupiter", "saturn", "uranus", "neptune", "pluto"}
	for i, l := range levels {
		l.ID = i
		l.Hero = "rocket"
		l.Target = targets[i]
		l.Home = "earth"
	}
	return levels
}
