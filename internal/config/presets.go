package config

import (
	"sort"
	"time"
)

var Presets = map[string]func(*Settings){
	"classic": func(*Settings) {},
	"relaxed": func(s *Settings) {
		s.Gravity.Default = 2.5
		s.Launch.MinSpeed = 8
		s.Escape.Grace = 200 * time.Millisecond
		s.Escape.OffscreenTimeout = 12 * time.Second
	},
	"arcade": func(s *Settings) {
		s.Screen.FPS = 60
		s.Gravity.Default = 4
		s.Launch.SpeedStep = 0.5
		s.Launch.AngleStep = 5
		s.Escape.OffscreenTimeout = 5 * time.Second
		s.Scoring.PercentPointModifier = 0.15
	},
}

// GetPreset returns a fresh copy of the named preset, or nil.
func GetPreset(name string) *Settings {
	apply, ok := Presets[name]
	if !ok {
		return nil
	}
	s := DefaultSettings()
	apply(s)
	return s
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
