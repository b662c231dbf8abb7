package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/gravitywell/internal/scoring"
	"github.com/san-kum/gravitywell/internal/sim"
)

const (
	DefaultScreenWidth  = 1074
	DefaultScreenHeight = 768
	DefaultFPS          = 30
	DefaultTotalLevels  = 9

	DefaultG     = 3.0
	DefaultGMin  = 0.5
	DefaultGMax  = 8.0
	DefaultGStep = 0.5

	DefaultMinSpeed     = 12.0
	DefaultMaxSpeed     = 24.0
	DefaultSpeedStep    = 0.1
	DefaultAngleStep    = 1.0
	DefaultLaunchOffset = 1.0

	DefaultMinEscapeSpeed   = 4.0
	DefaultEscapeGrace      = 80 * time.Millisecond
	DefaultOffscreenTimeout = 8 * time.Second

	DefaultPercentPointModifier = 0.075
	DefaultMaxIncrementDistance = 75.0

	DefaultReplayCapacity = 5
)

var ErrInvalid = errors.New("config: invalid settings")

type Settings struct {
	Screen      ScreenConfig  `yaml:"screen"`
	TotalLevels int           `yaml:"total_levels"`
	Gravity     GravityConfig `yaml:"gravity"`
	Launch      LaunchConfig  `yaml:"launch"`
	Escape      EscapeConfig  `yaml:"escape"`
	Scoring     ScoringConfig `yaml:"scoring"`
	Replay      ReplayConfig  `yaml:"replay"`
}

type ScreenConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	FPS    int `yaml:"fps"`
}

type GravityConfig struct {
	Default float64 `yaml:"default"`
	Min     float64 `yaml:"min"`
	Max     float64 `yaml:"max"`
	Step    float64 `yaml:"step"`
}

type LaunchConfig struct {
	MinSpeed  float64 `yaml:"min_speed"`
	MaxSpeed  float64 `yaml:"max_speed"`
	SpeedStep float64 `yaml:"speed_step"`
	AngleStep float64 `yaml:"angle_step"`
	Offset    float64 `yaml:"offset"`
}

type EscapeConfig struct {
	MinSpeed         float64       `yaml:"min_speed"`
	Grace            time.Duration `yaml:"grace"`
	OffscreenTimeout time.Duration `yaml:"offscreen_timeout"`
}

type ScoringConfig struct {
	PercentPointModifier float64 `yaml:"percent_point_modifier"`
	MaxIncrementDistance float64 `yaml:"max_increment_distance"`
}

// ReplayConfig also carries the colours the front end derives for the
// replay list: widget colour times exponent^i per channel.
type ReplayConfig struct {
	Capacity    int        `yaml:"capacity"`
	WidgetColor [3]float64 `yaml:"widget_color,flow"`
	Exponent    [3]float64 `yaml:"exponent,flow"`
}

func DefaultSettings() *Settings {
	return &Settings{
		Screen: ScreenConfig{
			Width:  DefaultScreenWidth,
			Height: DefaultScreenHeight,
			FPS:    DefaultFPS,
		},
		TotalLevels: DefaultTotalLevels,
		Gravity: GravityConfig{
			Default: DefaultG,
			Min:     DefaultGMin,
			Max:     DefaultGMax,
			Step:    DefaultGStep,
		},
		Launch: LaunchConfig{
			MinSpeed:  DefaultMinSpeed,
			MaxSpeed:  DefaultMaxSpeed,
			SpeedStep: DefaultSpeedStep,
			AngleStep: DefaultAngleStep,
			Offset:    DefaultLaunchOffset,
		},
		Escape: EscapeConfig{
			MinSpeed:         DefaultMinEscapeSpeed,
			Grace:            DefaultEscapeGrace,
			OffscreenTimeout: DefaultOffscreenTimeout,
		},
		Scoring: ScoringConfig{
			PercentPointModifier: DefaultPercentPointModifier,
			MaxIncrementDistance: DefaultMaxIncrementDistance,
		},
		Replay: ReplayConfig{
			Capacity:    DefaultReplayCapacity,
			WidgetColor: [3]float64{232, 192, 8},
			Exponent:    [3]float64{1.2, 1.3, 2.8},
		},
	}
}

// Load reads path over the defaults, so a file only needs the keys it
// changes.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s := DefaultSettings()
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

func Save(path string, s *Settings) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (s *Settings) Validate() error {
	if s.TotalLevels < 1 {
		return fmt.Errorf("%w: total levels must be at least 1, got %d", ErrInvalid, s.TotalLevels)
	}
	for i := range s.Replay.WidgetColor {
		if c := s.Replay.WidgetColor[i]; c < 0 || c > 255 {
			return fmt.Errorf("%w: widget colour channel %d is %v", ErrInvalid, i, c)
		}
		if e := s.Replay.Exponent[i]; e <= 0 {
			return fmt.Errorf("%w: replay exponent channel %d is %v", ErrInvalid, i, e)
		}
	}
	if s.Screen.FPS <= 0 {
		return fmt.Errorf("%w: fps must be positive, got %d", ErrInvalid, s.Screen.FPS)
	}
	if err := s.Params().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// Params converts the settings into world parameters.
func (s *Settings) Params() sim.Params {
	return sim.Params{
		ScreenW:          s.Screen.Width,
		ScreenH:          s.Screen.Height,
		TickRate:         float64(s.Screen.FPS),
		G:                s.Gravity.Default,
		GMin:             s.Gravity.Min,
		GMax:             s.Gravity.Max,
		GStep:            s.Gravity.Step,
		MinSpeed:         s.Launch.MinSpeed,
		MaxSpeed:         s.Launch.MaxSpeed,
		SpeedStep:        s.Launch.SpeedStep,
		AngleStep:        s.Launch.AngleStep,
		LaunchOffset:     s.Launch.Offset,
		MinEscapeSpeed:   s.Escape.MinSpeed,
		EscapeGrace:      s.Escape.Grace,
		OffscreenTimeout: s.Escape.OffscreenTimeout,
		Scoring: scoring.NewParams(s.Scoring.PercentPointModifier, s.Screen.Width, s.Screen.Height,
			s.Scoring.MaxIncrementDistance),
		ReplayCapacity: s.Replay.Capacity,
	}
}
