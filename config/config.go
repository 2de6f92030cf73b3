package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/ratsign/engine"
	"github.com/lixenwraith/ratsign/scene"
)

// ErrInvalid wraps every validation failure
var ErrInvalid = errors.New("invalid config")

// Config is the full runtime configuration, every field has a default
type Config struct {
	Logo   string `yaml:"logo"`
	Actors int    `yaml:"actors"`
	// Seed of the random source, 0 picks one at startup
	Seed uint64 `yaml:"seed"`

	Actor     ActorConfig     `yaml:"actor"`
	Scare     ScareConfig     `yaml:"scare"`
	Formation FormationConfig `yaml:"formation"`
	Layout    LayoutConfig    `yaml:"layout"`
	Loop      LoopConfig      `yaml:"loop"`
	Scatter   ScatterConfig   `yaml:"scatter"`
	Audio     AudioConfig     `yaml:"audio"`
}

type ActorConfig struct {
	Speed                  float64 `yaml:"speed"`
	ReachThreshold         float64 `yaml:"reachThreshold"`
	ClimbDownCollectHeight float64 `yaml:"climbDownCollectHeight"`
	// RestAtCircle sends actors to their dance slot after placing, otherwise to a random front spot
	RestAtCircle bool `yaml:"restAtCircle"`
}

type ScareConfig struct {
	TTLBase    float64 `yaml:"ttlBase"`
	JumpHeight float64 `yaml:"jumpHeight"`
}

type FormationConfig struct {
	RadiusX       float64 `yaml:"radiusX"`
	RadiusZ       float64 `yaml:"radiusZ"`
	DegsPerSecond float64 `yaml:"degsPerSecond"`
}

type LayoutConfig struct {
	CellSize float64 `yaml:"cellSize"`
	OffsetX  float64 `yaml:"offsetX"`
}

type LoopConfig struct {
	FrameInterval  time.Duration `yaml:"frameInterval"`
	AssignInterval time.Duration `yaml:"assignInterval"`
	MaxDelta       time.Duration `yaml:"maxDelta"`
}

type ScatterConfig struct {
	// InitialDelay before the opening scatter, negative disables it
	InitialDelay time.Duration `yaml:"initialDelay"`
	// Throttle drops input scatters closer together than this
	Throttle time.Duration `yaml:"throttle"`
}

type AudioConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Default returns the built-in configuration
func Default() *Config {
	tuning := scene.DefaultTuning()
	layout := scene.DefaultLayout()
	loop := engine.DefaultSettings()

	return &Config{
		Logo:   DefaultLogo,
		Actors: 15,
		Actor: ActorConfig{
			Speed:                  tuning.Speed,
			ReachThreshold:         tuning.ReachThreshold,
			ClimbDownCollectHeight: tuning.ClimbDownCollectHeight,
			RestAtCircle:           tuning.RestAtCircle,
		},
		Scare: ScareConfig{
			TTLBase:    tuning.ScareTTLBase,
			JumpHeight: tuning.ScareJumpHeight,
		},
		Formation: FormationConfig{
			RadiusX:       tuning.CircleRadiusX,
			RadiusZ:       tuning.CircleRadiusZ,
			DegsPerSecond: tuning.DanceDegsPerSecond,
		},
		Layout: LayoutConfig{
			CellSize: layout.CellSize,
			OffsetX:  layout.OffsetX,
		},
		Loop: LoopConfig{
			FrameInterval:  loop.FrameInterval,
			AssignInterval: loop.AssignInterval,
			MaxDelta:       loop.MaxDelta,
		},
		Scatter: ScatterConfig{
			InitialDelay: loop.InitialScatterDelay,
			Throttle:     100 * time.Millisecond,
		},
		Audio: AudioConfig{Enabled: true},
	}
}

// Load reads a YAML file over the defaults; a missing file yields the defaults unchanged
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values the simulation cannot run with
func (c *Config) Validate() error {
	checks := []struct {
		ok   bool
		what string
	}{
		{c.Actors >= 1, "actors must be at least 1"},
		{c.Actor.Speed > 0, "actor.speed must be positive"},
		{c.Actor.ReachThreshold > 0, "actor.reachThreshold must be positive"},
		{c.Actor.ClimbDownCollectHeight >= 0, "actor.climbDownCollectHeight must not be negative"},
		{c.Scare.TTLBase > 0, "scare.ttlBase must be positive"},
		{c.Scare.JumpHeight >= 0, "scare.jumpHeight must not be negative"},
		{c.Formation.RadiusX > 0 && c.Formation.RadiusZ > 0, "formation radii must be positive"},
		{c.Layout.CellSize > 0, "layout.cellSize must be positive"},
		{c.Loop.FrameInterval > 0, "loop.frameInterval must be positive"},
		{c.Loop.AssignInterval > 0, "loop.assignInterval must be positive"},
		{c.Loop.MaxDelta > 0, "loop.maxDelta must be positive"},
		{c.Scatter.Throttle >= 0, "scatter.throttle must not be negative"},
	}
	for _, chk := range checks {
		if !chk.ok {
			return fmt.Errorf("%w: %s", ErrInvalid, chk.what)
		}
	}
	return nil
}

// Tuning converts the actor, scare and formation sections
func (c *Config) Tuning() scene.Tuning {
	t := scene.DefaultTuning()
	t.Speed = c.Actor.Speed
	t.ReachThreshold = c.Actor.ReachThreshold
	t.ClimbDownCollectHeight = c.Actor.ClimbDownCollectHeight
	t.RestAtCircle = c.Actor.RestAtCircle
	t.ScareTTLBase = c.Scare.TTLBase
	t.ScareJumpHeight = c.Scare.JumpHeight
	t.CircleRadiusX = c.Formation.RadiusX
	t.CircleRadiusZ = c.Formation.RadiusZ
	t.DanceDegsPerSecond = c.Formation.DegsPerSecond
	return t
}

// SceneLayout converts the layout section
func (c *Config) SceneLayout() scene.Layout {
	return scene.Layout{CellSize: c.Layout.CellSize, OffsetX: c.Layout.OffsetX}
}

// Settings converts the loop and scatter sections
func (c *Config) Settings() engine.Settings {
	return engine.Settings{
		FrameInterval:       c.Loop.FrameInterval,
		AssignInterval:      c.Loop.AssignInterval,
		MaxDelta:            c.Loop.MaxDelta,
		InitialScatterDelay: c.Scatter.InitialDelay,
	}
}
