// Package config loads the gameplay tuning file. Every knob has a working
// default, so a missing or broken file never stops the game from starting.
package config

import (
	"fmt"
	"log"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gopkg.in/yaml.v3"

	"orbsmash/internal/state"
)

// EnvConfigPath is consulted when no explicit path is given.
const EnvConfigPath = "ORBSMASH_CONFIG"

// Brick layout variants.
const (
	LayoutFibonacci = "fibonacci"
	LayoutRandom    = "random"
)

type Tuning struct {
	Window   WindowConfig   `yaml:"window"`
	Gameplay GameplayConfig `yaml:"gameplay"`
	Physics  PhysicsConfig  `yaml:"physics"`
}

type WindowConfig struct {
	Width     int32  `yaml:"width"`
	Height    int32  `yaml:"height"`
	Title     string `yaml:"title"`
	TargetFPS int32  `yaml:"target_fps"`
}

type GameplayConfig struct {
	MaxBalls         int     `yaml:"max_balls"`
	LaunchSpeed      float32 `yaml:"launch_speed"`
	BrickCount       int     `yaml:"brick_count"`
	ShellRadius      float32 `yaml:"shell_radius"`
	BrickLayout      string  `yaml:"brick_layout"`
	RandomBrickCount int     `yaml:"random_brick_count"`
	YawRate          float32 `yaml:"yaw_rate"`
	PitchRate        float32 `yaml:"pitch_rate"`
	Seed             int64   `yaml:"seed"`
}

type PhysicsConfig struct {
	Gravity     [3]float32 `yaml:"gravity"`
	BallRadius  float32    `yaml:"ball_radius"`
	BallMass    float32    `yaml:"ball_mass"`
	BrickRadius float32    `yaml:"brick_radius"`
	CoreRadius  float32    `yaml:"core_radius"`
	PadRadius   float32    `yaml:"pad_radius"`
	Restitution float32    `yaml:"restitution"`
}

// Default returns the stock tuning.
func Default() Tuning {
	return Tuning{
		Window: WindowConfig{
			Width:     1280,
			Height:    720,
			Title:     "orbsmash",
			TargetFPS: 60,
		},
		Gameplay: GameplayConfig{
			MaxBalls:         3,
			LaunchSpeed:      2.0,
			BrickCount:       64,
			ShellRadius:      1.5,
			BrickLayout:      LayoutFibonacci,
			RandomBrickCount: 16,
			YawRate:          1.0,
			PitchRate:        1.0,
		},
		Physics: PhysicsConfig{
			Gravity:     [3]float32{0, 0, 0},
			BallRadius:  0.25,
			BallMass:    1.0,
			BrickRadius: 0.15,
			CoreRadius:  1.0,
			PadRadius:   1.0,
			Restitution: 0.6,
		},
	}
}

// Load reads tuning from path. An empty path falls back to the
// ORBSMASH_CONFIG environment variable, and if that is unset too the
// defaults are returned. On any read or parse failure the returned tuning
// is still usable (defaults merged); the error tells the caller what to
// log. Fields absent from the file keep their defaults.
func Load(path string) (Tuning, error) {
	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path == "" {
		return Default(), nil
	}

	tuning := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return tuning, fmt.Errorf("failed to read tuning file: %w", err)
	}
	if err := yaml.Unmarshal(data, &tuning); err != nil {
		return Default(), fmt.Errorf("failed to parse tuning file %s: %w", path, err)
	}
	return tuning.Normalized(), nil
}

// Normalized clamps out-of-range values back to their defaults, logging
// each correction.
func (t Tuning) Normalized() Tuning {
	def := Default()

	if t.Window.Width <= 0 || t.Window.Height <= 0 {
		log.Printf("config: window %dx%d invalid, using %dx%d", t.Window.Width, t.Window.Height, def.Window.Width, def.Window.Height)
		t.Window.Width = def.Window.Width
		t.Window.Height = def.Window.Height
	}
	if t.Window.TargetFPS <= 0 {
		log.Printf("config: target_fps %d invalid, using %d", t.Window.TargetFPS, def.Window.TargetFPS)
		t.Window.TargetFPS = def.Window.TargetFPS
	}
	if t.Window.Title == "" {
		t.Window.Title = def.Window.Title
	}

	if t.Gameplay.MaxBalls <= 0 {
		log.Printf("config: max_balls %d invalid, using %d", t.Gameplay.MaxBalls, def.Gameplay.MaxBalls)
		t.Gameplay.MaxBalls = def.Gameplay.MaxBalls
	}
	if t.Gameplay.LaunchSpeed <= 0 {
		log.Printf("config: launch_speed %v invalid, using %v", t.Gameplay.LaunchSpeed, def.Gameplay.LaunchSpeed)
		t.Gameplay.LaunchSpeed = def.Gameplay.LaunchSpeed
	}
	if t.Gameplay.BrickCount <= 0 {
		log.Printf("config: brick_count %d invalid, using %d", t.Gameplay.BrickCount, def.Gameplay.BrickCount)
		t.Gameplay.BrickCount = def.Gameplay.BrickCount
	}
	if t.Gameplay.ShellRadius <= 0 {
		log.Printf("config: shell_radius %v invalid, using %v", t.Gameplay.ShellRadius, def.Gameplay.ShellRadius)
		t.Gameplay.ShellRadius = def.Gameplay.ShellRadius
	}
	if t.Gameplay.BrickLayout != LayoutFibonacci && t.Gameplay.BrickLayout != LayoutRandom {
		log.Printf("config: brick_layout %q unknown, using %s", t.Gameplay.BrickLayout, LayoutFibonacci)
		t.Gameplay.BrickLayout = LayoutFibonacci
	}
	if t.Gameplay.RandomBrickCount <= 0 {
		log.Printf("config: random_brick_count %d invalid, using %d", t.Gameplay.RandomBrickCount, def.Gameplay.RandomBrickCount)
		t.Gameplay.RandomBrickCount = def.Gameplay.RandomBrickCount
	}
	if t.Gameplay.YawRate <= 0 {
		t.Gameplay.YawRate = def.Gameplay.YawRate
	}
	if t.Gameplay.PitchRate <= 0 {
		t.Gameplay.PitchRate = def.Gameplay.PitchRate
	}

	if t.Physics.BallRadius <= 0 {
		t.Physics.BallRadius = def.Physics.BallRadius
	}
	if t.Physics.BallMass <= 0 {
		t.Physics.BallMass = def.Physics.BallMass
	}
	if t.Physics.BrickRadius <= 0 {
		t.Physics.BrickRadius = def.Physics.BrickRadius
	}
	if t.Physics.CoreRadius <= 0 {
		t.Physics.CoreRadius = def.Physics.CoreRadius
	}
	if t.Physics.PadRadius <= 0 {
		t.Physics.PadRadius = def.Physics.PadRadius
	}
	if t.Physics.Restitution < 0 || t.Physics.Restitution > 1 {
		log.Printf("config: restitution %v out of [0,1], using %v", t.Physics.Restitution, def.Physics.Restitution)
		t.Physics.Restitution = def.Physics.Restitution
	}

	return t
}

// StoreParams maps the tuning onto state store parameters.
func (t Tuning) StoreParams() state.Params {
	return state.Params{
		MaxBalls:         t.Gameplay.MaxBalls,
		LaunchSpeed:      t.Gameplay.LaunchSpeed,
		BrickCount:       t.Gameplay.BrickCount,
		ShellRadius:      t.Gameplay.ShellRadius,
		RandomLayout:     t.Gameplay.BrickLayout == LayoutRandom,
		RandomBrickCount: t.Gameplay.RandomBrickCount,
		YawRate:          t.Gameplay.YawRate,
		PitchRate:        t.Gameplay.PitchRate,
		Seed:             t.Gameplay.Seed,
	}
}

// GravityVector returns the configured gravity as a vector.
func (p PhysicsConfig) GravityVector() rl.Vector3 {
	return rl.Vector3{X: p.Gravity[0], Y: p.Gravity[1], Z: p.Gravity[2]}
}
