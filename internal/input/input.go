// Package input samples steering controls once per tick and resolves them
// to a pair of normalized axes. Sampling touches the platform layer;
// resolution is pure so headless runs and tests can synthesize samples.
package input

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Sample is one tick's worth of control state.
type Sample struct {
	Left  bool
	Right bool
	Up    bool
	Down  bool

	// Pointer steering. When PointerActive is set the pointer position
	// fully overrides the key state for this tick.
	PointerActive bool
	PointerX      float32
	PointerY      float32
	Width         float32
	Height        float32
}

// Poll reads the keyboard and mouse into a Sample. The pointer engages
// while the right mouse button is held so plain clicks stay free for
// launching.
func Poll() Sample {
	s := Sample{
		Left:  rl.IsKeyDown(rl.KeyLeft) || rl.IsKeyDown(rl.KeyA),
		Right: rl.IsKeyDown(rl.KeyRight) || rl.IsKeyDown(rl.KeyD),
		Up:    rl.IsKeyDown(rl.KeyUp) || rl.IsKeyDown(rl.KeyW),
		Down:  rl.IsKeyDown(rl.KeyDown) || rl.IsKeyDown(rl.KeyS),
	}
	if rl.IsMouseButtonDown(rl.MouseButtonRight) {
		pos := rl.GetMousePosition()
		s.PointerActive = true
		s.PointerX = pos.X
		s.PointerY = pos.Y
		s.Width = float32(rl.GetScreenWidth())
		s.Height = float32(rl.GetScreenHeight())
	}
	return s
}

// Axes resolves a sample to (horizontal, vertical), each in [-1, 1].
// An active pointer maps position directly to the axes: horizontal grows
// to the right, vertical toward the top of the viewport. Keys resolve as
// a chain per axis: left before right, down before up, so holding both
// directions steers instead of stalling.
func Axes(s Sample) (h, v float32) {
	if s.PointerActive && s.Width > 0 && s.Height > 0 {
		h = clamp((s.PointerX/s.Width-0.5)*2, -1, 1)
		v = clamp(((s.Height-s.PointerY)/s.Height-0.5)*2, -1, 1)
		return h, v
	}
	switch {
	case s.Left:
		h = -1
	case s.Right:
		h = 1
	}
	switch {
	case s.Down:
		v = -1
	case s.Up:
		v = 1
	}
	return h, v
}

func clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
