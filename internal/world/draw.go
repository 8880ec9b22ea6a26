package world

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"orbsmash/internal/state"
)

// DrawConfig carries the render radii for each entity kind.
type DrawConfig struct {
	CoreRadius  float32
	BallRadius  float32
	BrickRadius float32
	PadRadius   float32
}

// Outline wires are drawn this much larger than the body they trace.
const outlineInflate = 1.2

// DrawScene renders one frame of the arena: core, bricks, balls, pad,
// then the outline pass. Must run inside BeginMode3D. ballAt maps a ball
// id to its simulated position; balls it does not know are drawn at their
// launch position from the snapshot.
func DrawScene(snap state.Snapshot, view *View, ballAt func(id int) (rl.Vector3, bool), cfg DrawConfig) {
	rl.DrawSphere(rl.Vector3Zero(), cfg.CoreRadius, rl.NewColor(40, 40, 55, 255))
	rl.DrawSphereWires(rl.Vector3Zero(), cfg.CoreRadius, 12, 12, rl.NewColor(70, 70, 95, 255))

	for _, brick := range snap.Bricks {
		rl.DrawSphere(brick.Offset, cfg.BrickRadius, brick.Color)
	}

	for _, ball := range snap.Balls {
		pos, ok := ballAt(ball.ID)
		if !ok {
			pos = ball.Position
		}
		rl.DrawSphere(pos, cfg.BallRadius, ball.Color)
	}

	rl.DrawSphere(PadPosition(snap.Player), cfg.PadRadius, snap.Player.Color)

	drawOutlines(snap, view, ballAt, cfg)
}

// drawOutlines traces a wire sphere around every selected renderable that
// is still alive. Dead handles are skipped, never an error: the selection
// only promises membership history, the arena decides liveness.
func drawOutlines(snap state.Snapshot, view *View, ballAt func(id int) (rl.Vector3, bool), cfg DrawConfig) {
	arena := view.Arena()
	for _, h := range snap.Selection {
		r, ok := arena.Lookup(h)
		if !ok {
			continue
		}
		pos, radius, color, ok := resolve(snap, r, ballAt, cfg)
		if !ok {
			continue
		}
		rl.DrawSphereWires(pos, radius*outlineInflate, 8, 8, color)
	}
}

func resolve(snap state.Snapshot, r Renderable, ballAt func(id int) (rl.Vector3, bool), cfg DrawConfig) (rl.Vector3, float32, rl.Color, bool) {
	switch r.Kind {
	case KindPad:
		return PadPosition(snap.Player), cfg.PadRadius, snap.Player.Color, true
	case KindBall:
		for _, ball := range snap.Balls {
			if ball.ID == r.ID {
				pos, ok := ballAt(ball.ID)
				if !ok {
					pos = ball.Position
				}
				return pos, cfg.BallRadius, ball.Color, true
			}
		}
	case KindBrick:
		if brick, ok := snap.BrickByID(r.ID); ok {
			return brick.Offset, cfg.BrickRadius, brick.Color, true
		}
	}
	return rl.Vector3{}, 0, rl.Color{}, false
}
