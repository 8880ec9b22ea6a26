package game

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"orbsmash/internal/state"
)

// drawHUD renders the 2D layer: hints, counters, the reset button and
// the optional debug overlay. Must run between BeginDrawing/EndDrawing,
// outside 3D mode.
func (g *Game) drawHUD(snap state.Snapshot) {
	rl.DrawText("Arrows/WASD steer, hold RMB for pointer steering", 10, 10, 20, rl.DarkGray)
	rl.DrawText("Space/LMB launch, R reset, F1 debug, F2 copy report", 10, 35, 20, rl.DarkGray)
	rl.DrawFPS(10, 60)

	screenH := int32(rl.GetScreenHeight())
	if gui.Button(rl.Rectangle{X: 10, Y: float32(screenH - 40), Width: 110, Height: 30}, "Reset (R)") {
		g.Reset()
	}
	g.debugMode = gui.CheckBox(rl.Rectangle{X: 130, Y: float32(screenH - 35), Width: 20, Height: 20}, "Debug", g.debugMode)

	random := gui.CheckBox(rl.Rectangle{X: 210, Y: float32(screenH - 35), Width: 20, Height: 20}, "Random layout", g.randomLayout)
	if random != g.randomLayout {
		g.randomLayout = random
		g.store.SetRandomLayout(random)
		g.Reset()
	}

	counters := fmt.Sprintf("balls %d/%d  bricks %d  selected %d",
		len(snap.Balls), g.tuning.Gameplay.MaxBalls, len(snap.Bricks), len(snap.Selection))
	rl.DrawText(counters, 10, 85, 20, rl.RayWhite)

	if g.debugMode {
		g.drawDebugOverlay(snap)
	}
}

func (g *Game) drawDebugOverlay(snap state.Snapshot) {
	dyn, kin, st := g.phys.Counts()
	pad := snap.Player.Rotation

	lines := []string{
		fmt.Sprintf("tick %d  launched %d  evicted %d", g.stats.Ticks, g.stats.BallsLaunched, g.stats.BallsEvicted),
		fmt.Sprintf("contacts %d (active %d)  recolored %d", g.stats.ContactEnters, g.phys.ActiveContactCount(), g.stats.BricksRecolored),
		fmt.Sprintf("bodies dyn %d kin %d static %d", dyn, kin, st),
		fmt.Sprintf("pad rot (%.3f, %.3f, %.3f, %.3f)", pad.X, pad.Y, pad.Z, pad.W),
		fmt.Sprintf("pad color %s  next ball %d  next brick %d", state.ColorName(snap.Player.Color), snap.NextBallID, snap.NextBrickID),
	}
	for i, line := range lines {
		rl.DrawText(line, 10, int32(115+20*i), 16, rl.Green)
	}
}
