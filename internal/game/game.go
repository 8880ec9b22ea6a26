// Package game wires the store, the physics world and the view together
// and drives the frame loop: sample input, steer the pad, launch balls,
// step physics, map contacts back onto store actions, draw.
package game

import (
	"log"

	rl "github.com/gen2brain/raylib-go/raylib"

	"orbsmash/internal/config"
	"orbsmash/internal/input"
	"orbsmash/internal/physics"
	"orbsmash/internal/state"
	"orbsmash/internal/world"
)

// Minimum time between launches, seconds.
const launchCooldown = 0.15

// Stats accumulates session counters for the HUD and the debug report.
type Stats struct {
	Ticks           int
	BallsLaunched   int
	BallsEvicted    int
	BricksRecolored int
	ContactEnters   int
	Resets          int
}

type Game struct {
	tuning config.Tuning
	store  *state.Store
	phys   *physics.World
	view   *world.View

	ballBodies  map[int]*physics.Body
	brickBodies map[int]*physics.Body
	padBody     *physics.Body

	stats        Stats
	debugMode    bool
	randomLayout bool
	lastLaunch   float64
}

// New builds a game from tuning. The store starts empty; Run (or the
// caller, for headless use) resets it to populate the brick field.
func New(tuning config.Tuning) *Game {
	g := &Game{
		tuning:       tuning,
		store:        state.NewStore(tuning.StoreParams()),
		phys:         physics.NewWorld(tuning.Physics.GravityVector()),
		ballBodies:   make(map[int]*physics.Body),
		brickBodies:  make(map[int]*physics.Body),
		randomLayout: tuning.Gameplay.BrickLayout == config.LayoutRandom,
	}

	g.phys.AddBody(physics.Body{
		Kind:   physics.Static,
		Ref:    physics.BodyRef{Kind: physics.CoreRef},
		Radius: tuning.Physics.CoreRadius,
	})
	g.padBody = g.phys.AddBody(physics.Body{
		Kind:   physics.Kinematic,
		Ref:    physics.BodyRef{Kind: physics.PadRef},
		Radius: tuning.Physics.PadRadius,
	})

	// Contact handlers run synchronously inside Step, on the same
	// goroutine as the frame loop, so they may call store actions
	// directly.
	g.phys.OnContactEnter(g.onContactEnter)

	g.view = world.NewView(g.store)
	return g
}

// Store exposes the state store for headless drivers and tests.
func (g *Game) Store() *state.Store {
	return g.store
}

// Stats returns the session counters so far.
func (g *Game) Stats() Stats {
	return g.stats
}

// Run opens the window and loops until it closes.
func (g *Game) Run() {
	win := g.tuning.Window
	rl.SetConfigFlags(rl.FlagWindowHighdpi)
	rl.InitWindow(win.Width, win.Height, win.Title)
	defer rl.CloseWindow()
	rl.SetTargetFPS(win.TargetFPS)

	g.Reset()

	for !rl.WindowShouldClose() {
		g.Tick(rl.GetFrameTime(), input.Poll())
		g.handleHotkeys()
		g.Draw()
	}
}

// Tick advances one simulation step: steer the pad, reconcile physics
// bodies with the store, step the world. Pure of any windowing calls so
// the headless bench can drive it too.
func (g *Game) Tick(dt float32, sample input.Sample) {
	g.store.MovePlayer(dt, sample)
	g.syncBodies(true)
	g.phys.Step(dt)
	g.stats.Ticks++
}

// Launch fires a ball from the pad and spawns its physics body. The
// store handles eviction; the matching body is dropped on the next sync.
func (g *Game) Launch() {
	ball := g.store.AddBall()
	g.ballBodies[ball.ID] = g.phys.AddBody(physics.Body{
		Kind:        physics.Dynamic,
		Ref:         physics.BodyRef{Kind: physics.BallRef, ID: ball.ID, Color: ball.Color},
		Position:    ball.Position,
		Velocity:    ball.Velocity,
		Radius:      g.tuning.Physics.BallRadius,
		Mass:        g.tuning.Physics.BallMass,
		Restitution: g.tuning.Physics.Restitution,
	})
	g.stats.BallsLaunched++
}

// Reset rebuilds the brick field and clears every ball. Balls cleared
// here are reset cleanup, not FIFO evictions, so the eviction counter is
// left alone.
func (g *Game) Reset() {
	g.store.ResetGame()
	g.syncBodies(false)
	g.stats.Resets++
}

// onContactEnter maps a physics contact onto a store action: a ball
// hitting a brick paints the brick in the ball's color. Every other
// pairing (ball on pad, ball on core, ball on ball) is ignored by
// policy. UpdateBrick tolerates bricks that vanished since the body
// sync, so no existence check is needed here.
func (g *Game) onContactEnter(a, b physics.BodyRef) {
	g.stats.ContactEnters++
	if b.Kind == physics.BallRef {
		a, b = b, a
	}
	if a.Kind != physics.BallRef || b.Kind != physics.BrickRef {
		return
	}
	color := a.Color
	g.store.UpdateBrick(b.ID, state.BrickPatch{Color: &color})
	g.stats.BricksRecolored++
}

// syncBodies reconciles the physics world with the current snapshot:
// bodies for dropped balls and removed bricks go away, new bricks get
// static bodies, and the kinematic pad body follows the pad's orbit.
// countEvictions separates FIFO eviction from reset cleanup in the stats.
func (g *Game) syncBodies(countEvictions bool) {
	snap := g.store.Snapshot()

	liveBalls := make(map[int]struct{}, len(snap.Balls))
	for _, ball := range snap.Balls {
		liveBalls[ball.ID] = struct{}{}
	}
	for id, body := range g.ballBodies {
		if _, ok := liveBalls[id]; !ok {
			g.phys.RemoveBody(body)
			delete(g.ballBodies, id)
			if countEvictions {
				g.stats.BallsEvicted++
			}
		}
	}

	liveBricks := make(map[int]struct{}, len(snap.Bricks))
	for _, brick := range snap.Bricks {
		liveBricks[brick.ID] = struct{}{}
		if _, ok := g.brickBodies[brick.ID]; !ok {
			g.brickBodies[brick.ID] = g.phys.AddBody(physics.Body{
				Kind:        physics.Static,
				Ref:         physics.BodyRef{Kind: physics.BrickRef, ID: brick.ID},
				Position:    brick.Offset,
				Radius:      g.tuning.Physics.BrickRadius,
				Restitution: g.tuning.Physics.Restitution,
			})
		}
	}
	for id, body := range g.brickBodies {
		if _, ok := liveBricks[id]; !ok {
			g.phys.RemoveBody(body)
			delete(g.brickBodies, id)
		}
	}

	g.padBody.Position = world.PadPosition(snap.Player)
}

// ballPosition reports the simulated position of a live ball's body.
func (g *Game) ballPosition(id int) (rl.Vector3, bool) {
	body, ok := g.ballBodies[id]
	if !ok {
		return rl.Vector3{}, false
	}
	return body.Position, true
}

func (g *Game) handleHotkeys() {
	if rl.IsKeyPressed(rl.KeyR) {
		g.Reset()
	}
	if rl.IsKeyPressed(rl.KeyF1) {
		g.debugMode = !g.debugMode
	}
	if rl.IsKeyPressed(rl.KeyF2) {
		g.copyReport()
	}
	if (rl.IsKeyPressed(rl.KeySpace) || rl.IsMouseButtonPressed(rl.MouseLeftButton)) &&
		rl.GetTime()-g.lastLaunch >= launchCooldown {
		g.Launch()
		g.lastLaunch = rl.GetTime()
	}
}

func (g *Game) Draw() {
	snap := g.store.Snapshot()
	camera := world.Camera(snap.Player)

	rl.BeginDrawing()
	rl.ClearBackground(rl.NewColor(20, 20, 30, 255))

	rl.BeginMode3D(camera)
	world.DrawScene(snap, g.view, g.ballPosition, world.DrawConfig{
		CoreRadius:  g.tuning.Physics.CoreRadius,
		BallRadius:  g.tuning.Physics.BallRadius,
		BrickRadius: g.tuning.Physics.BrickRadius,
		PadRadius:   g.tuning.Physics.PadRadius,
	})
	rl.EndMode3D()

	g.drawHUD(snap)
	rl.EndDrawing()
}

func (g *Game) copyReport() {
	if err := writeClipboard(BuildReport(g.store.Snapshot(), g.stats)); err != nil {
		log.Printf("game: clipboard copy failed: %v", err)
		return
	}
	log.Println("game: debug report copied to clipboard")
}
