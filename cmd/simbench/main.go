// simbench soaks the simulation core without a window: fixed timestep,
// scripted steering, periodic launches, invariant checks every tick. It
// exits non-zero if any invariant breaks, so it doubles as a smoke test
// for tuning changes.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"orbsmash/internal/config"
	"orbsmash/internal/game"
	"orbsmash/internal/input"
)

func main() {
	ticks := flag.Int("ticks", 3600, "simulation ticks to run")
	dt := flag.Float64("dt", 1.0/60.0, "seconds per tick")
	launchEvery := flag.Int("launch-every", 30, "launch a ball every N ticks (0 disables)")
	seed := flag.Int64("seed", 1, "random seed (overrides tuning)")
	configPath := flag.String("config", "", "tuning YAML path")
	flag.Parse()

	tuning, err := config.Load(*configPath)
	if err != nil {
		log.Printf("config: %v, continuing with defaults", err)
	}
	tuning.Gameplay.Seed = *seed

	g := game.New(tuning)
	g.Reset()

	violations := 0
	lastBallID := -1
	start := time.Now()

	for tick := 0; tick < *ticks; tick++ {
		if *launchEvery > 0 && tick%(*launchEvery) == 0 {
			g.Launch()
		}
		g.Tick(float32(*dt), steering(tick, *ticks))

		snap := g.Store().Snapshot()
		if len(snap.Balls) > tuning.Gameplay.MaxBalls {
			fmt.Printf("tick %d: INVARIANT VIOLATED: %d balls live, cap %d\n", tick, len(snap.Balls), tuning.Gameplay.MaxBalls)
			violations++
		}
		if snap.NextBallID < lastBallID {
			fmt.Printf("tick %d: INVARIANT VIOLATED: ball id counter went backward (%d then %d)\n", tick, lastBallID, snap.NextBallID)
			violations++
		}
		lastBallID = snap.NextBallID
		for i := 1; i < len(snap.Balls); i++ {
			if snap.Balls[i].ID <= snap.Balls[i-1].ID {
				fmt.Printf("tick %d: INVARIANT VIOLATED: ball order %d before %d\n", tick, snap.Balls[i-1].ID, snap.Balls[i].ID)
				violations++
			}
		}
	}
	elapsed := time.Since(start)

	snap := g.Store().Snapshot()
	seen := make(map[int]bool, len(snap.Bricks))
	for _, brick := range snap.Bricks {
		if seen[brick.ID] {
			fmt.Printf("INVARIANT VIOLATED: duplicate brick id %d\n", brick.ID)
			violations++
		}
		seen[brick.ID] = true
	}

	stats := g.Stats()
	fmt.Printf("ticks            %d\n", stats.Ticks)
	fmt.Printf("wall time        %v (%.1f ticks/ms)\n", elapsed.Round(time.Millisecond), float64(stats.Ticks)/float64(elapsed.Milliseconds()+1))
	fmt.Printf("balls launched   %d (evicted %d)\n", stats.BallsLaunched, stats.BallsEvicted)
	fmt.Printf("contact enters   %d\n", stats.ContactEnters)
	fmt.Printf("bricks recolored %d\n", stats.BricksRecolored)
	fmt.Printf("final state      %d balls, %d bricks, next ids %d/%d\n",
		len(snap.Balls), len(snap.Bricks), snap.NextBallID, snap.NextBrickID)

	if violations > 0 {
		fmt.Printf("FAILED: %d invariant violations\n", violations)
		os.Exit(1)
	}
	fmt.Println("all invariants held")
}

// steering sweeps the pad: yaw left for the first half of the run, then
// climb. Keeps the orbit moving so launches cover the brick shell.
func steering(tick, total int) input.Sample {
	if tick < total/2 {
		return input.Sample{Left: true}
	}
	return input.Sample{Left: true, Up: true}
}
