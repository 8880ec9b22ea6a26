package game

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"

	"orbsmash/internal/state"
)

// BuildReport renders a snapshot and the session counters as a stable
// multi-line text block. Same inputs, same text: bricks are listed from
// the sorted snapshot and the color histogram follows palette order.
func BuildReport(snap state.Snapshot, stats Stats) string {
	var b strings.Builder
	b.WriteString("orbsmash debug report\n")
	fmt.Fprintf(&b, "ticks=%d launched=%d evicted=%d recolored=%d contacts=%d resets=%d\n",
		stats.Ticks, stats.BallsLaunched, stats.BallsEvicted, stats.BricksRecolored, stats.ContactEnters, stats.Resets)

	pad := snap.Player.Rotation
	fmt.Fprintf(&b, "pad color=%s rot=(%.4f, %.4f, %.4f, %.4f)\n",
		state.ColorName(snap.Player.Color), pad.X, pad.Y, pad.Z, pad.W)
	fmt.Fprintf(&b, "balls=%d nextBallID=%d bricks=%d nextBrickID=%d selected=%d\n",
		len(snap.Balls), snap.NextBallID, len(snap.Bricks), snap.NextBrickID, len(snap.Selection))

	for _, ball := range snap.Balls {
		fmt.Fprintf(&b, "ball %d color=%s pos=(%.3f, %.3f, %.3f)\n",
			ball.ID, state.ColorName(ball.Color), ball.Position.X, ball.Position.Y, ball.Position.Z)
	}

	counts := make(map[string]int, len(state.Palette))
	for _, brick := range snap.Bricks {
		counts[state.ColorName(brick.Color)]++
	}
	b.WriteString("brick colors:")
	for i := range state.Palette {
		name := state.ColorName(state.Palette[i])
		if counts[name] > 0 {
			fmt.Fprintf(&b, " %s=%d", name, counts[name])
		}
	}
	b.WriteString("\n")
	return b.String()
}

func writeClipboard(text string) error {
	return clipboard.WriteAll(text)
}
