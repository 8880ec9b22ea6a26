package state

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Player is the orbiting pad. It stores orientation only: the pad sits at
// a fixed standoff along its rotated local +Z, so position is derived,
// never stored.
type Player struct {
	Rotation rl.Quaternion
	Color    rl.Color
}

// NewPlayer returns a pad with identity rotation and the palette color at
// colorIndex mod 7.
func NewPlayer(colorIndex int) Player {
	return Player{
		Rotation: rl.QuaternionIdentity(),
		Color:    PaletteColor(colorIndex),
	}
}
