package state

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"orbsmash/internal/geom"
)

// Brick grid resolution for random placement. Yaw cells wrap the full
// circle, pitch cells span pole to pole.
const (
	YawCells   = 16
	PitchCells = 8
)

// Brick is a static orbiting target. Offset is its position relative to
// the core center.
type Brick struct {
	ID     int
	Offset rl.Vector3
	Color  rl.Color
}

// BrickPatch is a partial brick update. Nil fields are left untouched.
type BrickPatch struct {
	Color *rl.Color
}

// NewBrick returns a brick colored by its id's palette slot.
func NewBrick(id int, offset rl.Vector3) Brick {
	return Brick{
		ID:     id,
		Offset: offset,
		Color:  PaletteColor(id),
	}
}

// GridBrickOffset maps integer grid cell coordinates to a shell position.
// Out-of-range cells wrap, so any pair of ints names a valid cell. Pitch
// rows sit at cell centers, never on a pole: a pole pitch would make the
// yaw rotation a no-op and collapse a whole row of cells onto one point.
func GridBrickOffset(yawCell, pitchCell int, radius float32) rl.Vector3 {
	yawCell = ((yawCell % YawCells) + YawCells) % YawCells
	pitchCell = ((pitchCell % PitchCells) + PitchCells) % PitchCells
	yaw := float32(yawCell) * (2 * math.Pi / YawCells)
	pitch := (float32(pitchCell)+0.5)*(math.Pi/PitchCells) - math.Pi/2
	_, pos := geom.OrbitAround(rl.Vector3{X: pitch, Y: yaw})
	return rl.Vector3Scale(rl.Vector3Normalize(pos), radius)
}
