package world

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"orbsmash/internal/geom"
	"orbsmash/internal/state"
)

// How far beyond the pad the camera sits, as a multiple of the pad
// standoff.
const cameraBackoff = 2.0

// PadPosition derives the pad's world position from its orientation: the
// standoff vector carried through the pad rotation.
func PadPosition(p state.Player) rl.Vector3 {
	return rl.Vector3RotateByQuaternion(rl.Vector3{X: 0, Y: 0, Z: geom.Standoff}, p.Rotation)
}

// Camera places an orbit camera behind the pad looking at the core. The
// up vector comes from the look-at orientation, so the camera rolls with
// the pad's orbit instead of flipping when it crosses a pole.
func Camera(p state.Player) rl.Camera3D {
	eye := rl.Vector3Scale(PadPosition(p), cameraBackoff)
	rot, _ := geom.LookAt(eye, rl.Vector3Zero())
	up := rl.Vector3RotateByQuaternion(rl.Vector3{X: 0, Y: 1, Z: 0}, rot)
	return rl.Camera3D{
		Position:   eye,
		Target:     rl.Vector3Zero(),
		Up:         up,
		Fovy:       45,
		Projection: rl.CameraPerspective,
	}
}
