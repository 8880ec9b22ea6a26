package state

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// LocalForward is the pad's launch direction in its own frame. The pad
// stands off along local +Z looking back at the core, so forward is -Z.
var LocalForward = rl.Vector3{X: 0, Y: 0, Z: -1}

// Ball is a launched projectile. Position and Velocity are the spawn
// kinematics handed to the physics world; after that the simulation owns
// the trajectory.
type Ball struct {
	ID       int
	Position rl.Vector3
	Velocity rl.Vector3
	Color    rl.Color
}

// NewBallFromPlayer spawns a ball in front of the pad. The spawn offset is
// rotated into world space by the pad's orientation and the velocity points
// along the rotated forward at launch speed. The ball inherits the pad's
// color.
func NewBallFromPlayer(id int, p Player, spawnOffset rl.Vector3, launchSpeed float32) Ball {
	forward := rl.Vector3RotateByQuaternion(LocalForward, p.Rotation)
	return Ball{
		ID:       id,
		Position: rl.Vector3RotateByQuaternion(spawnOffset, p.Rotation),
		Velocity: rl.Vector3Scale(forward, launchSpeed),
		Color:    p.Color,
	}
}
