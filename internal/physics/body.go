package physics

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Kind classifies how a body participates in the simulation. Dynamic
// bodies integrate and get pushed around. Kinematic bodies are positioned
// by game code, push dynamics but are never displaced themselves. Static
// bodies never move at all.
type Kind int

const (
	Dynamic Kind = iota
	Kinematic
	Static
)

func (k Kind) String() string {
	switch k {
	case Dynamic:
		return "dynamic"
	case Kinematic:
		return "kinematic"
	case Static:
		return "static"
	}
	return "unknown"
}

// RefKind tags which game entity a body stands in for.
type RefKind int

const (
	BallRef RefKind = iota
	BrickRef
	PadRef
	CoreRef
)

func (k RefKind) String() string {
	switch k {
	case BallRef:
		return "ball"
	case BrickRef:
		return "brick"
	case PadRef:
		return "pad"
	case CoreRef:
		return "core"
	}
	return "unknown"
}

// BodyRef is the payload delivered with contact events. It is a plain
// value, so handlers can hold onto it even after the body is removed.
type BodyRef struct {
	Kind  RefKind
	ID    int
	Color rl.Color
}

// Body is a collision sphere. Position and Velocity are exported so the
// driving code can place kinematics and read trajectories directly.
type Body struct {
	id int

	Kind        Kind
	Ref         BodyRef
	Position    rl.Vector3
	Velocity    rl.Vector3
	Radius      float32
	Mass        float32
	Restitution float32
}
