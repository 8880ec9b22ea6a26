// Package geom holds the pure orbit/orientation math the simulation is
// built on. Everything here is deterministic and allocation-light; nothing
// touches the window or GPU.
package geom

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Standoff is the distance from the orbit pivot to the pad, in world units.
const Standoff = 4.0

// OrbitAround converts an orbit offset into an orientation and a position.
// The offset encodes angles: Y is the yaw around the vertical axis, X the
// pitch around the horizontal axis (radians). The returned translation is
// the standoff vector (0,0,Standoff) carried through that rotation.
// Same offset in, same pair out - no hidden state.
func OrbitAround(offset rl.Vector3) (rl.Quaternion, rl.Vector3) {
	yaw := rl.QuaternionFromAxisAngle(rl.Vector3{X: 0, Y: 1, Z: 0}, offset.Y)
	pitch := rl.QuaternionFromAxisAngle(rl.Vector3{X: 1, Y: 0, Z: 0}, offset.X)
	rot := rl.QuaternionNormalize(rl.QuaternionMultiply(yaw, pitch))
	pos := rl.Vector3RotateByQuaternion(rl.Vector3{X: 0, Y: 0, Z: Standoff}, rot)
	return rot, pos
}

// LookAt derives the orientation whose local -Z axis points from eye toward
// target, with (0,1,0) as the preferred up vector. The position returned is
// eye, unchanged.
//
// Degenerate inputs never produce NaN: a zero-length eye->target direction
// yields the identity orientation, and a direction colinear with up falls
// back to (0,0,1) as the up vector.
func LookAt(eye, target rl.Vector3) (rl.Quaternion, rl.Vector3) {
	dir := rl.Vector3Subtract(target, eye)
	if rl.Vector3Length(dir) < 1e-6 {
		return rl.QuaternionIdentity(), eye
	}

	up := rl.Vector3{X: 0, Y: 1, Z: 0}
	fwd := rl.Vector3Normalize(dir)
	if float32(math.Abs(float64(rl.Vector3DotProduct(fwd, up)))) > 0.9999 {
		up = rl.Vector3{X: 0, Y: 0, Z: 1}
	}

	// MatrixLookAt builds a view (world->camera) matrix; the object
	// orientation is its inverse.
	view := rl.MatrixLookAt(eye, target, up)
	rot := rl.QuaternionInvert(rl.QuaternionFromMatrix(view))
	return rl.QuaternionNormalize(rot), eye
}

// FibonacciSphere returns samples points spread near-uniformly over a sphere
// of the given radius, following the golden-angle spiral. The sequence is
// finite and deterministic; calling it twice yields identical slices.
func FibonacciSphere(samples int, radius float32) []rl.Vector3 {
	if samples <= 0 {
		return nil
	}

	points := make([]rl.Vector3, 0, samples)
	offset := 2.0 / float64(samples)
	golden := math.Pi * (3.0 - math.Sqrt(5.0))

	for i := 0; i < samples; i++ {
		y := float64(i)*offset - 1 + offset/2
		dist := math.Sqrt(1 - y*y)
		phi := float64((i+1)%samples) * golden

		points = append(points, rl.Vector3{
			X: float32(math.Cos(phi)*dist) * radius,
			Y: float32(y) * radius,
			Z: float32(math.Sin(phi)*dist) * radius,
		})
	}
	return points
}
