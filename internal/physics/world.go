// Package physics runs a small sphere-only rigid body world. It integrates
// dynamic bodies, separates overlapping spheres with mass-ratio pushout and
// restitution impulses, and reports contact begin/end transitions to
// registered handlers once per pair.
package physics

import (
	"log"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// pairKey identifies an unordered body pair by internal ids, smaller first.
type pairKey struct {
	a, b int
}

// contact keeps the refs alive for exit callbacks even if a body has been
// removed by the time the pair ends.
type contact struct {
	a, b BodyRef
}

func makePair(a, b *Body) (pairKey, contact) {
	if a.id > b.id {
		a, b = b, a
	}
	return pairKey{a: a.id, b: b.id}, contact{a: a.Ref, b: b.Ref}
}

// ContactHandler receives both sides of a contact transition. Order of the
// two refs is unspecified; handlers match on Kind.
type ContactHandler func(a, b BodyRef)

type World struct {
	Gravity rl.Vector3

	nextID     int
	dynamics   []*Body
	kinematics []*Body
	statics    []*Body

	// Pair tracking across steps. active holds last step's contacts,
	// current is rebuilt every step; the diff drives enter/exit events.
	active  map[pairKey]contact
	current map[pairKey]contact

	onEnter ContactHandler
	onExit  ContactHandler

	lastLogTime time.Time // rate-limit contact logs
}

func NewWorld(gravity rl.Vector3) *World {
	return &World{
		Gravity: gravity,
		active:  make(map[pairKey]contact),
		current: make(map[pairKey]contact),
	}
}

// OnContactEnter registers the handler called when a pair starts touching.
func (w *World) OnContactEnter(h ContactHandler) {
	w.onEnter = h
}

// OnContactExit registers the handler called when a pair stops touching,
// including pairs ended by body removal.
func (w *World) OnContactExit(h ContactHandler) {
	w.onExit = h
}

// AddBody copies b into the world and returns the stored body. The caller
// keeps the pointer to drive kinematics or read positions back.
func (w *World) AddBody(b Body) *Body {
	if b.Mass <= 0 {
		b.Mass = 1
	}
	b.id = w.nextID
	w.nextID++
	stored := &b
	switch b.Kind {
	case Dynamic:
		w.dynamics = append(w.dynamics, stored)
	case Kinematic:
		w.kinematics = append(w.kinematics, stored)
	default:
		w.statics = append(w.statics, stored)
	}
	return stored
}

// RemoveBody drops a body. Contacts it was part of end on the next Step.
func (w *World) RemoveBody(b *Body) {
	remove := func(list []*Body) ([]*Body, bool) {
		for i, o := range list {
			if o == b {
				return append(list[:i], list[i+1:]...), true
			}
		}
		return list, false
	}
	var ok bool
	if w.dynamics, ok = remove(w.dynamics); ok {
		return
	}
	if w.kinematics, ok = remove(w.kinematics); ok {
		return
	}
	w.statics, _ = remove(w.statics)
}

// Counts returns the body counts per kind.
func (w *World) Counts() (dynamic, kinematic, static int) {
	return len(w.dynamics), len(w.kinematics), len(w.statics)
}

// Dynamics returns a copy of the dynamic body list.
func (w *World) Dynamics() []*Body {
	out := make([]*Body, len(w.dynamics))
	copy(out, w.dynamics)
	return out
}

// ActiveContactCount returns how many pairs were touching after the last
// Step.
func (w *World) ActiveContactCount() int {
	return len(w.active)
}

// Step advances the world by dt seconds: integrate dynamics, resolve
// overlaps, then dispatch contact transitions. Handlers run synchronously
// at the end of the step, after all positions are settled.
func (w *World) Step(dt float32) {
	w.current = make(map[pairKey]contact)

	for _, b := range w.dynamics {
		b.Velocity = rl.Vector3Add(b.Velocity, rl.Vector3Scale(w.Gravity, dt))
		b.Position = rl.Vector3Add(b.Position, rl.Vector3Scale(b.Velocity, dt))
	}

	for i := 0; i < len(w.dynamics); i++ {
		for j := i + 1; j < len(w.dynamics); j++ {
			w.resolveDynamicPair(w.dynamics[i], w.dynamics[j])
		}
	}
	for _, dyn := range w.dynamics {
		for _, kin := range w.kinematics {
			w.resolveImmovable(dyn, kin)
		}
		for _, st := range w.statics {
			w.resolveImmovable(dyn, st)
		}
	}

	if len(w.current) > 0 && time.Since(w.lastLogTime) >= time.Second {
		w.lastLogTime = time.Now()
		log.Printf("physics: %d contacts across %d dynamic bodies", len(w.current), len(w.dynamics))
	}

	w.dispatchContactCallbacks()
}

// resolveDynamicPair separates two overlapping dynamic spheres, splitting
// the pushout by mass ratio, and applies a restitution impulse.
func (w *World) resolveDynamicPair(a, b *Body) {
	diff := rl.Vector3Subtract(a.Position, b.Position)
	dist := rl.Vector3Length(diff)
	minDist := a.Radius + b.Radius
	if dist >= minDist || dist < 0.0001 {
		return
	}

	w.recordContact(a, b)

	normal := rl.Vector3Scale(diff, 1/dist)
	penetration := minDist - dist

	totalMass := a.Mass + b.Mass
	a.Position = rl.Vector3Add(a.Position, rl.Vector3Scale(normal, penetration*b.Mass/totalMass))
	b.Position = rl.Vector3Subtract(b.Position, rl.Vector3Scale(normal, penetration*a.Mass/totalMass))

	relVel := rl.Vector3Subtract(a.Velocity, b.Velocity)
	velAlongNormal := rl.Vector3DotProduct(relVel, normal)
	if velAlongNormal > 0 {
		return
	}

	e := (a.Restitution + b.Restitution) / 2
	j := -(1 + e) * velAlongNormal
	j /= 1/a.Mass + 1/b.Mass

	impulse := rl.Vector3Scale(normal, j)
	a.Velocity = rl.Vector3Add(a.Velocity, rl.Vector3Scale(impulse, 1/a.Mass))
	b.Velocity = rl.Vector3Subtract(b.Velocity, rl.Vector3Scale(impulse, 1/b.Mass))
}

// resolveImmovable handles a dynamic sphere against a kinematic or static
// one: the dynamic side takes the full pushout and the impulse is computed
// against the obstacle's velocity with the obstacle treated as infinitely
// heavy. Kinematics and statics are never displaced.
func (w *World) resolveImmovable(dyn, obstacle *Body) {
	diff := rl.Vector3Subtract(dyn.Position, obstacle.Position)
	dist := rl.Vector3Length(diff)
	minDist := dyn.Radius + obstacle.Radius
	if dist >= minDist || dist < 0.0001 {
		return
	}

	w.recordContact(dyn, obstacle)

	normal := rl.Vector3Scale(diff, 1/dist)
	dyn.Position = rl.Vector3Add(dyn.Position, rl.Vector3Scale(normal, minDist-dist))

	relVel := rl.Vector3Subtract(dyn.Velocity, obstacle.Velocity)
	velAlongNormal := rl.Vector3DotProduct(relVel, normal)
	if velAlongNormal >= 0 {
		return
	}

	e := (dyn.Restitution + obstacle.Restitution) / 2
	dyn.Velocity = rl.Vector3Subtract(dyn.Velocity, rl.Vector3Scale(normal, (1+e)*velAlongNormal))
}

func (w *World) recordContact(a, b *Body) {
	key, c := makePair(a, b)
	w.current[key] = c
}

// dispatchContactCallbacks diffs this step's pairs against the previous
// step's: fresh pairs fire enter, vanished pairs fire exit, then the
// buffers swap.
func (w *World) dispatchContactCallbacks() {
	for key, c := range w.current {
		if _, ok := w.active[key]; !ok && w.onEnter != nil {
			w.onEnter(c.a, c.b)
		}
	}
	for key, c := range w.active {
		if _, ok := w.current[key]; !ok && w.onExit != nil {
			w.onExit(c.a, c.b)
		}
	}
	w.active = w.current
}
