// Package world owns the renderable side of the game: the arena of live
// renderables with stable handles, the view that mirrors store snapshots
// into mounted renderables, the orbit camera and the draw pass.
package world

import (
	"orbsmash/internal/state"
)

// EntityKind tags which store entity a renderable mirrors.
type EntityKind int

const (
	KindPad EntityKind = iota
	KindBall
	KindBrick
)

func (k EntityKind) String() string {
	switch k {
	case KindPad:
		return "pad"
	case KindBall:
		return "ball"
	case KindBrick:
		return "brick"
	}
	return "unknown"
}

// Renderable is one mounted scene object: a kind plus the store-side
// entity id it mirrors.
type Renderable struct {
	Kind EntityKind
	ID   int
}

// Arena is the registry of live renderables. Handles are monotonic and
// never reused, so a stale handle held elsewhere (say, in the outline
// selection) looks up as dead instead of aliasing a newer object.
type Arena struct {
	next    state.Handle
	entries map[state.Handle]Renderable
}

// NewArena returns an empty arena. Handle numbering starts at 1 so the
// zero Handle is never live.
func NewArena() *Arena {
	return &Arena{next: 1, entries: make(map[state.Handle]Renderable)}
}

// Register mounts a renderable and returns its handle.
func (a *Arena) Register(r Renderable) state.Handle {
	h := a.next
	a.next++
	a.entries[h] = r
	return h
}

// Release unmounts a handle. Releasing a dead handle is a no-op.
func (a *Arena) Release(h state.Handle) {
	delete(a.entries, h)
}

// Lookup returns the renderable behind h and whether it is still live.
// Consumers filter dead handles; they are expected, not an error.
func (a *Arena) Lookup(h state.Handle) (Renderable, bool) {
	r, ok := a.entries[h]
	return r, ok
}

// Len returns the number of live renderables.
func (a *Arena) Len() int {
	return len(a.entries)
}
