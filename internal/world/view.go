package world

import (
	"orbsmash/internal/state"
)

// View mirrors store snapshots into the arena. Every entity in a snapshot
// gets exactly one mounted renderable; entities that vanish between
// snapshots are unmounted. Mount and unmount also drive the store's
// outline selection, so the set of selected handles tracks the set of
// live objects without the draw pass doing any bookkeeping.
type View struct {
	store       *state.Store
	arena       *Arena
	mounted     map[Renderable]state.Handle
	unsubscribe func()
}

// NewView builds a view over the store, applies the current snapshot and
// subscribes to future changes.
func NewView(store *state.Store) *View {
	v := &View{
		store:   store,
		arena:   NewArena(),
		mounted: make(map[Renderable]state.Handle),
	}
	v.Apply(store.Snapshot())
	v.unsubscribe = store.Subscribe(v.Apply)
	return v
}

// Arena exposes the backing arena for liveness checks in the draw pass.
func (v *View) Arena() *Arena {
	return v.arena
}

// Handle returns the mounted handle for a store entity, if one exists.
func (v *View) Handle(r Renderable) (state.Handle, bool) {
	h, ok := v.mounted[r]
	return h, ok
}

// Apply reconciles the mounted set against a snapshot. It runs inside the
// store's notification fan-out, so it only calls the non-publishing
// selection actions; anything else would recurse.
func (v *View) Apply(snap state.Snapshot) {
	want := make(map[Renderable]struct{}, len(snap.Balls)+len(snap.Bricks)+1)
	want[Renderable{Kind: KindPad}] = struct{}{}
	for _, b := range snap.Balls {
		want[Renderable{Kind: KindBall, ID: b.ID}] = struct{}{}
	}
	for _, b := range snap.Bricks {
		want[Renderable{Kind: KindBrick, ID: b.ID}] = struct{}{}
	}

	for r, h := range v.mounted {
		if _, ok := want[r]; !ok {
			v.unmount(r, h)
		}
	}
	for r := range want {
		if _, ok := v.mounted[r]; !ok {
			h := v.arena.Register(r)
			v.mounted[r] = h
			v.store.AddOutlineSelection(h)
		}
	}
}

// Close unmounts everything and stops tracking the store.
func (v *View) Close() {
	if v.unsubscribe != nil {
		v.unsubscribe()
		v.unsubscribe = nil
	}
	for r, h := range v.mounted {
		v.unmount(r, h)
	}
}

func (v *View) unmount(r Renderable, h state.Handle) {
	v.arena.Release(h)
	delete(v.mounted, r)
	v.store.RemoveOutlineSelection(h)
}
