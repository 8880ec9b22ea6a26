package world

import (
	"testing"

	"orbsmash/internal/state"
)

func TestArenaHandlesNeverReused(t *testing.T) {
	a := NewArena()
	h1 := a.Register(Renderable{Kind: KindBrick, ID: 0})
	a.Release(h1)
	h2 := a.Register(Renderable{Kind: KindBrick, ID: 0})
	if h1 == h2 {
		t.Errorf("Expected a fresh handle after release, got %d twice", h1)
	}
	if _, ok := a.Lookup(h1); ok {
		t.Error("Expected released handle to be dead")
	}
	if r, ok := a.Lookup(h2); !ok || r.ID != 0 || r.Kind != KindBrick {
		t.Errorf("Expected live brick 0 behind new handle, got %v (ok=%v)", r, ok)
	}
}

func TestArenaZeroHandleNeverLive(t *testing.T) {
	a := NewArena()
	if _, ok := a.Lookup(state.Handle(0)); ok {
		t.Error("Expected zero handle to be dead in a fresh arena")
	}
	h := a.Register(Renderable{Kind: KindPad})
	if h == 0 {
		t.Error("Expected registered handles to start above zero")
	}
}

func TestArenaReleaseDeadHandle(t *testing.T) {
	a := NewArena()
	a.Release(state.Handle(77))
	if a.Len() != 0 {
		t.Errorf("Expected empty arena, got %d entries", a.Len())
	}
}
