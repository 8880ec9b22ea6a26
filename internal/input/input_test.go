package input

import (
	"testing"
)

func axesClose(t *testing.T, s Sample, wantH, wantV float32) {
	t.Helper()
	const eps = 1e-6
	h, v := Axes(s)
	if diff := h - wantH; diff > eps || diff < -eps {
		t.Errorf("Expected horizontal %v, got %v", wantH, h)
	}
	if diff := v - wantV; diff > eps || diff < -eps {
		t.Errorf("Expected vertical %v, got %v", wantV, v)
	}
}

func TestAxesIdle(t *testing.T) {
	axesClose(t, Sample{}, 0, 0)
}

func TestAxesKeys(t *testing.T) {
	axesClose(t, Sample{Left: true}, -1, 0)
	axesClose(t, Sample{Right: true}, 1, 0)
	axesClose(t, Sample{Up: true}, 0, 1)
	axesClose(t, Sample{Down: true}, 0, -1)
	axesClose(t, Sample{Left: true, Up: true}, -1, 1)
}

func TestAxesOpposingKeysResolve(t *testing.T) {
	// Per-axis priority, not cancellation: left beats right, down beats up.
	axesClose(t, Sample{Left: true, Right: true}, -1, 0)
	axesClose(t, Sample{Up: true, Down: true}, 0, -1)
	axesClose(t, Sample{Left: true, Right: true, Up: true, Down: true}, -1, -1)
}

func TestAxesPointerCenter(t *testing.T) {
	s := Sample{
		PointerActive: true,
		PointerX:      400, PointerY: 300,
		Width: 800, Height: 600,
	}
	axesClose(t, s, 0, 0)
}

func TestAxesPointerCorners(t *testing.T) {
	topLeft := Sample{
		PointerActive: true,
		PointerX:      0, PointerY: 0,
		Width: 800, Height: 600,
	}
	axesClose(t, topLeft, -1, 1)

	bottomRight := Sample{
		PointerActive: true,
		PointerX:      800, PointerY: 600,
		Width: 800, Height: 600,
	}
	axesClose(t, bottomRight, 1, -1)
}

func TestAxesPointerOverridesKeys(t *testing.T) {
	s := Sample{
		Left:          true,
		Down:          true,
		PointerActive: true,
		PointerX:      800, PointerY: 0,
		Width: 800, Height: 600,
	}
	axesClose(t, s, 1, 1)
}

func TestAxesPointerClamped(t *testing.T) {
	s := Sample{
		PointerActive: true,
		PointerX:      1600, PointerY: -300,
		Width: 800, Height: 600,
	}
	axesClose(t, s, 1, 1)
}

func TestAxesPointerZeroViewportFallsBack(t *testing.T) {
	s := Sample{
		Right:         true,
		PointerActive: true,
		PointerX:      100, PointerY: 100,
	}
	axesClose(t, s, 1, 0)
}
