package state

import (
	"math"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"

	"orbsmash/internal/input"
)

func testStore() *Store {
	p := DefaultParams()
	p.Seed = 1
	return NewStore(p)
}

func vecClose(a, b rl.Vector3, eps float32) bool {
	d := rl.Vector3Subtract(a, b)
	return rl.Vector3Length(d) <= eps
}

// quatClose treats q and -q as the same rotation.
func quatClose(a, b rl.Quaternion, eps float64) bool {
	same := math.Abs(float64(a.X-b.X)) <= eps &&
		math.Abs(float64(a.Y-b.Y)) <= eps &&
		math.Abs(float64(a.Z-b.Z)) <= eps &&
		math.Abs(float64(a.W-b.W)) <= eps
	flipped := math.Abs(float64(a.X+b.X)) <= eps &&
		math.Abs(float64(a.Y+b.Y)) <= eps &&
		math.Abs(float64(a.Z+b.Z)) <= eps &&
		math.Abs(float64(a.W+b.W)) <= eps
	return same || flipped
}

func TestAddBallBound(t *testing.T) {
	s := testStore()
	for i := 0; i < 10; i++ {
		s.AddBall()
		snap := s.Snapshot()
		if len(snap.Balls) > 3 {
			t.Fatalf("Expected at most 3 balls after add %d, got %d", i, len(snap.Balls))
		}
	}
	snap := s.Snapshot()
	if len(snap.Balls) != 3 {
		t.Fatalf("Expected 3 surviving balls, got %d", len(snap.Balls))
	}
	for i, want := range []int{7, 8, 9} {
		if snap.Balls[i].ID != want {
			t.Errorf("Expected ball %d to have id %d, got %d", i, want, snap.Balls[i].ID)
		}
	}
}

func TestBallIDMonotonic(t *testing.T) {
	s := testStore()
	for i := 0; i < 5; i++ {
		ball := s.AddBall()
		if ball.ID != i {
			t.Errorf("Expected ball id %d, got %d", i, ball.ID)
		}
	}
	if got := s.Snapshot().NextBallID; got != 5 {
		t.Errorf("Expected next ball id 5, got %d", got)
	}
}

func TestBrickIDMonotonic(t *testing.T) {
	s := testStore()
	for i := 0; i < 5; i++ {
		brick := s.AddBrick(rl.Vector3{X: float32(i)})
		if brick.ID != i {
			t.Errorf("Expected brick id %d, got %d", i, brick.ID)
		}
	}
	if got := s.Snapshot().NextBrickID; got != 5 {
		t.Errorf("Expected next brick id 5, got %d", got)
	}
}

func TestAddBallSpawnKinematics(t *testing.T) {
	s := testStore()
	ball := s.AddBall()
	if !vecClose(ball.Position, rl.Vector3{X: 0, Y: 0, Z: 3}, 1e-5) {
		t.Errorf("Expected spawn at (0,0,3), got %+v", ball.Position)
	}
	if !vecClose(ball.Velocity, rl.Vector3{X: 0, Y: 0, Z: -2}, 1e-5) {
		t.Errorf("Expected velocity (0,0,-2), got %+v", ball.Velocity)
	}
	if ball.Color != s.Snapshot().Player.Color {
		t.Errorf("Expected ball to inherit player color %v, got %v", s.Snapshot().Player.Color, ball.Color)
	}
}

func TestBallSpawnFollowsPad(t *testing.T) {
	s := testStore()
	s.MovePlayer(math.Pi/2, input.Sample{Left: true})
	ball := s.AddBall()
	if !vecClose(ball.Position, rl.Vector3{X: -3, Y: 0, Z: 0}, 1e-5) {
		t.Errorf("Expected spawn at (-3,0,0) after quarter orbit left, got %+v", ball.Position)
	}
	if !vecClose(ball.Velocity, rl.Vector3{X: 2, Y: 0, Z: 0}, 1e-5) {
		t.Errorf("Expected velocity (2,0,0) toward the core, got %+v", ball.Velocity)
	}
}

func TestRotationSignConvention(t *testing.T) {
	s := testStore()
	s.MovePlayer(1.0, input.Sample{Left: true})
	want := rl.QuaternionFromAxisAngle(rl.Vector3{X: 0, Y: 1, Z: 0}, -1.0)
	got := s.Snapshot().Player.Rotation
	if !quatClose(got, want, 1e-5) {
		t.Errorf("Expected axis-angle -1.0 about Y %+v, got %+v", want, got)
	}
}

func TestRotationCompositionOrder(t *testing.T) {
	s := testStore()
	s.MovePlayer(1.0, input.Sample{Left: true, Up: true})
	pitch := rl.QuaternionFromAxisAngle(rl.Vector3{X: 1, Y: 0, Z: 0}, 1.0)
	yaw := rl.QuaternionFromAxisAngle(rl.Vector3{X: 0, Y: 1, Z: 0}, -1.0)
	want := rl.QuaternionNormalize(rl.QuaternionMultiply(pitch, yaw))
	got := s.Snapshot().Player.Rotation
	if !quatClose(got, want, 1e-5) {
		t.Errorf("Expected pitch-then-yaw composition %+v, got %+v", want, got)
	}
}

func TestMovePlayerIdleKeepsOrientation(t *testing.T) {
	s := testStore()
	for i := 0; i < 100; i++ {
		s.MovePlayer(0.016, input.Sample{})
	}
	got := s.Snapshot().Player.Rotation
	if !quatClose(got, rl.QuaternionIdentity(), 1e-5) {
		t.Errorf("Expected identity after idle ticks, got %+v", got)
	}
}

func TestUpdateBrickMergesColor(t *testing.T) {
	s := testStore()
	brick := s.AddBrick(rl.Vector3{Z: 1.5})
	padColor := rl.NewColor(87, 117, 144, 255)
	s.UpdateBrick(brick.ID, BrickPatch{Color: &padColor})
	got, ok := s.Snapshot().BrickByID(brick.ID)
	if !ok {
		t.Fatal("Expected brick to survive update")
	}
	if got.Color != padColor {
		t.Errorf("Expected brick color %v, got %v", padColor, got.Color)
	}
	if got.Offset != brick.Offset {
		t.Errorf("Expected offset untouched by color patch, got %+v", got.Offset)
	}
}

func TestUpdateBrickEmptyPatch(t *testing.T) {
	s := testStore()
	brick := s.AddBrick(rl.Vector3{Z: 1.5})
	s.UpdateBrick(brick.ID, BrickPatch{})
	got, _ := s.Snapshot().BrickByID(brick.ID)
	if got.Color != brick.Color {
		t.Errorf("Expected color unchanged by empty patch, got %v", got.Color)
	}
}

func TestUpdateBrickAbsentIsNoOp(t *testing.T) {
	s := testStore()
	s.AddDefaultBricks()
	before := s.Snapshot()

	notified := 0
	unsub := s.Subscribe(func(Snapshot) { notified++ })
	defer unsub()

	red := rl.NewColor(255, 0, 0, 255)
	s.UpdateBrick(999, BrickPatch{Color: &red})

	after := s.Snapshot()
	if len(after.Bricks) != len(before.Bricks) {
		t.Fatalf("Expected %d bricks, got %d", len(before.Bricks), len(after.Bricks))
	}
	for i := range before.Bricks {
		if after.Bricks[i] != before.Bricks[i] {
			t.Errorf("Expected brick %d unchanged, got %+v", before.Bricks[i].ID, after.Bricks[i])
		}
	}
	if notified != 0 {
		t.Errorf("Expected no notification for absent-key update, got %d", notified)
	}
}

func TestRemoveBrickAbsentIsNoOp(t *testing.T) {
	s := testStore()
	s.AddBrick(rl.Vector3{Z: 1.5})

	notified := 0
	unsub := s.Subscribe(func(Snapshot) { notified++ })
	defer unsub()

	s.RemoveBrick(999)
	if notified != 0 {
		t.Errorf("Expected no notification for absent-key removal, got %d", notified)
	}
	if got := len(s.Snapshot().Bricks); got != 1 {
		t.Errorf("Expected 1 brick, got %d", got)
	}

	s.RemoveBrick(0)
	if notified != 1 {
		t.Errorf("Expected one notification for real removal, got %d", notified)
	}
	if got := len(s.Snapshot().Bricks); got != 0 {
		t.Errorf("Expected 0 bricks, got %d", got)
	}
}

func TestResetGameDefaultLayout(t *testing.T) {
	s := testStore()
	s.AddBall()
	s.AddBall()
	for i := 0; i < 5; i++ {
		s.AddBrick(rl.Vector3{X: float32(i)})
	}
	s.RemoveBrick(2)

	s.ResetGame()
	snap := s.Snapshot()
	if len(snap.Balls) != 0 {
		t.Errorf("Expected no balls after reset, got %d", len(snap.Balls))
	}
	if len(snap.Bricks) != 64 {
		t.Fatalf("Expected 64 bricks after reset, got %d", len(snap.Bricks))
	}
	for i, b := range snap.Bricks {
		if b.ID != i {
			t.Errorf("Expected brick ids 0..63 in order, got %d at index %d", b.ID, i)
		}
		if b.Color != PaletteColor(i) {
			t.Errorf("Expected brick %d to carry palette slot %d", b.ID, i%len(Palette))
		}
	}
	if snap.NextBallID != 0 {
		t.Errorf("Expected ball ids to restart at 0, got %d", snap.NextBallID)
	}
	if snap.NextBrickID != 64 {
		t.Errorf("Expected next brick id 64, got %d", snap.NextBrickID)
	}
}

func TestResetGameRandomLayout(t *testing.T) {
	p := DefaultParams()
	p.RandomLayout = true
	p.Seed = 7
	s := NewStore(p)
	s.ResetGame()

	snap := s.Snapshot()
	if len(snap.Bricks) != 16 {
		t.Fatalf("Expected 16 bricks in random layout, got %d", len(snap.Bricks))
	}
	for i, b := range snap.Bricks {
		if b.ID != i {
			t.Errorf("Expected brick ids 0..15 in order, got %d at index %d", b.ID, i)
		}
		norm := rl.Vector3Length(b.Offset)
		if diff := norm - 1.5; diff > 1e-5 || diff < -1e-5 {
			t.Errorf("Expected brick %d on the 1.5 shell, got norm %v", b.ID, norm)
		}
	}
}

func TestRandomLayoutBricksPairwiseDistinct(t *testing.T) {
	p := DefaultParams()
	p.RandomLayout = true

	for seed := int64(1); seed <= 20; seed++ {
		p.Seed = seed
		s := NewStore(p)
		s.ResetGame()

		bricks := s.Snapshot().Bricks
		for i := 0; i < len(bricks); i++ {
			for j := i + 1; j < len(bricks); j++ {
				if vecClose(bricks[i].Offset, bricks[j].Offset, 1e-4) {
					t.Fatalf("Seed %d: expected distinct positions, bricks %d and %d both at %+v",
						seed, bricks[i].ID, bricks[j].ID, bricks[i].Offset)
				}
			}
		}
	}
}

func TestRandomFieldCappedAtCellCount(t *testing.T) {
	p := DefaultParams()
	p.RandomLayout = true
	p.RandomBrickCount = YawCells*PitchCells + 50
	p.Seed = 3
	s := NewStore(p)
	s.ResetGame()

	if got := len(s.Snapshot().Bricks); got != YawCells*PitchCells {
		t.Errorf("Expected brick count capped at %d cells, got %d", YawCells*PitchCells, got)
	}
}

func TestSetRandomLayoutTakesEffectOnReset(t *testing.T) {
	s := testStore()
	s.ResetGame()
	if got := len(s.Snapshot().Bricks); got != 64 {
		t.Fatalf("Expected 64 bricks before the switch, got %d", got)
	}

	calls := 0
	unsub := s.Subscribe(func(Snapshot) { calls++ })
	s.SetRandomLayout(true)
	unsub()
	if calls != 0 {
		t.Errorf("Expected layout switch not to notify, got %d calls", calls)
	}

	s.ResetGame()
	if got := len(s.Snapshot().Bricks); got != 16 {
		t.Errorf("Expected 16 bricks after switching to random, got %d", got)
	}

	s.SetRandomLayout(false)
	s.ResetGame()
	if got := len(s.Snapshot().Bricks); got != 64 {
		t.Errorf("Expected 64 bricks after switching back, got %d", got)
	}
}

func TestSeedDeterminism(t *testing.T) {
	p := DefaultParams()
	p.RandomLayout = true
	p.Seed = 42

	a := NewStore(p)
	a.ResetGame()
	b := NewStore(p)
	b.ResetGame()

	sa, sb := a.Snapshot(), b.Snapshot()
	if sa.Player.Color != sb.Player.Color {
		t.Errorf("Expected same player color for same seed, got %v and %v", sa.Player.Color, sb.Player.Color)
	}
	if len(sa.Bricks) != len(sb.Bricks) {
		t.Fatalf("Expected equal brick counts, got %d and %d", len(sa.Bricks), len(sb.Bricks))
	}
	for i := range sa.Bricks {
		if sa.Bricks[i] != sb.Bricks[i] {
			t.Errorf("Expected brick %d identical across seeded runs", i)
		}
	}
}

func TestMaxBallsParam(t *testing.T) {
	p := DefaultParams()
	p.MaxBalls = 1
	p.Seed = 1
	s := NewStore(p)
	s.AddBall()
	s.AddBall()
	s.AddBall()
	snap := s.Snapshot()
	if len(snap.Balls) != 1 {
		t.Fatalf("Expected 1 ball, got %d", len(snap.Balls))
	}
	if snap.Balls[0].ID != 2 {
		t.Errorf("Expected newest ball to survive, got id %d", snap.Balls[0].ID)
	}
}

func TestZeroParamsFallBackToDefaults(t *testing.T) {
	s := NewStore(Params{Seed: 1})
	s.ResetGame()
	if got := len(s.Snapshot().Bricks); got != 64 {
		t.Errorf("Expected default brick count 64, got %d", got)
	}
	for i := 0; i < 5; i++ {
		s.AddBall()
	}
	if got := len(s.Snapshot().Balls); got != 3 {
		t.Errorf("Expected default ball bound 3, got %d", got)
	}
}

func TestSnapshotIsolation(t *testing.T) {
	s := testStore()
	s.AddBrick(rl.Vector3{Z: 1.5})
	old := s.Snapshot()

	red := rl.NewColor(255, 0, 0, 255)
	s.UpdateBrick(0, BrickPatch{Color: &red})
	s.AddBrick(rl.Vector3{X: 1.5})

	if len(old.Bricks) != 1 {
		t.Fatalf("Expected old snapshot to keep 1 brick, got %d", len(old.Bricks))
	}
	if old.Bricks[0].Color == red {
		t.Error("Expected old snapshot color untouched by later update")
	}

	// Writes into a snapshot must not leak back into the store.
	old.Bricks[0].Color = rl.NewColor(1, 2, 3, 255)
	if got, _ := s.Snapshot().BrickByID(0); got.Color != red {
		t.Errorf("Expected store color %v, got %v", red, got.Color)
	}
}

func TestSubscribeAndUnsubscribe(t *testing.T) {
	s := testStore()
	var seen []int
	unsub := s.Subscribe(func(snap Snapshot) {
		seen = append(seen, len(snap.Bricks))
	})

	s.AddBrick(rl.Vector3{Z: 1.5})
	s.AddBrick(rl.Vector3{X: 1.5})
	unsub()
	s.AddBrick(rl.Vector3{Y: 1.5})

	if len(seen) != 2 {
		t.Fatalf("Expected 2 notifications before unsubscribe, got %d", len(seen))
	}
	if seen[0] != 1 || seen[1] != 2 {
		t.Errorf("Expected snapshots with 1 then 2 bricks, got %v", seen)
	}
}

func TestAddDefaultBricksNotifiesOnce(t *testing.T) {
	s := testStore()
	notified := 0
	unsub := s.Subscribe(func(Snapshot) { notified++ })
	defer unsub()

	s.AddDefaultBricks()
	if notified != 1 {
		t.Errorf("Expected a single notification for the bulk add, got %d", notified)
	}
	if got := len(s.Snapshot().Bricks); got != 64 {
		t.Errorf("Expected 64 bricks, got %d", got)
	}
}

func TestSubscriberMayCallActions(t *testing.T) {
	s := testStore()
	marked := false
	unsub := s.Subscribe(func(snap Snapshot) {
		if !marked {
			marked = true
			s.AddOutlineSelection(Handle(42))
		}
	})
	defer unsub()

	s.AddBrick(rl.Vector3{Z: 1.5})

	sel := s.Snapshot().Selection
	if len(sel) != 1 || sel[0] != 42 {
		t.Errorf("Expected selection {42} set from inside a subscriber, got %v", sel)
	}
}

func TestSelectionActionsDoNotNotify(t *testing.T) {
	s := testStore()
	notified := 0
	unsub := s.Subscribe(func(Snapshot) { notified++ })
	defer unsub()

	s.AddOutlineSelection(7)
	s.AddOutlineSelection(7)
	s.RemoveOutlineSelection(7)
	if notified != 0 {
		t.Errorf("Expected selection changes to stay silent, got %d notifications", notified)
	}
}

func TestOutlineSelectionIdempotent(t *testing.T) {
	s := testStore()
	s.AddOutlineSelection(9)
	s.AddOutlineSelection(9)
	if got := s.Snapshot().Selection; len(got) != 1 || got[0] != 9 {
		t.Errorf("Expected exactly one entry for handle 9, got %v", got)
	}
	s.RemoveOutlineSelection(9)
	s.RemoveOutlineSelection(9)
	if got := s.Snapshot().Selection; len(got) != 0 {
		t.Errorf("Expected empty selection, got %v", got)
	}
}
