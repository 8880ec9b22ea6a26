// Package state owns the whole simulation state: the orbiting pad, the
// launched balls, the brick field and the outline selection. All writes go
// through the Store's action methods; everything else reads snapshots or
// subscribes to change notifications.
package state

import (
	"math/rand"
	"sort"
	"sync"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"orbsmash/internal/geom"
	"orbsmash/internal/input"
)

// Params holds the gameplay tuning knobs. Zero or negative values fall
// back to the defaults when the store is built.
type Params struct {
	MaxBalls         int
	LaunchSpeed      float32
	SpawnOffset      rl.Vector3
	BrickCount       int
	ShellRadius      float32
	RandomLayout     bool
	RandomBrickCount int
	YawRate          float32
	PitchRate        float32

	// Seed fixes the random source for reproducible runs. 0 seeds from
	// the clock.
	Seed int64
}

// DefaultParams returns the stock arcade tuning.
func DefaultParams() Params {
	return Params{
		MaxBalls:         3,
		LaunchSpeed:      2.0,
		SpawnOffset:      rl.Vector3{X: 0, Y: 0, Z: 3},
		BrickCount:       64,
		ShellRadius:      1.5,
		RandomBrickCount: 16,
		YawRate:          1.0,
		PitchRate:        1.0,
	}
}

func (p Params) normalized() Params {
	def := DefaultParams()
	if p.MaxBalls <= 0 {
		p.MaxBalls = def.MaxBalls
	}
	if p.LaunchSpeed <= 0 {
		p.LaunchSpeed = def.LaunchSpeed
	}
	if p.SpawnOffset == (rl.Vector3{}) {
		p.SpawnOffset = def.SpawnOffset
	}
	if p.BrickCount <= 0 {
		p.BrickCount = def.BrickCount
	}
	if p.ShellRadius <= 0 {
		p.ShellRadius = def.ShellRadius
	}
	if p.RandomBrickCount <= 0 {
		p.RandomBrickCount = def.RandomBrickCount
	}
	if p.YawRate <= 0 {
		p.YawRate = def.YawRate
	}
	if p.PitchRate <= 0 {
		p.PitchRate = def.PitchRate
	}
	return p
}

// Snapshot is an immutable copy of the store state. Balls keep insertion
// order (oldest first), bricks are sorted by id, selection handles are
// sorted ascending.
type Snapshot struct {
	Player      Player
	Balls       []Ball
	Bricks      []Brick
	Selection   []Handle
	NextBallID  int
	NextBrickID int
}

// BrickByID finds a brick in the snapshot.
func (s Snapshot) BrickByID(id int) (Brick, bool) {
	for _, b := range s.Bricks {
		if b.ID == id {
			return b, true
		}
	}
	return Brick{}, false
}

// Store is the sole owner of the game state. Actions mutate under the
// lock, then fan the fresh snapshot out to subscribers after the lock is
// released, so subscribers may call actions without deadlocking.
type Store struct {
	mu     sync.RWMutex
	params Params
	rng    *rand.Rand

	player      Player
	balls       []Ball
	bricks      map[int]Brick
	selection   *Selection
	nextBallID  int
	nextBrickID int

	observers Event[Snapshot]
}

// NewStore builds an empty store. Call ResetGame to populate the initial
// brick field.
func NewStore(params Params) *Store {
	params = params.normalized()
	seed := params.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	return &Store{
		params:    params,
		rng:       rng,
		player:    NewPlayer(rng.Intn(len(Palette))),
		bricks:    make(map[int]Brick),
		selection: NewSelection(),
	}
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Subscribe registers fn for every future state change and returns an
// unsubscribe func. fn is not called with the current state; callers that
// need it should start from Snapshot.
func (s *Store) Subscribe(fn func(Snapshot)) func() {
	s.mu.Lock()
	id := s.observers.AddListener(fn)
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		s.observers.RemoveListener(id)
		s.mu.Unlock()
	}
}

// AddBall launches a new ball from the pad and returns it. The ball list
// keeps only the most recent MaxBalls entries; older ones drop off the
// front. The caller owns spawning the matching physics body.
func (s *Store) AddBall() Ball {
	s.mu.Lock()
	ball := NewBallFromPlayer(s.nextBallID, s.player, s.params.SpawnOffset, s.params.LaunchSpeed)
	s.nextBallID++
	s.balls = append(s.balls, ball)
	for len(s.balls) > s.params.MaxBalls {
		s.balls = s.balls[1:]
	}
	snap, fns := s.commitLocked()
	s.mu.Unlock()
	fanout(snap, fns)
	return ball
}

// AddBrick inserts a brick at the given offset from the core center.
func (s *Store) AddBrick(offset rl.Vector3) Brick {
	s.mu.Lock()
	brick := s.addBrickLocked(offset)
	snap, fns := s.commitLocked()
	s.mu.Unlock()
	fanout(snap, fns)
	return brick
}

// AddRandomBrick inserts a brick at a random grid cell on the shell.
func (s *Store) AddRandomBrick() Brick {
	s.mu.Lock()
	brick := s.addBrickLocked(s.randomOffsetLocked())
	snap, fns := s.commitLocked()
	s.mu.Unlock()
	fanout(snap, fns)
	return brick
}

// AddDefaultBricks rebuilds the canonical target field: one brick per
// Fibonacci sphere point. A single change notification covers the batch.
func (s *Store) AddDefaultBricks() {
	s.mu.Lock()
	for _, pt := range geom.FibonacciSphere(s.params.BrickCount, s.params.ShellRadius) {
		s.addBrickLocked(pt)
	}
	snap, fns := s.commitLocked()
	s.mu.Unlock()
	fanout(snap, fns)
}

// RemoveBrick deletes a brick by id. Unknown ids are a silent no-op and
// do not notify.
func (s *Store) RemoveBrick(id int) {
	s.mu.Lock()
	if _, ok := s.bricks[id]; !ok {
		s.mu.Unlock()
		return
	}
	delete(s.bricks, id)
	snap, fns := s.commitLocked()
	s.mu.Unlock()
	fanout(snap, fns)
}

// UpdateBrick merges the patch into an existing brick. Unknown ids are a
// silent no-op and do not notify.
func (s *Store) UpdateBrick(id int, patch BrickPatch) {
	s.mu.Lock()
	brick, ok := s.bricks[id]
	if !ok {
		s.mu.Unlock()
		return
	}
	if patch.Color != nil {
		brick.Color = *patch.Color
	}
	s.bricks[id] = brick
	snap, fns := s.commitLocked()
	s.mu.Unlock()
	fanout(snap, fns)
}

// MovePlayer steers the pad for one tick. The incremental yaw and pitch
// rotations are composed onto the existing orientation in a fixed order
// (existing, then pitch, then yaw) and the result is renormalized to keep
// drift out of the quaternion.
func (s *Store) MovePlayer(dt float32, sample input.Sample) {
	h, v := input.Axes(sample)
	s.mu.Lock()
	yaw := rl.QuaternionFromAxisAngle(rl.Vector3{X: 0, Y: 1, Z: 0}, h*s.params.YawRate*dt)
	pitch := rl.QuaternionFromAxisAngle(rl.Vector3{X: 1, Y: 0, Z: 0}, v*s.params.PitchRate*dt)
	s.player.Rotation = rl.QuaternionNormalize(
		rl.QuaternionMultiply(rl.QuaternionMultiply(s.player.Rotation, pitch), yaw))
	snap, fns := s.commitLocked()
	s.mu.Unlock()
	fanout(snap, fns)
}

// AddOutlineSelection marks a handle for the outline pass. Selection
// changes do not fan out: the mount hooks that call this run inside
// subscribers, and a nested notification would recurse. The outline pass
// pulls the selection with Snapshot when it draws.
func (s *Store) AddOutlineSelection(h Handle) {
	s.mu.Lock()
	s.selection.Add(h)
	s.mu.Unlock()
}

// RemoveOutlineSelection unmarks a handle. Absent handles are a no-op.
func (s *Store) RemoveOutlineSelection(h Handle) {
	s.mu.Lock()
	s.selection.Remove(h)
	s.mu.Unlock()
}

// SetRandomLayout picks which brick field the next ResetGame builds: the
// Fibonacci shell or the random grid. It changes nothing visible until a
// reset, so it does not notify.
func (s *Store) SetRandomLayout(random bool) {
	s.mu.Lock()
	s.params.RandomLayout = random
	s.mu.Unlock()
}

// ResetGame clears balls and bricks, restarts both id sequences at zero,
// rolls a fresh pad and rebuilds the brick field. It doubles as the
// initializer on startup and the manual reset during play. The selection
// is left alone; unmount hooks prune it as the old objects disappear from
// subsequent snapshots.
func (s *Store) ResetGame() {
	s.mu.Lock()
	s.balls = nil
	s.bricks = make(map[int]Brick)
	s.nextBallID = 0
	s.nextBrickID = 0
	s.player = NewPlayer(s.rng.Intn(len(Palette)))
	if s.params.RandomLayout {
		for _, offset := range s.randomFieldLocked(s.params.RandomBrickCount) {
			s.addBrickLocked(offset)
		}
	} else {
		for _, pt := range geom.FibonacciSphere(s.params.BrickCount, s.params.ShellRadius) {
			s.addBrickLocked(pt)
		}
	}
	snap, fns := s.commitLocked()
	s.mu.Unlock()
	fanout(snap, fns)
}

func (s *Store) addBrickLocked(offset rl.Vector3) Brick {
	brick := NewBrick(s.nextBrickID, offset)
	s.bricks[brick.ID] = brick
	s.nextBrickID++
	return brick
}

// randomOffsetLocked draws one grid cell. Single insertions sample with
// replacement; only a full field rebuild guarantees distinct cells.
func (s *Store) randomOffsetLocked() rl.Vector3 {
	return GridBrickOffset(s.rng.Intn(YawCells), s.rng.Intn(PitchCells), s.params.ShellRadius)
}

// randomFieldLocked draws n grid cells without replacement and maps them
// to shell offsets, so a random reset never stacks two bricks on the same
// cell. n is capped at the cell count.
func (s *Store) randomFieldLocked(n int) []rl.Vector3 {
	total := YawCells * PitchCells
	if n > total {
		n = total
	}
	offsets := make([]rl.Vector3, 0, n)
	for _, cell := range s.rng.Perm(total)[:n] {
		offsets = append(offsets, GridBrickOffset(cell%YawCells, cell/YawCells, s.params.ShellRadius))
	}
	return offsets
}

func (s *Store) snapshotLocked() Snapshot {
	balls := make([]Ball, len(s.balls))
	copy(balls, s.balls)
	bricks := make([]Brick, 0, len(s.bricks))
	for _, b := range s.bricks {
		bricks = append(bricks, b)
	}
	sort.Slice(bricks, func(i, j int) bool { return bricks[i].ID < bricks[j].ID })
	return Snapshot{
		Player:      s.player,
		Balls:       balls,
		Bricks:      bricks,
		Selection:   s.selection.Handles(),
		NextBallID:  s.nextBallID,
		NextBrickID: s.nextBrickID,
	}
}

func (s *Store) commitLocked() (Snapshot, []func(Snapshot)) {
	return s.snapshotLocked(), s.observers.Funcs()
}

func fanout(snap Snapshot, fns []func(Snapshot)) {
	for _, fn := range fns {
		fn(snap)
	}
}
