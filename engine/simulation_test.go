package engine

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/ratsign/events"
	"github.com/lixenwraith/ratsign/scene"
	"github.com/lixenwraith/ratsign/status"
)

func testRand() *rand.Rand {
	return rand.New(rand.NewPCG(3, 5))
}

func noScatterSettings() Settings {
	s := DefaultSettings()
	s.InitialScatterDelay = -1
	return s
}

func logoWorld(t *testing.T, logo string, actors int) *scene.World {
	t.Helper()
	pieces := scene.BuildPieces(scene.ParseGlyphs(logo), scene.DefaultLayout(), scene.DefaultTuning(), testRand())
	w := scene.NewWorld(pieces, actors, scene.DefaultTuning(), testRand())
	require.NoError(t, w.GraphErr())
	return w
}

func TestTick_ClampsDelta(t *testing.T) {
	p := scene.Piece{UID: 1}
	p.Position = mgl64.Vec3{0, 10, 0}
	w := scene.NewWorld([]scene.Piece{p}, 0, scene.DefaultTuning(), testRand())
	sim := NewSimulation(w, status.NewRegistry(), noScatterSettings())

	sim.Tick(0, 5)

	got := w.Piece(1)
	assert.InDelta(t, 10-9.8, got.Position[1], 1e-9, "one clamped second of fall")
	assert.InDelta(t, -9.8, got.Velocity[1], 1e-9)

	before := got.Body
	sim.Tick(0, -3)
	assert.Equal(t, before, w.Piece(1).Body, "negative delta is a zero step")
	assert.Equal(t, int64(2), w.Frame)
}

func TestTick_InitialScatterFiresOnce(t *testing.T) {
	w := logoWorld(t, "ab\ncd", 3)
	w.Assemble()
	reg := status.NewRegistry()
	sim := NewSimulation(w, reg, DefaultSettings())

	sim.Tick(0.5, 0.5)
	assert.Len(t, w.Placed, 4)
	assert.Equal(t, int64(4), reg.Ints.Get(status.KeyPlaced).Load())
	assert.Equal(t, "assembled", reg.Strings.Get(status.KeyPhase).Load())

	sim.Tick(1.0, 0.5)
	assert.Empty(t, w.Placed)
	assert.Equal(t, int64(1), reg.Ints.Get(status.KeyScatters).Load())
	assert.Equal(t, "building", reg.Strings.Get(status.KeyPhase).Load())

	sim.Tick(2.0, 1.0)
	assert.Equal(t, int64(1), reg.Ints.Get(status.KeyScatters).Load())
}

func TestOnScatterTriggered_CancelsInitialScatter(t *testing.T) {
	w := logoWorld(t, "abc", 2)
	w.Assemble()
	reg := status.NewRegistry()
	sim := NewSimulation(w, reg, DefaultSettings())

	assert.Equal(t, 3, sim.OnScatterTriggered())
	sim.Tick(5, 0.1)

	assert.Equal(t, int64(1), reg.Ints.Get(status.KeyScatters).Load())
}

func TestPeriodicAssign_Metrics(t *testing.T) {
	w := logoWorld(t, "abcd", 2)
	reg := status.NewRegistry()
	sim := NewSimulation(w, reg, noScatterSettings())

	res := sim.PeriodicAssign()

	require.Equal(t, 2, res.Assigned)
	assert.Equal(t, int64(1), reg.Ints.Get(status.KeyPasses).Load())
	assert.Equal(t, int64(2), reg.Ints.Get(status.KeyAssigned).Load())
	assert.Equal(t, int64(4), reg.Ints.Get(status.KeyPieces).Load())

	// Event-derived counters catch up on the next frame
	assert.Equal(t, int64(0), reg.Ints.Get(status.KeyAssignments).Load())
	sim.Tick(0, 0)
	assert.Equal(t, int64(2), reg.Ints.Get(status.KeyAssignments).Load())
}

func TestSimulation_AssemblesAndRoutesEvents(t *testing.T) {
	w := logoWorld(t, "ab\ncde", 3)
	reg := status.NewRegistry()
	sim := NewSimulation(w, reg, noScatterSettings())

	var placed []int
	sim.RegisterEventHandler(events.HandlerFunc[*scene.World]{
		Types: []events.EventType{events.EventPiecePlaced},
		Fn: func(_ *scene.World, ev events.GameEvent) {
			placed = append(placed, ev.Payload.(*events.PiecePayload).PieceUID)
		},
	})

	const dt = 1.0 / 60
	for f := 0; f < 60*60 && !reg.Bools.Get(status.KeyDancing).Load(); f++ {
		if f%6 == 0 {
			sim.PeriodicAssign()
		}
		sim.Tick(float64(f)*dt, dt)
	}

	assert.True(t, reg.Bools.Get(status.KeyDancing).Load())
	assert.ElementsMatch(t, []int{1, 2, 3, 4, 5}, placed)
	sim.View(func(w *scene.World) {
		assert.True(t, w.AllPlaced())
		assert.Empty(t, w.Assigned)
	})
}

func TestLoop_FrameUsesPausableTime(t *testing.T) {
	mock := NewMockTimeProvider(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	clock := NewPausableClock(mock)
	w := scene.NewWorld(nil, 1, scene.DefaultTuning(), testRand())
	sim := NewSimulation(w, status.NewRegistry(), noScatterSettings())

	rendered := 0
	l := NewLoop(sim, clock, DefaultSettings(), func() { rendered++ })

	mock.Advance(16 * time.Millisecond)
	l.frame()
	assert.Equal(t, int64(1), w.Frame)
	assert.InDelta(t, 0.016, w.Time, 1e-12)

	clock.Pause()
	mock.Advance(time.Second)
	l.frame()
	l.assign()
	assert.Equal(t, int64(1), w.Frame, "paused frames do not tick")
	assert.Equal(t, 2, rendered, "paused frames still render")

	clock.Resume()
	mock.Advance(16 * time.Millisecond)
	l.frame()
	assert.InDelta(t, 0.032, w.Time, 1e-12, "pause does not leak into simulation time")
	assert.Equal(t, uint64(3), l.Frames())
}

func TestLoop_StartStop(t *testing.T) {
	w := scene.NewWorld(nil, 2, scene.DefaultTuning(), testRand())
	reg := status.NewRegistry()
	sim := NewSimulation(w, reg, noScatterSettings())
	clock := NewPausableClock(NewMonotonicTimeProvider())

	settings := DefaultSettings()
	settings.FrameInterval = time.Millisecond
	settings.AssignInterval = 2 * time.Millisecond
	l := NewLoop(sim, clock, settings, nil)

	l.Start()
	l.Start()
	require.Eventually(t, func() bool { return l.Frames() >= 5 }, 2*time.Second, time.Millisecond)
	require.Eventually(t, func() bool { return reg.Ints.Get(status.KeyPasses).Load() >= 2 }, 2*time.Second, time.Millisecond)

	assert.True(t, l.RequestScatter())
	l.RequestPauseToggle()
	require.Eventually(t, reg.Bools.Get(status.KeyPaused).Load, 2*time.Second, time.Millisecond)
	assert.True(t, clock.IsPaused())

	l.Stop()
	l.Stop()
	frames := l.Frames()
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, frames, l.Frames(), "no frames after Stop")
}
