package engine

import (
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/ratsign/events"
	"github.com/lixenwraith/ratsign/scene"
	"github.com/lixenwraith/ratsign/status"
)

// Settings configures the simulation driver
type Settings struct {
	FrameInterval  time.Duration
	AssignInterval time.Duration
	// MaxDelta clamps one frame's step so a suspended process does not catch up in one jump
	MaxDelta time.Duration
	// InitialScatterDelay is simulation time before the opening scatter, negative disables it
	InitialScatterDelay time.Duration
}

// DefaultSettings returns 60 fps frames, 100ms assignment passes, 1s clamp and scatter
func DefaultSettings() Settings {
	return Settings{
		FrameInterval:       16 * time.Millisecond,
		AssignInterval:      100 * time.Millisecond,
		MaxDelta:            time.Second,
		InitialScatterDelay: time.Second,
	}
}

// Simulation owns the world and serializes every entry point into it
// Tick, PeriodicAssign and OnScatterTriggered may be called from different goroutines; they never overlap
type Simulation struct {
	mu sync.Mutex

	world    *scene.World
	queue    *events.EventQueue
	router   *events.Router[*scene.World]
	settings Settings

	scatterPending bool

	statPieces      *atomic.Int64
	statPlaced      *atomic.Int64
	statAssigned    *atomic.Int64
	statPasses      *atomic.Int64
	statAssignments *atomic.Int64
	statFrames      *atomic.Int64
	statScatters    *atomic.Int64
	statDropped     *atomic.Int64
	statDancing     *atomic.Bool
	statPaused      *atomic.Bool
	statDanceDegs   *status.AtomicFloat
	statPhase       *status.AtomicString
}

// NewSimulation wires world to a fresh event queue and caches metric pointers from reg
func NewSimulation(world *scene.World, reg *status.Registry, settings Settings) *Simulation {
	queue := events.NewEventQueue()
	world.SetEventQueue(queue)

	s := &Simulation{
		world:          world,
		queue:          queue,
		router:         events.NewRouter[*scene.World](queue),
		settings:       settings,
		scatterPending: settings.InitialScatterDelay >= 0,

		statPieces:      reg.Ints.Get(status.KeyPieces),
		statPlaced:      reg.Ints.Get(status.KeyPlaced),
		statAssigned:    reg.Ints.Get(status.KeyAssigned),
		statPasses:      reg.Ints.Get(status.KeyPasses),
		statAssignments: reg.Ints.Get(status.KeyAssignments),
		statFrames:      reg.Ints.Get(status.KeyFrames),
		statScatters:    reg.Ints.Get(status.KeyScatters),
		statDropped:     reg.Ints.Get(status.KeyDropped),
		statDancing:     reg.Bools.Get(status.KeyDancing),
		statPaused:      reg.Bools.Get(status.KeyPaused),
		statDanceDegs:   reg.Floats.Get(status.KeyDanceDegs),
		statPhase:       reg.Strings.Get(status.KeyPhase),
	}
	s.router.Register(&metricsHandler{sim: s})
	s.statPieces.Store(int64(len(world.Pieces)))
	s.publish()

	return s
}

// RegisterEventHandler adds a handler to the router, must be called before the loop starts
func (s *Simulation) RegisterEventHandler(h events.Handler[*scene.World]) {
	s.router.Register(h)
}

// Tick advances the scene one frame at simulation time t (seconds) by dt seconds
// dt is clamped to [0, MaxDelta]; pending domain events are routed after the step
func (s *Simulation) Tick(t, dt float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	dt = max(0, min(dt, s.settings.MaxDelta.Seconds()))

	w := s.world
	w.Time = t
	w.Frame++
	w.Step(t, dt)

	if s.scatterPending && t >= s.settings.InitialScatterDelay.Seconds() {
		s.scatterPending = false
		w.Scatter()
	}

	s.router.DispatchAll(w)
	s.statFrames.Store(w.Frame)
	s.statDropped.Store(int64(s.queue.Dropped()))
	s.publish()
}

// PeriodicAssign runs one scheduler pass
func (s *Simulation) PeriodicAssign() scene.PassResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := s.world.Assign()
	s.statPasses.Add(1)
	s.publish()
	return res
}

// OnScatterTriggered scares every actor and knocks all placed pieces loose
// Returns the number of pieces knocked loose
func (s *Simulation) OnScatterTriggered() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.scatterPending = false
	n := s.world.Scatter()
	s.publish()
	return n
}

// SetPaused records the driver's pause state for the status line
func (s *Simulation) SetPaused(paused bool) {
	s.statPaused.Store(paused)
}

// View runs fn with exclusive access to the world, for renderers and tests
func (s *Simulation) View(fn func(w *scene.World)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.world)
}

// publish mirrors world counters into the registry, caller holds mu
func (s *Simulation) publish() {
	w := s.world
	s.statPlaced.Store(int64(len(w.Placed)))
	s.statAssigned.Store(int64(len(w.Assigned)))
	s.statDancing.Store(w.Dancing())
	s.statDanceDegs.Set(w.DanceCircleDegs)

	switch {
	case w.Dancing():
		s.statPhase.Store("dancing")
	case w.AllPlaced():
		s.statPhase.Store("assembled")
	default:
		s.statPhase.Store("building")
	}
}

// metricsHandler counts domain events into the registry
type metricsHandler struct {
	sim *Simulation
}

func (h *metricsHandler) EventTypes() []events.EventType {
	return []events.EventType{
		events.EventPieceAssigned,
		events.EventScatter,
		events.EventDanceStarted,
	}
}

func (h *metricsHandler) HandleEvent(_ *scene.World, ev events.GameEvent) {
	switch ev.Type {
	case events.EventPieceAssigned:
		h.sim.statAssignments.Add(1)
	case events.EventScatter:
		h.sim.statScatters.Add(1)
	case events.EventDanceStarted:
		log.Printf("engine: logo assembled at frame %d", ev.Frame)
	}
}
