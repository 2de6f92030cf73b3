package engine

import (
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/ratsign/core"
)

// Loop drives a Simulation with two cooperative timers on one goroutine: the frame timer calls
// Tick and then onFrame, the assignment timer calls PeriodicAssign
// Both timers run on wall time; pausing freezes simulation time and skips assignment passes
type Loop struct {
	sim   *Simulation
	clock *PausableClock

	frameInterval  time.Duration
	assignInterval time.Duration

	onFrame func()

	lastElapsed time.Duration
	frameCount  atomic.Uint64

	scatterChan chan struct{}
	pauseChan   chan struct{}
	stopChan    chan struct{}
	stopOnce    sync.Once
	wg          sync.WaitGroup
	running     atomic.Bool
}

// NewLoop creates a stopped loop; onFrame runs after every Tick on the loop goroutine, may be nil
func NewLoop(sim *Simulation, clock *PausableClock, settings Settings, onFrame func()) *Loop {
	return &Loop{
		sim:            sim,
		clock:          clock,
		frameInterval:  settings.FrameInterval,
		assignInterval: settings.AssignInterval,
		onFrame:        onFrame,
		lastElapsed:    clock.Elapsed(),
		scatterChan:    make(chan struct{}, 1),
		pauseChan:      make(chan struct{}, 1),
		stopChan:       make(chan struct{}),
	}
}

// Start launches the loop goroutine, no-op if already running
func (l *Loop) Start() {
	if l.running.CompareAndSwap(false, true) {
		l.wg.Add(1)
		log.Printf("engine: loop started, frame %v, assign %v", l.frameInterval, l.assignInterval)
		core.Go(l.run)
	}
}

// Stop halts the loop and waits for the goroutine to exit, safe to call more than once
func (l *Loop) Stop() {
	l.stopOnce.Do(func() {
		if l.running.CompareAndSwap(true, false) {
			close(l.stopChan)
			l.wg.Wait()
			log.Printf("engine: loop stopped after %d frames", l.frameCount.Load())
		}
	})
}

// RequestScatter queues a scatter for the loop goroutine
// Returns false if one is already pending
func (l *Loop) RequestScatter() bool {
	select {
	case l.scatterChan <- struct{}{}:
		return true
	default:
		return false
	}
}

// RequestPauseToggle queues a pause toggle for the loop goroutine
func (l *Loop) RequestPauseToggle() {
	select {
	case l.pauseChan <- struct{}{}:
	default:
	}
}

// Frames returns the number of frames run
func (l *Loop) Frames() uint64 {
	return l.frameCount.Load()
}

func (l *Loop) run() {
	defer l.wg.Done()

	frameTicker := time.NewTicker(l.frameInterval)
	defer frameTicker.Stop()
	assignTicker := time.NewTicker(l.assignInterval)
	defer assignTicker.Stop()

	for {
		select {
		case <-l.stopChan:
			return
		case <-frameTicker.C:
			l.frame()
		case <-assignTicker.C:
			l.assign()
		case <-l.scatterChan:
			l.scatter()
		case <-l.pauseChan:
			paused := l.clock.Toggle()
			l.sim.SetPaused(paused)
			log.Printf("engine: paused=%t", paused)
		}
	}
}

// frame advances the simulation by the simulation time elapsed since the previous frame
func (l *Loop) frame() {
	elapsed := l.clock.Elapsed()
	dt := elapsed - l.lastElapsed
	l.lastElapsed = elapsed

	if !l.clock.IsPaused() {
		l.sim.Tick(elapsed.Seconds(), dt.Seconds())
	}
	l.frameCount.Add(1)

	if l.onFrame != nil {
		l.onFrame()
	}
}

func (l *Loop) assign() {
	if l.clock.IsPaused() {
		return
	}
	l.sim.PeriodicAssign()
}

func (l *Loop) scatter() {
	if l.clock.IsPaused() {
		return
	}
	l.sim.OnScatterTriggered()
}
