package scene

import (
	"log"
	"math/rand/v2"

	"github.com/lixenwraith/ratsign/events"
	"github.com/lixenwraith/ratsign/physics"
)

// World is the shared registry of pieces, actors and task bookkeeping
// Pieces and actors are arena-owned: states refer to pieces by uid and resolve through the world
// Not safe for concurrent use; the frame tick and the assignment pass must never overlap
type World struct {
	Pieces []Piece
	Actors []Actor

	// Placed maps uid to pieces resting in their final slot
	Placed map[int]*Piece
	// Assigned holds uids claimed by exactly one actor's Collect or Place state
	Assigned map[int]struct{}

	// DanceCircleDegs rotates the dance formation, advanced while every actor can dance
	DanceCircleDegs float64

	// Time and Frame are stamped by the simulation driver each tick
	Time  float64
	Frame int64

	Tuning Tuning

	rng      *rand.Rand
	queue    *events.EventQueue
	byUID    map[int]int
	dancing  bool
	graphErr error
}

// NewWorld takes ownership of pieces and spawns actorCount actors in the Initial state at the origin
// A broken needs graph is logged once and kept; affected pieces simply never become candidates
func NewWorld(pieces []Piece, actorCount int, tuning Tuning, rng *rand.Rand) *World {
	w := &World{
		Pieces:   pieces,
		Actors:   make([]Actor, actorCount),
		Placed:   make(map[int]*Piece, len(pieces)),
		Assigned: make(map[int]struct{}),
		Tuning:   tuning,
		rng:      rng,
		byUID:    make(map[int]int, len(pieces)),
	}

	for i := range w.Pieces {
		w.byUID[w.Pieces[i].UID] = i
	}

	for i := range w.Actors {
		w.Actors[i] = Actor{
			Index:   i,
			FacingX: 1,
			State:   ActorState{Kind: StateInitial},
		}
		if rng.Float64() < 0.5 {
			w.Actors[i].FacingX = -1
		}
	}

	if err := ValidateGraph(pieces); err != nil {
		w.graphErr = err
		log.Printf("scene: piece graph invalid: %v", err)
	}
	if len(pieces) == 0 {
		log.Printf("scene: empty glyph layout, nothing to assemble")
	}

	return w
}

// GraphErr returns the needs-graph validation failure recorded at construction
func (w *World) GraphErr() error {
	return w.graphErr
}

// SetEventQueue routes scene events to q, nil disables emission
func (w *World) SetEventQueue(q *events.EventQueue) {
	w.queue = q
}

// Piece resolves a uid, nil if unknown
func (w *World) Piece(uid int) *Piece {
	i, ok := w.byUID[uid]
	if !ok {
		return nil
	}
	return &w.Pieces[i]
}

// IsPlaced reports whether uid rests in its slot
func (w *World) IsPlaced(uid int) bool {
	_, ok := w.Placed[uid]
	return ok
}

// IsAssigned reports whether uid is claimed by an actor
func (w *World) IsAssigned(uid int) bool {
	_, ok := w.Assigned[uid]
	return ok
}

// AllPlaced reports whether every piece is in its slot
func (w *World) AllPlaced() bool {
	return len(w.Placed) == len(w.Pieces)
}

// AllCanDance reports whether every actor is idle-like or dancing
func (w *World) AllCanDance() bool {
	for i := range w.Actors {
		if !w.Actors[i].CanDance() {
			return false
		}
	}
	return true
}

// Dancing reports whether the last assignment pass broadcast Dance
func (w *World) Dancing() bool {
	return w.dancing
}

// PlacePiece snaps a piece into its slot: position = target (+z jitter), velocities zeroed,
// inserted into Placed and removed from Assigned in one step
func (w *World) PlacePiece(uid int) {
	p := w.Piece(uid)
	if p == nil {
		return
	}
	p.Position = p.Target
	p.Position[2] += p.Jitter
	physics.Stop(&p.Body, false)

	w.Placed[uid] = p
	delete(w.Assigned, uid)
}

// Assemble places every piece and lines actors up: every third actor on a random front spot,
// the rest on their dance slot
func (w *World) Assemble() {
	for i := range w.Pieces {
		w.PlacePiece(w.Pieces[i].UID)
	}
	for i := range w.Actors {
		a := &w.Actors[i]
		if i%3 == 0 {
			a.Position = RandomFrontLocation(w.rng)
		} else {
			a.Position = w.DanceCircleLocation(i)
		}
	}
}

func (w *World) claim(uid int) {
	w.Assigned[uid] = struct{}{}
}

func (w *World) release(uid int) {
	delete(w.Assigned, uid)
}

func (w *World) emit(t events.EventType, payload any) {
	if w.queue == nil {
		return
	}
	w.queue.Push(events.GameEvent{
		Type:    t,
		Payload: payload,
		Frame:   w.Frame,
		Time:    w.Time,
	})
}
