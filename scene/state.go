package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/ratsign/events"
	"github.com/lixenwraith/ratsign/physics"
)

// StateKind enumerates actor behaviors
type StateKind int

const (
	// StateInitial is idle-like but refuses to dance until the actor settles once
	StateInitial StateKind = iota
	StateIdle
	StateCollect
	StatePlace
	StateClimbDown
	StateDance
	StateScare
)

func (k StateKind) String() string {
	switch k {
	case StateInitial:
		return "Initial"
	case StateIdle:
		return "Idle"
	case StateCollect:
		return "Collect"
	case StatePlace:
		return "Place"
	case StateClimbDown:
		return "ClimbDown"
	case StateDance:
		return "Dance"
	case StateScare:
		return "Scare"
	default:
		return "Unknown"
	}
}

// ActorState is the live behavior of an actor; only the fields of Kind are meaningful
type ActorState struct {
	Kind StateKind

	// Collect, Place
	PieceUID int

	// ClimbDown
	Target mgl64.Vec3

	// Scare
	Start   mgl64.Vec3
	TTL     float64
	Elapsed float64
}

// changeState runs the exit hook of the current state and installs next
func (a *Actor) changeState(next ActorState) {
	a.onExit()
	a.State = next
}

func (a *Actor) onExit() {
	if a.State.Kind == StateDance {
		a.Wiggle = 0
	}
}

// Collect offers a piece to the actor, returns true if the task was accepted
// Idle, Initial and Dance always accept; ClimbDown accepts once low enough; busy states refuse
// A piece that is claimed, placed or still locked by its needs is refused by everyone
func (a *Actor) Collect(w *World, uid int) bool {
	p := w.Piece(uid)
	if p == nil || w.IsAssigned(uid) || w.IsPlaced(uid) || !w.unlocked(p) {
		return false
	}

	switch a.State.Kind {
	case StateInitial, StateIdle, StateDance:
	case StateClimbDown:
		// Finish getting down first so the actor does not appear to fly to the next piece
		if a.Position[1]-a.State.Target[1] > w.Tuning.ClimbDownCollectHeight {
			return false
		}
	default:
		return false
	}

	a.changeState(ActorState{Kind: StateCollect, PieceUID: uid})
	w.claim(uid)
	w.emit(events.EventPieceAssigned, &events.PiecePayload{PieceUID: uid, ActorIndex: a.Index})
	return true
}

// Dance starts the celebration from Idle; idempotent while dancing, ignored elsewhere
func (a *Actor) Dance(w *World) {
	if a.State.Kind == StateIdle {
		a.changeState(ActorState{Kind: StateDance})
	}
}

// CanDance reports whether the actor is idle or already dancing
func (a *Actor) CanDance() bool {
	switch a.State.Kind {
	case StateIdle, StateDance:
		return true
	}
	return false
}

// Scare interrupts any state: a claimed piece is released first, then the actor jumps
// A repeated scare restarts the jump from the original start position
func (a *Actor) Scare(w *World) {
	start := a.Position
	switch a.State.Kind {
	case StateCollect, StatePlace:
		w.release(a.State.PieceUID)
		w.emit(events.EventPieceReleased, &events.PiecePayload{PieceUID: a.State.PieceUID, ActorIndex: a.Index})
	case StateScare:
		start = a.State.Start
	}

	a.changeState(ActorState{
		Kind:  StateScare,
		Start: start,
		// Varied durations so the crowd jumps slightly out of sync
		TTL: w.Tuning.ScareTTLBase * (1 + w.rng.Float64()*0.75),
	})
	w.emit(events.EventActorScared, &events.ActorPayload{ActorIndex: a.Index})
}

// OnUpdate advances the current state by one frame
func (a *Actor) OnUpdate(w *World, time, dt float64) {
	switch a.State.Kind {
	case StateInitial, StateIdle:

	case StateCollect:
		p := w.Piece(a.State.PieceUID)
		if a.MoveTowards(p.Position, dt, w.Tuning) == Reached {
			physics.Stop(&p.Body, true)
			p.Position = a.Position.Add(mgl64.Vec3{0, w.Tuning.CarryHeight, 0})
			a.changeState(ActorState{Kind: StatePlace, PieceUID: p.UID})
			w.emit(events.EventPiecePicked, &events.PiecePayload{PieceUID: p.UID, ActorIndex: a.Index})
		}

	case StatePlace:
		p := w.Piece(a.State.PieceUID)
		res := a.MoveTowards(p.Target, dt, w.Tuning)
		// Ride over the actor's head
		p.Position = a.Position.Add(mgl64.Vec3{0, w.Tuning.CarryHeight, 0})
		if res == Reached {
			w.PlacePiece(p.UID)
			a.changeState(ActorState{Kind: StateClimbDown, Target: w.restSpot(a.Index)})
			w.emit(events.EventPiecePlaced, &events.PiecePayload{PieceUID: p.UID, ActorIndex: a.Index})
		}

	case StateClimbDown:
		if a.MoveTowards(a.State.Target, dt, w.Tuning) == Reached {
			a.changeState(ActorState{Kind: StateIdle})
		}

	case StateDance:
		a.Wiggle = math.Sin(time * 10)
		a.MoveTowards(w.DanceCircleLocation(a.Index), dt, w.Tuning)

	case StateScare:
		s := &a.State
		tNorm := math.Min(s.Elapsed/s.TTL, 1)
		if tNorm >= 1 {
			a.Position = s.Start
			a.changeState(ActorState{Kind: StateClimbDown, Target: mgl64.Vec3{s.Start[0], 0, s.Start[2]}})
			return
		}
		// Jolt up fast, fall back slower
		h := 1 - (tNorm-0.2)/0.8
		if tNorm < 0.2 {
			h = tNorm / 0.2
		}
		a.Position = s.Start.Add(mgl64.Vec3{0, h * w.Tuning.ScareJumpHeight, 0})
		s.Elapsed += dt
	}
}
