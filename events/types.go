package events

// EventType represents the type of scene event
type EventType int

const (
	// EventPieceAssigned signals a scheduler pass handed a piece to an actor
	// Trigger: Scheduler.Assign | Payload: *PiecePayload
	EventPieceAssigned EventType = iota + 1

	// EventPiecePicked signals an actor reached its piece and lifted it
	// Trigger: Collect state on reach | Payload: *PiecePayload
	EventPiecePicked

	// EventPiecePlaced signals a piece snapped into its target slot
	// Trigger: World.PlacePiece from Place state | Payload: *PiecePayload
	EventPiecePlaced

	// EventPieceReleased signals a claimed piece was dropped by a scared actor
	// Trigger: Collect/Place Scare | Payload: *PiecePayload
	EventPieceReleased

	// EventActorScared signals an actor entered Scare
	// Payload: *ActorPayload
	EventActorScared

	// EventScatter signals the scatter routine knocked placed pieces loose
	// Trigger: OnScatterTriggered (input, initial timer) | Payload: *ScatterPayload
	EventScatter

	// EventDanceStarted signals the first Dance() broadcast after assembly
	// Trigger: Scheduler.Assign with everything placed | Payload: nil
	EventDanceStarted
)

var eventNames = map[EventType]string{
	EventPieceAssigned: "PieceAssigned",
	EventPiecePicked:   "PiecePicked",
	EventPiecePlaced:   "PiecePlaced",
	EventPieceReleased: "PieceReleased",
	EventActorScared:   "ActorScared",
	EventScatter:       "Scatter",
	EventDanceStarted:  "DanceStarted",
}

// String returns the event name, "Unknown" for unregistered types
func (t EventType) String() string {
	if name, ok := eventNames[t]; ok {
		return name
	}
	return "Unknown"
}

// GameEvent represents a single scene event with metadata
type GameEvent struct {
	Type    EventType
	Payload any
	Frame   int64   // Frame counter at emission
	Time    float64 // Simulation time in seconds at emission
}
