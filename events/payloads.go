package events

// PiecePayload identifies a piece and the actor acting on it
type PiecePayload struct {
	PieceUID   int
	ActorIndex int
}

// ActorPayload identifies an actor
type ActorPayload struct {
	ActorIndex int
}

// ScatterPayload reports how many placed pieces a scatter knocked loose
type ScatterPayload struct {
	Knocked int
}
