package audio

import (
	"github.com/lixenwraith/ratsign/events"
	"github.com/lixenwraith/ratsign/scene"
)

// Player is the cue surface the event handler drives
type Player interface {
	PlaySqueak()
	PlayPop()
	PlayJingle()
}

// CueHandler maps scene events to sound cues
type CueHandler struct {
	player Player
}

// NewCueHandler routes cues to player
func NewCueHandler(player Player) *CueHandler {
	return &CueHandler{player: player}
}

func (h *CueHandler) EventTypes() []events.EventType {
	return []events.EventType{
		events.EventScatter,
		events.EventPiecePlaced,
		events.EventDanceStarted,
	}
}

func (h *CueHandler) HandleEvent(_ *scene.World, ev events.GameEvent) {
	switch ev.Type {
	case events.EventScatter:
		h.player.PlaySqueak()
	case events.EventPiecePlaced:
		h.player.PlayPop()
	case events.EventDanceStarted:
		h.player.PlayJingle()
	}
}
