package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	actorSpriteScale = 0.33
	danceHopHeight   = 0.1
	wiggleDegrees    = 10
	wiggleStretch    = 0.25
)

// Actor is an autonomous character that carries pieces to their slots
// Position is only mutated through MoveTowards and the state routines
type Actor struct {
	Index    int
	Position mgl64.Vec3
	State    ActorState

	// Presentation, written by states and read by the renderer
	FacingX float64
	Wiggle  float64
}

// Frame returns the sprite animation frame for the current state
// Frames 0-3 are the walk cycle, 2 doubles as the standing pose, 4 is dancing, 5 is scared
func (a *Actor) Frame(time float64) int {
	switch a.State.Kind {
	case StateInitial:
		return 2
	case StateDance:
		return 4
	case StateScare:
		return 5
	default:
		return int(math.Floor(math.Mod(time*4, 1) * 4))
	}
}

// Transform returns the sprite world matrix
// billboard orients the quad toward the camera, pass Ident4 for a flat projection
func (a *Actor) Transform(billboard mgl64.Mat4) mgl64.Mat4 {
	t := 1 - math.Abs(a.Wiggle)
	h := t * wiggleStretch

	xf := mgl64.Translate3D(a.Position[0], a.Position[1], a.Position[2])
	if a.CanDance() {
		xf = xf.Mul4(mgl64.Translate3D(0, t*danceHopHeight, 0))
	}
	xf = xf.Mul4(billboard).
		Mul4(mgl64.HomogRotate3DZ(mgl64.DegToRad(a.Wiggle * wiggleDegrees))).
		Mul4(mgl64.Scale3D(1-h/2, 1+h, 1)).
		Mul4(mgl64.Scale3D(actorSpriteScale, actorSpriteScale, actorSpriteScale))

	flip := a.FacingX < 0
	if a.Wiggle < 0 {
		flip = !flip
	}
	if flip {
		xf = xf.Mul4(mgl64.Scale3D(-1, 1, 1))
	}
	return xf
}

// HeldPiece returns the uid of the piece claimed by the current state
func (a *Actor) HeldPiece() (int, bool) {
	switch a.State.Kind {
	case StateCollect, StatePlace:
		return a.State.PieceUID, true
	}
	return 0, false
}
