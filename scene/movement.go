package scene

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/ratsign/physics"
)

// MoveResult reports the outcome of one movement step
type MoveResult int

const (
	Moving MoveResult = iota
	Reached
)

func (r MoveResult) String() string {
	if r == Reached {
		return "reached"
	}
	return "moving"
}

// MoveTowards steps the actor toward to by at most Speed*dt
// Elevated targets are only reachable from their ground-level base: the actor climbs down first
// whenever the target is lower, climbs up once under the target's column, and otherwise walks
// on the horizontal plane
func (a *Actor) MoveTowards(to mgl64.Vec3, dt float64, tuning Tuning) MoveResult {
	from := a.Position
	delta := to.Sub(from)
	deltaXZ := physics.Horizontal(delta)
	thresholdSq := tuning.ReachThreshold * tuning.ReachThreshold

	var move mgl64.Vec3
	switch {
	case delta.LenSqr() < thresholdSq:
		return Reached
	case to[1] < from[1]:
		// Climb down before going anywhere
		move = physics.Vertical(delta)
	case deltaXZ.LenSqr() < thresholdSq:
		// At the base, climb up
		move = physics.Vertical(delta)
	default:
		move = deltaXZ
	}

	var dir mgl64.Vec3
	a.Position, dir = physics.Step(a.Position, move, tuning.Speed*dt)

	if dir[0] < 0 {
		a.FacingX = -1
	} else if dir[0] > 0 {
		a.FacingX = 1
	}

	return Moving
}
