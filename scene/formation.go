package scene

import (
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"
)

// DanceCircleLocation returns the ground slot of actor index on the rotating dance ellipse
func (w *World) DanceCircleLocation(index int) mgl64.Vec3 {
	if len(w.Actors) == 0 {
		return mgl64.Vec3{}
	}
	step := 360 / float64(len(w.Actors))
	rads := mgl64.DegToRad(w.DanceCircleDegs + float64(index)*step)
	return mgl64.Vec3{
		math.Cos(rads) * w.Tuning.CircleRadiusX,
		0,
		math.Sin(rads) * w.Tuning.CircleRadiusZ,
	}
}

// RandomFrontLocation returns a ground spot 1-3 units out, on the front arc between 20° and 160°
func RandomFrontLocation(rng *rand.Rand) mgl64.Vec3 {
	d := 1 + rng.Float64()*2
	a := mgl64.DegToRad(20 + 140*rng.Float64())
	return mgl64.Vec3{math.Cos(a) * d, 0, math.Sin(a) * d}
}

// restSpot picks where an actor heads after placing a piece
func (w *World) restSpot(index int) mgl64.Vec3 {
	if w.Tuning.RestAtCircle {
		return w.DanceCircleLocation(index)
	}
	return RandomFrontLocation(w.rng)
}

// AdvanceDance rotates the formation by dt seconds worth of DanceDegsPerSecond
func (w *World) AdvanceDance(dt float64) {
	w.DanceCircleDegs += dt * w.Tuning.DanceDegsPerSecond
}
