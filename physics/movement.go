package physics

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Step moves pos along move by at most maxStep, never past the end of move
// Returns the new position and the normalized direction (zero if move is zero)
func Step(pos, move mgl64.Vec3, maxStep float64) (mgl64.Vec3, mgl64.Vec3) {
	dist := move.Len()
	if dist == 0 {
		return pos, mgl64.Vec3{}
	}
	dir := move.Mul(1 / dist)
	if dist <= maxStep {
		return pos.Add(move), dir
	}
	return pos.Add(dir.Mul(maxStep)), dir
}

// Horizontal returns v with the vertical component removed
func Horizontal(v mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v[0], 0, v[2]}
}

// Vertical returns v with only the vertical component kept
func Vertical(v mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{0, v[1], 0}
}
