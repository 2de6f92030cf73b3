package physics

import (
	"github.com/go-gl/mathgl/mgl64"
)

// GravityY is the downward acceleration applied to free bodies, in world units/s²
const GravityY = -9.8

// Gravity is the fixed gravity vector
var Gravity = mgl64.Vec3{0, GravityY, 0}

// Body is the simulated state of a free-falling object
// Orientation and AngularVelocity are Euler angles in degrees and degrees/s
type Body struct {
	Position        mgl64.Vec3
	Velocity        mgl64.Vec3
	Orientation     mgl64.Vec3
	AngularVelocity mgl64.Vec3
}

// Integrate advances a body by dt with symplectic Euler: v += g*dt; p += v*dt; θ += ω*dt
// Ground contact (y <= 0) clamps y to 0 and zeroes linear and angular velocity, orientation is kept
// Returns true if the body is resting on the ground after the step
func Integrate(b *Body, dt float64) bool {
	b.Velocity = b.Velocity.Add(Gravity.Mul(dt))
	b.Position = b.Position.Add(b.Velocity.Mul(dt))
	b.Orientation = b.Orientation.Add(b.AngularVelocity.Mul(dt))

	if b.Position[1] <= 0 {
		b.Position[1] = 0
		b.Velocity = mgl64.Vec3{}
		b.AngularVelocity = mgl64.Vec3{}
		return true
	}
	return false
}

// SetImpulse overrides linear and angular velocity (hard launch)
func SetImpulse(b *Body, v, spin mgl64.Vec3) {
	b.Velocity = v
	b.AngularVelocity = spin
}

// Stop zeroes linear and angular velocity, optionally resetting orientation
func Stop(b *Body, resetOrientation bool) {
	b.Velocity = mgl64.Vec3{}
	b.AngularVelocity = mgl64.Vec3{}
	if resetOrientation {
		b.Orientation = mgl64.Vec3{}
	}
}

// Grounded reports whether the body rests exactly on the ground plane
func Grounded(b *Body) bool {
	return b.Position[1] == 0
}
