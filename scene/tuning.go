package scene

// Tuning holds the scene constants that shape actor movement and formations
type Tuning struct {
	// Speed is the actor walk/climb speed in world units per second
	Speed float64
	// ReachThreshold is the distance under which a movement target counts as reached
	ReachThreshold float64
	// ClimbDownCollectHeight is how far above its landing spot a climbing actor may be and still accept work
	ClimbDownCollectHeight float64
	// CarryHeight lifts a carried piece over the actor's head
	CarryHeight float64
	// RestAtCircle sends actors to their dance slot after placing, otherwise to a random front spot
	RestAtCircle bool

	ScareTTLBase    float64 // seconds
	ScareJumpHeight float64

	CircleRadiusX      float64
	CircleRadiusZ      float64
	DanceDegsPerSecond float64

	// JitterMax bounds the per-piece z offset applied on placement to keep coplanar pieces from z-fighting
	JitterMax float64
}

// DefaultTuning returns the reference scene constants
func DefaultTuning() Tuning {
	return Tuning{
		Speed:                  9,
		ReachThreshold:         0.01,
		ClimbDownCollectHeight: 0.25,
		CarryHeight:            0.2,
		RestAtCircle:           true,
		ScareTTLBase:           0.15,
		ScareJumpHeight:        0.5,
		CircleRadiusX:          3.25,
		CircleRadiusZ:          1.05,
		DanceDegsPerSecond:     10,
		JitterMax:              0.002,
	}
}
