package scene

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/ratsign/physics"
)

// PieceScale is the uniform model scale of a piece
const PieceScale = 0.1

// TileVariants is the number of texture tiles a piece can pick from
const TileVariants = 4

// Piece is one logo fragment with a fixed target slot
// Physical state lives in the embedded Body and is only simulated while the piece is not placed
type Piece struct {
	UID int
	physics.Body

	// Target is the immutable slot in the assembled logo
	Target mgl64.Vec3
	// Needs lists the uids whose placement unlocks this piece, empty on the ground row
	Needs []int

	// Glyph selects the mesh variant, Tile the texture tile; both are renderer hints
	Glyph rune
	Tile  int

	// Jitter is the z offset applied on placement
	Jitter float64
}

// Transform returns the model matrix: translate · rotX · rotY · rotZ · scale
func (p *Piece) Transform() mgl64.Mat4 {
	o := p.Orientation
	return mgl64.Translate3D(p.Position[0], p.Position[1], p.Position[2]).
		Mul4(mgl64.HomogRotate3DX(mgl64.DegToRad(o[0]))).
		Mul4(mgl64.HomogRotate3DY(mgl64.DegToRad(o[1]))).
		Mul4(mgl64.HomogRotate3DZ(mgl64.DegToRad(o[2]))).
		Mul4(mgl64.Scale3D(PieceScale, PieceScale, PieceScale))
}

// Upright reports whether the piece's local up axis still points mostly up
func (p *Piece) Upright() bool {
	up := p.Transform().Mul4x1(mgl64.Vec4{0, 1, 0, 0}).Vec3()
	if up.Len() == 0 {
		return true
	}
	return up.Normalize()[1] > 0.7
}
