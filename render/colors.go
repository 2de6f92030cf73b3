package render

import (
	"github.com/gdamore/tcell/v2"
)

var (
	RgbBackground = tcell.NewRGBColor(26, 27, 38)    // Tokyo Night background
	RgbSign       = tcell.NewRGBColor(255, 255, 128) // Placed pieces, warm yellow
	RgbLoose      = tcell.NewRGBColor(200, 180, 90)  // Pieces not in their slot
	RgbCarried    = tcell.NewRGBColor(255, 220, 160) // Pieces riding on an actor
	RgbActor      = tcell.NewRGBColor(190, 190, 200) // Working actors
	RgbScared     = tcell.NewRGBColor(255, 110, 110) // Scared actors
	RgbDancing    = tcell.NewRGBColor(120, 220, 255) // Dancing actors
	RgbGround     = tcell.NewRGBColor(60, 60, 70)    // Floor line
	RgbStatusText = tcell.NewRGBColor(180, 180, 180) // Status line
	RgbHelpText   = tcell.NewRGBColor(110, 110, 120) // Key help
)

// shade darkens c toward the background as depth grows, depth 0 is unchanged and 1 is halfway
func shade(c tcell.Color, depth float64) tcell.Color {
	depth = max(0, min(depth, 1)) * 0.5
	r, g, b := c.RGB()
	br, bg, bb := RgbBackground.RGB()
	mix := func(a, z int32) int32 {
		return a + int32(float64(z-a)*depth)
	}
	return tcell.NewRGBColor(mix(r, br), mix(g, bg), mix(b, bb))
}
