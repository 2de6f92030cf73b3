package render

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/ratsign/physics"
	"github.com/lixenwraith/ratsign/scene"
	"github.com/lixenwraith/ratsign/status"
)

const (
	// Terminal cells per world unit; one layout cell of 0.2 maps to one column and one row
	cellsPerUnitX = 5
	cellsPerUnitY = 5
	// Rows per world unit of depth, +z (toward the viewer) moves down the screen
	rowsPerUnitZ = 2
	// Depth range used for shading, front spots to the back of the dance ellipse
	shadeNearZ = 3.0
	shadeFarZ  = -1.5

	helpText = "click/space: scatter  p: pause  q: quit"
)

// TerminalRenderer draws the scene with an orthographic front view onto a tcell screen
type TerminalRenderer struct {
	screen     tcell.Screen
	registry   *status.Registry
	monochrome bool

	width   int
	height  int
	centerX int
	ground  int
}

// NewTerminalRenderer creates a renderer, registry may be nil to hide the status line
func NewTerminalRenderer(screen tcell.Screen, registry *status.Registry, monochrome bool) *TerminalRenderer {
	r := &TerminalRenderer{
		screen:     screen,
		registry:   registry,
		monochrome: monochrome,
	}
	r.resize()
	return r
}

func (r *TerminalRenderer) resize() {
	r.width, r.height = r.screen.Size()
	r.centerX = r.width / 2
	// Leave room below the ground for actors standing in front of the sign
	r.ground = r.height * 3 / 5
}

// Project maps a world position to a screen cell
func (r *TerminalRenderer) Project(p mgl64.Vec3) (int, int) {
	x := r.centerX + int(math.Round(p[0]*cellsPerUnitX))
	y := r.ground - int(math.Round(p[1]*cellsPerUnitY)) + int(math.Round(p[2]*rowsPerUnitZ))
	return x, y
}

type drawable struct {
	z     float64
	actor bool
	draw  func()
}

// RenderFrame draws the whole world and shows the screen
// The caller must hold exclusive access to w for the duration of the call
func (r *TerminalRenderer) RenderFrame(w *scene.World) {
	r.resize()
	base := r.style(tcell.StyleDefault, RgbBackground, true)
	r.screen.Fill(' ', base)

	r.drawGround(base)

	items := make([]drawable, 0, len(w.Pieces)+len(w.Actors))
	for i := range w.Pieces {
		p := &w.Pieces[i]
		items = append(items, drawable{z: p.Position[2], draw: func() { r.drawPiece(w, p, base) }})
	}
	for i := range w.Actors {
		a := &w.Actors[i]
		items = append(items, drawable{z: a.Position[2], actor: true, draw: func() { r.drawActor(w, a, base) }})
	}

	// Painter's order: far first, pieces under actors at equal depth
	slices.SortStableFunc(items, func(a, b drawable) int {
		switch {
		case a.z < b.z:
			return -1
		case a.z > b.z:
			return 1
		case !a.actor && b.actor:
			return -1
		case a.actor && !b.actor:
			return 1
		}
		return 0
	})
	for _, it := range items {
		it.draw()
	}

	r.drawText(0, 0, helpText, r.style(base, RgbHelpText, false))
	r.drawStatusLine(base)
	r.screen.Show()
}

func (r *TerminalRenderer) drawGround(base tcell.Style) {
	style := r.style(base, RgbGround, false)
	for x := 0; x < r.width; x++ {
		r.setCell(x, r.ground+1, '.', style)
	}
}

func (r *TerminalRenderer) drawPiece(w *scene.World, p *scene.Piece, base tcell.Style) {
	x, y := r.Project(p.Position)

	placed := w.IsPlaced(p.UID)
	color := RgbLoose
	switch {
	case placed:
		color = RgbSign
	case w.IsAssigned(p.UID) && !physics.Grounded(&p.Body):
		color = RgbCarried
	}

	ch := p.Glyph
	if !p.Upright() {
		ch = tumbleRunes[p.Tile%len(tumbleRunes)]
	}
	r.setCell(x, y, ch, r.style(base, shade(color, depthOf(p.Position[2])), false).Bold(placed))
}

func (r *TerminalRenderer) drawActor(w *scene.World, a *scene.Actor, base tcell.Style) {
	xf := a.Transform(mgl64.Ident4())
	origin := xf.Mul4x1(mgl64.Vec4{0, 0, 0, 1}).Vec3()
	x, y := r.Project(origin)

	color := RgbActor
	switch a.State.Kind {
	case scene.StateScare:
		color = RgbScared
	case scene.StateDance:
		color = RgbDancing
	}
	style := r.style(base, shade(color, depthOf(a.Position[2])), false)

	// A negative determinant means the sprite is mirrored; the head cell sits on the actor
	flipped := xf.Det() < 0
	sprite := spriteFor(a.Frame(w.Time), flipped)
	if flipped {
		r.setCell(x, y, sprite[0], style)
		r.setCell(x+1, y, sprite[1], style)
	} else {
		r.setCell(x-1, y, sprite[0], style)
		r.setCell(x, y, sprite[1], style)
	}
}

func (r *TerminalRenderer) drawStatusLine(base tcell.Style) {
	if r.registry == nil {
		return
	}
	parts := make([]string, 0, r.registry.TotalCount())
	for _, e := range r.registry.Snapshot() {
		parts = append(parts, fmt.Sprintf("%s=%s", e.Key, e.Value))
	}
	r.drawText(0, r.height-1, strings.Join(parts, "  "), r.style(base, RgbStatusText, false))
}

func (r *TerminalRenderer) drawText(x, y int, text string, style tcell.Style) {
	for i, ch := range []rune(text) {
		if x+i >= r.width {
			return
		}
		r.setCell(x+i, y, ch, style)
	}
}

func (r *TerminalRenderer) setCell(x, y int, ch rune, style tcell.Style) {
	if x < 0 || y < 0 || x >= r.width || y >= r.height {
		return
	}
	r.screen.SetContent(x, y, ch, nil, style)
}

// style applies c as foreground, or background when bg is set; monochrome keeps the base style
func (r *TerminalRenderer) style(base tcell.Style, c tcell.Color, bg bool) tcell.Style {
	if r.monochrome {
		return base
	}
	if bg {
		return base.Background(c)
	}
	return base.Foreground(c)
}

// depthOf maps z to 0 at the nearest spot and 1 at the back of the formation
func depthOf(z float64) float64 {
	return (shadeNearZ - z) / (shadeNearZ - shadeFarZ)
}
