package scene

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// Layout maps grid coordinates into world space
type Layout struct {
	CellSize float64
	OffsetX  float64
}

// DefaultLayout returns the reference sign placement
func DefaultLayout() Layout {
	return Layout{CellSize: 0.2, OffsetX: -2.7}
}

// Cell is one non-space glyph of the grid
// GY counts non-empty rows from the bottom, GX is the rune column within the source line
type Cell struct {
	GX, GY int
	Glyph  rune
}

// Grid is a glyph layout ordered bottom row first
type Grid [][]Cell

// ParseGlyphs splits glyph art into rows, reverses them so construction runs bottom-up,
// and drops rows without glyphs
func ParseGlyphs(text string) Grid {
	lines := strings.Split(text, "\n")

	var grid Grid
	for i := len(lines) - 1; i >= 0; i-- {
		var row []Cell
		for gx, ch := range []rune(strings.TrimRight(lines[i], "\r")) {
			if ch == ' ' || ch == '\t' {
				continue
			}
			row = append(row, Cell{GX: gx, GY: len(grid), Glyph: ch})
		}
		if len(row) > 0 {
			grid = append(grid, row)
		}
	}
	return grid
}

// Count returns the number of glyph cells
func (g Grid) Count() int {
	n := 0
	for _, row := range g {
		n += len(row)
	}
	return n
}

// BuildPieces creates one piece per cell with uids counting from 1 in build order
// Pieces off the ground row need every other piece within Chebyshev distance 1, across the whole grid
// Pieces start at their target position
func BuildPieces(grid Grid, layout Layout, tuning Tuning, rng *rand.Rand) []Piece {
	cells := make([]Cell, 0, grid.Count())
	for _, row := range grid {
		cells = append(cells, row...)
	}

	pieces := make([]Piece, len(cells))
	for i, c := range cells {
		pos := mgl64.Vec3{float64(c.GX)*layout.CellSize + layout.OffsetX, float64(c.GY) * layout.CellSize, 0}
		p := Piece{
			UID:    i + 1,
			Target: pos,
			Glyph:  c.Glyph,
			Tile:   rng.IntN(TileVariants),
			Jitter: rng.Float64() * tuning.JitterMax,
		}
		p.Position = pos

		if c.GY > 0 {
			for j, other := range cells {
				if j == i {
					continue
				}
				if abs(other.GX-c.GX) <= 1 && abs(other.GY-c.GY) <= 1 {
					p.Needs = append(p.Needs, j+1)
				}
			}
		}
		pieces[i] = p
	}
	return pieces
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

var (
	ErrSelfNeed         = errors.New("piece needs itself")
	ErrUnknownNeed      = errors.New("piece needs unknown uid")
	ErrNoGroundRow      = errors.New("no piece without needs")
	ErrUnreachablePiece = errors.New("piece can never become a candidate")
)

// ValidateGraph checks the needs graph can fully assemble: no self-needs, no dangling uids,
// at least one ground piece, and every piece reachable from the ground through needs
func ValidateGraph(pieces []Piece) error {
	if len(pieces) == 0 {
		return nil
	}

	known := make(map[int]bool, len(pieces))
	for i := range pieces {
		known[pieces[i].UID] = false
	}

	ground := 0
	for i := range pieces {
		p := &pieces[i]
		if len(p.Needs) == 0 {
			ground++
			known[p.UID] = true
			continue
		}
		for _, n := range p.Needs {
			if n == p.UID {
				return fmt.Errorf("%w: uid %d", ErrSelfNeed, p.UID)
			}
			if _, ok := known[n]; !ok {
				return fmt.Errorf("%w: uid %d needs %d", ErrUnknownNeed, p.UID, n)
			}
		}
	}
	if ground == 0 {
		return ErrNoGroundRow
	}

	// Fixpoint: a piece is reachable once any of its needs is
	for changed := true; changed; {
		changed = false
		for i := range pieces {
			p := &pieces[i]
			if known[p.UID] {
				continue
			}
			for _, n := range p.Needs {
				if known[n] {
					known[p.UID] = true
					changed = true
					break
				}
			}
		}
	}

	for i := range pieces {
		if !known[pieces[i].UID] {
			return fmt.Errorf("%w: uid %d", ErrUnreachablePiece, pieces[i].UID)
		}
	}
	return nil
}
