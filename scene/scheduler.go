package scene

import (
	"log"
	"slices"

	"github.com/lixenwraith/ratsign/events"
	"github.com/lixenwraith/ratsign/physics"
)

// PassResult summarizes one assignment pass
type PassResult struct {
	Danced     bool
	Candidates int
	Assigned   int
}

// Candidates returns the pieces eligible for assignment: not placed, not claimed, resting on the
// ground, and either without needs or with at least one need already placed
// Ordered bottom-up by target height, equal heights shuffled
func (w *World) Candidates() []int {
	var out []int
	for i := range w.Pieces {
		p := &w.Pieces[i]
		if w.IsPlaced(p.UID) || w.IsAssigned(p.UID) || !physics.Grounded(&p.Body) {
			continue
		}
		if !w.unlocked(p) {
			continue
		}
		out = append(out, p.UID)
	}

	slices.SortStableFunc(out, func(a, b int) int {
		ya, yb := w.Piece(a).Target[1], w.Piece(b).Target[1]
		switch {
		case ya < yb:
			return -1
		case ya > yb:
			return 1
		}
		return 0
	})
	w.shuffleEqualHeights(out)
	return out
}

func (w *World) unlocked(p *Piece) bool {
	if len(p.Needs) == 0 {
		return true
	}
	for _, n := range p.Needs {
		if w.IsPlaced(n) {
			return true
		}
	}
	return false
}

// shuffleEqualHeights permutes each run of equal target heights in place
func (w *World) shuffleEqualHeights(uids []int) {
	for start := 0; start < len(uids); {
		end := start + 1
		y := w.Piece(uids[start]).Target[1]
		for end < len(uids) && w.Piece(uids[end]).Target[1] == y {
			end++
		}
		group := uids[start:end]
		w.rng.Shuffle(len(group), func(i, j int) { group[i], group[j] = group[j], group[i] })
		start = end
	}
}

// Assign runs one scheduler pass
// With everything placed and every actor able to dance, it broadcasts Dance and assigns nothing
// Otherwise it offers candidates bottom-up to actors in random order, greedily
func (w *World) Assign() PassResult {
	if w.AllPlaced() && w.AllCanDance() {
		for i := range w.Actors {
			w.Actors[i].Dance(w)
		}
		if !w.dancing && len(w.Actors) > 0 {
			w.dancing = true
			log.Printf("scene: assembled, %d actors dancing", len(w.Actors))
			w.emit(events.EventDanceStarted, nil)
		}
		return PassResult{Danced: true}
	}
	w.dancing = false

	candidates := w.Candidates()
	res := PassResult{Candidates: len(candidates)}
	if len(candidates) == 0 {
		return res
	}

	next := 0
	for _, ai := range w.rng.Perm(len(w.Actors)) {
		if w.Actors[ai].Collect(w, candidates[next]) {
			next++
			res.Assigned++
			if next >= len(candidates) {
				break
			}
		}
	}
	return res
}
