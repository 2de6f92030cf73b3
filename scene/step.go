package scene

import (
	"github.com/lixenwraith/ratsign/physics"
)

// Step advances the scene one frame: free physics for every unplaced piece, then every actor's
// state in array order, then the dance formation if everyone can dance
// Carried pieces are integrated too; the Place state overwrites their position afterwards
func (w *World) Step(time, dt float64) {
	for i := range w.Pieces {
		p := &w.Pieces[i]
		if w.IsPlaced(p.UID) {
			continue
		}
		physics.Integrate(&p.Body, dt)
	}

	for i := range w.Actors {
		w.Actors[i].OnUpdate(w, time, dt)
	}

	if w.AllCanDance() {
		w.AdvanceDance(dt)
	}
}
