package scene

import (
	"log"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/ratsign/events"
	"github.com/lixenwraith/ratsign/physics"
)

const (
	scatterLiftY     = 0.1
	scatterSpinRange = 3000 // deg/s, centered on zero
)

// Scatter scares every actor, then knocks every placed piece loose with a random launch
// Returns the number of pieces knocked loose
func (w *World) Scatter() int {
	for i := range w.Actors {
		w.Actors[i].Scare(w)
	}

	knocked := 0
	for i := range w.Pieces {
		p := &w.Pieces[i]
		if !w.IsPlaced(p.UID) {
			continue
		}
		delete(w.Placed, p.UID)

		r := w.rng
		physics.SetImpulse(&p.Body,
			mgl64.Vec3{
				(r.Float64() - 0.5) * 5,
				3 + r.Float64()*2.5,
				(r.Float64()-0.5)*5 - 1, // Bias towards the back
			},
			mgl64.Vec3{
				(r.Float64() - 0.5) * scatterSpinRange,
				(r.Float64() - 0.5) * scatterSpinRange,
				(r.Float64() - 0.5) * scatterSpinRange,
			},
		)
		p.Position[1] = max(p.Position[1]+scatterLiftY, 0)
		knocked++
	}

	w.dancing = false
	log.Printf("scene: scatter knocked %d pieces loose", knocked)
	w.emit(events.EventScatter, &events.ScatterPayload{Knocked: knocked})
	return knocked
}
