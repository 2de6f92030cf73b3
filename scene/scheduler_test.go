package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/ratsign/events"
)

// assignEvery matches the driver cadence: one pass per 100ms at 60 fps
const assignEvery = 6

// runScene steps w at 60 fps with periodic assignment until done returns true or maxFrames elapse
// check runs after every frame
func runScene(w *World, maxFrames int, done func() bool, check func(frame int)) int {
	for f := 0; f < maxFrames; f++ {
		if f%assignEvery == 0 {
			w.Assign()
		}
		w.Frame = int64(f)
		w.Time = float64(f) * frameDT
		w.Step(w.Time, frameDT)
		if check != nil {
			check(f)
		}
		if done() {
			return f
		}
	}
	return maxFrames
}

// assertSingleClaimant verifies every claimed uid is held by exactly one actor and vice versa
func assertSingleClaimant(t *testing.T, w *World) {
	t.Helper()
	held := map[int]int{}
	for i := range w.Actors {
		if uid, ok := w.Actors[i].HeldPiece(); ok {
			held[uid]++
		}
	}
	for uid, n := range held {
		if n > 1 {
			t.Fatalf("piece %d held by %d actors", uid, n)
		}
		if !w.IsAssigned(uid) {
			t.Fatalf("piece %d held but not in Assigned", uid)
		}
		if w.IsPlaced(uid) {
			t.Fatalf("piece %d held and placed", uid)
		}
	}
	for uid := range w.Assigned {
		if held[uid] != 1 {
			t.Fatalf("piece %d in Assigned without a holder", uid)
		}
	}
}

func TestCandidates_BottomUpAndGated(t *testing.T) {
	pieces := groundPieces(5)
	pieces[3].Target[1] = 0.2
	pieces[3].Needs = []int{1}
	pieces[4].Target[1] = 0.2
	w := NewWorld(pieces, 1, DefaultTuning(), testRand())

	got := w.Candidates()
	assert.ElementsMatch(t, []int{1, 2, 3, 5}, got, "uid 4 locked until 1 is placed")
	assert.Equal(t, 5, got[len(got)-1], "higher target after ground row")

	w.PlacePiece(1)
	w.Assigned[2] = struct{}{}
	got = w.Candidates()
	assert.ElementsMatch(t, []int{3, 4, 5}, got)
	assert.Equal(t, 3, got[0])

	// Airborne pieces are not eligible
	w.Piece(3).Position[1] = 0.5
	assert.NotContains(t, w.Candidates(), 3)
}

func TestAssign_GreedyOnePerActor(t *testing.T) {
	w := NewWorld(groundPieces(3), 5, DefaultTuning(), testRand())

	res := w.Assign()

	assert.False(t, res.Danced)
	assert.Equal(t, 3, res.Candidates)
	assert.Equal(t, 3, res.Assigned)
	assert.Len(t, w.Assigned, 3)
	assertSingleClaimant(t, w)

	// Nothing left to hand out
	res = w.Assign()
	assert.Equal(t, 0, res.Assigned)
}

func TestAssign_InitialActorsNeverDance(t *testing.T) {
	w := NewWorld(nil, 3, DefaultTuning(), testRand())

	res := w.Assign()

	assert.False(t, res.Danced)
	assert.False(t, w.Dancing())
	for i := range w.Actors {
		assert.Equal(t, StateInitial, w.Actors[i].State.Kind)
	}
}

func TestAssign_DanceBroadcastOnce(t *testing.T) {
	w := NewWorld(groundPieces(2), 2, DefaultTuning(), testRand())
	q := events.NewEventQueue()
	w.SetEventQueue(q)
	w.Assemble()
	for i := range w.Actors {
		w.Actors[i].State.Kind = StateIdle
	}

	res := w.Assign()
	require.True(t, res.Danced)
	assert.True(t, w.Dancing())
	for i := range w.Actors {
		assert.Equal(t, StateDance, w.Actors[i].State.Kind)
	}

	w.Assign()
	started := 0
	for _, ev := range q.Consume() {
		if ev.Type == events.EventDanceStarted {
			started++
		}
	}
	assert.Equal(t, 1, started)
}

func TestDependencyGating(t *testing.T) {
	pieces := groundPieces(5)
	pieces[4].Target = mgl64.Vec3{0.25, 0.2, 0}
	pieces[4].Needs = []int{1, 2}
	w := NewWorld(pieces, 3, DefaultTuning(), testRand())

	f := 0
	for ; f < 3600 && !w.AllPlaced(); f++ {
		if f%assignEvery == 0 {
			w.Assign()
		}
		// Placement only happens inside Step, so this sees the state the claim was made under
		if w.IsAssigned(5) || w.IsPlaced(5) {
			require.True(t, w.IsPlaced(1) || w.IsPlaced(2), "uid 5 claimed before any need placed, frame %d", f)
		}
		w.Step(float64(f)*frameDT, frameDT)
	}
	assert.Less(t, f, 3600)
}

func TestEndToEnd_SingleActorAssembles(t *testing.T) {
	pieces := BuildPieces(ParseGlyphs("abc"), DefaultLayout(), DefaultTuning(), testRand())
	w := NewWorld(pieces, 1, DefaultTuning(), testRand())

	frames := runScene(w, 3600, w.AllPlaced, func(int) { assertSingleClaimant(t, w) })
	require.Less(t, frames, 3600)
	assert.Empty(t, w.Assigned)

	// Let the actor walk home and the next pass start the dance
	runScene(w, 600, func() bool { return w.Dancing() }, nil)
	kind := w.Actors[0].State.Kind
	assert.True(t, kind == StateIdle || kind == StateDance, "got %s", kind)
	assert.True(t, w.Dancing())
	assert.True(t, w.AllPlaced())
}

func TestBottomUpOrder(t *testing.T) {
	logo := "xxxxxxxx\nxxxxxxxx\nxxxxxxxx"
	pieces := BuildPieces(ParseGlyphs(logo), DefaultLayout(), DefaultTuning(), testRand())
	w := NewWorld(pieces, 4, DefaultTuning(), testRand())

	placedAt := map[int]int{}
	frames := runScene(w, 60*120, w.AllPlaced, func(f int) {
		assertSingleClaimant(t, w)
		for uid := range w.Placed {
			if _, ok := placedAt[uid]; !ok {
				placedAt[uid] = f
			}
		}
	})
	require.Less(t, frames, 60*120)

	var sum [3]float64
	var count [3]int
	for uid, f := range placedAt {
		row := int(w.Piece(uid).Target[1]/DefaultLayout().CellSize + 0.5)
		sum[row] += float64(f)
		count[row]++
	}
	for row := range count {
		require.Equal(t, 8, count[row])
	}
	mean0, mean1, mean2 := sum[0]/8, sum[1]/8, sum[2]/8
	assert.Less(t, mean0, mean1)
	assert.Less(t, mean1, mean2)
}

func TestScatterAndReassemble(t *testing.T) {
	pieces := BuildPieces(ParseGlyphs("ab\ncde"), DefaultLayout(), DefaultTuning(), testRand())
	w := NewWorld(pieces, 4, DefaultTuning(), testRand())
	w.Assemble()
	require.True(t, w.AllPlaced())

	knocked := w.Scatter()

	assert.Equal(t, 5, knocked)
	assert.Empty(t, w.Placed)
	assert.False(t, w.Dancing())
	for i := range w.Actors {
		assert.Equal(t, StateScare, w.Actors[i].State.Kind)
	}
	for i := range w.Pieces {
		p := &w.Pieces[i]
		assert.Greater(t, p.Velocity[1], 0.0, "launched upward")
		assert.Greater(t, p.Position[1], 0.0)
	}

	frames := runScene(w, 60*120, w.AllPlaced, func(int) { assertSingleClaimant(t, w) })
	require.Less(t, frames, 60*120)

	for i := range w.Pieces {
		p := &w.Pieces[i]
		want := p.Target.Add(mgl64.Vec3{0, 0, p.Jitter})
		assert.True(t, p.Position.ApproxEqual(want), "piece %d at %v", p.UID, p.Position)
	}

	// Scatter twice in a row is safe: nothing placed the second time
	w.Scatter()
	assert.Equal(t, 0, w.Scatter())
}

func TestAdvanceDance_OnlyWhenAllCanDance(t *testing.T) {
	w := NewWorld(nil, 2, DefaultTuning(), testRand())
	w.Step(0, 1)
	assert.Equal(t, 0.0, w.DanceCircleDegs, "initial actors hold the formation")

	for i := range w.Actors {
		w.Actors[i].State.Kind = StateIdle
	}
	w.Step(0, 1)
	assert.InDelta(t, w.Tuning.DanceDegsPerSecond, w.DanceCircleDegs, 1e-12)

	slot := w.DanceCircleLocation(1)
	assert.InDelta(t, 0, slot[1], 1e-12)
	assert.InDelta(t, 1, (slot[0]*slot[0])/(3.25*3.25)+(slot[2]*slot[2])/(1.05*1.05), 1e-9)
}
