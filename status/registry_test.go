package status

import (
	"sync"
	"testing"
)

func TestMetricMap_GetCachesPointer(t *testing.T) {
	m := NewMetricMap[AtomicFloat]()

	a := m.Get("x")
	a.Set(1.5)
	b := m.Get("x")

	if a != b {
		t.Fatal("Get returned a different pointer for the same key")
	}
	if b.Get() != 1.5 {
		t.Errorf("Get() = %v, want 1.5", b.Get())
	}
	if !m.Has("x") || m.Has("y") {
		t.Error("Has mismatch")
	}
}

func TestMetricMap_ConcurrentGet(t *testing.T) {
	m := NewMetricMap[AtomicFloat]()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				m.Get("shared").Add(1)
			}
		}()
	}
	wg.Wait()

	if got := m.Get("shared").Get(); got != 1600 {
		t.Errorf("sum = %v, want 1600", got)
	}
	if m.Count() != 1 {
		t.Errorf("Count() = %d, want 1", m.Count())
	}
}

func TestAtomicString_Truncates(t *testing.T) {
	var s AtomicString
	if s.Load() != "" {
		t.Error("zero value should read empty")
	}
	s.Store("assembling-the-whole-logo")
	if got := s.Load(); len(got) != MaxStringLen {
		t.Errorf("len = %d, want %d", len(got), MaxStringLen)
	}
}

func TestRegistry_Snapshot(t *testing.T) {
	r := NewRegistry()
	r.Ints.Get(KeyPlaced).Store(3)
	r.Ints.Get(KeyPieces).Store(5)
	r.Floats.Get(KeyDanceDegs).Set(12.34)
	r.Bools.Get(KeyDancing).Store(true)
	r.Strings.Get(KeyPhase).Store("dance")

	want := []Entry{
		{KeyPhase, "dance"},
		{KeyPieces, "5"},
		{KeyPlaced, "3"},
		{KeyDanceDegs, "12.3"},
		{KeyDancing, "true"},
	}
	got := r.Snapshot()
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d = %v, want %v", i, got[i], want[i])
		}
	}
	if r.TotalCount() != 5 {
		t.Errorf("TotalCount() = %d", r.TotalCount())
	}
}
