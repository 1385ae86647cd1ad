package realtime

import (
	"fmt"
	"testing"

	"github.com/comalice/hostanim"
)

func TestFleetUpdatesEveryHost(t *testing.T) {
	fleet := NewFleet(4)
	features := make([]*tickFeature, 0, 20)
	for i := 0; i < 20; i++ {
		h, f := newTestHost(t, fmt.Sprintf("host%d", i))
		if !fleet.Add(h) {
			t.Fatalf("add host%d failed", i)
		}
		features = append(features, f)
	}

	for frame := 0; frame < 3; frame++ {
		fleet.Update(16)
	}

	for i, f := range features {
		if f.updates.Load() != 3 || f.totalMs.Load() != 48 {
			t.Errorf("host%d: %d updates, %d ms", i, f.updates.Load(), f.totalMs.Load())
		}
	}
}

func TestFleetMembership(t *testing.T) {
	fleet := NewFleet(0)
	a, _ := newTestHost(t, "a")
	b, fb := newTestHost(t, "b")
	fleet.Add(a)
	fleet.Add(b)

	if fleet.Add(hostanim.NewHost("a")) {
		t.Error("duplicate ID should be refused")
	}
	if !fleet.Remove("b") || fleet.Remove("b") {
		t.Error("Remove should succeed once")
	}
	if got := fleet.IDs(); len(got) != 1 || got[0] != "a" || fleet.Len() != 1 {
		t.Errorf("IDs = %v", got)
	}
	if _, ok := fleet.Host("a"); !ok {
		t.Error("host a missing")
	}

	fleet.Update(10)
	if fb.updates.Load() != 0 {
		t.Error("removed host was updated")
	}
}
