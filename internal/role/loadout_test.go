package role

import (
	"testing"

	"colonymind/internal/world"
)

func TestSelectBestLoadoutPicksLargestAffordable(t *testing.T) {
	candidates := []Loadout{
		{world.PartWork, world.PartCarry, world.PartMove},                                 // 200
		{world.PartWork, world.PartWork, world.PartCarry, world.PartMove},                 // 300
		{world.PartWork, world.PartWork, world.PartWork, world.PartCarry, world.PartMove}, // 400
	}

	cases := []struct {
		capacity int
		wantCost int
	}{
		{0, 200},   // nothing fits: cheapest default
		{150, 200}, // still nothing fits
		{200, 200},
		{299, 200},
		{300, 300},
		{399, 300},
		{400, 400},
		{10000, 400},
	}
	for _, tc := range cases {
		got := SelectBestLoadout(candidates, tc.capacity)
		if got.Cost() != tc.wantCost {
			t.Errorf("SelectBestLoadout(capacity=%d) cost = %d, want %d",
				tc.capacity, got.Cost(), tc.wantCost)
		}
	}
}

func TestSelectBestLoadoutMonotonic(t *testing.T) {
	for _, r := range []*Role{
		Harvester(4, 200), Courier(2, 200), Builder(2, 200),
		Upgrader(2, 200), Defender(2, 200), Medic(1, 200),
	} {
		prev := 0
		for capacity := 0; capacity <= 2000; capacity += 25 {
			cost := SelectBestLoadout(r.Bodies, capacity).Cost()
			if cost < prev {
				t.Errorf("%s: cost dropped from %d to %d at capacity %d",
					r.Name, prev, cost, capacity)
			}
			prev = cost
		}
	}
}

func TestRoleBodiesNonDecreasingCost(t *testing.T) {
	for _, r := range []*Role{
		Harvester(4, 200), Courier(2, 200), Builder(2, 200),
		Upgrader(2, 200), Defender(2, 200), Medic(1, 200),
	} {
		for i := 1; i < len(r.Bodies); i++ {
			if r.Bodies[i].Cost() < r.Bodies[i-1].Cost() {
				t.Errorf("%s: body %d costs %d, less than predecessor's %d",
					r.Name, i, r.Bodies[i].Cost(), r.Bodies[i-1].Cost())
			}
		}
	}
}
