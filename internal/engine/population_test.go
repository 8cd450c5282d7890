package engine

import (
	"testing"

	"colonymind/internal/relation"
	"colonymind/internal/role"
	"colonymind/internal/world"
)

func TestNextNameFillsGaps(t *testing.T) {
	cases := []struct {
		existing []string
		want     string
	}{
		{nil, "harvester-1"},
		{[]string{"harvester-1", "harvester-2", "harvester-4"}, "harvester-3"},
		{[]string{"harvester-1", "harvester-2", "harvester-3"}, "harvester-4"},
		{[]string{"harvester-2"}, "harvester-1"},
		{[]string{"builder-1", "harvester-1"}, "harvester-2"},
		{[]string{"harvester-0", "harvester-x"}, "harvester-1"}, // junk suffixes ignored
	}
	for _, tc := range cases {
		if got := NextName("harvester", tc.existing); got != tc.want {
			t.Errorf("NextName(harvester, %v) = %q, want %q", tc.existing, got, tc.want)
		}
	}
}

func TestPopulationSpawnsShortfall(t *testing.T) {
	w := world.NewEmpty(20, 20)
	store := relation.NewStore(w)

	facility := &world.Object{
		ID:        world.NewID(),
		Name:      "spawn-1",
		Caps:      world.CapFacility | world.CapEnergyStore,
		Category:  world.CategoryFacility,
		Pos:       world.Pos{X: 10, Y: 10},
		Hits:      5000,
		HitsMax:   5000,
		Energy:    1200,
		EnergyCap: 1200,
	}
	w.Insert(facility)

	src := &world.Object{
		ID:        world.NewID(),
		Caps:      world.CapResource,
		Category:  world.CategorySource,
		Pos:       world.Pos{X: 5, Y: 5},
		Energy:    3000,
		EnergyCap: 3000,
	}
	w.Insert(src)

	sim := New(w, store, role.NewRegistry(role.Harvester(2, 200)))
	sim.ReportEvery = 0

	sim.Tick(1)

	creatures := w.Select(func(o *world.Object) bool { return o.Has(world.CapCreature) })
	if len(creatures) != 1 {
		t.Fatalf("spawned %d creatures in one tick, want exactly 1", len(creatures))
	}
	spawned := creatures[0]
	if spawned.Name != "harvester-1" {
		t.Fatalf("spawned name = %q, want harvester-1", spawned.Name)
	}
	if store.RoleOf(spawned.ID) != "harvester" {
		t.Fatalf("spawned role = %q, want harvester", store.RoleOf(spawned.ID))
	}
	if world.BodyCost(spawned.Body) > 1200 {
		t.Fatalf("spawned body cost %d exceeds facility budget", world.BodyCost(spawned.Body))
	}

	sim.Tick(2)
	creatures = w.Select(func(o *world.Object) bool { return o.Has(world.CapCreature) })
	if len(creatures) != 2 {
		t.Fatalf("after second tick have %d creatures, want 2", len(creatures))
	}

	// At quota: no further spawning.
	sim.Tick(3)
	creatures = w.Select(func(o *world.Object) bool { return o.Has(world.CapCreature) })
	if len(creatures) != 2 {
		t.Fatalf("population exceeded quota: %d creatures", len(creatures))
	}
}

func TestPopulationRespectsFacilityBudget(t *testing.T) {
	w := world.NewEmpty(20, 20)
	store := relation.NewStore(w)

	// Facility exists but cannot pay for even the cheapest loadout.
	facility := &world.Object{
		ID:        world.NewID(),
		Name:      "spawn-1",
		Caps:      world.CapFacility | world.CapEnergyStore,
		Category:  world.CategoryFacility,
		Pos:       world.Pos{X: 10, Y: 10},
		Energy:    30,
		EnergyCap: 600,
	}
	w.Insert(facility)
	w.Insert(&world.Object{
		ID:        world.NewID(),
		Caps:      world.CapResource,
		Category:  world.CategorySource,
		Pos:       world.Pos{X: 5, Y: 5},
		Energy:    3000,
		EnergyCap: 3000,
	})

	sim := New(w, store, role.NewRegistry(role.Harvester(2, 200)))
	sim.ReportEvery = 0
	sim.Tick(1)

	creatures := w.Select(func(o *world.Object) bool { return o.Has(world.CapCreature) })
	if len(creatures) != 0 {
		t.Fatalf("spawned %d creatures with an unfunded facility, want 0", len(creatures))
	}
}
