package world

import "testing"

func testCreature(pos Pos, body []BodyPart) *Object {
	return &Object{
		ID:        NewID(),
		Name:      "test-1",
		Caps:      CapCreature,
		Category:  CategoryCreature,
		Pos:       pos,
		Hits:      len(body) * 100,
		HitsMax:   len(body) * 100,
		EnergyCap: CountParts(body, PartCarry) * CarryPerPart,
		Body:      body,
		TTL:       CreatureTTL,
	}
}

func TestHarvestRangeAndBodyChecks(t *testing.T) {
	w := NewEmpty(10, 10)
	src := &Object{
		ID: NewID(), Caps: CapResource, Category: CategorySource,
		Pos: Pos{X: 5, Y: 5}, Energy: 100, EnergyCap: 100,
	}
	w.Insert(src)

	far := testCreature(Pos{X: 1, Y: 1}, []BodyPart{PartWork, PartCarry, PartMove})
	if code := w.Harvest(far, src); code != NotInRange {
		t.Fatalf("distant harvest = %v, want not_in_range", code)
	}

	noWork := testCreature(Pos{X: 5, Y: 6}, []BodyPart{PartCarry, PartMove})
	if code := w.Harvest(noWork, src); code != NoBodyPart {
		t.Fatalf("workless harvest = %v, want no_body_part", code)
	}

	ok := testCreature(Pos{X: 5, Y: 6}, []BodyPart{PartWork, PartCarry, PartMove})
	if code := w.Harvest(ok, src); code != Ok {
		t.Fatalf("adjacent harvest = %v, want ok", code)
	}
	if ok.Energy != HarvestPerWork {
		t.Fatalf("harvested %d energy, want %d", ok.Energy, HarvestPerWork)
	}
	if src.Energy != 100-HarvestPerWork {
		t.Fatalf("source kept %d energy, want %d", src.Energy, 100-HarvestPerWork)
	}
}

func TestTransferAndWithdrawRespectCapacity(t *testing.T) {
	w := NewEmpty(10, 10)
	store := &Object{
		ID: NewID(), Caps: CapEnergyStore, Category: CategoryStructure,
		Pos: Pos{X: 5, Y: 5}, Energy: 45, EnergyCap: 50,
	}
	w.Insert(store)

	c := testCreature(Pos{X: 5, Y: 4}, []BodyPart{PartCarry, PartMove})
	c.Energy = 30

	if code := w.Transfer(c, store); code != Ok {
		t.Fatalf("transfer = %v, want ok", code)
	}
	if store.Energy != 50 || c.Energy != 25 {
		t.Fatalf("after transfer store=%d creature=%d, want 50/25", store.Energy, c.Energy)
	}
	if code := w.Transfer(c, store); code != Full {
		t.Fatalf("transfer into full store = %v, want full", code)
	}

	if code := w.Withdraw(c, store); code != Ok {
		t.Fatalf("withdraw = %v, want ok", code)
	}
	if c.Energy != 50 || store.Energy != 25 {
		t.Fatalf("after withdraw creature=%d store=%d, want 50/25", c.Energy, store.Energy)
	}
	if code := w.Withdraw(c, store); code != Full {
		t.Fatalf("withdraw into full creature = %v, want full", code)
	}
}

func TestPickupConsumesThePile(t *testing.T) {
	w := NewEmpty(10, 10)
	pile := &Object{
		ID: NewID(), Caps: CapResource, Category: CategoryResource,
		Pos: Pos{X: 3, Y: 3}, Energy: 20, EnergyCap: 20,
	}
	w.Insert(pile)

	c := testCreature(Pos{X: 3, Y: 4}, []BodyPart{PartCarry, PartMove})
	if code := w.Pickup(c, pile); code != Ok {
		t.Fatalf("pickup = %v, want ok", code)
	}
	if c.Energy != 20 {
		t.Fatalf("picked up %d, want 20", c.Energy)
	}
	if _, alive := w.Resolve(pile.ID); alive {
		t.Fatal("emptied pile still resolves")
	}
}

func TestBuildCompletesSiteIntoStructure(t *testing.T) {
	w := NewEmpty(10, 10)
	site := &Object{
		ID: NewID(), Caps: CapConstructible, Category: CategorySite,
		Pos: Pos{X: 5, Y: 5}, ProgressTotal: 10,
	}
	w.Insert(site)

	c := testCreature(Pos{X: 5, Y: 6}, []BodyPart{PartWork, PartWork, PartCarry, PartMove})
	c.Energy = 50

	if code := w.Build(c, site); code != Ok {
		t.Fatalf("build = %v, want ok", code)
	}
	if site.ProgressTotal != 0 {
		t.Fatal("completed site not converted to a structure")
	}
	if !site.Has(CapEnergyStore) || site.HitsMax == 0 {
		t.Fatal("finished structure lacks store capability or integrity")
	}
	if c.Energy != 40 {
		t.Fatalf("build spent %d energy, want 10", 50-c.Energy)
	}
}

func TestRenewCapsAtMaxAndChargesFacility(t *testing.T) {
	w := NewEmpty(10, 10)
	fac := &Object{
		ID: NewID(), Caps: CapFacility | CapEnergyStore, Category: CategoryFacility,
		Pos: Pos{X: 5, Y: 5}, Energy: 100, EnergyCap: 600,
	}
	w.Insert(fac)

	c := testCreature(Pos{X: 5, Y: 6}, []BodyPart{PartWork, PartCarry, PartMove})
	c.TTL = 150

	if code := w.Renew(c, fac); code != Ok {
		t.Fatalf("renew = %v, want ok", code)
	}
	if c.TTL != 150+RenewTTL {
		t.Fatalf("TTL = %d, want %d", c.TTL, 150+RenewTTL)
	}
	if fac.Energy != 100-len(c.Body)*2 {
		t.Fatalf("facility energy = %d after renew", fac.Energy)
	}

	c.TTL = TTLMax
	if code := w.Renew(c, fac); code != Full {
		t.Fatalf("renew at ceiling = %v, want full", code)
	}

	fac.Energy = 0
	c.TTL = 100
	if code := w.Renew(c, fac); code != NotEnoughResources {
		t.Fatalf("renew at empty facility = %v, want not_enough_resources", code)
	}
}

func TestAttackKillDropsCarriedEnergy(t *testing.T) {
	w := NewEmpty(10, 10)
	victim := testCreature(Pos{X: 5, Y: 5}, []BodyPart{PartCarry, PartMove})
	victim.Hits = 20
	victim.Energy = 15
	w.Insert(victim)

	attacker := testCreature(Pos{X: 5, Y: 6}, []BodyPart{PartAttack, PartMove})
	if code := w.Attack(attacker, victim); code != Ok {
		t.Fatalf("attack = %v, want ok", code)
	}
	if _, alive := w.Resolve(victim.ID); alive {
		t.Fatal("victim survived lethal damage")
	}

	piles := w.Select(func(o *Object) bool { return o.Category == CategoryResource })
	if len(piles) != 1 || piles[0].Energy != 15 {
		t.Fatalf("dropped piles = %+v, want one pile of 15", piles)
	}
}

func TestMoveTowardSlidesAroundWalls(t *testing.T) {
	g := EmptyGrid(10, 10)
	g.cells[5*10+6] = TerrainWall // wall at (6,5)
	w := &World{Grid: g, objects: map[ID]*Object{}}

	c := testCreature(Pos{X: 5, Y: 5}, []BodyPart{PartMove})
	w.Insert(c)

	if code := w.MoveToward(c, Pos{X: 8, Y: 5}); code != Ok {
		t.Fatalf("move = %v, want ok", code)
	}
	if c.Pos == (Pos{X: 6, Y: 5}) {
		t.Fatal("creature stepped into a wall")
	}
	if c.Pos == (Pos{X: 5, Y: 5}) {
		t.Fatal("creature did not move at all")
	}

	legless := testCreature(Pos{X: 2, Y: 2}, []BodyPart{PartCarry})
	w.Insert(legless)
	if code := w.MoveToward(legless, Pos{X: 8, Y: 5}); code != NoBodyPart {
		t.Fatalf("moveless creature move = %v, want no_body_part", code)
	}
}

func TestSpawnChargesCostAndAllocatesStore(t *testing.T) {
	w := NewEmpty(10, 10)
	fac := &Object{
		ID: NewID(), Caps: CapFacility | CapEnergyStore, Category: CategoryFacility,
		Pos: Pos{X: 5, Y: 5}, Energy: 250, EnergyCap: 600,
	}
	w.Insert(fac)

	body := []BodyPart{PartWork, PartCarry, PartMove} // 200
	c, code := w.Spawn(fac, body, "harvester-1")
	if code != Ok || c == nil {
		t.Fatalf("spawn = %v, want ok", code)
	}
	if fac.Energy != 50 {
		t.Fatalf("facility energy = %d after spawn, want 50", fac.Energy)
	}
	if c.EnergyCap != CarryPerPart {
		t.Fatalf("spawned store capacity = %d, want %d", c.EnergyCap, CarryPerPart)
	}
	if c.TTL != CreatureTTL {
		t.Fatalf("spawned TTL = %d, want %d", c.TTL, CreatureTTL)
	}

	if _, code := w.Spawn(fac, body, "harvester-2"); code != NotEnoughResources {
		t.Fatalf("unaffordable spawn = %v, want not_enough_resources", code)
	}
}
