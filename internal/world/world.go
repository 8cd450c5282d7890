// World aggregate — the live-object index, spatial queries, and per-tick
// environmental stepping. Live handles are valid only between ticks; anything
// that must survive a tick boundary belongs in a persisted record, not here.
package world

import (
	"log/slog"
	"math/rand"
	"sort"
)

// World owns the terrain layer and every live object.
type World struct {
	Grid *Grid
	Seed int64

	rng     *rand.Rand
	objects map[ID]*Object

	// Tick the world was last stepped to. Source regeneration and TTL
	// decay key off it.
	Tick uint64

	// InvasionEvery spawns a hostile raider every N ticks (0 disables).
	InvasionEvery uint64
}

// Config controls initial world construction.
type Config struct {
	Gen           GenConfig
	SourceCount   int
	SiteCount     int
	InvasionEvery uint64
}

// New generates terrain and seeds the starting objects: one spawn facility,
// a controller, energy sources, and a few construction sites.
func New(cfg Config) *World {
	seed := cfg.Gen.Seed
	if seed == 0 {
		seed = rand.Int63()
	}
	cfg.Gen.Seed = seed

	w := &World{
		Grid:          GenerateGrid(cfg.Gen),
		Seed:          seed,
		rng:           rand.New(rand.NewSource(seed + 17)),
		objects:       make(map[ID]*Object),
		InvasionEvery: cfg.InvasionEvery,
	}

	center := Pos{X: w.Grid.Width / 2, Y: w.Grid.Height / 2}
	w.Insert(&Object{
		ID:        NewID(),
		Name:      "spawn-1",
		Caps:      CapFacility | CapEnergyStore,
		Category:  CategoryFacility,
		Pos:       w.nearestWalkable(center),
		Hits:      5000,
		HitsMax:   5000,
		Energy:    300,
		EnergyCap: 600,
	})
	w.Insert(&Object{
		ID:       NewID(),
		Name:     "controller",
		Caps:     CapController,
		Category: CategoryStructure,
		Pos:      w.nearestWalkable(Pos{X: center.X + 6, Y: center.Y - 4}),
		Level:    1,
	})

	for i := 0; i < cfg.SourceCount; i++ {
		w.Insert(&Object{
			ID:        NewID(),
			Caps:      CapResource,
			Category:  CategorySource,
			Pos:       w.randomWalkable(),
			Energy:    3000,
			EnergyCap: 3000,
		})
	}
	for i := 0; i < cfg.SiteCount; i++ {
		w.Insert(&Object{
			ID:            NewID(),
			Caps:          CapConstructible,
			Category:      CategorySite,
			Pos:           w.randomWalkable(),
			ProgressTotal: 300,
		})
	}

	return w
}

// NewEmpty returns a world with open terrain and no objects, for staging
// scenarios by hand.
func NewEmpty(width, height int) *World {
	return &World{
		Grid:    EmptyGrid(width, height),
		Seed:    1,
		rng:     rand.New(rand.NewSource(1)),
		objects: make(map[ID]*Object),
	}
}

// Insert adds a live object to the index.
func (w *World) Insert(o *Object) {
	w.objects[o.ID] = o
}

// Resolve returns the live object for an id, if it still exists.
func (w *World) Resolve(id ID) (*Object, bool) {
	o, ok := w.objects[id]
	return o, ok
}

// Remove deletes an object from the world. Persisted state referring to it
// is healed by the relation store's reconciliation, not here.
func (w *World) Remove(id ID) {
	delete(w.objects, id)
}

// All returns every live object in stable id order.
func (w *World) All() []*Object {
	out := make([]*Object, 0, len(w.objects))
	for _, o := range w.objects {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Select returns all live objects matching the filter, in stable id order.
func (w *World) Select(match func(*Object) bool) []*Object {
	var out []*Object
	for _, o := range w.objects {
		if match(o) {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// FindNearest returns the matching object closest to from, or nil.
// Ties break on id so results are stable across runs.
func (w *World) FindNearest(from Pos, match func(*Object) bool) *Object {
	var best *Object
	bestDist := 0
	for _, o := range w.objects {
		if !match(o) {
			continue
		}
		d := from.Dist(o.Pos)
		if best == nil || d < bestDist || (d == bestDist && o.ID < best.ID) {
			best = o
			bestDist = d
		}
	}
	return best
}

// LookAt returns the objects standing at a position.
func (w *World) LookAt(p Pos) []*Object {
	return w.Select(func(o *Object) bool { return o.Pos == p })
}

// TerrainAt returns the terrain at a position.
func (w *World) TerrainAt(p Pos) Terrain {
	return w.Grid.At(p)
}

// PositionsInRange returns all on-grid positions within Chebyshev radius of
// center, the center itself excluded.
func (w *World) PositionsInRange(center Pos, radius int) []Pos {
	var out []Pos
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			p := Pos{X: center.X + dx, Y: center.Y + dy}
			if w.Grid.In(p) {
				out = append(out, p)
			}
		}
	}
	return out
}

// OpenPositionsAround counts walkable cells adjacent to p — the number of
// creatures that can work a target at once.
func (w *World) OpenPositionsAround(p Pos) int {
	n := 0
	for _, q := range w.PositionsInRange(p, 1) {
		if w.Grid.Walkable(q) {
			n++
		}
	}
	return n
}

// SpawnCapacity returns the total energy capacity of all spawn facilities —
// the budget loadout selection works against.
func (w *World) SpawnCapacity() int {
	total := 0
	for _, o := range w.objects {
		if o.Has(CapFacility) {
			total += o.EnergyCap
		}
	}
	return total
}

// StepTick advances the environment by one tick: creature aging, death and
// energy drop, source regeneration, and periodic invasions.
func (w *World) StepTick(tick uint64) {
	w.Tick = tick

	// Snapshot before stepping: kills insert drop piles, and those must
	// not be stepped until next tick.
	for _, o := range w.All() {
		id := o.ID
		switch {
		case o.Has(CapCreature):
			o.TTL--
			if o.TTL <= 0 || o.Hits <= 0 {
				w.killCreature(id, o)
			}
		case o.Caps.Has(CapResource) && o.Category == CategorySource:
			// Sources trickle back toward capacity.
			if o.Energy < o.EnergyCap && tick%10 == 0 {
				o.Energy += 30
				if o.Energy > o.EnergyCap {
					o.Energy = o.EnergyCap
				}
			}
		case o.Category == CategoryResource:
			// Dropped energy decays.
			o.Energy--
			if o.Energy <= 0 {
				delete(w.objects, id)
			}
		}
	}

	if w.InvasionEvery > 0 && tick > 0 && tick%w.InvasionEvery == 0 {
		w.spawnRaider()
	}
}

// killCreature removes a creature and drops its carried energy in place.
func (w *World) killCreature(id ID, o *Object) {
	delete(w.objects, id)
	if o.Energy > 0 {
		w.Insert(&Object{
			ID:        NewID(),
			Caps:      CapResource,
			Category:  CategoryResource,
			Pos:       o.Pos,
			Energy:    o.Energy,
			EnergyCap: o.Energy,
		})
	}
	slog.Debug("creature removed", "name", o.Name, "tick", w.Tick)
}

// spawnRaider drops a hostile creature at a random border-adjacent cell.
func (w *World) spawnRaider() {
	body := []BodyPart{PartTough, PartTough, PartMove, PartMove, PartAttack, PartAttack}
	o := &Object{
		ID:       NewID(),
		Name:     "raider",
		Caps:     CapCreature | CapHostile,
		Category: CategoryCreature,
		Pos:      w.randomWalkable(),
		Hits:     len(body) * 100,
		HitsMax:  len(body) * 100,
		Body:     body,
		TTL:      600,
	}
	w.Insert(o)
	slog.Info("raider arrived", "pos", o.Pos, "tick", w.Tick)
}

func (w *World) randomWalkable() Pos {
	for i := 0; i < 1000; i++ {
		p := Pos{X: w.rng.Intn(w.Grid.Width), Y: w.rng.Intn(w.Grid.Height)}
		if w.Grid.Walkable(p) {
			return p
		}
	}
	return w.nearestWalkable(Pos{X: w.Grid.Width / 2, Y: w.Grid.Height / 2})
}

func (w *World) nearestWalkable(from Pos) Pos {
	if w.Grid.Walkable(from) {
		return from
	}
	for r := 1; r < w.Grid.Width; r++ {
		for _, p := range w.PositionsInRange(from, r) {
			if w.Grid.Walkable(p) {
				return p
			}
		}
	}
	return from
}
