// Package role supplies the per-agent-class decision policies: which
// loadout to spawn with, which task to pursue, and how to attempt it.
package role

import (
	"colonymind/internal/relation"
	"colonymind/internal/world"
)

// Context is the per-tick view handed to every policy. Derived world
// queries are memoized on it and thrown away with it at tick end; nothing
// here may outlive the tick.
type Context struct {
	World *world.World
	Store *relation.Store
	Tick  uint64

	hostiles    []*world.Object
	hostilesOK  bool
	damaged     []*world.Object
	damagedOK   bool
	sources     []*world.Object
	sourcesOK   bool
	sites       []*world.Object
	sitesOK     bool
	sourceSlots map[world.ID]int
}

// NewContext builds a fresh tick-scoped context.
func NewContext(w *world.World, s *relation.Store, tick uint64) *Context {
	return &Context{World: w, Store: s, Tick: tick}
}

// Hostiles returns all live hostile creatures.
func (c *Context) Hostiles() []*world.Object {
	if !c.hostilesOK {
		c.hostiles = c.World.Select(func(o *world.Object) bool {
			return o.Has(world.CapCreature | world.CapHostile)
		})
		c.hostilesOK = true
	}
	return c.hostiles
}

// DamagedStructures returns repairable structures below full integrity.
func (c *Context) DamagedStructures() []*world.Object {
	if !c.damagedOK {
		c.damaged = c.World.Select(func(o *world.Object) bool {
			return o.Has(world.CapConstructible) && o.Damaged()
		})
		c.damagedOK = true
	}
	return c.damaged
}

// Sources returns all energy sources.
func (c *Context) Sources() []*world.Object {
	if !c.sourcesOK {
		c.sources = c.World.Select(func(o *world.Object) bool {
			return o.Has(world.CapResource) && o.Category == world.CategorySource
		})
		c.sourcesOK = true
	}
	return c.sources
}

// Sites returns all unfinished construction sites.
func (c *Context) Sites() []*world.Object {
	if !c.sitesOK {
		c.sites = c.World.Select(func(o *world.Object) bool {
			return o.Has(world.CapConstructible) && o.ProgressTotal > 0
		})
		c.sitesOK = true
	}
	return c.sites
}

// SourceSlots returns how many creatures can work a source at once — the
// count of walkable cells around it, memoized for the tick.
func (c *Context) SourceSlots(src *world.Object) int {
	if c.sourceSlots == nil {
		c.sourceSlots = make(map[world.ID]int)
	}
	if n, ok := c.sourceSlots[src.ID]; ok {
		return n
	}
	n := c.World.OpenPositionsAround(src.Pos)
	c.sourceSlots[src.ID] = n
	return n
}

// HarvestCapacity sums free working slots across all sources — the signal
// harvest-oriented population quotas derive from.
func (c *Context) HarvestCapacity() int {
	total := 0
	for _, src := range c.Sources() {
		total += c.SourceSlots(src)
	}
	return total
}
