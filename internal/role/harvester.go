// Harvester — works energy sources and hauls the yield home.
package role

import (
	"colonymind/internal/task"
	"colonymind/internal/world"
)

// Harvester builds the harvester role. quota caps the population; the
// effective desired count never exceeds the free working slots around
// sources. renewBelow is the TTL under which renewal outranks work.
func Harvester(quota, renewBelow int) *Role {
	r := &Role{
		Name: "harvester",
		Bodies: []Loadout{
			{world.PartWork, world.PartCarry, world.PartMove},
			{world.PartWork, world.PartWork, world.PartCarry, world.PartMove},
			{world.PartWork, world.PartWork, world.PartCarry, world.PartCarry, world.PartMove, world.PartMove},
			{world.PartWork, world.PartWork, world.PartWork, world.PartCarry, world.PartCarry, world.PartMove, world.PartMove, world.PartMove},
		},
	}

	r.Select = func(ctx *Context, agent *world.Object) task.Task {
		if t, ok := maybeRenew(ctx, r, agent, renewBelow); ok {
			return t
		}

		if !agent.StoreFull() {
			if src := pickSource(ctx, agent); src != nil {
				return task.New(task.KindHarvestSource, src.ID)
			}
		}
		if !agent.StoreEmpty() {
			sink := ctx.World.FindNearest(agent.Pos, func(o *world.Object) bool {
				return o.Has(world.CapEnergyStore) && !o.Has(world.CapCreature) && !o.StoreFull()
			})
			if sink != nil {
				return task.New(task.KindDeliverEnergy, sink.ID)
			}
		}
		return task.Idle
	}

	r.Execute = executeKinds(
		task.KindHarvestSource, task.KindDeliverEnergy,
		task.KindRenew, task.KindIdle,
	)

	r.Desired = func(ctx *Context) int {
		return min(quota, ctx.HarvestCapacity())
	}

	return r
}

// pickSource returns the nearest source that still has energy and a free
// working slot. Slot pressure is read from the targeter index, so two
// harvesters assigned in the same tick spread out instead of stacking.
func pickSource(ctx *Context, agent *world.Object) *world.Object {
	return ctx.World.FindNearest(agent.Pos, func(o *world.Object) bool {
		if !o.Has(world.CapResource) || o.Category != world.CategorySource || o.StoreEmpty() {
			return false
		}
		count := ctx.Store.TargeterCount(o.ID)
		if ctx.Store.IsTarget(agent.ID, o.ID) {
			count-- // our own existing claim does not block us
		}
		return count < ctx.SourceSlots(o)
	})
}
