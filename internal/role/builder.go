// Builder — raises construction sites and repairs damaged structures,
// drawing energy from the colony's stores.
package role

import (
	"colonymind/internal/task"
	"colonymind/internal/world"
)

// Builder builds the builder role. Builders are only wanted while a site
// or a damaged structure exists.
func Builder(quota, renewBelow int) *Role {
	r := &Role{
		Name: "builder",
		Bodies: []Loadout{
			{world.PartWork, world.PartCarry, world.PartMove},
			{world.PartWork, world.PartWork, world.PartCarry, world.PartCarry, world.PartMove},
			{world.PartWork, world.PartWork, world.PartCarry, world.PartCarry, world.PartMove, world.PartMove},
		},
	}

	r.Select = func(ctx *Context, agent *world.Object) task.Task {
		if t, ok := maybeRenew(ctx, r, agent, renewBelow); ok {
			return t
		}

		if agent.StoreEmpty() {
			if src := energyDepot(ctx, agent); src != nil {
				return task.New(task.KindCollectEnergy, src.ID)
			}
			return task.Idle
		}

		if site := ctx.World.FindNearest(agent.Pos, isSite); site != nil {
			return task.New(task.KindBuildStructure, site.ID)
		}
		if dmg := ctx.World.FindNearest(agent.Pos, func(o *world.Object) bool {
			return o.Has(world.CapConstructible) && o.Damaged()
		}); dmg != nil {
			return task.New(task.KindBuildStructure, dmg.ID)
		}
		return task.Idle
	}

	r.Execute = executeKinds(
		task.KindBuildStructure, task.KindCollectEnergy,
		task.KindRenew, task.KindIdle,
	)

	r.Desired = func(ctx *Context) int {
		if len(ctx.Sites())+len(ctx.DamagedStructures()) == 0 {
			return 0
		}
		return quota
	}

	return r
}

func isSite(o *world.Object) bool {
	return o.Has(world.CapConstructible) && o.ProgressTotal > 0
}

// energyDepot picks a store worth draining for work: extensions first, the
// spawn facility only while it holds a comfortable surplus.
func energyDepot(ctx *Context, agent *world.Object) *world.Object {
	depot := ctx.World.FindNearest(agent.Pos, func(o *world.Object) bool {
		return o.Has(world.CapEnergyStore) && !o.Has(world.CapFacility) &&
			!o.Has(world.CapCreature) && o.Energy > 0
	})
	if depot != nil {
		return depot
	}
	return ctx.World.FindNearest(agent.Pos, func(o *world.Object) bool {
		return o.Has(world.CapFacility) && o.Energy > o.EnergyCap/2
	})
}
