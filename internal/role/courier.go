// Courier — recovers dropped energy and ferries it to wherever it is
// short: spawn facility first, extensions after.
package role

import (
	"colonymind/internal/task"
	"colonymind/internal/world"
)

// Courier builds the courier role. Couriers only exist while there is
// loose energy on the ground to recover.
func Courier(quota, renewBelow int) *Role {
	r := &Role{
		Name: "courier",
		Bodies: []Loadout{
			{world.PartCarry, world.PartMove},
			{world.PartCarry, world.PartCarry, world.PartMove, world.PartMove},
			{world.PartCarry, world.PartCarry, world.PartCarry, world.PartMove, world.PartMove, world.PartMove},
		},
	}

	r.Select = func(ctx *Context, agent *world.Object) task.Task {
		if t, ok := maybeRenew(ctx, r, agent, renewBelow); ok {
			return t
		}

		if !agent.StoreFull() {
			pile := ctx.World.FindNearest(agent.Pos, func(o *world.Object) bool {
				return o.Category == world.CategoryResource && o.Energy > 0
			})
			if pile != nil {
				return task.New(task.KindCollectEnergy, pile.ID)
			}
		}
		if !agent.StoreEmpty() {
			sink := ctx.World.FindNearest(agent.Pos, func(o *world.Object) bool {
				return o.Has(world.CapFacility) && !o.StoreFull()
			})
			if sink == nil {
				sink = ctx.World.FindNearest(agent.Pos, func(o *world.Object) bool {
					return o.Has(world.CapEnergyStore) && !o.Has(world.CapCreature) && !o.StoreFull()
				})
			}
			if sink != nil {
				return task.New(task.KindDeliverEnergy, sink.ID)
			}
		}
		return task.Idle
	}

	r.Execute = executeKinds(
		task.KindCollectEnergy, task.KindDeliverEnergy,
		task.KindRenew, task.KindIdle,
	)

	r.Desired = func(ctx *Context) int {
		piles := ctx.World.Select(func(o *world.Object) bool {
			return o.Category == world.CategoryResource && o.Energy > 0
		})
		if len(piles) == 0 {
			return 0
		}
		return min(quota, len(piles))
	}

	return r
}
