// Upgrader — feeds the controller, the colony's long-term progression.
package role

import (
	"colonymind/internal/task"
	"colonymind/internal/world"
)

// Upgrader builds the upgrader role.
func Upgrader(quota, renewBelow int) *Role {
	r := &Role{
		Name: "upgrader",
		Bodies: []Loadout{
			{world.PartWork, world.PartCarry, world.PartMove},
			{world.PartWork, world.PartWork, world.PartCarry, world.PartMove},
			{world.PartWork, world.PartWork, world.PartWork, world.PartCarry, world.PartCarry, world.PartMove, world.PartMove},
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

		ctl := ctx.World.FindNearest(agent.Pos, func(o *world.Object) bool {
			return o.Has(world.CapController)
		})
		if ctl != nil {
			return task.New(task.KindUpgradeController, ctl.ID)
		}
		return task.Idle
	}

	r.Execute = executeKinds(
		task.KindUpgradeController, task.KindCollectEnergy,
		task.KindRenew, task.KindIdle,
	)

	r.Desired = func(ctx *Context) int {
		hasController := ctx.World.FindNearest(world.Pos{}, func(o *world.Object) bool {
			return o.Has(world.CapController)
		}) != nil
		if !hasController {
			return 0
		}
		return quota
	}

	return r
}
