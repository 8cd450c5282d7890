// Medic — heals wounded colony creatures; shadows a defender while idle.
package role

import (
	"colonymind/internal/task"
	"colonymind/internal/world"
)

// Medic builds the medic role. Medics are only wanted while hostiles are
// around or a creature is wounded.
func Medic(quota, renewBelow int) *Role {
	r := &Role{
		Name: "medic",
		Bodies: []Loadout{
			{world.PartHeal, world.PartMove},
			{world.PartHeal, world.PartHeal, world.PartMove, world.PartMove},
		},
	}

	wounded := func(o *world.Object) bool {
		return o.Has(world.CapCreature) && !o.Has(world.CapHostile) && o.Damaged()
	}

	r.Select = func(ctx *Context, agent *world.Object) task.Task {
		if t, ok := maybeRenew(ctx, r, agent, renewBelow); ok {
			return t
		}

		if patient := ctx.World.FindNearest(agent.Pos, wounded); patient != nil {
			return task.New(task.KindHealTarget, patient.ID)
		}

		// Nobody hurt: shadow the nearest defender so healing starts in
		// range when the next raid lands.
		escort := ctx.World.FindNearest(agent.Pos, func(o *world.Object) bool {
			return o.Has(world.CapCreature) && !o.Has(world.CapHostile) &&
				ctx.Store.RoleOf(o.ID) == "defender"
		})
		if escort != nil {
			return task.New(task.KindWaitForInteraction, escort.ID)
		}
		return task.Idle
	}

	base := executeKinds(
		task.KindHealTarget, task.KindWaitForInteraction,
		task.KindRenew, task.KindIdle,
	)
	r.Execute = func(ctx *Context, agent *world.Object, t task.Task) Result {
		// An escort posting ends as soon as someone needs healing.
		if t.Kind == task.KindWaitForInteraction {
			if ctx.World.FindNearest(agent.Pos, wounded) != nil {
				return finished(world.Ok)
			}
		}
		return base(ctx, agent, t)
	}

	r.Desired = func(ctx *Context) int {
		if len(ctx.Hostiles()) == 0 && len(ctx.World.Select(wounded)) == 0 {
			return 0
		}
		return quota
	}

	return r
}
