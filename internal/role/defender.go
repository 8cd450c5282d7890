// Defender — engages hostiles; holds a rally position between raids.
package role

import (
	"colonymind/internal/task"
	"colonymind/internal/world"
)

// Defender builds the defender role. Population scales with the size of
// the current invasion, with a single standing guard otherwise.
func Defender(quota, renewBelow int) *Role {
	r := &Role{
		Name: "defender",
		Bodies: []Loadout{
			{world.PartAttack, world.PartMove},
			{world.PartTough, world.PartTough, world.PartAttack, world.PartAttack, world.PartMove, world.PartMove},
			{world.PartTough, world.PartTough, world.PartAttack, world.PartAttack, world.PartAttack, world.PartMove, world.PartMove, world.PartMove},
		},
	}

	r.Select = func(ctx *Context, agent *world.Object) task.Task {
		if len(ctx.Hostiles()) == 0 {
			if t, ok := maybeRenew(ctx, r, agent, renewBelow); ok {
				return t
			}
		}

		enemy := ctx.World.FindNearest(agent.Pos, func(o *world.Object) bool {
			return o.Has(world.CapCreature | world.CapHostile)
		})
		if enemy != nil {
			return task.New(task.KindAttackEnemy, enemy.ID)
		}
		return task.Task{Kind: task.KindWaitAtPosition}
	}

	base := executeKinds(
		task.KindAttackEnemy, task.KindWaitAtPosition,
		task.KindRenew, task.KindIdle,
	)
	r.Execute = func(ctx *Context, agent *world.Object, t task.Task) Result {
		// A rally posting ends the moment hostiles show up, so the next
		// selection can assign the engagement.
		if t.Kind == task.KindWaitAtPosition && len(ctx.Hostiles()) > 0 {
			return finished(world.Ok)
		}
		return base(ctx, agent, t)
	}

	r.Desired = func(ctx *Context) int {
		hostiles := len(ctx.Hostiles())
		if hostiles == 0 {
			return min(quota, 1)
		}
		return max(quota, hostiles)
	}

	return r
}
