// Default task-execution semantics. Role Execute functions route the kinds
// they understand through these; a kind a role does not understand is
// finished without ever invoking an action.
package role

import (
	"log/slog"

	"colonymind/internal/task"
	"colonymind/internal/world"
)

// finished short-circuits a task without invoking any action.
func finished(code world.ResultCode) Result {
	return Result{Code: code, Finished: true}
}

// ExecuteDefault carries out one task kind with the role-independent
// semantics every task author must respect:
//
//   - delivery finishes when the agent's store runs empty before the action
//     runs, or the action reports the target saturated or invalid;
//     collection symmetrically on a full store or exhausted target
//   - build/repair finishes on full integrity, empty store, or an invalid
//     target
//   - renew requires a facility target and finishes on saturation or
//     resource exhaustion
//   - idle never finishes, except for an agent that cannot move at all
//   - a missing body part is a configuration problem: logged, the task left
//     assigned, since retrying cannot help until the loadout changes
func ExecuteDefault(ctx *Context, agent *world.Object, t task.Task) Result {
	var target *world.Object
	if t.Kind.NeedsTarget() {
		var ok bool
		target, ok = ctx.World.Resolve(t.TargetID)
		if !ok {
			return finished(world.InvalidTarget)
		}
	}

	w := ctx.World
	var code world.ResultCode

	switch t.Kind {
	case task.KindIdle:
		if !agent.CanMove() {
			return finished(world.Ok)
		}
		return Result{Code: world.Ok}

	case task.KindWaitAtPosition:
		return Result{Code: world.Ok}

	case task.KindWaitForInteraction:
		// Not finished; reported out-of-range until the agent stands next
		// to whoever it is waiting on, so the generic handling closes in.
		if agent.Pos.Dist(target.Pos) > 1 {
			return Result{Code: world.NotInRange}
		}
		return Result{Code: world.Ok}

	case task.KindHarvestSource:
		if agent.StoreFull() {
			return finished(world.Full)
		}
		code = w.Harvest(agent, target)
		switch code {
		case world.Full, world.NotEnoughResources, world.InvalidTarget:
			return finished(code)
		}

	case task.KindCollectEnergy:
		if agent.StoreFull() {
			return finished(world.Full)
		}
		if target.Category == world.CategoryResource {
			code = w.Pickup(agent, target)
		} else {
			code = w.Withdraw(agent, target)
		}
		switch code {
		case world.Full, world.NotEnoughResources, world.InvalidTarget:
			return finished(code)
		}

	case task.KindDeliverEnergy:
		if agent.StoreEmpty() {
			return finished(world.NotEnoughResources)
		}
		code = w.Transfer(agent, target)
		switch code {
		case world.Full, world.InvalidTarget:
			return finished(code)
		case world.Ok:
			if agent.StoreEmpty() {
				return finished(code)
			}
		}

	case task.KindBuildStructure:
		// One kind covers both raising a site and restoring a structure;
		// the target's shape decides which action runs.
		if target.ProgressTotal > 0 {
			if agent.StoreEmpty() {
				return finished(world.NotEnoughResources)
			}
			code = w.Build(agent, target)
		} else {
			if !target.Damaged() {
				return finished(world.Full)
			}
			if agent.StoreEmpty() {
				return finished(world.NotEnoughResources)
			}
			code = w.Repair(agent, target)
		}
		switch code {
		case world.Full, world.NotEnoughResources, world.InvalidTarget:
			return finished(code)
		}

	case task.KindUpgradeController:
		if agent.StoreEmpty() {
			return finished(world.NotEnoughResources)
		}
		code = w.UpgradeController(agent, target)
		switch code {
		case world.NotEnoughResources, world.InvalidTarget:
			return finished(code)
		}

	case task.KindRenew:
		if !target.Has(world.CapFacility) {
			return finished(world.InvalidTarget)
		}
		code = w.Renew(agent, target)
		switch code {
		case world.Full, world.NotEnoughResources:
			return finished(code)
		}

	case task.KindAttackEnemy:
		code = w.Attack(agent, target)
		if code == world.InvalidTarget {
			return finished(code)
		}
		if code == world.Ok {
			if _, alive := w.Resolve(t.TargetID); !alive {
				return finished(code)
			}
		}

	case task.KindHealTarget:
		code = w.Heal(agent, target)
		switch code {
		case world.Full, world.InvalidTarget:
			return finished(code)
		}

	default:
		return finished(world.InvalidTarget)
	}

	if code == world.NoBodyPart {
		slog.Warn("agent lacks body part for task",
			"agent", agent.Name, "task", t.Kind.String())
	}
	return Result{Code: code}
}

// executeKinds wraps ExecuteDefault with a role's applicable kinds; any
// other kind is finished immediately.
func executeKinds(kinds ...task.Kind) func(*Context, *world.Object, task.Task) Result {
	allowed := make(map[task.Kind]bool, len(kinds))
	for _, k := range kinds {
		allowed[k] = true
	}
	return func(ctx *Context, agent *world.Object, t task.Task) Result {
		if !allowed[t.Kind] {
			return finished(world.InvalidTarget)
		}
		return ExecuteDefault(ctx, agent, t)
	}
}

// maybeRenew returns the safety task that outranks productive work: renew
// when the agent is near end-of-life, already at its role's best loadout,
// and a funded facility exists.
func maybeRenew(ctx *Context, r *Role, agent *world.Object, threshold int) (task.Task, bool) {
	if agent.TTL >= threshold || !r.HasBestLoadout(ctx, agent) {
		return task.Task{}, false
	}
	fac := ctx.World.FindNearest(agent.Pos, func(o *world.Object) bool {
		return o.Has(world.CapFacility) && o.Energy > 0
	})
	if fac == nil {
		return task.Task{}, false
	}
	return task.New(task.KindRenew, fac.ID), true
}
