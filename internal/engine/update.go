// Entity update driver — the per-agent task state machine, evaluated once
// per agent per tick:
//
//  1. an agent without a task gets one from its role's selector
//  2. the current task is executed through the role's executor
//  3. a finished task is cleared and selection runs once more in the same
//     tick; the replacement is assigned but not executed until next tick
//  4. an out-of-range result issues a movement step toward the target
//
// One agent's failure never aborts the pass; configuration-class problems
// are logged and the agent is skipped for the tick.
package engine

import (
	"log/slog"

	"colonymind/internal/role"
	"colonymind/internal/task"
	"colonymind/internal/world"
)

func (s *Simulation) updateAgent(ctx *role.Context, id world.ID) {
	agent, ok := s.World.Resolve(id)
	if !ok {
		return // record outlives the creature; reconciliation handles it
	}
	if agent.Has(world.CapHostile) {
		return
	}

	roleName := s.Store.RoleOf(id)
	r, ok := s.Registry.Lookup(roleName)
	if !ok {
		slog.Warn("agent has unregistered role, skipping update",
			"agent", agent.Name, "role", roleName)
		return
	}

	t, ok := s.Store.TaskOf(id)
	if !ok {
		t = s.assignTask(ctx, r, agent)
	}

	res := r.Execute(ctx, agent, t)
	s.Stats.TasksExecuted++

	if res.Finished {
		s.Stats.TasksFinished++
		s.Store.ClearTask(id)
		// Exactly one reselection per tick; the new task waits for the
		// next tick to run.
		s.assignTask(ctx, r, agent)
	}

	if res.Code == world.NotInRange && t.TargetID != "" {
		if target, ok := s.World.Resolve(t.TargetID); ok {
			s.World.MoveToward(agent, target.Pos)
		}
	}
}

// assignTask runs the role's selector and persists the result, falling
// back to idle when the chosen target cannot be linked (it may have
// disappeared between selection and assignment in a prior failure mode).
func (s *Simulation) assignTask(ctx *role.Context, r *role.Role, agent *world.Object) task.Task {
	t := r.Select(ctx, agent)
	if s.Store.AssignTask(agent.ID, t) {
		return t
	}
	slog.Debug("task assignment rejected, idling",
		"agent", agent.Name, "task", t.Kind.String())
	t = task.Idle
	s.Store.AssignTask(agent.ID, t)
	return t
}
