// Role registry — an explicit value constructed once at startup and handed
// to the update driver and population controller, so tests can run with
// substitute role sets.
package role

import (
	"colonymind/internal/task"
	"colonymind/internal/world"
)

// Result is the outcome of one task execution attempt.
type Result struct {
	Code     world.ResultCode
	Finished bool
}

// Role bundles the policies shared by one class of agents.
type Role struct {
	Name   string
	Bodies []Loadout // ordered, non-decreasing cost

	// Select picks the agent's next task. It must not mutate world state;
	// it only returns a candidate.
	Select func(ctx *Context, agent *world.Object) task.Task

	// Execute attempts the current task with at most one world-mutating
	// action and reports the result code plus whether the task is done.
	Execute func(ctx *Context, agent *world.Object, t task.Task) Result

	// Desired returns how many live agents of this role the colony wants,
	// derived from tick-scoped environment signals.
	Desired func(ctx *Context) int
}

// Registry maps role names to policies. Lookup failing for a reachable
// agent is a configuration error, not a runtime state.
type Registry struct {
	roles map[string]*Role
	order []string
}

// NewRegistry builds a registry from the given roles, preserving their
// order for deterministic population passes.
func NewRegistry(roles ...*Role) *Registry {
	r := &Registry{roles: make(map[string]*Role, len(roles))}
	for _, rl := range roles {
		if _, dup := r.roles[rl.Name]; dup {
			continue
		}
		r.roles[rl.Name] = rl
		r.order = append(r.order, rl.Name)
	}
	return r
}

// Lookup returns the role registered under name.
func (r *Registry) Lookup(name string) (*Role, bool) {
	rl, ok := r.roles[name]
	return rl, ok
}

// Names returns the registered role names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}
