// Loadout selection — each role carries an ordered set of body variants of
// non-decreasing cost, and spawning picks the best one the colony's energy
// capacity can pay for.
package role

import (
	"colonymind/internal/world"
)

// Loadout is one body variant a role can spawn with.
type Loadout []world.BodyPart

// Cost returns the spawn cost of the loadout.
func (l Loadout) Cost() int {
	return world.BodyCost(l)
}

// SelectBestLoadout returns the highest-cost candidate whose cost fits the
// capacity. When nothing fits it returns the cheapest candidate, so a role
// always has a spawnable default.
func SelectBestLoadout(candidates []Loadout, capacity int) Loadout {
	if len(candidates) == 0 {
		return nil
	}
	cheapest := candidates[0]
	var best Loadout
	for _, c := range candidates {
		if c.Cost() < cheapest.Cost() {
			cheapest = c
		}
		if c.Cost() <= capacity && (best == nil || c.Cost() > best.Cost()) {
			best = c
		}
	}
	if best == nil {
		return cheapest
	}
	return best
}

// HasBestLoadout reports whether the agent's current body already costs as
// much as the best loadout its role could spawn at the current capacity.
// Renewal is only worth it for agents that pass this check; anything
// cheaper should be allowed to expire and be respawned stronger.
func (r *Role) HasBestLoadout(ctx *Context, agent *world.Object) bool {
	best := SelectBestLoadout(r.Bodies, ctx.World.SpawnCapacity())
	return world.BodyCost(agent.Body) >= best.Cost()
}
