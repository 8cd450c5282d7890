// Population controller — compares live role counts against each role's
// desired count and spawns replacements, with compact gap-filling names.
package engine

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"colonymind/internal/role"
	"colonymind/internal/world"
)

// runPopulation runs after all agents have been updated, so spawn decisions
// see the tick's final state.
func (s *Simulation) runPopulation(ctx *role.Context, tick uint64) {
	live := make(map[string][]*world.Object)
	for _, o := range s.World.All() {
		if !o.Has(world.CapCreature) || o.Has(world.CapHostile) {
			continue
		}
		if name := s.Store.RoleOf(o.ID); name != "" {
			live[name] = append(live[name], o)
		}
	}

	for _, name := range s.Registry.Names() {
		r, _ := s.Registry.Lookup(name)
		if r.Desired == nil {
			continue
		}
		desired := r.Desired(ctx)
		if len(live[name]) >= desired {
			continue
		}

		if creature := s.spawnOne(ctx, r, live[name]); creature != nil {
			s.EmitEvent(Event{
				Tick:        tick,
				Description: fmt.Sprintf("%s spawned", creature.Name),
				Category:    "spawn",
			})
			// One spawn per role per tick; the next shortfall waits.
			live[name] = append(live[name], creature)
		}
	}
}

// spawnOne requests one creature of the role from a facility that can pay
// for the role's best loadout at current capacity.
func (s *Simulation) spawnOne(ctx *role.Context, r *role.Role, existing []*world.Object) *world.Object {
	body := role.SelectBestLoadout(r.Bodies, s.World.SpawnCapacity())
	if len(body) == 0 {
		return nil
	}
	cost := world.BodyCost(body)

	facility := s.World.FindNearest(world.Pos{}, func(o *world.Object) bool {
		return o.Has(world.CapFacility) && o.Energy >= cost
	})
	if facility == nil {
		return nil
	}

	names := make([]string, len(existing))
	for i, o := range existing {
		names[i] = o.Name
	}
	name := NextName(r.Name, names)

	creature, code := s.World.Spawn(facility, body, name)
	if code != world.Ok {
		slog.Debug("spawn rejected", "role", r.Name, "code", code.String())
		return nil
	}
	s.Store.SetRole(creature.ID, r.Name)
	slog.Info("creature spawned",
		"name", name, "role", r.Name, "cost", cost, "tick", s.LastTick)
	return creature
}

// NextName allocates the smallest positive suffix not already in use among
// the role's existing names, so names stay compact and are reused after
// attrition: {role-1, role-2, role-4} yields role-3.
func NextName(roleName string, existing []string) string {
	prefix := roleName + "-"
	used := make(map[int]bool, len(existing))
	for _, n := range existing {
		if !strings.HasPrefix(n, prefix) {
			continue
		}
		if i, err := strconv.Atoi(strings.TrimPrefix(n, prefix)); err == nil && i > 0 {
			used[i] = true
		}
	}
	for i := 1; ; i++ {
		if !used[i] {
			return fmt.Sprintf("%s%d", prefix, i)
		}
	}
}
