// Simulation ties the world, the record store, and the role registry
// together and runs them once per tick.
package engine

import (
	"fmt"
	"log/slog"

	"colonymind/internal/relation"
	"colonymind/internal/role"
	"colonymind/internal/world"
)

// Simulation holds the complete colony state and wires systems together.
type Simulation struct {
	World    *world.World
	Store    *relation.Store
	Registry *role.Registry

	// ReconcileEvery runs the full record prune every N ticks; per-entity
	// lazy reconciliation happens on every access regardless.
	ReconcileEvery uint64

	// ReportEvery emits the periodic status line every N ticks.
	ReportEvery uint64

	Events   []Event
	LastTick uint64

	Stats SimStats
}

// Event is a notable occurrence in the colony.
type Event struct {
	Tick        uint64 `json:"tick"`
	Description string `json:"description"`
	Category    string `json:"category"` // "spawn", "death", "defense", "prune", ...
}

// SimStats tracks aggregate counters updated as the tick runs.
type SimStats struct {
	Creatures       int            `json:"creatures"`
	ByRole          map[string]int `json:"by_role"`
	TasksExecuted   uint64         `json:"tasks_executed"`
	TasksFinished   uint64         `json:"tasks_finished"`
	RecordsPruned   uint64         `json:"records_pruned"`
	ControllerLevel int            `json:"controller_level"`
}

// New wires a simulation from its parts.
func New(w *world.World, s *relation.Store, reg *role.Registry) *Simulation {
	return &Simulation{
		World:          w,
		Store:          s,
		Registry:       reg,
		ReconcileEvery: 50,
		ReportEvery:    100,
	}
}

// EmitEvent records a notable occurrence for the log and persistence.
func (s *Simulation) EmitEvent(e Event) {
	s.Events = append(s.Events, e)
}

// Tick advances the colony by one tick: environment step, per-agent task
// updates, then population control. Derived caches live and die inside
// this call.
func (s *Simulation) Tick(tick uint64) {
	s.LastTick = tick
	s.Store.BeginTick(tick)
	s.World.StepTick(tick)

	if s.ReconcileEvery > 0 && tick%s.ReconcileEvery == 0 {
		if dropped := s.Store.Prune(); dropped > 0 {
			s.Stats.RecordsPruned += uint64(dropped)
			s.EmitEvent(Event{
				Tick:        tick,
				Description: fmt.Sprintf("%d stale records pruned", dropped),
				Category:    "prune",
			})
		}
	}

	ctx := role.NewContext(s.World, s.Store, tick)

	for _, id := range s.Store.IDsWithRole() {
		s.updateAgent(ctx, id)
	}

	s.runPopulation(ctx, tick)
	s.updateStats()

	if s.ReportEvery > 0 && tick%s.ReportEvery == 0 {
		s.report(tick)
	}
}

func (s *Simulation) updateStats() {
	byRole := make(map[string]int)
	creatures := 0
	level := 0
	for _, o := range s.World.All() {
		if o.Has(world.CapCreature) && !o.Has(world.CapHostile) {
			creatures++
			if name := s.Store.RoleOf(o.ID); name != "" {
				byRole[name]++
			}
		}
		if o.Has(world.CapController) && o.Level > level {
			level = o.Level
		}
	}
	s.Stats.Creatures = creatures
	s.Stats.ByRole = byRole
	s.Stats.ControllerLevel = level
}

func (s *Simulation) report(tick uint64) {
	args := []any{
		"tick", tick,
		"creatures", s.Stats.Creatures,
		"controller_level", s.Stats.ControllerLevel,
		"tasks_executed", s.Stats.TasksExecuted,
		"tasks_finished", s.Stats.TasksFinished,
		"records_pruned", s.Stats.RecordsPruned,
	}
	for _, name := range s.Registry.Names() {
		args = append(args, "role_"+name, s.Stats.ByRole[name])
	}
	slog.Info("colony report", args...)
}
