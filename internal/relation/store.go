// Package relation keeps the persisted targeter/target graph and the
// per-entity task record. Records survive across ticks; the live objects
// they refer to do not, so every accessor runs a lazy reconciliation pass
// that drops references no longer backed by a live, reciprocal link.
//
// Consistency is held in one direction only: a record's TargetID is the
// source of truth, and targeter sets are a derived reverse index that
// reconciliation re-validates. Any drift heals itself on next access
// instead of requiring perfect call discipline.
package relation

import (
	"log/slog"
	"sort"

	"colonymind/internal/task"
	"colonymind/internal/world"
)

// Resolver resolves a persisted id to a live object. The world implements
// it; tests substitute their own.
type Resolver interface {
	Resolve(id world.ID) (*world.Object, bool)
}

// Record is the cross-tick-surviving state for one entity.
type Record struct {
	ID       world.ID       `json:"id"`
	Category world.Category `json:"category"`

	Role      string     `json:"role,omitempty"`
	TaskKind  task.Kind  `json:"task_kind,omitempty"`
	TargetID  world.ID   `json:"target_id,omitempty"`
	Targeters []world.ID `json:"targeter_ids"`

	// Tick this record was last reconciled on; reconciliation runs at most
	// once per entity per tick, on first access.
	reconciled uint64
}

// Store owns the record map and every relationship mutation.
type Store struct {
	res     Resolver
	records map[world.ID]*Record
	tick    uint64
}

// NewStore creates an empty store bound to a resolver.
func NewStore(res Resolver) *Store {
	return &Store{
		res:     res,
		records: make(map[world.ID]*Record),
	}
}

// Restore loads previously persisted records into a fresh store.
func Restore(res Resolver, recs []*Record) *Store {
	s := NewStore(res)
	for _, r := range recs {
		s.records[r.ID] = r
	}
	return s
}

// BeginTick marks a new tick; per-entity reconciliation re-arms.
func (s *Store) BeginTick(tick uint64) {
	s.tick = tick
}

// Records returns every record in stable id order, for persistence.
func (s *Store) Records() []*Record {
	out := make([]*Record, 0, len(s.records))
	for _, r := range s.records {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// IDsWithRole returns the ids of all records carrying the given role, in
// stable id order. The update pass iterates this.
func (s *Store) IDsWithRole() []world.ID {
	var out []world.ID
	for id, r := range s.records {
		if r.Role != "" {
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// record returns the persisted record for a live object, creating it lazily
// on first access.
func (s *Store) record(o *world.Object) *Record {
	r, ok := s.records[o.ID]
	if !ok {
		r = &Record{ID: o.ID, Category: o.Category}
		s.records[o.ID] = r
	}
	return r
}

// reconcile heals one record: an unresolvable target id is dropped, and
// targeter entries that are duplicated, unresolvable, or no longer
// reciprocal are removed. Runs at most once per record per tick.
func (s *Store) reconcile(r *Record) {
	if r.reconciled == s.tick {
		return
	}
	r.reconciled = s.tick

	if r.TargetID != "" {
		if _, ok := s.res.Resolve(r.TargetID); !ok {
			r.TargetID = ""
		}
	}

	if len(r.Targeters) == 0 {
		return
	}
	seen := make(map[world.ID]bool, len(r.Targeters))
	kept := r.Targeters[:0]
	for _, id := range r.Targeters {
		if seen[id] {
			continue
		}
		seen[id] = true
		if _, ok := s.res.Resolve(id); !ok {
			continue
		}
		tr, ok := s.records[id]
		if !ok || tr.TargetID != r.ID {
			continue // non-reciprocal
		}
		kept = append(kept, id)
	}
	r.Targeters = kept
}

// SetTarget points e at target, maintaining the reverse index when
// linkReciprocal is set. Returns false with no mutation when either id does
// not resolve to a live object.
func (s *Store) SetTarget(e, target world.ID, linkReciprocal bool) bool {
	obj, ok := s.res.Resolve(e)
	if !ok {
		return false
	}
	if target == "" {
		return false
	}
	if _, ok := s.res.Resolve(target); !ok {
		return false
	}

	r := s.record(obj)
	s.reconcile(r)

	if r.TargetID != "" && r.TargetID != target {
		if !s.RemoveTargeter(r.TargetID, e, false) {
			return false
		}
	}
	if linkReciprocal {
		if !s.AddTargeter(target, e, false) {
			return false
		}
	}
	r.TargetID = target
	return true
}

// ClearTarget removes e's current target. Returns false when e has no
// record or no target; when unlinkReciprocal is set and the reverse-index
// removal fails, the clear fails with state unchanged.
func (s *Store) ClearTarget(e world.ID, unlinkReciprocal bool) bool {
	r, ok := s.records[e]
	if !ok {
		return false
	}
	s.reconcile(r)
	if r.TargetID == "" {
		return false
	}
	if unlinkReciprocal {
		if !s.RemoveTargeter(r.TargetID, e, false) {
			return false
		}
	}
	r.TargetID = ""
	return true
}

// AddTargeter records e in target's targeter set. With linkTarget set it
// also points e at target, with reciprocal linking disabled on the inner
// call to avoid mutual recursion.
func (s *Store) AddTargeter(target, e world.ID, linkTarget bool) bool {
	tobj, ok := s.res.Resolve(target)
	if !ok {
		return false
	}
	if _, ok := s.res.Resolve(e); !ok {
		return false
	}

	tr := s.record(tobj)
	s.reconcile(tr)

	if linkTarget {
		if !s.SetTarget(e, target, false) {
			return false
		}
	}
	for _, id := range tr.Targeters {
		if id == e {
			return true
		}
	}
	tr.Targeters = append(tr.Targeters, e)
	return true
}

// RemoveTargeter drops e from target's targeter set. With unlinkTarget set
// it also clears e's target when it still points at target. Removal of an
// id that is already absent succeeds: the state it would produce already
// holds.
func (s *Store) RemoveTargeter(target, e world.ID, unlinkTarget bool) bool {
	tr, ok := s.records[target]
	if !ok {
		tobj, live := s.res.Resolve(target)
		if !live {
			return false
		}
		tr = s.record(tobj)
	}
	s.reconcile(tr)

	if unlinkTarget {
		if r, ok := s.records[e]; ok && r.TargetID == target {
			if !s.ClearTarget(e, false) {
				return false
			}
		}
	}
	kept := tr.Targeters[:0]
	for _, id := range tr.Targeters {
		if id != e {
			kept = append(kept, id)
		}
	}
	tr.Targeters = kept
	return true
}

// Target returns e's current target id after reconciliation.
func (s *Store) Target(e world.ID) (world.ID, bool) {
	r, ok := s.records[e]
	if !ok {
		return "", false
	}
	s.reconcile(r)
	if r.TargetID == "" {
		return "", false
	}
	return r.TargetID, true
}

// Targeters returns the reconciled targeter set of e.
func (s *Store) Targeters(e world.ID) []world.ID {
	r, ok := s.records[e]
	if !ok {
		return nil
	}
	s.reconcile(r)
	out := make([]world.ID, len(r.Targeters))
	copy(out, r.Targeters)
	return out
}

// TargeterCount returns how many entities currently target e.
func (s *Store) TargeterCount(e world.ID) int {
	r, ok := s.records[e]
	if !ok {
		return 0
	}
	s.reconcile(r)
	return len(r.Targeters)
}

// HasTargeter reports whether other currently targets e.
func (s *Store) HasTargeter(e, other world.ID) bool {
	r, ok := s.records[e]
	if !ok {
		return false
	}
	s.reconcile(r)
	for _, id := range r.Targeters {
		if id == other {
			return true
		}
	}
	return false
}

// IsTarget reports whether e's current target is other.
func (s *Store) IsTarget(e, other world.ID) bool {
	t, ok := s.Target(e)
	return ok && t == other
}

// SetRole stamps a role name on an entity's record, creating it lazily.
func (s *Store) SetRole(e world.ID, role string) bool {
	obj, ok := s.res.Resolve(e)
	if !ok {
		return false
	}
	s.record(obj).Role = role
	return true
}

// RoleOf returns the persisted role name for e.
func (s *Store) RoleOf(e world.ID) string {
	if r, ok := s.records[e]; ok {
		return r.Role
	}
	return ""
}

// TaskOf returns e's current task, reassembled from the persisted kind and
// target id, after reconciliation. A task whose kind requires a target that
// reconciliation has dropped no longer counts as assigned.
func (s *Store) TaskOf(e world.ID) (task.Task, bool) {
	r, ok := s.records[e]
	if !ok || r.TaskKind == task.KindNone {
		return task.Task{}, false
	}
	s.reconcile(r)
	t := task.Task{Kind: r.TaskKind, TargetID: r.TargetID}
	if !t.Valid() {
		r.TaskKind = task.KindNone
		return task.Task{}, false
	}
	return t, true
}

// AssignTask persists a new task for e, wiring the target through
// SetTarget so the reverse index stays consistent. Invalid tasks and
// unresolvable targets are rejected without partial state change.
func (s *Store) AssignTask(e world.ID, t task.Task) bool {
	if !t.Valid() {
		return false
	}
	obj, ok := s.res.Resolve(e)
	if !ok {
		return false
	}
	if t.TargetID != "" {
		if !s.SetTarget(e, t.TargetID, true) {
			return false
		}
	} else if r, ok := s.records[e]; ok && r.TargetID != "" {
		s.ClearTarget(e, true)
	}
	s.record(obj).TaskKind = t.Kind
	return true
}

// ClearTask drops e's task and unlinks its target.
func (s *Store) ClearTask(e world.ID) {
	r, ok := s.records[e]
	if !ok {
		return
	}
	r.TaskKind = task.KindNone
	if r.TargetID != "" {
		s.ClearTarget(e, true)
	}
}

// Prune runs the periodic full pass: every record whose entity no longer
// exists is deleted outright. Per-entity reconciliation covers the partial
// cases; this covers permanent disappearance. Returns how many records
// were dropped.
func (s *Store) Prune() int {
	dropped := 0
	for id := range s.records {
		if _, ok := s.res.Resolve(id); !ok {
			delete(s.records, id)
			dropped++
		}
	}
	if dropped > 0 {
		slog.Debug("pruned stale records", "count", dropped, "tick", s.tick)
	}
	return dropped
}
