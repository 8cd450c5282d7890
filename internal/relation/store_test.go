package relation_test

import (
	"testing"

	"colonymind/internal/relation"
	"colonymind/internal/task"
	"colonymind/internal/world"
)

// fakeWorld resolves ids against a hand-managed object map, so tests can
// remove objects between ticks the way the simulation does.
type fakeWorld struct {
	objects map[world.ID]*world.Object
}

func newFakeWorld(ids ...world.ID) *fakeWorld {
	fw := &fakeWorld{objects: make(map[world.ID]*world.Object)}
	for _, id := range ids {
		fw.add(id)
	}
	return fw
}

func (fw *fakeWorld) add(id world.ID) {
	fw.objects[id] = &world.Object{ID: id, Category: world.CategoryCreature}
}

func (fw *fakeWorld) kill(id world.ID) {
	delete(fw.objects, id)
}

func (fw *fakeWorld) Resolve(id world.ID) (*world.Object, bool) {
	o, ok := fw.objects[id]
	return o, ok
}

// checkConsistent asserts bidirectional consistency over the given ids:
// every target relationship is mirrored in the reverse index and back.
func checkConsistent(t *testing.T, s *relation.Store, ids ...world.ID) {
	t.Helper()
	for _, e := range ids {
		if tgt, ok := s.Target(e); ok {
			if !s.HasTargeter(tgt, e) {
				t.Fatalf("%s targets %s but is missing from its targeter set", e, tgt)
			}
		}
		for _, targeter := range s.Targeters(e) {
			if !s.IsTarget(targeter, e) {
				t.Fatalf("%s lists targeter %s whose target is elsewhere", e, targeter)
			}
		}
	}
}

func TestSetTargetLinksBothDirections(t *testing.T) {
	fw := newFakeWorld("a", "b")
	s := relation.NewStore(fw)

	if !s.SetTarget("a", "b", true) {
		t.Fatal("SetTarget failed")
	}
	if tgt, ok := s.Target("a"); !ok || tgt != "b" {
		t.Fatalf("Target(a) = %q, %v; want b, true", tgt, ok)
	}
	if !s.HasTargeter("b", "a") {
		t.Fatal("b's targeter set does not contain a")
	}
	if got := s.TargeterCount("b"); got != 1 {
		t.Fatalf("TargeterCount(b) = %d, want 1", got)
	}
	checkConsistent(t, s, "a", "b")
}

func TestSetTargetRejectsUnresolvable(t *testing.T) {
	fw := newFakeWorld("a")
	s := relation.NewStore(fw)

	if s.SetTarget("a", "", true) {
		t.Fatal("SetTarget accepted an empty target id")
	}
	if s.SetTarget("a", "ghost", true) {
		t.Fatal("SetTarget accepted an unresolvable target")
	}
	if s.SetTarget("ghost", "a", true) {
		t.Fatal("SetTarget accepted an unresolvable targeter")
	}
	if _, ok := s.Target("a"); ok {
		t.Fatal("rejected SetTarget left a target behind")
	}
}

func TestSetTargetRetargets(t *testing.T) {
	fw := newFakeWorld("a", "b", "c")
	s := relation.NewStore(fw)

	if !s.SetTarget("a", "b", true) || !s.SetTarget("a", "c", true) {
		t.Fatal("SetTarget failed")
	}
	if tgt, _ := s.Target("a"); tgt != "c" {
		t.Fatalf("Target(a) = %q, want c", tgt)
	}
	if s.HasTargeter("b", "a") {
		t.Fatal("a still listed as targeter of its former target")
	}
	if !s.HasTargeter("c", "a") {
		t.Fatal("a missing from new target's targeter set")
	}
	checkConsistent(t, s, "a", "b", "c")
}

func TestClearTargetIdempotent(t *testing.T) {
	fw := newFakeWorld("a", "b")
	s := relation.NewStore(fw)

	if s.ClearTarget("a", true) {
		t.Fatal("ClearTarget succeeded with no record")
	}

	s.SetTarget("a", "b", true)
	if !s.ClearTarget("a", true) {
		t.Fatal("ClearTarget failed on a set target")
	}
	if _, ok := s.Target("a"); ok {
		t.Fatal("target survived ClearTarget")
	}
	if s.HasTargeter("b", "a") {
		t.Fatal("reverse entry survived ClearTarget")
	}
	if s.ClearTarget("a", true) {
		t.Fatal("second ClearTarget reported success")
	}
}

func TestAddRemoveTargeterMaintainBothSides(t *testing.T) {
	fw := newFakeWorld("a", "b")
	s := relation.NewStore(fw)

	if !s.AddTargeter("b", "a", true) {
		t.Fatal("AddTargeter failed")
	}
	if tgt, _ := s.Target("a"); tgt != "b" {
		t.Fatalf("linkTarget did not set a's target, got %q", tgt)
	}
	// Adding twice leaves a single entry.
	s.AddTargeter("b", "a", true)
	if got := s.TargeterCount("b"); got != 1 {
		t.Fatalf("TargeterCount(b) = %d after duplicate add, want 1", got)
	}

	if !s.RemoveTargeter("b", "a", true) {
		t.Fatal("RemoveTargeter failed")
	}
	if s.HasTargeter("b", "a") {
		t.Fatal("targeter entry survived removal")
	}
	if _, ok := s.Target("a"); ok {
		t.Fatal("unlinkTarget did not clear a's target")
	}
	checkConsistent(t, s, "a", "b")
}

func TestMutationSequenceKeepsConsistency(t *testing.T) {
	ids := []world.ID{"a", "b", "c", "d"}
	fw := newFakeWorld(ids...)
	s := relation.NewStore(fw)

	ops := []func() bool{
		func() bool { return s.SetTarget("a", "b", true) },
		func() bool { return s.SetTarget("c", "b", true) },
		func() bool { return s.AddTargeter("d", "a", true) }, // retargets a
		func() bool { return s.ClearTarget("c", true) },
		func() bool { return s.SetTarget("c", "d", true) },
		func() bool { return s.RemoveTargeter("d", "a", true) },
		func() bool { return s.SetTarget("b", "a", true) },
	}
	for i, op := range ops {
		if !op() {
			t.Fatalf("op %d failed", i)
		}
		checkConsistent(t, s, ids...)
	}
}

func TestReconciliationHealsDanglingTarget(t *testing.T) {
	fw := newFakeWorld("e", "t", "x")
	s := relation.NewStore(fw)
	s.BeginTick(1)

	s.SetTarget("e", "t", true)
	s.SetTarget("x", "t", true)

	fw.kill("t")
	s.BeginTick(2)

	if _, ok := s.Target("e"); ok {
		t.Fatal("Target(e) still resolves a removed object")
	}
	// The dead target's record lingers until the periodic prune, but no
	// accessor reports e in any targeter set backed by a live object.
	for _, id := range []world.ID{"e", "x"} {
		for _, targeter := range s.Targeters(id) {
			if targeter == "e" {
				t.Fatalf("e still cached in %s's targeter set", id)
			}
		}
	}
}

func TestReconciliationDropsNonReciprocalAndDuplicates(t *testing.T) {
	fw := newFakeWorld("t", "good", "rogue")
	s := relation.Restore(fw, []*relation.Record{
		{ID: "good", TargetID: "t"},
		{ID: "rogue", TargetID: ""},
		{ID: "t", Targeters: []world.ID{"good", "good", "rogue", "dead"}},
	})
	s.BeginTick(1)

	got := s.Targeters("t")
	if len(got) != 1 || got[0] != "good" {
		t.Fatalf("Targeters(t) = %v, want [good]", got)
	}
}

func TestPruneDeletesRecordsOfGoneEntities(t *testing.T) {
	fw := newFakeWorld("a", "b")
	s := relation.NewStore(fw)
	s.SetTarget("a", "b", true)

	fw.kill("b")
	if dropped := s.Prune(); dropped != 1 {
		t.Fatalf("Prune dropped %d records, want 1", dropped)
	}
	if len(s.Records()) != 1 {
		t.Fatalf("expected only a's record to survive, got %d", len(s.Records()))
	}
}

func TestAssignTaskPersistsKindAndTarget(t *testing.T) {
	fw := newFakeWorld("a", "src")
	s := relation.NewStore(fw)

	if s.AssignTask("a", task.New(task.KindHarvestSource, "")) {
		t.Fatal("accepted a targeted kind without a target")
	}
	if !s.AssignTask("a", task.New(task.KindHarvestSource, "src")) {
		t.Fatal("AssignTask failed")
	}

	got, ok := s.TaskOf("a")
	if !ok || got.Kind != task.KindHarvestSource || got.TargetID != "src" {
		t.Fatalf("TaskOf(a) = %+v, %v", got, ok)
	}
	if !s.HasTargeter("src", "a") {
		t.Fatal("task target not wired through the reverse index")
	}

	s.ClearTask("a")
	if _, ok := s.TaskOf("a"); ok {
		t.Fatal("task survived ClearTask")
	}
	if s.HasTargeter("src", "a") {
		t.Fatal("target link survived ClearTask")
	}
}

func TestTaskInvalidatedWhenTargetDies(t *testing.T) {
	fw := newFakeWorld("a", "src")
	s := relation.NewStore(fw)
	s.BeginTick(1)
	s.AssignTask("a", task.New(task.KindHarvestSource, "src"))

	fw.kill("src")
	s.BeginTick(2)

	if _, ok := s.TaskOf("a"); ok {
		t.Fatal("task with a dead target still reported as assigned")
	}
}

func TestIdleTaskNeedsNoTarget(t *testing.T) {
	fw := newFakeWorld("a")
	s := relation.NewStore(fw)

	if !s.AssignTask("a", task.Idle) {
		t.Fatal("idle task rejected")
	}
	got, ok := s.TaskOf("a")
	if !ok || got.Kind != task.KindIdle || got.TargetID != "" {
		t.Fatalf("TaskOf(a) = %+v, %v", got, ok)
	}
}
