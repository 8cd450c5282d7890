// Package task defines the task value an agent carries: what it is trying
// to do and, for most kinds, against which object. Tasks are immutable once
// constructed and replaced wholesale on reassignment.
package task

import (
	"colonymind/internal/world"
)

// Kind enumerates what an agent can be assigned to do.
type Kind uint8

const (
	KindNone Kind = iota // no task assigned
	KindIdle
	KindHarvestSource
	KindDeliverEnergy
	KindBuildStructure
	KindCollectEnergy
	KindWaitAtPosition
	KindWaitForInteraction
	KindRenew
	KindAttackEnemy
	KindUpgradeController
	KindHealTarget
)

var kindNames = [...]string{
	"none", "idle", "harvest_source", "deliver_energy", "build_structure",
	"collect_energy", "wait_at_position", "wait_for_interaction", "renew",
	"attack_enemy", "upgrade_controller", "heal_target",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// NeedsTarget reports whether the kind requires a target reference.
// A task with no target is only valid for kinds that wait in place.
func (k Kind) NeedsTarget() bool {
	switch k {
	case KindNone, KindIdle, KindWaitAtPosition:
		return false
	}
	return true
}

// Task pairs a kind with an optional target reference.
type Task struct {
	Kind     Kind
	TargetID world.ID
}

// Idle is the fallback task every selector can return.
var Idle = Task{Kind: KindIdle}

// New constructs a targeted task.
func New(kind Kind, target world.ID) Task {
	return Task{Kind: kind, TargetID: target}
}

// Valid reports whether the task satisfies the kind's target requirement.
func (t Task) Valid() bool {
	if t.Kind == KindNone {
		return false
	}
	return !t.Kind.NeedsTarget() || t.TargetID != ""
}
