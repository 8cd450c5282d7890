// Action primitives — the single world-mutating calls a creature can make in
// a tick. Every primitive returns a ResultCode from a closed set; the
// decision layer reacts to codes, never to world internals.
package world

// ResultCode is the outcome of an action primitive.
type ResultCode uint8

const (
	Ok ResultCode = iota
	NotInRange
	Full
	NotEnoughResources
	InvalidTarget
	NotOwner
	NoBodyPart
	Busy
	Tired
)

var resultNames = [...]string{
	"ok", "not_in_range", "full", "not_enough_resources",
	"invalid_target", "not_owner", "no_body_part", "busy", "tired",
}

func (c ResultCode) String() string {
	if int(c) < len(resultNames) {
		return resultNames[c]
	}
	return "unknown"
}

// Per-part action yields.
const (
	HarvestPerWork = 2  // energy harvested per work part per tick
	BuildPerWork   = 5  // build progress per work part per tick
	RepairPerWork  = 20 // hits restored per work part per tick
	UpgradePerWork = 1  // controller progress per work part per tick
	AttackPerPart  = 30 // damage per attack part per tick
	HealPerPart    = 12 // hits restored per heal part per tick
	CarryPerPart   = 50 // store capacity per carry part

	RenewTTL       = 100  // ticks added per renew
	CreatureTTL    = 1500 // starting lifetime of a spawned creature
	TTLMax         = 1500 // renewal ceiling
	ControllerStep = 200  // progress per controller level
)

// MoveToward steps the creature one cell toward destination, sliding around
// blocked cells when the direct step is a wall.
func (w *World) MoveToward(actor *Object, dest Pos) ResultCode {
	if !actor.Has(CapCreature) {
		return InvalidTarget
	}
	if !actor.CanMove() {
		return NoBodyPart
	}
	if actor.Pos == dest {
		return Ok
	}

	sx := sign(dest.X - actor.Pos.X)
	sy := sign(dest.Y - actor.Pos.Y)

	// Direct step first, then axis and diagonal detours around blockers.
	candidates := [][2]int{
		{sx, sy}, {sx, 0}, {0, sy},
		{sx, 1}, {sx, -1}, {1, sy}, {-1, sy},
	}
	for _, c := range candidates {
		if c[0] == 0 && c[1] == 0 {
			continue
		}
		p := Pos{X: actor.Pos.X + c[0], Y: actor.Pos.Y + c[1]}
		if w.Grid.Walkable(p) {
			actor.Pos = p
			return Ok
		}
	}
	return Tired
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// Harvest extracts energy from a source or mineral into the actor's store.
func (w *World) Harvest(actor, target *Object) ResultCode {
	if !target.Has(CapResource) {
		return InvalidTarget
	}
	if CountParts(actor.Body, PartWork) == 0 {
		return NoBodyPart
	}
	if actor.Pos.Dist(target.Pos) > 1 {
		return NotInRange
	}
	if target.StoreEmpty() {
		return NotEnoughResources
	}
	if actor.StoreFull() {
		return Full
	}

	amount := CountParts(actor.Body, PartWork) * HarvestPerWork
	amount = min(amount, target.Energy, actor.FreeCapacity())
	target.Energy -= amount
	actor.Energy += amount
	return Ok
}

// Transfer moves energy from the actor's store to a target store.
func (w *World) Transfer(actor, target *Object) ResultCode {
	if !target.Has(CapEnergyStore) {
		return InvalidTarget
	}
	if actor.Pos.Dist(target.Pos) > 1 {
		return NotInRange
	}
	if actor.StoreEmpty() {
		return NotEnoughResources
	}
	if target.StoreFull() {
		return Full
	}

	amount := min(actor.Energy, target.FreeCapacity())
	actor.Energy -= amount
	target.Energy += amount
	return Ok
}

// Withdraw moves energy from a target store into the actor's store.
func (w *World) Withdraw(actor, target *Object) ResultCode {
	if !target.Has(CapEnergyStore) {
		return InvalidTarget
	}
	if actor.Pos.Dist(target.Pos) > 1 {
		return NotInRange
	}
	if target.StoreEmpty() {
		return NotEnoughResources
	}
	if actor.StoreFull() {
		return Full
	}

	amount := min(target.Energy, actor.FreeCapacity())
	target.Energy -= amount
	actor.Energy += amount
	return Ok
}

// Pickup collects a dropped resource pile into the actor's store.
func (w *World) Pickup(actor, target *Object) ResultCode {
	if !target.Has(CapResource) || target.Category != CategoryResource {
		return InvalidTarget
	}
	if actor.Pos.Dist(target.Pos) > 1 {
		return NotInRange
	}
	if actor.StoreFull() {
		return Full
	}

	amount := min(target.Energy, actor.FreeCapacity())
	target.Energy -= amount
	actor.Energy += amount
	if target.StoreEmpty() {
		w.Remove(target.ID)
	}
	return Ok
}

// Build spends carried energy on a construction site. A completed site is
// replaced in place by a finished structure.
func (w *World) Build(actor, target *Object) ResultCode {
	if !target.Has(CapConstructible) || target.ProgressTotal == 0 {
		return InvalidTarget
	}
	if CountParts(actor.Body, PartWork) == 0 {
		return NoBodyPart
	}
	if actor.Pos.Dist(target.Pos) > 1 {
		return NotInRange
	}
	if actor.StoreEmpty() {
		return NotEnoughResources
	}

	amount := CountParts(actor.Body, PartWork) * BuildPerWork
	amount = min(amount, actor.Energy, target.ProgressTotal-target.Progress)
	actor.Energy -= amount
	target.Progress += amount

	if target.Progress >= target.ProgressTotal {
		w.completeSite(target)
	}
	return Ok
}

// completeSite turns a finished construction site into an energy extension.
func (w *World) completeSite(site *Object) {
	site.Caps = CapEnergyStore | CapConstructible
	site.Category = CategoryStructure
	site.Hits = 1000
	site.HitsMax = 1000
	site.EnergyCap = 50
	site.Progress = 0
	site.ProgressTotal = 0
}

// Repair restores a damaged structure's hits at an energy cost.
func (w *World) Repair(actor, target *Object) ResultCode {
	if !target.Has(CapConstructible) || target.HitsMax == 0 {
		return InvalidTarget
	}
	if CountParts(actor.Body, PartWork) == 0 {
		return NoBodyPart
	}
	if actor.Pos.Dist(target.Pos) > 1 {
		return NotInRange
	}
	if actor.StoreEmpty() {
		return NotEnoughResources
	}
	if !target.Damaged() {
		return Full
	}

	restored := CountParts(actor.Body, PartWork) * RepairPerWork
	target.Hits += restored
	if target.Hits > target.HitsMax {
		target.Hits = target.HitsMax
	}
	actor.Energy--
	return Ok
}

// Attack deals melee damage; kills remove the target from the world.
func (w *World) Attack(actor, target *Object) ResultCode {
	if target == nil || target.HitsMax == 0 {
		return InvalidTarget
	}
	if CountParts(actor.Body, PartAttack) == 0 {
		return NoBodyPart
	}
	if actor.Pos.Dist(target.Pos) > 1 {
		return NotInRange
	}

	target.Hits -= CountParts(actor.Body, PartAttack) * AttackPerPart
	if target.Hits <= 0 {
		if target.Has(CapCreature) {
			w.killCreature(target.ID, target)
		} else {
			w.Remove(target.ID)
		}
	}
	return Ok
}

// Heal restores hits on a damaged creature.
func (w *World) Heal(actor, target *Object) ResultCode {
	if !target.Has(CapCreature) {
		return InvalidTarget
	}
	if CountParts(actor.Body, PartHeal) == 0 {
		return NoBodyPart
	}
	if actor.Pos.Dist(target.Pos) > 1 {
		return NotInRange
	}
	if !target.Damaged() {
		return Full
	}

	target.Hits += CountParts(actor.Body, PartHeal) * HealPerPart
	if target.Hits > target.HitsMax {
		target.Hits = target.HitsMax
	}
	return Ok
}

// UpgradeController spends carried energy on controller progress.
func (w *World) UpgradeController(actor, target *Object) ResultCode {
	if !target.Has(CapController) {
		return InvalidTarget
	}
	if CountParts(actor.Body, PartWork) == 0 {
		return NoBodyPart
	}
	if actor.Pos.Dist(target.Pos) > 1 {
		return NotInRange
	}
	if actor.StoreEmpty() {
		return NotEnoughResources
	}

	amount := CountParts(actor.Body, PartWork) * UpgradePerWork
	amount = min(amount, actor.Energy)
	actor.Energy -= amount
	target.Progress += amount
	if target.Progress >= target.Level*ControllerStep {
		target.Progress = 0
		target.Level++
	}
	return Ok
}

// Renew extends a creature's lifetime at a facility, at an energy cost
// proportional to the creature's body size.
func (w *World) Renew(actor, facility *Object) ResultCode {
	if !facility.Has(CapFacility) {
		return InvalidTarget
	}
	if actor.Pos.Dist(facility.Pos) > 1 {
		return NotInRange
	}
	if actor.TTL >= TTLMax {
		return Full
	}

	cost := len(actor.Body) * 2
	if facility.Energy < cost {
		return NotEnoughResources
	}

	facility.Energy -= cost
	actor.TTL += RenewTTL
	if actor.TTL > TTLMax {
		actor.TTL = TTLMax
	}
	return Ok
}

// Spawn creates a creature at a facility, consuming the body's energy cost.
// The caller owns naming and role assignment.
func (w *World) Spawn(facility *Object, body []BodyPart, name string) (*Object, ResultCode) {
	if !facility.Has(CapFacility) {
		return nil, InvalidTarget
	}
	if len(body) == 0 {
		return nil, InvalidTarget
	}
	cost := BodyCost(body)
	if facility.Energy < cost {
		return nil, NotEnoughResources
	}

	facility.Energy -= cost
	o := &Object{
		ID:        NewID(),
		Name:      name,
		Caps:      CapCreature,
		Category:  CategoryCreature,
		Pos:       w.nearestWalkable(Pos{X: facility.Pos.X + 1, Y: facility.Pos.Y}),
		Hits:      len(body) * 100,
		HitsMax:   len(body) * 100,
		EnergyCap: CountParts(body, PartCarry) * CarryPerPart,
		Body:      body,
		TTL:       CreatureTTL,
	}
	w.Insert(o)
	return o, Ok
}
