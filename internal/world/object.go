// Package world provides the live-object side of the simulation: addressable
// objects on a square grid, the action primitives agents invoke against them,
// and the spatial queries the decision layer consumes.
package world

import (
	"github.com/google/uuid"
)

// ID is the stable identifier of a live object, assigned at creation and
// valid only while the object exists.
type ID string

// NewID allocates a fresh object id.
func NewID() ID {
	return ID(uuid.NewString())
}

// Capability tags what an object can participate in. Task applicability is
// matched against these tags rather than probing structure fields.
type Capability uint16

const (
	CapCreature     Capability = 1 << iota // mobile agent with a body
	CapResource                            // harvestable or collectible raw energy
	CapEnergyStore                         // holds energy that can be transferred in/out
	CapConstructible                       // under construction or repairable
	CapController                          // upgrade target that gates progression
	CapFacility                            // spawns and renews creatures
	CapHostile                             // belongs to an invading force
)

// Has reports whether all bits of c are set.
func (s Capability) Has(c Capability) bool {
	return s&c == c
}

// Category namespaces persisted records by what kind of object they back.
type Category uint8

const (
	CategoryCreature Category = iota
	CategoryStructure
	CategorySource
	CategorySite
	CategoryFacility
	CategoryTower
	CategoryResource
	CategoryMineral
	CategoryDeposit
)

var categoryNames = [...]string{
	"creature", "structure", "source", "site",
	"facility", "tower", "resource", "mineral", "deposit",
}

func (c Category) String() string {
	if int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return "unknown"
}

// BodyPart is one segment of a creature's loadout.
type BodyPart uint8

const (
	PartMove BodyPart = iota
	PartWork
	PartCarry
	PartAttack
	PartHeal
	PartTough
)

// partCosts is the fixed spawn-cost table, indexed by BodyPart.
var partCosts = [...]int{
	PartMove:   50,
	PartWork:   100,
	PartCarry:  50,
	PartAttack: 80,
	PartHeal:   250,
	PartTough:  10,
}

// PartCost returns the spawn cost of a single body part.
func PartCost(p BodyPart) int {
	return partCosts[p]
}

// BodyCost returns the total spawn cost of a body.
func BodyCost(body []BodyPart) int {
	total := 0
	for _, p := range body {
		total += partCosts[p]
	}
	return total
}

// CountParts returns how many parts of the given kind the body carries.
func CountParts(body []BodyPart, kind BodyPart) int {
	n := 0
	for _, p := range body {
		if p == kind {
			n++
		}
	}
	return n
}

// Object is a live world object. Which fields are meaningful is declared by
// the capability tags: creatures have a body and TTL, stores have energy and
// capacity, sites have build progress, controllers have a level.
type Object struct {
	ID       ID
	Name     string
	Caps     Capability
	Category Category
	Pos      Pos

	Hits    int
	HitsMax int

	Energy    int
	EnergyCap int

	Body []BodyPart // creatures only
	TTL  int        // creatures: ticks until forced removal

	Progress      int // construction sites
	ProgressTotal int

	Level int // controllers
}

// Has reports whether the object carries all the given capability bits.
func (o *Object) Has(c Capability) bool {
	return o != nil && o.Caps.Has(c)
}

// CanMove reports whether a creature has at least one move part.
func (o *Object) CanMove() bool {
	return CountParts(o.Body, PartMove) > 0
}

// StoreFull reports whether the object's energy store is at capacity.
func (o *Object) StoreFull() bool {
	return o.EnergyCap > 0 && o.Energy >= o.EnergyCap
}

// StoreEmpty reports whether the object's energy store holds nothing.
func (o *Object) StoreEmpty() bool {
	return o.Energy <= 0
}

// FreeCapacity returns how much more energy the store can take.
func (o *Object) FreeCapacity() int {
	if o.EnergyCap <= 0 {
		return 0
	}
	free := o.EnergyCap - o.Energy
	if free < 0 {
		return 0
	}
	return free
}

// Damaged reports whether the object is below full integrity.
func (o *Object) Damaged() bool {
	return o.HitsMax > 0 && o.Hits < o.HitsMax
}
