// Package game holds the canonical mutable state of one match and its
// construction and view logic. A State has exactly one writer at any moment;
// the engine's Manager enforces that.
package game

import (
	"fmt"

	"github.com/talgya/hexdominion/internal/defs"
	"github.com/talgya/hexdominion/internal/world"
)

// Fog values stored per tile in each player's fog map.
const (
	FogUnexplored byte = 0
	FogExplored   byte = 1
	FogVisible    byte = 2
)

// Synthetic owner ids for neutral units. Absence of a diplomacy entry means
// implicit peace between players and implicit hostility toward neutrals.
const (
	NeutralAnimal    = "neutral_animal"
	NeutralBarbarian = "neutral_barbarian"
)

// DiplomacyStatus is the relation between two human players.
type DiplomacyStatus string

const (
	DiplomacyPeace   DiplomacyStatus = "peace"
	DiplomacyTension DiplomacyStatus = "tension"
	DiplomacyWar     DiplomacyStatus = "war"
)

// DiplomacyState is one pair entry; at most one per unordered pair.
type DiplomacyState struct {
	PlayerA string          `json:"playerA"`
	PlayerB string          `json:"playerB"`
	Status  DiplomacyStatus `json:"status"`
}

// ImprovementType is a tile improvement placed by builders.
type ImprovementType string

const (
	ImprovementRoad ImprovementType = "road"
	ImprovementFarm ImprovementType = "farm_improvement"
	ImprovementMine ImprovementType = "mine"
)

// ImprovementKey formats the improvements map key for a tile.
func ImprovementKey(q, r int) string {
	return fmt.Sprintf("%d,%d", q, r)
}

// UnitState is a unit's current activity.
type UnitState string

const (
	UnitIdle      UnitState = "idle"
	UnitMoving    UnitState = "moving"
	UnitGathering UnitState = "gathering"
	UnitBuilding  UnitState = "building"
	UnitFighting  UnitState = "fighting"
	UnitReturning UnitState = "returning"
)

// CombatPolicy is the player's stance setting read by unit AI.
const (
	CombatAggressive = "aggressive"
	CombatDefensive  = "defensive"
	CombatAvoidance  = "avoidance"
)

// Policies are the player-tunable sliders, each 0..100.
type Policies struct {
	Aggression   int    `json:"aggression"`
	Expansion    int    `json:"expansion"`
	Spending     int    `json:"spending"`
	CombatPolicy string `json:"combatPolicy"`
}

// Advisor is one of the five council members; loyalty drifts each tick and
// decides votes.
type Advisor struct {
	Type    defs.AdvisorType `json:"type"`
	Loyalty int              `json:"loyalty"` // 0..100
}

// Player is one participant's mutable state.
type Player struct {
	UserID    string         `json:"userId"`
	FactionID defs.FactionID `json:"factionId"`

	Resources      map[defs.Resource]float64 `json:"resources"`
	ResourceIncome map[defs.Resource]float64 `json:"resourceIncome"`
	ResourceUpkeep map[defs.Resource]float64 `json:"resourceUpkeep"`

	Policies Policies   `json:"policies"`
	Advisors [5]Advisor `json:"advisors"`

	ResearchedTechs  []defs.TechID `json:"researchedTechs"`
	CurrentResearch  defs.TechID   `json:"currentResearch"` // "" = none
	ResearchProgress float64       `json:"researchProgress"`

	PassedLaws []defs.LawID `json:"passedLaws"`

	Eliminated bool `json:"eliminated"`

	// FogMap has one byte per tile: 0 unexplored, 1 explored, 2 visible.
	FogMap []byte `json:"-"`
}

// Advisor returns a pointer to the advisor of the given type.
func (p *Player) Advisor(t defs.AdvisorType) *Advisor {
	for i := range p.Advisors {
		if p.Advisors[i].Type == t {
			return &p.Advisors[i]
		}
	}
	return nil
}

// Settlement is an owned outpost, settlement, or city on one tile.
type Settlement struct {
	ID      string              `json:"id"`
	OwnerID string              `json:"ownerId"`
	Name    string              `json:"name"`
	Tier    defs.SettlementTier `json:"tier"`
	Q       int                 `json:"q"`
	R       int                 `json:"r"`

	Buildings     []defs.BuildingType `json:"buildings"`
	BuildingSlots int                 `json:"buildingSlots"`
	GatherRadius  int                 `json:"gatherRadius"`
	IsCapital     bool                `json:"isCapital"`

	HP      int `json:"hp"`
	MaxHP   int `json:"maxHp"`
	Defense int `json:"defense"`
}

// HasBuilding reports whether the settlement contains a building type.
func (s *Settlement) HasBuilding(t defs.BuildingType) bool {
	for _, b := range s.Buildings {
		if b == t {
			return true
		}
	}
	return false
}

// Unit is a mobile entity; neutral units reuse the same shape with a
// synthetic owner id.
type Unit struct {
	ID      string        `json:"id"`
	Type    defs.UnitType `json:"type"`
	OwnerID string        `json:"ownerId"`
	Q       int           `json:"q"`
	R       int           `json:"r"`

	HP     int `json:"hp"`
	MaxHP  int `json:"maxHp"`
	Hunger int `json:"hunger"` // 0..100
	Safety int `json:"safety"` // 0..100

	Strength    int `json:"strength"`
	VisionRange int `json:"visionRange"`
	MoveSpeed   int `json:"moveSpeed"`

	State     UnitState `json:"state"`
	TargetQ   int       `json:"targetQ"`
	TargetR   int       `json:"targetR"`
	HasTarget bool      `json:"hasTarget"`
}

// SetTarget puts the unit into the given state heading for (q, r).
func (u *Unit) SetTarget(state UnitState, q, r int) {
	u.State = state
	u.TargetQ = q
	u.TargetR = r
	u.HasTarget = true
}

// ClearTarget idles the unit and drops its target.
func (u *Unit) ClearTarget() {
	u.State = UnitIdle
	u.TargetQ = 0
	u.TargetR = 0
	u.HasTarget = false
}

// AtTarget reports whether the unit stands on its target tile.
func (u *Unit) AtTarget() bool {
	return u.HasTarget && u.Q == u.TargetQ && u.R == u.TargetR
}

// State is the authoritative world state of one game. Terrain and elevation
// are immutable after construction; everything else mutates only under the
// owning manager's exclusion.
type State struct {
	GameID string
	Tick   uint64
	Speed  float64 // one of 0.5, 1, 2, 3
	Paused bool

	Grid *world.Grid

	Players     map[string]*Player
	PlayerOrder []string // insertion order, for deterministic iteration

	Settlements  map[string]*Settlement
	Units        map[string]*Unit
	NeutralUnits map[string]*Unit

	Improvements map[string]ImprovementType

	Diplomacy      []*DiplomacyState
	BarbarianCamps [][2]int

	nameCursor int // settlement name pool position, reset per Create
}

// PlayersInOrder yields players in insertion order.
func (s *State) PlayersInOrder() []*Player {
	out := make([]*Player, 0, len(s.PlayerOrder))
	for _, id := range s.PlayerOrder {
		out = append(out, s.Players[id])
	}
	return out
}

// DiplomacyBetween returns the pair entry for two players in either order,
// or nil when none exists (implicit peace).
func (s *State) DiplomacyBetween(a, b string) *DiplomacyState {
	for _, d := range s.Diplomacy {
		if (d.PlayerA == a && d.PlayerB == b) || (d.PlayerA == b && d.PlayerB == a) {
			return d
		}
	}
	return nil
}

// Hostile reports whether two owners fight on sight: any neutral owner is
// hostile to everyone else, and two human players are hostile only under an
// explicit war entry.
func (s *State) Hostile(ownerA, ownerB string) bool {
	if ownerA == ownerB {
		return false
	}
	_, aHuman := s.Players[ownerA]
	_, bHuman := s.Players[ownerB]
	if !aHuman || !bHuman {
		return true
	}
	d := s.DiplomacyBetween(ownerA, ownerB)
	return d != nil && d.Status == DiplomacyWar
}

// SettlementsOf returns the settlements owned by a player, in stable
// id-sorted order.
func (s *State) SettlementsOf(userID string) []*Settlement {
	out := make([]*Settlement, 0, 4)
	for _, id := range sortedKeys(s.Settlements) {
		if s.Settlements[id].OwnerID == userID {
			out = append(out, s.Settlements[id])
		}
	}
	return out
}

// UnitsOf returns the units owned by a player, in stable id-sorted order.
func (s *State) UnitsOf(userID string) []*Unit {
	out := make([]*Unit, 0, 8)
	for _, id := range sortedKeys(s.Units) {
		if s.Units[id].OwnerID == userID {
			out = append(out, s.Units[id])
		}
	}
	return out
}

// AllUnits returns owned and neutral units as one flat id-sorted list.
func (s *State) AllUnits() []*Unit {
	out := make([]*Unit, 0, len(s.Units)+len(s.NeutralUnits))
	for _, id := range sortedKeys(s.Units) {
		out = append(out, s.Units[id])
	}
	for _, id := range sortedKeys(s.NeutralUnits) {
		out = append(out, s.NeutralUnits[id])
	}
	return out
}

// RemoveUnit deletes a unit from whichever map it lives in.
func (s *State) RemoveUnit(id string) {
	if _, ok := s.Units[id]; ok {
		delete(s.Units, id)
		return
	}
	delete(s.NeutralUnits, id)
}

// NewResourceSet returns a zeroed per-resource map.
func NewResourceSet() map[defs.Resource]float64 {
	m := make(map[defs.Resource]float64, len(defs.AllResources))
	for _, r := range defs.AllResources {
		m[r] = 0
	}
	return m
}

// CloneResourceSet copies a per-resource map for views.
func CloneResourceSet(src map[defs.Resource]float64) map[defs.Resource]float64 {
	m := make(map[defs.Resource]float64, len(src))
	for k, v := range src {
		m[k] = v
	}
	return m
}
