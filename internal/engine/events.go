// Package engine drives one game: the per-tick system pipeline, the action
// handlers, and the per-game exclusion that keeps state single-writer.
package engine

import (
	"github.com/talgya/hexdominion/internal/defs"
	"github.com/talgya/hexdominion/internal/game"
)

// EventType names every discrete event carried to subscribers.
type EventType string

const (
	EventTick              EventType = "tick"
	EventMapReady          EventType = "mapReady"
	EventCombatResult      EventType = "combatResult"
	EventSettlementFounded EventType = "settlementFounded"
	EventBuildingCompleted EventType = "buildingCompleted"
	EventTechResearched    EventType = "techResearched"
	EventLawPassed         EventType = "lawPassed"
	EventLawRejected       EventType = "lawRejected"
	EventWarDeclared       EventType = "warDeclared"
	EventPeaceDeclared     EventType = "peaceDeclared"
	EventPlayerEliminated  EventType = "playerEliminated"
	EventVictory           EventType = "victory"
	EventPaused            EventType = "paused"
	EventResumed           EventType = "resumed"
	EventUnitMoved         EventType = "unitMoved"
)

// Event is the envelope published on the bus. Data carries one of the typed
// payloads below (or a TickSnapshot for per-player tick events).
type Event struct {
	Type EventType `json:"type"`
	Data any       `json:"data,omitempty"`
}

// TickSnapshot is the per-player payload published every tick.
type TickSnapshot struct {
	Tick        uint64                  `json:"tick"`
	PlayerState *game.ClientPlayerState `json:"playerState"`
}

// MapReady is sent once on subscription with the immutable generated map.
type MapReady struct {
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Terrain   []byte `json:"terrain"`
	Elevation []byte `json:"elevation"`
}

// CombatResult reports one direction of a resolved combat pair.
type CombatResult struct {
	AttackerID string `json:"attackerId"`
	DefenderID string `json:"defenderId"`
	Damage     int    `json:"damage"`
	Killed     bool   `json:"killed"`
}

// SettlementFounded reports a new settlement.
type SettlementFounded struct {
	SettlementID string `json:"settlementId"`
	PlayerID     string `json:"playerId"`
	Name         string `json:"name"`
	Q            int    `json:"q"`
	R            int    `json:"r"`
}

// BuildingCompleted reports a finished construction.
type BuildingCompleted struct {
	SettlementID string            `json:"settlementId"`
	PlayerID     string            `json:"playerId"`
	Building     defs.BuildingType `json:"building"`
}

// TechResearched reports a completed technology.
type TechResearched struct {
	TechID   defs.TechID `json:"techId"`
	PlayerID string      `json:"playerId"`
}

// LawResolved reports a council vote outcome, passed or rejected.
type LawResolved struct {
	LawID    defs.LawID `json:"lawId"`
	PlayerID string     `json:"playerId"`
	Passed   bool       `json:"passed"`
	Votes    []Vote     `json:"votes"`
}

// DiplomacyChanged reports a pair status change (warDeclared/peaceDeclared).
type DiplomacyChanged struct {
	PlayerA string `json:"playerA"`
	PlayerB string `json:"playerB"`
}

// PlayerEliminated reports a player losing their last settlement.
type PlayerEliminated struct {
	PlayerID string `json:"playerId"`
}

// VictoryType names the way a game was won.
type VictoryType string

const (
	VictoryLastStanding  VictoryType = "last_standing"
	VictoryDomination    VictoryType = "domination"
	VictoryProsperity    VictoryType = "prosperity"
	VictoryInfluence     VictoryType = "influence"
	VictoryEnlightenment VictoryType = "enlightenment"
)

// Victory reports the winner and how they won.
type Victory struct {
	WinnerID    string      `json:"winnerId"`
	VictoryType VictoryType `json:"victoryType"`
}

// UnitMoved reports a unit advancing along its path this tick.
type UnitMoved struct {
	UnitID string `json:"unitId"`
	Q      int    `json:"q"`
	R      int    `json:"r"`
}
