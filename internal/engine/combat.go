package engine

import (
	"math"

	"github.com/talgya/hexdominion/internal/entropy"
	"github.com/talgya/hexdominion/internal/game"
	"github.com/talgya/hexdominion/internal/world"
)

// tickCombat resolves simultaneous damage between every adjacent hostile
// pair, player and neutral units alike. Damage in both directions is
// computed from pre-damage health, then applied; dead units are removed
// only after every pair has resolved.
func tickCombat(s *game.State, rng entropy.Source) []Event {
	units := s.AllUnits()
	var events []Event

	for i := 0; i < len(units); i++ {
		for j := i + 1; j < len(units); j++ {
			a, b := units[i], units[j]
			if !shouldFight(s, a, b) {
				continue
			}
			if world.AxialDistance(a.Q, a.R, b.Q, b.R) > 1 {
				continue
			}

			dmgAB := combatDamage(s, a, b, rng)
			dmgBA := combatDamage(s, b, a, rng)

			b.HP -= dmgAB
			a.HP -= dmgBA

			events = append(events,
				Event{Type: EventCombatResult, Data: CombatResult{
					AttackerID: a.ID,
					DefenderID: b.ID,
					Damage:     dmgAB,
					Killed:     b.HP <= 0,
				}},
				Event{Type: EventCombatResult, Data: CombatResult{
					AttackerID: b.ID,
					DefenderID: a.ID,
					Damage:     dmgBA,
					Killed:     a.HP <= 0,
				}},
			)
		}
	}

	for _, u := range units {
		if u.HP <= 0 {
			s.RemoveUnit(u.ID)
		}
	}

	return events
}

// shouldFight: both combatants must be armed, and the pair must be hostile:
// any neutral owner fights everyone, two human players fight only under an
// explicit war entry.
func shouldFight(s *game.State, a, b *game.Unit) bool {
	if a.OwnerID == b.OwnerID {
		return false
	}
	if a.Strength <= 0 || b.Strength <= 0 {
		return false
	}
	return s.Hostile(a.OwnerID, b.OwnerID)
}

// combatDamage computes one direction of damage from attacker to defender.
func combatDamage(s *game.State, attacker, defender *game.Unit, rng entropy.Source) int {
	terrainMod := 1 / world.CoarseDefense(s.Grid.TerrainAt(defender.Q, defender.R))
	healthMod := float64(attacker.HP) / float64(attacker.MaxHP)
	groupMod := 1 + 0.1*float64(alliesNearby(s, attacker))
	randomFactor := 0.8 + rng.Float()*0.4

	dmg := math.Round(float64(attacker.Strength) * terrainMod * healthMod * groupMod * randomFactor)
	if dmg < 1 {
		dmg = 1
	}
	return int(dmg)
}

// alliesNearby counts the attacker's own-side units within axial distance 2,
// excluding the attacker itself.
func alliesNearby(s *game.State, u *game.Unit) int {
	n := 0
	for _, other := range s.AllUnits() {
		if other.ID == u.ID || other.OwnerID != u.OwnerID {
			continue
		}
		if world.AxialDistance(u.Q, u.R, other.Q, other.R) <= 2 {
			n++
		}
	}
	return n
}
