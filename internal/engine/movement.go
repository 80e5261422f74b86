package engine

import (
	"github.com/talgya/hexdominion/internal/game"
)

// tickMovement advances every targeted player unit along a BFS path over
// passable terrain. Roads at the unit's current tile grant one extra step.
func tickMovement(s *game.State) []Event {
	var events []Event

	for _, p := range s.PlayersInOrder() {
		for _, u := range s.UnitsOf(p.UserID) {
			if !u.HasTarget {
				continue
			}
			switch u.State {
			case game.UnitMoving, game.UnitReturning, game.UnitGathering, game.UnitBuilding:
			default:
				continue
			}

			if u.AtTarget() {
				u.ClearTarget()
				continue
			}

			path := s.Grid.FindPath(u.Q, u.R, u.TargetQ, u.TargetR)
			if len(path) <= 1 {
				// Unreachable or blocked; hold position, keep intent.
				continue
			}

			speed := u.MoveSpeed
			if s.Improvements[game.ImprovementKey(u.Q, u.R)] == game.ImprovementRoad {
				speed++
			}
			step := speed
			if step > len(path)-1 {
				step = len(path) - 1
			}
			u.Q, u.R = path[step][0], path[step][1]
			events = append(events, Event{Type: EventUnitMoved, Data: UnitMoved{
				UnitID: u.ID,
				Q:      u.Q,
				R:      u.R,
			}})

			if u.AtTarget() {
				u.ClearTarget()
			}
		}
	}

	return events
}
