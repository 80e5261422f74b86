package engine

import (
	"github.com/talgya/hexdominion/internal/defs"
	"github.com/talgya/hexdominion/internal/game"
)

// checkElimination marks any player holding no settlements as eliminated.
func checkElimination(s *game.State) []Event {
	var events []Event
	for _, p := range s.PlayersInOrder() {
		if p.Eliminated {
			continue
		}
		if len(s.SettlementsOf(p.UserID)) == 0 {
			p.Eliminated = true
			events = append(events, Event{Type: EventPlayerEliminated, Data: PlayerEliminated{
				PlayerID: p.UserID,
			}})
		}
	}
	return events
}

// checkVictory runs elimination then scans for a winner: a lone survivor
// wins by last_standing; otherwise the first player in insertion order
// meeting a condition wins, with per-player priority domination, prosperity,
// influence, enlightenment.
func checkVictory(s *game.State) []Event {
	events := checkElimination(s)

	var alive []*game.Player
	for _, p := range s.PlayersInOrder() {
		if !p.Eliminated {
			alive = append(alive, p)
		}
	}
	if len(alive) == 1 {
		return append(events, Event{Type: EventVictory, Data: Victory{
			WinnerID:    alive[0].UserID,
			VictoryType: VictoryLastStanding,
		}})
	}

	for _, p := range alive {
		if vt, won := victoryCondition(s, p); won {
			return append(events, Event{Type: EventVictory, Data: Victory{
				WinnerID:    p.UserID,
				VictoryType: vt,
			}})
		}
	}
	return events
}

func victoryCondition(s *game.State, p *game.Player) (VictoryType, bool) {
	if ownsAllCapitals(s, p.UserID) {
		return VictoryDomination, true
	}
	if p.Resources[defs.ResourceGold] >= 10000 {
		return VictoryProsperity, true
	}
	if p.Resources[defs.ResourceCulture] >= 10000 {
		return VictoryInfluence, true
	}
	if hasAllOpenTechs(p) {
		return VictoryEnlightenment, true
	}
	return "", false
}

// ownsAllCapitals requires at least one capital to exist and every capital
// to belong to the player.
func ownsAllCapitals(s *game.State, userID string) bool {
	capitals := 0
	for _, st := range s.Settlements {
		if !st.IsCapital {
			continue
		}
		capitals++
		if st.OwnerID != userID {
			return false
		}
	}
	return capitals >= 1
}

// hasAllOpenTechs reports whether the player researched every tech open to
// their faction.
func hasAllOpenTechs(p *game.Player) bool {
	have := make(map[defs.TechID]bool, len(p.ResearchedTechs))
	for _, id := range p.ResearchedTechs {
		have[id] = true
	}
	for _, t := range defs.AllTechs() {
		if t.FactionOnly != "" && t.FactionOnly != p.FactionID {
			continue
		}
		if !have[t.ID] {
			return false
		}
	}
	return true
}
