package engine

import (
	"testing"

	"github.com/talgya/hexdominion/internal/defs"
	"github.com/talgya/hexdominion/internal/game"
)

func removeSettlementsOf(s *game.State, userID string) {
	for id, st := range s.Settlements {
		if st.OwnerID == userID {
			delete(s.Settlements, id)
		}
	}
}

func victoryEvent(t *testing.T, events []Event) Victory {
	t.Helper()
	wins := eventsOfType(events, EventVictory)
	if len(wins) != 1 {
		t.Fatalf("victory events = %d, want 1 in %v", len(wins), events)
	}
	return wins[0].Data.(Victory)
}

func TestVictoryLastStanding(t *testing.T) {
	s := newTestState(t, 20, 20, "p1", "p2")
	removeSettlementsOf(s, "p2")

	events := checkVictory(s)

	elim := eventsOfType(events, EventPlayerEliminated)
	if len(elim) != 1 || elim[0].Data.(PlayerEliminated).PlayerID != "p2" {
		t.Fatalf("elimination events = %v", elim)
	}
	if !s.Players["p2"].Eliminated {
		t.Error("p2 not flagged eliminated")
	}
	v := victoryEvent(t, events)
	if v.WinnerID != "p1" || v.VictoryType != VictoryLastStanding {
		t.Errorf("victory = %+v, want p1 last_standing", v)
	}
}

func TestVictoryDomination(t *testing.T) {
	s := newTestState(t, 20, 20, "p1", "p2")

	// p1 captures p2's capital while p2 keeps a lesser settlement, so both
	// players stay alive.
	capitalOf(t, s, "p2").OwnerID = "p1"
	st := game.NewSettlement("p2", 12, 12, defs.TierOutpost, "Holdfast", false)
	s.Settlements[st.ID] = st

	v := victoryEvent(t, checkVictory(s))
	if v.WinnerID != "p1" || v.VictoryType != VictoryDomination {
		t.Errorf("victory = %+v, want p1 domination", v)
	}
}

func TestVictoryProsperityBoundary(t *testing.T) {
	s := newTestState(t, 20, 20, "p1", "p2")
	p := s.Players["p1"]

	p.Resources[defs.ResourceGold] = 9999
	if events := checkVictory(s); len(eventsOfType(events, EventVictory)) != 0 {
		t.Fatalf("won below the gold threshold: %v", events)
	}

	p.Resources[defs.ResourceGold] = 10000
	v := victoryEvent(t, checkVictory(s))
	if v.WinnerID != "p1" || v.VictoryType != VictoryProsperity {
		t.Errorf("victory = %+v, want p1 prosperity", v)
	}
}

func TestVictoryInfluence(t *testing.T) {
	s := newTestState(t, 20, 20, "p1", "p2")
	s.Players["p2"].Resources[defs.ResourceCulture] = 10000

	v := victoryEvent(t, checkVictory(s))
	if v.WinnerID != "p2" || v.VictoryType != VictoryInfluence {
		t.Errorf("victory = %+v, want p2 influence", v)
	}
}

func TestVictoryEnlightenment(t *testing.T) {
	s := newTestState(t, 20, 20, "p1", "p2")
	p := s.Players["p1"] // solari

	for _, tech := range defs.AllTechs() {
		if tech.FactionOnly != "" && tech.FactionOnly != p.FactionID {
			continue
		}
		p.ResearchedTechs = append(p.ResearchedTechs, tech.ID)
	}

	v := victoryEvent(t, checkVictory(s))
	if v.WinnerID != "p1" || v.VictoryType != VictoryEnlightenment {
		t.Errorf("victory = %+v, want p1 enlightenment", v)
	}
}

func TestVictoryEnlightenmentExcludesForeignTechs(t *testing.T) {
	s := newTestState(t, 20, 20, "p1", "p2")
	p := s.Players["p1"]

	// All commons but not the own-faction branch: not yet enlightened.
	for _, tech := range defs.AllTechs() {
		if tech.FactionOnly != "" {
			continue
		}
		p.ResearchedTechs = append(p.ResearchedTechs, tech.ID)
	}

	if events := checkVictory(s); len(eventsOfType(events, EventVictory)) != 0 {
		t.Errorf("won without the faction branch: %v", events)
	}
}

func TestNoVictoryWhileContested(t *testing.T) {
	s := newTestState(t, 20, 20, "p1", "p2")
	if events := checkVictory(s); len(events) != 0 {
		t.Errorf("fresh two-player game produced events: %v", events)
	}
}
