package engine

import (
	"errors"
	"testing"

	"github.com/talgya/hexdominion/internal/defs"
	"github.com/talgya/hexdominion/internal/game"
)

func TestStartResearch(t *testing.T) {
	s := newTestState(t, 20, 20, "p1")
	p := s.Players["p1"]

	if err := startResearch(s, "p1", "agriculture"); err != nil {
		t.Fatalf("start agriculture: %v", err)
	}
	if p.CurrentResearch != "agriculture" {
		t.Errorf("current = %s, want agriculture", p.CurrentResearch)
	}

	// Switching targets discards accumulated progress.
	p.ResearchProgress = 15
	if err := startResearch(s, "p1", "pottery"); err != nil {
		t.Fatalf("switch to pottery: %v", err)
	}
	if p.CurrentResearch != "pottery" || p.ResearchProgress != 0 {
		t.Errorf("after switch: %s at %v, want pottery at 0", p.CurrentResearch, p.ResearchProgress)
	}
}

func TestStartResearchValidation(t *testing.T) {
	s := newTestState(t, 20, 20, "p1")

	if err := startResearch(s, "ghost", "agriculture"); !errors.Is(err, game.ErrNotFound) {
		t.Errorf("unknown player error = %v, want ErrNotFound", err)
	}
	if err := startResearch(s, "p1", "alchemy"); !errors.Is(err, game.ErrNotFound) {
		t.Errorf("unknown tech error = %v, want ErrNotFound", err)
	}
	// Currency requires pottery, which p1 lacks.
	if err := startResearch(s, "p1", "currency"); !errors.Is(err, game.ErrBadRequest) {
		t.Errorf("gated tech error = %v, want ErrBadRequest", err)
	}
	// Faction techs are closed to other factions; p1 is solari.
	if err := startResearch(s, "p1", "aurite_minting"); !errors.Is(err, game.ErrBadRequest) {
		t.Errorf("foreign faction tech error = %v, want ErrBadRequest", err)
	}

	s.Players["p1"].Eliminated = true
	if err := startResearch(s, "p1", "agriculture"); !errors.Is(err, game.ErrEliminated) {
		t.Errorf("eliminated error = %v, want ErrEliminated", err)
	}
}

func TestTickResearchCompletion(t *testing.T) {
	s := newTestState(t, 20, 20, "p1")
	p := s.Players["p1"]
	p.CurrentResearch = "agriculture" // cost 20
	p.ResearchProgress = 18
	p.ResourceIncome[defs.ResourceScience] = 5

	events := tickResearch(s)

	done := eventsOfType(events, EventTechResearched)
	if len(done) != 1 {
		t.Fatalf("techResearched events = %d, want 1", len(done))
	}
	tr := done[0].Data.(TechResearched)
	if tr.TechID != "agriculture" || tr.PlayerID != "p1" {
		t.Errorf("event = %+v", tr)
	}
	if len(p.ResearchedTechs) != 1 || p.ResearchedTechs[0] != "agriculture" {
		t.Errorf("researched = %v", p.ResearchedTechs)
	}
	if p.CurrentResearch != "" || p.ResearchProgress != 0 {
		t.Errorf("research slot not cleared: %s at %v", p.CurrentResearch, p.ResearchProgress)
	}
}

func TestTickResearchAccumulates(t *testing.T) {
	s := newTestState(t, 20, 20, "p1")
	p := s.Players["p1"]
	p.CurrentResearch = "writing" // cost 40
	p.ResourceIncome[defs.ResourceScience] = 7

	for i := 0; i < 5; i++ {
		if events := tickResearch(s); len(events) != 0 {
			t.Fatalf("completed early at iteration %d", i)
		}
	}
	if p.ResearchProgress != 35 {
		t.Errorf("progress = %v, want 35", p.ResearchProgress)
	}
	if events := tickResearch(s); len(events) != 1 {
		t.Errorf("expected completion on the sixth tick")
	}
}

func TestTickResearchIdlePlayersUntouched(t *testing.T) {
	s := newTestState(t, 20, 20, "p1", "p2")
	s.Players["p1"].ResourceIncome[defs.ResourceScience] = 5

	if events := tickResearch(s); len(events) != 0 {
		t.Errorf("idle research produced events: %v", events)
	}
	if s.Players["p1"].ResearchProgress != 0 {
		t.Error("progress moved with no target")
	}
}
