package game

import (
	"testing"

	"github.com/talgya/hexdominion/internal/defs"
)

func TestGetPlayerViewOwnAndFog(t *testing.T) {
	s, err := Create(flatConfig(20, 20, "p1", "p2"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	p1 := s.Players["p1"]
	own := s.SettlementsOf("p1")[0]
	other := s.SettlementsOf("p2")[0]

	view, err := s.GetPlayerView("p1")
	if err != nil {
		t.Fatalf("GetPlayerView: %v", err)
	}

	if view.FactionID != p1.FactionID {
		t.Errorf("faction = %s, want %s", view.FactionID, p1.FactionID)
	}
	if len(view.FogMap) != 400 {
		t.Fatalf("fog length = %d, want 400", len(view.FogMap))
	}

	visibleTiles := 0
	for _, v := range view.FogMap {
		if v == FogVisible {
			visibleTiles++
		}
	}
	if visibleTiles == 0 {
		t.Error("no visible tiles around the fresh capital")
	}

	var sawOwn, sawOther bool
	for _, st := range view.VisibleSettlements {
		if st.ID == own.ID {
			sawOwn = true
		}
		if st.ID == other.ID {
			sawOther = true
		}
	}
	if !sawOwn {
		t.Error("own capital missing from the view")
	}
	if sawOther {
		t.Error("fogged foreign capital leaked into the view")
	}
}

func TestGetPlayerViewRevealsForeignUnits(t *testing.T) {
	s, err := Create(flatConfig(20, 20, "p1", "p2"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	own := s.SettlementsOf("p1")[0]

	// A foreign unit standing on a tile p1 currently sees.
	s.Units["intruder"] = &Unit{
		ID: "intruder", Type: defs.UnitScout, OwnerID: "p2",
		Q: own.Q + 1, R: own.R, HP: 20, MaxHP: 20,
		Strength: 2, VisionRange: 4, MoveSpeed: 2, State: UnitIdle,
	}
	// A foreign unit far outside any visible disc.
	s.Units["lurker"] = &Unit{
		ID: "lurker", Type: defs.UnitScout, OwnerID: "p2",
		Q: 0, R: 0, HP: 20, MaxHP: 20,
		Strength: 2, VisionRange: 4, MoveSpeed: 2, State: UnitIdle,
	}
	s.Players["p1"].FogMap[s.Grid.Index(0, 0)] = FogUnexplored

	view, err := s.GetPlayerView("p1")
	if err != nil {
		t.Fatalf("GetPlayerView: %v", err)
	}

	var sawIntruder, sawLurker bool
	for _, u := range view.VisibleUnits {
		switch u.ID {
		case "intruder":
			sawIntruder = true
		case "lurker":
			sawLurker = true
		}
	}
	if !sawIntruder {
		t.Error("foreign unit on a visible tile missing from the view")
	}
	if sawLurker {
		t.Error("fogged foreign unit leaked into the view")
	}
}

func TestGetPlayerViewCopiesState(t *testing.T) {
	s, err := Create(flatConfig(20, 20, "p1"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	view, err := s.GetPlayerView("p1")
	if err != nil {
		t.Fatalf("GetPlayerView: %v", err)
	}

	view.Resources[defs.ResourceGold] = 0
	view.FogMap[0] = FogVisible
	view.VisibleSettlements[0].HP = 1

	p := s.Players["p1"]
	if p.Resources[defs.ResourceGold] != 100 {
		t.Error("view resources alias live state")
	}
	// The corner tile sits outside the capital's reveal disc, so the write
	// to the view copy must not show up in live fog.
	if p.FogMap[0] == FogVisible {
		t.Error("view fog aliases live state")
	}
	if s.SettlementsOf("p1")[0].HP == 1 {
		t.Error("view settlements alias live state")
	}
}

func TestGetPlayerViewUnknownPlayer(t *testing.T) {
	s, err := Create(flatConfig(20, 20, "p1"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := s.GetPlayerView("ghost"); err == nil {
		t.Error("expected an error for an unknown player")
	}
}
