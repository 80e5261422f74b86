package engine

import (
	"errors"
	"testing"

	"github.com/talgya/hexdominion/internal/defs"
	"github.com/talgya/hexdominion/internal/game"
	"github.com/talgya/hexdominion/internal/world"
)

func TestFoundSettlementSeparation(t *testing.T) {
	s := newTestState(t, 20, 20, "p1")
	cap := capitalOf(t, s, "p1") // (5,5) on the flat test map

	// Euclidean distance exactly 5 is still too close.
	if st := foundSettlement(s, "p1", cap.Q+5, cap.R); st != nil {
		t.Error("founding at distance 5 accepted")
	}
	// Distance 6 clears the threshold.
	st := foundSettlement(s, "p1", cap.Q+6, cap.R)
	if st == nil {
		t.Fatal("founding at distance 6 rejected")
	}
	if st.IsCapital {
		t.Error("founded settlement marked capital")
	}
	if st.Tier != defs.TierOutpost {
		t.Errorf("tier = %s, want outpost", st.Tier)
	}
	if _, ok := s.Settlements[st.ID]; !ok {
		t.Error("settlement not registered in state")
	}
}

func TestFoundSettlementRejectsWater(t *testing.T) {
	s := newTestState(t, 20, 20, "p1")
	s.Grid.Terrain[s.Grid.Index(15, 15)] = world.TerrainShallowWater

	if st := foundSettlement(s, "p1", 15, 15); st != nil {
		t.Error("founded a settlement on water")
	}
	if st := foundSettlement(s, "p1", -1, 3); st != nil {
		t.Error("founded a settlement out of bounds")
	}
}

func TestConstructBuilding(t *testing.T) {
	s := newTestState(t, 20, 20, "p1", "p2")
	cap := capitalOf(t, s, "p1")
	p := s.Players["p1"]
	p.Resources[defs.ResourceProduction] = 100

	if err := constructBuilding(s, cap.ID, defs.BuildingFarm, "p1"); err != nil {
		t.Fatalf("construct farm: %v", err)
	}
	if !cap.HasBuilding(defs.BuildingFarm) {
		t.Error("farm missing from settlement")
	}
	if got := p.Resources[defs.ResourceProduction]; got != 80 {
		t.Errorf("production = %v, want 80", got)
	}

	// Outposts have two slots; the third build must fail.
	if err := constructBuilding(s, cap.ID, defs.BuildingGranary, "p1"); err != nil {
		t.Fatalf("construct granary: %v", err)
	}
	err := constructBuilding(s, cap.ID, defs.BuildingMarket, "p1")
	if !errors.Is(err, game.ErrBadRequest) {
		t.Errorf("slot overflow error = %v, want ErrBadRequest", err)
	}
}

func TestConstructBuildingValidation(t *testing.T) {
	s := newTestState(t, 20, 20, "p1", "p2")
	cap := capitalOf(t, s, "p1")

	if err := constructBuilding(s, cap.ID, "ziggurat", "p1"); !errors.Is(err, game.ErrNotFound) {
		t.Errorf("unknown building error = %v, want ErrNotFound", err)
	}
	if err := constructBuilding(s, "missing", defs.BuildingFarm, "p1"); !errors.Is(err, game.ErrNotFound) {
		t.Errorf("unknown settlement error = %v, want ErrNotFound", err)
	}
	if err := constructBuilding(s, cap.ID, defs.BuildingFarm, "p2"); !errors.Is(err, game.ErrForbidden) {
		t.Errorf("foreign owner error = %v, want ErrForbidden", err)
	}

	s.Players["p1"].Resources[defs.ResourceProduction] = 5
	if err := constructBuilding(s, cap.ID, defs.BuildingFarm, "p1"); !errors.Is(err, game.ErrBadRequest) {
		t.Errorf("unaffordable error = %v, want ErrBadRequest", err)
	}

	s.Players["p1"].Eliminated = true
	s.Players["p1"].Resources[defs.ResourceProduction] = 100
	if err := constructBuilding(s, cap.ID, defs.BuildingFarm, "p1"); !errors.Is(err, game.ErrEliminated) {
		t.Errorf("eliminated error = %v, want ErrEliminated", err)
	}
}

func TestSettlementGrowth(t *testing.T) {
	s := newTestState(t, 20, 20, "p1")
	cap := capitalOf(t, s, "p1")
	p := s.Players["p1"]

	cap.HP = 40 // wounded; growth must heal

	p.Resources[defs.ResourceFood] = 199
	tickSettlements(s)
	if cap.Tier != defs.TierOutpost {
		t.Fatalf("grew below the threshold: %s", cap.Tier)
	}

	p.Resources[defs.ResourceFood] = 200
	tickSettlements(s)
	if cap.Tier != defs.TierSettlement {
		t.Fatalf("tier = %s, want settlement", cap.Tier)
	}
	if cap.BuildingSlots != 4 || cap.GatherRadius != 3 {
		t.Errorf("slots/radius = %d/%d, want 4/3", cap.BuildingSlots, cap.GatherRadius)
	}
	if cap.MaxHP != 200 || cap.HP != 200 {
		t.Errorf("hp = %d/%d, want 200/200 after promotion heal", cap.HP, cap.MaxHP)
	}
	if got := p.Resources[defs.ResourceFood]; got != 200 {
		t.Errorf("food = %v, growth must not consume the stockpile", got)
	}

	// One promotion per tick: even with city-level food the same tick only
	// moved one tier. The next tick at 500 food reaches city.
	p.Resources[defs.ResourceFood] = 500
	tickSettlements(s)
	if cap.Tier != defs.TierCity {
		t.Fatalf("tier = %s, want city", cap.Tier)
	}
	if cap.BuildingSlots != 6 || cap.MaxHP != 400 {
		t.Errorf("city stats = %d slots / %d maxHP", cap.BuildingSlots, cap.MaxHP)
	}

	// City is terminal.
	tickSettlements(s)
	if cap.Tier != defs.TierCity {
		t.Errorf("city grew into %s", cap.Tier)
	}
}
