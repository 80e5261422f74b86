package engine

import (
	"fmt"

	"github.com/talgya/hexdominion/internal/defs"
	"github.com/talgya/hexdominion/internal/game"
	"github.com/talgya/hexdominion/internal/world"
)

// foundSettlement creates a non-capital outpost at (q, r) when the tile is
// land and strictly farther than Euclidean distance 5 from every existing
// settlement. Returns nil when either check fails.
func foundSettlement(s *game.State, playerID string, q, r int) *game.Settlement {
	if !s.Grid.InBounds(q, r) || !world.IsLand(s.Grid.Terrain[s.Grid.Index(q, r)]) {
		return nil
	}
	for _, st := range s.Settlements {
		if game.EuclidSq(q, r, st.Q, st.R) <= 25 {
			return nil
		}
	}
	st := game.NewSettlement(playerID, q, r, defs.TierOutpost, s.NextSettlementName(), false)
	s.Settlements[st.ID] = st
	return st
}

// constructBuilding validates ownership, slot capacity, and production cost,
// then appends the building.
func constructBuilding(s *game.State, settlementID string, buildingType defs.BuildingType, playerID string) error {
	def, err := defs.BuildingDefByType(buildingType)
	if err != nil {
		return fmt.Errorf("%w: building type %q", game.ErrNotFound, buildingType)
	}
	st, ok := s.Settlements[settlementID]
	if !ok {
		return fmt.Errorf("%w: settlement %q", game.ErrNotFound, settlementID)
	}
	if st.OwnerID != playerID {
		return fmt.Errorf("%w: settlement %q", game.ErrForbidden, settlementID)
	}
	p, ok := s.Players[playerID]
	if !ok {
		return fmt.Errorf("%w: player %q", game.ErrNotFound, playerID)
	}
	if p.Eliminated {
		return game.ErrEliminated
	}
	if len(st.Buildings) >= st.BuildingSlots {
		return fmt.Errorf("%w: no free building slot", game.ErrBadRequest)
	}
	if p.Resources[defs.ResourceProduction] < def.ProductionCost {
		return fmt.Errorf("%w: insufficient production", game.ErrBadRequest)
	}

	p.Resources[defs.ResourceProduction] -= def.ProductionCost
	st.Buildings = append(st.Buildings, def.Type)
	return nil
}

// tickSettlements promotes settlements one tier at most per tick when the
// owner's food stockpile reaches the next tier's growth threshold. Promotion
// refreshes tier-derived stats and fully heals; food is not deducted.
func tickSettlements(s *game.State) {
	for _, id := range sortedKeys(s.Settlements) {
		st := s.Settlements[id]
		p, ok := s.Players[st.OwnerID]
		if !ok || p.Eliminated {
			continue
		}
		next := defs.NextTier(st.Tier)
		if next == "" {
			continue
		}
		td, err := defs.TierDefByID(next)
		if err != nil || p.Resources[defs.ResourceFood] < td.GrowthFood {
			continue
		}

		st.Tier = next
		st.BuildingSlots = td.BuildingSlots
		st.GatherRadius = td.GatherRadius
		st.MaxHP = td.MaxHP
		st.Defense = td.Defense
		st.HP = st.MaxHP
	}
}
