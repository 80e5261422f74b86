package engine

import (
	"github.com/talgya/hexdominion/internal/defs"
	"github.com/talgya/hexdominion/internal/game"
)

// tickResources recomputes each non-eliminated player's income and upkeep,
// applies the delta to their stockpiles, and triggers the food crisis when
// the stockpile goes negative.
func tickResources(s *game.State) {
	for _, p := range s.PlayersInOrder() {
		if p.Eliminated {
			continue
		}

		faction, err := defs.FactionByID(p.FactionID)
		if err != nil {
			continue
		}

		income := game.NewResourceSet()
		for _, st := range s.SettlementsOf(p.UserID) {
			for _, b := range st.Buildings {
				def, err := defs.BuildingDefByType(b)
				if err != nil {
					continue
				}
				for res, v := range def.Income {
					income[res] += v
				}
			}
		}
		for _, res := range defs.AllResources {
			income[res] *= faction.ResourceModifier(res)
		}

		upkeep := game.NewResourceSet()
		units := s.UnitsOf(p.UserID)
		for _, u := range units {
			def, err := defs.UnitDefByType(u.Type)
			if err != nil {
				continue
			}
			upkeep[defs.ResourceFood] += def.FoodUpkeep
		}

		p.ResourceIncome = income
		p.ResourceUpkeep = upkeep
		for _, res := range defs.AllResources {
			p.Resources[res] += income[res] - upkeep[res]
		}

		// Food crisis: starving armies slow down, one point this tick,
		// never below 1.
		if p.Resources[defs.ResourceFood] < 0 {
			for _, u := range units {
				if u.MoveSpeed > 1 {
					u.MoveSpeed--
				}
			}
		}
	}
}
