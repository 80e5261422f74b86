package engine

import (
	"github.com/talgya/hexdominion/internal/game"
)

// tickFog recomputes visibility for each non-eliminated player: every
// visible tile decays to explored, then units and settlements re-promote
// their Euclidean discs back to visible.
func tickFog(s *game.State) {
	for _, p := range s.PlayersInOrder() {
		if p.Eliminated {
			continue
		}

		for i, v := range p.FogMap {
			if v == game.FogVisible {
				p.FogMap[i] = game.FogExplored
			}
		}

		for _, u := range s.UnitsOf(p.UserID) {
			game.RevealDisc(p.FogMap, s.Grid, u.Q, u.R, u.VisionRange, game.FogVisible)
		}
		for _, st := range s.SettlementsOf(p.UserID) {
			game.RevealDisc(p.FogMap, s.Grid, st.Q, st.R, st.GatherRadius, game.FogVisible)
		}
	}
}
