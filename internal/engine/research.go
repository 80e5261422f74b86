package engine

import (
	"fmt"

	"github.com/talgya/hexdominion/internal/defs"
	"github.com/talgya/hexdominion/internal/game"
)

// startResearch points a player's research at a tech that is currently
// available to them. Switching targets discards any accumulated progress.
func startResearch(s *game.State, playerID string, techID defs.TechID) error {
	p, ok := s.Players[playerID]
	if !ok {
		return fmt.Errorf("%w: player %q", game.ErrNotFound, playerID)
	}
	if p.Eliminated {
		return game.ErrEliminated
	}
	if _, err := defs.TechByID(techID); err != nil {
		return fmt.Errorf("%w: tech %q", game.ErrNotFound, techID)
	}

	available := false
	for _, t := range defs.AvailableTechs(p.ResearchedTechs, p.FactionID) {
		if t.ID == techID {
			available = true
			break
		}
	}
	if !available {
		return fmt.Errorf("%w: tech %q not available", game.ErrBadRequest, techID)
	}

	p.CurrentResearch = techID
	p.ResearchProgress = 0
	return nil
}

// tickResearch advances each researching player by their science income and
// completes techs whose cost is met.
func tickResearch(s *game.State) []Event {
	var events []Event

	for _, p := range s.PlayersInOrder() {
		if p.Eliminated || p.CurrentResearch == "" {
			continue
		}
		tech, err := defs.TechByID(p.CurrentResearch)
		if err != nil {
			p.CurrentResearch = ""
			p.ResearchProgress = 0
			continue
		}

		p.ResearchProgress += p.ResourceIncome[defs.ResourceScience]
		if p.ResearchProgress < tech.ScienceCost {
			continue
		}

		p.ResearchedTechs = append(p.ResearchedTechs, tech.ID)
		p.CurrentResearch = ""
		p.ResearchProgress = 0
		events = append(events, Event{Type: EventTechResearched, Data: TechResearched{
			TechID:   tech.ID,
			PlayerID: p.UserID,
		}})
	}

	return events
}
