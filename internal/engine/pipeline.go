package engine

import (
	"github.com/talgya/hexdominion/internal/entropy"
	"github.com/talgya/hexdominion/internal/game"
)

// executeTick runs the nine systems in their fixed order and collects their
// events. Order matters: resources precede AI (AI reads income and resource
// signs), AI sets intent before movement executes it, combat resolves after
// movement so adjacency reflects this tick's positions, and fog runs last
// before victory so elimination and view delivery see consistent
// visibility.
func executeTick(s *game.State, rng entropy.Source) []Event {
	if s.Paused {
		return nil
	}
	s.Tick++

	var events []Event

	tickResources(s)
	events = append(events, tickUnitAI(s)...)
	events = append(events, tickNeutrals(s)...)
	events = append(events, tickBarbarianCamps(s)...)
	events = append(events, tickMovement(s)...)
	events = append(events, tickCombat(s, rng)...)
	tickSettlements(s)
	events = append(events, tickResearch(s)...)
	tickAdvisorLoyalty(s)
	tickFog(s)
	events = append(events, checkVictory(s)...)

	return events
}
