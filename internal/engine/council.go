package engine

import (
	"fmt"

	"github.com/talgya/hexdominion/internal/defs"
	"github.com/talgya/hexdominion/internal/game"
)

// Vote is one advisor's ballot on a proposed law.
type Vote struct {
	Advisor defs.AdvisorType `json:"advisor"`
	Yes     bool             `json:"yes"`
	Reason  string           `json:"reason"`
}

// LawResult is the outcome of a council vote.
type LawResult struct {
	LawID  defs.LawID `json:"lawId"`
	Passed bool       `json:"passed"`
	Votes  []Vote     `json:"votes"`
}

// proposeLaw puts a law before the player's council. The culture cost is
// deducted whether or not the vote passes. A passed law joins passedLaws and
// its loyalty and diplomacy effects apply immediately; modifier effects are
// recorded by presence only.
func proposeLaw(s *game.State, playerID string, lawID defs.LawID, targetPlayerID string) (*LawResult, []Event, error) {
	p, ok := s.Players[playerID]
	if !ok {
		return nil, nil, fmt.Errorf("%w: player %q", game.ErrNotFound, playerID)
	}
	if p.Eliminated {
		return nil, nil, game.ErrEliminated
	}
	law, err := defs.LawByID(lawID)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: law %q", game.ErrNotFound, lawID)
	}

	available := false
	for _, l := range defs.AvailableLaws(p.PassedLaws, p.FactionID) {
		if l.ID == lawID {
			available = true
			break
		}
	}
	if !available {
		return nil, nil, fmt.Errorf("%w: law %q not available", game.ErrBadRequest, lawID)
	}
	if p.Resources[defs.ResourceCulture] < law.CultureCost {
		return nil, nil, fmt.Errorf("%w: insufficient culture", game.ErrBadRequest)
	}

	// The council convenes whether or not it approves; the cost is sunk.
	p.Resources[defs.ResourceCulture] -= law.CultureCost

	votes := collectVotes(s, p, law)
	yes := 0
	for _, v := range votes {
		if v.Yes {
			yes++
		}
	}
	passed := yes >= 3

	result := &LawResult{LawID: lawID, Passed: passed, Votes: votes}
	resolved := LawResolved{LawID: lawID, PlayerID: playerID, Passed: passed, Votes: votes}

	if !passed {
		return result, []Event{{Type: EventLawRejected, Data: resolved}}, nil
	}

	p.PassedLaws = append(p.PassedLaws, lawID)
	events := []Event{{Type: EventLawPassed, Data: resolved}}
	events = append(events, applyLawEffects(s, p, law, targetPlayerID)...)
	return result, events, nil
}

// collectVotes asks each of the five advisors in fixed order. Effective
// loyalty bands: high >= 70, low < 30, mid otherwise.
func collectVotes(s *game.State, p *game.Player, law *defs.Law) []Vote {
	warriors := 0
	for _, u := range s.UnitsOf(p.UserID) {
		if u.Type == defs.UnitWarrior {
			warriors++
		}
	}
	gold := p.Resources[defs.ResourceGold]
	food := p.Resources[defs.ResourceFood]
	cultureIncome := p.ResourceIncome[defs.ResourceCulture]
	atWar := false
	for _, d := range s.Diplomacy {
		if d.Status == game.DiplomacyWar && (d.PlayerA == p.UserID || d.PlayerB == p.UserID) {
			atWar = true
			break
		}
	}
	military := law.Branch == defs.BranchMilitary

	votes := make([]Vote, 0, len(defs.AllAdvisors))
	for _, t := range defs.AllAdvisors {
		loyalty := p.Advisor(t).Loyalty
		var v Vote
		v.Advisor = t

		switch t {
		case defs.AdvisorGeneral:
			switch {
			case military && warriors >= 3:
				v.Yes, v.Reason = true, "a strong army backs this"
			case loyalty < 30:
				v.Yes, v.Reason = false, "distrusts the crown"
			case loyalty >= 70:
				v.Yes, v.Reason = true, "loyal to the crown"
			case military:
				v.Yes, v.Reason = false, "the army is too weak"
			default:
				v.Yes, v.Reason = true, "no military objection"
			}

		case defs.AdvisorTreasurer:
			switch {
			case loyalty < 30:
				v.Yes, v.Reason = false, "distrusts the crown"
			case gold <= 0:
				v.Yes, v.Reason = false, "the treasury is empty"
			case law.Branch == defs.BranchEconomy:
				v.Yes, v.Reason = true, "sound fiscal policy"
			default:
				v.Yes, v.Reason = true, "the treasury can bear it"
			}

		case defs.AdvisorPriest:
			switch {
			case loyalty < 30:
				v.Yes, v.Reason = false, "distrusts the crown"
			case military:
				v.Yes, v.Reason = false, "opposes bloodshed"
			case loyalty >= 70:
				v.Yes, v.Reason = true, "loyal to the crown"
			case cultureIncome > 0:
				v.Yes, v.Reason = true, "the faithful prosper"
			default:
				v.Yes, v.Reason = false, "the temples are neglected"
			}

		case defs.AdvisorScholar:
			switch {
			case law.ReducesScience() && loyalty < 90:
				v.Yes, v.Reason = false, "it would starve the academies"
			case loyalty < 30:
				v.Yes, v.Reason = false, "distrusts the crown"
			default:
				v.Yes, v.Reason = true, "no scholarly objection"
			}

		case defs.AdvisorTribune:
			switch {
			case loyalty < 30:
				v.Yes, v.Reason = false, "distrusts the crown"
			case food <= 0:
				v.Yes, v.Reason = false, "the people go hungry"
			case atWar && loyalty < 70:
				v.Yes, v.Reason = false, "the people tire of war"
			default:
				v.Yes, v.Reason = true, "the people consent"
			}
		}

		votes = append(votes, v)
	}
	return votes
}

// applyLawEffects applies loyalty_change and diplomacy_change effects. The
// modifier effect kinds take effect by presence in passedLaws alone.
func applyLawEffects(s *game.State, p *game.Player, law *defs.Law, targetPlayerID string) []Event {
	var events []Event

	for _, e := range law.Effects {
		switch e.Type {
		case defs.EffectLoyaltyChange:
			for i := range p.Advisors {
				a := &p.Advisors[i]
				if e.Target != "" && string(a.Type) != e.Target {
					continue
				}
				a.Loyalty = clampInt(a.Loyalty+int(e.Value), 0, 100)
			}

		case defs.EffectDiplomacyChange:
			if targetPlayerID == "" {
				continue
			}
			var status game.DiplomacyStatus
			switch e.Target {
			case string(game.DiplomacyPeace):
				status = game.DiplomacyPeace
			case string(game.DiplomacyTension):
				status = game.DiplomacyTension
			case string(game.DiplomacyWar):
				status = game.DiplomacyWar
			default:
				continue
			}
			d := s.DiplomacyBetween(p.UserID, targetPlayerID)
			if d == nil || d.Status == status {
				continue
			}
			d.Status = status
			changed := DiplomacyChanged{PlayerA: d.PlayerA, PlayerB: d.PlayerB}
			switch status {
			case game.DiplomacyWar:
				events = append(events, Event{Type: EventWarDeclared, Data: changed})
			case game.DiplomacyPeace:
				events = append(events, Event{Type: EventPeaceDeclared, Data: changed})
			}
		}
	}

	return events
}

// tickAdvisorLoyalty drifts each advisor's loyalty one point per tick toward
// the state of their domain.
func tickAdvisorLoyalty(s *game.State) {
	for _, p := range s.PlayersInOrder() {
		if p.Eliminated {
			continue
		}

		warriors := 0
		for _, u := range s.UnitsOf(p.UserID) {
			if u.Type == defs.UnitWarrior {
				warriors++
			}
		}

		for i := range p.Advisors {
			a := &p.Advisors[i]
			content := false
			switch a.Type {
			case defs.AdvisorGeneral:
				content = warriors >= 3
			case defs.AdvisorTreasurer:
				content = p.Resources[defs.ResourceGold] > 0
			case defs.AdvisorPriest:
				content = p.ResourceIncome[defs.ResourceCulture] > 0
			case defs.AdvisorScholar:
				content = p.CurrentResearch != ""
			case defs.AdvisorTribune:
				content = p.Resources[defs.ResourceFood] > 0
			}
			if content {
				a.Loyalty = clampInt(a.Loyalty+1, 0, 100)
			} else {
				a.Loyalty = clampInt(a.Loyalty-1, 0, 100)
			}
		}
	}
}
