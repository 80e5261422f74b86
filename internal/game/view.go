package game

import (
	"fmt"

	"github.com/talgya/hexdominion/internal/defs"
)

// ClientPlayerState is the fog-filtered snapshot delivered to one player
// every tick. All nested data is copied; holders cannot alias live state.
type ClientPlayerState struct {
	Tick   uint64  `json:"tick"`
	Paused bool    `json:"paused"`
	Speed  float64 `json:"speed"`

	FactionID defs.FactionID `json:"factionId"`

	Resources      map[defs.Resource]float64 `json:"resources"`
	ResourceIncome map[defs.Resource]float64 `json:"resourceIncome"`
	ResourceUpkeep map[defs.Resource]float64 `json:"resourceUpkeep"`

	Advisors [5]Advisor `json:"advisors"`
	Policies Policies   `json:"policies"`

	CurrentResearch  defs.TechID   `json:"currentResearch"`
	ResearchProgress float64       `json:"researchProgress"`
	ResearchedTechs  []defs.TechID `json:"researchedTechs"`
	PassedLaws       []defs.LawID  `json:"passedLaws"`

	Diplomacy []DiplomacyState `json:"diplomacy"`

	VisibleSettlements []Settlement `json:"visibleSettlements"`
	VisibleUnits       []Unit       `json:"visibleUnits"`

	FogMap []byte `json:"fogMap"`
}

// GetPlayerView builds the per-player snapshot: own entities always, other
// owners' settlements and units only on tiles the player currently sees.
func (s *State) GetPlayerView(userID string) (*ClientPlayerState, error) {
	p, ok := s.Players[userID]
	if !ok {
		return nil, fmt.Errorf("%w: player %q", ErrNotFound, userID)
	}

	view := &ClientPlayerState{
		Tick:             s.Tick,
		Paused:           s.Paused,
		Speed:            s.Speed,
		FactionID:        p.FactionID,
		Resources:        CloneResourceSet(p.Resources),
		ResourceIncome:   CloneResourceSet(p.ResourceIncome),
		ResourceUpkeep:   CloneResourceSet(p.ResourceUpkeep),
		Advisors:         p.Advisors,
		Policies:         p.Policies,
		CurrentResearch:  p.CurrentResearch,
		ResearchProgress: p.ResearchProgress,
		ResearchedTechs:  append([]defs.TechID(nil), p.ResearchedTechs...),
		PassedLaws:       append([]defs.LawID(nil), p.PassedLaws...),
		FogMap:           append([]byte(nil), p.FogMap...),
	}

	for _, d := range s.Diplomacy {
		view.Diplomacy = append(view.Diplomacy, *d)
	}

	visible := func(q, r int) bool {
		return s.Grid.InBounds(q, r) && p.FogMap[s.Grid.Index(q, r)] == FogVisible
	}

	for _, id := range sortedKeys(s.Settlements) {
		st := s.Settlements[id]
		if st.OwnerID == userID || visible(st.Q, st.R) {
			cp := *st
			cp.Buildings = append([]defs.BuildingType(nil), st.Buildings...)
			view.VisibleSettlements = append(view.VisibleSettlements, cp)
		}
	}

	for _, u := range s.AllUnits() {
		if u.OwnerID == userID || visible(u.Q, u.R) {
			view.VisibleUnits = append(view.VisibleUnits, *u)
		}
	}

	return view, nil
}
