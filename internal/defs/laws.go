package defs

// LawID identifies a law.
type LawID string

// LawBranch groups laws for advisor voting rules.
type LawBranch string

const (
	BranchMilitary LawBranch = "military"
	BranchEconomy  LawBranch = "economy"
	BranchSociety  LawBranch = "society"
)

// LawEffectType classifies a law effect. Only loyalty_change and
// diplomacy_change are applied directly on passage; the modifier kinds are
// recorded in passedLaws for other systems to read.
type LawEffectType string

const (
	EffectLoyaltyChange      LawEffectType = "loyalty_change"
	EffectDiplomacyChange    LawEffectType = "diplomacy_change"
	EffectResourceModifier   LawEffectType = "resource_modifier"
	EffectUnitModifier       LawEffectType = "unit_modifier"
	EffectSettlementModifier LawEffectType = "settlement_modifier"
	EffectSpecial            LawEffectType = "special"
)

// LawEffect is one effect entry on a law. Target is effect-dependent: an
// advisor type (or empty for all) for loyalty_change, a diplomacy status for
// diplomacy_change, a resource or stat name for the modifier kinds.
type LawEffect struct {
	Type   LawEffectType
	Target string
	Value  float64
}

// Law is one node of the law tree.
type Law struct {
	ID          LawID
	Name        string
	Branch      LawBranch
	CultureCost float64
	Requires    []LawID
	FactionOnly FactionID // empty = open to all factions
	Effects     []LawEffect
}

var lawOrder = []LawID{
	"taxation", "free_markets",
	"militia_training", "conscription", "war_economy", "war_pact",
	"temple_rites", "loyalty_oaths", "peace_mandate", "border_pressure", "royal_court",
}

var lawDefs = map[LawID]*Law{
	"taxation": {
		ID: "taxation", Name: "Taxation", Branch: BranchEconomy, CultureCost: 50,
		Effects: []LawEffect{{Type: EffectResourceModifier, Target: "gold", Value: 1.15}},
	},
	"free_markets": {
		ID: "free_markets", Name: "Free Markets", Branch: BranchEconomy, CultureCost: 75,
		Requires: []LawID{"taxation"},
		Effects:  []LawEffect{{Type: EffectResourceModifier, Target: "gold", Value: 1.2}},
	},
	"militia_training": {
		ID: "militia_training", Name: "Militia Training", Branch: BranchMilitary, CultureCost: 40,
		Effects: []LawEffect{{Type: EffectSettlementModifier, Target: "defense", Value: 1.1}},
	},
	"conscription": {
		ID: "conscription", Name: "Conscription", Branch: BranchMilitary, CultureCost: 60,
		Requires: []LawID{"militia_training"},
		Effects:  []LawEffect{{Type: EffectUnitModifier, Target: "strength", Value: 1.1}},
	},
	"war_economy": {
		ID: "war_economy", Name: "War Economy", Branch: BranchMilitary, CultureCost: 65,
		Effects: []LawEffect{
			{Type: EffectResourceModifier, Target: "production", Value: 1.2},
			{Type: EffectResourceModifier, Target: "science", Value: 0.8},
		},
	},
	"war_pact": {
		ID: "war_pact", Name: "War Pact", Branch: BranchMilitary, CultureCost: 80,
		Effects: []LawEffect{{Type: EffectDiplomacyChange, Target: "war"}},
	},
	"temple_rites": {
		ID: "temple_rites", Name: "Temple Rites", Branch: BranchSociety, CultureCost: 45,
		Effects: []LawEffect{{Type: EffectResourceModifier, Target: "culture", Value: 1.15}},
	},
	"loyalty_oaths": {
		ID: "loyalty_oaths", Name: "Loyalty Oaths", Branch: BranchSociety, CultureCost: 55,
		Effects: []LawEffect{{Type: EffectLoyaltyChange, Target: "", Value: 10}},
	},
	"peace_mandate": {
		ID: "peace_mandate", Name: "Peace Mandate", Branch: BranchSociety, CultureCost: 70,
		Effects: []LawEffect{{Type: EffectDiplomacyChange, Target: "peace"}},
	},
	"border_pressure": {
		ID: "border_pressure", Name: "Border Pressure", Branch: BranchSociety, CultureCost: 60,
		Effects: []LawEffect{{Type: EffectDiplomacyChange, Target: "tension"}},
	},
	"royal_court": {
		ID: "royal_court", Name: "Royal Court", Branch: BranchSociety, CultureCost: 90,
		Requires: []LawID{"loyalty_oaths"},
		Effects:  []LawEffect{{Type: EffectSpecial, Target: "court"}},
	},
}

// LawByID looks up a law.
func LawByID(id LawID) (*Law, error) {
	l, ok := lawDefs[id]
	if !ok {
		return nil, ErrUnknownID
	}
	return l, nil
}

// AllLaws returns the full law tree in a stable order.
func AllLaws() []*Law {
	out := make([]*Law, 0, len(lawOrder))
	for _, id := range lawOrder {
		out = append(out, lawDefs[id])
	}
	return out
}

// AvailableLaws returns the laws a player may propose: not yet passed, open
// to the faction, all prerequisite laws passed. Laws have no epoch gating.
func AvailableLaws(passed []LawID, faction FactionID) []*Law {
	have := make(map[LawID]bool, len(passed))
	for _, id := range passed {
		have[id] = true
	}

	var out []*Law
	for _, id := range lawOrder {
		l := lawDefs[id]
		if have[l.ID] {
			continue
		}
		if l.FactionOnly != "" && l.FactionOnly != faction {
			continue
		}
		met := true
		for _, req := range l.Requires {
			if !have[req] {
				met = false
				break
			}
		}
		if met {
			out = append(out, l)
		}
	}
	return out
}

// ReducesScience reports whether any effect on the law lowers the science
// income multiplier below 1. The Scholar advisor votes against such laws.
func (l *Law) ReducesScience() bool {
	for _, e := range l.Effects {
		if e.Type == EffectResourceModifier && e.Target == string(ResourceScience) && e.Value < 1 {
			return true
		}
	}
	return false
}

// DiplomacyTarget returns the diplomacy status named by a diplomacy_change
// effect, or "" when the law carries none.
func (l *Law) DiplomacyTarget() string {
	for _, e := range l.Effects {
		if e.Type == EffectDiplomacyChange {
			return e.Target
		}
	}
	return ""
}
