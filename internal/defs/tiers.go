package defs

// SettlementTier identifies a settlement growth stage.
type SettlementTier string

const (
	TierOutpost    SettlementTier = "outpost"
	TierSettlement SettlementTier = "settlement"
	TierCity       SettlementTier = "city"
)

// TierDef carries the tier-derived settlement numbers, refreshed on growth.
type TierDef struct {
	Tier          SettlementTier
	BuildingSlots int
	GatherRadius  int
	MaxHP         int
	Defense       int
	// GrowthFood is the owner food stock required to reach this tier from
	// the one below. Zero for the starting tier.
	GrowthFood float64
}

var tierDefs = map[SettlementTier]*TierDef{
	TierOutpost:    {Tier: TierOutpost, BuildingSlots: 2, GatherRadius: 2, MaxHP: 100, Defense: 5},
	TierSettlement: {Tier: TierSettlement, BuildingSlots: 4, GatherRadius: 3, MaxHP: 200, Defense: 10, GrowthFood: 200},
	TierCity:       {Tier: TierCity, BuildingSlots: 6, GatherRadius: 4, MaxHP: 400, Defense: 20, GrowthFood: 500},
}

// TierDefByID looks up a settlement tier definition.
func TierDefByID(t SettlementTier) (*TierDef, error) {
	d, ok := tierDefs[t]
	if !ok {
		return nil, ErrUnknownID
	}
	return d, nil
}

// NextTier returns the tier a settlement grows into, or "" for city.
func NextTier(t SettlementTier) SettlementTier {
	switch t {
	case TierOutpost:
		return TierSettlement
	case TierSettlement:
		return TierCity
	default:
		return ""
	}
}
