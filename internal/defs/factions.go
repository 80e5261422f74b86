package defs

// FactionID identifies a playable faction.
type FactionID string

const (
	FactionSolari FactionID = "solari"
	FactionVerdan FactionID = "verdan"
	FactionAurite FactionID = "aurite"
	FactionUmbral FactionID = "umbral"
)

// AIModifiers tunes per-faction unit AI behavior.
type AIModifiers struct {
	// Safety scales the retreat threshold: higher values retreat earlier.
	Safety float64
}

// Faction is a playable civilization with resource and AI modifiers.
type Faction struct {
	ID                FactionID
	Name              string
	ResourceModifiers map[Resource]float64 // multiplier on income, default 1.0
	AIModifiers       AIModifiers
}

// ResourceModifier returns the faction's income multiplier for a resource,
// defaulting to 1.0 when unset.
func (f *Faction) ResourceModifier(r Resource) float64 {
	if m, ok := f.ResourceModifiers[r]; ok {
		return m
	}
	return 1.0
}

var factions = map[FactionID]*Faction{
	FactionSolari: {
		ID:   FactionSolari,
		Name: "Solari Compact",
		ResourceModifiers: map[Resource]float64{
			ResourceProduction: 1.2,
			ResourceFood:       0.9,
		},
		AIModifiers: AIModifiers{Safety: 0.8},
	},
	FactionVerdan: {
		ID:   FactionVerdan,
		Name: "Verdan Circles",
		ResourceModifiers: map[Resource]float64{
			ResourceFood:    1.2,
			ResourceCulture: 1.1,
		},
		AIModifiers: AIModifiers{Safety: 1.2},
	},
	FactionAurite: {
		ID:   FactionAurite,
		Name: "Aurite League",
		ResourceModifiers: map[Resource]float64{
			ResourceGold:    1.25,
			ResourceScience: 0.9,
		},
		AIModifiers: AIModifiers{Safety: 1.0},
	},
	FactionUmbral: {
		ID:   FactionUmbral,
		Name: "Umbral Archive",
		ResourceModifiers: map[Resource]float64{
			ResourceScience: 1.2,
			ResourceGold:    0.9,
		},
		AIModifiers: AIModifiers{Safety: 1.1},
	},
}

// FactionByID looks up a faction definition.
func FactionByID(id FactionID) (*Faction, error) {
	f, ok := factions[id]
	if !ok {
		return nil, ErrUnknownID
	}
	return f, nil
}

// AllFactions returns every faction in a stable order.
func AllFactions() []*Faction {
	out := make([]*Faction, 0, len(factions))
	for _, id := range []FactionID{FactionSolari, FactionVerdan, FactionAurite, FactionUmbral} {
		out = append(out, factions[id])
	}
	return out
}
