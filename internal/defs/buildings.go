package defs

// BuildingType identifies a constructible settlement building.
type BuildingType string

const (
	BuildingFarm     BuildingType = "farm"
	BuildingGranary  BuildingType = "granary"
	BuildingWorkshop BuildingType = "workshop"
	BuildingMarket   BuildingType = "market"
	BuildingLibrary  BuildingType = "library"
	BuildingShrine   BuildingType = "shrine"
	BuildingBarracks BuildingType = "barracks"
)

// BuildingDef is the static definition for a building: its production cost
// and the per-tick resource income it yields to the owning player.
type BuildingDef struct {
	Type           BuildingType
	Name           string
	ProductionCost float64
	Income         map[Resource]float64
}

var buildingDefs = map[BuildingType]*BuildingDef{
	BuildingFarm: {
		Type: BuildingFarm, Name: "Farm", ProductionCost: 20,
		Income: map[Resource]float64{ResourceFood: 2},
	},
	BuildingGranary: {
		Type: BuildingGranary, Name: "Granary", ProductionCost: 30,
		Income: map[Resource]float64{ResourceFood: 3},
	},
	BuildingWorkshop: {
		Type: BuildingWorkshop, Name: "Workshop", ProductionCost: 40,
		Income: map[Resource]float64{ResourceProduction: 2},
	},
	BuildingMarket: {
		Type: BuildingMarket, Name: "Market", ProductionCost: 40,
		Income: map[Resource]float64{ResourceGold: 3},
	},
	BuildingLibrary: {
		Type: BuildingLibrary, Name: "Library", ProductionCost: 50,
		Income: map[Resource]float64{ResourceScience: 2},
	},
	BuildingShrine: {
		Type: BuildingShrine, Name: "Shrine", ProductionCost: 45,
		Income: map[Resource]float64{ResourceCulture: 2},
	},
	BuildingBarracks: {
		Type: BuildingBarracks, Name: "Barracks", ProductionCost: 50,
		Income: map[Resource]float64{},
	},
}

// BuildingDefByType looks up a building definition.
func BuildingDefByType(t BuildingType) (*BuildingDef, error) {
	d, ok := buildingDefs[t]
	if !ok {
		return nil, ErrUnknownID
	}
	return d, nil
}
