package defs

// UnitType identifies a unit archetype.
type UnitType string

const (
	UnitScout    UnitType = "scout"
	UnitGatherer UnitType = "gatherer"
	UnitWarrior  UnitType = "warrior"
	UnitSettler  UnitType = "settler"
	UnitBuilder  UnitType = "builder"
)

// UnitDef is the static stat block for a unit type.
type UnitDef struct {
	Type        UnitType
	Name        string
	MaxHP       int
	Strength    int // settlers must stay at 0: they never fight
	VisionRange int
	MoveSpeed   int
	FoodUpkeep  float64

	GoldCost       float64
	ProductionCost float64
	// RequiresBuilding, when set, must exist in the purchasing settlement.
	RequiresBuilding BuildingType
}

var unitDefs = map[UnitType]*UnitDef{
	UnitScout: {
		Type: UnitScout, Name: "Scout",
		MaxHP: 20, Strength: 2, VisionRange: 4, MoveSpeed: 2,
		FoodUpkeep: 1, GoldCost: 30,
	},
	UnitGatherer: {
		Type: UnitGatherer, Name: "Gatherer",
		MaxHP: 15, Strength: 1, VisionRange: 2, MoveSpeed: 1,
		FoodUpkeep: 1, GoldCost: 25,
	},
	UnitWarrior: {
		Type: UnitWarrior, Name: "Warrior",
		MaxHP: 40, Strength: 10, VisionRange: 2, MoveSpeed: 1,
		FoodUpkeep: 2, GoldCost: 60, ProductionCost: 20,
		RequiresBuilding: BuildingBarracks,
	},
	UnitSettler: {
		Type: UnitSettler, Name: "Settler",
		MaxHP: 25, Strength: 0, VisionRange: 2, MoveSpeed: 1,
		FoodUpkeep: 2, GoldCost: 100,
	},
	UnitBuilder: {
		Type: UnitBuilder, Name: "Builder",
		MaxHP: 20, Strength: 1, VisionRange: 2, MoveSpeed: 1,
		FoodUpkeep: 1, GoldCost: 40,
	},
}

// UnitDefByType looks up a unit definition.
func UnitDefByType(t UnitType) (*UnitDef, error) {
	d, ok := unitDefs[t]
	if !ok {
		return nil, ErrUnknownID
	}
	return d, nil
}
