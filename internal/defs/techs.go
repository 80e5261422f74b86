package defs

// TechID identifies a technology.
type TechID string

// Tech is one node of the tech tree. Epoch 0 marks faction-branch techs,
// which are exempt from epoch gating.
type Tech struct {
	ID          TechID
	Name        string
	Epoch       int
	ScienceCost float64
	Requires    []TechID
	FactionOnly FactionID // empty = common tech
}

var techOrder = []TechID{
	// Epoch 1 commons.
	"agriculture", "pottery", "mining", "archery", "writing",
	// Epoch 2 commons.
	"currency", "construction", "mathematics", "philosophy",
	// Epoch 3 commons.
	"engineering", "civil_service", "optics",
	// Faction branches (epoch 0).
	"solari_forgecraft", "verdan_wildgrowth", "aurite_minting", "umbral_starcharts",
}

var techDefs = map[TechID]*Tech{
	"agriculture": {ID: "agriculture", Name: "Agriculture", Epoch: 1, ScienceCost: 20},
	"pottery":     {ID: "pottery", Name: "Pottery", Epoch: 1, ScienceCost: 25},
	"mining":      {ID: "mining", Name: "Mining", Epoch: 1, ScienceCost: 30},
	"archery":     {ID: "archery", Name: "Archery", Epoch: 1, ScienceCost: 35},
	"writing":     {ID: "writing", Name: "Writing", Epoch: 1, ScienceCost: 40},

	"currency":     {ID: "currency", Name: "Currency", Epoch: 2, ScienceCost: 60, Requires: []TechID{"pottery"}},
	"construction": {ID: "construction", Name: "Construction", Epoch: 2, ScienceCost: 70, Requires: []TechID{"mining"}},
	"mathematics":  {ID: "mathematics", Name: "Mathematics", Epoch: 2, ScienceCost: 75, Requires: []TechID{"writing"}},
	"philosophy":   {ID: "philosophy", Name: "Philosophy", Epoch: 2, ScienceCost: 80, Requires: []TechID{"writing"}},

	"engineering":   {ID: "engineering", Name: "Engineering", Epoch: 3, ScienceCost: 150, Requires: []TechID{"construction", "mathematics"}},
	"civil_service": {ID: "civil_service", Name: "Civil Service", Epoch: 3, ScienceCost: 160, Requires: []TechID{"philosophy", "currency"}},
	"optics":        {ID: "optics", Name: "Optics", Epoch: 3, ScienceCost: 140, Requires: []TechID{"mathematics"}},

	"solari_forgecraft": {ID: "solari_forgecraft", Name: "Forgecraft", Epoch: 0, ScienceCost: 50, Requires: []TechID{"mining"}, FactionOnly: FactionSolari},
	"verdan_wildgrowth": {ID: "verdan_wildgrowth", Name: "Wildgrowth", Epoch: 0, ScienceCost: 50, Requires: []TechID{"agriculture"}, FactionOnly: FactionVerdan},
	"aurite_minting":    {ID: "aurite_minting", Name: "Minting", Epoch: 0, ScienceCost: 50, Requires: []TechID{"pottery"}, FactionOnly: FactionAurite},
	"umbral_starcharts": {ID: "umbral_starcharts", Name: "Starcharts", Epoch: 0, ScienceCost: 50, Requires: []TechID{"writing"}, FactionOnly: FactionUmbral},
}

// TechByID looks up a technology.
func TechByID(id TechID) (*Tech, error) {
	t, ok := techDefs[id]
	if !ok {
		return nil, ErrUnknownID
	}
	return t, nil
}

// AllTechs returns the full tech tree in a stable order.
func AllTechs() []*Tech {
	out := make([]*Tech, 0, len(techOrder))
	for _, id := range techOrder {
		out = append(out, techDefs[id])
	}
	return out
}

// AvailableTechs returns the techs a player may research next: not yet
// researched, open to the faction, all prerequisites met. Common techs of
// epoch 2 and later additionally need at least 3 common techs of the
// previous epoch researched. Faction-branch techs carry epoch 0 and skip
// the gate.
func AvailableTechs(researched []TechID, faction FactionID) []*Tech {
	have := make(map[TechID]bool, len(researched))
	for _, id := range researched {
		have[id] = true
	}

	// Count researched commons per epoch for the gating rule.
	commonsByEpoch := make(map[int]int)
	for id := range have {
		if t, ok := techDefs[id]; ok && t.FactionOnly == "" {
			commonsByEpoch[t.Epoch]++
		}
	}

	var out []*Tech
	for _, id := range techOrder {
		t := techDefs[id]
		if have[t.ID] {
			continue
		}
		if t.FactionOnly != "" && t.FactionOnly != faction {
			continue
		}
		met := true
		for _, req := range t.Requires {
			if !have[req] {
				met = false
				break
			}
		}
		if !met {
			continue
		}
		if t.Epoch >= 2 && commonsByEpoch[t.Epoch-1] < 3 {
			continue
		}
		out = append(out, t)
	}
	return out
}
