package game

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/talgya/hexdominion/internal/defs"
	"github.com/talgya/hexdominion/internal/world"
)

// PlayerConfig configures one participant at construction.
type PlayerConfig struct {
	UserID    string         `json:"userId"`
	FactionID defs.FactionID `json:"factionId"`
}

// Config is everything Create needs: an opaque generated map plus the
// player roster. Terrain and elevation arrays must be MapWidth*MapHeight
// bytes.
type Config struct {
	GameID    string         `json:"gameId"`
	MapWidth  int            `json:"mapWidth"`
	MapHeight int            `json:"mapHeight"`
	Terrain   []byte         `json:"terrain"`
	Elevation []byte         `json:"elevation"`
	Players   []PlayerConfig `json:"players"`
	Speed     float64        `json:"speed"`
}

// ValidSpeed reports whether a speed value is one of the allowed steps.
func ValidSpeed(speed float64) bool {
	switch speed {
	case 0.5, 1, 2, 3:
		return true
	}
	return false
}

// Create constructs a new game state from a config: spawns are picked
// deterministically, each player gets a capital with a revealed fog disc,
// and every unordered pair of players gets a peace diplomacy entry.
// Neutral spawning happens in the engine after construction.
func Create(cfg Config) (*State, error) {
	if cfg.MapWidth <= 0 || cfg.MapHeight <= 0 {
		return nil, fmt.Errorf("%w: map dimensions %dx%d", ErrBadRequest, cfg.MapWidth, cfg.MapHeight)
	}
	size := cfg.MapWidth * cfg.MapHeight
	if len(cfg.Terrain) != size || len(cfg.Elevation) != size {
		return nil, fmt.Errorf("%w: terrain/elevation length must be %d", ErrBadRequest, size)
	}
	if !ValidSpeed(cfg.Speed) {
		return nil, fmt.Errorf("%w: speed %v", ErrConflict, cfg.Speed)
	}
	if len(cfg.Players) == 0 {
		return nil, fmt.Errorf("%w: no players", ErrBadRequest)
	}

	gameID := cfg.GameID
	if gameID == "" {
		gameID = uuid.NewString()
	}

	s := &State{
		GameID: gameID,
		Speed:  cfg.Speed,
		Grid: &world.Grid{
			Width:     cfg.MapWidth,
			Height:    cfg.MapHeight,
			Terrain:   cfg.Terrain,
			Elevation: cfg.Elevation,
		},
		Players:      make(map[string]*Player, len(cfg.Players)),
		Settlements:  make(map[string]*Settlement),
		Units:        make(map[string]*Unit),
		NeutralUnits: make(map[string]*Unit),
		Improvements: make(map[string]ImprovementType),
	}

	spawns := pickSpawns(s.Grid, len(cfg.Players))

	for i, pc := range cfg.Players {
		faction, err := defs.FactionByID(pc.FactionID)
		if err != nil {
			return nil, fmt.Errorf("%w: faction %q", ErrNotFound, pc.FactionID)
		}
		if _, dup := s.Players[pc.UserID]; dup {
			return nil, fmt.Errorf("%w: duplicate player %q", ErrBadRequest, pc.UserID)
		}

		p := newPlayer(pc.UserID, faction.ID, size)
		s.Players[pc.UserID] = p
		s.PlayerOrder = append(s.PlayerOrder, pc.UserID)

		capital := NewSettlement(pc.UserID, spawns[i][0], spawns[i][1], defs.TierOutpost, s.NextSettlementName(), true)
		s.Settlements[capital.ID] = capital

		RevealDisc(p.FogMap, s.Grid, capital.Q, capital.R, capital.GatherRadius+1, FogVisible)
	}

	// Seed a peace entry between every unordered pair of human players.
	for i := 0; i < len(s.PlayerOrder); i++ {
		for j := i + 1; j < len(s.PlayerOrder); j++ {
			s.Diplomacy = append(s.Diplomacy, &DiplomacyState{
				PlayerA: s.PlayerOrder[i],
				PlayerB: s.PlayerOrder[j],
				Status:  DiplomacyPeace,
			})
		}
	}

	return s, nil
}

func newPlayer(userID string, faction defs.FactionID, mapSize int) *Player {
	p := &Player{
		UserID:         userID,
		FactionID:      faction,
		Resources:      NewResourceSet(),
		ResourceIncome: NewResourceSet(),
		ResourceUpkeep: NewResourceSet(),
		Policies: Policies{
			Aggression:   50,
			Expansion:    50,
			Spending:     50,
			CombatPolicy: CombatDefensive,
		},
		FogMap: make([]byte, mapSize),
	}
	p.Resources[defs.ResourceFood] = 100
	p.Resources[defs.ResourceProduction] = 50
	p.Resources[defs.ResourceGold] = 100
	for i, t := range defs.AllAdvisors {
		p.Advisors[i] = Advisor{Type: t, Loyalty: 50}
	}
	return p
}

// NewSettlement builds a settlement with tier-derived stats.
func NewSettlement(ownerID string, q, r int, tier defs.SettlementTier, name string, capital bool) *Settlement {
	td, _ := defs.TierDefByID(tier)
	return &Settlement{
		ID:            uuid.NewString(),
		OwnerID:       ownerID,
		Name:          name,
		Tier:          tier,
		Q:             q,
		R:             r,
		BuildingSlots: td.BuildingSlots,
		GatherRadius:  td.GatherRadius,
		IsCapital:     capital,
		HP:            td.MaxHP,
		MaxHP:         td.MaxHP,
		Defense:       td.Defense,
	}
}

// pickSpawns chooses one spawn tile per player. The first player gets the
// land tile in the inner frame closest to (W/4, H/4); each further player
// gets the candidate maximizing its minimum distance to all chosen spawns.
// The 15-tile separation goal is best-effort. With no inner-frame land the
// map centre is used for everyone.
func pickSpawns(g *world.Grid, n int) [][2]int {
	var candidates [][2]int
	for r := 2; r < g.Height-2; r++ {
		for q := 2; q < g.Width-2; q++ {
			if world.IsLand(g.Terrain[g.Index(q, r)]) {
				candidates = append(candidates, [2]int{q, r})
			}
		}
	}

	spawns := make([][2]int, 0, n)
	if len(candidates) == 0 {
		centre := [2]int{g.Width / 2, g.Height / 2}
		for i := 0; i < n; i++ {
			spawns = append(spawns, centre)
		}
		return spawns
	}

	// First spawn: closest to the quarter point.
	tq, tr := g.Width/4, g.Height/4
	best := candidates[0]
	bestD := euclidSq(best[0], best[1], tq, tr)
	for _, c := range candidates[1:] {
		if d := euclidSq(c[0], c[1], tq, tr); d < bestD {
			best, bestD = c, d
		}
	}
	spawns = append(spawns, best)

	for len(spawns) < n {
		var pick [2]int
		pickScore := -1
		for _, c := range candidates {
			minD := -1
			for _, sp := range spawns {
				d := euclidSq(c[0], c[1], sp[0], sp[1])
				if minD == -1 || d < minD {
					minD = d
				}
			}
			if minD > pickScore {
				pick, pickScore = c, minD
			}
		}
		spawns = append(spawns, pick)
	}
	return spawns
}

// RevealDisc raises fog tiles within a Euclidean disc of the given radius
// to at least the given value, clamped to map bounds.
func RevealDisc(fog []byte, g *world.Grid, cq, cr, radius int, value byte) {
	r2 := radius * radius
	for dr := -radius; dr <= radius; dr++ {
		for dq := -radius; dq <= radius; dq++ {
			if dq*dq+dr*dr > r2 {
				continue
			}
			q, r := cq+dq, cr+dr
			if !g.InBounds(q, r) {
				continue
			}
			i := g.Index(q, r)
			if fog[i] < value {
				fog[i] = value
			}
		}
	}
}

func euclidSq(q1, r1, q2, r2 int) int {
	dq := q1 - q2
	dr := r1 - r2
	return dq*dq + dr*dr
}

// EuclidSq exposes squared Euclidean tile distance for systems that compare
// against radii (founding separation, camp spacing).
func EuclidSq(q1, r1, q2, r2 int) int {
	return euclidSq(q1, r1, q2, r2)
}
