package engine

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/talgya/hexdominion/internal/defs"
	"github.com/talgya/hexdominion/internal/entropy"
	"github.com/talgya/hexdominion/internal/game"
)

// Manager owns one game's state and serializes every mutation, tick runs
// and action handlers alike, behind a single mutex. Distinct games mutate
// independently.
type Manager struct {
	mu    sync.Mutex
	state *game.State
	rng   entropy.Source
}

// NewManager constructs the world from a config and spawns the initial
// neutral population.
func NewManager(cfg game.Config) (*Manager, error) {
	s, err := game.Create(cfg)
	if err != nil {
		return nil, err
	}
	m := &Manager{state: s, rng: entropy.Crypto{}}
	m.spawnInitialNeutrals()
	return m, nil
}

// NewManagerWithState wraps an already-built state; for tests.
func NewManagerWithState(s *game.State, rng entropy.Source) *Manager {
	if rng == nil {
		rng = entropy.Crypto{}
	}
	return &Manager{state: s, rng: rng}
}

// SetRandomSource swaps the combat random source; deterministic tests
// inject entropy.Fixed or entropy.Sequence.
func (m *Manager) SetRandomSource(src entropy.Source) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rng = src
}

// GameID returns the game's id.
func (m *Manager) GameID() string {
	return m.state.GameID
}

// PlayerIDs returns the roster in insertion order.
func (m *Manager) PlayerIDs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.state.PlayerOrder...)
}

// Snapshot returns tick, speed, and paused under the lock.
func (m *Manager) Snapshot() (tick uint64, speed float64, paused bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Tick, m.state.Speed, m.state.Paused
}

// MapData returns the immutable generated map; no lock needed, terrain and
// elevation never change after construction.
func (m *Manager) MapData() (width, height int, terrain, elevation []byte) {
	g := m.state.Grid
	return g.Width, g.Height, g.Terrain, g.Elevation
}

// PlayerView computes the fog-filtered snapshot for one player.
func (m *Manager) PlayerView(userID string) (*game.ClientPlayerState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.GetPlayerView(userID)
}

// SetPaused flips the pause flag. The registry cancels or restarts the
// timer around this call.
func (m *Manager) SetPaused(paused bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.Paused = paused
}

// SetSpeed validates and stores a new speed.
func (m *Manager) SetSpeed(speed float64) error {
	if !game.ValidSpeed(speed) {
		return fmt.Errorf("%w: speed %v", game.ErrConflict, speed)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.Speed = speed
	return nil
}

// SetPolicies overwrites a player's policy record.
func (m *Manager) SetPolicies(playerID string, pol game.Policies) error {
	if pol.Aggression < 0 || pol.Aggression > 100 ||
		pol.Expansion < 0 || pol.Expansion > 100 ||
		pol.Spending < 0 || pol.Spending > 100 {
		return fmt.Errorf("%w: policy values must be 0..100", game.ErrBadRequest)
	}
	switch pol.CombatPolicy {
	case game.CombatAggressive, game.CombatDefensive, game.CombatAvoidance:
	default:
		return fmt.Errorf("%w: combat policy %q", game.ErrBadRequest, pol.CombatPolicy)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.state.Players[playerID]
	if !ok {
		return fmt.Errorf("%w: player %q", game.ErrNotFound, playerID)
	}
	if p.Eliminated {
		return game.ErrEliminated
	}
	p.Policies = pol
	return nil
}

// BuyUnit validates settlement ownership, cost, and the barracks
// prerequisite for warriors, then inserts an idle unit on the settlement
// tile.
func (m *Manager) BuyUnit(playerID, settlementID string, unitType defs.UnitType) (*game.Unit, error) {
	def, err := defs.UnitDefByType(unitType)
	if err != nil {
		return nil, fmt.Errorf("%w: unit type %q", game.ErrNotFound, unitType)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.state.Players[playerID]
	if !ok {
		return nil, fmt.Errorf("%w: player %q", game.ErrNotFound, playerID)
	}
	if p.Eliminated {
		return nil, game.ErrEliminated
	}
	st, ok := m.state.Settlements[settlementID]
	if !ok {
		return nil, fmt.Errorf("%w: settlement %q", game.ErrNotFound, settlementID)
	}
	if st.OwnerID != playerID {
		return nil, fmt.Errorf("%w: settlement %q", game.ErrForbidden, settlementID)
	}
	if def.RequiresBuilding != "" && !st.HasBuilding(def.RequiresBuilding) {
		return nil, fmt.Errorf("%w: requires %s", game.ErrBadRequest, def.RequiresBuilding)
	}
	if p.Resources[defs.ResourceGold] < def.GoldCost {
		return nil, fmt.Errorf("%w: insufficient gold", game.ErrBadRequest)
	}
	if p.Resources[defs.ResourceProduction] < def.ProductionCost {
		return nil, fmt.Errorf("%w: insufficient production", game.ErrBadRequest)
	}

	p.Resources[defs.ResourceGold] -= def.GoldCost
	p.Resources[defs.ResourceProduction] -= def.ProductionCost

	u := &game.Unit{
		ID:          uuid.NewString(),
		Type:        def.Type,
		OwnerID:     playerID,
		Q:           st.Q,
		R:           st.R,
		HP:          def.MaxHP,
		MaxHP:       def.MaxHP,
		Safety:      100,
		Strength:    def.Strength,
		VisionRange: def.VisionRange,
		MoveSpeed:   def.MoveSpeed,
		State:       game.UnitIdle,
	}
	m.state.Units[u.ID] = u
	return u, nil
}

// ConstructBuilding delegates to the settlement system under the lock and
// returns a buildingCompleted event for the caller to publish.
func (m *Manager) ConstructBuilding(playerID, settlementID string, buildingType defs.BuildingType) (*Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := constructBuilding(m.state, settlementID, buildingType, playerID); err != nil {
		return nil, err
	}
	return &Event{Type: EventBuildingCompleted, Data: BuildingCompleted{
		SettlementID: settlementID,
		PlayerID:     playerID,
		Building:     buildingType,
	}}, nil
}

// StartResearch delegates to the research system under the lock.
func (m *Manager) StartResearch(playerID string, techID defs.TechID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return startResearch(m.state, playerID, techID)
}

// ProposeLaw delegates to the council system under the lock and returns the
// vote result plus the events to publish (law outcome and any diplomacy
// change).
func (m *Manager) ProposeLaw(playerID string, lawID defs.LawID, targetPlayerID string) (*LawResult, []Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return proposeLaw(m.state, playerID, lawID, targetPlayerID)
}

// ExecuteTick advances the game one tick through the full system pipeline
// and returns the discrete events it produced. A paused game returns nil
// without advancing the counter.
func (m *Manager) ExecuteTick() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	return executeTick(m.state, m.rng)
}

// spawnInitialNeutrals runs under construction, before the manager is
// visible to any other goroutine.
func (m *Manager) spawnInitialNeutrals() {
	spawnInitialNeutrals(m.state)
}
