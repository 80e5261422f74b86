package engine

import (
	"fmt"
	"testing"

	"github.com/talgya/hexdominion/internal/defs"
	"github.com/talgya/hexdominion/internal/entropy"
	"github.com/talgya/hexdominion/internal/game"
	"github.com/talgya/hexdominion/internal/world"
)

// newTestState builds an all-plains world with one capital per user. On a
// flat 20x20 map the first capital lands on (5,5) and the second on the far
// corner of the inner frame.
func newTestState(t *testing.T, w, h int, users ...string) *game.State {
	t.Helper()

	terrain := make([]byte, w*h)
	for i := range terrain {
		terrain[i] = world.TerrainPlains
	}
	pool := []defs.FactionID{defs.FactionSolari, defs.FactionVerdan, defs.FactionAurite, defs.FactionUmbral}

	cfg := game.Config{
		MapWidth:  w,
		MapHeight: h,
		Terrain:   terrain,
		Elevation: make([]byte, w*h),
		Speed:     1,
	}
	for i, u := range users {
		cfg.Players = append(cfg.Players, game.PlayerConfig{UserID: u, FactionID: pool[i%len(pool)]})
	}

	s, err := game.Create(cfg)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	return s
}

// addUnit inserts a unit with its def's stats and a short deterministic id.
func addUnit(t *testing.T, s *game.State, owner string, ut defs.UnitType, q, r int) *game.Unit {
	t.Helper()

	def, err := defs.UnitDefByType(ut)
	if err != nil {
		t.Fatalf("UnitDefByType(%s): %v", ut, err)
	}
	u := &game.Unit{
		ID:          fmt.Sprintf("u%03d", len(s.Units)),
		Type:        def.Type,
		OwnerID:     owner,
		Q:           q,
		R:           r,
		HP:          def.MaxHP,
		MaxHP:       def.MaxHP,
		Safety:      100,
		Strength:    def.Strength,
		VisionRange: def.VisionRange,
		MoveSpeed:   def.MoveSpeed,
		State:       game.UnitIdle,
	}
	s.Units[u.ID] = u
	return u
}

func capitalOf(t *testing.T, s *game.State, userID string) *game.Settlement {
	t.Helper()
	for _, st := range s.SettlementsOf(userID) {
		if st.IsCapital {
			return st
		}
	}
	t.Fatalf("no capital for %s", userID)
	return nil
}

func declareWar(s *game.State, a, b string) {
	d := s.DiplomacyBetween(a, b)
	d.Status = game.DiplomacyWar
}

func eventsOfType(events []Event, et EventType) []Event {
	var out []Event
	for _, e := range events {
		if e.Type == et {
			out = append(out, e)
		}
	}
	return out
}

func TestExecuteTickAdvancesCounter(t *testing.T) {
	s := newTestState(t, 20, 20, "p1", "p2")
	executeTick(s, entropy.Fixed(0.5))
	if s.Tick != 1 {
		t.Errorf("tick = %d, want 1", s.Tick)
	}
	executeTick(s, entropy.Fixed(0.5))
	if s.Tick != 2 {
		t.Errorf("tick = %d, want 2", s.Tick)
	}
}

func TestExecuteTickPausedIsNoop(t *testing.T) {
	s := newTestState(t, 20, 20, "p1")
	s.Paused = true

	before := s.Players["p1"].Resources[defs.ResourceFood]
	if events := executeTick(s, entropy.Fixed(0.5)); events != nil {
		t.Errorf("paused tick produced events: %v", events)
	}
	if s.Tick != 0 {
		t.Errorf("tick advanced while paused: %d", s.Tick)
	}
	if got := s.Players["p1"].Resources[defs.ResourceFood]; got != before {
		t.Errorf("food changed while paused: %v -> %v", before, got)
	}
}

// After any tick: no dead units remain, fog values stay in range, and
// resources reflect income minus upkeep.
func TestExecuteTickInvariants(t *testing.T) {
	s := newTestState(t, 20, 20, "p1", "p2")
	addUnit(t, s, "p1", defs.UnitScout, 5, 5)
	addUnit(t, s, "p2", defs.UnitGatherer, 17, 17)

	for i := 0; i < 10; i++ {
		executeTick(s, entropy.Fixed(0.5))
	}

	for id, u := range s.Units {
		if u.HP <= 0 {
			t.Errorf("dead unit %s survived tick cleanup", id)
		}
	}
	for id, u := range s.NeutralUnits {
		if u.HP <= 0 {
			t.Errorf("dead neutral %s survived tick cleanup", id)
		}
	}
	for _, p := range s.PlayersInOrder() {
		for i, v := range p.FogMap {
			if v > game.FogVisible {
				t.Fatalf("fog[%d] = %d out of range for %s", i, v, p.UserID)
			}
		}
		for i := range p.Advisors {
			if l := p.Advisors[i].Loyalty; l < 0 || l > 100 {
				t.Errorf("advisor %s loyalty %d out of range", p.Advisors[i].Type, l)
			}
		}
	}
}

func TestExecuteTickPeacefulPlayersDoNotFight(t *testing.T) {
	s := newTestState(t, 20, 20, "p1", "p2")
	a := addUnit(t, s, "p1", defs.UnitWarrior, 10, 10)
	b := addUnit(t, s, "p2", defs.UnitWarrior, 11, 10)

	events := tickCombat(s, entropy.Fixed(0.5))
	if len(events) != 0 {
		t.Fatalf("peaceful adjacency produced combat: %v", events)
	}
	if a.HP != a.MaxHP || b.HP != b.MaxHP {
		t.Error("units took damage at peace")
	}
}
