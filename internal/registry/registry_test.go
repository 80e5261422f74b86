package registry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/talgya/hexdominion/internal/bus"
	"github.com/talgya/hexdominion/internal/defs"
	"github.com/talgya/hexdominion/internal/engine"
	"github.com/talgya/hexdominion/internal/game"
	"github.com/talgya/hexdominion/internal/world"
)

func newTestRegistry() (*Registry, *bus.Bus[engine.Event]) {
	b := bus.New[engine.Event](16)
	return New(b, nil), b
}

func newTestManager(t *testing.T) *engine.Manager {
	t.Helper()
	w, h := 20, 20
	terrain := make([]byte, w*h)
	for i := range terrain {
		terrain[i] = world.TerrainPlains
	}
	mgr, err := engine.NewManager(game.Config{
		MapWidth:  w,
		MapHeight: h,
		Terrain:   terrain,
		Elevation: make([]byte, w*h),
		Speed:     1,
		Players: []game.PlayerConfig{
			{UserID: "p1", FactionID: defs.FactionSolari},
			{UserID: "p2", FactionID: defs.FactionVerdan},
		},
	})
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	return mgr
}

func TestStartGameDuplicate(t *testing.T) {
	r, _ := newTestRegistry()
	defer r.Shutdown()
	mgr := newTestManager(t)

	if err := r.StartGame(mgr); err != nil {
		t.Fatalf("StartGame: %v", err)
	}
	if err := r.StartGame(mgr); !errors.Is(err, game.ErrConflict) {
		t.Errorf("duplicate start error = %v, want ErrConflict", err)
	}

	got, err := r.Game(mgr.GameID())
	if err != nil || got != mgr {
		t.Errorf("Game lookup = %v/%v", got, err)
	}
	if ids := r.GameIDs(); len(ids) != 1 || ids[0] != mgr.GameID() {
		t.Errorf("GameIDs = %v", ids)
	}
}

func TestUnknownGameOperations(t *testing.T) {
	r, _ := newTestRegistry()
	defer r.Shutdown()

	for name, err := range map[string]error{
		"pause":  r.PauseGame("nope"),
		"resume": r.ResumeGame("nope"),
		"speed":  r.ChangeSpeed("nope", 2),
		"stop":   r.StopGame("nope"),
	} {
		if !errors.Is(err, game.ErrNotFound) {
			t.Errorf("%s error = %v, want ErrNotFound", name, err)
		}
	}
	if _, err := r.Game("nope"); !errors.Is(err, game.ErrNotFound) {
		t.Errorf("lookup error = %v, want ErrNotFound", err)
	}
}

func TestPauseResumeLifecycle(t *testing.T) {
	r, b := newTestRegistry()
	defer r.Shutdown()
	mgr := newTestManager(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events := b.Subscribe(ctx, GameTopic(mgr.GameID()))

	if err := r.StartGame(mgr); err != nil {
		t.Fatalf("StartGame: %v", err)
	}
	if err := r.PauseGame(mgr.GameID()); err != nil {
		t.Fatalf("PauseGame: %v", err)
	}
	if _, _, paused := mgr.Snapshot(); !paused {
		t.Error("manager not paused")
	}

	// The pause announcement lands on the broadcast topic.
	deadline := time.After(2 * time.Second)
waitPaused:
	for {
		select {
		case ev := <-events:
			if ev.Type == engine.EventPaused {
				break waitPaused
			}
		case <-deadline:
			t.Fatal("no paused event received")
		}
	}

	if err := r.ResumeGame(mgr.GameID()); err != nil {
		t.Fatalf("ResumeGame: %v", err)
	}
	if _, _, paused := mgr.Snapshot(); paused {
		t.Error("manager still paused after resume")
	}

	if err := r.StopGame(mgr.GameID()); err != nil {
		t.Fatalf("StopGame: %v", err)
	}
	if _, err := r.Game(mgr.GameID()); !errors.Is(err, game.ErrNotFound) {
		t.Errorf("stopped game still registered: %v", err)
	}
}

func TestChangeSpeedValidation(t *testing.T) {
	r, _ := newTestRegistry()
	defer r.Shutdown()
	mgr := newTestManager(t)
	if err := r.StartGame(mgr); err != nil {
		t.Fatalf("StartGame: %v", err)
	}

	if err := r.ChangeSpeed(mgr.GameID(), 2); err != nil {
		t.Fatalf("ChangeSpeed(2): %v", err)
	}
	if _, speed, _ := mgr.Snapshot(); speed != 2 {
		t.Errorf("speed = %v, want 2", speed)
	}
	if err := r.ChangeSpeed(mgr.GameID(), 1.5); !errors.Is(err, game.ErrConflict) {
		t.Errorf("invalid speed error = %v, want ErrConflict", err)
	}
}

// The loop re-reads speed before every sleep, so a speed change shortens
// the interval from the next tick on without a timer restart. An in-flight
// sleep still finishes at the old interval.
func TestIntervalTracksSpeed(t *testing.T) {
	r, _ := newTestRegistry()
	defer r.Shutdown()
	mgr := newTestManager(t)
	if err := r.StartGame(mgr); err != nil {
		t.Fatalf("StartGame: %v", err)
	}

	cases := []struct {
		speed float64
		want  time.Duration
	}{
		{0.5, 1000 * time.Millisecond},
		{1, 500 * time.Millisecond},
		{2, 250 * time.Millisecond},
		{3, 500 * time.Millisecond / 3},
	}
	for _, tc := range cases {
		if err := r.ChangeSpeed(mgr.GameID(), tc.speed); err != nil {
			t.Fatalf("ChangeSpeed(%v): %v", tc.speed, err)
		}
		if got := r.interval(mgr); got != tc.want {
			t.Errorf("interval at speed %v = %v, want %v", tc.speed, got, tc.want)
		}
	}
}

// The loop delivers per-player snapshots on the personal topic.
func TestTickDelivery(t *testing.T) {
	r, b := newTestRegistry()
	defer r.Shutdown()
	mgr := newTestManager(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	personal := b.Subscribe(ctx, PlayerTopic(mgr.GameID(), "p1"))

	if err := r.StartGame(mgr); err != nil {
		t.Fatalf("StartGame: %v", err)
	}

	select {
	case ev := <-personal:
		if ev.Type != engine.EventTick {
			t.Fatalf("event type = %s, want tick", ev.Type)
		}
		snap := ev.Data.(engine.TickSnapshot)
		if snap.Tick == 0 {
			t.Error("tick snapshot carries tick 0")
		}
		if snap.PlayerState == nil || snap.PlayerState.FactionID != defs.FactionSolari {
			t.Errorf("snapshot state = %+v", snap.PlayerState)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no tick delivered")
	}
}

func TestTopicNames(t *testing.T) {
	if got := GameTopic("g1"); got != "game:g1" {
		t.Errorf("GameTopic = %q", got)
	}
	if got := PlayerTopic("g1", "p1"); got != "game:g1:p1" {
		t.Errorf("PlayerTopic = %q", got)
	}
}
