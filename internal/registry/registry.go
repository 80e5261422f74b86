// Package registry owns the process-wide table of running games and their
// tick loops. Each game gets one goroutine that sleeps for 500/speed
// milliseconds, runs the tick under the manager's exclusion, and fans the
// results out on the bus.
package registry

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/talgya/hexdominion/internal/bus"
	"github.com/talgya/hexdominion/internal/engine"
	"github.com/talgya/hexdominion/internal/game"
)

const baseTickInterval = 500 * time.Millisecond

// GameTopic names the broadcast topic of one game.
func GameTopic(gameID string) string {
	return fmt.Sprintf("game:%s", gameID)
}

// PlayerTopic names the per-player snapshot topic of one game.
func PlayerTopic(gameID, playerID string) string {
	return fmt.Sprintf("game:%s:%s", gameID, playerID)
}

type entry struct {
	mgr    *engine.Manager
	cancel context.CancelFunc
}

// Registry maps game ids to managers and drives their tick loops.
type Registry struct {
	mu    sync.Mutex
	games map[string]*entry

	bus *bus.Bus[engine.Event]
	log *slog.Logger
}

// New returns an empty registry publishing on the given bus.
func New(b *bus.Bus[engine.Event], log *slog.Logger) *Registry {
	if log == nil {
		log = slog.Default()
	}
	return &Registry{
		games: make(map[string]*entry),
		bus:   b,
		log:   log,
	}
}

// Bus exposes the bus for subscription wiring.
func (r *Registry) Bus() *bus.Bus[engine.Event] {
	return r.bus
}

// StartGame registers a manager and starts its tick loop.
func (r *Registry) StartGame(mgr *engine.Manager) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := mgr.GameID()
	if _, exists := r.games[id]; exists {
		return fmt.Errorf("%w: game %q already running", game.ErrConflict, id)
	}
	e := &entry{mgr: mgr}
	r.games[id] = e
	r.startLoopLocked(e)
	r.log.Info("game started", "game_id", id, "players", len(mgr.PlayerIDs()))
	return nil
}

// PauseGame stops the timer and marks the game paused.
func (r *Registry) PauseGame(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.games[id]
	if !ok {
		return fmt.Errorf("%w: game %q", game.ErrNotFound, id)
	}
	r.stopLoopLocked(e)
	e.mgr.SetPaused(true)
	r.bus.Publish(GameTopic(id), engine.Event{Type: engine.EventPaused})
	r.log.Info("game paused", "game_id", id)
	return nil
}

// ResumeGame clears the pause flag and restarts the timer at the current
// speed.
func (r *Registry) ResumeGame(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.games[id]
	if !ok {
		return fmt.Errorf("%w: game %q", game.ErrNotFound, id)
	}
	e.mgr.SetPaused(false)
	if e.cancel == nil {
		r.startLoopLocked(e)
	}
	r.bus.Publish(GameTopic(id), engine.Event{Type: engine.EventResumed})
	r.log.Info("game resumed", "game_id", id)
	return nil
}

// ChangeSpeed stores the new speed. The loop re-reads speed before every
// sleep, so no timer restart is needed.
func (r *Registry) ChangeSpeed(id string, speed float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.games[id]
	if !ok {
		return fmt.Errorf("%w: game %q", game.ErrNotFound, id)
	}
	if err := e.mgr.SetSpeed(speed); err != nil {
		return err
	}
	r.log.Info("game speed changed", "game_id", id, "speed", speed)
	return nil
}

// StopGame cancels the loop and removes the entry.
func (r *Registry) StopGame(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.games[id]
	if !ok {
		return fmt.Errorf("%w: game %q", game.ErrNotFound, id)
	}
	r.stopLoopLocked(e)
	delete(r.games, id)
	r.log.Info("game stopped", "game_id", id)
	return nil
}

// Game looks up a running game's manager.
func (r *Registry) Game(id string) (*engine.Manager, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.games[id]
	if !ok {
		return nil, fmt.Errorf("%w: game %q", game.ErrNotFound, id)
	}
	return e.mgr, nil
}

// GameIDs lists the running games.
func (r *Registry) GameIDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]string, 0, len(r.games))
	for id := range r.games {
		ids = append(ids, id)
	}
	return ids
}

// Shutdown stops every loop; managers stay reachable until the registry is
// dropped.
func (r *Registry) Shutdown() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, e := range r.games {
		r.stopLoopLocked(e)
		delete(r.games, id)
	}
}

func (r *Registry) startLoopLocked(e *entry) {
	ctx, cancel := context.WithCancel(context.Background())
	e.cancel = cancel
	go r.runLoop(ctx, e.mgr)
}

func (r *Registry) stopLoopLocked(e *entry) {
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
}

// runLoop sleeps 500/speed ms between ticks, re-reading speed each
// iteration. A panic inside one game's tick kills only that game's loop.
func (r *Registry) runLoop(ctx context.Context, mgr *engine.Manager) {
	defer func() {
		if rec := recover(); rec != nil {
			r.log.Error("tick loop panic", "game_id", mgr.GameID(), "panic", rec)
		}
	}()

	timer := time.NewTimer(r.interval(mgr))
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		r.deliverTick(mgr)
		timer.Reset(r.interval(mgr))
	}
}

func (r *Registry) interval(mgr *engine.Manager) time.Duration {
	_, speed, _ := mgr.Snapshot()
	if speed <= 0 {
		speed = 1
	}
	return time.Duration(float64(baseTickInterval) / speed)
}

// deliverTick runs one tick and publishes per-player snapshots followed by
// the tick's discrete events.
func (r *Registry) deliverTick(mgr *engine.Manager) {
	events := mgr.ExecuteTick()
	gameID := mgr.GameID()
	tick, _, _ := mgr.Snapshot()

	for _, pid := range mgr.PlayerIDs() {
		view, err := mgr.PlayerView(pid)
		if err != nil {
			r.log.Error("player view failed", "game_id", gameID, "player_id", pid, "error", err)
			continue
		}
		r.bus.Publish(PlayerTopic(gameID, pid), engine.Event{
			Type: engine.EventTick,
			Data: engine.TickSnapshot{Tick: tick, PlayerState: view},
		})
	}
	for _, ev := range events {
		r.bus.Publish(GameTopic(gameID), ev)
	}
}
