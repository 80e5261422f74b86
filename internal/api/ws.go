package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/talgya/hexdominion/internal/engine"
	"github.com/talgya/hexdominion/internal/registry"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// handleSubscribe upgrades to a websocket, sends mapReady once, then streams
// the game's broadcast events interleaved with the player's tick snapshots
// until the client goes away.
func (s *Server) handleSubscribe(w http.ResponseWriter, r *http.Request) {
	gameID := mux.Vars(r)["id"]
	playerID := r.URL.Query().Get("playerId")
	if playerID == "" {
		http.Error(w, "missing playerId", http.StatusBadRequest)
		return
	}

	mgr, err := s.Registry.Game(gameID)
	if err != nil {
		writeError(w, err)
		return
	}
	found := false
	for _, pid := range mgr.PlayerIDs() {
		if pid == playerID {
			found = true
			break
		}
	}
	if !found {
		http.Error(w, "unknown player", http.StatusNotFound)
		return
	}

	mapEvent, err := s.mapReady(gameID)
	if err != nil {
		writeError(w, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("websocket upgrade failed", "error", err)
		return
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	broadcast := s.Registry.Bus().Subscribe(ctx, registry.GameTopic(gameID))
	personal := s.Registry.Bus().Subscribe(ctx, registry.PlayerTopic(gameID, playerID))

	// Reader: consume control frames, cancel on close or error.
	go func() {
		defer cancel()
		conn.SetReadLimit(512)
		conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	defer conn.Close()
	slog.Info("subscriber connected", "game_id", gameID, "player_id", playerID)

	if err := writeEvent(conn, *mapEvent); err != nil {
		return
	}

	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-broadcast:
			if !ok || writeEvent(conn, ev) != nil {
				return
			}
		case ev, ok := <-personal:
			if !ok || writeEvent(conn, ev) != nil {
				return
			}
		case <-ping.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func writeEvent(conn *websocket.Conn, ev engine.Event) error {
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(ev)
}

// mapReady builds the one-shot map event from the store, falling back to
// the live grid when the game was never persisted (in-memory test games).
func (s *Server) mapReady(gameID string) (*engine.Event, error) {
	if s.Store != nil {
		if w, h, terrain, elevation, err := s.Store.GetMap(gameID); err == nil {
			return &engine.Event{Type: engine.EventMapReady, Data: engine.MapReady{
				Width:     w,
				Height:    h,
				Terrain:   terrain,
				Elevation: elevation,
			}}, nil
		}
	}

	mgr, err := s.Registry.Game(gameID)
	if err != nil {
		return nil, err
	}
	w, h, terrain, elevation := mgr.MapData()
	return &engine.Event{Type: engine.EventMapReady, Data: engine.MapReady{
		Width:     w,
		Height:    h,
		Terrain:   terrain,
		Elevation: elevation,
	}}, nil
}
