// Package api exposes the game server over HTTP: REST handlers for game
// lifecycle and player actions, and a websocket stream for map delivery and
// per-tick snapshots.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/talgya/hexdominion/internal/defs"
	"github.com/talgya/hexdominion/internal/engine"
	"github.com/talgya/hexdominion/internal/game"
	"github.com/talgya/hexdominion/internal/mapgen"
	"github.com/talgya/hexdominion/internal/persistence"
	"github.com/talgya/hexdominion/internal/registry"
)

// Server serves the game API over HTTP.
type Server struct {
	Registry *registry.Registry
	Store    *persistence.Store
	Port     int
}

// Router builds the HTTP route table.
func (s *Server) Router() *mux.Router {
	createLimiter := NewRateLimiter(30, time.Hour)

	r := mux.NewRouter()
	v1 := r.PathPrefix("/api/v1").Subrouter()

	v1.HandleFunc("/status", s.handleStatus).Methods(http.MethodGet)
	v1.HandleFunc("/games", RateLimitMiddleware(createLimiter, s.handleCreateGame)).Methods(http.MethodPost)
	v1.HandleFunc("/games", s.handleListGames).Methods(http.MethodGet)
	v1.HandleFunc("/games/{id}", s.handleGameStatus).Methods(http.MethodGet)
	v1.HandleFunc("/games/{id}", s.handleStopGame).Methods(http.MethodDelete)
	v1.HandleFunc("/games/{id}/pause", s.handlePause).Methods(http.MethodPost)
	v1.HandleFunc("/games/{id}/resume", s.handleResume).Methods(http.MethodPost)
	v1.HandleFunc("/games/{id}/speed", s.handleSpeed).Methods(http.MethodPost)
	v1.HandleFunc("/games/{id}/units", s.handleBuyUnit).Methods(http.MethodPost)
	v1.HandleFunc("/games/{id}/buildings", s.handleBuildBuilding).Methods(http.MethodPost)
	v1.HandleFunc("/games/{id}/policies", s.handleSetPolicies).Methods(http.MethodPost)
	v1.HandleFunc("/games/{id}/research", s.handleStartResearch).Methods(http.MethodPost)
	v1.HandleFunc("/games/{id}/laws", s.handleProposeLaw).Methods(http.MethodPost)
	v1.HandleFunc("/games/{id}/view/{playerId}", s.handlePlayerView).Methods(http.MethodGet)
	v1.HandleFunc("/games/{id}/ws", s.handleSubscribe).Methods(http.MethodGet)

	return r
}

// Start begins serving the HTTP API in a goroutine.
func (s *Server) Start() {
	addr := fmt.Sprintf(":%d", s.Port)
	slog.Info("HTTP API starting", "addr", addr)
	go func() {
		if err := http.ListenAndServe(addr, s.Router()); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

type createGameRequest struct {
	Width   int                 `json:"width"`
	Height  int                 `json:"height"`
	Seed    int64               `json:"seed"`
	Speed   float64             `json:"speed"`
	Players []game.PlayerConfig `json:"players"`
}

func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	var req createGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if req.Width <= 0 {
		req.Width = 40
	}
	if req.Height <= 0 {
		req.Height = 40
	}
	if req.Speed == 0 {
		req.Speed = 1
	}

	genCfg := mapgen.DefaultGenConfig(req.Width, req.Height)
	genCfg.Seed = req.Seed
	terrain, elevation := mapgen.Generate(genCfg)

	cfg := game.Config{
		MapWidth:  req.Width,
		MapHeight: req.Height,
		Terrain:   terrain,
		Elevation: elevation,
		Players:   req.Players,
		Speed:     req.Speed,
	}
	mgr, err := engine.NewManager(cfg)
	if err != nil {
		writeError(w, err)
		return
	}
	cfg.GameID = mgr.GameID()

	if s.Store != nil {
		if err := s.Store.SaveGame(cfg); err != nil {
			slog.Error("game save failed", "game_id", cfg.GameID, "error", err)
		}
	}
	if err := s.Registry.StartGame(mgr); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, map[string]string{"gameId": mgr.GameID()})
}

func (s *Server) handleListGames(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{"games": s.Registry.GameIDs()})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"name":  "hexdominion",
		"games": len(s.Registry.GameIDs()),
	})
}

func (s *Server) handleGameStatus(w http.ResponseWriter, r *http.Request) {
	mgr, err := s.Registry.Game(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	tick, speed, paused := mgr.Snapshot()
	writeJSON(w, map[string]any{
		"gameId":  mgr.GameID(),
		"tick":    tick,
		"speed":   speed,
		"paused":  paused,
		"players": mgr.PlayerIDs(),
	})
}

func (s *Server) handleStopGame(w http.ResponseWriter, r *http.Request) {
	if err := s.Registry.StopGame(mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, map[string]string{"status": "stopped"})
}

func (s *Server) handlePause(w http.ResponseWriter, r *http.Request) {
	if err := s.Registry.PauseGame(mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, map[string]string{"status": "paused"})
}

func (s *Server) handleResume(w http.ResponseWriter, r *http.Request) {
	if err := s.Registry.ResumeGame(mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, map[string]string{"status": "running"})
}

func (s *Server) handleSpeed(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Speed float64 `json:"speed"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if err := s.Registry.ChangeSpeed(mux.Vars(r)["id"], req.Speed); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, map[string]float64{"speed": req.Speed})
}

func (s *Server) handleBuyUnit(w http.ResponseWriter, r *http.Request) {
	mgr, err := s.Registry.Game(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	var req struct {
		PlayerID     string `json:"playerId"`
		SettlementID string `json:"settlementId"`
		UnitType     string `json:"unitType"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	u, err := mgr.BuyUnit(req.PlayerID, req.SettlementID, defs.UnitType(req.UnitType))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, u)
}

func (s *Server) handleBuildBuilding(w http.ResponseWriter, r *http.Request) {
	gameID := mux.Vars(r)["id"]
	mgr, err := s.Registry.Game(gameID)
	if err != nil {
		writeError(w, err)
		return
	}
	var req struct {
		PlayerID     string `json:"playerId"`
		SettlementID string `json:"settlementId"`
		BuildingType string `json:"buildingType"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	ev, err := mgr.ConstructBuilding(req.PlayerID, req.SettlementID, defs.BuildingType(req.BuildingType))
	if err != nil {
		writeError(w, err)
		return
	}
	s.Registry.Bus().Publish(registry.GameTopic(gameID), *ev)
	writeJSON(w, map[string]string{"status": "built"})
}

func (s *Server) handleSetPolicies(w http.ResponseWriter, r *http.Request) {
	mgr, err := s.Registry.Game(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	var req struct {
		PlayerID string        `json:"playerId"`
		Policies game.Policies `json:"policies"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if err := mgr.SetPolicies(req.PlayerID, req.Policies); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, map[string]string{"status": "ok"})
}

func (s *Server) handleStartResearch(w http.ResponseWriter, r *http.Request) {
	mgr, err := s.Registry.Game(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	var req struct {
		PlayerID string `json:"playerId"`
		TechID   string `json:"techId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if err := mgr.StartResearch(req.PlayerID, defs.TechID(req.TechID)); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, map[string]string{"status": "researching"})
}

func (s *Server) handleProposeLaw(w http.ResponseWriter, r *http.Request) {
	gameID := mux.Vars(r)["id"]
	mgr, err := s.Registry.Game(gameID)
	if err != nil {
		writeError(w, err)
		return
	}
	var req struct {
		PlayerID       string `json:"playerId"`
		LawID          string `json:"lawId"`
		TargetPlayerID string `json:"targetPlayerId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	result, events, err := mgr.ProposeLaw(req.PlayerID, defs.LawID(req.LawID), req.TargetPlayerID)
	if err != nil {
		writeError(w, err)
		return
	}
	for _, ev := range events {
		s.Registry.Bus().Publish(registry.GameTopic(gameID), ev)
	}
	writeJSON(w, result)
}

func (s *Server) handlePlayerView(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	mgr, err := s.Registry.Game(vars["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	view, err := mgr.PlayerView(vars["playerId"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, view)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}

// writeError maps the game error taxonomy onto HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, game.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, game.ErrForbidden), errors.Is(err, game.ErrEliminated):
		status = http.StatusForbidden
	case errors.Is(err, game.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, game.ErrBadRequest):
		status = http.StatusBadRequest
	}
	http.Error(w, err.Error(), status)
}
