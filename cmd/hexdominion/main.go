// Command hexdominion runs the real-time strategy game server: the tick
// scheduler, the event bus, and the HTTP/websocket API.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/dustin/go-humanize"

	"github.com/talgya/hexdominion/internal/api"
	"github.com/talgya/hexdominion/internal/bus"
	"github.com/talgya/hexdominion/internal/engine"
	"github.com/talgya/hexdominion/internal/game"
	"github.com/talgya/hexdominion/internal/mapgen"
	"github.com/talgya/hexdominion/internal/persistence"
	"github.com/talgya/hexdominion/internal/registry"
	"github.com/talgya/hexdominion/internal/world"
)

func main() {
	var (
		port    = flag.Int("port", envInt("HEXDOMINION_PORT", 8080), "HTTP listen port")
		dbPath  = flag.String("db", envStr("HEXDOMINION_DB", "data/hexdominion.db"), "SQLite database path")
		demo    = flag.Bool("demo", false, "start a two-player demo game at boot")
		width   = flag.Int("width", 40, "demo map width")
		height  = flag.Int("height", 40, "demo map height")
		seed    = flag.Int64("seed", 42, "demo map seed")
		verbose = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	slog.Info("Hex Dominion game server")

	os.MkdirAll(filepath.Dir(*dbPath), 0755)
	store, err := persistence.Open(*dbPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("database opened", "path", *dbPath)

	eventBus := bus.New[engine.Event](bus.DefaultBufferSize)
	reg := registry.New(eventBus, logger)

	if *demo {
		startDemoGame(reg, store, *width, *height, *seed)
	}

	server := &api.Server{
		Registry: reg,
		Store:    store,
		Port:     *port,
	}
	server.Start()

	fmt.Printf("API: http://localhost:%d/api/v1/status\n", *port)
	fmt.Println("Server running... (Ctrl+C to stop)")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	slog.Info("received signal, shutting down", "signal", sig)

	reg.Shutdown()
	fmt.Println("Server stopped.")
}

func startDemoGame(reg *registry.Registry, store *persistence.Store, width, height int, seed int64) {
	genCfg := mapgen.DefaultGenConfig(width, height)
	genCfg.Seed = seed
	terrain, elevation := mapgen.Generate(genCfg)

	land := 0
	for _, t := range terrain {
		if world.IsLand(t) {
			land++
		}
	}
	slog.Info("demo map generated",
		"size", fmt.Sprintf("%dx%d", width, height),
		"tiles", humanize.Comma(int64(len(terrain))),
		"land", humanize.Comma(int64(land)),
	)

	cfg := game.Config{
		MapWidth:  width,
		MapHeight: height,
		Terrain:   terrain,
		Elevation: elevation,
		Speed:     1,
		Players: []game.PlayerConfig{
			{UserID: "player-1", FactionID: "solari"},
			{UserID: "player-2", FactionID: "verdan"},
		},
	}
	mgr, err := engine.NewManager(cfg)
	if err != nil {
		slog.Error("demo game creation failed", "error", err)
		return
	}
	cfg.GameID = mgr.GameID()
	if err := store.SaveGame(cfg); err != nil {
		slog.Error("demo game save failed", "error", err)
	}
	if err := reg.StartGame(mgr); err != nil {
		slog.Error("demo game start failed", "error", err)
		return
	}
	slog.Info("demo game running", "game_id", mgr.GameID())
}

func envStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		var n int
		if _, err := fmt.Sscanf(v, "%d", &n); err == nil {
			return n
		}
	}
	return def
}
