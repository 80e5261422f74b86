// Package persistence provides SQLite-backed storage for immutable game
// metadata and the generated map. The live simulation never reads from here;
// the map is re-read on subscription setup to serve mapReady.
package persistence

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/hexdominion/internal/game"
)

// GameRecord is the immutable row stored per game at creation.
type GameRecord struct {
	ID        string    `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	Speed     float64   `db:"speed"`
	Width     int       `db:"width"`
	Height    int       `db:"height"`
	Terrain   []byte    `db:"terrain"`
	Elevation []byte    `db:"elevation"`
}

// PlayerRecord is one roster entry of a stored game.
type PlayerRecord struct {
	GameID    string `db:"game_id"`
	UserID    string `db:"user_id"`
	FactionID string `db:"faction_id"`
}

// Store wraps a SQLite connection.
type Store struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*Store, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	st := &Store{conn: conn}
	if err := st.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return st, nil
}

// Close closes the database connection.
func (st *Store) Close() error {
	return st.conn.Close()
}

func (st *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS games (
		id TEXT PRIMARY KEY,
		created_at TIMESTAMP NOT NULL,
		speed REAL NOT NULL,
		width INTEGER NOT NULL,
		height INTEGER NOT NULL,
		terrain BLOB NOT NULL,
		elevation BLOB NOT NULL
	);

	CREATE TABLE IF NOT EXISTS game_players (
		game_id TEXT NOT NULL REFERENCES games(id),
		user_id TEXT NOT NULL,
		faction_id TEXT NOT NULL,
		PRIMARY KEY (game_id, user_id)
	);

	CREATE INDEX IF NOT EXISTS idx_game_players_game ON game_players(game_id);
	`
	_, err := st.conn.Exec(schema)
	return err
}

// SaveGame stores a game's immutable metadata and map at creation time.
func (st *Store) SaveGame(cfg game.Config) error {
	tx, err := st.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT INTO games
		(id, created_at, speed, width, height, terrain, elevation)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		cfg.GameID, time.Now().UTC(), cfg.Speed,
		cfg.MapWidth, cfg.MapHeight, cfg.Terrain, cfg.Elevation,
	)
	if err != nil {
		return fmt.Errorf("insert game %s: %w", cfg.GameID, err)
	}

	for _, p := range cfg.Players {
		_, err := tx.Exec(
			"INSERT INTO game_players (game_id, user_id, faction_id) VALUES (?, ?, ?)",
			cfg.GameID, p.UserID, string(p.FactionID),
		)
		if err != nil {
			return fmt.Errorf("insert player %s: %w", p.UserID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	slog.Info("game saved", "game_id", cfg.GameID, "players", len(cfg.Players))
	return nil
}

// GetGame reads a stored game record.
func (st *Store) GetGame(id string) (*GameRecord, error) {
	var rec GameRecord
	err := st.conn.Get(&rec, "SELECT * FROM games WHERE id = ?", id)
	if err != nil {
		return nil, fmt.Errorf("%w: game %q", game.ErrNotFound, id)
	}
	return &rec, nil
}

// GetMap reads the stored map of a game; used to serve mapReady on
// subscription.
func (st *Store) GetMap(id string) (width, height int, terrain, elevation []byte, err error) {
	rec, err := st.GetGame(id)
	if err != nil {
		return 0, 0, nil, nil, err
	}
	return rec.Width, rec.Height, rec.Terrain, rec.Elevation, nil
}

// GetPlayers reads a stored game's roster.
func (st *Store) GetPlayers(id string) ([]PlayerRecord, error) {
	var players []PlayerRecord
	err := st.conn.Select(&players,
		"SELECT game_id, user_id, faction_id FROM game_players WHERE game_id = ? ORDER BY user_id", id)
	if err != nil {
		return nil, err
	}
	return players, nil
}

// DeleteGame removes a stored game and its roster.
func (st *Store) DeleteGame(id string) error {
	tx, err := st.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM game_players WHERE game_id = ?", id); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM games WHERE id = ?", id); err != nil {
		return err
	}
	return tx.Commit()
}
