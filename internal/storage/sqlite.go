// Package storage provides SQLite-based persistence for finished matches.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/trio/internal/match"
)

// ErrNotFound is returned when a match ID is not in the database.
var ErrNotFound = errors.New("storage: match not found")

const timeLayout = "2006-01-02 15:04:05"

// Store manages the SQLite database connection for match history.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// MatchRecord is a stored match with its seats.
type MatchRecord struct {
	ID         int64
	MatchID    string
	Variant    string
	Seed       int64
	Turns      int
	WinnerID   string // Empty if the turn limit ended the match
	WinnerName string
	EndReason  string // "winner" or "turn_limit"
	Duration   time.Duration
	CreatedAt  time.Time
	Players    []PlayerRecord
}

// PlayerRecord is one seat of a stored match.
type PlayerRecord struct {
	Seat     int
	PlayerID string
	Name     string
	Score    int
}

// LeaderboardEntry aggregates results for one player name.
type LeaderboardEntry struct {
	Name       string
	Matches    int
	Wins       int
	BestScore  int
	TotalScore int64
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// SQLite allows one writer; simulations save from many goroutines.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db, now: time.Now}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS matches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			match_id TEXT NOT NULL UNIQUE,
			variant TEXT NOT NULL,
			seed INTEGER NOT NULL DEFAULT 0,
			turns INTEGER NOT NULL DEFAULT 0,
			winner_id TEXT NOT NULL DEFAULT '',
			winner_name TEXT NOT NULL DEFAULT '',
			end_reason TEXT NOT NULL,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_matches_variant ON matches(variant);
		CREATE INDEX IF NOT EXISTS idx_matches_created ON matches(created_at DESC);

		CREATE TABLE IF NOT EXISTS match_players (
			match_id TEXT NOT NULL REFERENCES matches(match_id) ON DELETE CASCADE,
			seat INTEGER NOT NULL,
			player_id TEXT NOT NULL,
			name TEXT NOT NULL,
			score INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (match_id, seat)
		);
		CREATE INDEX IF NOT EXISTS idx_match_players_name ON match_players(name);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveMatch records a finished match and its seats in one transaction.
// Returns the row ID of the match.
func (s *Store) SaveMatch(res match.Result) (int64, error) {
	created := res.StartedAt
	if created.IsZero() {
		created = s.now()
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	result, err := tx.Exec(
		`INSERT INTO matches
		 (match_id, variant, seed, turns, winner_id, winner_name, end_reason, duration_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		string(res.MatchID),
		res.Variant,
		res.Seed,
		res.Turns,
		string(res.Winner),
		res.WinnerName(),
		res.Reason.String(),
		res.Duration.Milliseconds(),
		created.UTC().Format(timeLayout),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save match: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	for seat, p := range res.Players {
		if _, err := tx.Exec(
			"INSERT INTO match_players (match_id, seat, player_id, name, score) VALUES (?, ?, ?, ?, ?)",
			string(res.MatchID), seat, string(p.ID), p.Name, p.Score,
		); err != nil {
			return 0, fmt.Errorf("storage: cannot save player %s: %w", p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit match: %w", err)
	}
	return id, nil
}

// SaveMatchResult implements match.ResultSaver.
func (s *Store) SaveMatchResult(res match.Result) error {
	_, err := s.SaveMatch(res)
	return err
}

// Ensure Store implements ResultSaver
var _ match.ResultSaver = (*Store)(nil)

const matchColumns = `id, match_id, variant, seed, turns, winner_id, winner_name, end_reason, duration_ms, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMatch(row rowScanner) (MatchRecord, error) {
	var rec MatchRecord
	var durationMS int64
	var createdAt any
	err := row.Scan(
		&rec.ID,
		&rec.MatchID,
		&rec.Variant,
		&rec.Seed,
		&rec.Turns,
		&rec.WinnerID,
		&rec.WinnerName,
		&rec.EndReason,
		&durationMS,
		&createdAt,
	)
	if err != nil {
		return rec, err
	}
	rec.Duration = time.Duration(durationMS) * time.Millisecond
	rec.CreatedAt = parseTime(createdAt)
	return rec, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(timeLayout, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// MatchByID retrieves a match and its seats by match ID.
func (s *Store) MatchByID(matchID string) (*MatchRecord, error) {
	rec, err := scanMatch(s.db.QueryRow(
		`SELECT `+matchColumns+` FROM matches WHERE match_id = ?`,
		matchID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, matchID)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query match: %w", err)
	}

	if rec.Players, err = s.players(rec.MatchID); err != nil {
		return nil, err
	}
	return &rec, nil
}

// RecentMatches retrieves the most recent matches, newest first.
// An empty variant returns matches of every variant.
func (s *Store) RecentMatches(variant string, limit int) ([]MatchRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+matchColumns+`
		 FROM matches
		 WHERE ? = '' OR variant = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		variant, variant, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query matches: %w", err)
	}

	var records []MatchRecord
	for rows.Next() {
		rec, err := scanMatch(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	// Release the only connection before loading seats.
	rows.Close()

	for i := range records {
		if records[i].Players, err = s.players(records[i].MatchID); err != nil {
			return nil, err
		}
	}
	return records, nil
}

func (s *Store) players(matchID string) ([]PlayerRecord, error) {
	rows, err := s.db.Query(
		`SELECT seat, player_id, name, score
		 FROM match_players
		 WHERE match_id = ?
		 ORDER BY seat`,
		matchID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query players: %w", err)
	}
	defer rows.Close()

	var players []PlayerRecord
	for rows.Next() {
		var p PlayerRecord
		if err := rows.Scan(&p.Seat, &p.PlayerID, &p.Name, &p.Score); err != nil {
			return nil, fmt.Errorf("storage: cannot scan player: %w", err)
		}
		players = append(players, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return players, nil
}

// Leaderboard ranks player names by wins, then best score, then name.
// An empty variant aggregates every variant.
func (s *Store) Leaderboard(variant string, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT p.name,
		        COUNT(*),
		        SUM(CASE WHEN m.winner_id = p.player_id THEN 1 ELSE 0 END) AS wins,
		        MAX(p.score) AS best,
		        SUM(p.score)
		 FROM match_players p
		 JOIN matches m ON m.match_id = p.match_id
		 WHERE ? = '' OR m.variant = ?
		 GROUP BY p.name
		 ORDER BY wins DESC, best DESC, p.name ASC
		 LIMIT ?`,
		variant, variant, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []LeaderboardEntry
	for rows.Next() {
		var e LeaderboardEntry
		if err := rows.Scan(&e.Name, &e.Matches, &e.Wins, &e.BestScore, &e.TotalScore); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// VariantStats contains aggregated statistics for a variant.
type VariantStats struct {
	Variant    string
	Matches    int
	Draws      int
	AvgTurns   float64
	LastPlayed time.Time
}

// Stats retrieves statistics for every variant that has been played.
func (s *Store) Stats() (map[string]*VariantStats, error) {
	rows, err := s.db.Query(
		`SELECT variant,
		        COUNT(*),
		        SUM(CASE WHEN winner_id = '' THEN 1 ELSE 0 END),
		        AVG(turns),
		        MAX(created_at)
		 FROM matches
		 GROUP BY variant`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*VariantStats)
	for rows.Next() {
		var vs VariantStats
		var lastPlayed any
		if err := rows.Scan(&vs.Variant, &vs.Matches, &vs.Draws, &vs.AvgTurns, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		vs.LastPlayed = parseTime(lastPlayed)
		stats[vs.Variant] = &vs
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}

// ClearMatches deletes stored matches. An empty variant deletes all of them.
func (s *Store) ClearMatches(variant string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	if _, err := tx.Exec(
		`DELETE FROM match_players WHERE match_id IN
		 (SELECT match_id FROM matches WHERE ? = '' OR variant = ?)`,
		variant, variant,
	); err != nil {
		return fmt.Errorf("storage: cannot clear players: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM matches WHERE ? = '' OR variant = ?", variant, variant); err != nil {
		return fmt.Errorf("storage: cannot clear matches: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit clear: %w", err)
	}
	return nil
}
