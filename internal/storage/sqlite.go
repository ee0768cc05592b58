// Package storage provides SQLite-based persistence for the run journal.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/blockbot/internal/games/blocks/core"
)

// LocalPlayer is the player name recorded for runs started from the CLI.
const LocalPlayer = "local"

// Store manages the SQLite database connection for the run journal.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Run is one journaled run of a program against a level.
type Run struct {
	ID        string
	Pack      string
	Level     int
	Player    string
	Program   string
	Blocks    int
	Actions   int
	Completed bool
	Elapsed   time.Duration
	LastLog   string
	CreatedAt time.Time
}

// NewRun builds a journal entry from a run result.
func NewRun(pack, player string, r core.Result) Run {
	return Run{
		Pack:      pack,
		Level:     r.LevelIndex,
		Player:    player,
		Program:   r.Program,
		Blocks:    r.Blocks,
		Actions:   r.Actions,
		Completed: r.Complete,
		Elapsed:   r.Elapsed,
		LastLog:   r.LastLog,
	}
}

// LevelStats contains aggregated statistics for a level.
type LevelStats struct {
	Pack        string
	Level       int
	Attempts    int
	Completions int
	BestBlocks  int // 0 if never completed
	BestActions int // 0 if never completed
	Fastest     time.Duration
	LastPlayed  time.Time
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

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db, now: time.Now}

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			pack TEXT NOT NULL,
			level INTEGER NOT NULL,
			player TEXT NOT NULL,
			program TEXT NOT NULL,
			blocks INTEGER NOT NULL,
			actions INTEGER NOT NULL,
			completed INTEGER NOT NULL,
			elapsed_ms INTEGER NOT NULL DEFAULT 0,
			last_log TEXT NOT NULL DEFAULT '',
			created_at DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_level ON runs(pack, level);
		CREATE INDEX IF NOT EXISTS idx_runs_best ON runs(pack, level, completed, blocks, actions);
		CREATE INDEX IF NOT EXISTS idx_runs_player ON runs(player);
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

// SaveRun records a run. A missing ID is generated; a zero CreatedAt is
// set to the current time. Returns the run ID.
func (s *Store) SaveRun(run Run) (string, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = s.now()
	}
	if run.Player == "" {
		run.Player = LocalPlayer
	}

	_, err := s.db.Exec(
		`INSERT INTO runs
		 (id, pack, level, player, program, blocks, actions, completed, elapsed_ms, last_log, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.Pack,
		run.Level,
		run.Player,
		run.Program,
		run.Blocks,
		run.Actions,
		run.Completed,
		run.Elapsed.Milliseconds(),
		run.LastLog,
		run.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save run: %w", err)
	}

	return run.ID, nil
}

const runColumns = `id, pack, level, player, program, blocks, actions, completed, elapsed_ms, last_log, created_at`

// RunByID retrieves a run by its ID. Returns nil if not found.
func (s *Store) RunByID(id string) (*Run, error) {
	row := s.db.QueryRow(`SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	return &run, nil
}

// BestRun returns the best completed run for a level: fewest blocks, then
// fewest actions, then fastest, then earliest. Returns nil if the level was
// never completed.
func (s *Store) BestRun(pack string, level int) (*Run, error) {
	row := s.db.QueryRow(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE pack = ? AND level = ? AND completed = 1
		 ORDER BY blocks ASC, actions ASC, elapsed_ms ASC, seq ASC
		 LIMIT 1`,
		pack, level,
	)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query best run: %w", err)
	}
	return &run, nil
}

// RecentRuns retrieves the most recent runs across all levels.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 ORDER BY seq DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	return collectRuns(rows)
}

// LevelRuns retrieves the most recent runs for one level.
func (s *Store) LevelRuns(pack string, level int, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE pack = ? AND level = ?
		 ORDER BY seq DESC
		 LIMIT ?`,
		pack, level, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query level runs: %w", err)
	}
	return collectRuns(rows)
}

// Leaderboard returns each player's best completed run for a level,
// ordered the same way as BestRun.
func (s *Store) Leaderboard(pack string, level int, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+` FROM (
			SELECT *, ROW_NUMBER() OVER (
				PARTITION BY player
				ORDER BY blocks ASC, actions ASC, elapsed_ms ASC, seq ASC
			) AS pos
			FROM runs
			WHERE pack = ? AND level = ? AND completed = 1
		 )
		 WHERE pos = 1
		 ORDER BY blocks ASC, actions ASC, elapsed_ms ASC, seq ASC
		 LIMIT ?`,
		pack, level, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query leaderboard: %w", err)
	}
	return collectRuns(rows)
}

// CompletedLevels returns the indexes of levels a player has completed in a
// pack, in ascending order. An empty player matches every player.
func (s *Store) CompletedLevels(pack, player string) ([]int, error) {
	rows, err := s.db.Query(
		`SELECT DISTINCT level
		 FROM runs
		 WHERE pack = ? AND completed = 1 AND (? = '' OR player = ?)
		 ORDER BY level ASC`,
		pack, player, player,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query completed levels: %w", err)
	}
	defer rows.Close()

	var levels []int
	for rows.Next() {
		var level int
		if err := rows.Scan(&level); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		levels = append(levels, level)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return levels, nil
}

// LevelStats retrieves aggregated statistics for a level.
func (s *Store) LevelStats(pack string, level int) (*LevelStats, error) {
	stats := &LevelStats{Pack: pack, Level: level}

	var bestBlocks, bestActions, fastest sql.NullInt64
	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(completed), 0),
		        MIN(CASE WHEN completed = 1 THEN blocks END),
		        MIN(CASE WHEN completed = 1 THEN actions END),
		        MIN(CASE WHEN completed = 1 THEN elapsed_ms END),
		        MAX(created_at)
		 FROM runs WHERE pack = ? AND level = ?`,
		pack, level,
	).Scan(&stats.Attempts, &stats.Completions, &bestBlocks, &bestActions, &fastest, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get level stats: %w", err)
	}

	stats.BestBlocks = int(bestBlocks.Int64)
	stats.BestActions = int(bestActions.Int64)
	stats.Fastest = time.Duration(fastest.Int64) * time.Millisecond
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// AllLevelStats retrieves statistics for every level of a pack that has
// been played, keyed by level index.
func (s *Store) AllLevelStats(pack string) (map[int]*LevelStats, error) {
	rows, err := s.db.Query(
		`SELECT level,
		        COUNT(*),
		        COALESCE(SUM(completed), 0),
		        MIN(CASE WHEN completed = 1 THEN blocks END),
		        MIN(CASE WHEN completed = 1 THEN actions END),
		        MIN(CASE WHEN completed = 1 THEN elapsed_ms END),
		        MAX(created_at)
		 FROM runs
		 WHERE pack = ?
		 GROUP BY level`,
		pack,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all level stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[int]*LevelStats)
	for rows.Next() {
		st := LevelStats{Pack: pack}
		var bestBlocks, bestActions, fastest sql.NullInt64
		var lastPlayed any
		if err := rows.Scan(&st.Level, &st.Attempts, &st.Completions, &bestBlocks, &bestActions, &fastest, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}

		st.BestBlocks = int(bestBlocks.Int64)
		st.BestActions = int(bestActions.Int64)
		st.Fastest = time.Duration(fastest.Int64) * time.Millisecond
		st.LastPlayed = parseTime(lastPlayed)
		stats[st.Level] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// ClearRuns deletes all runs of a pack. An empty pack clears everything.
func (s *Store) ClearRuns(pack string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE ? = '' OR pack = ?", pack, pack)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// timeLayout is the layout created_at is stored in. It sorts lexically.
const timeLayout = "2006-01-02 15:04:05.000"

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (Run, error) {
	var r Run
	var elapsedMS int64
	var createdAt any
	if err := row.Scan(
		&r.ID,
		&r.Pack,
		&r.Level,
		&r.Player,
		&r.Program,
		&r.Blocks,
		&r.Actions,
		&r.Completed,
		&elapsedMS,
		&r.LastLog,
		&createdAt,
	); err != nil {
		return Run{}, err
	}
	r.Elapsed = time.Duration(elapsedMS) * time.Millisecond
	r.CreatedAt = parseTime(createdAt)
	return r, nil
}

func collectRuns(rows *sql.Rows) ([]Run, error) {
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// parseTime handles both time.Time and string datetime values.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		for _, layout := range []string{timeLayout, "2006-01-02 15:04:05", time.RFC3339Nano} {
			if parsed, err := time.Parse(layout, v); err == nil {
				return parsed
			}
		}
	}
	return time.Time{}
}
