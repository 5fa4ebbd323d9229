package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Run is one finished game.
type Run struct {
	ID        int64
	RunID     string
	Mode      string
	Score     int
	Sliced    int
	BombsHit  int
	Rank      string
	CreatedAt time.Time
}

// ModeStats contains aggregated statistics for a game mode.
type ModeStats struct {
	Mode        string
	Runs        int
	HighScore   int
	AvgScore    float64
	TotalSliced int64
	BombsHit    int64
	LastPlayed  time.Time
}

const runColumns = `id, run_id, mode, score, sliced, bombs_hit, rank, created_at`

// SaveRun records a finished run. A run without RunID gets a fresh UUID.
// Returns the run as stored.
func (s *Store) SaveRun(run Run) (Run, error) {
	if run.RunID == "" {
		run.RunID = uuid.NewString()
	}

	result, err := s.db.Exec(
		`INSERT INTO runs (run_id, mode, score, sliced, bombs_hit, rank)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		run.RunID, run.Mode, run.Score, run.Sliced, run.BombsHit, run.Rank,
	)
	if err != nil {
		return Run{}, fmt.Errorf("storage: cannot save run: %w", err)
	}

	run.ID, err = result.LastInsertId()
	if err != nil {
		return Run{}, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return run, nil
}

// SetRunRank stores the verdict rank of a saved run.
func (s *Store) SetRunRank(runID, rank string) error {
	res, err := s.db.Exec("UPDATE runs SET rank = ? WHERE run_id = ?", rank, runID)
	if err != nil {
		return fmt.Errorf("storage: cannot rank run: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("storage: run %s not found", runID)
	}
	return nil
}

// RunByID retrieves a run by its run ID. Returns nil if it does not exist.
func (s *Store) RunByID(runID string) (*Run, error) {
	row := s.db.QueryRow(`SELECT `+runColumns+` FROM runs WHERE run_id = ?`, runID)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	return &run, nil
}

// TopRuns retrieves the best runs of a mode, or of every mode when mode is
// empty. Results are ordered by score descending, oldest first on ties.
func (s *Store) TopRuns(mode string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE ? = '' OR mode = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		mode, mode, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// HighScore returns the highest score of a mode.
// Returns 0 if no runs exist.
func (s *Store) HighScore(mode string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM runs WHERE mode = ?",
		mode,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// ModeStats retrieves aggregated statistics for a mode.
func (s *Store) ModeStats(mode string) (*ModeStats, error) {
	stats := &ModeStats{Mode: mode}
	var lastPlayed any

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
		        COALESCE(SUM(sliced), 0), COALESCE(SUM(bombs_hit), 0), MAX(created_at)
		 FROM runs WHERE mode = ?`,
		mode,
	).Scan(&stats.Runs, &stats.HighScore, &stats.AvgScore, &stats.TotalSliced, &stats.BombsHit, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get mode stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// AllModeStats retrieves statistics for every mode that has been played.
func (s *Store) AllModeStats() (map[string]*ModeStats, error) {
	rows, err := s.db.Query(
		`SELECT mode, COUNT(*), MAX(score), AVG(score), SUM(sliced), SUM(bombs_hit), MAX(created_at)
		 FROM runs
		 GROUP BY mode`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all mode stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*ModeStats)
	for rows.Next() {
		var m ModeStats
		var lastPlayed any
		if err := rows.Scan(&m.Mode, &m.Runs, &m.HighScore, &m.AvgScore, &m.TotalSliced, &m.BombsHit, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		m.LastPlayed = parseTime(lastPlayed)
		stats[m.Mode] = &m
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// ClearRuns deletes the runs of a mode, or every run when mode is empty.
func (s *Store) ClearRuns(mode string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE ? = '' OR mode = ?", mode, mode)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (Run, error) {
	var run Run
	var createdAt any
	if err := row.Scan(&run.ID, &run.RunID, &run.Mode, &run.Score, &run.Sliced, &run.BombsHit, &run.Rank, &createdAt); err != nil {
		return Run{}, err
	}
	run.CreatedAt = parseTime(createdAt)
	return run, nil
}
