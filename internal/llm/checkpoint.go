package llm

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Checkpoint persists batch progress in a SQLite file so an interrupted
// run resumes where it stopped. Results are stored per stage and sentence
// id; the progress row tracks how many sentences a stage has consumed.
type Checkpoint struct {
	db *sql.DB
}

// OpenCheckpoint opens or creates the checkpoint database.
func OpenCheckpoint(path string) (*Checkpoint, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open checkpoint database: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS progress (
		stage      TEXT PRIMARY KEY,
		next_index INTEGER NOT NULL
	);
	CREATE TABLE IF NOT EXISTS results (
		stage   TEXT NOT NULL,
		id      INTEGER NOT NULL,
		payload TEXT NOT NULL,
		PRIMARY KEY (stage, id)
	);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create checkpoint schema: %w", err)
	}

	return &Checkpoint{db: db}, nil
}

// Close closes the underlying database.
func (c *Checkpoint) Close() error {
	return c.db.Close()
}

// NextIndex returns the resume position for a stage, 0 when the stage has
// not run yet.
func (c *Checkpoint) NextIndex(stage string) (int, error) {
	var index int
	err := c.db.QueryRow(
		`SELECT next_index FROM progress WHERE stage = ?`, stage).Scan(&index)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read checkpoint: %w", err)
	}
	return index, nil
}

// SetNextIndex records the resume position for a stage.
func (c *Checkpoint) SetNextIndex(stage string, index int) error {
	_, err := c.db.Exec(
		`INSERT INTO progress (stage, next_index) VALUES (?, ?)
		 ON CONFLICT(stage) DO UPDATE SET next_index = excluded.next_index`,
		stage, index)
	if err != nil {
		return fmt.Errorf("failed to write checkpoint: %w", err)
	}
	return nil
}

// SaveResult stores one sentence's payload for a stage. Saving the same id
// twice overwrites the previous payload.
func (c *Checkpoint) SaveResult(stage string, id int, payload string) error {
	_, err := c.db.Exec(
		`INSERT INTO results (stage, id, payload) VALUES (?, ?, ?)
		 ON CONFLICT(stage, id) DO UPDATE SET payload = excluded.payload`,
		stage, id, payload)
	if err != nil {
		return fmt.Errorf("failed to save result: %w", err)
	}
	return nil
}

// Results returns all stored payloads for a stage, keyed by sentence id.
func (c *Checkpoint) Results(stage string) (map[int]string, error) {
	rows, err := c.db.Query(
		`SELECT id, payload FROM results WHERE stage = ?`, stage)
	if err != nil {
		return nil, fmt.Errorf("failed to read results: %w", err)
	}
	defer rows.Close()

	results := make(map[int]string)
	for rows.Next() {
		var id int
		var payload string
		if err := rows.Scan(&id, &payload); err != nil {
			return nil, fmt.Errorf("failed to scan result: %w", err)
		}
		results[id] = payload
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate results: %w", err)
	}
	return results, nil
}

// Clear removes a stage's progress and results after a successful run.
func (c *Checkpoint) Clear(stage string) error {
	if _, err := c.db.Exec(`DELETE FROM results WHERE stage = ?`, stage); err != nil {
		return fmt.Errorf("failed to clear results: %w", err)
	}
	if _, err := c.db.Exec(`DELETE FROM progress WHERE stage = ?`, stage); err != nil {
		return fmt.Errorf("failed to clear progress: %w", err)
	}
	return nil
}
