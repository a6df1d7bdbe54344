package persistence

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/lib/pq" // PostgreSQL driver
)

// PostgresStore keeps every run's score in a hiscores table
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore connects and makes sure the schema exists
func NewPostgresStore(connectionString string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &PostgresStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

func (s *PostgresStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS hiscores (
		run_id UUID PRIMARY KEY,
		score INTEGER NOT NULL,
		recorded_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS hiscores_score_idx ON hiscores (score DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Load returns the best MaxHiscores scores
func (s *PostgresStore) Load() (*Table, error) {
	rows, err := s.db.Query(`SELECT score FROM hiscores ORDER BY score DESC LIMIT $1`, MaxHiscores)
	if err != nil {
		return nil, fmt.Errorf("failed to query hiscores: %w", err)
	}
	defer rows.Close()

	table := NewTable()
	for rows.Next() {
		var score int
		if err := rows.Scan(&score); err != nil {
			return nil, fmt.Errorf("failed to scan hiscore: %w", err)
		}
		table.Add(score)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read hiscores: %w", err)
	}
	return table, nil
}

// Record stores the run. Re-recording the same run keeps its best score.
func (s *PostgresStore) Record(runID string, score int) error {
	id, err := uuid.Parse(runID)
	if err != nil {
		return fmt.Errorf("invalid run id %q: %w", runID, err)
	}

	query := `
	INSERT INTO hiscores (run_id, score)
	VALUES ($1, $2)
	ON CONFLICT (run_id)
	DO UPDATE SET
		score = GREATEST(hiscores.score, $2),
		recorded_at = NOW()
	`

	if _, err := s.db.Exec(query, id.String(), score); err != nil {
		return fmt.Errorf("failed to save hiscore: %w", err)
	}
	return nil
}

// Close closes the database connection
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
