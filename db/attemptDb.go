package db

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"nursethink/models"

	"github.com/lib/pq"
)

// StoredAttempt is one scored stage submission as kept in the attempt log.
type StoredAttempt struct {
	ID        int                  `json:"id" db:"id"`
	SessionID string               `json:"session_id" db:"session_id"`
	CaseTitle string               `json:"case_title" db:"case_title"`
	Attempt   models.AttemptRecord `json:"attempt"`
	CreatedAt time.Time            `json:"created_at" db:"created_at"`
}

type AttemptRepository interface {
	RecordAttempt(ctx context.Context, sessionID, caseTitle string, attempt models.AttemptRecord) error
	GetAttemptsBySession(ctx context.Context, sessionID string) ([]*StoredAttempt, error)
	Close() error
}

type PostgresAttemptRepository struct {
	db *sql.DB
}

func NewPostgresAttemptRepository(databaseURL string) (*PostgresAttemptRepository, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresAttemptRepository{db: db}, nil
}

func (r *PostgresAttemptRepository) RecordAttempt(ctx context.Context, sessionID, caseTitle string, attempt models.AttemptRecord) error {
	query := `
		INSERT INTO nursethink.stage_attempts
			(session_id, case_title, stage_number, score, chosen_key_cues, chosen_hypothesis, chosen_action, chosen_outcome)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.ExecContext(ctx, query,
		sessionID,
		caseTitle,
		attempt.StageNumber,
		attempt.Score,
		pq.Array(attempt.ChosenKeyCues),
		attempt.ChosenHypothesis,
		attempt.ChosenAction,
		attempt.ChosenOutcome,
	)
	if err != nil {
		return fmt.Errorf("failed to record attempt: %w", err)
	}
	return nil
}

func (r *PostgresAttemptRepository) GetAttemptsBySession(ctx context.Context, sessionID string) ([]*StoredAttempt, error) {
	query := `
		SELECT id, session_id, case_title, stage_number, score, chosen_key_cues,
		       chosen_hypothesis, chosen_action, chosen_outcome, created_at
		FROM nursethink.stage_attempts
		WHERE session_id = $1
		ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get attempts: %w", err)
	}
	defer rows.Close()

	var attempts []*StoredAttempt
	for rows.Next() {
		a := &StoredAttempt{}
		err := rows.Scan(
			&a.ID,
			&a.SessionID,
			&a.CaseTitle,
			&a.Attempt.StageNumber,
			&a.Attempt.Score,
			pq.Array(&a.Attempt.ChosenKeyCues),
			&a.Attempt.ChosenHypothesis,
			&a.Attempt.ChosenAction,
			&a.Attempt.ChosenOutcome,
			&a.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attempt: %w", err)
		}
		attempts = append(attempts, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attempts: %w", err)
	}

	return attempts, nil
}

func (r *PostgresAttemptRepository) Close() error {
	return r.db.Close()
}

// MemoryAttemptRepository keeps the attempt log in process. It is the
// default when no database is configured.
type MemoryAttemptRepository struct {
	mu       sync.Mutex
	nextID   int
	attempts []*StoredAttempt
}

func NewMemoryAttemptRepository() *MemoryAttemptRepository {
	return &MemoryAttemptRepository{nextID: 1}
}

func (r *MemoryAttemptRepository) RecordAttempt(_ context.Context, sessionID, caseTitle string, attempt models.AttemptRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.attempts = append(r.attempts, &StoredAttempt{
		ID:        r.nextID,
		SessionID: sessionID,
		CaseTitle: caseTitle,
		Attempt:   attempt,
		CreatedAt: time.Now().UTC(),
	})
	r.nextID++
	return nil
}

func (r *MemoryAttemptRepository) GetAttemptsBySession(_ context.Context, sessionID string) ([]*StoredAttempt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*StoredAttempt
	for _, a := range r.attempts {
		if a.SessionID == sessionID {
			copied := *a
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *MemoryAttemptRepository) Close() error {
	return nil
}
