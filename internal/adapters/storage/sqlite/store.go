// Package sqlite provides an optional persistent storage backend. Like
// the memory backend it implements both storage ports with one store.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/nutriplan/nutriplan-api/internal/domain"
)

// Compile-time interface checks.
var (
	_ domain.ConversationStore = (*Store)(nil)
	_ domain.PlanStore         = (*Store)(nil)
)

// Store persists histories and plans in a single SQLite file.
type Store struct {
	db *sql.DB

	// Per-session locks are process-local. The single-process model of
	// the application makes that sufficient.
	locksMu sync.Mutex
	locks   map[domain.SessionID]*sync.Mutex
}

// NewStore opens (or creates) the database at path and initializes the
// schema.
func NewStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:    db,
		locks: make(map[domain.SessionID]*sync.Mutex),
	}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) initSchema() error {
	schema := `
    CREATE TABLE IF NOT EXISTS turns (
        session_id TEXT NOT NULL,
        seq INTEGER NOT NULL,
        role TEXT NOT NULL,
        text TEXT NOT NULL,
        PRIMARY KEY (session_id, seq)
    );

    CREATE TABLE IF NOT EXISTS plans (
        session_id TEXT PRIMARY KEY,
        payload TEXT NOT NULL
    );
    `

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

// ── domain.ConversationStore ─────────────────────────────

func (s *Store) Get(id domain.SessionID) ([]domain.Turn, error) {
	rows, err := s.db.Query(
		`SELECT role, text FROM turns WHERE session_id = ? ORDER BY seq`,
		string(id),
	)
	if err != nil {
		return nil, fmt.Errorf("querying turns: %w", err)
	}
	defer rows.Close()

	var history []domain.Turn
	for rows.Next() {
		var role, text string
		if err := rows.Scan(&role, &text); err != nil {
			return nil, fmt.Errorf("scanning turn: %w", err)
		}
		history = append(history, domain.Turn{Role: domain.Role(role), Text: text})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading turns: %w", err)
	}

	if len(history) == 0 {
		return nil, domain.ErrSessionNotFound
	}
	return history, nil
}

// Put replaces the whole history for a session. The history only ever
// grows by appending, so a full rewrite per exchange keeps the store
// trivially consistent at this scale.
func (s *Store) Put(id domain.SessionID, history []domain.Turn) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM turns WHERE session_id = ?`, string(id)); err != nil {
		return fmt.Errorf("clearing turns: %w", err)
	}

	for i, t := range history {
		_, err := tx.Exec(
			`INSERT INTO turns (session_id, seq, role, text) VALUES (?, ?, ?, ?)`,
			string(id), i, string(t.Role), t.Text,
		)
		if err != nil {
			return fmt.Errorf("inserting turn: %w", err)
		}
	}

	return tx.Commit()
}

func (s *Store) Delete(id domain.SessionID) error {
	if _, err := s.db.Exec(`DELETE FROM turns WHERE session_id = ?`, string(id)); err != nil {
		return fmt.Errorf("deleting turns: %w", err)
	}
	return nil
}

func (s *Store) LockSession(id domain.SessionID) func() {
	s.locksMu.Lock()
	l, ok := s.locks[id]
	if !ok {
		l = &sync.Mutex{}
		s.locks[id] = l
	}
	s.locksMu.Unlock()

	l.Lock()
	return l.Unlock
}

// ── domain.PlanStore ─────────────────────────────────────

func (s *Store) GetPlan(id domain.SessionID) (*domain.MealPlan, error) {
	var payload string
	err := s.db.QueryRow(
		`SELECT payload FROM plans WHERE session_id = ?`, string(id),
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrPlanNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying plan: %w", err)
	}

	var plan domain.MealPlan
	if err := json.Unmarshal([]byte(payload), &plan); err != nil {
		return nil, fmt.Errorf("decoding stored plan: %w", err)
	}
	return &plan, nil
}

func (s *Store) PutPlan(id domain.SessionID, plan *domain.MealPlan) error {
	payload, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("encoding plan: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO plans (session_id, payload) VALUES (?, ?)
         ON CONFLICT(session_id) DO UPDATE SET payload = excluded.payload`,
		string(id), string(payload),
	)
	if err != nil {
		return fmt.Errorf("storing plan: %w", err)
	}
	return nil
}

func (s *Store) DeletePlan(id domain.SessionID) error {
	if _, err := s.db.Exec(`DELETE FROM plans WHERE session_id = ?`, string(id)); err != nil {
		return fmt.Errorf("deleting plan: %w", err)
	}
	return nil
}
