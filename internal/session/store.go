package session

import (
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"industrybrief/internal/industry"
)

// Steps mirror the three-step interaction: enter an industry, review the five
// source links, read the report.
const (
	StepQuery   = 1
	StepSources = 2
	StepReport  = 3
)

var ErrNotFound = errors.New("session not found")

// Session is the per-interaction state the UI shell keeps between calls. The
// pipeline itself stays stateless; this store belongs to the shell side of
// that boundary.
type Session struct {
	ID        string              `json:"session_id"`
	Industry  string              `json:"industry"`
	Step      int                 `json:"step"`
	Accepted  bool                `json:"accepted"`
	Message   string              `json:"message,omitempty"`
	Documents []industry.Document `json:"documents,omitempty"`
	Links     []industry.Link     `json:"links,omitempty"`
	Report    string              `json:"report,omitempty"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	session_id TEXT PRIMARY KEY,
	industry   TEXT NOT NULL DEFAULT '',
	step       INTEGER NOT NULL DEFAULT 1,
	accepted   INTEGER NOT NULL DEFAULT 0,
	message    TEXT NOT NULL DEFAULT '',
	documents  TEXT NOT NULL DEFAULT '[]',
	links      TEXT NOT NULL DEFAULT '[]',
	report     TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);
`

// Store persists sessions to SQLite. Pass ":memory:" for an ephemeral store.
type Store struct {
	db *sqlx.DB
}

func NewStore(dbPath string) (*Store, error) {
	db, err := sqlx.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Create stores a fresh session holding a validation outcome. Accepted
// sessions start at the sources step, rejected ones stay at the query step.
func (s *Store) Create(industryQuery string, res industry.ValidationResult) (*Session, error) {
	now := time.Now().UTC()
	sess := &Session{
		ID:        newSessionID(),
		Industry:  industryQuery,
		Step:      StepQuery,
		Accepted:  res.Accepted,
		Message:   res.Message,
		Documents: res.Documents,
		Links:     res.Links,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if res.Accepted {
		sess.Step = StepSources
	}
	_, err := s.db.Exec(`INSERT INTO sessions (session_id, industry, step, accepted, message, documents, links, report, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, '', ?, ?)`,
		sess.ID,
		sess.Industry,
		sess.Step,
		boolToInt(sess.Accepted),
		sess.Message,
		marshalJSON(sess.Documents),
		marshalJSON(sess.Links),
		timeToString(sess.CreatedAt),
		timeToString(sess.UpdatedAt),
	)
	if err != nil {
		return nil, fmt.Errorf("insert session: %w", err)
	}
	return sess, nil
}

func (s *Store) Get(id string) (*Session, error) {
	row := s.db.QueryRow(`SELECT session_id, industry, step, accepted, message, documents, links, report, created_at, updated_at
		FROM sessions WHERE session_id = ?`, id)

	var sess Session
	var accepted int
	var docsJSON, linksJSON, createdAt, updatedAt string
	err := row.Scan(&sess.ID, &sess.Industry, &sess.Step, &accepted, &sess.Message, &docsJSON, &linksJSON, &sess.Report, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	sess.Accepted = accepted != 0
	_ = json.Unmarshal([]byte(docsJSON), &sess.Documents)
	_ = json.Unmarshal([]byte(linksJSON), &sess.Links)
	sess.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	sess.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updatedAt)
	return &sess, nil
}

// SaveReport records the synthesized report and advances the session to the
// report step.
func (s *Store) SaveReport(id, report string) error {
	res, err := s.db.Exec(`UPDATE sessions SET report = ?, step = ?, updated_at = ? WHERE session_id = ?`,
		report, StepReport, timeToString(time.Now().UTC()), id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func newSessionID() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func timeToString(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func marshalJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "[]"
	}
	return string(b)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
