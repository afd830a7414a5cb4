package session

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// Store provides SQLite-backed persistence for submissions.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// NewStore opens the SQLite database at dbPath and creates tables if they don't exist.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// One connection; sqlite allows a single writer.
	db.SetMaxOpenConns(1)

	if err := createTables(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}

	return &Store{db: db, now: time.Now}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func createTables(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS submissions (
		id TEXT PRIMARY KEY,
		session_id TEXT NOT NULL,
		submitted_at DATETIME,
		received_at DATETIME NOT NULL,
		total_time INTEGER DEFAULT 0,
		summary TEXT NOT NULL,
		user_agent TEXT,
		remote TEXT
	);

	CREATE TABLE IF NOT EXISTS verdicts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		submission_id TEXT NOT NULL,
		bucket TEXT NOT NULL,
		item TEXT NOT NULL,
		position INTEGER NOT NULL,
		FOREIGN KEY (submission_id) REFERENCES submissions(id)
	);

	CREATE INDEX IF NOT EXISTS verdicts_item ON verdicts(item);
	`
	_, err := db.Exec(schema)
	return err
}

// AddSubmission stores sub and its verdict rows, assigning ID and
// ReceivedAt. Duplicate session ids are stored again; the log is append-only.
func (s *Store) AddSubmission(sub *Submission) error {
	sub.ID = uuid.New().String()
	sub.ReceivedAt = s.now().UTC()
	if sub.Summary == "" {
		sub.Summary = fmt.Sprintf("%d/%d/%d", len(sub.Kept), len(sub.Killed), len(sub.Maybe))
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var submittedAt any
	if !sub.SubmittedAt.IsZero() {
		submittedAt = sub.SubmittedAt.UTC()
	}
	_, err = tx.Exec(
		`INSERT INTO submissions (id, session_id, submitted_at, received_at, total_time, summary, user_agent, remote)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		sub.ID, sub.SessionID, submittedAt, sub.ReceivedAt, sub.TotalTime, sub.Summary, sub.UserAgent, sub.Remote,
	)
	if err != nil {
		return fmt.Errorf("insert submission: %w", err)
	}

	position := 0
	for _, group := range []struct {
		bucket string
		items  []string
	}{
		{BucketKept, sub.Kept},
		{BucketKilled, sub.Killed},
		{BucketMaybe, sub.Maybe},
	} {
		for _, item := range group.items {
			_, err = tx.Exec(
				`INSERT INTO verdicts (submission_id, bucket, item, position) VALUES (?, ?, ?, ?)`,
				sub.ID, group.bucket, item, position,
			)
			if err != nil {
				return fmt.Errorf("insert verdict: %w", err)
			}
			position++
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit submission: %w", err)
	}
	return nil
}

// GetSubmission retrieves a submission by ID, or nil if there is none.
func (s *Store) GetSubmission(id string) (*Submission, error) {
	row := s.db.QueryRow(
		`SELECT id, session_id, submitted_at, received_at, total_time, summary,
		        COALESCE(user_agent, ''), COALESCE(remote, '')
		 FROM submissions WHERE id = ?`,
		id,
	)

	var sub Submission
	var submittedAt sql.NullTime
	err := row.Scan(&sub.ID, &sub.SessionID, &submittedAt, &sub.ReceivedAt, &sub.TotalTime,
		&sub.Summary, &sub.UserAgent, &sub.Remote)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan submission: %w", err)
	}
	if submittedAt.Valid {
		sub.SubmittedAt = submittedAt.Time
	}

	if err := s.loadVerdicts(&sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

func (s *Store) loadVerdicts(sub *Submission) error {
	rows, err := s.db.Query(
		`SELECT bucket, item FROM verdicts WHERE submission_id = ? ORDER BY position ASC`,
		sub.ID,
	)
	if err != nil {
		return fmt.Errorf("query verdicts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var bucket, item string
		if err := rows.Scan(&bucket, &item); err != nil {
			return fmt.Errorf("scan verdict: %w", err)
		}
		switch bucket {
		case BucketKept:
			sub.Kept = append(sub.Kept, item)
		case BucketKilled:
			sub.Killed = append(sub.Killed, item)
		case BucketMaybe:
			sub.Maybe = append(sub.Maybe, item)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate rows: %w", err)
	}
	return nil
}

// ListSubmissions returns summaries of the most recent submissions.
func (s *Store) ListSubmissions(limit int) ([]Summary, error) {
	rows, err := s.db.Query(
		`SELECT id, session_id, summary, total_time, received_at
		 FROM submissions
		 ORDER BY received_at DESC, rowid DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query submissions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var summaries []Summary
	for rows.Next() {
		var sum Summary
		if err := rows.Scan(&sum.ID, &sum.SessionID, &sum.Summary, &sum.TotalTime, &sum.ReceivedAt); err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		summaries = append(summaries, sum)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return summaries, nil
}

// Count returns the number of stored submissions.
func (s *Store) Count() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM submissions`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count submissions: %w", err)
	}
	return n, nil
}

// Tallies returns per-item verdict counts, most kept first.
func (s *Store) Tallies() ([]Tally, error) {
	rows, err := s.db.Query(
		`SELECT item,
		        SUM(CASE WHEN bucket = 'kept' THEN 1 ELSE 0 END),
		        SUM(CASE WHEN bucket = 'killed' THEN 1 ELSE 0 END),
		        SUM(CASE WHEN bucket = 'maybe' THEN 1 ELSE 0 END)
		 FROM verdicts
		 GROUP BY item
		 ORDER BY 2 DESC, 3 ASC, item ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("query tallies: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var tallies []Tally
	for rows.Next() {
		var t Tally
		if err := rows.Scan(&t.Item, &t.Kept, &t.Killed, &t.Maybe); err != nil {
			return nil, fmt.Errorf("scan tally: %w", err)
		}
		tallies = append(tallies, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return tallies, nil
}
