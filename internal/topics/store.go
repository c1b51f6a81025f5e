package topics

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/docchat/docchat/internal/db"
)

// Store provides CRUD operations for topics.
type Store struct {
	db *db.DB
}

// NewStore creates a Store backed by the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Create inserts a new topic. If t.ID is empty a UUID is generated.
// An existing topic with the same (document, keyword) pair is replaced.
func (s *Store) Create(ctx context.Context, t Topic) (string, error) {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	if t.Keyword == "" {
		return "", fmt.Errorf("keyword is required")
	}
	if t.Document == "" {
		return "", fmt.Errorf("document is required")
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO topics (id, document, keyword, answer_html)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(document, keyword) DO UPDATE SET answer_html = excluded.answer_html`,
		t.ID, t.Document, t.Keyword, t.AnswerHTML,
	)
	if err != nil {
		return "", fmt.Errorf("inserting topic: %w", err)
	}
	return t.ID, nil
}

// GetByID retrieves a single topic.
func (s *Store) GetByID(ctx context.Context, id string) (*Topic, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, document, keyword, answer_html, created_at
		FROM topics WHERE id = ?`, id)
	return scanTopic(row)
}

// GetByKeyword retrieves the topic for a (document, keyword) pair.
func (s *Store) GetByKeyword(ctx context.Context, document, keyword string) (*Topic, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, document, keyword, answer_html, created_at
		FROM topics WHERE document = ? AND keyword = ?`, document, keyword)
	return scanTopic(row)
}

// ListByDocument returns all topics belonging to a document, in keyword order.
func (s *Store) ListByDocument(ctx context.Context, document string) ([]Topic, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, document, keyword, answer_html, created_at
		FROM topics WHERE document = ? ORDER BY keyword`, document)
	if err != nil {
		return nil, fmt.Errorf("querying topics: %w", err)
	}
	defer rows.Close()

	var out []Topic
	for rows.Next() {
		var t Topic
		if err := rows.Scan(&t.ID, &t.Document, &t.Keyword, &t.AnswerHTML, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning topic: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// ListDocuments returns the distinct document names in the store.
func (s *Store) ListDocuments(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT document FROM topics ORDER BY document`)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning document name: %w", err)
		}
		out = append(out, name)
	}
	return out, rows.Err()
}

// HasDocument reports whether any topics exist for the given document.
func (s *Store) HasDocument(ctx context.Context, document string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM topics WHERE document = ?`, document).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("counting topics: %w", err)
	}
	return n > 0, nil
}

// DeleteDocument removes all topics belonging to a document and returns
// the number of rows removed.
func (s *Store) DeleteDocument(ctx context.Context, document string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM topics WHERE document = ?`, document)
	if err != nil {
		return 0, fmt.Errorf("deleting topics: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

func scanTopic(row *sql.Row) (*Topic, error) {
	var t Topic
	if err := row.Scan(&t.ID, &t.Document, &t.Keyword, &t.AnswerHTML, &t.CreatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}
