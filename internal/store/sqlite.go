package store

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pbaille/dayplan/internal/domain"
)

//go:embed schema.sql
var schema string

// SQLite stores posts in a SQLite database
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens the database at dbPath and applies the schema
func NewSQLite(dbPath string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// A single connection keeps ":memory:" databases shared and serializes writers
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &SQLite{db: db}, nil
}

// Close closes the database connection
func (s *SQLite) Close() error {
	return s.db.Close()
}

// CreatePost inserts a post with a fresh UUID
func (s *SQLite) CreatePost(ctx context.Context, p domain.NewPost) (*domain.Post, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO posts (id, title, content, created_at) VALUES (?, ?, ?, ?)",
		id, p.Title, p.Content, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert post: %w", err)
	}

	return &domain.Post{
		ID:        id,
		Title:     p.Title,
		Content:   p.Content,
		CreatedAt: now,
	}, nil
}

// GetPost retrieves a post by ID, nil if absent
func (s *SQLite) GetPost(ctx context.Context, id string) (*domain.Post, error) {
	var p domain.Post
	err := s.db.QueryRowContext(ctx,
		"SELECT id, title, content, created_at FROM posts WHERE id = ?",
		id,
	).Scan(&p.ID, &p.Title, &p.Content, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}
	return &p, nil
}

// ListPosts returns all posts, newest first
func (s *SQLite) ListPosts(ctx context.Context) ([]domain.Post, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, title, content, created_at FROM posts ORDER BY created_at DESC, rowid DESC",
	)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	var posts []domain.Post
	for rows.Next() {
		var p domain.Post
		if err := rows.Scan(&p.ID, &p.Title, &p.Content, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, p)
	}

	return posts, rows.Err()
}

// DeletePost removes a post and reports whether it existed
func (s *SQLite) DeletePost(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM posts WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("delete post: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete post: %w", err)
	}
	return n > 0, nil
}
