package store

import (
	"context"
	_ "embed"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pbaille/dayplan/internal/domain"
)

//go:embed schema_postgres.sql
var postgresSchema string

// Postgres stores posts in a PostgreSQL database through a pgx pool.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres connects to dsn and applies the schema.
func NewPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	cfg.MaxConns = 10
	cfg.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeCacheStatement

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &Postgres{pool: pool}, nil
}

// Close releases the pool.
func (p *Postgres) Close() error {
	p.pool.Close()
	return nil
}

// CreatePost inserts a post and returns it with its generated id.
func (p *Postgres) CreatePost(ctx context.Context, in domain.NewPost) (*domain.Post, error) {
	const q = `
	INSERT INTO posts (title, content)
	VALUES ($1, $2)
	RETURNING id::text, title, content, created_at;
	`
	var post domain.Post
	err := p.pool.QueryRow(ctx, q, in.Title, in.Content).
		Scan(&post.ID, &post.Title, &post.Content, &post.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert post: %w", err)
	}
	return &post, nil
}

// GetPost returns the post with id, nil if absent or if id is not a UUID.
func (p *Postgres) GetPost(ctx context.Context, id string) (*domain.Post, error) {
	if !isUUID(id) {
		return nil, nil
	}
	const q = `
	SELECT id::text, title, content, created_at
	FROM posts
	WHERE id = $1::uuid;
	`
	var post domain.Post
	err := p.pool.QueryRow(ctx, q, id).Scan(&post.ID, &post.Title, &post.Content, &post.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}
	return &post, nil
}

// ListPosts returns all posts, newest first.
func (p *Postgres) ListPosts(ctx context.Context) ([]domain.Post, error) {
	const q = `
	SELECT id::text, title, content, created_at
	FROM posts
	ORDER BY created_at DESC;
	`
	rows, err := p.pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	var res []domain.Post
	for rows.Next() {
		var post domain.Post
		if err := rows.Scan(&post.ID, &post.Title, &post.Content, &post.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		res = append(res, post)
	}
	return res, rows.Err()
}

// DeletePost removes the post with id and reports whether it existed.
func (p *Postgres) DeletePost(ctx context.Context, id string) (bool, error) {
	if !isUUID(id) {
		return false, nil
	}
	tag, err := p.pool.Exec(ctx, "DELETE FROM posts WHERE id = $1::uuid", id)
	if err != nil {
		return false, fmt.Errorf("delete post: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// isUUID reports whether id can match the uuid primary key. Anything else
// would make the ::uuid cast fail instead of matching nothing.
func isUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
