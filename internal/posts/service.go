// Package posts validates post operations and forwards them to a Store.
package posts

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/pbaille/dayplan/internal/domain"
)

// Store is the durable owner of posts. Get returns nil, nil when no post
// matches; Delete reports whether a row was removed.
type Store interface {
	ListPosts(ctx context.Context) ([]domain.Post, error)
	GetPost(ctx context.Context, id string) (*domain.Post, error)
	CreatePost(ctx context.Context, p domain.NewPost) (*domain.Post, error)
	DeletePost(ctx context.Context, id string) (bool, error)
}

// DeleteResult acknowledges a delete. Deleted is false when nothing matched.
type DeleteResult struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

// Service exposes list, get, create and delete over a Store
type Service struct {
	store  Store
	logger *zap.Logger
}

// NewService creates a Service. A nil logger disables logging.
func NewService(store Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger}
}

// List returns every post in store order.
func (s *Service) List(ctx context.Context) ([]domain.Post, error) {
	posts, err := s.store.ListPosts(ctx)
	if err != nil {
		return nil, unavailable("list posts", err)
	}
	if posts == nil {
		posts = []domain.Post{}
	}
	s.logger.Debug("Listed posts", zap.Int("count", len(posts)))
	return posts, nil
}

// Get returns the post with id, or nil if there is none.
func (s *Service) Get(ctx context.Context, id string) (*domain.Post, error) {
	post, err := s.store.GetPost(ctx, id)
	if err != nil {
		return nil, unavailable("get post", err)
	}
	s.logger.Debug("Fetched post", zap.String("id", id), zap.Bool("found", post != nil))
	return post, nil
}

// Create validates in and stores a new post.
func (s *Service) Create(ctx context.Context, in domain.NewPost) (*domain.Post, error) {
	if err := Validate(in); err != nil {
		return nil, err
	}
	post, err := s.store.CreatePost(ctx, in)
	if err != nil {
		return nil, unavailable("create post", err)
	}
	s.logger.Info("Created post", zap.String("id", post.ID))
	return post, nil
}

// Delete removes the post with id. Deleting a missing post succeeds with
// Deleted set to false.
func (s *Service) Delete(ctx context.Context, id string) (DeleteResult, error) {
	deleted, err := s.store.DeletePost(ctx, id)
	if err != nil {
		return DeleteResult{}, unavailable("delete post", err)
	}
	s.logger.Info("Deleted post", zap.String("id", id), zap.Bool("deleted", deleted))
	return DeleteResult{ID: id, Deleted: deleted}, nil
}

// Validate checks that title and content are non-empty.
func Validate(in domain.NewPost) error {
	verr := &domain.ValidationError{}
	if len(in.Title) < 1 {
		verr.Add("title", "must contain at least 1 character")
	}
	if len(in.Content) < 1 {
		verr.Add("content", "must contain at least 1 character")
	}
	return verr.OrNil()
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, domain.ErrStoreUnavailable, err)
}
