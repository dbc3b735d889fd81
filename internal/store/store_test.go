package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pbaille/dayplan/internal/domain"
)

func newTestSQLite(t *testing.T) *SQLite {
	t.Helper()
	s, err := NewSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

// exercise runs the same CRUD scenario against any backend.
func exercise(t *testing.T, b Backend) {
	ctx := context.Background()

	first, err := b.CreatePost(ctx, domain.NewPost{Title: "First", Content: "one"})
	require.NoError(t, err)
	require.NotEmpty(t, first.ID)
	assert.False(t, first.CreatedAt.IsZero())

	second, err := b.CreatePost(ctx, domain.NewPost{Title: "Second", Content: "two"})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	got, err := b.GetPost(ctx, first.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "First", got.Title)
	assert.Equal(t, "one", got.Content)

	list, err := b.ListPosts(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID, "newest first")

	deleted, err := b.DeletePost(ctx, first.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	got, err = b.GetPost(ctx, first.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	deleted, err = b.DeletePost(ctx, first.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestSQLiteCRUD(t *testing.T) {
	exercise(t, newTestSQLite(t))
}

func TestSQLiteGetMissing(t *testing.T) {
	s := newTestSQLite(t)

	got, err := s.GetPost(context.Background(), "does-not-exist")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestSQLiteRejectsEmptyTitle(t *testing.T) {
	s := newTestSQLite(t)

	_, err := s.CreatePost(context.Background(), domain.NewPost{Title: "", Content: "x"})
	assert.Error(t, err)
}

func TestSQLiteClosedStoreFails(t *testing.T) {
	s, err := NewSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, s.Close())

	_, err = s.ListPosts(context.Background())
	assert.Error(t, err)
}

func TestOpenSQLiteCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dayplan.db")

	b, err := Open(context.Background(), "sqlite", path)
	require.NoError(t, err)
	defer b.Close()

	_, err = os.Stat(filepath.Dir(path))
	assert.NoError(t, err)
}

func TestOpenUnknownDriver(t *testing.T) {
	b, err := Open(context.Background(), "oracle", "x")
	assert.Nil(t, b)
	assert.ErrorContains(t, err, "unknown database driver")
}

func TestIsUUID(t *testing.T) {
	assert.True(t, isUUID("3f2504e0-4f89-41d3-9a0c-0305e82c3301"))
	assert.False(t, isUUID("1"))
	assert.False(t, isUUID("'; DROP TABLE posts; --"))
	assert.False(t, isUUID(""))
}

func TestPostgresCRUD(t *testing.T) {
	dsn := os.Getenv("DAYPLAN_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("DAYPLAN_TEST_POSTGRES_DSN not set")
	}
	ctx := context.Background()

	p, err := NewPostgres(ctx, dsn)
	require.NoError(t, err)
	defer p.Close()

	_, err = p.pool.Exec(ctx, "TRUNCATE posts")
	require.NoError(t, err)

	exercise(t, p)

	got, err := p.GetPost(ctx, "not-a-uuid")
	require.NoError(t, err)
	assert.Nil(t, got)

	deleted, err := p.DeletePost(ctx, "not-a-uuid")
	require.NoError(t, err)
	assert.False(t, deleted)
}
