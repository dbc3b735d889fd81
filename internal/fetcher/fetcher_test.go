package fetcher

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePage = `<!doctype html>
<html>
<head><title>  Morning
  routine </title><style>body{}</style></head>
<body>
<nav>Home | About</nav>
<h1>Wake up</h1>
<p>Drink water.</p>
<script>track()</script>
<p>Stretch.</p>
<footer>(c) nobody</footer>
</body>
</html>`

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, samplePage)
	}))
	defer srv.Close()

	page, err := New().Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "Morning routine", page.Title)
	assert.Equal(t, "Wake up Drink water. Stretch.", page.Text)

	draft := page.Draft()
	assert.Equal(t, "Morning routine", draft.Title)
	assert.Equal(t, page.Text, draft.Content)
}

func TestFetchUntitledDraftUsesURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<p>just text</p>")
	}))
	defer srv.Close()

	page, err := New().Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, srv.URL, page.Draft().Title)
}

func TestFetchErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/missing":
			http.NotFound(w, r)
		default:
			fmt.Fprint(w, "<html><head><title>t</title></head><body></body></html>")
		}
	}))
	defer srv.Close()

	f := New()
	_, err := f.Fetch(context.Background(), srv.URL+"/missing")
	assert.ErrorContains(t, err, "HTTP 404")

	_, err = f.Fetch(context.Background(), srv.URL+"/empty")
	assert.ErrorContains(t, err, "no text content")

	_, err = f.Fetch(context.Background(), "ftp://example.com/file")
	assert.ErrorContains(t, err, "unsupported scheme")
}

func TestIsURL(t *testing.T) {
	assert.True(t, IsURL("https://example.com"))
	assert.True(t, IsURL("  www.example.com"))
	assert.False(t, IsURL("Sleep more"))
}

func TestFetchTruncatesOnRuneBoundary(t *testing.T) {
	// one ASCII byte first so the byte limit falls inside a two-byte rune
	body := "<p>x" + strings.Repeat("é", maxContent) + "</p>"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, body)
	}))
	defer srv.Close()

	page, err := New().Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.True(t, utf8.ValidString(page.Text))
	assert.True(t, strings.HasSuffix(page.Text, "é..."))
	assert.LessOrEqual(t, len(page.Text), maxContent+len("..."))
}
