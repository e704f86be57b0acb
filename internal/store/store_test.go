package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	bolt "go.etcd.io/bbolt"

	"github.com/folioapp/folio/internal/domain"
	"github.com/folioapp/folio/internal/log"
)

func newTestStore(t *testing.T, dir string) *ShelfStore {
	t.Helper()
	s, err := NewShelfStore(dir, log.NullLogger())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func newTestBook(t *testing.T, title string) *domain.Book {
	t.Helper()
	b, err := domain.NewBook(title, "Test Author", domain.GenreFiction, 300, "", "")
	require.NoError(t, err)
	return b
}

func TestShelfStore_RoundTrip(t *testing.T) {
	dir := t.TempDir()

	s := newTestStore(t, dir)
	first := newTestBook(t, "The Left Hand of Darkness")
	second := newTestBook(t, "Piranesi")
	second.CurrentPage = 42
	second.Quotes = append(second.Quotes, domain.Quote{ID: "q-1", Text: "The beauty of the House is immeasurable", Page: 1})

	require.NoError(t, s.SaveBooks([]*domain.Book{second, first}))
	require.NoError(t, s.Close())

	// Reopen from disk; nothing should come from the write-through cache.
	reopened := newTestStore(t, dir)
	books, err := reopened.LoadBooks()
	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, second.ID, books[0].ID)
	assert.Equal(t, 42, books[0].CurrentPage)
	assert.Equal(t, second.Quotes, books[0].Quotes)
	assert.Equal(t, first.ID, books[1].ID)
}

func TestShelfStore_EmptyOnFreshDB(t *testing.T) {
	s := newTestStore(t, t.TempDir())

	books, err := s.LoadBooks()
	require.NoError(t, err)
	assert.NotNil(t, books)
	assert.Empty(t, books)

	_, ok := s.Theme()
	assert.False(t, ok)
}

func TestShelfStore_MalformedCollection(t *testing.T) {
	dir := t.TempDir()

	s := newTestStore(t, dir)
	require.NoError(t, s.SaveBooks([]*domain.Book{newTestBook(t, "Dune")}))
	require.NoError(t, s.Close())

	// Corrupt the payload behind the store's back.
	db, err := bolt.Open(filepath.Join(dir, "folio.db"), 0600, &bolt.Options{Timeout: time.Second})
	require.NoError(t, err)
	require.NoError(t, db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte("shelf")).Put([]byte("collection"), []byte("{not json"))
	}))
	require.NoError(t, db.Close())

	reopened := newTestStore(t, dir)
	books, err := reopened.LoadBooks()
	require.NoError(t, err, "malformed data should not wedge startup")
	assert.Empty(t, books)
}

func TestShelfStore_ThemeLastWriteWins(t *testing.T) {
	dir := t.TempDir()

	s := newTestStore(t, dir)
	require.NoError(t, s.SaveTheme(domain.ThemeLight))
	require.NoError(t, s.SaveTheme(domain.ThemeDark))
	require.NoError(t, s.Close())

	reopened := newTestStore(t, dir)
	theme, ok := reopened.Theme()
	assert.True(t, ok)
	assert.Equal(t, domain.ThemeDark, theme)
}

func TestShelfStore_MemoryOnlyMode(t *testing.T) {
	s := newTestStore(t, "")

	require.NoError(t, s.SaveBooks([]*domain.Book{newTestBook(t, "Middlemarch")}))
	books, err := s.LoadBooks()
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "Middlemarch", books[0].Title)

	require.NoError(t, s.SaveTheme(domain.ThemeLight))
	theme, ok := s.Theme()
	assert.True(t, ok)
	assert.Equal(t, domain.ThemeLight, theme)
}
