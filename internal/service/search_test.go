package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folioapp/folio/internal/domain"
	"github.com/folioapp/folio/internal/log"
)

func newTestSearch(t *testing.T) (*SearchService, *ShelfService) {
	t.Helper()
	shelf, _ := newTestShelf(t)

	seed := []struct {
		title, author string
	}{
		{"The Left Hand of Darkness", "Ursula K. Le Guin"},
		{"A Wizard of Earthsea", "Ursula K. Le Guin"},
		{"Piranesi", "Susanna Clarke"},
		{"Dune", "Frank Herbert"},
	}
	for _, s := range seed {
		b, err := domain.NewBook(s.title, s.author, domain.GenreFantasy, 300, "", "")
		require.NoError(t, err)
		require.NoError(t, shelf.AddBook(b))
	}

	return NewSearchService(shelf, log.NullLogger()), shelf
}

func TestSearch_ByTitle(t *testing.T) {
	search, _ := newTestSearch(t)

	results := search.Search("piranesi")
	require.NotEmpty(t, results)
	assert.Equal(t, "Piranesi", results[0].Book.Title)
	assert.NotEmpty(t, results[0].TitleIndexes)
}

func TestSearch_ByAuthor(t *testing.T) {
	search, _ := newTestSearch(t)

	results := search.Search("le guin")
	require.Len(t, results, 2)
	for _, r := range results {
		assert.Equal(t, "Ursula K. Le Guin", r.Book.Author)
	}
}

func TestSearch_SubsequenceFallback(t *testing.T) {
	search, _ := newTestSearch(t)

	// No token survives the strict matcher here; the subsequence pass
	// still finds the title.
	results := search.Search("lfthnd")
	require.NotEmpty(t, results)
	assert.Equal(t, "The Left Hand of Darkness", results[0].Book.Title)
}

func TestSearch_EmptyQuery(t *testing.T) {
	search, _ := newTestSearch(t)
	assert.Nil(t, search.Search(""))
	assert.Nil(t, search.Search("  "))
}

func TestSearch_NoResults(t *testing.T) {
	search, _ := newTestSearch(t)
	assert.Empty(t, search.Search("zzzzqqqq"))
}
