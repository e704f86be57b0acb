package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folioapp/folio/internal/domain"
	"github.com/folioapp/folio/internal/log"
	"github.com/folioapp/folio/internal/store"
)

func newTestShelf(t *testing.T) (*ShelfService, domain.Store) {
	t.Helper()
	st, err := store.NewShelfStore("", log.NullLogger())
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	shelf := NewShelfService(st, log.NullLogger())
	require.NoError(t, shelf.Load())
	return shelf, st
}

func addBook(t *testing.T, shelf *ShelfService, title string) *domain.Book {
	t.Helper()
	b, err := domain.NewBook(title, "Test Author", domain.GenreFiction, 300, "", "")
	require.NoError(t, err)
	require.NoError(t, shelf.AddBook(b))
	return b
}

func TestShelfService_AddBookPrepends(t *testing.T) {
	shelf, st := newTestShelf(t)

	first := addBook(t, shelf, "First")
	second := addBook(t, shelf, "Second")

	books := shelf.Books()
	require.Len(t, books, 2)
	assert.Equal(t, second.ID, books[0].ID)
	assert.Equal(t, first.ID, books[1].ID)

	// A fresh service over the same store sees the same order.
	reloaded := NewShelfService(st, log.NullLogger())
	require.NoError(t, reloaded.Load())
	assert.Equal(t, second.ID, reloaded.Books()[0].ID)
}

func TestShelfService_UpdateBook(t *testing.T) {
	shelf, _ := newTestShelf(t)

	addBook(t, shelf, "First")
	target := addBook(t, shelf, "Second")
	addBook(t, shelf, "Third")

	edited := target.Clone()
	edited.Title = "Second, Revised"
	edited.TotalPages = 100
	edited.CurrentPage = 250
	require.NoError(t, shelf.UpdateBook(edited))

	books := shelf.Books()
	require.Len(t, books, 3)
	assert.Equal(t, "Second, Revised", books[1].Title, "update keeps shelf position")
	assert.Equal(t, 100, books[1].CurrentPage, "progress clamps into the new page count")
}

func TestShelfService_UpdateUnknownIsNoop(t *testing.T) {
	shelf, _ := newTestShelf(t)
	addBook(t, shelf, "Only")

	ghost, err := domain.NewBook("Ghost", "Nobody", domain.GenreOther, 10, "", "")
	require.NoError(t, err)
	require.NoError(t, shelf.UpdateBook(ghost))

	books := shelf.Books()
	require.Len(t, books, 1)
	assert.Equal(t, "Only", books[0].Title)
}

func TestShelfService_DeleteBook(t *testing.T) {
	shelf, _ := newTestShelf(t)

	keep := addBook(t, shelf, "Keep")
	gone := addBook(t, shelf, "Gone")

	require.NoError(t, shelf.DeleteBook(gone.ID))
	books := shelf.Books()
	require.Len(t, books, 1)
	assert.Equal(t, keep.ID, books[0].ID)

	// Deleting again is a no-op.
	require.NoError(t, shelf.DeleteBook(gone.ID))
	assert.Len(t, shelf.Books(), 1)
}

func TestShelfService_BookLookup(t *testing.T) {
	shelf, _ := newTestShelf(t)
	b := addBook(t, shelf, "Findable")

	found, err := shelf.Book(b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, found.ID)

	_, err = shelf.Book("book-missing")
	assert.ErrorIs(t, err, domain.ErrBookNotFound)
}

func TestShelfService_ProgressClamping(t *testing.T) {
	shelf, _ := newTestShelf(t)
	b := addBook(t, shelf, "Clamped")

	require.NoError(t, shelf.SetCurrentPage(b.ID, 500))
	got, _ := shelf.Book(b.ID)
	assert.Equal(t, 300, got.CurrentPage)

	require.NoError(t, shelf.SetCurrentPage(b.ID, -10))
	got, _ = shelf.Book(b.ID)
	assert.Equal(t, 0, got.CurrentPage)

	// Shrinking the page count drags progress down with it.
	require.NoError(t, shelf.SetCurrentPage(b.ID, 300))
	require.NoError(t, shelf.SetTotalPages(b.ID, 120))
	got, _ = shelf.Book(b.ID)
	assert.Equal(t, 120, got.TotalPages)
	assert.Equal(t, 120, got.CurrentPage)
}

func TestShelfService_SetRating(t *testing.T) {
	shelf, _ := newTestShelf(t)
	b := addBook(t, shelf, "Rated")

	require.NoError(t, shelf.SetRating(b.ID, 4))
	got, _ := shelf.Book(b.ID)
	assert.Equal(t, 4, got.Rating)

	require.NoError(t, shelf.SetRating(b.ID, 9))
	got, _ = shelf.Book(b.ID)
	assert.Equal(t, 5, got.Rating)
}

func TestShelfService_MutateUnknownBook(t *testing.T) {
	shelf, _ := newTestShelf(t)

	err := shelf.SetRating("book-missing", 3)
	assert.ErrorIs(t, err, domain.ErrBookNotFound)

	_, err = shelf.AddQuote("book-missing", "words", 1)
	assert.ErrorIs(t, err, domain.ErrBookNotFound)
}

func TestShelfService_ChapterSummaries(t *testing.T) {
	shelf, st := newTestShelf(t)
	b := addBook(t, shelf, "Annotated")

	cs, err := shelf.AddChapterSummary(b.ID, "Chapter One", "It begins.")
	require.NoError(t, err)
	assert.NotEmpty(t, cs.ID)

	cs2, err := shelf.AddChapterSummary(b.ID, "Chapter Two", "It continues.")
	require.NoError(t, err)

	updated := *cs
	updated.Content = "It begins, slowly."
	require.NoError(t, shelf.UpdateChapterSummary(b.ID, updated))

	require.NoError(t, shelf.RemoveChapterSummary(b.ID, cs2.ID))

	// Check through a cold reload so we know it all persisted.
	reloaded := NewShelfService(st, log.NullLogger())
	require.NoError(t, reloaded.Load())
	got, err := reloaded.Book(b.ID)
	require.NoError(t, err)
	require.Len(t, got.ChapterSummaries, 1)
	assert.Equal(t, "It begins, slowly.", got.ChapterSummaries[0].Content)
}

func TestShelfService_Quotes(t *testing.T) {
	shelf, _ := newTestShelf(t)
	b := addBook(t, shelf, "Quotable")

	q, err := shelf.AddQuote(b.ID, "So it goes.", 12)
	require.NoError(t, err)

	edited := *q
	edited.Page = 14
	require.NoError(t, shelf.UpdateQuote(b.ID, edited))

	got, _ := shelf.Book(b.ID)
	require.Len(t, got.Quotes, 1)
	assert.Equal(t, 14, got.Quotes[0].Page)

	require.NoError(t, shelf.RemoveQuote(b.ID, q.ID))
	got, _ = shelf.Book(b.ID)
	assert.Empty(t, got.Quotes)
}

func TestShelfService_Glossary(t *testing.T) {
	shelf, _ := newTestShelf(t)
	b := addBook(t, shelf, "Jargon-Heavy")

	g, err := shelf.AddGlossaryEntry(b.ID, "ansible", "Instant interstellar communicator")
	require.NoError(t, err)

	edited := *g
	edited.Definition = "Device for instantaneous communication"
	require.NoError(t, shelf.UpdateGlossaryEntry(b.ID, edited))

	got, _ := shelf.Book(b.ID)
	require.Len(t, got.Glossary, 1)
	assert.Equal(t, "Device for instantaneous communication", got.Glossary[0].Definition)

	require.NoError(t, shelf.RemoveGlossaryEntry(b.ID, g.ID))
	got, _ = shelf.Book(b.ID)
	assert.Empty(t, got.Glossary)
}
