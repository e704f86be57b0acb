package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBook_Defaults(t *testing.T) {
	b, err := NewBook("Dom Casmurro", "Machado de Assis", GenreFiction, 256, "", "")
	require.NoError(t, err)

	assert.NotEmpty(t, b.ID)
	assert.Equal(t, "Dom Casmurro", b.Title)
	assert.Equal(t, "Machado de Assis", b.Author)
	assert.Equal(t, GenreFiction, b.Genre)
	assert.Equal(t, 256, b.TotalPages)

	assert.Equal(t, 0, b.CurrentPage)
	assert.Equal(t, 0, b.Rating)
	assert.Empty(t, b.ChapterSummaries)
	assert.Empty(t, b.Quotes)
	assert.Empty(t, b.Glossary)
	assert.NotZero(t, b.CreatedAt)

	// Release date defaults to today when not supplied.
	assert.Equal(t, time.Now().Format(DateLayout), b.ReleaseDate)
}

func TestNewBook_UniqueIDs(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		b, err := NewBook("Title", "Author", GenreOther, 10, "", "")
		require.NoError(t, err)
		assert.False(t, seen[b.ID], "ID should be unique: %s", b.ID)
		seen[b.ID] = true
	}
}

func TestNewBook_Validation(t *testing.T) {
	tests := []struct {
		name   string
		title  string
		author string
		pages  int
		field  string
	}{
		{"empty title", "", "Author", 100, "title"},
		{"blank title", "   ", "Author", 100, "title"},
		{"empty author", "Title", "", 100, "author"},
		{"zero pages", "Title", "Author", 0, "totalPages"},
		{"negative pages", "Title", "Author", -5, "totalPages"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := NewBook(tt.title, tt.author, GenreFiction, tt.pages, "", "")
			require.Error(t, err)
			assert.Nil(t, b)
			assert.True(t, IsValidation(err))

			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestBook_Clone(t *testing.T) {
	b, err := NewBook("Title", "Author", GenreMystery, 200, "", "")
	require.NoError(t, err)
	b.Quotes = append(b.Quotes, NewQuote("a line", 12))
	b.ChapterSummaries = append(b.ChapterSummaries, NewChapterSummary("Ch 1", "setup"))
	b.Glossary = append(b.Glossary, NewGlossaryEntry("saudade", "longing"))

	c := b.Clone()
	c.Quotes[0].Text = "changed"
	c.ChapterSummaries[0].Content = "changed"
	c.Glossary[0].Word = "changed"
	c.Title = "changed"

	assert.Equal(t, "a line", b.Quotes[0].Text)
	assert.Equal(t, "setup", b.ChapterSummaries[0].Content)
	assert.Equal(t, "saudade", b.Glossary[0].Word)
	assert.Equal(t, "Title", b.Title)
}

func TestBook_PagesRemaining(t *testing.T) {
	b := &Book{TotalPages: 300, CurrentPage: 120}
	assert.Equal(t, 180, b.PagesRemaining())

	// Overshoot never goes negative.
	b.CurrentPage = 350
	assert.Equal(t, 0, b.PagesRemaining())
}

func TestBook_JSONRoundTrip(t *testing.T) {
	b, err := NewBook("Round", "Trip", GenreSciFi, 400, "desc", "2021-06-01")
	require.NoError(t, err)
	b.CurrentPage = 42
	b.Rating = 4
	b.TargetFinishDate = "2026-12-24"
	b.CoverImage = "data:image/png;base64,AAAA"
	b.Quotes = append(b.Quotes, NewQuote("first", 3), NewQuote("second", 99))
	b.ChapterSummaries = append(b.ChapterSummaries, NewChapterSummary("One", "a"), NewChapterSummary("Two", "b"))
	b.Glossary = append(b.Glossary, NewGlossaryEntry("w", "d"))

	data, err := json.Marshal(b)
	require.NoError(t, err)

	var got Book
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, *b, got)
}

func TestDataURI_NullWhenEmpty(t *testing.T) {
	b, err := NewBook("No Cover", "Anon", GenreOther, 10, "", "")
	require.NoError(t, err)

	data, err := json.Marshal(b)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"coverImage":null`)

	var got Book
	require.NoError(t, json.Unmarshal(data, &got))
	assert.False(t, got.HasCover())
}
