package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/folioapp/folio/internal/id"
)

// Book is the root entity of the reading diary. The shelf service owns
// the only mutable copy; everything handed to the TUI is a clone.
type Book struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	Description string `json:"description"`

	// CoverImage is a base64 data URI ("data:image/png;base64,...") or
	// empty when no cover is attached. Persisted as null when empty.
	CoverImage DataURI `json:"coverImage"`

	ReleaseDate string `json:"releaseDate"` // YYYY-MM-DD
	Genre       Genre  `json:"genre"`

	TotalPages  int `json:"totalPages"`
	CurrentPage int `json:"currentPage"` // invariant: 0 <= CurrentPage <= TotalPages
	Rating      int `json:"rating"`      // 0 to 5

	GeneralSummary   string `json:"generalSummary"`
	TargetFinishDate string `json:"targetFinishDate,omitempty"` // YYYY-MM-DD, empty = no goal

	ChapterSummaries []ChapterSummary `json:"chapterSummaries"`
	Quotes           []Quote          `json:"quotes"`
	Glossary         []GlossaryEntry  `json:"glossary"`

	// CreatedAt is a unix-millisecond timestamp. Stored for future
	// sorting; display order is prepend-on-add, not CreatedAt.
	CreatedAt int64 `json:"createdAt"`
}

// ChapterSummary is a per-chapter note. Insertion order is display order.
type ChapterSummary struct {
	ID           string `json:"id"`
	ChapterTitle string `json:"chapterTitle"`
	Content      string `json:"content"`
}

// Quote is a favorite passage with its page number.
type Quote struct {
	ID   string `json:"id"`
	Text string `json:"text"`
	Page int    `json:"page"`
}

// GlossaryEntry is a word the reader looked up while reading.
type GlossaryEntry struct {
	ID         string `json:"id"`
	Word       string `json:"word"`
	Definition string `json:"definition"`
}

// NewBook validates the required creation fields and returns a fresh Book
// with a unique ID, zeroed progress and empty note sequences.
func NewBook(title, author string, genre Genre, totalPages int, description, releaseDate string) (*Book, error) {
	title = strings.TrimSpace(title)
	author = strings.TrimSpace(author)

	if title == "" {
		return nil, &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if author == "" {
		return nil, &ValidationError{Field: "author", Reason: "must not be empty"}
	}
	if totalPages < 1 {
		return nil, &ValidationError{Field: "totalPages", Reason: "must be at least 1"}
	}

	now := time.Now()
	if releaseDate == "" {
		releaseDate = now.Format(DateLayout)
	}

	return &Book{
		ID:               id.MustGenerate("book"),
		Title:            title,
		Author:           author,
		Description:      description,
		ReleaseDate:      releaseDate,
		Genre:            genre,
		TotalPages:       totalPages,
		CurrentPage:      0,
		Rating:           0,
		ChapterSummaries: []ChapterSummary{},
		Quotes:           []Quote{},
		Glossary:         []GlossaryEntry{},
		CreatedAt:        now.UnixMilli(),
	}, nil
}

// NewChapterSummary creates a chapter note with a fresh ID.
func NewChapterSummary(chapterTitle, content string) ChapterSummary {
	return ChapterSummary{ID: id.MustGenerate("ch"), ChapterTitle: chapterTitle, Content: content}
}

// NewQuote creates a quote with a fresh ID.
func NewQuote(text string, page int) Quote {
	return Quote{ID: id.MustGenerate("q"), Text: text, Page: page}
}

// NewGlossaryEntry creates a glossary entry with a fresh ID.
func NewGlossaryEntry(word, definition string) GlossaryEntry {
	return GlossaryEntry{ID: id.MustGenerate("gl"), Word: word, Definition: definition}
}

// Clone returns a deep copy. Field edits in the TUI always go through the
// shelf service, so handing out copies keeps stale-pointer writes impossible.
func (b *Book) Clone() *Book {
	c := *b
	c.ChapterSummaries = append([]ChapterSummary(nil), b.ChapterSummaries...)
	c.Quotes = append([]Quote(nil), b.Quotes...)
	c.Glossary = append([]GlossaryEntry(nil), b.Glossary...)
	return &c
}

// PagesRemaining returns the pages left to read, never negative.
func (b *Book) PagesRemaining() int {
	remaining := b.TotalPages - b.CurrentPage
	if remaining < 0 {
		return 0
	}
	return remaining
}

// HasCover reports whether a cover image is attached.
func (b *Book) HasCover() bool {
	return b.CoverImage != ""
}

// PageLabel returns the progress fraction for display (e.g., "134/320").
func (b *Book) PageLabel() string {
	return fmt.Sprintf("%d/%d", b.CurrentPage, b.TotalPages)
}
