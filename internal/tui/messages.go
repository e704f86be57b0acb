package tui

import (
	"github.com/folioapp/folio/internal/domain"
	"github.com/folioapp/folio/internal/service"
)

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// BooksLoadedMsg signals that the collection has been loaded
type BooksLoadedMsg struct {
	Books []*domain.Book
}

// BookAddedMsg signals that a book was added to the shelf
type BookAddedMsg struct {
	Book *domain.Book
}

// BookUpdatedMsg carries the fresh record after any mutation
type BookUpdatedMsg struct {
	Book *domain.Book
}

// BookDeletedMsg signals that a book was removed
type BookDeletedMsg struct {
	ID    string
	Title string
}

// CoverLoadedMsg carries a cover image read from disk
type CoverLoadedMsg struct {
	BookID string
	Data   domain.DataURI
}

// ThemeChangedMsg signals that the color theme flipped
type ThemeChangedMsg struct {
	Theme string
}

// SearchResultsMsg signals that search results are ready
type SearchResultsMsg struct {
	Query   string
	Results []service.SearchResult
}

// StatusMsg sets a temporary status message
type StatusMsg struct {
	Message string
	IsError bool
}

// ClearStatusMsg clears the status bar message
type ClearStatusMsg struct{}
