package tui

import (
	"encoding/base64"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/folioapp/folio/internal/domain"
	"github.com/folioapp/folio/internal/service"
)

// Command factories. Each wraps a service call in a tea.Cmd so the
// Update loop stays non-blocking.

func loadBooksCmd(shelf *service.ShelfService) tea.Cmd {
	return func() tea.Msg {
		if err := shelf.Load(); err != nil {
			return ErrMsg{Err: err, Context: "loading collection"}
		}
		return BooksLoadedMsg{Books: shelf.Books()}
	}
}

func addBookCmd(shelf *service.ShelfService, b *domain.Book) tea.Cmd {
	return func() tea.Msg {
		if err := shelf.AddBook(b); err != nil {
			return ErrMsg{Err: err, Context: "adding book"}
		}
		return BookAddedMsg{Book: b}
	}
}

func updateBookCmd(shelf *service.ShelfService, b *domain.Book) tea.Cmd {
	return func() tea.Msg {
		if err := shelf.UpdateBook(b); err != nil {
			return ErrMsg{Err: err, Context: "updating book"}
		}
		return refreshed(shelf, b.ID)
	}
}

func deleteBookCmd(shelf *service.ShelfService, id, title string) tea.Cmd {
	return func() tea.Msg {
		if err := shelf.DeleteBook(id); err != nil {
			return ErrMsg{Err: err, Context: "deleting book"}
		}
		return BookDeletedMsg{ID: id, Title: title}
	}
}

// adjustPageCmd nudges reading progress by delta pages.
func adjustPageCmd(shelf *service.ShelfService, id string, delta int) tea.Cmd {
	return func() tea.Msg {
		b, err := shelf.Book(id)
		if err != nil {
			return ErrMsg{Err: err, Context: "updating progress"}
		}
		if err := shelf.SetCurrentPage(id, b.CurrentPage+delta); err != nil {
			return ErrMsg{Err: err, Context: "updating progress"}
		}
		return refreshed(shelf, id)
	}
}

func setRatingCmd(shelf *service.ShelfService, id string, rating int) tea.Cmd {
	return func() tea.Msg {
		if err := shelf.SetRating(id, rating); err != nil {
			return ErrMsg{Err: err, Context: "setting rating"}
		}
		return refreshed(shelf, id)
	}
}

func setTargetDateCmd(shelf *service.ShelfService, id, date string) tea.Cmd {
	return func() tea.Msg {
		if date != "" {
			if _, err := time.ParseInLocation(domain.DateLayout, date, time.Local); err != nil {
				return StatusMsg{Message: "target date must be YYYY-MM-DD", IsError: true}
			}
		}
		if err := shelf.SetTargetFinishDate(id, date); err != nil {
			return ErrMsg{Err: err, Context: "setting target date"}
		}
		return refreshed(shelf, id)
	}
}

func setGeneralSummaryCmd(shelf *service.ShelfService, id, summary string) tea.Cmd {
	return func() tea.Msg {
		if err := shelf.SetGeneralSummary(id, summary); err != nil {
			return ErrMsg{Err: err, Context: "saving summary"}
		}
		return refreshed(shelf, id)
	}
}

func addChapterSummaryCmd(shelf *service.ShelfService, bookID, title, content string) tea.Cmd {
	return func() tea.Msg {
		if _, err := shelf.AddChapterSummary(bookID, title, content); err != nil {
			return ErrMsg{Err: err, Context: "adding chapter summary"}
		}
		return refreshed(shelf, bookID)
	}
}

func updateChapterSummaryCmd(shelf *service.ShelfService, bookID string, cs domain.ChapterSummary) tea.Cmd {
	return func() tea.Msg {
		if err := shelf.UpdateChapterSummary(bookID, cs); err != nil {
			return ErrMsg{Err: err, Context: "updating chapter summary"}
		}
		return refreshed(shelf, bookID)
	}
}

func removeChapterSummaryCmd(shelf *service.ShelfService, bookID, summaryID string) tea.Cmd {
	return func() tea.Msg {
		if err := shelf.RemoveChapterSummary(bookID, summaryID); err != nil {
			return ErrMsg{Err: err, Context: "removing chapter summary"}
		}
		return refreshed(shelf, bookID)
	}
}

func addQuoteCmd(shelf *service.ShelfService, bookID, text string, page int) tea.Cmd {
	return func() tea.Msg {
		if _, err := shelf.AddQuote(bookID, text, page); err != nil {
			return ErrMsg{Err: err, Context: "adding quote"}
		}
		return refreshed(shelf, bookID)
	}
}

func updateQuoteCmd(shelf *service.ShelfService, bookID string, q domain.Quote) tea.Cmd {
	return func() tea.Msg {
		if err := shelf.UpdateQuote(bookID, q); err != nil {
			return ErrMsg{Err: err, Context: "updating quote"}
		}
		return refreshed(shelf, bookID)
	}
}

func removeQuoteCmd(shelf *service.ShelfService, bookID, quoteID string) tea.Cmd {
	return func() tea.Msg {
		if err := shelf.RemoveQuote(bookID, quoteID); err != nil {
			return ErrMsg{Err: err, Context: "removing quote"}
		}
		return refreshed(shelf, bookID)
	}
}

func addGlossaryEntryCmd(shelf *service.ShelfService, bookID, word, definition string) tea.Cmd {
	return func() tea.Msg {
		if _, err := shelf.AddGlossaryEntry(bookID, word, definition); err != nil {
			return ErrMsg{Err: err, Context: "adding glossary entry"}
		}
		return refreshed(shelf, bookID)
	}
}

func updateGlossaryEntryCmd(shelf *service.ShelfService, bookID string, g domain.GlossaryEntry) tea.Cmd {
	return func() tea.Msg {
		if err := shelf.UpdateGlossaryEntry(bookID, g); err != nil {
			return ErrMsg{Err: err, Context: "updating glossary entry"}
		}
		return refreshed(shelf, bookID)
	}
}

func removeGlossaryEntryCmd(shelf *service.ShelfService, bookID, entryID string) tea.Cmd {
	return func() tea.Msg {
		if err := shelf.RemoveGlossaryEntry(bookID, entryID); err != nil {
			return ErrMsg{Err: err, Context: "removing glossary entry"}
		}
		return refreshed(shelf, bookID)
	}
}

// coverMIMETypes limits covers to formats terminals and exports handle.
var coverMIMETypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/gif":  true,
	"image/webp": true,
}

// loadCoverCmd reads an image file off the Update loop and stores it as
// a base64 data URI.
func loadCoverCmd(shelf *service.ShelfService, bookID, path string) tea.Cmd {
	return func() tea.Msg {
		mimeType := mime.TypeByExtension(filepath.Ext(path))
		if !coverMIMETypes[mimeType] {
			return StatusMsg{Message: "unsupported cover format: " + filepath.Ext(path), IsError: true}
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return ErrMsg{Err: err, Context: "reading cover"}
		}

		uri := domain.DataURI(fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data)))
		if err := shelf.SetCover(bookID, uri); err != nil {
			return ErrMsg{Err: err, Context: "saving cover"}
		}
		return CoverLoadedMsg{BookID: bookID, Data: uri}
	}
}

func toggleThemeCmd(settings *service.SettingsService) tea.Cmd {
	return func() tea.Msg {
		theme, err := settings.ToggleTheme()
		if err != nil {
			return ErrMsg{Err: err, Context: "toggling theme"}
		}
		return ThemeChangedMsg{Theme: theme}
	}
}

func searchCmd(search *service.SearchService, query string) tea.Cmd {
	return func() tea.Msg {
		return SearchResultsMsg{Query: query, Results: search.Search(query)}
	}
}

// clearStatusCmd clears the status bar after a delay
func clearStatusCmd() tea.Cmd {
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}

// refreshed re-reads a book so messages always carry the stored state.
func refreshed(shelf *service.ShelfService, id string) tea.Msg {
	b, err := shelf.Book(id)
	if err != nil {
		return ErrMsg{Err: err, Context: "reloading book"}
	}
	return BookUpdatedMsg{Book: b}
}
