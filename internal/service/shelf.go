package service

import (
	"log/slog"
	"sync"

	"github.com/folioapp/folio/internal/domain"
)

// ShelfService owns the in-memory collection and keeps it in lockstep
// with the store. Every mutation persists the whole collection, so the
// store never sees a partial write.
type ShelfService struct {
	store  domain.Store
	logger *slog.Logger

	mu    sync.RWMutex
	books []*domain.Book
}

func NewShelfService(store domain.Store, logger *slog.Logger) *ShelfService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ShelfService{
		store:  store,
		logger: logger,
		books:  []*domain.Book{},
	}
}

// Load pulls the persisted collection into memory. Call once at startup.
func (s *ShelfService) Load() error {
	books, err := s.store.LoadBooks()
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.books = books
	s.mu.Unlock()

	s.logger.Info("loaded collection", "books", len(books))
	return nil
}

// Books returns a snapshot of the shelf in display order (newest first).
// Callers must treat the returned books as read-only.
func (s *ShelfService) Books() []*domain.Book {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Book, len(s.books))
	copy(out, s.books)
	return out
}

// Book looks up a single book by ID.
func (s *ShelfService) Book(id string) (*domain.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if b := s.findLocked(id); b != nil {
		return b, nil
	}
	return nil, domain.ErrBookNotFound
}

// AddBook prepends a book so the newest entry tops the shelf.
func (s *ShelfService) AddBook(b *domain.Book) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.books = append([]*domain.Book{b}, s.books...)
	if err := s.persistLocked(); err != nil {
		return err
	}

	s.logger.Info("added book", "id", b.ID, "title", b.Title)
	return nil
}

// UpdateBook replaces the stored record wholesale, keeping its shelf
// position. An unknown ID is a no-op. The current page is clamped into
// the new page count.
func (s *ShelfService) UpdateBook(updated *domain.Book) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, b := range s.books {
		if b.ID != updated.ID {
			continue
		}
		clampPages(updated)
		s.books[i] = updated
		return s.persistLocked()
	}

	s.logger.Warn("update for unknown book", "id", updated.ID)
	return nil
}

// DeleteBook removes a book. An unknown ID is a no-op.
func (s *ShelfService) DeleteBook(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, b := range s.books {
		if b.ID != id {
			continue
		}
		s.books = append(s.books[:i], s.books[i+1:]...)
		if err := s.persistLocked(); err != nil {
			return err
		}
		s.logger.Info("deleted book", "id", id, "title", b.Title)
		return nil
	}
	return nil
}

// === Field updates ===

func (s *ShelfService) SetTitle(id, title string) error {
	return s.mutate(id, func(b *domain.Book) { b.Title = title })
}

func (s *ShelfService) SetAuthor(id, author string) error {
	return s.mutate(id, func(b *domain.Book) { b.Author = author })
}

func (s *ShelfService) SetDescription(id, description string) error {
	return s.mutate(id, func(b *domain.Book) { b.Description = description })
}

func (s *ShelfService) SetGenre(id string, genre domain.Genre) error {
	return s.mutate(id, func(b *domain.Book) { b.Genre = genre })
}

func (s *ShelfService) SetReleaseDate(id, date string) error {
	return s.mutate(id, func(b *domain.Book) { b.ReleaseDate = date })
}

func (s *ShelfService) SetCover(id string, cover domain.DataURI) error {
	return s.mutate(id, func(b *domain.Book) { b.CoverImage = cover })
}

// SetCurrentPage records reading progress, clamped into [0, TotalPages].
func (s *ShelfService) SetCurrentPage(id string, page int) error {
	return s.mutate(id, func(b *domain.Book) {
		b.CurrentPage = page
		clampPages(b)
	})
}

// SetTotalPages changes the page count and clamps progress into it.
func (s *ShelfService) SetTotalPages(id string, total int) error {
	return s.mutate(id, func(b *domain.Book) {
		b.TotalPages = total
		clampPages(b)
	})
}

// SetRating stores a 0-5 star rating. Zero means unrated.
func (s *ShelfService) SetRating(id string, rating int) error {
	return s.mutate(id, func(b *domain.Book) {
		b.Rating = clamp(rating, 0, 5)
	})
}

// SetTargetFinishDate sets the reading deadline. Empty clears the goal.
func (s *ShelfService) SetTargetFinishDate(id, date string) error {
	return s.mutate(id, func(b *domain.Book) { b.TargetFinishDate = date })
}

func (s *ShelfService) SetGeneralSummary(id, summary string) error {
	return s.mutate(id, func(b *domain.Book) { b.GeneralSummary = summary })
}

// === Chapter summaries ===

func (s *ShelfService) AddChapterSummary(bookID, chapterTitle, content string) (*domain.ChapterSummary, error) {
	cs := domain.NewChapterSummary(chapterTitle, content)
	err := s.mutate(bookID, func(b *domain.Book) {
		b.ChapterSummaries = append(b.ChapterSummaries, cs)
	})
	if err != nil {
		return nil, err
	}
	return &cs, nil
}

func (s *ShelfService) UpdateChapterSummary(bookID string, cs domain.ChapterSummary) error {
	return s.mutate(bookID, func(b *domain.Book) {
		for i := range b.ChapterSummaries {
			if b.ChapterSummaries[i].ID == cs.ID {
				b.ChapterSummaries[i] = cs
				return
			}
		}
	})
}

func (s *ShelfService) RemoveChapterSummary(bookID, summaryID string) error {
	return s.mutate(bookID, func(b *domain.Book) {
		for i := range b.ChapterSummaries {
			if b.ChapterSummaries[i].ID == summaryID {
				b.ChapterSummaries = append(b.ChapterSummaries[:i], b.ChapterSummaries[i+1:]...)
				return
			}
		}
	})
}

// === Quotes ===

func (s *ShelfService) AddQuote(bookID, text string, page int) (*domain.Quote, error) {
	q := domain.NewQuote(text, page)
	err := s.mutate(bookID, func(b *domain.Book) {
		b.Quotes = append(b.Quotes, q)
	})
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (s *ShelfService) UpdateQuote(bookID string, q domain.Quote) error {
	return s.mutate(bookID, func(b *domain.Book) {
		for i := range b.Quotes {
			if b.Quotes[i].ID == q.ID {
				b.Quotes[i] = q
				return
			}
		}
	})
}

func (s *ShelfService) RemoveQuote(bookID, quoteID string) error {
	return s.mutate(bookID, func(b *domain.Book) {
		for i := range b.Quotes {
			if b.Quotes[i].ID == quoteID {
				b.Quotes = append(b.Quotes[:i], b.Quotes[i+1:]...)
				return
			}
		}
	})
}

// === Glossary ===

func (s *ShelfService) AddGlossaryEntry(bookID, word, definition string) (*domain.GlossaryEntry, error) {
	g := domain.NewGlossaryEntry(word, definition)
	err := s.mutate(bookID, func(b *domain.Book) {
		b.Glossary = append(b.Glossary, g)
	})
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (s *ShelfService) UpdateGlossaryEntry(bookID string, g domain.GlossaryEntry) error {
	return s.mutate(bookID, func(b *domain.Book) {
		for i := range b.Glossary {
			if b.Glossary[i].ID == g.ID {
				b.Glossary[i] = g
				return
			}
		}
	})
}

func (s *ShelfService) RemoveGlossaryEntry(bookID, entryID string) error {
	return s.mutate(bookID, func(b *domain.Book) {
		for i := range b.Glossary {
			if b.Glossary[i].ID == entryID {
				b.Glossary = append(b.Glossary[:i], b.Glossary[i+1:]...)
				return
			}
		}
	})
}

// === Internals ===

// mutate applies fn to the identified book and persists the collection.
func (s *ShelfService) mutate(id string, fn func(*domain.Book)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := s.findLocked(id)
	if b == nil {
		return domain.ErrBookNotFound
	}

	fn(b)
	return s.persistLocked()
}

func (s *ShelfService) findLocked(id string) *domain.Book {
	for _, b := range s.books {
		if b.ID == id {
			return b
		}
	}
	return nil
}

func (s *ShelfService) persistLocked() error {
	if err := s.store.SaveBooks(s.books); err != nil {
		s.logger.Error("failed to persist collection", "error", err)
		return err
	}
	return nil
}

func clampPages(b *domain.Book) {
	if b.TotalPages < 0 {
		b.TotalPages = 0
	}
	b.CurrentPage = clamp(b.CurrentPage, 0, b.TotalPages)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
