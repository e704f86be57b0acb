package service

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/folioapp/folio/internal/domain"
	"github.com/folioapp/folio/internal/search"
)

// SearchResult pairs a matched book with highlight metadata.
type SearchResult struct {
	Book          *domain.Book
	Score         int
	TitleIndexes  []int
	AuthorIndexes []int
}

// SearchService runs shelf-wide fuzzy search over titles and authors.
type SearchService struct {
	shelf  *ShelfService
	logger *slog.Logger
}

func NewSearchService(shelf *ShelfService, logger *slog.Logger) *SearchService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SearchService{shelf: shelf, logger: logger}
}

// Search returns matching books sorted best-first. The token matcher
// handles word order and typos; a looser subsequence pass catches what
// it misses (dropped spaces, heavy abbreviation).
func (s *SearchService) Search(query string) []SearchResult {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	books := s.shelf.Books()
	if len(books) == 0 {
		return nil
	}

	docs := make([]search.Document, len(books))
	for i, b := range books {
		docs[i] = search.Document{Title: b.Title, Author: b.Author}
	}

	matches := search.FuzzySearch(query, docs)
	if len(matches) > 0 {
		results := make([]SearchResult, len(matches))
		for i, m := range matches {
			results[i] = SearchResult{
				Book:          books[m.Index],
				Score:         m.Score,
				TitleIndexes:  m.TitleIndexes,
				AuthorIndexes: m.AuthorIndexes,
			}
		}
		return results
	}

	return s.subsequenceFallback(query, books)
}

// subsequenceFallback ranks books whose combined "title author" string
// contains the query as a character subsequence.
func (s *SearchService) subsequenceFallback(query string, books []*domain.Book) []SearchResult {
	haystack := make([]string, len(books))
	for i, b := range books {
		haystack[i] = b.Title + " " + b.Author
	}

	ranks := fuzzy.RankFindFold(query, haystack)
	sort.Sort(ranks)

	results := make([]SearchResult, 0, len(ranks))
	for _, r := range ranks {
		results = append(results, SearchResult{
			Book:  books[r.OriginalIndex],
			Score: r.Distance,
		})
	}
	return results
}
