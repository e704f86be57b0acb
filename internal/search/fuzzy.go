package search

import (
	"sort"
	"strings"
	"unicode"
)

// Document is one searchable shelf entry. Title and Author are matched
// independently so "ursula darkness" finds a book even though the words
// live in different fields.
type Document struct {
	Title  string
	Author string
}

// Match represents a search hit against one document.
type Match struct {
	Index         int   // Index in source slice
	Score         int   // Match score (lower = better)
	TitleIndexes  []int // Rune positions in Title that matched (for highlighting)
	AuthorIndexes []int // Rune positions in Author that matched
}

// FuzzySearch performs token-based fuzzy matching over book documents.
//
// Algorithm:
//  1. Tokenize query into words
//  2. Each query token must match somewhere in title or author (AND semantics)
//  3. Word order does not matter ("darkness left" matches "The Left Hand of Darkness")
//  4. Title hits outrank author hits at equal quality
//  5. Typo tolerance scales with token length
//
// Returns matches sorted by score (lower = better).
func FuzzySearch(query string, docs []Document) []Match {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	queryTokens := tokenize(query)
	if len(queryTokens) == 0 {
		return nil
	}

	var matches []Match
	for i, doc := range docs {
		if m, ok := matchDocument(doc, queryTokens, i); ok {
			matches = append(matches, m)
		}
	}

	sort.SliceStable(matches, func(a, b int) bool {
		if matches[a].Score != matches[b].Score {
			return matches[a].Score < matches[b].Score
		}
		return len(docs[matches[a].Index].Title) < len(docs[matches[b].Index].Title)
	})
	return matches
}

// token is a word and its rune span in the original string
type token struct {
	text  string // Lowercase text
	start int    // Start rune position
	end   int    // End rune position (exclusive)
}

func tokenize(text string) []token {
	var tokens []token
	runes := []rune(strings.ToLower(text))

	inWord := false
	wordStart := 0

	for i, r := range runes {
		isWordChar := unicode.IsLetter(r) || unicode.IsDigit(r)

		if isWordChar && !inWord {
			wordStart = i
			inWord = true
		} else if !isWordChar && inWord {
			tokens = append(tokens, token{text: string(runes[wordStart:i]), start: wordStart, end: i})
			inWord = false
		}
	}

	if inWord {
		tokens = append(tokens, token{text: string(runes[wordStart:]), start: wordStart, end: len(runes)})
	}

	return tokens
}

// field is one matchable side of a document
type field struct {
	tokens []token
	lower  string
	used   []bool // Each field token can satisfy only one query token
}

func newField(text string) *field {
	toks := tokenize(text)
	return &field{
		tokens: toks,
		lower:  strings.ToLower(text),
		used:   make([]bool, len(toks)),
	}
}

// authorPenalty makes an author hit rank below a title hit of the same
// quality without pushing it past a weaker title hit.
const authorPenalty = 3

// matchDocument attempts to satisfy every query token from either field.
func matchDocument(doc Document, queryTokens []token, index int) (Match, bool) {
	title := newField(doc.Title)
	author := newField(doc.Author)

	m := Match{Index: index}

	for _, qt := range queryTokens {
		titleHit, titleIdx := bestFieldMatch(qt, title)
		authorHit, authorIdx := bestFieldMatch(qt, author)
		if authorHit.score >= 0 {
			authorHit.score += authorPenalty
		}

		switch {
		case titleHit.score >= 0 && (authorHit.score < 0 || titleHit.score <= authorHit.score):
			if titleIdx >= 0 {
				title.used[titleIdx] = true
			}
			m.Score += titleHit.score
			m.TitleIndexes = append(m.TitleIndexes, titleHit.indexes...)
		case authorHit.score >= 0:
			if authorIdx >= 0 {
				author.used[authorIdx] = true
			}
			m.Score += authorHit.score
			m.AuthorIndexes = append(m.AuthorIndexes, authorHit.indexes...)
		default:
			return Match{}, false
		}
	}

	// Penalize titles with many words the query never touched, so a
	// tight match beats a sprawling one.
	if extra := len(title.tokens) - len(queryTokens); extra > 0 {
		m.Score += extra * 5
	}

	m.TitleIndexes = dedupeAndSort(m.TitleIndexes)
	m.AuthorIndexes = dedupeAndSort(m.AuthorIndexes)
	return m, true
}

// tokenHit is how one query token matched inside a field
type tokenHit struct {
	score   int // Match quality (lower = better), -1 for no match
	indexes []int
}

func bestFieldMatch(qt token, f *field) (tokenHit, int) {
	best := tokenHit{score: -1}
	bestIdx := -1

	for i, ft := range f.tokens {
		if f.used[i] {
			continue
		}
		hit := matchToken(qt.text, ft)
		if hit.score >= 0 && (best.score < 0 || hit.score < best.score) {
			best = hit
			bestIdx = i
		}
	}

	// Fall back to a raw substring scan so queries spanning word
	// boundaries ("lefthand") still land.
	if best.score < 0 {
		if idx := strings.Index(f.lower, qt.text); idx >= 0 {
			runeIdx := len([]rune(f.lower[:idx]))
			best = tokenHit{
				score:   150 + runeIdx,
				indexes: indexRange(runeIdx, runeIdx+len([]rune(qt.text))),
			}
		}
	}

	return best, bestIdx
}

// matchToken scores a query token against a single field token.
// Returns score < 0 if no match.
func matchToken(query string, ft token) tokenHit {
	word := ft.text

	// Exact match (best)
	if query == word {
		return tokenHit{score: 0, indexes: indexRange(ft.start, ft.end)}
	}

	// Prefix match (very good)
	if strings.HasPrefix(word, query) {
		return tokenHit{score: 10, indexes: indexRange(ft.start, ft.start+len([]rune(query)))}
	}

	// Query overshoots the word ("darknesses" vs "darkness")
	if strings.HasPrefix(query, word) {
		return tokenHit{score: 20, indexes: indexRange(ft.start, ft.end)}
	}

	// Substring within the word
	if idx := strings.Index(word, query); idx >= 0 {
		start := ft.start + idx
		return tokenHit{score: 50 + idx, indexes: indexRange(start, start+len([]rune(query)))}
	}

	// Typo tolerance
	if maxTypos := allowedTypos(len([]rune(query))); maxTypos > 0 {
		dist, indexes := levenshteinWithPositions(query, word, ft.start)
		if dist <= maxTypos {
			return tokenHit{score: 100 + dist*20, indexes: indexes}
		}
	}

	return tokenHit{score: -1}
}

// allowedTypos returns the edit distance allowed for a token length:
// 1-3 chars = 0, 4-6 chars = 1, 7+ chars = 2.
func allowedTypos(length int) int {
	switch {
	case length <= 3:
		return 0
	case length <= 6:
		return 1
	default:
		return 2
	}
}

// levenshteinWithPositions calculates edit distance and returns matched positions
func levenshteinWithPositions(query, word string, offset int) (int, []int) {
	qRunes := []rune(query)
	wRunes := []rune(word)

	qLen := len(qRunes)
	wLen := len(wRunes)

	if qLen == 0 {
		return wLen, nil
	}
	if wLen == 0 {
		return qLen, nil
	}

	matrix := make([][]int, qLen+1)
	for i := range matrix {
		matrix[i] = make([]int, wLen+1)
		matrix[i][0] = i
	}
	for j := 0; j <= wLen; j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= qLen; i++ {
		for j := 1; j <= wLen; j++ {
			cost := 1
			if qRunes[i-1] == wRunes[j-1] {
				cost = 0
			}

			matrix[i][j] = min(
				matrix[i-1][j]+1,      // deletion
				matrix[i][j-1]+1,      // insertion
				matrix[i-1][j-1]+cost, // substitution
			)
		}
	}

	distance := matrix[qLen][wLen]

	// Backtrack for highlight positions
	var matched []int
	i, j := qLen, wLen
	for i > 0 && j > 0 {
		switch {
		case qRunes[i-1] == wRunes[j-1]:
			matched = append(matched, offset+j-1)
			i--
			j--
		case matrix[i-1][j-1] <= matrix[i-1][j] && matrix[i-1][j-1] <= matrix[i][j-1]:
			// Substitution still marks the position for highlighting
			matched = append(matched, offset+j-1)
			i--
			j--
		case matrix[i-1][j] < matrix[i][j-1]:
			i--
		default:
			j--
		}
	}

	sort.Ints(matched)
	return distance, matched
}

// indexRange creates a slice of consecutive integers [start, end)
func indexRange(start, end int) []int {
	indexes := make([]int, end-start)
	for i := range indexes {
		indexes[i] = start + i
	}
	return indexes
}

func dedupeAndSort(indexes []int) []int {
	if len(indexes) == 0 {
		return indexes
	}

	seen := make(map[int]bool, len(indexes))
	result := indexes[:0]
	for _, idx := range indexes {
		if !seen[idx] {
			seen[idx] = true
			result = append(result, idx)
		}
	}

	sort.Ints(result)
	return result
}
