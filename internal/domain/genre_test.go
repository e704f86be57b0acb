package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenres_Closed(t *testing.T) {
	all := Genres()
	assert.Len(t, all, 9)

	for _, g := range all {
		assert.True(t, g.Valid())
		assert.Equal(t, g, ParseGenre(string(g)))
	}
}

func TestParseGenre_UnknownFallsBack(t *testing.T) {
	assert.Equal(t, GenreOther, ParseGenre("Western"))
	assert.Equal(t, GenreOther, ParseGenre(""))
}

func TestGenre_NextPrevWrap(t *testing.T) {
	all := Genres()
	first, last := all[0], all[len(all)-1]

	assert.Equal(t, first, last.Next())
	assert.Equal(t, last, first.Prev())

	// A full cycle of Next comes back home.
	g := first
	for range all {
		g = g.Next()
	}
	assert.Equal(t, first, g)
}
