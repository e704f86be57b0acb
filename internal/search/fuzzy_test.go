package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var shelf = []Document{
	{Title: "The Left Hand of Darkness", Author: "Ursula K. Le Guin"},
	{Title: "Piranesi", Author: "Susanna Clarke"},
	{Title: "Dune", Author: "Frank Herbert"},
	{Title: "Dune Messiah", Author: "Frank Herbert"},
	{Title: "A Wizard of Earthsea", Author: "Ursula K. Le Guin"},
}

func titles(matches []Match) []string {
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = shelf[m.Index].Title
	}
	return out
}

func TestFuzzySearch_ExactTitle(t *testing.T) {
	matches := FuzzySearch("piranesi", shelf)
	require.NotEmpty(t, matches)
	assert.Equal(t, "Piranesi", shelf[matches[0].Index].Title)
}

func TestFuzzySearch_WordOrderIrrelevant(t *testing.T) {
	matches := FuzzySearch("darkness left", shelf)
	require.NotEmpty(t, matches)
	assert.Equal(t, "The Left Hand of Darkness", shelf[matches[0].Index].Title)
}

func TestFuzzySearch_AuthorField(t *testing.T) {
	matches := FuzzySearch("le guin", shelf)
	assert.ElementsMatch(t,
		[]string{"The Left Hand of Darkness", "A Wizard of Earthsea"},
		titles(matches))
	for _, m := range matches {
		assert.NotEmpty(t, m.AuthorIndexes)
	}
}

func TestFuzzySearch_CrossFieldQuery(t *testing.T) {
	// One token hits the title, the other hits the author.
	matches := FuzzySearch("ursula earthsea", shelf)
	require.Len(t, matches, 1)
	assert.Equal(t, "A Wizard of Earthsea", shelf[matches[0].Index].Title)
	assert.NotEmpty(t, matches[0].TitleIndexes)
	assert.NotEmpty(t, matches[0].AuthorIndexes)
}

func TestFuzzySearch_PrefixRanksExactFirst(t *testing.T) {
	matches := FuzzySearch("dune", shelf)
	require.Len(t, matches, 2)
	assert.Equal(t, "Dune", shelf[matches[0].Index].Title)
	assert.Equal(t, "Dune Messiah", shelf[matches[1].Index].Title)
}

func TestFuzzySearch_TypoTolerance(t *testing.T) {
	matches := FuzzySearch("darknes", shelf)
	require.NotEmpty(t, matches)
	assert.Equal(t, "The Left Hand of Darkness", shelf[matches[0].Index].Title)

	// Short tokens get no typo budget.
	assert.Empty(t, FuzzySearch("dnu", shelf))
}

func TestFuzzySearch_AllTokensMustMatch(t *testing.T) {
	assert.Empty(t, FuzzySearch("dune clarke", shelf))
}

func TestFuzzySearch_EmptyQuery(t *testing.T) {
	assert.Nil(t, FuzzySearch("", shelf))
	assert.Nil(t, FuzzySearch("   ", shelf))
}

func TestFuzzySearch_HighlightIndexes(t *testing.T) {
	matches := FuzzySearch("wizard", shelf)
	require.Len(t, matches, 1)

	// "wizard" spans runes 2-7 of "A Wizard of Earthsea".
	assert.Equal(t, []int{2, 3, 4, 5, 6, 7}, matches[0].TitleIndexes)
}
