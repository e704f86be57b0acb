package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"github.com/folioapp/folio/internal/domain"
	"github.com/folioapp/folio/internal/tui/styles"
)

// Layout constants for the shelf column
const (
	BorderWidth  = 2
	BorderHeight = 2

	// Scroll indicators ("↑ more" and "↓ more") each take 1 line
	ScrollIndicatorLines = 2
)

// booksSource adapts the shelf to sahilm/fuzzy so the quick filter
// matches against title and author together.
type booksSource []*domain.Book

func (s booksSource) Len() int { return len(s) }
func (s booksSource) String(i int) string {
	return strings.ToLower(s[i].Title + " " + s[i].Author)
}

// ShelfColumn is the scrollable book list
type ShelfColumn struct {
	styles       *styles.Styles
	books        []*domain.Book
	showProgress bool

	// Selection
	cursor     int
	offset     int
	maxVisible int

	// Dimensions
	width   int
	height  int
	focused bool

	// Genre filter state (cycled, not typed)
	genreActive bool
	genreFilter domain.Genre
	genreIdx    []int // indices into books, nil when showing all genres

	// Quick filter state
	filterActive bool
	filterInput  textinput.Model
	filterQuery  string
	filteredIdx  []int // indices into the genre-filtered view
}

func NewShelfColumn(st *styles.Styles, showProgress bool) *ShelfColumn {
	ti := textinput.New()
	ti.Placeholder = "type to filter..."
	ti.Prompt = "/ "
	ti.PromptStyle = st.FilterPrompt
	ti.TextStyle = st.Filter

	return &ShelfColumn{
		styles:       st,
		showProgress: showProgress,
		filterInput:  ti,
	}
}

// SetBooks replaces the list contents, preserving the selection by ID
// where possible.
func (c *ShelfColumn) SetBooks(books []*domain.Book) {
	var selectedID string
	if b := c.Selected(); b != nil {
		selectedID = b.ID
	}

	c.books = books
	c.applyGenreFilter()
	if c.filterActive {
		c.applyFilter()
	}

	c.cursor = 0
	if selectedID != "" {
		for i := 0; i < c.Count(); i++ {
			if c.books[c.mapIndex(i)].ID == selectedID {
				c.cursor = i
				break
			}
		}
	}
	c.ensureVisible()
}

func (c *ShelfColumn) SetSize(width, height int) {
	c.width = width
	c.height = height
	c.filterInput.Width = width - BorderWidth - 4
	c.recalcMaxVisible()
	c.ensureVisible()
}

func (c *ShelfColumn) SetFocused(focused bool) { c.focused = focused }

// SetGenreFilter restricts the shelf to one genre
func (c *ShelfColumn) SetGenreFilter(g domain.Genre) {
	c.genreActive = true
	c.genreFilter = g
	c.applyGenreFilter()
	c.cursor = 0
	c.offset = 0
}

// CycleGenreFilter steps all → Fiction → … → Other → all
func (c *ShelfColumn) CycleGenreFilter() {
	genres := domain.Genres()
	switch {
	case !c.genreActive:
		c.SetGenreFilter(genres[0])
	case c.genreFilter == genres[len(genres)-1]:
		c.genreActive = false
		c.genreIdx = nil
		c.cursor = 0
		c.offset = 0
		if c.filterActive {
			c.applyFilter()
		}
	default:
		c.SetGenreFilter(c.genreFilter.Next())
	}
}

// GenreFilter returns the active genre filter, if any
func (c *ShelfColumn) GenreFilter() (domain.Genre, bool) {
	return c.genreFilter, c.genreActive
}

func (c *ShelfColumn) applyGenreFilter() {
	if !c.genreActive {
		c.genreIdx = nil
		return
	}
	c.genreIdx = make([]int, 0, len(c.books))
	for i, b := range c.books {
		if b.Genre == c.genreFilter {
			c.genreIdx = append(c.genreIdx, i)
		}
	}
	if c.filterActive {
		c.applyFilter()
	}
}

// baseBooks returns the genre-filtered view of the shelf
func (c *ShelfColumn) baseBooks() []*domain.Book {
	if c.genreIdx == nil {
		return c.books
	}
	out := make([]*domain.Book, len(c.genreIdx))
	for i, idx := range c.genreIdx {
		out[i] = c.books[idx]
	}
	return out
}

func (c *ShelfColumn) baseCount() int {
	if c.genreIdx != nil {
		return len(c.genreIdx)
	}
	return len(c.books)
}

func (c *ShelfColumn) baseIndex(i int) int {
	if c.genreIdx != nil {
		return c.genreIdx[i]
	}
	return i
}

// SelectByID moves the cursor to the given book if it is visible.
func (c *ShelfColumn) SelectByID(id string) {
	for i := 0; i < c.Count(); i++ {
		if c.books[c.mapIndex(i)].ID == id {
			c.cursor = i
			c.ensureVisible()
			return
		}
	}
}

// Selected returns the book under the cursor
func (c *ShelfColumn) Selected() *domain.Book {
	count := c.Count()
	if count == 0 || c.cursor >= count {
		return nil
	}
	return c.books[c.mapIndex(c.cursor)]
}

// Count returns the number of visible (possibly filtered) books
func (c *ShelfColumn) Count() int {
	if c.filteredIdx != nil {
		return len(c.filteredIdx)
	}
	return c.baseCount()
}

// ToggleFilter activates the filter input
func (c *ShelfColumn) ToggleFilter() {
	c.filterActive = true
	c.filterInput.Focus()
	c.recalcMaxVisible()
}

// IsFilterTyping returns true while keystrokes belong to the filter box
func (c *ShelfColumn) IsFilterTyping() bool {
	return c.filterActive && c.filterInput.Focused()
}

func (c *ShelfColumn) ClearFilter() {
	c.filterActive = false
	c.filterQuery = ""
	c.filteredIdx = nil
	c.filterInput.SetValue("")
	c.filterInput.Blur()
	c.recalcMaxVisible()
}

func (c *ShelfColumn) Update(msg tea.Msg) (*ShelfColumn, tea.Cmd) {
	if !c.focused {
		return c, nil
	}

	// Typing mode: keystrokes go to the filter box
	if c.IsFilterTyping() {
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch keyMsg.String() {
			case "esc":
				c.ClearFilter()
				return c, nil
			case "enter":
				// Accept filter, blur input to allow navigation
				c.filterInput.Blur()
				return c, nil
			case "backspace":
				if c.filterInput.Value() == "" {
					c.ClearFilter()
					return c, nil
				}
			}
		}

		var cmd tea.Cmd
		c.filterInput, cmd = c.filterInput.Update(msg)
		c.applyFilter()
		return c, cmd
	}

	// Navigation mode with an accepted filter
	if c.filterActive {
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch keyMsg.String() {
			case "esc":
				c.ClearFilter()
				return c, nil
			case "/":
				c.filterInput.Focus()
				return c, nil
			}
		}
	}

	count := c.Count()
	if count == 0 {
		return c, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "j", "down":
			if c.cursor < count-1 {
				c.cursor++
				c.ensureVisible()
			}
		case "k", "up":
			if c.cursor > 0 {
				c.cursor--
				c.ensureVisible()
			}
		case "g", "home":
			c.cursor = 0
			c.offset = 0
		case "G", "end":
			c.cursor = count - 1
			c.ensureVisible()
		case "ctrl+d":
			c.cursor += c.maxVisible / 2
			if c.cursor >= count {
				c.cursor = count - 1
			}
			c.ensureVisible()
		case "ctrl+u":
			c.cursor -= c.maxVisible / 2
			if c.cursor < 0 {
				c.cursor = 0
			}
			c.ensureVisible()
		}
	}

	return c, nil
}

func (c *ShelfColumn) View() string {
	style := c.styles.InactiveBorder
	if c.focused {
		style = c.styles.ActiveBorder
	}

	content := c.renderContent()
	frameW, frameH := style.GetFrameSize()

	return style.
		Width(c.width - frameW).
		Height(c.height - frameH).
		Render(content)
}

// Internal methods

func (c *ShelfColumn) recalcMaxVisible() {
	interiorHeight := c.height - BorderHeight
	c.maxVisible = interiorHeight - ScrollIndicatorLines - 1 // -1 for title
	if c.filterActive {
		c.maxVisible--
	}
	if c.maxVisible < 1 {
		c.maxVisible = 1
	}
}

func (c *ShelfColumn) ensureVisible() {
	if c.maxVisible <= 0 {
		return
	}
	if c.cursor < c.offset {
		c.offset = c.cursor
	}
	if c.cursor >= c.offset+c.maxVisible {
		c.offset = c.cursor - c.maxVisible + 1
	}
}

func (c *ShelfColumn) applyFilter() {
	query := strings.TrimSpace(c.filterInput.Value())
	c.filterQuery = query

	if query == "" {
		c.filteredIdx = nil
		return
	}

	matches := fuzzy.FindFrom(strings.ToLower(query), booksSource(c.baseBooks()))

	c.filteredIdx = make([]int, len(matches))
	for i, match := range matches {
		c.filteredIdx[i] = match.Index
	}

	c.cursor = 0
	c.offset = 0
}

// mapIndex resolves a visible row to an index into books
func (c *ShelfColumn) mapIndex(i int) int {
	if c.filteredIdx != nil && i < len(c.filteredIdx) {
		i = c.filteredIdx[i]
	}
	return c.baseIndex(i)
}

// Rendering

func (c *ShelfColumn) renderContent() string {
	itemWidth := c.width - BorderWidth
	if itemWidth < 10 {
		itemWidth = 10
	}

	title := fmt.Sprintf("Shelf (%d)", len(c.books))
	if c.genreActive {
		title = fmt.Sprintf("Shelf · %s (%d)", c.genreFilter, c.baseCount())
	}
	titleLine := c.styles.Accent.Render(styles.Truncate(title, itemWidth))

	count := c.Count()
	if count == 0 {
		emptyMsg := c.styles.Dim.Render("Shelf is empty. Press a to add a book.")
		if c.genreActive || (c.filterActive && c.filterQuery != "") {
			emptyMsg = c.styles.Dim.Render("No matches")
		}
		out := titleLine + "\n" + " " + "\n" + emptyMsg + "\n" + " "
		if c.filterActive {
			out += "\n" + c.filterInput.View()
		}
		return out
	}

	var lines []string

	end := c.offset + c.maxVisible
	if end > count {
		end = count
	}

	for i := c.offset; i < end; i++ {
		lines = append(lines, c.renderBookRow(c.books[c.mapIndex(i)], i == c.cursor, itemWidth))
	}

	// Always reserve indicator lines so the layout never shifts
	header := " "
	if c.offset > 0 {
		header = c.styles.Dim.Render("↑ more")
	}
	footer := " "
	if end < count {
		footer = c.styles.Dim.Render("↓ more")
	}

	content := titleLine + "\n" + header + "\n" + strings.Join(lines, "\n") + "\n" + footer
	if c.filterActive {
		content += "\n" + c.filterInput.View()
	}

	return content
}

func (c *ShelfColumn) renderBookRow(b *domain.Book, selected bool, width int) string {
	status := c.styles.RenderReadingStatus(b)

	right := ""
	rightWidth := 0
	if c.showProgress {
		percent := domain.ProgressPercent(b)
		barWidth := 10
		right = fmt.Sprintf(" %s %3d%%", c.styles.RenderProgressBar(percent, barWidth), percent)
		rightWidth = barWidth + 6
	}

	leftWidth := width - rightWidth - 5
	if leftWidth < 8 {
		leftWidth = 8
	}
	label := styles.Truncate(b.Title+" · "+b.Author, leftWidth)

	itemStyle := c.styles.NormalItem
	if selected {
		itemStyle = c.styles.SelectedItem
	}

	return itemStyle.Render(status+" "+styles.Pad(label, leftWidth)) + right
}
