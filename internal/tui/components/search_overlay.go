package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/folioapp/folio/internal/domain"
	"github.com/folioapp/folio/internal/service"
	"github.com/folioapp/folio/internal/tui/styles"
)

// SearchOverlay is the shelf-wide fuzzy search modal
type SearchOverlay struct {
	styles    *styles.Styles
	input     textinput.Model
	results   []service.SearchResult
	cursor    int
	visible   bool
	width     int
	height    int
	prevQuery string
}

func NewSearchOverlay(st *styles.Styles) *SearchOverlay {
	ti := textinput.New()
	ti.Placeholder = "Search title or author..."
	ti.CharLimit = 100
	ti.Width = 40
	ti.Prompt = "🔍 "
	ti.PromptStyle = st.Accent
	ti.TextStyle = st.Title
	ti.PlaceholderStyle = st.Dim

	return &SearchOverlay{styles: st, input: ti}
}

func (o *SearchOverlay) Show() {
	o.visible = true
	o.input.Focus()
	o.input.SetValue("")
	o.results = nil
	o.cursor = 0
	o.prevQuery = ""
}

func (o *SearchOverlay) Hide() {
	o.visible = false
	o.input.Blur()
}

func (o *SearchOverlay) IsVisible() bool { return o.visible }
func (o *SearchOverlay) Query() string   { return o.input.Value() }

// QueryChanged reports whether the query moved since the last check
func (o *SearchOverlay) QueryChanged() bool {
	current := o.input.Value()
	if current != o.prevQuery {
		o.prevQuery = current
		return true
	}
	return false
}

// SetResults replaces the result list if the query still matches
func (o *SearchOverlay) SetResults(query string, results []service.SearchResult) {
	if query != o.input.Value() {
		return // stale
	}
	o.results = results
	o.cursor = 0
}

// Selected returns the book under the cursor
func (o *SearchOverlay) Selected() *domain.Book {
	if len(o.results) == 0 || o.cursor >= len(o.results) {
		return nil
	}
	return o.results[o.cursor].Book
}

func (o *SearchOverlay) SetSize(width, height int) {
	o.width = width
	o.height = height
	o.input.Width = width - 10
}

// Update handles messages, returns (overlay, cmd, selected)
func (o *SearchOverlay) Update(msg tea.Msg) (*SearchOverlay, tea.Cmd, bool) {
	if !o.visible {
		return o, nil, false
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			o.Hide()
			return o, nil, false
		case "enter":
			if o.Selected() != nil {
				return o, nil, true
			}
			return o, nil, false
		case "down", "ctrl+n":
			if o.cursor < len(o.results)-1 {
				o.cursor++
			}
			return o, nil, false
		case "up", "ctrl+p":
			if o.cursor > 0 {
				o.cursor--
			}
			return o, nil, false
		}
	}

	var cmd tea.Cmd
	o.input, cmd = o.input.Update(msg)
	return o, cmd, false
}

func (o *SearchOverlay) View() string {
	if !o.visible {
		return ""
	}

	modalWidth := o.width * 2 / 3
	if modalWidth < 40 {
		modalWidth = 40
	}
	innerWidth := modalWidth - 6

	var rows []string
	rows = append(rows, o.input.View())
	rows = append(rows, "")

	if o.input.Value() == "" {
		rows = append(rows, o.styles.Dim.Render("Type to search the whole shelf"))
	} else if len(o.results) == 0 {
		rows = append(rows, o.styles.Dim.Render("No matches"))
	} else {
		maxRows := o.height/2 - 6
		if maxRows < 3 {
			maxRows = 3
		}
		for i, r := range o.results {
			if i >= maxRows {
				rows = append(rows, o.styles.Dim.Render(fmt.Sprintf("… and %d more", len(o.results)-maxRows)))
				break
			}
			rows = append(rows, o.renderResult(r, i == o.cursor, innerWidth))
		}
	}

	rows = append(rows, "")
	rows = append(rows, o.styles.HelpDesc.Render("↑/↓ move · enter open · esc close"))

	content := lipgloss.JoinVertical(lipgloss.Left, rows...)
	return o.styles.Modal.Width(modalWidth).Render(content)
}

func (o *SearchOverlay) renderResult(r service.SearchResult, selected bool, width int) string {
	title := highlight(r.Book.Title, r.TitleIndexes, o.styles)
	author := highlight(r.Book.Author, r.AuthorIndexes, o.styles)

	marker := "  "
	if selected {
		marker = o.styles.Accent.Render("> ")
	}

	line := marker + title + o.styles.Dim.Render(" · ") + o.styles.Subtitle.Render(author)
	if lipgloss.Width(line) > width {
		// Fall back to a plain truncated row rather than slicing styled text
		plain := styles.Truncate(r.Book.Title+" · "+r.Book.Author, width-2)
		line = marker + plain
	}
	return line
}

// highlight bolds the matched rune positions
func highlight(s string, indexes []int, st *styles.Styles) string {
	if len(indexes) == 0 {
		return s
	}

	matched := make(map[int]bool, len(indexes))
	for _, i := range indexes {
		matched[i] = true
	}

	var b strings.Builder
	for i, r := range []rune(s) {
		if matched[i] {
			b.WriteString(st.MatchHighlight.Render(string(r)))
		} else {
			b.WriteString(string(r))
		}
	}
	return b.String()
}
