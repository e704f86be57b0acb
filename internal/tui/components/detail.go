package components

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/folioapp/folio/internal/domain"
	"github.com/folioapp/folio/internal/tui/styles"
)

// Detail tabs
type DetailTab int

const (
	TabInfo DetailTab = iota
	TabSummary
	TabChapters
	TabQuotes
	TabGlossary
)

var tabNames = []string{"Info", "Summary", "Chapters", "Quotes", "Glossary"}

func (t DetailTab) String() string { return tabNames[t] }

// Detail displays one book across tabbed panes
type Detail struct {
	styles *styles.Styles
	book   *domain.Book
	tab    DetailTab

	// Cursor for the list tabs (chapters, quotes, glossary)
	cursor int
	offset int

	width   int
	height  int
	focused bool
}

func NewDetail(st *styles.Styles) *Detail {
	return &Detail{styles: st}
}

// SetBook sets the displayed book, keeping the tab but resetting the
// entry cursor when the book changes.
func (d *Detail) SetBook(b *domain.Book) {
	if d.book == nil || b == nil || d.book.ID != b.ID {
		d.cursor = 0
		d.offset = 0
	}
	d.book = b
	d.clampCursor()
}

func (d *Detail) Book() *domain.Book      { return d.book }
func (d *Detail) Tab() DetailTab          { return d.tab }
func (d *Detail) SetFocused(focused bool) { d.focused = focused }
func (d *Detail) HasBook() bool           { return d.book != nil }

func (d *Detail) SetSize(width, height int) {
	d.width = width
	d.height = height
}

func (d *Detail) NextTab() {
	d.tab = DetailTab((int(d.tab) + 1) % len(tabNames))
	d.cursor = 0
	d.offset = 0
}

func (d *Detail) PrevTab() {
	d.tab = DetailTab((int(d.tab) + len(tabNames) - 1) % len(tabNames))
	d.cursor = 0
	d.offset = 0
}

// SelectedChapter returns the chapter summary under the cursor, if the
// chapters tab is active.
func (d *Detail) SelectedChapter() *domain.ChapterSummary {
	if d.book == nil || d.tab != TabChapters || d.cursor >= len(d.book.ChapterSummaries) {
		return nil
	}
	return &d.book.ChapterSummaries[d.cursor]
}

func (d *Detail) SelectedQuote() *domain.Quote {
	if d.book == nil || d.tab != TabQuotes || d.cursor >= len(d.book.Quotes) {
		return nil
	}
	return &d.book.Quotes[d.cursor]
}

func (d *Detail) SelectedGlossaryEntry() *domain.GlossaryEntry {
	if d.book == nil || d.tab != TabGlossary || d.cursor >= len(d.book.Glossary) {
		return nil
	}
	return &d.book.Glossary[d.cursor]
}

func (d *Detail) entryCount() int {
	if d.book == nil {
		return 0
	}
	switch d.tab {
	case TabChapters:
		return len(d.book.ChapterSummaries)
	case TabQuotes:
		return len(d.book.Quotes)
	case TabGlossary:
		return len(d.book.Glossary)
	default:
		return 0
	}
}

func (d *Detail) clampCursor() {
	if count := d.entryCount(); d.cursor >= count {
		d.cursor = count - 1
	}
	if d.cursor < 0 {
		d.cursor = 0
	}
}

func (d *Detail) Update(msg tea.Msg) (*Detail, tea.Cmd) {
	if !d.focused || d.book == nil {
		return d, nil
	}

	count := d.entryCount()
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "j", "down":
			if d.cursor < count-1 {
				d.cursor++
			} else if count == 0 {
				d.offset++ // scroll long text tabs
			}
		case "k", "up":
			if d.cursor > 0 {
				d.cursor--
			} else if d.offset > 0 {
				d.offset--
			}
		case "g", "home":
			d.cursor = 0
			d.offset = 0
		case "G", "end":
			if count > 0 {
				d.cursor = count - 1
			}
		}
	}

	return d, nil
}

func (d *Detail) View() string {
	style := d.styles.InactiveBorder
	if d.focused {
		style = d.styles.ActiveBorder
	}

	contentWidth := d.width - BorderWidth - 2
	if contentWidth < 20 {
		contentWidth = 20
	}

	var body string
	if d.book == nil {
		body = d.styles.Dim.Render("Select a book to see its details.")
	} else {
		body = d.renderTabBar() + "\n\n" + d.renderTab(contentWidth)
	}

	frameW, frameH := style.GetFrameSize()
	return style.
		Width(d.width - frameW).
		Height(d.height - frameH).
		Render(body)
}

func (d *Detail) renderTabBar() string {
	var tabs []string
	for i, name := range tabNames {
		if DetailTab(i) == d.tab {
			tabs = append(tabs, d.styles.TabActive.Render(name))
		} else {
			tabs = append(tabs, d.styles.TabInactive.Render(name))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (d *Detail) renderTab(width int) string {
	switch d.tab {
	case TabInfo:
		return d.renderInfo(width)
	case TabSummary:
		return d.renderSummary(width)
	case TabChapters:
		return d.renderChapters(width)
	case TabQuotes:
		return d.renderQuotes(width)
	case TabGlossary:
		return d.renderGlossary(width)
	}
	return ""
}

func (d *Detail) renderInfo(width int) string {
	b := d.book
	percent := domain.ProgressPercent(b)

	var lines []string
	lines = append(lines, d.styles.Title.Render(styles.Truncate(b.Title, width)))
	lines = append(lines, d.styles.Subtitle.Render(styles.Truncate("by "+b.Author, width)))
	lines = append(lines, "")
	lines = append(lines, d.styles.DimBadge.Render(b.Genre.String())+"  "+d.styles.RenderStars(b.Rating))
	lines = append(lines, "")

	lines = append(lines, d.field("Released", b.ReleaseDate, width))
	lines = append(lines, d.field("Pages", b.PageLabel(), width))
	lines = append(lines, "")

	barWidth := width - 7
	if barWidth > 40 {
		barWidth = 40
	}
	lines = append(lines, d.styles.RenderProgressBar(percent, barWidth)+fmt.Sprintf(" %3d%%", percent))
	lines = append(lines, "")
	lines = append(lines, d.renderGoal(width))

	if b.HasCover() {
		lines = append(lines, "")
		lines = append(lines, d.styles.Dim.Render("Cover image attached"))
	}

	if b.Description != "" {
		lines = append(lines, "")
		lines = append(lines, wrapText(b.Description, width)...)
	}

	return strings.Join(lines, "\n")
}

// renderGoal renders the daily reading goal line
func (d *Detail) renderGoal(width int) string {
	goal := domain.ComputeDailyGoal(d.book, time.Now())

	switch goal.Status {
	case domain.GoalNone:
		return d.styles.Dim.Render("No target date. Press d to set one.")
	case domain.GoalCompleted:
		return d.styles.Success.Render("Finished! 🎉")
	case domain.GoalExpired:
		return d.styles.Error.Render("Target date passed (" + d.book.TargetFinishDate + ")")
	default:
		days := "days"
		if goal.DaysLeft == 1 {
			days = "day"
		}
		msg := fmt.Sprintf("Read %d pages/day to finish in %d %s (by %s)",
			goal.PagesPerDay, goal.DaysLeft, days, d.book.TargetFinishDate)
		return d.styles.Accent.Render(styles.Truncate(msg, width))
	}
}

func (d *Detail) renderSummary(width int) string {
	if d.book.GeneralSummary == "" {
		return d.styles.Dim.Render("No summary yet. Press n to write one.")
	}
	lines := wrapText(d.book.GeneralSummary, width)
	return strings.Join(d.scrollWindow(lines), "\n")
}

func (d *Detail) renderChapters(width int) string {
	if len(d.book.ChapterSummaries) == 0 {
		return d.styles.Dim.Render("No chapter summaries yet. Press n to add one.")
	}

	var lines []string
	for i, cs := range d.book.ChapterSummaries {
		titleStyle := d.styles.NormalItem
		if d.focused && i == d.cursor {
			titleStyle = d.styles.SelectedItem
		}
		lines = append(lines, titleStyle.Render(styles.Truncate(cs.ChapterTitle, width-2)))
		for _, l := range wrapText(cs.Content, width-4) {
			lines = append(lines, "  "+d.styles.Subtitle.Render(l))
		}
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func (d *Detail) renderQuotes(width int) string {
	if len(d.book.Quotes) == 0 {
		return d.styles.Dim.Render("No quotes saved yet. Press n to add one.")
	}

	var lines []string
	for i, q := range d.book.Quotes {
		marker := "  "
		if d.focused && i == d.cursor {
			marker = d.styles.Accent.Render("> ")
		}
		quoted := wrapText("“"+q.Text+"”", width-4)
		for j, l := range quoted {
			if j == 0 {
				lines = append(lines, marker+l)
			} else {
				lines = append(lines, "  "+l)
			}
		}
		lines = append(lines, "  "+d.styles.Dim.Render(fmt.Sprintf("p. %d", q.Page)))
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func (d *Detail) renderGlossary(width int) string {
	if len(d.book.Glossary) == 0 {
		return d.styles.Dim.Render("No glossary entries yet. Press n to add one.")
	}

	var lines []string
	for i, g := range d.book.Glossary {
		wordStyle := d.styles.Accent
		if d.focused && i == d.cursor {
			wordStyle = d.styles.MatchHighlight
		}
		lines = append(lines, wordStyle.Render(g.Word))
		for _, l := range wrapText(g.Definition, width-4) {
			lines = append(lines, "  "+d.styles.Subtitle.Render(l))
		}
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func (d *Detail) field(label, value string, width int) string {
	if value == "" {
		value = "-"
	}
	return d.styles.Dim.Render(styles.Pad(label, 10)) + styles.Truncate(value, width-10)
}

// scrollWindow applies the manual scroll offset to long text tabs
func (d *Detail) scrollWindow(lines []string) []string {
	visible := d.height - BorderHeight - 3 // tab bar + blank line
	if visible < 1 {
		visible = 1
	}
	maxOffset := len(lines) - visible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if d.offset > maxOffset {
		d.offset = maxOffset
	}
	end := d.offset + visible
	if end > len(lines) {
		end = len(lines)
	}
	return lines[d.offset:end]
}

// wrapText wraps text to the given width on word boundaries
func wrapText(text string, width int) []string {
	if width < 10 {
		width = 10
	}

	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}

		line := words[0]
		for _, word := range words[1:] {
			if lipgloss.Width(line)+1+lipgloss.Width(word) > width {
				lines = append(lines, line)
				line = word
			} else {
				line += " " + word
			}
		}
		lines = append(lines, line)
	}
	return lines
}
