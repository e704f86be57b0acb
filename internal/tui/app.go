package tui

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/folioapp/folio/internal/config"
	"github.com/folioapp/folio/internal/domain"
	"github.com/folioapp/folio/internal/service"
	"github.com/folioapp/folio/internal/tui/components"
	"github.com/folioapp/folio/internal/tui/styles"
)

// viewState is which pane owns navigation keys
type viewState int

const (
	stateShelf viewState = iota
	stateDetail
)

// Model is the root Bubble Tea model
type Model struct {
	cfg    *config.Config
	logger *slog.Logger

	shelf    *service.ShelfService
	settings *service.SettingsService
	search   *service.SearchService

	styles *styles.Styles
	state  viewState

	shelfCol      *components.ShelfColumn
	detail        *components.Detail
	bookForm      *components.BookForm
	entryForm     *components.EntryForm
	confirm       *components.ConfirmModal
	searchOverlay *components.SearchOverlay
	showHelp      bool

	// Cover path captured at form submit, applied once the book exists
	pendingCoverPath string
	pendingDelete    string // title for the status message

	width  int
	height int

	status      string
	statusIsErr bool
}

// NewModel wires the root model from services
func NewModel(cfg *config.Config, logger *slog.Logger, shelf *service.ShelfService, settings *service.SettingsService, search *service.SearchService) *Model {
	st := styles.New(settings.Theme())

	shelfCol := components.NewShelfColumn(&st, cfg.UI.ShowProgress)
	// ParseGenre falls back to Other, so require an exact match here:
	// a misspelled config value should mean no filter, not Other.
	if g := domain.ParseGenre(cfg.UI.DefaultGenre); g.String() == cfg.UI.DefaultGenre {
		shelfCol.SetGenreFilter(g)
	}

	return &Model{
		cfg:           cfg,
		logger:        logger,
		shelf:         shelf,
		settings:      settings,
		search:        search,
		styles:        &st,
		shelfCol:      shelfCol,
		detail:        components.NewDetail(&st),
		bookForm:      components.NewBookForm(&st),
		entryForm:     components.NewEntryForm(&st),
		confirm:       components.NewConfirmModal(&st),
		searchOverlay: components.NewSearchOverlay(&st),
	}
}

func (m *Model) Init() tea.Cmd {
	return loadBooksCmd(m.shelf)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case BooksLoadedMsg:
		m.shelfCol.SetBooks(msg.Books)
		m.detail.SetBook(m.shelfCol.Selected())
		return m, nil

	case BookAddedMsg:
		m.shelfCol.SetBooks(m.shelf.Books())
		m.shelfCol.SelectByID(msg.Book.ID)
		m.detail.SetBook(m.shelfCol.Selected())
		m.setStatus("Added "+msg.Book.Title, false)
		if path := m.pendingCoverPath; path != "" {
			m.pendingCoverPath = ""
			return m, tea.Batch(loadCoverCmd(m.shelf, msg.Book.ID, path), clearStatusCmd())
		}
		return m, clearStatusCmd()

	case BookUpdatedMsg:
		m.shelfCol.SetBooks(m.shelf.Books())
		if sel := m.detail.Book(); sel != nil && sel.ID == msg.Book.ID {
			m.detail.SetBook(msg.Book)
		} else if m.state == stateShelf {
			m.detail.SetBook(m.shelfCol.Selected())
		}
		return m, nil

	case BookDeletedMsg:
		m.shelfCol.SetBooks(m.shelf.Books())
		m.detail.SetBook(m.shelfCol.Selected())
		m.state = stateShelf
		m.focusShelf()
		m.setStatus("Deleted "+msg.Title, false)
		return m, clearStatusCmd()

	case CoverLoadedMsg:
		if b, err := m.shelf.Book(msg.BookID); err == nil {
			m.detail.SetBook(b)
		}
		m.setStatus("Cover attached", false)
		return m, clearStatusCmd()

	case ThemeChangedMsg:
		*m.styles = styles.New(msg.Theme)
		m.setStatus("Theme: "+msg.Theme, false)
		return m, clearStatusCmd()

	case SearchResultsMsg:
		m.searchOverlay.SetResults(msg.Query, msg.Results)
		return m, nil

	case StatusMsg:
		m.setStatus(msg.Message, msg.IsError)
		return m, clearStatusCmd()

	case ErrMsg:
		m.logger.Error("tui error", "context", msg.Context, "error", msg.Err)
		m.setStatus(msg.Error(), true)
		return m, clearStatusCmd()

	case ClearStatusMsg:
		m.status = ""
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Modals swallow keys while visible
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}
	if m.bookForm.IsVisible() {
		return m.updateBookForm(msg)
	}
	if m.entryForm.IsVisible() {
		return m.updateEntryForm(msg)
	}
	if m.confirm.IsVisible() {
		var confirmed bool
		m.confirm, confirmed, _ = m.confirm.Update(msg)
		if confirmed {
			return m, deleteBookCmd(m.shelf, m.confirm.Payload(), m.pendingDelete)
		}
		return m, nil
	}
	if m.searchOverlay.IsVisible() {
		return m.updateSearchOverlay(msg)
	}

	// While the shelf filter is capturing text, only it sees keys
	if m.shelfCol.IsFilterTyping() {
		var cmd tea.Cmd
		m.shelfCol, cmd = m.shelfCol.Update(msg)
		m.detail.SetBook(m.shelfCol.Selected())
		return m, cmd
	}

	// Global keys
	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, Keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, Keys.ToggleTheme):
		return m, toggleThemeCmd(m.settings)
	case key.Matches(msg, Keys.Add):
		m.bookForm.ShowAdd()
		return m, nil
	case key.Matches(msg, Keys.Search):
		m.searchOverlay.Show()
		return m, nil
	}

	if m.state == stateDetail {
		return m.handleDetailKey(msg)
	}
	return m.handleShelfKey(msg)
}

func (m *Model) handleShelfKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	selected := m.shelfCol.Selected()

	switch {
	case key.Matches(msg, Keys.Enter):
		if selected != nil {
			m.state = stateDetail
			m.focusDetail()
		}
		return m, nil

	case key.Matches(msg, Keys.Filter):
		m.shelfCol.ToggleFilter()
		return m, nil

	case key.Matches(msg, Keys.Genre):
		m.shelfCol.CycleGenreFilter()
		m.detail.SetBook(m.shelfCol.Selected())
		return m, nil

	case key.Matches(msg, Keys.Edit):
		if selected != nil {
			m.bookForm.ShowEdit(selected)
		}
		return m, nil

	case key.Matches(msg, Keys.Delete):
		if selected != nil {
			m.pendingDelete = selected.Title
			m.confirm.Show("Delete Book", "Remove \""+selected.Title+"\" and all its notes?", selected.ID)
		}
		return m, nil

	case key.Matches(msg, Keys.PageUp):
		if selected != nil {
			return m, adjustPageCmd(m.shelf, selected.ID, 1)
		}
		return m, nil

	case key.Matches(msg, Keys.PageDown):
		if selected != nil {
			return m, adjustPageCmd(m.shelf, selected.ID, -1)
		}
		return m, nil

	case key.Matches(msg, Keys.Rate):
		if selected != nil {
			rating, _ := strconv.Atoi(msg.String())
			return m, setRatingCmd(m.shelf, selected.ID, rating)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.shelfCol, cmd = m.shelfCol.Update(msg)
	m.detail.SetBook(m.shelfCol.Selected())
	return m, cmd
}

func (m *Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	book := m.detail.Book()
	if book == nil {
		m.state = stateShelf
		m.focusShelf()
		return m, nil
	}

	switch {
	case key.Matches(msg, Keys.Back), key.Matches(msg, Keys.Escape):
		m.state = stateShelf
		m.focusShelf()
		return m, nil

	case key.Matches(msg, Keys.NextTab):
		m.detail.NextTab()
		return m, nil

	case key.Matches(msg, Keys.PrevTab):
		m.detail.PrevTab()
		return m, nil

	case key.Matches(msg, Keys.PageUp):
		return m, adjustPageCmd(m.shelf, book.ID, 1)

	case key.Matches(msg, Keys.PageDown):
		return m, adjustPageCmd(m.shelf, book.ID, -1)

	case key.Matches(msg, Keys.Rate):
		rating, _ := strconv.Atoi(msg.String())
		return m, setRatingCmd(m.shelf, book.ID, rating)

	case key.Matches(msg, Keys.Edit):
		return m, m.editUnderCursor(book)

	case key.Matches(msg, Keys.New):
		m.openEntryForm(book)
		return m, nil

	case key.Matches(msg, Keys.Delete):
		return m, m.removeUnderCursor(book)

	case msg.String() == "d":
		m.entryForm.Show(components.EntryTargetDate, "", book.TargetFinishDate)
		return m, nil
	}

	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)
	return m, cmd
}

// openEntryForm opens the add form matching the active tab
func (m *Model) openEntryForm(book *domain.Book) {
	switch m.detail.Tab() {
	case components.TabSummary:
		m.entryForm.Show(components.EntrySummary, "", book.GeneralSummary)
	case components.TabChapters:
		m.entryForm.Show(components.EntryChapter, "")
	case components.TabQuotes:
		m.entryForm.Show(components.EntryQuote, "")
	case components.TabGlossary:
		m.entryForm.Show(components.EntryGlossary, "")
	default:
		m.entryForm.Show(components.EntryTargetDate, "", book.TargetFinishDate)
	}
}

// editUnderCursor edits the entry under the detail cursor, or the book
// itself on the info tab.
func (m *Model) editUnderCursor(book *domain.Book) tea.Cmd {
	switch m.detail.Tab() {
	case components.TabChapters:
		if cs := m.detail.SelectedChapter(); cs != nil {
			m.entryForm.Show(components.EntryChapter, cs.ID, cs.ChapterTitle, cs.Content)
		}
	case components.TabQuotes:
		if q := m.detail.SelectedQuote(); q != nil {
			m.entryForm.Show(components.EntryQuote, q.ID, q.Text, strconv.Itoa(q.Page))
		}
	case components.TabGlossary:
		if g := m.detail.SelectedGlossaryEntry(); g != nil {
			m.entryForm.Show(components.EntryGlossary, g.ID, g.Word, g.Definition)
		}
	case components.TabSummary:
		m.entryForm.Show(components.EntrySummary, "", book.GeneralSummary)
	default:
		m.bookForm.ShowEdit(book)
	}
	return nil
}

func (m *Model) removeUnderCursor(book *domain.Book) tea.Cmd {
	switch m.detail.Tab() {
	case components.TabChapters:
		if cs := m.detail.SelectedChapter(); cs != nil {
			return removeChapterSummaryCmd(m.shelf, book.ID, cs.ID)
		}
	case components.TabQuotes:
		if q := m.detail.SelectedQuote(); q != nil {
			return removeQuoteCmd(m.shelf, book.ID, q.ID)
		}
	case components.TabGlossary:
		if g := m.detail.SelectedGlossaryEntry(); g != nil {
			return removeGlossaryEntryCmd(m.shelf, book.ID, g.ID)
		}
	}
	return nil
}

func (m *Model) updateBookForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var submitted bool
	m.bookForm, cmd, submitted = m.bookForm.Update(msg)
	if !submitted {
		return m, cmd
	}

	result := m.bookForm.Result()
	editing := m.bookForm.Editing()
	m.bookForm.Hide()

	if editing == nil {
		b, err := domain.NewBook(result.Title, result.Author, result.Genre, result.TotalPages, result.Description, result.ReleaseDate)
		if err != nil {
			m.setStatus(err.Error(), true)
			return m, clearStatusCmd()
		}
		b.TargetFinishDate = result.TargetDate
		m.pendingCoverPath = result.CoverPath
		return m, addBookCmd(m.shelf, b)
	}

	updated := editing.Clone()
	updated.Title = result.Title
	updated.Author = result.Author
	updated.TotalPages = result.TotalPages
	updated.Genre = result.Genre
	updated.ReleaseDate = result.ReleaseDate
	updated.TargetFinishDate = result.TargetDate
	updated.Description = result.Description

	cmds := []tea.Cmd{updateBookCmd(m.shelf, updated)}
	if result.CoverPath != "" {
		cmds = append(cmds, loadCoverCmd(m.shelf, updated.ID, result.CoverPath))
	}
	return m, tea.Sequence(cmds...)
}

func (m *Model) updateEntryForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var submitted bool
	m.entryForm, cmd, submitted = m.entryForm.Update(msg)
	if !submitted {
		return m, cmd
	}

	book := m.detail.Book()
	if book == nil {
		m.entryForm.Hide()
		return m, nil
	}

	kind := m.entryForm.Kind()
	editID := m.entryForm.EditID()
	values := m.entryForm.Values()
	page := m.entryForm.QuotePage()
	m.entryForm.Hide()

	switch kind {
	case components.EntryChapter:
		if editID != "" {
			return m, updateChapterSummaryCmd(m.shelf, book.ID, domain.ChapterSummary{
				ID: editID, ChapterTitle: values[0], Content: values[1],
			})
		}
		return m, addChapterSummaryCmd(m.shelf, book.ID, values[0], values[1])

	case components.EntryQuote:
		if editID != "" {
			return m, updateQuoteCmd(m.shelf, book.ID, domain.Quote{
				ID: editID, Text: values[0], Page: page,
			})
		}
		return m, addQuoteCmd(m.shelf, book.ID, values[0], page)

	case components.EntryGlossary:
		if editID != "" {
			return m, updateGlossaryEntryCmd(m.shelf, book.ID, domain.GlossaryEntry{
				ID: editID, Word: values[0], Definition: values[1],
			})
		}
		return m, addGlossaryEntryCmd(m.shelf, book.ID, values[0], values[1])

	case components.EntrySummary:
		return m, setGeneralSummaryCmd(m.shelf, book.ID, values[0])

	case components.EntryTargetDate:
		return m, setTargetDateCmd(m.shelf, book.ID, values[0])
	}

	return m, nil
}

func (m *Model) updateSearchOverlay(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var selected bool
	m.searchOverlay, cmd, selected = m.searchOverlay.Update(msg)

	if selected {
		book := m.searchOverlay.Selected()
		m.searchOverlay.Hide()
		m.shelfCol.ClearFilter()
		m.shelfCol.SelectByID(book.ID)
		m.detail.SetBook(book)
		m.state = stateDetail
		m.focusDetail()
		return m, nil
	}

	if m.searchOverlay.QueryChanged() {
		return m, tea.Batch(cmd, searchCmd(m.search, m.searchOverlay.Query()))
	}
	return m, cmd
}

// Layout and focus

func (m *Model) layout() {
	mainHeight := m.height - 2 // header + status bar
	if mainHeight < 5 {
		mainHeight = 5
	}

	shelfWidth := m.width * 2 / 5
	if shelfWidth < 30 {
		shelfWidth = 30
	}
	if shelfWidth > m.width-20 {
		shelfWidth = m.width / 2
	}

	m.shelfCol.SetSize(shelfWidth, mainHeight)
	m.detail.SetSize(m.width-shelfWidth, mainHeight)
	m.searchOverlay.SetSize(m.width, m.height)
	m.focusCurrent()
}

func (m *Model) focusCurrent() {
	if m.state == stateDetail {
		m.focusDetail()
	} else {
		m.focusShelf()
	}
}

func (m *Model) focusShelf() {
	m.shelfCol.SetFocused(true)
	m.detail.SetFocused(false)
}

func (m *Model) focusDetail() {
	m.shelfCol.SetFocused(false)
	m.detail.SetFocused(true)
}

func (m *Model) setStatus(msg string, isErr bool) {
	m.status = msg
	m.statusIsErr = isErr
}

// View

func (m *Model) View() string {
	if m.width == 0 {
		return "loading..."
	}

	header := m.renderHeader()
	main := lipgloss.JoinHorizontal(lipgloss.Top, m.shelfCol.View(), m.detail.View())
	status := m.renderStatusBar()

	view := lipgloss.JoinVertical(lipgloss.Left, header, main, status)

	if overlay := m.renderOverlay(); overlay != "" {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, overlay)
	}
	return view
}

func (m *Model) renderOverlay() string {
	switch {
	case m.bookForm.IsVisible():
		return m.bookForm.View()
	case m.entryForm.IsVisible():
		return m.entryForm.View()
	case m.confirm.IsVisible():
		return m.confirm.View()
	case m.searchOverlay.IsVisible():
		return m.searchOverlay.View()
	case m.showHelp:
		return m.renderHelp()
	}
	return ""
}

func (m *Model) renderHeader() string {
	title := m.styles.Title.Render(" folio ")
	theme := m.styles.DimBadge.Render(m.settings.Theme())
	gap := m.width - lipgloss.Width(title) - lipgloss.Width(theme) - 1
	if gap < 1 {
		gap = 1
	}
	return title + strings.Repeat(" ", gap) + theme
}

func (m *Model) renderStatusBar() string {
	if m.status != "" {
		style := m.styles.StatusBar
		if m.statusIsErr {
			style = m.styles.StatusError
		}
		return style.Render(" " + m.status)
	}

	hints := []string{"a add", "enter open", "/ filter", "c genre", "f search", "t theme", "? help", "q quit"}
	if m.state == stateDetail {
		hints = []string{"tab tabs", "n new entry", "e edit", "x remove", "+/- pages", "0-5 rate", "h back"}
	}

	var parts []string
	for _, h := range hints {
		fields := strings.SplitN(h, " ", 2)
		parts = append(parts, m.styles.HelpKey.Render(fields[0])+" "+m.styles.HelpDesc.Render(fields[1]))
	}
	return " " + strings.Join(parts, m.styles.Dim.Render(" · "))
}

func (m *Model) renderHelp() string {
	rows := [][2]string{
		{"j/k, ↑/↓", "move"},
		{"g/G", "top/bottom"},
		{"enter", "open book"},
		{"h/esc", "back to shelf"},
		{"a", "add book"},
		{"e", "edit book or entry"},
		{"x", "delete book / remove entry"},
		{"/", "filter shelf"},
		{"c", "cycle genre filter"},
		{"f", "search titles and authors"},
		{"tab / shift+tab", "switch detail tab"},
		{"n", "new entry on current tab"},
		{"d", "set target finish date"},
		{"+/-", "log pages read"},
		{"0-5", "rate book"},
		{"t", "toggle light/dark theme"},
		{"q", "quit"},
	}

	var lines []string
	lines = append(lines, m.styles.ModalTitle.Render("Keyboard Reference"))
	for _, r := range rows {
		lines = append(lines, m.styles.HelpKey.Render(styles.Pad(r[0], 18))+m.styles.HelpDesc.Render(r[1]))
	}
	lines = append(lines, "")
	lines = append(lines, m.styles.Dim.Render("press any key to close"))

	return m.styles.Modal.Render(strings.Join(lines, "\n"))
}
