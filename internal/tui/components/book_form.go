package components

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/folioapp/folio/internal/domain"
	"github.com/folioapp/folio/internal/tui/styles"
)

// Form field positions. The genre row is a selector, not a text input.
const (
	fieldTitle = iota
	fieldAuthor
	fieldPages
	fieldGenre
	fieldRelease
	fieldTarget
	fieldDescription
	fieldCover
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"Title", "Author", "Total pages", "Genre",
	"Release date", "Target finish", "Description", "Cover path",
}

// BookFormResult carries the validated form values
type BookFormResult struct {
	Title       string
	Author      string
	TotalPages  int
	Genre       domain.Genre
	ReleaseDate string
	TargetDate  string
	Description string
	CoverPath   string
}

// BookForm is the add/edit modal for a book
type BookForm struct {
	styles  *styles.Styles
	visible bool
	editing *domain.Book // nil when adding

	inputs []textinput.Model
	genre  domain.Genre
	focus  int
	errMsg string

	width  int
	height int
}

func NewBookForm(st *styles.Styles) *BookForm {
	inputs := make([]textinput.Model, fieldCount)
	for i := range inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 200
		ti.Width = 40
		ti.PlaceholderStyle = st.Dim
		inputs[i] = ti
	}
	inputs[fieldTitle].Placeholder = "The Left Hand of Darkness"
	inputs[fieldAuthor].Placeholder = "Ursula K. Le Guin"
	inputs[fieldPages].Placeholder = "304"
	inputs[fieldPages].CharLimit = 6
	inputs[fieldRelease].Placeholder = "YYYY-MM-DD (today if blank)"
	inputs[fieldTarget].Placeholder = "YYYY-MM-DD (optional)"
	inputs[fieldDescription].Placeholder = "A few words about the book"
	inputs[fieldCover].Placeholder = "~/covers/book.png (optional)"

	return &BookForm{styles: st, inputs: inputs}
}

// ShowAdd opens a blank form
func (f *BookForm) ShowAdd() {
	f.reset()
	f.editing = nil
	f.visible = true
	f.inputs[fieldTitle].Focus()
}

// ShowEdit opens the form prefilled from a book
func (f *BookForm) ShowEdit(b *domain.Book) {
	f.reset()
	f.editing = b
	f.visible = true

	f.inputs[fieldTitle].SetValue(b.Title)
	f.inputs[fieldAuthor].SetValue(b.Author)
	f.inputs[fieldPages].SetValue(strconv.Itoa(b.TotalPages))
	f.inputs[fieldRelease].SetValue(b.ReleaseDate)
	f.inputs[fieldTarget].SetValue(b.TargetFinishDate)
	f.inputs[fieldDescription].SetValue(b.Description)
	f.genre = b.Genre
	f.inputs[fieldTitle].Focus()
}

func (f *BookForm) Hide() {
	f.visible = false
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
}

func (f *BookForm) IsVisible() bool       { return f.visible }
func (f *BookForm) Editing() *domain.Book { return f.editing }
func (f *BookForm) SetSize(w, h int)      { f.width, f.height = w, h }

func (f *BookForm) reset() {
	for i := range f.inputs {
		f.inputs[i].SetValue("")
		f.inputs[i].Blur()
	}
	f.genre = domain.Genres()[0]
	f.focus = 0
	f.errMsg = ""
}

// Result returns the validated form values. Only meaningful after
// Update reported a submit.
func (f *BookForm) Result() BookFormResult {
	pages, _ := strconv.Atoi(strings.TrimSpace(f.inputs[fieldPages].Value()))
	return BookFormResult{
		Title:       strings.TrimSpace(f.inputs[fieldTitle].Value()),
		Author:      strings.TrimSpace(f.inputs[fieldAuthor].Value()),
		TotalPages:  pages,
		Genre:       f.genre,
		ReleaseDate: strings.TrimSpace(f.inputs[fieldRelease].Value()),
		TargetDate:  strings.TrimSpace(f.inputs[fieldTarget].Value()),
		Description: strings.TrimSpace(f.inputs[fieldDescription].Value()),
		CoverPath:   strings.TrimSpace(f.inputs[fieldCover].Value()),
	}
}

// validate returns the first problem, or "" when submittable
func (f *BookForm) validate() string {
	if strings.TrimSpace(f.inputs[fieldTitle].Value()) == "" {
		return "title is required"
	}
	if strings.TrimSpace(f.inputs[fieldAuthor].Value()) == "" {
		return "author is required"
	}
	pages, err := strconv.Atoi(strings.TrimSpace(f.inputs[fieldPages].Value()))
	if err != nil || pages <= 0 {
		return "total pages must be a positive number"
	}
	for _, field := range []int{fieldRelease, fieldTarget} {
		if v := strings.TrimSpace(f.inputs[field].Value()); v != "" {
			if _, err := time.ParseInLocation(domain.DateLayout, v, time.Local); err != nil {
				return strings.ToLower(fieldLabels[field]) + " must be YYYY-MM-DD"
			}
		}
	}
	return ""
}

func (f *BookForm) Valid() bool { return f.validate() == "" }

// Update handles input events, returns (form, cmd, submitted)
func (f *BookForm) Update(msg tea.Msg) (*BookForm, tea.Cmd, bool) {
	if !f.visible {
		return f, nil, false
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			f.Hide()
			return f, nil, false
		case "tab", "down", "enter":
			if keyMsg.String() == "enter" && f.focus == fieldCount-1 {
				if problem := f.validate(); problem != "" {
					f.errMsg = problem
					return f, nil, false
				}
				return f, nil, true
			}
			f.setFocus(f.focus + 1)
			return f, nil, false
		case "shift+tab", "up":
			f.setFocus(f.focus - 1)
			return f, nil, false
		case "ctrl+s":
			if problem := f.validate(); problem != "" {
				f.errMsg = problem
				return f, nil, false
			}
			return f, nil, true
		case "left", "right":
			if f.focus == fieldGenre {
				if keyMsg.String() == "right" {
					f.genre = f.genre.Next()
				} else {
					f.genre = f.genre.Prev()
				}
				return f, nil, false
			}
		}
	}

	if f.focus != fieldGenre {
		var cmd tea.Cmd
		f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
		f.errMsg = ""
		return f, cmd, false
	}

	return f, nil, false
}

func (f *BookForm) setFocus(focus int) {
	if focus < 0 {
		focus = fieldCount - 1
	}
	if focus >= fieldCount {
		focus = 0
	}

	if f.focus != fieldGenre {
		f.inputs[f.focus].Blur()
	}
	f.focus = focus
	if f.focus != fieldGenre {
		f.inputs[f.focus].Focus()
	}
}

func (f *BookForm) View() string {
	if !f.visible {
		return ""
	}

	title := "Add Book"
	if f.editing != nil {
		title = "Edit Book"
	}

	var rows []string
	rows = append(rows, f.styles.ModalTitle.Render(title))

	for i := 0; i < fieldCount; i++ {
		label := styles.Pad(fieldLabels[i], 14)
		labelStyle := f.styles.Dim
		if i == f.focus {
			labelStyle = f.styles.Accent
		}

		var value string
		if i == fieldGenre {
			value = f.renderGenreSelector()
		} else {
			value = f.inputs[i].View()
		}

		rows = append(rows, labelStyle.Render(label)+value)
	}

	rows = append(rows, "")
	if f.errMsg != "" {
		rows = append(rows, f.styles.Error.Render(f.errMsg))
	} else if f.Valid() {
		rows = append(rows, f.styles.Success.Render("ctrl+s to save"))
	} else {
		rows = append(rows, f.styles.Dim.Render("fill in title, author and pages"))
	}
	rows = append(rows, f.styles.HelpDesc.Render("tab/enter next · shift+tab back · esc cancel"))

	return f.styles.Modal.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (f *BookForm) renderGenreSelector() string {
	sel := f.styles.Badge.Render(f.genre.String())
	if f.focus != fieldGenre {
		return "  " + sel
	}
	return f.styles.Accent.Render("◀ ") + sel + f.styles.Accent.Render(" ▶")
}
