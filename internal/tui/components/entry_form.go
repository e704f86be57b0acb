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

// EntryKind selects what the entry form edits
type EntryKind int

const (
	EntryChapter EntryKind = iota
	EntryQuote
	EntryGlossary
	EntrySummary
	EntryTargetDate
)

// entryLayout describes the inputs for one kind
type entryLayout struct {
	title  string
	labels []string
}

var entryLayouts = map[EntryKind]entryLayout{
	EntryChapter:    {"Chapter Summary", []string{"Chapter", "Summary"}},
	EntryQuote:      {"Quote", []string{"Text", "Page"}},
	EntryGlossary:   {"Glossary Entry", []string{"Word", "Definition"}},
	EntrySummary:    {"General Summary", []string{"Summary"}},
	EntryTargetDate: {"Target Finish Date", []string{"Date (YYYY-MM-DD)"}},
}

// EntryForm is the small modal for diary entries: chapter summaries,
// quotes, glossary entries, the general summary and the target date.
type EntryForm struct {
	styles  *styles.Styles
	visible bool
	kind    EntryKind
	editID  string // non-empty when editing an existing entry

	inputs []textinput.Model
	focus  int
	errMsg string
}

func NewEntryForm(st *styles.Styles) *EntryForm {
	return &EntryForm{styles: st}
}

// Show opens the form for a kind, prefilled with values (may be short)
func (f *EntryForm) Show(kind EntryKind, editID string, values ...string) {
	layout := entryLayouts[kind]

	f.visible = true
	f.kind = kind
	f.editID = editID
	f.focus = 0
	f.errMsg = ""

	f.inputs = make([]textinput.Model, len(layout.labels))
	for i := range f.inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 500
		ti.Width = 40
		ti.PlaceholderStyle = f.styles.Dim
		if i < len(values) {
			ti.SetValue(values[i])
		}
		f.inputs[i] = ti
	}
	f.inputs[0].Focus()
}

func (f *EntryForm) Hide() {
	f.visible = false
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
}

func (f *EntryForm) IsVisible() bool { return f.visible }
func (f *EntryForm) Kind() EntryKind { return f.kind }
func (f *EntryForm) EditID() string  { return f.editID }

// Values returns the trimmed input values
func (f *EntryForm) Values() []string {
	out := make([]string, len(f.inputs))
	for i := range f.inputs {
		out[i] = strings.TrimSpace(f.inputs[i].Value())
	}
	return out
}

// QuotePage parses the page number for quote entries
func (f *EntryForm) QuotePage() int {
	if f.kind != EntryQuote || len(f.inputs) < 2 {
		return 0
	}
	page, _ := strconv.Atoi(strings.TrimSpace(f.inputs[1].Value()))
	return page
}

func (f *EntryForm) validate() string {
	values := f.Values()
	switch f.kind {
	case EntryChapter:
		if values[0] == "" {
			return "chapter title is required"
		}
	case EntryQuote:
		if values[0] == "" {
			return "quote text is required"
		}
		if values[1] != "" {
			if page, err := strconv.Atoi(values[1]); err != nil || page < 0 {
				return "page must be a number"
			}
		}
	case EntryGlossary:
		if values[0] == "" {
			return "word is required"
		}
	case EntryTargetDate:
		if values[0] != "" {
			if _, err := time.ParseInLocation(domain.DateLayout, values[0], time.Local); err != nil {
				return "date must be YYYY-MM-DD"
			}
		}
	}
	return ""
}

// Update handles input events, returns (form, cmd, submitted)
func (f *EntryForm) Update(msg tea.Msg) (*EntryForm, tea.Cmd, bool) {
	if !f.visible {
		return f, nil, false
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			f.Hide()
			return f, nil, false
		case "enter":
			if f.focus < len(f.inputs)-1 {
				f.inputs[f.focus].Blur()
				f.focus++
				f.inputs[f.focus].Focus()
				return f, nil, false
			}
			if problem := f.validate(); problem != "" {
				f.errMsg = problem
				return f, nil, false
			}
			return f, nil, true
		case "tab", "down":
			f.moveFocus(1)
			return f, nil, false
		case "shift+tab", "up":
			f.moveFocus(-1)
			return f, nil, false
		}
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	f.errMsg = ""
	return f, cmd, false
}

func (f *EntryForm) moveFocus(delta int) {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + len(f.inputs)) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

func (f *EntryForm) View() string {
	if !f.visible {
		return ""
	}

	layout := entryLayouts[f.kind]

	title := layout.title
	if f.editID != "" {
		title = "Edit " + title
	}

	var rows []string
	rows = append(rows, f.styles.ModalTitle.Render(title))
	for i, label := range layout.labels {
		labelStyle := f.styles.Dim
		if i == f.focus {
			labelStyle = f.styles.Accent
		}
		rows = append(rows, labelStyle.Render(styles.Pad(label, 20)))
		rows = append(rows, f.inputs[i].View())
	}

	rows = append(rows, "")
	if f.errMsg != "" {
		rows = append(rows, f.styles.Error.Render(f.errMsg))
	}
	rows = append(rows, f.styles.HelpDesc.Render("enter save · esc cancel"))

	return f.styles.Modal.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
