package components

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/folioapp/folio/internal/tui/styles"
)

// ConfirmModal asks a yes/no question before a destructive action
type ConfirmModal struct {
	styles  *styles.Styles
	visible bool
	title   string
	prompt  string
	payload string // opaque ID handed back to the caller
}

func NewConfirmModal(st *styles.Styles) *ConfirmModal {
	return &ConfirmModal{styles: st}
}

// Show displays the modal. payload identifies what is being confirmed.
func (m *ConfirmModal) Show(title, prompt, payload string) {
	m.visible = true
	m.title = title
	m.prompt = prompt
	m.payload = payload
}

func (m *ConfirmModal) Hide()           { m.visible = false }
func (m *ConfirmModal) IsVisible() bool { return m.visible }
func (m *ConfirmModal) Payload() string { return m.payload }

// Update handles input, returns (modal, confirmed, dismissed)
func (m *ConfirmModal) Update(msg tea.Msg) (*ConfirmModal, bool, bool) {
	if !m.visible {
		return m, false, false
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "y", "Y":
			m.Hide()
			return m, true, true
		case "n", "N", "esc":
			m.Hide()
			return m, false, true
		}
	}
	return m, false, false
}

func (m *ConfirmModal) View() string {
	if !m.visible {
		return ""
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		m.styles.ModalTitle.Render(m.title),
		m.prompt,
		"",
		m.styles.HelpKey.Render("y")+m.styles.HelpDesc.Render(" confirm   ")+
			m.styles.HelpKey.Render("n/esc")+m.styles.HelpDesc.Render(" cancel"),
	)

	return m.styles.Modal.Render(content)
}
