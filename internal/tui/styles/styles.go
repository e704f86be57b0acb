package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/folioapp/folio/internal/domain"
)

// Palette holds the colors for one theme
type Palette struct {
	Accent    lipgloss.Color
	Surface   lipgloss.Color
	SurfaceHi lipgloss.Color
	Dim       lipgloss.Color
	Muted     lipgloss.Color
	Text      lipgloss.Color
	Green     lipgloss.Color
	Red       lipgloss.Color
	Blue      lipgloss.Color
}

func DarkPalette() Palette {
	return Palette{
		Accent:    lipgloss.Color("#D97706"),
		Surface:   lipgloss.Color("#1F2937"),
		SurfaceHi: lipgloss.Color("#374151"),
		Dim:       lipgloss.Color("#6B7280"),
		Muted:     lipgloss.Color("#9CA3AF"),
		Text:      lipgloss.Color("#F9FAFB"),
		Green:     lipgloss.Color("#10B981"),
		Red:       lipgloss.Color("#EF4444"),
		Blue:      lipgloss.Color("#3B82F6"),
	}
}

func LightPalette() Palette {
	return Palette{
		Accent:    lipgloss.Color("#B45309"),
		Surface:   lipgloss.Color("#F3F4F6"),
		SurfaceHi: lipgloss.Color("#E5E7EB"),
		Dim:       lipgloss.Color("#9CA3AF"),
		Muted:     lipgloss.Color("#6B7280"),
		Text:      lipgloss.Color("#111827"),
		Green:     lipgloss.Color("#047857"),
		Red:       lipgloss.Color("#B91C1C"),
		Blue:      lipgloss.Color("#1D4ED8"),
	}
}

// Reading status characters (unstyled)
const (
	UnreadChar   = "●"
	ReadingChar  = "◐"
	FinishedChar = "✓"
)

// Styles bundles every themed style. Build one with New and share the
// pointer so a theme toggle takes effect everywhere at once.
type Styles struct {
	Palette Palette

	ActiveBorder   lipgloss.Style
	InactiveBorder lipgloss.Style

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Dim      lipgloss.Style
	Accent   lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style

	SelectedItem lipgloss.Style
	NormalItem   lipgloss.Style

	Modal      lipgloss.Style
	ModalTitle lipgloss.Style

	HelpKey  lipgloss.Style
	HelpDesc lipgloss.Style

	ProgressFull  lipgloss.Style
	ProgressEmpty lipgloss.Style

	Badge    lipgloss.Style
	DimBadge lipgloss.Style

	Filter       lipgloss.Style
	FilterPrompt lipgloss.Style

	MatchHighlight lipgloss.Style

	TabActive   lipgloss.Style
	TabInactive lipgloss.Style

	StatusBar   lipgloss.Style
	StatusError lipgloss.Style
}

// New builds the style set for a theme name. Anything other than light
// gets the dark palette.
func New(theme string) Styles {
	p := DarkPalette()
	if theme == domain.ThemeLight {
		p = LightPalette()
	}

	return Styles{
		Palette: p,

		ActiveBorder: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Accent),
		InactiveBorder: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Dim),

		Title:    lipgloss.NewStyle().Foreground(p.Text).Bold(true),
		Subtitle: lipgloss.NewStyle().Foreground(p.Muted),
		Dim:      lipgloss.NewStyle().Foreground(p.Dim),
		Accent:   lipgloss.NewStyle().Foreground(p.Accent),
		Error:    lipgloss.NewStyle().Foreground(p.Red),
		Success:  lipgloss.NewStyle().Foreground(p.Green),

		SelectedItem: lipgloss.NewStyle().
			Foreground(p.Text).
			Background(p.SurfaceHi).
			Padding(0, 1),
		NormalItem: lipgloss.NewStyle().
			Foreground(p.Muted).
			Padding(0, 1),

		Modal: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Accent).
			Padding(1, 2),
		ModalTitle: lipgloss.NewStyle().
			Foreground(p.Text).
			Bold(true).
			MarginBottom(1),

		HelpKey:  lipgloss.NewStyle().Foreground(p.Accent),
		HelpDesc: lipgloss.NewStyle().Foreground(p.Dim),

		ProgressFull:  lipgloss.NewStyle().Foreground(p.Accent),
		ProgressEmpty: lipgloss.NewStyle().Foreground(p.Dim),

		Badge: lipgloss.NewStyle().
			Foreground(p.Text).
			Background(p.Accent).
			Padding(0, 1),
		DimBadge: lipgloss.NewStyle().
			Foreground(p.Muted).
			Background(p.SurfaceHi).
			Padding(0, 1),

		Filter:       lipgloss.NewStyle().Foreground(p.Accent),
		FilterPrompt: lipgloss.NewStyle().Foreground(p.Accent).Bold(true),

		MatchHighlight: lipgloss.NewStyle().Foreground(p.Accent).Bold(true),

		TabActive: lipgloss.NewStyle().
			Foreground(p.Accent).
			Bold(true).
			Padding(0, 1),
		TabInactive: lipgloss.NewStyle().
			Foreground(p.Dim).
			Padding(0, 1),

		StatusBar:   lipgloss.NewStyle().Foreground(p.Muted),
		StatusError: lipgloss.NewStyle().Foreground(p.Red),
	}
}

// RenderReadingStatus renders the status indicator for a book
func (s *Styles) RenderReadingStatus(b *domain.Book) string {
	switch {
	case b.TotalPages > 0 && b.CurrentPage >= b.TotalPages:
		return s.Success.Render(FinishedChar)
	case b.CurrentPage > 0:
		return s.Accent.Render(ReadingChar)
	default:
		return s.Accent.Render(UnreadChar)
	}
}

// RenderProgressBar renders a progress bar
func (s *Styles) RenderProgressBar(percent int, width int) string {
	if width < 3 {
		return ""
	}

	filled := width * percent / 100
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	return s.ProgressFull.Render(strings.Repeat("█", filled)) +
		s.ProgressEmpty.Render(strings.Repeat("░", width-filled))
}

// RenderStars renders a 0-5 rating as stars. Zero means unrated.
func (s *Styles) RenderStars(rating int) string {
	if rating <= 0 {
		return s.Dim.Render("unrated")
	}
	if rating > 5 {
		rating = 5
	}
	return s.Accent.Render(strings.Repeat("★", rating)) +
		s.Dim.Render(strings.Repeat("☆", 5-rating))
}

// Helper functions

// Truncate truncates a string to the given width with ellipsis
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}

// Pad pads a string to the given width
func Pad(s string, width int) string {
	runes := []rune(s)
	if len(runes) >= width {
		return string(runes[:width])
	}
	return s + strings.Repeat(" ", width-len(runes))
}
