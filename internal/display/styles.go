package display

import "github.com/charmbracelet/lipgloss"

// Styles contains styling for table display
type Styles struct {
	Header    lipgloss.Style
	SubHeader lipgloss.Style
	CardRed   lipgloss.Style
	CardBlack lipgloss.Style
	Win       lipgloss.Style
	Lose      lipgloss.Style
	Push      lipgloss.Style
	Money     lipgloss.Style
	Separator lipgloss.Style
	Prompt    lipgloss.Style
}

// NewStyles creates the default style set
func NewStyles() *Styles {
	return &Styles{
		Header: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#006400")).
			Padding(0, 2).
			Bold(true),
		SubHeader: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true),
		CardRed: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		CardBlack: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Bold(true),
		Win: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true),
		Lose: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		Push: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")),
		Money: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true),
		Separator: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")),
		Prompt: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#74B9FF")),
	}
}
