package common

import "github.com/charmbracelet/lipgloss"

// Palette of the 2008 wall.
const (
	ColorNav      = lipgloss.Color("#3B5998")
	ColorButton   = lipgloss.Color("#5B74A8")
	ColorLink     = lipgloss.Color("#8FA8E0")
	ColorMuted    = lipgloss.Color("#6E738D")
	ColorBorder   = lipgloss.Color("#45475A")
	ColorText     = lipgloss.Color("#CAD3F5")
	ColorActivity = lipgloss.Color("#A6DA95")
	ColorDanger   = lipgloss.Color("#ED8796")
)

var (
	// NavStyle styles the top navigation bar.
	NavStyle = lipgloss.NewStyle().
			Background(ColorNav).
			Foreground(lipgloss.Color("#FFFFFF")).
			Padding(0, 1)

	// BrandStyle styles the "Wall" wordmark.
	BrandStyle = lipgloss.NewStyle().
			Background(ColorNav).
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true).
			MarginRight(3)

	// BadgeStyle styles the inbox counter.
	BadgeStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#BFDBFE")).
			Foreground(lipgloss.Color("#1E3A8A")).
			Padding(0, 1)

	// NameStyle styles the profile owner's name above the wall.
	NameStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF"))

	// TabActiveStyle and TabStyle style the Wall/Info/Photos tabs.
	TabActiveStyle = lipgloss.NewStyle().
			Foreground(ColorLink).
			Bold(true).
			Underline(true)
	TabStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// AuthorStyle styles the post author name.
	AuthorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7DC4E4"))

	// TimestampStyle styles timestamps.
	TimestampStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// ContentStyle styles post bodies.
	ContentStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	// SelectedStyle highlights the focused post.
	SelectedStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorButton).
			Padding(0, 1)

	// UnselectedStyle gives other posts a subdued border.
	UnselectedStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	// ComposerStyle frames the post composer.
	ComposerStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	// ComposerFocusedStyle frames the composer while typing.
	ComposerFocusedStyle = ComposerStyle.
				BorderForeground(ColorButton)

	// ButtonStyle styles an enabled Share button.
	ButtonStyle = lipgloss.NewStyle().
			Background(ColorButton).
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true).
			Padding(0, 2)

	// ButtonDisabledStyle styles a Share button that cannot be pressed.
	ButtonDisabledStyle = lipgloss.NewStyle().
				Background(ColorBorder).
				Foreground(ColorMuted).
				Padding(0, 2)

	// MenuStyle frames the post overflow menu.
	MenuStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(ColorBorder).
			Foreground(ColorLink).
			Padding(0, 1)

	// BoxStyle frames sidebar panels.
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	// BoxTitleStyle styles sidebar panel headings.
	BoxTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText)

	// LinkStyle styles decorative links.
	LinkStyle = lipgloss.NewStyle().
			Foreground(ColorLink)

	// ActivityStyle styles the RECENT ACTIVITY heading.
	ActivityStyle = lipgloss.NewStyle().
			Foreground(ColorActivity).
			Bold(true)

	// StatusBarStyle styles the bottom status bar.
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(1, 0, 0, 0)

	// DialogStyle frames blocking notifications.
	DialogStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(ColorDanger).
			Padding(1, 3)

	// ErrorStyle styles error messages.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorDanger).
			Bold(true)

	// SuccessStyle styles success messages.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorActivity).
			Bold(true)
)
