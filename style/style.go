package style

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Colors: initialized to dark theme defaults. Updated via SetTheme().
var (
	Primary   color.Color = lipgloss.Color("#7C3AED")
	Secondary color.Color = lipgloss.Color("#06B6D4")
	Success   color.Color = lipgloss.Color("#22C55E")
	Warning   color.Color = lipgloss.Color("#F59E0B")
	Error     color.Color = lipgloss.Color("#EF4444")
	Muted     color.Color = lipgloss.Color("#6B7280")
	Dim       color.Color = lipgloss.Color("#374151")
	Border    color.Color = lipgloss.Color("#4B5563")

	CardPredictedColor color.Color = lipgloss.Color("#4B5563")
	CardMeasuredColor  color.Color = lipgloss.Color("#7C3AED")
	StatusBgColor      color.Color = lipgloss.Color("#1F2937")
)

// Base styles, rebuilt when the theme changes via rebuildStyles().
var (
	ErrorText lipgloss.Style

	// Header
	HeaderTitle     lipgloss.Style
	HeaderDetail    lipgloss.Style
	HeaderSeparator lipgloss.Style
	HeaderLoading   lipgloss.Style

	// Cards
	CardTitle lipgloss.Style
	CardMeta  lipgloss.Style

	// Status bar
	StatusBar      lipgloss.Style
	StatusKey      lipgloss.Style
	StatusValue    lipgloss.Style
	StatusMeasured lipgloss.Style

	// Help
	HelpKey       lipgloss.Style
	HelpDesc      lipgloss.Style
	HelpSeparator lipgloss.Style

	// Scrollbar
	ScrollbarThumb lipgloss.Style
	ScrollbarTrack lipgloss.Style
)

func init() {
	rebuildStyles()
}

// SetTheme applies a named theme, updating all color vars and rebuilding styles.
func SetTheme(name string) bool {
	t, ok := Themes[name]
	if !ok {
		return false
	}
	CurrentThemeName = name
	Primary = t.Primary
	Secondary = t.Secondary
	Success = t.Success
	Warning = t.Warning
	Error = t.Error
	Muted = t.Muted
	Dim = t.Dim
	Border = t.Border
	CardPredictedColor = t.CardPredicted
	CardMeasuredColor = t.CardMeasured
	StatusBgColor = t.StatusBg
	rebuildStyles()
	return true
}

// IsDark returns whether the current theme is dark.
func IsDark() bool {
	return CurrentThemeName != "light"
}

// Card returns the bordered frame for a row card. Measured rows get the
// accent border so height corrections are visible while scrolling.
func Card(measured bool) lipgloss.Style {
	c := CardPredictedColor
	if measured {
		c = CardMeasuredColor
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(c).
		Padding(0, 1)
}

func rebuildStyles() {
	ErrorText = lipgloss.NewStyle().Foreground(Error).Bold(true)

	HeaderTitle = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	HeaderDetail = lipgloss.NewStyle().Foreground(Muted)
	HeaderSeparator = lipgloss.NewStyle().Foreground(Dim)
	HeaderLoading = lipgloss.NewStyle().Foreground(Warning).Italic(true)

	CardTitle = lipgloss.NewStyle().Foreground(Secondary).Bold(true)
	CardMeta = lipgloss.NewStyle().Foreground(Muted)

	StatusBar = lipgloss.NewStyle().Background(StatusBgColor).Foreground(Muted)
	StatusKey = lipgloss.NewStyle().Background(StatusBgColor).Foreground(Secondary)
	StatusValue = lipgloss.NewStyle().Background(StatusBgColor).Foreground(Primary).Bold(true)
	StatusMeasured = lipgloss.NewStyle().Background(StatusBgColor).Foreground(Success).Bold(true)

	HelpKey = lipgloss.NewStyle().Foreground(Secondary).Bold(true)
	HelpDesc = lipgloss.NewStyle().Foreground(Muted)
	HelpSeparator = lipgloss.NewStyle().Foreground(Dim)

	ScrollbarThumb = lipgloss.NewStyle().Foreground(Primary)
	ScrollbarTrack = lipgloss.NewStyle().Foreground(Dim)
}
