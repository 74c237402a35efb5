package header

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/miosa/osa-vscroll/style"
)

// Model holds the state for the one-line header.
type Model struct {
	version string
	source  string
	origin  string // repo path for the git source
	count   int
	loading bool
	width   int
}

// New returns a Model with the given version string.
func New(version string) Model {
	return Model{version: version}
}

// SetSource updates the displayed source name and, for path-backed sources,
// its origin.
func (m *Model) SetSource(name, origin string) {
	m.source = name
	m.origin = origin
}

// SetCount updates the displayed row count and clears the loading marker.
func (m *Model) SetCount(n int) {
	m.count = n
	m.loading = false
}

// SetLoading marks a load in flight.
func (m *Model) SetLoading() { m.loading = true }

// SetWidth updates the terminal width used for the separator.
func (m *Model) SetWidth(w int) { m.width = w }

// View returns the header line, e.g. "vscroll dev · git · ~/src/repo · 120 rows".
func (m Model) View() string {
	sep := style.HeaderSeparator.Render(" · ")
	parts := []string{style.HeaderTitle.Render("vscroll " + m.version)}
	if m.source != "" {
		parts = append(parts, style.HeaderDetail.Render(m.source))
	}
	if m.origin != "" {
		parts = append(parts, style.HeaderDetail.Render(truncatePath(m.origin, max(m.width/3, 12))))
	}
	if m.loading {
		parts = append(parts, style.HeaderLoading.Render("loading…"))
	} else {
		parts = append(parts, style.HeaderDetail.Render(fmt.Sprintf("%d rows", m.count)))
	}
	return strings.Join(parts, sep)
}

// HeaderView returns the header plus a thin separator line.
func (m Model) HeaderView() string {
	rule := lipgloss.NewStyle().Foreground(style.Border).Render(strings.Repeat("─", max(m.width, 0)))
	return m.View() + "\n" + rule
}

// truncatePath shortens a filesystem path to fit within maxWidth cells.
// It tries: full path, ~/relative, …/last-two-segments, …/basename.
func truncatePath(path string, maxWidth int) string {
	if ansi.StringWidth(path) <= maxWidth {
		return path
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" && strings.HasPrefix(path, home) {
		short := "~" + path[len(home):]
		if ansi.StringWidth(short) <= maxWidth {
			return short
		}
	}
	base := filepath.Base(path)
	parent := filepath.Base(filepath.Dir(path))
	if short := "…/" + parent + "/" + base; ansi.StringWidth(short) <= maxWidth {
		return short
	}
	if short := "…/" + base; ansi.StringWidth(short) <= maxWidth {
		return short
	}
	if maxWidth > 3 {
		return ansi.Truncate(path, maxWidth, "…")
	}
	return path
}
