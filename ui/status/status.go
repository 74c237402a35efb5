// Package status renders the bottom status bar: scroll position, the
// rendered range, the total content size and height cache statistics.
package status

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/miosa/osa-vscroll/style"
	"github.com/miosa/osa-vscroll/vscroll"
)

// Model is the status bar state. Drive it via setter methods; it has no
// Update loop.
type Model struct {
	index     int
	count     int
	rendered  vscroll.Range
	offset    int
	total     int
	predicted int
	actual    int
	smooth    bool
	err       error
	width     int
}

// New returns a zero-value Model.
func New() Model {
	return Model{}
}

// SetPosition updates the scrolled index out of count rows.
func (m *Model) SetPosition(index, count int) {
	m.index = index
	m.count = count
}

// SetViewport updates the rendered range, scroll offset and total size.
func (m *Model) SetViewport(rendered vscroll.Range, offset, total int) {
	m.rendered = rendered
	m.offset = offset
	m.total = total
}

// SetCache updates the predicted/actual record counts.
func (m *Model) SetCache(predicted, actual int) {
	m.predicted = predicted
	m.actual = actual
}

// SetSmooth updates the smooth-scroll indicator.
func (m *Model) SetSmooth(on bool) { m.smooth = on }

// SetError shows err in place of the statistics until cleared with nil.
func (m *Model) SetError(err error) { m.err = err }

// SetWidth sets the bar width.
func (m *Model) SetWidth(w int) { m.width = w }

// View renders the status bar, padded to the full width.
func (m Model) View() string {
	var line string
	if m.err != nil {
		line = style.ErrorText.Render(" " + m.err.Error())
	} else {
		pos := "-"
		if m.count > 0 {
			pos = fmt.Sprintf("%d/%d", m.index+1, m.count)
		}
		scroll := "instant"
		if m.smooth {
			scroll = "smooth"
		}
		heights := style.StatusMeasured.Render(fmt.Sprintf("%d measured", m.actual)) +
			style.StatusValue.Render(fmt.Sprintf(" · %d predicted", m.predicted))
		fields := [][2]string{
			{"row", style.StatusValue.Render(pos)},
			{"range", style.StatusValue.Render(m.rendered.String())},
			{"offset", style.StatusValue.Render(fmt.Sprintf("%d/%d", m.offset, m.total))},
			{"heights", heights},
			{"scroll", style.StatusValue.Render(scroll)},
		}
		parts := make([]string, len(fields))
		for i, f := range fields {
			parts[i] = style.StatusKey.Render(f[0]+" ") + f[1]
		}
		line = " " + strings.Join(parts, style.StatusBar.Render("  "))
	}

	if m.width <= 0 {
		return line
	}
	line = ansi.Truncate(line, m.width, "…")
	if pad := m.width - lipgloss.Width(line); pad > 0 {
		line += style.StatusBar.Render(strings.Repeat(" ", pad))
	}
	return line
}
