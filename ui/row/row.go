// Package row renders list items as bordered cards for the terminal list.
//
// A card is a title line and a body inside a rounded border, followed by one
// blank separator line. Its height is whatever the rendered string measures,
// which is what the virtual list reports back as the row's actual height.
package row

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/x/ansi"

	"github.com/miosa/osa-vscroll/style"
	"github.com/miosa/osa-vscroll/vscroll"
)

// cardChrome is the horizontal space the card border and padding take.
const cardChrome = 4

// Titled items supply their own card title. Other items are titled by ID.
type Titled interface {
	Title() string
}

// Renderer turns an item into a card of the given outer width.
type Renderer interface {
	Render(item vscroll.Item, width int, measured bool) string
}

// Height measures a rendered card in lines.
func Height(rendered string) int {
	return lipgloss.Height(rendered)
}

// Markdown renders the body as markdown through glamour. Renderers are
// cached per wrap width.
type Markdown struct {
	// Style is a glamour standard style name ("dark", "light", "notty").
	Style string

	renderers map[int]*glamour.TermRenderer
}

// NewMarkdown returns a Markdown renderer using the given glamour style.
func NewMarkdown(glamourStyle string) *Markdown {
	if glamourStyle == "" {
		glamourStyle = "dark"
	}
	return &Markdown{Style: glamourStyle, renderers: make(map[int]*glamour.TermRenderer)}
}

// Render implements Renderer. The raw body is used if glamour fails.
func (m *Markdown) Render(item vscroll.Item, width int, measured bool) string {
	inner := innerWidth(width)
	body := item.Text()
	if r := m.renderer(inner); r != nil && strings.TrimSpace(body) != "" {
		if out, err := r.Render(body); err == nil {
			body = strings.Trim(out, "\n")
		}
	}
	return card(item, body, inner, measured)
}

func (m *Markdown) renderer(width int) *glamour.TermRenderer {
	if r, ok := m.renderers[width]; ok {
		return r
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(m.Style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		r = nil
	}
	m.renderers[width] = r
	return r
}

// Plain wraps the body as plain text without markdown rendering.
type Plain struct{}

// Render implements Renderer.
func (Plain) Render(item vscroll.Item, width int, measured bool) string {
	inner := innerWidth(width)
	body := ansi.Wordwrap(item.Text(), inner, "")
	body = ansi.Hardwrap(body, inner, true)
	return card(item, body, inner, measured)
}

func card(item vscroll.Item, body string, inner int, measured bool) string {
	// Cards with their own title carry the id as trailing metadata.
	title := style.CardTitle.Render(item.ID())
	if t, ok := item.(Titled); ok && t.Title() != "" && t.Title() != item.ID() {
		title = style.CardTitle.Render(t.Title()) + style.CardMeta.Render("  "+item.ID())
	}
	title = ansi.Truncate(title, inner, "…")

	content := lipgloss.NewStyle().Width(inner).Render(title + "\n" + body)
	return style.Card(measured).Render(content) + "\n"
}

func innerWidth(width int) int {
	return max(width-cardChrome, 1)
}
