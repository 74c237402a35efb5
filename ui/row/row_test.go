package row

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/miosa/osa-vscroll/vscroll"
)

type testItem struct {
	id, title, text string
}

func (t testItem) ID() string    { return t.id }
func (t testItem) Text() string  { return t.text }
func (t testItem) Title() string { return t.title }

type bareItem struct{ id, text string }

func (b bareItem) ID() string   { return b.id }
func (b bareItem) Text() string { return b.text }

func TestPlain_HeightMatchesTerminalPrediction(t *testing.T) {
	width := 40
	p := vscroll.TerminalPredictor(width)
	for _, text := range []string{"", "short", strings.Repeat("x", 36)} {
		it := testItem{id: "a", title: "A", text: text}
		got := Height(Plain{}.Render(it, width, false))
		if want := p.Predict(it); got != want {
			t.Errorf("text %q: want height %d, got %d", text, want, got)
		}
	}
}

func TestPlain_WrapsLongBody(t *testing.T) {
	it := testItem{id: "a", title: "A", text: strings.Repeat("word ", 40)}
	out := Plain{}.Render(it, 30, false)
	if h := Height(out); h < 8 {
		t.Errorf("want a multi-line card for 200 chars at width 30, got %d lines", h)
	}
	for i, line := range strings.Split(out, "\n") {
		if w := ansi.StringWidth(line); w > 30 {
			t.Errorf("line %d is %d cells wide, want <= 30", i, w)
		}
	}
}

func TestCard_TitleFallsBackToID(t *testing.T) {
	out := Plain{}.Render(bareItem{id: "row-17", text: "body"}, 40, false)
	if !strings.Contains(ansi.Strip(out), "row-17") {
		t.Errorf("want id as title, got %q", ansi.Strip(out))
	}
	out = Plain{}.Render(testItem{id: "row-17", title: "Custom", text: "body"}, 40, true)
	if !strings.Contains(ansi.Strip(out), "Custom") {
		t.Errorf("want custom title, got %q", ansi.Strip(out))
	}
}

func TestMarkdown_RendersBody(t *testing.T) {
	m := NewMarkdown("notty")
	it := testItem{id: "a", title: "A", text: "# Heading\n\nSome **bold** text."}
	out := ansi.Strip(m.Render(it, 60, false))
	if !strings.Contains(out, "Heading") || !strings.Contains(out, "bold") {
		t.Errorf("want rendered markdown content, got %q", out)
	}
	if Height(out) < 5 {
		t.Errorf("want at least a full card, got %d lines", Height(out))
	}
	if len(m.renderers) != 1 {
		t.Errorf("want one cached renderer, got %d", len(m.renderers))
	}
	m.Render(it, 60, false)
	if len(m.renderers) != 1 {
		t.Errorf("renderer must be reused for the same width, got %d", len(m.renderers))
	}
}

func TestCard_TitledShowsIDAsMeta(t *testing.T) {
	it := testItem{id: "row-17", title: "Custom", text: "body"}
	lines := strings.Split(ansi.Strip(Plain{}.Render(it, 40, false)), "\n")
	if !strings.Contains(lines[1], "Custom") || !strings.Contains(lines[1], "row-17") {
		t.Errorf("want title and id on the title line, got %q", lines[1])
	}

	// A long id is truncated rather than wrapped.
	long := testItem{id: strings.Repeat("f", 40), title: "Custom", text: "body"}
	short := bareItem{id: "x", text: "body"}
	if got, want := Height(Plain{}.Render(long, 20, false)), Height(Plain{}.Render(short, 20, false)); got != want {
		t.Errorf("want height %d with a long id, got %d", want, got)
	}
}
