package vlist

import (
	"fmt"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/miosa/osa-vscroll/vscroll"
)

// ---------------------------------------------------------------------------
// Test item and renderer
// ---------------------------------------------------------------------------

// testItem renders to exactly lines lines (lines >= 2, the last one being the
// separator) and predicts predicted.
type testItem struct {
	id        string
	lines     int
	predicted int
}

func (t testItem) ID() string   { return t.id }
func (t testItem) Text() string { return fmt.Sprintf("%s/%d", t.id, t.lines) }

type linesRenderer struct {
	calls map[string]int
}

func (r *linesRenderer) Render(item vscroll.Item, width int, measured bool) string {
	it := item.(testItem)
	if r.calls != nil {
		r.calls[it.id]++
	}
	parts := make([]string, it.lines-1)
	for i := range parts {
		parts[i] = fmt.Sprintf("%s-L%d", it.id, i)
	}
	return strings.Join(parts, "\n") + "\n"
}

func predictTest(item vscroll.Item) int { return item.(testItem).predicted }

func makeItems(n, lines, predicted int) []vscroll.Item {
	items := make([]vscroll.Item, n)
	for i := range items {
		items[i] = testItem{id: fmt.Sprintf("r%02d", i), lines: lines, predicted: predicted}
	}
	return items
}

func newTestList(w, h int, r *linesRenderer, opts ...vscroll.Option) *Model {
	if r == nil {
		r = &linesRenderer{}
	}
	base := []vscroll.Option{
		vscroll.WithPredictor(vscroll.PredictorFunc(predictTest)),
		vscroll.WithPadding(0, 0),
	}
	return New(
		WithSize(w, h),
		WithRenderer(r),
		WithStrategyOptions(append(base, opts...)...),
	)
}

func viewLines(m *Model) []string {
	return strings.Split(ansi.Strip(m.View()), "\n")
}

// ---------------------------------------------------------------------------
// New / options
// ---------------------------------------------------------------------------

func TestNew_ZeroSizeViewIsEmpty(t *testing.T) {
	m := New()
	if out := m.View(); out != "" {
		t.Errorf("zero-size View want empty string, got %q", out)
	}
	if !m.Strategy().Attached() {
		t.Error("want strategy attached after New")
	}
}

func TestNew_Options(t *testing.T) {
	m := New(WithSize(80, 24), WithWheelStep(5), WithWheelStep(-1))
	if w, h := m.Size(); w != 80 || h != 24 {
		t.Errorf("want 80x24, got %dx%d", w, h)
	}
	if m.wheelStep != 5 {
		t.Errorf("want wheelStep=5, got %d", m.wheelStep)
	}
}

// ---------------------------------------------------------------------------
// SetItems / reconciliation
// ---------------------------------------------------------------------------

func TestSetItems_PushesTotalAndRange(t *testing.T) {
	m := newTestList(40, 10, nil)
	m.SetItems(makeItems(20, 5, 5))

	if got := m.TotalSize(); got != 100 {
		t.Errorf("want total 100, got %d", got)
	}
	if got := m.RenderedRange(); got != (vscroll.Range{Start: 0, End: 2}) {
		t.Errorf("want range [0,2), got %v", got)
	}
	if got := m.ScrolledIndex(); got != 0 {
		t.Errorf("want scrolled index 0, got %d", got)
	}
}

func TestSetItems_ReconcilesMeasuredHeights(t *testing.T) {
	m := newTestList(40, 10, nil)
	m.SetItems(makeItems(20, 5, 3))

	// Four predicted rows of 3 fill the viewport; each measures 5.
	if got := m.RenderedRange(); got != (vscroll.Range{Start: 0, End: 4}) {
		t.Fatalf("want range [0,4), got %v", got)
	}
	if got := m.TotalSize(); got != 60+4*2 {
		t.Errorf("want corrected total 68, got %d", got)
	}
	predicted, actual := m.Strategy().Heights().Counts()
	if actual != 4 || predicted != 16 {
		t.Errorf("want 4 actual / 16 predicted, got %d / %d", actual, predicted)
	}
}

func TestSetItems_SameLengthIgnoredByStrategy(t *testing.T) {
	m := newTestList(40, 10, nil)
	first := makeItems(3, 5, 5)
	m.SetItems(first)

	second := []vscroll.Item{
		testItem{id: "x", lines: 2, predicted: 2},
		testItem{id: "y", lines: 2, predicted: 2},
		testItem{id: "z", lines: 2, predicted: 2},
	}
	m.SetItems(second)

	if got := m.Strategy().Items()[0].ID(); got != "r00" {
		t.Errorf("strategy should keep the first list, got id %q", got)
	}
	if got := m.Items()[0].ID(); got != "x" {
		t.Errorf("host should hold the new list, got id %q", got)
	}
}

func TestReplaceItems_SameLengthAdopted(t *testing.T) {
	m := newTestList(40, 10, nil)
	m.SetItems(makeItems(3, 5, 5))

	second := []vscroll.Item{
		testItem{id: "x", lines: 2, predicted: 2},
		testItem{id: "y", lines: 2, predicted: 2},
		testItem{id: "z", lines: 2, predicted: 2},
	}
	m.ReplaceItems(second)

	if got := m.Strategy().Items()[0].ID(); got != "x" {
		t.Errorf("strategy should adopt the new list, got id %q", got)
	}
	if got := m.TotalSize(); got != 6 {
		t.Errorf("want total 6 from the new rows, got %d", got)
	}
	if got := m.Offset(); got != 0 {
		t.Errorf("want offset clamped to 0, got %d", got)
	}
}

func TestView_RendersOnlyMountedRows(t *testing.T) {
	r := &linesRenderer{calls: map[string]int{}}
	m := newTestList(40, 10, r)
	m.SetItems(makeItems(200, 5, 5))
	m.View()

	rng := m.RenderedRange()
	for id := range r.calls {
		var idx int
		fmt.Sscanf(id, "r%d", &idx)
		if !rng.Contains(idx) {
			t.Errorf("row %s rendered outside range %v", id, rng)
		}
	}
}

// ---------------------------------------------------------------------------
// Resize
// ---------------------------------------------------------------------------

func TestSetSize_WidthChangeRemeasures(t *testing.T) {
	m := newTestList(40, 10, nil)
	m.SetItems(makeItems(20, 5, 3))

	m.SetSize(60, 10)
	_, actual := m.Strategy().Heights().Counts()
	if actual != m.RenderedRange().Len() {
		t.Errorf("want only remounted rows measured after width change, got %d actual for range %v",
			actual, m.RenderedRange())
	}
	if got := m.TotalSize(); got != 68 {
		t.Errorf("want total 68 after re-measure, got %d", got)
	}
}

func TestSetSize_HeightChangeKeepsHeights(t *testing.T) {
	m := newTestList(40, 10, nil)
	m.SetItems(makeItems(20, 5, 3))

	m.SetSize(40, 20)
	_, actual := m.Strategy().Heights().Counts()
	if actual < 4 {
		t.Errorf("want measured heights kept on height-only resize, got %d actual", actual)
	}
}

// ---------------------------------------------------------------------------
// Scrolling
// ---------------------------------------------------------------------------

func TestScrollBy_UpdatesRangeAndView(t *testing.T) {
	m := newTestList(40, 10, nil)
	m.SetItems(makeItems(20, 5, 5))

	m.ScrollBy(12)
	if got := m.Offset(); got != 12 {
		t.Fatalf("want offset 12, got %d", got)
	}
	if got := m.ScrolledIndex(); got != 2 {
		t.Errorf("want scrolled index 2, got %d", got)
	}
	if got := m.RenderedContentOffset(); got != 10 {
		t.Errorf("want content offset 10, got %d", got)
	}
	lines := viewLines(m)
	if len(lines) != 10 {
		t.Fatalf("want 10 view lines, got %d", len(lines))
	}
	if !strings.HasPrefix(lines[0], "r02-L2") {
		t.Errorf("want first visible line r02-L2, got %q", lines[0])
	}
}

func TestScrollBy_Clamps(t *testing.T) {
	m := newTestList(40, 10, nil)
	m.SetItems(makeItems(20, 5, 5))

	m.ScrollBy(1000)
	if got := m.Offset(); got != 90 {
		t.Errorf("want offset clamped to 90, got %d", got)
	}
	if !m.AtBottom() {
		t.Error("want AtBottom after scrolling past the end")
	}
	m.ScrollBy(-1000)
	if got := m.Offset(); got != 0 {
		t.Errorf("want offset clamped to 0, got %d", got)
	}
}

func TestPaging(t *testing.T) {
	m := newTestList(40, 10, nil)
	m.SetItems(makeItems(20, 5, 5))

	m.PageDown()
	if got := m.Offset(); got != 10 {
		t.Errorf("PageDown: want 10, got %d", got)
	}
	m.HalfPageDown()
	if got := m.Offset(); got != 15 {
		t.Errorf("HalfPageDown: want 15, got %d", got)
	}
	m.HalfPageUp()
	m.PageUp()
	if got := m.Offset(); got != 0 {
		t.Errorf("want back at 0, got %d", got)
	}
	m.ScrollToBottom()
	if got := m.Offset(); got != 90 {
		t.Errorf("ScrollToBottom: want 90, got %d", got)
	}
	m.ScrollToTop()
	if got := m.Offset(); got != 0 {
		t.Errorf("ScrollToTop: want 0, got %d", got)
	}
}

func TestView_ShowsScrollbarWhenContentOverflows(t *testing.T) {
	m := newTestList(40, 10, nil)
	m.SetItems(makeItems(20, 5, 5))
	for i, line := range viewLines(m) {
		if w := ansi.StringWidth(line); w != 40 {
			t.Errorf("line %d: want width 40 with scrollbar, got %d", i, w)
		}
	}

	short := newTestList(40, 10, nil)
	short.SetItems(makeItems(1, 3, 3))
	for i, line := range viewLines(short) {
		if w := ansi.StringWidth(line); w != 39 {
			t.Errorf("line %d: want width 39 without scrollbar, got %d", i, w)
		}
	}
}

// ---------------------------------------------------------------------------
// ScrollToIndex
// ---------------------------------------------------------------------------

func TestScrollToIndex_Instant(t *testing.T) {
	m := newTestList(40, 10, nil)
	m.SetItems(makeItems(20, 5, 5))

	if cmd := m.ScrollToIndex(4, vscroll.Instant); cmd != nil {
		t.Error("instant scroll should not return a command")
	}
	if got := m.Offset(); got != 20 {
		t.Errorf("want offset 20, got %d", got)
	}
	if got := m.ScrolledIndex(); got != 3 {
		// Offset 20 closes item 3, which wins the tie.
		t.Errorf("want scrolled index 3, got %d", got)
	}
}

func TestScrollToIndex_SmoothAnimates(t *testing.T) {
	m := newTestList(40, 10, nil)
	m.SetItems(makeItems(20, 5, 5))

	cmd := m.ScrollToIndex(8, vscroll.Smooth)
	if cmd == nil {
		t.Fatal("smooth scroll should return a tick command")
	}
	if got := m.Offset(); got != 0 {
		t.Errorf("offset should not jump before the first tick, got %d", got)
	}

	// A stale tick is ignored.
	m.Update(animTickMsg{seq: m.animSeq - 1})
	if got := m.Offset(); got != 0 {
		t.Errorf("stale tick moved the offset to %d", got)
	}

	prev := 0
	for i := 0; i < 50 && m.animating; i++ {
		m.Update(animTickMsg{seq: m.animSeq})
		if m.Offset() < prev {
			t.Fatalf("animation moved backwards: %d -> %d", prev, m.Offset())
		}
		prev = m.Offset()
	}
	if m.animating {
		t.Fatal("animation did not finish")
	}
	if got := m.Offset(); got != 40 {
		t.Errorf("want offset 40, got %d", got)
	}
}

// Rows predicted at 10 lines render at 3, so the total shrinks while the
// viewport moves toward the end.
func TestScrollToIndex_SmoothFinishesWhenContentShrinks(t *testing.T) {
	m := newTestList(40, 10, nil)
	m.SetItems(makeItems(20, 3, 10))

	if cmd := m.ScrollToIndex(19, vscroll.Smooth); cmd == nil {
		t.Fatal("smooth scroll should return a tick command")
	}
	ticks := 0
	for ; ticks < 200 && m.animating; ticks++ {
		m.Update(animTickMsg{seq: m.animSeq})
	}
	if m.animating {
		t.Fatalf("animation still running after %d ticks, offset=%d total=%d", ticks, m.Offset(), m.TotalSize())
	}
	if maxOff := max(m.TotalSize()-10, 0); m.Offset() > maxOff {
		t.Errorf("offset %d past end of content (max %d)", m.Offset(), maxOff)
	}
	if _, cmd := m.Update(animTickMsg{seq: m.animSeq}); cmd != nil {
		t.Error("finished animation should not schedule another tick")
	}
}

func TestScrollToIndex_InstantStaysWithinShrunkContent(t *testing.T) {
	m := newTestList(40, 10, nil)
	m.SetItems(makeItems(20, 3, 10))

	m.ScrollToIndex(19, vscroll.Instant)

	if maxOff := max(m.TotalSize()-10, 0); m.Offset() > maxOff {
		t.Errorf("offset %d past end of content (max %d)", m.Offset(), maxOff)
	}
	if !m.AtBottom() {
		t.Errorf("want list at bottom, offset=%d total=%d", m.Offset(), m.TotalSize())
	}
	// The last line is row 19's separator; its text sits just above.
	lines := viewLines(m)
	if got := lines[len(lines)-2]; !strings.Contains(got, "r19-L1") {
		t.Errorf("want last row at the bottom of the view, got %q", got)
	}
}

func TestScrollBy_CancelsAnimation(t *testing.T) {
	m := newTestList(40, 10, nil)
	m.SetItems(makeItems(20, 5, 5))

	m.ScrollToIndex(8, vscroll.Smooth)
	m.ScrollBy(1)
	if m.animating {
		t.Error("manual scroll should cancel the animation")
	}
	_, cmd := m.Update(animTickMsg{seq: m.animSeq})
	if cmd != nil || m.Offset() != 1 {
		t.Errorf("tick after cancel should do nothing, offset=%d", m.Offset())
	}
}

// ---------------------------------------------------------------------------
// Update (bubbletea)
// ---------------------------------------------------------------------------

func TestUpdate_MouseWheel(t *testing.T) {
	m := newTestList(40, 10, nil)
	m.SetItems(makeItems(20, 5, 5))

	m, _ = m.Update(tea.MouseWheelMsg{Button: tea.MouseWheelDown})
	if got := m.Offset(); got != 3 {
		t.Errorf("MouseWheelDown: want 3, got %d", got)
	}
	m, _ = m.Update(tea.MouseWheelMsg{Button: tea.MouseWheelUp})
	if got := m.Offset(); got != 0 {
		t.Errorf("MouseWheelUp: want 0, got %d", got)
	}
}
