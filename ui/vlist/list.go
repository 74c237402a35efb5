// Package vlist is a terminal host for the vscroll strategy. It implements
// vscroll.Viewport and vscroll.RowLister over terminal lines and renders
// only the rows the strategy asks for.
//
// Key properties:
//   - One line is one unit of scroll offset and height.
//   - The rightmost column is reserved for the scrollbar; cards are rendered
//     one column narrower than the list.
//   - Rendered cards are cached per id and invalidated on width or text
//     change. Their measured height is what MountedRows reports.
//   - A width change discards every cached height, since wrapped heights
//     from the old width no longer hold.
package vlist

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/miosa/osa-vscroll/ui/common"
	"github.com/miosa/osa-vscroll/ui/row"
	"github.com/miosa/osa-vscroll/vscroll"
)

// ---------------------------------------------------------------------------
// Options
// ---------------------------------------------------------------------------

// Option is a functional option for New.
type Option func(*Model)

// WithSize sets the initial list size in cells.
func WithSize(w, h int) Option {
	return func(m *Model) {
		m.width = max(w, 0)
		m.height = max(h, 0)
	}
}

// WithRenderer sets the card renderer. Default is row.Plain.
func WithRenderer(r row.Renderer) Option {
	return func(m *Model) {
		if r != nil {
			m.renderer = r
		}
	}
}

// WithStrategyOptions passes options through to the underlying strategy.
// A width-aware terminal predictor is installed first and can be overridden
// with vscroll.WithPredictor.
func WithStrategyOptions(opts ...vscroll.Option) Option {
	return func(m *Model) { m.strategyOpts = append(m.strategyOpts, opts...) }
}

// WithWheelStep sets how many lines one mouse wheel notch scrolls.
func WithWheelStep(n int) Option {
	return func(m *Model) {
		if n > 0 {
			m.wheelStep = n
		}
	}
}

// ---------------------------------------------------------------------------
// Model
// ---------------------------------------------------------------------------

type cachedRow struct {
	content  string
	height   int
	width    int
	text     string
	measured bool
}

// animTickMsg advances a smooth scroll.
type animTickMsg struct{ seq int }

const animInterval = 16 * time.Millisecond

// Model is a virtualized terminal list. It must be used through a pointer;
// the strategy holds a reference to it.
type Model struct {
	strategy     *vscroll.Strategy
	strategyOpts []vscroll.Option
	renderer     row.Renderer

	items  []vscroll.Item
	width  int
	height int

	// Viewport state pushed by the strategy.
	offset        int
	rendered      vscroll.Range
	contentOffset int
	totalSize     int

	scrolledIdx int
	cache       map[string]cachedRow

	wheelStep int

	// Smooth scroll.
	animTarget int
	animating  bool
	animSeq    int
}

// New constructs a Model and attaches a fresh strategy to it.
func New(opts ...Option) *Model {
	m := &Model{
		renderer:  row.Plain{},
		cache:     make(map[string]cachedRow),
		wheelStep: 3,
	}
	for _, o := range opts {
		o(m)
	}
	predict := vscroll.WithPredictor(vscroll.PredictorFunc(m.predict))
	m.strategy = vscroll.New(append([]vscroll.Option{predict}, m.strategyOpts...)...)
	m.strategy.OnScrolledIndexChange(func(i int) { m.scrolledIdx = i })
	m.strategy.Attach(m)
	return m
}

func (m *Model) predict(item vscroll.Item) int {
	return vscroll.TerminalPredictor(m.cardWidth()).Predict(item)
}

func (m *Model) cardWidth() int { return max(m.width-1, 1) }

// Strategy returns the attached strategy.
func (m *Model) Strategy() *vscroll.Strategy { return m.strategy }

// ---------------------------------------------------------------------------
// Mutations
// ---------------------------------------------------------------------------

// SetItems replaces the host's rows and hands them to the strategy. Whether
// the strategy adopts them follows its change detection.
func (m *Model) SetItems(items []vscroll.Item) {
	m.items = items
	m.cache = make(map[string]cachedRow)
	m.strategy.UpdateItems(items)
	m.clampOffset()
}

// ReplaceItems swaps in freshly fetched rows. Unlike SetItems it always
// hands them to the strategy, so a reload with the same row count still
// adopts the new ids.
func (m *Model) ReplaceItems(items []vscroll.Item) {
	m.items = items
	m.cache = make(map[string]cachedRow)
	m.strategy.ForceUpdateItems(items)
	m.clampOffset()
}

// Items returns the host's rows.
func (m *Model) Items() []vscroll.Item { return m.items }

// SetSize updates the list dimensions. A width change drops every cached
// height and render.
func (m *Model) SetSize(w, h int) {
	w, h = max(w, 0), max(h, 0)
	if w == m.width && h == m.height {
		return
	}
	if w != m.width {
		m.cache = make(map[string]cachedRow)
		m.strategy.Heights().Reset()
	}
	m.width, m.height = w, h
	m.strategy.OnDataLengthChanged()
	m.clampOffset()
}

// Size returns the list dimensions.
func (m *Model) Size() (int, int) { return m.width, m.height }

// ---------------------------------------------------------------------------
// vscroll.Viewport
// ---------------------------------------------------------------------------

// MeasureScrollOffset implements vscroll.Viewport.
func (m *Model) MeasureScrollOffset() int { return m.offset }

// ViewportSize implements vscroll.Viewport.
func (m *Model) ViewportSize() int { return m.height }

// DataLength implements vscroll.Viewport.
func (m *Model) DataLength() int { return len(m.items) }

// RenderedRange implements vscroll.Viewport.
func (m *Model) RenderedRange() vscroll.Range { return m.rendered }

// SetRenderedRange implements vscroll.Viewport.
func (m *Model) SetRenderedRange(r vscroll.Range) {
	r.End = min(r.End, len(m.items))
	r.Start = min(r.Start, r.End)
	m.rendered = r
}

// SetRenderedContentOffset implements vscroll.Viewport.
func (m *Model) SetRenderedContentOffset(offset int) { m.contentOffset = offset }

// SetTotalContentSize implements vscroll.Viewport.
func (m *Model) SetTotalContentSize(size int) { m.totalSize = size }

// ScrollToOffset implements vscroll.Viewport. Smooth scrolls are advanced by
// the tick returned from ScrollToIndex.
func (m *Model) ScrollToOffset(offset int, behavior vscroll.ScrollBehavior) {
	offset = m.clamp(offset)
	if behavior == vscroll.Smooth && offset != m.offset {
		m.animTarget = offset
		m.animating = true
		m.animSeq++
		return
	}
	m.animating = false
	m.setOffset(offset)
}

// CheckViewportSize implements vscroll.Viewport. The terminal size only
// changes through SetSize, so this just re-runs the data-length pass.
func (m *Model) CheckViewportSize() {
	m.strategy.OnDataLengthChanged()
}

// ---------------------------------------------------------------------------
// vscroll.RowLister
// ---------------------------------------------------------------------------

// MountedRows implements vscroll.RowLister. Rows are rendered on demand so
// their measured height is known.
func (m *Model) MountedRows() []vscroll.MountedRow {
	rows := make([]vscroll.MountedRow, 0, m.rendered.Len())
	for i := m.rendered.Start; i < m.rendered.End; i++ {
		item := m.items[i]
		cr := m.renderRow(item)
		rows = append(rows, vscroll.MountedRow{ID: item.ID(), Height: cr.height})
	}
	m.pruneCache()
	return rows
}

// ---------------------------------------------------------------------------
// Scroll
// ---------------------------------------------------------------------------

// Offset returns the current scroll offset in lines.
func (m *Model) Offset() int { return m.offset }

// TotalSize returns the last total content size pushed by the strategy.
func (m *Model) TotalSize() int { return m.totalSize }

// RenderedContentOffset returns the offset of the first mounted row.
func (m *Model) RenderedContentOffset() int { return m.contentOffset }

// ScrolledIndex returns the last index emitted by the strategy.
func (m *Model) ScrolledIndex() int { return m.scrolledIdx }

// ScrollBy moves the offset by delta lines (positive = down).
func (m *Model) ScrollBy(delta int) {
	m.animating = false
	m.setOffset(m.clamp(m.offset + delta))
}

// PageDown scrolls down by one viewport height.
func (m *Model) PageDown() { m.ScrollBy(m.height) }

// PageUp scrolls up by one viewport height.
func (m *Model) PageUp() { m.ScrollBy(-m.height) }

// HalfPageDown scrolls down by half the viewport height.
func (m *Model) HalfPageDown() { m.ScrollBy(max(m.height/2, 1)) }

// HalfPageUp scrolls up by half the viewport height.
func (m *Model) HalfPageUp() { m.ScrollBy(-max(m.height/2, 1)) }

// ScrollToTop jumps to the first row.
func (m *Model) ScrollToTop() { m.ScrollBy(-m.offset) }

// ScrollToBottom jumps to the end of the content.
func (m *Model) ScrollToBottom() { m.ScrollBy(m.maxOffset() - m.offset) }

// AtBottom reports whether the viewport shows the end of the content.
func (m *Model) AtBottom() bool { return m.offset >= m.maxOffset() }

// ScrollToIndex scrolls so row index starts at the top of the viewport. For
// smooth scrolls it returns the command that drives the animation.
func (m *Model) ScrollToIndex(index int, behavior vscroll.ScrollBehavior) tea.Cmd {
	m.strategy.ScrollToIndex(index, behavior)
	if m.animating {
		return m.animTick()
	}
	return nil
}

func (m *Model) animTick() tea.Cmd {
	seq := m.animSeq
	return tea.Tick(animInterval, func(time.Time) tea.Msg { return animTickMsg{seq: seq} })
}

// stepAnimation moves a third of the remaining distance, at least one line.
func (m *Model) stepAnimation() tea.Cmd {
	if !m.animating {
		return nil
	}
	// Reconciliation can shrink the content while the animation runs.
	m.animTarget = m.clamp(m.animTarget)
	dist := m.animTarget - m.offset
	if dist == 0 {
		m.animating = false
		return nil
	}
	step := dist / 3
	if step == 0 {
		step = dist
	}
	m.setOffset(m.clamp(m.offset + step))
	m.animTarget = m.clamp(m.animTarget)
	if m.offset == m.animTarget {
		m.animating = false
		return nil
	}
	return m.animTick()
}

// setOffset moves the viewport and notifies the strategy. The strategy may
// reconcile measured heights and shrink the total, so the offset is clamped
// again until it settles.
func (m *Model) setOffset(offset int) {
	if offset == m.offset {
		return
	}
	m.offset = offset
	m.strategy.OnContentScrolled()
	for c := m.clamp(m.offset); c != m.offset; c = m.clamp(m.offset) {
		m.offset = c
		m.strategy.OnContentScrolled()
	}
}

func (m *Model) maxOffset() int { return max(m.totalSize-m.height, 0) }

func (m *Model) clamp(offset int) int { return min(max(offset, 0), m.maxOffset()) }

func (m *Model) clampOffset() {
	if c := m.clamp(m.offset); c != m.offset {
		m.setOffset(c)
	}
}

// ---------------------------------------------------------------------------
// Update (bubbletea)
// ---------------------------------------------------------------------------

// Update handles mouse wheel events and smooth-scroll ticks. Callers forward
// whichever messages they want the list to respond to.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.MouseWheelMsg:
		switch msg.Button {
		case tea.MouseWheelUp:
			m.ScrollBy(-m.wheelStep)
		case tea.MouseWheelDown:
			m.ScrollBy(m.wheelStep)
		}
	case animTickMsg:
		if msg.seq != m.animSeq {
			return m, nil
		}
		return m, m.stepAnimation()
	}
	return m, nil
}

// ---------------------------------------------------------------------------
// View
// ---------------------------------------------------------------------------

// View renders the mounted rows that intersect the viewport plus the
// scrollbar column. Rows outside the rendered range are never rendered.
func (m *Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	lines := make([]string, m.height)

	pos := m.contentOffset
	for i := m.rendered.Start; i < m.rendered.End && pos < m.offset+m.height; i++ {
		cr := m.renderRow(m.items[i])
		rowLines := strings.Split(cr.content, "\n")
		for _, line := range rowLines {
			if y := pos - m.offset; y >= 0 && y < m.height {
				lines[y] = line
			}
			pos++
		}
	}

	bar := common.ScrollbarRows(m.height, m.totalSize, m.offset)
	cw := m.cardWidth()
	for y := range lines {
		lines[y] = padRight(lines[y], cw)
		if bar != nil {
			lines[y] += bar[y]
		}
	}
	return strings.Join(lines, "\n")
}

// ---------------------------------------------------------------------------
// Row cache
// ---------------------------------------------------------------------------

func (m *Model) renderRow(item vscroll.Item) cachedRow {
	id := item.ID()
	rec, _ := m.strategy.Heights().Lookup(id)
	measured := rec.Source == vscroll.Actual
	width := m.cardWidth()

	if cr, ok := m.cache[id]; ok && cr.width == width && cr.text == item.Text() && cr.measured == measured {
		return cr
	}
	content := strings.TrimSuffix(m.renderer.Render(item, width, measured), "\n")
	// The trailing separator line is part of the row's height.
	content += "\n"
	cr := cachedRow{
		content:  content,
		height:   row.Height(content),
		width:    width,
		text:     item.Text(),
		measured: measured,
	}
	m.cache[id] = cr
	return cr
}

// pruneCache drops renders for rows far outside the mounted range once the
// cache has grown well past it.
func (m *Model) pruneCache() {
	keep := 4*m.rendered.Len() + 64
	if len(m.cache) <= keep {
		return
	}
	lo := max(m.rendered.Start-m.rendered.Len(), 0)
	hi := min(m.rendered.End+m.rendered.Len(), len(m.items))
	live := make(map[string]struct{}, hi-lo)
	for i := lo; i < hi; i++ {
		live[m.items[i].ID()] = struct{}{}
	}
	for id := range m.cache {
		if _, ok := live[id]; !ok {
			delete(m.cache, id)
		}
	}
}

func padRight(s string, width int) string {
	if w := ansi.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
