package vscroll

// ---------------------------------------------------------------------------
// Test doubles
// ---------------------------------------------------------------------------

type testItem struct {
	id   string
	text string
}

func (t testItem) ID() string   { return t.id }
func (t testItem) Text() string { return t.text }

// fixedHeights predicts from a table keyed by id, falling back to 1.
type fixedHeights map[string]int

func (f fixedHeights) Predict(it Item) int {
	if h, ok := f[it.ID()]; ok {
		return h
	}
	return 1
}

func uniform(n, h int) ([]Item, fixedHeights) {
	items := make([]Item, n)
	heights := make(fixedHeights, n)
	for i := range items {
		id := string(rune('a'+i%26)) + string(rune('0'+i/26))
		items[i] = testItem{id: id, text: id}
		heights[id] = h
	}
	return items, heights
}

// fakeViewport records every push the strategy makes.
type fakeViewport struct {
	scrollOffset int
	size         int
	dataLength   int
	rendered     Range

	contentOffset int
	totalSizes    []int
	scrolledTo    []int
	behaviors     []ScrollBehavior
	checks        int

	// mounted maps id -> measured height for ids inside rendered.
	measured map[string]int
	items    []Item

	// onCheck runs inside CheckViewportSize.
	onCheck func()
}

func (f *fakeViewport) MeasureScrollOffset() int { return f.scrollOffset }
func (f *fakeViewport) ViewportSize() int        { return f.size }
func (f *fakeViewport) DataLength() int          { return f.dataLength }
func (f *fakeViewport) RenderedRange() Range     { return f.rendered }

func (f *fakeViewport) SetRenderedRange(r Range)       { f.rendered = r }
func (f *fakeViewport) SetRenderedContentOffset(o int) { f.contentOffset = o }
func (f *fakeViewport) SetTotalContentSize(s int)      { f.totalSizes = append(f.totalSizes, s) }

func (f *fakeViewport) ScrollToOffset(o int, b ScrollBehavior) {
	f.scrolledTo = append(f.scrolledTo, o)
	f.behaviors = append(f.behaviors, b)
}

func (f *fakeViewport) CheckViewportSize() {
	f.checks++
	if f.onCheck != nil {
		f.onCheck()
	}
}

func (f *fakeViewport) lastTotal() int {
	if len(f.totalSizes) == 0 {
		return -1
	}
	return f.totalSizes[len(f.totalSizes)-1]
}

// measuringViewport also reports mounted rows.
type measuringViewport struct {
	fakeViewport
}

func (m *measuringViewport) MountedRows() []MountedRow {
	var rows []MountedRow
	for i := m.rendered.Start; i < m.rendered.End && i < len(m.items); i++ {
		id := m.items[i].ID()
		if h, ok := m.measured[id]; ok {
			rows = append(rows, MountedRow{ID: id, Height: h})
		}
	}
	return rows
}
