package vscroll

import "log/slog"

// ChangeDetection decides when UpdateItems replaces the tracked list.
type ChangeDetection int

const (
	// ByLength replaces the list only when its length changed. In-place
	// edits that keep the length are dropped; use ForceUpdateItems for those.
	ByLength ChangeDetection = iota
	// ByContent replaces the list when any id or text differs.
	ByContent
	// Always replaces the list on every call.
	Always
)

func (c ChangeDetection) String() string {
	switch c {
	case ByContent:
		return "content"
	case Always:
		return "always"
	default:
		return "length"
	}
}

// ParseChangeDetection maps a config string to a ChangeDetection. Unknown
// values fall back to ByLength.
func ParseChangeDetection(s string) ChangeDetection {
	switch s {
	case "content":
		return ByContent
	case "always":
		return Always
	default:
		return ByLength
	}
}

// Option is a functional option for New.
type Option func(*Strategy)

// WithPredictor sets the predictor used for rows that have not been measured.
func WithPredictor(p HeightPredictor) Option {
	return func(s *Strategy) {
		if p != nil {
			s.predictor = p
		}
	}
}

// WithPadding sets how many extra rows are rendered above and below the
// viewport.
func WithPadding(above, below int) Option {
	return func(s *Strategy) {
		s.pad = Padding{Above: max(above, 0), Below: max(below, 0)}
	}
}

// WithChangeDetection sets how UpdateItems detects a changed list.
func WithChangeDetection(c ChangeDetection) Option {
	return func(s *Strategy) { s.detect = c }
}

// WithEviction drops cached heights for ids that have been missing from the
// list for n consecutive range recomputes. n <= 0 disables eviction.
func WithEviction(n int) Option {
	return func(s *Strategy) { s.evictAfter = n }
}

// WithLogger sets the logger used by the strategy and its height cache.
func WithLogger(l *slog.Logger) Option {
	return func(s *Strategy) {
		if l != nil {
			s.log = l
		}
	}
}

// Strategy is the virtual-scroll orchestrator. It tracks the current list,
// owns the height cache, and pushes the rendered range, content offset and
// total size to the attached viewport.
//
// The zero value is not usable; construct with New.
type Strategy struct {
	items     []Item
	heights   *HeightCache
	predictor HeightPredictor

	viewport Viewport
	rows     RowLister

	pad        Padding
	detect     ChangeDetection
	evictAfter int

	// Distinct-until-changed scrolled index notification.
	lastIdx   int
	emitted   bool
	listeners map[int]func(int)
	nextID    int

	log *slog.Logger
}

// New constructs a detached Strategy.
func New(opts ...Option) *Strategy {
	s := &Strategy{
		predictor: DefaultPredictor(),
		pad:       Padding{Above: 3, Below: 3},
		listeners: make(map[int]func(int)),
		log:       logger,
	}
	for _, o := range opts {
		o(s)
	}
	s.heights = NewHeightCache(s.predictor)
	s.heights.log = s.log
	return s
}

// ---------------------------------------------------------------------------
// Lifecycle
// ---------------------------------------------------------------------------

// Attach binds the strategy to v and immediately pushes the total content
// size and an initial rendered range.
func (s *Strategy) Attach(v Viewport) {
	s.viewport = v
	s.rows, _ = v.(RowLister)
	s.log.Debug("attached", "items", len(s.items), "reconcile", s.rows != nil)

	s.viewport.SetTotalContentSize(s.ranges().TotalHeight())
	s.updateRenderedRange()
}

// Detach clears the viewport binding. Nothing is pushed until the next
// Attach.
func (s *Strategy) Detach() {
	s.viewport = nil
	s.rows = nil
	s.log.Debug("detached")
}

// Attached reports whether a viewport is bound.
func (s *Strategy) Attached() bool { return s.viewport != nil }

// ---------------------------------------------------------------------------
// Host events
// ---------------------------------------------------------------------------

// OnContentScrolled recomputes the rendered range. It is the hot path, called
// on every scroll tick.
func (s *Strategy) OnContentScrolled() {
	if s.viewport == nil {
		return
	}
	s.updateRenderedRange()
}

// OnDataLengthChanged recomputes the total size and rendered range after the
// host's list grew or shrank.
func (s *Strategy) OnDataLengthChanged() {
	if s.viewport == nil {
		return
	}
	s.viewport.SetTotalContentSize(s.ranges().TotalHeight())
	s.updateRenderedRange()
}

// OnContentRendered is reserved for layout correction after the host has
// rendered a new range. It does nothing.
func (s *Strategy) OnContentRendered() {}

// OnRenderedOffsetChanged is reserved for layout correction after the host
// moved the rendered content. It does nothing.
func (s *Strategy) OnRenderedOffsetChanged() {}

// ScrollToIndex asks the viewport to scroll to the offset where item index
// begins. Negative indices are treated as 0.
func (s *Strategy) ScrollToIndex(index int, behavior ScrollBehavior) {
	if s.viewport == nil {
		return
	}
	offset := s.ranges().OffsetOf(index)
	s.log.Debug("scroll to index", "index", index, "offset", offset, "behavior", behavior)
	s.viewport.ScrollToOffset(offset, behavior)
}

// ---------------------------------------------------------------------------
// Items
// ---------------------------------------------------------------------------

// UpdateItems replaces the tracked list when the configured change detection
// says it changed, and reports whether it did. With the default ByLength
// detection a list of the same length is ignored even if its content
// differs. When a replacement happens and a viewport is attached, the
// viewport is asked to re-check its size.
func (s *Strategy) UpdateItems(items []Item) bool {
	if !s.changed(items) {
		return false
	}
	s.replace(items)
	return true
}

// ForceUpdateItems replaces the tracked list regardless of change detection.
func (s *Strategy) ForceUpdateItems(items []Item) {
	s.replace(items)
}

func (s *Strategy) replace(items []Item) {
	s.log.Debug("items updated", "old", len(s.items), "new", len(items))
	s.items = items
	if s.viewport != nil {
		s.viewport.CheckViewportSize()
	}
}

func (s *Strategy) changed(items []Item) bool {
	switch s.detect {
	case Always:
		return true
	case ByContent:
		if len(items) != len(s.items) {
			return true
		}
		for i := range items {
			if items[i].ID() != s.items[i].ID() || items[i].Text() != s.items[i].Text() {
				return true
			}
		}
		return false
	default:
		return len(items) != len(s.items)
	}
}

// Items returns the tracked list.
func (s *Strategy) Items() []Item { return s.items }

// Heights returns the strategy's height cache.
func (s *Strategy) Heights() *HeightCache { return s.heights }

// TotalHeight returns the summed height of the tracked list.
func (s *Strategy) TotalHeight() int { return s.ranges().TotalHeight() }

// OffsetOf returns the offset at which tracked item idx begins.
func (s *Strategy) OffsetOf(idx int) int { return s.ranges().OffsetOf(idx) }

// Padding returns the configured padding.
func (s *Strategy) Padding() Padding { return s.pad }

// ---------------------------------------------------------------------------
// Scrolled index notification
// ---------------------------------------------------------------------------

// OnScrolledIndexChange registers fn to be called with the index of the item
// at the scroll offset, each time it differs from the previously emitted
// index. Calls are synchronous, from inside the host event. The returned
// function unregisters fn.
func (s *Strategy) OnScrolledIndexChange(fn func(int)) (cancel func()) {
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	return func() { delete(s.listeners, id) }
}

func (s *Strategy) emitScrolledIndex(idx int) {
	if s.emitted && idx == s.lastIdx {
		return
	}
	s.emitted = true
	s.lastIdx = idx
	for _, fn := range s.listeners {
		fn(idx)
	}
}

// ---------------------------------------------------------------------------
// Range recompute
// ---------------------------------------------------------------------------

func (s *Strategy) ranges() Ranges {
	return Ranges{Items: s.items, Heights: s.heights}
}

// updateRenderedRange reads the scroll position from the viewport, pushes
// the new rendered range and content offset, emits the scrolled index and
// then reconciles heights of the mounted rows.
func (s *Strategy) updateRenderedRange() {
	v := s.viewport
	scrollOffset := v.MeasureScrollOffset()
	viewportSize := v.ViewportSize()
	dataLength := v.DataLength()
	prev := v.RenderedRange()

	r := s.ranges()
	next, scrollIdx := r.VisibleRange(scrollOffset, viewportSize, dataLength, s.pad)

	v.SetRenderedRange(next)
	v.SetRenderedContentOffset(r.OffsetOf(next.Start))
	if next != prev {
		s.log.Debug("rendered range", "from", prev, "to", next, "offset", scrollOffset)
	}
	s.emitScrolledIndex(scrollIdx)

	s.reconcile()
}

// reconcile upgrades predicted heights of mounted rows to their measured
// heights and pushes a corrected total size when anything changed. A
// scrolled-index listener may already have detached the strategy.
func (s *Strategy) reconcile() {
	if s.viewport == nil {
		return
	}
	if s.rows != nil {
		changed := false
		for _, row := range s.rows.MountedRows() {
			if s.heights.RecordActual(row.ID, row.Height) {
				changed = true
			}
		}
		if changed {
			total := s.ranges().TotalHeight()
			s.log.Debug("total size corrected", "total", total)
			s.viewport.SetTotalContentSize(total)
		}
	}
	if s.evictAfter > 0 {
		s.heights.Sweep(s.items, s.evictAfter)
	}
}
