// Package vscroll is a virtual-scroll strategy for long lists of
// variable-height rows.
//
// The strategy decides which slice of the list a host should materialize for
// the current scroll position. Row heights start out predicted from content
// length and are replaced by measured heights once a row has been mounted, at
// which point the host's total scrollable size is corrected.
//
// Key properties:
//   - The strategy never paints and never owns layout. Everything it knows
//     about the host comes through the Viewport interface.
//   - Every operation is synchronous and runs to completion inside the host
//     event that triggered it. There is no internal locking; a Strategy must
//     be owned by a single goroutine.
//   - Calls made while detached are silent no-ops.
package vscroll

import "fmt"

// Item is a row the strategy can size. ID must be unique within a list and
// stable for the lifetime of the row's content; it is the height cache key.
type Item interface {
	ID() string
	Text() string
}

// Range is a half-open index interval [Start, End) into the current list.
type Range struct {
	Start int
	End   int
}

// Len returns the number of indices in the range.
func (r Range) Len() int {
	if r.End < r.Start {
		return 0
	}
	return r.End - r.Start
}

// Contains reports whether i falls inside the range.
func (r Range) Contains(i int) bool { return i >= r.Start && i < r.End }

func (r Range) String() string { return fmt.Sprintf("[%d,%d)", r.Start, r.End) }

// ScrollBehavior is passed through to the host unchanged.
type ScrollBehavior int

const (
	Instant ScrollBehavior = iota
	Smooth
)

func (b ScrollBehavior) String() string {
	switch b {
	case Smooth:
		return "smooth"
	default:
		return "instant"
	}
}

// Viewport is the host scroll container the strategy drives. Sizes and
// offsets are in the host's unit (pixels for a browser, lines for a
// terminal).
type Viewport interface {
	// MeasureScrollOffset returns the current scroll offset from the top.
	MeasureScrollOffset() int
	// ViewportSize returns the visible extent of the scroll container.
	ViewportSize() int
	// DataLength returns the number of rows the host currently has.
	DataLength() int
	// RenderedRange returns the range the host currently has mounted.
	RenderedRange() Range

	SetRenderedRange(r Range)
	SetRenderedContentOffset(offset int)
	SetTotalContentSize(size int)
	ScrollToOffset(offset int, behavior ScrollBehavior)

	// CheckViewportSize asks the host to re-measure itself. Hosts are
	// expected to follow up with OnDataLengthChanged.
	CheckViewportSize()
}

// MountedRow is a row the host has materialized, with its measured height.
type MountedRow struct {
	ID     string
	Height int
}

// RowLister is implemented by viewports that can report the rows they
// currently have mounted. Viewports that don't implement it never have their
// predicted heights corrected.
type RowLister interface {
	MountedRows() []MountedRow
}
