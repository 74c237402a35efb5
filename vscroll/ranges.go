package vscroll

// Padding is the number of extra rows rendered above and below the rows that
// intersect the viewport.
type Padding struct {
	Above int
	Below int
}

// Ranges maps between indices and offsets over a list, sizing rows through a
// HeightCache. Every call sums heights from scratch, so results always agree
// with the cache's current contents.
type Ranges struct {
	Items   []Item
	Heights *HeightCache
}

// TotalHeight returns the summed height of every item.
func (r Ranges) TotalHeight() int {
	total := 0
	for _, it := range r.Items {
		total += r.Heights.GetOrPredict(it)
	}
	return total
}

// OffsetOf returns the offset at which item idx begins: the summed height of
// the items before it. idx is clamped to [0, len(Items)], so OffsetOf(len)
// equals TotalHeight.
func (r Ranges) OffsetOf(idx int) int {
	idx = min(max(idx, 0), len(r.Items))
	offset := 0
	for _, it := range r.Items[:idx] {
		offset += r.Heights.GetOrPredict(it)
	}
	return offset
}

// IndexAt returns the smallest index whose cumulative height (inclusive)
// reaches offset. An empty list or an offset before all content gives 0; an
// offset past all content gives the last index.
func (r Ranges) IndexAt(offset int) int {
	acc := 0
	for i, it := range r.Items {
		acc += r.Heights.GetOrPredict(it)
		if acc >= offset {
			return i
		}
	}
	return max(len(r.Items)-1, 0)
}

// CountInViewport returns how many consecutive items starting at start are
// needed to fill viewport. It returns 0 when the remaining items are shorter
// than the viewport.
func (r Ranges) CountInViewport(start, viewport int) int {
	start = max(start, 0)
	acc := 0
	for i := start; i < len(r.Items); i++ {
		acc += r.Heights.GetOrPredict(r.Items[i])
		if acc >= viewport {
			return i - start + 1
		}
	}
	return 0
}

// VisibleRange returns the padded range of items to render for the given
// scroll position, together with the index of the item at scrollOffset.
// When the items from that index on don't fill the viewport, the range runs
// to the end of the list.
func (r Ranges) VisibleRange(scrollOffset, viewportSize, dataLength int, pad Padding) (Range, int) {
	scrollIdx := r.IndexAt(scrollOffset)
	count := r.CountInViewport(scrollIdx, viewportSize)
	if count == 0 {
		count = len(r.Items) - scrollIdx
	}

	end := min(dataLength, scrollIdx+count+max(pad.Below, 0))
	end = max(end, 0)
	start := max(0, scrollIdx-max(pad.Above, 0))
	start = min(start, end)
	return Range{Start: start, End: end}, scrollIdx
}
