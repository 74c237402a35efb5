// Package common holds small rendering helpers shared by the list and app
// views.
package common

import "github.com/miosa/osa-vscroll/style"

const (
	scrollTrackChar = "│"
	scrollThumbChar = "█"
)

// ThumbSpan returns the first row and the height of the scrollbar thumb in a
// track of viewportHeight rows. ok is false when the content fits and no
// scrollbar is needed.
func ThumbSpan(viewportHeight, contentHeight, offset int) (top, size int, ok bool) {
	if viewportHeight <= 0 || contentHeight <= viewportHeight {
		return 0, 0, false
	}
	size = min(max(viewportHeight*viewportHeight/contentHeight, 1), viewportHeight)

	scrollable := contentHeight - viewportHeight
	offset = min(max(offset, 0), scrollable)
	top = offset * (viewportHeight - size) / scrollable
	top = min(max(top, 0), viewportHeight-size)
	return top, size, true
}

// ScrollbarRows renders a vertical scrollbar as one styled cell per row. It
// returns nil when the content fits within the viewport.
func ScrollbarRows(viewportHeight, contentHeight, offset int) []string {
	top, size, ok := ThumbSpan(viewportHeight, contentHeight, offset)
	if !ok {
		return nil
	}
	rows := make([]string, viewportHeight)
	for i := range rows {
		if i >= top && i < top+size {
			rows[i] = style.ScrollbarThumb.Render(scrollThumbChar)
		} else {
			rows[i] = style.ScrollbarTrack.Render(scrollTrackChar)
		}
	}
	return rows
}
