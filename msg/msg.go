// Package msg defines the tea.Msg types dispatched within the vscroll TUI.
// It has no upstream imports beyond the row source to avoid import cycles.
package msg

import "github.com/miosa/osa-vscroll/source"

// RowsLoaded carries the result of an asynchronous source load.
type RowsLoaded struct {
	Spec source.Spec
	Rows []source.Row
	Err  error
}

// ScrolledIndexChanged reports a new index at the top of the viewport.
type ScrolledIndexChanged struct {
	Index int
}
