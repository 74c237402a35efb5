package app

// Layout holds computed dimensions for the current frame.
type Layout struct {
	TermWidth    int
	TermHeight   int
	HeaderHeight int // header line + separator
	StatusHeight int
	HelpHeight   int
	ListWidth    int
	ListHeight   int
}

// ComputeLayout splits the terminal into header, list, status bar and help
// line. The list gets whatever height is left, never less than zero.
func ComputeLayout(termW, termH int) Layout {
	l := Layout{
		TermWidth:    termW,
		TermHeight:   termH,
		HeaderHeight: 2,
		StatusHeight: 1,
		HelpHeight:   1,
	}
	l.ListWidth = max(termW, 0)
	l.ListHeight = max(termH-l.HeaderHeight-l.StatusHeight-l.HelpHeight, 0)
	return l
}
