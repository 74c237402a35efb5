package main

import (
	"encoding/json"
	"fmt"

	"github.com/miosa/osa-vscroll/vscroll"
)

// remoteViewport stands in for the host's viewport. Reads come from the
// snapshot of the current call; writes are recorded as pushes.
type remoteViewport struct {
	strategy *vscroll.Strategy
	snap     Snapshot
	rendered vscroll.Range
	pushes   Pushes
}

func (v *remoteViewport) load(s Snapshot) {
	v.snap = s
	if s.RenderedRange != nil {
		v.rendered = vscroll.Range{Start: s.RenderedRange.Start, End: s.RenderedRange.End}
	}
	v.pushes = Pushes{}
}

func (v *remoteViewport) MeasureScrollOffset() int     { return v.snap.ScrollOffset }
func (v *remoteViewport) ViewportSize() int            { return v.snap.ViewportSize }
func (v *remoteViewport) DataLength() int              { return v.snap.DataLength }
func (v *remoteViewport) RenderedRange() vscroll.Range { return v.rendered }

func (v *remoteViewport) SetRenderedRange(r vscroll.Range) {
	v.rendered = r
	v.pushes.RenderedRange = toRangeJSON(r)
}

func (v *remoteViewport) SetRenderedContentOffset(offset int) {
	v.pushes.ContentOffset = &offset
}

func (v *remoteViewport) SetTotalContentSize(size int) {
	v.pushes.TotalSize = append(v.pushes.TotalSize, size)
}

func (v *remoteViewport) ScrollToOffset(offset int, behavior vscroll.ScrollBehavior) {
	v.pushes.ScrollTo = append(v.pushes.ScrollTo, ScrollTo{Offset: offset, Behavior: behavior.String()})
}

// CheckViewportSize re-runs the data-length pass against the snapshot, the
// way a browser viewport re-measures and notifies its strategy.
func (v *remoteViewport) CheckViewportSize() {
	v.pushes.CheckViewportSize = true
	v.strategy.OnDataLengthChanged()
}

func (v *remoteViewport) MountedRows() []vscroll.MountedRow {
	rows := make([]vscroll.MountedRow, len(v.snap.Mounted))
	for i, m := range v.snap.Mounted {
		rows[i] = vscroll.MountedRow{ID: m.ID, Height: m.Height}
	}
	return rows
}

// server owns one strategy and the viewport proxy it is attached to.
type server struct {
	strategy  *vscroll.Strategy
	predictor vscroll.HeightPredictor
	vp        *remoteViewport
}

func newServer(p vscroll.HeightPredictor, opts ...vscroll.Option) *server {
	st := vscroll.New(append([]vscroll.Option{vscroll.WithPredictor(p)}, opts...)...)
	vp := &remoteViewport{strategy: st}
	st.OnScrolledIndexChange(func(i int) {
		vp.pushes.ScrolledIndex = append(vp.pushes.ScrolledIndex, i)
	})
	return &server{strategy: st, predictor: p, vp: vp}
}

func (s *server) handleRequest(req Request) Response {
	switch req.Method {
	case "ping":
		return Response{ID: req.ID, Result: "pong"}
	case "update_items":
		return s.handleUpdateItems(req.ID, req.Params)
	case "attach":
		return s.viewportEvent(req.ID, req.Params, func() { s.strategy.Attach(s.vp) })
	case "detach":
		s.strategy.Detach()
		return Response{ID: req.ID, Result: Pushes{}}
	case "scrolled":
		return s.viewportEvent(req.ID, req.Params, s.strategy.OnContentScrolled)
	case "data_length_changed":
		return s.viewportEvent(req.ID, req.Params, s.strategy.OnDataLengthChanged)
	case "content_rendered":
		return s.viewportEvent(req.ID, req.Params, s.strategy.OnContentRendered)
	case "rendered_offset_changed":
		return s.viewportEvent(req.ID, req.Params, s.strategy.OnRenderedOffsetChanged)
	case "scroll_to_index":
		return s.handleScrollToIndex(req.ID, req.Params)
	case "predict":
		return s.handlePredict(req.ID, req.Params)
	case "stats":
		return s.handleStats(req.ID)
	default:
		return errorResponse(req.ID, codeUnknownMethod, fmt.Sprintf("unknown method: %s", req.Method))
	}
}

func decode(params json.RawMessage, into any) error {
	if len(params) == 0 {
		return nil
	}
	if err := json.Unmarshal(params, into); err != nil {
		return fmt.Errorf("invalid params: %w", err)
	}
	return nil
}

// viewportEvent loads the snapshot, runs fn and reports the pushes.
func (s *server) viewportEvent(id string, params json.RawMessage, fn func()) Response {
	var p SnapshotParams
	if err := decode(params, &p); err != nil {
		return errorResponse(id, codeBadParams, err.Error())
	}
	s.vp.load(p.Viewport)
	fn()
	return Response{ID: id, Result: s.vp.pushes}
}

func (s *server) handleUpdateItems(id string, params json.RawMessage) Response {
	var p UpdateItemsParams
	if err := decode(params, &p); err != nil {
		return errorResponse(id, codeBadParams, err.Error())
	}
	items := make([]vscroll.Item, len(p.Items))
	for i, r := range p.Items {
		items[i] = r
	}
	if p.Viewport.DataLength == 0 {
		p.Viewport.DataLength = len(items)
	}
	s.vp.load(p.Viewport)

	changed := true
	if p.Force {
		s.strategy.ForceUpdateItems(items)
	} else {
		changed = s.strategy.UpdateItems(items)
	}
	return Response{ID: id, Result: UpdateItemsResult{Changed: changed, Pushes: s.vp.pushes}}
}

func (s *server) handleScrollToIndex(id string, params json.RawMessage) Response {
	var p ScrollToIndexParams
	if err := decode(params, &p); err != nil {
		return errorResponse(id, codeBadParams, err.Error())
	}
	behavior := vscroll.Instant
	switch p.Behavior {
	case "", "instant", "auto":
	case "smooth":
		behavior = vscroll.Smooth
	default:
		return errorResponse(id, codeBadParams, fmt.Sprintf("invalid behavior: %q", p.Behavior))
	}
	s.vp.load(p.Viewport)
	s.strategy.ScrollToIndex(p.Index, behavior)
	return Response{ID: id, Result: s.vp.pushes}
}

func (s *server) handlePredict(id string, params json.RawMessage) Response {
	var p PredictParams
	if err := decode(params, &p); err != nil {
		return errorResponse(id, codeBadParams, err.Error())
	}
	heights := make([]int, len(p.Items))
	for i, r := range p.Items {
		heights[i] = s.predictor.Predict(r)
	}
	return Response{ID: id, Result: PredictResult{Heights: heights}}
}

func (s *server) handleStats(id string) Response {
	predicted, actual := s.strategy.Heights().Counts()
	pad := s.strategy.Padding()
	return Response{ID: id, Result: StatsResult{
		Attached:    s.strategy.Attached(),
		Items:       len(s.strategy.Items()),
		Predicted:   predicted,
		Actual:      actual,
		TotalHeight: s.strategy.TotalHeight(),
		Rendered:    toRangeJSON(s.vp.rendered),
		PadAbove:    pad.Above,
		PadBelow:    pad.Below,
	}}
}
