// Command vscroll-sidecar drives a virtual scroll strategy for an external
// host over line-delimited JSON-RPC on stdin/stdout.
//
// The host owns the real viewport. Every call that can make the strategy
// read the viewport carries a snapshot of it; the response lists what the
// strategy pushed back while handling the call.
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/miosa/osa-vscroll/source"
	"github.com/miosa/osa-vscroll/vscroll"
)

// Request is a JSON-RPC request read from stdin.
type Request struct {
	ID     string          `json:"id"`
	Method string          `json:"method"`
	Params json.RawMessage `json:"params,omitempty"`
}

// Response is a JSON-RPC response written to stdout.
type Response struct {
	ID     string      `json:"id"`
	Result interface{} `json:"result,omitempty"`
	Error  *RPCError   `json:"error,omitempty"`
}

// RPCError represents a JSON-RPC error object.
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

const (
	codeParse         = -32700
	codeUnknownMethod = -32601
	codeBadParams     = -32602
)

var stdout = bufio.NewWriter(os.Stdout)

func writeResponse(resp Response) {
	data, err := json.Marshal(resp)
	if err != nil {
		log.Printf("failed to marshal response: %v", err)
		return
	}
	fmt.Fprintf(stdout, "%s\n", data)
	stdout.Flush()
}

func errorResponse(id string, code int, message string) Response {
	return Response{
		ID:    id,
		Error: &RPCError{Code: code, Message: message},
	}
}

func main() {
	padAbove := flag.Int("pad-above", 3, "Rows rendered above the viewport")
	padBelow := flag.Int("pad-below", 3, "Rows rendered below the viewport")
	detect := flag.String("change-detection", "length", "Item change detection: length, content or always")
	evictAfter := flag.Int("evict-after", 0, "Drop cached heights of rows absent for this many passes (0 = never)")
	verbose := flag.Bool("verbose", false, "Log strategy decisions to stderr")
	flag.Parse()

	// Direct all library logging to stderr; stdout is protocol-only.
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ltime | log.Lshortfile)
	vscroll.SetVerbose(*verbose)

	opts := []vscroll.Option{
		vscroll.WithPadding(*padAbove, *padBelow),
		vscroll.WithChangeDetection(vscroll.ParseChangeDetection(*detect)),
	}
	if *evictAfter > 0 {
		opts = append(opts, vscroll.WithEviction(*evictAfter))
	}
	s := newServer(vscroll.DefaultPredictor(), opts...)

	log.Println("vscroll sidecar ready")

	scanner := bufio.NewScanner(os.Stdin)
	// 10MB buffer; update_items carries the whole list.
	scanner.Buffer(make([]byte, 0), 10*1024*1024)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req Request
		if err := json.Unmarshal(line, &req); err != nil {
			log.Printf("failed to parse request: %v", err)
			writeResponse(errorResponse("", codeParse, fmt.Sprintf("parse error: %v", err)))
			continue
		}

		writeResponse(s.handleRequest(req))
	}

	if err := scanner.Err(); err != nil {
		log.Fatalf("stdin scanner error: %v", err)
	}

	log.Println("stdin closed, exiting")
}

// -- Params and results -------------------------------------------------------

// RangeJSON is a half-open [start, end) index range.
type RangeJSON struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

func toRangeJSON(r vscroll.Range) *RangeJSON { return &RangeJSON{Start: r.Start, End: r.End} }

// MountedJSON is a mounted row and its measured height.
type MountedJSON struct {
	ID     string `json:"id"`
	Height int    `json:"height"`
}

// Snapshot is the host viewport state at the time of the call.
type Snapshot struct {
	ScrollOffset  int           `json:"scroll_offset"`
	ViewportSize  int           `json:"viewport_size"`
	DataLength    int           `json:"data_length"`
	RenderedRange *RangeJSON    `json:"rendered_range,omitempty"`
	Mounted       []MountedJSON `json:"mounted,omitempty"`
}

// SnapshotParams is the params shape of every viewport event.
type SnapshotParams struct {
	Viewport Snapshot `json:"viewport"`
}

// UpdateItemsParams holds the new list for update_items.
type UpdateItemsParams struct {
	Items    []source.Row `json:"items"`
	Force    bool         `json:"force,omitempty"`
	Viewport Snapshot     `json:"viewport"`
}

// ScrollToIndexParams holds the target for scroll_to_index.
type ScrollToIndexParams struct {
	Index    int      `json:"index"`
	Behavior string   `json:"behavior,omitempty"` // "instant" (default) or "smooth"
	Viewport Snapshot `json:"viewport"`
}

// PredictParams holds the rows to size for predict.
type PredictParams struct {
	Items []source.Row `json:"items"`
}

// ScrollTo is a scroll request made by the strategy.
type ScrollTo struct {
	Offset   int    `json:"offset"`
	Behavior string `json:"behavior"`
}

// Pushes lists everything the strategy pushed to the viewport during a call.
// Total sizes are in push order; a reconciliation pass can add a second one.
type Pushes struct {
	RenderedRange     *RangeJSON `json:"rendered_range,omitempty"`
	ContentOffset     *int       `json:"content_offset,omitempty"`
	TotalSize         []int      `json:"total_size,omitempty"`
	ScrollTo          []ScrollTo `json:"scroll_to,omitempty"`
	ScrolledIndex     []int      `json:"scrolled_index,omitempty"`
	CheckViewportSize bool       `json:"check_viewport_size,omitempty"`
}

// UpdateItemsResult is returned by update_items.
type UpdateItemsResult struct {
	Changed bool   `json:"changed"`
	Pushes  Pushes `json:"pushes"`
}

// PredictResult is returned by predict.
type PredictResult struct {
	Heights []int `json:"heights"`
}

// StatsResult is returned by stats.
type StatsResult struct {
	Attached    bool       `json:"attached"`
	Items       int        `json:"items"`
	Predicted   int        `json:"predicted"`
	Actual      int        `json:"actual"`
	TotalHeight int        `json:"total_height"`
	Rendered    *RangeJSON `json:"rendered_range"`
	PadAbove    int        `json:"pad_above"`
	PadBelow    int        `json:"pad_below"`
}
