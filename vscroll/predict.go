package vscroll

import (
	"io"
	"log/slog"
	"os"
	"unicode/utf8"

	"github.com/charmbracelet/x/ansi"
)

// logLevel gates debug logging for the package logger.
// Default is LevelInfo, which suppresses Debug messages.
var logLevel = new(slog.LevelVar)

// logger is used by strategies and caches created without WithLogger.
var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

// SetVerbose enables or disables debug logging for the package logger.
func SetVerbose(v bool) {
	if v {
		logLevel.Set(slog.LevelDebug)
	} else {
		logLevel.Set(slog.LevelInfo)
	}
}

// SetLogOutput redirects the package logger to w, keeping its level.
func SetLogOutput(w io.Writer) {
	logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: logLevel}))
}

// HeightPredictor estimates a row's height before it has ever been rendered.
// Implementations must be pure: same item, same answer, always > 0.
type HeightPredictor interface {
	Predict(item Item) int
}

// PredictorFunc adapts a plain function to HeightPredictor.
type PredictorFunc func(item Item) int

// Predict implements HeightPredictor.
func (f PredictorFunc) Predict(item Item) int { return f(item) }

// Predictor models a rendered row as fixed chrome plus a wrapped text body.
//
//	height = Padding + Title + Margin + Border + rows*RowHeight
//	rows   = max(1, ceil(Length(text) / CharsPerRow))
type Predictor struct {
	Padding int
	Title   int
	Margin  int
	Border  int

	RowHeight   int
	CharsPerRow int

	// Length measures the text. Nil means rune count.
	Length func(string) int
}

// DefaultPredictor returns the constants of a browser card: 3px padding top
// and bottom, an 18px title, 18px paragraph margins, a 1px border and 18px
// text rows of about 55 characters.
func DefaultPredictor() Predictor {
	return Predictor{
		Padding:     3 * 2,
		Title:       18,
		Margin:      18 * 2,
		Border:      1,
		RowHeight:   18,
		CharsPerRow: 55,
	}
}

// TerminalPredictor returns line-based constants for a card drawn with a
// one-cell border and one-cell horizontal padding inside a column of the
// given width. Text length is measured in display cells.
func TerminalPredictor(width int) Predictor {
	return Predictor{
		Title:       1,
		Margin:      1,
		Border:      2,
		RowHeight:   1,
		CharsPerRow: width - 4,
		Length:      ansi.StringWidth,
	}
}

// Predict implements HeightPredictor.
func (p Predictor) Predict(item Item) int {
	text := item.Text()
	n := p.length(text)

	perRow := max(p.CharsPerRow, 1)
	rows := max((n+perRow-1)/perRow, 1)
	body := rows * max(p.RowHeight, 1)

	total := max(p.chrome()+body, 1)
	logger.Debug("predicted height", "id", item.ID(), "len", n, "body", body, "total", total)
	return total
}

func (p Predictor) chrome() int {
	return max(p.Padding, 0) + max(p.Title, 0) + max(p.Margin, 0) + max(p.Border, 0)
}

func (p Predictor) length(s string) int {
	if p.Length != nil {
		return p.Length(s)
	}
	return utf8.RuneCountInString(s)
}
