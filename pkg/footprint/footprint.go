// Package footprint estimates the rendered size of map text.
//
// The placement engine never computes font metrics; it consumes
// pre-measured (width, height) footprints through the [Estimator]
// interface. Callers with access to a real text shaper can plug in exact
// measurements. [Heuristic] is the production default: a character-count
// approximation that tracks the renderer closely enough for collision
// purposes at print sizes.
package footprint

import "unicode/utf8"

// Style carries the text attributes that influence estimated size.
type Style struct {
	// Size is the font size in output pixels.
	Size float64 `json:"size"`

	// Tracking is extra letter spacing in pixels per character.
	// Region labels use wide tracking; most labels use none.
	Tracking float64 `json:"tracking,omitempty"`
}

// Estimator converts text plus a style into an estimated footprint.
// Implementations must be pure: the same inputs always produce the same
// size, or layout determinism breaks.
type Estimator interface {
	// Estimate returns the footprint (width, height) of text in output
	// pixels. Empty text yields a zero-width, full-height footprint.
	Estimate(text string, style Style) (w, h float64)
}

// Width and height factors relative to font size. Validated against
// rendered output for mixed-case Latin text at typical map sizes.
const (
	widthFactor  = 0.60
	heightFactor = 1.20
)

// Heuristic estimates footprints from character counts. It costs each
// rune widthFactor×size plus tracking, and heightFactor×size vertically.
type Heuristic struct{}

// Estimate implements [Estimator].
func (Heuristic) Estimate(text string, style Style) (w, h float64) {
	n := utf8.RuneCountInString(text)
	w = float64(n) * (style.Size*widthFactor + style.Tracking)
	h = style.Size * heightFactor
	return w, h
}

// Fixed returns the same footprint for every input. Useful in tests where
// geometry must be exact.
type Fixed struct {
	W, H float64
}

// Estimate implements [Estimator].
func (f Fixed) Estimate(string, Style) (w, h float64) {
	return f.W, f.H
}

// Ensure implementations satisfy Estimator.
var (
	_ Estimator = Heuristic{}
	_ Estimator = Fixed{}
)
