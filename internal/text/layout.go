package text

import (
	"image"
	"image/color"

	"chosenoffset.com/tbrpg/internal/render"
)

// Unlimited reveals the whole text.
const Unlimited = -1

// StopReason records why a layout pass ended.
type StopReason int

const (
	StopEnd         StopReason = iota // All text was placed
	StopRevealLimit                   // The reveal count was reached
	StopRowLimit                      // The next word would fall below the last row
	StopWordTooLong                   // A single word is wider than a row
)

// Placement is one glyph positioned inside a text area.
type Placement struct {
	Char   rune
	Row    int
	Column int
	Src    image.Rectangle // Cell in the font sheet
	Dst    image.Rectangle // Destination in game pixels
}

// Layout is the result of laying out a text.
type Layout struct {
	Glyphs   []Placement
	Revealed int // Characters counted toward the reveal total, including spaces and newlines
	Stop     StopReason
}

// Engine lays out text with a glyph atlas.
type Engine struct {
	atlas *GlyphAtlas
}

// NewEngine creates a layout engine for the given atlas.
func NewEngine(atlas *GlyphAtlas) *Engine {
	return &Engine{atlas: atlas}
}

// Atlas returns the engine's glyph atlas.
func (e *Engine) Atlas() *GlyphAtlas {
	return e.atlas
}

// Capacity returns how many columns and rows of glyphs fit in area. An empty
// or inverted area holds nothing.
func (e *Engine) Capacity(area image.Rectangle) (columns, rows int) {
	if area.Empty() {
		return 0, 0
	}
	gw, gh := e.atlas.GlyphSize()
	return area.Dx() / gw, area.Dy() / gh
}

// LayoutAndReveal word-wraps text inside area and places at most the glyphs
// that fall within the first charsToReveal characters. A negative
// charsToReveal places the whole text.
//
// Spaces and newlines separate words. Spaces count toward the reveal total
// when they are committed between two words on the same row; a newline always
// counts one and forces the next word onto a new row. Characters missing from
// the atlas are dropped before wrapping and take no space.
//
// Layout stops silently when the rows run out. A word wider than a row stops
// layout at that word; glyphs placed before it are kept.
func (e *Engine) LayoutAndReveal(s string, area image.Rectangle, charsToReveal int) Layout {
	rowLength, totalRows := e.Capacity(area)

	var out Layout
	word := make([]rune, 0, rowLength+1)
	charsInRow, row, total := 0, 0, 0

	finish := func(reason StopReason) Layout {
		out.Revealed = total
		out.Stop = reason
		return out
	}

	// The trailing separator flushes the last word
	for _, c := range s + " " {
		if c != ' ' && c != '\n' {
			if e.atlas.Supports(c) {
				word = append(word, c)
			}
			continue
		}

		if len(word) > rowLength {
			return finish(StopWordTooLong)
		}

		space := 0
		if charsInRow > 0 {
			space = 1
		}
		if charsInRow+space+len(word) > rowLength {
			row++
			charsInRow = 0
			space = 0
		}

		if row >= totalRows {
			return finish(StopRowLimit)
		}

		charsInRow += space
		total += space
		for _, wc := range word {
			if charsToReveal >= 0 && total >= charsToReveal {
				return finish(StopRevealLimit)
			}
			out.Glyphs = append(out.Glyphs, e.place(wc, area, row, charsInRow))
			charsInRow++
			total++
		}
		word = word[:0]

		if c == '\n' {
			row++
			charsInRow = 0
			total++
		}
	}

	return finish(StopEnd)
}

// place positions c at the given cell of area.
func (e *Engine) place(c rune, area image.Rectangle, row, column int) Placement {
	gw, gh := e.atlas.GlyphSize()
	src, _ := e.atlas.Lookup(c)
	x := area.Min.X + column*gw
	y := area.Min.Y + row*gh
	return Placement{
		Char:   c,
		Row:    row,
		Column: column,
		Src:    src,
		Dst:    image.Rect(x, y, x+gw, y+gh),
	}
}

// DrawCalls converts the placements into font draw calls with the given tint.
func (l Layout) DrawCalls(tint color.RGBA) []render.DrawCall {
	return l.AppendDrawCalls(nil, tint)
}

// AppendDrawCalls appends the placements as font draw calls to calls.
func (l Layout) AppendDrawCalls(calls []render.DrawCall, tint color.RGBA) []render.DrawCall {
	for _, g := range l.Glyphs {
		calls = append(calls, render.DrawCall{
			Texture: render.TextureFont,
			Src:     g.Src,
			Dst:     g.Dst,
			Tint:    tint,
		})
	}
	return calls
}

// String returns the placed characters in order, without separators.
func (l Layout) String() string {
	runes := make([]rune, len(l.Glyphs))
	for i, g := range l.Glyphs {
		runes[i] = g.Char
	}
	return string(runes)
}
