// Package text lays out fixed-width bitmap text inside rectangular areas,
// with word wrapping and progressive (typewriter) reveal.
package text

import (
	"fmt"
	"image"

	"chosenoffset.com/tbrpg/internal/world/atlas"
)

// Font sheet geometry.
const (
	GlyphWidth  = 8
	GlyphHeight = 8

	FontColumns = 10
	FontRows    = 7

	// Charset lists the font sheet's characters row by row.
	Charset = " !',-.0123456789?ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz:"
)

// GlyphAtlas maps supported characters to their cell in the font sheet.
type GlyphAtlas struct {
	charset     string
	columns     int
	rows        int
	glyphWidth  int
	glyphHeight int
	rects       map[rune]image.Rectangle
}

// NewGlyphAtlas builds an atlas from a charset laid out row-major over a
// columns x rows grid of w x h cells.
func NewGlyphAtlas(charset string, columns, rows, w, h int) (*GlyphAtlas, error) {
	chars := []rune(charset)
	if columns <= 0 || rows <= 0 {
		return nil, fmt.Errorf("invalid glyph grid: %dx%d", columns, rows)
	}
	if len(chars) > columns*rows {
		return nil, fmt.Errorf("charset has %d characters but the grid holds %d", len(chars), columns*rows)
	}
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("invalid glyph dimensions: %dx%d", w, h)
	}

	glyphs := &GlyphAtlas{
		charset:     charset,
		columns:     columns,
		rows:        rows,
		glyphWidth:  w,
		glyphHeight: h,
		rects:       make(map[rune]image.Rectangle, len(chars)),
	}
	for i, c := range chars {
		col, row := i%columns, i/columns
		glyphs.rects[c] = image.Rect(col*w, row*h, (col+1)*w, (row+1)*h)
	}
	return glyphs, nil
}

// DefaultGlyphAtlas returns the atlas for the bundled 8x8 font sheet.
func DefaultGlyphAtlas() *GlyphAtlas {
	glyphs, err := NewGlyphAtlas(Charset, FontColumns, FontRows, GlyphWidth, GlyphHeight)
	if err != nil {
		panic(err)
	}
	return glyphs
}

// FromAtlas builds a glyph atlas from the "glyphs" tile of a font sprite
// atlas. The tile's charset, columns and rows properties describe the grid;
// missing ones fall back to the bundled font.
func FromAtlas(a *atlas.Atlas) (*GlyphAtlas, error) {
	tile, ok := a.GetTile("glyphs")
	if !ok {
		return nil, fmt.Errorf("font atlas %s has no glyphs tile", a.Config.Name)
	}
	return NewGlyphAtlas(
		tile.GetTilePropertyString("charset", Charset),
		tile.GetTilePropertyInt("columns", FontColumns),
		tile.GetTilePropertyInt("rows", FontRows),
		a.Config.TileWidth,
		a.Config.TileHeight,
	)
}

// Lookup returns the source rectangle for c.
func (a *GlyphAtlas) Lookup(c rune) (image.Rectangle, bool) {
	r, ok := a.rects[c]
	return r, ok
}

// Supports reports whether c can be rendered.
func (a *GlyphAtlas) Supports(c rune) bool {
	_, ok := a.rects[c]
	return ok
}

// Charset returns the characters in sheet order.
func (a *GlyphAtlas) Charset() string {
	return a.charset
}

// SheetSize returns the pixel size of the font sheet.
func (a *GlyphAtlas) SheetSize() (int, int) {
	return a.columns * a.glyphWidth, a.rows * a.glyphHeight
}

// GlyphSize returns the width and height of one glyph cell.
func (a *GlyphAtlas) GlyphSize() (int, int) {
	return a.glyphWidth, a.glyphHeight
}
