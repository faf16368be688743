// Package gui builds bordered boxes, lines and text boxes out of the GUI
// tile sheet.
package gui

import (
	"fmt"
	"image"
	"image/color"

	"chosenoffset.com/tbrpg/internal/render"
	"chosenoffset.com/tbrpg/internal/text"
	"chosenoffset.com/tbrpg/internal/world/atlas"
)

// Border is the thickness of a GUI line in game pixels.
const Border = 5

// TextPadding is the gap between a text box border and its text.
const TextPadding = 1

// Tile names a piece of the GUI sheet.
type Tile int

const (
	None Tile = iota
	BorderVertical
	BorderHorizontal
	CornerTL
	CornerTR
	CornerBR
	CornerBL
	JunctionR
	JunctionB
	JunctionL
	JunctionT
	Fill
	tileCount
)

var tileNames = [tileCount]string{
	BorderVertical:   "border_vertical",
	BorderHorizontal: "border_horizontal",
	CornerTL:         "corner_tl",
	CornerTR:         "corner_tr",
	CornerBR:         "corner_br",
	CornerBL:         "corner_bl",
	JunctionR:        "junction_r",
	JunctionB:        "junction_b",
	JunctionL:        "junction_l",
	JunctionT:        "junction_t",
	Fill:             "fill",
}

// Renderer turns GUI shapes into draw calls.
type Renderer struct {
	texture render.TextureID
	src     [tileCount]image.Rectangle
}

// NewRenderer resolves every GUI tile in a.
func NewRenderer(a *atlas.Atlas) (*Renderer, error) {
	r := &Renderer{texture: a.Texture()}
	for t := BorderVertical; t < tileCount; t++ {
		rect, err := a.RectByName(tileNames[t])
		if err != nil {
			return nil, fmt.Errorf("gui atlas: %w", err)
		}
		r.src[t] = rect
	}
	return r, nil
}

// Source returns the sheet rectangle of t.
func (r *Renderer) Source(t Tile) image.Rectangle {
	return r.src[t]
}

func (r *Renderer) tile(t Tile, dst image.Rectangle, tint color.RGBA) render.DrawCall {
	return render.DrawCall{
		Texture: r.texture,
		Src:     r.src[t],
		Dst:     dst,
		Tint:    tint,
	}
}

func xywh(x, y, w, h int) image.Rectangle {
	return image.Rect(x, y, x+w, y+h)
}

// LineH appends a horizontal line across the top Border pixels of line.
// Optional end pieces replace the first and last Border pixels.
func (r *Renderer) LineH(calls []render.DrawCall, line image.Rectangle, left, right Tile) []render.DrawCall {
	x, y, w := line.Min.X, line.Min.Y, line.Dx()

	marginX, marginW := 0, 0
	if left != None {
		marginX = Border
		marginW += Border
	}
	if right != None {
		marginW += Border
	}

	calls = append(calls, r.tile(BorderHorizontal, xywh(x+marginX, y, w-marginW, Border), color.RGBA{}))
	if left != None {
		calls = append(calls, r.tile(left, xywh(x, y, Border, Border), color.RGBA{}))
	}
	if right != None {
		calls = append(calls, r.tile(right, xywh(x+w-Border, y, Border, Border), color.RGBA{}))
	}
	return calls
}

// LineV appends a vertical line down the left Border pixels of line.
// Optional end pieces replace the first and last Border pixels.
func (r *Renderer) LineV(calls []render.DrawCall, line image.Rectangle, top, bottom Tile) []render.DrawCall {
	x, y, h := line.Min.X, line.Min.Y, line.Dy()

	marginY, marginH := 0, 0
	if top != None {
		marginY = Border
		marginH += Border
	}
	if bottom != None {
		marginH += Border
	}

	calls = append(calls, r.tile(BorderVertical, xywh(x, y+marginY, Border, h-marginH), color.RGBA{}))
	if top != None {
		calls = append(calls, r.tile(top, xywh(x, y, Border, Border), color.RGBA{}))
	}
	if bottom != None {
		calls = append(calls, r.tile(bottom, xywh(x, y+h-Border, Border, Border), color.RGBA{}))
	}
	return calls
}

// Box appends a bordered box covering rect. The border is drawn untinted.
func (r *Renderer) Box(calls []render.DrawCall, rect image.Rectangle) []render.DrawCall {
	x, y, w, h := rect.Min.X, rect.Min.Y, rect.Dx(), rect.Dy()

	calls = r.LineH(calls, xywh(x+Border, y, w-2*Border, Border), None, None)
	calls = r.LineH(calls, xywh(x+Border, y+h-Border, w-2*Border, Border), None, None)
	calls = r.LineV(calls, xywh(x, y, Border, h), CornerTL, CornerBL)
	calls = r.LineV(calls, xywh(x+w-Border, y, Border, h), CornerTR, CornerBR)
	return calls
}

// FilledBox appends a bordered box whose interior is filled with tint.
func (r *Renderer) FilledBox(calls []render.DrawCall, rect image.Rectangle, tint color.RGBA) []render.DrawCall {
	calls = r.Box(calls, rect)
	return append(calls, r.tile(Fill, Interior(rect), opaque(tint)))
}

// Interior returns the part of a box inside its border.
func Interior(rect image.Rectangle) image.Rectangle {
	return rect.Inset(Border)
}

// TextBoxBorder returns the box drawn around a text area.
func TextBoxBorder(area image.Rectangle) image.Rectangle {
	return area.Inset(-(Border + TextPadding))
}

// TextBox appends a filled box around area followed by the glyphs of l.
func (r *Renderer) TextBox(calls []render.DrawCall, l text.Layout, area image.Rectangle, fill, ink color.RGBA) []render.DrawCall {
	calls = r.FilledBox(calls, TextBoxBorder(area), fill)
	return l.AppendDrawCalls(calls, ink)
}

// opaque keeps a fill tint distinct from "no tint" so black fills still draw black.
func opaque(c color.RGBA) color.RGBA {
	c.A = 0xff
	return c
}
