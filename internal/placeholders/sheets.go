package placeholders

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"
	"path/filepath"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"chosenoffset.com/tbrpg/internal/render"
	"chosenoffset.com/tbrpg/internal/text"
	"chosenoffset.com/tbrpg/internal/world/atlas"
)

// Font renders the charset of glyphs into its grid of glyph cells. Glyphs
// come from the 7x13 basic font, cropped to the cap height and scaled into
// each cell.
func Font(glyphs *text.GlyphAtlas) *image.RGBA {
	sheet := NewSheet(glyphs.SheetSize())
	face := basicfont.Face7x13
	glyph := image.NewRGBA(image.Rect(0, 0, face.Advance, face.Height))
	// Rows 2..12 of the 13px cell hold caps and descenders
	crop := image.Rect(0, 2, face.Advance, face.Height)

	for _, c := range glyphs.Charset() {
		if c == ' ' {
			continue
		}
		dst, _ := glyphs.Lookup(c)

		draw.Draw(glyph, glyph.Bounds(), &image.Uniform{transparent}, image.Point{}, draw.Src)
		d := &font.Drawer{
			Dst:  glyph,
			Src:  &image.Uniform{ColorPalette.Ink},
			Face: face,
			Dot:  fixed.P(0, face.Ascent),
		}
		d.DrawString(string(c))

		xdraw.NearestNeighbor.Scale(sheet, dst, glyph, crop, xdraw.Over, nil)
	}
	return sheet
}

// GUI paints the border pieces of a GUI atlas.
func GUI(a *atlas.Atlas) (*image.RGBA, error) {
	sheet := NewSheet(a.SheetSize())
	light, dark := ColorPalette.BorderLight, ColorPalette.BorderDark

	// Cross-section of a 5px border line, outside to inside
	profile := [5]color.RGBA{dark, light, light, light, dark}

	paint := map[string]func(r image.Rectangle){
		"border_vertical": func(r image.Rectangle) {
			for x := 0; x < r.Dx() && x < len(profile); x++ {
				FillRect(sheet, image.Rect(r.Min.X+x, r.Min.Y, r.Min.X+x+1, r.Max.Y), profile[x])
			}
		},
		"border_horizontal": func(r image.Rectangle) {
			for y := 0; y < r.Dy() && y < len(profile); y++ {
				FillRect(sheet, image.Rect(r.Min.X, r.Min.Y+y, r.Max.X, r.Min.Y+y+1), profile[y])
			}
		},
		"corner_tl":  func(r image.Rectangle) { corner(sheet, r, profile, false, false) },
		"corner_tr":  func(r image.Rectangle) { corner(sheet, r, profile, true, false) },
		"corner_br":  func(r image.Rectangle) { corner(sheet, r, profile, true, true) },
		"corner_bl":  func(r image.Rectangle) { corner(sheet, r, profile, false, true) },
		"junction_r": func(r image.Rectangle) { junction(sheet, r, profile) },
		"junction_b": func(r image.Rectangle) { junction(sheet, r, profile) },
		"junction_l": func(r image.Rectangle) { junction(sheet, r, profile) },
		"junction_t": func(r image.Rectangle) { junction(sheet, r, profile) },
		// White so the fill tint decides the color
		"fill": func(r image.Rectangle) { FillRect(sheet, r, color.RGBA{255, 255, 255, 255}) },
	}

	for name, fn := range paint {
		r, err := a.RectByName(name)
		if err != nil {
			return nil, err
		}
		fn(r)
	}
	return sheet, nil
}

// corner paints a quarter ring whose open side faces the box interior.
func corner(img *image.RGBA, r image.Rectangle, profile [5]color.RGBA, flipX, flipY bool) {
	n := r.Dx()
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			px, py := x, y
			if flipX {
				px = n - 1 - x
			}
			if flipY {
				py = n - 1 - y
			}
			// Distance from the outer edge, following the shorter side
			d := min(px, py)
			if px+py < 2 {
				continue
			}
			img.Set(r.Min.X+x, r.Min.Y+y, profile[min(d, len(profile)-1)])
		}
	}
}

// junction paints a solid crossing piece where two lines meet.
func junction(img *image.RGBA, r image.Rectangle, profile [5]color.RGBA) {
	FillRect(img, r, profile[1])
	FillRect(img, r.Inset(1), profile[2])
}

// WorldMap paints one tile per terrain in a world map atlas.
func WorldMap(a *atlas.Atlas) (*image.RGBA, error) {
	sheet := NewSheet(a.SheetSize())
	p := ColorPalette

	tiles := []struct {
		name    string
		base    color.RGBA
		pattern string
	}{
		{"grass", p.Grass, "dots"},
		{"water", p.Water, "waves"},
		{"mountain", p.Grass, "peak"},
		{"hills", p.Hills, "bumps"},
	}
	accents := map[string]color.RGBA{
		"grass":    Darken(p.Grass, 0.7),
		"water":    Lighten(p.Water, 0.5),
		"mountain": p.Mountain,
		"hills":    Lighten(p.Hills, 0.3),
	}

	for _, t := range tiles {
		r, err := a.RectByName(t.name)
		if err != nil {
			return nil, err
		}
		PatternTile(sheet, r, t.base, accents[t.name], t.pattern)
	}
	return sheet, nil
}

// Characters paints the player's walk cycle for every facing and one sprite
// per enemy.
func Characters(a *atlas.Atlas) (*image.RGBA, error) {
	wizard, ok := a.GetTile("wizard")
	if !ok {
		return nil, fmt.Errorf("characters atlas has no wizard tile")
	}
	origin := a.Rect(wizard).Min
	columns := []struct {
		key    string
		facing string
	}{
		{"facing_down", "down"},
		{"facing_side", "side"},
		{"facing_up", "up"},
	}

	w, h := a.SheetSize()
	for _, c := range columns {
		w = max(w, origin.X+(wizard.GetTilePropertyInt(c.key, 0)+4)*TileSize)
	}
	sheet := NewSheet(w, h)

	for _, c := range columns {
		first := wizard.GetTilePropertyInt(c.key, 0)
		for frame := 0; frame < 4; frame++ {
			x := origin.X + (first+frame)*TileSize
			paintWizard(sheet, image.Rect(x, origin.Y, x+TileSize, origin.Y+TileSize), c.facing, frame)
		}
	}

	enemies := map[string]color.RGBA{
		"slime":    ColorPalette.Slime,
		"bat":      ColorPalette.Bat,
		"goblin":   ColorPalette.Goblin,
		"skeleton": ColorPalette.Skeleton,
	}
	for name, col := range enemies {
		r, err := a.RectByName(name)
		if err != nil {
			return nil, err
		}
		paintEnemy(sheet, r, col)
	}
	return sheet, nil
}

// paintWizard draws a robed figure. Odd frames lift a foot; frames 2 and 3
// swap which one.
func paintWizard(img *image.RGBA, r image.Rectangle, facing string, frame int) {
	at := func(x0, y0, x1, y1 int) image.Rectangle {
		return image.Rect(r.Min.X+x0, r.Min.Y+y0, r.Min.X+x1, r.Min.Y+y1)
	}
	robe, skin := ColorPalette.Robe, ColorPalette.Skin

	FillRect(img, at(5, 0, 11, 3), Darken(robe, 0.8)) // hat
	FillRect(img, at(6, 3, 10, 7), skin)              // head
	FillRect(img, at(4, 7, 12, 14), robe)             // robe

	switch facing {
	case "down":
		img.Set(r.Min.X+7, r.Min.Y+5, color.RGBA{0, 0, 0, 255})
		img.Set(r.Min.X+9, r.Min.Y+5, color.RGBA{0, 0, 0, 255})
	case "side":
		// Drawn facing left; facing right is mirrored at draw time
		img.Set(r.Min.X+6, r.Min.Y+5, color.RGBA{0, 0, 0, 255})
		FillRect(img, at(2, 9, 4, 11), skin)
	case "up":
		FillRect(img, at(6, 3, 10, 5), Darken(robe, 0.8))
	}

	left, right := 14, 14
	if frame%2 == 1 {
		if frame < 2 {
			left = 13
		} else {
			right = 13
		}
	}
	FillRect(img, at(5, left, 7, left+2), Darken(robe, 0.5))
	FillRect(img, at(9, right, 11, right+2), Darken(robe, 0.5))
}

// paintEnemy draws a diamond-shaped creature with two eyes.
func paintEnemy(img *image.RGBA, r image.Rectangle, col color.RGBA) {
	size := r.Dx()
	center := size / 2
	radius := size/2 - 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			d := abs(x-center) + abs(y-center)
			switch {
			case d <= radius:
				img.Set(r.Min.X+x, r.Min.Y+y, col)
			case d <= radius+1:
				img.Set(r.Min.X+x, r.Min.Y+y, Darken(col, 0.5))
			}
		}
	}
	eye := color.RGBA{255, 40, 40, 255}
	img.Set(r.Min.X+center-2, r.Min.Y+center-1, eye)
	img.Set(r.Min.X+center+2, r.Min.Y+center-1, eye)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// fontSheet paints the font atlas's glyph grid.
func fontSheet(a *atlas.Atlas) (*image.RGBA, error) {
	glyphs, err := text.FromAtlas(a)
	if err != nil {
		return nil, err
	}
	return Font(glyphs), nil
}

// painters builds the placeholder for each atlas by name.
var painters = map[string]func(*atlas.Atlas) (*image.RGBA, error){
	"font":       fontSheet,
	"gui":        GUI,
	"worldmap":   WorldMap,
	"characters": Characters,
}

// Sheets builds a placeholder for every texture from the registered atlases.
func Sheets(m *atlas.Manager) (map[render.TextureID]*image.RGBA, error) {
	sheets := make(map[render.TextureID]*image.RGBA, len(atlas.DefaultNames))
	for _, name := range atlas.DefaultNames {
		a, ok := m.GetAtlasByName(name)
		if !ok {
			return nil, fmt.Errorf("atlas %s is not registered", name)
		}
		sheet, err := painters[name](a)
		if err != nil {
			return nil, fmt.Errorf("placeholder %s: %w", name, err)
		}
		sheets[a.Texture()] = sheet
	}
	return sheets, nil
}

// GenerateAndSave writes every placeholder sheet into dir, under the image
// path its atlas names.
func GenerateAndSave(dir string, m *atlas.Manager) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create assets directory: %w", err)
	}

	sheets, err := Sheets(m)
	if err != nil {
		return nil, err
	}

	var written []string
	for _, a := range m.Atlases() {
		sheet, ok := sheets[a.Texture()]
		if !ok || a.Config.ImagePath == "" {
			continue
		}
		path := filepath.Join(dir, a.Config.ImagePath)
		if err := SavePNG(sheet, path); err != nil {
			return nil, fmt.Errorf("failed to save %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}
