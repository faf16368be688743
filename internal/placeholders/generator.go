// Package placeholders paints simple sprite sheets for every texture the
// game uses, so it runs without any art on disk.
package placeholders

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
)

// TileSize is the standard size for world and character tiles
const TileSize = 16

// ColorPalette defines colors for the overworld, characters and GUI
var ColorPalette = struct {
	// Terrain
	Grass    color.RGBA
	Water    color.RGBA
	Mountain color.RGBA
	Hills    color.RGBA

	// Characters
	Robe     color.RGBA
	Skin     color.RGBA
	Slime    color.RGBA
	Bat      color.RGBA
	Goblin   color.RGBA
	Skeleton color.RGBA

	// GUI
	BorderLight color.RGBA
	BorderDark  color.RGBA
	Ink         color.RGBA
}{
	Grass:    color.RGBA{70, 150, 60, 255},
	Water:    color.RGBA{40, 90, 190, 255},
	Mountain: color.RGBA{120, 110, 100, 255},
	Hills:    color.RGBA{100, 140, 60, 255},

	Robe:     color.RGBA{60, 60, 170, 255},
	Skin:     color.RGBA{240, 200, 160, 255},
	Slime:    color.RGBA{80, 200, 90, 255},
	Bat:      color.RGBA{110, 70, 130, 255},
	Goblin:   color.RGBA{120, 160, 50, 255},
	Skeleton: color.RGBA{225, 220, 205, 255},

	BorderLight: color.RGBA{230, 230, 240, 255},
	BorderDark:  color.RGBA{110, 110, 130, 255},
	Ink:         color.RGBA{255, 255, 255, 255},
}

var transparent = color.RGBA{0, 0, 0, 0}

// NewSheet creates a transparent sheet of the given size
func NewSheet(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{transparent}, image.Point{}, draw.Src)
	return img
}

// FillRect fills r of img with a solid color
func FillRect(img draw.Image, r image.Rectangle, col color.RGBA) {
	draw.Draw(img, r, &image.Uniform{col}, image.Point{}, draw.Src)
}

// PatternTile paints a tile-sized pattern over r
func PatternTile(img *image.RGBA, r image.Rectangle, baseColor, patternColor color.RGBA, pattern string) {
	FillRect(img, r, baseColor)
	size := r.Dx()

	switch pattern {
	case "dots":
		quarter := size / 4
		threeQuarter := 3 * size / 4
		dots := []image.Point{{quarter, quarter}, {threeQuarter, quarter + 2}, {quarter + 2, threeQuarter}, {threeQuarter, threeQuarter}}
		for _, p := range dots {
			img.Set(r.Min.X+p.X, r.Min.Y+p.Y, patternColor)
		}
	case "waves":
		for y := 3; y < size; y += 5 {
			for x := 0; x < size; x++ {
				if (x/2+y)%4 == 0 {
					img.Set(r.Min.X+x, r.Min.Y+y, patternColor)
				}
			}
		}
	case "peak":
		mid := size / 2
		for y := 2; y < size-1; y++ {
			half := (y - 2) * mid / (size - 3)
			for x := mid - half; x <= mid+half; x++ {
				img.Set(r.Min.X+x, r.Min.Y+y, patternColor)
			}
		}
	case "bumps":
		for _, c := range []image.Point{{4, 9}, {11, 6}} {
			for dy := -2; dy <= 0; dy++ {
				for dx := -3 - dy; dx <= 3+dy; dx++ {
					img.Set(r.Min.X+c.X+dx, r.Min.Y+c.Y+dy, patternColor)
				}
			}
		}
	}
}

// SavePNG saves an image to a PNG file
func SavePNG(img image.Image, filepath string) error {
	file, err := os.Create(filepath)
	if err != nil {
		return err
	}
	if err := png.Encode(file, img); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// Darken returns a darker version of a color
func Darken(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
		A: c.A,
	}
}

// Lighten returns a lighter version of a color
func Lighten(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) + (255-float64(c.R))*factor),
		G: uint8(float64(c.G) + (255-float64(c.G))*factor),
		B: uint8(float64(c.B) + (255-float64(c.B))*factor),
		A: c.A,
	}
}
