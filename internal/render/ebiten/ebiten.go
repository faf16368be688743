package ebiten

import (
	"errors"
	"image"
	"image/color"
	_ "image/png" // PNG decoder for sprite sheets
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"chosenoffset.com/tbrpg/internal/render"
)

// EbitenRenderer implements the Renderer interface using Ebiten.
type EbitenRenderer struct{}

// NewRenderer creates a new Ebiten-based render.
func NewRenderer() render.Renderer {
	return &EbitenRenderer{}
}

// NewImageFromImage uploads an in-memory image.
func (r *EbitenRenderer) NewImageFromImage(src image.Image) render.Image {
	return &EbitenImage{img: ebiten.NewImageFromImage(src)}
}

// DrawRegion draws call.Src of src into call.Dst of dst.
func (r *EbitenRenderer) DrawRegion(dst, src render.Image, call render.DrawCall) {
	if call.Src.Empty() || call.Dst.Empty() {
		return
	}
	dstImg := dst.(*EbitenImage).img
	srcImg := src.(*EbitenImage).img
	region := srcImg.SubImage(call.Src).(*ebiten.Image)

	opts := &ebiten.DrawImageOptions{}
	opts.GeoM = regionGeoM(call)
	if call.Tinted() {
		opts.ColorScale.ScaleWithColor(call.Tint)
	}
	dstImg.DrawImage(region, opts)
}

// regionGeoM maps the source region onto the destination rectangle.
// Flips happen in source space so the region stays inside Dst.
func regionGeoM(call render.DrawCall) ebiten.GeoM {
	var g ebiten.GeoM
	sw, sh := float64(call.Src.Dx()), float64(call.Src.Dy())

	if call.Flip&render.FlipHorizontal != 0 {
		g.Scale(-1, 1)
		g.Translate(sw, 0)
	}
	if call.Flip&render.FlipVertical != 0 {
		g.Scale(1, -1)
		g.Translate(0, sh)
	}

	g.Scale(float64(call.Dst.Dx())/sw, float64(call.Dst.Dy())/sh)
	if call.Rotation != 0 {
		g.Rotate(call.Rotation * math.Pi / 180)
	}
	g.Translate(float64(call.Dst.Min.X), float64(call.Dst.Min.Y))
	return g
}

// EbitenImage wraps an ebiten.Image to implement the render.Image interface.
type EbitenImage struct {
	img *ebiten.Image
}

// Bounds returns the bounds of the image.
func (i *EbitenImage) Bounds() image.Rectangle {
	return i.img.Bounds()
}

// Fill fills the entire image with the given color.
func (i *EbitenImage) Fill(clr color.Color) {
	i.img.Fill(clr)
}

// Dispose releases the image resources.
func (i *EbitenImage) Dispose() {
	if i.img != nil {
		i.img.Dispose()
	}
}

// EbitenInputManager implements render.KeySource using Ebiten.
type EbitenInputManager struct{}

// NewInputManager creates a new Ebiten-based input manager.
func NewInputManager() render.KeySource {
	return &EbitenInputManager{}
}

// IsKeyPressed returns whether the specified key is currently pressed.
func (m *EbitenInputManager) IsKeyPressed(key render.Key) bool {
	k, ok := keyToEbitenKey(key)
	if !ok {
		return false
	}
	return ebiten.IsKeyPressed(k)
}

// IsKeyJustPressed returns whether the specified key went down this tick.
func (m *EbitenInputManager) IsKeyJustPressed(key render.Key) bool {
	k, ok := keyToEbitenKey(key)
	if !ok {
		return false
	}
	return inpututil.IsKeyJustPressed(k)
}

// keyToEbitenKey converts a render.Key to an ebiten.Key.
func keyToEbitenKey(key render.Key) (ebiten.Key, bool) {
	switch key {
	case render.KeyUp:
		return ebiten.KeyArrowUp, true
	case render.KeyDown:
		return ebiten.KeyArrowDown, true
	case render.KeyLeft:
		return ebiten.KeyArrowLeft, true
	case render.KeyRight:
		return ebiten.KeyArrowRight, true
	case render.KeyZ:
		return ebiten.KeyZ, true
	case render.KeyEnter:
		return ebiten.KeyEnter, true
	case render.KeyR:
		return ebiten.KeyR, true
	case render.KeyB:
		return ebiten.KeyB, true
	case render.KeyEscape:
		return ebiten.KeyEscape, true
	default:
		return 0, false
	}
}

// EbitenResourceLoader implements the ResourceLoader interface using Ebiten.
type EbitenResourceLoader struct{}

// NewResourceLoader creates a new Ebiten-based resource loader.
func NewResourceLoader() render.ResourceLoader {
	return &EbitenResourceLoader{}
}

// LoadImage loads an image from the specified file path.
func (l *EbitenResourceLoader) LoadImage(path string) (render.Image, error) {
	img, _, err := ebitenutil.NewImageFromFile(path)
	if err != nil {
		return nil, err
	}
	return &EbitenImage{img: img}, nil
}

// EbitenEngine implements the Engine interface using Ebiten.
type EbitenEngine struct {
	tps int
}

// NewEngine creates a new Ebiten-based game engine. tps is the update rate
// ebiten drives Game.Update at; 0 keeps ebiten's default.
func NewEngine(tps int) render.Engine {
	return &EbitenEngine{tps: tps}
}

// SetWindowSize sets the window size in pixels.
func (e *EbitenEngine) SetWindowSize(width, height int) {
	ebiten.SetWindowSize(width, height)
}

// SetWindowTitle sets the window title.
func (e *EbitenEngine) SetWindowTitle(title string) {
	ebiten.SetWindowTitle(title)
}

// SetFullscreen switches between fullscreen and windowed mode.
func (e *EbitenEngine) SetFullscreen(fullscreen bool) {
	ebiten.SetFullscreen(fullscreen)
}

// SetWindowResizable enables or disables window resizing.
func (e *EbitenEngine) SetWindowResizable(resizable bool) {
	if resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	} else {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)
	}
}

// RunGame runs the game loop with the provided game.
func (e *EbitenEngine) RunGame(game render.Game) error {
	if e.tps > 0 {
		ebiten.SetTPS(e.tps)
	}
	return ebiten.RunGame(&gameAdapter{game: game})
}

// gameAdapter adapts a render.Game to ebiten.Game interface.
type gameAdapter struct {
	game render.Game
}

// Update implements ebiten.Game.
func (a *gameAdapter) Update() error {
	err := a.game.Update()
	if errors.Is(err, render.ErrQuit) {
		return ebiten.Termination
	}
	return err
}

// Draw implements ebiten.Game.
func (a *gameAdapter) Draw(screen *ebiten.Image) {
	a.game.Draw(&EbitenImage{img: screen})
}

// Layout implements ebiten.Game.
func (a *gameAdapter) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.game.Layout(outsideWidth, outsideHeight)
}
