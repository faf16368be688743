package render

import (
	"errors"
	"image"
	"image/color"
)

// ErrQuit is returned from Game.Update to end the game loop normally.
// Backends translate it into their own termination signal.
var ErrQuit = errors.New("quit requested")

// TextureID names a sprite sheet. The core addresses textures by ID and the
// backend resolves them to loaded images.
type TextureID string

// Textures used by the game.
const (
	TextureFont       TextureID = "font"
	TextureGUI        TextureID = "gui"
	TextureWorldMap   TextureID = "worldmap"
	TextureCharacters TextureID = "characters"
)

// Flip selects mirroring applied to a drawn region.
type Flip int

const (
	FlipNone       Flip = 0
	FlipHorizontal Flip = 1
	FlipVertical   Flip = 2
)

// DrawCall is the primitive "draw sprite region to destination rectangle"
// operation. Coordinates are logical (unscaled) game pixels.
//
// A zero Tint draws untinted. Any other value multiplies the region's colors,
// so color.RGBA{0, 0, 0, 255} renders black.
type DrawCall struct {
	Texture  TextureID
	Src      image.Rectangle
	Dst      image.Rectangle
	Flip     Flip
	Rotation float64 // degrees, clockwise around Dst.Min
	Tint     color.RGBA
}

// Tinted reports whether the call carries a color modulation.
func (c DrawCall) Tinted() bool {
	return c.Tint != (color.RGBA{})
}

// Renderer is the main rendering interface that abstracts the underlying
// graphics engine. This allows swapping rendering backends without changing
// game logic.
type Renderer interface {
	// NewImageFromImage uploads an in-memory image.
	NewImageFromImage(src image.Image) Image

	// DrawRegion copies call.Src of src onto call.Dst of dst, stretching,
	// flipping, rotating and tinting as requested.
	DrawRegion(dst, src Image, call DrawCall)
}

// Image represents a renderable image surface that can be drawn to or drawn from.
// It abstracts the underlying image implementation.
type Image interface {
	// Properties
	Bounds() image.Rectangle

	// Fill operations
	Fill(clr color.Color)

	// Resource management
	Dispose()
}

// KeySource reports keyboard state for the current tick.
type KeySource interface {
	IsKeyPressed(key Key) bool
	IsKeyJustPressed(key Key) bool
}

// Key represents a keyboard key.
type Key int

// Key constants for the keys the game binds.
const (
	KeyUp Key = iota
	KeyDown
	KeyLeft
	KeyRight
	KeyZ // Confirm / text box
	KeyEnter
	KeyR // Reset text reveal
	KeyB // Toggle battle screen
	KeyEscape
)

// ResourceLoader handles loading resources like images from disk.
type ResourceLoader interface {
	LoadImage(path string) (Image, error)
}

// Game represents the game interface that the engine will call.
// This is typically implemented by the main game struct.
type Game interface {
	// Update updates the game logic. It is called every tick.
	// Returning ErrQuit ends the loop without error.
	Update() error

	// Draw draws the game screen. It is called every frame.
	Draw(screen Image)

	// Layout accepts the outside size (e.g., window size) and returns the logical screen size.
	// The logical screen size is used for rendering and input coordinates.
	Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int)
}

// Engine represents the game engine that manages the game loop and window.
type Engine interface {
	// SetWindowSize sets the window size in pixels.
	SetWindowSize(width, height int)

	// SetWindowTitle sets the window title.
	SetWindowTitle(title string)

	// SetFullscreen switches between fullscreen and windowed mode.
	SetFullscreen(fullscreen bool)

	// SetWindowResizable enables or disables window resizing.
	SetWindowResizable(resizable bool)

	// RunGame runs the game loop with the provided game.
	// This is a blocking call that runs until the game ends.
	RunGame(game Game) error
}
