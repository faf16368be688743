// Package movement moves the player across the tile grid one cell at a time
// and derives the slide offset and walk animation from frame counts.
package movement

import (
	"image"

	"chosenoffset.com/tbrpg/internal/render"
)

// TileSize is the edge of a grid cell in game pixels.
const TileSize = 16

// Direction is one of the four cardinal directions.
type Direction int

const (
	Down Direction = iota
	Up
	Left
	Right
)

// Priority is the order held directions are checked in. The first held one wins.
var Priority = [...]Direction{Left, Right, Up, Down}

func (d Direction) String() string {
	switch d {
	case Down:
		return "down"
	case Up:
		return "up"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// Delta returns the grid step for d.
func (d Direction) Delta() (int, int) {
	switch d {
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	case Up:
		return 0, -1
	case Down:
		return 0, 1
	}
	return 0, 0
}

// FacingColumns gives the first sprite column of each facing, in tiles.
// Right reuses the side frames mirrored.
type FacingColumns struct {
	Down, Side, Up int
}

// DefaultFacingColumns matches the bundled character sheet.
var DefaultFacingColumns = FacingColumns{Down: 0, Side: 4, Up: 8}

// Controller owns the player's grid position, facing and walk state.
type Controller struct {
	x, y   int
	facing Direction

	walking    bool
	dir        Direction
	start      uint64
	walkFrames int

	progress   float64
	animIndex  int
	animOffset int

	passable func(x, y int) bool
}

// NewController places an idle player at (x, y), facing down. A walk lasts
// walkFrames frames.
func NewController(x, y, walkFrames int) *Controller {
	return &Controller{
		x:          x,
		y:          y,
		facing:     Down,
		walkFrames: walkFrames,
	}
}

// SetPassable installs a check for the destination cell of a walk. A nil
// check lets the player walk anywhere.
func (c *Controller) SetPassable(fn func(x, y int) bool) {
	c.passable = fn
}

// Position returns the logical grid position.
func (c *Controller) Position() (int, int) {
	return c.x, c.y
}

// Facing returns the direction the player looks in.
func (c *Controller) Facing() Direction {
	return c.facing
}

// Walking reports whether a step is in progress, and in which direction.
func (c *Controller) Walking() (Direction, bool) {
	return c.dir, c.walking
}

// Update finishes a step whose time is up and then, if idle, starts a new one
// toward the first held direction. A walk in progress ignores input.
func (c *Controller) Update(frame uint64, held func(Direction) bool) {
	if c.walking && frame-c.start >= uint64(c.walkFrames) {
		dx, dy := c.dir.Delta()
		c.x += dx
		c.y += dy
		c.walking = false
	}

	if c.walking {
		return
	}

	for _, d := range Priority {
		if !held(d) {
			continue
		}
		c.facing = d
		dx, dy := d.Delta()
		if c.passable == nil || c.passable(c.x+dx, c.y+dy) {
			c.walking = true
			c.dir = d
			c.start = frame
		}
		return
	}
}

// Animate recomputes the walk progress and animation frame for frame.
func (c *Controller) Animate(frame uint64) {
	if !c.walking {
		c.progress = 0
		c.animIndex = 0
		return
	}

	c.progress = float64(frame-c.start) / float64(c.walkFrames)
	if c.progress >= 1 {
		c.progress = 0.999
	}

	if idx := int(c.progress*2+1) % 2; idx != c.animIndex {
		c.animIndex = idx
		if idx == 0 {
			c.animOffset = (c.animOffset + 1) % 2
		}
	}
}

// Progress returns how far the current step is, in [0, 1).
func (c *Controller) Progress() float64 {
	return c.progress
}

// Offset returns the pixel shift applied to background tiles so the world
// slides opposite the walk direction.
func (c *Controller) Offset() image.Point {
	if !c.walking {
		return image.Point{}
	}

	adjust := int(TileSize*c.progress) + 1
	switch c.dir {
	case Left:
		return image.Pt(adjust, 0)
	case Right:
		return image.Pt(-adjust, 0)
	case Up:
		return image.Pt(0, adjust)
	default:
		return image.Pt(0, -adjust)
	}
}

// Frame returns the walk cycle frame in [0, 4).
func (c *Controller) Frame() int {
	return c.animIndex + c.animOffset*2
}

// Sprite returns the source rectangle of the player sprite in a sheet whose
// frames start at origin, and the flip to draw it with.
func (c *Controller) Sprite(origin image.Point, cols FacingColumns) (image.Rectangle, render.Flip) {
	column, flip := cols.Down, render.FlipNone
	switch c.facing {
	case Up:
		column = cols.Up
	case Left:
		column = cols.Side
	case Right:
		column = cols.Side
		flip = render.FlipHorizontal
	}

	x := origin.X + (c.Frame()+column)*TileSize
	return image.Rect(x, origin.Y, x+TileSize, origin.Y+TileSize), flip
}
