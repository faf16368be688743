package movement

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chosenoffset.com/tbrpg/internal/render"
)

func holding(dirs ...Direction) func(Direction) bool {
	return func(d Direction) bool {
		for _, h := range dirs {
			if h == d {
				return true
			}
		}
		return false
	}
}

var nothing = holding()

// pass runs one scheduler pass the way the game does.
func pass(c *Controller, frame uint64, held func(Direction) bool) {
	c.Update(frame, held)
	c.Animate(frame)
}

func TestWalkLeftOneCell(t *testing.T) {
	c := NewController(50, 50, 72)
	assert.Equal(t, Down, c.Facing())

	c.Animate(0)
	assert.Equal(t, image.Point{}, c.Offset(), "offset before the walk")

	pass(c, 0, holding(Left))
	dir, walking := c.Walking()
	require.True(t, walking)
	assert.Equal(t, Left, dir)
	assert.Equal(t, Left, c.Facing(), "facing turns immediately")
	x, y := c.Position()
	assert.Equal(t, [2]int{50, 50}, [2]int{x, y}, "position waits for the step to finish")

	for frame := uint64(1); frame < 72; frame++ {
		pass(c, frame, nothing)
		_, walking = c.Walking()
		require.True(t, walking, "frame %d", frame)
	}

	pass(c, 72, nothing)
	_, walking = c.Walking()
	assert.False(t, walking)
	x, y = c.Position()
	assert.Equal(t, [2]int{49, 50}, [2]int{x, y})
	assert.Equal(t, Left, c.Facing())
	assert.Equal(t, image.Point{}, c.Offset(), "offset after the walk")
}

func TestDirectionPriority(t *testing.T) {
	tests := []struct {
		held []Direction
		want Direction
	}{
		{[]Direction{Down, Left}, Left},
		{[]Direction{Up, Right}, Right},
		{[]Direction{Down, Up}, Up},
		{[]Direction{Left, Right, Up, Down}, Left},
		{[]Direction{Down}, Down},
	}

	for _, tt := range tests {
		c := NewController(5, 5, 10)
		c.Update(0, holding(tt.held...))
		dir, walking := c.Walking()
		require.True(t, walking)
		assert.Equal(t, tt.want, dir, "held %v", tt.held)
	}
}

func TestInputIgnoredWhileWalking(t *testing.T) {
	c := NewController(5, 5, 10)
	c.Update(0, holding(Up))
	c.Update(5, holding(Left))

	dir, _ := c.Walking()
	assert.Equal(t, Up, dir)
	assert.Equal(t, Up, c.Facing())
}

func TestHeldDirectionChainsSteps(t *testing.T) {
	c := NewController(5, 5, 10)
	right := holding(Right)

	for frame := uint64(0); frame <= 30; frame++ {
		pass(c, frame, right)
	}

	// Steps finish at 10, 20 and 30; the third one restarts at once
	x, _ := c.Position()
	assert.Equal(t, 8, x)
	_, walking := c.Walking()
	assert.True(t, walking)
}

func TestOffsetSlidesOppositeTheWalk(t *testing.T) {
	tests := []struct {
		dir  Direction
		want image.Point
	}{
		{Left, image.Pt(9, 0)},
		{Right, image.Pt(-9, 0)},
		{Up, image.Pt(0, 9)},
		{Down, image.Pt(0, -9)},
	}

	for _, tt := range tests {
		c := NewController(5, 5, 72)
		pass(c, 0, holding(tt.dir))
		assert.Equal(t, 1, c.Offset().X*c.Offset().X+c.Offset().Y*c.Offset().Y, "%v starts one pixel in", tt.dir)

		pass(c, 36, nothing)
		assert.InDelta(t, 0.5, c.Progress(), 1e-9)
		assert.Equal(t, tt.want, c.Offset(), "%v", tt.dir)
	}
}

func TestWalkAnimationCycle(t *testing.T) {
	c := NewController(5, 5, 8)
	assert.Equal(t, 0, c.Frame())

	// First step: leg 1 then leg 0 of the next set
	pass(c, 0, holding(Down))
	assert.Equal(t, 1, c.Frame())
	pass(c, 3, nothing)
	assert.Equal(t, 1, c.Frame())
	pass(c, 4, nothing)
	assert.Equal(t, 2, c.Frame())

	// Idle resets the leg but keeps the set
	pass(c, 8, nothing)
	assert.Equal(t, 2, c.Frame())

	pass(c, 9, holding(Down))
	assert.Equal(t, 3, c.Frame())
	pass(c, 13, nothing)
	assert.Equal(t, 0, c.Frame())
}

func TestPassableBlocksButTurns(t *testing.T) {
	c := NewController(0, 0, 10)
	c.SetPassable(func(x, y int) bool { return x >= 0 && y >= 0 })

	c.Update(0, holding(Left))
	_, walking := c.Walking()
	assert.False(t, walking)
	assert.Equal(t, Left, c.Facing())

	c.Update(1, holding(Right))
	_, walking = c.Walking()
	assert.True(t, walking)
}

func TestSprite(t *testing.T) {
	origin := image.Pt(0, 0)

	c := NewController(5, 5, 8)
	src, flip := c.Sprite(origin, DefaultFacingColumns)
	assert.Equal(t, image.Rect(0, 0, 16, 16), src)
	assert.Equal(t, render.FlipNone, flip)

	tests := []struct {
		dir  Direction
		x    int
		flip render.Flip
	}{
		{Up, 128 + 16, render.FlipNone},
		{Left, 64 + 16, render.FlipNone},
		{Right, 64 + 16, render.FlipHorizontal},
		{Down, 16, render.FlipNone},
	}
	for _, tt := range tests {
		c := NewController(5, 5, 8)
		pass(c, 0, holding(tt.dir))
		src, flip := c.Sprite(origin, DefaultFacingColumns)
		assert.Equal(t, image.Rect(tt.x, 0, tt.x+16, 16), src, "%v", tt.dir)
		assert.Equal(t, tt.flip, flip, "%v", tt.dir)
	}

	// The origin shifts the whole strip
	src, _ = NewController(0, 0, 8).Sprite(image.Pt(0, 32), DefaultFacingColumns)
	assert.Equal(t, image.Rect(0, 32, 16, 48), src)
}
