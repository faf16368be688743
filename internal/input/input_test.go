package input

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"chosenoffset.com/tbrpg/internal/render"
)

// fakeKeys is a keyboard that reports a key as just pressed only on the
// tick it went down.
type fakeKeys struct {
	tick    int
	down    map[render.Key]bool
	pressed map[render.Key]int
}

func newFakeKeys() *fakeKeys {
	return &fakeKeys{down: map[render.Key]bool{}, pressed: map[render.Key]int{}}
}

func (f *fakeKeys) press(k render.Key) {
	if !f.down[k] {
		f.pressed[k] = f.tick
	}
	f.down[k] = true
}

func (f *fakeKeys) release(k render.Key) { f.down[k] = false }
func (f *fakeKeys) next()                { f.tick++ }

func (f *fakeKeys) IsKeyPressed(k render.Key) bool { return f.down[k] }

func (f *fakeKeys) IsKeyJustPressed(k render.Key) bool {
	return f.down[k] && f.pressed[k] == f.tick
}

func TestPressedIsEdgeTriggered(t *testing.T) {
	keys := newFakeKeys()
	tr := NewTracker(keys, DefaultBindings())

	tr.Poll()
	assert.False(t, tr.Pressed(Confirm))

	keys.next()
	keys.press(render.KeyZ)
	tr.Poll()
	assert.True(t, tr.Pressed(Confirm))
	assert.True(t, tr.Held(Confirm))

	// Still held: no new press
	keys.next()
	tr.Poll()
	assert.False(t, tr.Pressed(Confirm))
	assert.True(t, tr.Held(Confirm))

	keys.next()
	keys.release(render.KeyZ)
	tr.Poll()
	assert.False(t, tr.Pressed(Confirm))
	assert.False(t, tr.Held(Confirm))

	keys.next()
	keys.press(render.KeyZ)
	tr.Poll()
	assert.True(t, tr.Pressed(Confirm))
}

func TestPollResamplesWithinATick(t *testing.T) {
	keys := newFakeKeys()
	tr := NewTracker(keys, DefaultBindings())

	keys.press(render.KeyB)
	tr.Poll()
	tr.Poll()
	assert.True(t, tr.Pressed(ToggleBattle), "the backend decides when a press ends")

	keys.next()
	tr.Poll()
	assert.False(t, tr.Pressed(ToggleBattle))
	assert.True(t, tr.Held(ToggleBattle))
}

func TestAnyBoundKeyTriggers(t *testing.T) {
	keys := newFakeKeys()
	tr := NewTracker(keys, DefaultBindings())

	keys.press(render.KeyEnter)
	tr.Poll()
	assert.True(t, tr.Pressed(Confirm))

	// A second bound key going down is its own press
	keys.next()
	keys.press(render.KeyZ)
	tr.Poll()
	assert.True(t, tr.Pressed(Confirm))
	assert.True(t, tr.Held(Confirm))

	keys.next()
	keys.release(render.KeyEnter)
	tr.Poll()
	assert.False(t, tr.Pressed(Confirm))
	assert.True(t, tr.Held(Confirm))
}

func TestActionsAreIndependent(t *testing.T) {
	keys := newFakeKeys()
	keys.press(render.KeyLeft)
	keys.press(render.KeyB)
	tr := NewTracker(keys, DefaultBindings())
	tr.Poll()

	assert.True(t, tr.Held(Left))
	assert.True(t, tr.Pressed(ToggleBattle))
	assert.False(t, tr.Held(Right))
	assert.False(t, tr.Pressed(Quit))
}

func TestCustomBindings(t *testing.T) {
	keys := newFakeKeys()
	keys.press(render.KeyR)
	tr := NewTracker(keys, Bindings{Quit: {render.KeyR}})
	tr.Poll()

	assert.True(t, tr.Pressed(Quit))
	assert.False(t, tr.Held(ResetReveal), "unbound actions never fire")
}
