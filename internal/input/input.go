// Package input maps keys to game actions and samples their per-update
// "held" and "newly pressed" states from the backend.
package input

import "chosenoffset.com/tbrpg/internal/render"

// Action is a logical game input.
type Action int

const (
	Up Action = iota
	Down
	Left
	Right
	Confirm
	ResetReveal
	ToggleBattle
	Quit
	actionCount
)

// Bindings lists the keys that trigger each action. Any bound key counts.
type Bindings map[Action][]render.Key

// DefaultBindings are the arrow keys, Z (or Enter) to confirm, R, B and Escape.
func DefaultBindings() Bindings {
	return Bindings{
		Up:           {render.KeyUp},
		Down:         {render.KeyDown},
		Left:         {render.KeyLeft},
		Right:        {render.KeyRight},
		Confirm:      {render.KeyZ, render.KeyEnter},
		ResetReveal:  {render.KeyR},
		ToggleBattle: {render.KeyB},
		Quit:         {render.KeyEscape},
	}
}

// Tracker samples every action once per update so the whole update sees
// one consistent input state.
type Tracker struct {
	keys     render.KeySource
	bindings Bindings
	held     [actionCount]bool
	pressed  [actionCount]bool
}

// NewTracker creates a tracker polling keys through bindings.
func NewTracker(keys render.KeySource, bindings Bindings) *Tracker {
	return &Tracker{keys: keys, bindings: bindings}
}

// Poll samples every action. Call it once per update.
func (t *Tracker) Poll() {
	for a := Action(0); a < actionCount; a++ {
		t.held[a], t.pressed[a] = false, false
		for _, k := range t.bindings[a] {
			t.held[a] = t.held[a] || t.keys.IsKeyPressed(k)
			t.pressed[a] = t.pressed[a] || t.keys.IsKeyJustPressed(k)
		}
	}
}

// Held reports whether a is down as of the last poll.
func (t *Tracker) Held(a Action) bool {
	return t.held[a]
}

// Pressed reports whether any key bound to a went down this tick.
func (t *Tracker) Pressed(a Action) bool {
	return t.pressed[a]
}
