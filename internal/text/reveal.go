package text

import "unicode/utf8"

// Reveal counts how many characters of an open text box are visible.
// It only grows while the box is open and is reset when a new text opens.
type Reveal struct {
	count int
}

// Count returns the number of characters revealed so far.
func (r *Reveal) Count() int {
	return r.count
}

// Reset hides the whole text again.
func (r *Reveal) Reset() {
	r.count = 0
}

// Tick reveals one more character on every frame that is a multiple of every.
func (r *Reveal) Tick(frame uint64, every int) {
	if every > 0 && frame%uint64(every) == 0 {
		r.count++
	}
}

// Done reports whether every character of s has been revealed.
func (r *Reveal) Done(s string) bool {
	return r.count >= utf8.RuneCountInString(s)
}

// ShowAll reveals the rest of s.
func (r *Reveal) ShowAll(s string) {
	if n := utf8.RuneCountInString(s); n > r.count {
		r.count = n
	}
}
