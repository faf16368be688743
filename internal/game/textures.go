package game

import "chosenoffset.com/tbrpg/internal/render"

// Textures holds the loaded sprite sheets and remembers the order they were
// loaded in.
type Textures struct {
	ids    []render.TextureID
	images map[render.TextureID]render.Image
}

// NewTextures creates an empty texture set.
func NewTextures() *Textures {
	return &Textures{images: make(map[render.TextureID]render.Image)}
}

// Add stores img under id. Replacing a texture disposes the old image.
func (t *Textures) Add(id render.TextureID, img render.Image) {
	if old, ok := t.images[id]; ok {
		old.Dispose()
	} else {
		t.ids = append(t.ids, id)
	}
	t.images[id] = img
}

// Get returns the texture for id.
func (t *Textures) Get(id render.TextureID) (render.Image, bool) {
	img, ok := t.images[id]
	return img, ok
}

// Len returns the number of loaded textures.
func (t *Textures) Len() int {
	return len(t.ids)
}

// Dispose releases every texture, last loaded first, and empties the set.
func (t *Textures) Dispose() {
	for i := len(t.ids) - 1; i >= 0; i-- {
		if img, ok := t.images[t.ids[i]]; ok {
			img.Dispose()
		}
	}
	t.ids = nil
	t.images = make(map[render.TextureID]render.Image)
}
