package game

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"chosenoffset.com/tbrpg/internal/config"
	"chosenoffset.com/tbrpg/internal/core/scheduler"
	"chosenoffset.com/tbrpg/internal/placeholders"
	"chosenoffset.com/tbrpg/internal/render"
	"chosenoffset.com/tbrpg/internal/world/atlas"
)

// Manager wires the backend to a new game: it loads atlases and sprite
// sheets and seeds the world.
type Manager struct {
	Config   *config.Config
	Renderer render.Renderer
	Keys     render.KeySource
	Loader   render.ResourceLoader
}

// NewManager creates a new game manager.
func NewManager(cfg *config.Config, r render.Renderer, keys render.KeySource, loader render.ResourceLoader) *Manager {
	return &Manager{
		Config:   cfg,
		Renderer: r,
		Keys:     keys,
		Loader:   loader,
	}
}

// LoadGame loads every resource and builds the game.
func (m *Manager) LoadGame() (*Game, error) {
	atlases := atlas.NewManager()
	if err := atlases.LoadDefaults(m.Config.Assets.Dir); err != nil {
		return nil, fmt.Errorf("failed to load atlases: %w", err)
	}

	textures, err := m.LoadTextures(atlases)
	if err != nil {
		return nil, err
	}

	seed := m.Config.World.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	log.Printf("Generating %dx%d world with seed %d", m.Config.World.Size, m.Config.World.Size, seed)

	g, err := New(m.Config, Options{
		Renderer: m.Renderer,
		Keys:     m.Keys,
		Clock:    scheduler.SystemClock{},
		Atlases:  atlases,
		Textures: textures,
		Rand:     rand.New(rand.NewSource(seed)),
	})
	if err != nil {
		textures.Dispose()
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	log.Printf("Game loaded successfully")
	return g, nil
}

// LoadTextures loads the sheet each atlas names from the assets directory,
// in atlas order. A sheet with no file on disk is replaced by a placeholder;
// a sheet too small for its atlas, or any other failure, is an error.
func (m *Manager) LoadTextures(atlases *atlas.Manager) (*Textures, error) {
	textures := NewTextures()
	var missing []*atlas.Atlas

	for _, a := range atlases.Atlases() {
		path := filepath.Join(m.Config.Assets.Dir, a.Config.ImagePath)
		if _, err := os.Stat(path); a.Config.ImagePath == "" || errors.Is(err, fs.ErrNotExist) {
			missing = append(missing, a)
			continue
		}
		img, err := m.Loader.LoadImage(path)
		if err != nil {
			textures.Dispose()
			return nil, fmt.Errorf("failed to load texture %s: %w", path, err)
		}
		if err := a.Fits(img.Bounds()); err != nil {
			img.Dispose()
			textures.Dispose()
			return nil, fmt.Errorf("texture %s: %w", path, err)
		}
		log.Printf("Loaded %s", path)
		textures.Add(a.Texture(), img)
	}

	if len(missing) == 0 {
		return textures, nil
	}

	sheets, err := placeholders.Sheets(atlases)
	if err != nil {
		textures.Dispose()
		return nil, err
	}
	for _, a := range missing {
		log.Printf("Warning: no %s in %s, using a placeholder", a.Config.ImagePath, m.Config.Assets.Dir)
		textures.Add(a.Texture(), m.Renderer.NewImageFromImage(sheets[a.Texture()]))
	}
	return textures, nil
}
