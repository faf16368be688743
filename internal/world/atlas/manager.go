package atlas

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// DefaultNames lists the built-in atlases in load order.
var DefaultNames = []string{"font", "gui", "worldmap", "characters"}

// Manager holds the atlases of a game, keyed by name.
type Manager struct {
	atlasesByName map[string]*Atlas
	order         []*Atlas
}

// NewManager creates a new atlas manager
func NewManager() *Manager {
	return &Manager{
		atlasesByName: make(map[string]*Atlas),
	}
}

// LoadDefaults registers every built-in atlas. A <name>.json file in dir
// replaces the built-in description of the same name.
func (m *Manager) LoadDefaults(dir string) error {
	for _, name := range DefaultNames {
		atlas, err := loadOverride(dir, name)
		if err != nil {
			return err
		}
		if atlas == nil {
			if atlas, err = LoadDefault(name); err != nil {
				return err
			}
		}
		if err := m.RegisterAtlas(atlas); err != nil {
			return err
		}
	}
	return nil
}

func loadOverride(dir, name string) (*Atlas, error) {
	if dir == "" {
		return nil, nil
	}
	path := filepath.Join(dir, name+".json")
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	return LoadAtlas(path)
}

// RegisterAtlas registers a parsed atlas with the manager
func (m *Manager) RegisterAtlas(atlas *Atlas) error {
	if atlas.Config.Name == "" {
		return fmt.Errorf("atlas name cannot be empty")
	}

	if _, exists := m.atlasesByName[atlas.Config.Name]; exists {
		return fmt.Errorf("atlas %s is already registered", atlas.Config.Name)
	}

	m.atlasesByName[atlas.Config.Name] = atlas
	m.order = append(m.order, atlas)
	return nil
}

// Atlases returns every registered atlas in registration order.
func (m *Manager) Atlases() []*Atlas {
	return append([]*Atlas(nil), m.order...)
}

// GetAtlasByName returns an atlas by its name
func (m *Manager) GetAtlasByName(name string) (*Atlas, bool) {
	atlas, ok := m.atlasesByName[name]
	return atlas, ok
}

// GetTile retrieves a tile definition from a named atlas
func (m *Manager) GetTile(atlasName, tileName string) (*TileDefinition, error) {
	atlas, ok := m.GetAtlasByName(atlasName)
	if !ok {
		return nil, fmt.Errorf("no atlas named %s", atlasName)
	}

	tile, ok := atlas.GetTile(tileName)
	if !ok {
		return nil, fmt.Errorf("tile %s not found in atlas %s", tileName, atlasName)
	}

	return tile, nil
}
