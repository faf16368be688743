// Package atlas describes sprite sheets as named tiles on a fixed grid.
package atlas

import (
	"embed"
	"encoding/json"
	"fmt"
	"image"
	"os"

	"chosenoffset.com/tbrpg/internal/render"
)

//go:embed data/*.json
var defaults embed.FS

// TileDefinition defines a single tile within an atlas
type TileDefinition struct {
	Name       string                 `json:"name"`       // Semantic name (e.g., "corner_tl")
	AtlasX     int                    `json:"atlas_x"`    // X position in atlas (in tiles)
	AtlasY     int                    `json:"atlas_y"`    // Y position in atlas (in tiles)
	Width      int                    `json:"width"`      // Width in pixels, 0 means the full tile
	Height     int                    `json:"height"`     // Height in pixels, 0 means the full tile
	Properties map[string]interface{} `json:"properties"` // Custom properties (walkable, facing offsets, etc.)
}

// AtlasConfig defines the JSON configuration for a sprite atlas
type AtlasConfig struct {
	Name       string           `json:"name"`        // Atlas name
	Texture    string           `json:"texture"`     // Texture the draw calls refer to
	ImagePath  string           `json:"image_path"`  // Image file, relative to the assets directory
	TileWidth  int              `json:"tile_width"`  // Width of each tile in pixels
	TileHeight int              `json:"tile_height"` // Height of each tile in pixels
	Tiles      []TileDefinition `json:"tiles"`       // Array of tile definitions
}

// Atlas represents a parsed sprite atlas
type Atlas struct {
	Config      *AtlasConfig
	TilesByName map[string]*TileDefinition // Quick lookup by name
}

// Parse builds an atlas from its JSON description.
func Parse(data []byte) (*Atlas, error) {
	var config AtlasConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse atlas config: %w", err)
	}

	if config.TileWidth <= 0 || config.TileHeight <= 0 {
		return nil, fmt.Errorf("invalid tile dimensions: %dx%d", config.TileWidth, config.TileHeight)
	}
	if config.Texture == "" {
		return nil, fmt.Errorf("texture is required in atlas config %q", config.Name)
	}

	tilesByName := make(map[string]*TileDefinition)
	for i := range config.Tiles {
		tile := &config.Tiles[i]
		if tile.Width < 0 || tile.Height < 0 || tile.Width > config.TileWidth || tile.Height > config.TileHeight {
			return nil, fmt.Errorf("tile %s: size %dx%d does not fit a %dx%d cell",
				tile.Name, tile.Width, tile.Height, config.TileWidth, config.TileHeight)
		}
		if tile.Name != "" {
			tilesByName[tile.Name] = tile
		}
	}

	return &Atlas{
		Config:      &config,
		TilesByName: tilesByName,
	}, nil
}

// LoadAtlas loads a sprite atlas from a JSON configuration file
func LoadAtlas(configPath string) (*Atlas, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read atlas config %s: %w", configPath, err)
	}

	atlas, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", configPath, err)
	}
	return atlas, nil
}

// LoadDefault returns one of the built-in atlases named in DefaultNames.
func LoadDefault(name string) (*Atlas, error) {
	data, err := defaults.ReadFile("data/" + name + ".json")
	if err != nil {
		return nil, fmt.Errorf("no built-in atlas %q: %w", name, err)
	}
	return Parse(data)
}

// Texture returns the texture the atlas describes.
func (a *Atlas) Texture() render.TextureID {
	return render.TextureID(a.Config.Texture)
}

// GetTile returns a tile definition by name
func (a *Atlas) GetTile(name string) (*TileDefinition, bool) {
	tile, ok := a.TilesByName[name]
	return tile, ok
}

// Rect returns the source rectangle of a tile in the sheet.
func (a *Atlas) Rect(tile *TileDefinition) image.Rectangle {
	x := tile.AtlasX * a.Config.TileWidth
	y := tile.AtlasY * a.Config.TileHeight
	w, h := a.Config.TileWidth, a.Config.TileHeight
	if tile.Width > 0 {
		w = tile.Width
	}
	if tile.Height > 0 {
		h = tile.Height
	}
	return image.Rect(x, y, x+w, y+h)
}

// RectByName returns the source rectangle for a tile by name
func (a *Atlas) RectByName(name string) (image.Rectangle, error) {
	tile, ok := a.GetTile(name)
	if !ok {
		return image.Rectangle{}, fmt.Errorf("tile not found in %s: %s", a.Config.Name, name)
	}
	return a.Rect(tile), nil
}

// SheetSize returns the smallest sheet holding every tile cell.
func (a *Atlas) SheetSize() (int, int) {
	cols, rows := 1, 1
	for _, t := range a.Config.Tiles {
		cols = max(cols, t.AtlasX+1)
		rows = max(rows, t.AtlasY+1)
	}
	return cols * a.Config.TileWidth, rows * a.Config.TileHeight
}

// Fits checks that every tile lies inside an image with the given bounds.
func (a *Atlas) Fits(bounds image.Rectangle) error {
	for i := range a.Config.Tiles {
		tile := &a.Config.Tiles[i]
		if r := a.Rect(tile); !r.In(bounds) {
			return fmt.Errorf("tile %s at %v is outside the %dx%d %s sheet",
				tile.Name, r, bounds.Dx(), bounds.Dy(), a.Config.Name)
		}
	}
	return nil
}

// GetTileProperty retrieves a property from a tile definition
func (td *TileDefinition) GetTileProperty(key string) (interface{}, bool) {
	if td.Properties == nil {
		return nil, false
	}
	val, ok := td.Properties[key]
	return val, ok
}

// GetTilePropertyBool retrieves a boolean property
func (td *TileDefinition) GetTilePropertyBool(key string, defaultVal bool) bool {
	val, ok := td.GetTileProperty(key)
	if !ok {
		return defaultVal
	}
	if boolVal, ok := val.(bool); ok {
		return boolVal
	}
	return defaultVal
}

// GetTilePropertyInt retrieves an integer property
func (td *TileDefinition) GetTilePropertyInt(key string, defaultVal int) int {
	val, ok := td.GetTileProperty(key)
	if !ok {
		return defaultVal
	}
	// JSON numbers are float64
	if floatVal, ok := val.(float64); ok {
		return int(floatVal)
	}
	return defaultVal
}

// GetTilePropertyString retrieves a string property
func (td *TileDefinition) GetTilePropertyString(key string, defaultVal string) string {
	val, ok := td.GetTileProperty(key)
	if !ok {
		return defaultVal
	}
	if strVal, ok := val.(string); ok {
		return strVal
	}
	return defaultVal
}
