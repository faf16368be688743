// Package tilefield holds the overworld terrain grid.
package tilefield

import (
	"math/rand"
)

// Terrain is the type of a single overworld cell.
type Terrain int

const (
	Grass Terrain = iota
	Water
	Mountain
	Hills
	terrainCount
)

func (t Terrain) String() string {
	switch t {
	case Grass:
		return "grass"
	case Water:
		return "water"
	case Mountain:
		return "mountain"
	case Hills:
		return "hills"
	default:
		return "unknown"
	}
}

// Field is a square terrain grid. It is immutable after generation.
type Field struct {
	size  int
	cells []Terrain // row-major
}

// New fills a size x size field with terrain drawn uniformly from rng.
func New(size int, rng *rand.Rand) *Field {
	f := &Field{size: size, cells: make([]Terrain, size*size)}
	for i := range f.cells {
		f.cells[i] = Terrain(rng.Intn(int(terrainCount)))
	}
	return f
}

// FromRows builds a field from explicit rows. Rows shorter than the first
// are padded with Water.
func FromRows(rows [][]Terrain) *Field {
	size := len(rows)
	f := &Field{size: size, cells: make([]Terrain, size*size)}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			t := Water
			if x < len(rows[y]) {
				t = rows[y][x]
			}
			f.cells[y*size+x] = t
		}
	}
	return f
}

// Size returns the width (and height) of the field.
func (f *Field) Size() int {
	return f.size
}

// InBounds reports whether (x, y) is a cell of the field.
func (f *Field) InBounds(x, y int) bool {
	return x >= 0 && x < f.size && y >= 0 && y < f.size
}

// At returns the terrain at (x, y). Anything outside the grid is Water.
func (f *Field) At(x, y int) Terrain {
	if !f.InBounds(x, y) {
		return Water
	}
	return f.cells[y*f.size+x]
}

// Terrains lists every terrain kind.
var Terrains = [...]Terrain{Grass, Water, Mountain, Hills}

// Passable returns a check for whether a walker may enter (x, y). Terrain
// missing from walkable blocks.
func (f *Field) Passable(walkable map[Terrain]bool) func(x, y int) bool {
	return func(x, y int) bool {
		return walkable[f.At(x, y)]
	}
}

// Visible calls fn for every cell in the window around (cx, cy), column by
// column. dx and dy are relative to the center.
func (f *Field) Visible(cx, cy, left, right, up, down int, fn func(dx, dy int, t Terrain)) {
	for dx := -left; dx <= right; dx++ {
		for dy := -up; dy <= down; dy++ {
			fn(dx, dy, f.At(cx+dx, cy+dy))
		}
	}
}
