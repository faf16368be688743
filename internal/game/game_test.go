package game

import (
	"image"
	"image/color"
	"image/png"
	"math/rand"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chosenoffset.com/tbrpg/internal/battle"
	"chosenoffset.com/tbrpg/internal/config"
	"chosenoffset.com/tbrpg/internal/core/scheduler"
	"chosenoffset.com/tbrpg/internal/movement"
	"chosenoffset.com/tbrpg/internal/placeholders"
	"chosenoffset.com/tbrpg/internal/render"
	"chosenoffset.com/tbrpg/internal/text"
	"chosenoffset.com/tbrpg/internal/world/atlas"
	"chosenoffset.com/tbrpg/internal/world/tilefield"
)

type fakeImage struct {
	w, h     int
	fills    int
	disposed int
}

func (i *fakeImage) Bounds() image.Rectangle { return image.Rect(0, 0, i.w, i.h) }
func (i *fakeImage) Fill(color.Color)        { i.fills++ }
func (i *fakeImage) Dispose()                { i.disposed++ }

type fakeRenderer struct {
	drawn []render.DrawCall
}

func (r *fakeRenderer) NewImageFromImage(src image.Image) render.Image {
	b := src.Bounds()
	return &fakeImage{w: b.Dx(), h: b.Dy()}
}

func (r *fakeRenderer) DrawRegion(dst, src render.Image, call render.DrawCall) {
	r.drawn = append(r.drawn, call)
}

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

type harness struct {
	game     *Game
	keys     *fakeKeys
	clock    *scheduler.ManualClock
	renderer *fakeRenderer
}

func newHarness(t *testing.T, mutate func(*config.Config)) *harness {
	t.Helper()
	return newHarnessIn(t, "", mutate)
}

// newHarnessIn builds a game whose atlases may be overridden from dir.
func newHarnessIn(t *testing.T, dir string, mutate func(*config.Config)) *harness {
	t.Helper()
	cfg := config.DefaultConfig()
	if mutate != nil {
		mutate(cfg)
	}

	atlases := atlas.NewManager()
	require.NoError(t, atlases.LoadDefaults(dir))

	textures := NewTextures()
	for _, a := range atlases.Atlases() {
		textures.Add(a.Texture(), &fakeImage{w: 256, h: 64})
	}

	h := &harness{
		keys:     newFakeKeys(),
		clock:    scheduler.NewManualClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)),
		renderer: &fakeRenderer{},
	}
	g, err := New(cfg, Options{
		Renderer: h.renderer,
		Keys:     h.keys,
		Clock:    h.clock,
		Atlases:  atlases,
		Textures: textures,
		Rand:     rand.New(rand.NewSource(1)),
	})
	require.NoError(t, err)
	h.game = g

	// The first update runs the initial pass at frame 0
	h.update(t)
	return h
}

// update runs one backend tick.
func (h *harness) update(t *testing.T) {
	t.Helper()
	require.NoError(t, h.game.Update())
	h.keys.next()
}

// press taps a key: one update with it down and one with it up.
func (h *harness) press(t *testing.T, k render.Key) {
	t.Helper()
	h.keys.press(k)
	h.update(t)
	h.keys.release(k)
	h.update(t)
}

// advance lets n scheduler passes elapse and runs them.
func (h *harness) advance(t *testing.T, n int) {
	t.Helper()
	h.clock.Advance(time.Duration(n) * h.game.scheduler.Interval())
	h.update(t)
}

func countTexture(calls []render.DrawCall, id render.TextureID) int {
	n := 0
	for _, c := range calls {
		if c.Texture == id {
			n++
		}
	}
	return n
}

func TestMapDrawList(t *testing.T) {
	h := newHarness(t, nil)
	calls := h.game.DrawCalls()

	visible := (TilesLeft + TilesRight + 1) * (TilesUp + TilesDown + 1)
	require.Len(t, calls, visible+1)
	assert.Equal(t, visible, countTexture(calls, render.TextureWorldMap))

	// Column by column from the top left
	assert.Equal(t, image.Rect(-40, -30, -24, -14), calls[0].Dst)
	assert.Equal(t, image.Rect(-40, -14, -24, 2), calls[1].Dst)

	player := calls[len(calls)-1]
	assert.Equal(t, render.TextureCharacters, player.Texture)
	assert.Equal(t, image.Rect(PlayerX, PlayerY, PlayerX+16, PlayerY+16), player.Dst)
	assert.Equal(t, image.Rect(0, 0, 16, 16), player.Src)

	w, hgt := h.game.Layout(1920, 1080)
	assert.Equal(t, 320, w)
	assert.Equal(t, 180, hgt)
}

func TestWalkLeft(t *testing.T) {
	h := newHarness(t, nil)
	x, y := h.game.Player().Position()
	require.Equal(t, [2]int{50, 50}, [2]int{x, y})
	assert.Equal(t, movement.Down, h.game.Player().Facing())

	h.keys.press(render.KeyLeft)
	h.advance(t, 1)
	h.keys.release(render.KeyLeft)
	dir, walking := h.game.Player().Walking()
	require.True(t, walking)
	assert.Equal(t, movement.Left, dir)
	assert.Equal(t, movement.Left, h.game.Player().Facing())

	// Halfway the world has slid right
	h.advance(t, 36)
	assert.Equal(t, image.Pt(9, 0), h.game.Player().Offset())
	assert.Equal(t, -40+9, h.game.DrawCalls()[0].Dst.Min.X)

	h.advance(t, 36)
	_, walking = h.game.Player().Walking()
	assert.False(t, walking)
	x, y = h.game.Player().Position()
	assert.Equal(t, [2]int{49, 50}, [2]int{x, y})
	assert.Equal(t, image.Point{}, h.game.Player().Offset())
}

func TestTextBoxConfirmCycle(t *testing.T) {
	h := newHarness(t, nil)
	tb := h.game.TextBox()

	h.press(t, render.KeyZ)
	require.True(t, tb.Open)
	assert.Equal(t, 0, tb.Reveal.Count())

	// Frames 1..9: every third one reveals a character
	h.advance(t, 9)
	assert.Equal(t, 3, tb.Reveal.Count())

	calls := h.game.DrawCalls()
	assert.Equal(t, 3, countTexture(calls, render.TextureFont))
	assert.Equal(t, 9, countTexture(calls, render.TextureGUI))

	h.press(t, render.KeyR)
	assert.Equal(t, 0, tb.Reveal.Count())
	assert.True(t, tb.Open)

	h.press(t, render.KeyZ)
	assert.True(t, tb.Open)
	assert.True(t, tb.Reveal.Done(IntroText))

	h.press(t, render.KeyZ)
	assert.False(t, tb.Open)
	h.advance(t, 1)
	assert.Zero(t, countTexture(h.game.DrawCalls(), render.TextureGUI))
}

func TestHoldingConfirmDoesNotRepeat(t *testing.T) {
	h := newHarness(t, nil)

	h.keys.press(render.KeyZ)
	h.update(t)
	h.update(t)
	h.update(t)

	assert.True(t, h.game.TextBox().Open)
	assert.Equal(t, 0, h.game.TextBox().Reveal.Count())
}

func TestBattleScreen(t *testing.T) {
	h := newHarness(t, nil)

	h.press(t, render.KeyB)
	require.Equal(t, ScreenBattle, h.game.Screen())
	assert.Equal(t, battle.StepAction, h.game.Battle().Step())

	h.advance(t, 1)
	calls := h.game.DrawCalls()
	require.NotEmpty(t, calls)
	assert.Equal(t, render.TextureGUI, calls[0].Texture)
	assert.Zero(t, countTexture(calls, render.TextureWorldMap))
	// Eight enemies plus the player portrait
	assert.Equal(t, 9, countTexture(calls, render.TextureCharacters))

	// The map does not move behind the battle screen
	h.keys.press(render.KeyLeft)
	h.advance(t, 10)
	h.keys.release(render.KeyLeft)
	_, walking := h.game.Player().Walking()
	assert.False(t, walking)
	x, _ := h.game.Player().Position()
	assert.Equal(t, 50, x)

	h.press(t, render.KeyB)
	assert.Equal(t, ScreenMap, h.game.Screen())
}

func TestBattleConfirmFlow(t *testing.T) {
	h := newHarness(t, nil)
	h.press(t, render.KeyB)
	h.advance(t, 6)
	require.Positive(t, h.game.Narration().Count())

	h.press(t, render.KeyZ)
	assert.Equal(t, battle.StepTarget, h.game.Battle().Step())
	assert.Equal(t, 0, h.game.Narration().Count(), "new narration starts hidden")

	h.press(t, render.KeyRight)
	assert.Equal(t, 1, h.game.Battle().Target())

	h.advance(t, 1)
	highlighted := 0
	for _, c := range h.game.DrawCalls() {
		if c.Texture == render.TextureCharacters && c.Tint == Highlight {
			highlighted++
			assert.Equal(t, EnemySlots[1], c.Dst)
		}
	}
	assert.Equal(t, 1, highlighted)

	h.press(t, render.KeyZ)
	assert.Equal(t, battle.StepResult, h.game.Battle().Step())
	assert.Less(t, h.game.Battle().Roster()[1], 10)
	assert.Equal(t, 10, h.game.Battle().Roster()[0])
}

func TestBattleExitsAfterVictory(t *testing.T) {
	h := newHarness(t, func(c *config.Config) { c.Battle.Roster = []int{1} })
	h.press(t, render.KeyB)

	h.press(t, render.KeyZ) // Attack
	h.press(t, render.KeyZ) // hit
	require.True(t, h.game.Battle().Defeated())
	h.press(t, render.KeyZ) // acknowledge
	assert.Equal(t, battle.Victory, h.game.Battle().Narration())
	assert.Equal(t, ScreenBattle, h.game.Screen())

	h.press(t, render.KeyZ)
	assert.Equal(t, ScreenMap, h.game.Screen())
}

func TestEscapeQuits(t *testing.T) {
	h := newHarness(t, nil)
	h.keys.press(render.KeyEscape)
	assert.ErrorIs(t, h.game.Update(), render.ErrQuit)
}

func TestDrawSubmitsDrawList(t *testing.T) {
	h := newHarness(t, nil)
	screen := &fakeImage{w: GameWidth, h: GameHeight}

	h.game.Draw(screen)
	assert.Equal(t, 1, screen.fills)
	assert.Equal(t, h.game.DrawCalls(), h.renderer.drawn)

	// Calls for a texture that is not loaded are skipped
	delete(h.game.textures.images, render.TextureWorldMap)
	h.renderer.drawn = nil
	h.game.Draw(screen)
	assert.Len(t, h.renderer.drawn, 1)
}

func TestBlockingFollowsWorldmapAtlas(t *testing.T) {
	h := newHarness(t, func(c *config.Config) { c.World.Blocking = true })
	assert.False(t, h.game.walkable[tilefield.Water])
	assert.True(t, h.game.walkable[tilefield.Grass])

	x, y := h.game.Player().Position()
	waterAhead := h.game.field.At(x-1, y) == tilefield.Water

	h.keys.press(render.KeyLeft)
	h.advance(t, 1)

	_, walking := h.game.Player().Walking()
	assert.Equal(t, !waterAhead, walking)
	assert.Equal(t, movement.Left, h.game.Player().Facing())
}

func TestBlockingUsesAtlasOverride(t *testing.T) {
	dir := t.TempDir()
	override := `{
		"name": "worldmap",
		"texture": "worldmap",
		"image_path": "worldmap.png",
		"tile_width": 16,
		"tile_height": 16,
		"tiles": [
			{"name": "grass", "atlas_x": 0, "atlas_y": 0, "properties": {"walkable": false}},
			{"name": "water", "atlas_x": 1, "atlas_y": 0, "properties": {"walkable": false}},
			{"name": "mountain", "atlas_x": 2, "atlas_y": 0, "properties": {"walkable": false}},
			{"name": "hills", "atlas_x": 3, "atlas_y": 0, "properties": {"walkable": false}}
		]
	}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "worldmap.json"), []byte(override), 0o644))

	h := newHarnessIn(t, dir, func(c *config.Config) { c.World.Blocking = true })
	for _, k := range []render.Key{render.KeyLeft, render.KeyRight, render.KeyUp, render.KeyDown} {
		h.keys.press(k)
		h.advance(t, 1)
		h.keys.release(k)
		_, walking := h.game.Player().Walking()
		assert.False(t, walking, "walked %v", k)
	}

	// Without blocking the same atlas lets the player walk
	h = newHarnessIn(t, dir, nil)
	h.keys.press(render.KeyLeft)
	h.advance(t, 1)
	_, walking := h.game.Player().Walking()
	assert.True(t, walking)
}

func TestCloseDisposesTextures(t *testing.T) {
	h := newHarness(t, nil)
	var images []*fakeImage
	for _, id := range h.game.textures.ids {
		img, _ := h.game.textures.Get(id)
		images = append(images, img.(*fakeImage))
	}
	require.Len(t, images, 4)

	h.game.Close()
	for _, img := range images {
		assert.Equal(t, 1, img.disposed)
	}
	assert.Zero(t, h.game.textures.Len())
}

// fakeLoader reports the real size of the PNG it is asked for.
type fakeLoader struct {
	paths []string
}

func (l *fakeLoader) LoadImage(path string) (render.Image, error) {
	l.paths = append(l.paths, path)
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		return nil, err
	}
	return &fakeImage{w: cfg.Width, h: cfg.Height}, nil
}

func TestLoadTexturesFallsBackToPlaceholders(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, placeholders.SavePNG(placeholders.Font(text.DefaultGlyphAtlas()), filepath.Join(dir, "font.png")))

	cfg := config.DefaultConfig()
	cfg.Assets.Dir = dir
	loader := &fakeLoader{}
	m := NewManager(cfg, &fakeRenderer{}, newFakeKeys(), loader)

	atlases := atlas.NewManager()
	require.NoError(t, atlases.LoadDefaults(dir))

	textures, err := m.LoadTextures(atlases)
	require.NoError(t, err)
	require.Equal(t, len(atlas.DefaultNames), textures.Len())
	assert.Equal(t, []render.TextureID{
		render.TextureFont, render.TextureGUI, render.TextureWorldMap, render.TextureCharacters,
	}, textures.ids)

	assert.Equal(t, []string{filepath.Join(dir, "font.png")}, loader.paths)
	font, _ := textures.Get(render.TextureFont)
	assert.Equal(t, image.Rect(0, 0, 80, 56), font.Bounds())
	gui, _ := textures.Get(render.TextureGUI)
	assert.Equal(t, image.Rect(0, 0, 88, 8), gui.Bounds())
}

func TestLoadTexturesRejectsUndersizedSheet(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, placeholders.SavePNG(placeholders.NewSheet(8, 8), filepath.Join(dir, "gui.png")))

	cfg := config.DefaultConfig()
	cfg.Assets.Dir = dir
	m := NewManager(cfg, &fakeRenderer{}, newFakeKeys(), &fakeLoader{})

	atlases := atlas.NewManager()
	require.NoError(t, atlases.LoadDefaults(dir))

	_, err := m.LoadTextures(atlases)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gui.png")
}

func TestLoadGame(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Assets.Dir = t.TempDir()
	cfg.World.Seed = 42

	g, err := NewManager(cfg, &fakeRenderer{}, newFakeKeys(), &fakeLoader{}).LoadGame()
	require.NoError(t, err)
	assert.Equal(t, ScreenMap, g.Screen())
	assert.Equal(t, 100, g.field.Size())
	assert.Equal(t, len(atlas.DefaultNames), g.textures.Len())
}

func TestWorldIgnoresBattleDice(t *testing.T) {
	a := newHarness(t, nil)
	b := newHarness(t, func(c *config.Config) {
		c.Battle.AttackDice = "3d6+2"
		c.Battle.HealDice = "2d8"
	})
	assert.Equal(t, a.game.field, b.game.field)
}
