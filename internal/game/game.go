package game

import (
	"fmt"
	"image"
	"log"
	"math/rand"

	"chosenoffset.com/tbrpg/internal/battle"
	"chosenoffset.com/tbrpg/internal/config"
	"chosenoffset.com/tbrpg/internal/core/scheduler"
	"chosenoffset.com/tbrpg/internal/dice"
	"chosenoffset.com/tbrpg/internal/input"
	"chosenoffset.com/tbrpg/internal/movement"
	"chosenoffset.com/tbrpg/internal/render"
	"chosenoffset.com/tbrpg/internal/text"
	"chosenoffset.com/tbrpg/internal/ui/gui"
	"chosenoffset.com/tbrpg/internal/world/atlas"
	"chosenoffset.com/tbrpg/internal/world/tilefield"
)

// Options are the collaborators a Game is built from.
type Options struct {
	Renderer render.Renderer
	Keys     render.KeySource
	Clock    scheduler.Clock
	Atlases  *atlas.Manager // Must hold the font, gui, worldmap and characters atlases
	Textures *Textures
	Rand     *rand.Rand
}

// Game holds all game state. Every field is owned by the game loop.
type Game struct {
	cfg       *config.Config
	renderer  render.Renderer
	textures  *Textures
	input     *input.Tracker
	scheduler *scheduler.Scheduler

	field  *tilefield.Field
	player *movement.Controller
	battle *battle.Battle

	text *text.Engine
	gui  *gui.Renderer

	terrainSrc   map[tilefield.Terrain]image.Rectangle
	walkable     map[tilefield.Terrain]bool
	wizardOrigin image.Point
	facing       movement.FacingColumns
	enemySrc     [len(EnemySprites)]image.Rectangle

	screen    Screen
	textBox   TextBox
	narration text.Reveal

	// Draw list built by the last scheduler pass
	calls []render.DrawCall
}

// New builds a game from cfg.
func New(cfg *config.Config, opts Options) (*Game, error) {
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	textures := opts.Textures
	if textures == nil {
		textures = NewTextures()
	}

	fontAtlas, ok := opts.Atlases.GetAtlasByName("font")
	if !ok {
		return nil, fmt.Errorf("font atlas is not loaded")
	}
	glyphs, err := text.FromAtlas(fontAtlas)
	if err != nil {
		return nil, err
	}

	guiAtlas, ok := opts.Atlases.GetAtlasByName("gui")
	if !ok {
		return nil, fmt.Errorf("gui atlas is not loaded")
	}
	guiRenderer, err := gui.NewRenderer(guiAtlas)
	if err != nil {
		return nil, err
	}

	b, err := battle.New(cfg.Battle, dice.NewRoller(rng))
	if err != nil {
		return nil, err
	}

	g := &Game{
		cfg:       cfg,
		renderer:  opts.Renderer,
		textures:  textures,
		input:     input.NewTracker(opts.Keys, input.DefaultBindings()),
		scheduler: scheduler.New(opts.Clock, cfg.Timing.FramesPerSecond),
		field:     tilefield.New(cfg.World.Size, rng),
		player:    movement.NewController(cfg.World.StartX, cfg.World.StartY, cfg.Timing.WalkFrames),
		battle:    b,
		text:      text.NewEngine(glyphs),
		gui:       guiRenderer,
		textBox:   TextBox{Text: IntroText},
	}
	if err := g.resolveSprites(opts.Atlases); err != nil {
		return nil, err
	}
	if cfg.World.Blocking {
		g.player.SetPassable(g.field.Passable(g.walkable))
	}
	return g, nil
}

// resolveSprites looks up every source rectangle the draw list needs.
func (g *Game) resolveSprites(atlases *atlas.Manager) error {
	worldmap, ok := atlases.GetAtlasByName("worldmap")
	if !ok {
		return fmt.Errorf("worldmap atlas is not loaded")
	}
	g.terrainSrc = make(map[tilefield.Terrain]image.Rectangle)
	g.walkable = make(map[tilefield.Terrain]bool)
	for _, t := range tilefield.Terrains {
		tile, err := atlases.GetTile("worldmap", t.String())
		if err != nil {
			return err
		}
		g.terrainSrc[t] = worldmap.Rect(tile)
		g.walkable[t] = tile.GetTilePropertyBool("walkable", true)
	}

	characters, ok := atlases.GetAtlasByName("characters")
	if !ok {
		return fmt.Errorf("characters atlas is not loaded")
	}
	wizard, err := atlases.GetTile("characters", "wizard")
	if err != nil {
		return err
	}
	g.wizardOrigin = characters.Rect(wizard).Min
	g.facing = movement.FacingColumns{
		Down: wizard.GetTilePropertyInt("facing_down", movement.DefaultFacingColumns.Down),
		Side: wizard.GetTilePropertyInt("facing_side", movement.DefaultFacingColumns.Side),
		Up:   wizard.GetTilePropertyInt("facing_up", movement.DefaultFacingColumns.Up),
	}

	for slot, name := range EnemySprites {
		r, err := characters.RectByName(name)
		if err != nil {
			return err
		}
		g.enemySrc[slot] = r
	}
	return nil
}

// Update polls input, applies the pressed actions and then runs every
// scheduler pass that is due.
func (g *Game) Update() error {
	g.input.Poll()

	if g.input.Pressed(input.Quit) {
		log.Printf("Quit requested")
		return render.ErrQuit
	}
	if g.input.Pressed(input.ToggleBattle) {
		g.toggleBattle()
	}

	switch g.screen {
	case ScreenMap:
		g.updateMap()
	case ScreenBattle:
		g.updateBattle()
	}

	g.scheduler.Run(g.pass)
	return nil
}

func (g *Game) toggleBattle() {
	if g.screen == ScreenBattle {
		g.leaveBattle()
		return
	}
	g.screen = ScreenBattle
	g.battle.Start()
	g.narration.Reset()
	log.Printf("Entering battle %s", g.battle.Encounter())
}

func (g *Game) leaveBattle() {
	g.screen = ScreenMap
	log.Printf("Leaving battle %s", g.battle.Encounter())
}

// updateMap handles the text box keys: confirm opens the box, then reveals
// the rest of the text, then closes it.
func (g *Game) updateMap() {
	tb := &g.textBox
	if g.input.Pressed(input.Confirm) {
		switch {
		case !tb.Open:
			tb.Open = true
			tb.Reveal.Reset()
		case !tb.Reveal.Done(tb.Text):
			tb.Reveal.ShowAll(tb.Text)
		default:
			tb.Open = false
		}
	}
	if g.input.Pressed(input.ResetReveal) {
		tb.Reveal.Reset()
	}
}

func (g *Game) updateBattle() {
	if g.input.Pressed(input.Up) || g.input.Pressed(input.Left) {
		g.battle.Previous()
	}
	if g.input.Pressed(input.Down) || g.input.Pressed(input.Right) {
		g.battle.Next()
	}
	if g.input.Pressed(input.Confirm) {
		outcome := g.battle.Confirm()
		g.narration.Reset()
		if g.battle.Step() == battle.StepResult {
			log.Printf("Battle %s: %s", g.battle.Encounter(), g.battle.Narration())
		}
		if outcome == battle.OutcomeExit {
			g.leaveBattle()
			return
		}
	}
	if g.input.Pressed(input.ResetReveal) {
		g.narration.Reset()
	}
}

// held reports the directions the player may walk in this update.
func (g *Game) held(d movement.Direction) bool {
	if g.screen != ScreenMap {
		return false
	}
	switch d {
	case movement.Left:
		return g.input.Held(input.Left)
	case movement.Right:
		return g.input.Held(input.Right)
	case movement.Up:
		return g.input.Held(input.Up)
	case movement.Down:
		return g.input.Held(input.Down)
	}
	return false
}

// pass is one fixed-rate frame: movement, animation, reveal cadence and a
// fresh draw list.
func (g *Game) pass(frame uint64) {
	g.player.Update(frame, g.held)
	g.player.Animate(frame)

	every := g.cfg.Timing.RevealEvery
	switch g.screen {
	case ScreenMap:
		if g.textBox.Open {
			g.textBox.Reveal.Tick(frame, every)
		}
	case ScreenBattle:
		g.narration.Tick(frame, every)
	}

	g.calls = g.buildDrawList(g.calls[:0])
}

// Close releases the loaded textures in reverse load order.
func (g *Game) Close() {
	log.Printf("Releasing %d textures", g.textures.Len())
	g.textures.Dispose()
}

// Layout returns the game's logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return GameWidth, GameHeight
}

// Screen returns the current view.
func (g *Game) Screen() Screen { return g.screen }

// Player returns the movement controller.
func (g *Game) Player() *movement.Controller { return g.player }

// Battle returns the battle state.
func (g *Game) Battle() *battle.Battle { return g.battle }

// TextBox returns the map text box state.
func (g *Game) TextBox() *TextBox { return &g.textBox }

// Narration returns the reveal counter of the battle narration.
func (g *Game) Narration() *text.Reveal { return &g.narration }

// Frame returns the number of scheduler passes run so far.
func (g *Game) Frame() uint64 { return g.scheduler.Frame() }

// DrawCalls returns the draw list of the last pass.
func (g *Game) DrawCalls() []render.DrawCall { return g.calls }
