package game

import (
	"image"
	"image/color"

	"chosenoffset.com/tbrpg/internal/text"
)

// Logical game area in pixels. The backend scales it to the window.
const (
	GameWidth  = 320
	GameHeight = 180
)

// Where the player is drawn, and how many tiles are visible around it.
const (
	PlayerX = 152
	PlayerY = 82

	TilesLeft  = 12
	TilesRight = 12
	TilesUp    = 7
	TilesDown  = 7
)

// Screen is the view the game is showing.
type Screen int

const (
	ScreenMap Screen = iota
	ScreenBattle
)

func (s Screen) String() string {
	if s == ScreenBattle {
		return "battle"
	}
	return "map"
}

// IntroText is shown in the map text box.
const IntroText = "This is some text in a text box! Go forth, wizard, and cast spells! Huzzah! You will win!\n" +
	"Furthermore, you may even get to ponder an orb at some point!"

// Colors used when building draw calls.
var (
	Ink         = color.RGBA{255, 255, 255, 255}
	Highlight   = color.RGBA{255, 230, 90, 255}
	Faded       = color.RGBA{70, 70, 70, 255}
	TextBoxFill = color.RGBA{75, 75, 105, 255}
	BattleFill  = color.RGBA{0, 0, 0, 255}
	ScreenClear = color.RGBA{0, 0, 0, 255}
)

// MapTextArea is where the map text box lays out its text.
var MapTextArea = image.Rect(20, 130, 300, 170)

// Battle screen panels.
var (
	BattleDividerH    = image.Rect(0, 100, GameWidth, 105)
	BattleDividerTop  = image.Rect(160, 0, 165, 105)
	BattleDividerLow  = image.Rect(140, 100, 145, GameHeight)
	PlayerPanelSprite = image.Rect(224, 24, 256, 56)
	PlayerPanelHP     = image.Rect(180, 72, 300, 80)
	ActionMenuOrigin  = image.Pt(16, 114)
	ActionMenuSpacing = 14
	NarrationArea     = image.Rect(152, 112, 312, 168)
)

// EnemySlots is where each roster slot is drawn on the battle screen.
var EnemySlots = [8]image.Rectangle{
	image.Rect(12, 14, 44, 46),
	image.Rect(48, 14, 80, 46),
	image.Rect(84, 14, 116, 46),
	image.Rect(120, 14, 152, 46),
	image.Rect(12, 56, 44, 88),
	image.Rect(48, 56, 80, 88),
	image.Rect(84, 56, 116, 88),
	image.Rect(120, 56, 152, 88),
}

// EnemySprites names the characters atlas tile for each roster slot.
var EnemySprites = [8]string{
	"skeleton", "skeleton",
	"goblin", "goblin",
	"bat", "bat",
	"slime", "slime",
}

// TextBox is the map's dialogue box.
type TextBox struct {
	Open   bool
	Text   string
	Reveal text.Reveal
}
