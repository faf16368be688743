// Package config holds the tunable settings for the game: display, timing,
// world generation and battle rules. Settings start from defaults, are
// overlaid by an optional JSON file and finally by TBRPG_* environment variables.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"

	"chosenoffset.com/tbrpg/internal/dice"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// MaxRosterSize is the number of enemy slots on the battle screen.
const MaxRosterSize = 8

// Config holds all settings for a game session
type Config struct {
	Display DisplayConfig `json:"display" envPrefix:"DISPLAY_"`
	Timing  TimingConfig  `json:"timing" envPrefix:"TIMING_"`
	World   WorldConfig   `json:"world" envPrefix:"WORLD_"`
	Battle  BattleConfig  `json:"battle" envPrefix:"BATTLE_"`
	Assets  AssetsConfig  `json:"assets" envPrefix:"ASSETS_"`
}

// DisplayConfig defines the window. The logical game area is always GameWidth x GameHeight
// pixels and is scaled by an integer factor.
type DisplayConfig struct {
	Title      string `json:"title" env:"TITLE"`
	Scale      int    `json:"scale" env:"SCALE"` // 6 gives 1920x1080
	Fullscreen bool   `json:"fullscreen" env:"FULLSCREEN"`
}

// TimingConfig defines the fixed simulation rate and frame-counted animations
type TimingConfig struct {
	FramesPerSecond int `json:"frames_per_second" env:"FPS"`          // Simulation passes per second
	WalkFrames      int `json:"walk_frames" env:"WALK_FRAMES"`        // Frames per one-tile step
	RevealEvery     int `json:"reveal_every" env:"REVEAL_EVERY"`      // Frames per revealed character
	UpdatesPerSec   int `json:"updates_per_second" env:"UPDATE_TPS"` // Backend update rate
}

// WorldConfig defines the tile field and where the player starts
type WorldConfig struct {
	Size     int   `json:"size" env:"SIZE"`
	Seed     int64 `json:"seed" env:"SEED"` // 0 picks a time-based seed
	StartX   int   `json:"start_x" env:"START_X"`
	StartY   int   `json:"start_y" env:"START_Y"`
	Blocking bool  `json:"blocking" env:"BLOCKING"` // Terrain the worldmap atlas marks not walkable blocks walks
}

// BattleConfig defines the enemy roster and the dice for each action
type BattleConfig struct {
	Roster      []int  `json:"roster" env:"ROSTER" envSeparator:","`
	AttackDice  string `json:"attack_dice" env:"ATTACK_DICE"`
	MagicDice   string `json:"magic_dice" env:"MAGIC_DICE"`
	HealDice    string `json:"heal_dice" env:"HEAL_DICE"`
	PlayerMaxHP int    `json:"player_max_hp" env:"PLAYER_MAX_HP"`
}

// AssetsConfig defines where sprite sheets are loaded from
type AssetsConfig struct {
	Dir string `json:"dir" env:"DIR"`
}

// DefaultConfig returns the settings the game was designed around
func DefaultConfig() *Config {
	return &Config{
		Display: DisplayConfig{
			Title:      "TBRPG",
			Scale:      6,
			Fullscreen: false,
		},
		Timing: TimingConfig{
			FramesPerSecond: 240,
			WalkFrames:      72, // 300ms at 240 fps
			RevealEvery:     3,
			UpdatesPerSec:   60,
		},
		World: WorldConfig{
			Size:   100,
			Seed:   0,
			StartX: 50,
			StartY: 50,
		},
		Battle: BattleConfig{
			Roster:      []int{10, 10, 8, 8, 5, 5, 5, 5},
			AttackDice:  "1d3",
			MagicDice:   "1d5",
			HealDice:    "1d4",
			PlayerMaxHP: 20,
		},
		Assets: AssetsConfig{
			Dir: "assets",
		},
	}
}

// LoadConfig loads the config from a JSON file and applies environment overrides.
// A missing file is not an error; defaults are used instead.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := json.Unmarshal(data, config); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		case os.IsNotExist(err):
			// Defaults only
		default:
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	if err := ApplyEnv(config); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// ApplyEnv overlays TBRPG_* environment variables onto config.
func ApplyEnv(config *Config) error {
	if err := env.ParseWithOptions(config, env.Options{Prefix: "TBRPG_"}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate rejects settings the game cannot run with.
func (c *Config) Validate() error {
	if c.Display.Scale < 1 {
		return fmt.Errorf("%w: display scale must be at least 1, got %d", ErrInvalid, c.Display.Scale)
	}
	if c.Timing.FramesPerSecond < 1 {
		return fmt.Errorf("%w: frames_per_second must be positive, got %d", ErrInvalid, c.Timing.FramesPerSecond)
	}
	if c.Timing.WalkFrames < 1 {
		return fmt.Errorf("%w: walk_frames must be positive, got %d", ErrInvalid, c.Timing.WalkFrames)
	}
	if c.Timing.RevealEvery < 1 {
		return fmt.Errorf("%w: reveal_every must be positive, got %d", ErrInvalid, c.Timing.RevealEvery)
	}
	if c.World.Size < 1 {
		return fmt.Errorf("%w: world size must be positive, got %d", ErrInvalid, c.World.Size)
	}
	if len(c.Battle.Roster) == 0 {
		return fmt.Errorf("%w: battle roster is empty", ErrInvalid)
	}
	if len(c.Battle.Roster) > MaxRosterSize {
		return fmt.Errorf("%w: battle roster has %d enemies, at most %d fit", ErrInvalid, len(c.Battle.Roster), MaxRosterSize)
	}
	if c.Battle.PlayerMaxHP < 1 {
		return fmt.Errorf("%w: player_max_hp must be positive, got %d", ErrInvalid, c.Battle.PlayerMaxHP)
	}

	for name, expr := range map[string]string{
		"attack_dice": c.Battle.AttackDice,
		"magic_dice":  c.Battle.MagicDice,
		"heal_dice":   c.Battle.HealDice,
	} {
		if err := dice.Validate(expr); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalid, name, err)
		}
	}
	return nil
}
