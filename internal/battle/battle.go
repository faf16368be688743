// Package battle runs the turn menu of the battle screen: pick an action,
// pick a target, read the result.
package battle

import (
	"fmt"

	"github.com/google/uuid"

	"chosenoffset.com/tbrpg/internal/config"
	"chosenoffset.com/tbrpg/internal/dice"
)

// Step is the menu the player is in.
type Step int

const (
	StepAction Step = iota
	StepTarget
	StepResult
)

func (s Step) String() string {
	switch s {
	case StepAction:
		return "action"
	case StepTarget:
		return "target"
	case StepResult:
		return "result"
	default:
		return "unknown"
	}
}

// Action is an entry of the action menu.
type Action int

const (
	Attack Action = iota
	Magic
	Item
	Run
	actionCount
)

// Actions lists the action menu in display order.
var Actions = [actionCount]Action{Attack, Magic, Item, Run}

func (a Action) String() string {
	switch a {
	case Attack:
		return "Attack"
	case Magic:
		return "Magic"
	case Item:
		return "Item"
	case Run:
		return "Run"
	default:
		return "Unknown"
	}
}

// Outcome tells the caller what a confirm did to the battle as a whole.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeExit         // Every enemy is down and the player left the battle
)

// Narration lines.
const (
	PromptAction   = "What would you like to do?"
	PromptAttack   = "Attack which enemy?"
	PromptMagic    = "Cast a spell on which enemy?"
	Victory        = "Every enemy is defeated! You win!"
	RunAway        = "You try to run, but the enemies block the way!"
	NothingHappens = "Nothing happens."
)

// Battle is the state of one battle screen.
type Battle struct {
	rules  config.BattleConfig
	roller *dice.Roller

	roster   []int
	playerHP int

	encounter uuid.UUID
	step      Step
	action    Action
	target    int
	narration string
}

// New creates a battle with a fresh roster and the player at full health.
func New(rules config.BattleConfig, roller *dice.Roller) (*Battle, error) {
	if len(rules.Roster) == 0 {
		return nil, fmt.Errorf("battle roster is empty")
	}
	for _, expr := range []string{rules.AttackDice, rules.MagicDice, rules.HealDice} {
		if err := dice.Validate(expr); err != nil {
			return nil, fmt.Errorf("battle dice %q: %w", expr, err)
		}
	}

	b := &Battle{
		rules:    rules,
		roller:   roller,
		roster:   append([]int(nil), rules.Roster...),
		playerHP: rules.PlayerMaxHP,
	}
	b.Start()
	return b, nil
}

// Start puts the menu back on the action prompt and begins a new encounter.
// Enemy and player health carry over.
func (b *Battle) Start() {
	b.encounter = uuid.New()
	b.step = StepAction
	b.action = Attack
	b.target = 0
	b.narration = PromptAction
}

// Encounter identifies the current visit to the battle screen in logs.
func (b *Battle) Encounter() uuid.UUID { return b.encounter }

// Step returns the current menu.
func (b *Battle) Step() Step { return b.step }

// Action returns the highlighted action.
func (b *Battle) Action() Action { return b.action }

// Target returns the highlighted roster slot.
func (b *Battle) Target() int { return b.target }

// Narration returns the text shown in the narration box.
func (b *Battle) Narration() string { return b.narration }

// Roster returns a copy of the enemy health values.
func (b *Battle) Roster() []int {
	return append([]int(nil), b.roster...)
}

// PlayerHP returns the player's current and maximum health.
func (b *Battle) PlayerHP() (int, int) {
	return b.playerHP, b.rules.PlayerMaxHP
}

// Defeated reports whether every enemy is at or below zero health.
func (b *Battle) Defeated() bool {
	for _, hp := range b.roster {
		if hp > 0 {
			return false
		}
	}
	return true
}

// Confirm applies the confirm input to the current step.
func (b *Battle) Confirm() Outcome {
	switch b.step {
	case StepAction:
		if b.Defeated() {
			return OutcomeExit
		}
		b.confirmAction()
	case StepTarget:
		b.confirmTarget()
	case StepResult:
		if b.Defeated() {
			b.narration = Victory
		} else {
			b.narration = PromptAction
		}
		b.step = StepAction
	}
	return OutcomeNone
}

func (b *Battle) confirmAction() {
	switch b.action {
	case Attack:
		b.narration = PromptAttack
		b.step = StepTarget
	case Magic:
		b.narration = PromptMagic
		b.step = StepTarget
	case Item:
		heal := b.roller.MustRoll(b.rules.HealDice)
		b.playerHP = min(b.playerHP+heal, b.rules.PlayerMaxHP)
		b.narration = fmt.Sprintf("You drink a potion and recover %d health. You have %d of %d.",
			heal, b.playerHP, b.rules.PlayerMaxHP)
		b.step = StepResult
	case Run:
		b.narration = RunAway
		b.step = StepResult
	}
}

func (b *Battle) confirmTarget() {
	switch b.action {
	case Attack:
		b.narration = b.hit("You hit", b.roller.MustRoll(b.rules.AttackDice))
	case Magic:
		b.narration = b.hit("Your spell hits", b.roller.MustRoll(b.rules.MagicDice))
	default:
		b.narration = NothingHappens
	}
	b.step = StepResult
}

// hit damages the highlighted slot and describes it.
func (b *Battle) hit(verb string, damage int) string {
	b.roster[b.target] -= damage
	left := max(b.roster[b.target], 0)
	line := fmt.Sprintf("%s enemy %d for %d damage! It has %d health left.", verb, b.target+1, damage, left)
	if b.roster[b.target] <= 0 {
		line += " It is defeated!"
	}
	return line
}

// Previous moves the highlight up one entry, wrapping around.
func (b *Battle) Previous() {
	b.cycle(-1)
}

// Next moves the highlight down one entry, wrapping around.
func (b *Battle) Next() {
	b.cycle(1)
}

func (b *Battle) cycle(delta int) {
	switch b.step {
	case StepAction:
		b.action = Action(wrap(int(b.action)+delta, int(actionCount)))
	case StepTarget:
		b.target = wrap(b.target+delta, len(b.roster))
	}
}

// wrap returns i modulo n in [0, n).
func wrap(i, n int) int {
	return ((i % n) + n) % n
}
