// Package dice rolls the small dice expressions used by battle actions,
// such as "1d3" for an attack or "1d4+1" for a potion.
package dice

import (
	"fmt"
	"math/rand"
	"regexp"
	"strconv"
	"strings"
)

// RollResult contains the result of a dice roll
type RollResult struct {
	Total      int    // Final computed value
	Rolls      []int  // Individual die rolls
	Expression string // Original expression
}

// Roller handles dice rolling with a configurable random source
type Roller struct {
	rng *rand.Rand
}

// NewRoller creates a new Roller with the given random source
func NewRoller(rng *rand.Rand) *Roller {
	return &Roller{rng: rng}
}

// term is one signed part of an expression: a constant or NdM.
type term struct {
	sign  int
	dice  int // 0 for a constant
	sides int
	value int // the constant
}

// Validate reports whether expression parses, without rolling anything.
func Validate(expression string) error {
	_, err := parse(expression)
	return err
}

// Roll evaluates a dice expression and returns the result
// Supported syntax:
//   - Basic dice: "1d3" (roll one three-sided die), "d6" (same as "1d6")
//   - Modifiers: "1d4+1", "2d6-2"
//   - Constants: "5"
func (r *Roller) Roll(expression string) (*RollResult, error) {
	terms, err := parse(expression)
	if err != nil {
		return nil, err
	}

	result := &RollResult{Expression: expression}
	for _, t := range terms {
		if t.dice == 0 {
			result.Total += t.sign * t.value
			continue
		}
		for i := 0; i < t.dice; i++ {
			roll := r.rng.Intn(t.sides) + 1
			result.Rolls = append(result.Rolls, roll)
			result.Total += t.sign * roll
		}
	}
	return result, nil
}

// MustRoll is Roll for expressions validated at load time.
func (r *Roller) MustRoll(expression string) int {
	result, err := r.Roll(expression)
	if err != nil {
		panic(fmt.Sprintf("dice: %v", err))
	}
	return result.Total
}

// diceRegex matches dice notation like "3d6" or "d4"
var diceRegex = regexp.MustCompile(`^(\d*)d(\d+)$`)

// parse splits an expression into signed terms; a leading sign belongs to
// the first term.
func parse(expression string) ([]term, error) {
	expr := strings.ReplaceAll(strings.ToLower(expression), " ", "")
	if expr == "" {
		return nil, fmt.Errorf("empty expression")
	}

	var terms []term
	start := 0
	for i := 1; i <= len(expr); i++ {
		if i < len(expr) && expr[i] != '+' && expr[i] != '-' {
			continue
		}
		t, err := parseTerm(expr[start:i])
		if err != nil {
			return nil, err
		}
		terms = append(terms, t)
		start = i
	}
	return terms, nil
}

// parseTerm parses a single signed term (dice or constant)
func parseTerm(s string) (term, error) {
	t := term{sign: 1}
	switch {
	case strings.HasPrefix(s, "-"):
		t.sign = -1
		s = s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}

	// Check if it's a constant
	if num, err := strconv.Atoi(s); err == nil {
		t.value = num
		return t, nil
	}

	matches := diceRegex.FindStringSubmatch(s)
	if matches == nil {
		return term{}, fmt.Errorf("invalid term: %q", s)
	}

	t.dice = 1
	if matches[1] != "" {
		t.dice, _ = strconv.Atoi(matches[1])
	}
	t.sides, _ = strconv.Atoi(matches[2])
	if t.dice <= 0 || t.sides <= 0 {
		return term{}, fmt.Errorf("invalid dice specification: %q", s)
	}
	return t, nil
}
