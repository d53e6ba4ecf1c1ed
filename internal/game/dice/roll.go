// Package dice rolls six-sided dice from an injected random source.
package dice

import (
	"errors"
	"math/rand"
)

// Sides is the face count of every die in the game.
const Sides = 6

var (
	// ErrMissingDice is returned when no dice are requested.
	ErrMissingDice = errors.New("at least one die is required")
	// ErrInvalidDiceSpec is returned for a spec with non-positive sides or count.
	ErrInvalidDiceSpec = errors.New("dice spec must have positive sides and count")
)

// Spec describes a group of identical dice.
type Spec struct {
	Sides int
	Count int
}

// Result is the outcome of a roll.
type Result struct {
	Values []int `json:"values"`
	Total  int   `json:"total"`
}

// RollWithRng rolls the given dice using rng. Values appear in spec order.
func RollWithRng(rng *rand.Rand, specs []Spec) (Result, error) {
	if len(specs) == 0 {
		return Result{}, ErrMissingDice
	}

	var result Result
	for _, spec := range specs {
		if spec.Sides <= 0 || spec.Count <= 0 {
			return Result{}, ErrInvalidDiceSpec
		}
		for i := 0; i < spec.Count; i++ {
			value := rollDie(rng, spec.Sides)
			result.Values = append(result.Values, value)
			result.Total += value
		}
	}
	return result, nil
}

// Movement rolls one die, or two while a charity bonus is active.
func Movement(rng *rand.Rand, charityBonus bool) Result {
	count := 1
	if charityBonus {
		count = 2
	}
	// The spec is always valid.
	result, _ := RollWithRng(rng, []Spec{{Sides: Sides, Count: count}})
	return result
}

// rollDie rolls a single die with the provided number of sides.
func rollDie(rng *rand.Rand, sides int) int {
	return rng.Intn(sides) + 1
}
