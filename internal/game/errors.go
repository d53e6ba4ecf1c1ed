package game

import (
	"errors"
	"fmt"
	"strings"

	"github.com/moneyadventure/adventure-server-go/internal/game/economy"
	"github.com/moneyadventure/adventure-server-go/internal/game/rules"
	"github.com/moneyadventure/adventure-server-go/internal/game/targeting"
)

var (
	// ErrInsufficientFunds is returned when a buy, donation or support costs more than the player has.
	ErrInsufficientFunds = economy.ErrInsufficientFunds
	// ErrInvalidTarget is returned for unknown or ineligible players and assets.
	ErrInvalidTarget = targeting.ErrInvalidTarget
	// ErrPhaseViolation is matched by every *PhaseError.
	ErrPhaseViolation = errors.New("phase violation")
	// ErrGameOver is returned for every command but Restart once the game has a winner.
	ErrGameOver = errors.New("game over")
	// ErrNotHumanTurn is returned when a command arrives while a computer player is active.
	ErrNotHumanTurn = errors.New("not a human player's turn")
	// ErrSupportRequestPending is returned while a support request waits for an answer.
	ErrSupportRequestPending = errors.New("support request pending")
	// ErrNoSupportRequest is returned when answering a request that does not exist.
	ErrNoSupportRequest = errors.New("no support request pending")
	// ErrSupportAlreadyUsed is returned on a second support offer in one turn.
	ErrSupportAlreadyUsed = errors.New("support already given this turn")
	// ErrNotInvestor is returned when an earner-track player tries to give support.
	ErrNotInvestor = errors.New("only investor-track players can give support")
	// ErrCardMismatch is returned when the action does not apply to the pending card.
	ErrCardMismatch = errors.New("action does not apply to the pending card")
	// ErrUnknownGoal is returned for a goal id that is not on offer.
	ErrUnknownGoal = errors.New("unknown goal")
	// ErrUnknownDifficulty is returned for an unknown difficulty level.
	ErrUnknownDifficulty = errors.New("unknown difficulty")
)

// PhaseError reports a command issued outside its phases.
type PhaseError struct {
	Command  string
	Expected []rules.Phase
	Actual   rules.Phase
}

func (e *PhaseError) Error() string {
	names := make([]string, len(e.Expected))
	for i, p := range e.Expected {
		names[i] = p.String()
	}
	return fmt.Sprintf("%s not allowed during %s (allowed: %s)", e.Command, e.Actual, strings.Join(names, ", "))
}

// Is makes errors.Is(err, ErrPhaseViolation) match.
func (e *PhaseError) Is(target error) bool {
	return target == ErrPhaseViolation
}
