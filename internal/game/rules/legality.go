package rules

import (
	"fmt"
)

// Command names a player-facing command of the state machine.
type Command string

const (
	CommandSelectDifficulty Command = "select_difficulty"
	CommandSelectGoal       Command = "select_goal"
	CommandRollDice         Command = "roll_dice"
	CommandBuy              Command = "buy"
	CommandDonate           Command = "donate"
	CommandPayPenalty       Command = "pay_penalty"
	CommandPass             Command = "pass"
	CommandSellAsset        Command = "sell_asset"
	CommandOpenSupport      Command = "open_support"
	CommandOfferSupport     Command = "offer_support"
	CommandSkipSupport      Command = "skip_support"
	CommandRespondSupport   Command = "respond_support"
	CommandAdvanceTurn      Command = "advance_turn"
	CommandRequestHint      Command = "request_hint"
	CommandRestart          Command = "restart"
)

// Violation classifies why a command is illegal.
type Violation int

const (
	ViolationNone Violation = iota
	ViolationUnknownCommand
	ViolationGameOver
	ViolationPhase
	ViolationActor
)

// actorRule says who may issue a command.
type actorRule int

const (
	actorAnyone actorRule = iota
	actorActive           // the active player, whatever the controller
)

type commandRule struct {
	phases []Phase // nil means every phase
	actor  actorRule
}

var commandRules = map[Command]commandRule{
	CommandSelectDifficulty: {phases: []Phase{PhaseSetup}, actor: actorAnyone},
	CommandSelectGoal:       {phases: []Phase{PhaseGoalSelect}, actor: actorActive},
	CommandRollDice:         {phases: []Phase{PhaseRoll}, actor: actorActive},
	CommandBuy:              {phases: []Phase{PhaseDecision}, actor: actorActive},
	CommandDonate:           {phases: []Phase{PhaseDecision}, actor: actorActive},
	CommandPayPenalty:       {phases: []Phase{PhaseDecision}, actor: actorActive},
	CommandPass:             {phases: []Phase{PhaseDecision}, actor: actorActive},
	CommandSellAsset:        {phases: []Phase{PhaseRoll, PhaseSupport, PhaseMove, PhaseDecision, PhaseEndTurn}, actor: actorActive},
	CommandOpenSupport:      {phases: []Phase{PhaseRoll}, actor: actorActive},
	CommandOfferSupport:     {phases: []Phase{PhaseRoll, PhaseSupport}, actor: actorActive},
	CommandSkipSupport:      {phases: []Phase{PhaseSupport}, actor: actorActive},
	CommandRespondSupport:   {phases: []Phase{PhaseRoll}, actor: actorAnyone},
	CommandAdvanceTurn:      {phases: []Phase{PhaseEndTurn}, actor: actorActive},
	CommandRequestHint:      {phases: []Phase{PhaseDecision}, actor: actorActive},
	CommandRestart:          {},
}

// AllowedPhases returns the phases in which a command may run. A nil result
// with ok true means any phase.
func AllowedPhases(cmd Command) (phases []Phase, ok bool) {
	rule, ok := commandRules[cmd]
	if !ok {
		return nil, false
	}
	return append([]Phase(nil), rule.phases...), true
}

// LegalityChecker validates commands against the current phase and actor.
type LegalityChecker struct {
	gameState GameStateAccessor
}

// GameStateAccessor provides access to game state needed for legality checks.
type GameStateAccessor interface {
	// CurrentPhase returns the state machine phase
	CurrentPhase() Phase
	// ActivePlayer returns the player whose turn it is
	ActivePlayer() (PlayerInfo, bool)
	// FindPlayer finds player info by ID
	FindPlayer(playerID string) (PlayerInfo, bool)
}

// PlayerInfo provides information about a player for legality checks.
type PlayerInfo struct {
	PlayerID string
	Name     string
	Human    bool
	Escaped  bool
}

// LegalityResult represents the result of a legality check.
type LegalityResult struct {
	Legal     bool
	Violation Violation
	Reason    string
	Expected  []Phase
	Actual    Phase
	Details   map[string]string
}

// NewLegalityChecker creates a new legality checker.
func NewLegalityChecker(gameState GameStateAccessor) *LegalityChecker {
	return &LegalityChecker{gameState: gameState}
}

// CheckCommand validates that actorID may issue cmd right now. An empty
// actorID skips the actor check.
func (lc *LegalityChecker) CheckCommand(cmd Command, actorID string) LegalityResult {
	if lc == nil || lc.gameState == nil {
		return LegalityResult{Legal: false, Violation: ViolationGameOver, Reason: "no game in progress"}
	}

	rule, ok := commandRules[cmd]
	if !ok {
		return LegalityResult{
			Violation: ViolationUnknownCommand,
			Reason:    fmt.Sprintf("unknown command %q", cmd),
		}
	}

	phase := lc.gameState.CurrentPhase()
	if phase == PhaseGameOver && cmd != CommandRestart {
		return LegalityResult{
			Violation: ViolationGameOver,
			Reason:    "the game is over",
			Actual:    phase,
		}
	}

	if rule.phases != nil && !containsPhase(rule.phases, phase) {
		return LegalityResult{
			Violation: ViolationPhase,
			Reason:    fmt.Sprintf("%s is not allowed during %s", cmd, phase),
			Expected:  append([]Phase(nil), rule.phases...),
			Actual:    phase,
		}
	}

	if rule.actor == actorActive && actorID != "" {
		active, found := lc.gameState.ActivePlayer()
		if !found {
			return LegalityResult{
				Violation: ViolationActor,
				Reason:    "no active player",
				Actual:    phase,
			}
		}
		if active.PlayerID != actorID {
			return LegalityResult{
				Violation: ViolationActor,
				Reason:    fmt.Sprintf("it is %s's turn", active.Name),
				Actual:    phase,
				Details: map[string]string{
					"active_player": active.PlayerID,
					"actor":         actorID,
				},
			}
		}
	}

	return LegalityResult{Legal: true, Actual: phase}
}

// CheckPlayer verifies that a player exists and is still seated.
func (lc *LegalityChecker) CheckPlayer(playerID string) LegalityResult {
	if lc == nil || lc.gameState == nil {
		return LegalityResult{Violation: ViolationGameOver, Reason: "no game in progress"}
	}
	if _, found := lc.gameState.FindPlayer(playerID); !found {
		return LegalityResult{
			Violation: ViolationActor,
			Reason:    "player not found",
			Details:   map[string]string{"player_id": playerID},
		}
	}
	return LegalityResult{Legal: true, Actual: lc.gameState.CurrentPhase()}
}

func containsPhase(phases []Phase, phase Phase) bool {
	for _, p := range phases {
		if p == phase {
			return true
		}
	}
	return false
}
