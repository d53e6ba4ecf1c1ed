package rules

import (
	"fmt"
	"strings"
)

// Phase represents a state of the turn state machine.
type Phase int

const (
	PhaseSetup Phase = iota
	PhaseGoalSelect
	PhaseRoll
	PhaseMove
	PhaseDecision
	PhaseSupport
	PhaseEndTurn
	PhaseGameOver
)

var phaseNames = map[Phase]string{
	PhaseSetup:      "SETUP",
	PhaseGoalSelect: "GOAL_SELECT",
	PhaseRoll:       "ROLL",
	PhaseMove:       "MOVE",
	PhaseDecision:   "DECISION",
	PhaseSupport:    "SUPPORT",
	PhaseEndTurn:    "END_TURN",
	PhaseGameOver:   "GAME_OVER",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return fmt.Sprintf("PHASE_%d", int(p))
}

// MarshalText renders the phase by name in JSON snapshots.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText parses a phase name.
func (p *Phase) UnmarshalText(text []byte) error {
	parsed, err := ParsePhase(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// ParsePhase looks a phase up by name, case-insensitively.
func ParsePhase(name string) (Phase, error) {
	want := strings.ToUpper(strings.TrimSpace(name))
	for phase, n := range phaseNames {
		if n == want {
			return phase, nil
		}
	}
	return PhaseSetup, fmt.Errorf("unknown phase %q", name)
}

// transitions lists the legal successors of every phase. Restart is handled
// by Reset and is not a transition.
var transitions = map[Phase][]Phase{
	PhaseSetup:      {PhaseGoalSelect},
	PhaseGoalSelect: {PhaseGoalSelect, PhaseRoll},
	PhaseRoll:       {PhaseMove, PhaseSupport},
	PhaseSupport:    {PhaseRoll},
	PhaseMove:       {PhaseDecision, PhaseEndTurn, PhaseGameOver},
	PhaseDecision:   {PhaseEndTurn, PhaseGameOver},
	PhaseEndTurn:    {PhaseRoll},
	PhaseGameOver:   nil,
}

// CanTransition reports whether the state machine may move from one phase to another.
func CanTransition(from, to Phase) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// TurnManager tracks the phase, the active player index and the turn count.
type TurnManager struct {
	phase       Phase
	index       int
	turnNumber  int
	playerCount int
}

// NewTurnManager creates a turn manager in SETUP at turn 1 with the first player active.
func NewTurnManager(playerCount int) *TurnManager {
	return &TurnManager{
		phase:       PhaseSetup,
		turnNumber:  1,
		playerCount: playerCount,
	}
}

// RestoreTurnManager rebuilds a turn manager at an arbitrary position.
func RestoreTurnManager(playerCount, index, turnNumber int, phase Phase) (*TurnManager, error) {
	if playerCount <= 0 {
		return nil, fmt.Errorf("player count must be positive, got %d", playerCount)
	}
	if index < 0 || index >= playerCount {
		return nil, fmt.Errorf("player index %d out of range [0,%d)", index, playerCount)
	}
	if turnNumber < 1 {
		return nil, fmt.Errorf("turn number must be at least 1, got %d", turnNumber)
	}
	if _, ok := phaseNames[phase]; !ok {
		return nil, fmt.Errorf("unknown phase %d", int(phase))
	}
	return &TurnManager{
		phase:       phase,
		index:       index,
		turnNumber:  turnNumber,
		playerCount: playerCount,
	}, nil
}

// CurrentPhase returns the phase currently in progress.
func (tm *TurnManager) CurrentPhase() Phase {
	return tm.phase
}

// ActiveIndex returns the index of the player whose turn it is.
func (tm *TurnManager) ActiveIndex() int {
	return tm.index
}

// TurnNumber returns the current turn number (1-based).
func (tm *TurnManager) TurnNumber() int {
	return tm.turnNumber
}

// PlayerCount returns the number of seats.
func (tm *TurnManager) PlayerCount() int {
	return tm.playerCount
}

// Transition moves to the next phase if the move is legal.
func (tm *TurnManager) Transition(to Phase) error {
	if !CanTransition(tm.phase, to) {
		return fmt.Errorf("illegal phase transition %s -> %s", tm.phase, to)
	}
	tm.phase = to
	return nil
}

// AdvanceSelection moves goal selection to the next player. It reports true
// once every player has selected, leaving the first player active. The turn
// number is not affected.
func (tm *TurnManager) AdvanceSelection() bool {
	tm.index++
	if tm.index >= tm.playerCount {
		tm.index = 0
		return true
	}
	return false
}

// AdvancePlayer rotates to the next player and reports whether the index
// wrapped to zero, in which case the turn number is incremented.
func (tm *TurnManager) AdvancePlayer() bool {
	tm.index = (tm.index + 1) % tm.playerCount
	if tm.index == 0 {
		tm.turnNumber++
		return true
	}
	return false
}

// Reset returns to SETUP at turn 1 with the first player active.
func (tm *TurnManager) Reset() {
	tm.phase = PhaseSetup
	tm.index = 0
	tm.turnNumber = 1
}
