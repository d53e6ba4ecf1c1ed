package rules

import "testing"

func TestPhaseTransitions(t *testing.T) {
	legal := []struct{ from, to Phase }{
		{PhaseSetup, PhaseGoalSelect},
		{PhaseGoalSelect, PhaseRoll},
		{PhaseRoll, PhaseMove},
		{PhaseRoll, PhaseSupport},
		{PhaseSupport, PhaseRoll},
		{PhaseMove, PhaseDecision},
		{PhaseMove, PhaseEndTurn},
		{PhaseMove, PhaseGameOver},
		{PhaseDecision, PhaseGameOver},
		{PhaseEndTurn, PhaseRoll},
	}
	for _, tc := range legal {
		if !CanTransition(tc.from, tc.to) {
			t.Fatalf("expected %s -> %s to be legal", tc.from, tc.to)
		}
	}

	illegal := []struct{ from, to Phase }{
		{PhaseRoll, PhaseDecision},
		{PhaseEndTurn, PhaseGameOver},
		{PhaseGameOver, PhaseRoll},
		{PhaseDecision, PhaseRoll},
	}
	for _, tc := range illegal {
		if CanTransition(tc.from, tc.to) {
			t.Fatalf("expected %s -> %s to be illegal", tc.from, tc.to)
		}
	}
}

func TestTurnManagerTransitionRejectsIllegalMove(t *testing.T) {
	tm := NewTurnManager(2)
	if err := tm.Transition(PhaseRoll); err == nil {
		t.Fatalf("expected SETUP -> ROLL to fail")
	}
	if tm.CurrentPhase() != PhaseSetup {
		t.Fatalf("expected phase to remain SETUP, got %s", tm.CurrentPhase())
	}
}

func TestTurnManagerSelectionDoesNotCountTurns(t *testing.T) {
	tm := NewTurnManager(3)
	if tm.AdvanceSelection() || tm.AdvanceSelection() {
		t.Fatalf("selection finished too early")
	}
	if !tm.AdvanceSelection() {
		t.Fatalf("expected selection to finish after the last player")
	}
	if tm.ActiveIndex() != 0 {
		t.Fatalf("expected first player active after selection, got %d", tm.ActiveIndex())
	}
	if tm.TurnNumber() != 1 {
		t.Fatalf("expected turn 1 after selection, got %d", tm.TurnNumber())
	}
}

func TestTurnManagerAdvanceWrapsTurn(t *testing.T) {
	tm := NewTurnManager(4)

	for i := 0; i < 3; i++ {
		if tm.AdvancePlayer() {
			t.Fatalf("unexpected wrap at player %d", tm.ActiveIndex())
		}
		if tm.TurnNumber() != 1 {
			t.Fatalf("expected to remain on turn 1, got turn %d", tm.TurnNumber())
		}
	}

	if !tm.AdvancePlayer() {
		t.Fatalf("expected wrap from last player to first")
	}
	if tm.TurnNumber() != 2 {
		t.Fatalf("expected turn number 2 after wrap, got %d", tm.TurnNumber())
	}
	if tm.ActiveIndex() != 0 {
		t.Fatalf("expected first player after wrap, got %d", tm.ActiveIndex())
	}
}

func TestRestoreTurnManagerValidates(t *testing.T) {
	if _, err := RestoreTurnManager(0, 0, 1, PhaseRoll); err == nil {
		t.Fatalf("expected error for zero players")
	}
	if _, err := RestoreTurnManager(2, 2, 1, PhaseRoll); err == nil {
		t.Fatalf("expected error for index out of range")
	}
	if _, err := RestoreTurnManager(2, 0, 0, PhaseRoll); err == nil {
		t.Fatalf("expected error for turn 0")
	}
	tm, err := RestoreTurnManager(2, 1, 5, PhaseDecision)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tm.Reset()
	if tm.CurrentPhase() != PhaseSetup || tm.ActiveIndex() != 0 || tm.TurnNumber() != 1 {
		t.Fatalf("reset left %s/%d/%d", tm.CurrentPhase(), tm.ActiveIndex(), tm.TurnNumber())
	}
}

func TestParsePhase(t *testing.T) {
	p, err := ParsePhase("end_turn")
	if err != nil || p != PhaseEndTurn {
		t.Fatalf("expected END_TURN, got %s (%v)", p, err)
	}
	if _, err := ParsePhase("UPKEEP"); err == nil {
		t.Fatalf("expected unknown phase error")
	}
	if PhaseGameOver.String() != "GAME_OVER" || Phase(99).String() != "PHASE_99" {
		t.Fatalf("unexpected phase names")
	}
}
