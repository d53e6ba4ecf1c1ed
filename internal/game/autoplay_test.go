package game

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/moneyadventure/adventure-server-go/internal/game/rules"
	"github.com/moneyadventure/adventure-server-go/internal/game/tables"
)

func computerRoster() []tables.PlayerSeed {
	roster := tables.DefaultRoster()
	roster[0].Controller = tables.ControllerComputer
	roster[0].Personality = tables.PersonalityCautious
	return roster
}

func startAutoplay(t *testing.T, seed int64) *gameHarness {
	t.Helper()
	h := newHarnessWithOptions(t, Options{Seed: seed, Roster: computerRoster()})
	require.NoError(t, h.engine.SelectDifficulty(tables.DifficultyKids))
	return h
}

// supportLedger tracks the passive income players earn by giving support.
func supportLedger(h *gameHarness) map[string]int {
	ledger := make(map[string]int)
	h.engine.Events().SubscribeTyped(rules.EventSupportGiven, func(evt rules.Event) {
		pkg, _ := tables.LookupSupport(tables.SupportKind(evt.Data))
		ledger[evt.PlayerID] += pkg.GiverPassiveIncome
	})
	return ledger
}

// checkInvariants verifies the rules that must hold after every step.
func checkInvariants(t *testing.T, h *gameHarness, ledger map[string]int, escaped map[string]bool) {
	t.Helper()
	for _, p := range h.engine.state.Players {
		require.GreaterOrEqual(t, p.Cash, 0, "cash of %s", p.ID)
		require.Equal(t, assetCashflow(p)+ledger[p.ID], p.PassiveIncome, "passive income of %s", p.ID)
		require.Less(t, p.Position, tables.TrackLength(p.Track()))
		require.GreaterOrEqual(t, p.CharityTurnsRemaining, 0)
		if escaped[p.ID] {
			require.True(t, p.HasEscaped, "%s left the investor track", p.ID)
		}
		escaped[p.ID] = p.HasEscaped
	}
	phase := h.engine.state.Phase()
	if phase == rules.PhaseDecision {
		require.NotNil(t, h.engine.state.CurrentCard)
	}
	if phase == rules.PhaseGameOver {
		require.NotEmpty(t, h.engine.state.WinnerID)
	}
}

func TestAutoplayKeepsInvariants(t *testing.T) {
	for seed := int64(1); seed <= 12; seed++ {
		h := startAutoplay(t, seed)
		ledger := supportLedger(h)
		escaped := make(map[string]bool)
		turn := 1
		for step := 0; step < 3000 && h.engine.RunNext(); step++ {
			checkInvariants(t, h, ledger, escaped)
			require.GreaterOrEqual(t, h.engine.state.TurnCount(), turn, "turn count never decreases")
			turn = h.engine.state.TurnCount()
		}
	}
}

func TestSeededGamesAreReproducible(t *testing.T) {
	a := startAutoplay(t, 99)
	b := startAutoplay(t, 99)

	for step := 0; step < 800; step++ {
		okA := a.engine.RunNext()
		okB := b.engine.RunNext()
		require.Equal(t, okA, okB)
		if !okA {
			break
		}
		require.Equal(t, a.engine.Snapshot().Checksum(), b.engine.Snapshot().Checksum(), "diverged at step %d", step)
	}
}

func TestAutoplayEventuallyProducesAWinner(t *testing.T) {
	h := startAutoplay(t, 2024)
	h.engine.RunPending()

	snap := h.engine.Snapshot()
	if snap.Phase != rules.PhaseGameOver {
		t.Skipf("no winner within the step limit (turn %d)", snap.TurnCount)
	}
	assert.NotEmpty(t, snap.WinnerID)
	assert.Empty(t, h.engine.PendingSteps())
	assert.Positive(t, h.engine.History().Size())
}

func TestRunHonoursContextCancellation(t *testing.T) {
	engine, err := NewEngine(Options{
		Seed:   5,
		Roster: computerRoster(),
		Pacing: Pacing{RollDelay: time.Millisecond, ThinkDelay: time.Millisecond, EndTurnDelay: time.Millisecond},
	}, zaptest.NewLogger(t))
	require.NoError(t, err)
	require.NoError(t, engine.SelectDifficulty(tables.DifficultyTeen))

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	err = engine.Run(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	snap := engine.Snapshot()
	assert.NotEqual(t, rules.PhaseGoalSelect, snap.Phase, "computer players chose goals in real time")
	for _, p := range snap.Players {
		assert.NotNil(t, p.SelectedGoal)
	}
}
