package game

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moneyadventure/adventure-server-go/internal/game/gamelog"
	"github.com/moneyadventure/adventure-server-go/internal/game/hint"
	"github.com/moneyadventure/adventure-server-go/internal/game/rules"
	"github.com/moneyadventure/adventure-server-go/internal/game/tables"
)

var apartment = tables.Card{ID: "o1", Type: tables.CardOpportunity, Title: "Small Apartment", Cost: 500, Cashflow: 100}

func TestRequestHintIsCachedUntilTurnEnds(t *testing.T) {
	var calls int32
	provider := hint.ProviderFunc(func(ctx context.Context, req hint.Request) (string, error) {
		atomic.AddInt32(&calls, 1)
		return "Ask yourself how long it takes to pay back " + req.Card.Title + ".", nil
	})
	h := newHarnessWithOptions(t, Options{Seed: 1, Roster: []tables.PlayerSeed{humanSeed("p1")}, Hints: provider})
	h.withCard(0, apartment)

	text, err := h.engine.RequestHint(context.Background())
	require.NoError(t, err)
	assert.Contains(t, text, "Small Apartment")

	again, err := h.engine.RequestHint(context.Background())
	require.NoError(t, err)
	assert.Equal(t, text, again)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	last, ok := h.engine.Log().Last()
	require.True(t, ok)
	assert.Equal(t, gamelog.KindHint, last.Kind)

	require.NoError(t, h.engine.Pass())
	require.NoError(t, h.engine.AdvanceTurn())
	assert.Empty(t, h.engine.Snapshot().PendingHint)
}

func TestRequestHintFallsBack(t *testing.T) {
	tests := []struct {
		name     string
		provider hint.Provider
	}{
		{"error", hint.ProviderFunc(func(context.Context, hint.Request) (string, error) {
			return "", errors.New("service down")
		})},
		{"timeout", hint.ProviderFunc(func(ctx context.Context, _ hint.Request) (string, error) {
			<-ctx.Done()
			time.Sleep(50 * time.Millisecond)
			return "too late", nil
		})},
		{"panic", hint.ProviderFunc(func(context.Context, hint.Request) (string, error) {
			panic("boom")
		})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarnessWithOptions(t, Options{
				Seed:        1,
				Roster:      []tables.PlayerSeed{humanSeed("p1")},
				Hints:       tt.provider,
				HintTimeout: 20 * time.Millisecond,
			})
			h.withCard(0, apartment)

			text, err := h.engine.RequestHint(context.Background())
			require.NoError(t, err)
			assert.Equal(t, hint.Fallback, text)
			assert.Equal(t, rules.PhaseDecision, h.engine.Phase())
		})
	}
}

func TestRequestHintOutsideDecision(t *testing.T) {
	h := newHarness(t, humanSeed("p1"))
	_, err := h.engine.RequestHint(context.Background())
	assert.True(t, errors.Is(err, ErrPhaseViolation))
}

func TestDefaultCoachHint(t *testing.T) {
	h := newHarness(t, humanSeed("p1"))
	h.withCard(0, apartment)

	text, err := h.engine.RequestHint(context.Background())
	require.NoError(t, err)
	assert.Contains(t, text, "5 months")
}
