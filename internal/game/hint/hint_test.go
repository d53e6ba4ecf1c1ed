package hint

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/moneyadventure/adventure-server-go/internal/game/tables"
)

func TestSafeReturnsProviderText(t *testing.T) {
	safe := NewSafe(ProviderFunc(func(ctx context.Context, req Request) (string, error) {
		return "buy it", nil
	}), time.Second, zaptest.NewLogger(t))
	assert.Equal(t, "buy it", safe.Hint(context.Background(), Request{}))
}

func TestSafeFallsBack(t *testing.T) {
	tests := []struct {
		name     string
		provider Provider
	}{
		{"error", ProviderFunc(func(ctx context.Context, req Request) (string, error) {
			return "", errors.New("service down")
		})},
		{"empty", ProviderFunc(func(ctx context.Context, req Request) (string, error) {
			return "", nil
		})},
		{"panic", ProviderFunc(func(ctx context.Context, req Request) (string, error) {
			panic("boom")
		})},
		{"timeout", ProviderFunc(func(ctx context.Context, req Request) (string, error) {
			<-ctx.Done()
			time.Sleep(10 * time.Millisecond)
			return "too late", nil
		})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			safe := NewSafe(tt.provider, 20*time.Millisecond, zaptest.NewLogger(t))
			assert.Equal(t, Fallback, safe.Hint(context.Background(), Request{}))
		})
	}
}

func TestSafeNilProvider(t *testing.T) {
	var safe *Safe
	assert.Equal(t, Fallback, safe.Hint(context.Background(), Request{}))
	assert.Equal(t, Fallback, NewSafe(nil, 0, nil).Hint(context.Background(), Request{}))
}

func TestCoachHints(t *testing.T) {
	coach := NewCoach()
	ctx := context.Background()

	text, err := coach.Hint(ctx, Request{Cash: 1000, Salary: 2000, MonthlyExpenses: 1000,
		Card: tables.Card{Type: tables.CardOpportunity, Cost: 500, Cashflow: 100}})
	require.NoError(t, err)
	assert.Contains(t, text, "5 months")
	assert.Contains(t, text, "0% to 10%")

	text, err = coach.Hint(ctx, Request{Cash: 100, Card: tables.Card{Type: tables.CardOpportunity, Cost: 500, Cashflow: 100}})
	require.NoError(t, err)
	assert.Contains(t, text, "sell")

	text, err = coach.Hint(ctx, Request{Salary: 2000, Card: tables.Card{Type: tables.CardCharity}})
	require.NoError(t, err)
	assert.Contains(t, text, "$200")

	goal := tables.GoalCard(tables.LifeGoal{ID: "g", Title: "Trip", RequiredCash: 100000})
	text, err = coach.Hint(ctx, Request{Card: goal})
	require.NoError(t, err)
	assert.Contains(t, text, "goal")

	text, err = coach.Hint(ctx, Request{Card: tables.Card{Type: tables.CardDoodad, Cost: 50}})
	require.NoError(t, err)
	assert.Contains(t, text, "$50")

	_, err = coach.Hint(ctx, Request{Card: tables.Card{Type: tables.CardMarket}})
	assert.ErrorIs(t, err, ErrNoHint)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = coach.Hint(cancelled, Request{Card: tables.Card{Type: tables.CardDoodad}})
	assert.ErrorIs(t, err, context.Canceled)
}
