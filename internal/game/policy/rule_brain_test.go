package policy

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moneyadventure/adventure-server-go/internal/game/tables"
)

func profile(t *testing.T, p tables.Personality) *tables.BehaviorProfile {
	t.Helper()
	prof, ok := tables.LookupProfile(p)
	require.True(t, ok)
	return &prof
}

func TestDecidePaysPenalties(t *testing.T) {
	brain := NewRuleBrain(profile(t, tables.PersonalityGambler), rand.New(rand.NewSource(1)))
	view := PlayerView{Cash: 0}
	for _, typ := range []tables.CardType{tables.CardDoodad, tables.CardAudit} {
		assert.Equal(t, ActionPay, brain.Decide(view, tables.Card{Type: typ, Cost: 5000}).Action)
	}
}

func TestDecidePassesWhenUnaffordable(t *testing.T) {
	brain := NewRuleBrain(profile(t, tables.PersonalityGambler), rand.New(rand.NewSource(1)))
	view := PlayerView{Cash: 499}
	card := tables.Card{Type: tables.CardOpportunity, Cost: 500, Cashflow: 100}
	for i := 0; i < 100; i++ {
		assert.Equal(t, ActionPass, brain.Decide(view, card).Action)
	}
}

func TestDecideBuysUnderThreshold(t *testing.T) {
	// balanced threshold 0.5: 500/1000 is at the threshold
	brain := NewRuleBrain(profile(t, tables.PersonalityBalanced), rand.New(rand.NewSource(2)))
	view := PlayerView{Cash: 1000}
	card := tables.Card{Type: tables.CardOpportunity, Cost: 500, Cashflow: 100}
	for i := 0; i < 100; i++ {
		d := brain.Decide(view, card)
		require.Equal(t, ActionBuy, d.Action)
		assert.NotEmpty(t, d.Line)
	}
}

func TestDecideAboveThresholdFollowsRiskTolerance(t *testing.T) {
	prof := profile(t, tables.PersonalityCautious) // risk 0.2, threshold 0.3
	brain := NewRuleBrain(prof, rand.New(rand.NewSource(3)))
	view := PlayerView{Cash: 1000}
	card := tables.Card{Type: tables.CardOpportunity, Cost: 900, Cashflow: 150}

	const rounds = 5000
	buys := 0
	for i := 0; i < rounds; i++ {
		if brain.Decide(view, card).Action == ActionBuy {
			buys++
		}
	}
	rate := float64(buys) / rounds
	assert.InDelta(t, prof.RiskTolerance, rate, 0.03)
}

func TestDecideCharityFollowsPropensity(t *testing.T) {
	prof := profile(t, tables.PersonalityCharitable) // 0.9
	brain := NewRuleBrain(prof, rand.New(rand.NewSource(4)))
	view := PlayerView{Cash: 10000, Salary: 2000}
	card := tables.Card{Type: tables.CardCharity}

	const rounds = 5000
	donations := 0
	for i := 0; i < rounds; i++ {
		if brain.Decide(view, card).Action == ActionDonate {
			donations++
		}
	}
	assert.InDelta(t, prof.CharityPropensity, float64(donations)/rounds, 0.03)
}

func TestDecideCharityNeverDonatesUnaffordable(t *testing.T) {
	brain := NewRuleBrain(profile(t, tables.PersonalityCharitable), rand.New(rand.NewSource(5)))
	view := PlayerView{Cash: 100, Salary: 2000} // 10% is 200
	for i := 0; i < 200; i++ {
		assert.Equal(t, ActionPass, brain.Decide(view, tables.Card{Type: tables.CardCharity}).Action)
	}
}

func TestDecideWithoutProfileFlipsCoin(t *testing.T) {
	brain := NewRuleBrain(nil, rand.New(rand.NewSource(6)))
	assert.Equal(t, "default", brain.Name())
	view := PlayerView{Cash: 10000}
	card := tables.Card{Type: tables.CardBusiness, Cost: 9000, Cashflow: 1000}

	const rounds = 4000
	buys := 0
	for i := 0; i < rounds; i++ {
		if brain.Decide(view, card).Action == ActionBuy {
			buys++
		}
	}
	assert.InDelta(t, DefaultBuyChance, float64(buys)/rounds, 0.04)
}

func TestDecideMarketPasses(t *testing.T) {
	brain := NewRuleBrain(nil, rand.New(rand.NewSource(1)))
	assert.Equal(t, ActionPass, brain.Decide(PlayerView{Cash: 1000}, tables.Card{Type: tables.CardMarket}).Action)
}

func TestChooseGoalBias(t *testing.T) {
	goals := tables.LifeGoals()
	tests := []struct {
		personality tables.Personality
		allowed     []string
	}{
		{tables.PersonalityAggressive, []string{"dream_house", "space_travel"}},
		{tables.PersonalityGambler, []string{"dream_house", "space_travel"}},
		{tables.PersonalityCautious, []string{"world_trip", "sports_car"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.personality), func(t *testing.T) {
			brain := NewRuleBrain(profile(t, tt.personality), rand.New(rand.NewSource(7)))
			seen := map[string]bool{}
			for i := 0; i < 200; i++ {
				goal := brain.ChooseGoal(goals)
				assert.Contains(t, tt.allowed, goal.ID)
				seen[goal.ID] = true
			}
			assert.Len(t, seen, 2, "both shortlisted goals should come up")
		})
	}

	balanced := NewRuleBrain(profile(t, tables.PersonalityBalanced), rand.New(rand.NewSource(8)))
	seen := map[string]bool{}
	for i := 0; i < 500; i++ {
		seen[balanced.ChooseGoal(goals).ID] = true
	}
	assert.Len(t, seen, len(goals), "balanced players choose uniformly")
}

func TestOfferSupport(t *testing.T) {
	brain := NewRuleBrain(profile(t, tables.PersonalityCharitable), rand.New(rand.NewSource(9)))

	_, ok := brain.OfferSupport(PlayerView{Cash: 100000}, nil)
	assert.False(t, ok, "no targets")

	offers := 0
	for i := 0; i < 1000; i++ {
		offer, ok := brain.OfferSupport(PlayerView{Cash: 100000}, []string{"p2", "p4"})
		if !ok {
			continue
		}
		offers++
		assert.Contains(t, []string{"p2", "p4"}, offer.TargetID)
		assert.Contains(t, tables.SupportKinds(), offer.Kind)
	}
	assert.InDelta(t, 0.8, float64(offers)/1000, 0.05)

	poor := NewRuleBrain(&tables.BehaviorProfile{SupportPropensity: 1}, rand.New(rand.NewSource(10)))
	for i := 0; i < 100; i++ {
		offer, ok := poor.OfferSupport(PlayerView{Cash: 2000}, []string{"p2"})
		require.True(t, ok)
		assert.Equal(t, tables.SupportJob, offer.Kind, "only JOB is affordable with 2000")
	}
	_, ok = poor.OfferSupport(PlayerView{Cash: 999}, []string{"p2"})
	assert.False(t, ok)
}

func TestRequestSupport(t *testing.T) {
	brain := NewRuleBrain(nil, rand.New(rand.NewSource(11)))

	requests := 0
	for i := 0; i < 4000; i++ {
		if _, ok := brain.RequestSupport(PlayerView{}); ok {
			requests++
		}
	}
	assert.InDelta(t, DefaultRequestChance, float64(requests)/4000, 0.03)

	always := NewRuleBrain(&tables.BehaviorProfile{RequestPropensity: 1}, rand.New(rand.NewSource(12)))
	_, ok := always.RequestSupport(PlayerView{HasEscaped: true})
	assert.False(t, ok, "investors never ask for support")
}

func TestActionString(t *testing.T) {
	assert.Equal(t, "DONATE", ActionDonate.String())
	assert.Equal(t, "ACTION_9", Action(9).String())
}
