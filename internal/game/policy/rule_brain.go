package policy

import (
	"math/rand"
	"sort"

	"github.com/moneyadventure/adventure-server-go/internal/game/economy"
	"github.com/moneyadventure/adventure-server-go/internal/game/tables"
)

// Fallback propensities for a computer player without a behavior profile.
const (
	DefaultBuyChance      = 0.5
	DefaultCharityChance  = 0.5
	DefaultSupportChance  = 0.5
	DefaultRequestChance  = 0.3
	goalShortlistCapacity = 2
)

// RuleBrain makes decisions based on a BehaviorProfile. A nil profile falls
// back to coin flips and the default propensities.
type RuleBrain struct {
	Profile *tables.BehaviorProfile
	rng     *rand.Rand
}

// NewRuleBrain creates a RuleBrain drawing from rng. The rng is shared with
// the engine so a single seed reproduces a whole game.
func NewRuleBrain(profile *tables.BehaviorProfile, rng *rand.Rand) *RuleBrain {
	return &RuleBrain{
		Profile: profile,
		rng:     rng,
	}
}

func (b *RuleBrain) Name() string {
	if b.Profile == nil {
		return "default"
	}
	return string(b.Profile.Personality)
}

// Decide implements Brain.
func (b *RuleBrain) Decide(view PlayerView, card tables.Card) Decision {
	switch {
	case card.Type == tables.CardCharity:
		return b.decideCharity(view, card)
	case card.Type.IsPenalty():
		return Decision{Action: ActionPay}
	case card.Type.IsInvestment():
		return b.decideInvestment(view, card)
	default:
		return Decision{Action: ActionPass}
	}
}

func (b *RuleBrain) decideCharity(view PlayerView, card tables.Card) Decision {
	amount := economy.DonationAmount(card.Cost, sheetOf(view))
	if !economy.CanAfford(view.Cash, amount) {
		return b.pass()
	}
	chance := DefaultCharityChance
	if b.Profile != nil {
		chance = b.Profile.CharityPropensity
	}
	if b.rng.Float64() < chance {
		return Decision{Action: ActionDonate, Line: b.line(tables.DialogDonate)}
	}
	return b.pass()
}

func (b *RuleBrain) decideInvestment(view PlayerView, card tables.Card) Decision {
	if !economy.CanAfford(view.Cash, card.Cost) {
		return b.pass()
	}
	if b.Profile == nil {
		if b.rng.Float64() < DefaultBuyChance {
			return b.buy()
		}
		return b.pass()
	}

	ratio := 0.0
	if view.Cash > 0 {
		ratio = float64(card.Cost) / float64(view.Cash)
	}
	if ratio <= b.Profile.BuyThreshold {
		return b.buy()
	}
	if b.rng.Float64() < b.Profile.RiskTolerance {
		return b.buy()
	}
	return b.pass()
}

// ChooseGoal implements Brain. Aggressive and gambler profiles pick from the
// two most expensive goals, cautious profiles from the two cheapest, and
// everyone else uniformly.
func (b *RuleBrain) ChooseGoal(goals []tables.LifeGoal) tables.LifeGoal {
	sorted := append([]tables.LifeGoal(nil), goals...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].RequiredCash < sorted[j].RequiredCash
	})

	shortlist := sorted
	if b.Profile != nil && len(sorted) > goalShortlistCapacity {
		switch b.Profile.Personality {
		case tables.PersonalityAggressive, tables.PersonalityGambler:
			shortlist = sorted[len(sorted)-goalShortlistCapacity:]
		case tables.PersonalityCautious:
			shortlist = sorted[:goalShortlistCapacity]
		}
	}
	return shortlist[b.rng.Intn(len(shortlist))]
}

// OfferSupport implements Brain.
func (b *RuleBrain) OfferSupport(view PlayerView, targets []string) (SupportOffer, bool) {
	if len(targets) == 0 {
		return SupportOffer{}, false
	}
	chance := DefaultSupportChance
	if b.Profile != nil {
		chance = b.Profile.SupportPropensity
	}
	if b.rng.Float64() >= chance {
		return SupportOffer{}, false
	}

	var affordable []tables.SupportKind
	for _, kind := range tables.SupportKinds() {
		if pkg, ok := tables.LookupSupport(kind); ok && economy.CanAfford(view.Cash, pkg.CostToGiver) {
			affordable = append(affordable, kind)
		}
	}
	if len(affordable) == 0 {
		return SupportOffer{}, false
	}

	return SupportOffer{
		TargetID: targets[b.rng.Intn(len(targets))],
		Kind:     affordable[b.rng.Intn(len(affordable))],
		Line:     b.line(tables.DialogSupport),
	}, true
}

// RequestSupport implements Brain.
func (b *RuleBrain) RequestSupport(view PlayerView) (SupportRequest, bool) {
	if view.HasEscaped {
		return SupportRequest{}, false
	}
	chance := DefaultRequestChance
	if b.Profile != nil {
		chance = b.Profile.RequestPropensity
	}
	if b.rng.Float64() >= chance {
		return SupportRequest{}, false
	}
	kinds := tables.SupportKinds()
	return SupportRequest{
		Kind: kinds[b.rng.Intn(len(kinds))],
		Line: b.line(tables.DialogRequestSupport),
	}, true
}

// AcceptLine returns a thank-you line for accepted support.
func (b *RuleBrain) AcceptLine() string {
	return b.line(tables.DialogAcceptSupport)
}

func (b *RuleBrain) buy() Decision {
	return Decision{Action: ActionBuy, Line: b.line(tables.DialogBuy)}
}

func (b *RuleBrain) pass() Decision {
	return Decision{Action: ActionPass, Line: b.line(tables.DialogPass)}
}

func (b *RuleBrain) line(category tables.DialogCategory) string {
	lines := tables.Dialog(category)
	if len(lines) == 0 {
		return ""
	}
	return lines[b.rng.Intn(len(lines))]
}

func sheetOf(view PlayerView) economy.Sheet {
	return economy.Sheet{
		Cash:            view.Cash,
		Salary:          view.Salary,
		PassiveIncome:   view.PassiveIncome,
		MonthlyExpenses: view.MonthlyExpenses,
		HasEscaped:      view.HasEscaped,
	}
}
