package hint

import (
	"context"
	"fmt"

	"github.com/moneyadventure/adventure-server-go/internal/game/economy"
	"github.com/moneyadventure/adventure-server-go/internal/game/gamelog"
	"github.com/moneyadventure/adventure-server-go/internal/game/tables"
)

// Coach is a local Provider that asks a guiding question from the card's numbers.
type Coach struct{}

// NewCoach returns a Coach.
func NewCoach() *Coach {
	return &Coach{}
}

// Hint implements Provider.
func (c *Coach) Hint(ctx context.Context, req Request) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	card := req.Card
	sheet := economy.Sheet{
		Cash:            req.Cash,
		Salary:          req.Salary,
		PassiveIncome:   req.PassiveIncome,
		MonthlyExpenses: req.MonthlyExpenses,
		HasEscaped:      req.HasEscaped,
	}
	money := gamelog.FormatMoney

	switch card.Effect().Kind {
	case tables.EffectCashflowGrant:
		if !economy.CanAfford(req.Cash, card.Cost) {
			return fmt.Sprintf("You have %s but this costs %s. Is there an asset you could sell to make room?",
				money(req.Cash), money(card.Cost)), nil
		}
		months := economy.PaybackMonths(card.Cost, card.Cashflow)
		after := sheet
		after.PassiveIncome += card.Cashflow
		return fmt.Sprintf("It pays %s a month, so it repays itself in about %d months and your freedom progress would go from %d%% to %d%%. Is that worth %s of your cash?",
			money(card.Cashflow), months, economy.FreedomProgress(sheet), economy.FreedomProgress(after), money(card.Cost)), nil
	case tables.EffectGoalUnlock:
		if card.ID == tables.GoalCardID {
			return "This is the goal you have been saving for. Are you ready to make it real?", nil
		}
		return fmt.Sprintf("A dream costs %s and earns nothing each month. Does it bring you closer to your own goal?", money(card.Cost)), nil
	case tables.EffectDonation:
		amount := economy.DonationAmount(card.Cost, sheet)
		return fmt.Sprintf("Giving %s lets you roll two dice for the next %d turns. Can you spare it?",
			money(amount), economy.CharityBonusTurns), nil
	case tables.EffectFlatCost:
		return fmt.Sprintf("Unexpected costs like this %s happen. How could an emergency fund help next time?", money(card.Cost)), nil
	default:
		return "", ErrNoHint
	}
}
