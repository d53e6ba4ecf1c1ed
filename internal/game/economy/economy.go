// Package economy implements the side-effect-free money rules of the game.
// Every function here is pure; the engine applies the results to state.
package economy

import (
	"errors"
	"fmt"

	"github.com/moneyadventure/adventure-server-go/internal/game/tables"
)

const (
	// EscapeBonus is granted once when a player leaves the earner track.
	EscapeBonus = 100000
	// InvestorPaycheckBonus is added to every investor-track paycheck.
	InvestorPaycheckBonus = 10000
	// CharityBonusTurns is how many turns a donation grants two dice.
	CharityBonusTurns = 3
	// DonationPercent is the share of income donated on zero-cost charity cards.
	DonationPercent = 10
	// SellPercent is the share of acquisition cost returned on sale.
	SellPercent = 80
)

// ErrInsufficientFunds is returned when a transaction needs more cash than available.
var ErrInsufficientFunds = errors.New("insufficient funds")

// Sheet is the financial statement fields the rules read.
type Sheet struct {
	Cash            int
	Salary          int
	PassiveIncome   int
	MonthlyExpenses int
	SupportBonus    int
	HasEscaped      bool
}

// MonthlyCashflow returns salary + passive income - expenses.
func MonthlyCashflow(s Sheet) int {
	return s.Salary + s.PassiveIncome - s.MonthlyExpenses
}

// Paycheck returns the cash credited on a paycheck: the monthly cashflow, the
// investor bonus when escaped, and any pending support bonus.
func Paycheck(s Sheet) int {
	income := MonthlyCashflow(s) + s.SupportBonus
	if s.HasEscaped {
		income += InvestorPaycheckBonus
	}
	return income
}

// CanEscape reports whether the escape condition holds. Exact equality escapes.
func CanEscape(s Sheet) bool {
	return !s.HasEscaped && s.PassiveIncome >= s.MonthlyExpenses
}

// GoalAchieved reports whether an escaped player has reached their goal.
func GoalAchieved(s Sheet, goal *tables.LifeGoal) bool {
	if goal == nil || !s.HasEscaped {
		return false
	}
	return s.Cash >= goal.RequiredCash
}

// GoalAffordable reports whether cash covers the goal regardless of track.
func GoalAffordable(cash int, goal *tables.LifeGoal) bool {
	return goal != nil && cash >= goal.RequiredCash
}

// CanAfford reports whether cash covers cost.
func CanAfford(cash, cost int) bool {
	return cost <= cash
}

// Debit returns cash after paying cost, or ErrInsufficientFunds.
func Debit(cash, cost int) (int, error) {
	if cost < 0 {
		return cash, fmt.Errorf("negative cost %d", cost)
	}
	if !CanAfford(cash, cost) {
		return cash, fmt.Errorf("%w: need %d, have %d", ErrInsufficientFunds, cost, cash)
	}
	return cash - cost, nil
}

// PenaltyCharge splits a penalty into the part paid and the part written off.
// Cash never goes below zero.
func PenaltyCharge(cash, cost int) (paid, writtenOff int) {
	if cost <= 0 {
		return 0, 0
	}
	if cash < 0 {
		cash = 0
	}
	if cost <= cash {
		return cost, 0
	}
	return cash, cost - cash
}

// SellPrice returns floor(80% of acquisition cost).
func SellPrice(acquisitionCost int) int {
	if acquisitionCost <= 0 {
		return 0
	}
	return acquisitionCost * SellPercent / 100
}

// DonationAmount returns the card's fixed cost, or when it is zero,
// floor(10% of salary + passive income).
func DonationAmount(cardCost int, s Sheet) int {
	if cardCost > 0 {
		return cardCost
	}
	income := s.Salary + s.PassiveIncome
	if income <= 0 {
		return 0
	}
	return income * DonationPercent / 100
}

// FreedomProgress returns passive income as a percentage of expenses, clamped to 0..100.
func FreedomProgress(s Sheet) int {
	if s.MonthlyExpenses <= 0 {
		if s.PassiveIncome > 0 {
			return 100
		}
		return 0
	}
	pct := s.PassiveIncome * 100 / s.MonthlyExpenses
	switch {
	case pct < 0:
		return 0
	case pct > 100:
		return 100
	default:
		return pct
	}
}

// PaybackMonths returns how many months of cashflow repay cost (rounded up).
// Returns 0 when the card produces no cashflow.
func PaybackMonths(cost, cashflow int) int {
	if cashflow <= 0 || cost <= 0 {
		return 0
	}
	return (cost + cashflow - 1) / cashflow
}
