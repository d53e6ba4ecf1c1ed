// Package policy decides for computer-controlled players.
package policy

import (
	"fmt"

	"github.com/moneyadventure/adventure-server-go/internal/game/tables"
)

// PlayerView is the read-only projection of a player the policy sees.
type PlayerView struct {
	ID              string
	Name            string
	Cash            int
	Salary          int
	PassiveIncome   int
	MonthlyExpenses int
	HasEscaped      bool
}

// Action is the resolution a brain chooses for a pending card.
type Action int

const (
	ActionPass Action = iota
	ActionBuy
	ActionDonate
	ActionPay
)

var actionNames = map[Action]string{
	ActionPass:   "PASS",
	ActionBuy:    "BUY",
	ActionDonate: "DONATE",
	ActionPay:    "PAY",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return fmt.Sprintf("ACTION_%d", int(a))
}

// Decision is what a Brain returns for a pending card. Line is an optional
// speech line for the game log.
type Decision struct {
	Action Action
	Line   string
}

// SupportOffer is a support transfer a computer investor wants to make.
type SupportOffer struct {
	TargetID string
	Kind     tables.SupportKind
	Line     string
}

// SupportRequest is a computer earner asking a human investor for help.
type SupportRequest struct {
	Kind tables.SupportKind
	Line string
}

// Brain is the interface all computer player policies implement.
type Brain interface {
	// Decide resolves the pending card for the player.
	Decide(view PlayerView, card tables.Card) Decision
	// ChooseGoal picks one of the offered goals. goals is never empty.
	ChooseGoal(goals []tables.LifeGoal) tables.LifeGoal
	// OfferSupport optionally supports one of the eligible targets before rolling.
	OfferSupport(view PlayerView, targets []string) (SupportOffer, bool)
	// RequestSupport optionally asks a human investor for support before rolling.
	RequestSupport(view PlayerView) (SupportRequest, bool)
	// AcceptLine returns what the player says when a request is granted.
	AcceptLine() string
	// Name returns a human-readable identifier for debugging.
	Name() string
}
