package game

import (
	"go.uber.org/zap"

	"github.com/moneyadventure/adventure-server-go/internal/game/gamelog"
	"github.com/moneyadventure/adventure-server-go/internal/game/policy"
	"github.com/moneyadventure/adventure-server-go/internal/game/rules"
	"github.com/moneyadventure/adventure-server-go/internal/game/tables"
)

func (e *Engine) brainFor(p *Player) policy.Brain {
	if b, ok := e.brains[p.ID]; ok {
		return b
	}
	b := policy.NewRuleBrain(p.Behavior, e.rng)
	e.brains[p.ID] = b
	return b
}

// computerGoal picks a goal for the computer player whose selection turn it is.
func (e *Engine) computerGoal(p *Player) {
	if e.state.Phase() != rules.PhaseGoalSelect || p.SelectedGoal != nil {
		return
	}
	goal := e.brainFor(p).ChooseGoal(e.state.Goals)
	e.assignGoal(p, goal)
}

// computerTurn opens a computer player's turn: an investor may support an
// earner, an earner may ask a human investor for help, then it rolls.
func (e *Engine) computerTurn(p *Player) {
	if e.state.Phase() != rules.PhaseRoll || e.state.SupportRequest != nil {
		return
	}
	brain := e.brainFor(p)
	view := p.policyView()

	if p.HasEscaped {
		if !e.state.SupportUsed {
			if offer, ok := brain.OfferSupport(view, e.supportTargets(p.ID)); ok {
				if receiver, found := e.state.FindPlayer(offer.TargetID); found {
					e.speak(p, offer.Line)
					if err := e.giveSupport(p, receiver, offer.Kind); err != nil && e.logger != nil {
						e.logger.Debug("computer support failed", zap.String("player", p.ID), zap.Error(err))
					}
					e.scheduleFor(p, stepComputerRoll, e.opts.Pacing.ThinkDelay, e.computerRoll)
					return
				}
			}
		}
	} else if investor, ok := e.state.humanInvestor(); ok {
		if req, asked := brain.RequestSupport(view); asked {
			e.state.SupportRequest = &SupportRequest{RequesterID: p.ID, TargetID: investor.ID, Kind: req.Kind}
			evt := rules.NewEvent(rules.EventSupportRequested, p.ID, e.state.TurnCount())
			evt.TargetID = investor.ID
			evt.Data = string(req.Kind)
			e.publish(evt)
			e.speak(p, req.Line)
			pkg, _ := tables.LookupSupport(req.Kind)
			e.record(gamelog.KindSystem, p.ID, pkg.CostToGiver, "%s asks %s for support: %s (costs %s).",
				p.Name, investor.Name, pkg.Title, money(pkg.CostToGiver))
			return
		}
	}

	if p.Behavior != nil && p.Behavior.Catchphrase != "" && e.rng.Float64() < catchphraseChance {
		e.speak(p, p.Behavior.Catchphrase)
	}
	e.performRoll(p)
}

func (e *Engine) computerRoll(p *Player) {
	if e.state.Phase() != rules.PhaseRoll || e.state.SupportRequest != nil {
		return
	}
	e.performRoll(p)
}

// computerDecide resolves the pending card. Penalties are always paid.
func (e *Engine) computerDecide(p *Player) {
	card := e.state.CurrentCard
	if e.state.Phase() != rules.PhaseDecision || card == nil {
		return
	}
	if card.Type.IsPenalty() {
		_ = e.payPenalty(p)
		return
	}

	decision := e.brainFor(p).Decide(p.policyView(), *card)
	e.speak(p, decision.Line)
	var err error
	switch decision.Action {
	case policy.ActionBuy:
		err = e.buyCard(p)
	case policy.ActionDonate:
		err = e.donate(p)
	case policy.ActionPay:
		err = e.payPenalty(p)
	default:
		err = e.pass(p)
	}
	if err != nil {
		if e.logger != nil {
			e.logger.Debug("computer decision failed, passing",
				zap.String("player", p.ID), zap.Stringer("action", decision.Action), zap.Error(err))
		}
		if e.pass(p) != nil {
			_ = e.payPenalty(p)
		}
	}
}
