package game

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/moneyadventure/adventure-server-go/internal/game/dice"
	"github.com/moneyadventure/adventure-server-go/internal/game/gamelog"
	"github.com/moneyadventure/adventure-server-go/internal/game/hint"
	"github.com/moneyadventure/adventure-server-go/internal/game/rules"
	"github.com/moneyadventure/adventure-server-go/internal/game/tables"
	"github.com/moneyadventure/adventure-server-go/internal/game/targeting"
)

// SelectDifficulty scales starting cash, expenses and goals, then opens goal selection.
func (e *Engine) SelectDifficulty(level tables.DifficultyLevel) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := e.authorize(rules.CommandSelectDifficulty, false); err != nil {
		return err
	}
	settings, ok := tables.LookupDifficulty(level)
	if !ok {
		return e.reject(rules.CommandSelectDifficulty, fmt.Errorf("%w: %q", ErrUnknownDifficulty, level))
	}

	e.state.Difficulty = settings
	e.state.Goals = tables.ScaledGoals(settings)
	for i, p := range e.state.Players {
		seed := e.roster[i]
		p.Cash = settings.ScaleCash(seed.Cash)
		p.MonthlyExpenses = settings.ScaleExpenses(seed.MonthlyExpenses)
	}
	evt := rules.NewEvent(rules.EventDifficultySelected, "", e.state.TurnCount())
	evt.Data = string(settings.ID)
	e.publish(evt)
	e.record(gamelog.KindSystem, "", 0, "Difficulty set to %s (%s).", settings.Name, settings.AgeRange)

	e.transition(rules.PhaseGoalSelect)
	e.promptGoal()
	return nil
}

// promptGoal hands the selecting seat to its controller.
func (e *Engine) promptGoal() {
	p := e.state.CurrentPlayer()
	if p.IsHuman() {
		e.record(gamelog.KindSystem, p.ID, 0, "%s, choose your life goal.", p.Name)
		return
	}
	e.scheduleFor(p, stepComputerGoal, e.opts.Pacing.ThinkDelay, e.computerGoal)
}

// SelectGoal assigns a goal to the human player whose selection turn it is.
func (e *Engine) SelectGoal(goalID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, err := e.authorize(rules.CommandSelectGoal, true)
	if err != nil {
		return err
	}
	goal, ok := tables.FindGoal(e.state.Goals, goalID)
	if !ok {
		return e.reject(rules.CommandSelectGoal, fmt.Errorf("%w: %q", ErrUnknownGoal, goalID))
	}
	e.assignGoal(p, goal)
	return nil
}

func (e *Engine) assignGoal(p *Player, goal tables.LifeGoal) {
	p.SelectedGoal = &goal
	evt := rules.NewEventWithAmount(rules.EventGoalSelected, p.ID, e.state.TurnCount(), goal.RequiredCash)
	evt.SourceID = goal.ID
	e.publish(evt)
	e.record(gamelog.KindAction, p.ID, goal.RequiredCash, "%s chose the goal %s (%s).", p.Name, goal.Title, money(goal.RequiredCash))

	if !e.state.turn.AdvanceSelection() {
		e.transition(rules.PhaseGoalSelect)
		e.promptGoal()
		return
	}
	e.transition(rules.PhaseRoll)
	e.record(gamelog.KindSystem, "", 0, "Every player has a goal. Let the adventure begin!")
	e.history.Record(e.snapshotLocked())
	e.beginTurn()
}

// RollDice rolls for the human player and moves their token.
func (e *Engine) RollDice() (dice.Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, err := e.authorize(rules.CommandRollDice, true)
	if err != nil {
		return dice.Result{}, err
	}
	if e.state.SupportRequest != nil {
		return dice.Result{}, e.reject(rules.CommandRollDice, ErrSupportRequestPending)
	}
	e.performRoll(p)
	return *e.state.LastRoll, nil
}

// Buy buys the pending investment or dream card.
func (e *Engine) Buy() error {
	return e.resolveCard(rules.CommandBuy, e.buyCard)
}

// Donate pays the pending charity card and grants the two-dice bonus.
func (e *Engine) Donate() error {
	return e.resolveCard(rules.CommandDonate, e.donate)
}

// PayPenalty pays the pending doodad or audit.
func (e *Engine) PayPenalty() error {
	return e.resolveCard(rules.CommandPayPenalty, e.payPenalty)
}

// Pass declines the pending card.
func (e *Engine) Pass() error {
	return e.resolveCard(rules.CommandPass, e.pass)
}

func (e *Engine) resolveCard(cmd rules.Command, apply func(*Player) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, err := e.authorize(cmd, true)
	if err != nil {
		return err
	}
	if err := apply(p); err != nil {
		return e.reject(cmd, err)
	}
	return nil
}

// SellAsset sells one of the human player's assets and returns the sale price.
func (e *Engine) SellAsset(assetID string) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, err := e.authorize(rules.CommandSellAsset, true)
	if err != nil {
		return 0, err
	}
	if err := e.targets.ValidateTarget(p.ID, assetID, targeting.OwnedAsset); err != nil {
		return 0, e.reject(rules.CommandSellAsset, err)
	}
	price, err := e.sellAsset(p, assetID)
	if err != nil {
		return 0, e.reject(rules.CommandSellAsset, err)
	}
	return price, nil
}

// OpenSupport enters the SUPPORT phase for a human investor.
func (e *Engine) OpenSupport() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, err := e.authorize(rules.CommandOpenSupport, true)
	if err != nil {
		return err
	}
	if err := e.canGiveSupport(p); err != nil {
		return e.reject(rules.CommandOpenSupport, err)
	}
	if len(e.supportTargets(p.ID)) == 0 {
		return e.reject(rules.CommandOpenSupport, fmt.Errorf("%w: nobody is on the earner track", ErrInvalidTarget))
	}
	e.transition(rules.PhaseSupport)
	e.record(gamelog.KindSystem, p.ID, 0, "%s is choosing someone to support.", p.Name)
	return nil
}

// OfferSupport gives a support package to targetID. From SUPPORT the turn
// returns to ROLL.
func (e *Engine) OfferSupport(targetID string, kind tables.SupportKind) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, err := e.authorize(rules.CommandOfferSupport, true)
	if err != nil {
		return err
	}
	if err := e.canGiveSupport(p); err != nil {
		return e.reject(rules.CommandOfferSupport, err)
	}
	if err := e.targets.ValidateTarget(p.ID, targetID, targeting.SupportRecipient); err != nil {
		return e.reject(rules.CommandOfferSupport, err)
	}
	receiver, _ := e.state.FindPlayer(targetID)
	if err := e.giveSupport(p, receiver, kind); err != nil {
		return e.reject(rules.CommandOfferSupport, err)
	}
	if e.state.Phase() == rules.PhaseSupport {
		e.transition(rules.PhaseRoll)
	}
	return nil
}

func (e *Engine) canGiveSupport(p *Player) error {
	if !p.HasEscaped {
		return ErrNotInvestor
	}
	if e.state.SupportUsed {
		return ErrSupportAlreadyUsed
	}
	return nil
}

// SkipSupport leaves the SUPPORT phase without giving anything.
func (e *Engine) SkipSupport() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := e.authorize(rules.CommandSkipSupport, true); err != nil {
		return err
	}
	e.transition(rules.PhaseRoll)
	return nil
}

// RespondToSupportRequest answers a computer player's request. An empty kind
// accepts the requested package. An accept the investor cannot afford is
// logged and counts as a decline.
func (e *Engine) RespondToSupportRequest(accept bool, kind tables.SupportKind) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	requester, err := e.authorize(rules.CommandRespondSupport, false)
	if err != nil {
		return err
	}
	req := e.state.SupportRequest
	if req == nil || req.RequesterID != requester.ID {
		return e.reject(rules.CommandRespondSupport, ErrNoSupportRequest)
	}
	responder, ok := e.state.FindPlayer(req.TargetID)
	if !ok || !responder.IsHuman() {
		return e.reject(rules.CommandRespondSupport, ErrNotHumanTurn)
	}
	if kind == "" {
		kind = req.Kind
	}
	if _, ok := tables.LookupSupport(kind); !ok {
		return e.reject(rules.CommandRespondSupport, fmt.Errorf("%w: support kind %q", ErrInvalidTarget, kind))
	}

	e.state.SupportRequest = nil
	accepted := false
	if accept {
		if err := e.giveSupport(responder, requester, kind); err != nil {
			e.record(gamelog.KindAction, responder.ID, 0, "%s could not afford the support: %v.", responder.Name, err)
		} else {
			accepted = true
		}
	}

	if accepted {
		e.speak(requester, e.brainFor(requester).AcceptLine())
		e.scheduleFor(requester, stepComputerRoll, e.opts.Pacing.ThinkDelay, e.computerRoll)
		return nil
	}
	evt := rules.NewEvent(rules.EventSupportDeclined, responder.ID, e.state.TurnCount())
	evt.TargetID = requester.ID
	e.publish(evt)
	e.record(gamelog.KindAction, responder.ID, 0, "%s declined %s's request.", responder.Name, requester.Name)
	e.scheduleFor(requester, stepComputerRoll, e.opts.Pacing.RollDelay, e.computerRoll)
	return nil
}

// AdvanceTurn ends the human player's turn.
func (e *Engine) AdvanceTurn() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := e.authorize(rules.CommandAdvanceTurn, true); err != nil {
		return err
	}
	e.advanceTurn()
	return nil
}

// RequestHint asks the hint provider about the pending card. The answer is
// cached until the card is resolved. Provider failures return the fallback.
func (e *Engine) RequestHint(ctx context.Context) (string, error) {
	e.mu.Lock()
	p, err := e.authorize(rules.CommandRequestHint, true)
	if err != nil {
		e.mu.Unlock()
		return "", err
	}
	if e.state.PendingHint != "" {
		text := e.state.PendingHint
		e.mu.Unlock()
		return text, nil
	}
	if e.state.CurrentCard == nil {
		e.mu.Unlock()
		return "", e.reject(rules.CommandRequestHint, ErrCardMismatch)
	}
	card := *e.state.CurrentCard
	turn := e.state.TurnCount()
	req := hint.Request{
		PlayerName:      p.Name,
		Cash:            p.Cash,
		Salary:          p.Salary,
		PassiveIncome:   p.PassiveIncome,
		MonthlyExpenses: p.MonthlyExpenses,
		HasEscaped:      p.HasEscaped,
		Card:            card,
	}
	state := e.state
	e.mu.Unlock()

	// The provider may be slow; the engine stays responsive meanwhile.
	text := e.hints.Hint(ctx, req)

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != state || e.state.TurnCount() != turn || e.state.CurrentCard == nil || e.state.CurrentCard.ID != card.ID {
		return text, nil
	}
	e.state.PendingHint = text
	evt := rules.NewEvent(rules.EventHintIssued, p.ID, turn)
	evt.SourceID = card.ID
	e.publish(evt)
	e.record(gamelog.KindHint, p.ID, 0, "Hint: %s", text)
	return text, nil
}

// Restart cancels pending steps and returns to SETUP with the same roster.
func (e *Engine) Restart() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.sched.cancelAll()
	e.stats.ResetWatchers()
	e.history.Reset()
	e.log.Reset()
	e.setup()
	e.publish(rules.NewEvent(rules.EventGameRestarted, "", e.state.TurnCount()))
	if e.logger != nil {
		e.logger.Info("game restarted", zap.String("game_id", e.gameID))
	}
}
