package game

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/moneyadventure/adventure-server-go/internal/game/dice"
	"github.com/moneyadventure/adventure-server-go/internal/game/economy"
	"github.com/moneyadventure/adventure-server-go/internal/game/gamelog"
	"github.com/moneyadventure/adventure-server-go/internal/game/rules"
	"github.com/moneyadventure/adventure-server-go/internal/game/tables"
)

const (
	stepComputerGoal  = "computer_goal"
	stepComputerTurn  = "computer_turn"
	stepComputerRoll  = "computer_roll"
	stepLanding       = "resolve_landing"
	stepComputerCard  = "computer_decision"
	stepComputerEnd   = "computer_end_turn"
	catchphraseChance = 0.4
)

func money(amount int) string {
	return gamelog.FormatMoney(amount)
}

// beginTurn announces the active player and hands computer players to the scheduler.
func (e *Engine) beginTurn() {
	p := e.state.CurrentPlayer()
	e.publish(rules.NewEvent(rules.EventTurnBegan, p.ID, e.state.TurnCount()))
	e.record(gamelog.KindSystem, p.ID, 0, "Turn %d: %s's turn (%s).", e.state.TurnCount(), p.Name, p.Track())
	if !p.IsHuman() {
		e.scheduleFor(p, stepComputerTurn, e.opts.Pacing.ThinkDelay, e.computerTurn)
	}
}

// scheduleFor queues fn for p. The step is skipped when the turn moved on.
func (e *Engine) scheduleFor(p *Player, name string, delay time.Duration, fn func(p *Player)) {
	turn := e.state.TurnCount()
	id := p.ID
	e.sched.schedule(name, delay, func() {
		current := e.state.CurrentPlayer()
		if current.ID != id || e.state.TurnCount() != turn {
			return
		}
		fn(current)
	})
}

// performRoll rolls for p, moves the token and queues the landing.
func (e *Engine) performRoll(p *Player) {
	bonus := p.CharityTurnsRemaining > 0
	result := dice.Movement(e.rng, bonus)
	e.state.LastRoll = &result

	track := p.Track()
	p.Position = (p.Position + result.Total) % tables.TrackLength(track)

	rolled := rules.NewEventWithAmount(rules.EventDiceRolled, p.ID, e.state.TurnCount(), result.Total)
	e.publish(rolled)
	moved := rules.NewEventWithAmount(rules.EventPlayerMoved, p.ID, e.state.TurnCount(), p.Position)
	moved.Data = string(tables.SpaceAt(track, p.Position))
	e.publish(moved)

	if bonus {
		e.record(gamelog.KindAction, p.ID, result.Total, "%s rolled %v = %d with the charity bonus.", p.Name, result.Values, result.Total)
	} else {
		e.record(gamelog.KindAction, p.ID, result.Total, "%s rolled a %d.", p.Name, result.Total)
	}
	e.transition(rules.PhaseMove)
	e.scheduleFor(p, stepLanding, e.opts.Pacing.RollDelay, e.resolveLanding)
}

// resolveLanding applies the space p landed on.
func (e *Engine) resolveLanding(p *Player) {
	if e.state.Phase() != rules.PhaseMove {
		return
	}
	track := p.Track()
	space := tables.SpaceAt(track, p.Position)
	e.record(gamelog.KindSystem, p.ID, 0, "%s landed on %s.", p.Name, space.Label())

	if space == tables.SpacePaycheck || p.Position == 0 {
		e.payday(p)
		return
	}

	var (
		card tables.Card
		ok   bool
	)
	switch space {
	case tables.SpaceCharity:
		card, ok = tables.CharityDeck().Draw(e.rng)
	case tables.SpaceOpportunity, tables.SpaceBusiness:
		card, ok = tables.OpportunityDeck(track).Draw(e.rng)
	case tables.SpaceDoodad, tables.SpaceAudit:
		card, ok = tables.PenaltyDeck(track).Draw(e.rng)
	case tables.SpaceDream:
		if economy.GoalAffordable(p.Cash, p.SelectedGoal) {
			card, ok = tables.GoalCard(*p.SelectedGoal), true
		} else {
			card, ok = tables.DreamDeck().Draw(e.rng)
		}
	}
	if !ok {
		e.enterEndTurn(p)
		return
	}
	e.presentCard(p, card)
}

func (e *Engine) presentCard(p *Player, card tables.Card) {
	e.state.CurrentCard = &card
	e.state.PendingHint = ""
	evt := rules.NewEventWithAmount(rules.EventCardDrawn, p.ID, e.state.TurnCount(), card.Cost)
	evt.SourceID = card.ID
	evt.Data = string(card.Type)
	e.publish(evt)
	e.record(gamelog.KindSystem, p.ID, card.Cost, "%s drew %s: %s (%s).", p.Name, card.Type, card.Title, money(card.Cost))
	e.transition(rules.PhaseDecision)
	if !p.IsHuman() {
		e.scheduleFor(p, stepComputerCard, e.opts.Pacing.ThinkDelay, e.computerDecide)
	}
}

// payday credits the paycheck, then checks escape and the goal.
func (e *Engine) payday(p *Player) {
	income := economy.Paycheck(p.sheet())
	p.SupportBonus = 0
	if income >= 0 {
		p.Cash += income
	} else {
		paid, off := economy.PenaltyCharge(p.Cash, -income)
		p.Cash -= paid
		if off > 0 {
			e.writeOff(p, off, "paycheck shortfall")
		}
	}
	e.publish(rules.NewEventWithAmount(rules.EventPaycheck, p.ID, e.state.TurnCount(), income))
	e.record(gamelog.KindAction, p.ID, income, "Payday! %s received %s.", p.Name, money(income))

	e.checkEscape(p)
	if economy.GoalAchieved(p.sheet(), p.SelectedGoal) {
		e.declareWinner(p, p.SelectedGoal.Title)
		return
	}
	e.enterEndTurn(p)
}

// checkEscape moves p to the investor track once passive income covers expenses.
func (e *Engine) checkEscape(p *Player) bool {
	if !economy.CanEscape(p.sheet()) {
		return false
	}
	p.HasEscaped = true
	p.Cash += economy.EscapeBonus
	p.Position = 0
	e.publish(rules.NewEventWithAmount(rules.EventEscaped, p.ID, e.state.TurnCount(), economy.EscapeBonus))
	e.record(gamelog.KindMilestone, p.ID, economy.EscapeBonus,
		"%s escaped the rat race! Passive income %s covers expenses %s. Bonus %s.",
		p.Name, money(p.PassiveIncome), money(p.MonthlyExpenses), money(economy.EscapeBonus))
	if e.logger != nil {
		e.logger.Info("player escaped", zap.String("game_id", e.gameID), zap.String("player", p.ID), zap.Int("turn", e.state.TurnCount()))
	}
	return true
}

func (e *Engine) declareWinner(p *Player, what string) {
	e.state.WinnerID = p.ID
	e.state.CurrentCard = nil
	e.transition(rules.PhaseGameOver)
	e.sched.cancelAll()
	e.publish(rules.NewEvent(rules.EventGameWon, p.ID, e.state.TurnCount()))
	e.record(gamelog.KindMilestone, p.ID, 0, "%s achieved %s and won the game!", p.Name, what)
	if e.logger != nil {
		e.logger.Info("game won", zap.String("game_id", e.gameID), zap.String("winner", p.ID), zap.Int("turn", e.state.TurnCount()))
	}
}

func (e *Engine) writeOff(p *Player, amount int, reason string) {
	evt := rules.NewEventWithAmount(rules.EventWrittenOff, p.ID, e.state.TurnCount(), amount)
	evt.Data = reason
	e.publish(evt)
	e.record(gamelog.KindAction, p.ID, amount, "%s could not cover %s of the %s; it was written off.", p.Name, money(amount), reason)
}

// enterEndTurn finishes the active turn. Computer turns pass automatically.
func (e *Engine) enterEndTurn(p *Player) {
	e.transition(rules.PhaseEndTurn)
	if !p.IsHuman() {
		e.scheduleFor(p, stepComputerEnd, e.opts.Pacing.EndTurnDelay, func(*Player) {
			if e.state.Phase() == rules.PhaseEndTurn {
				e.advanceTurn()
			}
		})
	}
}

// advanceTurn runs end-of-turn bookkeeping and starts the next player's turn.
func (e *Engine) advanceTurn() {
	p := e.state.CurrentPlayer()
	if p.CharityTurnsRemaining > 0 {
		p.CharityTurnsRemaining--
	}
	e.checkEscape(p)

	e.state.CurrentCard = nil
	e.state.LastRoll = nil
	e.state.PendingHint = ""
	e.state.SupportUsed = false
	e.state.SupportRequest = nil
	e.publish(rules.NewEvent(rules.EventTurnEnded, p.ID, e.state.TurnCount()))

	wrapped := e.state.turn.AdvancePlayer()
	e.transition(rules.PhaseRoll)
	if wrapped && e.logger != nil {
		e.logger.Debug("round complete", zap.String("game_id", e.gameID), zap.Int("turn", e.state.TurnCount()))
	}
	e.history.Record(e.snapshotLocked())
	e.beginTurn()
}

// buyCard buys the pending investment or dream card for p.
func (e *Engine) buyCard(p *Player) error {
	card := e.state.CurrentCard
	if card == nil {
		return ErrCardMismatch
	}
	effect := card.Effect()
	if effect.Kind != tables.EffectCashflowGrant && effect.Kind != tables.EffectGoalUnlock {
		return fmt.Errorf("%w: %s cannot be bought", ErrCardMismatch, card.Type)
	}
	cash, err := economy.Debit(p.Cash, effect.Cost)
	if err != nil {
		return err
	}
	p.Cash = cash

	if effect.Kind == tables.EffectGoalUnlock {
		p.Dreams = append(p.Dreams, *card)
		evt := rules.NewEventWithAmount(rules.EventDreamBought, p.ID, e.state.TurnCount(), effect.Cost)
		evt.SourceID = card.ID
		e.publish(evt)
		e.record(gamelog.KindAction, p.ID, effect.Cost, "%s bought the dream %s for %s.", p.Name, card.Title, money(effect.Cost))
		e.declareWinner(p, card.Title)
		return nil
	}

	asset := Asset{
		ID:       e.newAssetID(),
		CardID:   card.ID,
		Name:     card.Title,
		Cost:     effect.Cost,
		Cashflow: effect.Cashflow,
		Category: card.Category,
	}
	p.Assets = append(p.Assets, asset)
	p.PassiveIncome += asset.Cashflow
	evt := rules.NewEventWithAmount(rules.EventAssetBought, p.ID, e.state.TurnCount(), effect.Cost)
	evt.SourceID = card.ID
	evt.TargetID = asset.ID
	e.publish(evt)
	e.record(gamelog.KindAction, p.ID, effect.Cost, "%s bought %s for %s (+%s/month).", p.Name, asset.Name, money(asset.Cost), money(asset.Cashflow))

	e.checkEscape(p)
	e.enterEndTurn(p)
	return nil
}

// newAssetID derives ids from the game rng so seeded games stay reproducible.
func (e *Engine) newAssetID() string {
	id, err := uuid.NewRandomFromReader(e.rng)
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// donate resolves the pending charity card. A failed donation leaves the card pending.
func (e *Engine) donate(p *Player) error {
	card := e.state.CurrentCard
	if card == nil || card.Effect().Kind != tables.EffectDonation {
		return ErrCardMismatch
	}
	amount := economy.DonationAmount(card.Cost, p.sheet())
	cash, err := economy.Debit(p.Cash, amount)
	if err != nil {
		return err
	}
	p.Cash = cash
	p.CharityTurnsRemaining = economy.CharityBonusTurns
	evt := rules.NewEventWithAmount(rules.EventDonated, p.ID, e.state.TurnCount(), amount)
	evt.SourceID = card.ID
	e.publish(evt)
	e.record(gamelog.KindAction, p.ID, amount, "%s donated %s to %s and rolls two dice for %d turns.",
		p.Name, money(amount), card.Title, economy.CharityBonusTurns)
	e.enterEndTurn(p)
	return nil
}

// payPenalty resolves the pending doodad or audit. Cash never drops below zero.
func (e *Engine) payPenalty(p *Player) error {
	card := e.state.CurrentCard
	if card == nil || card.Effect().Kind != tables.EffectFlatCost {
		return ErrCardMismatch
	}
	paid, off := economy.PenaltyCharge(p.Cash, card.Cost)
	p.Cash -= paid
	evt := rules.NewEventWithAmount(rules.EventPenaltyPaid, p.ID, e.state.TurnCount(), paid)
	evt.SourceID = card.ID
	e.publish(evt)
	e.record(gamelog.KindAction, p.ID, paid, "%s paid %s for %s.", p.Name, money(paid), card.Title)
	if off > 0 {
		e.writeOff(p, off, card.Title)
	}
	e.enterEndTurn(p)
	return nil
}

// pass declines the pending card. Penalties cannot be declined.
func (e *Engine) pass(p *Player) error {
	card := e.state.CurrentCard
	if card == nil {
		return ErrCardMismatch
	}
	if card.Effect().Kind == tables.EffectFlatCost {
		return fmt.Errorf("%w: %s must be paid", ErrCardMismatch, card.Title)
	}
	evt := rules.NewEvent(rules.EventCardPassed, p.ID, e.state.TurnCount())
	evt.SourceID = card.ID
	e.publish(evt)
	e.record(gamelog.KindAction, p.ID, 0, "%s passed on %s.", p.Name, card.Title)
	e.enterEndTurn(p)
	return nil
}

// sellAsset sells one of p's assets at the resale price.
func (e *Engine) sellAsset(p *Player, assetID string) (int, error) {
	i, ok := p.findAsset(assetID)
	if !ok {
		return 0, fmt.Errorf("%w: asset %s", ErrInvalidTarget, assetID)
	}
	asset := p.Assets[i]
	price := economy.SellPrice(asset.Cost)
	p.Assets = append(p.Assets[:i:i], p.Assets[i+1:]...)
	p.PassiveIncome -= asset.Cashflow
	p.Cash += price
	evt := rules.NewEventWithAmount(rules.EventAssetSold, p.ID, e.state.TurnCount(), price)
	evt.TargetID = asset.ID
	e.publish(evt)
	e.record(gamelog.KindAction, p.ID, price, "%s sold %s for %s (-%s/month).", p.Name, asset.Name, money(price), money(asset.Cashflow))
	e.checkEscape(p)
	return price, nil
}

// giveSupport moves one support package from giver to receiver.
func (e *Engine) giveSupport(giver, receiver *Player, kind tables.SupportKind) error {
	transfer, err := economy.SupportTransfer(kind, giver.Cash)
	if err != nil {
		return err
	}
	giver.Cash -= transfer.GiverDebit
	giver.PassiveIncome += transfer.GiverPassiveIncome
	receiver.SupportBonus += transfer.ReceiverBonus
	receiver.Cash += transfer.ReceiverCash
	e.state.SupportUsed = true

	evt := rules.NewEventWithAmount(rules.EventSupportGiven, giver.ID, e.state.TurnCount(), transfer.GiverDebit)
	evt.TargetID = receiver.ID
	evt.Data = string(kind)
	e.publish(evt)
	pkg, _ := tables.LookupSupport(kind)
	e.record(gamelog.KindAction, giver.ID, transfer.GiverDebit, "%s gave %s support (%s): paid %s, earns +%s/month.",
		giver.Name, receiver.Name, pkg.Title, money(transfer.GiverDebit), money(transfer.GiverPassiveIncome))
	return nil
}

// supportTargets lists the players giverID may support, in seat order.
func (e *Engine) supportTargets(giverID string) []string {
	candidates := make([]string, 0, len(e.state.Players))
	for _, p := range e.state.Players {
		candidates = append(candidates, p.ID)
	}
	return e.targets.EligibleRecipients(giverID, candidates)
}
