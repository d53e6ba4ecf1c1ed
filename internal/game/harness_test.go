package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/moneyadventure/adventure-server-go/internal/game/policy"
	"github.com/moneyadventure/adventure-server-go/internal/game/rules"
	"github.com/moneyadventure/adventure-server-go/internal/game/tables"
)

// gameHarness builds engines with hand-made fixtures and drives them synchronously.
type gameHarness struct {
	t      *testing.T
	engine *Engine
}

func newHarness(t *testing.T, roster ...tables.PlayerSeed) *gameHarness {
	t.Helper()
	return newHarnessWithOptions(t, Options{Seed: 42, Roster: roster})
}

func newHarnessWithOptions(t *testing.T, opts Options) *gameHarness {
	t.Helper()
	if opts.Clock == nil {
		opts.Clock = steppingClock()
	}
	engine, err := NewEngine(opts, zaptest.NewLogger(t))
	require.NoError(t, err)
	return &gameHarness{t: t, engine: engine}
}

// steppingClock advances one second per reading.
func steppingClock() func() time.Time {
	now := time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC)
	return func() time.Time {
		now = now.Add(time.Second)
		return now
	}
}

func humanSeed(id string) tables.PlayerSeed {
	return tables.PlayerSeed{
		ID:              id,
		Name:            "Human " + id,
		Controller:      tables.ControllerHuman,
		Cash:            1000,
		Salary:          2000,
		MonthlyExpenses: 1200,
	}
}

func computerSeed(id string, personality tables.Personality) tables.PlayerSeed {
	return tables.PlayerSeed{
		ID:              id,
		Name:            "Computer " + id,
		Controller:      tables.ControllerComputer,
		Cash:            800,
		Salary:          2500,
		MonthlyExpenses: 1500,
		Personality:     personality,
	}
}

func (h *gameHarness) player(id string) *Player {
	h.t.Helper()
	p, ok := h.engine.state.FindPlayer(id)
	require.True(h.t, ok, "player %s", id)
	return p
}

// setTurn puts the game at the given seat and phase.
func (h *gameHarness) setTurn(index, turn int, phase rules.Phase) {
	h.t.Helper()
	tm, err := rules.RestoreTurnManager(len(h.engine.state.Players), index, turn, phase)
	require.NoError(h.t, err)
	h.engine.state.turn = tm
}

// withCard makes card pending for the seat at index.
func (h *gameHarness) withCard(index int, card tables.Card) {
	h.t.Helper()
	h.setTurn(index, 1, rules.PhaseDecision)
	h.engine.state.CurrentCard = &card
}

// land places the seat's token and resolves the space as if it had just moved there.
func (h *gameHarness) land(index, position int) {
	h.t.Helper()
	h.setTurn(index, 1, rules.PhaseMove)
	p := h.engine.state.Players[index]
	p.Position = position
	h.engine.mu.Lock()
	h.engine.resolveLanding(p)
	h.engine.mu.Unlock()
}

func (h *gameHarness) escape(id string, cash int) {
	p := h.player(id)
	p.HasEscaped = true
	p.Cash = cash
	p.PassiveIncome = p.MonthlyExpenses
}

func (h *gameHarness) setBrain(id string, brain policy.Brain) {
	h.engine.brains[id] = brain
}

func (h *gameHarness) logMessages() []string {
	entries := h.engine.Log().Entries()
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Message
	}
	return out
}

func assetCashflow(p *Player) int {
	total := 0
	for _, a := range p.Assets {
		total += a.Cashflow
	}
	return total
}

// scriptedBrain returns fixed answers.
type scriptedBrain struct {
	decision policy.Decision
	request  *policy.SupportRequest
	offer    *policy.SupportOffer
	goal     int
}

func (b *scriptedBrain) Decide(policy.PlayerView, tables.Card) policy.Decision { return b.decision }

func (b *scriptedBrain) ChooseGoal(goals []tables.LifeGoal) tables.LifeGoal { return goals[b.goal] }

func (b *scriptedBrain) OfferSupport(_ policy.PlayerView, targets []string) (policy.SupportOffer, bool) {
	if b.offer == nil || len(targets) == 0 {
		return policy.SupportOffer{}, false
	}
	return *b.offer, true
}

func (b *scriptedBrain) RequestSupport(view policy.PlayerView) (policy.SupportRequest, bool) {
	if b.request == nil || view.HasEscaped {
		return policy.SupportRequest{}, false
	}
	return *b.request, true
}

func (b *scriptedBrain) AcceptLine() string { return "Thanks!" }

func (b *scriptedBrain) Name() string { return "scripted" }

var (
	offerInvestmentToP1 = policy.SupportOffer{TargetID: "p1", Kind: tables.SupportInvestment, Line: "Let me help."}
	requestJob          = policy.SupportRequest{Kind: tables.SupportJob, Line: "Could you help me out?"}
)

func policyPass() policy.Decision { return policy.Decision{Action: policy.ActionPass} }

func policyBuy() policy.Decision { return policy.Decision{Action: policy.ActionBuy} }
