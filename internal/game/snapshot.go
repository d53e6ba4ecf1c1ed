package game

import (
	"time"

	"github.com/moneyadventure/adventure-server-go/internal/game/dice"
	"github.com/moneyadventure/adventure-server-go/internal/game/economy"
	"github.com/moneyadventure/adventure-server-go/internal/game/rules"
	"github.com/moneyadventure/adventure-server-go/internal/game/tables"
	"github.com/moneyadventure/adventure-server-go/internal/game/watchers"
)

// PlayerView is a read-only copy of a player with derived figures.
type PlayerView struct {
	ID                    string               `json:"id"`
	Name                  string               `json:"name"`
	Controller            tables.Controller    `json:"controller"`
	Avatar                string               `json:"avatar"`
	JobTitle              string               `json:"job_title"`
	Personality           tables.Personality   `json:"personality,omitempty"`
	Cash                  int                  `json:"cash"`
	Salary                int                  `json:"salary"`
	MonthlyExpenses       int                  `json:"monthly_expenses"`
	PassiveIncome         int                  `json:"passive_income"`
	MonthlyCashflow       int                  `json:"monthly_cashflow"`
	FreedomProgress       int                  `json:"freedom_progress"`
	Position              int                  `json:"position"`
	Track                 string               `json:"track"`
	Space                 tables.SpaceType     `json:"space"`
	HasEscaped            bool                 `json:"has_escaped"`
	SelectedGoal          *tables.LifeGoal     `json:"selected_goal,omitempty"`
	Assets                []Asset              `json:"assets"`
	Liabilities           []tables.Liability   `json:"liabilities"`
	Dreams                []tables.Card        `json:"dreams"`
	CharityTurnsRemaining int                  `json:"charity_turns_remaining"`
	SupportBonus          int                  `json:"support_bonus"`
	Stats                 watchers.PlayerStats `json:"stats"`
}

// Snapshot is a consistent read-only copy of the whole game.
type Snapshot struct {
	GameID             string                    `json:"game_id"`
	Phase              rules.Phase               `json:"phase"`
	TurnCount          int                       `json:"turn_count"`
	CurrentPlayerIndex int                       `json:"current_player_index"`
	CurrentPlayerID    string                    `json:"current_player_id"`
	Players            []PlayerView              `json:"players"`
	CurrentCard        *tables.Card              `json:"current_card,omitempty"`
	LastRoll           *dice.Result              `json:"last_roll,omitempty"`
	WinnerID           string                    `json:"winner_id,omitempty"`
	SupportRequest     *SupportRequest           `json:"support_request,omitempty"`
	Difficulty         tables.DifficultySettings `json:"difficulty"`
	Goals              []tables.LifeGoal         `json:"goals"`
	PendingHint        string                    `json:"pending_hint,omitempty"`
	SupportUsed        bool                      `json:"support_used"`
	LastLogSeq         uint64                    `json:"last_log_seq"`
	TakenAt            time.Time                 `json:"taken_at"`
}

// Snapshot returns a copy of the current game.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

func (e *Engine) snapshotLocked() Snapshot {
	s := e.state
	snap := Snapshot{
		GameID:             e.gameID,
		Phase:              s.Phase(),
		TurnCount:          s.TurnCount(),
		CurrentPlayerIndex: s.CurrentPlayerIndex(),
		CurrentPlayerID:    s.CurrentPlayer().ID,
		Players:            make([]PlayerView, len(s.Players)),
		WinnerID:           s.WinnerID,
		Difficulty:         s.Difficulty,
		Goals:              append([]tables.LifeGoal(nil), s.Goals...),
		PendingHint:        s.PendingHint,
		SupportUsed:        s.SupportUsed,
		TakenAt:            time.Now(),
	}
	for i, p := range s.Players {
		snap.Players[i] = e.viewOf(p)
	}
	if s.CurrentCard != nil {
		card := *s.CurrentCard
		snap.CurrentCard = &card
	}
	if s.LastRoll != nil {
		roll := dice.Result{Values: append([]int(nil), s.LastRoll.Values...), Total: s.LastRoll.Total}
		snap.LastRoll = &roll
	}
	if s.SupportRequest != nil {
		req := *s.SupportRequest
		snap.SupportRequest = &req
	}
	if last, ok := e.log.Last(); ok {
		snap.LastLogSeq = last.Seq
	}
	return snap
}

func (e *Engine) viewOf(p *Player) PlayerView {
	c := p.clone()
	v := PlayerView{
		ID:                    c.ID,
		Name:                  c.Name,
		Controller:            c.Controller,
		Avatar:                c.Avatar,
		JobTitle:              c.JobTitle,
		Cash:                  c.Cash,
		Salary:                c.Salary,
		MonthlyExpenses:       c.MonthlyExpenses,
		PassiveIncome:         c.PassiveIncome,
		MonthlyCashflow:       economy.MonthlyCashflow(c.sheet()),
		FreedomProgress:       economy.FreedomProgress(c.sheet()),
		Position:              c.Position,
		Track:                 c.Track().String(),
		Space:                 tables.SpaceAt(c.Track(), c.Position),
		HasEscaped:            c.HasEscaped,
		SelectedGoal:          c.SelectedGoal,
		Assets:                c.Assets,
		Liabilities:           c.Liabilities,
		Dreams:                c.Dreams,
		CharityTurnsRemaining: c.CharityTurnsRemaining,
		SupportBonus:          c.SupportBonus,
		Stats:                 watchers.StatsFor(e.stats, c.ID),
	}
	if c.Behavior != nil {
		v.Personality = c.Behavior.Personality
	}
	return v
}

// Phase returns the current phase.
func (e *Engine) Phase() rules.Phase {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Phase()
}

// CurrentPlayer returns the active player.
func (e *Engine) CurrentPlayer() PlayerView {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.viewOf(e.state.CurrentPlayer())
}

// Player returns one player by id.
func (e *Engine) Player(playerID string) (PlayerView, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	p, ok := e.state.FindPlayer(playerID)
	if !ok {
		return PlayerView{}, false
	}
	return e.viewOf(p), true
}

// IsFastTrack reports whether the active player is on the investor track.
func (e *Engine) IsFastTrack() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.CurrentPlayer().HasEscaped
}

// EarnerTrackPlayers returns the players still on the earner track.
func (e *Engine) EarnerTrackPlayers() []PlayerView {
	return e.playersWhere(func(p *Player) bool { return !p.HasEscaped })
}

// InvestorTrackPlayers returns the players on the investor track.
func (e *Engine) InvestorTrackPlayers() []PlayerView {
	return e.playersWhere(func(p *Player) bool { return p.HasEscaped })
}

func (e *Engine) playersWhere(keep func(*Player) bool) []PlayerView {
	e.mu.Lock()
	defer e.mu.Unlock()
	var out []PlayerView
	for _, p := range e.state.Players {
		if keep(p) {
			out = append(out, e.viewOf(p))
		}
	}
	return out
}

// SellableAssets returns the active player's assets with their sale price.
func (e *Engine) SellableAssets() []SaleQuote {
	e.mu.Lock()
	defer e.mu.Unlock()
	p := e.state.CurrentPlayer()
	quotes := make([]SaleQuote, len(p.Assets))
	for i, a := range p.Assets {
		quotes[i] = SaleQuote{Asset: a, Price: economy.SellPrice(a.Cost)}
	}
	return quotes
}

// SaleQuote pairs an asset with what selling it would pay.
type SaleQuote struct {
	Asset Asset `json:"asset"`
	Price int   `json:"price"`
}

// SupportTargets returns the players the active player could support.
func (e *Engine) SupportTargets() []PlayerView {
	e.mu.Lock()
	defer e.mu.Unlock()
	var out []PlayerView
	for _, id := range e.supportTargets(e.state.CurrentPlayer().ID) {
		p, _ := e.state.FindPlayer(id)
		out = append(out, e.viewOf(p))
	}
	return out
}

// FreedomProgress returns passive income as a percentage of expenses, 0..100.
func (e *Engine) FreedomProgress(playerID string) (int, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	p, ok := e.state.FindPlayer(playerID)
	if !ok {
		return 0, false
	}
	return economy.FreedomProgress(p.sheet()), true
}

// GoalAvailable reports whether the player's cash covers their goal.
func (e *Engine) GoalAvailable(playerID string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	p, ok := e.state.FindPlayer(playerID)
	if !ok {
		return false
	}
	return economy.GoalAffordable(p.Cash, p.SelectedGoal)
}
