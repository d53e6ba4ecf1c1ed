package game

import (
	"github.com/moneyadventure/adventure-server-go/internal/game/dice"
	"github.com/moneyadventure/adventure-server-go/internal/game/economy"
	"github.com/moneyadventure/adventure-server-go/internal/game/policy"
	"github.com/moneyadventure/adventure-server-go/internal/game/rules"
	"github.com/moneyadventure/adventure-server-go/internal/game/tables"
	"github.com/moneyadventure/adventure-server-go/internal/game/targeting"
)

// Asset is an income-producing holding owned by one player.
type Asset struct {
	ID       string          `json:"id"`
	CardID   string          `json:"card_id"`
	Name     string          `json:"name"`
	Cost     int             `json:"cost"`
	Cashflow int             `json:"cashflow"`
	Category tables.Category `json:"category"`
}

// Player is one seat at the table.
type Player struct {
	ID                    string
	Name                  string
	Controller            tables.Controller
	Avatar                string
	JobTitle              string
	Cash                  int
	Salary                int
	MonthlyExpenses       int
	PassiveIncome         int
	Position              int
	HasEscaped            bool
	SelectedGoal          *tables.LifeGoal
	Assets                []Asset
	Liabilities           []tables.Liability
	Dreams                []tables.Card
	CharityTurnsRemaining int
	SupportBonus          int
	Behavior              *tables.BehaviorProfile
}

func newPlayer(seed tables.PlayerSeed) *Player {
	p := &Player{
		ID:              seed.ID,
		Name:            seed.Name,
		Controller:      seed.Controller,
		Avatar:          seed.Avatar,
		JobTitle:        seed.JobTitle,
		Cash:            seed.Cash,
		Salary:          seed.Salary,
		MonthlyExpenses: seed.MonthlyExpenses,
		Liabilities:     append([]tables.Liability(nil), seed.Liabilities...),
	}
	if seed.Controller == tables.ControllerComputer {
		if profile, ok := tables.LookupProfile(seed.Personality); ok {
			p.Behavior = &profile
		}
	}
	return p
}

// IsHuman reports whether a person controls the player.
func (p *Player) IsHuman() bool {
	return p.Controller == tables.ControllerHuman
}

// Track returns the board the player moves on.
func (p *Player) Track() tables.Track {
	return tables.TrackFor(p.HasEscaped)
}

func (p *Player) sheet() economy.Sheet {
	return economy.Sheet{
		Cash:            p.Cash,
		Salary:          p.Salary,
		PassiveIncome:   p.PassiveIncome,
		MonthlyExpenses: p.MonthlyExpenses,
		SupportBonus:    p.SupportBonus,
		HasEscaped:      p.HasEscaped,
	}
}

func (p *Player) policyView() policy.PlayerView {
	return policy.PlayerView{
		ID:              p.ID,
		Name:            p.Name,
		Cash:            p.Cash,
		Salary:          p.Salary,
		PassiveIncome:   p.PassiveIncome,
		MonthlyExpenses: p.MonthlyExpenses,
		HasEscaped:      p.HasEscaped,
	}
}

func (p *Player) findAsset(assetID string) (int, bool) {
	for i, a := range p.Assets {
		if a.ID == assetID {
			return i, true
		}
	}
	return -1, false
}

// clone returns a deep copy.
func (p *Player) clone() *Player {
	c := *p
	if p.SelectedGoal != nil {
		goal := *p.SelectedGoal
		c.SelectedGoal = &goal
	}
	if p.Behavior != nil {
		b := *p.Behavior
		c.Behavior = &b
	}
	c.Assets = append([]Asset(nil), p.Assets...)
	c.Liabilities = append([]tables.Liability(nil), p.Liabilities...)
	c.Dreams = append([]tables.Card(nil), p.Dreams...)
	return &c
}

// SupportRequest is a computer earner waiting on a human investor.
type SupportRequest struct {
	RequesterID string             `json:"requester_id"`
	TargetID    string             `json:"target_id"`
	Kind        tables.SupportKind `json:"kind"`
}

// GameState is the single source of truth. Only the Engine mutates it.
type GameState struct {
	Players        []*Player
	CurrentCard    *tables.Card
	LastRoll       *dice.Result
	WinnerID       string
	SupportRequest *SupportRequest
	Difficulty     tables.DifficultySettings
	Goals          []tables.LifeGoal
	PendingHint    string
	SupportUsed    bool

	turn *rules.TurnManager
}

func newGameState(roster []tables.PlayerSeed) *GameState {
	difficulty, _ := tables.LookupDifficulty(tables.DefaultDifficulty)
	s := &GameState{
		Players:    make([]*Player, len(roster)),
		Difficulty: difficulty,
		Goals:      tables.LifeGoals(),
		turn:       rules.NewTurnManager(len(roster)),
	}
	for i, seed := range roster {
		s.Players[i] = newPlayer(seed)
	}
	return s
}

// Phase returns the current state machine phase.
func (s *GameState) Phase() rules.Phase {
	return s.turn.CurrentPhase()
}

// TurnCount returns the 1-based turn number.
func (s *GameState) TurnCount() int {
	return s.turn.TurnNumber()
}

// CurrentPlayerIndex returns the index of the active player.
func (s *GameState) CurrentPlayerIndex() int {
	return s.turn.ActiveIndex()
}

// CurrentPlayer returns the active player.
func (s *GameState) CurrentPlayer() *Player {
	return s.Players[s.turn.ActiveIndex()]
}

// FindPlayer returns the player with the given id.
func (s *GameState) FindPlayer(id string) (*Player, bool) {
	for _, p := range s.Players {
		if p.ID == id {
			return p, true
		}
	}
	return nil, false
}

// humanInvestor returns the first human on the investor track.
func (s *GameState) humanInvestor() (*Player, bool) {
	for _, p := range s.Players {
		if p.IsHuman() && p.HasEscaped {
			return p, true
		}
	}
	return nil, false
}

// gameStateAccess adapts GameState to the rules and targeting accessors.
type gameStateAccess struct {
	state func() *GameState
}

func (a gameStateAccess) CurrentPhase() rules.Phase {
	return a.state().Phase()
}

func (a gameStateAccess) ActivePlayer() (rules.PlayerInfo, bool) {
	s := a.state()
	if len(s.Players) == 0 {
		return rules.PlayerInfo{}, false
	}
	return playerInfo(s.CurrentPlayer()), true
}

func (a gameStateAccess) FindPlayer(playerID string) (rules.PlayerInfo, bool) {
	p, ok := a.state().FindPlayer(playerID)
	if !ok {
		return rules.PlayerInfo{}, false
	}
	return playerInfo(p), true
}

func (a gameStateAccess) FindPlayerForTarget(playerID string) (targeting.TargetPlayerInfo, bool) {
	p, ok := a.state().FindPlayer(playerID)
	if !ok {
		return targeting.TargetPlayerInfo{}, false
	}
	return targeting.TargetPlayerInfo{PlayerID: p.ID, Name: p.Name, Escaped: p.HasEscaped}, true
}

func (a gameStateAccess) FindAssetForTarget(ownerID, assetID string) (targeting.TargetAssetInfo, bool) {
	p, ok := a.state().FindPlayer(ownerID)
	if !ok {
		return targeting.TargetAssetInfo{}, false
	}
	i, ok := p.findAsset(assetID)
	if !ok {
		return targeting.TargetAssetInfo{}, false
	}
	asset := p.Assets[i]
	return targeting.TargetAssetInfo{ID: asset.ID, Name: asset.Name, OwnerID: p.ID, Cost: asset.Cost, Cashflow: asset.Cashflow}, true
}

func playerInfo(p *Player) rules.PlayerInfo {
	return rules.PlayerInfo{
		PlayerID: p.ID,
		Name:     p.Name,
		Human:    p.IsHuman(),
		Escaped:  p.HasEscaped,
	}
}
