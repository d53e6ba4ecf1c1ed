package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/moneyadventure/adventure-server-go/internal/game"
	"github.com/moneyadventure/adventure-server-go/internal/game/economy"
	"github.com/moneyadventure/adventure-server-go/internal/game/rules"
	"github.com/moneyadventure/adventure-server-go/internal/game/tables"
)

var errUnknownCommand = errors.New("unknown command")

// CommandRequest carries the arguments of any command. Each command reads
// only the fields it needs.
type CommandRequest struct {
	Difficulty string `json:"difficulty,omitempty"`
	GoalID     string `json:"goal_id,omitempty"`
	AssetID    string `json:"asset_id,omitempty"`
	TargetID   string `json:"target_id,omitempty"`
	Kind       string `json:"kind,omitempty"`
	Accept     bool   `json:"accept,omitempty"`
}

// CommandResponse is the reply to a command over HTTP or WebSocket.
type CommandResponse struct {
	OK       bool           `json:"ok"`
	Error    string         `json:"error,omitempty"`
	Result   interface{}    `json:"result,omitempty"`
	Snapshot *game.Snapshot `json:"snapshot,omitempty"`
}

func (s *Server) execute(ctx context.Context, name string, req CommandRequest) (interface{}, error) {
	e := s.engine
	switch rules.Command(name) {
	case rules.CommandSelectDifficulty:
		return nil, e.SelectDifficulty(tables.DifficultyLevel(req.Difficulty))
	case rules.CommandSelectGoal:
		return nil, e.SelectGoal(req.GoalID)
	case rules.CommandRollDice:
		roll, err := e.RollDice()
		if err != nil {
			return nil, err
		}
		return roll, nil
	case rules.CommandBuy:
		return nil, e.Buy()
	case rules.CommandDonate:
		return nil, e.Donate()
	case rules.CommandPayPenalty:
		return nil, e.PayPenalty()
	case rules.CommandPass:
		return nil, e.Pass()
	case rules.CommandSellAsset:
		price, err := e.SellAsset(req.AssetID)
		if err != nil {
			return nil, err
		}
		return map[string]int{"price": price}, nil
	case rules.CommandOpenSupport:
		return nil, e.OpenSupport()
	case rules.CommandOfferSupport:
		kind, err := tables.ParseSupportKind(req.Kind)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", game.ErrInvalidTarget, err)
		}
		return nil, e.OfferSupport(req.TargetID, kind)
	case rules.CommandSkipSupport:
		return nil, e.SkipSupport()
	case rules.CommandRespondSupport:
		var kind tables.SupportKind
		if req.Kind != "" {
			parsed, err := tables.ParseSupportKind(req.Kind)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", game.ErrInvalidTarget, err)
			}
			kind = parsed
		}
		return nil, e.RespondToSupportRequest(req.Accept, kind)
	case rules.CommandAdvanceTurn:
		return nil, e.AdvanceTurn()
	case rules.CommandRequestHint:
		text, err := e.RequestHint(ctx)
		if err != nil {
			return nil, err
		}
		return map[string]string{"hint": text}, nil
	case rules.CommandRestart:
		e.Restart()
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownCommand, name)
	}
}

// statusFor maps engine errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errUnknownCommand):
		return http.StatusNotFound
	case errors.Is(err, game.ErrNotHumanTurn):
		return http.StatusForbidden
	case errors.Is(err, game.ErrPhaseViolation),
		errors.Is(err, game.ErrGameOver),
		errors.Is(err, game.ErrSupportRequestPending),
		errors.Is(err, game.ErrSupportAlreadyUsed):
		return http.StatusConflict
	case errors.Is(err, economy.ErrInsufficientFunds):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadRequest
	}
}
