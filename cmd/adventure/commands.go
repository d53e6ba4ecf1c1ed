package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/moneyadventure/adventure-server-go/internal/game"
	"github.com/moneyadventure/adventure-server-go/internal/game/tables"
)

var errQuit = errors.New("quit")

var commandHelp = [][2]string{
	{"status", "Show players, phase and the pending card"},
	{"difficulty <kids|teen|adult>", "Choose the difficulty level"},
	{"goal <id>", "Choose your life goal"},
	{"goals", "List the available life goals"},
	{"roll", "Roll the dice"},
	{"buy", "Buy the pending opportunity or dream"},
	{"donate", "Donate to the pending charity"},
	{"pay", "Pay the pending expense"},
	{"pass", "Decline the pending card"},
	{"assets", "List your assets with sale prices"},
	{"sell <asset-id>", "Sell an asset for 80% of its cost"},
	{"support", "Open the support menu (investor track)"},
	{"offer <player-id> <job|investment>", "Give support to an earner"},
	{"skip", "Close the support menu and roll"},
	{"accept [job|investment]", "Accept a support request"},
	{"decline", "Decline a support request"},
	{"end", "End your turn"},
	{"hint", "Ask the coach about the pending card"},
	{"log [n]", "Show the last n log entries"},
	{"restart", "Start over with the same players"},
	{"quit", "Leave the game"},
}

// dispatch runs one line of user input against the engine.
func dispatch(ctx context.Context, e *game.Engine, out *console, input string) error {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return nil
	}
	cmd := strings.ToLower(fields[0])
	args := fields[1:]

	arg := func(i int) string {
		if i < len(args) {
			return args[i]
		}
		return ""
	}

	switch cmd {
	case "help", "h", "?":
		out.help()
		return nil
	case "quit", "q", "exit":
		return errQuit
	case "status", "s":
		out.status(e.Snapshot())
		return nil
	case "difficulty", "level":
		if len(args) == 0 {
			out.difficulties()
			return nil
		}
		return e.SelectDifficulty(tables.DifficultyLevel(arg(0)))
	case "goals":
		out.goals(e.Snapshot().Goals)
		return nil
	case "goal":
		if len(args) == 0 {
			out.goals(e.Snapshot().Goals)
			return nil
		}
		return e.SelectGoal(arg(0))
	case "roll", "r":
		_, err := e.RollDice()
		return err
	case "buy", "b":
		return e.Buy()
	case "donate":
		return e.Donate()
	case "pay":
		return e.PayPenalty()
	case "pass", "p":
		return e.Pass()
	case "assets":
		out.assets(e.SellableAssets())
		return nil
	case "sell":
		if len(args) == 0 {
			return errors.New("usage: sell <asset-id>")
		}
		_, err := e.SellAsset(arg(0))
		return err
	case "support":
		return e.OpenSupport()
	case "offer":
		if len(args) < 2 {
			return errors.New("usage: offer <player-id> <job|investment>")
		}
		kind, err := tables.ParseSupportKind(arg(1))
		if err != nil {
			return err
		}
		return e.OfferSupport(arg(0), kind)
	case "skip":
		return e.SkipSupport()
	case "accept", "decline":
		var kind tables.SupportKind
		if len(args) > 0 {
			parsed, err := tables.ParseSupportKind(arg(0))
			if err != nil {
				return err
			}
			kind = parsed
		}
		return e.RespondToSupportRequest(cmd == "accept", kind)
	case "end", "e":
		return e.AdvanceTurn()
	case "hint":
		_, err := e.RequestHint(ctx)
		return err
	case "log":
		n := 10
		if len(args) > 0 {
			if _, err := fmt.Sscanf(arg(0), "%d", &n); err != nil || n <= 0 {
				return errors.New("usage: log [n]")
			}
		}
		entries := e.Log().Entries()
		if len(entries) > n {
			entries = entries[len(entries)-n:]
		}
		for _, entry := range entries {
			out.entry(entry)
		}
		return nil
	case "restart":
		e.Restart()
		return nil
	default:
		return fmt.Errorf("unknown command %q, type 'help' for a list", cmd)
	}
}
