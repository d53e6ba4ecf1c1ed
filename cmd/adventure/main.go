// Command adventure plays the money adventure game in a terminal.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/peterh/liner"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/moneyadventure/adventure-server-go/internal/config"
	"github.com/moneyadventure/adventure-server-go/internal/game"
	"github.com/moneyadventure/adventure-server-go/internal/game/gamelog"
	"github.com/moneyadventure/adventure-server-go/internal/game/rules"
	"github.com/moneyadventure/adventure-server-go/internal/game/tables"
)

var (
	configPath = flag.String("config", "", "path to configuration file")
	seed       = flag.Int64("seed", 0, "random seed (0 picks one)")
	auto       = flag.Bool("auto", false, "seat computer players everywhere and play to the end")
	maxTurns   = flag.Int("max-turns", 300, "turn limit for -auto")
	logPath    = flag.String("log", "", "write engine logs to this file")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := initLogger(cfg.Logging, *logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	opts := cfg.EngineOptions(*seed)
	out := newConsole(os.Stdout)

	if *auto {
		snap, err := runAuto(opts, tables.DifficultyLevel(cfg.Game.Difficulty), *maxTurns, out, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Game failed: %v\n", err)
			os.Exit(1)
		}
		out.standings(snap)
		return
	}

	if err := runInteractive(opts, tables.DifficultyLevel(cfg.Game.Difficulty), out, logger); err != nil {
		fmt.Fprintf(os.Stderr, "Game failed: %v\n", err)
		os.Exit(1)
	}
}

// runAuto plays an all-computer game without delays until someone wins or
// the turn limit is reached.
func runAuto(opts game.Options, level tables.DifficultyLevel, turns int, out *console, logger *zap.Logger) (game.Snapshot, error) {
	roster := opts.Roster
	if roster == nil {
		roster = tables.DefaultRoster()
	}
	seats := make([]tables.PlayerSeed, len(roster))
	for i, s := range roster {
		if s.Controller == tables.ControllerHuman {
			s.Controller = tables.ControllerComputer
			s.Personality = tables.PersonalityBalanced
		}
		seats[i] = s
	}
	opts.Roster = seats

	engine, err := game.NewEngine(opts, logger)
	if err != nil {
		return game.Snapshot{}, err
	}
	unsubscribe := engine.Log().Subscribe(out.entry)
	defer unsubscribe()

	if err := engine.SelectDifficulty(level); err != nil {
		return game.Snapshot{}, err
	}
	for engine.Phase() != rules.PhaseGameOver && engine.Snapshot().TurnCount <= turns {
		if !engine.RunNext() {
			return engine.Snapshot(), errors.New("game stalled with no pending step")
		}
	}
	snap := engine.Snapshot()
	if snap.WinnerID == "" {
		out.println(palette.Warn, "No winner after %d turns.", turns)
	}
	return snap, nil
}

func runInteractive(opts game.Options, level tables.DifficultyLevel, out *console, logger *zap.Logger) error {
	engine, err := game.NewEngine(opts, logger)
	if err != nil {
		return err
	}
	unsubscribe := engine.Log().Subscribe(func(e gamelog.Entry) {
		// Rejections come back as command errors.
		if e.Kind != gamelog.KindRejected {
			out.entry(e)
		}
	})
	defer unsubscribe()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		if err := engine.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("engine stopped", zap.Error(err))
		}
	}()

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	line.SetCompleter(func(input string) []string {
		var matches []string
		for _, cmd := range commandHelp {
			name := strings.Fields(cmd[0])[0]
			if strings.HasPrefix(name, strings.ToLower(input)) {
				matches = append(matches, name)
			}
		}
		return matches
	})

	palette.Header.Println("Money Adventure")
	out.difficulties()
	out.println(palette.Info, "Type 'difficulty <level>' to begin (suggested: %s), or 'help'.", level)

	for {
		input, err := line.Prompt(fmt.Sprintf("(%s) ", strings.ToLower(engine.Phase().String())))
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				palette.Info.Println("Goodbye!")
				return nil
			}
			return err
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)

		if err := dispatch(ctx, engine, out, input); err != nil {
			if errors.Is(err, errQuit) {
				palette.Info.Println("Goodbye!")
				return nil
			}
			out.println(palette.Warn, "✖ %v", err)
		}
	}
}

// initLogger sends engine logs to path, or discards them when path is empty.
func initLogger(cfg config.LoggingConfig, path string) (*zap.Logger, error) {
	if path == "" {
		return zap.NewNop(), nil
	}
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.OutputPaths = []string{path}
	zapCfg.ErrorOutputPaths = []string{path}
	return zapCfg.Build()
}
