package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/moneyadventure/adventure-server-go/internal/config"
	"github.com/moneyadventure/adventure-server-go/internal/game"
	"github.com/moneyadventure/adventure-server-go/internal/server"
)

var (
	configPath = flag.String("config", "config/config.yaml", "path to configuration file")
	version    = "dev" // set via ldflags during build
)

func main() {
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := initLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	opts := cfg.EngineOptions(time.Now().UnixNano())
	logger.Info("starting adventure server",
		zap.String("version", version),
		zap.String("config", *configPath),
		zap.Int64("seed", opts.Seed),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	engine, err := game.NewEngine(opts, logger)
	if err != nil {
		logger.Fatal("failed to create game engine", zap.Error(err))
	}

	// Computer turns run on the engine's own clock.
	go func() {
		if runErr := engine.Run(ctx); runErr != nil && !errors.Is(runErr, context.Canceled) {
			logger.Error("engine stopped", zap.Error(runErr))
		}
	}()

	srv := server.New(cfg.Server, engine, logger)
	logger.Info("serving game",
		zap.String("game_id", engine.GameID()),
		zap.String("address", cfg.Server.Address),
	)

	// ListenAndServe returns once ctx is cancelled and the listener has drained.
	if err := srv.ListenAndServe(ctx); err != nil {
		logger.Error("http server error", zap.Error(err))
		stop()
		logger.Sync()
		os.Exit(1)
	}
	logger.Info("adventure server stopped")
}

// initLogger builds a JSON production logger or a coloured console logger.
// Unknown levels fall back to info.
func initLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}

	zapCfg := zap.NewDevelopmentConfig()
	zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	return zapCfg.Build()
}
