// Package config loads server and game settings with viper.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/moneyadventure/adventure-server-go/internal/game"
	"github.com/moneyadventure/adventure-server-go/internal/game/tables"
)

// EnvPrefix prefixes every environment override, e.g. ADVENTURE_GAME_DIFFICULTY.
const EnvPrefix = "ADVENTURE"

// Config is the full application configuration.
type Config struct {
	Game    GameConfig    `mapstructure:"game"`
	Pacing  PacingConfig  `mapstructure:"pacing"`
	Logging LoggingConfig `mapstructure:"logging"`
	Server  ServerConfig  `mapstructure:"server"`
}

// GameConfig selects the difficulty, seed and seats of a new game.
type GameConfig struct {
	Difficulty string         `mapstructure:"difficulty"`
	Seed       int64          `mapstructure:"seed"` // 0 picks a seed at startup
	Roster     []PlayerConfig `mapstructure:"roster"`
}

// PlayerConfig overrides one seat of the default roster.
type PlayerConfig struct {
	ID              string `mapstructure:"id"`
	Name            string `mapstructure:"name"`
	Controller      string `mapstructure:"controller"`
	Personality     string `mapstructure:"personality"`
	Avatar          string `mapstructure:"avatar"`
	JobTitle        string `mapstructure:"job_title"`
	Cash            int    `mapstructure:"cash"`
	Salary          int    `mapstructure:"salary"`
	MonthlyExpenses int    `mapstructure:"monthly_expenses"`
}

// PacingConfig holds the delays between automated steps.
type PacingConfig struct {
	RollDelay    time.Duration `mapstructure:"roll_delay"`
	ThinkDelay   time.Duration `mapstructure:"think_delay"`
	EndTurnDelay time.Duration `mapstructure:"end_turn_delay"`
	HintTimeout  time.Duration `mapstructure:"hint_timeout"`
}

// LoggingConfig configures zap.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ServerConfig configures the HTTP adapter.
type ServerConfig struct {
	Address         string        `mapstructure:"address"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("game.difficulty", string(tables.DefaultDifficulty))
	v.SetDefault("game.seed", 0)

	v.SetDefault("pacing.roll_delay", game.DefaultPacing.RollDelay)
	v.SetDefault("pacing.think_delay", game.DefaultPacing.ThinkDelay)
	v.SetDefault("pacing.end_turn_delay", game.DefaultPacing.EndTurnDelay)
	v.SetDefault("pacing.hint_timeout", game.DefaultHintTimeout)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.allowed_origins", []string{})
	v.SetDefault("server.shutdown_timeout", 5*time.Second)
}

// Load reads the YAML file at path, applies ADVENTURE_* environment
// overrides and validates the result. An empty path uses defaults and the
// environment only.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

var (
	logLevels  = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	logFormats = map[string]bool{"json": true, "console": true}
)

// Validate checks every section and normalises roster entries.
func (c *Config) Validate() error {
	var errs []error

	if _, ok := tables.LookupDifficulty(tables.DifficultyLevel(c.Game.Difficulty)); !ok {
		errs = append(errs, fmt.Errorf("game.difficulty: unknown level %q", c.Game.Difficulty))
	}
	seen := make(map[string]bool)
	for i := range c.Game.Roster {
		p := &c.Game.Roster[i]
		if p.ID == "" {
			p.ID = fmt.Sprintf("p%d", i+1)
		}
		if seen[p.ID] {
			errs = append(errs, fmt.Errorf("game.roster[%d]: duplicate id %q", i, p.ID))
		}
		seen[p.ID] = true
		if p.Name == "" {
			errs = append(errs, fmt.Errorf("game.roster[%d]: name is required", i))
		}
		p.Controller = strings.ToUpper(p.Controller)
		switch tables.Controller(p.Controller) {
		case tables.ControllerHuman:
		case tables.ControllerComputer:
			if p.Personality != "" {
				if _, ok := tables.LookupProfile(tables.Personality(p.Personality)); !ok {
					errs = append(errs, fmt.Errorf("game.roster[%d]: unknown personality %q", i, p.Personality))
				}
			}
		default:
			errs = append(errs, fmt.Errorf("game.roster[%d]: controller must be HUMAN or COMPUTER, got %q", i, p.Controller))
		}
		if p.Cash < 0 || p.Salary < 0 || p.MonthlyExpenses < 0 {
			errs = append(errs, fmt.Errorf("game.roster[%d]: amounts must not be negative", i))
		}
	}

	if c.Pacing.RollDelay < 0 || c.Pacing.ThinkDelay < 0 || c.Pacing.EndTurnDelay < 0 || c.Pacing.HintTimeout < 0 {
		errs = append(errs, errors.New("pacing: delays must not be negative"))
	}
	if !logLevels[c.Logging.Level] {
		errs = append(errs, fmt.Errorf("logging.level: unknown level %q", c.Logging.Level))
	}
	if !logFormats[c.Logging.Format] {
		errs = append(errs, fmt.Errorf("logging.format: must be json or console, got %q", c.Logging.Format))
	}
	if c.Server.Address == "" {
		errs = append(errs, errors.New("server.address is required"))
	}
	return errors.Join(errs...)
}

// RosterSeeds converts the configured roster. Nil means the default roster.
func (c GameConfig) RosterSeeds() []tables.PlayerSeed {
	if len(c.Roster) == 0 {
		return nil
	}
	seeds := make([]tables.PlayerSeed, len(c.Roster))
	for i, p := range c.Roster {
		seeds[i] = tables.PlayerSeed{
			ID:              p.ID,
			Name:            p.Name,
			Controller:      tables.Controller(p.Controller),
			Avatar:          p.Avatar,
			JobTitle:        p.JobTitle,
			Cash:            p.Cash,
			Salary:          p.Salary,
			MonthlyExpenses: p.MonthlyExpenses,
			Personality:     tables.Personality(p.Personality),
		}
	}
	return seeds
}

// EngineOptions builds engine options. seed replaces a zero configured seed.
func (c *Config) EngineOptions(seed int64) game.Options {
	if c.Game.Seed != 0 {
		seed = c.Game.Seed
	}
	return game.Options{
		Seed:   seed,
		Roster: c.Game.RosterSeeds(),
		Pacing: game.Pacing{
			RollDelay:    c.Pacing.RollDelay,
			ThinkDelay:   c.Pacing.ThinkDelay,
			EndTurnDelay: c.Pacing.EndTurnDelay,
		},
		HintTimeout: c.Pacing.HintTimeout,
	}
}
