// Package game runs one session of the money adventure: the turn and phase
// state machine, the economy rules, the computer players and the game log.
package game

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/moneyadventure/adventure-server-go/internal/game/gamelog"
	"github.com/moneyadventure/adventure-server-go/internal/game/hint"
	"github.com/moneyadventure/adventure-server-go/internal/game/policy"
	"github.com/moneyadventure/adventure-server-go/internal/game/rules"
	"github.com/moneyadventure/adventure-server-go/internal/game/tables"
	"github.com/moneyadventure/adventure-server-go/internal/game/targeting"
	"github.com/moneyadventure/adventure-server-go/internal/game/watchers"
)

// DefaultHintTimeout bounds a hint request.
const DefaultHintTimeout = 3 * time.Second

// Options configures a new Engine.
type Options struct {
	// Seed drives dice, card draws and computer decisions. Equal seeds and
	// equal commands produce equal games.
	Seed int64
	// Roster is the seat list. Nil uses the built-in roster.
	Roster []tables.PlayerSeed
	// Pacing sets the delays honoured by Run. RunNext ignores them.
	Pacing Pacing
	// Clock stamps log entries. Nil uses time.Now.
	Clock gamelog.Clock
	// Hints answers hint requests. Nil uses the built-in coach.
	Hints hint.Provider
	// HintTimeout bounds a hint request. Zero uses DefaultHintTimeout.
	HintTimeout time.Duration
}

// Notification is pushed to the registered handler after state changes.
type Notification struct {
	Type      string
	GameID    string
	PlayerID  string
	Timestamp time.Time
	Data      map[string]interface{}
}

// NotificationHandler receives engine notifications in emission order, off the
// engine lock on a single delivery goroutine.
type NotificationHandler func(notification Notification)

const (
	NotificationLogEntry = "LOG_ENTRY"
	NotificationPhase    = "PHASE_CHANGE"
)

// Engine owns a GameState and is the only code that mutates it.
type Engine struct {
	logger *zap.Logger
	mu     sync.Mutex

	gameID  string
	opts    Options
	roster  []tables.PlayerSeed
	rng     *rand.Rand
	state   *GameState
	bus     *rules.EventBus
	stats   *rules.WatcherRegistry
	check   *rules.LegalityChecker
	targets *targeting.TargetValidator
	brains  map[string]policy.Brain
	log     *gamelog.Log
	hints   *hint.Safe
	sched   *scheduler
	history *History

	handlerMu sync.RWMutex
	handler   NotificationHandler

	// Notifications are delivered in emission order by one drainer at a time.
	notifyMu sync.Mutex
	outbox   []Notification
	draining bool
}

// NewEngine creates a game in the SETUP phase.
func NewEngine(opts Options, logger *zap.Logger) (*Engine, error) {
	roster := opts.Roster
	if roster == nil {
		roster = tables.DefaultRoster()
	}
	if err := validateRoster(roster); err != nil {
		return nil, err
	}
	if opts.HintTimeout <= 0 {
		opts.HintTimeout = DefaultHintTimeout
	}
	provider := opts.Hints
	if provider == nil {
		provider = hint.NewCoach()
	}

	e := &Engine{
		logger:  logger,
		gameID:  uuid.NewString(),
		opts:    opts,
		roster:  roster,
		rng:     rand.New(rand.NewSource(opts.Seed)),
		bus:     rules.NewEventBus(),
		stats:   rules.NewWatcherRegistry(),
		log:     gamelog.New(opts.Clock, logger),
		hints:   hint.NewSafe(provider, opts.HintTimeout, logger),
		sched:   newScheduler(),
		history: NewHistory(),
	}
	access := gameStateAccess{state: func() *GameState { return e.state }}
	e.check = rules.NewLegalityChecker(access)
	e.targets = targeting.NewTargetValidator(access)

	watchers.RegisterDefaults(e.stats)
	e.bus.Subscribe(e.stats.NotifyWatchers)

	e.mu.Lock()
	e.setup()
	e.mu.Unlock()

	if logger != nil {
		logger.Info("game created",
			zap.String("game_id", e.gameID),
			zap.Int64("seed", opts.Seed),
			zap.Int("players", len(roster)))
	}
	return e, nil
}

func validateRoster(roster []tables.PlayerSeed) error {
	if len(roster) == 0 {
		return errors.New("roster must contain at least one player")
	}
	seen := make(map[string]bool, len(roster))
	for _, seed := range roster {
		if seed.ID == "" {
			return errors.New("roster player without id")
		}
		if seen[seed.ID] {
			return fmt.Errorf("duplicate roster player %s", seed.ID)
		}
		seen[seed.ID] = true
		if seed.Controller != tables.ControllerHuman && seed.Controller != tables.ControllerComputer {
			return fmt.Errorf("player %s has unknown controller %q", seed.ID, seed.Controller)
		}
	}
	return nil
}

// setup builds a fresh state from the roster. Caller holds e.mu.
func (e *Engine) setup() {
	e.state = newGameState(e.roster)
	e.brains = make(map[string]policy.Brain)
	for _, p := range e.state.Players {
		if !p.IsHuman() {
			e.brains[p.ID] = policy.NewRuleBrain(p.Behavior, e.rng)
		}
	}
	e.publish(rules.NewEvent(rules.EventGameStarted, "", e.state.TurnCount()))
	e.record(gamelog.KindSystem, "", 0, "Welcome to the money adventure! Choose a difficulty to begin.")
}

// GameID returns the session identifier.
func (e *Engine) GameID() string {
	return e.gameID
}

// Log returns the game log.
func (e *Engine) Log() *gamelog.Log {
	return e.log
}

// History returns the per-turn snapshot history.
func (e *Engine) History() *History {
	return e.history
}

// Events returns the engine's event bus.
func (e *Engine) Events() *rules.EventBus {
	return e.bus
}

// SetNotificationHandler registers the handler for notifications.
func (e *Engine) SetNotificationHandler(handler NotificationHandler) {
	e.handlerMu.Lock()
	defer e.handlerMu.Unlock()
	e.handler = handler
}

// emitNotification queues n for the handler without blocking the caller.
func (e *Engine) emitNotification(n Notification) {
	e.handlerMu.RLock()
	hasHandler := e.handler != nil
	e.handlerMu.RUnlock()
	if !hasHandler {
		return
	}

	e.notifyMu.Lock()
	e.outbox = append(e.outbox, n)
	if e.draining {
		e.notifyMu.Unlock()
		return
	}
	e.draining = true
	e.notifyMu.Unlock()
	go e.drainNotifications()
}

func (e *Engine) drainNotifications() {
	for {
		e.notifyMu.Lock()
		if len(e.outbox) == 0 {
			e.draining = false
			e.notifyMu.Unlock()
			return
		}
		n := e.outbox[0]
		e.outbox = e.outbox[1:]
		e.notifyMu.Unlock()

		e.handlerMu.RLock()
		handler := e.handler
		e.handlerMu.RUnlock()
		if handler != nil {
			handler(n)
		}
	}
}

func (e *Engine) publish(evt rules.Event) {
	if evt.Turn == 0 && e.state != nil {
		evt.Turn = e.state.TurnCount()
	}
	e.bus.Publish(evt)
}

// record appends a log entry for the current turn.
func (e *Engine) record(kind gamelog.Kind, playerID string, amount int, format string, args ...interface{}) {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	entry := e.log.Append(gamelog.Entry{
		Kind:     kind,
		Turn:     e.state.TurnCount(),
		PlayerID: playerID,
		Message:  msg,
		Amount:   amount,
	})
	e.emitNotification(Notification{
		Type:      NotificationLogEntry,
		GameID:    e.gameID,
		PlayerID:  playerID,
		Timestamp: entry.Timestamp,
		Data: map[string]interface{}{
			"seq":     entry.Seq,
			"kind":    string(entry.Kind),
			"message": entry.Message,
		},
	})
}

func (e *Engine) speak(p *Player, line string) {
	if line == "" {
		return
	}
	e.record(gamelog.KindSpeech, p.ID, 0, "%s: %q", p.Name, line)
}

// transition moves the state machine. Illegal transitions are programming errors.
func (e *Engine) transition(to rules.Phase) {
	from := e.state.Phase()
	if err := e.state.turn.Transition(to); err != nil {
		if e.logger != nil {
			e.logger.Error("illegal transition", zap.Stringer("from", from), zap.Stringer("to", to), zap.Error(err))
		}
		return
	}
	evt := rules.NewEvent(rules.EventPhaseChanged, e.state.CurrentPlayer().ID, e.state.TurnCount())
	evt.Data = to.String()
	evt.Metadata["from"] = from.String()
	e.publish(evt)
	e.emitNotification(Notification{
		Type:      NotificationPhase,
		GameID:    e.gameID,
		PlayerID:  e.state.CurrentPlayer().ID,
		Timestamp: time.Now(),
		Data:      map[string]interface{}{"from": from.String(), "to": to.String()},
	})
}

// authorize checks a command against the phase table and returns the player
// issuing it. Human-only commands require the active player to be human.
// Rejections are logged.
func (e *Engine) authorize(cmd rules.Command, humanOnly bool) (*Player, error) {
	res := e.check.CheckCommand(cmd, "")
	if !res.Legal {
		var err error
		switch res.Violation {
		case rules.ViolationGameOver:
			err = ErrGameOver
		case rules.ViolationPhase:
			err = &PhaseError{Command: string(cmd), Expected: res.Expected, Actual: res.Actual}
		default:
			err = fmt.Errorf("%s: %s", cmd, res.Reason)
		}
		return nil, e.reject(cmd, err)
	}
	p := e.state.CurrentPlayer()
	if humanOnly && !p.IsHuman() {
		return nil, e.reject(cmd, fmt.Errorf("%w: %s is playing", ErrNotHumanTurn, p.Name))
	}
	return p, nil
}

func (e *Engine) reject(cmd rules.Command, err error) error {
	e.record(gamelog.KindRejected, "", 0, "%s rejected: %v", cmd, err)
	if e.logger != nil {
		e.logger.Debug("command rejected", zap.String("command", string(cmd)), zap.Error(err))
	}
	return err
}
