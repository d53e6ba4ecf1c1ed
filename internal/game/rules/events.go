package rules

import (
	"sync"
	"time"
)

// EventType indicates the category of a game event.
type EventType string

const (
	// Game lifecycle events
	EventGameStarted        EventType = "GAME_STARTED"
	EventDifficultySelected EventType = "DIFFICULTY_SELECTED"
	EventGoalSelected       EventType = "GOAL_SELECTED"
	EventGameWon            EventType = "GAME_WON"
	EventGameRestarted      EventType = "GAME_RESTARTED"

	// Turn events
	EventPhaseChanged EventType = "PHASE_CHANGED"
	EventTurnBegan    EventType = "TURN_BEGAN"
	EventTurnEnded    EventType = "TURN_ENDED"
	EventDiceRolled   EventType = "DICE_ROLLED"
	EventPlayerMoved  EventType = "PLAYER_MOVED"
	EventCardDrawn    EventType = "CARD_DRAWN"

	// Money events
	EventPaycheck     EventType = "PAYCHECK"
	EventAssetBought  EventType = "ASSET_BOUGHT"
	EventDreamBought  EventType = "DREAM_BOUGHT"
	EventAssetSold    EventType = "ASSET_SOLD"
	EventDonated      EventType = "DONATED"
	EventPenaltyPaid  EventType = "PENALTY_PAID"
	EventCardPassed   EventType = "CARD_PASSED"
	EventEscaped      EventType = "ESCAPED"
	EventWrittenOff   EventType = "WRITTEN_OFF"

	// Support events
	EventSupportGiven     EventType = "SUPPORT_GIVEN"
	EventSupportRequested EventType = "SUPPORT_REQUESTED"
	EventSupportDeclined  EventType = "SUPPORT_DECLINED"

	// Collaborator events
	EventHintIssued EventType = "HINT_ISSUED"
)

// IsMoneyEvent reports whether the event moves cash.
func (et EventType) IsMoneyEvent() bool {
	switch et {
	case EventPaycheck, EventAssetBought, EventDreamBought, EventAssetSold,
		EventDonated, EventPenaltyPaid, EventEscaped, EventSupportGiven:
		return true
	default:
		return false
	}
}

// Event is a rules-level state change. Watchers and subscribers consume it
// after the engine has applied it.
type Event struct {
	Type      EventType
	PlayerID  string
	TargetID  string // receiving player or asset
	SourceID  string // card
	Amount    int
	Turn      int
	Data      string
	Timestamp time.Time
	Metadata  map[string]string
}

// Listener receives published events.
type Listener func(Event)

type subscription struct {
	handle   int
	types    map[EventType]struct{} // nil matches every type
	listener Listener
}

func (s subscription) matches(t EventType) bool {
	if s.types == nil {
		return true
	}
	_, ok := s.types[t]
	return ok
}

// EventBus delivers events synchronously to subscribers in subscription order.
type EventBus struct {
	mu   sync.RWMutex
	subs []subscription
	next int
}

func NewEventBus() *EventBus {
	return &EventBus{}
}

// Subscribe registers a listener for every event. It returns a handle for
// Unsubscribe, or -1 for a nil listener.
func (bus *EventBus) Subscribe(listener Listener) int {
	return bus.add(nil, listener)
}

// SubscribeTyped registers a listener for the given event types only.
func (bus *EventBus) SubscribeTyped(eventType EventType, listener func(Event), more ...EventType) int {
	types := map[EventType]struct{}{eventType: {}}
	for _, t := range more {
		types[t] = struct{}{}
	}
	return bus.add(types, listener)
}

func (bus *EventBus) add(types map[EventType]struct{}, listener Listener) int {
	if listener == nil {
		return -1
	}
	bus.mu.Lock()
	defer bus.mu.Unlock()
	handle := bus.next
	bus.next++
	bus.subs = append(bus.subs, subscription{handle: handle, types: types, listener: listener})
	return handle
}

// Unsubscribe removes a subscription. Unknown handles are ignored.
func (bus *EventBus) Unsubscribe(handle int) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	for i, sub := range bus.subs {
		if sub.handle == handle {
			bus.subs = append(bus.subs[:i:i], bus.subs[i+1:]...)
			return
		}
	}
}

// Publish delivers the event to every matching subscriber. Listeners run on
// a snapshot of the subscriber list, so they may subscribe or unsubscribe.
func (bus *EventBus) Publish(event Event) {
	bus.mu.RLock()
	subs := bus.subs
	bus.mu.RUnlock()

	for _, sub := range subs {
		if sub.matches(event.Type) {
			sub.listener(event)
		}
	}
}

func NewEvent(eventType EventType, playerID string, turn int) Event {
	return Event{
		Type:      eventType,
		PlayerID:  playerID,
		Turn:      turn,
		Timestamp: time.Now(),
		Metadata:  make(map[string]string),
	}
}

func NewEventWithAmount(eventType EventType, playerID string, turn, amount int) Event {
	evt := NewEvent(eventType, playerID, turn)
	evt.Amount = amount
	return evt
}
