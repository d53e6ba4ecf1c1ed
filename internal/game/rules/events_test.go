package rules

import "testing"

func TestEventBusSubscribeTyped(t *testing.T) {
	bus := NewEventBus()

	paydays := 0
	purchases := 0

	handle1 := bus.SubscribeTyped(EventPaycheck, func(e Event) {
		paydays++
	})
	handle2 := bus.SubscribeTyped(EventAssetBought, func(e Event) {
		purchases++
	})

	bus.Publish(NewEventWithAmount(EventPaycheck, "p1", 1, 800))
	if paydays != 1 {
		t.Fatalf("expected paycheck count 1, got %d", paydays)
	}
	if purchases != 0 {
		t.Fatalf("expected purchase count 0, got %d", purchases)
	}

	bus.Publish(NewEventWithAmount(EventAssetBought, "p1", 1, 500))
	if purchases != 1 {
		t.Fatalf("expected purchase count 1, got %d", purchases)
	}

	bus.Unsubscribe(handle1)
	bus.Publish(NewEvent(EventPaycheck, "p2", 1))
	if paydays != 1 {
		t.Fatalf("expected paycheck count still 1 after unsubscribe, got %d", paydays)
	}

	bus.Unsubscribe(handle2)
	bus.Publish(NewEvent(EventAssetBought, "p2", 1))
	if purchases != 1 {
		t.Fatalf("expected purchase count still 1 after unsubscribe, got %d", purchases)
	}
}

func TestEventBusSubscribeAll(t *testing.T) {
	bus := NewEventBus()

	all := 0
	handle := bus.Subscribe(func(e Event) {
		all++
	})

	bus.Publish(NewEvent(EventDiceRolled, "p1", 1))
	bus.Publish(NewEvent(EventPlayerMoved, "p1", 1))
	bus.Publish(NewEvent(EventCardDrawn, "p1", 1))
	if all != 3 {
		t.Fatalf("expected all event count 3, got %d", all)
	}

	bus.Unsubscribe(handle)
	bus.Publish(NewEvent(EventDiceRolled, "p1", 1))
	if all != 3 {
		t.Fatalf("expected all event count still 3 after unsubscribe, got %d", all)
	}
}

func TestEventBusIgnoresNilListeners(t *testing.T) {
	bus := NewEventBus()
	if h := bus.Subscribe(nil); h != -1 {
		t.Fatalf("expected -1 handle for nil listener, got %d", h)
	}
	if h := bus.SubscribeTyped(EventPaycheck, nil); h != -1 {
		t.Fatalf("expected -1 handle for nil typed listener, got %d", h)
	}
}

func TestEventBusOrderAndMultipleTypes(t *testing.T) {
	bus := NewEventBus()
	var order []string

	bus.Subscribe(func(e Event) { order = append(order, "all:"+string(e.Type)) })
	bus.SubscribeTyped(EventAssetBought, func(e Event) {
		order = append(order, "buy:"+string(e.Type))
	}, EventDreamBought)

	bus.Publish(NewEvent(EventDreamBought, "p1", 2))
	bus.Publish(NewEvent(EventDonated, "p1", 2))

	want := []string{"all:DREAM_BOUGHT", "buy:DREAM_BOUGHT", "all:DONATED"}
	if len(order) != len(want) {
		t.Fatalf("expected %v, got %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, order)
		}
	}
}

func TestEventBusListenerMayUnsubscribe(t *testing.T) {
	bus := NewEventBus()
	calls := 0
	var handle int
	handle = bus.Subscribe(func(Event) {
		calls++
		bus.Unsubscribe(handle)
	})

	bus.Publish(NewEvent(EventTurnBegan, "p1", 1))
	bus.Publish(NewEvent(EventTurnBegan, "p1", 2))
	if calls != 1 {
		t.Fatalf("expected listener to run once, got %d", calls)
	}
}

func TestNewEventPopulatesFields(t *testing.T) {
	evt := NewEventWithAmount(EventDonated, "p3", 4, 200)
	if evt.Type != EventDonated || evt.PlayerID != "p3" || evt.Turn != 4 || evt.Amount != 200 {
		t.Fatalf("unexpected event %+v", evt)
	}
	if evt.Metadata == nil {
		t.Fatalf("expected metadata map to be initialised")
	}
	evt.Metadata["from"] = "ROLL"
	if evt.Timestamp.IsZero() {
		t.Fatalf("expected timestamp to be set")
	}
}

func TestIsMoneyEvent(t *testing.T) {
	if !EventPaycheck.IsMoneyEvent() || !EventSupportGiven.IsMoneyEvent() {
		t.Fatalf("expected paycheck and support to move money")
	}
	if EventDiceRolled.IsMoneyEvent() || EventCardPassed.IsMoneyEvent() {
		t.Fatalf("expected dice and pass to be non-money events")
	}
}
