package watchers

import (
	"testing"

	"github.com/moneyadventure/adventure-server-go/internal/game/rules"
)

func TestPaydayWatcher(t *testing.T) {
	watcher := NewPaydayWatcher()

	if len(watcher.Players()) != 0 {
		t.Fatal("watcher should start empty")
	}

	watcher.Watch(rules.NewEventWithAmount(rules.EventPaycheck, "p1", 1, 800))
	watcher.Watch(rules.NewEventWithAmount(rules.EventPaycheck, "p1", 2, 1600))
	watcher.Watch(rules.NewEventWithAmount(rules.EventDonated, "p1", 2, 200))

	if watcher.GetPaydays("p1") != 2 {
		t.Fatalf("expected 2 paydays, got %d", watcher.GetPaydays("p1"))
	}
	if watcher.GetTotalIncome("p1") != 2400 {
		t.Fatalf("expected income 2400, got %d", watcher.GetTotalIncome("p1"))
	}

	watcher.Reset()
	if watcher.GetPaydays("p1") != 0 || watcher.GetTotalIncome("p1") != 0 {
		t.Fatal("watcher should be cleared after reset")
	}
}

func TestPurchaseWatcher(t *testing.T) {
	watcher := NewPurchaseWatcher()

	watcher.Watch(rules.NewEventWithAmount(rules.EventAssetBought, "p2", 1, 500))
	watcher.Watch(rules.NewEventWithAmount(rules.EventDreamBought, "p2", 9, 80000))
	watcher.Watch(rules.NewEventWithAmount(rules.EventAssetSold, "p2", 9, 400))

	if watcher.GetPurchases("p2") != 2 {
		t.Fatalf("expected 2 purchases, got %d", watcher.GetPurchases("p2"))
	}
	if watcher.GetSpent("p2") != 80500 {
		t.Fatalf("expected 80500 spent, got %d", watcher.GetSpent("p2"))
	}
	if watcher.GetSales("p2") != 1 {
		t.Fatalf("expected 1 sale, got %d", watcher.GetSales("p2"))
	}

	follows := watcher.Follows()
	if len(follows) != 3 {
		t.Fatalf("expected purchase watcher to follow 3 event types, got %v", follows)
	}
}

func TestDonationWatcher(t *testing.T) {
	watcher := NewDonationWatcher()
	watcher.Watch(rules.NewEventWithAmount(rules.EventDonated, "p3", 1, 200))
	watcher.Watch(rules.NewEventWithAmount(rules.EventDonated, "p3", 4, 300))

	if watcher.GetDonations("p3") != 2 || watcher.GetDonated("p3") != 500 {
		t.Fatalf("expected 2 donations totalling 500, got %d/%d", watcher.GetDonations("p3"), watcher.GetDonated("p3"))
	}
}

func TestEscapeWatcherRecordsFirstEscape(t *testing.T) {
	watcher := NewEscapeWatcher()
	watcher.Watch(rules.NewEvent(rules.EventEscaped, "p1", 7))
	watcher.Watch(rules.NewEvent(rules.EventEscaped, "p1", 9))

	if watcher.GetEscapeTurn("p1") != 7 {
		t.Fatalf("expected escape on turn 7, got %d", watcher.GetEscapeTurn("p1"))
	}
	if watcher.GetEscapeTurn("p2") != 0 {
		t.Fatalf("expected no escape for p2")
	}
}

func TestSupportWatcher(t *testing.T) {
	watcher := NewSupportWatcher()
	evt := rules.NewEventWithAmount(rules.EventSupportGiven, "p1", 3, 1000)
	evt.TargetID = "p2"
	watcher.Watch(evt)

	if watcher.GetGiven("p1") != 1 || watcher.GetReceived("p2") != 1 {
		t.Fatalf("expected one support given by p1 and received by p2")
	}
}

func TestStatsForReadsRegistry(t *testing.T) {
	registry := rules.NewWatcherRegistry()
	RegisterDefaults(registry)

	registry.NotifyWatchers(rules.NewEventWithAmount(rules.EventPaycheck, "p1", 1, 800))
	registry.NotifyWatchers(rules.NewEventWithAmount(rules.EventAssetBought, "p1", 1, 500))
	registry.NotifyWatchers(rules.NewEventWithAmount(rules.EventDonated, "p1", 2, 200))
	registry.NotifyWatchers(rules.NewEvent(rules.EventEscaped, "p1", 5))

	// Not followed by any default watcher.
	registry.NotifyWatchers(rules.NewEventWithAmount(rules.EventDiceRolled, "p1", 2, 6))

	stats := StatsFor(registry, "p1")
	want := PlayerStats{Paydays: 1, TotalIncome: 800, Purchases: 1, Spent: 500, Donations: 1, Donated: 200, EscapeTurn: 5}
	if stats != want {
		t.Fatalf("expected %+v, got %+v", want, stats)
	}

	if got := StatsFor(nil, "p1"); got != (PlayerStats{}) {
		t.Fatalf("expected zero stats for nil registry, got %+v", got)
	}
}
