package watchers

import (
	"github.com/moneyadventure/adventure-server-go/internal/game/rules"
)

const (
	PaydayWatcherKey   = "PaydayWatcher"
	PurchaseWatcherKey = "PurchaseWatcher"
	DonationWatcherKey = "DonationWatcher"
	EscapeWatcherKey   = "EscapeWatcher"
	SupportWatcherKey  = "SupportWatcher"
)

// Counter names kept in the watchers' tallies.
const (
	counterPaydays   = "paydays"
	counterIncome    = "income"
	counterPurchases = "purchases"
	counterSpent     = "spent"
	counterSales     = "sales"
	counterDonations = "donations"
	counterDonated   = "donated"
	counterEscape    = "escape_turn"
	counterGiven     = "support_given"
	counterReceived  = "support_received"
)

// PaydayWatcher counts paychecks and the income they paid.
type PaydayWatcher struct {
	*rules.BaseWatcher
}

func NewPaydayWatcher() *PaydayWatcher {
	return &PaydayWatcher{rules.NewBaseWatcher(PaydayWatcherKey, rules.EventPaycheck)}
}

func (w *PaydayWatcher) Watch(event rules.Event) {
	if event.Type != rules.EventPaycheck || event.PlayerID == "" {
		return
	}
	w.Add(event.PlayerID, counterPaydays, 1)
	w.Add(event.PlayerID, counterIncome, event.Amount)
}

// GetPaydays returns how many paychecks a player received.
func (w *PaydayWatcher) GetPaydays(playerID string) int {
	return w.Get(playerID, counterPaydays)
}

// GetTotalIncome returns the sum of a player's paychecks.
func (w *PaydayWatcher) GetTotalIncome(playerID string) int {
	return w.Get(playerID, counterIncome)
}

// PurchaseWatcher tracks assets and dreams bought, and assets sold.
type PurchaseWatcher struct {
	*rules.BaseWatcher
}

func NewPurchaseWatcher() *PurchaseWatcher {
	return &PurchaseWatcher{rules.NewBaseWatcher(PurchaseWatcherKey,
		rules.EventAssetBought, rules.EventDreamBought, rules.EventAssetSold)}
}

func (w *PurchaseWatcher) Watch(event rules.Event) {
	if event.PlayerID == "" {
		return
	}
	switch event.Type {
	case rules.EventAssetSold:
		w.Add(event.PlayerID, counterSales, 1)
	case rules.EventAssetBought, rules.EventDreamBought:
		w.Add(event.PlayerID, counterPurchases, 1)
		w.Add(event.PlayerID, counterSpent, event.Amount)
	}
}

// GetPurchases returns how many cards a player bought.
func (w *PurchaseWatcher) GetPurchases(playerID string) int {
	return w.Get(playerID, counterPurchases)
}

// GetSpent returns the total a player spent on purchases.
func (w *PurchaseWatcher) GetSpent(playerID string) int {
	return w.Get(playerID, counterSpent)
}

// GetSales returns how many assets a player sold.
func (w *PurchaseWatcher) GetSales(playerID string) int {
	return w.Get(playerID, counterSales)
}

// DonationWatcher tracks charity donations.
type DonationWatcher struct {
	*rules.BaseWatcher
}

func NewDonationWatcher() *DonationWatcher {
	return &DonationWatcher{rules.NewBaseWatcher(DonationWatcherKey, rules.EventDonated)}
}

func (w *DonationWatcher) Watch(event rules.Event) {
	if event.Type != rules.EventDonated || event.PlayerID == "" {
		return
	}
	w.Add(event.PlayerID, counterDonations, 1)
	w.Add(event.PlayerID, counterDonated, event.Amount)
}

func (w *DonationWatcher) GetDonations(playerID string) int {
	return w.Get(playerID, counterDonations)
}

func (w *DonationWatcher) GetDonated(playerID string) int {
	return w.Get(playerID, counterDonated)
}

// EscapeWatcher records the turn of each player's first escape.
type EscapeWatcher struct {
	*rules.BaseWatcher
}

func NewEscapeWatcher() *EscapeWatcher {
	return &EscapeWatcher{rules.NewBaseWatcher(EscapeWatcherKey, rules.EventEscaped)}
}

func (w *EscapeWatcher) Watch(event rules.Event) {
	if event.Type != rules.EventEscaped || event.PlayerID == "" {
		return
	}
	w.SetOnce(event.PlayerID, counterEscape, event.Turn)
}

// GetEscapeTurn returns the turn a player escaped on, or 0.
func (w *EscapeWatcher) GetEscapeTurn(playerID string) int {
	return w.Get(playerID, counterEscape)
}

// SupportWatcher tracks support given and received. The event's PlayerID is
// the giver and TargetID the receiver.
type SupportWatcher struct {
	*rules.BaseWatcher
}

func NewSupportWatcher() *SupportWatcher {
	return &SupportWatcher{rules.NewBaseWatcher(SupportWatcherKey, rules.EventSupportGiven)}
}

func (w *SupportWatcher) Watch(event rules.Event) {
	if event.Type != rules.EventSupportGiven {
		return
	}
	if event.PlayerID != "" {
		w.Add(event.PlayerID, counterGiven, 1)
	}
	if event.TargetID != "" {
		w.Add(event.TargetID, counterReceived, 1)
	}
}

func (w *SupportWatcher) GetGiven(playerID string) int {
	return w.Get(playerID, counterGiven)
}

func (w *SupportWatcher) GetReceived(playerID string) int {
	return w.Get(playerID, counterReceived)
}
