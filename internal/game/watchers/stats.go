package watchers

import "github.com/moneyadventure/adventure-server-go/internal/game/rules"

// PlayerStats aggregates the statistics the watchers keep for one player.
type PlayerStats struct {
	Paydays         int `json:"paydays"`
	TotalIncome     int `json:"total_income"`
	Purchases       int `json:"purchases"`
	Spent           int `json:"spent"`
	Sales           int `json:"sales"`
	Donations       int `json:"donations"`
	Donated         int `json:"donated"`
	SupportGiven    int `json:"support_given"`
	SupportReceived int `json:"support_received"`
	EscapeTurn      int `json:"escape_turn,omitempty"`
}

// RegisterDefaults adds every statistics watcher to the registry.
func RegisterDefaults(registry *rules.WatcherRegistry) {
	registry.AddWatcher(NewPaydayWatcher())
	registry.AddWatcher(NewPurchaseWatcher())
	registry.AddWatcher(NewDonationWatcher())
	registry.AddWatcher(NewEscapeWatcher())
	registry.AddWatcher(NewSupportWatcher())
}

// StatsFor reads a player's statistics from the registered watchers.
// Missing watchers contribute zero values.
func StatsFor(registry *rules.WatcherRegistry, playerID string) PlayerStats {
	var stats PlayerStats
	if registry == nil {
		return stats
	}
	if w, ok := registry.GetWatcher(PaydayWatcherKey).(*PaydayWatcher); ok {
		stats.Paydays = w.GetPaydays(playerID)
		stats.TotalIncome = w.GetTotalIncome(playerID)
	}
	if w, ok := registry.GetWatcher(PurchaseWatcherKey).(*PurchaseWatcher); ok {
		stats.Purchases = w.GetPurchases(playerID)
		stats.Spent = w.GetSpent(playerID)
		stats.Sales = w.GetSales(playerID)
	}
	if w, ok := registry.GetWatcher(DonationWatcherKey).(*DonationWatcher); ok {
		stats.Donations = w.GetDonations(playerID)
		stats.Donated = w.GetDonated(playerID)
	}
	if w, ok := registry.GetWatcher(SupportWatcherKey).(*SupportWatcher); ok {
		stats.SupportGiven = w.GetGiven(playerID)
		stats.SupportReceived = w.GetReceived(playerID)
	}
	if w, ok := registry.GetWatcher(EscapeWatcherKey).(*EscapeWatcher); ok {
		stats.EscapeTurn = w.GetEscapeTurn(playerID)
	}
	return stats
}
