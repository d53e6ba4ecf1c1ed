package economy

import (
	"fmt"

	"github.com/moneyadventure/adventure-server-go/internal/game/tables"
)

// Transfer is the money movement of one support package.
type Transfer struct {
	Kind               tables.SupportKind
	GiverDebit         int
	GiverPassiveIncome int
	ReceiverBonus      int // credited to the receiver's pending support bonus
	ReceiverCash       int // credited to the receiver's cash now
}

// SupportTransfer computes the transfer for a support package paid by a giver
// holding giverCash. Returns ErrInsufficientFunds when the giver cannot pay.
func SupportTransfer(kind tables.SupportKind, giverCash int) (Transfer, error) {
	pkg, ok := tables.LookupSupport(kind)
	if !ok {
		return Transfer{}, fmt.Errorf("unknown support kind %q", kind)
	}
	if !CanAfford(giverCash, pkg.CostToGiver) {
		return Transfer{}, fmt.Errorf("%w: support costs %d, have %d", ErrInsufficientFunds, pkg.CostToGiver, giverCash)
	}

	t := Transfer{
		Kind:               kind,
		GiverDebit:         pkg.CostToGiver,
		GiverPassiveIncome: pkg.GiverPassiveIncome,
	}
	if pkg.Deferred {
		t.ReceiverBonus = pkg.BenefitToReceiver
	} else {
		t.ReceiverCash = pkg.BenefitToReceiver
	}
	return t, nil
}
