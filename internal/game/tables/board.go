// Package tables holds the read-only game data: both board tracks, the card
// decks, life goals, support packages, difficulty levels, computer player
// personalities and the default roster.
package tables

import "fmt"

// SpaceType identifies what happens when a player lands on a board space.
type SpaceType string

const (
	SpaceStart       SpaceType = "START"
	SpaceOpportunity SpaceType = "OPPORTUNITY"
	SpaceDoodad      SpaceType = "DOODAD"
	SpaceCharity     SpaceType = "CHARITY"
	SpacePaycheck    SpaceType = "PAYCHECK"
	SpaceMarket      SpaceType = "MARKET"
	SpaceBusiness    SpaceType = "BUSINESS"
	SpaceAudit       SpaceType = "AUDIT"
	SpaceDream       SpaceType = "DREAM"
)

var spaceLabels = map[SpaceType]string{
	SpaceStart:       "Start",
	SpaceOpportunity: "Opportunity",
	SpaceDoodad:      "Doodad",
	SpaceCharity:     "Charity",
	SpacePaycheck:    "Payday",
	SpaceMarket:      "Market",
	SpaceBusiness:    "Business",
	SpaceAudit:       "Audit",
	SpaceDream:       "Dream",
}

// Label returns the display label used in log messages.
func (s SpaceType) Label() string {
	if label, ok := spaceLabels[s]; ok {
		return label
	}
	return string(s)
}

// Track selects one of the two parallel cyclic boards.
type Track int

const (
	// TrackEarner is the board every player starts on.
	TrackEarner Track = iota
	// TrackInvestor is the board reached after escaping.
	TrackInvestor
)

func (t Track) String() string {
	switch t {
	case TrackEarner:
		return "EARNER"
	case TrackInvestor:
		return "INVESTOR"
	default:
		return fmt.Sprintf("TRACK_%d", int(t))
	}
}

// TrackFor returns the track a player is on given their escape flag.
func TrackFor(hasEscaped bool) Track {
	if hasEscaped {
		return TrackInvestor
	}
	return TrackEarner
}

var earnerBoard = []SpaceType{
	SpaceStart,
	SpaceOpportunity,
	SpaceDoodad,
	SpaceOpportunity,
	SpaceCharity,
	SpaceOpportunity,
	SpacePaycheck,
	SpaceOpportunity,
	SpaceDoodad,
	SpaceMarket,
	SpaceOpportunity,
	SpacePaycheck,
}

var investorBoard = []SpaceType{
	SpaceStart,
	SpaceBusiness,
	SpaceAudit,
	SpaceBusiness,
	SpaceCharity,
	SpaceBusiness,
	SpacePaycheck,
	SpaceBusiness,
	SpaceDream,
	SpaceMarket,
	SpaceBusiness,
	SpacePaycheck,
}

// Board returns a copy of the spaces of the given track.
func Board(track Track) []SpaceType {
	src := earnerBoard
	if track == TrackInvestor {
		src = investorBoard
	}
	out := make([]SpaceType, len(src))
	copy(out, src)
	return out
}

// TrackLength returns the number of spaces on the given track.
func TrackLength(track Track) int {
	if track == TrackInvestor {
		return len(investorBoard)
	}
	return len(earnerBoard)
}

// SpaceAt returns the space at position on the track. Positions wrap.
func SpaceAt(track Track, position int) SpaceType {
	board := earnerBoard
	if track == TrackInvestor {
		board = investorBoard
	}
	n := len(board)
	return board[((position%n)+n)%n]
}
