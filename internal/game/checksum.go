package game

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
)

// ChecksumVersion identifies the canonical rendering below.
const ChecksumVersion = 1

// Checksum is a digest of a snapshot's game-relevant fields.
type Checksum struct {
	Hash    string `json:"hash"`
	Version int    `json:"version"`
}

// Checksum hashes the snapshot. Session-specific fields (game id, capture
// time, log sequence) are excluded, so two games driven by the same seed and
// the same commands produce equal checksums.
func (s Snapshot) Checksum() Checksum {
	sum := sha256.Sum256([]byte(s.canonical()))
	return Checksum{Hash: hex.EncodeToString(sum[:]), Version: ChecksumVersion}
}

// Matches reports whether the snapshot hashes to c.
func (s Snapshot) Matches(c Checksum) bool {
	return c.Version == ChecksumVersion && s.Checksum().Hash == c.Hash
}

func (s Snapshot) canonical() string {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "GAME:%s|%d|%d|%s|%s|%t\n",
		s.Phase, s.TurnCount, s.CurrentPlayerIndex, s.WinnerID, s.Difficulty.ID, s.SupportUsed)

	if s.CurrentCard != nil {
		fmt.Fprintf(&buf, "CARD:%s|%s|%d|%d\n", s.CurrentCard.ID, s.CurrentCard.Type, s.CurrentCard.Cost, s.CurrentCard.Cashflow)
	}
	if s.LastRoll != nil {
		fmt.Fprintf(&buf, "ROLL:%v=%d\n", s.LastRoll.Values, s.LastRoll.Total)
	}
	if s.SupportRequest != nil {
		fmt.Fprintf(&buf, "REQUEST:%s>%s|%s\n", s.SupportRequest.RequesterID, s.SupportRequest.TargetID, s.SupportRequest.Kind)
	}

	// Seat order matters, so players are not sorted.
	for _, p := range s.Players {
		goal := ""
		if p.SelectedGoal != nil {
			goal = fmt.Sprintf("%s=%d", p.SelectedGoal.ID, p.SelectedGoal.RequiredCash)
		}
		fmt.Fprintf(&buf, "PLAYER:%s|%d|%d|%d|%d|%d|%t|%s|%d|%d\n",
			p.ID, p.Cash, p.Salary, p.MonthlyExpenses, p.PassiveIncome, p.Position,
			p.HasEscaped, goal, p.CharityTurnsRemaining, p.SupportBonus)

		assets := make([]string, len(p.Assets))
		for i, a := range p.Assets {
			assets[i] = fmt.Sprintf("%s:%s:%d:%d", a.ID, a.CardID, a.Cost, a.Cashflow)
		}
		sort.Strings(assets)
		buf.WriteString("  ASSETS:")
		buf.WriteString(strings.Join(assets, ","))
		buf.WriteString("\n")

		dreams := make([]string, len(p.Dreams))
		for i, d := range p.Dreams {
			dreams[i] = d.ID
		}
		sort.Strings(dreams)
		buf.WriteString("  DREAMS:")
		buf.WriteString(strings.Join(dreams, ","))
		buf.WriteString("\n")
	}
	return buf.String()
}
