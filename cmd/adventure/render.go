package main

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/moneyadventure/adventure-server-go/internal/game"
	"github.com/moneyadventure/adventure-server-go/internal/game/gamelog"
	"github.com/moneyadventure/adventure-server-go/internal/game/tables"
)

var palette = struct {
	Info, Action, Speech, Warn, Milestone, Hint, Header *color.Color
}{
	Info:      color.New(color.FgCyan),
	Action:    color.New(color.FgWhite),
	Speech:    color.New(color.FgMagenta),
	Warn:      color.New(color.FgHiYellow),
	Milestone: color.New(color.FgGreen, color.Bold),
	Hint:      color.New(color.FgHiBlue),
	Header:    color.New(color.FgWhite, color.Bold),
}

func kindColor(kind gamelog.Kind) *color.Color {
	switch kind {
	case gamelog.KindAction:
		return palette.Action
	case gamelog.KindSpeech:
		return palette.Speech
	case gamelog.KindRejected:
		return palette.Warn
	case gamelog.KindMilestone:
		return palette.Milestone
	case gamelog.KindHint:
		return palette.Hint
	default:
		return palette.Info
	}
}

// console writes game output. Log entries arrive from the engine goroutine.
type console struct {
	mu  sync.Mutex
	out io.Writer
}

func newConsole(out io.Writer) *console {
	return &console{out: out}
}

func (c *console) entry(e gamelog.Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	kindColor(e.Kind).Fprintf(c.out, "[T%d] %s\n", e.Turn, e.Message)
}

func (c *console) println(col *color.Color, format string, args ...interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	col.Fprintf(c.out, format+"\n", args...)
}

func (c *console) render(t table.Writer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	t.SetOutputMirror(c.out)
	t.Render()
}

func money(amount int) string {
	return gamelog.FormatMoney(amount)
}

func (c *console) status(snap game.Snapshot) {
	t := table.NewWriter()
	t.SetTitle(fmt.Sprintf("Turn %d  %s  (%s)", snap.TurnCount, snap.Phase, snap.Difficulty.Name))
	t.AppendHeader(table.Row{"", "Player", "Track", "Cash", "Cashflow", "Passive", "Expenses", "Freedom", "Goal"})
	for i, p := range snap.Players {
		marker := ""
		if i == snap.CurrentPlayerIndex {
			marker = "▶"
		}
		name := p.Name
		if p.ID == snap.WinnerID {
			name = palette.Milestone.Sprint(name + " ★")
		}
		goal := "-"
		if p.SelectedGoal != nil {
			goal = fmt.Sprintf("%s (%s)", p.SelectedGoal.Title, money(p.SelectedGoal.RequiredCash))
		}
		t.AppendRow(table.Row{
			marker, name, p.Track, money(p.Cash), money(p.MonthlyCashflow),
			money(p.PassiveIncome), money(p.MonthlyExpenses), fmt.Sprintf("%d%%", p.FreedomProgress), goal,
		})
	}
	t.SetStyle(table.StyleRounded)
	t.Style().Title.Align = text.AlignCenter
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
		{Number: 7, Align: text.AlignRight},
		{Number: 8, Align: text.AlignRight},
	})
	c.render(t)

	if snap.CurrentCard != nil {
		c.card(*snap.CurrentCard)
	}
	if snap.SupportRequest != nil {
		c.println(palette.Warn, "Support request: %s asks %s for %s support. Answer with 'accept' or 'decline'.",
			snap.SupportRequest.RequesterID, snap.SupportRequest.TargetID, snap.SupportRequest.Kind)
	}
}

func (c *console) card(card tables.Card) {
	t := table.NewWriter()
	t.SetTitle(fmt.Sprintf("%s card", card.Type))
	t.AppendRow(table.Row{"Title", card.Title})
	t.AppendRow(table.Row{"Description", card.Description})
	if card.Cost > 0 {
		t.AppendRow(table.Row{"Cost", money(card.Cost)})
	}
	if card.Cashflow > 0 {
		t.AppendRow(table.Row{"Cashflow", money(card.Cashflow) + "/month"})
	}
	t.SetStyle(table.StyleLight)
	c.render(t)
}

func (c *console) assets(quotes []game.SaleQuote) {
	if len(quotes) == 0 {
		c.println(palette.Info, "No assets to sell.")
		return
	}
	t := table.NewWriter()
	t.AppendHeader(table.Row{"ID", "Asset", "Cashflow", "Sale price"})
	for _, q := range quotes {
		t.AppendRow(table.Row{q.Asset.ID, q.Asset.Name, money(q.Asset.Cashflow), money(q.Price)})
	}
	t.SetStyle(table.StyleLight)
	c.render(t)
}

func (c *console) goals(goals []tables.LifeGoal) {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"ID", "Goal", "Required cash"})
	for _, g := range goals {
		t.AppendRow(table.Row{g.ID, g.Title, money(g.RequiredCash)})
	}
	t.SetStyle(table.StyleLight)
	t.SetColumnConfigs([]table.ColumnConfig{{Number: 3, Align: text.AlignRight}})
	c.render(t)
}

func (c *console) difficulties() {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Level", "Name", "Ages", "Description"})
	for _, d := range tables.Difficulties() {
		t.AppendRow(table.Row{d.ID, d.Name, d.AgeRange, d.Description})
	}
	t.SetStyle(table.StyleLight)
	c.render(t)
}

func (c *console) help() {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Command", "Description"})
	for _, cmd := range commandHelp {
		t.AppendRow(table.Row{cmd[0], cmd[1]})
	}
	t.SetStyle(table.StyleLight)
	c.render(t)
}

func (c *console) standings(snap game.Snapshot) {
	t := table.NewWriter()
	t.SetTitle("Final standings")
	t.AppendHeader(table.Row{"Player", "Cash", "Passive", "Assets", "Escaped", "Bought", "Donated", "Support given"})
	for _, p := range snap.Players {
		name := p.Name
		if p.ID == snap.WinnerID {
			name = palette.Milestone.Sprint(name + " ★")
		}
		t.AppendRow(table.Row{
			name, money(p.Cash), money(p.PassiveIncome), len(p.Assets), p.HasEscaped,
			p.Stats.Purchases, money(p.Stats.Donated), p.Stats.SupportGiven,
		})
	}
	t.SetStyle(table.StyleRounded)
	t.Style().Title.Align = text.AlignCenter
	c.render(t)
}
