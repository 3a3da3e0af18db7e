package report

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/lepinkainen/keepers/internal/keepers"
	"github.com/shopspring/decimal"
)

// FeeSummary aggregates the fees of a transfer list. Fees are in millions
// of euros; non-numeric fees ("-", "loan transfer") are only counted.
type FeeSummary struct {
	Transfers int
	Priced    int
	Total     decimal.Decimal
	Highest   decimal.Decimal
	// HighestPlayer is the first player paid Highest.
	HighestPlayer string
}

// SummarizeFees adds up the numeric fees of transfers.
func SummarizeFees(transfers []keepers.Transfer) FeeSummary {
	s := FeeSummary{Transfers: len(transfers)}
	for _, tr := range transfers {
		fee, err := decimal.NewFromString(tr.Fee)
		if err != nil {
			continue
		}
		s.Priced++
		s.Total = s.Total.Add(fee)
		if s.HighestPlayer == "" || fee.GreaterThan(s.Highest) {
			s.Highest = fee
			s.HighestPlayer = tr.Player
		}
	}
	return s
}

// Average is the mean numeric fee, zero when nothing was priced.
func (s FeeSummary) Average() decimal.Decimal {
	if s.Priced == 0 {
		return decimal.Zero
	}
	return s.Total.Div(decimal.NewFromInt(int64(s.Priced)))
}

// Render writes the summary as a table.
func (s FeeSummary) Render(w io.Writer, title string) {
	tw := newWriter(w, title)
	tw.AppendRows([]table.Row{
		{"transfers", s.Transfers},
		{"with a numeric fee", s.Priced},
		{"total (€m)", s.Total.StringFixed(2)},
		{"average (€m)", s.Average().StringFixed(2)},
	})
	if s.HighestPlayer != "" {
		tw.AppendRow(table.Row{"highest (€m)", s.Highest.StringFixed(2) + " " + s.HighestPlayer})
	}
	tw.Render()
}
