package portfolio

import "github.com/shopspring/decimal"

// Summary holds portfolio-wide totals derived from holdings.
// DayGain and CashBalance have no data source here and are always zero
// rather than fabricated.
type Summary struct {
	TotalValue         decimal.Decimal `json:"total_value"`
	TotalCost          decimal.Decimal `json:"total_cost"`
	TotalReturn        decimal.Decimal `json:"total_return"`
	TotalReturnPercent decimal.Decimal `json:"total_return_percent"`
	DayGain            decimal.Decimal `json:"day_gain"`
	DayGainPercent     decimal.Decimal `json:"day_gain_percent"`
	CashBalance        decimal.Decimal `json:"cash_balance"`
}

// Allocation is one asset class slice of the portfolio's current value.
type Allocation struct {
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
	Color string          `json:"color"`
}

// Summarize derives the portfolio totals from holdings.
func Summarize(holdings []Holding) Summary {
	var s Summary
	for i := range holdings {
		s.TotalValue = s.TotalValue.Add(holdings[i].CurrentValue)
		s.TotalCost = s.TotalCost.Add(holdings[i].TotalCost)
	}
	s.TotalReturn = s.TotalValue.Sub(s.TotalCost)
	if s.TotalCost.Sign() > 0 {
		s.TotalReturnPercent = s.TotalReturn.Div(s.TotalCost).Mul(oneHundred)
	}
	return s
}

// Allocate groups holdings by asset class name, summing current value.
// The first-seen color wins if holdings of the same class disagree.
func Allocate(holdings []Holding) []Allocation {
	index := make(map[string]int)
	var out []Allocation
	for i := range holdings {
		h := &holdings[i]
		if j, ok := index[h.AssetClass]; ok {
			out[j].Value = out[j].Value.Add(h.CurrentValue)
			continue
		}
		index[h.AssetClass] = len(out)
		out = append(out, Allocation{
			Name:  h.AssetClass,
			Value: h.CurrentValue,
			Color: h.AssetClassColor,
		})
	}
	return out
}
