package portfolio

import (
	"testing"

	"github.com/shopspring/decimal"
)

func holding(ticker, class, color, cost, value string) Holding {
	return Holding{
		Ticker:          ticker,
		AssetClass:      class,
		AssetClassColor: color,
		TotalCost:       dec(cost),
		CurrentValue:    dec(value),
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize([]Holding{
		holding("PETR4", "Ações", "#6366f1", "1000", "1200"),
		holding("BTC", "Cripto", "#f59e0b", "500", "450"),
	})

	if !s.TotalValue.Equal(dec("1650")) {
		t.Errorf("total_value = %s, want 1650", s.TotalValue)
	}
	if !s.TotalCost.Equal(dec("1500")) {
		t.Errorf("total_cost = %s, want 1500", s.TotalCost)
	}
	if !s.TotalReturn.Equal(dec("150")) {
		t.Errorf("total_return = %s, want 150", s.TotalReturn)
	}
	if !s.TotalReturnPercent.Equal(dec("10")) {
		t.Errorf("total_return_percent = %s, want 10", s.TotalReturnPercent)
	}
	if s.DayGain.Sign() != 0 || s.CashBalance.Sign() != 0 {
		t.Error("day_gain and cash_balance must always be zero")
	}
}

// TestSummarize_ZeroCost guards the division: return percent is zero, not
// NaN/Inf, when there is no cost basis.
func TestSummarize_ZeroCost(t *testing.T) {
	s := Summarize(nil)
	if s.TotalReturnPercent.Sign() != 0 {
		t.Errorf("total_return_percent = %s, want 0", s.TotalReturnPercent)
	}
}

func TestAllocate_GroupsByClass(t *testing.T) {
	alloc := Allocate([]Holding{
		holding("PETR4", "Ações", "#6366f1", "0", "1000"),
		holding("VALE3", "Ações", "#ff0000", "0", "500"), // later color loses
		holding("BTC", "Cripto", "#f59e0b", "0", "300"),
	})

	if len(alloc) != 2 {
		t.Fatalf("got %d slices, want 2", len(alloc))
	}
	if alloc[0].Name != "Ações" || !alloc[0].Value.Equal(dec("1500")) {
		t.Errorf("alloc[0] = %+v, want Ações with 1500", alloc[0])
	}
	if alloc[0].Color != "#6366f1" {
		t.Errorf("alloc[0].Color = %s, first-seen color must win", alloc[0].Color)
	}
	if alloc[1].Name != "Cripto" || !alloc[1].Value.Equal(dec("300")) {
		t.Errorf("alloc[1] = %+v, want Cripto with 300", alloc[1])
	}
}

// TestAllocate_SumsToTotal checks allocation covers 100% of current value.
func TestAllocate_SumsToTotal(t *testing.T) {
	holdings := []Holding{
		holding("A", "Ações", "#111111", "0", "123.45"),
		holding("B", "FIIs", "#222222", "0", "676.55"),
		holding("C", "Cripto", "#333333", "0", "200"),
	}
	total := Summarize(holdings).TotalValue

	var sum decimal.Decimal
	for _, a := range Allocate(holdings) {
		sum = sum.Add(a.Value)
	}
	if !sum.Equal(total) {
		t.Errorf("allocation sum = %s, want total value %s", sum, total)
	}
}
