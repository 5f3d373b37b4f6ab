// Package portfolio derives holdings, summary, allocation and dividend
// aggregates from a user's transaction history. All functions are pure:
// same input always yields the same output, nothing here touches the
// database or the network.
package portfolio

import (
	"errors"
	"fmt"
	"sort"

	"portfolio-tracker/internal/models"

	"github.com/shopspring/decimal"
)

// ErrOversold marks a sell that exceeds the quantity held at that point in
// the fold. The weighted-average decrement would divide by zero otherwise.
var ErrOversold = errors.New("oversold position")

// Holding is the derived current position in one ticker.
type Holding struct {
	Ticker            string          `json:"ticker"`
	AssetName         string          `json:"asset_name"`
	AssetClass        string          `json:"asset_class"`
	AssetClassColor   string          `json:"asset_class_color"`
	Quantity          decimal.Decimal `json:"quantity"`
	AvgPrice          decimal.Decimal `json:"avg_price"`
	TotalCost         decimal.Decimal `json:"total_cost"`
	CurrentPrice      decimal.Decimal `json:"current_price"`
	CurrentValue      decimal.Decimal `json:"current_value"`
	ProfitLoss        decimal.Decimal `json:"profit_loss"`
	ProfitLossPercent decimal.Decimal `json:"profit_loss_percent"`
}

type position struct {
	ticker     string
	assetName  string
	class      string
	classColor string
	quantity   decimal.Decimal
	cost       decimal.Decimal
}

var oneHundred = decimal.NewFromInt(100)

// AggregateHoldings folds buy/sell transactions into per-ticker positions
// under a weighted-average cost basis and prices them with the supplied
// quote map. Tickers without a quote fall back to their average cost.
//
// Transactions are folded in ascending transaction_date order; the
// average-cost decrement on a sell depends on the quantity held at the
// time of the sale, so the input order is irrelevant but the date order is
// not. Dividends are ignored by this fold.
func AggregateHoldings(txs []models.Transaction, quotes map[string]decimal.Decimal) ([]Holding, error) {
	sorted := make([]models.Transaction, len(txs))
	copy(sorted, txs)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].TransactionDate.Equal(sorted[j].TransactionDate) {
			return sorted[i].TransactionDate.Before(sorted[j].TransactionDate)
		}
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})

	positions := make(map[string]*position)
	var order []string // ticker first-seen order, for stable output

	for i := range sorted {
		tx := &sorted[i]
		if tx.TransactionType == models.TypeDividend {
			continue
		}

		p, ok := positions[tx.Ticker]
		if !ok {
			p = &position{
				ticker:     tx.Ticker,
				assetName:  tx.AssetName,
				class:      className(tx),
				classColor: classColor(tx),
			}
			positions[tx.Ticker] = p
			order = append(order, tx.Ticker)
		}

		switch tx.TransactionType {
		case models.TypeBuy:
			p.quantity = p.quantity.Add(tx.Quantity)
			p.cost = p.cost.Add(tx.TotalValue) // fees already included
		case models.TypeSell:
			if p.quantity.Sign() <= 0 || tx.Quantity.GreaterThan(p.quantity) {
				return nil, fmt.Errorf("%w: sell %s %s on %s with %s held",
					ErrOversold, tx.Quantity, tx.Ticker,
					tx.TransactionDate.Format("2006-01-02"), p.quantity)
			}
			// reduce cost at the pre-sale average cost per unit
			avg := p.cost.Div(p.quantity)
			p.cost = p.cost.Sub(tx.Quantity.Mul(avg))
			p.quantity = p.quantity.Sub(tx.Quantity)
		}
	}

	holdings := make([]Holding, 0, len(positions))
	for _, ticker := range order {
		p := positions[ticker]
		if p.quantity.Sign() <= 0 {
			continue
		}

		avgPrice := p.cost.Div(p.quantity)
		currentPrice, ok := quotes[p.ticker]
		if !ok || currentPrice.Sign() <= 0 {
			currentPrice = avgPrice
		}
		currentValue := p.quantity.Mul(currentPrice)
		profitLoss := currentValue.Sub(p.cost)
		profitLossPct := decimal.Zero
		if p.cost.Sign() > 0 {
			profitLossPct = profitLoss.Div(p.cost).Mul(oneHundred)
		}

		holdings = append(holdings, Holding{
			Ticker:            p.ticker,
			AssetName:         p.assetName,
			AssetClass:        p.class,
			AssetClassColor:   p.classColor,
			Quantity:          p.quantity,
			AvgPrice:          avgPrice,
			TotalCost:         p.cost,
			CurrentPrice:      currentPrice,
			CurrentValue:      currentValue,
			ProfitLoss:        profitLoss,
			ProfitLossPercent: profitLossPct,
		})
	}
	return holdings, nil
}

func className(tx *models.Transaction) string {
	if tx.AssetClass.Name != "" {
		return tx.AssetClass.Name
	}
	return "Unknown"
}

func classColor(tx *models.Transaction) string {
	if tx.AssetClass.Color != "" {
		return tx.AssetClass.Color
	}
	return "#6b7280"
}
