package portfolio

import (
	"time"

	"portfolio-tracker/internal/models"

	"github.com/shopspring/decimal"
)

var monthLabels = [12]string{
	"Jan", "Fev", "Mar", "Abr", "Mai", "Jun",
	"Jul", "Ago", "Set", "Out", "Nov", "Dez",
}

// MonthBucket is one point of the dividend chart series.
type MonthBucket struct {
	Month string          `json:"month"`
	Total decimal.Decimal `json:"total"`
}

// DividendReport aggregates dividend transactions of one calendar year.
// Months is always exactly 12 entries, January through December, so the
// chart series never has holes.
type DividendReport struct {
	Year         int             `json:"year"`
	Months       []MonthBucket   `json:"months"`
	Total        decimal.Decimal `json:"total"`
	MaxMonth     string          `json:"max_month"`
	MaxValue     decimal.Decimal `json:"max_value"`
	MonthlyAvg   decimal.Decimal `json:"monthly_avg"`
	HasDividends bool            `json:"has_dividends"`
}

// MonthlyDividends buckets dividend transactions of the year of now by
// calendar month. The monthly average divides by months that actually paid
// something, not by 12: it answers "how much does a typical dividend month
// earn", not the strict arithmetic mean.
func MonthlyDividends(txs []models.Transaction, now time.Time) DividendReport {
	year := now.Year()
	report := DividendReport{
		Year:     year,
		Months:   make([]MonthBucket, 12),
		MaxMonth: "no data",
	}
	for i := range report.Months {
		report.Months[i] = MonthBucket{Month: monthLabels[i], Total: decimal.Zero}
	}

	for i := range txs {
		tx := &txs[i]
		if tx.TransactionType != models.TypeDividend {
			continue
		}
		if tx.TransactionDate.Year() != year {
			continue
		}
		m := int(tx.TransactionDate.Month()) - 1
		report.Months[m].Total = report.Months[m].Total.Add(tx.TotalValue)
	}

	nonZero := 0
	for i := range report.Months {
		total := report.Months[i].Total
		report.Total = report.Total.Add(total)
		if total.Sign() > 0 {
			nonZero++
		}
		if total.GreaterThan(report.MaxValue) {
			report.MaxValue = total
			report.MaxMonth = report.Months[i].Month
		}
	}

	if nonZero > 0 {
		report.MonthlyAvg = report.Total.Div(decimal.NewFromInt(int64(nonZero)))
	}
	report.HasDividends = report.Total.Sign() > 0
	return report
}
