// Package importer extracts a best-effort transaction from unstructured
// exchange confirmation e-mails, CSV exports or XLSX sheets. It is a
// heuristic extractor, not a validating parser: malformed input yields a
// nil candidate, never an error, and wrong field assignment is an accepted
// risk mitigated by user confirmation before anything is persisted.
package importer

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ParsedTransaction is the transient candidate surfaced for confirmation.
// A zero Quantity/PricePerUnit/TotalValue means the field was not found;
// a nil Date means no date could be extracted and the preview omits it.
type ParsedTransaction struct {
	Ticker          string          `json:"ticker"`
	AssetName       string          `json:"asset_name"`
	Quantity        decimal.Decimal `json:"quantity"`
	PricePerUnit    decimal.Decimal `json:"price_per_unit"`
	TotalValue      decimal.Decimal `json:"total_value"`
	Date            *time.Time      `json:"date,omitempty"`
	TransactionType string          `json:"transaction_type"` // buy or sell
}

// Accepted reports whether the candidate clears the acceptance gate:
// a ticker plus at least one of quantity/total. Price alone is not enough
// to derive anything.
func (p *ParsedTransaction) Accepted() bool {
	if p == nil || p.Ticker == "" {
		return false
	}
	return p.Quantity.Sign() > 0 || p.TotalValue.Sign() > 0
}

// deriveMissing fills the third of quantity/price/total from the other two.
func (p *ParsedTransaction) deriveMissing() {
	switch {
	case p.Quantity.Sign() > 0 && p.TotalValue.Sign() > 0 && p.PricePerUnit.Sign() == 0:
		p.PricePerUnit = p.TotalValue.Div(p.Quantity)
	case p.Quantity.Sign() > 0 && p.PricePerUnit.Sign() > 0 && p.TotalValue.Sign() == 0:
		p.TotalValue = p.Quantity.Mul(p.PricePerUnit)
	}
}

var csvHeaderWordRe = regexp.MustCompile(`(?i)date|time|pair|symbol|amount|quantity|price`)

// IsCSV reports whether the input looks like a delimited export: the first
// line has at least two comma-separated fields and names a known column.
func IsCSV(input string) bool {
	firstLine, _, _ := strings.Cut(strings.TrimLeft(input, "\r\n"), "\n")
	if !strings.Contains(firstLine, ",") {
		return false
	}
	return csvHeaderWordRe.MatchString(firstLine)
}

// Parse auto-detects the input mode and returns the first candidate plus
// the number of additional CSV rows that were parsed but not surfaced.
// A nil candidate means nothing usable was found.
func Parse(input string) (*ParsedTransaction, int) {
	if strings.TrimSpace(input) == "" {
		return nil, 0
	}

	if IsCSV(input) {
		results := ParseCSV(input)
		if len(results) == 0 {
			return nil, 0
		}
		first := results[0]
		return &first, len(results) - 1
	}
	return ParseText(input), 0
}
