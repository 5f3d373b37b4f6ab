// Package money parses and formats monetary amounts. Parsing tolerates
// both decimal conventions found in exchange exports: comma-decimal with
// dot-thousands (1.234,56) and dot-decimal with comma-thousands (1,234.56).
package money

import (
	"fmt"
	"strings"

	gomoney "github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// ParseAmount converts a human-written amount into a decimal. Currency
// symbols, spaces and letters are stripped first. When both separators are
// present, whichever comes last is the decimal separator; a lone comma is
// treated as the decimal separator, a lone dot as the decimal point.
func ParseAmount(s string) (decimal.Decimal, error) {
	cleaned := cleanNumeric(s)
	if cleaned == "" || cleaned == "-" {
		return decimal.Zero, fmt.Errorf("no numeric content in %q", s)
	}

	lastComma := strings.LastIndex(cleaned, ",")
	lastDot := strings.LastIndex(cleaned, ".")

	switch {
	case lastComma >= 0 && lastDot >= 0:
		if lastComma > lastDot {
			// 1.234,56
			cleaned = strings.ReplaceAll(cleaned, ".", "")
			cleaned = strings.Replace(cleaned, ",", ".", 1)
		} else {
			// 1,234.56
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		}
	case lastComma >= 0:
		if strings.Count(cleaned, ",") > 1 {
			// 1,234,567 -> thousands only
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		} else {
			// 38,50 -> decimal comma
			cleaned = strings.Replace(cleaned, ",", ".", 1)
		}
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse amount %q: %w", s, err)
	}
	return d, nil
}

// cleanNumeric keeps digits, separators and a leading minus sign.
func cleanNumeric(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r == '.', r == ',':
			b.WriteRune(r)
		case r == '-' && b.Len() == 0:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatBRL renders an amount as Brazilian reais, e.g. "R$1.234,56".
func FormatBRL(d decimal.Decimal) string {
	cents := d.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	return gomoney.New(cents, gomoney.BRL).Display()
}
