package importer

import (
	"regexp"
	"strings"

	"portfolio-tracker/internal/money"
)

// Extraction patterns for confirmation e-mails, Portuguese and English.
// The order below is a contract: the symbol allow-list runs before the
// purchase-phrase fallback, and the combined date-time pattern before the
// looser date-only one.
var (
	// "Venda de 0.5 ETH" / "sell 10 AAPL"
	sellRe = regexp.MustCompile(`(?i)\b(?:venda|sell)\b`)

	// "Compra de 0.00123456 BTC" or "Venda de 0.5 ETH"
	orderRe = regexp.MustCompile(`(?i)(?:compra|venda|buy|sell)\s+(?:de\s+)?(\d+(?:[.,]\d+)?)\s*([A-Za-z0-9]{2,10})`)

	// "Preço: R$ 150.000,00" or "Price: 150000.00"
	priceRe = regexp.MustCompile(`(?i)(?:pre[çc]o|price)[:\s]*(?:R\$?\s*)?(\d+(?:[.,]\d+)*)`)

	// "Total: R$ 184,50" or "Amount: 184.50"
	totalRe = regexp.MustCompile(`(?i)(?:total|amount|valor)[:\s]*(?:R\$?\s*)?(\d+(?:[.,]\d+)*)`)

	// "Quantidade: 0.5"
	quantityRe = regexp.MustCompile(`(?i)(?:quantidade|qty|amount)[:\s]*(\d+(?:[.,]\d+)?)`)

	// "Data: 05/01/2026" or "Date: 2026-01-05" or "05 Jan 2026"
	dateFieldRe = regexp.MustCompile(`(?i)(?:data|date|em)[:\s]*(\d{1,2}[/\-]\d{1,2}[/\-]\d{2,4}|\d{4}[/\-]\d{1,2}[/\-]\d{1,2}|\d{1,2}\s+\w{3}\s+\d{4})`)

	// "2026-01-05 10:30" embedded anywhere
	dateTimeRe = regexp.MustCompile(`(\d{4}[/\-]\d{1,2}[/\-]\d{1,2})\s+\d{1,2}:\d{2}`)

	// closed allow-list of common crypto symbols
	cryptoSymbolRe = regexp.MustCompile(`(?i)\b(BTC|ETH|BNB|SOL|XRP|ADA|DOGE|DOT|AVAX|MATIC|LTC|LINK|UNI|ATOM|FTM|NEAR|ALGO|VET|ICP|FIL|SAND|MANA|AXS|GALA|ENJ|CHZ|SHIB|APE|OP|ARB|SUI|SEI|TIA|JUP|PYTH|WIF|PEPE|BONK|FLOKI|RENDER|INJ|TRX|XLM|ETC|BCH|LEO|TON|MKR|AAVE|CRV|GRT|SNX|COMP|YFI|SUSHI|CAKE|LUNC|USTC)\b`)
)

// ParseText runs the ordered extractor pipeline over pasted free text.
// Returns nil when the acceptance gate fails (no ticker, or neither
// quantity nor total).
func ParseText(text string) *ParsedTransaction {
	result := &ParsedTransaction{TransactionType: "buy"}
	if sellRe.MatchString(text) {
		result.TransactionType = "sell"
	}

	// symbol allow-list has priority over the purchase-phrase match
	if m := cryptoSymbolRe.FindStringSubmatch(text); m != nil {
		result.Ticker = strings.ToUpper(m[1])
		result.AssetName = result.Ticker
	}

	if m := orderRe.FindStringSubmatch(text); m != nil {
		if q, err := money.ParseAmount(m[1]); err == nil {
			result.Quantity = q
		}
		if result.Ticker == "" {
			result.Ticker = strings.ToUpper(m[2])
			result.AssetName = result.Ticker
		}
	}

	if result.Quantity.Sign() == 0 {
		if m := quantityRe.FindStringSubmatch(text); m != nil {
			if q, err := money.ParseAmount(m[1]); err == nil {
				result.Quantity = q
			}
		}
	}

	if m := priceRe.FindStringSubmatch(text); m != nil {
		if p, err := money.ParseAmount(m[1]); err == nil {
			result.PricePerUnit = p
		}
	}

	if m := totalRe.FindStringSubmatch(text); m != nil {
		if v, err := money.ParseAmount(m[1]); err == nil {
			result.TotalValue = v
		}
	}

	result.deriveMissing()

	// date-time first, the looser date field second
	if m := dateTimeRe.FindStringSubmatch(text); m != nil {
		if t, ok := parseDate(m[1]); ok {
			result.Date = &t
		}
	}
	if result.Date == nil {
		if m := dateFieldRe.FindStringSubmatch(text); m != nil {
			if t, ok := parseDate(m[1]); ok {
				result.Date = &t
			}
		}
	}

	if !result.Accepted() {
		return nil
	}
	return result
}
