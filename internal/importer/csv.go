package importer

import (
	"bytes"
	"encoding/csv"
	"regexp"
	"strings"

	"portfolio-tracker/internal/money"

	"github.com/xuri/excelize/v2"
)

// Column-name synonyms seen across exchange exports.
var csvColumns = map[string][]string{
	"date":   {"Date(UTC)", "Date", "Time", "UTC_Time", "Create Time"},
	"type":   {"Side", "Type", "Operation", "Order Type"},
	"pair":   {"Pair", "Market", "Symbol", "Trading Pair"},
	"amount": {"Amount", "Quantity", "Executed", "Filled", "Order Amount"},
	"price":  {"Price", "Avg. Price", "Average Price", "Order Price"},
	"total":  {"Total", "Quote Qty", "Total Amount", "Executed Total"},
	"asset":  {"Coin", "Asset", "Currency"},
}

// "BTCBRL" or "BTC/USDT": base asset followed by a recognized quote currency.
var pairRe = regexp.MustCompile(`(?i)^([A-Z0-9]{2,10})(?:/|_)?(?:BRL|USDT|USD|BUSD)`)

// ParseCSV parses a delimited export: header synonyms map columns onto the
// canonical field set, then each row with at least 3 fields becomes a
// candidate if it clears the acceptance gate.
func ParseCSV(input string) []ParsedTransaction {
	reader := csv.NewReader(strings.NewReader(strings.TrimSpace(input)))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil || len(records) < 2 {
		return nil
	}
	return parseRows(records[0], records[1:])
}

// ParseXLSX flattens the first sheet of a workbook into rows and feeds
// them through the CSV pipeline. Returns nil on any read error: the
// importer never raises for malformed input.
func ParseXLSX(data []byte) []ParsedTransaction {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil || len(rows) < 2 {
		return nil
	}
	return parseRows(rows[0], rows[1:])
}

func parseRows(header []string, rows [][]string) []ParsedTransaction {
	cleaned := make([]string, len(header))
	for i, h := range header {
		cleaned[i] = strings.TrimSpace(strings.ReplaceAll(h, `"`, ""))
	}

	findColumn := func(key string) int {
		for _, name := range csvColumns[key] {
			for i, h := range cleaned {
				if strings.EqualFold(h, name) {
					return i
				}
			}
		}
		return -1
	}

	dateIdx := findColumn("date")
	typeIdx := findColumn("type")
	pairIdx := findColumn("pair")
	amountIdx := findColumn("amount")
	priceIdx := findColumn("price")
	totalIdx := findColumn("total")
	assetIdx := findColumn("asset")

	cell := func(row []string, idx int) string {
		if idx < 0 || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(strings.ReplaceAll(row[idx], `"`, ""))
	}

	var results []ParsedTransaction
	for _, row := range rows {
		if len(row) < 3 {
			continue
		}

		var result ParsedTransaction

		// ticker: direct asset column first, else strip the quote
		// currency suffix off a trading pair
		if v := cell(row, assetIdx); v != "" {
			result.Ticker = strings.ToUpper(v)
			result.AssetName = result.Ticker
		} else if v := cell(row, pairIdx); v != "" {
			if m := pairRe.FindStringSubmatch(v); m != nil {
				result.Ticker = strings.ToUpper(m[1])
				result.AssetName = result.Ticker
			}
		}

		result.TransactionType = "buy"
		if v := strings.ToLower(cell(row, typeIdx)); strings.Contains(v, "sell") || strings.Contains(v, "venda") {
			result.TransactionType = "sell"
		}

		if v := cell(row, amountIdx); v != "" {
			if q, err := money.ParseAmount(v); err == nil {
				result.Quantity = q
			}
		}
		if v := cell(row, priceIdx); v != "" {
			if p, err := money.ParseAmount(v); err == nil {
				result.PricePerUnit = p
			}
		}
		if v := cell(row, totalIdx); v != "" {
			if t, err := money.ParseAmount(v); err == nil {
				result.TotalValue = t
			}
		}

		result.deriveMissing()

		if v := cell(row, dateIdx); v != "" {
			if t, ok := parseDate(v); ok {
				result.Date = &t
			}
		}

		if result.Accepted() {
			results = append(results, result)
		}
	}
	return results
}
