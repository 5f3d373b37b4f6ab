package util

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestValidateTicker_Valid(t *testing.T) {
	testCases := []string{"PETR4", "BTC", "A", "VALE3", "HGLG11", "0123456789"}

	for _, ticker := range testCases {
		err := ValidateTicker(ticker)
		if err != nil {
			t.Errorf("ValidateTicker(%q) error = %v, want nil", ticker, err)
		}
	}
}

func TestValidateTicker_Invalid(t *testing.T) {
	testCases := []string{
		"",
		"petr4",          // lowercase
		"PETR 4",         // space
		"VERYLONGTICKER", // over 10 chars
		"BTC/BRL",        // separator
		"AÇÃO",           // non-ASCII
	}

	for _, ticker := range testCases {
		err := ValidateTicker(ticker)
		if err == nil {
			t.Errorf("ValidateTicker(%q) error = nil, want error", ticker)
		}
	}
}

func TestValidatePositiveAmount(t *testing.T) {
	if err := ValidatePositiveAmount("quantity", decimal.RequireFromString("0.00000001")); err != nil {
		t.Errorf("ValidatePositiveAmount(small positive) error = %v, want nil", err)
	}
	if err := ValidatePositiveAmount("quantity", decimal.Zero); err == nil {
		t.Error("ValidatePositiveAmount(0) error = nil, want error")
	}
	if err := ValidatePositiveAmount("price", decimal.RequireFromString("-1")); err == nil {
		t.Error("ValidatePositiveAmount(-1) error = nil, want error")
	}
}

func TestValidateFees(t *testing.T) {
	if err := ValidateFees(decimal.Zero); err != nil {
		t.Errorf("ValidateFees(0) error = %v, want nil", err)
	}
	if err := ValidateFees(decimal.RequireFromString("5.25")); err != nil {
		t.Errorf("ValidateFees(5.25) error = %v, want nil", err)
	}
	if err := ValidateFees(decimal.RequireFromString("-0.01")); err == nil {
		t.Error("ValidateFees(-0.01) error = nil, want error")
	}
}

func TestValidateDate_Valid(t *testing.T) {
	testCases := []string{
		"2024-01-01",
		"2024-12-31",
		"2026-06-15",
	}

	for _, date := range testCases {
		if _, err := ValidateDate(date); err != nil {
			t.Errorf("ValidateDate(%q) error = %v, want nil", date, err)
		}
	}
}

func TestValidateDate_Invalid(t *testing.T) {
	testCases := []string{
		"",
		"2024/01/01",
		"01-01-2024",
		"2024-1-1",
		"not-a-date",
		"2024-13-01", // bad month
		"2024-01-32", // bad day
	}

	for _, date := range testCases {
		if _, err := ValidateDate(date); err == nil {
			t.Errorf("ValidateDate(%q) error = nil, want error", date)
		}
	}
}

func TestValidateHexColor(t *testing.T) {
	valid := []string{"#FF0000", "#6366f1", "#abcdef"}
	for _, color := range valid {
		if err := ValidateHexColor(color); err != nil {
			t.Errorf("ValidateHexColor(%q) error = %v, want nil", color, err)
		}
	}

	invalid := []string{"", "FF0000", "#FFF", "#GG0000", "#ff00001"}
	for _, color := range invalid {
		if err := ValidateHexColor(color); err == nil {
			t.Errorf("ValidateHexColor(%q) error = nil, want error", color)
		}
	}
}

func TestValidateAssetClassName(t *testing.T) {
	if err := ValidateAssetClassName("Ações"); err != nil {
		t.Errorf("ValidateAssetClassName(\"Ações\") error = %v, want nil", err)
	}
	if err := ValidateAssetClassName("  "); err == nil {
		t.Error("ValidateAssetClassName(blank) error = nil, want error")
	}

	long := make([]byte, 51)
	for i := range long {
		long[i] = 'a'
	}
	if err := ValidateAssetClassName(string(long)); err == nil {
		t.Error("ValidateAssetClassName(51 chars) error = nil, want error")
	}
}
