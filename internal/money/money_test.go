package money

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseAmount_BothSeparators(t *testing.T) {
	cases := map[string]string{
		"1.234,56":     "1234.56", // comma-decimal
		"1,234.56":     "1234.56", // dot-decimal
		"1.234.567,89": "1234567.89",
		"1,234,567.89": "1234567.89",
	}
	for in, want := range cases {
		got, err := ParseAmount(in)
		if err != nil {
			t.Errorf("ParseAmount(%q) error = %v, want nil", in, err)
			continue
		}
		if got.String() != want {
			t.Errorf("ParseAmount(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestParseAmount_SingleSeparator(t *testing.T) {
	cases := map[string]string{
		"38,50":      "38.5",    // lone comma is decimal
		"38.50":      "38.5",    // lone dot is decimal
		"1,234,567":  "1234567", // repeated commas are thousands
		"550000":     "550000",
		"0.00123456": "0.00123456",
	}
	for in, want := range cases {
		got, err := ParseAmount(in)
		if err != nil {
			t.Errorf("ParseAmount(%q) error = %v, want nil", in, err)
			continue
		}
		if got.String() != want {
			t.Errorf("ParseAmount(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestParseAmount_CurrencyNoise(t *testing.T) {
	cases := map[string]string{
		"R$ 550.000,00": "550000",
		"R$ 275.000,00": "275000",
		"$1,500.25":     "1500.25",
		"-12,50":        "-12.5",
	}
	for in, want := range cases {
		got, err := ParseAmount(in)
		if err != nil {
			t.Errorf("ParseAmount(%q) error = %v, want nil", in, err)
			continue
		}
		if got.String() != want {
			t.Errorf("ParseAmount(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestParseAmount_Invalid(t *testing.T) {
	for _, in := range []string{"", "abc", "R$", "-"} {
		if _, err := ParseAmount(in); err == nil {
			t.Errorf("ParseAmount(%q) error = nil, want error", in)
		}
	}
}

func TestFormatBRL(t *testing.T) {
	got := FormatBRL(decimal.RequireFromString("1234.56"))
	if got != "R$1.234,56" {
		t.Errorf("FormatBRL(1234.56) = %q, want %q", got, "R$1.234,56")
	}
}
