package util

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	tickerRe   = regexp.MustCompile(`^[A-Z0-9]{1,10}$`)
	hexColorRe = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)
)

// ValidateTicker checks the exchange symbol: 1-10 uppercase alphanumerics.
func ValidateTicker(ticker string) error {
	if ticker == "" {
		return fmt.Errorf("ticker is required")
	}
	if !tickerRe.MatchString(ticker) {
		return fmt.Errorf("ticker must be 1-10 uppercase letters or digits, got %q", ticker)
	}
	return nil
}

// ValidateAssetName checks the asset display name: non-empty, max 100 chars.
func ValidateAssetName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("asset name is required")
	}
	if len(name) > 100 {
		return fmt.Errorf("asset name too long, max 100 characters")
	}
	return nil
}

// ValidatePositiveAmount checks a strictly positive quantity or price.
func ValidatePositiveAmount(field string, v decimal.Decimal) error {
	if v.Sign() <= 0 {
		return fmt.Errorf("%s must be positive, got %s", field, v)
	}
	return nil
}

// ValidateFees checks a non-negative fee amount.
func ValidateFees(v decimal.Decimal) error {
	if v.Sign() < 0 {
		return fmt.Errorf("fees cannot be negative, got %s", v)
	}
	return nil
}

// ValidateDate checks a YYYY-MM-DD date string and returns the parsed date.
func ValidateDate(dateStr string) (time.Time, error) {
	if dateStr == "" {
		return time.Time{}, fmt.Errorf("date is required")
	}
	t, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format, want YYYY-MM-DD: %w", err)
	}
	return t, nil
}

// ValidateHexColor checks a #RRGGBB color string.
func ValidateHexColor(color string) error {
	if !hexColorRe.MatchString(color) {
		return fmt.Errorf("color must be a hex code like #FF0000, got %q", color)
	}
	return nil
}

// ValidateAssetClassName checks the class name: non-empty, max 50 chars.
func ValidateAssetClassName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("name is required")
	}
	if len(name) > 50 {
		return fmt.Errorf("name too long, max 50 characters")
	}
	return nil
}
