// Package quotes fetches latest prices for ticker symbols. Results are
// best-effort: a partial map plus per-ticker error strings, so callers
// must never fail merely because some tickers lack a quote.
package quotes

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrTokenMissing means the API token is not configured. Operator-facing,
	// not recoverable by the user.
	ErrTokenMissing = errors.New("quote api token not configured")
	// ErrUnauthorized means the upstream rejected the configured token.
	ErrUnauthorized = errors.New("quote api rejected the token")
	// ErrTooManyTickers guards the provider contract of at most 50 symbols.
	ErrTooManyTickers = errors.New("too many tickers, max 50")
)

// Result carries a possibly-partial quote map. Errors lists the tickers
// that could not be priced; it is not a failure of the whole operation.
type Result struct {
	Prices    map[string]decimal.Decimal `json:"prices"`
	Errors    []string                   `json:"errors,omitempty"`
	UpdatedAt time.Time                  `json:"updated_at"`
}

// Provider is the capability interface the rest of the system consumes,
// so tests can drive the aggregation with a deterministic fake.
type Provider interface {
	Fetch(ctx context.Context, tickers []string) (*Result, error)
}
