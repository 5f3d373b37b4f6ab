package quotes

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"portfolio-tracker/internal/config"

	"github.com/shopspring/decimal"
)

const maxTickers = 50

var tickerRe = regexp.MustCompile(`^[A-Z0-9]{1,10}$`)

// BrapiClient fetches quotes from the brapi.dev API, one request per
// ticker with a small delay between calls to stay under the free-tier
// rate limits.
type BrapiClient struct {
	baseURL string
	token   string
	delay   time.Duration
	cli     *http.Client
}

// NewBrapiClient builds a client from the quotes config section.
func NewBrapiClient(cfg config.QuotesConfig) *BrapiClient {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://brapi.dev/api"
	}
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 8 * time.Second
	}
	delay := time.Duration(cfg.DelayMillis) * time.Millisecond
	if delay <= 0 {
		delay = 150 * time.Millisecond
	}
	return &BrapiClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   cfg.Token,
		delay:   delay,
		cli:     &http.Client{Timeout: timeout},
	}
}

type brapiResponse struct {
	Results []struct {
		Symbol             string  `json:"symbol"`
		RegularMarketPrice float64 `json:"regularMarketPrice"`
	} `json:"results"`
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

// Fetch prices the given tickers. Per-ticker failures accumulate in
// Result.Errors; only a missing token, an unauthorized token or a bad
// ticker list fail the whole call.
func (b *BrapiClient) Fetch(ctx context.Context, tickers []string) (*Result, error) {
	if b.token == "" {
		return nil, ErrTokenMissing
	}
	if len(tickers) > maxTickers {
		return nil, ErrTooManyTickers
	}

	result := &Result{
		Prices:    make(map[string]decimal.Decimal),
		UpdatedAt: time.Now(),
	}

	for i, ticker := range tickers {
		ticker = strings.ToUpper(strings.TrimSpace(ticker))
		if !tickerRe.MatchString(ticker) {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: invalid ticker", ticker))
			continue
		}

		if i > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(b.delay):
			}
		}

		price, err := b.fetchOne(ctx, ticker)
		if err != nil {
			if err == ErrUnauthorized {
				return nil, err
			}
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", ticker, err))
			continue
		}
		result.Prices[ticker] = price
	}

	return result, nil
}

func (b *BrapiClient) fetchOne(ctx context.Context, ticker string) (decimal.Decimal, error) {
	url := fmt.Sprintf("%s/quote/%s?token=%s", b.baseURL, ticker, b.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return decimal.Zero, err
	}
	req.Header.Set("User-Agent", "portfolio-tracker/1.0")

	resp, err := b.cli.Do(req)
	if err != nil {
		return decimal.Zero, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return decimal.Zero, ErrUnauthorized
	}
	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("brapi http %d", resp.StatusCode)
	}

	var raw brapiResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return decimal.Zero, err
	}
	if raw.Error {
		return decimal.Zero, fmt.Errorf("brapi: %s", raw.Message)
	}

	for _, r := range raw.Results {
		if strings.EqualFold(r.Symbol, ticker) && r.RegularMarketPrice > 0 {
			return decimal.NewFromFloat(r.RegularMarketPrice), nil
		}
	}
	return decimal.Zero, fmt.Errorf("no price in response")
}
