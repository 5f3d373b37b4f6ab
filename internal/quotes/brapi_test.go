package quotes

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"portfolio-tracker/internal/config"

	"github.com/shopspring/decimal"
)

func testClient(url string) *BrapiClient {
	return NewBrapiClient(config.QuotesConfig{
		BaseURL:     url,
		Token:       "test-token",
		DelayMillis: 1,
	})
}

func TestBrapiClient_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ticker := strings.TrimPrefix(r.URL.Path, "/quote/")
		if r.URL.Query().Get("token") != "test-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		switch ticker {
		case "PETR4":
			fmt.Fprint(w, `{"results":[{"symbol":"PETR4","regularMarketPrice":38.52}]}`)
		default:
			fmt.Fprint(w, `{"error":true,"message":"ticker not found"}`)
		}
	}))
	defer srv.Close()

	cli := testClient(srv.URL)
	res, err := cli.Fetch(context.Background(), []string{"PETR4", "NOPE99"})
	if err != nil {
		t.Fatalf("Fetch() error = %v, want nil", err)
	}

	want := decimal.NewFromFloat(38.52)
	if got, ok := res.Prices["PETR4"]; !ok || !got.Equal(want) {
		t.Errorf("PETR4 price = %s, want %s", got, want)
	}
	if len(res.Errors) != 1 || !strings.HasPrefix(res.Errors[0], "NOPE99:") {
		t.Errorf("errors = %v, want one NOPE99 entry", res.Errors)
	}
}

func TestBrapiClient_TokenMissing(t *testing.T) {
	cli := NewBrapiClient(config.QuotesConfig{})
	if _, err := cli.Fetch(context.Background(), []string{"PETR4"}); !errors.Is(err, ErrTokenMissing) {
		t.Fatalf("error = %v, want ErrTokenMissing", err)
	}
}

func TestBrapiClient_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	cli := testClient(srv.URL)
	if _, err := cli.Fetch(context.Background(), []string{"PETR4"}); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("error = %v, want ErrUnauthorized", err)
	}
}

func TestBrapiClient_TooManyTickers(t *testing.T) {
	cli := testClient("http://unused")
	tickers := make([]string, 51)
	for i := range tickers {
		tickers[i] = fmt.Sprintf("T%d", i)
	}
	if _, err := cli.Fetch(context.Background(), tickers); !errors.Is(err, ErrTooManyTickers) {
		t.Fatalf("error = %v, want ErrTooManyTickers", err)
	}
}

func TestBrapiClient_InvalidTickerSkipped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"results":[{"symbol":"PETR4","regularMarketPrice":38.52}]}`)
	}))
	defer srv.Close()

	cli := testClient(srv.URL)
	res, err := cli.Fetch(context.Background(), []string{"petr4!", "PETR4"})
	if err != nil {
		t.Fatalf("Fetch() error = %v, want nil", err)
	}
	if len(res.Errors) != 1 {
		t.Errorf("errors = %v, want the invalid ticker flagged", res.Errors)
	}
	if _, ok := res.Prices["PETR4"]; !ok {
		t.Error("valid ticker must still be priced")
	}
}
