package handler

import (
	"context"
	"net/http"
	"testing"
	"time"

	"portfolio-tracker/internal/models"
	"portfolio-tracker/internal/quotes"

	"github.com/shopspring/decimal"
)

type stubProvider struct {
	result *quotes.Result
	err    error
	calls  int
}

func (s *stubProvider) Fetch(ctx context.Context, tickers []string) (*quotes.Result, error) {
	s.calls++
	return s.result, s.err
}

func TestQuoteRefresh_DisabledByAdmin(t *testing.T) {
	db := newTestDB(t)
	user, _ := seedUserAndClass(t, db)
	if err := db.Create(&models.PlatformSetting{Key: models.SettingQuotesEnabled, Value: "false"}).Error; err != nil {
		t.Fatalf("seed setting: %v", err)
	}

	stub := &stubProvider{}
	h := NewQuoteHandler(db, stub)

	c, w := testRequest(t, user, http.MethodPost, `{"tickers":["PETR4"]}`, "")
	h.Refresh(c)

	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusForbidden)
	}
	if stub.calls != 0 {
		t.Errorf("provider called %d times, want 0 when quotes are disabled", stub.calls)
	}
}

func TestQuoteRefresh_EnabledByDefault(t *testing.T) {
	db := newTestDB(t)
	user, _ := seedUserAndClass(t, db)

	stub := &stubProvider{result: &quotes.Result{
		Prices:    map[string]decimal.Decimal{"PETR4": decimal.NewFromFloat(38.52)},
		UpdatedAt: time.Now(),
	}}
	h := NewQuoteHandler(db, stub)

	// no quotes_enabled row seeded: the missing setting defaults to on
	c, w := testRequest(t, user, http.MethodPost, `{"tickers":["PETR4"]}`, "")
	h.Refresh(c)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", w.Code, http.StatusOK, w.Body.String())
	}
	if stub.calls != 1 {
		t.Errorf("provider called %d times, want 1", stub.calls)
	}
}
