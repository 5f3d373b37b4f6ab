package handler

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"portfolio-tracker/internal/models"
	"portfolio-tracker/internal/portfolio"

	"github.com/shopspring/decimal"
)

func seedBuy(t *testing.T, h *TransactionHandler, userID, classID, day string, qty, price int64) *models.Transaction {
	t.Helper()

	date, err := time.Parse("2006-01-02", day)
	if err != nil {
		t.Fatalf("parse %s: %v", day, err)
	}
	q := decimal.NewFromInt(qty)
	p := decimal.NewFromInt(price)
	tx := &models.Transaction{
		UserID:          userID,
		Ticker:          "PETR4",
		AssetName:       "Petrobras",
		AssetClassID:    classID,
		TransactionType: models.TypeBuy,
		TransactionDate: date,
		Quantity:        q,
		PricePerUnit:    p,
		Fees:            decimal.Zero,
		TotalValue:      q.Mul(p),
	}
	if err := h.DB.Create(tx).Error; err != nil {
		t.Fatalf("seed buy: %v", err)
	}
	return tx
}

func sellBody(classID, day string, qty int64) string {
	return fmt.Sprintf(`{"ticker":"PETR4","asset_name":"Petrobras","asset_class_id":%q,"transaction_type":"sell","transaction_date":%q,"quantity":"%d","price_per_unit":"40","fees":"0"}`,
		classID, day, qty)
}

// A sell dated before any buy must be rejected even though the lifetime
// net quantity would cover it: the holdings fold runs chronologically, so
// accepting the back-dated sell would make every portfolio read fail.
func TestTransactionCreate_BackdatedSellRejected(t *testing.T) {
	db := newTestDB(t)
	user, class := seedUserAndClass(t, db)
	h := NewTransactionHandler(db, 20)

	seedBuy(t, h, user.ID, class.ID, "2026-01-10", 10, 30)

	c, w := testRequest(t, user, http.MethodPost, sellBody(class.ID, "2026-01-01", 5), "")
	h.Create(c)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}

	// the rejected sell must not have been persisted, and the stored
	// history must still fold cleanly
	var txs []models.Transaction
	if err := db.Find(&txs).Error; err != nil {
		t.Fatalf("load transactions: %v", err)
	}
	if len(txs) != 1 {
		t.Fatalf("got %d stored transactions, want the seeded buy only", len(txs))
	}
	if _, err := portfolio.AggregateHoldings(txs, nil); err != nil {
		t.Errorf("fold over stored history errors: %v", err)
	}
}

func TestTransactionCreate_SellAfterBuyAccepted(t *testing.T) {
	db := newTestDB(t)
	user, class := seedUserAndClass(t, db)
	h := NewTransactionHandler(db, 20)

	seedBuy(t, h, user.ID, class.ID, "2026-01-10", 10, 30)

	c, w := testRequest(t, user, http.MethodPost, sellBody(class.ID, "2026-01-20", 5), "")
	h.Create(c)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", w.Code, http.StatusOK, w.Body.String())
	}

	var count int64
	db.Model(&models.Transaction{}).Count(&count)
	if count != 2 {
		t.Errorf("stored transactions = %d, want 2", count)
	}
}

func TestTransactionCreate_SellMoreThanHeldRejected(t *testing.T) {
	db := newTestDB(t)
	user, class := seedUserAndClass(t, db)
	h := NewTransactionHandler(db, 20)

	seedBuy(t, h, user.ID, class.ID, "2026-01-10", 10, 30)

	c, w := testRequest(t, user, http.MethodPost, sellBody(class.ID, "2026-01-20", 11), "")
	h.Create(c)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

// Deleting a buy that a later sell depends on would leave the stored
// history oversold, so it is refused.
func TestTransactionDelete_BuyWithDependentSellRejected(t *testing.T) {
	db := newTestDB(t)
	user, class := seedUserAndClass(t, db)
	h := NewTransactionHandler(db, 20)

	buy := seedBuy(t, h, user.ID, class.ID, "2026-01-10", 10, 30)

	c, w := testRequest(t, user, http.MethodPost, sellBody(class.ID, "2026-01-20", 5), "")
	h.Create(c)
	if w.Code != http.StatusOK {
		t.Fatalf("seed sell status = %d: %s", w.Code, w.Body.String())
	}

	c, w = testRequest(t, user, http.MethodDelete, "", buy.ID)
	h.Delete(c)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}

	var count int64
	db.Model(&models.Transaction{}).Count(&count)
	if count != 2 {
		t.Errorf("stored transactions = %d, the buy must not be deleted", count)
	}
}
