package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"portfolio-tracker/internal/middleware"
	"portfolio-tracker/internal/models"
	"portfolio-tracker/internal/portfolio"
	"portfolio-tracker/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransactionHandler serves the transaction CRUD endpoints. Every query is
// scoped to the authenticated user.
type TransactionHandler struct {
	DB       *gorm.DB
	PageSize int
}

func NewTransactionHandler(db *gorm.DB, pageSize int) *TransactionHandler {
	if pageSize <= 0 {
		pageSize = 20
	}
	return &TransactionHandler{DB: db, PageSize: pageSize}
}

type transactionReq struct {
	Ticker          string          `json:"ticker" binding:"required"`
	AssetName       string          `json:"asset_name" binding:"required"`
	AssetClassID    string          `json:"asset_class_id" binding:"required"`
	TransactionType string          `json:"transaction_type" binding:"required,oneof=buy sell dividend"`
	TransactionDate string          `json:"transaction_date" binding:"required"`
	Quantity        decimal.Decimal `json:"quantity"`
	PricePerUnit    decimal.Decimal `json:"price_per_unit"`
	Fees            decimal.Decimal `json:"fees"`
	TotalValue      decimal.Decimal `json:"total_value"`
}

type transactionResp struct {
	ID              string          `json:"id"`
	Ticker          string          `json:"ticker"`
	AssetName       string          `json:"asset_name"`
	AssetClassID    string          `json:"asset_class_id"`
	AssetClass      string          `json:"asset_class"`
	AssetClassColor string          `json:"asset_class_color"`
	TransactionType string          `json:"transaction_type"`
	TransactionDate string          `json:"transaction_date"`
	Quantity        decimal.Decimal `json:"quantity"`
	PricePerUnit    decimal.Decimal `json:"price_per_unit"`
	Fees            decimal.Decimal `json:"fees"`
	TotalValue      decimal.Decimal `json:"total_value"`
	CreatedAt       time.Time       `json:"created_at"`
}

func toTransactionResp(t *models.Transaction) transactionResp {
	return transactionResp{
		ID:              t.ID,
		Ticker:          t.Ticker,
		AssetName:       t.AssetName,
		AssetClassID:    t.AssetClassID,
		AssetClass:      t.AssetClass.Name,
		AssetClassColor: t.AssetClass.Color,
		TransactionType: t.TransactionType,
		TransactionDate: t.TransactionDate.Format("2006-01-02"),
		Quantity:        t.Quantity,
		PricePerUnit:    t.PricePerUnit,
		Fees:            t.Fees,
		TotalValue:      t.TotalValue,
		CreatedAt:       t.CreatedAt,
	}
}

// validate applies the shared validation contract and normalizes the
// request in place. Returns a user-facing message on failure.
func (h *TransactionHandler) validate(req *transactionReq) (time.Time, string) {
	req.Ticker = strings.ToUpper(strings.TrimSpace(req.Ticker))
	req.AssetName = strings.TrimSpace(req.AssetName)

	if err := util.ValidateTicker(req.Ticker); err != nil {
		return time.Time{}, err.Error()
	}
	if err := util.ValidateAssetName(req.AssetName); err != nil {
		return time.Time{}, err.Error()
	}

	date, err := util.ValidateDate(req.TransactionDate)
	if err != nil {
		return time.Time{}, err.Error()
	}

	var class models.AssetClass
	if err := h.DB.First(&class, "id = ?", req.AssetClassID).Error; err != nil {
		return time.Time{}, "unknown asset class"
	}
	if !class.IsActive {
		return time.Time{}, "asset class is no longer active"
	}

	switch req.TransactionType {
	case models.TypeDividend:
		if err := util.ValidatePositiveAmount("amount received", req.TotalValue); err != nil {
			return time.Time{}, err.Error()
		}
		// the amount received is the sole monetary datum
		req.Quantity = decimal.Zero
		req.PricePerUnit = decimal.Zero
		req.Fees = decimal.Zero
	default: // buy / sell
		if err := util.ValidatePositiveAmount("quantity", req.Quantity); err != nil {
			return time.Time{}, err.Error()
		}
		if err := util.ValidatePositiveAmount("price", req.PricePerUnit); err != nil {
			return time.Time{}, err.Error()
		}
		if err := util.ValidateFees(req.Fees); err != nil {
			return time.Time{}, err.Error()
		}
		// total is always recomputed, never trusted from the client
		req.TotalValue = req.Quantity.Mul(req.PricePerUnit).Add(req.Fees)
	}

	return date, ""
}

// checkFold dry-runs the chronological holdings fold over the user's
// buy/sell history with the candidate applied (and excludeID removed, for
// edits and deletes). The gate must agree with the fold exactly: a
// lifetime-net check would accept a back-dated sell that the fold then
// rejects on every read. Returns the oversold message, empty when the
// prospective history folds cleanly.
func (h *TransactionHandler) checkFold(userID string, candidate *models.Transaction, excludeID string) (string, error) {
	var txs []models.Transaction
	q := h.DB.Where("user_id = ? AND transaction_type IN ?",
		userID, []string{models.TypeBuy, models.TypeSell})
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Find(&txs).Error; err != nil {
		return "", err
	}
	if candidate != nil {
		cand := *candidate
		// same-date ties break on created_at; a fresh row will sort last
		if cand.CreatedAt.IsZero() {
			cand.CreatedAt = time.Now()
		}
		txs = append(txs, cand)
	}

	if _, err := portfolio.AggregateHoldings(txs, nil); err != nil {
		if errors.Is(err, portfolio.ErrOversold) {
			return err.Error(), nil
		}
		return "", err
	}
	return "", nil
}

func (h *TransactionHandler) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return
	}

	var req transactionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}

	date, msg := h.validate(&req)
	if msg != "" {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, msg)
		return
	}

	tx := models.Transaction{
		UserID:          user.ID,
		Ticker:          req.Ticker,
		AssetName:       req.AssetName,
		AssetClassID:    req.AssetClassID,
		TransactionType: req.TransactionType,
		TransactionDate: date,
		Quantity:        req.Quantity,
		PricePerUnit:    req.PricePerUnit,
		Fees:            req.Fees,
		TotalValue:      req.TotalValue,
	}

	if req.TransactionType != models.TypeDividend {
		msg, err := h.checkFold(user.ID, &tx, "")
		if err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to check position")
			return
		}
		if msg != "" {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, msg)
			return
		}
	}

	if err := h.DB.Create(&tx).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to save transaction")
		return
	}

	_ = h.DB.Preload("AssetClass").First(&tx, "id = ?", tx.ID).Error
	util.Success(c, util.Response{"transaction": toTransactionResp(&tx)})
}

func (h *TransactionHandler) Update(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return
	}

	id := c.Param("id")

	var req transactionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}

	date, msg := h.validate(&req)
	if msg != "" {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, msg)
		return
	}

	var tx models.Transaction
	if err := h.DB.Where("id = ? AND user_id = ?", id, user.ID).First(&tx).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "transaction not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load transaction")
		}
		return
	}

	tx.Ticker = req.Ticker
	tx.AssetName = req.AssetName
	tx.AssetClassID = req.AssetClassID
	tx.TransactionType = req.TransactionType
	tx.TransactionDate = date
	tx.Quantity = req.Quantity
	tx.PricePerUnit = req.PricePerUnit
	tx.Fees = req.Fees
	tx.TotalValue = req.TotalValue

	// an edit can oversell indirectly, e.g. shrinking a buy below a
	// later sell or turning one into a dividend, so the whole
	// prospective history is refolded
	candidate := &tx
	if req.TransactionType == models.TypeDividend {
		candidate = nil
	}
	msg, err := h.checkFold(user.ID, candidate, tx.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to check position")
		return
	}
	if msg != "" {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, msg)
		return
	}

	if err := h.DB.Save(&tx).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to save transaction")
		return
	}

	_ = h.DB.Preload("AssetClass").First(&tx, "id = ?", tx.ID).Error
	util.Success(c, util.Response{"transaction": toTransactionResp(&tx)})
}

// List returns the user's transactions with optional date range, type and
// ticker filters, newest first.
func (h *TransactionHandler) List(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return
	}

	page := intQuery(c, "page", 1)
	size := intQuery(c, "page_size", h.PageSize)
	if size > 100 {
		size = h.PageSize
	}
	offset := (page - 1) * size

	base := h.DB.Model(&models.Transaction{}).Where("user_id = ?", user.ID)

	if start := c.Query("start"); start != "" {
		t, err := util.ValidateDate(start)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid start date, want YYYY-MM-DD")
			return
		}
		base = base.Where("transaction_date >= ?", t)
	}
	if end := c.Query("end"); end != "" {
		t, err := util.ValidateDate(end)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid end date, want YYYY-MM-DD")
			return
		}
		base = base.Where("transaction_date < ?", t.AddDate(0, 0, 1))
	}
	if kind := c.Query("type"); kind == models.TypeBuy || kind == models.TypeSell || kind == models.TypeDividend {
		base = base.Where("transaction_type = ?", kind)
	}
	if tickers := c.Query("tickers"); tickers != "" {
		var list []string
		for _, t := range strings.Split(tickers, ",") {
			if t = strings.ToUpper(strings.TrimSpace(t)); t != "" {
				list = append(list, t)
			}
		}
		if len(list) > 0 {
			base = base.Where("ticker IN ?", list)
		}
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to count transactions")
		return
	}

	var txs []models.Transaction
	if err := base.Session(&gorm.Session{}).
		Preload("AssetClass").
		Order("transaction_date DESC, created_at DESC").
		Limit(size).
		Offset(offset).
		Find(&txs).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to list transactions")
		return
	}

	items := make([]transactionResp, 0, len(txs))
	for i := range txs {
		items = append(items, toTransactionResp(&txs[i]))
	}

	util.Success(c, util.Response{
		"items": items,
		"total": total,
		"page":  page,
		"size":  size,
	})
}

func (h *TransactionHandler) Delete(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return
	}

	id := c.Param("id")

	var tx models.Transaction
	if err := h.DB.Where("id = ? AND user_id = ?", id, user.ID).First(&tx).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "transaction not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load transaction")
		}
		return
	}

	// removing a buy can leave a later sell oversold
	if tx.TransactionType == models.TypeBuy {
		msg, err := h.checkFold(user.ID, nil, tx.ID)
		if err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to check position")
			return
		}
		if msg != "" {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, msg)
			return
		}
	}

	res := h.DB.Where("id = ? AND user_id = ?", id, user.ID).Delete(&models.Transaction{})
	if res.Error != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to delete transaction")
		return
	}
	if res.RowsAffected == 0 {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "transaction not found")
		return
	}

	util.Success(c, util.Response{"message": "deleted"})
}

func intQuery(c *gin.Context, name string, def int) int {
	v := c.Query(name)
	if v == "" {
		return def
	}
	n := 0
	for _, ch := range v {
		if ch < '0' || ch > '9' {
			return def
		}
		n = n*10 + int(ch-'0')
	}
	if n <= 0 {
		return def
	}
	return n
}
