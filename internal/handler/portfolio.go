package handler

import (
	"errors"
	"net/http"
	"time"

	"portfolio-tracker/internal/middleware"
	"portfolio-tracker/internal/models"
	"portfolio-tracker/internal/portfolio"
	"portfolio-tracker/internal/quotes"
	"portfolio-tracker/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PortfolioHandler serves the derived views: holdings, summary, allocation
// and the dividend report. All derivation is pure recomputation from the
// latest stored transactions; quotes are best-effort.
type PortfolioHandler struct {
	DB     *gorm.DB
	Quotes quotes.Provider
}

func NewPortfolioHandler(db *gorm.DB, provider quotes.Provider) *PortfolioHandler {
	return &PortfolioHandler{DB: db, Quotes: provider}
}

func (h *PortfolioHandler) loadTransactions(userID string) ([]models.Transaction, error) {
	var txs []models.Transaction
	err := h.DB.Preload("AssetClass").
		Where("user_id = ?", userID).
		Order("transaction_date ASC, created_at ASC").
		Find(&txs).Error
	return txs, err
}

// holdingsFor derives the user's holdings, optionally refreshing quotes.
// Quote failures degrade to cost-basis pricing, never to an error.
func (h *PortfolioHandler) holdingsFor(c *gin.Context, userID string, refresh bool) ([]portfolio.Holding, []string, error) {
	txs, err := h.loadTransactions(userID)
	if err != nil {
		return nil, nil, err
	}

	quoteMap := map[string]decimal.Decimal{}
	var quoteErrors []string

	if refresh && h.Quotes != nil && models.SettingEnabled(h.DB, models.SettingQuotesEnabled, true) {
		tickers := heldTickers(txs)
		if len(tickers) > 0 {
			res, err := h.Quotes.Fetch(c.Request.Context(), tickers)
			if err == nil {
				quoteMap = res.Prices
				quoteErrors = res.Errors
			} else {
				quoteErrors = append(quoteErrors, err.Error())
			}
		}
	}

	holdings, err := portfolio.AggregateHoldings(txs, quoteMap)
	if err != nil {
		return nil, nil, err
	}
	return holdings, quoteErrors, nil
}

func heldTickers(txs []models.Transaction) []string {
	seen := map[string]bool{}
	var tickers []string
	for i := range txs {
		if txs[i].TransactionType == models.TypeDividend {
			continue
		}
		if !seen[txs[i].Ticker] {
			seen[txs[i].Ticker] = true
			tickers = append(tickers, txs[i].Ticker)
		}
	}
	return tickers
}

func (h *PortfolioHandler) Holdings(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return
	}

	refresh := c.Query("refresh") == "true"
	holdings, quoteErrors, err := h.holdingsFor(c, user.ID, refresh)
	if err != nil {
		h.aggregationError(c, err)
		return
	}

	resp := util.Response{"holdings": holdings}
	if len(quoteErrors) > 0 {
		resp["quote_errors"] = quoteErrors
	}
	util.Success(c, resp)
}

func (h *PortfolioHandler) Summary(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return
	}

	holdings, _, err := h.holdingsFor(c, user.ID, false)
	if err != nil {
		h.aggregationError(c, err)
		return
	}

	util.Success(c, util.Response{"summary": portfolio.Summarize(holdings)})
}

func (h *PortfolioHandler) Allocation(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return
	}

	holdings, _, err := h.holdingsFor(c, user.ID, false)
	if err != nil {
		h.aggregationError(c, err)
		return
	}

	allocation := portfolio.Allocate(holdings)
	if allocation == nil {
		allocation = []portfolio.Allocation{}
	}
	util.Success(c, util.Response{"allocation": allocation})
}

// Dividends returns the 12-month dividend report for the current year.
func (h *PortfolioHandler) Dividends(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return
	}

	var txs []models.Transaction
	if err := h.DB.Where("user_id = ? AND transaction_type = ?", user.ID, models.TypeDividend).
		Find(&txs).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load dividends")
		return
	}

	util.Success(c, util.Response{"dividends": portfolio.MonthlyDividends(txs, time.Now())})
}

func (h *PortfolioHandler) aggregationError(c *gin.Context, err error) {
	if errors.Is(err, portfolio.ErrOversold) {
		// stored data sells more than it ever bought; surface it
		// instead of returning NaN positions
		util.Error(c, http.StatusUnprocessableEntity, util.CodeInvalidParam, err.Error())
		return
	}
	util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to derive holdings")
}
