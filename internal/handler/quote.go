package handler

import (
	"errors"
	"net/http"
	"strings"

	"portfolio-tracker/internal/middleware"
	"portfolio-tracker/internal/models"
	"portfolio-tracker/internal/quotes"
	"portfolio-tracker/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// QuoteHandler refreshes latest prices through the configured provider.
type QuoteHandler struct {
	DB     *gorm.DB
	Quotes quotes.Provider
}

func NewQuoteHandler(db *gorm.DB, provider quotes.Provider) *QuoteHandler {
	return &QuoteHandler{DB: db, Quotes: provider}
}

type refreshReq struct {
	Tickers []string `json:"tickers" binding:"required"`
}

// Refresh fetches quotes for the given tickers. Partial failure is a
// success with an errors list; only token problems fail the whole call.
func (h *QuoteHandler) Refresh(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return
	}

	if !models.SettingEnabled(h.DB, models.SettingQuotesEnabled, true) {
		util.Error(c, http.StatusForbidden, util.CodeForbidden, "quote updates are disabled by the administrator")
		return
	}

	var req refreshReq
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Tickers) == 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "tickers list is required")
		return
	}

	for i := range req.Tickers {
		req.Tickers[i] = strings.ToUpper(strings.TrimSpace(req.Tickers[i]))
	}

	res, err := h.Quotes.Fetch(c.Request.Context(), req.Tickers)
	if err != nil {
		switch {
		case errors.Is(err, quotes.ErrTokenMissing):
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "quote API token not configured, contact the administrator")
		case errors.Is(err, quotes.ErrUnauthorized):
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "quote API rejected the token, contact the administrator")
		case errors.Is(err, quotes.ErrTooManyTickers):
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		default:
			util.Error(c, http.StatusBadGateway, util.CodeServerErr, "failed to reach the quote service")
		}
		return
	}

	resp := util.Response{
		"prices":     res.Prices,
		"count":      len(res.Prices),
		"updated_at": res.UpdatedAt,
	}
	if len(res.Errors) > 0 {
		resp["errors"] = res.Errors
	}
	util.Success(c, resp)
}
