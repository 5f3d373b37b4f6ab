package handler

import (
	"net/http"

	"portfolio-tracker/internal/models"
	"portfolio-tracker/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AuditLogHandler exposes the audit trail to administrators.
type AuditLogHandler struct {
	DB       *gorm.DB
	PageSize int
}

func NewAuditLogHandler(db *gorm.DB, pageSize int) *AuditLogHandler {
	if pageSize <= 0 {
		pageSize = 50
	}
	return &AuditLogHandler{DB: db, PageSize: pageSize}
}

// List returns audit entries newest first, optionally filtered by user.
func (h *AuditLogHandler) List(c *gin.Context) {
	page := intQuery(c, "page", 1)
	if page < 1 {
		page = 1
	}
	size := intQuery(c, "page_size", h.PageSize)
	if size < 1 || size > 200 {
		size = h.PageSize
	}

	query := h.DB.Model(&models.AuditLog{})
	if userID := c.Query("user_id"); userID != "" {
		query = query.Where("user_id = ?", userID)
	}
	if method := c.Query("method"); method != "" {
		query = query.Where("method = ?", method)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to count logs")
		return
	}

	var logs []models.AuditLog
	if err := query.Order("created_at DESC").
		Offset((page - 1) * size).Limit(size).
		Find(&logs).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to list logs")
		return
	}

	items := make([]gin.H, 0, len(logs))
	for i := range logs {
		l := &logs[i]
		items = append(items, gin.H{
			"id":         l.ID,
			"user_id":    l.UserID,
			"method":     l.Method,
			"path":       l.Path,
			"action":     l.Action,
			"ip":         l.IP,
			"user_agent": l.UserAgent,
			"created_at": l.CreatedAt,
		})
	}

	util.Success(c, util.Response{
		"logs":  items,
		"total": total,
		"page":  page,
	})
}
