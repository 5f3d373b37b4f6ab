package handler

import (
	"net/http"

	"portfolio-tracker/internal/middleware"
	"portfolio-tracker/internal/models"
	"portfolio-tracker/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AdminHandler serves user management and platform settings. All routes
// are behind the admin role gate.
type AdminHandler struct {
	DB *gorm.DB
}

func NewAdminHandler(db *gorm.DB) *AdminHandler {
	return &AdminHandler{DB: db}
}

// ListUsers returns every registered user.
func (h *AdminHandler) ListUsers(c *gin.Context) {
	var users []models.User
	if err := h.DB.Order("created_at ASC").Find(&users).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to list users")
		return
	}

	items := make([]gin.H, 0, len(users))
	for i := range users {
		u := &users[i]
		items = append(items, gin.H{
			"id":            u.ID,
			"username":      u.Username,
			"display_name":  u.DisplayName,
			"role":          u.Role,
			"is_banned":     u.IsBanned,
			"created_at":    u.CreatedAt,
			"last_login_at": u.LastLoginAt,
		})
	}

	util.Success(c, util.Response{"users": items})
}

// PromoteUser grants the admin role to a user.
func (h *AdminHandler) PromoteUser(c *gin.Context) {
	id := c.Param("id")

	var user models.User
	if err := h.DB.First(&user, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "user not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load user")
		}
		return
	}

	if err := h.DB.Model(&user).Update("role", models.RoleAdmin).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to update role")
		return
	}

	util.Success(c, util.Response{"message": "user promoted to admin"})
}

// BanUser blocks a user from logging in and from using an existing
// session. Admins cannot ban themselves.
func (h *AdminHandler) BanUser(c *gin.Context) {
	h.setBanned(c, true)
}

// UnbanUser lifts a ban.
func (h *AdminHandler) UnbanUser(c *gin.Context) {
	h.setBanned(c, false)
}

func (h *AdminHandler) setBanned(c *gin.Context, banned bool) {
	id := c.Param("id")

	if me := middleware.CurrentUser(c); banned && me != nil && me.ID == id {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "you cannot ban yourself")
		return
	}

	var user models.User
	if err := h.DB.First(&user, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "user not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load user")
		}
		return
	}

	if err := h.DB.Model(&user).Update("is_banned", banned).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to update user")
		return
	}

	msg := "user banned"
	if !banned {
		msg = "user unbanned"
	}
	util.Success(c, util.Response{"message": msg})
}

// ListSettings returns all platform settings.
func (h *AdminHandler) ListSettings(c *gin.Context) {
	var settings []models.PlatformSetting
	if err := h.DB.Order("key ASC").Find(&settings).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to list settings")
		return
	}
	util.Success(c, util.Response{"settings": settings})
}

type updateSettingReq struct {
	Value string `json:"value" binding:"required"`
}

// UpdateSetting changes one setting's value by key.
func (h *AdminHandler) UpdateSetting(c *gin.Context) {
	key := c.Param("key")

	var req updateSettingReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}

	var setting models.PlatformSetting
	if err := h.DB.Where("key = ?", key).First(&setting).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "setting not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load setting")
		}
		return
	}

	if err := h.DB.Model(&setting).Update("value", req.Value).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to update setting")
		return
	}

	util.Success(c, util.Response{"setting": setting})
}
