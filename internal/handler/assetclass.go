package handler

import (
	"net/http"
	"strings"

	"portfolio-tracker/internal/models"
	"portfolio-tracker/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AssetClassHandler serves the class picker for users and full CRUD for
// admins. Classes are global, not per-user.
type AssetClassHandler struct {
	DB *gorm.DB
}

func NewAssetClassHandler(db *gorm.DB) *AssetClassHandler {
	return &AssetClassHandler{DB: db}
}

type assetClassReq struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Color       string `json:"color"`
	IsActive    *bool  `json:"is_active"`
}

// ListActive returns the classes selectable for new transactions.
func (h *AssetClassHandler) ListActive(c *gin.Context) {
	var classes []models.AssetClass
	if err := h.DB.Where("is_active = ?", true).Order("name ASC").Find(&classes).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to list asset classes")
		return
	}
	util.Success(c, util.Response{"asset_classes": classes})
}

// ListAll returns every class, active or not. Admin only.
func (h *AssetClassHandler) ListAll(c *gin.Context) {
	var classes []models.AssetClass
	if err := h.DB.Order("name ASC").Find(&classes).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to list asset classes")
		return
	}
	util.Success(c, util.Response{"asset_classes": classes})
}

func (h *AssetClassHandler) validate(req *assetClassReq) string {
	req.Name = strings.TrimSpace(req.Name)
	req.Description = strings.TrimSpace(req.Description)

	if err := util.ValidateAssetClassName(req.Name); err != nil {
		return err.Error()
	}
	if len(req.Description) > 200 {
		return "description too long, max 200 characters"
	}
	if req.Color == "" {
		req.Color = "#6366f1"
	}
	if err := util.ValidateHexColor(req.Color); err != nil {
		return err.Error()
	}
	return ""
}

func (h *AssetClassHandler) Create(c *gin.Context) {
	var req assetClassReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}
	if msg := h.validate(&req); msg != "" {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, msg)
		return
	}

	class := models.AssetClass{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
		IsActive:    true,
	}
	if req.IsActive != nil {
		class.IsActive = *req.IsActive
	}

	if err := h.DB.Create(&class).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to create asset class")
		return
	}

	util.Success(c, util.Response{"asset_class": class})
}

func (h *AssetClassHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var req assetClassReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}
	if msg := h.validate(&req); msg != "" {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, msg)
		return
	}

	var class models.AssetClass
	if err := h.DB.First(&class, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "asset class not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load asset class")
		}
		return
	}

	class.Name = req.Name
	class.Description = req.Description
	class.Color = req.Color
	if req.IsActive != nil {
		class.IsActive = *req.IsActive
	}

	if err := h.DB.Save(&class).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to save asset class")
		return
	}

	util.Success(c, util.Response{"asset_class": class})
}

// Delete removes a class unless any transaction still references it.
// Deactivation is the supported way to retire a class in use.
func (h *AssetClassHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	var referenced int64
	if err := h.DB.Model(&models.Transaction{}).
		Where("asset_class_id = ?", id).
		Count(&referenced).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to check references")
		return
	}
	if referenced > 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam,
			"asset class is referenced by existing transactions; deactivate it instead")
		return
	}

	res := h.DB.Delete(&models.AssetClass{}, "id = ?", id)
	if res.Error != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to delete asset class")
		return
	}
	if res.RowsAffected == 0 {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "asset class not found")
		return
	}

	util.Success(c, util.Response{"message": "deleted"})
}
