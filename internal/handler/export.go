package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"portfolio-tracker/internal/middleware"
	"portfolio-tracker/internal/models"
	"portfolio-tracker/internal/money"
	"portfolio-tracker/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ExportHandler writes the user's transaction history as CSV or XLSX.
type ExportHandler struct {
	DB *gorm.DB
}

func NewExportHandler(db *gorm.DB) *ExportHandler {
	return &ExportHandler{DB: db}
}

var exportHeaders = []string{"Data", "Tipo", "Ticker", "Ativo", "Classe", "Quantidade", "Preço", "Taxas", "Total"}

func (h *ExportHandler) load(userID string) ([]models.Transaction, error) {
	var txs []models.Transaction
	err := h.DB.Preload("AssetClass").
		Where("user_id = ?", userID).
		Order("transaction_date DESC").
		Find(&txs).Error
	return txs, err
}

func exportRow(t *models.Transaction) []string {
	typeText := map[string]string{
		models.TypeBuy:      "Compra",
		models.TypeSell:     "Venda",
		models.TypeDividend: "Dividendo",
	}[t.TransactionType]

	return []string{
		t.TransactionDate.Format("2006-01-02"),
		typeText,
		t.Ticker,
		t.AssetName,
		t.AssetClass.Name,
		t.Quantity.String(),
		money.FormatBRL(t.PricePerUnit),
		money.FormatBRL(t.Fees),
		money.FormatBRL(t.TotalValue),
	}
}

// ExportCSV streams the history as CSV.
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return
	}

	txs, err := h.load(user.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load transactions")
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"transactions_%s.csv\"",
		time.Now().Format("20060102")))

	// UTF-8 BOM so Excel renders accented characters
	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write(exportHeaders)
	for i := range txs {
		writer.Write(exportRow(&txs[i]))
	}
}

// ExportXLSX streams the history as an Excel workbook.
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return
	}

	txs, err := h.load(user.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load transactions")
		return
	}

	f := excelize.NewFile()
	sheetName := "Transações"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to create sheet")
		return
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for i, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	for rowIdx := range txs {
		for colIdx, value := range exportRow(&txs[rowIdx]) {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	f.SetColWidth(sheetName, "A", "A", 12)
	f.SetColWidth(sheetName, "B", "C", 10)
	f.SetColWidth(sheetName, "D", "E", 20)
	f.SetColWidth(sheetName, "F", "I", 14)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"transactions_%s.xlsx\"",
		time.Now().Format("20060102")))

	if err := f.Write(c.Writer); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to write workbook")
	}
}
