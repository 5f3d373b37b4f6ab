package handler

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"portfolio-tracker/internal/importer"
	"portfolio-tracker/internal/middleware"
	"portfolio-tracker/internal/util"

	"github.com/gin-gonic/gin"
)

const maxImportSize = 2 << 20 // 2 MiB

// ImportHandler previews a transaction extracted from pasted text or an
// uploaded export. Nothing is persisted here: the confirmed candidate goes
// through the normal transaction create endpoint.
type ImportHandler struct{}

func NewImportHandler() *ImportHandler {
	return &ImportHandler{}
}

type importTextReq struct {
	Text string `json:"text" binding:"required"`
}

// Parse accepts either a JSON body with pasted text or a multipart upload
// under the "file" field. A candidate that fails the acceptance gate comes
// back as parsed: null with a hint, never as a 5xx.
func (h *ImportHandler) Parse(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return
	}

	var (
		parsed  *importer.ParsedTransaction
		skipped int
	)

	if file, header, err := c.Request.FormFile("file"); err == nil {
		defer file.Close()
		data, err := io.ReadAll(io.LimitReader(file, maxImportSize))
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "failed to read uploaded file")
			return
		}
		if strings.HasSuffix(strings.ToLower(header.Filename), ".xlsx") {
			results := importer.ParseXLSX(data)
			if len(results) > 0 {
				first := results[0]
				parsed = &first
				skipped = len(results) - 1
			}
		} else {
			parsed, skipped = importer.Parse(string(data))
		}
	} else {
		var req importTextReq
		if err := c.ShouldBindJSON(&req); err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "paste the e-mail text or upload a CSV/XLSX file")
			return
		}
		parsed, skipped = importer.Parse(req.Text)
	}

	if !parsed.Accepted() {
		util.Success(c, util.Response{
			"parsed":  nil,
			"message": "could not extract a transaction; make sure the text contains the asset, quantity and price",
		})
		return
	}

	resp := util.Response{"parsed": parsed}
	if skipped > 0 {
		resp["skipped_rows"] = skipped
		resp["message"] = fmt.Sprintf("found %d transactions, importing the first", skipped+1)
	}
	util.Success(c, resp)
}
