package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "groupledger/internal/errors"
	"groupledger/internal/logger"
	"groupledger/internal/services"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler serves spreadsheet exports.
type ReportHandler struct {
	reportService services.ReportServicer
	auditService  services.AuditServicer
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService services.ReportServicer, auditService services.AuditServicer) *ReportHandler {
	return &ReportHandler{reportService: reportService, auditService: auditService}
}

// ExportLedger streams a group's ledger for a year as an xlsx workbook
// @Summary     Export ledger
// @Description Download transactions, monthly balances and member payment stats of a year as an Excel workbook
// @Tags        reports
// @Produce     application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security    BearerAuth
// @Param       id   path  string true  "Group ID"
// @Param       year query int    false "Year (default current)"
// @Success     200 {file}   file "Workbook"
// @Failure     400 {object} ErrorResponse "Invalid year"
// @Failure     403 {object} ErrorResponse "Not a member"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /groups/{id}/export [get]
func (h *ReportHandler) ExportLedger(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	groupID, err := pathParam(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	year, err := parseYear(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	file, filename, err := h.reportService.ExportGroupLedger(c.Request.Context(), userID, groupID, year)
	if err != nil {
		respondWithError(c, err)
		return
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			logger.Get().Warnw("failed to close workbook", "error", cerr, "group_id", groupID)
		}
	}()

	buf, err := file.WriteToBuffer()
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	h.auditService.Log(userID, groupID, "EXPORT_LEDGER", "group", groupID, c.ClientIP(),
		map[string]interface{}{"year": year, "filename": filename})

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
	c.Header("Content-Transfer-Encoding", "binary")
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
