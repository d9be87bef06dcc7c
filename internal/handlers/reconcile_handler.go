package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"groupledger/internal/services"
)

// ReconcileHandler exposes the payment repair job to the scheduler.
type ReconcileHandler struct {
	paymentService services.PaymentServicer
}

// NewReconcileHandler creates a new ReconcileHandler.
func NewReconcileHandler(paymentService services.PaymentServicer) *ReconcileHandler {
	return &ReconcileHandler{paymentService: paymentService}
}

// RepairGroup recreates payment records missing for a group's income
// @Summary     Repair payment records
// @Description Recreate the payment record of every income transaction that lost it. Ambiguous cases are skipped. Called by the scheduler.
// @Tags        internal
// @Produce     json
// @Security    ApiKeyAuth
// @Param       id path string true "Group ID"
// @Success     200 {object} services.RepairReport "Repair result"
// @Failure     401 {object} ErrorResponse "Invalid API key"
// @Failure     404 {object} ErrorResponse "Group not found"
// @Failure     503 {object} ErrorResponse "Jobs not configured"
// @Router      /internal/groups/{id}/reconcile [post]
func (h *ReconcileHandler) RepairGroup(c *gin.Context) {
	groupID, err := pathParam(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	report, err := h.paymentService.RepairOrphans(groupID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}
