package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "groupledger/internal/errors"
	"groupledger/internal/models"
	"groupledger/internal/services"
)

// PaymentHandler handles member payment records and their derived views.
type PaymentHandler struct {
	paymentService services.PaymentServicer
	auditService   services.AuditServicer
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(paymentService services.PaymentServicer, auditService services.AuditServicer) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService, auditService: auditService}
}

// CreatePaymentRequest represents a manually recorded payment. Coverage
// months, when given, mark the payment as a prepayment for that range. An
// empty member id records the payment for the caller.
type CreatePaymentRequest struct {
	MemberID      string               `json:"member_id" binding:"max=64"`
	Amount        int64                `json:"amount" binding:"required,gt=0"`
	PaymentDate   string               `json:"payment_date" binding:"required,iso_date"`
	BillingMonth  string               `json:"billing_month" binding:"omitempty,billing_month"`
	Description   string               `json:"description" binding:"max=500"`
	Status        models.PaymentStatus `json:"status" binding:"omitempty,payment_status"`
	CoverageStart string               `json:"coverage_start" binding:"omitempty,month_code"`
	CoverageEnd   string               `json:"coverage_end" binding:"omitempty,month_code"`
}

// ListMemberPayments returns a member's payment history
// @Summary     List member payments
// @Description Get a member's payment records, newest first
// @Tags        payments
// @Produce     json
// @Security    BearerAuth
// @Param       id       path string true "Group ID"
// @Param       memberId path string true "Member user ID"
// @Success     200 {array}  models.MemberPayment "Payments"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Not a member"
// @Failure     404 {object} ErrorResponse "Member not found"
// @Router      /groups/{id}/members/{memberId}/payments [get]
func (h *PaymentHandler) ListMemberPayments(c *gin.Context) {
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
	memberID, err := pathParam(c, "memberId")
	if err != nil {
		respondWithError(c, err)
		return
	}

	payments, err := h.paymentService.ListMemberPayments(userID, groupID, memberID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"payments": payments})
}

// GetPaymentStatus resolves whether a member has paid for a month
// @Summary     Get payment status
// @Description Resolve a member's status for a billing month, counting prepayments that cover it
// @Tags        payments
// @Produce     json
// @Security    BearerAuth
// @Param       id       path  string true  "Group ID"
// @Param       memberId path  string true  "Member user ID"
// @Param       month    query string false "Billing month (YYYY-MM, default current)"
// @Success     200 {object} reconcile.PaymentStatus "Status"
// @Failure     400 {object} ErrorResponse "Invalid month"
// @Failure     403 {object} ErrorResponse "Not a member"
// @Router      /groups/{id}/members/{memberId}/status [get]
func (h *PaymentHandler) GetPaymentStatus(c *gin.Context) {
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
	memberID, err := pathParam(c, "memberId")
	if err != nil {
		respondWithError(c, err)
		return
	}

	status, err := h.paymentService.GetPaymentStatus(userID, groupID, memberID, c.Query("month"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": status})
}

// GetMemberStats summarises a member's payment record
// @Summary     Get member stats
// @Description Total paid, payment count, on-time rate and tenure of a member
// @Tags        payments
// @Produce     json
// @Security    BearerAuth
// @Param       id       path string true "Group ID"
// @Param       memberId path string true "Member user ID"
// @Success     200 {object} reconcile.MemberStats "Stats"
// @Failure     403 {object} ErrorResponse "Not a member"
// @Failure     404 {object} ErrorResponse "Member not found"
// @Router      /groups/{id}/members/{memberId}/stats [get]
func (h *PaymentHandler) GetMemberStats(c *gin.Context) {
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
	memberID, err := pathParam(c, "memberId")
	if err != nil {
		respondWithError(c, err)
		return
	}

	stats, err := h.paymentService.GetMemberStats(userID, groupID, memberID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

// CreatePayment records a payment directly
// @Summary     Record payment
// @Description Record a payment for a member. Recording for someone else requires admin.
// @Tags        payments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string               true "Group ID"
// @Param       request body CreatePaymentRequest true "Payment details"
// @Success     201 {object} models.MemberPayment "Payment recorded"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     403 {object} ErrorResponse "Not permitted"
// @Failure     404 {object} ErrorResponse "Member not found"
// @Router      /groups/{id}/payments [post]
func (h *PaymentHandler) CreatePayment(c *gin.Context) {
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

	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	if req.MemberID == "" {
		req.MemberID = userID
	}

	payment, err := h.paymentService.CreatePayment(userID, groupID, services.PaymentInput{
		MemberID:      req.MemberID,
		Amount:        req.Amount,
		PaymentDate:   req.PaymentDate,
		BillingMonth:  req.BillingMonth,
		Description:   req.Description,
		Status:        req.Status,
		CoverageStart: req.CoverageStart,
		CoverageEnd:   req.CoverageEnd,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, groupID, "CREATE_PAYMENT", "member_payment", payment.ID, c.ClientIP(),
		map[string]interface{}{
			"member_id":     payment.MemberID,
			"amount":        payment.Amount,
			"billing_month": payment.BillingMonth,
		})

	c.JSON(http.StatusCreated, gin.H{"payment": payment})
}

// DeletePayment removes a payment record
// @Summary     Delete payment
// @Description Delete a payment record. Any transaction it was paired with is left untouched.
// @Tags        payments
// @Produce     json
// @Security    BearerAuth
// @Param       id        path string true "Group ID"
// @Param       paymentId path string true "Payment ID"
// @Success     200 {object} map[string]string "Payment deleted"
// @Failure     403 {object} ErrorResponse "Not permitted"
// @Failure     404 {object} ErrorResponse "Payment not found"
// @Router      /groups/{id}/payments/{paymentId} [delete]
func (h *PaymentHandler) DeletePayment(c *gin.Context) {
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
	paymentID, err := pathParam(c, "paymentId")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.paymentService.DeletePayment(userID, groupID, paymentID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, groupID, "DELETE_PAYMENT", "member_payment", paymentID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Payment deleted"})
}

// ListFlaggedPayments returns payments awaiting review
// @Summary     List flagged payments
// @Description Payments left behind by a deletion that matched more than one record. Admin only.
// @Tags        payments
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Group ID"
// @Success     200 {array}  models.MemberPayment "Flagged payments"
// @Failure     403 {object} ErrorResponse "Not an admin"
// @Router      /groups/{id}/payments/flagged [get]
func (h *PaymentHandler) ListFlaggedPayments(c *gin.Context) {
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

	payments, err := h.paymentService.ListFlaggedPayments(userID, groupID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"payments": payments})
}

// ClearReviewFlag marks a flagged payment as reviewed
// @Summary     Clear review flag
// @Description Keep a flagged payment and clear its review flag. Admin only.
// @Tags        payments
// @Produce     json
// @Security    BearerAuth
// @Param       id        path string true "Group ID"
// @Param       paymentId path string true "Payment ID"
// @Success     200 {object} models.MemberPayment "Reviewed payment"
// @Failure     403 {object} ErrorResponse "Not an admin"
// @Failure     404 {object} ErrorResponse "Payment not found"
// @Router      /groups/{id}/payments/{paymentId}/flag [delete]
func (h *PaymentHandler) ClearReviewFlag(c *gin.Context) {
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
	paymentID, err := pathParam(c, "paymentId")
	if err != nil {
		respondWithError(c, err)
		return
	}

	payment, err := h.paymentService.ClearReviewFlag(userID, groupID, paymentID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, groupID, "CLEAR_REVIEW_FLAG", "member_payment", paymentID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"payment": payment})
}
