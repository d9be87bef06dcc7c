package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "groupledger/internal/errors"
	"groupledger/internal/models"
	"groupledger/internal/pagination"
	"groupledger/internal/reconcile"
	"groupledger/internal/services"
)

// TransactionHandler handles transaction-related requests.
type TransactionHandler struct {
	transactionService services.TransactionServicer
	auditService       services.AuditServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService services.TransactionServicer, auditService services.AuditServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService, auditService: auditService}
}

// CreateTransactionRequest represents the request payload for creating a transaction.
// PaymentDescription is only accepted on income and marks the paired payment
// record as a prepayment.
type CreateTransactionRequest struct {
	Type               models.TransactionType `json:"type" binding:"required,transaction_type"`
	Amount             int64                  `json:"amount" binding:"required,gt=0"`
	Date               string                 `json:"date" binding:"required,iso_date"`
	Title              string                 `json:"title" binding:"required,max=100"`
	Description        string                 `json:"description" binding:"max=500"`
	PaymentDescription string                 `json:"payment_description" binding:"max=500"`
}

// UpdateTransactionRequest replaces the editable fields of a transaction.
// Type may be repeated but not changed.
type UpdateTransactionRequest struct {
	Type               models.TransactionType `json:"type" binding:"omitempty,transaction_type"`
	Amount             int64                  `json:"amount" binding:"required,gt=0"`
	Date               string                 `json:"date" binding:"required,iso_date"`
	Title              string                 `json:"title" binding:"required,max=100"`
	Description        string                 `json:"description" binding:"max=500"`
	PaymentDescription string                 `json:"payment_description" binding:"max=500"`
}

// CreateTransaction handles the creation of a new transaction
// @Summary     Create a transaction
// @Description Record income or an expense in a group. Income also records a payment for the author; payment_sync_failed reports when that second write did not land.
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string                   true "Group ID"
// @Param       request body CreateTransactionRequest true "Transaction details"
// @Success     201 {object} services.TransactionResult "Transaction created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Not a member"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /groups/{id}/transactions [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
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

	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.transactionService.CreateTransaction(userID, groupID, services.TransactionInput{
		Type:               req.Type,
		Amount:             req.Amount,
		Date:               req.Date,
		Title:              req.Title,
		Description:        req.Description,
		PaymentDescription: req.PaymentDescription,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, groupID, "CREATE_TRANSACTION", "transaction", result.Transaction.ID, c.ClientIP(),
		map[string]interface{}{
			"type":                req.Type,
			"amount":              req.Amount,
			"date":                req.Date,
			"payment_sync_failed": result.PaymentSyncFailed,
		})

	c.JSON(http.StatusCreated, result)
}

// ListTransactions handles the retrieval of a group's transactions
// @Summary     List group transactions
// @Description Get a paginated list of a group's transactions, newest first, with optional filters
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       id        path  string true  "Group ID"
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Param       from_date query string false "Filter by start date (YYYY-MM-DD)"
// @Param       to_date   query string false "Filter by end date (YYYY-MM-DD)"
// @Param       type      query string false "Filter by transaction type (income, expense)"
// @Param       author_id query string false "Filter by author user ID"
// @Success     200 {object} pagination.PageResponse[models.Transaction] "Paginated transactions"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Not a member"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /groups/{id}/transactions [get]
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
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

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	filter, err := parseTransactionFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.transactionService.ListTransactions(userID, groupID, page, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func parseTransactionFilter(c *gin.Context) (services.TransactionFilter, error) {
	var filter services.TransactionFilter

	if v := c.Query("from_date"); v != "" {
		if !reconcile.IsISODate(v) {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid from_date format, use YYYY-MM-DD")
		}
		filter.FromDate = &v
	}

	if v := c.Query("to_date"); v != "" {
		if !reconcile.IsISODate(v) {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid to_date format, use YYYY-MM-DD")
		}
		filter.ToDate = &v
	}

	if v := c.Query("type"); v != "" {
		txType := models.TransactionType(v)
		switch txType {
		case models.TransactionTypeIncome, models.TransactionTypeExpense:
			filter.Type = &txType
		default:
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid type, must be income or expense")
		}
	}

	if v := c.Query("author_id"); v != "" {
		filter.AuthorID = &v
	}

	return filter, nil
}

// GetTransaction handles the retrieval of a specific transaction
// @Summary     Get transaction
// @Description Get a specific transaction of a group
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       id   path string true "Group ID"
// @Param       txId path string true "Transaction ID"
// @Success     200 {object} models.Transaction "Transaction details"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Not a member"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /groups/{id}/transactions/{txId} [get]
func (h *TransactionHandler) GetTransaction(c *gin.Context) {
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
	transactionID, err := pathParam(c, "txId")
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.GetTransaction(userID, groupID, transactionID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// UpdateTransaction handles updating an existing transaction
// @Summary     Update transaction
// @Description Replace a transaction's amount, date, title and description. Edits to income are carried over to its payment record. Only the author or an admin may edit.
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string                   true "Group ID"
// @Param       txId    path string                   true "Transaction ID"
// @Param       request body UpdateTransactionRequest true "Transaction fields"
// @Success     200 {object} models.Transaction "Updated transaction"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Not the author"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /groups/{id}/transactions/{txId} [put]
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
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
	transactionID, err := pathParam(c, "txId")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	transaction, err := h.transactionService.UpdateTransaction(userID, groupID, transactionID, services.TransactionInput{
		Type:               req.Type,
		Amount:             req.Amount,
		Date:               req.Date,
		Title:              req.Title,
		Description:        req.Description,
		PaymentDescription: req.PaymentDescription,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, groupID, "UPDATE_TRANSACTION", "transaction", transactionID, c.ClientIP(),
		map[string]interface{}{"amount": req.Amount, "date": req.Date, "title": req.Title})

	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// DeleteTransaction handles deleting a transaction
// @Summary     Delete transaction
// @Description Delete a transaction and the payment records it produced. Payments that cannot be matched unambiguously are flagged for review instead.
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       id   path string true "Group ID"
// @Param       txId path string true "Transaction ID"
// @Success     200 {object} services.SyncReport "What happened to the payment records"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Not the author"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /groups/{id}/transactions/{txId} [delete]
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
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
	transactionID, err := pathParam(c, "txId")
	if err != nil {
		respondWithError(c, err)
		return
	}

	report, err := h.transactionService.DeleteTransaction(userID, groupID, transactionID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, groupID, "DELETE_TRANSACTION", "transaction", transactionID, c.ClientIP(),
		map[string]interface{}{
			"deleted_payment_ids": report.DeletedPaymentIDs,
			"flagged_payment_ids": report.FlaggedPaymentIDs,
		})

	c.JSON(http.StatusOK, report)
}
