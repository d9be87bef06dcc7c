package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "groupledger/internal/errors"
	"groupledger/internal/logger"
	"groupledger/internal/metrics"
	"groupledger/internal/models"
	"groupledger/internal/pagination"
	"groupledger/internal/reconcile"
)

// transactionService handles group transactions and keeps each income
// transaction paired with its member payment record.
type transactionService struct {
	db *gorm.DB
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB) TransactionServicer {
	return &transactionService{db: db}
}

// CreateTransaction records a transaction for the caller. Income also
// creates the caller's correlated payment record inside a savepoint; if that
// write fails the transaction is kept and PaymentSyncFailed is set.
func (s *transactionService) CreateTransaction(userID, groupID string, input TransactionInput) (*TransactionResult, error) {
	input.Title = strings.TrimSpace(input.Title)
	if err := validateTransactionInput(input); err != nil {
		return nil, err
	}
	if _, err := loadMembership(s.db, groupID, userID); err != nil {
		return nil, err
	}
	if input.PaymentDescription != "" {
		if err := requirePrepayAllowed(s.db, groupID); err != nil {
			return nil, err
		}
	}

	transaction := &models.Transaction{
		GroupID:      groupID,
		AuthorUserID: userID,
		Type:         input.Type,
		Amount:       input.Amount,
		Date:         input.Date,
		Title:        input.Title,
		Description:  input.Description,
	}
	result := &TransactionResult{Transaction: transaction}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(transaction).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if transaction.Type != models.TransactionTypeIncome {
			return nil
		}

		payment, err := createCorrelatedPayment(tx, transaction, input.PaymentDescription)
		if err != nil {
			metrics.PaymentSyncFailures.Inc()
			logger.Get().Errorw("failed to create correlated payment",
				"error", err,
				"group_id", groupID,
				"transaction_id", transaction.ID,
				"member_id", userID,
			)
			result.PaymentSyncFailed = true
			return nil
		}
		result.Payment = payment
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// createCorrelatedPayment writes the payment paired with transaction in a
// nested transaction so a failure rolls back only the payment.
func createCorrelatedPayment(tx *gorm.DB, transaction *models.Transaction, description string) (*models.MemberPayment, error) {
	entry := reconcile.NewCorrelatedPayment(transaction.Entry(), description)
	payment := models.NewMemberPayment(transaction.GroupID, entry)

	err := tx.Transaction(func(sp *gorm.DB) error {
		return sp.Create(payment).Error
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}

func requirePrepayAllowed(db *gorm.DB, groupID string) error {
	group, err := loadGroup(db, groupID)
	if err != nil {
		return err
	}
	if !group.AllowPrepay {
		return apperrors.ErrPrepayDisabled
	}
	return nil
}

// GetTransaction returns one transaction of a group the caller belongs to.
func (s *transactionService) GetTransaction(userID, groupID, transactionID string) (*models.Transaction, error) {
	if _, err := loadMembership(s.db, groupID, userID); err != nil {
		return nil, err
	}
	return findTransaction(s.db, groupID, transactionID)
}

func findTransaction(db *gorm.DB, groupID, transactionID string) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := db.Where("id = ? AND group_id = ?", transactionID, groupID).First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaction, nil
}

// ListTransactions retrieves a paginated, filtered list of a group's
// transactions, newest first.
func (s *transactionService) ListTransactions(userID, groupID string, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	if _, err := loadMembership(s.db, groupID, userID); err != nil {
		return nil, err
	}

	page.Defaults()

	base := s.db.Model(&models.Transaction{}).Where("group_id = ?", groupID)
	base = applyTransactionFilters(base, filter)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transactions []models.Transaction
	if err := base.Scopes(pagination.Paginate(page)).
		Order("date DESC").Order("created_at DESC").
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(transactions, page.Page, page.PageSize, totalItems)
	return &result, nil
}

func applyTransactionFilters(q *gorm.DB, f TransactionFilter) *gorm.DB {
	if f.FromDate != nil {
		q = q.Where("date >= ?", *f.FromDate)
	}
	if f.ToDate != nil {
		q = q.Where("date <= ?", *f.ToDate)
	}
	if f.Type != nil {
		q = q.Where("type = ?", *f.Type)
	}
	if f.AuthorID != nil {
		q = q.Where("author_user_id = ?", *f.AuthorID)
	}
	return q
}

// authorize allows the author of a record or any group admin.
func authorize(member *models.GroupMember, authorID string) error {
	if member.UserID == authorID || member.IsAdmin() {
		return nil
	}
	return apperrors.ErrNotAuthor
}

// correlatedCandidates loads the payments that could pair with transaction.
func correlatedCandidates(db *gorm.DB, transaction *models.Transaction) ([]models.MemberPayment, error) {
	var payments []models.MemberPayment
	err := db.Where("group_id = ? AND member_id = ? AND payment_date = ?",
		transaction.GroupID, transaction.AuthorUserID, transaction.Date).
		Order("created_at ASC").
		Find(&payments).Error
	return payments, err
}

// UpdateTransaction edits a transaction. Amount, date and title changes of
// an income transaction are carried over to its correlated payment.
func (s *transactionService) UpdateTransaction(userID, groupID, transactionID string, input TransactionInput) (*models.Transaction, error) {
	member, err := loadMembership(s.db, groupID, userID)
	if err != nil {
		return nil, err
	}
	transaction, err := findTransaction(s.db, groupID, transactionID)
	if err != nil {
		return nil, err
	}
	if err := authorize(member, transaction.AuthorUserID); err != nil {
		return nil, err
	}

	if input.Type == "" {
		input.Type = transaction.Type
	}
	if input.Type != transaction.Type {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "transaction type cannot be changed")
	}
	input.Title = strings.TrimSpace(input.Title)
	if err := validateTransactionInput(input); err != nil {
		return nil, err
	}
	if input.PaymentDescription != "" {
		if err := requirePrepayAllowed(s.db, groupID); err != nil {
			return nil, err
		}
	}

	before := *transaction
	err = s.db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"amount":      input.Amount,
			"date":        input.Date,
			"title":       input.Title,
			"description": input.Description,
		}
		if err := tx.Model(transaction).Updates(updates).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if transaction.Type != models.TransactionTypeIncome {
			return nil
		}
		return propagateToPayment(tx, &before, input)
	})
	if err != nil {
		return nil, err
	}

	transaction.Amount = input.Amount
	transaction.Date = input.Date
	transaction.Title = input.Title
	transaction.Description = input.Description
	return transaction, nil
}

// propagateToPayment rewrites the payment correlated with the pre-edit
// transaction. A missing or ambiguous match is logged and left alone.
func propagateToPayment(tx *gorm.DB, before *models.Transaction, input TransactionInput) error {
	candidates, err := correlatedCandidates(tx, before)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	match := reconcile.MatchCorrelatedPayments(before.Entry(), models.PaymentEntries(candidates))
	if len(match.Matched) != 1 {
		logger.Get().Warnw("income edit not propagated to payment",
			"group_id", before.GroupID,
			"transaction_id", before.ID,
			"matched", len(match.Matched),
			"ambiguous", len(match.Ambiguous),
		)
		return nil
	}

	var payment *models.MemberPayment
	for i := range candidates {
		if candidates[i].ID == match.Matched[0] {
			payment = &candidates[i]
		}
	}

	updates := map[string]interface{}{
		"amount":         input.Amount,
		"payment_date":   input.Date,
		"billing_month":  reconcile.BillingMonthOf(input.Date),
		"transaction_id": before.ID,
	}
	if payment.Description == reconcile.DefaultPaymentDescription(before.Title) {
		updates["description"] = reconcile.DefaultPaymentDescription(input.Title)
	}
	if iv, ok := reconcile.DecodePrepayment(input.PaymentDescription); ok {
		updates["description"] = input.PaymentDescription
		updates["coverage_start"] = iv.Start
		updates["coverage_end"] = iv.End
	}
	if err := tx.Model(payment).Updates(updates).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// DeleteTransaction removes a transaction. For income it also removes the
// correlated payment: the record linked by transaction id when one exists,
// otherwise a single legacy record matching on amount and prepayment marker.
// Several legacy matches are flagged for review instead of deleted.
func (s *transactionService) DeleteTransaction(userID, groupID, transactionID string) (*SyncReport, error) {
	member, err := loadMembership(s.db, groupID, userID)
	if err != nil {
		return nil, err
	}
	transaction, err := findTransaction(s.db, groupID, transactionID)
	if err != nil {
		return nil, err
	}
	if err := authorize(member, transaction.AuthorUserID); err != nil {
		return nil, err
	}

	report := &SyncReport{TransactionID: transaction.ID, DeletedPaymentIDs: []string{}}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if transaction.Type == models.TransactionTypeIncome {
			candidates, err := correlatedCandidates(tx, transaction)
			if err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			match := reconcile.MatchCorrelatedPayments(transaction.Entry(), models.PaymentEntries(candidates))
			report.Linked = match.Linked

			if len(match.Matched) > 0 {
				if err := tx.Where("id IN ?", match.Matched).Delete(&models.MemberPayment{}).Error; err != nil {
					return apperrors.Wrap(apperrors.ErrInternalServer, err)
				}
				report.DeletedPaymentIDs = match.Matched
			}
			if len(match.Ambiguous) > 0 {
				if err := tx.Model(&models.MemberPayment{}).
					Where("id IN ?", match.Ambiguous).
					Update("needs_review", true).Error; err != nil {
					return apperrors.Wrap(apperrors.ErrInternalServer, err)
				}
				report.FlaggedPaymentIDs = match.Ambiguous
			}
		}

		if err := tx.Delete(&models.Transaction{}, "id = ?", transaction.ID).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(report.FlaggedPaymentIDs) > 0 {
		metrics.AmbiguousPaymentMatches.Add(float64(len(report.FlaggedPaymentIDs)))
		logger.Get().Warnw("ambiguous payment match on transaction delete",
			"group_id", groupID,
			"transaction_id", transaction.ID,
			"flagged", report.FlaggedPaymentIDs,
		)
	}
	return report, nil
}
