package services

import (
	"errors"
	"slices"
	"time"

	"gorm.io/gorm"

	apperrors "groupledger/internal/errors"
	"groupledger/internal/logger"
	"groupledger/internal/metrics"
	"groupledger/internal/models"
	"groupledger/internal/reconcile"
)

// paymentService handles member payment records.
type paymentService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewPaymentService creates a new PaymentServicer.
func NewPaymentService(db *gorm.DB) PaymentServicer {
	return &paymentService{db: db, now: time.Now}
}

// memberPayments loads a member's payments in resolution order: oldest
// payment date first, ties broken by creation time.
func memberPayments(db *gorm.DB, groupID, memberID string) ([]models.MemberPayment, error) {
	var payments []models.MemberPayment
	err := db.Where("group_id = ? AND member_id = ?", groupID, memberID).
		Order("payment_date ASC").Order("created_at ASC").
		Find(&payments).Error
	return payments, err
}

func findPayment(db *gorm.DB, groupID, paymentID string) (*models.MemberPayment, error) {
	var payment models.MemberPayment
	if err := db.Where("id = ? AND group_id = ?", paymentID, groupID).First(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPaymentNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &payment, nil
}

// ListMemberPayments returns a member's payments, newest first. An empty
// memberID means the caller.
func (s *paymentService) ListMemberPayments(userID, groupID, memberID string) ([]models.MemberPayment, error) {
	if _, err := loadMembership(s.db, groupID, userID); err != nil {
		return nil, err
	}
	if memberID == "" {
		memberID = userID
	}

	var payments []models.MemberPayment
	if err := s.db.Where("group_id = ? AND member_id = ?", groupID, memberID).
		Order("payment_date DESC").Order("created_at DESC").
		Find(&payments).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return payments, nil
}

// CreatePayment records a payment without a transaction. Members record
// their own payments; admins may record for anyone. A coverage interval
// makes it a prepayment, which the group must allow.
func (s *paymentService) CreatePayment(userID, groupID string, input PaymentInput) (*models.MemberPayment, error) {
	if err := validatePaymentInput(&input); err != nil {
		return nil, err
	}
	member, err := loadMembership(s.db, groupID, userID)
	if err != nil {
		return nil, err
	}
	if err := authorize(member, input.MemberID); err != nil {
		return nil, err
	}
	if _, err := findMember(s.db, groupID, input.MemberID); err != nil {
		return nil, err
	}
	if input.CoverageStart != "" {
		if err := requirePrepayAllowed(s.db, groupID); err != nil {
			return nil, err
		}
	}

	payment := models.NewMemberPayment(groupID, reconcile.PaymentEntry{
		MemberID:      input.MemberID,
		Amount:        input.Amount,
		PaymentDate:   input.PaymentDate,
		BillingMonth:  input.BillingMonth,
		Description:   input.Description,
		Status:        reconcile.Status(input.Status),
		CoverageStart: input.CoverageStart,
		CoverageEnd:   input.CoverageEnd,
	})
	if err := s.db.Create(payment).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return payment, nil
}

// DeletePayment removes a payment record only. A correlated transaction
// stays in place as an orphan and is marked detached so the repair job
// leaves it alone.
func (s *paymentService) DeletePayment(userID, groupID, paymentID string) error {
	member, err := loadMembership(s.db, groupID, userID)
	if err != nil {
		return err
	}
	payment, err := findPayment(s.db, groupID, paymentID)
	if err != nil {
		return err
	}
	if err := authorize(member, payment.MemberID); err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := detachCorrelatedTransactions(tx, payment); err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Delete(&models.MemberPayment{}, "id = ?", payment.ID).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}

// detachCorrelatedTransactions marks the income transactions correlated with
// payment as deliberately unpaired. A linked payment names its transaction;
// a legacy one is resolved the same way the transaction flows resolve it.
func detachCorrelatedTransactions(tx *gorm.DB, payment *models.MemberPayment) error {
	var ids []string
	if payment.TransactionID != nil {
		ids = append(ids, *payment.TransactionID)
	} else {
		var incomes []models.Transaction
		if err := tx.Where("group_id = ? AND author_user_id = ? AND date = ? AND type = ?",
			payment.GroupID, payment.MemberID, payment.PaymentDate, models.TransactionTypeIncome).
			Find(&incomes).Error; err != nil {
			return err
		}
		for i := range incomes {
			candidates, err := correlatedCandidates(tx, &incomes[i])
			if err != nil {
				return err
			}
			match := reconcile.MatchCorrelatedPayments(incomes[i].Entry(), models.PaymentEntries(candidates))
			if slices.Contains(match.Matched, payment.ID) {
				ids = append(ids, incomes[i].ID)
			}
		}
	}
	if len(ids) == 0 {
		return nil
	}
	return tx.Model(&models.Transaction{}).
		Where("group_id = ? AND id IN ?", payment.GroupID, ids).
		Update("payment_detached", true).Error
}

// GetPaymentStatus resolves whether a member has paid for month. Empty
// memberID means the caller; empty month means the current billing month.
func (s *paymentService) GetPaymentStatus(userID, groupID, memberID, month string) (*reconcile.PaymentStatus, error) {
	if _, err := loadMembership(s.db, groupID, userID); err != nil {
		return nil, err
	}
	if memberID == "" {
		memberID = userID
	}
	if month == "" {
		month = reconcile.CurrentBillingMonth(s.now())
	}
	if !reconcile.IsBillingMonth(month) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "month must be YYYY-MM")
	}

	payments, err := memberPayments(s.db, groupID, memberID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	status := reconcile.ResolvePaymentStatus(memberID, month, models.PaymentEntries(payments))
	if len(status.OverlappingIDs) > 0 {
		logger.Get().Warnw("overlapping prepayments",
			"group_id", groupID,
			"member_id", memberID,
			"billing_month", month,
			"payment_id", status.PaymentID,
			"overlapping", status.OverlappingIDs,
		)
	}
	return &status, nil
}

// GetMemberStats summarises a member's payment history.
func (s *paymentService) GetMemberStats(userID, groupID, memberID string) (*reconcile.MemberStats, error) {
	if _, err := loadMembership(s.db, groupID, userID); err != nil {
		return nil, err
	}
	if memberID == "" {
		memberID = userID
	}
	target, err := findMember(s.db, groupID, memberID)
	if err != nil {
		return nil, err
	}

	payments, err := memberPayments(s.db, groupID, memberID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	stats := reconcile.ComputeMemberStats(models.PaymentEntries(payments), target.JoinedAt, s.now())
	return &stats, nil
}

// ListFlaggedPayments returns payments awaiting manual review. Admin only.
func (s *paymentService) ListFlaggedPayments(userID, groupID string) ([]models.MemberPayment, error) {
	if _, err := requireAdmin(s.db, groupID, userID); err != nil {
		return nil, err
	}

	var payments []models.MemberPayment
	if err := s.db.Where("group_id = ? AND needs_review = ?", groupID, true).
		Order("payment_date ASC").
		Find(&payments).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return payments, nil
}

// ClearReviewFlag marks a flagged payment as reviewed. Admin only.
func (s *paymentService) ClearReviewFlag(userID, groupID, paymentID string) (*models.MemberPayment, error) {
	if _, err := requireAdmin(s.db, groupID, userID); err != nil {
		return nil, err
	}
	payment, err := findPayment(s.db, groupID, paymentID)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(payment).Update("needs_review", false).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	payment.NeedsReview = false
	return payment, nil
}

// RepairOrphans creates the correlated payment for every income transaction
// of the group that has none. Transactions whose payment was deleted through
// DeletePayment, and those with an ambiguous legacy match, are skipped. A
// legacy payment pairs with at most one transaction. Each repair is written
// separately so one failure does not block the rest.
func (s *paymentService) RepairOrphans(groupID string) (*RepairReport, error) {
	if _, err := loadGroup(s.db, groupID); err != nil {
		return nil, err
	}

	var incomes []models.Transaction
	if err := s.db.Where("group_id = ? AND type = ? AND payment_detached = ?", groupID, models.TransactionTypeIncome, false).
		Order("date ASC").Order("created_at ASC").
		Find(&incomes).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var payments []models.MemberPayment
	if err := s.db.Where("group_id = ?", groupID).Find(&payments).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	linked := make(map[string]bool)
	byPair := make(map[string][]reconcile.PaymentEntry)
	for i := range payments {
		e := payments[i].Entry()
		if e.TransactionID != "" {
			linked[e.TransactionID] = true
		}
		key := e.MemberID + "|" + e.PaymentDate
		byPair[key] = append(byPair[key], e)
	}

	log := logger.ForGroup(groupID)
	report := &RepairReport{GroupID: groupID, ScannedIncome: len(incomes), CreatedPaymentIDs: []string{}}
	for i := range incomes {
		transaction := &incomes[i]
		if linked[transaction.ID] {
			continue
		}
		key := transaction.AuthorUserID + "|" + transaction.Date
		candidates := byPair[key]
		match := reconcile.MatchCorrelatedPayments(transaction.Entry(), candidates)
		if len(match.Ambiguous) > 0 {
			report.SkippedAmbiguous++
			continue
		}
		if len(match.Matched) > 0 {
			byPair[key] = slices.DeleteFunc(candidates, func(e reconcile.PaymentEntry) bool {
				return slices.Contains(match.Matched, e.ID)
			})
			continue
		}

		payment, err := createCorrelatedPayment(s.db, transaction, "")
		if err != nil {
			log.Errorw("failed to repair orphan transaction",
				"error", err,
				"transaction_id", transaction.ID,
			)
			report.FailedTransactions = append(report.FailedTransactions, transaction.ID)
			continue
		}
		metrics.RepairedPayments.Inc()
		report.CreatedPaymentIDs = append(report.CreatedPaymentIDs, payment.ID)
		byPair[key] = append(candidates, payment.Entry())
	}

	if len(report.CreatedPaymentIDs) > 0 || report.SkippedAmbiguous > 0 {
		log.Infow("repaired orphan transactions",
			"scanned", report.ScannedIncome,
			"created", len(report.CreatedPaymentIDs),
			"skipped_ambiguous", report.SkippedAmbiguous,
		)
	}
	return report, nil
}
