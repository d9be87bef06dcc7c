package services

import (
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"

	apperrors "groupledger/internal/errors"
	"groupledger/internal/models"
	"groupledger/internal/reconcile"
)

const (
	maxTitleLength       = 100
	maxDescriptionLength = 500
	maxGroupNameLength   = 100
)

var strictPolicy = bluemonday.StrictPolicy()

// containsMarkup reports whether s would be altered by stripping HTML.
// Free text that survives the strict policy unchanged is stored as-is.
func containsMarkup(s string) bool {
	return strictPolicy.Sanitize(s) != s
}

func invalid(msg string) error {
	return apperrors.WithMessage(apperrors.ErrInvalidInput, msg)
}

func validateText(field, value string, required bool, max int) error {
	if required && strings.TrimSpace(value) == "" {
		return invalid(field + " is required")
	}
	if utf8.RuneCountInString(value) > max {
		return invalid(field + " is too long")
	}
	if containsMarkup(value) {
		return invalid(field + " must not contain markup")
	}
	return nil
}

func validateTransactionInput(in TransactionInput) error {
	if in.Type != models.TransactionTypeIncome && in.Type != models.TransactionTypeExpense {
		return invalid("type must be income or expense")
	}
	if in.Amount <= 0 {
		return invalid("amount must be greater than zero")
	}
	if !reconcile.IsISODate(in.Date) {
		return invalid("date must be YYYY-MM-DD")
	}
	if err := validateText("title", in.Title, true, maxTitleLength); err != nil {
		return err
	}
	if err := validateText("description", in.Description, false, maxDescriptionLength); err != nil {
		return err
	}
	if in.PaymentDescription != "" {
		if in.Type != models.TransactionTypeIncome {
			return invalid("payment description is only allowed on income")
		}
		if _, ok := reconcile.DecodePrepayment(in.PaymentDescription); !ok {
			return invalid("payment description must be a prepayment range like " + reconcile.EncodePrepayment("202401", "202403"))
		}
	}
	return nil
}

func validatePaymentInput(in *PaymentInput) error {
	if in.MemberID == "" {
		return invalid("member_id is required")
	}
	if in.Amount <= 0 {
		return invalid("amount must be greater than zero")
	}
	if !reconcile.IsISODate(in.PaymentDate) {
		return invalid("payment_date must be YYYY-MM-DD")
	}
	if in.BillingMonth == "" {
		in.BillingMonth = reconcile.BillingMonthOf(in.PaymentDate)
	}
	if !reconcile.IsBillingMonth(in.BillingMonth) {
		return invalid("billing_month must be YYYY-MM")
	}
	switch in.Status {
	case "":
		in.Status = models.PaymentStatusPaid
	case models.PaymentStatusPaid, models.PaymentStatusPending, models.PaymentStatusOverdue:
	default:
		return invalid("status must be paid, pending or overdue")
	}
	if err := validateText("description", in.Description, false, maxDescriptionLength); err != nil {
		return err
	}

	hasStart, hasEnd := in.CoverageStart != "", in.CoverageEnd != ""
	if hasStart != hasEnd {
		return invalid("coverage_start and coverage_end must be given together")
	}
	if hasStart {
		if !reconcile.IsMonthCode(in.CoverageStart) || !reconcile.IsMonthCode(in.CoverageEnd) {
			return invalid("coverage months must be YYYYMM")
		}
		if in.CoverageStart > in.CoverageEnd {
			return invalid("coverage_start must not be after coverage_end")
		}
		if in.Description == "" {
			in.Description = reconcile.EncodePrepayment(in.CoverageStart, in.CoverageEnd)
		}
		return nil
	}

	if iv, ok := reconcile.DecodePrepayment(in.Description); ok {
		in.CoverageStart, in.CoverageEnd = iv.Start, iv.End
	} else if reconcile.HasPrepayMarker(in.Description) {
		return invalid("prepayment description must look like " + reconcile.EncodePrepayment("202401", "202403"))
	}
	return nil
}
