package models

import "groupledger/internal/reconcile"

// PaymentStatus is the recorded state of a member payment.
type PaymentStatus string

const (
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusOverdue PaymentStatus = "overdue"
)

// MemberPayment is one member's billing event in a group. Income
// transactions create one automatically, linked through TransactionID.
type MemberPayment struct {
	Base
	GroupID       string        `gorm:"type:uuid;not null;index:idx_payment_member" json:"group_id"`
	MemberID      string        `gorm:"type:uuid;not null;index:idx_payment_member" json:"member_id"`
	TransactionID *string       `gorm:"type:uuid;index" json:"transaction_id,omitempty"`
	Amount        int64         `gorm:"type:bigint;not null" json:"amount"`
	PaymentDate   string        `gorm:"size:10;not null" json:"payment_date"`
	BillingMonth  string        `gorm:"size:7;not null;index" json:"billing_month"`
	Description   string        `gorm:"size:500" json:"description"`
	Status        PaymentStatus `gorm:"size:16;not null;default:paid" json:"status"`
	CoverageStart *string       `gorm:"size:6" json:"coverage_start,omitempty"`
	CoverageEnd   *string       `gorm:"size:6" json:"coverage_end,omitempty"`
	NeedsReview   bool          `gorm:"default:false;index" json:"needs_review"`
}

// Entry converts the payment into the reconciliation engine's form.
func (p *MemberPayment) Entry() reconcile.PaymentEntry {
	e := reconcile.PaymentEntry{
		ID:           p.ID,
		MemberID:     p.MemberID,
		Amount:       p.Amount,
		PaymentDate:  p.PaymentDate,
		BillingMonth: p.BillingMonth,
		Description:  p.Description,
		Status:       reconcile.Status(p.Status),
		CreatedAt:    p.CreatedAt,
	}
	if p.TransactionID != nil {
		e.TransactionID = *p.TransactionID
	}
	if p.CoverageStart != nil {
		e.CoverageStart = *p.CoverageStart
	}
	if p.CoverageEnd != nil {
		e.CoverageEnd = *p.CoverageEnd
	}
	return e
}

// PaymentEntries converts a slice of payments.
func PaymentEntries(ps []MemberPayment) []reconcile.PaymentEntry {
	out := make([]reconcile.PaymentEntry, len(ps))
	for i := range ps {
		out[i] = ps[i].Entry()
	}
	return out
}

// NewMemberPayment builds a storable payment from an engine entry.
func NewMemberPayment(groupID string, e reconcile.PaymentEntry) *MemberPayment {
	p := &MemberPayment{
		GroupID:      groupID,
		MemberID:     e.MemberID,
		Amount:       e.Amount,
		PaymentDate:  e.PaymentDate,
		BillingMonth: e.BillingMonth,
		Description:  e.Description,
		Status:       PaymentStatus(e.Status),
	}
	if p.Status == "" {
		p.Status = PaymentStatusPaid
	}
	if e.TransactionID != "" {
		id := e.TransactionID
		p.TransactionID = &id
	}
	if e.CoverageStart != "" && e.CoverageEnd != "" {
		start, end := e.CoverageStart, e.CoverageEnd
		p.CoverageStart = &start
		p.CoverageEnd = &end
	}
	return p
}
