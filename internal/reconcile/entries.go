package reconcile

import "time"

// Kind is the direction of a transaction.
type Kind string

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
)

// Status is the recorded state of a member payment.
type Status string

const (
	StatusPaid    Status = "paid"
	StatusPending Status = "pending"
	StatusOverdue Status = "overdue"
)

// TransactionEntry is the subset of a group transaction the engine needs.
type TransactionEntry struct {
	ID       string
	Kind     Kind
	Amount   int64
	Date     string // YYYY-MM-DD
	Title    string
	AuthorID string
}

// PaymentEntry is the subset of a member payment record the engine needs.
type PaymentEntry struct {
	ID            string
	MemberID      string
	TransactionID string // empty when the record predates back-references
	Amount        int64
	PaymentDate   string // YYYY-MM-DD
	BillingMonth  string // YYYY-MM
	Description   string
	Status        Status
	CoverageStart string // YYYYMM, empty for legacy records
	CoverageEnd   string
	CreatedAt     time.Time
}

// Coverage returns the prepayment interval of the record. Structured coverage
// fields win; legacy records fall back to the description encoding.
func (p PaymentEntry) Coverage() (Interval, bool) {
	if p.CoverageStart != "" && p.CoverageEnd != "" {
		iv := Interval{Start: p.CoverageStart, End: p.CoverageEnd}
		if IsMonthCode(iv.Start) && IsMonthCode(iv.End) && iv.Start <= iv.End {
			return iv, true
		}
	}
	return DecodePrepayment(p.Description)
}

// IsPrepayment reports whether the record carries a usable coverage interval.
func (p PaymentEntry) IsPrepayment() bool {
	_, ok := p.Coverage()
	return ok
}
