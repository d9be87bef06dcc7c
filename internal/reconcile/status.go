package reconcile

import "time"

// Source tells how a payment status was satisfied.
type Source string

const (
	SourceNone       Source = "none"
	SourceDirect     Source = "direct"
	SourcePrepayment Source = "prepayment"
)

// PaymentStatus is a member's standing for one billing month.
type PaymentStatus struct {
	BillingMonth   string   `json:"billing_month"`
	Paid           bool     `json:"paid"`
	Amount         int64    `json:"amount"`
	DueDate        string   `json:"due_date"`
	Source         Source   `json:"source"`
	PaymentID      string   `json:"payment_id,omitempty"`
	OverlappingIDs []string `json:"overlapping_ids,omitempty"`
}

// UnpaidStatus is the default standing for month.
func UnpaidStatus(month string) PaymentStatus {
	return PaymentStatus{
		BillingMonth: month,
		Amount:       0,
		DueDate:      DueDate(month),
		Source:       SourceNone,
	}
}

// DueDate returns the last calendar day of a YYYY-MM month as YYYY-MM-DD.
// An unparsable month yields an empty string.
func DueDate(month string) string {
	t, err := time.Parse("2006-01", month)
	if err != nil {
		return ""
	}
	return t.AddDate(0, 1, -1).Format("2006-01-02")
}

// CurrentBillingMonth returns now's month in YYYY-MM form.
func CurrentBillingMonth(now time.Time) string {
	return now.Format("2006-01")
}

// ResolvePaymentStatus decides whether memberID has satisfied month.
//
// A record billed to exactly month wins. Otherwise the first record, in the
// order given, whose prepayment interval covers month wins; later covering
// prepayments are reported in OverlappingIDs and left for a human to sort out.
// Records belonging to other members are ignored. An empty member id or a
// malformed month resolves to unpaid.
func ResolvePaymentStatus(memberID, month string, payments []PaymentEntry) PaymentStatus {
	status := UnpaidStatus(month)
	if memberID == "" || !IsBillingMonth(month) {
		return status
	}

	for _, p := range payments {
		if p.MemberID != memberID {
			continue
		}
		if p.BillingMonth == month {
			status.Paid = true
			status.Amount = p.Amount
			status.Source = SourceDirect
			status.PaymentID = p.ID
			return status
		}
	}

	code := MonthCode(month)
	for _, p := range payments {
		if p.MemberID != memberID {
			continue
		}
		iv, ok := p.Coverage()
		if !ok || !iv.Covers(code) {
			continue
		}
		if !status.Paid {
			status.Paid = true
			status.Amount = p.Amount
			status.Source = SourcePrepayment
			status.PaymentID = p.ID
			continue
		}
		status.OverlappingIDs = append(status.OverlappingIDs, p.ID)
	}

	return status
}
