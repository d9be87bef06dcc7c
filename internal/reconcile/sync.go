package reconcile

// DefaultPaymentDescription is the label given to a payment created alongside
// an income transaction when no explicit description is supplied.
func DefaultPaymentDescription(title string) string {
	return "Income: " + title
}

// NewCorrelatedPayment builds the payment record that accompanies an income
// transaction. A non-empty description that decodes as a prepayment is kept
// and its interval copied into the structured coverage fields; any other
// description is ignored in favour of the generated label.
func NewCorrelatedPayment(tx TransactionEntry, description string) PaymentEntry {
	p := PaymentEntry{
		MemberID:      tx.AuthorID,
		TransactionID: tx.ID,
		Amount:        tx.Amount,
		PaymentDate:   tx.Date,
		BillingMonth:  BillingMonthOf(tx.Date),
		Description:   DefaultPaymentDescription(tx.Title),
		Status:        StatusPaid,
	}
	if iv, ok := DecodePrepayment(description); ok {
		p.Description = description
		p.CoverageStart = iv.Start
		p.CoverageEnd = iv.End
	}
	return p
}

// MatchResult lists the payment ids a transaction deletion should remove,
// and the ids that matched only ambiguously.
type MatchResult struct {
	Matched   []string `json:"matched"`
	Ambiguous []string `json:"ambiguous,omitempty"`
	Linked    bool     `json:"linked"`
}

// MatchCorrelatedPayments finds the payments correlated with tx among
// candidates.
//
// Only candidates with member = tx author and payment date = tx date are
// considered. Records that reference tx by id are matched outright. Without
// such a link, legacy records that reference no transaction are matched on
// equal amount and consistent prepayment marker (a prepayment-titled
// transaction only pairs with a prepayment-described record and vice versa).
// More than one legacy match is returned as Ambiguous with nothing matched.
// Expense transactions never match.
func MatchCorrelatedPayments(tx TransactionEntry, candidates []PaymentEntry) MatchResult {
	var res MatchResult
	if tx.Kind != KindIncome {
		return res
	}

	var legacy []string
	txPrepay := HasPrepayMarker(tx.Title)
	for _, p := range candidates {
		if p.MemberID != tx.AuthorID || p.PaymentDate != tx.Date {
			continue
		}
		if p.TransactionID != "" {
			if tx.ID != "" && p.TransactionID == tx.ID {
				res.Matched = append(res.Matched, p.ID)
			}
			continue
		}
		if p.Amount == tx.Amount && HasPrepayMarker(p.Description) == txPrepay {
			legacy = append(legacy, p.ID)
		}
	}

	if len(res.Matched) > 0 {
		res.Linked = true
		return res
	}

	switch len(legacy) {
	case 0:
	case 1:
		res.Matched = legacy
	default:
		res.Ambiguous = legacy
	}
	return res
}

// HasCorrelatedPayment reports whether tx already has a payment among
// candidates, either linked by id or matchable as a legacy record. Ambiguous
// legacy matches count as present.
func HasCorrelatedPayment(tx TransactionEntry, candidates []PaymentEntry) bool {
	res := MatchCorrelatedPayments(tx, candidates)
	return len(res.Matched) > 0 || len(res.Ambiguous) > 0
}
