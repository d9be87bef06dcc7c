package reconcile

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Tenure approximations. They are not calendar-accurate and are only used for
// the human-readable membership length.
const (
	daysPerMonth = 30
	daysPerYear  = 365
)

// MemberStats summarises one member's payment history in a group.
type MemberStats struct {
	TotalPaidAmount      int64           `json:"total_paid_amount"`
	TotalPaymentCount    int             `json:"total_payment_count"`
	AveragePaymentAmount decimal.Decimal `json:"average_payment_amount"`
	OnTimePaymentRate    float64         `json:"on_time_payment_rate"`
	MemberSince          string          `json:"member_since"`
}

// ComputeMemberStats aggregates payments. The caller passes only the member's
// own records. Rates and averages are zero when there are no records.
func ComputeMemberStats(payments []PaymentEntry, joinedAt, now time.Time) MemberStats {
	stats := MemberStats{
		AveragePaymentAmount: decimal.Zero,
		MemberSince:          FormatTenure(joinedAt, now),
	}

	var paid int
	for _, p := range payments {
		stats.TotalPaidAmount += p.Amount
		stats.TotalPaymentCount++
		if p.Status == StatusPaid {
			paid++
		}
	}

	if stats.TotalPaymentCount > 0 {
		count := decimal.NewFromInt(int64(stats.TotalPaymentCount))
		stats.AveragePaymentAmount = decimal.NewFromInt(stats.TotalPaidAmount).Div(count)
		stats.OnTimePaymentRate = float64(paid) / float64(stats.TotalPaymentCount)
	}

	return stats
}

// FormatTenure renders the time between joinedAt and now as "<N>days",
// "<N>months", "<Y>years" or "<Y>years<M>months".
func FormatTenure(joinedAt, now time.Time) string {
	days := int(now.Sub(joinedAt).Hours() / 24)
	if days < 0 {
		days = 0
	}

	switch {
	case days < daysPerMonth:
		return strconv.Itoa(days) + "days"
	case days < daysPerYear:
		return strconv.Itoa(days/daysPerMonth) + "months"
	}

	years := days / daysPerYear
	months := (days % daysPerYear) / daysPerMonth
	if months == 0 {
		return strconv.Itoa(years) + "years"
	}
	return strconv.Itoa(years) + "years" + strconv.Itoa(months) + "months"
}
