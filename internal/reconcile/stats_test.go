package reconcile

import (
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestComputeMemberStats(t *testing.T) {
	now := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)

	t.Run("no_payments", func(t *testing.T) {
		got := ComputeMemberStats(nil, now.AddDate(0, 0, -3), now)

		if got.TotalPaidAmount != 0 || got.TotalPaymentCount != 0 {
			t.Errorf("expected zero totals, got amount=%d count=%d", got.TotalPaidAmount, got.TotalPaymentCount)
		}
		if !got.AveragePaymentAmount.IsZero() {
			t.Errorf("expected zero average, got %s", got.AveragePaymentAmount)
		}
		if got.OnTimePaymentRate != 0 {
			t.Errorf("expected zero on-time rate, got %f", got.OnTimePaymentRate)
		}
		if got.MemberSince != "3days" {
			t.Errorf("expected 3days, got %s", got.MemberSince)
		}
	})

	t.Run("three_of_four_paid", func(t *testing.T) {
		payments := []PaymentEntry{
			{Amount: 100, Status: StatusPaid},
			{Amount: 200, Status: StatusPaid},
			{Amount: 300, Status: StatusOverdue},
			{Amount: 400, Status: StatusPaid},
		}

		got := ComputeMemberStats(payments, now.AddDate(0, 0, -90), now)

		if got.TotalPaidAmount != 1000 {
			t.Errorf("expected total 1000, got %d", got.TotalPaidAmount)
		}
		if got.TotalPaymentCount != 4 {
			t.Errorf("expected 4 payments, got %d", got.TotalPaymentCount)
		}
		if !got.AveragePaymentAmount.Equal(decimal.NewFromInt(250)) {
			t.Errorf("expected average 250, got %s", got.AveragePaymentAmount)
		}
		if math.Abs(got.OnTimePaymentRate-0.75) > 1e-9 {
			t.Errorf("expected on-time rate 0.75, got %f", got.OnTimePaymentRate)
		}
		if got.MemberSince != "3months" {
			t.Errorf("expected 3months, got %s", got.MemberSince)
		}
	})

	t.Run("fractional_average", func(t *testing.T) {
		payments := []PaymentEntry{{Amount: 100, Status: StatusPending}, {Amount: 101, Status: StatusPending}}

		got := ComputeMemberStats(payments, now, now)

		if got.AveragePaymentAmount.String() != "100.5" {
			t.Errorf("expected average 100.5, got %s", got.AveragePaymentAmount)
		}
		if got.OnTimePaymentRate != 0 {
			t.Errorf("expected zero on-time rate, got %f", got.OnTimePaymentRate)
		}
	})
}

func TestFormatTenure(t *testing.T) {
	now := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		days int
		want string
	}{
		{0, "0days"},
		{29, "29days"},
		{30, "1months"},
		{364, "12months"},
		{365, "1years"},
		{395, "1years1months"},
		{800, "2years2months"},
		{730, "2years"},
	}
	for _, tt := range tests {
		if got := FormatTenure(now.AddDate(0, 0, -tt.days), now); got != tt.want {
			t.Errorf("days=%d: expected %s, got %s", tt.days, tt.want, got)
		}
	}

	if got := FormatTenure(now.AddDate(0, 0, 5), now); got != "0days" {
		t.Errorf("future join date: expected 0days, got %s", got)
	}
}
