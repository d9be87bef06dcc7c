package reconcile

import (
	"testing"
)

func TestEncodeDecodePrepayment(t *testing.T) {
	pairs := [][2]string{
		{"202401", "202403"},
		{"202412", "202412"},
		{"202311", "202402"},
	}
	for _, p := range pairs {
		desc := EncodePrepayment(p[0], p[1])
		iv, ok := DecodePrepayment(desc)
		if !ok {
			t.Fatalf("decode %q failed", desc)
		}
		if want := (Interval{Start: p[0], End: p[1]}); iv != want {
			t.Errorf("decode %q: expected %+v, got %+v", desc, want, iv)
		}
	}

	if got := EncodePrepayment("202401", "202403"); got != "預繳 202401-202403" {
		t.Errorf("expected %q, got %q", "預繳 202401-202403", got)
	}
}

func TestDecodePrepayment(t *testing.T) {
	tests := []struct {
		name string
		desc string
		want Interval
		ok   bool
	}{
		{"plain", "預繳 202401-202403", Interval{"202401", "202403"}, true},
		{"surrounding_whitespace", "  預繳  202401-202403  ", Interval{"202401", "202403"}, true},
		{"no_space_after_marker", "預繳202405-202406", Interval{"202405", "202406"}, true},
		{"ideographic_space", "預繳\u3000202401-202403", Interval{"202401", "202403"}, true},
		{"trailing_ideographic_space", "預繳 202401-202403\u3000", Interval{"202401", "202403"}, true},
		{"trailing_nbsp", "預繳 202401-202403\u00a0", Interval{"202401", "202403"}, true},
		{"leading_text", "March dues 預繳 202403-202403", Interval{"202403", "202403"}, true},
		{"no_marker", "202401-202403", Interval{}, false},
		{"marker_only", "預繳", Interval{}, false},
		{"slash_separator", "預繳 202401/202403", Interval{}, false},
		{"tilde_separator", "預繳 202401~202403", Interval{}, false},
		{"short_code", "預繳 20241-202403", Interval{}, false},
		{"long_code", "預繳 202401-2024031", Interval{}, false},
		{"trailing_text", "預繳 202401-202403 thanks", Interval{}, false},
		{"bad_month", "預繳 202413-202414", Interval{}, false},
		{"reversed", "預繳 202405-202401", Interval{}, false},
		{"empty", "", Interval{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := DecodePrepayment(tt.desc)
			if ok != tt.ok {
				t.Fatalf("expected ok=%v, got %v", tt.ok, ok)
			}
			if got != tt.want {
				t.Errorf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestIntervalCovers(t *testing.T) {
	tests := []struct {
		iv    Interval
		month string
		want  bool
	}{
		{Interval{"202401", "202403"}, "202312", false},
		{Interval{"202401", "202403"}, "202401", true},
		{Interval{"202401", "202403"}, "202402", true},
		{Interval{"202401", "202403"}, "202403", true},
		{Interval{"202401", "202403"}, "202404", false},
		{Interval{"202406", "202406"}, "202406", true},
		{Interval{"202406", "202406"}, "202407", false},
	}
	for _, tt := range tests {
		if got := tt.iv.Covers(tt.month); got != tt.want {
			t.Errorf("%+v.Covers(%s): expected %v, got %v", tt.iv, tt.month, tt.want, got)
		}
	}
}

func TestIntervalMonths(t *testing.T) {
	tests := []struct {
		iv   Interval
		want int
	}{
		{Interval{"202401", "202403"}, 3},
		{Interval{"202406", "202406"}, 1},
		{Interval{"202311", "202402"}, 4},
		{Interval{"bogus", "202402"}, 0},
	}
	for _, tt := range tests {
		if got := tt.iv.Months(); got != tt.want {
			t.Errorf("%+v.Months(): expected %d, got %d", tt.iv, tt.want, got)
		}
	}
}

func TestMonthHelpers(t *testing.T) {
	if got := MonthCode("2024-02"); got != "202402" {
		t.Errorf("MonthCode: expected 202402, got %s", got)
	}
	if got := BillingMonthFromCode("202402"); got != "2024-02" {
		t.Errorf("BillingMonthFromCode: expected 2024-02, got %s", got)
	}
	if got := BillingMonthOf("2024-02-29"); got != "2024-02" {
		t.Errorf("BillingMonthOf: expected 2024-02, got %s", got)
	}

	checks := []struct {
		name string
		got  bool
		want bool
	}{
		{"IsISODate(2024-02-29)", IsISODate("2024-02-29"), true},
		{"IsISODate(2024-2-29)", IsISODate("2024-2-29"), false},
		{"IsISODate(2024-13-01)", IsISODate("2024-13-01"), false},
		{"IsBillingMonth(2024-12)", IsBillingMonth("2024-12"), true},
		{"IsBillingMonth(202412)", IsBillingMonth("202412"), false},
		{"IsMonthCode(202412)", IsMonthCode("202412"), true},
		{"IsMonthCode(202400)", IsMonthCode("202400"), false},
		{"HasPrepayMarker(marker)", HasPrepayMarker("預繳 garbage"), true},
		{"HasPrepayMarker(plain)", HasPrepayMarker("monthly dues"), false},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s: expected %v, got %v", c.name, c.want, c.got)
		}
	}
}

func TestPaymentEntryCoverage(t *testing.T) {
	t.Run("structured_fields_win", func(t *testing.T) {
		p := PaymentEntry{CoverageStart: "202405", CoverageEnd: "202406", Description: "預繳 202401-202403"}
		iv, ok := p.Coverage()
		if !ok {
			t.Fatal("expected coverage")
		}
		if want := (Interval{"202405", "202406"}); iv != want {
			t.Errorf("expected %+v, got %+v", want, iv)
		}
	})

	t.Run("legacy_description", func(t *testing.T) {
		p := PaymentEntry{Description: "預繳 202401-202403"}
		iv, ok := p.Coverage()
		if !ok {
			t.Fatal("expected coverage")
		}
		if want := (Interval{"202401", "202403"}); iv != want {
			t.Errorf("expected %+v, got %+v", want, iv)
		}
	})

	t.Run("malformed_marker_is_not_prepayment", func(t *testing.T) {
		p := PaymentEntry{Description: "預繳 Jan-Mar"}
		if p.IsPrepayment() {
			t.Error("expected malformed marker not to count as prepayment")
		}
	})
}
