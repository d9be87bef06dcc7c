// Package reconcile derives balances, payment statuses and member statistics
// from transaction and payment records. It performs no I/O: callers fetch the
// records, convert them to the entry types declared here, and persist
// whatever the functions return.
package reconcile

import (
	"fmt"
	"regexp"
	"strings"
)

// PrepayMarker is the token that introduces a prepayment interval inside a
// payment description, e.g. "預繳 202401-202403".
const PrepayMarker = "預繳"

var (
	prepayPattern = regexp.MustCompile(PrepayMarker + `[\s\p{Zs}]*(\d{6})-(\d{6})[\s\p{Zs}]*$`)
	monthCodeRe   = regexp.MustCompile(`^\d{4}(0[1-9]|1[0-2])$`)
	billingRe     = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)
	isoDateRe     = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])-(0[1-9]|[12]\d|3[01])$`)
)

// Interval is an inclusive range of billing months in YYYYMM form.
type Interval struct {
	Start string `json:"start_month"`
	End   string `json:"end_month"`
}

// Covers reports whether monthCode (YYYYMM) falls inside the interval.
// Both sides are fixed-width zero-padded codes, so string order is month order.
func (iv Interval) Covers(monthCode string) bool {
	return iv.Start <= monthCode && monthCode <= iv.End
}

// Months returns the number of billing months the interval spans.
func (iv Interval) Months() int {
	var sy, sm, ey, em int
	if _, err := fmt.Sscanf(iv.Start, "%4d%2d", &sy, &sm); err != nil {
		return 0
	}
	if _, err := fmt.Sscanf(iv.End, "%4d%2d", &ey, &em); err != nil {
		return 0
	}
	n := (ey-sy)*12 + (em - sm) + 1
	if n < 0 {
		return 0
	}
	return n
}

// EncodePrepayment renders a prepayment interval into description form.
// The caller guarantees start <= end.
func EncodePrepayment(start, end string) string {
	return PrepayMarker + " " + start + "-" + end
}

// DecodePrepayment extracts the interval encoded in a description. The second
// return value is false when the marker is missing, the trailing pattern is
// not exactly two six-digit codes joined by '-', or start sorts after end.
// Any Unicode space separator, such as U+3000, counts as whitespace around
// the interval. A failed decode means "not a structured prepayment", never
// an error.
func DecodePrepayment(description string) (Interval, bool) {
	m := prepayPattern.FindStringSubmatch(description)
	if m == nil {
		return Interval{}, false
	}
	iv := Interval{Start: m[1], End: m[2]}
	if !IsMonthCode(iv.Start) || !IsMonthCode(iv.End) || iv.Start > iv.End {
		return Interval{}, false
	}
	return iv, true
}

// HasPrepayMarker reports whether s mentions the prepayment marker at all,
// regardless of whether a well-formed interval follows it.
func HasPrepayMarker(s string) bool {
	return strings.Contains(s, PrepayMarker)
}

// IsMonthCode reports whether s is a YYYYMM code with a valid month.
func IsMonthCode(s string) bool {
	return monthCodeRe.MatchString(s)
}

// IsBillingMonth reports whether s is a YYYY-MM billing month.
func IsBillingMonth(s string) bool {
	return billingRe.MatchString(s)
}

// IsISODate reports whether s looks like a YYYY-MM-DD calendar day.
func IsISODate(s string) bool {
	return isoDateRe.MatchString(s)
}

// MonthCode converts a YYYY-MM billing month into its YYYYMM code.
func MonthCode(billingMonth string) string {
	return strings.Replace(billingMonth, "-", "", 1)
}

// BillingMonthFromCode converts a YYYYMM code into a YYYY-MM billing month.
func BillingMonthFromCode(code string) string {
	if len(code) != 6 {
		return code
	}
	return code[:4] + "-" + code[4:]
}

// BillingMonthOf returns the YYYY-MM month of a YYYY-MM-DD date.
func BillingMonthOf(date string) string {
	if len(date) < 7 {
		return date
	}
	return date[:7]
}
