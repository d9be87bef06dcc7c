package reconcile

import (
	"strconv"
	"time"
)

// BalanceSeries is a month-by-month running balance for one calendar year.
// Labels and Values always have the same length.
type BalanceSeries struct {
	Year            int      `json:"year"`
	StartingBalance int64    `json:"starting_balance"`
	Labels          []string `json:"labels"`
	Values          []int64  `json:"values"`
}

// Final returns the last balance in the series, or the starting balance when
// the series is empty.
func (s BalanceSeries) Final() int64 {
	if len(s.Values) == 0 {
		return s.StartingBalance
	}
	return s.Values[len(s.Values)-1]
}

// SignedAmount is +amount for income and -amount for expense.
func SignedAmount(t TransactionEntry) int64 {
	switch t.Kind {
	case KindIncome:
		return t.Amount
	case KindExpense:
		return -t.Amount
	}
	return 0
}

// NetTotal sums the signed amounts of txs.
func NetTotal(txs []TransactionEntry) int64 {
	var total int64
	for _, t := range txs {
		total += SignedAmount(t)
	}
	return total
}

// MonthlyBalances folds the year's transactions into twelve running balances
// starting from starting. Transactions dated outside year are ignored. When
// year is now's year the series stops at now's month.
func MonthlyBalances(year int, starting int64, txs []TransactionEntry, now time.Time) BalanceSeries {
	var deltas [12]int64
	prefix := strconv.Itoa(year) + "-"
	for _, t := range txs {
		if len(t.Date) < 7 || t.Date[:5] != prefix {
			continue
		}
		m, err := strconv.Atoi(t.Date[5:7])
		if err != nil || m < 1 || m > 12 {
			continue
		}
		deltas[m-1] += SignedAmount(t)
	}

	labels := make([]string, 0, 12)
	values := make([]int64, 0, 12)
	running := starting
	for m := 1; m <= 12; m++ {
		running += deltas[m-1]
		labels = append(labels, MonthLabel(time.Month(m)))
		values = append(values, running)
	}

	if year == now.Year() {
		n := int(now.Month())
		labels = labels[:n]
		values = values[:n]
	}

	return BalanceSeries{
		Year:            year,
		StartingBalance: starting,
		Labels:          labels,
		Values:          values,
	}
}

// MonthLabel is the three-letter English label of m.
func MonthLabel(m time.Month) string {
	return m.String()[:3]
}
