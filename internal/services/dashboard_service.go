package services

import (
	"context"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	apperrors "groupledger/internal/errors"
	"groupledger/internal/logger"
	"groupledger/internal/metrics"
	"groupledger/internal/models"
	"groupledger/internal/reconcile"
)

const recentTransactionLimit = 5

// Dashboard parts, as named in DashboardSummary.Degraded.
const (
	partBalance         = "balance"
	partStartingBalance = "starting_balance"
	partOverview        = "overview"
	partAuthorNames     = "author_names"
	partPaymentStatus   = "payment_status"
)

// dashboardService computes derived group views. Nothing is cached; every
// call reads the store afresh.
type dashboardService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewDashboardService creates a new DashboardServicer.
func NewDashboardService(db *gorm.DB) DashboardServicer {
	return &dashboardService{db: db, now: time.Now}
}

// degradedSet collects the parts of a summary that fell back to defaults.
type degradedSet struct {
	mu    sync.Mutex
	parts []string
}

func (d *degradedSet) add(part, groupID string, err error) {
	metrics.DegradedReads.WithLabelValues(part).Inc()
	logger.Get().Warnw("dashboard read degraded",
		"part", part,
		"group_id", groupID,
		"error", err,
	)
	d.mu.Lock()
	d.parts = append(d.parts, part)
	d.mu.Unlock()
}

func (s *dashboardService) defaultSummary(groupID string, year int) *DashboardSummary {
	now := s.now()
	return &DashboardSummary{
		GroupID:       groupID,
		Year:          year,
		Balance:       reconcile.MonthlyBalances(year, 0, nil, now),
		Overview:      TransactionOverview{Month: overviewMonth(year, now), Recent: []RecentTransaction{}},
		PaymentStatus: reconcile.UnpaidStatus(reconcile.CurrentBillingMonth(now)),
	}
}

// overviewMonth is the current month for the current year, else December.
func overviewMonth(year int, now time.Time) string {
	if year == now.Year() {
		return reconcile.CurrentBillingMonth(now)
	}
	return strconv.Itoa(year) + "-12"
}

// GetDashboard builds the group summary for userID. Balance, overview and
// payment status are read concurrently; a failed part is replaced by its
// default and named in Degraded. A missing user or group id yields the
// default summary. Access errors propagate.
func (s *dashboardService) GetDashboard(ctx context.Context, userID, groupID string, year int) (*DashboardSummary, error) {
	if year == 0 {
		year = s.now().Year()
	}
	if userID == "" || groupID == "" {
		metrics.DegradedReads.WithLabelValues("dashboard").Inc()
		logger.Get().Warnw("dashboard requested without user or group", "user_id", userID, "group_id", groupID)
		return s.defaultSummary(groupID, year), nil
	}
	if _, err := loadMembership(s.db.WithContext(ctx), groupID, userID); err != nil {
		return nil, err
	}

	summary := s.defaultSummary(groupID, year)
	degraded := &degradedSet{}
	now := s.now()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		series, err := s.balanceSeries(gctx, groupID, year, degraded)
		if err != nil {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			degraded.add(partBalance, groupID, err)
			return nil
		}
		summary.Balance = series
		return nil
	})
	g.Go(func() error {
		overview, err := s.overview(gctx, groupID, overviewMonth(year, now), degraded)
		if err != nil {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			degraded.add(partOverview, groupID, err)
			return nil
		}
		summary.Overview = *overview
		return nil
	})
	g.Go(func() error {
		payments, err := memberPayments(s.db.WithContext(gctx), groupID, userID)
		if err != nil {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			degraded.add(partPaymentStatus, groupID, err)
			return nil
		}
		summary.PaymentStatus = reconcile.ResolvePaymentStatus(userID, reconcile.CurrentBillingMonth(now), models.PaymentEntries(payments))
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	summary.Degraded = degraded.parts
	return summary, nil
}

// GetBalanceHistory returns the group's running balance for year.
func (s *dashboardService) GetBalanceHistory(ctx context.Context, userID, groupID string, year int) (*reconcile.BalanceSeries, error) {
	if year == 0 {
		year = s.now().Year()
	}
	if userID == "" || groupID == "" {
		series := reconcile.MonthlyBalances(year, 0, nil, s.now())
		return &series, nil
	}
	if _, err := loadMembership(s.db.WithContext(ctx), groupID, userID); err != nil {
		return nil, err
	}

	series, err := s.balanceSeries(ctx, groupID, year, &degradedSet{})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &series, nil
}

// balanceSeries folds the year's transactions onto the balance carried in
// from earlier years. If the carried balance cannot be read it counts as zero.
func (s *dashboardService) balanceSeries(ctx context.Context, groupID string, year int, degraded *degradedSet) (reconcile.BalanceSeries, error) {
	db := s.db.WithContext(ctx)
	from, to := yearBounds(year)

	starting, err := startingBalance(db, groupID, from)
	if err != nil {
		if ctx.Err() != nil {
			return reconcile.BalanceSeries{}, ctx.Err()
		}
		degraded.add(partStartingBalance, groupID, err)
		starting = 0
	}

	txs, err := transactionsBetween(db, groupID, from, to)
	if err != nil {
		return reconcile.BalanceSeries{}, err
	}
	return reconcile.MonthlyBalances(year, starting, models.TransactionEntries(txs), s.now()), nil
}

func yearBounds(year int) (string, string) {
	y := strconv.Itoa(year)
	return y + "-01-01", y + "-12-31"
}

// startingBalance is the net of every transaction dated before from.
func startingBalance(db *gorm.DB, groupID, from string) (int64, error) {
	var rows []struct {
		Type  models.TransactionType
		Total int64
	}
	err := db.Model(&models.Transaction{}).
		Select("type, COALESCE(SUM(amount), 0) AS total").
		Where("group_id = ? AND date < ?", groupID, from).
		Group("type").
		Scan(&rows).Error
	if err != nil {
		return 0, err
	}

	var balance int64
	for _, r := range rows {
		balance += reconcile.SignedAmount(reconcile.TransactionEntry{Kind: reconcile.Kind(r.Type), Amount: r.Total})
	}
	return balance, nil
}

func transactionsBetween(db *gorm.DB, groupID, from, to string) ([]models.Transaction, error) {
	var txs []models.Transaction
	err := db.Where("group_id = ? AND date >= ? AND date <= ?", groupID, from, to).
		Order("date ASC").Order("created_at ASC").
		Find(&txs).Error
	return txs, err
}

// overview totals one month and lists the group's latest transactions with
// their authors' names. Missing names degrade to empty strings.
func (s *dashboardService) overview(ctx context.Context, groupID, month string, degraded *degradedSet) (*TransactionOverview, error) {
	db := s.db.WithContext(ctx)

	monthTxs, err := transactionsBetween(db, groupID, month+"-01", month+"-31")
	if err != nil {
		return nil, err
	}
	ov := &TransactionOverview{Month: month, Recent: []RecentTransaction{}}
	for _, t := range monthTxs {
		switch t.Type {
		case models.TransactionTypeIncome:
			ov.Income += t.Amount
		case models.TransactionTypeExpense:
			ov.Expense += t.Amount
		}
	}
	ov.Net = ov.Income - ov.Expense

	var recent []models.Transaction
	if err := db.Where("group_id = ?", groupID).
		Order("date DESC").Order("created_at DESC").
		Limit(recentTransactionLimit).
		Find(&recent).Error; err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(recent))
	for _, t := range recent {
		ids = append(ids, t.AuthorUserID)
	}
	names, err := displayNames(db, ids)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		degraded.add(partAuthorNames, groupID, err)
		names = map[string]string{}
	}

	for _, t := range recent {
		ov.Recent = append(ov.Recent, RecentTransaction{Transaction: t, AuthorName: names[t.AuthorUserID]})
	}
	return ov, nil
}
