package services

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	apperrors "groupledger/internal/errors"
	"groupledger/internal/models"
	"groupledger/internal/reconcile"
)

// Sheet names of the exported workbook.
const (
	SheetTransactions = "Transactions"
	SheetBalances     = "Balances"
	SheetMembers      = "Members"
)

// reportService builds spreadsheet exports from the same engine outputs the
// dashboard shows.
type reportService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewReportService creates a new ReportServicer.
func NewReportService(db *gorm.DB) ReportServicer {
	return &reportService{db: db, now: time.Now}
}

// ExportGroupLedger writes a workbook with the group's transactions for year,
// the monthly running balance, and per-member payment standing.
func (s *reportService) ExportGroupLedger(ctx context.Context, userID, groupID string, year int) (*excelize.File, string, error) {
	db := s.db.WithContext(ctx)
	if year == 0 {
		year = s.now().Year()
	}
	if _, err := loadMembership(db, groupID, userID); err != nil {
		return nil, "", err
	}

	var group models.Group
	if err := db.Preload("Members", func(db *gorm.DB) *gorm.DB { return db.Order("joined_at ASC") }).
		Preload("Members.User").
		First(&group, "id = ?", groupID).Error; err != nil {
		return nil, "", apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	from, to := yearBounds(year)
	starting, err := startingBalance(db, groupID, from)
	if err != nil {
		return nil, "", apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	txs, err := transactionsBetween(db, groupID, from, to)
	if err != nil {
		return nil, "", apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var payments []models.MemberPayment
	if err := db.Where("group_id = ?", groupID).
		Order("payment_date ASC").Order("created_at ASC").
		Find(&payments).Error; err != nil {
		return nil, "", apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	names := make(map[string]string, len(group.Members))
	for _, m := range group.Members {
		names[m.UserID] = memberName(&m.User)
	}

	f := excelize.NewFile()
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"E6F3FF"}, Pattern: 1},
	})
	if err != nil {
		return nil, "", apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	now := s.now()
	series := reconcile.MonthlyBalances(year, starting, models.TransactionEntries(txs), now)
	steps := []func() error{
		func() error { return writeTransactionsSheet(f, headerStyle, txs, names) },
		func() error { return writeBalancesSheet(f, headerStyle, series) },
		func() error { return writeMembersSheet(f, headerStyle, &group, payments, now) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return nil, "", apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, "", apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if idx, err := f.GetSheetIndex(SheetTransactions); err == nil {
		f.SetActiveSheet(idx)
	}

	filename := fmt.Sprintf("%s_%d_ledger.xlsx", cleanFileName(group.Name), year)
	return f, filename, nil
}

func memberName(u *models.User) string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Email
}

func cleanFileName(name string) string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' {
			return r
		}
		return '_'
	}, strings.TrimSpace(name))
	if cleaned == "" {
		return "group"
	}
	return cleaned
}

// writeRow writes values across one row starting at column A.
func writeRow(f *excelize.File, sheet string, row int, values ...interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

func writeHeader(f *excelize.File, sheet string, style int, headers ...interface{}) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	if err := writeRow(f, sheet, 1, headers...); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
		return err
	}
	lastCol, _, err := excelize.SplitCellName(last)
	if err != nil {
		return err
	}
	return f.SetColWidth(sheet, "A", lastCol, 16)
}

func writeTransactionsSheet(f *excelize.File, style int, txs []models.Transaction, names map[string]string) error {
	if err := writeHeader(f, SheetTransactions, style, "Date", "Type", "Title", "Amount", "Author", "Description"); err != nil {
		return err
	}
	for i, t := range txs {
		if err := writeRow(f, SheetTransactions, i+2,
			t.Date, string(t.Type), t.Title, reconcile.SignedAmount(t.Entry()), names[t.AuthorUserID], t.Description,
		); err != nil {
			return err
		}
	}
	return nil
}

func writeBalancesSheet(f *excelize.File, style int, series reconcile.BalanceSeries) error {
	if err := writeHeader(f, SheetBalances, style, "Month", "Balance"); err != nil {
		return err
	}
	if err := writeRow(f, SheetBalances, 2, "Opening", series.StartingBalance); err != nil {
		return err
	}
	for i := range series.Labels {
		if err := writeRow(f, SheetBalances, i+3, series.Labels[i], series.Values[i]); err != nil {
			return err
		}
	}
	return nil
}

func writeMembersSheet(f *excelize.File, style int, group *models.Group, payments []models.MemberPayment, now time.Time) error {
	if err := writeHeader(f, SheetMembers, style,
		"Member", "Role", "Dues", "Current Month", "Paid", "Total Paid", "Payments", "On-time Rate", "Member Since",
	); err != nil {
		return err
	}

	byMember := make(map[string][]reconcile.PaymentEntry)
	for i := range payments {
		byMember[payments[i].MemberID] = append(byMember[payments[i].MemberID], payments[i].Entry())
	}

	month := reconcile.CurrentBillingMonth(now)
	for i := range group.Members {
		m := &group.Members[i]
		entries := byMember[m.UserID]
		status := reconcile.ResolvePaymentStatus(m.UserID, month, entries)
		stats := reconcile.ComputeMemberStats(entries, m.JoinedAt, now)
		paid := "no"
		if status.Paid {
			paid = "yes"
		}
		if err := writeRow(f, SheetMembers, i+2,
			memberName(&m.User), string(m.Role), m.DuesAmount(group), month, paid,
			stats.TotalPaidAmount, stats.TotalPaymentCount, stats.OnTimePaymentRate, stats.MemberSince,
		); err != nil {
			return err
		}
	}
	return nil
}
