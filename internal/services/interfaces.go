package services

import (
	"context"

	"github.com/xuri/excelize/v2"

	"groupledger/internal/models"
	"groupledger/internal/pagination"
	"groupledger/internal/reconcile"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, displayName string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	SetActiveGroup(userID, groupID string) (*models.User, error)
	DisplayNames(userIDs []string) (map[string]string, error)
}

// GroupInput holds the fields supplied when creating a group.
type GroupInput struct {
	Name          string
	Description   string
	MonthlyAmount int64
	AllowPrepay   bool
}

// GroupSettings holds optional group fields to change. Nil means unchanged.
type GroupSettings struct {
	Name          *string
	Description   *string
	MonthlyAmount *int64
	BillingCycle  *models.BillingCycle
	AllowPrepay   *bool
}

// GroupServicer defines the contract for group membership and settings.
type GroupServicer interface {
	CreateGroup(userID string, input GroupInput) (*models.Group, error)
	GetGroup(userID, groupID string) (*models.Group, error)
	ListUserGroups(userID string) ([]models.Group, error)
	GetMembership(userID, groupID string) (*models.GroupMember, error)
	JoinGroup(userID, inviteCode string) (*models.Group, error)
	LeaveGroup(userID, groupID string) error
	RemoveMember(actorID, groupID, memberID string) error
	UpdateMemberRole(actorID, groupID, memberID string, role models.MemberRole) (*models.GroupMember, error)
	UpdateSettings(actorID, groupID string, settings GroupSettings) (*models.Group, error)
	SetMemberAmount(actorID, groupID, memberID string, amount *int64) (*models.GroupMember, error)
}

// TransactionInput holds the fields of a transaction write.
// PaymentDescription optionally carries a prepayment description for the
// payment record created alongside an income transaction.
type TransactionInput struct {
	Type               models.TransactionType
	Amount             int64
	Date               string
	Title              string
	Description        string
	PaymentDescription string
}

// TransactionResult is the outcome of creating a transaction. When
// PaymentSyncFailed is set the transaction was stored but its correlated
// payment record was not; the repair job will recreate it.
type TransactionResult struct {
	Transaction       *models.Transaction   `json:"transaction"`
	Payment           *models.MemberPayment `json:"payment,omitempty"`
	PaymentSyncFailed bool                  `json:"payment_sync_failed"`
}

// SyncReport describes what a transaction deletion did to payment records.
type SyncReport struct {
	TransactionID     string   `json:"transaction_id"`
	Linked            bool     `json:"linked"`
	DeletedPaymentIDs []string `json:"deleted_payment_ids"`
	FlaggedPaymentIDs []string `json:"flagged_payment_ids,omitempty"`
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	FromDate *string
	ToDate   *string
	Type     *models.TransactionType
	AuthorID *string
}

// TransactionServicer defines the contract for group transactions and their
// paired payment records.
type TransactionServicer interface {
	CreateTransaction(userID, groupID string, input TransactionInput) (*TransactionResult, error)
	GetTransaction(userID, groupID, transactionID string) (*models.Transaction, error)
	ListTransactions(userID, groupID string, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	UpdateTransaction(userID, groupID, transactionID string, input TransactionInput) (*models.Transaction, error)
	DeleteTransaction(userID, groupID, transactionID string) (*SyncReport, error)
}

// PaymentInput holds the fields of a manually recorded payment.
type PaymentInput struct {
	MemberID      string
	Amount        int64
	PaymentDate   string
	BillingMonth  string
	Description   string
	Status        models.PaymentStatus
	CoverageStart string
	CoverageEnd   string
}

// RepairReport lists the payment records created by the repair job.
type RepairReport struct {
	GroupID            string   `json:"group_id"`
	ScannedIncome      int      `json:"scanned_income"`
	CreatedPaymentIDs  []string `json:"created_payment_ids"`
	SkippedAmbiguous   int      `json:"skipped_ambiguous"`
	FailedTransactions []string `json:"failed_transactions,omitempty"`
}

// PaymentServicer defines the contract for member payment records.
type PaymentServicer interface {
	ListMemberPayments(userID, groupID, memberID string) ([]models.MemberPayment, error)
	CreatePayment(userID, groupID string, input PaymentInput) (*models.MemberPayment, error)
	DeletePayment(userID, groupID, paymentID string) error
	GetPaymentStatus(userID, groupID, memberID, month string) (*reconcile.PaymentStatus, error)
	GetMemberStats(userID, groupID, memberID string) (*reconcile.MemberStats, error)
	ListFlaggedPayments(userID, groupID string) ([]models.MemberPayment, error)
	ClearReviewFlag(userID, groupID, paymentID string) (*models.MemberPayment, error)
	RepairOrphans(groupID string) (*RepairReport, error)
}

// RecentTransaction is a transaction enriched with its author's display name.
type RecentTransaction struct {
	models.Transaction
	AuthorName string `json:"author_name"`
}

// TransactionOverview summarises one month of group activity.
type TransactionOverview struct {
	Month   string              `json:"month"`
	Income  int64               `json:"income"`
	Expense int64               `json:"expense"`
	Net     int64               `json:"net"`
	Recent  []RecentTransaction `json:"recent"`
}

// DashboardSummary is the derived view a group's home screen renders.
// It is recomputed on every request. Degraded names the parts that fell back
// to their default because a read failed.
type DashboardSummary struct {
	GroupID       string                  `json:"group_id"`
	Year          int                     `json:"year"`
	Balance       reconcile.BalanceSeries `json:"balance"`
	Overview      TransactionOverview     `json:"overview"`
	PaymentStatus reconcile.PaymentStatus `json:"payment_status"`
	Degraded      []string                `json:"degraded,omitempty"`
}

// DashboardServicer defines the contract for derived dashboard reads.
type DashboardServicer interface {
	GetDashboard(ctx context.Context, userID, groupID string, year int) (*DashboardSummary, error)
	GetBalanceHistory(ctx context.Context, userID, groupID string, year int) (*reconcile.BalanceSeries, error)
}

// ReportServicer defines the contract for spreadsheet exports.
type ReportServicer interface {
	ExportGroupLedger(ctx context.Context, userID, groupID string, year int) (*excelize.File, string, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID, groupID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
}
