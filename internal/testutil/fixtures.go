package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"groupledger/internal/models"
	"groupledger/internal/reconcile"
	"groupledger/internal/uuid"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	n := nextID()
	return CreateTestUserWithEmail(t, db, fmt.Sprintf("user%d@test.com", n), fmt.Sprintf("User %d", n))
}

// CreateTestUserWithEmail creates a user with the given email and display name.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email, displayName string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:       email,
		Password:    string(hash),
		DisplayName: displayName,
		IsActive:    true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestGroup creates a group with owner as its only (admin) member.
func CreateTestGroup(t *testing.T, db *gorm.DB, owner *models.User) *models.Group {
	t.Helper()

	group := &models.Group{
		Name:          fmt.Sprintf("Test Group %d", nextID()),
		CreatedBy:     owner.ID,
		InviteCode:    uuid.InviteCode(),
		MonthlyAmount: 1000,
		BillingCycle:  models.BillingCycleMonthly,
		AllowPrepay:   true,
	}
	if err := db.Create(group).Error; err != nil {
		t.Fatalf("failed to create test group: %v", err)
	}
	AddTestMember(t, db, group, owner, models.MemberRoleAdmin)
	return group
}

// AddTestMember adds user to group with the given role, joined now.
func AddTestMember(t *testing.T, db *gorm.DB, group *models.Group, user *models.User, role models.MemberRole) *models.GroupMember {
	t.Helper()
	return AddTestMemberJoinedAt(t, db, group, user, role, time.Now())
}

// AddTestMemberJoinedAt adds user to group with an explicit join time.
func AddTestMemberJoinedAt(t *testing.T, db *gorm.DB, group *models.Group, user *models.User, role models.MemberRole, joinedAt time.Time) *models.GroupMember {
	t.Helper()

	member := &models.GroupMember{
		GroupID:  group.ID,
		UserID:   user.ID,
		Role:     role,
		JoinedAt: joinedAt,
	}
	if err := db.Create(member).Error; err != nil {
		t.Fatalf("failed to add test member: %v", err)
	}
	return member
}

// CreateTestTransaction stores a transaction directly, bypassing the
// payment synchronizer.
func CreateTestTransaction(t *testing.T, db *gorm.DB, groupID, authorID string, txType models.TransactionType, amount int64, date string) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		GroupID:      groupID,
		AuthorUserID: authorID,
		Type:         txType,
		Amount:       amount,
		Date:         date,
		Title:        fmt.Sprintf("Test Transaction %d", nextID()),
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// CreateTestPayment stores a payment record directly. An empty billing month
// is derived from date.
func CreateTestPayment(t *testing.T, db *gorm.DB, groupID, memberID string, amount int64, date, billingMonth, description string) *models.MemberPayment {
	t.Helper()

	if billingMonth == "" {
		billingMonth = reconcile.BillingMonthOf(date)
	}
	payment := &models.MemberPayment{
		GroupID:      groupID,
		MemberID:     memberID,
		Amount:       amount,
		PaymentDate:  date,
		BillingMonth: billingMonth,
		Description:  description,
		Status:       models.PaymentStatusPaid,
	}
	if err := db.Create(payment).Error; err != nil {
		t.Fatalf("failed to create test payment: %v", err)
	}
	return payment
}

// LinkPayment sets the transaction back-reference on a stored payment.
func LinkPayment(t *testing.T, db *gorm.DB, payment *models.MemberPayment, transactionID string) {
	t.Helper()

	payment.TransactionID = &transactionID
	if err := db.Model(payment).Update("transaction_id", transactionID).Error; err != nil {
		t.Fatalf("failed to link test payment: %v", err)
	}
}
