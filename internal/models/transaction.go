package models

import "groupledger/internal/reconcile"

// TransactionType represents the type of transaction
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// Transaction is a group-scoped income or expense. Amount is in minor
// currency units and Date is a YYYY-MM-DD calendar day.
type Transaction struct {
	Base
	GroupID      string          `gorm:"type:uuid;not null;index:idx_tx_group_date" json:"group_id"`
	AuthorUserID string          `gorm:"type:uuid;not null;index" json:"author_user_id"`
	Type         TransactionType `gorm:"size:16;not null" json:"type"`
	Amount       int64           `gorm:"type:bigint;not null" json:"amount"`
	Date         string          `gorm:"size:10;not null;index:idx_tx_group_date" json:"date"`
	Title        string          `gorm:"size:100;not null" json:"title"`
	Description  string          `gorm:"size:500" json:"description"`

	// PaymentDetached is set when the correlated payment was deleted on its
	// own. The repair job does not recreate payments for such transactions.
	PaymentDetached bool `gorm:"not null;default:false" json:"payment_detached"`
}

// Entry converts the transaction into the reconciliation engine's form.
func (t *Transaction) Entry() reconcile.TransactionEntry {
	return reconcile.TransactionEntry{
		ID:       t.ID,
		Kind:     reconcile.Kind(t.Type),
		Amount:   t.Amount,
		Date:     t.Date,
		Title:    t.Title,
		AuthorID: t.AuthorUserID,
	}
}

// TransactionEntries converts a slice of transactions.
func TransactionEntries(txs []Transaction) []reconcile.TransactionEntry {
	out := make([]reconcile.TransactionEntry, len(txs))
	for i := range txs {
		out[i] = txs[i].Entry()
	}
	return out
}
