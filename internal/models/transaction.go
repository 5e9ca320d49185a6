package models

import (
	"math"
	"time"

	"finance-core/pkg/common"
)

// Transaction statuses. A record only ever moves forward:
// PENDING -> PROCESSING -> COMPLETED | FAILED. PROCESSING is re-entered
// on each retry attempt.
const (
	StatusPending    = "PENDING"
	StatusProcessing = "PROCESSING"
	StatusCompleted  = "COMPLETED"
	StatusFailed     = "FAILED"
)

// TrxTypeStandard is the default transaction type. The column is an open
// string enum; callers may define their own types.
const TrxTypeStandard = "STANDARD"

type Transaction struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	TrxType     string    `gorm:"column:transaction_type;size:50;not null;default:STANDARD" json:"transaction_type"`
	Amount      *float64  `gorm:"column:amount;type:decimal(20,2)" json:"amount"`
	Currency    string    `gorm:"column:currency;size:3;not null" json:"currency"`
	Description string    `gorm:"column:description;type:text" json:"description"`
	Reference   string    `gorm:"column:reference;size:255" json:"reference"`
	Status      string    `gorm:"column:status;size:20;not null;default:PENDING;index" json:"status"`
	AccountID   string    `gorm:"column:account_id;size:64;not null;index" json:"account_id"`
	BatchID     *string   `gorm:"column:batch_id;size:64;index" json:"batch_id"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Transaction) TableName() string {
	return "transactions"
}

// Saved reports whether the record has been persisted at least once.
func (t *Transaction) Saved() bool {
	return t.ID != 0
}

// Validate checks the record's data-integrity rules without touching
// storage. Rules are checked in a fixed order so the reported error is
// deterministic: amount, then account, then status.
func (t *Transaction) Validate() error {
	if t.Amount == nil {
		return &common.ValidationError{Field: "amount", Message: "amount is required"}
	}
	if math.IsNaN(*t.Amount) || math.IsInf(*t.Amount, 0) {
		return &common.ValidationError{Field: "amount", Message: "amount must be a finite number"}
	}
	if t.AccountID == "" {
		return &common.ValidationError{Field: "account_id", Message: "account_id is required"}
	}
	switch t.Status {
	case StatusPending, StatusProcessing, StatusCompleted, StatusFailed:
		return nil
	default:
		return &common.ValidationError{Field: "status", Message: "status must be one of PENDING, PROCESSING, COMPLETED, FAILED"}
	}
}
