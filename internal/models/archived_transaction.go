package models

import "time"

// ArchivedTransaction mirrors Transaction for entries moved out of the hot
// table by the archive job. Archive rows get fresh auto-increment IDs; the
// original id is preserved in SourceID.
type ArchivedTransaction struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	SourceID    uint      `gorm:"column:source_id;not null;index" json:"source_id"`
	TrxType     string    `gorm:"column:transaction_type;size:50;not null" json:"transaction_type"`
	Amount      *float64  `gorm:"column:amount;type:decimal(20,2)" json:"amount"`
	Currency    string    `gorm:"column:currency;size:3;not null" json:"currency"`
	Description string    `gorm:"column:description;type:text" json:"description"`
	Reference   string    `gorm:"column:reference;size:255" json:"reference"`
	Status      string    `gorm:"column:status;size:20;not null" json:"status"`
	AccountID   string    `gorm:"column:account_id;size:64;not null;index" json:"account_id"`
	BatchID     *string   `gorm:"column:batch_id;size:64" json:"batch_id"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at" json:"updated_at"`
	ArchivedAt  time.Time `gorm:"column:archived_at;autoCreateTime" json:"archived_at"`
}

func (ArchivedTransaction) TableName() string {
	return "archived_transactions"
}
