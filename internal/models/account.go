package models

import "time"

// Account is the chart-of-accounts entry a transaction posts against.
// Transaction.AccountID references Code, not the numeric primary key,
// so imported records can carry external account codes directly.
type Account struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Code      string    `gorm:"column:code;size:64;not null;uniqueIndex" json:"code"`
	Name      string    `gorm:"column:name;size:255;not null" json:"name"`
	Type      string    `gorm:"column:account_type;size:50;not null;default:ASSET" json:"account_type"`
	Currency  string    `gorm:"column:currency;size:3;not null" json:"currency"`
	Active    bool      `gorm:"column:active;not null;default:true" json:"active"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Account) TableName() string {
	return "accounts"
}
