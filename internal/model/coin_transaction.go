package model

import "time"

// CoinTransaction 金币流水（审计账目）
// 只追加不修改；BalanceAfter 是写入时刻的余额快照，不做事后重算。
// 余额的权威来源是 users.coin_balance，流水仅用于账单展示与审计。
type CoinTransaction struct {
	ID             uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID         uint64    `gorm:"not null;index" json:"userId"`
	Direction      string    `gorm:"type:varchar(8);not null" json:"direction"` // debit / credit
	Amount         int64     `gorm:"not null" json:"amount"`
	BalanceAfter   int64     `gorm:"not null" json:"balanceAfter"`
	BizType        string    `gorm:"type:varchar(20);not null;index" json:"bizType"`
	RelatedUserID  uint64    `gorm:"index" json:"relatedUserId"`
	ConversationID uint64    `gorm:"index" json:"conversationId"`
	Description    string    `gorm:"type:varchar(255)" json:"description"`
	CreatedAt      time.Time `gorm:"index" json:"createdAt"`
}

func (CoinTransaction) TableName() string { return "coin_transactions" }
