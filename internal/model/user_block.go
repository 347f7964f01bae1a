package model

import "time"

// UserBlock 拉黑关系（单向记录，发消息时双向校验）
type UserBlock struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	BlockerID uint64    `gorm:"uniqueIndex:idx_blocker_blocked" json:"blockerId"`
	BlockedID uint64    `gorm:"uniqueIndex:idx_blocker_blocked;index" json:"blockedId"`
	CreatedAt time.Time `json:"createdAt"`
}

func (UserBlock) TableName() string { return "user_blocks" }
