package model

import (
	"time"
)

type User struct {
	ID                uint64  `gorm:"primaryKey"`
	Username          *string `gorm:"type:varchar(50);uniqueIndex:idx_username"`
	Password          *string `gorm:"type:varchar(255)"`
	Role              string  `gorm:"type:varchar(16);not null;index"` // male / female / admin
	MembershipTier    string  `gorm:"type:varchar(16);not null;default:'basic'"`
	CoinBalance       int64   `gorm:"not null;default:0"` // 仅通过 WalletRepo 的原子操作变更
	LastDailyRewardAt *time.Time
	IsBan             bool `gorm:"type:tinyint(1);default:0"`
	IsDelete          bool `gorm:"type:tinyint(1);default:0"`
	CreatedAt         time.Time
	UpdatedAt         time.Time

	UserDetail UserDetail `gorm:"foreignKey:UserID;references:ID"`
}

func (User) TableName() string {
	return "users"
}
