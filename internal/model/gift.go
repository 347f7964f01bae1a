package model

import "time"

// Gift 礼物商品表
type Gift struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"type:varchar(50);not null" json:"name"`
	Cost      int64     `gorm:"not null" json:"cost"` // 单价（金币）
	ImageURL  string    `gorm:"type:varchar(512)" json:"imageUrl"`
	IsActive  bool      `gorm:"type:tinyint(1);default:1;index" json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Gift) TableName() string { return "gifts" }
