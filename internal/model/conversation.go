package model

import "time"

// Conversation 会话主表
type Conversation struct {
	ID             uint64     `gorm:"primaryKey;autoIncrement" json:"id"`
	PeerKey        string     `gorm:"uniqueIndex;type:varchar(64)" json:"peerKey"` // uid1_uid2，小号在前
	MaxMsgSeq      uint64     `gorm:"not null;default:0" json:"maxMsgSeq"`         // 会话内绝对序列号
	TotalMsgCount  uint64     `gorm:"not null;default:0" json:"totalMsgCount"`     // 带权总计数
	IntimacyLevel  int        `gorm:"not null;default:1" json:"intimacyLevel"`     // 由付费方计数决定，单调不降
	LastLevelUpAt  *time.Time `json:"lastLevelUpAt"`
	LastMsgContent string     `gorm:"type:varchar(255)" json:"lastMsgContent"`
	LastMsgType    int8       `gorm:"not null;default:1" json:"lastMsgType"`
	LastSenderID   uint64     `gorm:"not null;default:0" json:"lastSenderId"`
	LastMessageAt  time.Time  `gorm:"index" json:"lastMessageAt"`
	IsActive       bool       `gorm:"type:tinyint(1);default:1" json:"isActive"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

func (Conversation) TableName() string { return "conversations" }

// ConversationMember 会话成员表
// PaidMsgCount 是亲密度的唯一数据来源，只能原子自增，禁止读改写
type ConversationMember struct {
	ID             uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	ConversationID uint64    `gorm:"uniqueIndex:idx_conv_user" json:"conversationId"`
	UserID         uint64    `gorm:"uniqueIndex:idx_conv_user;index" json:"userId"`
	Role           string    `gorm:"type:varchar(16);not null" json:"role"`     // 入会时的用户角色快照
	PaidMsgCount   uint64    `gorm:"not null;default:0" json:"paidMsgCount"`    // 付费方带权消息计数
	UnreadCount    uint64    `gorm:"not null;default:0" json:"unreadCount"`     // 对端发来的未读数
	ReadMsgSeq     uint64    `gorm:"not null;default:0" json:"readMsgSeq"`      // 已读进度
	IsVisible      int8      `gorm:"not null;default:1;index" json:"isVisible"` // 会话列表可见性
	JoinedAt       time.Time `json:"joinedAt"`

	Conversation Conversation `gorm:"foreignKey:ConversationID;references:ID" json:"conversation"`
}

func (ConversationMember) TableName() string { return "conversation_members" }
