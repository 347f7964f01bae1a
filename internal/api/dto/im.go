package dto

import (
	"Amoria/internal/pkg/mongo"
	"time"
)

// SendMessageReq 发送消息请求体（文本 / 图片）
type SendMessageReq struct {
	ConversationID uint64        `json:"conversation_id"`
	TargetUserID   uint64        `json:"target_user_id"`
	MsgType        int           `json:"msg_type" binding:"required"` // 1-文本, 2-图片
	Content        string        `json:"content"`
	Media          []mongo.Media `json:"media"`
}

// SendHiReq 打招呼请求体
type SendHiReq struct {
	TargetUserID uint64 `json:"target_user_id" binding:"required"`
	Content      string `json:"content"` // 为空时使用默认招呼语
}

// SendGiftReq 送礼请求体
type SendGiftReq struct {
	ConversationID uint64   `json:"conversation_id"`
	TargetUserID   uint64   `json:"target_user_id"`
	GiftIDs        []uint64 `json:"gift_ids" binding:"required,min=1"`
	Content        string   `json:"content"` // 随礼物附带的留言
}

// MessageDTO 消息明细响应
type MessageDTO struct {
	ID             string           `json:"id,omitempty"`
	ConversationID uint64           `json:"conversation_id"`
	SenderID       uint64           `json:"sender_id"`
	MsgType        int              `json:"msg_type"`
	Content        string           `json:"content"`
	Media          []mongo.Media    `json:"media,omitempty"`
	Gifts          []mongo.GiftItem `json:"gifts,omitempty"`
	Seq            uint64           `json:"seq"`
	Status         int              `json:"status"`
	CreatedAt      time.Time        `json:"createdAt"`
}

// IntimacyDTO 亲密度进度
type IntimacyDTO struct {
	Level        int     `json:"level"`
	Label        string  `json:"label"`
	PaidMsgCount uint64  `json:"paid_msg_count"`
	NextLevelAt  *uint64 `json:"next_level_at,omitempty"` // 下一等级所需计数，满级为空
}

// LevelUpDTO 升级事件
type LevelUpDTO struct {
	ConversationID uint64 `json:"conversation_id"`
	Level          int    `json:"level"`
	Label          string `json:"label"`
}

// SendResultDTO 发送结果：消息本体 + 扣款后余额 + 亲密度进度
// Balance 仅付费方返回；LevelUp 仅在本次发送触发升级时返回
type SendResultDTO struct {
	Message  *MessageDTO  `json:"message"`
	Balance  *int64       `json:"balance,omitempty"`
	Cost     int64        `json:"cost"`
	Intimacy *IntimacyDTO `json:"intimacy,omitempty"`
	LevelUp  *LevelUpDTO  `json:"level_up,omitempty"`
}

// ConversationDTO 会话列表项响应
type ConversationDTO struct {
	ConversationID uint64    `json:"conversation_id"`
	PeerID         uint64    `json:"peer_id"`
	PeerNickname   string    `json:"peer_nickname"`
	PeerAvatarURL  string    `json:"peer_avatar_url"`
	IntimacyLevel  int       `json:"intimacy_level"`
	IntimacyLabel  string    `json:"intimacy_label"`
	LastMsgContent string    `json:"last_msg_content"`
	LastMsgType    int8      `json:"last_msg_type"`
	LastSenderID   uint64    `json:"last_sender_id"`
	LastMessageAt  time.Time `json:"lastMessageAt"`
	UnreadCount    uint64    `json:"unreadCount"`
}

// ReadReceiptDTO 已读回执推送
type ReadReceiptDTO struct {
	ConversationID uint64 `json:"conversation_id"`
	UserID         uint64 `json:"user_id"`
	ReadSeq        uint64 `json:"read_seq"`
	Type           string `json:"type"`
}

// MarkAsReadReq 标记为已读请求
type MarkAsReadReq struct {
	ConversationID uint64 `json:"conversation_id" binding:"required"`
	Sequence       uint64 `json:"sequence" binding:"required"` // 客户端当前看到的最后一条消息序号
}

// BlockReq 拉黑/取消拉黑请求
type BlockReq struct {
	TargetUserID uint64 `json:"target_user_id" binding:"required"`
}
