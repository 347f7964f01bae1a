package mongo

import (
	"time"
)

// Message MongoDB 消息明细模型
type Message struct {
	ID             string     `bson:"_id,omitempty" json:"id"`               // MongoDB 自动生成的 ObjectID
	ConversationID uint64     `bson:"conversation_id" json:"conversationId"` // 关联 MySQL 的会话 ID
	SenderID       uint64     `bson:"sender_id" json:"senderId"`             // 发送者 UID
	MsgType        int        `bson:"msg_type" json:"msgType"`               // 1-文本, 2-图片, 3-打招呼, 4-礼物
	Content        string     `bson:"content" json:"content"`                // 文本内容或消息预览
	Media          []Media    `bson:"media,omitempty" json:"media"`          // 图片附件
	Gifts          []GiftItem `bson:"gifts,omitempty" json:"gifts"`          // 礼物明细（下单时价格快照）
	Seq            uint64     `bson:"seq" json:"seq"`                        // 该消息在会话中的唯一绝对序号 (来自 MySQL)
	Status         int        `bson:"status" json:"status"`                  // 1-sent, 2-delivered, 3-read
	ReadAt         *time.Time `bson:"read_at,omitempty" json:"readAt"`
	CreatedAt      time.Time  `bson:"created_at" json:"createdAt"` // 消息发送时间
}

// Media 图片附件
type Media struct {
	MimeType string `bson:"mime_type" json:"mime_type"`
	MediaURL string `bson:"url" json:"url"`
	Width    int    `bson:"width" json:"width"`
	Height   int    `bson:"height" json:"height"`
}

// GiftItem 礼物条目，记录发送时的价格快照
type GiftItem struct {
	GiftID   uint64 `bson:"gift_id" json:"gift_id"`
	Name     string `bson:"name" json:"name"`
	Cost     int64  `bson:"cost" json:"cost"`
	ImageURL string `bson:"image_url" json:"image_url"`
}
