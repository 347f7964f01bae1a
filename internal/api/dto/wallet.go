package dto

import "time"

// BalanceDTO 余额响应
type BalanceDTO struct {
	Balance int64 `json:"balance"`
}

// TransactionDTO 账单明细项
type TransactionDTO struct {
	ID             uint64    `json:"id"`
	Direction      string    `json:"direction"`
	Amount         int64     `json:"amount"`
	BalanceAfter   int64     `json:"balance_after"`
	BizType        string    `json:"biz_type"`
	RelatedUserID  uint64    `json:"related_user_id,omitempty"`
	ConversationID uint64    `json:"conversation_id,omitempty"`
	Description    string    `json:"description"`
	CreatedAt      time.Time `json:"created_at"`
}

// TransactionPageDTO 账单分页响应
type TransactionPageDTO struct {
	Total int64             `json:"total"`
	List  []*TransactionDTO `json:"list"`
}

// TransactionSearchReq 管理端审计检索
type TransactionSearchReq struct {
	UserID    uint64     `json:"user_id" form:"user_id"`
	Direction string     `json:"direction" form:"direction"`
	BizType   string     `json:"biz_type" form:"biz_type"`
	Since     *time.Time `json:"since" form:"since"`
	Until     *time.Time `json:"until" form:"until"`
	From      int        `json:"from" form:"from"`
	Size      int        `json:"size" form:"size"`
}

// RewardStatusDTO 每日奖励状态
type RewardStatusDTO struct {
	Amount    int64 `json:"amount"`
	Claimable bool  `json:"claimable"`
}

// RewardClaimDTO 领取结果
type RewardClaimDTO struct {
	Amount  int64 `json:"amount"`
	Balance int64 `json:"balance"`
}

// GiftDTO 礼物目录项
type GiftDTO struct {
	ID       uint64 `json:"id"`
	Name     string `json:"name"`
	Cost     int64  `json:"cost"`
	ImageURL string `json:"image_url"`
}
