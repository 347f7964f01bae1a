package consts

// 用户角色
const (
	RoleMale   = "male"
	RoleFemale = "female"
	RoleAdmin  = "admin"
)

// 会员等级
const (
	TierBasic  = "basic"
	TierSilver = "silver"
	TierGold   = "gold"
)

// 消息类型
const (
	MsgTypeText  = 1
	MsgTypeImage = 2
	MsgTypeHi    = 3
	MsgTypeGift  = 4
)

// 消息状态
const (
	MsgStatusSent      = 1
	MsgStatusDelivered = 2
	MsgStatusRead      = 3
)

// 亲密度计数权重：文本/打招呼/礼物计 1 点，图片计 2 点
// 产品侧未给出图片双倍的依据，当作可调策略常量而非规则
const (
	IntensityText  = 1
	IntensityImage = 2
	IntensityHi    = 1
	IntensityGift  = 1
)

// 流水方向
const (
	TxnDirectionDebit  = "debit"
	TxnDirectionCredit = "credit"
)

// 流水业务类型
const (
	TxnBizMessage     = "message"
	TxnBizHi          = "hi"
	TxnBizImage       = "image"
	TxnBizGift        = "gift"
	TxnBizDailyReward = "daily_reward"
	TxnBizEarning     = "earning"
)

// 实时事件类型
const (
	EventNewMessage    = "NEW_MESSAGE"
	EventBalanceUpdate = "BALANCE_UPDATE"
	EventLevelUp       = "INTIMACY_LEVEL_UP"
	EventReadReceipt   = "READ_RECEIPT"
)
