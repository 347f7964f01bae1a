package service

import (
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	PaymentRequired     = 402
	NotFound            = 404
	InternalServerError = 500
)

var (
	ErrParamInvalid            = errors.New("参数错误")
	ErrUserNotFound            = errors.New("用户不存在")
	ErrUserBan                 = errors.New("用户已被封禁")
	ErrUserExist               = errors.New("用户已存在")
	ErrUserUsernameExist       = errors.New("用户名已存在")
	ErrPasswordIncorrect       = errors.New("密码错误")
	ErrMissingLoginCredentials = errors.New("缺少登录凭据")
	ErrTargetUserInvalid       = errors.New("目标用户无效")
	ErrTargetUserSelf          = errors.New("不能给自己发消息")
	ErrConversation            = errors.New("会话异常")
	ErrNotConversationMember   = errors.New("不是会话成员")
	ErrBlocked                 = errors.New("对方暂时无法接收你的消息")
	ErrBlockSelf               = errors.New("不能拉黑自己")
	ErrBlockExist              = errors.New("已拉黑该用户")
	ErrInsufficientBalance     = errors.New("金币余额不足")
	ErrGiftNotFound            = errors.New("礼物不存在或已下架")
	ErrGiftEmpty               = errors.New("礼物列表不能为空")
	ErrHiAlreadyContacted      = errors.New("已经打过招呼了")
	ErrMessageEmpty            = errors.New("消息内容不能为空")
	ErrMessageTooLong          = errors.New("消息内容过长")
	ErrRewardNotEligible       = errors.New("今日奖励已领取")
	UnauthorizedError          = errors.New("权限不足")
	UnExpectedError            = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:            BadRequest,
	ErrUserNotFound:            NotFound,
	ErrUserBan:                 Unauthorized,
	ErrUserExist:               BadRequest,
	ErrUserUsernameExist:       BadRequest,
	ErrPasswordIncorrect:       Unauthorized,
	ErrMissingLoginCredentials: Unauthorized,
	ErrTargetUserInvalid:       BadRequest,
	ErrTargetUserSelf:          BadRequest,
	ErrConversation:            BadRequest,
	ErrNotConversationMember:   Unauthorized,
	ErrBlocked:                 BadRequest,
	ErrBlockSelf:               BadRequest,
	ErrBlockExist:              BadRequest,
	ErrInsufficientBalance:     PaymentRequired,
	ErrGiftNotFound:            NotFound,
	ErrGiftEmpty:               BadRequest,
	ErrHiAlreadyContacted:      BadRequest,
	ErrMessageEmpty:            BadRequest,
	ErrMessageTooLong:          BadRequest,
	ErrRewardNotEligible:       BadRequest,
	UnauthorizedError:          Unauthorized,
	UnExpectedError:            InternalServerError,
}
