package service

import (
	"Amoria/internal/api/config"
	"Amoria/internal/api/dto"
	"Amoria/internal/model"
	"Amoria/internal/pkg/consts"
	"Amoria/internal/pkg/es"
	"Amoria/internal/repository"
	"context"
	log "log/slog"
	"time"
)

// RewardService 每日奖励
// 领取的幂等性由一条带谓词的 UPDATE 保证：同一自然日内只有一次能命中，
// 与扣款走同一套原子更新纪律，双击/重放都不会重复发放
type RewardService interface {
	ClaimDailyReward(ctx context.Context, userID uint64) (*dto.RewardClaimDTO, error)
	GetRewardStatus(ctx context.Context, userID uint64) (*dto.RewardStatusDTO, error)
}

type rewardServiceImpl struct {
	userRepo   repository.UserRepo
	walletRepo repository.WalletRepo
	txnRepo    repository.TransactionRepo
	esRepo     es.TransactionRepo
}

func NewRewardService(userRepo repository.UserRepo, walletRepo repository.WalletRepo, txnRepo repository.TransactionRepo, esRepo es.TransactionRepo) RewardService {
	return &rewardServiceImpl{
		userRepo:   userRepo,
		walletRepo: walletRepo,
		txnRepo:    txnRepo,
		esRepo:     esRepo,
	}
}

// ClaimDailyReward 领取当日奖励
func (s *rewardServiceImpl) ClaimDailyReward(ctx context.Context, userID uint64) (*dto.RewardClaimDTO, error) {
	user, err := s.userRepo.GetUserById(ctx, userID)
	if err != nil || user == nil {
		return nil, ErrUserNotFound
	}
	if user.Role != consts.RoleMale {
		return nil, UnauthorizedError
	}

	amount := config.Cfg.Billing.DailyReward
	now := time.Now().In(rewardLocation())
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	newBalance, ok, err := s.walletRepo.TryClaimDailyReward(ctx, userID, amount, dayStart, now)
	if err != nil {
		log.Error("奖励发放失败", "userId", userID, "error", err)
		return nil, UnExpectedError
	}
	if !ok {
		return nil, ErrRewardNotEligible
	}

	recordTransaction(ctx, s.txnRepo, s.esRepo, &model.CoinTransaction{
		UserID:       userID,
		Direction:    consts.TxnDirectionCredit,
		Amount:       amount,
		BalanceAfter: newBalance,
		BizType:      consts.TxnBizDailyReward,
		Description:  "每日签到奖励",
	})

	log.Info("每日奖励已发放", "userId", userID, "amount", amount, "balance", newBalance)
	return &dto.RewardClaimDTO{Amount: amount, Balance: newBalance}, nil
}

// GetRewardStatus 查询今日是否可领取
func (s *rewardServiceImpl) GetRewardStatus(ctx context.Context, userID uint64) (*dto.RewardStatusDTO, error) {
	user, err := s.userRepo.GetUserById(ctx, userID)
	if err != nil || user == nil {
		return nil, ErrUserNotFound
	}

	status := &dto.RewardStatusDTO{Amount: config.Cfg.Billing.DailyReward}
	if user.Role != consts.RoleMale {
		return status, nil
	}

	now := time.Now().In(rewardLocation())
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	status.Claimable = user.LastDailyRewardAt == nil || user.LastDailyRewardAt.Before(dayStart)
	return status, nil
}

// rewardLocation 自然日按固定参考时区切分，避免跨时区用户的边界歧义
func rewardLocation() *time.Location {
	loc, err := time.LoadLocation(config.Cfg.Billing.RewardTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
