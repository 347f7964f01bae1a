package repository

import (
	"Amoria/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
)

type WalletRepo interface {
	// TryDebit 条件扣减：仅当余额足够时原子扣减，ok=false 表示余额不足
	TryDebit(ctx context.Context, userID uint64, amount int64) (newBalance int64, ok bool, err error)
	// Credit 加法入账，返回入账后的余额
	Credit(ctx context.Context, userID uint64, amount int64) (newBalance int64, err error)
	GetBalance(ctx context.Context, userID uint64) (int64, error)
	// TryClaimDailyReward 条件发放：仅当上次领取早于 dayStart 时入账并刷新领取时间
	TryClaimDailyReward(ctx context.Context, userID uint64, amount int64, dayStart, now time.Time) (newBalance int64, ok bool, err error)
}

type walletRepoImpl struct {
	db *gorm.DB
}

func NewWalletRepo(db *gorm.DB) WalletRepo {
	return &walletRepoImpl{db: db}
}

// TryDebit 单条带谓词的 UPDATE 完成"校验 + 扣减"，杜绝读后写竞态
// 扣减与读取新余额在同一事务内完成（与会话定序同款套路）
func (s *walletRepoImpl) TryDebit(ctx context.Context, userID uint64, amount int64) (int64, bool, error) {
	var newBalance int64
	var affected int64

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.User{}).
			Where("id = ? AND coin_balance >= ?", userID, amount).
			Update("coin_balance", gorm.Expr("coin_balance - ?", amount))
		if result.Error != nil {
			return result.Error
		}
		affected = result.RowsAffected
		if affected == 0 {
			return nil
		}

		return tx.Model(&model.User{}).Select("coin_balance").Where("id = ?", userID).Scan(&newBalance).Error
	})
	if err != nil {
		return 0, false, err
	}
	return newBalance, affected > 0, nil
}

// Credit 余额无上限，入账就是一条加法 UPDATE
func (s *walletRepoImpl) Credit(ctx context.Context, userID uint64, amount int64) (int64, error) {
	var newBalance int64

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.User{}).
			Where("id = ?", userID).
			Update("coin_balance", gorm.Expr("coin_balance + ?", amount))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return tx.Model(&model.User{}).Select("coin_balance").Where("id = ?", userID).Scan(&newBalance).Error
	})
	if err != nil {
		return 0, err
	}
	return newBalance, nil
}

func (s *walletRepoImpl) GetBalance(ctx context.Context, userID uint64) (int64, error) {
	var balance int64
	err := s.db.WithContext(ctx).Model(&model.User{}).
		Select("coin_balance").
		Where("id = ?", userID).
		Scan(&balance).Error
	return balance, err
}

// TryClaimDailyReward 把"今天是否已领"与入账合并为一条条件 UPDATE
// 与消息扣费同一套金钱纪律，双击/并发重复提交最多成功一次
func (s *walletRepoImpl) TryClaimDailyReward(ctx context.Context, userID uint64, amount int64, dayStart, now time.Time) (int64, bool, error) {
	var newBalance int64
	var affected int64

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.User{}).
			Where("id = ? AND (last_daily_reward_at IS NULL OR last_daily_reward_at < ?)", userID, dayStart).
			Updates(map[string]interface{}{
				"coin_balance":         gorm.Expr("coin_balance + ?", amount),
				"last_daily_reward_at": now,
			})
		if result.Error != nil {
			return result.Error
		}
		affected = result.RowsAffected
		if affected == 0 {
			return nil
		}

		return tx.Model(&model.User{}).Select("coin_balance").Where("id = ?", userID).Scan(&newBalance).Error
	})
	if err != nil {
		return 0, false, err
	}
	return newBalance, affected > 0, nil
}
