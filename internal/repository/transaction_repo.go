package repository

import (
	"Amoria/internal/model"
	"context"

	"gorm.io/gorm"
)

type TransactionRepo interface {
	Create(ctx context.Context, txn *model.CoinTransaction) error
	ListByUser(ctx context.Context, userID uint64, page, size int) ([]*model.CoinTransaction, int64, error)
}

type transactionRepoImpl struct {
	db *gorm.DB
}

func NewTransactionRepo(db *gorm.DB) TransactionRepo {
	return &transactionRepoImpl{db: db}
}

// Create 追加一条流水，永不更新
func (s *transactionRepoImpl) Create(ctx context.Context, txn *model.CoinTransaction) error {
	return s.db.WithContext(ctx).Create(txn).Error
}

// ListByUser 分页查询用户账单，按时间倒序
func (s *transactionRepoImpl) ListByUser(ctx context.Context, userID uint64, page, size int) ([]*model.CoinTransaction, int64, error) {
	var txns []*model.CoinTransaction
	var total int64

	query := s.db.WithContext(ctx).Model(&model.CoinTransaction{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Order("id DESC").
		Offset((page - 1) * size).
		Limit(size).
		Find(&txns).Error
	return txns, total, err
}
