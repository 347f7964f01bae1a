package repository

import (
	"Amoria/internal/model"
	"context"

	"gorm.io/gorm"
)

type GiftRepo interface {
	ListActive(ctx context.Context) ([]*model.Gift, error)
	GetActiveByIds(ctx context.Context, giftIDs []uint64) ([]*model.Gift, error)
}

type giftRepoImpl struct {
	db *gorm.DB
}

func NewGiftRepo(db *gorm.DB) GiftRepo {
	return &giftRepoImpl{db: db}
}

// ListActive 礼物目录（仅上架）
func (s *giftRepoImpl) ListActive(ctx context.Context) ([]*model.Gift, error) {
	var gifts []*model.Gift
	err := s.db.WithContext(ctx).Where("is_active = 1").Order("cost ASC").Find(&gifts).Error
	return gifts, err
}

// GetActiveByIds 批量获取上架礼物，缺失项由调用方比对数量判定
func (s *giftRepoImpl) GetActiveByIds(ctx context.Context, giftIDs []uint64) ([]*model.Gift, error) {
	var gifts []*model.Gift
	err := s.db.WithContext(ctx).Where("id IN ? AND is_active = 1", giftIDs).Find(&gifts).Error
	return gifts, err
}
