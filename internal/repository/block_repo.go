package repository

import (
	"Amoria/internal/model"
	"context"

	"gorm.io/gorm"
)

type BlockRepo interface {
	// ExistsEither 任意一方拉黑另一方即成立
	ExistsEither(ctx context.Context, userA, userB uint64) (bool, error)
	Create(ctx context.Context, blockerID, blockedID uint64) error
	Delete(ctx context.Context, blockerID, blockedID uint64) error
}

type blockRepoImpl struct {
	db *gorm.DB
}

func NewBlockRepo(db *gorm.DB) BlockRepo {
	return &blockRepoImpl{db: db}
}

func (s *blockRepoImpl) ExistsEither(ctx context.Context, userA, userB uint64) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.UserBlock{}).
		Where("(blocker_id = ? AND blocked_id = ?) OR (blocker_id = ? AND blocked_id = ?)",
			userA, userB, userB, userA).
		Count(&count).Error
	return count > 0, err
}

func (s *blockRepoImpl) Create(ctx context.Context, blockerID, blockedID uint64) error {
	block := &model.UserBlock{BlockerID: blockerID, BlockedID: blockedID}
	return s.db.WithContext(ctx).Create(block).Error
}

func (s *blockRepoImpl) Delete(ctx context.Context, blockerID, blockedID uint64) error {
	return s.db.WithContext(ctx).
		Where("blocker_id = ? AND blocked_id = ?", blockerID, blockedID).
		Delete(&model.UserBlock{}).Error
}
