package service

import (
	"Amoria/internal/repository"
	"context"
	log "log/slog"
)

// BlockService 拉黑关系管理
type BlockService interface {
	Block(ctx context.Context, blockerID, targetID uint64) error
	Unblock(ctx context.Context, blockerID, targetID uint64) error
}

type blockServiceImpl struct {
	userRepo  repository.UserRepo
	blockRepo repository.BlockRepo
}

func NewBlockService(userRepo repository.UserRepo, blockRepo repository.BlockRepo) BlockService {
	return &blockServiceImpl{userRepo: userRepo, blockRepo: blockRepo}
}

func (s *blockServiceImpl) Block(ctx context.Context, blockerID, targetID uint64) error {
	if blockerID == targetID {
		return ErrBlockSelf
	}
	target, err := s.userRepo.GetUserById(ctx, targetID)
	if err != nil || target == nil {
		return ErrUserNotFound
	}

	if err := s.blockRepo.Create(ctx, blockerID, targetID); err != nil {
		// 唯一键冲突视为重复拉黑
		log.Warn("拉黑写入失败", "blocker", blockerID, "target", targetID, "error", err)
		return ErrBlockExist
	}
	return nil
}

func (s *blockServiceImpl) Unblock(ctx context.Context, blockerID, targetID uint64) error {
	return s.blockRepo.Delete(ctx, blockerID, targetID)
}
