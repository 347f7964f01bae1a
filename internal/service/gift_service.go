package service

import (
	"Amoria/internal/api/dto"
	"Amoria/internal/repository"
	"context"
	log "log/slog"
)

// GiftService 礼物目录
type GiftService interface {
	ListGifts(ctx context.Context) ([]*dto.GiftDTO, error)
}

type giftServiceImpl struct {
	giftRepo repository.GiftRepo
}

func NewGiftService(giftRepo repository.GiftRepo) GiftService {
	return &giftServiceImpl{giftRepo: giftRepo}
}

func (s *giftServiceImpl) ListGifts(ctx context.Context) ([]*dto.GiftDTO, error) {
	gifts, err := s.giftRepo.ListActive(ctx)
	if err != nil {
		log.Error("礼物目录查询失败", "error", err)
		return nil, UnExpectedError
	}

	res := make([]*dto.GiftDTO, 0, len(gifts))
	for _, g := range gifts {
		res = append(res, &dto.GiftDTO{
			ID:       g.ID,
			Name:     g.Name,
			Cost:     g.Cost,
			ImageURL: g.ImageURL,
		})
	}
	return res, nil
}
