package service

import (
	"Amoria/internal/api/config"
	"Amoria/internal/model"
	"Amoria/internal/pkg/consts"
	"Amoria/internal/pkg/redis"
	"Amoria/internal/repository"
	"context"
	log "log/slog"
	"strconv"
	"time"

	"github.com/goccy/go-json"
)

// PricingService 计费策略：消息单价按发送者会员等级取，礼物价格以下单时刻为准
type PricingService interface {
	GetMessageCost(tier string) int64
	GetHiCost() int64
	GetImageCost() int64
	// GetGiftCosts 批量取礼物价格，任一礼物不存在或下架返回 ErrGiftNotFound
	GetGiftCosts(ctx context.Context, giftIDs []uint64) ([]*model.Gift, int64, error)
	// WarmGiftPriceCache 预热礼物价格缓存，由定时任务调用
	WarmGiftPriceCache(ctx context.Context) error
}

type pricingServiceImpl struct {
	giftRepo repository.GiftRepo
}

func NewPricingService(giftRepo repository.GiftRepo) PricingService {
	return &pricingServiceImpl{giftRepo: giftRepo}
}

// GetMessageCost 按会员等级取文本消息单价，未知等级回退到基础价
func (s *pricingServiceImpl) GetMessageCost(tier string) int64 {
	if cost, ok := config.Cfg.Billing.MessageCosts[tier]; ok {
		return cost
	}
	return config.Cfg.Billing.MessageCosts[consts.TierBasic]
}

func (s *pricingServiceImpl) GetHiCost() int64 {
	return config.Cfg.Billing.HiCost
}

func (s *pricingServiceImpl) GetImageCost() int64 {
	return config.Cfg.Billing.ImageCost
}

// GetGiftCosts 先查缓存，缓存未命中回源数据库
// 价格以扣款时刻的快照为准，缓存过期窗口内的调价差异可接受
func (s *pricingServiceImpl) GetGiftCosts(ctx context.Context, giftIDs []uint64) ([]*model.Gift, int64, error) {
	if len(giftIDs) == 0 {
		return nil, 0, ErrGiftEmpty
	}

	gifts := make([]*model.Gift, 0, len(giftIDs))
	missed := make([]uint64, 0)
	cached := make(map[uint64]*model.Gift)

	for _, id := range giftIDs {
		gift, err := s.lookupCache(ctx, id)
		if err != nil || gift == nil {
			missed = append(missed, id)
			continue
		}
		cached[id] = gift
	}

	if len(missed) > 0 {
		fromDB, err := s.giftRepo.GetActiveByIds(ctx, missed)
		if err != nil {
			log.Error("查询礼物失败", "error", err)
			return nil, 0, UnExpectedError
		}
		for _, g := range fromDB {
			cached[g.ID] = g
			s.fillCache(ctx, g)
		}
	}

	var total int64
	for _, id := range giftIDs {
		gift, ok := cached[id]
		if !ok {
			return nil, 0, ErrGiftNotFound
		}
		gifts = append(gifts, gift)
		total += gift.Cost
	}
	return gifts, total, nil
}

// WarmGiftPriceCache 全量刷新上架礼物的价格缓存
func (s *pricingServiceImpl) WarmGiftPriceCache(ctx context.Context) error {
	gifts, err := s.giftRepo.ListActive(ctx)
	if err != nil {
		return err
	}
	for _, g := range gifts {
		s.fillCache(ctx, g)
	}
	log.Info("礼物价格缓存预热完成", "count", len(gifts))
	return nil
}

func (s *pricingServiceImpl) lookupCache(ctx context.Context, giftID uint64) (*model.Gift, error) {
	key := consts.GiftPriceKey + strconv.FormatUint(giftID, 10)
	raw, err := redis.GetValue(ctx, key)
	if err != nil || raw == "" {
		return nil, err
	}
	var gift model.Gift
	if err := json.Unmarshal([]byte(raw), &gift); err != nil {
		return nil, err
	}
	return &gift, nil
}

func (s *pricingServiceImpl) fillCache(ctx context.Context, gift *model.Gift) {
	key := consts.GiftPriceKey + strconv.FormatUint(gift.ID, 10)
	raw, err := json.Marshal(gift)
	if err != nil {
		return
	}
	ttl := time.Duration(config.Cfg.Billing.GiftPriceCacheTTL) * time.Second
	if err := redis.SetWithExpiration(ctx, key, raw, ttl); err != nil {
		log.Warn("礼物价格缓存写入失败", "giftId", gift.ID, "error", err)
	}
}
