package job

import (
	"Amoria/internal/pkg/logger"
	"Amoria/internal/service"
	"context"
	log "log/slog"

	"github.com/google/uuid"
)

// GiftPriceJob 定时预热礼物价格缓存，调价后最迟一个周期生效
type GiftPriceJob struct {
	pricingSvc service.PricingService
}

func NewGiftPriceJob(pricingSvc service.PricingService) *GiftPriceJob {
	return &GiftPriceJob{pricingSvc: pricingSvc}
}

func (s *GiftPriceJob) Run() {
	traceID := "job-gift-price-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	if err := s.pricingSvc.WarmGiftPriceCache(ctx); err != nil {
		log.ErrorContext(ctx, "warm gift price cache error", "err", err)
	}
}
