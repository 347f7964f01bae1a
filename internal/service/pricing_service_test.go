package service

import (
	"Amoria/internal/pkg/consts"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetMessageCost_TierFallback(t *testing.T) {
	svc := NewPricingService(nil)

	assert.Equal(t, int64(50), svc.GetMessageCost(consts.TierBasic))
	assert.Equal(t, int64(40), svc.GetMessageCost(consts.TierSilver))
	assert.Equal(t, int64(30), svc.GetMessageCost(consts.TierGold))
	// 未知档位回退到基础价
	assert.Equal(t, int64(50), svc.GetMessageCost("platinum"))
	assert.Equal(t, int64(50), svc.GetMessageCost(""))
}

func TestFixedCosts(t *testing.T) {
	svc := NewPricingService(nil)

	assert.Equal(t, int64(10), svc.GetHiCost())
	assert.Equal(t, int64(80), svc.GetImageCost())
}
