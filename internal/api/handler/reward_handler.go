package handler

import (
	"Amoria/internal/pkg/response"
	"Amoria/internal/service"

	"github.com/gin-gonic/gin"
)

type RewardHandler struct {
	rewardSvc service.RewardService
}

func NewRewardHandler(rewardSvc service.RewardService) *RewardHandler {
	return &RewardHandler{rewardSvc: rewardSvc}
}

// ClaimDailyReward 领取每日奖励
func (s *RewardHandler) ClaimDailyReward(c *gin.Context) {
	userID := c.GetUint64("user_id")
	res, err := s.rewardSvc.ClaimDailyReward(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

// GetRewardStatus 查询今日领取状态
func (s *RewardHandler) GetRewardStatus(c *gin.Context) {
	userID := c.GetUint64("user_id")
	res, err := s.rewardSvc.GetRewardStatus(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}
