package handler

import (
	"Amoria/internal/pkg/response"
	"Amoria/internal/service"

	"github.com/gin-gonic/gin"
)

type GiftHandler struct {
	giftSvc service.GiftService
}

func NewGiftHandler(giftSvc service.GiftService) *GiftHandler {
	return &GiftHandler{giftSvc: giftSvc}
}

// ListGifts 礼物目录
func (s *GiftHandler) ListGifts(c *gin.Context) {
	res, err := s.giftSvc.ListGifts(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}
