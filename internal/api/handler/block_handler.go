package handler

import (
	"Amoria/internal/api/dto"
	"Amoria/internal/pkg/response"
	"Amoria/internal/service"

	"github.com/gin-gonic/gin"
)

type BlockHandler struct {
	blockSvc service.BlockService
}

func NewBlockHandler(blockSvc service.BlockService) *BlockHandler {
	return &BlockHandler{blockSvc: blockSvc}
}

// Block 拉黑用户
func (s *BlockHandler) Block(c *gin.Context) {
	var req dto.BlockReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	userID := c.GetUint64("user_id")
	if err := s.blockSvc.Block(c.Request.Context(), userID, req.TargetUserID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// Unblock 取消拉黑
func (s *BlockHandler) Unblock(c *gin.Context) {
	var req dto.BlockReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	userID := c.GetUint64("user_id")
	if err := s.blockSvc.Unblock(c.Request.Context(), userID, req.TargetUserID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
