package handler

import (
	"Amoria/internal/api/dto"
	"Amoria/internal/pkg/response"
	"Amoria/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type IMHandler struct {
	messageService service.MessageService
}

func NewIMHandler(messageService service.MessageService) *IMHandler {
	return &IMHandler{messageService: messageService}
}

// SendMessage 发送文本/图片消息接口
func (s *IMHandler) SendMessage(c *gin.Context) {
	var req dto.SendMessageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	// 从 Context 中获取中间件解析出的当前用户 ID
	senderID := c.GetUint64("user_id")

	res, err := s.messageService.SendMessage(c, senderID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

// SendHi 打招呼接口
func (s *IMHandler) SendHi(c *gin.Context) {
	var req dto.SendHiReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	senderID := c.GetUint64("user_id")

	res, err := s.messageService.SendHi(c, senderID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

// SendGift 送礼接口
func (s *IMHandler) SendGift(c *gin.Context) {
	var req dto.SendGiftReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	senderID := c.GetUint64("user_id")

	res, err := s.messageService.SendGift(c, senderID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

// MarkAsRead 标记已读接口
func (s *IMHandler) MarkAsRead(c *gin.Context) {
	var req dto.MarkAsReadReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	userID := c.GetUint64("user_id")

	err := s.messageService.MarkAsRead(c, userID, req.ConversationID, req.Sequence)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// GetChatHistory 获取历史消息
func (s *IMHandler) GetChatHistory(c *gin.Context) {
	convID, _ := strconv.ParseUint(c.Query("conversationId"), 10, 64)
	lastSeq, _ := strconv.ParseUint(c.Query("lastSeq"), 10, 64)
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))

	userID := c.GetUint64("user_id")

	res, err := s.messageService.GetChatHistory(c, userID, convID, lastSeq, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

// GetConversationList 获取会话列表
func (s *IMHandler) GetConversationList(c *gin.Context) {
	userID := c.GetUint64("user_id")
	res, err := s.messageService.GetConversationList(c, userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}
