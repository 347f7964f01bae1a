package handler

import (
	"Amoria/internal/api/dto"
	"Amoria/internal/pkg/es"
	"Amoria/internal/pkg/response"
	"Amoria/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/copier"
)

type WalletHandler struct {
	walletSvc service.WalletService
}

func NewWalletHandler(walletSvc service.WalletService) *WalletHandler {
	return &WalletHandler{walletSvc: walletSvc}
}

// GetBalance 查询当前余额
func (s *WalletHandler) GetBalance(c *gin.Context) {
	userID := c.GetUint64("user_id")
	balance, err := s.walletSvc.GetBalance(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, &dto.BalanceDTO{Balance: balance})
}

// ListTransactions 查询个人账单
func (s *WalletHandler) ListTransactions(c *gin.Context) {
	userID := c.GetUint64("user_id")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "20"))

	txns, total, err := s.walletSvc.ListTransactions(c.Request.Context(), userID, page, size)
	if err != nil {
		response.Error(c, err)
		return
	}

	list := make([]*dto.TransactionDTO, 0, len(txns))
	for _, txn := range txns {
		item := &dto.TransactionDTO{}
		if err := copier.Copy(item, txn); err != nil {
			response.Error(c, err)
			return
		}
		list = append(list, item)
	}
	response.Success(c, &dto.TransactionPageDTO{Total: total, List: list})
}

// SearchTransactions 管理端审计检索
func (s *WalletHandler) SearchTransactions(c *gin.Context) {
	var req dto.TransactionSearchReq
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	res, err := s.walletSvc.SearchTransactions(c.Request.Context(), &es.TransactionQuery{
		UserID:    req.UserID,
		Direction: req.Direction,
		BizType:   req.BizType,
		Since:     req.Since,
		Until:     req.Until,
		From:      req.From,
		Size:      req.Size,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}
