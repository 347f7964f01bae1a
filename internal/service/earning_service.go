package service

import (
	"Amoria/internal/model"
	"Amoria/internal/pkg/consts"
	"Amoria/internal/pkg/es"
	"Amoria/internal/pkg/redis"
	"Amoria/internal/repository"
	"context"
	"fmt"
	log "log/slog"
	"time"

	"github.com/goccy/go-json"
)

// EarningRecord 一笔待入账的收益
// 发送方扣款成功后立即产生，经 Kafka 异步聚合后给接收方入账
type EarningRecord struct {
	UserID         uint64 `json:"userId"` // 收款人
	Amount         int64  `json:"amount"`
	BizType        string `json:"bizType"`
	RelatedUserID  uint64 `json:"relatedUserId"` // 付款人
	ConversationID uint64 `json:"conversationId"`
	OccurredAt     int64  `json:"occurredAt"` // unix 毫秒
}

// EarningBatcher 收益上报入口
// 实现方保证发送不阻塞调用线程；投递失败只影响收益到账时效，不影响消息发送
type EarningBatcher interface {
	AddEarning(ctx context.Context, rec *EarningRecord)
	Close() error
}

// EarningSettleService 收益入账，消费侧按收款人聚合后调用
type EarningSettleService interface {
	SettleEarnings(ctx context.Context, userID uint64, records []*EarningRecord) error
}

type earningSettleServiceImpl struct {
	walletRepo repository.WalletRepo
	txnRepo    repository.TransactionRepo
	esRepo     es.TransactionRepo
}

func NewEarningSettleService(walletRepo repository.WalletRepo, txnRepo repository.TransactionRepo, esRepo es.TransactionRepo) EarningSettleService {
	return &earningSettleServiceImpl{
		walletRepo: walletRepo,
		txnRepo:    txnRepo,
		esRepo:     esRepo,
	}
}

// SettleEarnings 聚合入账：一批收益合并成一次余额加法和一行流水
func (s *earningSettleServiceImpl) SettleEarnings(ctx context.Context, userID uint64, records []*EarningRecord) error {
	var total int64
	for _, rec := range records {
		total += rec.Amount
	}
	if total <= 0 {
		return nil
	}

	newBalance, err := s.walletRepo.Credit(ctx, userID, total)
	if err != nil {
		return err
	}

	txn := &model.CoinTransaction{
		UserID:       userID,
		Direction:    consts.TxnDirectionCredit,
		Amount:       total,
		BalanceAfter: newBalance,
		BizType:      consts.TxnBizEarning,
		Description:  fmt.Sprintf("收益入账 %d 笔", len(records)),
	}
	if err := s.txnRepo.Create(ctx, txn); err != nil {
		// 余额已到账，流水缺失只影响账单展示
		log.Error("收益流水写入失败", "userId", userID, "amount", total, "error", err)
	} else {
		indexTxnAsync(s.esRepo, txn)
	}

	s.publishBalanceEvent(ctx, userID, newBalance)

	log.Info("收益入账完成", "userId", userID, "amount", total, "count", len(records), "balance", newBalance)
	return nil
}

// publishBalanceEvent 推送余额变动事件，在线端实时刷新余额
func (s *earningSettleServiceImpl) publishBalanceEvent(ctx context.Context, userID uint64, balance int64) {
	payload, err := json.Marshal(map[string]interface{}{
		"event":     consts.EventBalanceUpdate,
		"balance":   balance,
		"timestamp": time.Now().UnixMilli(),
	})
	if err != nil {
		return
	}
	channel := fmt.Sprintf("%s%d", consts.IMUserKey, userID)
	if err := redis.Publish(ctx, channel, payload); err != nil {
		log.Warn("余额事件发布失败", "userId", userID, "error", err)
	}
}
