package kafka

import (
	"Amoria/internal/service"
	log "log/slog"
	"time"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
)

// EarningHandler 收益入账消费者
// 把发送端攒下来的小额收益按收款人聚合后一次性入账，避免一条消息一行流水
type EarningHandler struct {
	settleSvc service.EarningSettleService
}

func NewEarningHandler(settleSvc service.EarningSettleService) *EarningHandler {
	return &EarningHandler{settleSvc: settleSvc}
}

func (s *EarningHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("earning consumer setup")
	return nil
}

func (s *EarningHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("earning consumer cleanup")
	return nil
}

func (s *EarningHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Info("topic-earning consume claim")
	err := pullMessageBatch(session, claim, s.settle)
	if err != nil {
		log.Error("process batch error", "err", err)
		return err
	}
	log.Info("topic-earning consume claim end")
	return nil
}

// settle 聚合一批收益记录并逐个收款人入账
// 单个收款人入账失败时原地退避重试（入账是加法，不能丢）；
// 格式损坏的消息记录日志后丢弃，避免毒丸消息卡死分区。
func (s *EarningHandler) settle(session sarama.ConsumerGroupSession, messages []*sarama.ConsumerMessage) error {
	ctx := session.Context()

	grouped := make(map[uint64][]*service.EarningRecord)
	for _, msg := range messages {
		var rec service.EarningRecord
		if err := json.Unmarshal(msg.Value, &rec); err != nil {
			log.Error("unmarshal earning record error", "offset", msg.Offset, "err", err)
			continue
		}
		if rec.UserID == 0 || rec.Amount <= 0 {
			log.Error("invalid earning record", "offset", msg.Offset, "user_id", rec.UserID, "amount", rec.Amount)
			continue
		}
		grouped[rec.UserID] = append(grouped[rec.UserID], &rec)
	}

	for userID, records := range grouped {
		var retryInterval = 100 * time.Millisecond
		for {
			err := s.settleSvc.SettleEarnings(ctx, userID, records)
			if err == nil {
				break
			}
			select {
			case <-ctx.Done():
				return nil
			default:
			}

			log.Error("settle earnings error", "user_id", userID, "count", len(records), "err", err)
			time.Sleep(retryInterval)

			retryInterval *= 2
			if retryInterval > 5*time.Second {
				retryInterval = 5 * time.Second
			}
		}
	}

	return nil
}
