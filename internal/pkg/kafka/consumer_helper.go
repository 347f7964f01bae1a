package kafka

import (
	log "log/slog"
	"time"

	"github.com/IBM/sarama"
)

const (
	batchSize    = 64
	batchTimeout = 2 * time.Second
)

// BatchLogicFunc 批量业务逻辑：一次拿到整批消息，便于按用户聚合入账
type BatchLogicFunc func(session sarama.ConsumerGroupSession, messages []*sarama.ConsumerMessage) error

// pullMessageBatch 按条数/时间窗口攒批后执行业务逻辑
func pullMessageBatch(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim, logic BatchLogicFunc) error {
	batch := make([]*sarama.ConsumerMessage, 0, batchSize)
	ticker := time.NewTicker(batchTimeout)
	defer ticker.Stop()
	for {
		select {
		case msg, ok := <-claim.Messages():
			if !ok {
				if len(batch) > 0 {
					processBatch(session, batch, logic)
				}
				return nil
			}
			batch = append(batch, msg)
			if len(batch) >= batchSize {
				processBatch(session, batch, logic)
				// 清空缓冲区 & 重置定时器
				batch = make([]*sarama.ConsumerMessage, 0, batchSize)
				ticker.Reset(batchTimeout)
			}
		case <-ticker.C:
			if len(batch) > 0 {
				processBatch(session, batch, logic)
				batch = make([]*sarama.ConsumerMessage, 0, batchSize)
			}
		case <-session.Context().Done():
			return nil
		}
	}
}

// processBatch 带退避重试地处理一批消息，成功后推进位点
func processBatch(session sarama.ConsumerGroupSession, messages []*sarama.ConsumerMessage, logic BatchLogicFunc) {
	var retryInterval = 100 * time.Millisecond

	for {
		err := logic(session, messages)
		if err == nil {
			break
		}
		select {
		case <-session.Context().Done():
			return
		default:
		}

		log.Error("process batch error", "size", len(messages), "err", err)
		time.Sleep(retryInterval)

		retryInterval *= 2
		if retryInterval > 5*time.Second {
			retryInterval = 5 * time.Second
		}
	}

	if len(messages) > 0 {
		lastMsg := messages[len(messages)-1]
		session.MarkMessage(lastMsg, "")
	}
}
