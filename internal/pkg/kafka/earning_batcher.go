package kafka

import (
	"Amoria/internal/api/config"
	"Amoria/internal/service"
	"context"
	log "log/slog"
	"strconv"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
)

// earningBatcher 基于 sarama 异步生产者的收益上报
// 按收款人 ID 作为分区键，同一收款人的收益落到同一分区，
// 消费侧批量聚合时天然按人连续
type earningBatcher struct {
	producer sarama.AsyncProducer
	topic    string
}

func NewEarningBatcher(producer sarama.AsyncProducer, cfg *config.Config) service.EarningBatcher {
	return &earningBatcher{
		producer: producer,
		topic:    cfg.KafkaEarningProducer.Topic,
	}
}

// AddEarning 投递一笔收益，不阻塞调用方
// 序列化失败属于编程错误，记录日志后丢弃
func (s *earningBatcher) AddEarning(ctx context.Context, rec *service.EarningRecord) {
	payload, err := json.Marshal(rec)
	if err != nil {
		log.Error("marshal earning record error", "user_id", rec.UserID, "err", err)
		return
	}

	s.producer.Input() <- &sarama.ProducerMessage{
		Topic: s.topic,
		Key:   sarama.StringEncoder(strconv.FormatUint(rec.UserID, 10)),
		Value: sarama.ByteEncoder(payload),
	}
}

func (s *earningBatcher) Close() error {
	return s.producer.Close()
}
