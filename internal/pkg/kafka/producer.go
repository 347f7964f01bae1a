package kafka

import (
	"Amoria/internal/api/config"
	log "log/slog"

	"github.com/IBM/sarama"
	"github.com/pkg/errors"
)

// NewAsyncProducer 创建异步生产者并后台消费错误通道
// 调用方对发送结果不感知，失败仅记录日志（发完即忘语义）
func NewAsyncProducer(cfg *config.Config) (sarama.AsyncProducer, error) {
	saramaCfg := newSaramaConfig(cfg.Kafka)

	producer, err := sarama.NewAsyncProducer(cfg.Kafka.Brokers, saramaCfg)
	if err != nil {
		return nil, errors.Wrap(err, "create kafka async producer")
	}

	go func() {
		for perr := range producer.Errors() {
			log.Error("kafka produce error", "topic", perr.Msg.Topic, "err", perr.Err)
		}
	}()

	return producer, nil
}
