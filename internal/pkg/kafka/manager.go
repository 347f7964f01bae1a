package kafka

import (
	"Amoria/internal/api/config"
	"Amoria/internal/service"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
)

// ConsumerManager 管理所有 Kafka 消费者
type ConsumerManager struct {
	earningConsumer sarama.ConsumerGroup
	earningHandler  sarama.ConsumerGroupHandler
}

// NewConsumerManager 构造函数
func NewConsumerManager(cfg *config.Config, settleSvc service.EarningSettleService) (*ConsumerManager, error) {
	saramaCfg := newSaramaConfig(cfg.Kafka)

	earningConsumer, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.KafkaEarningConsumer.GroupID, saramaCfg)
	if err != nil {
		return nil, err
	}
	earningHandler := NewEarningHandler(settleSvc)

	return &ConsumerManager{
		earningConsumer: earningConsumer,
		earningHandler:  earningHandler,
	}, nil
}

// Start 启动所有消费者
func (m *ConsumerManager) Start(ctx context.Context, cfg *config.Config) error {
	go func() {
		topic := cfg.KafkaEarningConsumer.Topic
		log.Info("Earning consumer started", "topic", topic)
		for {
			if err := m.earningConsumer.Consume(ctx, []string{topic}, m.earningHandler); err != nil {
				log.Error("Error from consumer", "err", err)
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	<-ctx.Done()
	log.Info("Kafka Manager shutting down...")

	err := m.earningConsumer.Close()
	if err != nil {
		log.Error("Failed to close earning consumer", "err", err)
	}

	return nil
}
