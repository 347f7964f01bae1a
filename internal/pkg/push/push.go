package push

import (
	"Amoria/internal/api/config"
	"context"
	log "log/slog"
	"time"

	"github.com/go-resty/resty/v2"
)

// Dispatcher 推送网关客户端
// 所有推送均为发完即忘：失败只记日志，绝不影响主流程
type Dispatcher interface {
	NotifyNewMessage(receiverID uint64, senderName string, preview string)
	NotifyLowBalance(userID uint64, balance int64)
}

type dispatcherImpl struct {
	client *resty.Client
}

func NewDispatcher(cfg config.PushConfig) Dispatcher {
	client := resty.New().
		SetBaseURL(cfg.URL).
		SetHeader("X-Api-Key", cfg.APIKey).
		SetTimeout(5 * time.Second).
		SetRetryCount(2)

	return &dispatcherImpl{client: client}
}

// NotifyNewMessage 新消息推送
func (s *dispatcherImpl) NotifyNewMessage(receiverID uint64, senderName string, preview string) {
	go s.dispatch("new_message", map[string]interface{}{
		"receiver_id": receiverID,
		"title":       senderName,
		"body":        preview,
	})
}

// NotifyLowBalance 余额不足提醒
func (s *dispatcherImpl) NotifyLowBalance(userID uint64, balance int64) {
	go s.dispatch("low_balance", map[string]interface{}{
		"receiver_id": userID,
		"balance":     balance,
	})
}

func (s *dispatcherImpl) dispatch(event string, payload map[string]interface{}) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(map[string]interface{}{
			"event":   event,
			"payload": payload,
		}).
		Post("")
	if err != nil {
		log.Error("push dispatch error", "event", event, "err", err)
		return
	}
	if resp.IsError() {
		log.Error("push dispatch rejected", "event", event, "status", resp.StatusCode())
	}
}
