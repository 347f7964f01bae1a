package logger

import (
	"context"
	log "log/slog"
	"strconv"
)

// TraceIDKey 定义 Context 中的 Key
const TraceIDKey = "trace_id"

// ContextHandler 包装器，从 ctx 中提取 trace_id 与操作者 user_id
type ContextHandler struct {
	log.Handler
}

func (h *ContextHandler) Handle(ctx context.Context, r log.Record) error {
	if ctx != nil {
		if traceID, ok := ctx.Value(TraceIDKey).(string); ok {
			r.AddAttrs(log.String("trace_id", traceID))
		}
		if userID, ok := ctx.Value("user_id").(uint64); ok && userID > 0 {
			r.AddAttrs(log.String("user_id", strconv.FormatUint(userID, 10)))
		}
	}
	return h.Handler.Handle(ctx, r)
}
