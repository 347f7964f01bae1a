package job

import (
	"Amoria/internal/pkg/consts"
	"Amoria/internal/pkg/logger"
	"Amoria/internal/pkg/redis"
	"Amoria/internal/pkg/util"
	"Amoria/internal/repository"
	"Amoria/internal/service"
	"context"
	"fmt"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

// IntimacyCalibrationJob 亲密度校准
// 发送链路上的等级写入是尽力而为的，计数才是权威数据；
// 这里扫出被标脏的会话，按当前计数重算等级并单调追平。
type IntimacyCalibrationJob struct {
	convRepo repository.ConversationRepo
}

func NewIntimacyCalibrationJob(convRepo repository.ConversationRepo) *IntimacyCalibrationJob {
	return &IntimacyCalibrationJob{convRepo: convRepo}
}

func (s *IntimacyCalibrationJob) Run() {
	traceID := "job-intimacy-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	processingKey := consts.IntimacyDirtyKey + ":processing"
	err := redis.Rename(ctx, consts.IntimacyDirtyKey, processingKey)
	if err != nil {
		// 没有脏数据时 Rename 返回错误，属正常情况
		return
	}

	tempSet, err := redis.GetSet(ctx, processingKey)
	if err != nil {
		log.ErrorContext(ctx, "get intimacy dirty set error", "err", err)
		return
	}

	convIDs, err := util.StrSliceToUInt64Slice(tempSet)
	if err != nil {
		log.ErrorContext(ctx, "convert intimacy set to int slice error", "err", err)
		return
	}

	var calibrated int
	for _, convID := range convIDs {
		if s.calibrate(ctx, convID) {
			calibrated++
		}
	}

	_ = redis.DeleteKey(ctx, processingKey)
	log.InfoContext(ctx, "亲密度校准完成", "scanned", len(convIDs), "calibrated", calibrated)
}

func (s *IntimacyCalibrationJob) calibrate(ctx context.Context, convID uint64) bool {
	conv, err := s.convRepo.GetConversation(ctx, convID)
	if err != nil {
		log.ErrorContext(ctx, "load conversation error", "convId", convID, "err", err)
		return false
	}

	// 付费方计数是唯一数据源，取两名成员中计数较大者
	var u1, u2 uint64
	if _, err := fmt.Sscanf(conv.PeerKey, "%d_%d", &u1, &u2); err != nil {
		log.ErrorContext(ctx, "parse peer key error", "convId", convID, "peerKey", conv.PeerKey)
		return false
	}

	var paidCount uint64
	for _, uid := range []uint64{u1, u2} {
		m, err := s.convRepo.GetMember(ctx, convID, uid)
		if err != nil {
			continue
		}
		if m.PaidMsgCount > paidCount {
			paidCount = m.PaidMsgCount
		}
	}

	expected := service.LevelFor(paidCount)
	if expected.Level <= conv.IntimacyLevel {
		return false
	}

	changed, err := s.convRepo.UpdateIntimacyLevel(ctx, convID, expected.Level, time.Now())
	if err != nil {
		log.ErrorContext(ctx, "calibrate level error", "convId", convID, "err", err)
		return false
	}
	return changed
}
