package service

import (
	"Amoria/internal/api/config"
	"Amoria/internal/api/dto"
	"Amoria/internal/model"
	"Amoria/internal/pkg/consts"
	"Amoria/internal/pkg/es"
	"Amoria/internal/pkg/mongo"
	"Amoria/internal/pkg/push"
	"Amoria/internal/pkg/redis"
	"Amoria/internal/repository"
	"context"
	"fmt"
	log "log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/goccy/go-json"
)

const maxMessageLength = 2000

// MessageService 付费消息编排：校验 → 计价 → 扣款 → 落库 → 亲密度 → 通知
type MessageService interface {
	SendMessage(ctx context.Context, senderID uint64, req *dto.SendMessageReq) (*dto.SendResultDTO, error)
	SendHi(ctx context.Context, senderID uint64, req *dto.SendHiReq) (*dto.SendResultDTO, error)
	SendGift(ctx context.Context, senderID uint64, req *dto.SendGiftReq) (*dto.SendResultDTO, error)
	GetChatHistory(ctx context.Context, userID uint64, convID uint64, lastSeq uint64, pageSize int) ([]*dto.MessageDTO, error)
	GetConversationList(ctx context.Context, userID uint64) ([]*dto.ConversationDTO, error)
	MarkAsRead(ctx context.Context, userID uint64, convID uint64, seq uint64) error
	Close()
}

type messageServiceImpl struct {
	userRepo    repository.UserRepo
	convRepo    repository.ConversationRepo
	blockRepo   repository.BlockRepo
	walletRepo  repository.WalletRepo
	txnRepo     repository.TransactionRepo
	esRepo      es.TransactionRepo
	messageRepo mongo.MessageRepo
	pricing     PricingService
	batcher     EarningBatcher
	dispatcher  push.Dispatcher

	retryChan chan *mongo.Message
	wg        sync.WaitGroup
	stopChan  chan struct{}
}

// NewMessageService 构造函数：初始化服务并启动消息补写工作池
func NewMessageService(
	userRepo repository.UserRepo,
	convRepo repository.ConversationRepo,
	blockRepo repository.BlockRepo,
	walletRepo repository.WalletRepo,
	txnRepo repository.TransactionRepo,
	esRepo es.TransactionRepo,
	messageRepo mongo.MessageRepo,
	pricing PricingService,
	batcher EarningBatcher,
	dispatcher push.Dispatcher,
) MessageService {
	s := &messageServiceImpl{
		userRepo:    userRepo,
		convRepo:    convRepo,
		blockRepo:   blockRepo,
		walletRepo:  walletRepo,
		txnRepo:     txnRepo,
		esRepo:      esRepo,
		messageRepo: messageRepo,
		pricing:     pricing,
		batcher:     batcher,
		dispatcher:  dispatcher,
		retryChan:   make(chan *mongo.Message, 2048),
		stopChan:    make(chan struct{}),
	}

	workerCount := 5
	s.wg.Add(workerCount)
	for i := 0; i < workerCount; i++ {
		go s.retryWorker()
	}

	return s
}

// sendInput 三种发送流共用的归一化输入
type sendInput struct {
	conversationID uint64
	targetUserID   uint64
	msgType        int
	content        string
	media          []mongo.Media
	gifts          []mongo.GiftItem
	cost           int64
	weight         uint64
	bizType        string
}

// SendMessage 发送文本或图片消息
func (s *messageServiceImpl) SendMessage(ctx context.Context, senderID uint64, req *dto.SendMessageReq) (*dto.SendResultDTO, error) {
	if req.MsgType != consts.MsgTypeText && req.MsgType != consts.MsgTypeImage {
		return nil, ErrParamInvalid
	}
	if req.MsgType == consts.MsgTypeText {
		if req.Content == "" {
			return nil, ErrMessageEmpty
		}
		if len(req.Content) > maxMessageLength {
			return nil, ErrMessageTooLong
		}
	}
	if req.MsgType == consts.MsgTypeImage && len(req.Media) == 0 {
		return nil, ErrParamInvalid
	}

	in := &sendInput{
		conversationID: req.ConversationID,
		targetUserID:   req.TargetUserID,
		msgType:        req.MsgType,
		content:        req.Content,
		media:          req.Media,
		weight:         consts.IntensityText,
		bizType:        consts.TxnBizMessage,
	}
	if req.MsgType == consts.MsgTypeImage {
		in.weight = consts.IntensityImage
		in.bizType = consts.TxnBizImage
	}
	return s.sendPaid(ctx, senderID, in)
}

// SendHi 打招呼：首次搭话的优惠入口，已有往来的会话不允许再打招呼
func (s *messageServiceImpl) SendHi(ctx context.Context, senderID uint64, req *dto.SendHiReq) (*dto.SendResultDTO, error) {
	content := req.Content
	if content == "" {
		content = "你好，认识一下吗？"
	}
	if len(content) > maxMessageLength {
		return nil, ErrMessageTooLong
	}

	return s.sendPaid(ctx, senderID, &sendInput{
		targetUserID: req.TargetUserID,
		msgType:      consts.MsgTypeHi,
		content:      content,
		weight:       consts.IntensityHi,
		bizType:      consts.TxnBizHi,
	})
}

// SendGift 送礼：一次可送多件，总价一次性扣减
func (s *messageServiceImpl) SendGift(ctx context.Context, senderID uint64, req *dto.SendGiftReq) (*dto.SendResultDTO, error) {
	if len(req.GiftIDs) == 0 {
		return nil, ErrGiftEmpty
	}

	gifts, total, err := s.pricing.GetGiftCosts(ctx, req.GiftIDs)
	if err != nil {
		return nil, err
	}

	items := make([]mongo.GiftItem, 0, len(gifts))
	for _, g := range gifts {
		items = append(items, mongo.GiftItem{
			GiftID:   g.ID,
			Name:     g.Name,
			Cost:     g.Cost,
			ImageURL: g.ImageURL,
		})
	}

	content := req.Content
	if content == "" {
		content = fmt.Sprintf("送出了 %d 件礼物", len(items))
	}

	return s.sendPaid(ctx, senderID, &sendInput{
		conversationID: req.ConversationID,
		targetUserID:   req.TargetUserID,
		msgType:        consts.MsgTypeGift,
		content:        content,
		gifts:          items,
		cost:           total,
		weight:         consts.IntensityGift,
		bizType:        consts.TxnBizGift,
	})
}

// sendPaid 付费发送主流程
// 扣款严格先于消息落库：钱动了才有消息；扣款之后的步骤都是尽力而为，
// 单步失败只记日志，不回滚扣款也不让已付费的请求失败。
func (s *messageServiceImpl) sendPaid(ctx context.Context, senderID uint64, in *sendInput) (*dto.SendResultDTO, error) {
	sender, target, conv, err := s.prepare(ctx, senderID, in)
	if err != nil {
		return nil, err
	}

	// 计价与扣款：只有付费角色走钱包，其他角色零成本直通
	paying := sender.Role == consts.RoleMale
	var newBalance int64
	if paying {
		cost := s.resolveCost(sender, in)
		in.cost = cost

		balance, ok, err := s.walletRepo.TryDebit(ctx, senderID, cost)
		if err != nil {
			log.Error("扣款失败", "userId", senderID, "cost", cost, "error", err)
			return nil, UnExpectedError
		}
		if !ok {
			return nil, ErrInsufficientBalance
		}
		newBalance = balance

		// 扣多少、对方就挣多少；入账走批处理通道，不等结果
		s.batcher.AddEarning(ctx, &EarningRecord{
			UserID:         target.ID,
			Amount:         cost,
			BizType:        in.bizType,
			RelatedUserID:  senderID,
			ConversationID: conv.ID,
			OccurredAt:     time.Now().UnixMilli(),
		})

		recordTransaction(ctx, s.txnRepo, s.esRepo, &model.CoinTransaction{
			UserID:         senderID,
			Direction:      consts.TxnDirectionDebit,
			Amount:         cost,
			BalanceAfter:   newBalance,
			BizType:        in.bizType,
			RelatedUserID:  target.ID,
			ConversationID: conv.ID,
			Description:    s.txnDescription(in),
		})
	}

	// MySQL 原子定序 + 带权计数 + 未读数
	now := time.Now()
	newSeq, newPaidCount, err := s.convRepo.ApplySendUpdates(ctx, conv.ID, &repository.SendUpdate{
		SenderID:   senderID,
		ReceiverID: target.ID,
		Preview:    in.content,
		MsgType:    int8(in.msgType),
		Weight:     in.weight,
		CountsPaid: paying,
		SentAt:     now,
	})
	if err != nil {
		// 钱已经扣了，定序失败也要把消息发出去；计数靠校准任务追平
		log.Error("会话计数更新失败", "convId", conv.ID, "error", err)
	}

	// 消息明细落 MongoDB，失败转入补写队列
	msgModel := &mongo.Message{
		ConversationID: conv.ID,
		SenderID:       senderID,
		MsgType:        in.msgType,
		Content:        in.content,
		Media:          in.media,
		Gifts:          in.gifts,
		Seq:            newSeq,
		Status:         consts.MsgStatusSent,
		CreatedAt:      now,
	}

	writeCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.messageRepo.SaveMessage(writeCtx, msgModel); err != nil {
		log.Error("消息落库失败，转入补写队列", "convId", conv.ID, "seq", newSeq, "error", err)
		select {
		case s.retryChan <- msgModel:
		default:
		}
	}

	// 升级判定：只有付费方的计数驱动亲密度
	var levelUp *dto.LevelUpDTO
	var intimacy *dto.IntimacyDTO
	if paying && newPaidCount > 0 {
		levelUp, intimacy = s.checkLevelUp(ctx, conv.ID, newPaidCount, in.weight)
	}

	// 通知扇出，全部发完即忘
	s.notifyAsync(sender, target, conv.ID, msgModel, paying, newBalance, levelUp)

	result := &dto.SendResultDTO{
		Message:  s.toMessageDTO(msgModel),
		Cost:     in.cost,
		Intimacy: intimacy,
		LevelUp:  levelUp,
	}
	if paying {
		result.Balance = &newBalance
	}
	return result, nil
}

// prepare 发送前置校验：双方状态、拉黑关系、会话归属
func (s *messageServiceImpl) prepare(ctx context.Context, senderID uint64, in *sendInput) (*model.User, *model.User, *model.Conversation, error) {
	if in.conversationID == 0 && in.targetUserID == 0 {
		return nil, nil, nil, ErrParamInvalid
	}
	if in.targetUserID == senderID {
		return nil, nil, nil, ErrTargetUserSelf
	}

	sender, err := s.userRepo.GetUserById(ctx, senderID)
	if err != nil || sender == nil {
		return nil, nil, nil, ErrUserNotFound
	}
	if sender.IsBan {
		return nil, nil, nil, ErrUserBan
	}

	var conv *model.Conversation
	targetID := in.targetUserID

	if in.conversationID > 0 {
		conv, err = s.convRepo.GetConversation(ctx, in.conversationID)
		if err != nil {
			return nil, nil, nil, ErrConversation
		}
		isMember, _ := s.convRepo.IsMember(ctx, conv.ID, senderID)
		if !isMember {
			return nil, nil, nil, ErrNotConversationMember
		}
		if !conv.IsActive {
			return nil, nil, nil, ErrConversation
		}
		targetID, err = parsePeerID(conv.PeerKey, senderID)
		if err != nil {
			return nil, nil, nil, ErrConversation
		}
		if targetID == senderID {
			return nil, nil, nil, ErrTargetUserSelf
		}
	}

	target, err := s.userRepo.GetUserById(ctx, targetID)
	if err != nil || target == nil || target.IsDelete {
		return nil, nil, nil, ErrTargetUserInvalid
	}
	if target.IsBan {
		return nil, nil, nil, ErrTargetUserInvalid
	}

	// 拉黑是对称的：任意一方拉黑即不可达，且必须发生在扣款之前
	blocked, err := s.blockRepo.ExistsEither(ctx, senderID, targetID)
	if err != nil {
		log.Error("拉黑检查失败", "sender", senderID, "target", targetID, "error", err)
		return nil, nil, nil, UnExpectedError
	}
	if blocked {
		return nil, nil, nil, ErrBlocked
	}

	if conv == nil {
		// 同角色（非管理员）之间不开会话
		if sender.Role == target.Role && sender.Role != consts.RoleAdmin {
			return nil, nil, nil, ErrTargetUserInvalid
		}
		conv, err = s.getOrCreateConversation(ctx, sender, target)
		if err != nil {
			return nil, nil, nil, err
		}
	}

	// 打招呼只在还没说过话的会话里有效
	if in.msgType == consts.MsgTypeHi && conv.MaxMsgSeq > 0 {
		return nil, nil, nil, ErrHiAlreadyContacted
	}

	return sender, target, conv, nil
}

// resolveCost 服务端持有的计价策略，客户端无法指定价格
func (s *messageServiceImpl) resolveCost(sender *model.User, in *sendInput) int64 {
	switch in.msgType {
	case consts.MsgTypeText:
		return s.pricing.GetMessageCost(sender.MembershipTier)
	case consts.MsgTypeImage:
		return s.pricing.GetImageCost()
	case consts.MsgTypeHi:
		return s.pricing.GetHiCost()
	case consts.MsgTypeGift:
		return in.cost // 送礼在入口处已按目录价汇总
	}
	return 0
}

// getOrCreateConversation 一对用户只有一个会话，成员带角色快照
func (s *messageServiceImpl) getOrCreateConversation(ctx context.Context, sender, target *model.User) (*model.Conversation, error) {
	peerKey := buildPeerKey(sender.ID, target.ID)

	conv, err := s.convRepo.GetConversationByPeerKey(ctx, peerKey)
	if err == nil {
		return conv, nil
	}

	newConv := &model.Conversation{
		PeerKey:       peerKey,
		IntimacyLevel: 1,
		LastMessageAt: time.Now(),
		IsActive:      true,
	}
	members := []*model.ConversationMember{
		{UserID: sender.ID, Role: sender.Role, IsVisible: 1},
		{UserID: target.ID, Role: target.Role, IsVisible: 1},
	}
	if err := s.convRepo.CreateConversation(ctx, newConv, members); err != nil {
		// 并发首聊会撞唯一键，回读兜底
		conv, rerr := s.convRepo.GetConversationByPeerKey(ctx, peerKey)
		if rerr == nil {
			return conv, nil
		}
		log.Error("创建会话失败", "peerKey", peerKey, "error", err)
		return nil, UnExpectedError
	}
	return newConv, nil
}

// checkLevelUp 升级判定与单调持久化
func (s *messageServiceImpl) checkLevelUp(ctx context.Context, convID uint64, newPaidCount, weight uint64) (*dto.LevelUpDTO, *dto.IntimacyDTO) {
	before := newPaidCount - weight
	current := LevelFor(newPaidCount)

	intimacy := &dto.IntimacyDTO{
		Level:        current.Level,
		Label:        current.Label,
		PaidMsgCount: newPaidCount,
	}
	if next := NextLevel(current.Level); next != nil {
		intimacy.NextLevelAt = &next.MinCount
	}

	up := CheckLevelUp(before, newPaidCount)
	if up == nil {
		return nil, intimacy
	}

	changed, err := s.convRepo.UpdateIntimacyLevel(ctx, convID, up.Level, time.Now())
	if err != nil {
		log.Error("亲密度等级写入失败", "convId", convID, "level", up.Level, "error", err)
		// 计数是权威数据，等级靠校准任务追平，升级事件照常发
	}
	if err == nil && !changed {
		// 并发发送已经把等级推上去了，不重复播报
		return nil, intimacy
	}

	// 标脏，夜间校准任务据此复核等级与计数的一致性
	if err := redis.SAdd(ctx, consts.IntimacyDirtyKey, strconv.FormatUint(convID, 10)); err != nil {
		log.Warn("亲密度标脏失败", "convId", convID, "error", err)
	}

	return &dto.LevelUpDTO{
		ConversationID: convID,
		Level:          up.Level,
		Label:          up.Label,
	}, intimacy
}

// notifyAsync 实时事件与离线推送扇出
func (s *messageServiceImpl) notifyAsync(sender, target *model.User, convID uint64, msg *mongo.Message, paying bool, newBalance int64, levelUp *dto.LevelUpDTO) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	go func() {
		defer cancel()

		s.publishEvent(ctx, target.ID, consts.EventNewMessage, s.toMessageDTO(msg))

		if paying {
			s.publishEvent(ctx, sender.ID, consts.EventBalanceUpdate, map[string]interface{}{
				"balance": newBalance,
			})
			if newBalance < config.Cfg.Billing.LowBalanceAlert {
				s.dispatcher.NotifyLowBalance(sender.ID, newBalance)
			}
		}

		if levelUp != nil {
			s.publishEvent(ctx, sender.ID, consts.EventLevelUp, levelUp)
			s.publishEvent(ctx, target.ID, consts.EventLevelUp, levelUp)
		}

		s.dispatcher.NotifyNewMessage(target.ID, sender.UserDetail.Nickname, msg.Content)
	}()
}

// publishEvent 发布事件到用户个人频道
func (s *messageServiceImpl) publishEvent(ctx context.Context, userID uint64, event string, payload interface{}) {
	data, err := json.Marshal(map[string]interface{}{
		"event":   event,
		"payload": payload,
	})
	if err != nil {
		return
	}
	channel := consts.IMUserKey + strconv.FormatUint(userID, 10)
	if err := redis.Publish(ctx, channel, data); err != nil {
		log.Warn("事件发布失败", "userId", userID, "event", event, "error", err)
	}
}

// GetChatHistory 拉取历史消息
func (s *messageServiceImpl) GetChatHistory(ctx context.Context, userID uint64, convID uint64, lastSeq uint64, pageSize int) ([]*dto.MessageDTO, error) {
	isMember, err := s.convRepo.IsMember(ctx, convID, userID)
	if err != nil || !isMember {
		return nil, UnauthorizedError
	}

	models, err := s.messageRepo.GetHistory(ctx, convID, lastSeq, pageSize)
	if err != nil {
		log.Error("历史消息查询失败", "convId", convID, "error", err)
		return nil, UnExpectedError
	}

	res := make([]*dto.MessageDTO, 0, len(models))
	for _, m := range models {
		res = append(res, s.toMessageDTO(m))
	}
	return res, nil
}

// GetConversationList 获取会话列表，附带对端资料与亲密度
func (s *messageServiceImpl) GetConversationList(ctx context.Context, userID uint64) ([]*dto.ConversationDTO, error) {
	members, err := s.convRepo.GetUserConversationMemList(ctx, userID)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.ConversationDTO, 0, len(members))
	for _, m := range members {
		d := &dto.ConversationDTO{
			ConversationID: m.ConversationID,
			IntimacyLevel:  m.Conversation.IntimacyLevel,
			LastMsgContent: m.Conversation.LastMsgContent,
			LastMsgType:    m.Conversation.LastMsgType,
			LastSenderID:   m.Conversation.LastSenderID,
			LastMessageAt:  m.Conversation.LastMessageAt,
			UnreadCount:    m.UnreadCount,
		}
		for _, lv := range intimacyLevels {
			if lv.Level == m.Conversation.IntimacyLevel {
				d.IntimacyLabel = lv.Label
				break
			}
		}

		peerID, err := parsePeerID(m.Conversation.PeerKey, userID)
		if err != nil {
			continue
		}
		d.PeerID = peerID
		if peer, err := s.userRepo.GetUserById(ctx, peerID); err == nil && peer != nil {
			d.PeerNickname = peer.UserDetail.Nickname
			d.PeerAvatarURL = peer.UserDetail.AvatarURL
		}
		res = append(res, d)
	}
	return res, nil
}

// MarkAsRead 标记已读：推进已读游标、清零未读、通知对端回执
func (s *messageServiceImpl) MarkAsRead(ctx context.Context, userID uint64, convID uint64, seq uint64) error {
	isMember, err := s.convRepo.IsMember(ctx, convID, userID)
	if err != nil || !isMember {
		return UnauthorizedError
	}

	conv, err := s.convRepo.GetConversation(ctx, convID)
	if err != nil {
		return ErrConversation
	}

	targetSeq := seq
	if targetSeq > conv.MaxMsgSeq {
		targetSeq = conv.MaxMsgSeq
	}

	if err = s.convRepo.MarkRead(ctx, convID, userID, targetSeq); err != nil {
		return err
	}

	peerID, err := parsePeerID(conv.PeerKey, userID)
	if err != nil {
		return nil
	}

	// 对端发来的消息批量置为已读
	readCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	go func() {
		defer cancel()
		if err := s.messageRepo.MarkReadUpTo(readCtx, convID, peerID, targetSeq); err != nil {
			log.Warn("消息已读状态更新失败", "convId", convID, "error", err)
		}
		receipt := &dto.ReadReceiptDTO{
			ConversationID: convID,
			UserID:         userID,
			ReadSeq:        targetSeq,
			Type:           consts.EventReadReceipt,
		}
		s.publishEvent(readCtx, peerID, consts.EventReadReceipt, receipt)
	}()

	return nil
}

func (s *messageServiceImpl) Close() {
	close(s.stopChan)
	s.wg.Wait()
	log.Info("MessageService shut down gracefully")
}

// retryWorker 消息补写：MongoDB 瞬时故障时兜底重试
func (s *messageServiceImpl) retryWorker() {
	defer s.wg.Done()
	for {
		select {
		case msg := <-s.retryChan:
			backoff := time.Second
			for i := 0; i < 3; i++ {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				err := s.messageRepo.SaveMessage(ctx, msg)
				cancel()
				if err == nil {
					break
				}
				time.Sleep(backoff)
				backoff *= 2
			}
		case <-s.stopChan:
			return
		}
	}
}

func (s *messageServiceImpl) txnDescription(in *sendInput) string {
	switch in.bizType {
	case consts.TxnBizHi:
		return "打招呼"
	case consts.TxnBizImage:
		return "发送图片"
	case consts.TxnBizGift:
		return fmt.Sprintf("送礼 %d 件", len(in.gifts))
	default:
		return "发送消息"
	}
}

func (s *messageServiceImpl) toMessageDTO(m *mongo.Message) *dto.MessageDTO {
	return &dto.MessageDTO{
		ID: m.ID, ConversationID: m.ConversationID, SenderID: m.SenderID,
		MsgType: m.MsgType, Content: m.Content, Media: m.Media, Gifts: m.Gifts,
		Seq: m.Seq, Status: m.Status, CreatedAt: m.CreatedAt,
	}
}

// buildPeerKey 小号在前，保证一对用户只映射一个会话
func buildPeerKey(a, b uint64) string {
	if a < b {
		return fmt.Sprintf("%d_%d", a, b)
	}
	return fmt.Sprintf("%d_%d", b, a)
}

func parsePeerID(peerKey string, currentUserID uint64) (uint64, error) {
	var u1, u2 uint64
	_, err := fmt.Sscanf(peerKey, "%d_%d", &u1, &u2)
	if err != nil {
		return 0, err
	}
	if u1 == currentUserID {
		return u2, nil
	}
	return u1, nil
}
