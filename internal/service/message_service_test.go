package service

import (
	"Amoria/internal/api/config"
	"Amoria/internal/api/dto"
	"Amoria/internal/model"
	"Amoria/internal/pkg/consts"
	appredis "Amoria/internal/pkg/redis"
	"Amoria/internal/repository"
	"context"
	"os"
	"testing"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestMain(m *testing.M) {
	config.Cfg = &config.Config{
		Billing: config.BillingConfig{
			MessageCosts:    map[string]int64{consts.TierBasic: 50, consts.TierSilver: 40, consts.TierGold: 30},
			HiCost:          10,
			ImageCost:       80,
			DailyReward:     100,
			WelcomeCoins:    200,
			LowBalanceAlert: 50,
			RewardTimezone:  "Asia/Shanghai",
		},
	}
	// 事件发布指向一个不可达地址：调用返回错误但不会崩溃
	appredis.Rdb = goredis.NewClient(&goredis.Options{Addr: "127.0.0.1:1"})
	os.Exit(m.Run())
}

type messageServiceMocks struct {
	userRepo    *MockUserRepo
	convRepo    *MockConversationRepo
	blockRepo   *MockBlockRepo
	walletRepo  *MockWalletRepo
	txnRepo     *MockTransactionRepo
	esRepo      *MockTransactionES
	messageRepo *MockMessageRepo
	pricing     *MockPricingService
	batcher     *MockEarningBatcher
	dispatcher  *MockDispatcher
}

func newTestMessageService() (MessageService, *messageServiceMocks) {
	m := &messageServiceMocks{
		userRepo:    new(MockUserRepo),
		convRepo:    new(MockConversationRepo),
		blockRepo:   new(MockBlockRepo),
		walletRepo:  new(MockWalletRepo),
		txnRepo:     new(MockTransactionRepo),
		esRepo:      new(MockTransactionES),
		messageRepo: new(MockMessageRepo),
		pricing:     new(MockPricingService),
		batcher:     new(MockEarningBatcher),
		dispatcher:  new(MockDispatcher),
	}
	svc := NewMessageService(
		m.userRepo, m.convRepo, m.blockRepo, m.walletRepo, m.txnRepo, m.esRepo,
		m.messageRepo, m.pricing, m.batcher, m.dispatcher,
	)
	return svc, m
}

func maleUser(id uint64, balance int64) *model.User {
	return &model.User{
		ID:             id,
		Role:           consts.RoleMale,
		MembershipTier: consts.TierBasic,
		CoinBalance:    balance,
		UserDetail:     model.UserDetail{UserID: id, Nickname: "阿强"},
	}
}

func femaleUser(id uint64) *model.User {
	return &model.User{
		ID:         id,
		Role:       consts.RoleFemale,
		UserDetail: model.UserDetail{UserID: id, Nickname: "小美"},
	}
}

func activeConv(id uint64, peerKey string) *model.Conversation {
	return &model.Conversation{ID: id, PeerKey: peerKey, IntimacyLevel: 1, IsActive: true}
}

func msgReq(target uint64, msgType int, content string) *dto.SendMessageReq {
	return &dto.SendMessageReq{TargetUserID: target, MsgType: msgType, Content: content}
}

// allowAsyncSideEffects 异步扇出允许发生但不强制断言
func allowAsyncSideEffects(m *messageServiceMocks) {
	m.esRepo.On("IndexTransaction", mock.Anything, mock.Anything).Return(nil).Maybe()
	m.dispatcher.On("NotifyNewMessage", mock.Anything, mock.Anything, mock.Anything).Return().Maybe()
	m.dispatcher.On("NotifyLowBalance", mock.Anything, mock.Anything).Return().Maybe()
}

func TestSendMessage_BasicText(t *testing.T) {
	svc, m := newTestMessageService()
	defer svc.Close()
	allowAsyncSideEffects(m)

	m.userRepo.On("GetUserById", mock.Anything, uint64(1)).Return(maleUser(1, 200), nil)
	m.userRepo.On("GetUserById", mock.Anything, uint64(2)).Return(femaleUser(2), nil)
	m.blockRepo.On("ExistsEither", mock.Anything, uint64(1), uint64(2)).Return(false, nil)
	m.convRepo.On("GetConversationByPeerKey", mock.Anything, "1_2").Return(activeConv(10, "1_2"), nil)
	m.pricing.On("GetMessageCost", consts.TierBasic).Return(int64(50))
	m.walletRepo.On("TryDebit", mock.Anything, uint64(1), int64(50)).Return(int64(150), true, nil)
	m.batcher.On("AddEarning", mock.Anything, mock.MatchedBy(func(rec *EarningRecord) bool {
		return rec.UserID == 2 && rec.Amount == 50 && rec.BizType == consts.TxnBizMessage
	})).Return()
	m.txnRepo.On("Create", mock.Anything, mock.MatchedBy(func(txn *model.CoinTransaction) bool {
		return txn.Direction == consts.TxnDirectionDebit && txn.Amount == 50 && txn.BalanceAfter == 150
	})).Return(nil)
	m.convRepo.On("ApplySendUpdates", mock.Anything, uint64(10), mock.MatchedBy(func(upd *repository.SendUpdate) bool {
		return upd.SenderID == 1 && upd.ReceiverID == 2 && upd.Weight == 1 && upd.CountsPaid
	})).Return(uint64(1), uint64(1), nil)
	m.messageRepo.On("SaveMessage", mock.Anything, mock.Anything).Return(nil)

	res, err := svc.SendMessage(context.Background(), 1, msgReq(2, consts.MsgTypeText, "你好"))
	assert.NoError(t, err)
	assert.NotNil(t, res.Balance)
	assert.Equal(t, int64(150), *res.Balance)
	assert.Equal(t, int64(50), res.Cost)
	assert.Equal(t, uint64(1), res.Message.Seq)
	assert.Nil(t, res.LevelUp)
	assert.NotNil(t, res.Intimacy)
	assert.Equal(t, 1, res.Intimacy.Level)

	m.walletRepo.AssertExpectations(t)
	m.batcher.AssertExpectations(t)
	m.convRepo.AssertExpectations(t)
}

func TestSendMessage_InsufficientFunds(t *testing.T) {
	svc, m := newTestMessageService()
	defer svc.Close()
	allowAsyncSideEffects(m)

	m.userRepo.On("GetUserById", mock.Anything, uint64(1)).Return(maleUser(1, 10), nil)
	m.userRepo.On("GetUserById", mock.Anything, uint64(2)).Return(femaleUser(2), nil)
	m.blockRepo.On("ExistsEither", mock.Anything, uint64(1), uint64(2)).Return(false, nil)
	m.convRepo.On("GetConversationByPeerKey", mock.Anything, "1_2").Return(activeConv(10, "1_2"), nil)
	m.pricing.On("GetMessageCost", consts.TierBasic).Return(int64(50))
	m.walletRepo.On("TryDebit", mock.Anything, uint64(1), int64(50)).Return(int64(0), false, nil)

	res, err := svc.SendMessage(context.Background(), 1, msgReq(2, consts.MsgTypeText, "你好"))
	assert.ErrorIs(t, err, ErrInsufficientBalance)
	assert.Nil(t, res)

	// 扣款失败后不能有任何副作用
	m.convRepo.AssertNotCalled(t, "ApplySendUpdates", mock.Anything, mock.Anything, mock.Anything)
	m.messageRepo.AssertNotCalled(t, "SaveMessage", mock.Anything, mock.Anything)
	m.batcher.AssertNotCalled(t, "AddEarning", mock.Anything, mock.Anything)
	m.txnRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSendMessage_BlockedPair(t *testing.T) {
	svc, m := newTestMessageService()
	defer svc.Close()
	allowAsyncSideEffects(m)

	m.userRepo.On("GetUserById", mock.Anything, uint64(1)).Return(maleUser(1, 200), nil)
	m.userRepo.On("GetUserById", mock.Anything, uint64(2)).Return(femaleUser(2), nil)
	m.blockRepo.On("ExistsEither", mock.Anything, uint64(1), uint64(2)).Return(true, nil)

	res, err := svc.SendMessage(context.Background(), 1, msgReq(2, consts.MsgTypeText, "你好"))
	assert.ErrorIs(t, err, ErrBlocked)
	assert.Nil(t, res)

	// 拉黑校验发生在扣款之前
	m.walletRepo.AssertNotCalled(t, "TryDebit", mock.Anything, mock.Anything, mock.Anything)
}

func TestSendMessage_FemaleSenderFree(t *testing.T) {
	svc, m := newTestMessageService()
	defer svc.Close()
	allowAsyncSideEffects(m)

	m.userRepo.On("GetUserById", mock.Anything, uint64(2)).Return(femaleUser(2), nil)
	m.userRepo.On("GetUserById", mock.Anything, uint64(1)).Return(maleUser(1, 200), nil)
	m.blockRepo.On("ExistsEither", mock.Anything, uint64(2), uint64(1)).Return(false, nil)
	m.convRepo.On("GetConversationByPeerKey", mock.Anything, "1_2").Return(activeConv(10, "1_2"), nil)
	m.convRepo.On("ApplySendUpdates", mock.Anything, uint64(10), mock.MatchedBy(func(upd *repository.SendUpdate) bool {
		return upd.SenderID == 2 && !upd.CountsPaid
	})).Return(uint64(3), uint64(0), nil)
	m.messageRepo.On("SaveMessage", mock.Anything, mock.Anything).Return(nil)

	res, err := svc.SendMessage(context.Background(), 2, msgReq(1, consts.MsgTypeText, "在吗"))
	assert.NoError(t, err)
	assert.Nil(t, res.Balance)
	assert.Equal(t, int64(0), res.Cost)

	m.walletRepo.AssertNotCalled(t, "TryDebit", mock.Anything, mock.Anything, mock.Anything)
	m.batcher.AssertNotCalled(t, "AddEarning", mock.Anything, mock.Anything)
}

func TestSendGift_MultipleItems(t *testing.T) {
	svc, m := newTestMessageService()
	defer svc.Close()
	allowAsyncSideEffects(m)

	gifts := []*model.Gift{
		{ID: 100, Name: "玫瑰", Cost: 30},
		{ID: 101, Name: "香水", Cost: 70},
	}
	m.pricing.On("GetGiftCosts", mock.Anything, []uint64{100, 101}).Return(gifts, int64(100), nil)
	m.userRepo.On("GetUserById", mock.Anything, uint64(1)).Return(maleUser(1, 500), nil)
	m.userRepo.On("GetUserById", mock.Anything, uint64(2)).Return(femaleUser(2), nil)
	m.blockRepo.On("ExistsEither", mock.Anything, uint64(1), uint64(2)).Return(false, nil)
	m.convRepo.On("GetConversationByPeerKey", mock.Anything, "1_2").Return(activeConv(10, "1_2"), nil)
	m.walletRepo.On("TryDebit", mock.Anything, uint64(1), int64(100)).Return(int64(400), true, nil)
	m.batcher.On("AddEarning", mock.Anything, mock.MatchedBy(func(rec *EarningRecord) bool {
		return rec.Amount == 100 && rec.BizType == consts.TxnBizGift
	})).Return()
	m.txnRepo.On("Create", mock.Anything, mock.MatchedBy(func(txn *model.CoinTransaction) bool {
		return txn.Amount == 100 && txn.Direction == consts.TxnDirectionDebit
	})).Return(nil).Once()
	m.convRepo.On("ApplySendUpdates", mock.Anything, uint64(10), mock.Anything).Return(uint64(7), uint64(4), nil)
	m.messageRepo.On("SaveMessage", mock.Anything, mock.Anything).Return(nil)

	res, err := svc.SendGift(context.Background(), 1, &dto.SendGiftReq{TargetUserID: 2, GiftIDs: []uint64{100, 101}})
	assert.NoError(t, err)
	assert.Equal(t, int64(100), res.Cost)
	assert.Len(t, res.Message.Gifts, 2)
	assert.Equal(t, consts.MsgTypeGift, res.Message.MsgType)

	m.txnRepo.AssertExpectations(t)
}

func TestSendMessage_LevelUpBoundary(t *testing.T) {
	svc, m := newTestMessageService()
	defer svc.Close()
	allowAsyncSideEffects(m)

	m.userRepo.On("GetUserById", mock.Anything, uint64(1)).Return(maleUser(1, 500), nil)
	m.userRepo.On("GetUserById", mock.Anything, uint64(2)).Return(femaleUser(2), nil)
	m.blockRepo.On("ExistsEither", mock.Anything, uint64(1), uint64(2)).Return(false, nil)
	m.convRepo.On("GetConversationByPeerKey", mock.Anything, "1_2").Return(activeConv(10, "1_2"), nil)
	m.pricing.On("GetMessageCost", consts.TierBasic).Return(int64(50))
	m.walletRepo.On("TryDebit", mock.Anything, uint64(1), int64(50)).Return(int64(450), true, nil)
	m.batcher.On("AddEarning", mock.Anything, mock.Anything).Return()
	m.txnRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	m.messageRepo.On("SaveMessage", mock.Anything, mock.Anything).Return(nil)

	// 9 -> 10：跨过二级阈值
	m.convRepo.On("ApplySendUpdates", mock.Anything, uint64(10), mock.Anything).Return(uint64(19), uint64(10), nil).Once()
	m.convRepo.On("UpdateIntimacyLevel", mock.Anything, uint64(10), 2, mock.Anything).Return(true, nil).Once()

	res, err := svc.SendMessage(context.Background(), 1, msgReq(2, consts.MsgTypeText, "第十条"))
	assert.NoError(t, err)
	assert.NotNil(t, res.LevelUp)
	assert.Equal(t, 2, res.LevelUp.Level)
	assert.Equal(t, 2, res.Intimacy.Level)

	// 10 -> 11：同级内增长不触发升级
	m.convRepo.On("ApplySendUpdates", mock.Anything, uint64(10), mock.Anything).Return(uint64(20), uint64(11), nil).Once()

	res, err = svc.SendMessage(context.Background(), 1, msgReq(2, consts.MsgTypeText, "第十一条"))
	assert.NoError(t, err)
	assert.Nil(t, res.LevelUp)

	m.convRepo.AssertExpectations(t)
}

func TestSendHi_AlreadyContacted(t *testing.T) {
	svc, m := newTestMessageService()
	defer svc.Close()
	allowAsyncSideEffects(m)

	conv := activeConv(10, "1_2")
	conv.MaxMsgSeq = 5

	m.userRepo.On("GetUserById", mock.Anything, uint64(1)).Return(maleUser(1, 200), nil)
	m.userRepo.On("GetUserById", mock.Anything, uint64(2)).Return(femaleUser(2), nil)
	m.blockRepo.On("ExistsEither", mock.Anything, uint64(1), uint64(2)).Return(false, nil)
	m.convRepo.On("GetConversationByPeerKey", mock.Anything, "1_2").Return(conv, nil)

	res, err := svc.SendHi(context.Background(), 1, &dto.SendHiReq{TargetUserID: 2})
	assert.ErrorIs(t, err, ErrHiAlreadyContacted)
	assert.Nil(t, res)
	m.walletRepo.AssertNotCalled(t, "TryDebit", mock.Anything, mock.Anything, mock.Anything)
}

func TestSendMessage_SelfTarget(t *testing.T) {
	svc, _ := newTestMessageService()
	defer svc.Close()

	res, err := svc.SendMessage(context.Background(), 1, msgReq(1, consts.MsgTypeText, "自言自语"))
	assert.ErrorIs(t, err, ErrTargetUserSelf)
	assert.Nil(t, res)
}
