package service

import (
	"Amoria/internal/model"
	"Amoria/internal/pkg/es"
	"Amoria/internal/pkg/mongo"
	"Amoria/internal/repository"
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) GetUserById(ctx context.Context, userID uint64) (*model.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepo) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepo) CreateUser(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepo) UpdateUser(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

type MockConversationRepo struct {
	mock.Mock
}

func (m *MockConversationRepo) CreateConversation(ctx context.Context, conv *model.Conversation, members []*model.ConversationMember) error {
	args := m.Called(ctx, conv, members)
	return args.Error(0)
}

func (m *MockConversationRepo) GetConversation(ctx context.Context, convID uint64) (*model.Conversation, error) {
	args := m.Called(ctx, convID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Conversation), args.Error(1)
}

func (m *MockConversationRepo) GetConversationByPeerKey(ctx context.Context, peerKey string) (*model.Conversation, error) {
	args := m.Called(ctx, peerKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Conversation), args.Error(1)
}

func (m *MockConversationRepo) GetMember(ctx context.Context, convID uint64, userID uint64) (*model.ConversationMember, error) {
	args := m.Called(ctx, convID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ConversationMember), args.Error(1)
}

func (m *MockConversationRepo) IsMember(ctx context.Context, convID uint64, userID uint64) (bool, error) {
	args := m.Called(ctx, convID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockConversationRepo) ApplySendUpdates(ctx context.Context, convID uint64, upd *repository.SendUpdate) (uint64, uint64, error) {
	args := m.Called(ctx, convID, upd)
	return args.Get(0).(uint64), args.Get(1).(uint64), args.Error(2)
}

func (m *MockConversationRepo) UpdateIntimacyLevel(ctx context.Context, convID uint64, level int, at time.Time) (bool, error) {
	args := m.Called(ctx, convID, level, at)
	return args.Bool(0), args.Error(1)
}

func (m *MockConversationRepo) MarkRead(ctx context.Context, convID, userID, seq uint64) error {
	args := m.Called(ctx, convID, userID, seq)
	return args.Error(0)
}

func (m *MockConversationRepo) GetUserConversationMemList(ctx context.Context, userID uint64) ([]*model.ConversationMember, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.ConversationMember), args.Error(1)
}

func (m *MockConversationRepo) GetTotalUnreadCount(ctx context.Context, userID uint64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

type MockBlockRepo struct {
	mock.Mock
}

func (m *MockBlockRepo) ExistsEither(ctx context.Context, userA, userB uint64) (bool, error) {
	args := m.Called(ctx, userA, userB)
	return args.Bool(0), args.Error(1)
}

func (m *MockBlockRepo) Create(ctx context.Context, blockerID, blockedID uint64) error {
	args := m.Called(ctx, blockerID, blockedID)
	return args.Error(0)
}

func (m *MockBlockRepo) Delete(ctx context.Context, blockerID, blockedID uint64) error {
	args := m.Called(ctx, blockerID, blockedID)
	return args.Error(0)
}

type MockWalletRepo struct {
	mock.Mock
}

func (m *MockWalletRepo) TryDebit(ctx context.Context, userID uint64, amount int64) (int64, bool, error) {
	args := m.Called(ctx, userID, amount)
	return args.Get(0).(int64), args.Bool(1), args.Error(2)
}

func (m *MockWalletRepo) Credit(ctx context.Context, userID uint64, amount int64) (int64, error) {
	args := m.Called(ctx, userID, amount)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockWalletRepo) GetBalance(ctx context.Context, userID uint64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockWalletRepo) TryClaimDailyReward(ctx context.Context, userID uint64, amount int64, dayStart, now time.Time) (int64, bool, error) {
	args := m.Called(ctx, userID, amount, dayStart, now)
	return args.Get(0).(int64), args.Bool(1), args.Error(2)
}

type MockTransactionRepo struct {
	mock.Mock
}

func (m *MockTransactionRepo) Create(ctx context.Context, txn *model.CoinTransaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepo) ListByUser(ctx context.Context, userID uint64, page, size int) ([]*model.CoinTransaction, int64, error) {
	args := m.Called(ctx, userID, page, size)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*model.CoinTransaction), args.Get(1).(int64), args.Error(2)
}

type MockGiftRepo struct {
	mock.Mock
}

func (m *MockGiftRepo) ListActive(ctx context.Context) ([]*model.Gift, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Gift), args.Error(1)
}

func (m *MockGiftRepo) GetActiveByIds(ctx context.Context, giftIDs []uint64) ([]*model.Gift, error) {
	args := m.Called(ctx, giftIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Gift), args.Error(1)
}

type MockMessageRepo struct {
	mock.Mock
}

func (m *MockMessageRepo) SaveMessage(ctx context.Context, msg *mongo.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MockMessageRepo) GetHistory(ctx context.Context, convID uint64, lastSeq uint64, pageSize int) ([]*mongo.Message, error) {
	args := m.Called(ctx, convID, lastSeq, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*mongo.Message), args.Error(1)
}

func (m *MockMessageRepo) GetMessageBySeq(ctx context.Context, convID uint64, seq uint64) (*mongo.Message, error) {
	args := m.Called(ctx, convID, seq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*mongo.Message), args.Error(1)
}

func (m *MockMessageRepo) MarkReadUpTo(ctx context.Context, convID uint64, senderID uint64, seq uint64) error {
	args := m.Called(ctx, convID, senderID, seq)
	return args.Error(0)
}

type MockTransactionES struct {
	mock.Mock
}

func (m *MockTransactionES) IndexTransaction(ctx context.Context, txn *es.TransactionES) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionES) SearchTransactions(ctx context.Context, query *es.TransactionQuery) ([]*es.TransactionES, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*es.TransactionES), args.Error(1)
}

type MockEarningBatcher struct {
	mock.Mock
}

func (m *MockEarningBatcher) AddEarning(ctx context.Context, rec *EarningRecord) {
	m.Called(ctx, rec)
}

func (m *MockEarningBatcher) Close() error {
	args := m.Called()
	return args.Error(0)
}

type MockDispatcher struct {
	mock.Mock
}

func (m *MockDispatcher) NotifyNewMessage(receiverID uint64, senderName string, preview string) {
	m.Called(receiverID, senderName, preview)
}

func (m *MockDispatcher) NotifyLowBalance(userID uint64, balance int64) {
	m.Called(userID, balance)
}

type MockPricingService struct {
	mock.Mock
}

func (m *MockPricingService) GetMessageCost(tier string) int64 {
	args := m.Called(tier)
	return args.Get(0).(int64)
}

func (m *MockPricingService) GetHiCost() int64 {
	args := m.Called()
	return args.Get(0).(int64)
}

func (m *MockPricingService) GetImageCost() int64 {
	args := m.Called()
	return args.Get(0).(int64)
}

func (m *MockPricingService) GetGiftCosts(ctx context.Context, giftIDs []uint64) ([]*model.Gift, int64, error) {
	args := m.Called(ctx, giftIDs)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*model.Gift), args.Get(1).(int64), args.Error(2)
}

func (m *MockPricingService) WarmGiftPriceCache(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
