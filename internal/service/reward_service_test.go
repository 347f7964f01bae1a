package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newTestRewardService() (RewardService, *MockUserRepo, *MockWalletRepo, *MockTransactionRepo) {
	userRepo := new(MockUserRepo)
	walletRepo := new(MockWalletRepo)
	txnRepo := new(MockTransactionRepo)
	esRepo := new(MockTransactionES)
	esRepo.On("IndexTransaction", mock.Anything, mock.Anything).Return(nil).Maybe()
	svc := NewRewardService(userRepo, walletRepo, txnRepo, esRepo)
	return svc, userRepo, walletRepo, txnRepo
}

func TestClaimDailyReward_Eligible(t *testing.T) {
	svc, userRepo, walletRepo, txnRepo := newTestRewardService()

	userRepo.On("GetUserById", mock.Anything, uint64(1)).Return(maleUser(1, 20), nil)
	walletRepo.On("TryClaimDailyReward", mock.Anything, uint64(1), int64(100), mock.Anything, mock.Anything).
		Return(int64(120), true, nil)
	txnRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

	res, err := svc.ClaimDailyReward(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, int64(100), res.Amount)
	assert.Equal(t, int64(120), res.Balance)

	walletRepo.AssertExpectations(t)
	txnRepo.AssertExpectations(t)
}

func TestClaimDailyReward_AlreadyClaimed(t *testing.T) {
	svc, userRepo, walletRepo, txnRepo := newTestRewardService()

	userRepo.On("GetUserById", mock.Anything, uint64(1)).Return(maleUser(1, 120), nil)
	walletRepo.On("TryClaimDailyReward", mock.Anything, uint64(1), int64(100), mock.Anything, mock.Anything).
		Return(int64(0), false, nil)

	res, err := svc.ClaimDailyReward(context.Background(), 1)
	assert.ErrorIs(t, err, ErrRewardNotEligible)
	assert.Nil(t, res)

	// 未命中发放条件就不能出流水
	txnRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestClaimDailyReward_FemaleNotEligible(t *testing.T) {
	svc, userRepo, walletRepo, _ := newTestRewardService()

	userRepo.On("GetUserById", mock.Anything, uint64(2)).Return(femaleUser(2), nil)

	res, err := svc.ClaimDailyReward(context.Background(), 2)
	assert.ErrorIs(t, err, UnauthorizedError)
	assert.Nil(t, res)
	walletRepo.AssertNotCalled(t, "TryClaimDailyReward", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGetRewardStatus(t *testing.T) {
	t.Run("从未领取", func(t *testing.T) {
		svc, userRepo, _, _ := newTestRewardService()
		userRepo.On("GetUserById", mock.Anything, uint64(1)).Return(maleUser(1, 0), nil)

		status, err := svc.GetRewardStatus(context.Background(), 1)
		assert.NoError(t, err)
		assert.True(t, status.Claimable)
		assert.Equal(t, int64(100), status.Amount)
	})

	t.Run("昨日领过", func(t *testing.T) {
		svc, userRepo, _, _ := newTestRewardService()
		u := maleUser(1, 100)
		yesterday := time.Now().In(rewardLocation()).Add(-24 * time.Hour)
		u.LastDailyRewardAt = &yesterday
		userRepo.On("GetUserById", mock.Anything, uint64(1)).Return(u, nil)

		status, err := svc.GetRewardStatus(context.Background(), 1)
		assert.NoError(t, err)
		assert.True(t, status.Claimable)
	})

	t.Run("今日已领", func(t *testing.T) {
		svc, userRepo, _, _ := newTestRewardService()
		u := maleUser(1, 200)
		justNow := time.Now().In(rewardLocation())
		u.LastDailyRewardAt = &justNow
		userRepo.On("GetUserById", mock.Anything, uint64(1)).Return(u, nil)

		status, err := svc.GetRewardStatus(context.Background(), 1)
		assert.NoError(t, err)
		assert.False(t, status.Claimable)
	})

	t.Run("女性用户不可领取", func(t *testing.T) {
		svc, userRepo, _, _ := newTestRewardService()
		userRepo.On("GetUserById", mock.Anything, uint64(2)).Return(femaleUser(2), nil)

		status, err := svc.GetRewardStatus(context.Background(), 2)
		assert.NoError(t, err)
		assert.False(t, status.Claimable)
	})
}
