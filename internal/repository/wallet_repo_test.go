package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	return db, mock
}

func TestTryDebit_Success(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewWalletRepo(db)

	mock.ExpectBegin()
	// 校验与扣减必须在同一条 UPDATE 里完成
	mock.ExpectExec("UPDATE `users` SET").
		WithArgs(50, sqlmock.AnyArg(), uint64(1), 50).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT `coin_balance` FROM `users`").
		WithArgs(uint64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"coin_balance"}).AddRow(150))
	mock.ExpectCommit()

	balance, ok, err := repo.TryDebit(context.Background(), 1, 50)
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(150), balance)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTryDebit_InsufficientBalance(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewWalletRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `users` SET").
		WithArgs(500, sqlmock.AnyArg(), uint64(1), 500).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	balance, ok, err := repo.TryDebit(context.Background(), 1, 500)
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, int64(0), balance)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCredit(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewWalletRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `users` SET").
		WithArgs(100, sqlmock.AnyArg(), uint64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT `coin_balance` FROM `users`").
		WithArgs(uint64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"coin_balance"}).AddRow(100))
	mock.ExpectCommit()

	balance, err := repo.Credit(context.Background(), 2, 100)
	assert.NoError(t, err)
	assert.Equal(t, int64(100), balance)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCredit_UserNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewWalletRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `users` SET").
		WithArgs(100, sqlmock.AnyArg(), uint64(999)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err := repo.Credit(context.Background(), 999, 100)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTryClaimDailyReward_FirstClaimOfDay(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewWalletRepo(db)

	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `users` SET").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), uint64(1), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT `coin_balance` FROM `users`").
		WithArgs(uint64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"coin_balance"}).AddRow(120))
	mock.ExpectCommit()

	balance, ok, err := repo.TryClaimDailyReward(context.Background(), 1, 100, dayStart, now)
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(120), balance)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTryClaimDailyReward_AlreadyClaimed(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewWalletRepo(db)

	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `users` SET").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), uint64(1), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	balance, ok, err := repo.TryClaimDailyReward(context.Background(), 1, 100, dayStart, now)
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, int64(0), balance)
	assert.NoError(t, mock.ExpectationsWereMet())
}
