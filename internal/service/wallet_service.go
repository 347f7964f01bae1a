package service

import (
	"Amoria/internal/model"
	"Amoria/internal/pkg/es"
	"Amoria/internal/repository"
	"context"
	log "log/slog"
)

type WalletService interface {
	GetBalance(ctx context.Context, userID uint64) (int64, error)
	ListTransactions(ctx context.Context, userID uint64, page, size int) ([]*model.CoinTransaction, int64, error)
	// SearchTransactions 管理端审计检索，走 ES
	SearchTransactions(ctx context.Context, query *es.TransactionQuery) ([]*es.TransactionES, error)
}

type walletServiceImpl struct {
	walletRepo repository.WalletRepo
	txnRepo    repository.TransactionRepo
	esRepo     es.TransactionRepo
}

func NewWalletService(walletRepo repository.WalletRepo, txnRepo repository.TransactionRepo, esRepo es.TransactionRepo) WalletService {
	return &walletServiceImpl{
		walletRepo: walletRepo,
		txnRepo:    txnRepo,
		esRepo:     esRepo,
	}
}

func (s *walletServiceImpl) GetBalance(ctx context.Context, userID uint64) (int64, error) {
	balance, err := s.walletRepo.GetBalance(ctx, userID)
	if err != nil {
		log.Error("查询余额失败", "userId", userID, "error", err)
		return 0, UnExpectedError
	}
	return balance, nil
}

func (s *walletServiceImpl) ListTransactions(ctx context.Context, userID uint64, page, size int) ([]*model.CoinTransaction, int64, error) {
	if page <= 0 {
		page = 1
	}
	if size <= 0 || size > 100 {
		size = 20
	}
	txns, total, err := s.txnRepo.ListByUser(ctx, userID, page, size)
	if err != nil {
		log.Error("查询账单失败", "userId", userID, "error", err)
		return nil, 0, UnExpectedError
	}
	return txns, total, nil
}

func (s *walletServiceImpl) SearchTransactions(ctx context.Context, query *es.TransactionQuery) ([]*es.TransactionES, error) {
	txns, err := s.esRepo.SearchTransactions(ctx, query)
	if err != nil {
		log.Error("审计检索失败", "error", err)
		return nil, UnExpectedError
	}
	return txns, nil
}

// recordTransaction 写流水并异步上报审计索引
// 流水是尽力而为的账目记录，失败不回滚业务
func recordTransaction(ctx context.Context, txnRepo repository.TransactionRepo, esRepo es.TransactionRepo, txn *model.CoinTransaction) {
	if err := txnRepo.Create(ctx, txn); err != nil {
		log.Error("流水写入失败", "userId", txn.UserID, "bizType", txn.BizType, "error", err)
		return
	}
	indexTxnAsync(esRepo, txn)
}

// indexTxnAsync 异步写 ES 审计索引，文档 ID 复用流水 ID 保证重试幂等
func indexTxnAsync(esRepo es.TransactionRepo, txn *model.CoinTransaction) {
	if esRepo == nil {
		return
	}
	doc := &es.TransactionES{
		ID:             txn.ID,
		UserID:         txn.UserID,
		Direction:      txn.Direction,
		Amount:         txn.Amount,
		BalanceAfter:   txn.BalanceAfter,
		BizType:        txn.BizType,
		RelatedUserID:  txn.RelatedUserID,
		ConversationID: txn.ConversationID,
		Description:    txn.Description,
		CreatedAt:      txn.CreatedAt,
	}
	go func() {
		if err := esRepo.IndexTransaction(context.Background(), doc); err != nil {
			log.Warn("审计索引写入失败", "txnId", txn.ID, "error", err)
		}
	}()
}
